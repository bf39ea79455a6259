package engine

import (
	"fmt"
	"math"

	"github.com/geovalidate/geovalidate/internal/geosvalidity"
)

// IsSliver applies the three-threshold conjunction: small, non-compact,
// and elongated. Non-polygonal, zero-area, or zero-perimeter geometries
// return false. Any internal computation failure is swallowed as false.
func IsSliver(g *Geometry, c GeometryCriteria) (sliver bool) {
	defer func() {
		if recover() != nil {
			sliver = false
		}
	}()

	if !IsPolygon(g) {
		return false
	}
	area := SurfaceArea(g)
	if area <= 0 {
		return false
	}
	perimeter := polygonPerimeter(g)
	if perimeter <= 0 {
		return false
	}

	shapeIndex := 4 * math.Pi * area / (perimeter * perimeter)
	elongation := (perimeter * perimeter) / (4 * math.Pi * area)

	return area < c.SliverArea && shapeIndex < c.SliverShapeIndex && elongation > c.SliverElongation
}

func polygonPerimeter(g *Geometry) float64 {
	var total float64
	switch g.Type {
	case GeometryTypePolygon:
		for _, ring := range g.Rings {
			total += ringPerimeter(ring)
		}
	case GeometryTypeMultiPolygon:
		for _, rings := range g.PolygonRings {
			for _, ring := range rings {
				total += ringPerimeter(ring)
			}
		}
	}
	return total
}

// SpikeResult describes a detected spike.
type SpikeResult struct {
	VertexIndex int
	AngleDeg    float64
	At          Point
}

// DetectSpike inspects every linear ring of g (polygon exterior, holes,
// every polygon of a MultiPolygon) and every non-polygonal linear element,
// returning the first ring/part containing a spike (short-circuit per
// feature, per spec §4.2 step 5).
func DetectSpike(g *Geometry, thresholdDeg float64) (*SpikeResult, bool) {
	switch g.Type {
	case GeometryTypePolygon:
		for _, ring := range g.Rings {
			if r, ok := spikeInRing(ring, thresholdDeg); ok {
				return r, true
			}
		}
	case GeometryTypeMultiPolygon:
		for _, rings := range g.PolygonRings {
			for _, ring := range rings {
				if r, ok := spikeInRing(ring, thresholdDeg); ok {
					return r, true
				}
			}
		}
	case GeometryTypeLineString:
		if r, ok := spikeInLine(g.Points, thresholdDeg); ok {
			return r, true
		}
	case GeometryTypeMultiLineString:
		for _, part := range g.Parts {
			if r, ok := spikeInLine(part, thresholdDeg); ok {
				return r, true
			}
		}
	}
	return nil, false
}

// spikeInRing applies wrap-around modular indexing over the ring's unique
// (non-duplicated-closing-vertex) point sequence, per spec §4.2/§9.
func spikeInRing(ring Ring, thresholdDeg float64) (*SpikeResult, bool) {
	count := len(ring)
	if count >= 2 {
		first, last := ring[0], ring[count-1]
		if math.Hypot(last.X-first.X, last.Y-first.Y) < 1e-9 {
			count--
		}
	}
	if count < 3 {
		return nil, false
	}

	// A spike vertex sits close to a straight line (180 deg) but is
	// displaced from it, not a sharp interior corner. deviation measures
	// how close to straight the vertex is.
	var sharpest *SpikeResult
	for i := 0; i < count; i++ {
		prev := ring[(i-1+count)%count]
		cur := ring[i%count]
		next := ring[(i+1)%count]
		deviation := 180 - Angle(prev, cur, next)
		if deviation < thresholdDeg {
			if sharpest == nil || deviation < sharpest.AngleDeg {
				sharpest = &SpikeResult{VertexIndex: i, AngleDeg: deviation, At: cur}
			}
		}
	}
	if sharpest == nil {
		return nil, false
	}
	return sharpest, true
}

// spikeInLine applies the same angle test to an open polyline, with no
// wrap-around at the two open endpoints (they have no interior angle).
func spikeInLine(line Ring, thresholdDeg float64) (*SpikeResult, bool) {
	n := len(line)
	if n < 3 {
		return nil, false
	}
	var sharpest *SpikeResult
	for i := 1; i < n-1; i++ {
		deviation := 180 - Angle(line[i-1], line[i], line[i+1])
		if deviation < thresholdDeg {
			if sharpest == nil || deviation < sharpest.AngleDeg {
				sharpest = &SpikeResult{VertexIndex: i, AngleDeg: deviation, At: line[i]}
			}
		}
	}
	if sharpest == nil {
		return nil, false
	}
	return sharpest, true
}

// SpikeMessage formats the spike diagnostic exactly as required by spec
// §4.2 step 3.
func SpikeMessage(r *SpikeResult) string {
	return fmt.Sprintf("스파이크 검출: 정점 %d번 각도 %.1f도", r.VertexIndex, r.AngleDeg)
}

// DetectSelfOverlap reports whether any two parts of a single feature's own
// MultiPolygon overlap each other, returning the center of the
// intersection's envelope as the error location. A plain Polygon (one part) can never self-overlap.
func DetectSelfOverlap(g *Geometry, tolerance float64) (at Point, has bool) {
	if g.Type != GeometryTypeMultiPolygon || len(g.PolygonRings) < 2 {
		return Point{}, false
	}
	for i := 0; i < len(g.PolygonRings); i++ {
		partI := ExportWKT(&Geometry{Type: GeometryTypePolygon, Rings: g.PolygonRings[i]})
		for j := i + 1; j < len(g.PolygonRings); j++ {
			partJ := ExportWKT(&Geometry{Type: GeometryTypePolygon, Rings: g.PolygonRings[j]})
			area, cx, cy, found, err := geosvalidity.IntersectionAreaAndCentroid(partI, partJ)
			if err == nil && found && area > tolerance {
				return Point{X: cx, Y: cy}, true
			}
		}
	}
	return Point{}, false
}
