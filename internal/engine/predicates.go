package engine

import "math"

// IsLine reports whether g's flattened WKB type is a line variant.
func IsLine(g *Geometry) bool {
	return g.Type.IsLineType()
}

// IsPolygon reports whether g's flattened WKB type is a polygon variant.
func IsPolygon(g *Geometry) bool {
	return g.Type.IsPolygonType()
}

// SurfaceArea returns area(g) for polygonal geometries, 0 otherwise, and 0
// on any computation failure — surface_area(G) = 0 iff G is non-polygonal
// or empty.
func SurfaceArea(g *Geometry) float64 {
	if g == nil || !IsPolygon(g) {
		return 0
	}
	var total float64
	switch g.Type {
	case GeometryTypePolygon:
		total = polygonArea(g.Rings)
	case GeometryTypeMultiPolygon:
		for _, rings := range g.PolygonRings {
			total += polygonArea(rings)
		}
	}
	return total
}

// polygonArea computes exterior area minus hole areas via the shoelace
// formula, mirroring the CCW/area conventions used across the pack for
// planar polygon area.
func polygonArea(rings []Ring) float64 {
	if len(rings) == 0 {
		return 0
	}
	area := ringArea(rings[0])
	for _, hole := range rings[1:] {
		area -= ringArea(hole)
	}
	if area < 0 {
		area = -area
	}
	return area
}

// ringArea is the signed shoelace area of ring (positive for CCW).
func ringArea(ring Ring) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum / 2
}

// ringPerimeter sums the Euclidean length of consecutive ring edges,
// wrapping the last edge back to the first vertex.
func ringPerimeter(ring Ring) float64 {
	n := len(ring)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := ring[j].X - ring[i].X
		dy := ring[j].Y - ring[i].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

// RingIsClosed reports whether the first and last point of ring coincide
// within tol (Euclidean distance).
func RingIsClosed(ring Ring, tol float64) bool {
	if len(ring) < 2 {
		return false
	}
	first, last := ring[0], ring[len(ring)-1]
	dx := last.X - first.X
	dy := last.Y - first.Y
	return dx*dx+dy*dy <= tol*tol
}

// UniquePointCount quantizes each coordinate to a grid derived from tol and
// returns the cardinality of the resulting set. This collapses the
// duplicated closing vertex of a closed ring to one and is robust against
// floating-point noise.
func UniquePointCount(ring Ring, tol float64) int {
	if tol <= 0 {
		tol = 1e-9
	}
	seen := make(map[[2]int64]struct{}, len(ring))
	for _, p := range ring {
		key := [2]int64{
			int64(math.Round(p.X / tol)),
			int64(math.Round(p.Y / tol)),
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// Angle returns the interior angle at b, in degrees, formed by the edges
// b->a and b->c. Returns 180 if either edge has zero length.
func Angle(a, b, c Point) float64 {
	abx, aby := a.X-b.X, a.Y-b.Y
	cbx, cby := c.X-b.X, c.Y-b.Y
	magAB := math.Hypot(abx, aby)
	magCB := math.Hypot(cbx, cby)
	if magAB == 0 || magCB == 0 {
		return 180
	}
	dot := abx*cbx + aby*cby
	cosTheta := dot / (magAB * magCB)
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return math.Acos(cosTheta) * 180 / math.Pi
}

// DistancePointToSegment returns the minimum Euclidean distance from p to
// segment [a,b], and the nearest point on the segment (with endpoint
// clamping).
func DistancePointToSegment(p, a, b Point) (dist float64, nearest Point) {
	abx, aby := b.X-a.X, b.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y), a
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	t = math.Max(0, math.Min(1, t))
	nearest = Point{X: a.X + t*abx, Y: a.Y + t*aby}
	return math.Hypot(p.X-nearest.X, p.Y-nearest.Y), nearest
}

// FirstVertex returns the deterministic first coordinate of g, drilling to
// the outermost first ring/part for polygon and multi-geometries.
func FirstVertex(g *Geometry) (Point, bool) {
	switch g.Type {
	case GeometryTypePoint, GeometryTypeLineString:
		if len(g.Points) == 0 {
			return Point{}, false
		}
		return g.Points[0], true
	case GeometryTypeMultiPoint, GeometryTypeMultiLineString:
		for _, part := range g.Parts {
			if len(part) > 0 {
				return part[0], true
			}
		}
		return Point{}, false
	case GeometryTypePolygon:
		if len(g.Rings) == 0 || len(g.Rings[0]) == 0 {
			return Point{}, false
		}
		return g.Rings[0][0], true
	case GeometryTypeMultiPolygon:
		for _, rings := range g.PolygonRings {
			if len(rings) > 0 && len(rings[0]) > 0 {
				return rings[0][0], true
			}
		}
		return Point{}, false
	}
	return Point{}, false
}

// ComputeEnvelope computes the axis-aligned bounding box of g; the bool is
// false when g has no coordinates.
func ComputeEnvelope(g *Geometry) (Envelope, bool) {
	var env Envelope
	first := true
	visit := func(p Point) {
		if first {
			env = Envelope{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
			first = false
			return
		}
		env.MinX = math.Min(env.MinX, p.X)
		env.MinY = math.Min(env.MinY, p.Y)
		env.MaxX = math.Max(env.MaxX, p.X)
		env.MaxY = math.Max(env.MaxY, p.Y)
	}
	for _, p := range g.Points {
		visit(p)
	}
	for _, part := range g.Parts {
		for _, p := range part {
			visit(p)
		}
	}
	for _, ring := range g.Rings {
		for _, p := range ring {
			visit(p)
		}
	}
	for _, rings := range g.PolygonRings {
		for _, ring := range rings {
			for _, p := range ring {
				visit(p)
			}
		}
	}
	return env, !first
}
