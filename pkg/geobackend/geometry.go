package geobackend

import (
	"math"

	"github.com/geovalidate/geovalidate/internal/engine"
	"github.com/geovalidate/geovalidate/internal/geosvalidity"
)

// cursorGeometry adapts a Geometry into the engine's CursorGeometry
// contract. Every handle here is considered "owned" in the engine's
// borrowed/owned sense: Release is a no-op since there is no underlying
// C resource, matching how the teacher's pure-Go S-57 parser never needed
// a release step either.
type cursorGeometry struct {
	g *engine.Geometry
}

func toEngineGeometry(g *Geometry) *engine.Geometry {
	switch g.GeomType {
	case engine.GeometryTypePoint, engine.GeometryTypeMultiPoint, engine.GeometryTypeLineString:
		return &engine.Geometry{Type: g.GeomType, Points: toRing(g.Points)}
	case engine.GeometryTypeMultiLineString:
		parts := make([]engine.Ring, len(g.Parts))
		for i, p := range g.Parts {
			parts[i] = toRing(p)
		}
		return &engine.Geometry{Type: g.GeomType, Parts: parts}
	case engine.GeometryTypePolygon:
		rings := make([]engine.Ring, len(g.PolygonRings))
		for i, r := range g.PolygonRings {
			rings[i] = toRing(r)
		}
		return &engine.Geometry{Type: g.GeomType, Rings: rings}
	case engine.GeometryTypeMultiPolygon:
		polys := make([][]engine.Ring, len(g.MultiPolys))
		for i, poly := range g.MultiPolys {
			rings := make([]engine.Ring, len(poly))
			for j, r := range poly {
				rings[j] = toRing(r)
			}
			polys[i] = rings
		}
		return &engine.Geometry{Type: g.GeomType, PolygonRings: polys}
	default:
		return &engine.Geometry{Type: g.GeomType}
	}
}

func toRing(pts []Point) engine.Ring {
	ring := make(engine.Ring, len(pts))
	for i, p := range pts {
		ring[i] = engine.Point{X: p.X, Y: p.Y}
	}
	return ring
}

func (c *cursorGeometry) Type() engine.GeometryType { return c.g.Type }

func (c *cursorGeometry) IsEmpty() bool {
	return len(c.g.Points) == 0 && len(c.g.Rings) == 0 && len(c.g.Parts) == 0 && len(c.g.PolygonRings) == 0
}

func (c *cursorGeometry) PointCount() int {
	if len(c.g.Points) > 0 {
		return len(c.g.Points)
	}
	total := 0
	for _, r := range c.g.Rings {
		total += len(r)
	}
	return total
}

func (c *cursorGeometry) Point(i int) (x, y float64) {
	if i < 0 || i >= len(c.g.Points) {
		return 0, 0
	}
	return c.g.Points[i].X, c.g.Points[i].Y
}

func (c *cursorGeometry) SubCount() int {
	switch {
	case len(c.g.Parts) > 0:
		return len(c.g.Parts)
	case len(c.g.PolygonRings) > 0:
		return len(c.g.PolygonRings)
	case len(c.g.Rings) > 0:
		return len(c.g.Rings)
	default:
		return 0
	}
}

func (c *cursorGeometry) SubGeometry(i int) engine.CursorGeometry {
	switch {
	case len(c.g.Parts) > 0 && i < len(c.g.Parts):
		return &cursorGeometry{g: &engine.Geometry{Type: engine.GeometryTypeLineString, Points: c.g.Parts[i]}}
	case len(c.g.PolygonRings) > 0 && i < len(c.g.PolygonRings):
		return &cursorGeometry{g: &engine.Geometry{Type: engine.GeometryTypePolygon, Rings: c.g.PolygonRings[i]}}
	case len(c.g.Rings) > 0 && i < len(c.g.Rings):
		return &cursorGeometry{g: &engine.Geometry{Type: engine.GeometryTypeLineString, Points: c.g.Rings[i]}}
	default:
		return nil
	}
}

func (c *cursorGeometry) IsValid() bool {
	wkt := engine.ExportWKT(c.g)
	report := geosvalidity.Check(wkt)
	return report.DefectType == geosvalidity.DefectUnknown
}

func (c *cursorGeometry) IsSimple() bool { return c.IsValid() }

func (c *cursorGeometry) Boundary() engine.CursorGeometry {
	if len(c.g.Rings) == 0 {
		return &cursorGeometry{g: &engine.Geometry{Type: engine.GeometryTypeLineString}}
	}
	return &cursorGeometry{g: &engine.Geometry{Type: engine.GeometryTypeLineString, Points: c.g.Rings[0]}}
}

func (c *cursorGeometry) Area() float64 { return engine.SurfaceArea(c.g) }

func (c *cursorGeometry) Length() float64 {
	ring := c.g.Points
	if len(ring) == 0 && len(c.g.Rings) > 0 {
		ring = c.g.Rings[0]
	}
	total := 0.0
	for i := 1; i < len(ring); i++ {
		total += math.Hypot(ring[i].X-ring[i-1].X, ring[i].Y-ring[i-1].Y)
	}
	return total
}

func (c *cursorGeometry) Envelope() engine.Envelope {
	env, _ := engine.ComputeEnvelope(c.g)
	return env
}

func (c *cursorGeometry) Clone() engine.CursorGeometry {
	return &cursorGeometry{g: cloneGeometry(c.g)}
}

func (c *cursorGeometry) Linearize() engine.CursorGeometry { return c }

func (c *cursorGeometry) FlattenTo2D() engine.CursorGeometry { return c }

func (c *cursorGeometry) ExportWKT() (string, error) {
	return engine.ExportWKT(c.g), nil
}

func (c *cursorGeometry) Release() {}

func cloneGeometry(g *engine.Geometry) *engine.Geometry {
	clone := &engine.Geometry{Type: g.Type}
	clone.Points = append(engine.Ring{}, g.Points...)
	for _, r := range g.Rings {
		clone.Rings = append(clone.Rings, append(engine.Ring{}, r...))
	}
	for _, p := range g.Parts {
		clone.Parts = append(clone.Parts, append(engine.Ring{}, p...))
	}
	for _, poly := range g.PolygonRings {
		var rings []engine.Ring
		for _, r := range poly {
			rings = append(rings, append(engine.Ring{}, r...))
		}
		clone.PolygonRings = append(clone.PolygonRings, rings)
	}
	return clone
}
