package engine

// Materialize walks a CursorGeometry (already cloned, linearized, and
// flattened to 2D by the caller) into the engine's pure-Go Geometry value
// that the analyzers operate on.
func Materialize(g CursorGeometry) *Geometry {
	out := &Geometry{Type: g.Type()}

	switch out.Type {
	case GeometryTypePoint, GeometryTypeLineString:
		out.Points = readRing(g)

	case GeometryTypeMultiPoint, GeometryTypeMultiLineString:
		n := g.SubCount()
		out.Parts = make([]Ring, 0, n)
		for i := 0; i < n; i++ {
			sub := g.SubGeometry(i)
			out.Parts = append(out.Parts, readRing(sub))
		}

	case GeometryTypePolygon:
		out.Rings = readPolygonRings(g)

	case GeometryTypeMultiPolygon:
		n := g.SubCount()
		out.PolygonRings = make([][]Ring, 0, n)
		for i := 0; i < n; i++ {
			sub := g.SubGeometry(i)
			out.PolygonRings = append(out.PolygonRings, readPolygonRings(sub))
		}
	}

	return out
}

func readRing(g CursorGeometry) Ring {
	n := g.PointCount()
	ring := make(Ring, n)
	for i := 0; i < n; i++ {
		x, y := g.Point(i)
		ring[i] = Point{X: x, Y: y}
	}
	return ring
}

// readPolygonRings reads a single polygon's exterior (sub 0) and holes
// (sub 1..) via SubGeometry, the convention used throughout the backend
// contract for ring access on a Polygon-typed geometry.
func readPolygonRings(g CursorGeometry) []Ring {
	n := g.SubCount()
	rings := make([]Ring, 0, n)
	for i := 0; i < n; i++ {
		rings = append(rings, readRing(g.SubGeometry(i)))
	}
	return rings
}
