package geosvalidity

import "github.com/twpayne/go-geos"

// SetEqual reports whether the two WKT geometries are set-equal (equal as
// topological point sets), computed as area(A) ≈ area(B) ≈ area(A∩B)
// within tol. go-geos exposes no direct Equals predicate in the grounding
// source, so equality is derived from Area+Intersection, both directly
// observed there.
func SetEqual(wktA, wktB string, tol float64) (equal bool, err error) {
	defer func() {
		if recover() != nil {
			equal, err = false, errPanic("geos panic during equality check")
		}
	}()

	a, err := geos.NewGeomFromWKT(wktA)
	if err != nil {
		return false, err
	}
	defer a.Destroy()
	b, err := geos.NewGeomFromWKT(wktB)
	if err != nil {
		return false, err
	}
	defer b.Destroy()

	areaA := a.Area()
	areaB := b.Area()
	if abs(areaA-areaB) > tol {
		return false, nil
	}

	inter := a.Intersection(b)
	if inter == nil {
		return areaA <= tol && areaB <= tol, nil
	}
	defer inter.Destroy()
	areaInter := inter.Area()

	return abs(areaInter-areaA) <= tol && abs(areaInter-areaB) <= tol, nil
}

// IntersectionAreaAndCentroid returns area(A∩B) and, when the intersection
// is non-empty, its envelope center as an approximation of its centroid
// (go-geos exposes no direct Centroid call in the grounding source, so the
// envelope center of the intersection itself is used; the caller's further
// fallback to the envelope center of A, per spec §4.5, only applies when
// there is no intersection at all).
func IntersectionAreaAndCentroid(wktA, wktB string) (area, centroidX, centroidY float64, hasIntersection bool, err error) {
	defer func() {
		if recover() != nil {
			err = errPanic("geos panic during intersection check")
		}
	}()

	a, err := geos.NewGeomFromWKT(wktA)
	if err != nil {
		return 0, 0, 0, false, err
	}
	defer a.Destroy()
	b, err := geos.NewGeomFromWKT(wktB)
	if err != nil {
		return 0, 0, 0, false, err
	}
	defer b.Destroy()

	inter := a.Intersection(b)
	if inter == nil || inter.IsEmpty() {
		return 0, 0, 0, false, nil
	}
	defer inter.Destroy()

	bounds := inter.Bounds()
	cx := (bounds.MinX + bounds.MaxX) / 2
	cy := (bounds.MinY + bounds.MaxY) / 2
	return inter.Area(), cx, cy, true, nil
}

// Contains reports whether a contains b, used by C5's overlap test to
// exclude pairs where one feature fully contains the other (those are
// reported, if at all, by a separate polygon-in-polygon check, not
// overlap).
func Contains(wktA, wktB string) (contains bool, err error) {
	defer func() {
		if recover() != nil {
			contains, err = false, errPanic("geos panic during contains check")
		}
	}()
	a, err := geos.NewGeomFromWKT(wktA)
	if err != nil {
		return false, err
	}
	defer a.Destroy()
	b, err := geos.NewGeomFromWKT(wktB)
	if err != nil {
		return false, err
	}
	defer b.Destroy()

	areaB := b.Area()
	if areaB <= 0 {
		return false, nil
	}
	inter := a.Intersection(b)
	if inter == nil {
		return false, nil
	}
	defer inter.Destroy()
	return abs(inter.Area()-areaB) <= areaB*1e-9, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

type errPanic string

func (e errPanic) Error() string { return string(e) }
