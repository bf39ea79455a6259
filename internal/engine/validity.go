package engine

import "github.com/geovalidate/geovalidate/internal/geosvalidity"

// ValidityFinding is the outcome of the Validity Adapter (C4).
type ValidityFinding struct {
	Invalid    bool
	NonSimple  bool
	DefectType string
	Message    string
	At         Point
}

// BackendValidity is the subset of the borrowed-geometry backend the
// Validity Adapter needs: native fast-path IsValid/IsSimple, already
// computed by the caller against the cursor-borrowed handle.
type BackendValidity struct {
	IsValid  bool
	IsSimple bool
}

// EvaluateValidity bridges the backend's fast IsValid/IsSimple to a
// detailed error-location extraction, per spec §4.4. wkt and envelope
// belong to the working (owned, flattened) geometry, or to the borrowed
// handle when the scanner skips the clone (runValidityOnly).
func EvaluateValidity(bv BackendValidity, wkt string, env Envelope, firstVertex Point, hasFirstVertex bool) (*ValidityFinding, bool) {
	if bv.IsValid && bv.IsSimple {
		return nil, false
	}

	report := safeCheck(wkt)

	loc := env.Center()
	if report.HasLocation {
		loc = Point{X: report.X, Y: report.Y}
	} else if !bv.IsSimple && hasFirstVertex {
		loc = firstVertex
	}

	return &ValidityFinding{
		Invalid:   !bv.IsValid,
		NonSimple: !bv.IsSimple,
		DefectType: report.DefectType.String(),
		Message:    report.Message,
		At:         loc,
	}, true
}

// safeCheck recovers from any panic inside the GEOS call, treating the
// geometry as invalid with no location, per spec §4.4's "any exception...
// is treated as invalid" rule.
func safeCheck(wkt string) (report geosvalidity.ValidityReport) {
	defer func() {
		if recover() != nil {
			report = geosvalidity.ValidityReport{}
		}
	}()
	return geosvalidity.Check(wkt)
}
