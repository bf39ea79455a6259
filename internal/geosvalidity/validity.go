// Package geosvalidity provides the "richer validity operator" required by
// the validation engine's Validity Adapter (C4): when a backend's fast
// IsValid/IsSimple reports a defect, this package materializes the
// geometry's WKT and asks GEOS (via github.com/twpayne/go-geos) for a
// defect reason and classifies it against an ISO 19107-style enumeration.
// It also backs the set-equality and intersection-area tests C5 needs for
// duplicate/overlap detection, since GEOS is the only pack-grounded engine
// offering those predicates.
package geosvalidity

import (
	"fmt"
	"strings"

	"github.com/twpayne/go-geos"
)

// DefectType is an ISO 19107-aligned classification of why a geometry is
// invalid or non-simple.
type DefectType int

const (
	DefectUnknown DefectType = iota
	DefectRingSelfIntersection
	DefectNestedShells
	DefectDisconnectedInterior
	DefectDuplicateRings
	DefectTooFewPoints
	DefectSelfIntersection
)

func (d DefectType) String() string {
	switch d {
	case DefectRingSelfIntersection:
		return "ring self-intersection"
	case DefectNestedShells:
		return "nested shells"
	case DefectDisconnectedInterior:
		return "disconnected interior"
	case DefectDuplicateRings:
		return "duplicate rings"
	case DefectTooFewPoints:
		return "too few points"
	case DefectSelfIntersection:
		return "self-intersection"
	default:
		return "unknown"
	}
}

// ValidityReport is the result of the richer validator.
type ValidityReport struct {
	DefectType DefectType
	Message    string
	HasLocation bool
	X, Y       float64
}

// Check parses wkt and reports the reason GEOS considers it invalid or
// non-simple. Any error (parse failure, GEOS panic) is reported as a
// DefectUnknown report with HasLocation=false, matching spec §4.4's "any
// exception in the richer validator is treated as invalid with location =
// envelope center" policy — the envelope-center fallback itself is applied
// by the caller (C4), since this package has no access to the backend
// envelope.
func Check(wkt string) (report ValidityReport) {
	defer func() {
		if recover() != nil {
			report = ValidityReport{DefectType: DefectUnknown, Message: "geos panic during validity check"}
		}
	}()

	g, err := geos.NewGeomFromWKT(wkt)
	if err != nil {
		return ValidityReport{DefectType: DefectUnknown, Message: err.Error()}
	}
	defer g.Destroy()

	if g.IsValid() {
		return ValidityReport{DefectType: DefectUnknown, Message: "valid"}
	}

	reason := g.IsValidReason()
	report = ValidityReport{DefectType: classifyReason(reason), Message: reason}

	x, y, ok := extractLocationFromReason(reason)
	if ok {
		report.HasLocation = true
		report.X, report.Y = x, y
	}
	return report
}

// classifyReason pattern-matches GEOS's free-text IsValidReason() string
// into the ISO 19107-style enumeration. GEOS does not itself classify
// defects into an enum, so this matching is necessarily heuristic and
// covers the reason strings GEOS is documented to emit.
func classifyReason(reason string) DefectType {
	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "ring self-intersection"):
		return DefectRingSelfIntersection
	case strings.Contains(lower, "self-intersection"):
		return DefectSelfIntersection
	case strings.Contains(lower, "nested shells"):
		return DefectNestedShells
	case strings.Contains(lower, "interior is disconnected"):
		return DefectDisconnectedInterior
	case strings.Contains(lower, "duplicate rings"):
		return DefectDuplicateRings
	case strings.Contains(lower, "too few points"):
		return DefectTooFewPoints
	default:
		return DefectUnknown
	}
}

// extractLocationFromReason parses the trailing "[x y]" coordinate GEOS
// appends to IsValidReason() output, when present.
func extractLocationFromReason(reason string) (x, y float64, ok bool) {
	open := strings.LastIndex(reason, "[")
	close := strings.LastIndex(reason, "]")
	if open < 0 || close < 0 || close < open {
		return 0, 0, false
	}
	coords := strings.Fields(reason[open+1 : close])
	if len(coords) != 2 {
		return 0, 0, false
	}
	var xv, yv float64
	if _, err := fmt.Sscan(coords[0], &xv); err != nil {
		return 0, 0, false
	}
	if _, err := fmt.Sscan(coords[1], &yv); err != nil {
		return 0, 0, false
	}
	return xv, yv, true
}
