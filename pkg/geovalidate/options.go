package geovalidate

import (
	"fmt"

	"github.com/geovalidate/geovalidate/internal/engine"
)

// GeometryCriteria holds the positive-real configuration thresholds that
// drive the shape-quality and network checks.
type GeometryCriteria = engine.GeometryCriteria

// DefaultGeometryCriteria returns permissive thresholds; callers are
// expected to override per-dataset scale.
func DefaultGeometryCriteria() GeometryCriteria {
	return engine.DefaultGeometryCriteria()
}

// CheckConfig gates each check category. The caller composes these; the
// engine never infers them.
type CheckConfig = engine.CheckConfig

// ParseYN coerces the "Y"/"N" string convention used when CheckConfig is
// sourced from external configuration (§6.3).
func ParseYN(s string) (bool, error) {
	switch s {
	case "Y", "y":
		return true, nil
	case "N", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid Y/N value %q", s)
	}
}
