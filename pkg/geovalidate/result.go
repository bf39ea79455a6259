package geovalidate

import "github.com/geovalidate/geovalidate/internal/engine"

// ValidationError is one reported defect, pinpointed to a feature and a
// coordinate (§3).
type ValidationError = engine.ValidationError

// Severity classifies a ValidationError.
type Severity = engine.Severity

const (
	SeverityError   = engine.SeverityError
	SeverityWarning = engine.SeverityWarning
	SeverityInfo    = engine.SeverityInfo
)

// Stable error codes, part of the external contract (§3).
const (
	ErrCodeDuplicate            = engine.ErrCodeDuplicate
	ErrCodeOverlap              = engine.ErrCodeOverlap
	ErrCodeInvalidSelfIntersect = engine.ErrCodeInvalidSelfIntersect
	ErrCodeSliver               = engine.ErrCodeSliver
	ErrCodeShortLine            = engine.ErrCodeShortLine
	ErrCodeSmallArea            = engine.ErrCodeSmallArea
	ErrCodeInsufficientVertices = engine.ErrCodeInsufficientVertices
	ErrCodeSpike                = engine.ErrCodeSpike
	ErrCodeUndershoot           = engine.ErrCodeUndershoot
	ErrCodeOvershoot            = engine.ErrCodeOvershoot
)

// Result is the public outcome of a Validate call (§6.4). In streaming
// mode Errors is empty and the caller consumes the on-disk batch file at
// StreamPath.
type Result struct {
	IsValid       bool
	Errors        []ValidationError
	ErrorCount    int
	WarningCount  int
	SkippedCount  int
	Message       string
	Cancelled     bool
	StreamPath    string
}
