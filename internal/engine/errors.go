package engine

import "fmt"

// ErrCursorAnomaly describes the cursor yielding the same fid twice within
// a single sweep (spec §4.7's processed_fids guard); the scanner records
// its message as a warning and skips the feature.
type ErrCursorAnomaly struct {
	FID int64
}

func (e *ErrCursorAnomaly) Error() string {
	return fmt.Sprintf("feature %d already processed in this sweep", e.FID)
}

// ErrEmptyGeometry marks a working geometry that flattened to nothing.
type ErrEmptyGeometry struct {
	FID int64
}

func (e *ErrEmptyGeometry) Error() string {
	return fmt.Sprintf("feature %d flattened to an empty geometry", e.FID)
}
