package geosvalidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReason(t *testing.T) {
	tests := []struct {
		reason string
		want   DefectType
	}{
		{"Self-intersection at or near point 5 10", DefectSelfIntersection},
		{"Ring Self-intersection at 0 0", DefectRingSelfIntersection},
		{"Holes are nested shells", DefectNestedShells},
		{"Interior is disconnected at 1 1", DefectDisconnectedInterior},
		{"Duplicate Rings at 2 2", DefectDuplicateRings},
		{"Too few points in geometry component", DefectTooFewPoints},
		{"something GEOS has never documented", DefectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyReason(tt.reason))
		})
	}
}

func TestExtractLocationFromReason(t *testing.T) {
	x, y, ok := extractLocationFromReason("Self-intersection at or near point [5.5 10.25]")
	assert.True(t, ok)
	assert.InDelta(t, 5.5, x, 1e-9)
	assert.InDelta(t, 10.25, y, 1e-9)

	_, _, ok = extractLocationFromReason("Self-intersection with no coordinates attached")
	assert.False(t, ok)
}

func TestDefectTypeString(t *testing.T) {
	assert.Equal(t, "self-intersection", DefectSelfIntersection.String())
	assert.Equal(t, "unknown", DefectType(99).String())
}
