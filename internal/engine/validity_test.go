package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateValidityShortCircuitsWhenBackendReportsClean(t *testing.T) {
	finding, has := EvaluateValidity(BackendValidity{IsValid: true, IsSimple: true}, "POLYGON ((0 0, 1 0, 1 1, 0 1, 0 0))", Envelope{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, Point{}, false)
	assert.False(t, has)
	assert.Nil(t, finding)
}

func TestEvaluateValidityFallsBackToEnvelopeCenterWithoutLocation(t *testing.T) {
	// A malformed WKT string cannot be parsed by the richer validator, so
	// safeCheck returns a DefectUnknown report carrying the parse error,
	// with HasLocation=false, and the envelope center is used per the
	// documented fallback.
	finding, has := EvaluateValidity(BackendValidity{IsValid: false, IsSimple: true}, "not wkt at all", Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, Point{}, false)
	assert.True(t, has)
	assert.True(t, finding.Invalid)
	assert.False(t, finding.NonSimple)
	assert.Equal(t, Point{X: 5, Y: 5}, finding.At)
}

func TestEvaluateValidityPrefersFirstVertexWhenNonSimpleAndNoLocation(t *testing.T) {
	finding, has := EvaluateValidity(BackendValidity{IsValid: true, IsSimple: false}, "not wkt at all", Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, Point{X: 3, Y: 4}, true)
	assert.True(t, has)
	assert.False(t, finding.Invalid)
	assert.True(t, finding.NonSimple)
	assert.Equal(t, Point{X: 3, Y: 4}, finding.At)
}

func TestEvaluateValiditySelfIntersectingBowTieScenario(t *testing.T) {
	// Concrete scenario 2: a bow-tie polygon whose two edges cross is
	// reported invalid by GEOS with a self-intersection reason; C4 surfaces
	// it as LOG_TOP_GEO_003 via the caller in scanner.go, exercised
	// end-to-end in pkg/geovalidate/engine_test.go.
	bowTie := &Geometry{
		Type:  GeometryTypePolygon,
		Rings: []Ring{{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 0}}},
	}
	wkt := ExportWKT(bowTie)
	env, _ := ComputeEnvelope(bowTie)

	finding, has := EvaluateValidity(BackendValidity{IsValid: false, IsSimple: false}, wkt, env, Point{X: 0, Y: 0}, true)
	assert.True(t, has)
	assert.True(t, finding.Invalid)
}
