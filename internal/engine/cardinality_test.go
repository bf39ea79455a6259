package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCardinalityPoint(t *testing.T) {
	valid := &Geometry{Type: GeometryTypePoint, Points: Ring{{X: 1, Y: 1}}}
	res := EvaluateCardinality(valid, 1e-7)
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Required)

	empty := &Geometry{Type: GeometryTypePoint}
	res = EvaluateCardinality(empty, 1e-7)
	assert.False(t, res.Valid)
}

func TestEvaluateCardinalityLineString(t *testing.T) {
	short := &Geometry{Type: GeometryTypeLineString, Points: Ring{{X: 0, Y: 0}}}
	res := EvaluateCardinality(short, 1e-7)
	assert.False(t, res.Valid)
	assert.Equal(t, 2, res.Required)
	assert.Contains(t, res.Detail, "라인스트링")

	ok := &Geometry{Type: GeometryTypeLineString, Points: Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	res = EvaluateCardinality(ok, 1e-7)
	assert.True(t, res.Valid)
}

func TestEvaluateCardinalityPolygonRequiresClosedRing(t *testing.T) {
	unclosed := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	}}
	res := EvaluateCardinality(unclosed, 1e-7)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Detail, "폐합되지 않았습니다")
}

func TestEvaluateCardinalityPolygonValid(t *testing.T) {
	triangle := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}},
	}}
	res := EvaluateCardinality(triangle, 1e-7)
	assert.True(t, res.Valid)
	assert.Equal(t, 3, res.Required)
}
