package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSliverScenario(t *testing.T) {
	// Concrete scenario 3: rectangle 100 x 0.05.
	rect := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{
		{
			{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 0.05}, {X: 0, Y: 0.05}, {X: 0, Y: 0},
		},
	}}
	criteria := GeometryCriteria{
		SliverArea:       10,
		SliverShapeIndex: 0.1,
		SliverElongation: 50,
	}

	area := SurfaceArea(rect)
	assert.InDelta(t, 5.0, area, 1e-6)

	assert.True(t, IsSliver(rect, criteria))
}

func TestIsSliverFalseWhenNonPolygonal(t *testing.T) {
	line := &Geometry{Type: GeometryTypeLineString, Points: Ring{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	assert.False(t, IsSliver(line, DefaultGeometryCriteria()))
}

func TestIsSliverFalseWhenShapeIndexAboveThreshold(t *testing.T) {
	square := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}},
	}}
	criteria := GeometryCriteria{SliverArea: 100, SliverShapeIndex: 0.1, SliverElongation: 50}
	assert.False(t, IsSliver(square, criteria))
}

func TestDetectSpikeScenario(t *testing.T) {
	// Concrete scenario 4: spike at vertex index 3, angle ~= 0.23 degrees.
	ring := Ring{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 5, Y: 10.01}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	geom := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{ring}}

	result, found := DetectSpike(geom, 10)
	assert.True(t, found)
	assert.Equal(t, 3, result.VertexIndex)
	assert.InDelta(t, 0.23, result.AngleDeg, 0.05)
}

func TestDetectSpikeNotFoundAboveThreshold(t *testing.T) {
	ring := Ring{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}
	geom := &Geometry{Type: GeometryTypePolygon, Rings: []Ring{ring}}

	_, found := DetectSpike(geom, 10)
	assert.False(t, found)
}

func square(offsetX float64) Ring {
	return Ring{
		{X: 0 + offsetX, Y: 0}, {X: 10 + offsetX, Y: 0},
		{X: 10 + offsetX, Y: 10}, {X: 0 + offsetX, Y: 10}, {X: 0 + offsetX, Y: 0},
	}
}

func TestDetectSelfOverlapFindsOverlappingParts(t *testing.T) {
	geom := &Geometry{Type: GeometryTypeMultiPolygon, PolygonRings: [][]Ring{
		{square(0)},
		{square(5)},
	}}

	at, found := DetectSelfOverlap(geom, 0.01)
	assert.True(t, found)
	assert.InDelta(t, 7.5, at.X, 0.5)
	assert.InDelta(t, 5.0, at.Y, 0.5)
}

func TestDetectSelfOverlapFalseForDisjointParts(t *testing.T) {
	geom := &Geometry{Type: GeometryTypeMultiPolygon, PolygonRings: [][]Ring{
		{square(0)},
		{square(1000)},
	}}

	_, found := DetectSelfOverlap(geom, 0.01)
	assert.False(t, found)
}

func TestDetectSelfOverlapFalseForSinglePartPolygon(t *testing.T) {
	geom := &Geometry{Type: GeometryTypeMultiPolygon, PolygonRings: [][]Ring{
		{square(0)},
	}}

	_, found := DetectSelfOverlap(geom, 0.01)
	assert.False(t, found)
}
