package geosvalidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square0 = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
const squareShifted = "POLYGON ((0.1 0, 10.1 0, 10.1 10, 0.1 10, 0.1 0))"
const squareFarAway = "POLYGON ((1000 1000, 1010 1000, 1010 1010, 1000 1010, 1000 1000))"
const smallerInterior = "POLYGON ((2 2, 8 2, 8 8, 2 8, 2 2))"

func TestSetEqualIdenticalSquares(t *testing.T) {
	equal, err := SetEqual(square0, square0, 1e-6)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSetEqualShiftedSquareNotEqual(t *testing.T) {
	// Area is preserved under a pure translation, but the intersection of
	// the two squares has area 99 against 100 for each, so SetEqual tells
	// the shifted square apart from the original.
	equal, err := SetEqual(square0, squareShifted, 1e-6)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSetEqualDisjointSquaresNotEqual(t *testing.T) {
	equal, err := SetEqual(square0, squareFarAway, 1e-6)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSetEqualReturnsErrorOnMalformedWKT(t *testing.T) {
	_, err := SetEqual("not wkt", square0, 1e-6)
	assert.Error(t, err)
}

func TestContainsReportsFullyNestedPolygon(t *testing.T) {
	contains, err := Contains(square0, smallerInterior)
	require.NoError(t, err)
	assert.True(t, contains)
}

func TestContainsFalseForDisjointPolygons(t *testing.T) {
	contains, err := Contains(square0, squareFarAway)
	require.NoError(t, err)
	assert.False(t, contains)
}

func TestIntersectionAreaAndCentroidOverlappingSquares(t *testing.T) {
	area, cx, cy, has, err := IntersectionAreaAndCentroid(square0, squareShifted)
	require.NoError(t, err)
	assert.True(t, has)
	assert.InDelta(t, 99.0, area, 0.5)
	// intersection is the strip x in [0.1,10], y in [0,10]
	assert.InDelta(t, 5.05, cx, 0.1)
	assert.InDelta(t, 5.0, cy, 0.1)
}

func TestIntersectionAreaAndCentroidDisjointSquares(t *testing.T) {
	_, _, _, has, err := IntersectionAreaAndCentroid(square0, squareFarAway)
	require.NoError(t, err)
	assert.False(t, has)
}
