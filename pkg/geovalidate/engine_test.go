package geovalidate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geovalidate/geovalidate/pkg/geobackend"
	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

func TestValidateShortLineScenario(t *testing.T) {
	// Concrete scenario 1: LineString (0,0)-(0,0.4), min_line_length=1.0,
	// expect exactly one LOG_TOP_GEO_005 at (0,0).
	layer := &geobackend.Layer{
		TypeName: "LineString",
		Features: []*geobackend.Feature{
			{
				FeatureID: 1,
				Geom: &geobackend.Geometry{
					GeomType: geovalidate.GeometryTypeLineString,
					Points:   []geobackend.Point{{X: 0, Y: 0}, {X: 0, Y: 0.4}},
				},
			},
		},
	}

	ds := geobackend.NewDataset()
	ds.Layers["lines"] = layer

	criteria := geovalidate.DefaultGeometryCriteria()
	criteria.MinLineLength = 1.0

	checks := geovalidate.CheckConfig{ShortObject: true}

	eng := geovalidate.NewEngine()
	result, err := eng.Validate(context.Background(), ds, geovalidate.Request{
		FilePath:  "test.geojson",
		LayerID:   "lines",
		TableName: "roads",
		Criteria:  criteria,
		Checks:    checks,
	})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, geovalidate.ErrCodeShortLine, result.Errors[0].ErrorCode)
	assert.Equal(t, 1, result.ErrorCount)
	assert.False(t, result.IsValid)
}

func TestValidateMissingLayerReturnsWarningNotError(t *testing.T) {
	ds := geobackend.NewDataset()
	eng := geovalidate.NewEngine()

	result, err := eng.Validate(context.Background(), ds, geovalidate.Request{
		FilePath: "test.geojson",
		LayerID:  "missing",
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateSelfIntersectingBowTieScenario(t *testing.T) {
	// Concrete scenario 2: a bow-tie polygon whose edges cross is reported
	// as LOG_TOP_GEO_003 by the self-intersection check.
	layer := &geobackend.Layer{
		TypeName: "Polygon",
		Features: []*geobackend.Feature{
			{
				FeatureID: 1,
				Geom: &geobackend.Geometry{
					GeomType: geovalidate.GeometryTypePolygon,
					PolygonRings: [][]geobackend.Point{
						{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 0}},
					},
				},
			},
		},
	}

	ds := geobackend.NewDataset()
	ds.Layers["polygons"] = layer

	checks := geovalidate.CheckConfig{SelfIntersection: true}

	eng := geovalidate.NewEngine()
	result, err := eng.Validate(context.Background(), ds, geovalidate.Request{
		FilePath:  "test.geojson",
		LayerID:   "polygons",
		TableName: "parcels",
		Criteria:  geovalidate.DefaultGeometryCriteria(),
		Checks:    checks,
	})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, geovalidate.ErrCodeInvalidSelfIntersect, result.Errors[0].ErrorCode)
	assert.False(t, result.IsValid)
}

func TestValidateCleanLayerProducesNoErrors(t *testing.T) {
	layer := &geobackend.Layer{
		TypeName: "LineString",
		Features: []*geobackend.Feature{
			{
				FeatureID: 1,
				Geom: &geobackend.Geometry{
					GeomType: geovalidate.GeometryTypeLineString,
					Points:   []geobackend.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
				},
			},
		},
	}
	ds := geobackend.NewDataset()
	ds.Layers["lines"] = layer

	criteria := geovalidate.DefaultGeometryCriteria()
	criteria.MinLineLength = 1.0
	checks := geovalidate.CheckConfig{ShortObject: true}

	eng := geovalidate.NewEngine()
	result, err := eng.Validate(context.Background(), ds, geovalidate.Request{
		FilePath:  "test.geojson",
		LayerID:   "lines",
		TableName: "roads",
		Criteria:  criteria,
		Checks:    checks,
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Equal(t, 0, result.ErrorCount)
}
