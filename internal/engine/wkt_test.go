package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportWKTPerGeometryType(t *testing.T) {
	tests := []struct {
		name string
		geom *Geometry
		want string
	}{
		{"point", &Geometry{Type: GeometryTypePoint, Points: Ring{{X: 1, Y: 2}}}, "POINT (1 2)"},
		{"empty point", &Geometry{Type: GeometryTypePoint}, "POINT EMPTY"},
		{"linestring", &Geometry{Type: GeometryTypeLineString, Points: Ring{{X: 0, Y: 0}, {X: 1, Y: 1}}}, "LINESTRING (0 0, 1 1)"},
		{"empty linestring", &Geometry{Type: GeometryTypeLineString}, "LINESTRING EMPTY"},
		{
			"multilinestring",
			&Geometry{Type: GeometryTypeMultiLineString, Parts: []Ring{{{X: 0, Y: 0}, {X: 1, Y: 0}}, {{X: 2, Y: 0}, {X: 3, Y: 0}}}},
			"MULTILINESTRING ((0 0, 1 0), (2 0, 3 0))",
		},
		{
			"polygon",
			&Geometry{Type: GeometryTypePolygon, Rings: []Ring{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}},
			"POLYGON ((0 0, 1 0, 1 1, 0 0))",
		},
		{"empty polygon", &Geometry{Type: GeometryTypePolygon}, "POLYGON EMPTY"},
		{
			"multipolygon",
			&Geometry{Type: GeometryTypeMultiPolygon, PolygonRings: [][]Ring{
				{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
			}},
			"MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportWKT(tt.geom))
		})
	}
}

func TestPointWKT(t *testing.T) {
	assert.Equal(t, "POINT (3 4)", PointWKT(Point{X: 3, Y: 4}))
}

func TestGapLineWKT(t *testing.T) {
	assert.Equal(t, "LINESTRING (10 0, 10.5 0)", GapLineWKT(Point{X: 10, Y: 0}, Point{X: 10.5, Y: 0}))
}
