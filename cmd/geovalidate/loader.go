package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/geovalidate/geovalidate/pkg/geobackend"
	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

// geojsonFeatureCollection mirrors just enough of the GeoJSON spec to
// extract feature ids, properties, and raw geometry for loadLayer. No
// pack library offers a GeoJSON decoder; stdlib encoding/json over the
// format's plain nested-array coordinate shape is the idiomatic choice.
type geojsonFeatureCollection struct {
	Type     string            `json:"type"`
	Features []geojsonFeature  `json:"features"`
}

type geojsonFeature struct {
	ID         json.Number       `json:"id"`
	Properties map[string]any    `json:"properties"`
	Geometry   geojsonGeometry   `json:"geometry"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// loadLayer reads a GeoJSON FeatureCollection file into an in-memory
// geobackend Layer, assigning sequential feature ids where the document
// has none.
func loadLayer(path string) (*geobackend.Layer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fc geojsonFeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse geojson %s: %w", path, err)
	}

	layer := &geobackend.Layer{TypeName: dominantGeometryType(fc.Features)}
	for i, gf := range fc.Features {
		fid := int64(i + 1)
		if n, err := gf.ID.Int64(); err == nil {
			fid = n
		}
		geom, err := decodeGeometry(gf.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %d geometry: %w", fid, err)
		}
		layer.Features = append(layer.Features, &geobackend.Feature{
			FeatureID:  fid,
			Geom:       geom,
			AttrValues: gf.Properties,
		})
	}
	return layer, nil
}

func dominantGeometryType(features []geojsonFeature) string {
	for _, f := range features {
		if f.Geometry.Type != "" {
			return f.Geometry.Type
		}
	}
	return "Unknown"
}

func decodeGeometry(g geojsonGeometry) (*geobackend.Geometry, error) {
	out := &geobackend.Geometry{}
	switch g.Type {
	case "Point":
		out.GeomType = geovalidate.GeometryTypePoint
		var c [2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		out.Points = []geobackend.Point{{X: c[0], Y: c[1]}}
	case "MultiPoint":
		out.GeomType = geovalidate.GeometryTypeMultiPoint
		var c [][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		out.Points = coordsToPoints(c)
	case "LineString":
		out.GeomType = geovalidate.GeometryTypeLineString
		var c [][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		out.Points = coordsToPoints(c)
	case "MultiLineString":
		out.GeomType = geovalidate.GeometryTypeMultiLineString
		var c [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		for _, line := range c {
			out.Parts = append(out.Parts, coordsToPoints(line))
		}
	case "Polygon":
		out.GeomType = geovalidate.GeometryTypePolygon
		var c [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		for _, ring := range c {
			out.PolygonRings = append(out.PolygonRings, coordsToPoints(ring))
		}
	case "MultiPolygon":
		out.GeomType = geovalidate.GeometryTypeMultiPolygon
		var c [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, err
		}
		for _, poly := range c {
			var rings [][]geobackend.Point
			for _, ring := range poly {
				rings = append(rings, coordsToPoints(ring))
			}
			out.MultiPolys = append(out.MultiPolys, rings)
		}
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	return out, nil
}

func coordsToPoints(c [][2]float64) []geobackend.Point {
	pts := make([]geobackend.Point, len(c))
	for i, xy := range c {
		pts[i] = geobackend.Point{X: xy[0], Y: xy[1]}
	}
	return pts
}
