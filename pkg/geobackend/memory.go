// Package geobackend is an in-memory reference implementation of the
// geovalidate.Dataset/Layer/Feature/Geometry contract, for tests and
// standalone callers that have no existing dataset abstraction of their
// own. It mirrors the accessor-method shape of the teacher's pkg/s57.Chart
// and its epsilon-padded rtreego spatial index.
package geobackend

import (
	"context"
	"io"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

// Point is a plain 2D coordinate used to build in-memory geometries.
type Point struct {
	X, Y float64
}

// Geometry is a fully in-memory geometry value: Points for Point,
// MultiPoint and LineString coordinates, PolygonRings for a Polygon's
// exterior+holes, MultiPolys for each MultiPolygon member's rings, and
// Parts for MultiLineString members.
type Geometry struct {
	GeomType     geovalidate.GeometryType
	Points       []Point
	PolygonRings [][]Point
	MultiPolys   [][][]Point
	Parts        [][]Point
}

// Feature is one in-memory record: an id, a geometry, and attributes.
type Feature struct {
	FeatureID  int64
	Geom       *Geometry
	AttrValues map[string]any
}

// Dataset is an in-memory collection of named layers.
type Dataset struct {
	Layers map[string]*Layer
}

// NewDataset returns an empty Dataset ready to receive layers.
func NewDataset() *Dataset {
	return &Dataset{Layers: map[string]*Layer{}}
}

func (d *Dataset) Layer(name string) (geovalidate.Layer, error) {
	l, ok := d.Layers[name]
	if !ok {
		return nil, nil
	}
	return l, nil
}

func (d *Dataset) Close() error { return nil }

// Layer is an in-memory, resettable feature cursor plus a lazily-built
// rtreego spatial index over feature envelopes, for FeaturesInBounds-style
// queries by callers that want to pre-filter before validating.
type Layer struct {
	TypeName string
	Features []*Feature

	cursor int
	index  *rtreego.Rtree
}

func (l *Layer) FeatureCount(ctx context.Context, forceScan bool) (int, error) {
	return len(l.Features), nil
}

func (l *Layer) Reset() error {
	l.cursor = 0
	return nil
}

func (l *Layer) NextFeature() (geovalidate.Feature, error) {
	if l.cursor >= len(l.Features) {
		return nil, io.EOF
	}
	f := l.Features[l.cursor]
	l.cursor++
	return &cursorFeature{f: f}, nil
}

func (l *Layer) SetAttributeFilter(expr string) error { return nil }

func (l *Layer) SetIgnoredFields(fields []string) error { return nil }

func (l *Layer) GeometryTypeName() string { return l.TypeName }

// EnsureIndex builds the rtreego index over feature envelopes on first
// use, matching the teacher's buildSpatialIndex deferred-construction
// pattern.
func (l *Layer) EnsureIndex() {
	if l.index != nil {
		return
	}
	tree := rtreego.NewTree(2, 25, 50)
	for _, f := range l.Features {
		env := envelopeOf(f.Geom)
		tree.Insert(&indexedFeature{fid: f.FeatureID, env: env})
	}
	l.index = tree
}

// FeaturesInBounds returns features whose envelope intersects the given
// box, building the index on first call.
func (l *Layer) FeaturesInBounds(minX, minY, maxX, maxY float64) []*Feature {
	l.EnsureIndex()
	w := math.Max(maxX-minX, boundsEpsilon)
	h := math.Max(maxY-minY, boundsEpsilon)
	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
	hits := l.index.SearchIntersect(rect)

	byFID := make(map[int64]*Feature, len(l.Features))
	for _, f := range l.Features {
		byFID[f.FeatureID] = f
	}
	out := make([]*Feature, 0, len(hits))
	for _, hit := range hits {
		if f, ok := byFID[hit.(*indexedFeature).fid]; ok {
			out = append(out, f)
		}
	}
	return out
}

// cursorFeature adapts a Feature into the engine's CursorFeature contract.
type cursorFeature struct {
	f *Feature
}

func (c *cursorFeature) FID() int64 { return c.f.FeatureID }

func (c *cursorFeature) Geometry() geovalidate.Geometry {
	if c.f.Geom == nil {
		return nil
	}
	return &cursorGeometry{g: toEngineGeometry(c.f.Geom)}
}

func (c *cursorFeature) Attributes() map[string]any { return c.f.AttrValues }

func (c *cursorFeature) Release() {}

type indexedFeature struct {
	fid int64
	env [4]float64 // minX, minY, maxX, maxY
}

const boundsEpsilon = 1e-7

func (f *indexedFeature) Bounds() rtreego.Rect {
	minX, minY, maxX, maxY := f.env[0], f.env[1], f.env[2], f.env[3]
	w := math.Max(maxX-minX, boundsEpsilon)
	h := math.Max(maxY-minY, boundsEpsilon)
	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
	return rect
}

func envelopeOf(g *Geometry) [4]float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visit := func(pts []Point) {
		for _, p := range pts {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	visit(g.Points)
	for _, r := range g.PolygonRings {
		visit(r)
	}
	for _, poly := range g.MultiPolys {
		for _, r := range poly {
			visit(r)
		}
	}
	for _, p := range g.Parts {
		visit(p)
	}
	return [4]float64{minX, minY, maxX, maxY}
}
