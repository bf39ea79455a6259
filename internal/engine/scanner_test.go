package engine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeometry is a minimal CursorGeometry double for exercising the
// scanner's clone/linearize/flatten/release discipline without a real
// backend. Every method that would normally touch a C resource instead
// records a call against releases, a shared release-count tracker.
type fakeGeometry struct {
	empty      bool
	releases   *int
	sameOnLin  bool
	sameOnFlat bool
	gtype      GeometryType
	pts        []Point
	parts      [][]Point
}

func (g *fakeGeometry) Type() GeometryType {
	if g.gtype == GeometryTypeUnknown {
		return GeometryTypePoint
	}
	return g.gtype
}
func (g *fakeGeometry) IsEmpty() bool { return g.empty }
func (g *fakeGeometry) PointCount() int {
	if g.pts != nil {
		return len(g.pts)
	}
	return 1
}
func (g *fakeGeometry) Point(i int) (float64, float64) {
	if g.pts != nil && i < len(g.pts) {
		return g.pts[i].X, g.pts[i].Y
	}
	return 0, 0
}
func (g *fakeGeometry) SubGeometry(i int) CursorGeometry {
	if g.parts == nil || i >= len(g.parts) {
		return nil
	}
	return &fakeGeometry{gtype: GeometryTypeLineString, pts: g.parts[i], releases: g.releases}
}
func (g *fakeGeometry) SubCount() int {
	return len(g.parts)
}
func (g *fakeGeometry) IsValid() bool              { return true }
func (g *fakeGeometry) IsSimple() bool             { return true }
func (g *fakeGeometry) Boundary() CursorGeometry   { return g }
func (g *fakeGeometry) Area() float64              { return 0 }
func (g *fakeGeometry) Length() float64            { return 0 }
func (g *fakeGeometry) Envelope() Envelope         { return Envelope{} }
func (g *fakeGeometry) ExportWKT() (string, error) { return "POINT (0 0)", nil }
func (g *fakeGeometry) Release()                   { *g.releases++ }

func (g *fakeGeometry) clone() *fakeGeometry {
	return &fakeGeometry{empty: g.empty, releases: g.releases, gtype: g.gtype, pts: g.pts, parts: g.parts}
}

func (g *fakeGeometry) Clone() CursorGeometry {
	return g.clone()
}

func (g *fakeGeometry) Linearize() CursorGeometry {
	if g.sameOnLin {
		return g
	}
	return g.clone()
}

func (g *fakeGeometry) FlattenTo2D() CursorGeometry {
	if g.sameOnFlat {
		return g
	}
	return g.clone()
}

type fakeFeature struct {
	fid      int64
	geom     CursorGeometry
	released *int
}

func (f *fakeFeature) FID() int64                  { return f.fid }
func (f *fakeFeature) Geometry() CursorGeometry     { return f.geom }
func (f *fakeFeature) Attributes() map[string]any   { return nil }
func (f *fakeFeature) Release()                     { *f.released++ }

// fakeLayer serves a fixed slice of features, then io.EOF, and supports
// Reset like a real cursor.
type fakeLayer struct {
	features []CursorFeature
	pos      int
}

func (l *fakeLayer) FeatureCount(ctx context.Context, forceScan bool) (int, error) {
	return len(l.features), nil
}
func (l *fakeLayer) Reset() error                        { l.pos = 0; return nil }
func (l *fakeLayer) SetAttributeFilter(expr string) error { return nil }
func (l *fakeLayer) SetIgnoredFields(fields []string) error { return nil }
func (l *fakeLayer) GeometryTypeName() string             { return "Point" }

func (l *fakeLayer) NextFeature() (CursorFeature, error) {
	if l.pos >= len(l.features) {
		return nil, io.EOF
	}
	f := l.features[l.pos]
	l.pos++
	return f, nil
}

// infiniteLayer never exhausts, for exercising the iteration safety bound.
type infiniteLayer struct {
	next func() CursorFeature
}

func (l *infiniteLayer) FeatureCount(ctx context.Context, forceScan bool) (int, error) { return 0, nil }
func (l *infiniteLayer) Reset() error                                                   { return nil }
func (l *infiniteLayer) SetAttributeFilter(expr string) error                           { return nil }
func (l *infiniteLayer) SetIgnoredFields(fields []string) error                         { return nil }
func (l *infiniteLayer) GeometryTypeName() string                                       { return "Point" }
func (l *infiniteLayer) NextFeature() (CursorFeature, error)                            { return l.next(), nil }

func TestScanDedupesRepeatedFID(t *testing.T) {
	released := 0
	geomReleases := 0
	layer := &fakeLayer{features: []CursorFeature{
		&fakeFeature{fid: 1, geom: &fakeGeometry{releases: &geomReleases}, released: &released},
		&fakeFeature{fid: 1, geom: &fakeGeometry{empty: true, releases: &geomReleases}, released: &released},
	}}

	result, err := Scan(context.Background(), layer, DefaultGeometryCriteria(), CheckConfig{}, 2, "t1", "roads")
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Empty(t, result.Errors[0].ErrorCode)
	assert.Equal(t, SeverityWarning, result.Errors[0].Severity)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 2, released, "both cursor handles must be released even on the dedup path")
}

func TestScanSafetyBoundStopsAtExpectedIterations(t *testing.T) {
	released := 0
	geomReleases := 0
	served := 0
	layer := &infiniteLayer{next: func() CursorFeature {
		served++
		return &fakeFeature{fid: int64(served), geom: &fakeGeometry{empty: true, releases: &geomReleases}, released: &released}
	}}

	result, err := Scan(context.Background(), layer, DefaultGeometryCriteria(), CheckConfig{}, 1, "t1", "roads")
	require.NoError(t, err)

	assert.Equal(t, expectedMinIterations, served)
	assert.Equal(t, expectedMinIterations, result.SkippedCount)
	assert.Equal(t, 0, result.ProcessedCount)
}

func TestScanCancellationReturnsErrCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	layer := &fakeLayer{features: []CursorFeature{
		&fakeFeature{fid: 1, geom: &fakeGeometry{empty: true, releases: new(int)}, released: new(int)},
	}}

	result, err := Scan(ctx, layer, DefaultGeometryCriteria(), CheckConfig{}, 1, "t1", "roads")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, result.Cancelled)
}

func TestScanReleasesOwnedGeometryOnEveryExit(t *testing.T) {
	released := 0
	geomReleases := 0
	geom := &fakeGeometry{empty: false, releases: &geomReleases}
	layer := &fakeLayer{features: []CursorFeature{
		&fakeFeature{fid: 1, geom: geom, released: &released},
	}}

	// MinPoints forces the clone/linearize/flatten path; Linearize and
	// FlattenTo2D each return a distinct instance here, so three owned
	// handles (clone, linearized, flattened) plus the borrowed handle
	// must each see exactly one release.
	checks := CheckConfig{MinPoints: true}
	result, err := Scan(context.Background(), layer, DefaultGeometryCriteria(), checks, 1, "t1", "roads")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 1, released)
	assert.Equal(t, 3, geomReleases, "clone, linearized and flattened handles must each be released")
}
