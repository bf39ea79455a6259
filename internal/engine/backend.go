package engine

import "context"

// CursorGeometry is the borrowed-or-owned geometry handle contract the
// engine depends on (spec §6.1). Implementations backing a *borrowed*
// handle (returned by CursorFeature.Geometry) must never be released by
// the engine; Clone/Linearize/FlattenTo2D/Boundary return *owned* handles
// the engine releases in a scoped block.
type CursorGeometry interface {
	Type() GeometryType
	IsEmpty() bool
	PointCount() int
	Point(i int) (x, y float64)
	SubGeometry(i int) CursorGeometry
	SubCount() int
	IsValid() bool
	IsSimple() bool
	Boundary() CursorGeometry
	Area() float64
	Length() float64
	Envelope() Envelope
	Clone() CursorGeometry
	Linearize() CursorGeometry
	FlattenTo2D() CursorGeometry
	ExportWKT() (string, error)
	Release()
}

// CursorFeature is one record yielded by Layer.NextFeature. Its FID is
// stable; its Geometry() is borrowed.
type CursorFeature interface {
	FID() int64
	Geometry() CursorGeometry
	Attributes() map[string]any
	Release()
}

// Layer is a random-accessible, resettable feature cursor (spec §6.1).
// NextFeature returns io.EOF when exhausted.
type Layer interface {
	FeatureCount(ctx context.Context, forceScan bool) (int, error)
	Reset() error
	NextFeature() (CursorFeature, error)
	SetAttributeFilter(expr string) error
	SetIgnoredFields(fields []string) error
	GeometryTypeName() string // e.g. "LineString", used to gate C6 on layers whose declared type contains "LINE"
}

// Dataset opens named layers (spec §6.1).
type Dataset interface {
	Layer(name string) (Layer, error)
	Close() error
}

// FeatureFilter is the pluggable attribute-based row filter (spec §6.2).
type FeatureFilter interface {
	Apply(layer Layer, phaseName, tableID string) (applied bool, excluded int, err error)
	ShouldSkip(feature CursorFeature, tableID string) (skip bool, reason string)
}
