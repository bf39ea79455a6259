// Package engine implements the geometry validation core: predicates,
// shape-quality analyzers, cardinality rules, the single-pass scanner, the
// spatial-index cross-checks, the network connectivity checker, and the
// streaming error sink.
package engine

import "fmt"

// GeometryType is the flattened WKB type class a Geometry carries.
type GeometryType int

const (
	GeometryTypeUnknown GeometryType = iota
	GeometryTypePoint
	GeometryTypeMultiPoint
	GeometryTypeLineString
	GeometryTypeMultiLineString
	GeometryTypePolygon
	GeometryTypeMultiPolygon
)

func (t GeometryType) String() string {
	switch t {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeMultiPoint:
		return "MultiPoint"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypeMultiLineString:
		return "MultiLineString"
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// IsLineType reports whether t is LineString or MultiLineString.
func (t GeometryType) IsLineType() bool {
	return t == GeometryTypeLineString || t == GeometryTypeMultiLineString
}

// IsPolygonType reports whether t is Polygon or MultiPolygon.
func (t GeometryType) IsPolygonType() bool {
	return t == GeometryTypePolygon || t == GeometryTypeMultiPolygon
}

// Point is a flattened 2D coordinate.
type Point struct {
	X, Y float64
}

// Ring is a sequence of points; a closed ring repeats its first point as
// its last.
type Ring []Point

// Geometry is the engine's flattened, 2D, pure-Go geometry representation.
// It is always an owned value (never a borrowed cursor handle) once it
// reaches the analyzers — the scanner is responsible for cloning and
// linearizing the backend's borrowed geometry into this shape.
type Geometry struct {
	Type GeometryType

	// Points holds coordinates for Point and LineString (a single open
	// polyline), and may hold MultiPoint members. MultiLineString does not
	// use it.
	Points Ring

	// Rings holds the exterior ring (index 0) and holes (index 1..) for a
	// single Polygon.
	Rings []Ring

	// Parts holds sub-geometries for MultiLineString (each a Ring) and may
	// hold MultiPoint members. MultiPolygon members (each a slice of Rings)
	// are held in PolygonRings.
	Parts       []Ring
	PolygonRings [][]Ring
}

// Envelope is an axis-aligned bounding box.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

func (e Envelope) Intersects(o Envelope) bool {
	return e.MinX <= o.MaxX && e.MaxX >= o.MinX && e.MinY <= o.MaxY && e.MaxY >= o.MinY
}

func (e Envelope) Center() Point {
	return Point{X: (e.MinX + e.MaxX) / 2, Y: (e.MinY + e.MaxY) / 2}
}

// Feature is a single layer record as seen by the engine, already
// flattened to 2D pure-Go form.
type Feature struct {
	FID        int64
	Geometry   Geometry
	Attributes map[string]any
}

// Severity classifies a ValidationError.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// Error codes, stable and part of the external contract (spec §3).
const (
	ErrCodeDuplicate          = "LOG_TOP_GEO_001"
	ErrCodeOverlap            = "LOG_TOP_GEO_002"
	ErrCodeInvalidSelfIntersect = "LOG_TOP_GEO_003"
	ErrCodeSliver             = "LOG_TOP_GEO_004"
	ErrCodeShortLine          = "LOG_TOP_GEO_005"
	ErrCodeSmallArea          = "LOG_TOP_GEO_006"
	ErrCodeSelfOverlap        = "LOG_TOP_GEO_007"
	ErrCodeInsufficientVertices = "LOG_TOP_GEO_008"
	ErrCodeSpike              = "LOG_TOP_GEO_009"
	ErrCodePolygonInPolygon   = "LOG_TOP_GEO_010"
	ErrCodeUndershoot         = "LOG_TOP_GEO_011"
	ErrCodeOvershoot          = "LOG_TOP_GEO_012"
)

// ValidationError is one reported defect, pinpointed to a feature and a
// coordinate.
type ValidationError struct {
	ErrorCode   string
	Message     string
	TableID     string
	TableName   string
	FeatureID   string
	Severity    Severity
	X, Y        float64
	GeometryWKT string
	Metadata    map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s [%s] feature %s: %s", e.ErrorCode, e.Severity, e.FeatureID, e.Message)
}

// GeometryCriteria holds the positive-real configuration thresholds that
// drive the shape-quality and network checks.
type GeometryCriteria struct {
	RingClosureTolerance       float64
	MinLineLength              float64
	MinPolygonArea             float64
	OverlapTolerance           float64
	SliverArea                 float64
	SliverShapeIndex           float64 // < 1
	SliverElongation           float64 // > 1
	SpikeAngleThresholdDegrees float64
	NetworkSearchDistance      float64
}

// DefaultGeometryCriteria returns permissive thresholds: the minimum line
// length, minimum polygon area, sliver area and network search distance
// are zero, so the short-line, small-area, sliver and network checks report
// nothing until overridden. The overlap tolerance (1e-9) and spike
// threshold (1 degree) are non-zero, so those checks still report.
// Callers are expected to override per-dataset scale.
func DefaultGeometryCriteria() GeometryCriteria {
	return GeometryCriteria{
		RingClosureTolerance:       1e-7,
		MinLineLength:              0,
		MinPolygonArea:             0,
		OverlapTolerance:           1e-9,
		SliverArea:                 0,
		SliverShapeIndex:           0.1,
		SliverElongation:           50,
		SpikeAngleThresholdDegrees: 1,
		NetworkSearchDistance:      0,
	}
}

// CheckConfig gates each check category. The caller composes these; the
// engine never infers them.
type CheckConfig struct {
	Duplicate         bool
	Overlap           bool
	SelfIntersection  bool
	SelfOverlap       bool
	PolygonInPolygon  bool
	ShortObject       bool
	SmallArea         bool
	MinPoints         bool
	Sliver            bool
	Spikes            bool
	Undershoot        bool
	Overshoot         bool
}

// AnyShapeOrCardinalityEnabled reports whether any check requiring a
// linearized/flattened working geometry clone is active, per the
// scanner's skip-clone-if-unneeded optimization (spec §4.7).
func (c CheckConfig) AnyShapeOrCardinalityEnabled() bool {
	return c.SelfIntersection || c.SelfOverlap || c.ShortObject || c.SmallArea ||
		c.MinPoints || c.Sliver || c.Spikes
}
