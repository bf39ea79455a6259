// Package geovalidate is the public entry point to the geometry
// validation engine: a single operation, Validate, that sequences the
// single-pass scanner, the spatial-index cross-checks, and the network
// connectivity checker against a caller-supplied GeometryBackend.
package geovalidate

import "github.com/geovalidate/geovalidate/internal/engine"

// Re-exported so callers implementing a backend never need to import the
// internal engine package directly — mirrors the teacher's pkg/s57 public
// interfaces wrapping internal/parser types.

type GeometryType = engine.GeometryType

const (
	GeometryTypeUnknown         = engine.GeometryTypeUnknown
	GeometryTypePoint           = engine.GeometryTypePoint
	GeometryTypeMultiPoint      = engine.GeometryTypeMultiPoint
	GeometryTypeLineString      = engine.GeometryTypeLineString
	GeometryTypeMultiLineString = engine.GeometryTypeMultiLineString
	GeometryTypePolygon         = engine.GeometryTypePolygon
	GeometryTypeMultiPolygon    = engine.GeometryTypeMultiPolygon
)

type Envelope = engine.Envelope

// Geometry is the borrowed-or-owned geometry handle contract the engine
// depends on (GeometryBackend §6.1). See internal/engine.CursorGeometry
// for the field-by-field rationale.
type Geometry = engine.CursorGeometry

// Feature is one record yielded by a Layer's cursor.
type Feature = engine.CursorFeature

// Layer is a random-accessible, resettable feature cursor.
type Layer = engine.Layer

// Dataset opens named layers.
type Dataset = engine.Dataset

// FeatureFilter is the pluggable attribute-based row filter (§6.2).
type FeatureFilter = engine.FeatureFilter
