package geovalidate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/geovalidate/geovalidate/internal/engine"
)

// Engine is the public entry point wrapping the internal validation core,
// modeled on the teacher's ChartManager: a thin orchestrator over the
// internal parser/engine, owning the per-file spatial-index cache across
// calls.
type Engine struct {
	cache *engine.SpatialIndexCache
	// lastFile is the most recently validated file path; when a run on a
	// different file ends, the cache entries of lastFile are invalidated
	// (spec §4.9 step 9, §9's "evict on file transition").
	lastFile string
}

// NewEngine returns an Engine with an empty per-file spatial-index cache.
func NewEngine() *Engine {
	return &Engine{cache: engine.NewSpatialIndexCache()}
}

// Request bundles the parameters to Validate (spec §4.9's public
// operation signature).
type Request struct {
	FilePath      string
	LayerID       string
	TableName     string
	Criteria      GeometryCriteria
	Checks        CheckConfig
	Filter        FeatureFilter // optional
	StreamingPath string        // empty selects buffered mode
}

// Validate runs C7, then C5 and C6 as requested, against the layer
// resolved from ds. Sequence matches spec §4.9 exactly.
func (e *Engine) Validate(ctx context.Context, ds Dataset, req Request) (Result, error) {
	defer ds.Close()
	defer func() {
		if req.FilePath != e.lastFile {
			e.cache.InvalidateFile(e.lastFile)
		}
		e.lastFile = req.FilePath
	}()

	layer, err := ds.Layer(req.LayerID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve layer %q: %w", req.LayerID, err)
	}
	if layer == nil {
		return Result{IsValid: true, Message: fmt.Sprintf("layer %q not found", req.LayerID)}, nil
	}

	preFilterCount, _ := layer.FeatureCount(ctx, false)

	excludedCount := 0
	if req.Filter != nil {
		applied, excluded, ferr := req.Filter.Apply(layer, "pre-scan", req.TableName)
		if ferr != nil {
			log.Printf("geovalidate: attribute filter apply failed: %v", ferr)
		} else if applied {
			excludedCount = excluded
		}
		probeFilter(layer, req.Filter, req.TableName)
	}

	postFilterCount, _ := layer.FeatureCount(ctx, false)

	var sink *engine.ErrorSink
	if req.StreamingPath != "" {
		sink, err = engine.NewStreamingSink(req.StreamingPath)
		if err != nil {
			return Result{}, err
		}
	} else {
		sink = engine.NewBufferedSink()
	}

	scanResult, scanErr := engine.Scan(ctx, layer, req.Criteria, req.Checks, postFilterCount, req.TableName, req.TableName)
	sink.AddAll(scanResult.Errors)

	cancelled := errors.Is(scanErr, engine.ErrCancelled) || scanResult.Cancelled

	var duplicateOverlap engine.DuplicateOverlapResult
	var networkErrors []engine.ValidationError

	if !cancelled && (req.Checks.Duplicate || req.Checks.Overlap || req.Checks.PolygonInPolygon) {
		features, cerr := engine.CollectForIndex(ctx, layer)
		if cerr != nil {
			if errors.Is(cerr, context.Canceled) {
				cancelled = true
			}
		} else {
			duplicateOverlap, err = engine.DuplicateOverlapPass(
				ctx, e.cache, req.FilePath, req.LayerID, features,
				req.Criteria, req.Checks.Duplicate, req.Checks.Overlap, req.Checks.PolygonInPolygon,
				req.TableName, req.TableName,
			)
			if err != nil && errors.Is(err, context.Canceled) {
				cancelled = true
			}
			sink.AddAll(duplicateOverlap.Duplicates)
			sink.AddAll(duplicateOverlap.Overlaps)
			sink.AddAll(duplicateOverlap.PolygonInPolygon)
		}
	}

	if !cancelled && (req.Checks.Undershoot || req.Checks.Overshoot) && strings.Contains(strings.ToUpper(layer.GeometryTypeName()), "LINE") {
		lines, cerr := engine.CollectLines(ctx, layer)
		if cerr != nil {
			if errors.Is(cerr, context.Canceled) {
				cancelled = true
			}
		} else {
			networkErrors, err = engine.NetworkPass(
				ctx, lines, req.Criteria.NetworkSearchDistance,
				req.Checks.Undershoot, req.Checks.Overshoot,
				req.TableName, req.TableName,
			)
			if err != nil && errors.Is(err, context.Canceled) {
				cancelled = true
			}
			sink.AddAll(networkErrors)
		}
	}

	errorCount, warningCount, finalizeErr := sink.Finalize()

	result := Result{
		IsValid:      errorCount == 0 && !cancelled,
		ErrorCount:   errorCount,
		WarningCount: warningCount,
		SkippedCount: scanResult.SkippedCount + excludedCount,
		Cancelled:    cancelled,
	}
	if !sink.IsStreaming() {
		result.Errors = sink.Errors
	} else {
		result.StreamPath = req.StreamingPath
	}

	if cancelled {
		result.Message = "validation cancelled"
	} else if finalizeErr != nil {
		result.Message = finalizeErr.Error()
	} else {
		result.Message = fmt.Sprintf("processed %d of %d features", scanResult.ProcessedCount, preFilterCount)
	}

	return result, finalizeErr
}

// probeFilter reads up to 10 features and resets, per spec §4.9 step 3: a
// sanity probe whose deviations are warnings only, never a hard failure.
func probeFilter(layer Layer, filter FeatureFilter, tableID string) {
	for i := 0; i < 10; i++ {
		feature, err := layer.NextFeature()
		if err != nil {
			break
		}
		if skip, reason := filter.ShouldSkip(feature, tableID); skip {
			log.Printf("geovalidate: filter probe would skip feature %d: %s", feature.FID(), reason)
		}
		feature.Release()
	}
	if err := layer.Reset(); err != nil {
		log.Printf("geovalidate: filter probe reset failed: %v", err)
	}
}
