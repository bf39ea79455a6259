package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"strconv"
)

// ErrCancelled distinguishes a cooperative-cancellation stop from a
// validation failure (spec §4.9 step 8, §7 taxonomy item 4).
var ErrCancelled = errors.New("validation cancelled")

// ScanResult is C7's output: the errors emitted during the single-pass
// sweep, plus the bookkeeping the Orchestrator needs for its Result. C5
// and C6 run as separate cursor sweeps (spec §2) and do not reuse these
// geometries.
type ScanResult struct {
	Errors         []ValidationError
	ProcessedCount int
	SkippedCount   int
	Cancelled      bool
}

// expectedMinIterations is the floor for the safety bound (spec §4.7).
const expectedMinIterations = 10000

// Scan drives one cursor sweep of the post-filter layer (C7). tableID and
// tableName are threaded into every emitted ValidationError.
func Scan(
	ctx context.Context,
	layer Layer,
	criteria GeometryCriteria,
	checks CheckConfig,
	expectedCount int,
	tableID, tableName string,
) (ScanResult, error) {
	var result ScanResult

	maxIterations := 0
	if expectedCount > 0 {
		maxIterations = expectedMinIterations
		if 2*expectedCount > maxIterations {
			maxIterations = 2 * expectedCount
		}
	}

	processedFIDs := make(map[int64]struct{})
	needsClone := checks.AnyShapeOrCardinalityEnabled()

	iteration := 0
	for {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			return result, ErrCancelled
		default:
		}

		if maxIterations > 0 && iteration >= maxIterations {
			break
		}
		iteration++

		feature, err := layer.NextFeature()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, err
		}

		cont, scanErr := scanOneFeature(feature, criteria, checks, needsClone, tableID, tableName, processedFIDs, &result)
		if scanErr != nil {
			return result, scanErr
		}
		if !cont {
			continue
		}

		result.ProcessedCount++
		if result.ProcessedCount%100 == 0 {
			log.Printf("geovalidate: scanned %d features", result.ProcessedCount)
		}
	}

	return result, nil
}

// scanOneFeature processes one feature under a scoped release block: the
// borrowed handle and any owned clone/linearized geometry are released on
// every exit path, including the early returns below.
func scanOneFeature(
	feature CursorFeature,
	criteria GeometryCriteria,
	checks CheckConfig,
	needsClone bool,
	tableID, tableName string,
	processedFIDs map[int64]struct{},
	result *ScanResult,
) (processed bool, err error) {
	defer feature.Release()

	fid := feature.FID()
	if _, seen := processedFIDs[fid]; seen {
		result.Errors = append(result.Errors, ValidationError{
			ErrorCode: "",
			Message:   (&ErrCursorAnomaly{FID: fid}).Error(),
			TableID:   tableID,
			TableName: tableName,
			FeatureID: fidString(fid),
			Severity:  SeverityWarning,
		})
		result.SkippedCount++
		return false, nil
	}
	processedFIDs[fid] = struct{}{}

	borrowed := feature.Geometry()
	if borrowed == nil || borrowed.IsEmpty() {
		result.SkippedCount++
		return false, nil
	}

	bv := BackendValidity{IsValid: borrowed.IsValid(), IsSimple: borrowed.IsSimple()}

	if !needsClone {
		runValidityOnly(borrowed, bv, criteria, checks, tableID, tableName, fid, result)
		return true, nil
	}

	cloned := borrowed.Clone()
	defer cloned.Release()
	linearized := cloned.Linearize()
	if linearized != cloned {
		defer linearized.Release()
	}
	flattened := linearized.FlattenTo2D()
	if flattened != linearized {
		defer flattened.Release()
	}

	if flattened.IsEmpty() {
		result.SkippedCount++
		return false, nil
	}

	working := Materialize(flattened)
	runAllChecks(working, flattened, bv, criteria, checks, tableID, tableName, fid, result)

	return true, nil
}

func fidString(fid int64) string {
	return strconv.FormatInt(fid, 10)
}

func safeExportWKT(g CursorGeometry) (wkt string, err error) {
	defer func() {
		if recover() != nil {
			wkt, err = "", errCursorPanic
		}
	}()
	return g.ExportWKT()
}

var errCursorPanic = errors.New("panic exporting geometry WKT")

// runValidityOnly covers the case where no shape-quality/cardinality check
// is enabled: the scanner skips the clone/linearize pair entirely (spec
// §4.7) and only the validity fast-path can be evaluated, directly against
// the borrowed handle's own Envelope/ExportWKT.
func runValidityOnly(borrowed CursorGeometry, bv BackendValidity, criteria GeometryCriteria, checks CheckConfig, tableID, tableName string, fid int64, result *ScanResult) {
	if !checks.SelfIntersection {
		return
	}
	wkt, err := safeExportWKT(borrowed)
	if err != nil {
		return
	}
	env := borrowed.Envelope()
	finding, has := EvaluateValidity(bv, wkt, env, Point{}, false)
	if !has {
		return
	}
	result.Errors = append(result.Errors, ValidationError{
		ErrorCode:   ErrCodeInvalidSelfIntersect,
		Message:     finding.Message,
		TableID:     tableID,
		TableName:   tableName,
		FeatureID:   fidString(fid),
		Severity:    SeverityError,
		X:           finding.At.X,
		Y:           finding.At.Y,
		GeometryWKT: PointWKT(finding.At),
		Metadata:    map[string]string{"defect_type": finding.DefectType},
	})
}

// runAllChecks applies C1-C4 to the flattened working geometry.
func runAllChecks(working *Geometry, flattened CursorGeometry, bv BackendValidity, criteria GeometryCriteria, checks CheckConfig, tableID, tableName string, fid int64, result *ScanResult) {
	fs := fidString(fid)

	if checks.SelfIntersection {
		wkt, err := safeExportWKT(flattened)
		if err == nil {
			env, _ := ComputeEnvelope(working)
			first, hasFirst := FirstVertex(working)
			if finding, has := EvaluateValidity(bv, wkt, env, first, hasFirst); has {
				result.Errors = append(result.Errors, ValidationError{
					ErrorCode:   ErrCodeInvalidSelfIntersect,
					Message:     finding.Message,
					TableID:     tableID,
					TableName:   tableName,
					FeatureID:   fs,
					Severity:    SeverityError,
					X:           finding.At.X,
					Y:           finding.At.Y,
					GeometryWKT: PointWKT(finding.At),
					Metadata:    map[string]string{"defect_type": finding.DefectType},
				})
			}
		}
	}

	if checks.MinPoints {
		card := EvaluateCardinality(working, criteria.RingClosureTolerance)
		if !card.Valid {
			at, _ := FirstVertex(working)
			result.Errors = append(result.Errors, ValidationError{
				ErrorCode:   ErrCodeInsufficientVertices,
				Message:     card.Detail,
				TableID:     tableID,
				TableName:   tableName,
				FeatureID:   fs,
				Severity:    SeverityError,
				X:           at.X,
				Y:           at.Y,
				GeometryWKT: PointWKT(at),
				Metadata:    map[string]string{"observed": itoa(card.Observed), "required": itoa(card.Required)},
			})
		}
	}

	if checks.ShortObject && IsLine(working) {
		length := flattened.Length()
		if length < criteria.MinLineLength {
			at, _ := FirstVertex(working)
			result.Errors = append(result.Errors, ValidationError{
				ErrorCode:   ErrCodeShortLine,
				Message:     "line shorter than minimum length",
				TableID:     tableID,
				TableName:   tableName,
				FeatureID:   fs,
				Severity:    SeverityError,
				X:           at.X,
				Y:           at.Y,
				GeometryWKT: PointWKT(at),
			})
		}
	}

	if checks.SmallArea && IsPolygon(working) {
		area := SurfaceArea(working)
		if area < criteria.MinPolygonArea {
			at, _ := FirstVertex(working)
			result.Errors = append(result.Errors, ValidationError{
				ErrorCode:   ErrCodeSmallArea,
				Message:     "polygon area below minimum",
				TableID:     tableID,
				TableName:   tableName,
				FeatureID:   fs,
				Severity:    SeverityError,
				X:           at.X,
				Y:           at.Y,
				GeometryWKT: PointWKT(at),
			})
		}
	}

	if checks.Sliver && IsSliver(working, criteria) {
		at, _ := FirstVertex(working)
		result.Errors = append(result.Errors, ValidationError{
			ErrorCode:   ErrCodeSliver,
			Message:     "sliver polygon",
			TableID:     tableID,
			TableName:   tableName,
			FeatureID:   fs,
			Severity:    SeverityError,
			X:           at.X,
			Y:           at.Y,
			GeometryWKT: PointWKT(at),
		})
	}

	if checks.Spikes {
		if spike, has := DetectSpike(working, criteria.SpikeAngleThresholdDegrees); has {
			result.Errors = append(result.Errors, ValidationError{
				ErrorCode:   ErrCodeSpike,
				Message:     SpikeMessage(spike),
				TableID:     tableID,
				TableName:   tableName,
				FeatureID:   fs,
				Severity:    SeverityError,
				X:           spike.At.X,
				Y:           spike.At.Y,
				GeometryWKT: PointWKT(spike.At),
			})
		}
	}

	if checks.SelfOverlap {
		if at, has := DetectSelfOverlap(working, criteria.OverlapTolerance); has {
			result.Errors = append(result.Errors, ValidationError{
				ErrorCode:   ErrCodeSelfOverlap,
				Message:     "feature's own parts overlap each other",
				TableID:     tableID,
				TableName:   tableName,
				FeatureID:   fs,
				Severity:    SeverityError,
				X:           at.X,
				Y:           at.Y,
				GeometryWKT: PointWKT(at),
			})
		}
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
