package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/geovalidate/geovalidate/internal/geosvalidity"
)

// IndexedGeometry is the minimal shape C5 needs for each feature, as
// gathered by CollectForIndex's own sweep: a stable fid, the flattened
// working geometry, and its WKT.
type IndexedGeometry struct {
	FID  int64
	Geom *Geometry
	WKT  string
}

// BuildLayerIndex constructs the R-tree index over feature envelopes for
// one (file,layer) pair, per spec §4.5 and §9's cache-invalidation note.
// The caller is responsible for threading the result through
// SpatialIndexCache.GetOrBuild.
func BuildLayerIndex(features []IndexedGeometry) *layerIndex {
	idx := newLayerIndex()
	for _, f := range features {
		idx.insert(f.FID, f.Geom, f.WKT)
	}
	return idx
}

// candidateCheckInterval is how often (in candidate iterations) the
// cross-check loop re-checks ctx for cancellation, per spec §5.
const candidateCheckInterval = 256

type fidPair struct {
	a, b int64
}

// DuplicateOverlapResult holds the three C5 passes' findings, already
// sorted in (fid_a, fid_b) ascending pair order as spec §5 requires.
type DuplicateOverlapResult struct {
	Duplicates       []ValidationError
	Overlaps         []ValidationError
	PolygonInPolygon []ValidationError
}

// DuplicateOverlapPass runs the R-tree-backed duplicate, overlap and
// polygon-in-polygon detection described in spec §4.5 over the full
// feature set, reusing the index cached in cache for (filePath, layerID).
// Each unordered pair is considered at most once.
func DuplicateOverlapPass(
	ctx context.Context,
	cache *SpatialIndexCache,
	filePath, layerID string,
	features []IndexedGeometry,
	criteria GeometryCriteria,
	checkDuplicate, checkOverlap, checkPolygonInPolygon bool,
	tableID, tableName string,
) (DuplicateOverlapResult, error) {
	var result DuplicateOverlapResult
	if !checkDuplicate && !checkOverlap && !checkPolygonInPolygon {
		return result, nil
	}

	idx := cache.GetOrBuild(filePath, layerID, func() *layerIndex {
		return BuildLayerIndex(features)
	})

	byFID := make(map[int64]IndexedGeometry, len(features))
	for _, f := range features {
		byFID[f.FID] = f
	}

	candidateCount := 0
	seenPairs := make(map[fidPair]struct{})

	type candidatePair struct {
		pair fidPair
		a, b IndexedGeometry
		envA Envelope
	}
	var candidatePairs []candidatePair

	for _, a := range features {
		envA, ok := ComputeEnvelope(a.Geom)
		if !ok {
			continue
		}
		for _, cand := range idx.candidates(envA) {
			candidateCount++
			if candidateCount%candidateCheckInterval == 0 {
				select {
				case <-ctx.Done():
					return result, ctx.Err()
				default:
				}
			}

			if cand.fid <= a.FID {
				continue // tie-break: only fid(B) > fid(A), emit each pair once
			}
			pairKey := fidPair{a.FID, cand.fid}
			if _, dup := seenPairs[pairKey]; dup {
				continue
			}
			seenPairs[pairKey] = struct{}{}

			b, ok := byFID[cand.fid]
			if !ok {
				continue
			}

			candidatePairs = append(candidatePairs, candidatePair{pair: pairKey, a: a, b: b, envA: envA})
		}
	}

	type pending struct {
		pair   fidPair
		err    *ValidationError
		errOvr *ValidationError
		errPip *ValidationError
	}

	// Each candidate pair's GEOS calls are independent, read-only lookups
	// against already-built WKT, so they parallelize safely (spec §5).
	pendings, perr := ParallelMap(ctx, candidatePairs, 0, func(_ context.Context, cp candidatePair) (pending, error) {
		a, b, envA := cp.a, cp.b, cp.envA
		p := pending{pair: cp.pair}

		if checkDuplicate {
			equal, err := geosvalidity.SetEqual(a.WKT, b.WKT, criteria.OverlapTolerance)
			if err == nil && equal {
				env := envA
				p.err = &ValidationError{
					ErrorCode:   ErrCodeDuplicate,
					Message:     fmt.Sprintf("feature %d duplicates feature %d", b.FID, a.FID),
					TableID:     tableID,
					TableName:   tableName,
					FeatureID:   fmt.Sprintf("%d", b.FID),
					Severity:    SeverityError,
					X:           env.Center().X,
					Y:           env.Center().Y,
					GeometryWKT: PointWKT(env.Center()),
				}
			}
		}

		if (checkOverlap || checkPolygonInPolygon) && p.err == nil {
			contAB, _ := geosvalidity.Contains(a.WKT, b.WKT)
			contBA, _ := geosvalidity.Contains(b.WKT, a.WKT)

			switch {
			case contAB || contBA:
				if checkPolygonInPolygon {
					outer, inner := a, b
					if contBA {
						outer, inner = b, a
					}
					loc := envA.Center()
					if _, cx, cy, has, err := geosvalidity.IntersectionAreaAndCentroid(a.WKT, b.WKT); err == nil && has {
						loc = Point{X: cx, Y: cy}
					}
					p.errPip = &ValidationError{
						ErrorCode:   ErrCodePolygonInPolygon,
						Message:     fmt.Sprintf("feature %d lies entirely within feature %d", inner.FID, outer.FID),
						TableID:     tableID,
						TableName:   tableName,
						FeatureID:   fmt.Sprintf("%d", inner.FID),
						Severity:    SeverityError,
						X:           loc.X,
						Y:           loc.Y,
						GeometryWKT: PointWKT(loc),
						Metadata:    map[string]string{"other_fid": fmt.Sprintf("%d", outer.FID)},
					}
				}
			case checkOverlap:
				area, cx, cy, has, err := geosvalidity.IntersectionAreaAndCentroid(a.WKT, b.WKT)
				if err == nil && has && area > criteria.OverlapTolerance {
					loc := Point{X: cx, Y: cy}
					p.errOvr = &ValidationError{
						ErrorCode:   ErrCodeOverlap,
						Message:     fmt.Sprintf("feature %d overlaps feature %d (area=%g)", a.FID, b.FID, area),
						TableID:     tableID,
						TableName:   tableName,
						FeatureID:   fmt.Sprintf("%d", a.FID),
						Severity:    SeverityError,
						X:           loc.X,
						Y:           loc.Y,
						GeometryWKT: PointWKT(loc),
						Metadata:    map[string]string{"other_fid": fmt.Sprintf("%d", b.FID)},
					}
				}
			}
		}

		return p, nil
	})
	if perr != nil {
		return result, perr
	}

	sort.Slice(pendings, func(i, j int) bool {
		if pendings[i].pair.a != pendings[j].pair.a {
			return pendings[i].pair.a < pendings[j].pair.a
		}
		return pendings[i].pair.b < pendings[j].pair.b
	})

	for _, p := range pendings {
		if p.err != nil {
			result.Duplicates = append(result.Duplicates, *p.err)
		}
		if p.errOvr != nil {
			result.Overlaps = append(result.Overlaps, *p.errOvr)
		}
		if p.errPip != nil {
			result.PolygonInPolygon = append(result.PolygonInPolygon, *p.errPip)
		}
	}
	return result, nil
}
