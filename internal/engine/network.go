package engine

import (
	"context"
	"fmt"
	"math"
)

// NetworkLine is one line element collected by the network pass; a
// MultiLineString contributes its parts individually, each carrying the
// parent fid (spec §4.6 step 1).
type NetworkLine struct {
	FID   int64
	Line  Ring
}

const connectedTolerance = 0.001 // 1mm, per spec §4.6

// NetworkPass runs the undershoot/overshoot classification described in
// spec §4.6. Only meaningful when the layer's declared geometry type
// contains "LINE"; the caller is responsible for that gate.
func NetworkPass(
	ctx context.Context,
	lines []NetworkLine,
	searchDistance float64,
	checkUndershoot, checkOvershoot bool,
	tableID, tableName string,
) ([]ValidationError, error) {
	var out []ValidationError
	if len(lines) < 2 || (!checkUndershoot && !checkOvershoot) {
		return out, nil
	}

	candidateCount := 0
	reported := make(map[int64]bool)

	for i, l := range lines {
		if len(l.Line) < 2 || reported[l.FID] {
			continue
		}
		emitted := false
		for _, endpoint := range []Point{l.Line[0], l.Line[len(l.Line)-1]} {
			if emitted {
				break
			}

			var bestDist = math.Inf(1)
			var bestQ Point
			var bestOtherIdx = -1
			connected := false

			for j, other := range lines {
				if j == i {
					continue
				}
				candidateCount++
				if candidateCount%candidateCheckInterval == 0 {
					select {
					case <-ctx.Done():
						return out, ctx.Err()
					default:
					}
				}
				if len(other.Line) < 2 {
					continue
				}
				d, q := nearestPointOnPolyline(endpoint, other.Line)
				if d <= connectedTolerance {
					connected = true
					break
				}
				if d < bestDist {
					bestDist = d
					bestQ = q
					bestOtherIdx = j
				}
			}

			if connected || bestOtherIdx < 0 {
				continue
			}
			if bestDist >= searchDistance {
				continue
			}

			other := lines[bestOtherIdx]
			atOtherEndpoint := pointsCoincide(bestQ, other.Line[0]) || pointsCoincide(bestQ, other.Line[len(other.Line)-1])

			if atOtherEndpoint {
				if !checkOvershoot {
					continue
				}
				out = append(out, ValidationError{
					ErrorCode:   ErrCodeOvershoot,
					Message:     fmt.Sprintf("feature %d overshoots feature %d", l.FID, other.FID),
					TableID:     tableID,
					TableName:   tableName,
					FeatureID:   fmt.Sprintf("%d", l.FID),
					Severity:    SeverityError,
					X:           endpoint.X,
					Y:           endpoint.Y,
					GeometryWKT: GapLineWKT(endpoint, bestQ),
					Metadata:    map[string]string{"other_fid": fmt.Sprintf("%d", other.FID)},
				})
			} else {
				if !checkUndershoot {
					continue
				}
				out = append(out, ValidationError{
					ErrorCode:   ErrCodeUndershoot,
					Message:     fmt.Sprintf("feature %d undershoots feature %d", l.FID, other.FID),
					TableID:     tableID,
					TableName:   tableName,
					FeatureID:   fmt.Sprintf("%d", l.FID),
					Severity:    SeverityError,
					X:           endpoint.X,
					Y:           endpoint.Y,
					GeometryWKT: GapLineWKT(endpoint, bestQ),
					Metadata:    map[string]string{"other_fid": fmt.Sprintf("%d", other.FID)},
				})
			}
			emitted = true // break after first defect per fid, per spec §4.6 step 3
			reported[l.FID] = true
		}
	}

	return out, nil
}

// nearestPointOnPolyline finds the minimum distance from p to any segment
// of line and the nearest point achieving it; ties are broken by first
// encountered in iteration order, matching spec §4.6 step 4.
func nearestPointOnPolyline(p Point, line Ring) (float64, Point) {
	best := math.Inf(1)
	var bestPoint Point
	for i := 0; i+1 < len(line); i++ {
		d, q := DistancePointToSegment(p, line[i], line[i+1])
		if d < best {
			best = d
			bestPoint = q
		}
	}
	return best, bestPoint
}

func pointsCoincide(a, b Point) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= connectedTolerance
}
