package engine

import "fmt"

// CardinalityResult carries the observed/required counts and a structured
// detail string for the first failing sub-component.
type CardinalityResult struct {
	Observed int
	Required int
	Detail   string
	Valid    bool
}

// EvaluateCardinality applies the per-type minimum-vertex rules (spec
// §4.3). Counts are measured on the already linearized, 2D-flattened
// geometry; the first failing sub-component short-circuits with a
// structured detail string.
func EvaluateCardinality(g *Geometry, tol float64) CardinalityResult {
	switch g.Type {
	case GeometryTypePoint:
		n := len(g.Points)
		if n < 1 {
			return CardinalityResult{Observed: n, Required: 1, Detail: "포인트에 좌표가 없습니다", Valid: false}
		}
		return CardinalityResult{Observed: n, Required: 1, Valid: true}

	case GeometryTypeMultiPoint:
		total := 0
		for _, part := range g.Parts {
			total += len(part)
		}
		total += len(g.Points)
		if total < 1 {
			return CardinalityResult{Observed: total, Required: 1, Detail: "멀티포인트에 좌표가 없습니다", Valid: false}
		}
		return CardinalityResult{Observed: total, Required: 1, Valid: true}

	case GeometryTypeLineString:
		n := len(g.Points)
		if n < 2 {
			return CardinalityResult{Observed: n, Required: 2, Detail: fmt.Sprintf("라인스트링에 %d개의 점만 있습니다 (최소 2개 필요)", n), Valid: false}
		}
		return CardinalityResult{Observed: n, Required: 2, Valid: true}

	case GeometryTypeMultiLineString:
		total := 0
		for i, part := range g.Parts {
			if len(part) < 2 {
				return CardinalityResult{Observed: len(part), Required: 2, Detail: fmt.Sprintf("파트 %d가 라인스트링 규칙을 만족하지 않습니다", i), Valid: false}
			}
			total += len(part)
		}
		if total < 2 {
			return CardinalityResult{Observed: total, Required: 2, Detail: "멀티라인스트링의 점 합계가 부족합니다", Valid: false}
		}
		return CardinalityResult{Observed: total, Required: 2, Valid: true}

	case GeometryTypePolygon:
		return evaluatePolygonCardinality(g.Rings, tol)

	case GeometryTypeMultiPolygon:
		totalUnique := 0
		for i, rings := range g.PolygonRings {
			res := evaluatePolygonCardinality(rings, tol)
			if !res.Valid {
				return CardinalityResult{Observed: res.Observed, Required: res.Required, Detail: fmt.Sprintf("폴리곤 %d: %s", i, res.Detail), Valid: false}
			}
			totalUnique += res.Observed
		}
		if totalUnique < 3 {
			return CardinalityResult{Observed: totalUnique, Required: 3, Detail: "멀티폴리곤의 고유 점 합계가 부족합니다", Valid: false}
		}
		return CardinalityResult{Observed: totalUnique, Required: 3, Valid: true}
	}

	return CardinalityResult{Valid: true}
}

func evaluatePolygonCardinality(rings []Ring, tol float64) CardinalityResult {
	if len(rings) < 1 {
		return CardinalityResult{Observed: 0, Required: 1, Detail: "폴리곤에 링이 없습니다", Valid: false}
	}
	total := 0
	for i, ring := range rings {
		if !RingIsClosed(ring, tol) {
			return CardinalityResult{Observed: len(ring), Required: 3, Detail: fmt.Sprintf("링 %d가 폐합되지 않았습니다", i), Valid: false}
		}
		unique := UniquePointCount(ring, tol)
		if unique < 3 {
			return CardinalityResult{Observed: unique, Required: 3, Detail: fmt.Sprintf("링 %d의 고유 점이 %d개뿐입니다 (최소 3개 필요)", i, unique), Valid: false}
		}
		total += unique
	}
	return CardinalityResult{Observed: total, Required: 3, Valid: true}
}
