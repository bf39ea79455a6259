package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ExportWKT renders g as Well-Known Text, the hand-off format to the
// richer GEOS-backed validator (C4) and to the on-disk defect location
// geometry (§3's geometry_wkt field).
func ExportWKT(g *Geometry) string {
	switch g.Type {
	case GeometryTypePoint:
		if len(g.Points) == 0 {
			return "POINT EMPTY"
		}
		return fmt.Sprintf("POINT (%s)", coordStr(g.Points[0]))
	case GeometryTypeMultiPoint:
		if len(g.Parts) == 0 && len(g.Points) == 0 {
			return "MULTIPOINT EMPTY"
		}
		var pts []string
		for _, p := range g.Points {
			pts = append(pts, coordStr(p))
		}
		for _, part := range g.Parts {
			for _, p := range part {
				pts = append(pts, coordStr(p))
			}
		}
		return fmt.Sprintf("MULTIPOINT (%s)", strings.Join(pts, ", "))
	case GeometryTypeLineString:
		if len(g.Points) == 0 {
			return "LINESTRING EMPTY"
		}
		return fmt.Sprintf("LINESTRING (%s)", ringStr(g.Points))
	case GeometryTypeMultiLineString:
		if len(g.Parts) == 0 {
			return "MULTILINESTRING EMPTY"
		}
		var parts []string
		for _, part := range g.Parts {
			parts = append(parts, fmt.Sprintf("(%s)", ringStr(part)))
		}
		return fmt.Sprintf("MULTILINESTRING (%s)", strings.Join(parts, ", "))
	case GeometryTypePolygon:
		if len(g.Rings) == 0 {
			return "POLYGON EMPTY"
		}
		return fmt.Sprintf("POLYGON (%s)", ringsStr(g.Rings))
	case GeometryTypeMultiPolygon:
		if len(g.PolygonRings) == 0 {
			return "MULTIPOLYGON EMPTY"
		}
		var polys []string
		for _, rings := range g.PolygonRings {
			polys = append(polys, fmt.Sprintf("(%s)", ringsStr(rings)))
		}
		return fmt.Sprintf("MULTIPOLYGON (%s)", strings.Join(polys, ", "))
	}
	return "GEOMETRYCOLLECTION EMPTY"
}

func coordStr(p Point) string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + " " + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

func ringStr(ring Ring) string {
	parts := make([]string, len(ring))
	for i, p := range ring {
		parts[i] = coordStr(p)
	}
	return strings.Join(parts, ", ")
}

func ringsStr(rings []Ring) string {
	parts := make([]string, len(rings))
	for i, ring := range rings {
		parts[i] = fmt.Sprintf("(%s)", ringStr(ring))
	}
	return strings.Join(parts, ", ")
}

// PointWKT renders a single point as POINT WKT, used for local-defect
// error locations (spec §3's geometry_wkt invariant).
func PointWKT(p Point) string {
	return fmt.Sprintf("POINT (%s)", coordStr(p))
}

// GapLineWKT renders a 2-vertex LINESTRING between p and q, used for gap
// defects (undershoot/overshoot).
func GapLineWKT(p, q Point) string {
	return fmt.Sprintf("LINESTRING (%s, %s)", coordStr(p), coordStr(q))
}
