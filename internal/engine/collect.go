package engine

import (
	"context"
	"errors"
	"io"
)

// CollectForIndex drives its own cursor sweep (spec §2: C5 runs "as
// separate cursor sweeps" from the scanner) gathering each feature's
// flattened working geometry and WKT for the R-tree duplicate/overlap
// pass. The layer is reset first so this sweep starts from the beginning
// regardless of where C7 left the cursor.
func CollectForIndex(ctx context.Context, layer Layer) ([]IndexedGeometry, error) {
	if err := layer.Reset(); err != nil {
		return nil, err
	}

	var out []IndexedGeometry
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		feature, err := layer.NextFeature()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, err
		}

		wkt, working, ok := materializeFeature(feature)
		if ok {
			out = append(out, IndexedGeometry{FID: feature.FID(), Geom: working, WKT: wkt})
		}
		feature.Release()
	}
	return out, nil
}

// CollectLines drives its own cursor sweep gathering line elements for the
// network connectivity pass (C6), per spec §4.6 step 1. Only meaningful
// when the layer's declared geometry type contains "LINE"; callers should
// check GeometryTypeName before calling this to avoid a wasted sweep.
func CollectLines(ctx context.Context, layer Layer) ([]NetworkLine, error) {
	if err := layer.Reset(); err != nil {
		return nil, err
	}

	var out []NetworkLine
	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		feature, err := layer.NextFeature()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return out, err
		}

		_, working, ok := materializeFeature(feature)
		if ok {
			switch working.Type {
			case GeometryTypeLineString:
				out = append(out, NetworkLine{FID: feature.FID(), Line: working.Points})
			case GeometryTypeMultiLineString:
				for _, part := range working.Parts {
					out = append(out, NetworkLine{FID: feature.FID(), Line: part})
				}
			}
		}
		feature.Release()
	}
	return out, nil
}

// materializeFeature clones, linearizes, and flattens one feature's
// borrowed geometry, releasing the owned intermediates before returning,
// and returns the resulting WKT and working Geometry.
func materializeFeature(feature CursorFeature) (wkt string, working *Geometry, ok bool) {
	borrowed := feature.Geometry()
	if borrowed == nil || borrowed.IsEmpty() {
		return "", nil, false
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
		return "", nil, false
	}

	w, err := safeExportWKT(flattened)
	if err != nil {
		return "", nil, false
	}
	return w, Materialize(flattened), true
}
