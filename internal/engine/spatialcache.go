package engine

import (
	"sync"

	"github.com/dhconnelly/rtreego"
)

// indexedFeature adapts a Feature's envelope to rtreego.Spatial, padding
// degenerate (point/zero-area) envelopes by a small epsilon so the R-tree
// never receives a zero-volume rectangle.
type indexedFeature struct {
	fid int64
	env Envelope
}

const envelopeEpsilon = 1e-7

func (f indexedFeature) Bounds() rtreego.Rect {
	minX, minY, maxX, maxY := f.env.MinX, f.env.MinY, f.env.MaxX, f.env.MaxY
	if maxX-minX < envelopeEpsilon {
		minX -= envelopeEpsilon
		maxX += envelopeEpsilon
	}
	if maxY-minY < envelopeEpsilon {
		minY -= envelopeEpsilon
		maxY += envelopeEpsilon
	}
	point := rtreego.Point{minX, minY}
	lengths := []float64{maxX - minX, maxY - minY}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// layerIndex is the per-(file,layer) R-tree over feature envelopes plus
// the fid -> cached geometry signature mapping used by C5.
type layerIndex struct {
	rtree      *rtreego.Rtree
	signatures map[int64]string
	geometries map[int64]*Geometry
}

func newLayerIndex() *layerIndex {
	return &layerIndex{
		rtree:      rtreego.NewTree(2, 25, 50),
		signatures: make(map[int64]string),
		geometries: make(map[int64]*Geometry),
	}
}

func (li *layerIndex) insert(fid int64, g *Geometry, signature string) {
	env, ok := ComputeEnvelope(g)
	if !ok {
		return
	}
	li.rtree.Insert(indexedFeature{fid: fid, env: env})
	li.signatures[fid] = signature
	li.geometries[fid] = g
}

func (li *layerIndex) candidates(env Envelope) []indexedFeature {
	point := rtreego.Point{env.MinX, env.MinY}
	lengths := []float64{env.MaxX - env.MinX, env.MaxY - env.MinY}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return nil
	}
	spatials := li.rtree.SearchIntersect(rect)
	out := make([]indexedFeature, 0, len(spatials))
	for _, s := range spatials {
		out = append(out, s.(indexedFeature))
	}
	return out
}

// SpatialIndexCache is keyed by (file_path, layer_id). Entries are
// write-once per key; the whole cache is evicted wholesale when the
// Orchestrator advances to the next file (spec §3, §9). The RWMutex
// fast-path-read/promote-to-write-lock discipline mirrors the teacher's
// ChartCache skeleton; unlike that cache, there is no LRU eviction here —
// only whole-cache invalidation on file transition.
type SpatialIndexCache struct {
	mu      sync.RWMutex
	entries map[string]*layerIndex
}

// NewSpatialIndexCache returns an empty cache.
func NewSpatialIndexCache() *SpatialIndexCache {
	return &SpatialIndexCache{entries: make(map[string]*layerIndex)}
}

func cacheKey(filePath, layerID string) string {
	return filePath + "\x00" + layerID
}

// GetOrBuild returns the cached index for (filePath, layerID), building it
// via build() on first access. Build is only ever invoked once per key.
func (c *SpatialIndexCache) GetOrBuild(filePath, layerID string, build func() *layerIndex) *layerIndex {
	key := cacheKey(filePath, layerID)

	c.mu.RLock()
	if idx, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return idx
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.entries[key]; ok {
		return idx
	}
	idx := build()
	c.entries[key] = idx
	return idx
}

// InvalidateFile evicts every entry whose key belongs to filePath. Called
// by the Orchestrator when it advances to the next file.
func (c *SpatialIndexCache) InvalidateFile(filePath string) {
	prefix := filePath + "\x00"
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *SpatialIndexCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*layerIndex)
}
