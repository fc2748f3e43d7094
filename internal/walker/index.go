package walker

import (
	"sort"

	"github.com/ardesh/lancelet-gh/internal/geo"

	"github.com/dhconnelly/rtreego"
)

// rects are padded outward by this much so zero-area boxes (points, vertical
// lines) and touching edges still reach the R-tree as overlaps
const indexEpsilon = 0.0001

// FeatureIndex is an R-tree over the geographic bounds of a collection's
// features, for clip box queries.
type FeatureIndex struct {
	tree *rtreego.Rtree
}

type indexedFeature struct {
	bounds geo.Bounds
	index  int
}

// Bounds implements rtreego.Spatial.
func (f *indexedFeature) Bounds() rtreego.Rect {
	return toRect(f.bounds)
}

func toRect(b geo.Bounds) rtreego.Rect {
	point := rtreego.Point{b.MinLon - indexEpsilon, b.MinLat - indexEpsilon}
	lengths := []float64{
		b.MaxLon - b.MinLon + 2*indexEpsilon,
		b.MaxLat - b.MinLat + 2*indexEpsilon,
	}

	// lengths are at least 2*indexEpsilon, so NewRect cannot fail
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewFeatureIndex indexes every well-formed feature that has at least one position.
func NewFeatureIndex(fc *geo.FeatureCollection) *FeatureIndex {
	tree := rtreego.NewTree(2, 25, 50)

	for i := range fc.Features {
		f := &fc.Features[i]
		if f.Err != nil {
			continue
		}
		b := f.Geometry.Bounds()
		if b.Empty() {
			continue
		}
		tree.Insert(&indexedFeature{index: f.Index, bounds: b})
	}

	return &FeatureIndex{tree: tree}
}

// Len returns the number of indexed features.
func (idx *FeatureIndex) Len() int {
	return idx.tree.Size()
}

// Query returns the indexes of features whose bounds intersect b, edges
// included, ascending. The R-tree only narrows candidates; each one is
// checked against b exactly.
func (idx *FeatureIndex) Query(b geo.Bounds) []int {
	if b.Empty() {
		return nil
	}

	spatials := idx.tree.SearchIntersect(toRect(b))
	hits := make([]int, 0, len(spatials))
	for _, s := range spatials {
		f := s.(*indexedFeature)
		if b.Intersects(f.bounds) {
			hits = append(hits, f.index)
		}
	}
	sort.Ints(hits)

	return hits
}
