package walker

import (
	"github.com/ardesh/lancelet-gh/internal/geo"
)

// Summary describes a collection without transforming it.
type Summary struct {
	// Bounds is nil when the collection holds no positions.
	Bounds        *geo.Bounds `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	AttributeKeys []string    `json:"attribute_keys" yaml:"attribute_keys"`
	Skipped       []Issue     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Features      int         `json:"features" yaml:"features"`
	Points        int         `json:"points" yaml:"points"`
	Lines         int         `json:"lines" yaml:"lines"`
	Polygons      int         `json:"polygons" yaml:"polygons"`
	Other         int         `json:"other" yaml:"other"`
}

// Summarize counts geometry kinds, collects distinct attribute keys in
// first-seen order and computes the geographic bounding box. Lines counts
// LineString and MultiLineString, Polygons counts Polygon and MultiPolygon.
// Malformed features follow opts.Policy and opts.Clip narrows the input.
func Summarize(fc *geo.FeatureCollection, opts Options) (*Summary, error) {
	features, err := selectFeatures(fc, opts)
	if err != nil {
		return nil, err
	}

	s := &Summary{AttributeKeys: []string{}}
	seen := make(map[string]struct{})
	bounds := geo.EmptyBounds()

	for _, f := range features {
		if f.Err != nil {
			if opts.Policy == AbortOnShapeError {
				return nil, f.Err
			}
			s.Skipped = append(s.Skipped, Issue{Feature: f.Index, Err: f.Err, Reason: f.Err.Error()})
			continue
		}

		s.Features++
		switch f.Geometry.Type {
		case geo.GeometryPoint:
			s.Points++
		case geo.GeometryLineString, geo.GeometryMultiLineString:
			s.Lines++
		case geo.GeometryPolygon, geo.GeometryMultiPolygon:
			s.Polygons++
		default:
			s.Other++
		}

		for _, key := range f.Properties.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			s.AttributeKeys = append(s.AttributeKeys, key)
		}

		bounds.Union(f.Geometry.Bounds())
	}

	if !bounds.Empty() {
		s.Bounds = &bounds
	}

	return s, nil
}
