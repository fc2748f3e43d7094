// Package walker expands decoded GeoJSON features into design-space curves,
// points, names and attribute groups.
package walker

import (
	"fmt"
	"strings"

	"github.com/ardesh/lancelet-gh/internal/geo"

	"golang.org/x/sync/errgroup"
)

// ShapePolicy decides what a walk does with a malformed feature.
type ShapePolicy int

const (
	// AbortOnShapeError fails the whole walk on the first malformed feature.
	AbortOnShapeError ShapePolicy = iota
	// SkipMalformed records malformed features in Result.Skipped and continues.
	SkipMalformed
)

func (p ShapePolicy) String() string {
	if p == SkipMalformed {
		return "skip"
	}
	return "abort"
}

// ParseShapePolicy accepts "abort" (or "") and "skip".
func ParseShapePolicy(s string) (ShapePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return AbortOnShapeError, nil
	case "skip":
		return SkipMalformed, nil
	default:
		return AbortOnShapeError, fmt.Errorf("%w: unknown shape policy %q", geo.ErrInvalidConfig, s)
	}
}

// Options tune a walk. The zero value walks every feature sequentially and
// aborts on the first malformed one.
type Options struct {
	// Clip limits the walk to features whose bounds intersect the box.
	Clip    *geo.Bounds
	Policy  ShapePolicy
	Workers int
}

// Curve is an open polyline in design space, one per line or ring.
type Curve struct {
	Name     string           `json:"name" yaml:"name"`
	Vertices []geo.ModelPoint `json:"vertices" yaml:"vertices"`
	Feature  int              `json:"feature" yaml:"feature"`
}

// Point is a single transformed vertex from a Point feature.
type Point struct {
	Name    string         `json:"name" yaml:"name"`
	Point   geo.ModelPoint `json:"point" yaml:"point"`
	Feature int            `json:"feature" yaml:"feature"`
}

// Attribute is a property key with its display value.
type Attribute struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// AttributeGroup holds the properties of one feature, keyed by its position.
type AttributeGroup struct {
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Feature    int         `json:"feature" yaml:"feature"`
}

// Issue describes a feature left out by SkipMalformed.
type Issue struct {
	Err     error  `json:"-" yaml:"-"`
	Reason  string `json:"reason" yaml:"reason"`
	Feature int    `json:"feature" yaml:"feature"`
}

// Result is the output of a walk. Names has one entry per emitted point or
// curve, in emission order.
type Result struct {
	Curves     []Curve          `json:"curves" yaml:"curves"`
	Points     []Point          `json:"points" yaml:"points"`
	Names      []string         `json:"names" yaml:"names"`
	Attributes []AttributeGroup `json:"attributes" yaml:"attributes"`
	Skipped    []Issue          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type featureOutput struct {
	points []Point
	curves []Curve
	names  []string
	attrs  AttributeGroup
}

// Walk transforms every feature of fc with tr.
func Walk(fc *geo.FeatureCollection, tr *geo.Transformer, opts Options) (*Result, error) {
	features, err := selectFeatures(fc, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Curves:     []Curve{},
		Points:     []Point{},
		Names:      []string{},
		Attributes: make([]AttributeGroup, 0, len(features)),
	}

	// malformed features are resolved up front so the parallel path cannot fail
	valid := make([]*geo.Feature, 0, len(features))
	for _, f := range features {
		if f.Err == nil {
			valid = append(valid, f)
			continue
		}
		if opts.Policy == AbortOnShapeError {
			return nil, f.Err
		}
		res.Skipped = append(res.Skipped, Issue{Feature: f.Index, Err: f.Err, Reason: f.Err.Error()})
	}

	outputs := make([]featureOutput, len(valid))
	if opts.Workers > 1 && len(valid) > 1 {
		// errgroup only bounds the worker count; walkFeature cannot fail
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, f := range valid {
			i, f := i, f
			g.Go(func() error {
				outputs[i] = walkFeature(f, tr)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, f := range valid {
			outputs[i] = walkFeature(f, tr)
		}
	}

	for _, out := range outputs {
		res.Points = append(res.Points, out.points...)
		res.Curves = append(res.Curves, out.curves...)
		res.Names = append(res.Names, out.names...)
		res.Attributes = append(res.Attributes, out.attrs)
	}

	return res, nil
}

// selectFeatures returns the features to walk in index order.
func selectFeatures(fc *geo.FeatureCollection, opts Options) ([]*geo.Feature, error) {
	if fc == nil {
		return nil, geo.ErrMissingFeatures
	}

	if opts.Clip == nil {
		features := make([]*geo.Feature, len(fc.Features))
		for i := range fc.Features {
			features[i] = &fc.Features[i]
		}
		return features, nil
	}

	if opts.Clip.Empty() {
		return nil, fmt.Errorf("%w: clip box is empty", geo.ErrInvalidConfig)
	}

	// malformed features have no reliable bounds; keep them so the policy still applies
	idx := NewFeatureIndex(fc)
	hits := idx.Query(*opts.Clip)
	features := make([]*geo.Feature, 0, len(hits))
	h := 0
	for i := range fc.Features {
		f := &fc.Features[i]
		if h < len(hits) && hits[h] == i {
			features = append(features, f)
			h++
			continue
		}
		if f.Err != nil {
			features = append(features, f)
		}
	}

	return features, nil
}

func walkFeature(f *geo.Feature, tr *geo.Transformer) featureOutput {
	out := featureOutput{attrs: attributeGroup(f)}
	name := f.Name()

	switch f.Geometry.Type {
	case geo.GeometryPoint:
		p := f.Geometry.Point
		out.points = append(out.points, Point{
			Feature: f.Index,
			Name:    name,
			Point:   tr.Transform(p.Lon, p.Lat),
		})
		out.names = append(out.names, name)

	case geo.GeometryOther:
		// counted in summaries only

	default:
		for _, line := range f.Geometry.Lines() {
			if len(line) < 2 {
				continue
			}
			out.curves = append(out.curves, Curve{
				Feature:  f.Index,
				Name:     name,
				Vertices: tr.TransformAll(line),
			})
			out.names = append(out.names, name)
		}
	}

	return out
}

func attributeGroup(f *geo.Feature) AttributeGroup {
	group := AttributeGroup{
		Feature:    f.Index,
		Attributes: make([]Attribute, len(f.Properties)),
	}
	for i, p := range f.Properties {
		group.Attributes[i] = Attribute{Key: p.Key, Value: p.Value}
	}
	return group
}
