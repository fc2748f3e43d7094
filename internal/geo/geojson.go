// Package geo handles GeoJSON decoding and the conversion of WGS84
// coordinates into a local design-space frame.
package geo

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"
)

// FeatureCollection is a decoded GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string
	Features []Feature
}

// Feature is a single geographic feature with geometry and ordered properties.
type Feature struct {
	// Err is set when the feature's JSON shape does not match its declared
	// geometry type. Geometry is unusable in that case.
	Err error

	Type       string
	Properties Properties
	Geometry   Geometry
	Index      int
}

// Property is one feature property. Value is the display string, Raw the
// compact JSON text.
type Property struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Raw   string `json:"-" yaml:"-"`
}

// Properties keeps feature properties in document order.
type Properties []Property

// Get returns the first property named key. JSON null counts as absent.
func (p Properties) Get(key string) (Property, bool) {
	for _, prop := range p {
		if prop.Key == key {
			if prop.Raw == "null" {
				return Property{}, false
			}
			return prop, true
		}
	}
	return Property{}, false
}

// Keys returns property keys in document order.
func (p Properties) Keys() []string {
	keys := make([]string, len(p))
	for i, prop := range p {
		keys[i] = prop.Key
	}
	return keys
}

// Name resolves the display name: "NAME", then "name", then Feature_<index>.
func (f *Feature) Name() string {
	if p, ok := f.Properties.Get("NAME"); ok {
		return p.Value
	}
	if p, ok := f.Properties.Get("name"); ok {
		return p.Value
	}
	return "Feature_" + strconv.Itoa(f.Index)
}

// Parse decodes a GeoJSON FeatureCollection. Document level problems (invalid
// JSON, no "features" array) fail the whole call; per-feature shape problems
// are recorded on Feature.Err and left for the caller to act on.
func Parse(data []byte) (*FeatureCollection, error) {
	var p fastjson.Parser
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: root is %s, not an object", ErrInvalidDocument, root.Type())
	}

	features := root.Get("features")
	if features == nil {
		return nil, ErrMissingFeatures
	}
	items, err := features.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFeatures, err)
	}

	fc := &FeatureCollection{
		Type:     string(root.GetStringBytes("type")),
		Features: make([]Feature, 0, len(items)),
	}
	for i, item := range items {
		fc.Features = append(fc.Features, decodeFeature(i, item))
	}

	return fc, nil
}

func decodeFeature(index int, v *fastjson.Value) Feature {
	f := Feature{Index: index}

	if v.Type() != fastjson.TypeObject {
		f.Err = &ShapeError{Feature: index, Reason: fmt.Sprintf("feature is %s, not an object", v.Type())}
		return f
	}
	f.Type = string(v.GetStringBytes("type"))

	props, err := decodeProperties(v.Get("properties"))
	if err != nil {
		f.Err = &ShapeError{Feature: index, Reason: err.Error()}
		return f
	}
	f.Properties = props

	g, err := decodeGeometry(v.Get("geometry"))
	f.Geometry = g
	if err != nil {
		f.Err = &ShapeError{Feature: index, Type: g.Declared, Reason: err.Error()}
	}

	return f
}

func decodeProperties(v *fastjson.Value) (Properties, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return nil, nil
	}

	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}

	props := make(Properties, 0, obj.Len())
	obj.Visit(func(key []byte, val *fastjson.Value) {
		props = append(props, Property{
			Key:   string(key),
			Value: stringify(val),
			Raw:   val.String(),
		})
	})

	return props, nil
}

// stringify renders a property value for display. Numbers are normalized
// ("1.50" and "15e-1" both become "1.5"), null becomes "".
func stringify(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return string(s)
	case fastjson.TypeNumber:
		raw := v.String()
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return raw
		}
		return d.String()
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}
