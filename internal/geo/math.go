package geo

import "math"

// MetersPerDegree is the flat-Earth length of one degree of latitude.
const MetersPerDegree = 111111.0

// Anchor is the Earth Anchor Point: the geographic location mapped to the
// design-space origin, plus the true-north rotation of the design frame.
type Anchor struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
	Elevation float64 `yaml:"elevation" json:"elevation"`   // design units
	TrueNorth float64 `yaml:"true_north" json:"true_north"` // degrees
}

// GeoPoint is a WGS84 position in degrees.
type GeoPoint struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// ModelPoint is a position in design space.
type ModelPoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Transformer converts WGS84 lon/lat into design-space coordinates using a
// local flat-Earth approximation around the anchor. It is only accurate for
// site-scale extents near the anchor.
//
// A Transformer is immutable after construction and safe for concurrent use.
type Transformer struct {
	anchor          Anchor
	scale           float64
	metersPerDegLon float64
	north           [2]float64
	east            [2]float64
}

// NewTransformer builds a Transformer for the anchor and a meters to
// design-unit scale. Anchor values are not range checked.
func NewTransformer(anchor Anchor, scale float64) *Transformer {
	theta := anchor.TrueNorth * math.Pi / 180.0
	sin, cos := math.Sincos(theta)

	return &Transformer{
		anchor:          anchor,
		scale:           scale,
		metersPerDegLon: MetersPerDegree * math.Cos(anchor.Latitude*math.Pi/180.0),
		north:           [2]float64{sin, cos},
		east:            [2]float64{cos, -sin},
	}
}

// Transform maps a lon/lat pair to design space. Z is always the anchor elevation.
func (t *Transformer) Transform(lon, lat float64) ModelPoint {
	eastMeters := (lon - t.anchor.Longitude) * t.metersPerDegLon
	northMeters := (lat - t.anchor.Latitude) * MetersPerDegree

	e := eastMeters * t.scale
	n := northMeters * t.scale

	return ModelPoint{
		X: n*t.north[0] + e*t.east[0],
		Y: n*t.north[1] + e*t.east[1],
		Z: t.anchor.Elevation,
	}
}

// TransformAll maps every point in order.
func (t *Transformer) TransformAll(points []GeoPoint) []ModelPoint {
	out := make([]ModelPoint, len(points))
	for i, p := range points {
		out[i] = t.Transform(p.Lon, p.Lat)
	}
	return out
}

// Anchor returns the anchor the Transformer was built with.
func (t *Transformer) Anchor() Anchor { return t.anchor }

// Scale returns the meters to design-unit factor.
func (t *Transformer) Scale() float64 { return t.scale }

// MetersPerDegreeLongitude returns the east-west degree length at the anchor latitude.
func (t *Transformer) MetersPerDegreeLongitude() float64 { return t.metersPerDegLon }
