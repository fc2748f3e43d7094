package geo

import "math"

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
}

// EmptyBounds returns a box that contains nothing; extending it with a point
// yields a zero-area box at that point.
func EmptyBounds() Bounds {
	return Bounds{
		MinLon: math.Inf(1),
		MaxLon: math.Inf(-1),
		MinLat: math.Inf(1),
		MaxLat: math.Inf(-1),
	}
}

// Empty reports whether no point has been folded into b.
func (b Bounds) Empty() bool {
	return b.MinLon > b.MaxLon || b.MinLat > b.MaxLat
}

// Extend grows b to include p.
func (b *Bounds) Extend(p GeoPoint) {
	b.MinLon = math.Min(b.MinLon, p.Lon)
	b.MaxLon = math.Max(b.MaxLon, p.Lon)
	b.MinLat = math.Min(b.MinLat, p.Lat)
	b.MaxLat = math.Max(b.MaxLat, p.Lat)
}

// ExtendAll grows b to include every point.
func (b *Bounds) ExtendAll(points []GeoPoint) {
	for _, p := range points {
		b.Extend(p)
	}
}

// Union grows b to include o. Empty boxes are ignored.
func (b *Bounds) Union(o Bounds) {
	if o.Empty() {
		return
	}
	b.Extend(GeoPoint{Lon: o.MinLon, Lat: o.MinLat})
	b.Extend(GeoPoint{Lon: o.MaxLon, Lat: o.MaxLat})
}

// Intersects reports whether the two boxes overlap, edges included.
func (b Bounds) Intersects(o Bounds) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.MinLon <= o.MaxLon && o.MinLon <= b.MaxLon &&
		b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}
