package geo

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

// GeometryType is the tag of a decoded Geometry.
type GeometryType int

const (
	GeometryOther GeometryType = iota
	GeometryPoint
	GeometryLineString
	GeometryPolygon
	GeometryMultiLineString
	GeometryMultiPolygon
)

var geometryNames = map[GeometryType]string{
	GeometryOther:           "Other",
	GeometryPoint:           "Point",
	GeometryLineString:      "LineString",
	GeometryPolygon:         "Polygon",
	GeometryMultiLineString: "MultiLineString",
	GeometryMultiPolygon:    "MultiPolygon",
}

func (t GeometryType) String() string {
	if name, ok := geometryNames[t]; ok {
		return name
	}
	return "Other"
}

// ParseGeometryType maps a GeoJSON "type" string to its tag. Matching is
// case-sensitive, as in RFC 7946; anything unrecognized is GeometryOther.
func ParseGeometryType(name string) GeometryType {
	for t, n := range geometryNames {
		if t != GeometryOther && n == name {
			return t
		}
	}
	return GeometryOther
}

// Geometry is a decoded GeoJSON geometry. Only the payload matching Type is set.
type Geometry struct {
	// Declared is the "type" string as found in the document ("" when absent).
	Declared string

	Line         []GeoPoint
	Polygon      [][]GeoPoint
	MultiLine    [][]GeoPoint
	MultiPolygon [][][]GeoPoint

	// Other holds every position found under an unrecognized type. It only
	// feeds bounds.
	Other []GeoPoint

	Point GeoPoint
	Type  GeometryType
}

// Lines returns the ordered vertex lists this geometry fans out into:
// the line itself, every ring, or every ring of every polygon.
// Points and unrecognized geometries yield nil.
func (g Geometry) Lines() [][]GeoPoint {
	switch g.Type {
	case GeometryLineString:
		return [][]GeoPoint{g.Line}
	case GeometryPolygon:
		return g.Polygon
	case GeometryMultiLineString:
		return g.MultiLine
	case GeometryMultiPolygon:
		lines := make([][]GeoPoint, 0, len(g.MultiPolygon))
		for _, rings := range g.MultiPolygon {
			lines = append(lines, rings...)
		}
		return lines
	default:
		return nil
	}
}

// Bounds returns the geographic extent of the geometry.
func (g Geometry) Bounds() Bounds {
	b := EmptyBounds()

	switch g.Type {
	case GeometryPoint:
		b.Extend(g.Point)
	case GeometryLineString:
		b.ExtendAll(g.Line)
	case GeometryPolygon:
		for _, ring := range g.Polygon {
			b.ExtendAll(ring)
		}
	case GeometryMultiLineString:
		for _, line := range g.MultiLine {
			b.ExtendAll(line)
		}
	case GeometryMultiPolygon:
		for _, rings := range g.MultiPolygon {
			for _, ring := range rings {
				b.ExtendAll(ring)
			}
		}
	default:
		b.ExtendAll(g.Other)
	}

	return b
}

// VertexCount returns the number of positions held by the geometry.
func (g Geometry) VertexCount() int {
	if g.Type == GeometryPoint {
		return 1
	}
	if g.Type == GeometryOther {
		return len(g.Other)
	}

	n := 0
	for _, line := range g.Lines() {
		n += len(line)
	}
	return n
}

var errMissingCoordinates = errors.New("missing coordinates")

// decodeGeometry decodes a geometry object. A null or absent geometry, or one
// without a type, is GeometryOther.
func decodeGeometry(v *fastjson.Value) (Geometry, error) {
	if v == nil || v.Type() == fastjson.TypeNull {
		return Geometry{Type: GeometryOther}, nil
	}
	if v.Type() != fastjson.TypeObject {
		return Geometry{Type: GeometryOther}, fmt.Errorf("geometry is %s, not an object", v.Type())
	}

	g := Geometry{Declared: string(v.GetStringBytes("type"))}
	g.Type = ParseGeometryType(g.Declared)

	coords := v.Get("coordinates")
	if g.Type == GeometryOther {
		g.Other = collectPositions(coords, nil)
		return g, nil
	}
	if coords == nil || coords.Type() == fastjson.TypeNull {
		return g, errMissingCoordinates
	}

	var err error
	switch g.Type {
	case GeometryPoint:
		g.Point, err = decodePosition(coords)
	case GeometryLineString:
		g.Line, err = decodeLine(coords)
	case GeometryPolygon:
		g.Polygon, err = decodeLines(coords)
	case GeometryMultiLineString:
		g.MultiLine, err = decodeLines(coords)
	case GeometryMultiPolygon:
		g.MultiPolygon, err = decodePolygons(coords)
	}

	return g, err
}

// decodePosition reads [lon, lat, ...]; elements past the second are ignored.
func decodePosition(v *fastjson.Value) (GeoPoint, error) {
	items, err := v.Array()
	if err != nil {
		return GeoPoint{}, fmt.Errorf("position: %w", err)
	}
	if len(items) < 2 {
		return GeoPoint{}, fmt.Errorf("position has %d elements, need at least 2", len(items))
	}

	lon, err := items[0].Float64()
	if err != nil {
		return GeoPoint{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := items[1].Float64()
	if err != nil {
		return GeoPoint{}, fmt.Errorf("latitude: %w", err)
	}

	return GeoPoint{Lon: lon, Lat: lat}, nil
}

func decodeLine(v *fastjson.Value) ([]GeoPoint, error) {
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}

	line := make([]GeoPoint, 0, len(items))
	for i, item := range items {
		p, err := decodePosition(item)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		line = append(line, p)
	}

	return line, nil
}

// decodeLines reads a list of lines: polygon rings or MultiLineString members.
func decodeLines(v *fastjson.Value) ([][]GeoPoint, error) {
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("line list: %w", err)
	}

	lines := make([][]GeoPoint, 0, len(items))
	for i, item := range items {
		line, err := decodeLine(item)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func decodePolygons(v *fastjson.Value) ([][][]GeoPoint, error) {
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("polygon list: %w", err)
	}

	polygons := make([][][]GeoPoint, 0, len(items))
	for i, item := range items {
		rings, err := decodeLines(item)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		polygons = append(polygons, rings)
	}

	return polygons, nil
}

// collectPositions walks an arbitrary coordinate tree and keeps every array
// that starts with two numbers. Anything else is skipped.
func collectPositions(v *fastjson.Value, dst []GeoPoint) []GeoPoint {
	if v == nil || v.Type() != fastjson.TypeArray {
		return dst
	}

	if p, err := decodePosition(v); err == nil {
		return append(dst, p)
	}

	items, _ := v.Array()
	for _, item := range items {
		dst = collectPositions(item, dst)
	}
	return dst
}
