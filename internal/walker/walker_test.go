package walker

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ardesh/lancelet-gh/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAnchor = geo.Anchor{Latitude: 39.1, Longitude: -77.5, Elevation: 250, TrueNorth: 15}

func parse(t *testing.T, features ...string) *geo.FeatureCollection {
	t.Helper()
	doc := `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
	fc, err := geo.Parse([]byte(doc))
	require.NoError(t, err)
	return fc
}

func feature(geometry, properties string) string {
	return fmt.Sprintf(`{"type":"Feature","geometry":%s,"properties":%s}`, geometry, properties)
}

func ring(n int, lon, lat float64) string {
	coords := make([]string, n)
	for i := range coords {
		coords[i] = fmt.Sprintf("[%g,%g]", lon+float64(i)*0.0001, lat+float64(i%2)*0.0001)
	}
	return "[" + strings.Join(coords, ",") + "]"
}

func transformer() *geo.Transformer {
	return geo.NewTransformer(testAnchor, geo.UnitFeet.Scale())
}

func TestWalkFanOut(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"Point","coordinates":[-77.5,39.1]}`, `{"NAME":"well"}`),
		feature(`{"type":"LineString","coordinates":`+ring(4, -77.5, 39.1)+`}`, `{"name":"fence"}`),
		feature(`{"type":"Polygon","coordinates":[`+ring(5, -77.49, 39.1)+`,`+ring(4, -77.4899, 39.1001)+`]}`, `{"name":"lot","area":1200}`),
	)

	res, err := Walk(fc, transformer(), Options{})
	require.NoError(t, err)

	require.Len(t, res.Points, 1)
	assert.Equal(t, geo.ModelPoint{X: 0, Y: 0, Z: 250}, res.Points[0].Point)
	assert.Equal(t, "well", res.Points[0].Name)

	require.Len(t, res.Curves, 3)
	assert.Len(t, res.Curves[0].Vertices, 4)
	assert.Len(t, res.Curves[1].Vertices, 5)
	assert.Len(t, res.Curves[2].Vertices, 4)
	assert.Equal(t, "lot", res.Curves[1].Name)
	assert.Equal(t, "lot", res.Curves[2].Name)
	assert.Equal(t, 2, res.Curves[2].Feature)

	assert.Equal(t, []string{"well", "fence", "lot", "lot"}, res.Names)

	require.Len(t, res.Attributes, 3)
	assert.Equal(t, []Attribute{{Key: "name", Value: "lot"}, {Key: "area", Value: "1200"}}, res.Attributes[2].Attributes)
	assert.Empty(t, res.Skipped)

	for _, c := range res.Curves {
		for _, v := range c.Vertices {
			assert.Equal(t, 250.0, v.Z)
		}
	}
}

func TestWalkMultiGeometries(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"MultiLineString","coordinates":[`+ring(2, 1, 1)+`,`+ring(3, 2, 2)+`]}`, `{}`),
		feature(`{"type":"MultiPolygon","coordinates":[[`+ring(4, 1, 1)+`],[`+ring(4, 2, 2)+`,`+ring(5, 3, 3)+`]]}`, `{}`),
	)

	res, err := Walk(fc, transformer(), Options{})
	require.NoError(t, err)

	require.Len(t, res.Curves, 5)
	assert.Equal(t, []string{"Feature_0", "Feature_0", "Feature_1", "Feature_1", "Feature_1"}, res.Names)
	assert.Len(t, res.Curves[4].Vertices, 5)
}

func TestWalkDropsDegenerateLines(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"Polygon","coordinates":[[[-77.5,39.1]]]}`, `{"name":"tiny"}`),
		feature(`{"type":"LineString","coordinates":[]}`, `{"name":"empty"}`),
		feature(`{"type":"Polygon","coordinates":[`+ring(4, -77.5, 39.1)+`,[[-77.5,39.1]]]}`, `{"name":"holed"}`),
	)

	res, err := Walk(fc, transformer(), Options{})
	require.NoError(t, err)

	require.Len(t, res.Curves, 1)
	assert.Equal(t, []string{"holed"}, res.Names)
	assert.Len(t, res.Attributes, 3)
}

func TestWalkOtherGeometries(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"MultiPoint","coordinates":[[1,2]]}`, `{"kind":"mp"}`),
		feature(`null`, `{"kind":"none"}`),
		feature(`{"coordinates":[1,2]}`, `{"kind":"untyped"}`),
	)

	res, err := Walk(fc, transformer(), Options{})
	require.NoError(t, err)

	assert.Empty(t, res.Curves)
	assert.Empty(t, res.Points)
	assert.Empty(t, res.Names)
	require.Len(t, res.Attributes, 3)
	assert.Equal(t, "untyped", res.Attributes[2].Attributes[0].Value)
}

func TestWalkShapePolicy(t *testing.T) {
	features := []string{
		feature(`{"type":"Point","coordinates":[-77.5,39.1]}`, `{}`),
		feature(`{"type":"LineString","coordinates":[1,2]}`, `{"name":"bad"}`),
		feature(`{"type":"Point","coordinates":[-77.5,39.2]}`, `{}`),
		feature(`{"type":"Polygon","coordinates":"nope"}`, `{}`),
	}

	t.Run("abort by default", func(t *testing.T) {
		res, err := Walk(parse(t, features...), transformer(), Options{})
		require.Error(t, err)
		assert.Nil(t, res)

		var shapeErr *geo.ShapeError
		require.True(t, errors.As(err, &shapeErr))
		assert.Equal(t, 1, shapeErr.Feature)
		assert.Equal(t, "LineString", shapeErr.Type)
		assert.Equal(t, geo.KindShape, geo.KindOf(err))
	})

	t.Run("skip", func(t *testing.T) {
		res, err := Walk(parse(t, features...), transformer(), Options{Policy: SkipMalformed})
		require.NoError(t, err)

		assert.Len(t, res.Points, 2)
		assert.Equal(t, []string{"Feature_0", "Feature_2"}, res.Names)
		require.Len(t, res.Skipped, 2)
		assert.Equal(t, 1, res.Skipped[0].Feature)
		assert.Equal(t, 3, res.Skipped[1].Feature)
		assert.NotEmpty(t, res.Skipped[1].Reason)

		require.Len(t, res.Attributes, 2)
		assert.Equal(t, 0, res.Attributes[0].Feature)
		assert.Equal(t, 2, res.Attributes[1].Feature)
	})
}

func TestWalkParallelMatchesSequential(t *testing.T) {
	features := make([]string, 0, 60)
	for i := 0; i < 20; i++ {
		lon := -77.5 + float64(i)*0.001
		features = append(features,
			feature(fmt.Sprintf(`{"type":"Point","coordinates":[%g,39.1]}`, lon), fmt.Sprintf(`{"name":"p%d"}`, i)),
			feature(`{"type":"LineString","coordinates":`+ring(3+i%4, lon, 39.1)+`}`, `{}`),
			feature(`{"type":"Polygon","coordinates":[`+ring(5, lon, 39.2)+`]}`, fmt.Sprintf(`{"NAME":"lot %d"}`, i)),
		)
	}
	fc := parse(t, features...)

	sequential, err := Walk(fc, transformer(), Options{})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		parallel, err := Walk(fc, transformer(), Options{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestWalkClip(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"Point","coordinates":[-77.5,39.1]}`, `{"name":"inside"}`),
		feature(`{"type":"Point","coordinates":[10,10]}`, `{"name":"far"}`),
		feature(`{"type":"LineString","coordinates":[[-78,39.1],[-77,39.1]]}`, `{"name":"crossing"}`),
		feature(`null`, `{"name":"nowhere"}`),
		feature(`{"type":"Point","coordinates":"bad"}`, `{}`),
	)
	clip := geo.Bounds{MinLon: -77.6, MaxLon: -77.4, MinLat: 39.0, MaxLat: 39.2}

	res, err := Walk(fc, transformer(), Options{Clip: &clip, Policy: SkipMalformed})
	require.NoError(t, err)
	assert.Equal(t, []string{"inside", "crossing"}, res.Names)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 4, res.Skipped[0].Feature)

	_, err = Walk(fc, transformer(), Options{Clip: &clip})
	assert.Equal(t, geo.KindShape, geo.KindOf(err))

	empty := geo.EmptyBounds()
	_, err = Walk(fc, transformer(), Options{Clip: &empty})
	assert.ErrorIs(t, err, geo.ErrInvalidConfig)
}

func TestWalkClipEdges(t *testing.T) {
	fc := parse(t,
		feature(`{"type":"Point","coordinates":[-77.60005,39.1]}`, `{"name":"just_west"}`),
		feature(`{"type":"Point","coordinates":[-77.4,39.1]}`, `{"name":"east_edge"}`),
		feature(`{"type":"LineString","coordinates":[[-77.4,39.3],[-77.3,39.4]]}`, `{"name":"corner"}`),
		feature(`{"type":"Point","coordinates":[-77.5,39.30005]}`, `{"name":"just_north"}`),
		feature(`{"type":"Point","coordinates":[-77.6,39.0]}`, `{"name":"south_west"}`),
	)
	clip := geo.Bounds{MinLon: -77.6, MaxLon: -77.4, MinLat: 39.0, MaxLat: 39.3}

	res, err := Walk(fc, transformer(), Options{Clip: &clip})
	require.NoError(t, err)
	assert.Equal(t, []string{"east_edge", "corner", "south_west"}, res.Names)

	for _, f := range fc.Features {
		name := f.Name()
		want := clip.Intersects(f.Geometry.Bounds())
		assert.Equal(t, want, containsName(res.Names, name), name)
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func TestWalkNilCollection(t *testing.T) {
	_, err := Walk(nil, transformer(), Options{})
	assert.ErrorIs(t, err, geo.ErrMissingFeatures)
}

func TestParseShapePolicy(t *testing.T) {
	p, err := ParseShapePolicy("")
	require.NoError(t, err)
	assert.Equal(t, AbortOnShapeError, p)

	p, err = ParseShapePolicy("Skip")
	require.NoError(t, err)
	assert.Equal(t, SkipMalformed, p)
	assert.Equal(t, "skip", p.String())

	_, err = ParseShapePolicy("ignore")
	assert.Equal(t, geo.KindConfig, geo.KindOf(err))
}
