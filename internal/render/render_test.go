package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardesh/lancelet-gh/internal/config"
	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func sampleResult() *walker.Result {
	return &walker.Result{
		Curves: []walker.Curve{
			{Name: "lot <A>", Vertices: []geo.ModelPoint{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 0, Y: 0}}},
			{Name: "fence", Vertices: []geo.ModelPoint{{X: 10, Y: 10}, {X: 90, Y: 40}}},
		},
		Points: []walker.Point{{Name: "well", Point: geo.ModelPoint{X: 50, Y: 25}}},
	}
}

var testOptions = Options{Width: 200, Height: 120, Padding: 10, Stroke: 2}

func TestViewportFitsAndFlips(t *testing.T) {
	vp := newViewport(sampleResult(), testOptions)

	x0, y0 := vp.project(0, 0)
	x1, y1 := vp.project(100, 50)

	assert.InDelta(t, 10, x0, 1e-9)
	assert.InDelta(t, 190, x1, 1e-9)
	assert.Greater(t, y0, y1, "design +Y points up")
	assert.InDelta(t, 60, (y0+y1)/2, 1e-9, "content is centered vertically")
}

func TestViewportDegenerate(t *testing.T) {
	single := &walker.Result{Points: []walker.Point{{Point: geo.ModelPoint{X: 5, Y: 5}}}}
	vp := newViewport(single, testOptions)
	x, y := vp.project(5, 5)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 60, y, 1e-9)

	empty := newViewport(&walker.Result{}, testOptions)
	assert.Equal(t, 1.0, empty.scale)
}

func TestSVGDocument(t *testing.T) {
	doc := svgDocument(sampleResult(), testOptions)

	assert.Equal(t, 2, strings.Count(doc, "<polyline"))
	assert.Equal(t, 1, strings.Count(doc, "<circle"))
	assert.Contains(t, doc, `viewBox="0 0 200 120"`)
	assert.Contains(t, doc, "lot &lt;A&gt;")
	assert.Contains(t, doc, `points="10.00,`)
}

func TestSVGMinified(t *testing.T) {
	out, err := SVG(sampleResult(), testOptions)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Contains(t, s, "</svg>")
	assert.Less(t, len(s), len(svgDocument(sampleResult(), testOptions)))
}

func TestWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WebP(&buf, sampleResult(), testOptions))

	img, err := xwebp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	dark := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r < 0x8000 {
				dark++
			}
		}
	}
	assert.Positive(t, dark, "strokes are drawn")
}

func TestRasterEmpty(t *testing.T) {
	img := Raster(&walker.Result{}, testOptions)
	assert.Equal(t, background, img.RGBAAt(100, 60))
}

func TestFromConfig(t *testing.T) {
	opts := FromConfig(config.Render{Width: 300})
	assert.Equal(t, 300, opts.Width)
	assert.Equal(t, config.Default().Render.Height, opts.Height)
	assert.Positive(t, opts.Stroke)
}
