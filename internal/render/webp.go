package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/chai2010/webp"
	"golang.org/x/image/vector"
)

var (
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	lineColor  = color.RGBA{R: 0x1f, G: 0x29, B: 0x33, A: 0xff}
	pointColor = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
)

// Raster draws the result onto an opaque RGBA canvas.
func Raster(res *walker.Result, opts Options) *image.RGBA {
	vp := newViewport(res, opts)
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	half := opts.Stroke / 2
	z := vector.NewRasterizer(opts.Width, opts.Height)
	for _, c := range res.Curves {
		for i := 1; i < len(c.Vertices); i++ {
			ax, ay := vp.project(c.Vertices[i-1].X, c.Vertices[i-1].Y)
			bx, by := vp.project(c.Vertices[i].X, c.Vertices[i].Y)
			segment(z, ax, ay, bx, by, half)
		}
	}
	z.Draw(img, img.Bounds(), image.NewUniform(lineColor), image.Point{})

	if len(res.Points) > 0 {
		r := opts.Stroke * 2
		z.Reset(opts.Width, opts.Height)
		for _, p := range res.Points {
			x, y := vp.project(p.Point.X, p.Point.Y)
			segment(z, x-r, y, x+r, y, r)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(pointColor), image.Point{})
	}

	return img
}

// WebP renders the result and writes it as a lossless WebP image.
func WebP(w io.Writer, res *walker.Result, opts Options) error {
	return webp.Encode(w, Raster(res, opts), &webp.Options{Lossless: true})
}

// segment adds a stroked line as a quad. Every quad shares one winding so
// overlapping strokes never cancel out.
func segment(z *vector.Rasterizer, ax, ay, bx, by, half float64) {
	if half <= 0 {
		return
	}
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		segment(z, ax-half, ay, ax+half, ay, half)
		return
	}
	nx, ny := -dy/l*half, dx/l*half

	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()
}
