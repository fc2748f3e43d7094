// Package render draws plan-view previews of design-space walk results.
package render

import (
	"math"

	"github.com/ardesh/lancelet-gh/internal/config"
	"github.com/ardesh/lancelet-gh/internal/walker"
)

// Options controls the preview canvas.
type Options struct {
	Width   int
	Height  int
	Padding int
	Stroke  float64
}

// FromConfig maps render settings onto Options, filling gaps with defaults.
func FromConfig(r config.Render) Options {
	def := config.Default().Render
	opts := Options{Width: r.Width, Height: r.Height, Padding: r.Padding, Stroke: r.Stroke}
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Padding <= 0 {
		opts.Padding = def.Padding
	}
	if opts.Stroke <= 0 {
		opts.Stroke = def.Stroke
	}
	return opts
}

// viewport maps design-space X/Y onto canvas pixels, Y up.
type viewport struct {
	minX, minY float64
	offX, offY float64
	scale      float64
	height     float64
}

func newViewport(res *walker.Result, opts Options) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	fold := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, c := range res.Curves {
		for _, v := range c.Vertices {
			fold(v.X, v.Y)
		}
	}
	for _, p := range res.Points {
		fold(p.Point.X, p.Point.Y)
	}

	w, h := float64(opts.Width), float64(opts.Height)
	pad := math.Max(float64(opts.Padding), math.Ceil(opts.Stroke)+1)
	innerW, innerH := math.Max(w-2*pad, 1), math.Max(h-2*pad, 1)

	if minX > maxX {
		// nothing to draw
		return viewport{scale: 1, offX: w / 2, offY: h / 2, height: h}
	}

	dx, dy := maxX-minX, maxY-minY
	scale := 1.0
	switch {
	case dx > 0 && dy > 0:
		scale = math.Min(innerW/dx, innerH/dy)
	case dx > 0:
		scale = innerW / dx
	case dy > 0:
		scale = innerH / dy
	}

	return viewport{
		minX:   minX,
		minY:   minY,
		scale:  scale,
		offX:   pad + (innerW-dx*scale)/2,
		offY:   pad + (innerH-dy*scale)/2,
		height: h,
	}
}

func (v viewport) project(x, y float64) (float64, float64) {
	px := v.offX + (x-v.minX)*v.scale
	py := v.height - (v.offY + (y-v.minY)*v.scale)
	return px, py
}
