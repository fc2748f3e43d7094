package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

var svgMinifier = newSVGMinifier()

func newSVGMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

// SVG renders the result as a minified SVG document.
func SVG(res *walker.Result, opts Options) ([]byte, error) {
	return svgMinifier.Bytes("image/svg+xml", []byte(svgDocument(res, opts)))
}

func svgDocument(res *walker.Result, opts Options) string {
	vp := newViewport(res, opts)
	w, h := strconv.Itoa(opts.Width), strconv.Itoa(opts.Height)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="` + w + `" height="` + h +
		`" viewBox="0 0 ` + w + ` ` + h + `">` + "\n")
	b.WriteString(`<rect width="` + w + `" height="` + h + `" fill="#ffffff"/>` + "\n")

	b.WriteString(`<g fill="none" stroke="#1f2933" stroke-width="` + num(opts.Stroke) +
		`" stroke-linejoin="round" stroke-linecap="round">` + "\n")
	for _, c := range res.Curves {
		b.WriteString(`<polyline points="`)
		for i, v := range c.Vertices {
			if i > 0 {
				b.WriteByte(' ')
			}
			x, y := vp.project(v.X, v.Y)
			b.WriteString(num(x) + "," + num(y))
		}
		b.WriteString(`"><title>` + html.EscapeString(c.Name) + `</title></polyline>` + "\n")
	}
	b.WriteString("</g>\n")

	r := num(opts.Stroke * 2)
	b.WriteString(`<g fill="#c0392b">` + "\n")
	for _, p := range res.Points {
		x, y := vp.project(p.Point.X, p.Point.Y)
		b.WriteString(`<circle cx="` + num(x) + `" cy="` + num(y) + `" r="` + r + `"><title>` +
			html.EscapeString(p.Name) + `</title></circle>` + "\n")
	}
	b.WriteString("</g>\n</svg>\n")

	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
