// Package report renders walk results and summaries for humans and tools.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ardesh/lancelet-gh/internal/geo"
	"github.com/ardesh/lancelet-gh/internal/walker"

	"github.com/tdewolff/minify/v2"
	jsonmin "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Writer encodes results in one format.
type Writer struct {
	Format Format
	// Compact minifies JSON output.
	Compact bool
}

// WriteResult encodes a walk result.
func (rw Writer) WriteResult(w io.Writer, res *walker.Result) error {
	if rw.Format == FormatText {
		return writeResultText(w, res)
	}
	return rw.encode(w, res)
}

// WriteSummary encodes a collection summary.
func (rw Writer) WriteSummary(w io.Writer, s *walker.Summary) error {
	if rw.Format == FormatText {
		return writeSummaryText(w, s)
	}
	return rw.encode(w, s)
}

func (rw Writer) encode(w io.Writer, v any) error {
	switch rw.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		if rw.Compact {
			if data, err = MinifyJSON(data); err != nil {
				return err
			}
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("unknown output format %q", rw.Format)
	}
}

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("application/json", jsonmin.Minify)
	return m
}

// MinifyJSON strips insignificant whitespace from a JSON document.
func MinifyJSON(data []byte) ([]byte, error) {
	return minifier.Bytes("application/json", data)
}

func writeResultText(w io.Writer, res *walker.Result) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "curves: %d\npoints: %d\n", len(res.Curves), len(res.Points))
	for _, c := range res.Curves {
		fmt.Fprintf(&b, "\ncurve %q (feature %d, %d vertices)\n", c.Name, c.Feature, len(c.Vertices))
		for _, v := range c.Vertices {
			fmt.Fprintf(&b, "  %s\n", formatPoint(v))
		}
	}
	if len(res.Points) > 0 {
		b.WriteString("\n")
	}
	for _, p := range res.Points {
		fmt.Fprintf(&b, "point %q (feature %d) %s\n", p.Name, p.Feature, formatPoint(p.Point))
	}

	for _, g := range res.Attributes {
		if len(g.Attributes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nattributes (feature %d)\n", g.Feature)
		for _, a := range g.Attributes {
			fmt.Fprintf(&b, "  %s: %s\n", a.Key, a.Value)
		}
	}

	writeSkipped(&b, res.Skipped)

	_, err := w.Write(b.Bytes())
	return err
}

func writeSummaryText(w io.Writer, s *walker.Summary) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Features:   %d\n", s.Features)
	fmt.Fprintf(&b, "  Points:   %d\n", s.Points)
	fmt.Fprintf(&b, "  Lines:    %d\n", s.Lines)
	fmt.Fprintf(&b, "  Polygons: %d\n", s.Polygons)
	fmt.Fprintf(&b, "  Other:    %d\n", s.Other)

	if s.Bounds != nil {
		fmt.Fprintf(&b, "Bounds:\n  Longitude: %s .. %s\n  Latitude:  %s .. %s\n",
			formatFloat(s.Bounds.MinLon), formatFloat(s.Bounds.MaxLon),
			formatFloat(s.Bounds.MinLat), formatFloat(s.Bounds.MaxLat))
	} else {
		b.WriteString("Bounds: none\n")
	}

	fmt.Fprintf(&b, "Attributes (%d):\n", len(s.AttributeKeys))
	for _, key := range s.AttributeKeys {
		fmt.Fprintf(&b, "  - %s\n", key)
	}

	writeSkipped(&b, s.Skipped)

	_, err := w.Write(b.Bytes())
	return err
}

func writeSkipped(b *bytes.Buffer, skipped []walker.Issue) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(b, "\nskipped (%d):\n", len(skipped))
	for _, issue := range skipped {
		fmt.Fprintf(b, "  %s\n", issue.Reason)
	}
}

func formatPoint(p geo.ModelPoint) string {
	return formatFloat(p.X) + "," + formatFloat(p.Y) + "," + formatFloat(p.Z)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
