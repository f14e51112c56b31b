// Package chart renders small inline SVG charts for report pages.
package chart

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Defaults for the report charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 32.0
	DefaultTicks   = 5
)

var palette = []string{"#2563eb", "#f97316", "#10b981", "#a855f7"}

var (
	errNoSeries   = errors.New("chart: at least one series required")
	errNoLabels   = errors.New("chart: labels required")
	errTooSmall   = errors.New("chart: viewport too small")
	errMismatched = errors.New("chart: series length must match labels")
)

// Series is one named run of values, aligned with Data.Labels.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// Data is what a chart plots.
type Data struct {
	Labels []string
	Series []Series
}

// Opts customises rendering.
type Opts struct {
	Title       string
	Description string
	Width       int
	Height      int
	Padding     float64
	TickCount   int
	AxisColor   string
	GridColor   string
}

type frame struct {
	width, height   int
	padding         float64
	plotW, plotH    float64
	lo, hi, scale   float64
	ticks           int
	axis, grid      string
	titleID, descID string
}

func (d Data) validate() error {
	if len(d.Series) == 0 {
		return errNoSeries
	}
	if len(d.Labels) == 0 {
		return errNoLabels
	}
	for _, s := range d.Series {
		if len(s.Values) != len(d.Labels) {
			return fmt.Errorf("%w: %q has %d values for %d labels", errMismatched, s.Name, len(s.Values), len(d.Labels))
		}
	}
	return nil
}

func newFrame(d Data, opts Opts, kind string) (frame, error) {
	f := frame{
		width:   opts.Width,
		height:  opts.Height,
		padding: opts.Padding,
		ticks:   opts.TickCount,
		axis:    fallback(opts.AxisColor, "#475569"),
		grid:    fallback(opts.GridColor, "#cbd5e1"),
		titleID: makeID(opts.Title, kind+"-title"),
		descID:  makeID(opts.Title, kind+"-desc"),
	}
	if f.width <= 0 {
		f.width = DefaultWidth
	}
	if f.height <= 0 {
		f.height = DefaultHeight
	}
	if f.padding <= 0 {
		f.padding = DefaultPadding
	}
	if f.ticks <= 0 {
		f.ticks = DefaultTicks
	}
	f.plotW = float64(f.width) - 2*f.padding
	f.plotH = float64(f.height) - 2*f.padding
	if f.plotW <= 0 || f.plotH <= 0 {
		return frame{}, errTooSmall
	}

	f.lo, f.hi = 0, 0
	for _, s := range d.Series {
		for _, v := range s.Values {
			f.lo = math.Min(f.lo, v)
			f.hi = math.Max(f.hi, v)
		}
	}
	if almostEqual(f.lo, f.hi) {
		f.hi = f.lo + 1
	}
	f.scale = f.plotH / (f.hi - f.lo)
	return f, nil
}

// y maps a value to its vertical pixel position.
func (f frame) y(v float64) float64 {
	return f.padding + f.plotH - (v-f.lo)*f.scale
}

func (f frame) open(b *strings.Builder, opts Opts, defaultTitle, defaultDesc string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s">`, f.width, f.height, f.titleID, f.descID)
	fmt.Fprintf(b, `<title id="%s">%s</title>`, f.titleID, template.HTMLEscapeString(fallback(opts.Title, defaultTitle)))
	fmt.Fprintf(b, `<desc id="%s">%s</desc>`, f.descID, template.HTMLEscapeString(fallback(opts.Description, defaultDesc)))

	for i := 0; i <= f.ticks; i++ {
		ratio := float64(i) / float64(f.ticks)
		value := f.lo + (f.hi-f.lo)*ratio
		y := f.y(value)
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.5" stroke-dasharray="2,4" aria-hidden="true"></line>`, f.padding, y, f.padding+f.plotW, y, f.grid)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`, f.padding-6, y+4, f.axis, template.HTMLEscapeString(formatTick(value)))
	}
	fmt.Fprintf(b, `<g stroke="%s" aria-label="Axes">`, f.axis)
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`, f.padding, f.padding, f.padding, f.padding+f.plotH)
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`, f.padding, f.y(0), f.padding+f.plotW, f.y(0))
	b.WriteString("</g>")
}

func (f frame) label(b *strings.Builder, x float64, text string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`, x, f.padding+f.plotH+14, f.axis, template.HTMLEscapeString(text))
}

func (f frame) legend(b *strings.Builder, series []Series) {
	if len(series) < 2 {
		return
	}
	x := f.padding
	y := math.Max(f.padding-12, 12)
	for i, s := range series {
		fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="10" height="10" fill="%s"></rect>`, x, y-8, colorOf(s, i))
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="start">%s</text>`, x+14, y, f.axis, template.HTMLEscapeString(s.Name))
		x += 110
	}
}

func colorOf(s Series, i int) string {
	return fallback(s.Color, palette[i%len(palette)])
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	case almostEqual(v, math.Round(v)):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
