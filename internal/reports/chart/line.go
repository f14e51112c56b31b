package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Line renders one polyline per series. A single series also gets a shaded
// area underneath.
func Line(d Data, opts Opts) (template.HTML, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	f, err := newFrame(d, opts, "line")
	if err != nil {
		return "", err
	}

	x := func(i int) float64 {
		if len(d.Labels) == 1 {
			return f.padding + f.plotW/2
		}
		return f.padding + float64(i)*f.plotW/float64(len(d.Labels)-1)
	}

	var b strings.Builder
	f.open(&b, opts, "Line chart", "Trend data")
	for j, s := range d.Series {
		var path strings.Builder
		for i, v := range s.Values {
			cmd := " L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f %.2f", cmd, x(i), f.y(v))
		}
		color := colorOf(s, j)
		if len(d.Series) == 1 {
			base := f.y(0)
			fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" fill-opacity="0.12" stroke="none" aria-hidden="true"></path>`,
				path.String(), x(len(s.Values)-1), base, x(0), base, color)
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"></path>`, path.String(), color)
		for i, v := range s.Values {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"></circle>`, x(i), f.y(v), color)
		}
	}
	for i, label := range d.Labels {
		f.label(&b, x(i), label)
	}
	f.legend(&b, d.Series)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
