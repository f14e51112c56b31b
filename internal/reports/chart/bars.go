package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders grouped bars, one group per label and one bar per series.
func Bars(d Data, opts Opts) (template.HTML, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	f, err := newFrame(d, opts, "bar")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	f.open(&b, opts, "Bar chart", "Grouped bar comparison")

	group := f.plotW / float64(len(d.Labels))
	bar := group * 0.8 / float64(len(d.Series))
	zero := f.y(0)
	for i, label := range d.Labels {
		left := f.padding + float64(i)*group + group*0.1
		for j, s := range d.Series {
			top, height := zero, 0.0
			if v := s.Values[i]; v >= 0 {
				top = f.y(v)
				height = zero - top
			} else {
				height = f.y(v) - zero
			}
			fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" aria-label="%s %s"></rect>`,
				left+float64(j)*bar, top, bar, height, colorOf(s, j),
				template.HTMLEscapeString(s.Name), template.HTMLEscapeString(label))
		}
		f.label(&b, f.padding+float64(i)*group+group/2, label)
	}
	f.legend(&b, d.Series)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
