// Package svg renders a pad ring preview. The y axis is flipped so the die
// is drawn with its origin at the bottom-left like a layout viewer.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/OpenTraceLab/padring/pkg/encode"
	"github.com/OpenTraceLab/padring/pkg/geom"
	"github.com/OpenTraceLab/padring/pkg/layout"
)

const (
	fillerStyle = "fill:#BFE1F3;stroke:#179AA9;stroke-width:0.25"
	cellStyle   = "fill:#FAAD35;stroke:#F25844;stroke-width:0.5"
	tickStyle   = "stroke:#F25844;stroke-width:0.75"
	dotStyle    = "fill:#000000"

	tickRatio  = 0.2
	dotRadius  = 5.0
	labelShift = 20.0
)

type Option func(*renderer)

type renderer struct {
	labels bool
	margin float64
}

func WithoutLabels() Option       { return func(r *renderer) { r.labels = false } }
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

// Render returns the SVG document for d.
func Render(d *encode.Design, opts ...Option) []byte {
	r := renderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	w, h := d.Die.Width, d.Die.Height
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(-r.margin), num(-r.margin), num(w+2*r.margin), num(h+2*r.margin))
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%s" height="%s" style="fill:none;stroke:#000000;stroke-width:0.5" />`+"\n",
		num(w), num(h))

	for i := range d.Placements {
		r.placement(&buf, h, &d.Placements[i])
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Encode writes the rendered document to w.
func Encode(w io.Writer, d *encode.Design, opts ...Option) error {
	if _, err := w.Write(Render(d, opts...)); err != nil {
		return fmt.Errorf("svg: %w", err)
	}
	return nil
}

func (r *renderer) placement(buf *bytes.Buffer, height float64, p *encode.Placement) {
	if p.Cell == nil {
		return
	}
	size := p.Cell.Size

	// map a point of the cell frame to SVG space
	pt := func(x, y float64) geom.Position {
		q := p.Origin.Add(p.Orientation.Apply(geom.Position{X: x, Y: y}))
		return geom.Position{X: q.X, Y: height - q.Y}
	}

	ll := pt(0, 0)
	outline := []geom.Position{ll, pt(0, size.Height), pt(size.Width, size.Height), pt(size.Width, 0), ll}
	style := cellStyle
	if p.Kind == layout.KindFiller {
		style = fillerStyle
	}
	fmt.Fprintf(buf, `<polyline points="%s" style="%s" />`+"\n", points(outline), style)

	tick := size.Width * tickRatio
	t1, t2 := pt(tick, 0), pt(0, tick)
	if p.Flipped {
		t1, t2 = pt(size.Width-tick, 0), pt(size.Width, tick)
	}
	fmt.Fprintf(buf, `<polyline points="%s" style="%s" />`+"\n", points([]geom.Position{t1, t2}), tickStyle)

	if p.Kind == layout.KindCorner {
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" style="%s" />`+"\n", num(ll.X), num(ll.Y), num(dotRadius), dotStyle)
	}

	if r.labels && p.Kind != layout.KindFiller {
		c := pt(size.Width/2, size.Height/2)
		fmt.Fprintf(buf, `<text text-anchor="middle" x="%s" y="%s" class="small">%s</text>`+"\n",
			num(c.X), num(c.Y), escape(p.CellName))
		fmt.Fprintf(buf, `<text text-anchor="middle" x="%s" y="%s" class="small">%s</text>`+"\n",
			num(c.X), num(c.Y+labelShift), escape(p.Instance))
	}
}

func points(ps []geom.Position) string {
	var b []byte
	for i, p := range ps {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, p.X, 'f', -1, 64)
		b = append(b, ' ')
		b = strconv.AppendFloat(b, p.Y, 'f', -1, 64)
	}
	return string(b)
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
