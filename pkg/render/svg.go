package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/familytree/pkg/diagram"
)

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding float64
	labels  bool
	title   string
}

// WithPadding sets the margin around the drawing (default 40).
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = p } }

// WithoutLabels hides the "married" edge labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// SVG draws d. Connectors are drawn first so cards cover their ends.
// Edges whose endpoints are missing from d are skipped.
func SVG(d diagram.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{padding: 40, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	ext := extent(d)
	minX, minY := ext.MinX-r.padding, ext.MinY-r.padding
	w, h := ext.Width()+2*r.padding, ext.Height()+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n", minX, minY, w, h, colorBG)

	idx := nodeIndex(d)
	buf.WriteString(`  <g class="edges" fill="none">` + "\n")
	for _, e := range d.Edges {
		src, okS := idx[e.Source]
		dst, okT := idx[e.Target]
		if !okS || !okT {
			continue
		}
		if e.IsSpouse() {
			r.spouseEdge(&buf, e, src, dst)
		} else {
			parentEdge(&buf, e, src, dst)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range d.Nodes {
		if n.IsJunction() {
			fmt.Fprintf(&buf, `    <circle id="%s" class="junction" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				attr(n.ID), n.X, n.Y, JunctionRadius, colorJunction)
			continue
		}
		memberCard(&buf, n)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// parentEdge draws an orthogonal connector that turns at mid height.
func parentEdge(buf *bytes.Buffer, e diagram.Edge, src, dst diagram.Node) {
	a := anchor(src, e.SourceHandle)
	b := anchor(dst, e.TargetHandle)
	midY := (a.Y + b.Y) / 2
	fmt.Fprintf(buf, `    <path id="%s" class="edge parent" d="M %.1f %.1f V %.1f H %.1f V %.1f" stroke="%s" stroke-width="2"/>`+"\n",
		attr(e.ID), a.X, a.Y, midY, b.X, b.Y, colorConnector)
}

func (r svgRenderer) spouseEdge(buf *bytes.Buffer, e diagram.Edge, src, dst diagram.Node) {
	a, b := spouseAnchors(src, dst)
	dash := ""
	if e.Dashed {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(buf, `    <path id="%s" class="edge spouse" d="M %.1f %.1f L %.1f %.1f" stroke="%s" stroke-width="2"%s/>`+"\n",
		attr(e.ID), a.X, a.Y, b.X, b.Y, colorSpouse, dash)
	if r.labels && e.Label != "" {
		fmt.Fprintf(buf, `    <text class="edge-label" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
			(a.X+b.X)/2, (a.Y+b.Y)/2-6, colorSpouse, html.EscapeString(e.Label))
	}
}

func memberCard(buf *bytes.Buffer, n diagram.Node) {
	name, symbol, lifespan := n.ID, "⚥", ""
	stroke, fill := cardColors("")
	if m := n.Member; m != nil {
		name, symbol, lifespan = m.Name, m.Gender.Symbol(), m.Lifespan()
		stroke, fill = cardColors(m.Gender)
	}
	cx := n.X + CardWidth/2

	fmt.Fprintf(buf, `    <g id="%s" class="member">`+"\n", attr(n.ID))
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		n.X, n.Y, CardWidth, CardHeight, CardRadius, fill, stroke)
	fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="14" font-weight="600" fill="%s">%s %s</text>`+"\n",
		cx, n.Y+32, colorText, html.EscapeString(name), symbol)
	if lifespan != "" {
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
			cx, n.Y+54, colorMuted, html.EscapeString(lifespan))
	}
	buf.WriteString("    </g>\n")
}

func attr(s string) string { return html.EscapeString(s) }
