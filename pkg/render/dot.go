package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/familytree/pkg/diagram"
)

// pointsPerInch converts diagram units (treated as points) to the inches
// Graphviz expects for node sizes.
const pointsPerInch = 72.0

// ToDOT converts d to a DOT digraph for the neato engine. Every node
// carries pos="x,y!" at its card center so Graphviz keeps the computed
// layout. Graphviz's y axis points up, so y is mirrored inside the
// diagram extent.
func ToDOT(d diagram.Diagram) string {
	ext := extent(d)
	flip := func(y float64) float64 { return ext.MaxY - y + ext.MinY }

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontname=\"sans-serif\", fontsize=12, width=%.3f, height=%.3f, fixedsize=true];\n",
		CardWidth/pointsPerInch, CardHeight/pointsPerInch)
	buf.WriteString("  edge [arrowhead=none, penwidth=2];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		c := center(n)
		pos := fmt.Sprintf("%.1f,%.1f!", c.X, flip(c.Y))
		if n.IsJunction() {
			fmt.Fprintf(&buf, "  %q [shape=point, width=%.3f, color=%q, pos=%q];\n",
				n.ID, 2*JunctionRadius/pointsPerInch, colorJunction, pos)
			continue
		}
		stroke, fill := cardColors("")
		label := n.ID
		if m := n.Member; m != nil {
			stroke, fill = cardColors(m.Gender)
			label = m.Name + " " + m.Gender.Symbol()
			if ls := m.Lifespan(); ls != "" {
				label += "\n" + ls
			}
		}
		fmt.Fprintf(&buf, "  %q [label=%q, color=%q, fillcolor=%q, pos=%q];\n", n.ID, label, stroke, fill, pos)
	}

	buf.WriteString("\n")
	ids := nodeIndex(d)
	for _, e := range d.Edges {
		if _, ok := ids[e.Source]; !ok {
			continue
		}
		if _, ok := ids[e.Target]; !ok {
			continue
		}
		if e.IsSpouse() {
			style := "solid"
			if e.Dashed {
				style = "dashed"
			}
			fmt.Fprintf(&buf, "  %q -> %q [id=%q, style=%s, color=%q, fontcolor=%q, fontsize=10, label=%q, constraint=false];\n",
				e.Source, e.Target, e.ID, style, colorSpouse, colorSpouse, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [id=%q, color=%q];\n", e.Source, e.Target, e.ID, colorConnector)
	}

	buf.WriteString("}\n")
	return buf.String()
}
