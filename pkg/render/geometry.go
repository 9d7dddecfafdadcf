package render

import (
	"github.com/matzehuels/familytree/pkg/diagram"
)

type point struct{ X, Y float64 }

// anchor returns the connection point of handle on n. Unknown handles
// fall back to the card center.
func anchor(n diagram.Node, handle string) point {
	if n.IsJunction() {
		return point{n.X, n.Y}
	}
	switch handle {
	case diagram.HandleChild:
		return point{n.X + CardWidth/2, n.Y + CardHeight}
	case diagram.HandleParent:
		return point{n.X + CardWidth/2, n.Y}
	case diagram.HandleSpouseRight:
		return point{n.X + CardWidth, n.Y + CardHeight/2}
	case diagram.HandleSpouseLeft:
		return point{n.X, n.Y + CardHeight/2}
	}
	return center(n)
}

func center(n diagram.Node) point {
	if n.IsJunction() {
		return point{n.X, n.Y}
	}
	return point{n.X + CardWidth/2, n.Y + CardHeight/2}
}

// spouseAnchors joins the cards at their facing sides regardless of which
// partner is the edge source.
func spouseAnchors(a, b diagram.Node) (point, point) {
	if a.X <= b.X {
		return anchor(a, diagram.HandleSpouseRight), anchor(b, diagram.HandleSpouseLeft)
	}
	return anchor(a, diagram.HandleSpouseLeft), anchor(b, diagram.HandleSpouseRight)
}

// extent is the area covered by cards and junctions, before padding.
func extent(d diagram.Diagram) diagram.Rect {
	if len(d.Nodes) == 0 {
		return diagram.Rect{}
	}
	first := true
	var r diagram.Rect
	grow := func(minX, minY, maxX, maxY float64) {
		if first {
			r = diagram.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
			first = false
			return
		}
		r.MinX = min(r.MinX, minX)
		r.MinY = min(r.MinY, minY)
		r.MaxX = max(r.MaxX, maxX)
		r.MaxY = max(r.MaxY, maxY)
	}
	for _, n := range d.Nodes {
		if n.IsJunction() {
			grow(n.X-JunctionRadius, n.Y-JunctionRadius, n.X+JunctionRadius, n.Y+JunctionRadius)
			continue
		}
		grow(n.X, n.Y, n.X+CardWidth, n.Y+CardHeight)
	}
	return r
}

func nodeIndex(d diagram.Diagram) map[string]diagram.Node {
	idx := make(map[string]diagram.Node, len(d.Nodes))
	for _, n := range d.Nodes {
		idx[n.ID] = n
	}
	return idx
}
