package diagram

import (
	"math"

	"github.com/matzehuels/familytree/pkg/family"
)

// Node kinds.
const (
	KindMember   = "member"
	KindJunction = "junction"
)

// Edge roles.
const (
	RoleParent = "parent"
	RoleSpouse = "spouse"
)

// Connection handles used by renderers to anchor edges on a node.
const (
	HandleChild       = "child"        // bottom of a member card
	HandleParent      = "parent"       // top of a member card
	HandleToChildren  = "to-children"  // bottom of a junction
	HandleFromParents = "from-parents" // top of a junction
	HandleSpouseRight = "spouse-right"
	HandleSpouseLeft  = "spouse-left"
)

// =============================================================================
// Diagram
// =============================================================================

// Diagram is the positioned connector graph of a family.
type Diagram struct {
	Nodes   []Node  `json:"nodes" bson:"nodes"`
	Edges   []Edge  `json:"edges" bson:"edges"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Version int64   `json:"version,omitempty" bson:"version,omitempty"`
}

// Node is a positioned member or junction.
type Node struct {
	ID         string         `json:"id" bson:"id"`
	Kind       string         `json:"kind" bson:"kind"`
	X          float64        `json:"x" bson:"x"`
	Y          float64        `json:"y" bson:"y"`
	Generation int            `json:"generation" bson:"generation"`
	Member     *family.Member `json:"member,omitempty" bson:"member,omitempty"`
}

// IsJunction reports whether n is a synthetic junction.
func (n *Node) IsJunction() bool { return n.Kind == KindJunction }

// Label returns the member name, or the id for junctions.
func (n *Node) Label() string {
	if n.Member != nil {
		return n.Member.Name
	}
	return n.ID
}

// Edge is a directed connector between two nodes.
type Edge struct {
	ID           string `json:"id" bson:"id"`
	Source       string `json:"source" bson:"source"`
	Target       string `json:"target" bson:"target"`
	Role         string `json:"role" bson:"role"`
	Label        string `json:"label,omitempty" bson:"label,omitempty"`
	Dashed       bool   `json:"dashed,omitempty" bson:"dashed,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty" bson:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" bson:"targetHandle,omitempty"`
}

// IsSpouse reports whether e links a married couple.
func (e *Edge) IsSpouse() bool { return e.Role == RoleSpouse }

// =============================================================================
// Queries
// =============================================================================

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the box spanned by all node coordinates. The zero Rect is
// returned for an empty diagram.
func (d Diagram) Bounds() Rect {
	if len(d.Nodes) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, n := range d.Nodes {
		r.MinX = math.Min(r.MinX, n.X)
		r.MinY = math.Min(r.MinY, n.Y)
		r.MaxX = math.Max(r.MaxX, n.X)
		r.MaxY = math.Max(r.MaxY, n.Y)
	}
	return r
}

// Node returns the node with the given id.
func (d Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Junctions returns the junction nodes in diagram order.
func (d Diagram) Junctions() []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.IsJunction() {
			out = append(out, n)
		}
	}
	return out
}

// EdgesByRole returns the edges with the given role in diagram order.
func (d Diagram) EdgesByRole(role string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}
