package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/familytree/pkg/diagram"
	"github.com/matzehuels/familytree/pkg/family"
)

// MarriedLabel labels spouse edges.
const MarriedLabel = "married"

// ParentKey returns the deterministic key of a parent set: the non-empty ids
// sorted and joined with "-". It is "" for a member without parents.
func ParentKey(fatherID, motherID string) string {
	ids := make([]string, 0, 2)
	for _, id := range []string{fatherID, motherID} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return strings.Join(ids, "-")
}

// JunctionID returns the id of the junction for a parent key.
func JunctionID(key string) string { return "junction-" + key }

// ParentEdgeID returns the id of an edge from a parent to target, which is
// either a junction or a child.
func ParentEdgeID(parentID, targetID string) string { return "parent-" + parentID + "-" + targetID }

// JunctionEdgeID returns the id of an edge from a junction to a child.
func JunctionEdgeID(junctionID, childID string) string { return "junction-" + junctionID + "-" + childID }

// SpouseEdgeID returns the id of the spouse edge between a and b. It is the
// same for both argument orders.
func SpouseEdgeID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "spouse-" + a + "-" + b
}

// sibship is the set of children sharing one parent key.
type sibship struct {
	key      string
	fatherID string
	motherID string
	children []string
}

// Synthesize derives junction nodes and edges from a positioned layout.
//
// Children are grouped by [ParentKey] in the order the keys first appear.
// Parent ids are taken from the group's first child, so ids containing "-"
// resolve correctly.
//
//   - Both parents known: one junction at x = max(fatherX, motherX) −
//     JunctionOffset, halfway between the bottom of the parent row and the
//     top of the first child. One edge from each parent to the junction and
//     one from the junction to each child. When a parent or the first child
//     has no position the junction is skipped and a
//     [MissingPositionAnomaly] is reported.
//   - One parent known: a direct edge from the parent to each child.
//   - No parent known: nothing.
//
// Each spouse pair with both ids known yields one dashed "married" edge from
// the lexically smaller id to the larger.
func Synthesize(members []family.Member, gens GenerationMap, positions PositionMap, cfg Config, r Reporter) ([]diagram.Node, []diagram.Edge) {
	if r == nil {
		r = nopReporter{}
	}
	idx := family.Index(members)

	var nodes []diagram.Node
	var edges []diagram.Edge

	for _, s := range sibships(members) {
		father, hasFather := idx[s.fatherID]
		mother, hasMother := idx[s.motherID]
		if hasFather && hasMother && father.ID == mother.ID {
			hasMother = false
		}

		switch {
		case hasFather && hasMother:
			jid := JunctionID(s.key)
			node, ok := junctionNode(jid, father.ID, mother.ID, s.children[0], gens, positions, cfg, r)
			if !ok {
				continue
			}
			nodes = append(nodes, node)
			for _, pid := range []string{father.ID, mother.ID} {
				edges = append(edges, diagram.Edge{
					ID:           ParentEdgeID(pid, jid),
					Source:       pid,
					Target:       jid,
					Role:         diagram.RoleParent,
					SourceHandle: diagram.HandleChild,
					TargetHandle: diagram.HandleFromParents,
				})
			}
			for _, cid := range s.children {
				edges = append(edges, diagram.Edge{
					ID:           JunctionEdgeID(jid, cid),
					Source:       jid,
					Target:       cid,
					Role:         diagram.RoleParent,
					SourceHandle: diagram.HandleToChildren,
					TargetHandle: diagram.HandleParent,
				})
			}

		case hasFather || hasMother:
			parent := father
			if !hasFather {
				parent = mother
			}
			for _, cid := range s.children {
				edges = append(edges, diagram.Edge{
					ID:           ParentEdgeID(parent.ID, cid),
					Source:       parent.ID,
					Target:       cid,
					Role:         diagram.RoleParent,
					SourceHandle: diagram.HandleChild,
					TargetHandle: diagram.HandleParent,
				})
			}
		}
	}

	return nodes, append(edges, spouseEdges(members, idx)...)
}

func sibships(members []family.Member) []*sibship {
	var out []*sibship
	byKey := make(map[string]*sibship)
	for _, m := range members {
		key := ParentKey(m.Relations.FatherID, m.Relations.MotherID)
		if key == "" {
			continue
		}
		s, ok := byKey[key]
		if !ok {
			s = &sibship{key: key, fatherID: m.Relations.FatherID, motherID: m.Relations.MotherID}
			byKey[key] = s
			out = append(out, s)
		}
		s.children = append(s.children, m.ID)
	}
	return out
}

func junctionNode(id, fatherID, motherID, firstChild string, gens GenerationMap, positions PositionMap, cfg Config, r Reporter) (diagram.Node, bool) {
	for _, mid := range []string{fatherID, motherID, firstChild} {
		if _, ok := positions[mid]; !ok {
			r.Report(MissingPositionAnomaly{JunctionID: id, MemberID: mid})
			return diagram.Node{}, false
		}
	}
	fp, mp, cp := positions[fatherID], positions[motherID], positions[firstChild]
	return diagram.Node{
		ID:         id,
		Kind:       diagram.KindJunction,
		X:          math.Max(fp.X, mp.X) - cfg.JunctionOffset,
		Y:          (fp.Y + cfg.NodeHeight + cp.Y) / 2,
		Generation: gens[fatherID],
	}, true
}

func spouseEdges(members []family.Member, idx map[string]*family.Member) []diagram.Edge {
	var edges []diagram.Edge
	seen := make(map[string]bool)
	for _, m := range members {
		sid := m.Relations.SpouseID
		if sid == "" || sid == m.ID {
			continue
		}
		if _, ok := idx[sid]; !ok {
			continue
		}
		id := SpouseEdgeID(m.ID, sid)
		if seen[id] {
			continue
		}
		seen[id] = true
		a, b := m.ID, sid
		if b < a {
			a, b = b, a
		}
		edges = append(edges, diagram.Edge{
			ID:           id,
			Source:       a,
			Target:       b,
			Role:         diagram.RoleSpouse,
			Label:        MarriedLabel,
			Dashed:       true,
			SourceHandle: diagram.HandleSpouseRight,
			TargetHandle: diagram.HandleSpouseLeft,
		})
	}
	return edges
}
