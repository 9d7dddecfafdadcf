package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/familytree/pkg/family"
)

// Point is a coordinate in diagram units. Y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionMap maps member ids to coordinates.
type PositionMap map[string]Point

// Position places every member of members.
//
// # Algorithm
//
// Members are bucketed by generation and the buckets are processed from the
// youngest (highest number) to the oldest. Every member of generation g sits
// at y = g×GenerationSpacing + BaseOffset.
//
// The youngest bucket is split with [GroupSiblings] and laid out left to
// right from BaseOffset. Siblings are NodeSpacing apart. After each group
// the cursor advances by the larger of the group's width and
// MinSpaceForParents, and by SiblingGroupSpacing before the next group.
//
// Each older bucket is split with [GroupParentsByChildren]. A solo parent is
// centered over its children; a couple straddles the centroid at distance
// CoupleSpacing, the first listed parent on the left. Members without placed
// children are orphans: they are grouped with [GroupCouples] and placed to
// the right of every placed member, starting two node steps past the
// rightmost x and advancing one node step per group.
//
// Members missing from gens are treated as generation 0. The result never
// aliases members.
func Position(members []family.Member, gens GenerationMap, cfg Config) PositionMap {
	positions := make(PositionMap, len(members))
	if len(members) == 0 {
		return positions
	}

	buckets := make(map[int][]family.Member)
	for _, m := range members {
		g := gens[m.ID]
		buckets[g] = append(buckets[g], m)
	}
	order := make([]int, 0, len(buckets))
	for g := range buckets {
		order = append(order, g)
	}
	slices.Sort(order)
	slices.Reverse(order)

	placeBottom(positions, GroupSiblings(buckets[order[0]]), bandY(order[0], cfg), cfg)

	for _, g := range order[1:] {
		generation := buckets[g]
		y := bandY(g, cfg)

		groups := GroupParentsByChildren(generation, members, positions)
		placed := make(map[string]bool, len(generation))
		for _, grp := range groups {
			switch len(grp.Parents) {
			case 1:
				positions[grp.Parents[0].ID] = Point{X: grp.ChildrenCenterX, Y: y}
			case 2:
				half := cfg.CoupleSpacing / 2
				positions[grp.Parents[0].ID] = Point{X: grp.ChildrenCenterX - half, Y: y}
				positions[grp.Parents[1].ID] = Point{X: grp.ChildrenCenterX + half, Y: y}
			}
			for _, p := range grp.Parents {
				placed[p.ID] = true
			}
		}

		var orphans []family.Member
		for _, m := range generation {
			if !placed[m.ID] {
				orphans = append(orphans, m)
			}
		}
		if len(orphans) > 0 {
			placeOrphans(positions, GroupCouples(orphans, members), y, cfg)
		}
	}
	return positions
}

func bandY(gen int, cfg Config) float64 {
	return float64(gen)*cfg.GenerationSpacing + cfg.BaseOffset
}

func placeBottom(positions PositionMap, groups [][]family.Member, y float64, cfg Config) {
	x := cfg.BaseOffset
	for i, group := range groups {
		if i > 0 {
			x += cfg.SiblingGroupSpacing
		}
		for j, m := range group {
			positions[m.ID] = Point{X: x + float64(j)*cfg.NodeSpacing, Y: y}
		}
		x += math.Max(float64(len(group))*cfg.NodeSpacing, cfg.MinSpaceForParents)
	}
}

func placeOrphans(positions PositionMap, groups [][]family.Member, y float64, cfg Config) {
	x := cfg.BaseOffset
	if len(positions) > 0 {
		x = rightmost(positions) + 2*cfg.NodeSpacing
	}
	for _, group := range groups {
		switch len(group) {
		case 1:
			positions[group[0].ID] = Point{X: x, Y: y}
		case 2:
			half := cfg.SpouseOffset / 2
			positions[group[0].ID] = Point{X: x - half, Y: y}
			positions[group[1].ID] = Point{X: x + half, Y: y}
		}
		x += cfg.NodeSpacing
	}
}

func rightmost(positions PositionMap) float64 {
	maxX := math.Inf(-1)
	for _, p := range positions {
		maxX = math.Max(maxX, p.X)
	}
	return maxX
}
