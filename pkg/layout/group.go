package layout

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/familytree/pkg/family"
)

// ParentGroup is a solo parent or a couple anchored over their placed
// children.
type ParentGroup struct {
	Parents         []family.Member
	ChildrenCenterX float64
}

// GroupSiblings partitions members into sibling groups.
//
// Two members are siblings when their (fatherId, motherId) pairs are equal
// and at least one of the two is set; members without parents are always
// alone. Groups appear in the order of their first member. Each group is
// sorted by [CompareSiblings].
func GroupSiblings(members []family.Member) [][]family.Member {
	type parents struct{ father, mother string }

	var groups [][]family.Member
	slot := make(map[parents]int)
	for _, m := range members {
		if !m.HasParents() {
			groups = append(groups, []family.Member{m})
			continue
		}
		key := parents{m.Relations.FatherID, m.Relations.MotherID}
		if i, ok := slot[key]; ok {
			groups[i] = append(groups[i], m)
			continue
		}
		slot[key] = len(groups)
		groups = append(groups, []family.Member{m})
	}

	for _, g := range groups {
		slices.SortStableFunc(g, CompareSiblings)
	}
	return groups
}

// CompareSiblings orders siblings oldest first: by birth year (unknown years
// last), then by the full birth date string when both are set, then by name.
func CompareSiblings(a, b family.Member) int {
	if c := cmp.Compare(family.SortYear(a.BirthDate), family.SortYear(b.BirthDate)); c != 0 {
		return c
	}
	if a.BirthDate != "" && b.BirthDate != "" {
		if c := strings.Compare(a.BirthDate, b.BirthDate); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Name, b.Name)
}

// GroupParentsByChildren groups the members of one generation over their
// already positioned children.
//
// For each unprocessed member with at least one positioned child in all (a
// member whose father or mother it is), the member is paired with its spouse
// when the spouse belongs to the same generation and is still unprocessed.
// The group's anchor is the mean x of the positioned children. Members
// without positioned children are left out; the caller places them as
// orphans.
func GroupParentsByChildren(generation, all []family.Member, positions PositionMap) []ParentGroup {
	inGeneration := family.Index(generation)

	var groups []ParentGroup
	processed := make(map[string]bool, len(generation))
	for _, parent := range generation {
		if processed[parent.ID] {
			continue
		}

		var sum float64
		var n int
		for _, child := range all {
			if !parent.IsParentOf(child) {
				continue
			}
			if p, ok := positions[child.ID]; ok {
				sum += p.X
				n++
			}
		}
		if n == 0 {
			continue
		}

		group := []family.Member{parent}
		if sid := parent.Relations.SpouseID; sid != "" && sid != parent.ID {
			if spouse, ok := inGeneration[sid]; ok && !processed[sid] {
				group = append(group, *spouse)
			}
		}
		for _, p := range group {
			processed[p.ID] = true
		}
		groups = append(groups, ParentGroup{Parents: group, ChildrenCenterX: sum / float64(n)})
	}
	return groups
}

// GroupCouples pairs candidates with their spouses.
//
// A member is paired when its spouse is known in all, is itself a candidate
// and was not paired yet; everyone else stays single. Within a pair a male
// member comes first, otherwise names decide. Groups are ordered by the name
// of their first member; ties keep candidate order.
func GroupCouples(candidates, all []family.Member) [][]family.Member {
	known := family.Index(all)
	byID := family.Index(candidates)

	var groups [][]family.Member
	processed := make(map[string]bool, len(candidates))
	for _, m := range candidates {
		if processed[m.ID] {
			continue
		}
		processed[m.ID] = true
		group := []family.Member{m}

		if sid := m.Relations.SpouseID; sid != "" {
			_, inAll := known[sid]
			if spouse, ok := byID[sid]; ok && inAll && !processed[sid] {
				group = append(group, *spouse)
				processed[sid] = true
			}
		}
		slices.SortStableFunc(group, comparePartners)
		groups = append(groups, group)
	}

	slices.SortStableFunc(groups, func(a, b []family.Member) int {
		return strings.Compare(a[0].Name, b[0].Name)
	})
	return groups
}

func comparePartners(a, b family.Member) int {
	aMale, bMale := a.Gender == family.Male, b.Gender == family.Male
	switch {
	case aMale && !bMale:
		return -1
	case bMale && !aMale:
		return 1
	}
	return strings.Compare(a.Name, b.Name)
}
