package layout

import "github.com/matzehuels/familytree/pkg/family"

// RootStride separates the generation seeds of independent roots so that
// disconnected trees land in distinct bands.
const RootStride = 10

// GenerationMap maps member ids to normalized generations. The minimum is 0
// and larger numbers are younger.
type GenerationMap map[string]int

// reason records why an id entered the BFS frontier.
type reason int

const (
	viaRoot reason = iota
	viaSpouse
	viaChild
	viaParent
)

func (r reason) String() string {
	switch r {
	case viaRoot:
		return "root"
	case viaSpouse:
		return "spouse"
	case viaChild:
		return "child"
	case viaParent:
		return "parent"
	}
	return "unknown"
}

// visit is one frontier entry.
type visit struct {
	id  string
	gen int
	via reason
}

// AssignGenerations labels every member with a generation.
//
// # Algorithm
//
// Roots are members with neither father nor mother, processed in list order.
// Root i seeds a breadth-first traversal at generation i×[RootStride]. A
// dequeued id that was not yet visited is recorded and expands to its spouse
// (same generation), each child (+1) and each parent (−1). Relatives that
// are unknown ids are never enqueued; spouses and parents are only enqueued
// while unvisited.
//
// When a visited id is dequeued again its generation is lowered to the new
// value if that is smaller. Generations are never raised, and a lowered id
// is not expanded again, so descendants reached through an earlier, higher
// path keep their generation.
//
// # Fallback Root
//
// If every member has a parent (a cyclic or fully parented graph), the single
// root is the member with the lexically earliest parseable birth date, or
// the first member when no one has one.
//
// # Normalization
//
// Members never reached get generation 0. Finally the minimum generation is
// subtracted from every entry so the floor is 0.
//
// AssignGenerations returns an empty map for an empty list and never
// modifies members.
func AssignGenerations(members []family.Member) GenerationMap {
	return assignGenerations(members, nil)
}

// Step is one dequeued frontier entry, as seen by [TraceGenerations].
type Step struct {
	ID         string
	Generation int    // generation carried by the entry, before normalization
	Via        string // "root", "spouse", "child" or "parent"
	// Revisit is set when the id was already visited. Lowered tells whether
	// the entry lowered its generation.
	Revisit bool
	Lowered bool
}

// TraceGenerations runs [AssignGenerations] and calls fn for every dequeued
// frontier entry in BFS order.
func TraceGenerations(members []family.Member, fn func(Step)) GenerationMap {
	return assignGenerations(members, fn)
}

func assignGenerations(members []family.Member, trace func(Step)) GenerationMap {
	gens := make(GenerationMap, len(members))
	if len(members) == 0 {
		return gens
	}
	idx := family.Index(members)

	visited := make(map[string]bool, len(members))
	for rootIndex, root := range roots(members) {
		queue := []visit{{id: root.ID, gen: rootIndex * RootStride, via: viaRoot}}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]

			if visited[v.id] {
				lowered := v.gen < gens[v.id]
				if lowered {
					gens[v.id] = v.gen
				}
				if trace != nil {
					trace(Step{ID: v.id, Generation: v.gen, Via: v.via.String(), Revisit: true, Lowered: lowered})
				}
				continue
			}
			visited[v.id] = true
			gens[v.id] = v.gen
			if trace != nil {
				trace(Step{ID: v.id, Generation: v.gen, Via: v.via.String()})
			}

			m, ok := idx[v.id]
			if !ok {
				continue
			}
			queue = expand(queue, m, v.gen, idx, visited)
		}
	}

	for _, m := range members {
		if _, ok := gens[m.ID]; !ok {
			gens[m.ID] = 0
		}
	}

	normalize(gens)
	return gens
}

// expand appends the relatives of m to the frontier.
func expand(queue []visit, m *family.Member, gen int, idx map[string]*family.Member, visited map[string]bool) []visit {
	rel := m.Relations
	if rel.SpouseID != "" && !visited[rel.SpouseID] {
		if _, ok := idx[rel.SpouseID]; ok {
			queue = append(queue, visit{id: rel.SpouseID, gen: gen, via: viaSpouse})
		}
	}
	for _, cid := range rel.ChildrenIDs {
		if _, ok := idx[cid]; ok {
			queue = append(queue, visit{id: cid, gen: gen + 1, via: viaChild})
		}
	}
	for _, pid := range []string{rel.FatherID, rel.MotherID} {
		if pid == "" || visited[pid] {
			continue
		}
		if _, ok := idx[pid]; ok {
			queue = append(queue, visit{id: pid, gen: gen - 1, via: viaParent})
		}
	}
	return queue
}

// roots returns the parentless members, or the single fallback root.
func roots(members []family.Member) []family.Member {
	var out []family.Member
	for _, m := range members {
		if !m.HasParents() {
			out = append(out, m)
		}
	}
	if len(out) > 0 {
		return out
	}

	oldest := members[0]
	for _, m := range members[1:] {
		if !datable(m) {
			continue
		}
		if !datable(oldest) || m.BirthDate < oldest.BirthDate {
			oldest = m
		}
	}
	return []family.Member{oldest}
}

// datable reports whether m has a birth date with an extractable year.
func datable(m family.Member) bool {
	return m.BirthDate != "" && !family.MalformedDate(m.BirthDate)
}

func normalize(gens GenerationMap) {
	first := true
	lowest := 0
	for _, g := range gens {
		if first || g < lowest {
			lowest, first = g, false
		}
	}
	if lowest == 0 {
		return
	}
	for id, g := range gens {
		gens[id] = g - lowest
	}
}
