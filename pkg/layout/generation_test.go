package layout

import (
	"maps"
	"math/rand/v2"
	"reflect"
	"strconv"
	"testing"

	"github.com/matzehuels/familytree/pkg/family"
)

func TestAssignGenerations(t *testing.T) {
	tests := []struct {
		name    string
		members []family.Member
		want    GenerationMap
	}{
		{
			name:    "single member",
			members: []family.Member{mem("A", family.Male, "", "", "")},
			want:    GenerationMap{"A": 0},
		},
		{
			name:    "couple with child",
			members: couple(),
			want:    GenerationMap{"A": 0, "B": 0, "C": 1},
		},
		{
			name: "single parent",
			members: []family.Member{
				mem("A", family.Female, "", "", "", "C"),
				mem("C", family.Male, "A", "", ""),
			},
			want: GenerationMap{"A": 0, "C": 1},
		},
		{
			name: "three generations",
			members: []family.Member{
				mem("G", family.Male, "", "", "", "P"),
				mem("P", family.Female, "G", "", "", "K"),
				mem("K", family.Male, "", "P", ""),
			},
			want: GenerationMap{"G": 0, "P": 1, "K": 2},
		},
		{
			name: "spouse with parents pulls in in-laws",
			members: []family.Member{
				mem("A", family.Male, "", "", "", "B"),
				mem("B", family.Male, "A", "", "S"),
				mem("S", family.Female, "F", "", "B"),
				mem("F", family.Male, "", "", "", "S"),
			},
			want: GenerationMap{"A": 0, "B": 1, "S": 1, "F": 0},
		},
		{
			name: "disconnected trees",
			members: []family.Member{
				mem("A", family.Male, "", "", "", "A1"),
				mem("A1", family.Male, "A", "", ""),
				mem("B", family.Female, "", "", "", "B1"),
				mem("B1", family.Female, "", "B", ""),
			},
			want: GenerationMap{"A": 0, "A1": 1, "B": 10, "B1": 11},
		},
		{
			name: "cycle without roots uses first member",
			members: []family.Member{
				mem("X", family.Male, "Y", "", "", "Y"),
				mem("Y", family.Male, "X", "", "", "X"),
			},
			want: GenerationMap{"X": 1, "Y": 0},
		},
		{
			name: "cycle without roots uses earliest birth date",
			members: []family.Member{
				born(mem("X", family.Male, "Y", "", "", "Y"), "1950"),
				born(mem("Y", family.Male, "X", "", "", "X"), "1920"),
			},
			want: GenerationMap{"X": 0, "Y": 1},
		},
		{
			name: "cycle without roots skips dates without a year",
			members: []family.Member{
				born(mem("Y", family.Male, "X", "", "", "X"), "(unknown)"),
				born(mem("X", family.Male, "Y", "", "", "Y"), "1950"),
			},
			want: GenerationMap{"X": 1, "Y": 0},
		},
		{
			name: "dangling ids are ignored",
			members: []family.Member{
				mem("A", family.Male, "", "", "ghost", "C", "nobody"),
				mem("C", family.Male, "A", "phantom", ""),
			},
			want: GenerationMap{"A": 0, "C": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignGenerations(tt.members)
			if !maps.Equal(got, tt.want) {
				t.Errorf("AssignGenerations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignGenerationsEmpty(t *testing.T) {
	if got := AssignGenerations(nil); len(got) != 0 {
		t.Errorf("AssignGenerations(nil) = %v, want empty", got)
	}
}

func TestDisconnectedRootsSeededByStride(t *testing.T) {
	members := []family.Member{
		mem("A", family.Male, "", "", "", "A1"),
		mem("A1", family.Male, "A", "", ""),
		mem("B", family.Female, "", "", "", "B1"),
		mem("B1", family.Female, "", "B", ""),
	}

	seeds := map[string]int{}
	TraceGenerations(members, func(s Step) {
		if s.Via == "root" {
			seeds[s.ID] = s.Generation
		}
	})
	if seeds["A"] != 0 || seeds["B"] != RootStride {
		t.Errorf("root seeds = %v, want A=0 B=%d", seeds, RootStride)
	}
}

// A visited member reached again on a lower generation is lowered but not
// expanded again, so its descendants keep the generation of the first path.
func TestLoweredMemberIsNotReexpanded(t *testing.T) {
	members := []family.Member{
		mem("R", family.Male, "", "", "", "A", "B"),
		mem("A", family.Male, "R", "", "", "X"),
		mem("B", family.Female, "R", "N", ""),
		mem("N", family.Female, "", "", "", "B", "X"),
		mem("X", family.Male, "A", "N", "", "Y"),
		mem("Y", family.Female, "X", "", ""),
	}

	var lowered []string
	gens := TraceGenerations(members, func(s Step) {
		if s.Lowered {
			lowered = append(lowered, s.ID)
		}
	})

	want := GenerationMap{"R": 0, "A": 1, "B": 1, "N": 0, "X": 1, "Y": 3}
	if !maps.Equal(gens, want) {
		t.Errorf("generations = %v, want %v", gens, want)
	}
	if len(lowered) != 1 || lowered[0] != "X" {
		t.Errorf("lowered = %v, want [X]", lowered)
	}
}

func TestTraceTagsReasons(t *testing.T) {
	var steps []Step
	TraceGenerations(couple(), func(s Step) { steps = append(steps, s) })

	if len(steps) == 0 || steps[0].ID != "A" || steps[0].Via != "root" {
		t.Fatalf("first step = %+v, want root A", steps)
	}
	seen := map[string]bool{}
	for _, s := range steps {
		seen[s.Via] = true
	}
	for _, via := range []string{"root", "spouse", "child"} {
		if !seen[via] {
			t.Errorf("no %s step in %+v", via, steps)
		}
	}
}

func TestAssignGenerationsDoesNotMutate(t *testing.T) {
	members := couple()
	before := family.CloneAll(members)
	AssignGenerations(members)
	if !reflect.DeepEqual(members, before) {
		t.Errorf("AssignGenerations mutated its input:\n%v\n%v", members, before)
	}
}

// randomFamily builds a messy family: random parents, spouses, children
// lists that may disagree with the parent links, and dangling ids.
func randomFamily(r *rand.Rand, n int) []family.Member {
	members := make([]family.Member, n)
	id := func(i int) string { return "m" + strconv.Itoa(i) }
	for i := range members {
		g := family.Male
		if r.IntN(2) == 0 {
			g = family.Female
		}
		members[i] = family.Member{ID: id(i), Name: id(i), Gender: g, Relations: family.Relations{ChildrenIDs: []string{}}}
	}
	pick := func() string {
		switch k := r.IntN(10); {
		case k == 0:
			return "dangling-" + strconv.Itoa(r.IntN(5))
		case k < 4:
			return ""
		default:
			return id(r.IntN(n))
		}
	}
	for i := range members {
		rel := &members[i].Relations
		if f := pick(); f != id(i) {
			rel.FatherID = f
		}
		if m := pick(); m != id(i) {
			rel.MotherID = m
		}
		if r.IntN(3) == 0 {
			if s := pick(); s != id(i) {
				rel.SpouseID = s
			}
		}
		for j := 0; j < r.IntN(3); j++ {
			if c := pick(); c != "" && c != id(i) {
				rel.ChildrenIDs = append(rel.ChildrenIDs, c)
			}
		}
	}
	return members
}

func TestGenerationProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 200; trial++ {
		members := randomFamily(r, 1+r.IntN(25))
		gens := AssignGenerations(members)

		hasZero := false
		for _, m := range members {
			g, ok := gens[m.ID]
			if !ok {
				t.Fatalf("trial %d: %s has no generation", trial, m.ID)
			}
			if g < 0 {
				t.Fatalf("trial %d: %s has negative generation %d", trial, m.ID, g)
			}
			hasZero = hasZero || g == 0
		}
		if !hasZero {
			t.Fatalf("trial %d: no member at generation 0: %v", trial, gens)
		}
		if len(gens) != len(family.Index(members)) {
			t.Fatalf("trial %d: %d entries for %d ids", trial, len(gens), len(family.Index(members)))
		}
		if again := AssignGenerations(members); !maps.Equal(gens, again) {
			t.Fatalf("trial %d: not idempotent: %v vs %v", trial, gens, again)
		}
	}
}
