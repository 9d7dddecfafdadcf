package layout

import (
	"math/rand/v2"

	"github.com/matzehuels/familytree/pkg/family"
)

// mem builds a member named after its id.
func mem(id string, g family.Gender, father, mother, spouse string, children ...string) family.Member {
	if children == nil {
		children = []string{}
	}
	return family.Member{
		ID:     id,
		Name:   id,
		Gender: g,
		Relations: family.Relations{
			FatherID:    father,
			MotherID:    mother,
			SpouseID:    spouse,
			ChildrenIDs: children,
		},
	}
}

func born(m family.Member, date string) family.Member {
	m.BirthDate = date
	return m
}

// couple returns scenario 2: spouses A and B with child C.
func couple() []family.Member {
	return []family.Member{
		mem("A", family.Male, "", "", "B", "C"),
		mem("B", family.Female, "", "", "A", "C"),
		mem("C", family.Other, "A", "B", ""),
	}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed*31+1))
}
