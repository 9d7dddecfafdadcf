package family

import (
	"fmt"
	"slices"
)

// Gender is the member's gender as stored in the interchange format.
type Gender string

// Supported genders.
const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Valid reports whether g is one of the supported genders.
func (g Gender) Valid() bool {
	switch g {
	case Male, Female, Other:
		return true
	}
	return false
}

// Symbol returns the glyph used on member cards.
func (g Gender) Symbol() string {
	switch g {
	case Male:
		return "♂"
	case Female:
		return "♀"
	default:
		return "⚥"
	}
}

// Relations holds the references from a member to its relatives.
// Empty strings mean "absent".
type Relations struct {
	FatherID    string   `json:"fatherId,omitempty" bson:"fatherId,omitempty" yaml:"fatherId,omitempty"`
	MotherID    string   `json:"motherId,omitempty" bson:"motherId,omitempty" yaml:"motherId,omitempty"`
	SpouseID    string   `json:"spouseId,omitempty" bson:"spouseId,omitempty" yaml:"spouseId,omitempty"`
	ChildrenIDs []string `json:"childrenIds" bson:"childrenIds" yaml:"childrenIds"`
}

// Member is a single person in the family graph.
type Member struct {
	ID        string    `json:"id" bson:"id" yaml:"id" validate:"required"`
	Name      string    `json:"name" bson:"name" yaml:"name" validate:"required"`
	Gender    Gender    `json:"gender" bson:"gender" yaml:"gender" validate:"required,oneof=male female other"`
	BirthDate string    `json:"birthDate,omitempty" bson:"birthDate,omitempty" yaml:"birthDate,omitempty"`
	DeathDate string    `json:"deathDate,omitempty" bson:"deathDate,omitempty" yaml:"deathDate,omitempty"`
	Relations Relations `json:"relations" bson:"relations" yaml:"relations"`
}

// HasParents reports whether the member references a father or a mother.
func (m Member) HasParents() bool {
	return m.Relations.FatherID != "" || m.Relations.MotherID != ""
}

// HasChild reports whether id is listed in the member's children.
func (m Member) HasChild(id string) bool {
	return slices.Contains(m.Relations.ChildrenIDs, id)
}

// IsParentOf reports whether m is recorded as c's father or mother.
func (m Member) IsParentOf(c Member) bool {
	return c.Relations.FatherID == m.ID || c.Relations.MotherID == m.ID
}

// Clone returns a deep copy of m. The children slice is never nil.
func (m Member) Clone() Member {
	out := m
	out.Relations.ChildrenIDs = make([]string, len(m.Relations.ChildrenIDs))
	copy(out.Relations.ChildrenIDs, m.Relations.ChildrenIDs)
	return out
}

// Lifespan renders the member's birth and death years for display,
// e.g. "1931–2004", "b. 1931", "d. 2004" or "".
func (m Member) Lifespan() string {
	birth, okBirth := BirthYear(m.BirthDate)
	death, okDeath := BirthYear(m.DeathDate)
	switch {
	case okBirth && okDeath:
		return fmt.Sprintf("%d–%d", birth, death)
	case okBirth:
		return fmt.Sprintf("b. %d", birth)
	case okDeath:
		return fmt.Sprintf("d. %d", death)
	}
	return ""
}

// CloneAll deep-copies a member list.
func CloneAll(members []Member) []Member {
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = m.Clone()
	}
	return out
}

// Index maps member IDs to members. When the same ID appears more than once
// the first occurrence wins. The pointers reference the given slice and must
// be treated as read-only.
func Index(members []Member) map[string]*Member {
	idx := make(map[string]*Member, len(members))
	for i := range members {
		if _, dup := idx[members[i].ID]; dup {
			continue
		}
		idx[members[i].ID] = &members[i]
	}
	return idx
}
