package store

import (
	"slices"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
)

// snapshot is a mutable working copy of the member list. Every mutation
// runs against a fresh snapshot; the store swaps it in after saving.
type snapshot struct {
	members []family.Member
	index   map[string]int
}

func newSnapshot(members []family.Member) *snapshot {
	s := &snapshot{members: family.CloneAll(members)}
	s.reindex()
	return s
}

func (s *snapshot) reindex() {
	s.index = make(map[string]int, len(s.members))
	for i, m := range s.members {
		if _, ok := s.index[m.ID]; !ok {
			s.index[m.ID] = i
		}
	}
}

func (s *snapshot) get(id string) (*family.Member, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.members[i], true
}

func (s *snapshot) mustGet(id string) (*family.Member, error) {
	if m, ok := s.get(id); ok {
		return m, nil
	}
	return nil, notFound(id)
}

// add inserts m and wires its father, mother and spouse.
func (s *snapshot) add(m family.Member) (family.Member, error) {
	if m.ID == "" {
		m.ID = family.NewID()
	}
	if err := checkFields(m); err != nil {
		return family.Member{}, err
	}
	if _, exists := s.index[m.ID]; exists {
		return family.Member{}, errors.Wrap(errors.ErrCodeDuplicateMember, ErrDuplicate, "member %q already exists", m.ID)
	}

	want := m.Relations
	m.Relations = family.Relations{ChildrenIDs: []string{}}
	s.members = append(s.members, m)
	s.index[m.ID] = len(s.members) - 1

	if err := s.wire(m.ID, want); err != nil {
		return family.Member{}, err
	}
	added, _ := s.get(m.ID)
	return added.Clone(), nil
}

// update replaces the scalar fields of an existing member and rewires any
// relation that changed.
func (s *snapshot) update(m family.Member) (family.Member, error) {
	cur, err := s.mustGet(m.ID)
	if err != nil {
		return family.Member{}, err
	}
	if err := checkFields(m); err != nil {
		return family.Member{}, err
	}
	cur.Name = m.Name
	cur.Gender = m.Gender
	cur.BirthDate = m.BirthDate
	cur.DeathDate = m.DeathDate

	if err := s.wire(m.ID, m.Relations); err != nil {
		return family.Member{}, err
	}
	updated, _ := s.get(m.ID)
	return updated.Clone(), nil
}

// wire applies the father, mother and spouse in want to member id. Changed
// parents are cleared before they are set so that swapping father and
// mother does not trip the distinct-parents check.
func (s *snapshot) wire(id string, want family.Relations) error {
	cur, _ := s.get(id)
	fatherChanged := cur.Relations.FatherID != want.FatherID
	motherChanged := cur.Relations.MotherID != want.MotherID

	if fatherChanged {
		if err := s.setRelation(Relation{Kind: RelFather, From: id}); err != nil {
			return err
		}
	}
	if motherChanged {
		if err := s.setRelation(Relation{Kind: RelMother, From: id}); err != nil {
			return err
		}
	}
	if fatherChanged && want.FatherID != "" {
		if err := s.setRelation(Relation{Kind: RelFather, From: id, To: want.FatherID}); err != nil {
			return err
		}
	}
	if motherChanged && want.MotherID != "" {
		if err := s.setRelation(Relation{Kind: RelMother, From: id, To: want.MotherID}); err != nil {
			return err
		}
	}
	if cur, _ := s.get(id); cur.Relations.SpouseID != want.SpouseID {
		return s.setRelation(Relation{Kind: RelSpouse, From: id, To: want.SpouseID})
	}
	return nil
}

// remove deletes id and clears every reference to it.
func (s *snapshot) remove(id string) error {
	i, ok := s.index[id]
	if !ok {
		return notFound(id)
	}
	s.members = slices.Delete(s.members, i, i+1)
	for j := range s.members {
		r := &s.members[j].Relations
		if r.FatherID == id {
			r.FatherID = ""
		}
		if r.MotherID == id {
			r.MotherID = ""
		}
		if r.SpouseID == id {
			r.SpouseID = ""
		}
		r.ChildrenIDs = slices.DeleteFunc(r.ChildrenIDs, func(c string) bool { return c == id })
	}
	s.reindex()
	return nil
}

// setRelation validates and applies r on both sides.
func (s *snapshot) setRelation(r Relation) error {
	from, err := s.mustGet(r.From)
	if err != nil {
		return err
	}
	var to *family.Member
	if r.To != "" {
		if r.To == r.From {
			return invalidRelation("%s cannot be their own %s", r.From, r.Kind)
		}
		if to, err = s.mustGet(r.To); err != nil {
			return err
		}
	}

	switch r.Kind {
	case RelSpouse:
		return s.setSpouse(from, to)
	case RelFather, RelMother:
		return s.setParent(r.Kind, from, to)
	default:
		return invalidRelation("unknown relation %q", r.Kind)
	}
}

func (s *snapshot) setSpouse(from, to *family.Member) error {
	if to == nil {
		s.unlinkSpouse(from)
		return nil
	}
	if from.Relations.SpouseID == to.ID && to.Relations.SpouseID == from.ID {
		return nil
	}
	if isParent(from, to.ID) || isParent(to, from.ID) {
		return invalidRelation("%s and %s cannot be spouses: one is a parent of the other", from.ID, to.ID)
	}
	s.unlinkSpouse(from)
	s.unlinkSpouse(to)
	from.Relations.SpouseID = to.ID
	to.Relations.SpouseID = from.ID
	return nil
}

// unlinkSpouse clears m's spouse and the back reference, if any.
func (s *snapshot) unlinkSpouse(m *family.Member) {
	old := m.Relations.SpouseID
	m.Relations.SpouseID = ""
	if o, ok := s.get(old); ok && o.Relations.SpouseID == m.ID {
		o.Relations.SpouseID = ""
	}
}

func (s *snapshot) setParent(kind RelationKind, child, parent *family.Member) error {
	slot := &child.Relations.FatherID
	other := child.Relations.MotherID
	if kind == RelMother {
		slot = &child.Relations.MotherID
		other = child.Relations.FatherID
	}

	if parent != nil {
		switch {
		case *slot == parent.ID:
			if !parent.HasChild(child.ID) {
				parent.Relations.ChildrenIDs = append(parent.Relations.ChildrenIDs, child.ID)
			}
			return nil
		case parent.ID == other:
			return invalidRelation("%s is already the other parent of %s", parent.ID, child.ID)
		case child.HasChild(parent.ID) || isParent(parent, child.ID):
			return invalidRelation("%s is a child of %s and cannot be their %s", parent.ID, child.ID, kind)
		case child.Relations.SpouseID == parent.ID:
			return invalidRelation("%s is the spouse of %s and cannot be their %s", parent.ID, child.ID, kind)
		}
	}

	if old, ok := s.get(*slot); ok {
		old.Relations.ChildrenIDs = slices.DeleteFunc(old.Relations.ChildrenIDs, func(c string) bool { return c == child.ID })
	}
	*slot = ""
	if parent != nil {
		*slot = parent.ID
		if !parent.HasChild(child.ID) {
			parent.Relations.ChildrenIDs = append(parent.Relations.ChildrenIDs, child.ID)
		}
	}
	return nil
}

// isParent reports whether parentID is m's father or mother.
func isParent(m *family.Member, parentID string) bool {
	return m.Relations.FatherID == parentID || m.Relations.MotherID == parentID
}

func checkFields(m family.Member) error {
	if err := errors.ValidateMemberID(m.ID); err != nil {
		return err
	}
	if err := errors.ValidateMemberName(m.Name); err != nil {
		return err
	}
	if !m.Gender.Valid() {
		return errors.New(errors.ErrCodeInvalidMember, "gender must be one of male, female, other, got %q", m.Gender)
	}
	return nil
}

func notFound(id string) error {
	return errors.Wrap(errors.ErrCodeMemberNotFound, ErrNotFound, "no member with id %q", id)
}

func invalidRelation(format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidRelation, ErrInvalidRelation, format, args...)
}
