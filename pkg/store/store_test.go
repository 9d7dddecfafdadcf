package store

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
	fio "github.com/matzehuels/familytree/pkg/io"
	"github.com/matzehuels/familytree/pkg/observability"
)

func person(id string, g family.Gender) family.Member {
	return family.Member{ID: id, Name: id, Gender: g}
}

// seed builds the store A(m) + B(f) married, with child C.
func seed(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewMemory()
	mustAdd(t, s, person("A", family.Male))
	b := person("B", family.Female)
	b.Relations.SpouseID = "A"
	mustAdd(t, s, b)
	c := person("C", family.Male)
	c.Relations.FatherID = "A"
	c.Relations.MotherID = "B"
	mustAdd(t, s, c)
	if v, _ := s.Version(ctx); v != 3 {
		t.Fatalf("version after seed = %d, want 3", v)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, m family.Member) family.Member {
	t.Helper()
	added, err := s.Add(context.Background(), m)
	if err != nil {
		t.Fatalf("Add(%s): %v", m.ID, err)
	}
	return added
}

func mustGet(t *testing.T, s *Store, id string) family.Member {
	t.Helper()
	m, err := s.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	return m
}

func TestAdd_WiresBothSides(t *testing.T) {
	s := seed(t)

	a, b := mustGet(t, s, "A"), mustGet(t, s, "B")
	if a.Relations.SpouseID != "B" || b.Relations.SpouseID != "A" {
		t.Errorf("spouses = %q/%q, want B/A", a.Relations.SpouseID, b.Relations.SpouseID)
	}
	if !slices.Equal(a.Relations.ChildrenIDs, []string{"C"}) {
		t.Errorf("A children = %v, want [C]", a.Relations.ChildrenIDs)
	}
	if !slices.Equal(b.Relations.ChildrenIDs, []string{"C"}) {
		t.Errorf("B children = %v, want [C]", b.Relations.ChildrenIDs)
	}
}

func TestAdd_GeneratesID(t *testing.T) {
	s := NewMemory()
	m := mustAdd(t, s, family.Member{Name: "Nameless", Gender: family.Other})
	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if _, err := s.Get(context.Background(), m.ID); err != nil {
		t.Errorf("Get(generated): %v", err)
	}
}

func TestAdd_IgnoresChildrenInput(t *testing.T) {
	s := NewMemory()
	m := person("A", family.Male)
	m.Relations.ChildrenIDs = []string{"ghost"}
	added := mustAdd(t, s, m)
	if len(added.Relations.ChildrenIDs) != 0 {
		t.Errorf("children = %v, want empty", added.Relations.ChildrenIDs)
	}
}

func TestAdd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		m    family.Member
		code errors.Code
	}{
		{"duplicate", person("A", family.Male), errors.ErrCodeDuplicateMember},
		{"empty name", family.Member{ID: "X", Gender: family.Male}, errors.ErrCodeInvalidMember},
		{"bad gender", family.Member{ID: "X", Name: "X", Gender: "robot"}, errors.ErrCodeInvalidMember},
		{"unknown father", family.Member{ID: "X", Name: "X", Gender: family.Male, Relations: family.Relations{FatherID: "nobody"}}, errors.ErrCodeMemberNotFound},
		{"same parents", family.Member{ID: "X", Name: "X", Gender: family.Male, Relations: family.Relations{FatherID: "Z", MotherID: "Z"}}, errors.ErrCodeInvalidRelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seed(t)
			if tt.name == "same parents" {
				mustAdd(t, s, person("Z", family.Other))
			}
			before, _ := s.All(context.Background())
			v, _ := s.Version(context.Background())

			_, err := s.Add(context.Background(), tt.m)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Add() error = %v, want code %s", err, tt.code)
			}
			after, _ := s.All(context.Background())
			if len(after) != len(before) {
				t.Errorf("member count changed: %d -> %d", len(before), len(after))
			}
			if v2, _ := s.Version(context.Background()); v2 != v {
				t.Errorf("version changed on failure: %d -> %d", v, v2)
			}
		})
	}
}

func TestSetRelation_SpouseRelinks(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	mustAdd(t, s, person("D", family.Female))

	if err := s.SetRelation(ctx, Relation{Kind: RelSpouse, From: "A", To: "D"}); err != nil {
		t.Fatalf("SetRelation: %v", err)
	}
	if got := mustGet(t, s, "A").Relations.SpouseID; got != "D" {
		t.Errorf("A spouse = %q, want D", got)
	}
	if got := mustGet(t, s, "D").Relations.SpouseID; got != "A" {
		t.Errorf("D spouse = %q, want A", got)
	}
	if got := mustGet(t, s, "B").Relations.SpouseID; got != "" {
		t.Errorf("old spouse B still linked to %q", got)
	}
}

func TestSetRelation_Clear(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	if err := s.SetRelation(ctx, Relation{Kind: RelSpouse, From: "B"}); err != nil {
		t.Fatalf("clear spouse: %v", err)
	}
	if mustGet(t, s, "A").Relations.SpouseID != "" || mustGet(t, s, "B").Relations.SpouseID != "" {
		t.Error("spouse link survived clear")
	}

	if err := s.SetRelation(ctx, Relation{Kind: RelFather, From: "C"}); err != nil {
		t.Fatalf("clear father: %v", err)
	}
	if got := mustGet(t, s, "C").Relations.FatherID; got != "" {
		t.Errorf("C father = %q, want empty", got)
	}
	if got := mustGet(t, s, "A").Relations.ChildrenIDs; len(got) != 0 {
		t.Errorf("A children = %v, want empty", got)
	}
}

func TestSetRelation_ParentMoves(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	mustAdd(t, s, person("E", family.Male))

	if err := s.SetRelation(ctx, Relation{Kind: RelFather, From: "C", To: "E"}); err != nil {
		t.Fatalf("SetRelation: %v", err)
	}
	if got := mustGet(t, s, "A").Relations.ChildrenIDs; len(got) != 0 {
		t.Errorf("old father children = %v, want empty", got)
	}
	if got := mustGet(t, s, "E").Relations.ChildrenIDs; !slices.Equal(got, []string{"C"}) {
		t.Errorf("new father children = %v, want [C]", got)
	}
}

func TestSetRelation_Rejects(t *testing.T) {
	tests := []struct {
		name string
		r    Relation
		want error
	}{
		{"self spouse", Relation{Kind: RelSpouse, From: "A", To: "A"}, ErrInvalidRelation},
		{"spouse is father", Relation{Kind: RelSpouse, From: "C", To: "A"}, ErrInvalidRelation},
		{"father is child", Relation{Kind: RelFather, From: "A", To: "C"}, ErrInvalidRelation},
		{"father is spouse", Relation{Kind: RelFather, From: "B", To: "A"}, ErrInvalidRelation},
		{"mother is other parent", Relation{Kind: RelMother, From: "C", To: "A"}, ErrInvalidRelation},
		{"unknown kind", Relation{Kind: "cousin", From: "A", To: "B"}, ErrInvalidRelation},
		{"unknown from", Relation{Kind: RelSpouse, From: "nobody", To: "A"}, ErrNotFound},
		{"unknown to", Relation{Kind: RelSpouse, From: "A", To: "nobody"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seed(t)
			err := s.SetRelation(context.Background(), tt.r)
			if !stderrors.Is(err, tt.want) {
				t.Errorf("SetRelation() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	c := mustGet(t, s, "C")
	c.Name = "Carl"
	c.BirthDate = "1990-01-01"
	c.Relations.MotherID = ""
	got, err := s.Update(ctx, c)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Carl" || got.BirthDate != "1990-01-01" {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.Relations.MotherID != "" {
		t.Errorf("mother = %q, want cleared", got.Relations.MotherID)
	}
	if kids := mustGet(t, s, "B").Relations.ChildrenIDs; len(kids) != 0 {
		t.Errorf("B children = %v, want empty", kids)
	}
	if kids := mustGet(t, s, "A").Relations.ChildrenIDs; !slices.Equal(kids, []string{"C"}) {
		t.Errorf("A children = %v, want [C]", kids)
	}
}

// Parent roles do not depend on gender, so imported data and edits agree.
func TestParentRolesIgnoreGender(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	x := person("X", family.Male)
	x.Relations.FatherID, x.Relations.MotherID = "B", "A"
	mustAdd(t, s, x)
	if got := mustGet(t, s, "B"); !got.HasChild("X") {
		t.Errorf("B children = %v, want X", got.Relations.ChildrenIDs)
	}

	a := mustGet(t, s, "A")
	a.Gender = family.Female
	if _, err := s.Update(ctx, a); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got := mustGet(t, s, "A")
	if got.Gender != family.Female || !got.HasChild("C") {
		t.Errorf("A = %+v, want female and still father of C", got)
	}
}

func TestUpdate_SwapParents(t *testing.T) {
	s := NewMemory()
	mustAdd(t, s, person("P", family.Other))
	mustAdd(t, s, person("Q", family.Other))
	k := person("K", family.Male)
	k.Relations.FatherID, k.Relations.MotherID = "P", "Q"
	mustAdd(t, s, k)

	k = mustGet(t, s, "K")
	k.Relations.FatherID, k.Relations.MotherID = "Q", "P"
	got, err := s.Update(context.Background(), k)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Relations.FatherID != "Q" || got.Relations.MotherID != "P" {
		t.Errorf("parents = %s/%s, want Q/P", got.Relations.FatherID, got.Relations.MotherID)
	}
}

func TestDelete_ClearsReferences(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	if err := s.Delete(ctx, "A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "A"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get(A) error = %v, want ErrNotFound", err)
	}
	all, _ := s.All(ctx)
	for _, m := range all {
		r := m.Relations
		if r.FatherID == "A" || r.MotherID == "A" || r.SpouseID == "A" || slices.Contains(r.ChildrenIDs, "A") {
			t.Errorf("%s still references A: %+v", m.ID, r)
		}
	}
	if got := mustGet(t, s, "C").Relations.MotherID; got != "B" {
		t.Errorf("C mother = %q, want B", got)
	}

	if err := s.Delete(ctx, "A"); !errors.Is(err, errors.ErrCodeMemberNotFound) {
		t.Errorf("second Delete error = %v, want MEMBER_NOT_FOUND", err)
	}
}

func TestReplaceAll(t *testing.T) {
	s := seed(t)
	ctx := context.Background()
	v, _ := s.Version(ctx)

	next := []family.Member{person("X", family.Male), person("Y", family.Female)}
	if err := s.ReplaceAll(ctx, next); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 2 || all[0].ID != "X" || all[1].ID != "Y" {
		t.Errorf("All() = %v, want [X Y]", all)
	}
	if v2, _ := s.Version(ctx); v2 != v+1 {
		t.Errorf("version = %d, want %d", v2, v+1)
	}

	next[0].Name = "mutated"
	if got := mustGet(t, s, "X").Name; got != "X" {
		t.Errorf("store aliases caller slice: name = %q", got)
	}
}

func TestReplaceAll_InvalidLeavesStoreUnchanged(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	bad := []family.Member{person("X", family.Male), person("X", family.Female)}
	err := s.ReplaceAll(ctx, bad)
	var ife *errors.ImportFormatError
	if !stderrors.As(err, &ife) {
		t.Fatalf("ReplaceAll() error = %v, want ImportFormatError", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 3 {
		t.Errorf("store changed: %d members", len(all))
	}
}

type failingBackend struct{ MemoryBackend }

func (f *failingBackend) Save(context.Context, []family.Member, int64) error {
	return stderrors.New("disk full")
}

func TestMutate_SaveFailureIsAtomic(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, &failingBackend{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Add(ctx, person("A", family.Male))
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Fatalf("Add() error = %v, want STORAGE_ERROR", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 0 {
		t.Errorf("failed save became visible: %v", all)
	}
	if v, _ := s.Version(ctx); v != 0 {
		t.Errorf("version = %d, want 0", v)
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	s := seed(t)
	all, _ := s.All(context.Background())
	all[0].Relations.ChildrenIDs[0] = "mutated"
	if got := mustGet(t, s, "A").Relations.ChildrenIDs[0]; got != "C" {
		t.Errorf("store aliases returned slice: %q", got)
	}
}

func TestMemoryBackend_PersistsLastSave(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	s, _ := Open(ctx, b)
	mustAdd(t, s, person("A", family.Male))
	mustAdd(t, s, person("B", family.Female))

	if b.Saves() != 2 {
		t.Errorf("Saves() = %d, want 2", b.Saves())
	}
	reopened, _ := Open(ctx, b)
	all, _ := reopened.All(ctx)
	if len(all) != 2 {
		t.Errorf("reopened members = %d, want 2", len(all))
	}
	if v, _ := reopened.Version(ctx); v != 2 {
		t.Errorf("reopened version = %d, want 2", v)
	}
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "family.json")

	s, err := Open(ctx, NewFileBackend(path))
	if err != nil {
		t.Fatalf("Open on missing file: %v", err)
	}
	mustAdd(t, s, person("A", family.Male))
	c := person("C", family.Female)
	c.Relations.FatherID = "A"
	mustAdd(t, s, c)

	members, err := fio.ImportJSON(path)
	if err != nil {
		t.Fatalf("file is not importable: %v", err)
	}
	if len(members) != 2 || !slices.Equal(members[0].Relations.ChildrenIDs, []string{"C"}) {
		t.Errorf("file contents = %+v", members)
	}

	reopened, err := Open(ctx, NewFileBackend(path))
	if err != nil {
		t.Fatal(err)
	}
	if got := mustGet(t, reopened, "C").Relations.FatherID; got != "A" {
		t.Errorf("reopened C father = %q, want A", got)
	}
	if v, _ := reopened.Version(ctx); v != 0 {
		t.Errorf("file version = %d, want 0", v)
	}
}

func TestParseRelationKind(t *testing.T) {
	for _, s := range []string{"spouse", "father", "mother"} {
		if k, ok := ParseRelationKind(s); !ok || string(k) != s {
			t.Errorf("ParseRelationKind(%q) = %q, %v", s, k, ok)
		}
	}
	if _, ok := ParseRelationKind("uncle"); ok {
		t.Error("ParseRelationKind(uncle) accepted")
	}
}

type recordingStoreHooks struct {
	observability.NoopStoreHooks
	ops      []string
	versions []int64
	failed   int
}

func (h *recordingStoreHooks) OnMutation(_ context.Context, op string, version int64, _ time.Duration, err error) {
	h.ops = append(h.ops, op)
	h.versions = append(h.versions, version)
	if err != nil {
		h.failed++
	}
}

func TestMutate_EmitsStoreHooks(t *testing.T) {
	hooks := &recordingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	s := NewMemory()
	ctx := context.Background()
	mustAdd(t, s, person("A", family.Male))
	s.Delete(ctx, "missing")
	s.Delete(ctx, "A")

	if !slices.Equal(hooks.ops, []string{"add", "delete", "delete"}) {
		t.Errorf("ops = %v", hooks.ops)
	}
	if !slices.Equal(hooks.versions, []int64{1, 1, 2}) {
		t.Errorf("versions = %v", hooks.versions)
	}
	if hooks.failed != 1 {
		t.Errorf("failed = %d, want 1", hooks.failed)
	}
}
