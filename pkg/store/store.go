package store

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/familytree/pkg/family"
)

// Sentinel errors. Store methods wrap them in coded errors from pkg/errors,
// so both errors.Is(err, ErrNotFound) and errors.Is(err, code) work.
var (
	// ErrNotFound is returned when a member id does not exist.
	ErrNotFound = stderrors.New("member not found")

	// ErrDuplicate is returned when adding a member whose id is taken.
	ErrDuplicate = stderrors.New("duplicate member id")

	// ErrInvalidRelation is returned for relations that would break the
	// family invariants.
	ErrInvalidRelation = stderrors.New("invalid relation")
)

// RelationKind names a settable relation.
type RelationKind string

// Relation kinds.
const (
	RelSpouse RelationKind = "spouse"
	RelFather RelationKind = "father"
	RelMother RelationKind = "mother"
)

// ParseRelationKind parses "spouse", "father" or "mother".
func ParseRelationKind(s string) (RelationKind, bool) {
	switch k := RelationKind(s); k {
	case RelSpouse, RelFather, RelMother:
		return k, true
	}
	return "", false
}

// Relation sets From's relation of the given kind to To. For father and
// mother, From is the child. An empty To clears the relation.
type Relation struct {
	Kind RelationKind
	From string
	To   string
}

// Repository is the member store consumed by the CLI and the pipeline.
// The layout engine never sees it; it only receives [Repository.All]
// snapshots.
type Repository interface {
	// All returns a copy of every member in insertion order.
	All(ctx context.Context) ([]family.Member, error)

	// Get returns a copy of one member.
	Get(ctx context.Context, id string) (family.Member, error)

	// Add stores a new member, generating an id when m.ID is empty, and
	// links its father, mother and spouse on both sides.
	Add(ctx context.Context, m family.Member) (family.Member, error)

	// Update replaces a member's fields. Its relations are rewired on both
	// sides when they changed.
	Update(ctx context.Context, m family.Member) (family.Member, error)

	// Delete removes a member and every reference to it.
	Delete(ctx context.Context, id string) error

	// ReplaceAll validates and installs a whole member list. Nothing
	// changes on error.
	ReplaceAll(ctx context.Context, members []family.Member) error

	// SetRelation sets or clears one relation, updating both sides.
	SetRelation(ctx context.Context, r Relation) error

	// Version returns the layout version.
	Version(ctx context.Context) (int64, error)

	// Close releases backend resources.
	Close() error
}

// Backend persists the member list and its version.
type Backend interface {
	// Load returns the persisted members and version. A missing store
	// yields an empty list and version 0.
	Load(ctx context.Context) ([]family.Member, int64, error)

	// Save persists members and version atomically.
	Save(ctx context.Context, members []family.Member, version int64) error

	// Close releases resources.
	Close() error
}
