package store

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
	fio "github.com/matzehuels/familytree/pkg/io"
	"github.com/matzehuels/familytree/pkg/observability"
)

// Store is the [Repository] implementation backed by any [Backend].
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	logger  *log.Logger
	members []family.Member
	version int64
}

var _ Repository = (*Store)(nil)

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger used for debug output on saves.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the backend's current state into a new Store.
func Open(ctx context.Context, b Backend, opts ...Option) (*Store, error) {
	members, version, err := b.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load members")
	}
	s := &Store{
		backend: b,
		logger:  log.New(nil),
		members: family.CloneAll(members),
		version: version,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewMemory returns an empty Store that persists nothing.
func NewMemory() *Store {
	s, _ := Open(context.Background(), NewMemoryBackend())
	return s
}

// All returns a copy of every member.
func (s *Store) All(ctx context.Context) ([]family.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return family.CloneAll(s.members), nil
}

// Get returns a copy of the member with the given id.
func (s *Store) Get(ctx context.Context, id string) (family.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return family.Member{}, notFound(id)
}

// Add stores m and links its relations on both sides.
func (s *Store) Add(ctx context.Context, m family.Member) (family.Member, error) {
	var added family.Member
	err := s.mutate(ctx, "add", func(snap *snapshot) (err error) {
		added, err = snap.add(m)
		return err
	})
	return added, err
}

// Update replaces m's fields and rewires changed relations.
func (s *Store) Update(ctx context.Context, m family.Member) (family.Member, error) {
	var updated family.Member
	err := s.mutate(ctx, "update", func(snap *snapshot) (err error) {
		updated, err = snap.update(m)
		return err
	})
	return updated, err
}

// Delete removes id and clears every reference to it.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete", func(snap *snapshot) error {
		return snap.remove(id)
	})
}

// ReplaceAll validates members and installs them as the whole family.
func (s *Store) ReplaceAll(ctx context.Context, members []family.Member) error {
	if members == nil {
		members = []family.Member{}
	}
	if err := fio.Validate(members, "replacement"); err != nil {
		return err
	}
	return s.mutate(ctx, "replace", func(snap *snapshot) error {
		*snap = *newSnapshot(members)
		return nil
	})
}

// SetRelation sets or clears one relation on both sides.
func (s *Store) SetRelation(ctx context.Context, r Relation) error {
	return s.mutate(ctx, "relate", func(snap *snapshot) error {
		return snap.setRelation(r)
	})
}

// Version returns the layout version.
func (s *Store) Version(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// mutate runs fn on a working copy, persists the result with the next
// version and only then makes it visible.
func (s *Store) mutate(ctx context.Context, op string, fn func(*snapshot) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		observability.Store().OnMutation(ctx, op, s.version, time.Since(start), err)
	}()

	snap := newSnapshot(s.members)
	if err := fn(snap); err != nil {
		return err
	}
	next := s.version + 1
	if err := s.backend.Save(ctx, snap.members, next); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save after %s", op)
	}
	s.members = snap.members
	s.version = next
	s.logger.Debug("members saved", "op", op, "members", len(s.members), "version", next)
	return nil
}
