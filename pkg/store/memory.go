package store

import (
	"context"
	"sync"

	"github.com/matzehuels/familytree/pkg/family"
)

// MemoryBackend keeps the last saved state in process memory.
type MemoryBackend struct {
	mu      sync.Mutex
	members []family.Member
	version int64
	saves   int
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{members: []family.Member{}}
}

func (b *MemoryBackend) Load(ctx context.Context) ([]family.Member, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return family.CloneAll(b.members), b.version, nil
}

func (b *MemoryBackend) Save(ctx context.Context, members []family.Member, version int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.members = family.CloneAll(members)
	b.version = version
	b.saves++
	return nil
}

// Saves returns how many times Save was called.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func (b *MemoryBackend) Close() error { return nil }
