package badpair

import (
	"context"
	"sync"
)

// MemoryStore keeps the list in process. Useful for dry runs and tests.
type MemoryStore struct {
	mu    sync.Mutex
	pairs []Pair
}

func NewMemoryStore(pairs ...Pair) *MemoryStore {
	return &MemoryStore{pairs: append([]Pair(nil), pairs...)}
}

func (m *MemoryStore) Load(_ context.Context) ([]Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to avoid race
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, pairs []Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := NewSet(m.pairs...)
	for _, p := range pairs {
		merged.Add(p.A, p.B)
	}
	m.pairs = merged.Pairs()
	return nil
}
