package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spec-kit/faculty-workload/internal/domain"
)

// Sequence issues strictly increasing load generations.
type Sequence interface {
	Next(ctx context.Context) (uint64, error)
}

// MemorySequence is a process-local Sequence.
type MemorySequence struct {
	n atomic.Uint64
}

// Next returns the next generation.
func (m *MemorySequence) Next(context.Context) (uint64, error) {
	return m.n.Add(1), nil
}

// LoadState is a snapshot of the most recent workload load.
type LoadState struct {
	Records    []domain.WorkloadRecord
	Loading    bool
	Error      string
	Generation uint64
	LoadedAt   time.Time
}

// Loaded reports whether a load has completed successfully.
func (l LoadState) Loaded() bool {
	return !l.LoadedAt.IsZero() && l.Error == ""
}

// Store holds the current LoadState. Only the result of the most recently
// issued generation is committed; earlier requests finishing late are dropped.
type Store struct {
	seq Sequence

	mu     sync.RWMutex
	latest uint64
	state  LoadState
	now    func() time.Time
}

// NewStore builds a store. A nil seq uses a MemorySequence.
func NewStore(seq Sequence) *Store {
	if seq == nil {
		seq = &MemorySequence{}
	}
	return &Store{seq: seq, now: time.Now}
}

// Begin issues a generation for a new load and marks the store loading.
func (s *Store) Begin(ctx context.Context) (uint64, error) {
	gen, err := s.seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// a shared sequence may hand out a lower value than one already seen
	if gen <= s.latest {
		gen = s.latest + 1
	}
	s.latest = gen
	s.state.Loading = true
	return gen, nil
}

// Commit stores records loaded under gen. It reports false when gen is stale.
func (s *Store) Commit(gen uint64, records []domain.WorkloadRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.latest {
		return false
	}
	if records == nil {
		records = []domain.WorkloadRecord{}
	}
	s.state = LoadState{
		Records:    records,
		Generation: gen,
		LoadedAt:   s.now(),
	}
	return true
}

// Fail records a load failure under gen. Data is cleared so an error is never
// shown next to stale rows. It reports false when gen is stale.
func (s *Store) Fail(gen uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.latest {
		return false
	}
	s.state = LoadState{
		Records:    []domain.WorkloadRecord{},
		Error:      message,
		Generation: gen,
		LoadedAt:   s.now(),
	}
	return true
}

// Snapshot returns the current state. Records must be treated as read-only.
func (s *Store) Snapshot() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
