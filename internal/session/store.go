package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/quotation-service/internal/wizard"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	state     wizard.State
	expiresAt time.Time
}

// MemoryStore keeps wizard sessions in process memory. Every access slides
// the expiry forward by ttl.
type MemoryStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[uuid.UUID]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Create(state wizard.State) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.items[id] = &entry{state: state, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id
}

func (s *MemoryStore) Get(id uuid.UUID) (wizard.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return wizard.State{}, err
	}
	return e.state, nil
}

// Update runs fn on the current state and stores its result. fn runs under
// the store lock, so it must not block.
func (s *MemoryStore) Update(id uuid.UUID, fn func(wizard.State) (wizard.State, error)) (wizard.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookup(id)
	if err != nil {
		return wizard.State{}, err
	}
	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	e.state = next
	return next, nil
}

func (s *MemoryStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops expired sessions, skipping those with a submission in flight.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.items {
		if now.After(e.expiresAt) && e.state.Status != wizard.StatusSubmitting {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *MemoryStore) lookup(id uuid.UUID) (*entry, error) {
	e, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if now.After(e.expiresAt) && e.state.Status != wizard.StatusSubmitting {
		delete(s.items, id)
		return nil, ErrNotFound
	}
	e.expiresAt = now.Add(s.ttl)
	return e, nil
}
