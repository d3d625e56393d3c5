// README: In-memory ride and quote store.
package ride

import (
	"context"
	"sync"

	"lagosride/internal/types"
)

type Store interface {
	Create(ctx context.Context, r *Ride) error
	Get(ctx context.Context, id types.ID) (*Ride, error)
	// List returns rides oldest first.
	List(ctx context.Context) ([]Ride, error)

	SaveQuote(ctx context.Context, q Quote) error
	// TakeQuote removes and returns a quote; a second take of the same id fails with ErrQuoteExpired.
	TakeQuote(ctx context.Context, id types.ID) (Quote, error)
}

type MemoryStore struct {
	mu     sync.RWMutex
	rides  map[types.ID]*Ride
	order  []types.ID
	quotes map[types.ID]Quote
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rides:  make(map[types.ID]*Ride),
		quotes: make(map[types.ID]Quote),
	}
}

func (s *MemoryStore) Create(_ context.Context, r *Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.rides[r.ID] = &cp
	s.order = append(s.order, r.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rides[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Ride, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.rides[id])
	}
	return out, nil
}

// SaveQuote also drops quotes that had expired by the time q was issued.
func (s *MemoryStore) SaveQuote(_ context.Context, q Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, old := range s.quotes {
		if old.ExpiresAt.Before(q.IssuedAt) {
			delete(s.quotes, id)
		}
	}
	q.Options = append([]Option(nil), q.Options...)
	s.quotes[q.ID] = q
	return nil
}

func (s *MemoryStore) TakeQuote(_ context.Context, id types.ID) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return Quote{}, ErrQuoteExpired
	}
	delete(s.quotes, id)
	return q, nil
}
