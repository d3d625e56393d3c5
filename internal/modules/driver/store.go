// README: In-memory driver registry and trip history.
package driver

import (
	"context"
	"sort"
	"sync"

	"lagosride/internal/types"
)

type Store interface {
	Create(ctx context.Context, d Driver) error
	Get(ctx context.Context, id types.ID) (Driver, error)
	List(ctx context.Context) ([]Driver, error)
	UpdateStatus(ctx context.Context, id types.ID, status Status) (Driver, error)
	AppendTrip(ctx context.Context, driverID types.ID, t Trip) error
	Trips(ctx context.Context, driverID types.ID) ([]Trip, error)
}

type MemoryStore struct {
	mu      sync.RWMutex
	drivers map[types.ID]*Driver
	order   []types.ID
	trips   map[types.ID][]Trip
}

func NewMemoryStore(seed ...Driver) *MemoryStore {
	s := &MemoryStore{
		drivers: make(map[types.ID]*Driver),
		trips:   make(map[types.ID][]Trip),
	}
	for _, d := range seed {
		_ = s.Create(context.Background(), d)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context, d Driver) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[d.ID]; ok {
		return ErrBadRequest
	}
	cp := d
	s.drivers[d.ID] = &cp
	s.order = append(s.order, d.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drivers[id]
	if !ok {
		return Driver{}, ErrNotFound
	}
	return *d, nil
}

// List returns drivers in registration order.
func (s *MemoryStore) List(_ context.Context) ([]Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Driver, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.drivers[id])
	}
	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, status Status) (Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drivers[id]
	if !ok {
		return Driver{}, ErrNotFound
	}
	d.Status = status
	return *d, nil
}

func (s *MemoryStore) AppendTrip(_ context.Context, driverID types.ID, t Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drivers[driverID]; !ok {
		return ErrNotFound
	}
	s.trips[driverID] = append(s.trips[driverID], t)
	return nil
}

// Trips returns the driver's history, newest first.
func (s *MemoryStore) Trips(_ context.Context, driverID types.ID) ([]Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.drivers[driverID]; !ok {
		return nil, ErrNotFound
	}
	out := append([]Trip(nil), s.trips[driverID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}
