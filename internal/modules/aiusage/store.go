package aiusage

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	// UseRequest deducts one request, resetting the allowance on a new month.
	// Returns ErrQuotaExhausted when nothing was deducted (quota spent or client absent).
	UseRequest(ctx context.Context, clientID string, month string) error
	// EnsureClient creates the client's row with the default allowance if missing.
	EnsureClient(ctx context.Context, clientID string, month string) error
}

// PGStore handles assistant_usage persistence.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) UseRequest(ctx context.Context, clientID, month string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE assistant_usage SET
			requests_left = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE requests_left - 1 END,
			last_reset_month = $1
		WHERE client_id = $3 AND (last_reset_month < $1 OR requests_left > 0)
	`, month, DefaultRequests, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureClient is a no-op when the row exists (ON CONFLICT DO NOTHING).
func (s *PGStore) EnsureClient(ctx context.Context, clientID, month string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO assistant_usage (client_id, requests_left, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO NOTHING
	`, clientID, DefaultRequests, month)
	return err
}

type usage struct {
	left  int
	month string
}

// MemoryStore is the single-process equivalent of PGStore.
type MemoryStore struct {
	mu      sync.Mutex
	clients map[string]*usage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clients: make(map[string]*usage)}
}

func (s *MemoryStore) UseRequest(_ context.Context, clientID, month string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.clients[clientID]
	if !ok {
		return ErrQuotaExhausted
	}
	if u.month < month {
		u.left, u.month = DefaultRequests, month
	}
	if u.left <= 0 {
		return ErrQuotaExhausted
	}
	u.left--
	return nil
}

func (s *MemoryStore) EnsureClient(_ context.Context, clientID, month string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[clientID]; !ok {
		s.clients[clientID] = &usage{left: DefaultRequests, month: month}
	}
	return nil
}

func monthOf(t time.Time) string {
	return t.Format("2006-01")
}
