// README: Monthly per-client allowance for trip-assistant requests.
package aiusage

import (
	"context"
	"errors"
	"time"
)

// Service orchestrates assistant usage accounting.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// UseRequest deducts one request from the client's monthly allowance.
// If the client is unknown it is initialised and the request is immediately consumed.
func (s *Service) UseRequest(ctx context.Context, clientID string) error {
	month := monthOf(s.now())
	err := s.store.UseRequest(ctx, clientID, month)
	if !errors.Is(err, ErrQuotaExhausted) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureClient(ctx, clientID, month); initErr != nil {
		return initErr
	}
	return s.store.UseRequest(ctx, clientID, month)
}
