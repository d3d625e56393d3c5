// README: Driver service: onboarding, approval, dispatch pool and earnings dashboard.
package driver

import (
	"context"
	"errors"
	"math"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

// Wallets is the slice of the wallet service the registry needs.
type Wallets interface {
	Wallet(ctx context.Context, owner types.ID) (wallet.Wallet, error)
	OpenWallet(ctx context.Context, owner types.ID) error
}

type Service struct {
	store   Store
	wallets Wallets
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(store Store, wallets Wallets, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, wallets: wallets, now: time.Now, logger: logger.Named("driver")}
}

type RegisterCommand struct {
	Name    string
	Email   string
	Vehicle Vehicle
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (Driver, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || strings.TrimSpace(cmd.Vehicle.LicensePlate) == "" {
		return Driver{}, ErrBadRequest
	}
	if _, err := mail.ParseAddress(cmd.Email); err != nil {
		return Driver{}, ErrBadRequest
	}

	id := types.NewID("drv")
	d := Driver{
		ID:        id,
		Name:      name,
		Email:     cmd.Email,
		PhotoURL:  photoURL(id),
		Vehicle:   cmd.Vehicle,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return Driver{}, err
	}
	s.logger.Info("driver registered", zap.String("driver_id", string(id)))
	return d, nil
}

// Approve moves a pending driver into the dispatch pool and opens their wallet.
// Approving an approved driver is a no-op.
func (s *Service) Approve(ctx context.Context, id types.ID) (Driver, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return Driver{}, err
	}
	if d.Status == StatusApproved {
		return d, nil
	}
	d, err = s.store.UpdateStatus(ctx, id, StatusApproved)
	if err != nil {
		return Driver{}, err
	}
	if s.wallets != nil {
		if err := s.wallets.OpenWallet(ctx, id); err != nil {
			s.logger.Warn("open driver wallet", zap.String("driver_id", string(id)), zap.Error(err))
		}
	}
	s.logger.Info("driver approved", zap.String("driver_id", string(id)))
	return d, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (Driver, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.store.List(ctx)
}

// Approved lists drivers eligible for dispatch.
func (s *Service) Approved(ctx context.Context) ([]Driver, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Driver, 0, len(all))
	for _, d := range all {
		if d.Status == StatusApproved {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) RecordTrip(ctx context.Context, driverID types.ID, t Trip) error {
	return s.store.AppendTrip(ctx, driverID, t)
}

// Trips returns the driver's completed trips, newest first.
func (s *Service) Trips(ctx context.Context, id types.ID) ([]Trip, error) {
	return s.store.Trips(ctx, id)
}

func (s *Service) Dashboard(ctx context.Context, id types.ID) (Dashboard, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return Dashboard{}, err
	}
	trips, err := s.store.Trips(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}

	weekAgo := s.now().Add(-7 * 24 * time.Hour)
	dash := Dashboard{TotalTrips: len(trips), TripHistory: trips}
	ratingSum, rated := 0, 0
	for _, t := range trips {
		earned := t.Fare + t.Tip
		dash.TotalEarnings += earned
		if t.Date.After(weekAgo) {
			dash.WeeklyEarnings += earned
		}
		if t.RiderRating > 0 {
			ratingSum += t.RiderRating
			rated++
		}
	}
	if rated > 0 {
		dash.AverageRating = math.Round(float64(ratingSum)/float64(rated)*100) / 100
	}

	if s.wallets != nil {
		w, err := s.wallets.Wallet(ctx, id)
		switch {
		case err == nil:
			dash.Wallet = &w
		case !errors.Is(err, wallet.ErrNotFound):
			return Dashboard{}, err
		}
	}
	return dash, nil
}
