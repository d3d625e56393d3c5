// README: Ride service quotes surge-priced options and dispatches ride requests.
package ride

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/pricing"
	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

type Pricer interface {
	ComputeSurge(zone string) pricing.SurgeResult
	NearestZone(p types.Point) (string, bool)
}

type Drivers interface {
	Approved(ctx context.Context) ([]driver.Driver, error)
	RecordTrip(ctx context.Context, driverID types.ID, t driver.Trip) error
}

type Earnings interface {
	CreditEarnings(ctx context.Context, driverID types.ID, fare decimal.Decimal, description string) (wallet.Transaction, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type ServiceDeps struct {
	Store   Store
	Pricing Pricer
	Drivers Drivers
	Wallets Earnings
	Events  Publisher
	Logger  *zap.Logger
	// BasePrice draws the standard-tier base fare; defaults to uniform [1500, 3499].
	BasePrice func() int64
	Now       func() time.Time
}

type Service struct {
	store     Store
	pricing   Pricer
	drivers   Drivers
	wallets   Earnings
	events    Publisher
	logger    *zap.Logger
	basePrice func() int64
	now       func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	s := &Service{
		store:     deps.Store,
		pricing:   deps.Pricing,
		drivers:   deps.Drivers,
		wallets:   deps.Wallets,
		events:    deps.Events,
		logger:    deps.Logger,
		basePrice: deps.BasePrice,
		now:       deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.Named("ride")
	if s.basePrice == nil {
		s.basePrice = func() int64 { return 1500 + rand.Int64N(2000) }
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type OptionsQuery struct {
	Pickup string
	// PickupPoint resolves the pickup zone when Pickup is empty.
	PickupPoint *types.Point
	Destination string
}

// RequestCommand redeems a quote for one of its tiers.
type RequestCommand struct {
	QuoteID  types.ID
	OptionID pricing.Tier
}

// Options quotes every tier from one base fare and the pickup zone's surge, and keeps the
// quote so a later Request charges exactly these prices.
func (s *Service) Options(ctx context.Context, q OptionsQuery) (Quote, error) {
	pickup := strings.TrimSpace(q.Pickup)
	if pickup == "" && q.PickupPoint != nil {
		if zone, ok := s.pricing.NearestZone(*q.PickupPoint); ok {
			pickup = zone
		}
	}
	destination := strings.TrimSpace(q.Destination)
	if pickup == "" || destination == "" {
		return Quote{}, ErrBadRequest
	}

	surge := s.pricing.ComputeSurge(pickup)
	base := s.basePrice()
	now := s.now()

	quote := Quote{
		ID:              types.NewID("quote"),
		Pickup:          pickup,
		Destination:     destination,
		SurgeMultiplier: surge.Multiplier,
		SurgeReason:     surge.Reason,
		Options:         make([]Option, 0, len(pricing.Tiers)),
		IssuedAt:        now,
		ExpiresAt:       now.Add(QuoteTTL),
	}
	for _, tier := range pricing.Tiers {
		spec := tierSpecs[tier]
		fare := pricing.ApplySurge(pricing.TierBasePrice(base, tier), surge.Multiplier)
		quote.Options = append(quote.Options, Option{
			ID:              tier,
			Type:            spec.label,
			Price:           fare.FinalPrice,
			OriginalPrice:   fare.OriginalPrice,
			SurgeMultiplier: surge.Multiplier,
			ETA:             spec.eta,
			Capacity:        spec.capacity,
		})
	}
	if err := s.store.SaveQuote(ctx, quote); err != nil {
		return Quote{}, fmt.Errorf("save ride quote: %w", err)
	}
	return quote, nil
}

// Request redeems a quote: it assigns a random approved driver, credits their share of the
// quoted fare and emits ride.requested. Quotes are single use.
func (s *Service) Request(ctx context.Context, cmd RequestCommand) (*Ride, error) {
	if cmd.QuoteID == "" {
		return nil, ErrBadRequest
	}
	if _, ok := tierSpecs[cmd.OptionID]; !ok {
		return nil, ErrBadRequest
	}

	d, err := s.pickDriver(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := s.store.TakeQuote(ctx, cmd.QuoteID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if now.After(quote.ExpiresAt) {
		return nil, ErrQuoteExpired
	}
	opt, ok := quote.option(cmd.OptionID)
	if !ok {
		return nil, ErrBadRequest
	}
	pickup, destination := quote.Pickup, quote.Destination

	r := &Ride{
		ID:          types.NewID("ride"),
		Driver:      d,
		Option:      opt,
		Pickup:      pickup,
		Destination: destination,
		Status:      StatusEnRouteToPickup,
		Fare:        types.NGNInt(opt.Price),
		CreatedAt:   now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Fare from %s to %s", pickup, destination)
	if s.wallets != nil {
		_, err := s.wallets.CreditEarnings(ctx, d.ID, decimal.NewFromInt(opt.Price), description)
		switch {
		case errors.Is(err, wallet.ErrNotFound):
			s.logger.Debug("driver has no wallet; earnings not credited", zap.String("driver_id", string(d.ID)))
		case err != nil:
			s.logger.Warn("credit driver earnings", zap.String("ride_id", string(r.ID)), zap.Error(err))
		}
	}
	if err := s.drivers.RecordTrip(ctx, d.ID, driver.Trip{
		ID:          r.ID,
		Date:        now,
		Pickup:      pickup,
		Destination: destination,
		Fare:        opt.Price,
	}); err != nil {
		s.logger.Warn("record driver trip", zap.String("ride_id", string(r.ID)), zap.Error(err))
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, EventRideRequested, RequestedEvent{
			RideID:      r.ID,
			DriverID:    d.ID,
			Tier:        opt.ID,
			Pickup:      pickup,
			Destination: destination,
			Fare:        r.Fare,
			RequestedAt: now,
		}); err != nil {
			s.logger.Warn("publish ride event", zap.String("ride_id", string(r.ID)), zap.Error(err))
		}
	}

	s.logger.Info("ride requested",
		zap.String("ride_id", string(r.ID)),
		zap.String("driver_id", string(d.ID)),
		zap.String("tier", string(opt.ID)),
		zap.Int64("fare", opt.Price),
	)
	return r, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Ride, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Ride, error) {
	return s.store.List(ctx)
}

func (s *Service) pickDriver(ctx context.Context) (driver.Driver, error) {
	approved, err := s.drivers.Approved(ctx)
	if err != nil {
		return driver.Driver{}, err
	}
	ids := make([]types.ID, len(approved))
	byID := make(map[types.ID]driver.Driver, len(approved))
	for i, d := range approved {
		ids[i] = d.ID
		byID[d.ID] = d
	}
	picked := driver.PickRandomDrivers(ids, 1)
	if len(picked) == 0 {
		return driver.Driver{}, ErrNoDriverAvailable
	}
	return byID[picked[0]], nil
}
