// README: Pricing service owns zone state, the policy and the fluctuation ticker.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"lagosride/internal/config"
	"lagosride/internal/types"
)

// PolicyRepository persists the process-wide policy across restarts.
type PolicyRepository interface {
	Load(ctx context.Context) (Policy, error)
	Save(ctx context.Context, p Policy) error
}

type ZoneObserver interface {
	ZonesUpdated(ctx context.Context, zones []ZoneSurge) error
}

type PolicyObserver interface {
	PolicyUpdated(ctx context.Context, p Policy) error
}

type ServiceDeps struct {
	Zones    *ZoneStore
	Policies PolicyRepository
	Config   config.PricingConfig
	Logger   *zap.Logger
	Now      func() time.Time
}

type Service struct {
	zones    *ZoneStore
	policies PolicyRepository
	tick     time.Duration
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger

	policyMu sync.RWMutex
	policy   Policy
	// updateMu serialises merge+save+swap so concurrent partial updates never lose a field.
	updateMu sync.Mutex

	obsMu           sync.RWMutex
	zoneObservers   []ZoneObserver
	policyObservers []PolicyObserver
}

func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Zones == nil {
		return nil, errors.New("pricing: zone store is required")
	}
	loc := time.UTC
	if deps.Config.Timezone != "" {
		l, err := time.LoadLocation(deps.Config.Timezone)
		if err != nil {
			return nil, fmt.Errorf("pricing: load timezone %q: %w", deps.Config.Timezone, err)
		}
		loc = l
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tick := deps.Config.TickInterval
	if tick <= 0 {
		tick = 5 * time.Second
	}

	policy := DefaultPolicy()
	if deps.Config.MaxSurgeCap != 0 {
		policy.MaxSurgeCap = deps.Config.MaxSurgeCap
	}
	if deps.Config.PeakHourMultiplier != 0 {
		policy.PeakHourMultiplier = deps.Config.PeakHourMultiplier
	}

	return &Service{
		zones:    deps.Zones,
		policies: deps.Policies,
		tick:     tick,
		loc:      loc,
		now:      now,
		logger:   logger.Named("pricing"),
		policy:   policy,
	}, nil
}

func (s *Service) AddZoneObserver(o ZoneObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.zoneObservers = append(s.zoneObservers, o)
}

func (s *Service) AddPolicyObserver(o PolicyObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.policyObservers = append(s.policyObservers, o)
}

// RestorePolicy replaces the configured defaults with the persisted policy, if any.
func (s *Service) RestorePolicy(ctx context.Context) error {
	if s.policies == nil {
		return nil
	}
	p, err := s.policies.Load(ctx)
	if errors.Is(err, ErrPolicyNotFound) {
		return s.policies.Save(ctx, s.Policy())
	}
	if err != nil {
		return fmt.Errorf("restore pricing policy: %w", err)
	}
	s.policyMu.Lock()
	s.policy = p
	s.policyMu.Unlock()
	return nil
}

func (s *Service) ComputeSurge(zone string) SurgeResult {
	state, ok := s.zones.Zone(zone)
	return CalculateSurge(state, ok, s.Policy(), s.localHour())
}

func (s *Service) ZoneSnapshot(zone string) (ZoneState, bool) {
	return s.zones.Zone(zone)
}

// Zones lists every zone with its current multiplier, in seed order.
func (s *Service) Zones() []ZoneSurge {
	policy := s.Policy()
	hour := s.localHour()
	names := s.zones.Names()
	out := make([]ZoneSurge, 0, len(names))
	for _, name := range names {
		state, ok := s.zones.Zone(name)
		if !ok {
			continue
		}
		res := CalculateSurge(state, true, policy, hour)
		out = append(out, ZoneSurge{
			Name:       name,
			Demand:     state.Demand,
			Supply:     state.Supply,
			Multiplier: round2(res.Multiplier),
		})
	}
	return out
}

// NearestZone maps a coordinate to the closest zone that has a center.
func (s *Service) NearestZone(p types.Point) (string, bool) {
	best, bestKm := "", math.MaxFloat64
	for name, c := range s.zones.centers() {
		d := haversineKm(p.Lat, p.Lng, c.Lat, c.Lng)
		if d < bestKm || (d == bestKm && name < best) {
			best, bestKm = name, d
		}
	}
	return best, best != ""
}

func (s *Service) Policy() Policy {
	s.policyMu.RLock()
	defer s.policyMu.RUnlock()
	return s.policy
}

// UpdatePolicy merges the provided fields. Values are accepted as given; see DESIGN.md
// for the open validation question.
func (s *Service) UpdatePolicy(ctx context.Context, u PolicyUpdate) (Policy, error) {
	s.updateMu.Lock()
	merged := u.apply(s.Policy())
	if s.policies != nil {
		if err := s.policies.Save(ctx, merged); err != nil {
			s.updateMu.Unlock()
			return s.Policy(), fmt.Errorf("save pricing policy: %w", err)
		}
	}
	s.policyMu.Lock()
	s.policy = merged
	s.policyMu.Unlock()
	s.updateMu.Unlock()

	s.logger.Info("pricing policy updated",
		zap.Float64("max_surge_cap", merged.MaxSurgeCap),
		zap.Float64("peak_hour_multiplier", merged.PeakHourMultiplier),
	)
	s.notifyPolicy(ctx, merged)
	return merged, nil
}

// Tick runs one fluctuation step and notifies zone observers.
func (s *Service) Tick(ctx context.Context) {
	s.zones.Tick()
	s.obsMu.RLock()
	observers := s.zoneObservers
	s.obsMu.RUnlock()
	if len(observers) == 0 {
		return
	}
	zones := s.Zones()
	for _, o := range observers {
		if err := o.ZonesUpdated(ctx, zones); err != nil {
			s.logger.Warn("zone observer failed", zap.Error(err))
		}
	}
}

// RunFluctuationTicker drives Tick on the configured interval until ctx is done.
func (s *Service) RunFluctuationTicker(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	s.logger.Info("zone fluctuation ticker started", zap.Duration("interval", s.tick))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("zone fluctuation ticker stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

func (s *Service) notifyPolicy(ctx context.Context, p Policy) {
	s.obsMu.RLock()
	observers := s.policyObservers
	s.obsMu.RUnlock()
	for _, o := range observers {
		if err := o.PolicyUpdated(ctx, p); err != nil {
			s.logger.Warn("policy observer failed", zap.Error(err))
		}
	}
}

func (s *Service) localHour() int {
	return s.now().In(s.loc).Hour()
}
