package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagosride/internal/config"
	"lagosride/internal/types"
)

// ==========================================
// Mock Implementations
// ==========================================

type mockPolicyRepo struct {
	mu      sync.Mutex
	stored  *Policy
	saveErr error
	saves   int
}

func (m *mockPolicyRepo) Load(_ context.Context) (Policy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored == nil {
		return Policy{}, ErrPolicyNotFound
	}
	return *m.stored, nil
}

func (m *mockPolicyRepo) Save(_ context.Context, p Policy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.stored = &p
	return nil
}

type recordingObserver struct {
	mu       sync.Mutex
	zones    [][]ZoneSurge
	policies []Policy
	err      error
}

func (r *recordingObserver) ZonesUpdated(_ context.Context, zones []ZoneSurge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones = append(r.zones, zones)
	return r.err
}

func (r *recordingObserver) PolicyUpdated(_ context.Context, p Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies = append(r.policies, p)
	return r.err
}

func (r *recordingObserver) zoneCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.zones)
}

// ==========================================
// Helpers
// ==========================================

func fixedClock(hour int) func() time.Time {
	return func() time.Time { return time.Date(2025, 3, 14, hour, 30, 0, 0, time.UTC) }
}

func newTestService(t *testing.T, hour int, repo PolicyRepository, seeds []ZoneSeed) *Service {
	t.Helper()
	zones := NewZoneStore(func(_, _ int) int { return 0 })
	require.NoError(t, zones.Initialize(seeds))
	svc, err := NewService(ServiceDeps{
		Zones:    zones,
		Policies: repo,
		Config:   config.PricingConfig{TickInterval: time.Millisecond},
		Now:      fixedClock(hour),
	})
	require.NoError(t, err)
	return svc
}

func f64(v float64) *float64 { return &v }

// ==========================================
// Tests
// ==========================================

func TestNewService_RequiresZones(t *testing.T) {
	_, err := NewService(ServiceDeps{})
	assert.Error(t, err)
}

func TestNewService_BadTimezone(t *testing.T) {
	_, err := NewService(ServiceDeps{
		Zones:  NewZoneStore(nil),
		Config: config.PricingConfig{Timezone: "Mars/Olympus_Mons"},
	})
	assert.Error(t, err)
}

func TestNewService_ConfigOverridesDefaultPolicy(t *testing.T) {
	svc, err := NewService(ServiceDeps{
		Zones:  NewZoneStore(nil),
		Config: config.PricingConfig{MaxSurgeCap: 3.0},
	})
	require.NoError(t, err)
	assert.Equal(t, Policy{MaxSurgeCap: 3.0, PeakHourMultiplier: 1.15}, svc.Policy())
}

func TestComputeSurge(t *testing.T) {
	seeds := []ZoneSeed{
		{Name: "Lekki", Demand: 26, Supply: 10},
		{Name: "Surulere", Demand: 13, Supply: 10},
	}

	t.Run("off-peak", func(t *testing.T) {
		svc := newTestService(t, 12, nil, seeds)
		assert.Equal(t, SurgeResult{Multiplier: 2.2, Reason: ReasonVeryHigh}, svc.ComputeSurge("Lekki"))
		assert.Equal(t, SurgeResult{Multiplier: 1.25, Reason: ReasonSlightlyHigh}, svc.ComputeSurge("Surulere"))
	})

	t.Run("peak is capped", func(t *testing.T) {
		svc := newTestService(t, 8, nil, seeds)
		assert.Equal(t, SurgeResult{Multiplier: 2.5, Reason: ReasonVeryHigh}, svc.ComputeSurge("Lekki"))
	})

	t.Run("unknown zone", func(t *testing.T) {
		svc := newTestService(t, 8, nil, seeds)
		assert.Equal(t, SurgeResult{Multiplier: 1.0, Reason: ReasonUnknownZone}, svc.ComputeSurge("Badagry"))
	})
}

func TestComputeSurge_UsesConfiguredTimezone(t *testing.T) {
	zones := NewZoneStore(nil)
	require.NoError(t, zones.Initialize([]ZoneSeed{{Name: "Yaba", Demand: 10, Supply: 10}}))
	// 06:30 UTC is 07:30 in Lagos.
	svc, err := NewService(ServiceDeps{
		Zones:  zones,
		Config: config.PricingConfig{Timezone: "Africa/Lagos"},
		Now:    fixedClock(6),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.15, svc.ComputeSurge("Yaba").Multiplier)
}

func TestZones_SeedOrderAndSnapshot(t *testing.T) {
	svc := newTestService(t, 12, nil, DefaultSeeds())
	zones := svc.Zones()
	require.Len(t, zones, 10)
	assert.Equal(t, "Ikeja", zones[0].Name)
	assert.Equal(t, "Festac", zones[9].Name)
	assert.Equal(t, ZoneSurge{Name: "Victoria Island", Demand: 50, Supply: 18, Multiplier: 2.2}, zones[2])

	state, ok := svc.ZoneSnapshot("Apapa")
	require.True(t, ok)
	assert.Equal(t, ZoneState{Demand: 15, Supply: 10}, state)
}

func TestNearestZone(t *testing.T) {
	svc := newTestService(t, 12, nil, DefaultSeeds())

	name, ok := svc.NearestZone(types.Point{Lat: 6.51, Lng: 3.37})
	require.True(t, ok)
	assert.Equal(t, "Yaba", name)

	bare := newTestService(t, 12, nil, []ZoneSeed{{Name: "Yaba", Demand: 10, Supply: 10}})
	_, ok = bare.NearestZone(types.Point{Lat: 6.51, Lng: 3.37})
	assert.False(t, ok)
}

func TestUpdatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other field", func(t *testing.T) {
		repo := &mockPolicyRepo{}
		obs := &recordingObserver{}
		svc := newTestService(t, 12, repo, DefaultSeeds())
		svc.AddPolicyObserver(obs)

		got, err := svc.UpdatePolicy(ctx, PolicyUpdate{MaxSurgeCap: f64(3.0)})
		require.NoError(t, err)
		assert.Equal(t, Policy{MaxSurgeCap: 3.0, PeakHourMultiplier: 1.15}, got)
		assert.Equal(t, got, svc.Policy())
		assert.Equal(t, got, *repo.stored)
		assert.Equal(t, []Policy{got}, obs.policies)
	})

	t.Run("same update twice is idempotent", func(t *testing.T) {
		svc := newTestService(t, 12, nil, DefaultSeeds())
		u := PolicyUpdate{PeakHourMultiplier: f64(1.3)}
		first, err := svc.UpdatePolicy(ctx, u)
		require.NoError(t, err)
		second, err := svc.UpdatePolicy(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty update changes nothing", func(t *testing.T) {
		svc := newTestService(t, 12, nil, DefaultSeeds())
		got, err := svc.UpdatePolicy(ctx, PolicyUpdate{})
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicy(), got)
	})

	t.Run("save failure leaves policy untouched", func(t *testing.T) {
		repo := &mockPolicyRepo{saveErr: errors.New("db down")}
		obs := &recordingObserver{}
		svc := newTestService(t, 12, repo, DefaultSeeds())
		svc.AddPolicyObserver(obs)

		got, err := svc.UpdatePolicy(ctx, PolicyUpdate{MaxSurgeCap: f64(1.0)})
		assert.Error(t, err)
		assert.Equal(t, DefaultPolicy(), got)
		assert.Equal(t, DefaultPolicy(), svc.Policy())
		assert.Empty(t, obs.policies)
	})

	t.Run("observer failure does not fail update", func(t *testing.T) {
		svc := newTestService(t, 12, nil, DefaultSeeds())
		svc.AddPolicyObserver(&recordingObserver{err: errors.New("broker down")})
		_, err := svc.UpdatePolicy(ctx, PolicyUpdate{MaxSurgeCap: f64(2.0)})
		assert.NoError(t, err)
	})

	t.Run("next quote reflects the new cap", func(t *testing.T) {
		svc := newTestService(t, 12, nil, []ZoneSeed{{Name: "Lekki", Demand: 26, Supply: 10}})
		_, err := svc.UpdatePolicy(ctx, PolicyUpdate{MaxSurgeCap: f64(1.0)})
		require.NoError(t, err)
		assert.Equal(t, SurgeResult{Multiplier: 1.0, Reason: ReasonNormal}, svc.ComputeSurge("Lekki"))
	})
}

func TestUpdatePolicy_ConcurrentPartialUpdates(t *testing.T) {
	svc := newTestService(t, 12, &mockPolicyRepo{}, DefaultSeeds())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.UpdatePolicy(context.Background(), PolicyUpdate{MaxSurgeCap: f64(3.5)})
	}()
	go func() {
		defer wg.Done()
		_, _ = svc.UpdatePolicy(context.Background(), PolicyUpdate{PeakHourMultiplier: f64(1.4)})
	}()
	wg.Wait()
	assert.Equal(t, Policy{MaxSurgeCap: 3.5, PeakHourMultiplier: 1.4}, svc.Policy())
}

func TestRestorePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("loads stored policy", func(t *testing.T) {
		stored := Policy{MaxSurgeCap: 1.8, PeakHourMultiplier: 1.05}
		svc := newTestService(t, 12, &mockPolicyRepo{stored: &stored}, DefaultSeeds())
		require.NoError(t, svc.RestorePolicy(ctx))
		assert.Equal(t, stored, svc.Policy())
	})

	t.Run("persists defaults when nothing stored", func(t *testing.T) {
		repo := &mockPolicyRepo{}
		svc := newTestService(t, 12, repo, DefaultSeeds())
		require.NoError(t, svc.RestorePolicy(ctx))
		require.NotNil(t, repo.stored)
		assert.Equal(t, DefaultPolicy(), *repo.stored)
	})

	t.Run("no repository is a no-op", func(t *testing.T) {
		svc := newTestService(t, 12, nil, DefaultSeeds())
		assert.NoError(t, svc.RestorePolicy(ctx))
	})
}

func TestTick_NotifiesZoneObservers(t *testing.T) {
	svc := newTestService(t, 12, nil, DefaultSeeds())
	obs := &recordingObserver{}
	svc.AddZoneObserver(obs)
	svc.AddZoneObserver(&recordingObserver{err: errors.New("socket closed")})

	svc.Tick(context.Background())

	require.Equal(t, 1, obs.zoneCalls())
	assert.Len(t, obs.zones[0], 10)
}

func TestRunFluctuationTicker_StopsOnCancel(t *testing.T) {
	svc := newTestService(t, 12, nil, DefaultSeeds())
	obs := &recordingObserver{}
	svc.AddZoneObserver(obs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunFluctuationTicker(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return obs.zoneCalls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop after cancel")
	}
}
