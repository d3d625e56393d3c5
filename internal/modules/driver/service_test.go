package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

var testNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

type fakeWallets struct {
	mu      sync.Mutex
	wallets map[types.ID]wallet.Wallet
	opened  []types.ID
	err     error
}

func (f *fakeWallets) Wallet(_ context.Context, owner types.ID) (wallet.Wallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return wallet.Wallet{}, f.err
	}
	w, ok := f.wallets[owner]
	if !ok {
		return wallet.Wallet{}, wallet.ErrNotFound
	}
	return w, nil
}

func (f *fakeWallets) OpenWallet(_ context.Context, owner types.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, owner)
	return nil
}

func newTestService(wallets Wallets) *Service {
	svc := NewService(NewMemoryStore(SeedDrivers(testNow)...), wallets, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	d, err := svc.Register(ctx, RegisterCommand{
		Name:    "  Ngozi Eze ",
		Email:   "ngozi@example.com",
		Vehicle: Vehicle{Make: "Toyota", Model: "Corolla", Year: 2019, Color: "Grey", LicensePlate: "EKY 552AA"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ngozi Eze", d.Name)
	assert.Equal(t, StatusPending, d.Status)
	assert.Contains(t, d.PhotoURL, string(d.ID))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
	assert.Equal(t, d.ID, all[5].ID)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(nil)
	plate := Vehicle{LicensePlate: "EKY 552AA"}
	tests := []struct {
		name string
		cmd  RegisterCommand
	}{
		{"missing name", RegisterCommand{Email: "a@example.com", Vehicle: plate}},
		{"bad email", RegisterCommand{Name: "Ada", Email: "not-an-email", Vehicle: plate}},
		{"missing plate", RegisterCommand{Name: "Ada", Email: "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	wallets := &fakeWallets{}
	svc := newTestService(wallets)

	before, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, before, 3)

	d, err := svc.Approve(ctx, "driver3")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d.Status)
	assert.Equal(t, []types.ID{"driver3"}, wallets.opened)

	after, _ := svc.Approved(ctx)
	assert.Len(t, after, 4)

	// Already approved: no second wallet open.
	_, err = svc.Approve(ctx, "driver3")
	require.NoError(t, err)
	assert.Len(t, wallets.opened, 1)

	_, err = svc.Approve(ctx, "driver99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	wallets := &fakeWallets{wallets: map[types.ID]wallet.Wallet{
		"driver1": {OwnerID: "driver1", Balance: decimal.RequireFromString("25600.50")},
	}}
	svc := newTestService(wallets)

	trips := []Trip{
		{ID: "t1", Date: testNow.Add(-24 * time.Hour), Fare: 2000, Tip: 200, RiderRating: 5},
		{ID: "t2", Date: testNow.Add(-3 * 24 * time.Hour), Fare: 1500, RiderRating: 4},
		{ID: "t3", Date: testNow.Add(-10 * 24 * time.Hour), Fare: 3000, Tip: 500, RiderRating: 4},
		{ID: "t4", Date: testNow.Add(-2 * time.Hour), Fare: 1800},
	}
	for _, tr := range trips {
		require.NoError(t, svc.RecordTrip(ctx, "driver1", tr))
	}

	dash, err := svc.Dashboard(ctx, "driver1")
	require.NoError(t, err)
	assert.Equal(t, int64(9000), dash.TotalEarnings)
	assert.Equal(t, int64(5500), dash.WeeklyEarnings)
	assert.Equal(t, 4.33, dash.AverageRating)
	assert.Equal(t, 4, dash.TotalTrips)
	require.Len(t, dash.TripHistory, 4)
	assert.Equal(t, types.ID("t4"), dash.TripHistory[0].ID)
	assert.Equal(t, types.ID("t3"), dash.TripHistory[3].ID)
	require.NotNil(t, dash.Wallet)
	assert.Equal(t, "25600.5", dash.Wallet.Balance.String())
}

func TestDashboard_NoTripsNoWallet(t *testing.T) {
	svc := newTestService(&fakeWallets{})
	dash, err := svc.Dashboard(context.Background(), "driver3")
	require.NoError(t, err)
	assert.Zero(t, dash.TotalEarnings)
	assert.Zero(t, dash.AverageRating)
	assert.Nil(t, dash.Wallet)
}

func TestDashboard_Errors(t *testing.T) {
	svc := newTestService(&fakeWallets{err: errors.New("db down")})
	_, err := svc.Dashboard(context.Background(), "driver1")
	assert.Error(t, err)

	_, err = svc.Dashboard(context.Background(), "driver42")
	assert.ErrorIs(t, err, ErrNotFound)
}
