package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rollAlways(v float64) func() float64 { return func() float64 { return v } }

// fullBus has every seat but the given ones booked.
func fullBus(id string, price int64, free ...string) Bus {
	layout := GenerateSeatLayout(rollAlways(0.99))
	open := map[string]bool{}
	for _, f := range free {
		open[f] = true
	}
	for r := range layout {
		for c := range layout[r] {
			if open[layout[r][c].ID] {
				layout[r][c].Status = SeatAvailable
			}
		}
	}
	return Bus{ID: id, Operator: "GIGM", Price: price, SeatLayout: layout}
}

func emptyBus(id string, price int64) Bus {
	return Bus{ID: id, Operator: "Chisco Transport", Price: price, SeatLayout: GenerateSeatLayout(rollAlways(0))}
}

func TestGenerateSeatLayout(t *testing.T) {
	layout := GenerateSeatLayout(rollAlways(0))
	require.Len(t, layout, 10)
	for i, row := range layout {
		require.Len(t, row, 5)
		assert.Equal(t, Seat{ID: AisleID, Status: SeatAisle}, row[2], "row %d", i)
		for _, s := range []Seat{row[0], row[1], row[3], row[4]} {
			assert.Equal(t, SeatAvailable, s.Status)
		}
	}
	assert.Equal(t, "A1", layout[0][0].ID)
	assert.Equal(t, "D10", layout[9][4].ID)

	// 0.75 beats only the A and B thresholds.
	layout = GenerateSeatLayout(rollAlways(0.75))
	assert.Equal(t, SeatBooked, layout[0][0].Status)
	assert.Equal(t, SeatBooked, layout[0][3].Status)
	assert.Equal(t, SeatAvailable, layout[0][4].Status)
}

func TestOccupancy(t *testing.T) {
	assert.Equal(t, 0.0, occupancy(GenerateSeatLayout(rollAlways(0))))
	assert.Equal(t, 1.0, occupancy(GenerateSeatLayout(rollAlways(0.99))))
	assert.Equal(t, 0.0, occupancy(nil))
}

func TestSearch_OccupancyMarkup(t *testing.T) {
	tests := []struct {
		name         string
		bus          Bus
		wantPrice    int64
		wantOriginal *int64
	}{
		{"empty bus keeps price", emptyBus("bus3", 7800), 7800, nil},
		// 33 of 40 booked is 0.825.
		{"over 80% marks up", fullBus("bus1", 8500, "A1", "A2", "A3", "A4", "A5", "A6", "A7"), 10625, ptr(8500)},
		// 32 of 40 booked is exactly 0.8.
		{"exactly 80% keeps price", fullBus("bus2", 9200, "A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8"), 9200, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService([]Bus{tt.bus}, nil)
			buses, err := svc.Search(context.Background(), SearchQuery{From: "Ikeja", To: "Ajah"})
			require.NoError(t, err)
			require.Len(t, buses, 1)
			assert.Equal(t, tt.wantPrice, buses[0].Price)
			assert.Equal(t, tt.wantOriginal, buses[0].OriginalPrice)
			assert.Equal(t, "Ikeja", buses[0].From)
			assert.Equal(t, "Ajah", buses[0].To)
		})
	}
}

func TestOccupancyMarkup(t *testing.T) {
	assert.Equal(t, int64(10625), occupancyMarkup(8500))
	// 7803 * 1.25 = 9753.75
	assert.Equal(t, int64(9754), occupancyMarkup(7803))
	// 2 * 1.25 = 2.5 rounds half up.
	assert.Equal(t, int64(3), occupancyMarkup(2))
}

func TestSearch_BadRequest(t *testing.T) {
	svc := NewService(DefaultFleet(nil), nil)
	for _, q := range []SearchQuery{{From: "Ikeja"}, {To: "Ajah"}, {From: "Yaba", To: "Yaba"}} {
		_, err := svc.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrBadRequest, "%+v", q)
	}
}

func TestSearch_ReturnsCopies(t *testing.T) {
	svc := NewService([]Bus{emptyBus("bus3", 7800)}, nil)
	buses, _ := svc.Search(context.Background(), SearchQuery{From: "Ikeja", To: "Ajah"})
	buses[0].SeatLayout[0][0].Status = SeatBooked

	again, _ := svc.Search(context.Background(), SearchQuery{From: "Ikeja", To: "Ajah"})
	assert.Equal(t, SeatAvailable, again[0].SeatLayout[0][0].Status)
}

func TestBookSeats(t *testing.T) {
	ctx := context.Background()
	svc := NewService([]Bus{emptyBus("bus3", 7800)}, nil)

	b, err := svc.BookSeats(ctx, BookCommand{BusID: "bus3", SeatIDs: []string{"A1", "C4"}, From: "Yaba", To: "Lekki", Date: "2025-05-21"})
	require.NoError(t, err)
	assert.Equal(t, int64(15600), b.TotalPrice)
	assert.Equal(t, []string{"A1", "C4"}, b.Seats)
	assert.Contains(t, string(b.ID), "LR_")

	buses, _ := svc.Search(ctx, SearchQuery{From: "Yaba", To: "Lekki"})
	assert.Equal(t, SeatBooked, buses[0].SeatLayout[0][0].Status)
	assert.Equal(t, SeatBooked, buses[0].SeatLayout[3][3].Status)

	bookings, _ := svc.Bookings(ctx)
	assert.Len(t, bookings, 1)
}

func TestBookSeats_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	svc := NewService([]Bus{emptyBus("bus3", 7800)}, nil)
	_, err := svc.BookSeats(ctx, BookCommand{BusID: "bus3", SeatIDs: []string{"B2"}})
	require.NoError(t, err)

	_, err = svc.BookSeats(ctx, BookCommand{BusID: "bus3", SeatIDs: []string{"A2", "B2"}})
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	buses, _ := svc.Search(ctx, SearchQuery{From: "Yaba", To: "Lekki"})
	assert.Equal(t, SeatAvailable, buses[0].SeatLayout[1][0].Status, "A2 must stay free")
}

func TestBookSeats_Errors(t *testing.T) {
	svc := NewService([]Bus{emptyBus("bus3", 7800)}, nil)
	tests := []struct {
		name string
		cmd  BookCommand
		want error
	}{
		{"no seats", BookCommand{BusID: "bus3"}, ErrBadRequest},
		{"duplicate seat", BookCommand{BusID: "bus3", SeatIDs: []string{"A1", "A1"}}, ErrBadRequest},
		{"unknown bus", BookCommand{BusID: "bus9", SeatIDs: []string{"A1"}}, ErrNotFound},
		{"unknown seat", BookCommand{BusID: "bus3", SeatIDs: []string{"Z1"}}, ErrNotFound},
		{"aisle", BookCommand{BusID: "bus3", SeatIDs: []string{AisleID}}, ErrSeatUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BookSeats(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookSeats_ConcurrentSingleWinner(t *testing.T) {
	svc := NewService([]Bus{emptyBus("bus3", 7800)}, nil)
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.BookSeats(context.Background(), BookCommand{BusID: "bus3", SeatIDs: []string{"D7"}}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestLocations(t *testing.T) {
	svc := NewService(nil, nil)
	locs := svc.Locations()
	assert.Len(t, locs, 10)
	locs[0] = "Mutated"
	assert.Equal(t, "Ikeja", svc.Locations()[0])
}

func ptr(v int64) *int64 { return &v }
