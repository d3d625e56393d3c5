// README: Booking service: bus search with occupancy pricing and atomic seat booking.
package booking

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lagosride/internal/types"
)

type Service struct {
	mu       sync.Mutex
	buses    []*Bus
	byID     map[string]*Bus
	bookings []Booking
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(fleet []Bus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{byID: make(map[string]*Bus), now: time.Now, logger: logger.Named("booking")}
	for _, b := range fleet {
		bus := b
		bus.SeatLayout = cloneLayout(b.SeatLayout)
		s.buses = append(s.buses, &bus)
		s.byID[bus.ID] = &bus
	}
	return s
}

func (s *Service) Locations() []string {
	return append([]string(nil), Locations...)
}

// Search returns every bus on the route, priced for current occupancy.
func (s *Service) Search(_ context.Context, q SearchQuery) ([]Bus, error) {
	from, to := strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	if from == "" || to == "" || from == to {
		return nil, ErrBadRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bus, 0, len(s.buses))
	for _, b := range s.buses {
		bus := *b
		bus.SeatLayout = cloneLayout(b.SeatLayout)
		bus.From, bus.To = from, to
		bus.Price, bus.OriginalPrice = quote(b)
		out = append(out, bus)
	}
	return out, nil
}

// BookSeats books all requested seats or none of them.
func (s *Service) BookSeats(_ context.Context, cmd BookCommand) (Booking, error) {
	if cmd.BusID == "" || len(cmd.SeatIDs) == 0 {
		return Booking{}, ErrBadRequest
	}
	wanted := make(map[string]bool, len(cmd.SeatIDs))
	for _, id := range cmd.SeatIDs {
		if wanted[id] {
			return Booking{}, ErrBadRequest
		}
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bus, ok := s.byID[cmd.BusID]
	if !ok {
		return Booking{}, ErrNotFound
	}
	if wanted[AisleID] {
		return Booking{}, ErrSeatUnavailable
	}

	seats := make([]*Seat, 0, len(wanted))
	for r := range bus.SeatLayout {
		for c := range bus.SeatLayout[r] {
			seat := &bus.SeatLayout[r][c]
			if !wanted[seat.ID] {
				continue
			}
			if seat.Status != SeatAvailable {
				return Booking{}, ErrSeatUnavailable
			}
			seats = append(seats, seat)
		}
	}
	if len(seats) != len(wanted) {
		return Booking{}, ErrNotFound
	}

	unit, _ := quote(bus)
	for _, seat := range seats {
		seat.Status = SeatBooked
	}

	b := Booking{
		ID:         types.NewID("LR"),
		BusID:      bus.ID,
		Operator:   bus.Operator,
		Seats:      append([]string(nil), cmd.SeatIDs...),
		From:       cmd.From,
		To:         cmd.To,
		Date:       cmd.Date,
		TotalPrice: unit * int64(len(seats)),
		CreatedAt:  s.now(),
	}
	s.bookings = append(s.bookings, b)
	s.logger.Info("seats booked",
		zap.String("booking_id", string(b.ID)),
		zap.String("bus_id", bus.ID),
		zap.Strings("seats", b.Seats),
		zap.Int64("total_price", b.TotalPrice),
	)
	return b, nil
}

// Bookings returns confirmed bookings, oldest first.
func (s *Service) Bookings(_ context.Context) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Booking(nil), s.bookings...), nil
}

func quote(b *Bus) (int64, *int64) {
	if occupancy(b.SeatLayout) <= HighOccupancyThreshold {
		return b.Price, nil
	}
	original := b.Price
	return occupancyMarkup(b.Price), &original
}

// occupancyMarkup is the bus fill-rate rule; it never reads zone surge or the surge cap.
func occupancyMarkup(price int64) int64 {
	return int64(math.Round(float64(price) * HighOccupancyMarkup))
}
