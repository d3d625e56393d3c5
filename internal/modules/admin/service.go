// README: Admin read models: platform overview counters and the merged trip log.
package admin

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lagosride/internal/modules/booking"
	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

type TripKind string

const (
	TripKindRide TripKind = "ride"
	TripKindBus  TripKind = "bus"
)

type Overview struct {
	TotalRevenue   int64 `json:"total_revenue"`
	TotalTrips     int   `json:"total_trips"`
	TotalDrivers   int   `json:"total_drivers"`
	PendingDrivers int   `json:"pending_drivers"`
	PendingPayouts int   `json:"pending_payouts"`
}

type TripLog struct {
	ID      types.ID  `json:"id"`
	Kind    TripKind  `json:"type"`
	Party   string    `json:"party"`
	Date    time.Time `json:"date"`
	Details string    `json:"details"`
	Amount  int64     `json:"amount"`
	Status  string    `json:"status"`
}

type Drivers interface {
	List(ctx context.Context) ([]driver.Driver, error)
	Trips(ctx context.Context, id types.ID) ([]driver.Trip, error)
}

type Bookings interface {
	Bookings(ctx context.Context) ([]booking.Booking, error)
}

type Payouts interface {
	PendingPayouts(ctx context.Context) ([]wallet.Payout, error)
}

type Service struct {
	drivers  Drivers
	bookings Bookings
	payouts  Payouts
}

func NewService(drivers Drivers, bookings Bookings, payouts Payouts) *Service {
	return &Service{drivers: drivers, bookings: bookings, payouts: payouts}
}

// Overview counts every driver trip and bus booking; revenue includes tips.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	logs, err := s.TripLogs(ctx)
	if err != nil {
		return Overview{}, err
	}
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list drivers: %w", err)
	}
	payouts, err := s.payouts.PendingPayouts(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list pending payouts: %w", err)
	}

	out := Overview{
		TotalTrips:     len(logs),
		TotalDrivers:   len(drivers),
		PendingPayouts: len(payouts),
	}
	for _, l := range logs {
		out.TotalRevenue += l.Amount
	}
	for _, d := range drivers {
		if d.Status == driver.StatusPending {
			out.PendingDrivers++
		}
	}
	return out, nil
}

// TripLogs merges ride history and bus bookings, newest first.
func (s *Service) TripLogs(ctx context.Context) ([]TripLog, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	var logs []TripLog
	for _, d := range drivers {
		trips, err := s.drivers.Trips(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("trips for %s: %w", d.ID, err)
		}
		for _, t := range trips {
			logs = append(logs, TripLog{
				ID:      t.ID,
				Kind:    TripKindRide,
				Party:   d.Name,
				Date:    t.Date,
				Details: t.Pickup + " to " + t.Destination,
				Amount:  t.Fare + t.Tip,
				Status:  "completed",
			})
		}
	}

	bookings, err := s.bookings.Bookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for _, b := range bookings {
		logs = append(logs, TripLog{
			ID:      b.ID,
			Kind:    TripKindBus,
			Party:   b.Operator,
			Date:    b.CreatedAt,
			Details: fmt.Sprintf("%s to %s (%d seats)", b.From, b.To, len(b.Seats)),
			Amount:  b.TotalPrice,
			Status:  "confirmed",
		})
	}

	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return logs, nil
}
