// README: Driver registry model: drivers, vehicles, completed trips and the dashboard view.
package driver

import (
	"errors"
	"time"

	"lagosride/internal/modules/wallet"
	"lagosride/internal/types"
)

var (
	ErrNotFound   = errors.New("driver not found")
	ErrBadRequest = errors.New("bad request")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

type Driver struct {
	ID        types.ID  `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    float64   `json:"rating"`
	PhotoURL  string    `json:"photo_url"`
	Vehicle   Vehicle   `json:"vehicle"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Trip is one completed ride in a driver's history. RiderRating 0 means unrated.
type Trip struct {
	ID          types.ID  `json:"id"`
	Date        time.Time `json:"date"`
	Pickup      string    `json:"pickup"`
	Destination string    `json:"destination"`
	Fare        int64     `json:"fare"`
	Tip         int64     `json:"tip"`
	RiderRating int       `json:"rider_rating"`
}

type Dashboard struct {
	TotalEarnings  int64          `json:"total_earnings"`
	WeeklyEarnings int64          `json:"weekly_earnings"`
	AverageRating  float64        `json:"average_rating"`
	TotalTrips     int            `json:"total_trips"`
	TripHistory    []Trip         `json:"trip_history"`
	Wallet         *wallet.Wallet `json:"wallet,omitempty"`
}

// SeedDrivers is the launch roster; two applications are still awaiting review.
func SeedDrivers(now time.Time) []Driver {
	drivers := []Driver{
		{ID: "driver1", Name: "Tunde Adebayo", Email: "tunde@example.com", Rating: 4.9, Status: StatusApproved,
			Vehicle: Vehicle{Make: "Toyota", Model: "Camry", Year: 2021, Color: "Silver", LicensePlate: "LSD 123XY"}},
		{ID: "driver2", Name: "Chioma Okoro", Email: "chioma@example.com", Rating: 4.8, Status: StatusApproved,
			Vehicle: Vehicle{Make: "Honda", Model: "Accord", Year: 2020, Color: "Black", LicensePlate: "APP 456YZ"}},
		{ID: "driver3", Name: "Musa Ibrahim", Email: "musa@example.com", Rating: 4.9, Status: StatusPending,
			Vehicle: Vehicle{Make: "Lexus", Model: "RX 350", Year: 2022, Color: "White", LicensePlate: "GGE 789AB"}},
		{ID: "driver4", Name: "Funke Akindele", Email: "funke@example.com", Rating: 4.7, Status: StatusApproved,
			Vehicle: Vehicle{Make: "Kia", Model: "Seltos", Year: 2021, Color: "Red", LicensePlate: "KJA 321BC"}},
		{ID: "driver5", Name: "David Adeleke", Email: "david@example.com", Rating: 4.9, Status: StatusPending,
			Vehicle: Vehicle{Make: "Mercedes-Benz", Model: "C-Class", Year: 2023, Color: "Blue", LicensePlate: "FST 999CD"}},
	}
	for i := range drivers {
		drivers[i].PhotoURL = photoURL(drivers[i].ID)
		drivers[i].CreatedAt = now
	}
	return drivers
}

func photoURL(id types.ID) string {
	return "https://i.pravatar.cc/150?u=" + string(id)
}
