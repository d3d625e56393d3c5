// README: Intercity bus model: fleet, seat layouts and bookings.
package booking

import (
	"errors"
	"time"

	"lagosride/internal/types"
)

var (
	ErrNotFound        = errors.New("bus or seat not found")
	ErrBadRequest      = errors.New("bad request")
	ErrSeatUnavailable = errors.New("seat unavailable")
)

// Buses over this share of booked seats are priced with HighOccupancyMarkup.
const (
	HighOccupancyThreshold = 0.8
	HighOccupancyMarkup    = 1.25
)

// Locations is the Lagos catalogue offered for search and the trip assistant.
var Locations = []string{
	"Ikeja", "Lekki", "Victoria Island", "Surulere", "Yaba",
	"Apapa", "Ikorodu", "Ajah", "Maryland", "Festac",
}

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatAisle     SeatStatus = "aisle"
)

// AisleID marks the walkway slot in every row.
const AisleID = "aisle"

type Seat struct {
	ID     string     `json:"id"`
	Status SeatStatus `json:"status"`
}

type Amenities struct {
	AC      bool `json:"ac"`
	WiFi    bool `json:"wifi"`
	Power   bool `json:"power"`
	Sleeper bool `json:"sleeper"`
}

type Bus struct {
	ID            string    `json:"id"`
	Operator      string    `json:"operator"`
	OperatorLogo  string    `json:"operator_logo"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Duration      string    `json:"duration"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	Amenities     Amenities `json:"amenities"`
	SeatLayout    [][]Seat  `json:"seat_layout"`
}

type SearchQuery struct {
	From string
	To   string
	Date string
}

type BookCommand struct {
	BusID   string
	SeatIDs []string
	From    string
	To      string
	Date    string
}

type Booking struct {
	ID         types.ID  `json:"id"`
	BusID      string    `json:"bus_id"`
	Operator   string    `json:"operator"`
	Seats      []string  `json:"seats"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Date       string    `json:"date"`
	TotalPrice int64     `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
