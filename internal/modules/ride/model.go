// README: Ride aggregate, quoted ride options and status definitions.
package ride

import (
	"errors"
	"time"

	"lagosride/internal/modules/driver"
	"lagosride/internal/modules/pricing"
	"lagosride/internal/types"
)

var (
	ErrNotFound          = errors.New("ride not found")
	ErrBadRequest        = errors.New("bad request")
	ErrNoDriverAvailable = errors.New("no driver available")
	ErrQuoteExpired      = errors.New("ride quote expired or unknown")
)

// QuoteTTL bounds how long a quoted fare can be redeemed by a ride request.
const QuoteTTL = 10 * time.Minute

// EventRideRequested is the routing key published once a ride has a driver.
const EventRideRequested = "ride.requested"

type Status string

const (
	StatusEnRouteToPickup Status = "en_route_to_pickup"
	StatusInProgress      Status = "in_progress"
	StatusCompleted       Status = "completed"
)

type Option struct {
	ID              pricing.Tier `json:"id"`
	Type            string       `json:"type"`
	Price           int64        `json:"price"`
	OriginalPrice   *int64       `json:"original_price,omitempty"`
	SurgeMultiplier float64      `json:"surge_multiplier"`
	ETA             string       `json:"eta"`
	Capacity        int          `json:"capacity"`
}

// Quote is issued by Options and redeemed once by Request; the fare charged is always the quoted one.
type Quote struct {
	ID              types.ID  `json:"id"`
	Pickup          string    `json:"pickup"`
	Destination     string    `json:"destination"`
	Options         []Option  `json:"options"`
	SurgeMultiplier float64   `json:"surge_multiplier"`
	SurgeReason     string    `json:"surge_reason"`
	IssuedAt        time.Time `json:"issued_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

func (q Quote) option(id pricing.Tier) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

type Ride struct {
	ID          types.ID      `json:"id"`
	Driver      driver.Driver `json:"driver"`
	Option      Option        `json:"ride_option"`
	Pickup      string        `json:"pickup"`
	Destination string        `json:"destination"`
	Status      Status        `json:"status"`
	Fare        types.Money   `json:"fare"`
	CreatedAt   time.Time     `json:"created_at"`
}

// RequestedEvent is the payload of EventRideRequested.
type RequestedEvent struct {
	RideID      types.ID     `json:"ride_id"`
	DriverID    types.ID     `json:"driver_id"`
	Tier        pricing.Tier `json:"tier"`
	Pickup      string       `json:"pickup"`
	Destination string       `json:"destination"`
	Fare        types.Money  `json:"fare"`
	RequestedAt time.Time    `json:"requested_at"`
}

type tierSpec struct {
	label    string
	eta      string
	capacity int
}

var tierSpecs = map[pricing.Tier]tierSpec{
	pricing.TierCarpool:  {label: "Carpool", eta: "7 mins", capacity: 2},
	pricing.TierStandard: {label: "Standard", eta: "5 mins", capacity: 4},
	pricing.TierPremium:  {label: "Premium", eta: "4 mins", capacity: 4},
}
