// README: Surge pricing model: zone state, pricing policy, surge results and fares.
package pricing

import (
	"errors"

	"lagosride/internal/types"
)

var (
	ErrAlreadySeeded  = errors.New("zone store already seeded")
	ErrInvalidSeed    = errors.New("invalid zone seed")
	ErrPolicyNotFound = errors.New("pricing policy not found")
)

// MinZoneLevel is the floor for both demand and supply in every zone.
const MinZoneLevel = 5

// Reasons shown next to a quoted fare.
const (
	ReasonUnknownZone  = "Normal fares."
	ReasonNormal       = "Fares are normal."
	ReasonSlightlyHigh = "Fares are slightly higher due to demand."
	ReasonHigh         = "Fares are higher due to increased demand."
	ReasonVeryHigh     = "Fares are much higher due to very high demand."
)

type ZoneState struct {
	Demand int `json:"demand"`
	Supply int `json:"supply"`
}

// ZoneSeed is one entry of the startup zone list. Center is optional and only used
// to resolve a pickup coordinate to a zone.
type ZoneSeed struct {
	Name   string       `json:"name" yaml:"name"`
	Demand int          `json:"demand" yaml:"demand"`
	Supply int          `json:"supply" yaml:"supply"`
	Center *types.Point `json:"center,omitempty" yaml:"center,omitempty"`
}

type Policy struct {
	MaxSurgeCap        float64 `json:"max_surge_cap"`
	PeakHourMultiplier float64 `json:"peak_hour_multiplier"`
}

// PolicyUpdate carries the fields an operator wants to change; nil fields are left as is.
type PolicyUpdate struct {
	MaxSurgeCap        *float64 `json:"max_surge_cap,omitempty"`
	PeakHourMultiplier *float64 `json:"peak_hour_multiplier,omitempty"`
}

func (u PolicyUpdate) apply(p Policy) Policy {
	if u.MaxSurgeCap != nil {
		p.MaxSurgeCap = *u.MaxSurgeCap
	}
	if u.PeakHourMultiplier != nil {
		p.PeakHourMultiplier = *u.PeakHourMultiplier
	}
	return p
}

func DefaultPolicy() Policy {
	return Policy{MaxSurgeCap: 2.5, PeakHourMultiplier: 1.15}
}

type SurgeResult struct {
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"`
}

// ZoneSurge is one row of the admin live-zone table.
type ZoneSurge struct {
	Name       string  `json:"name"`
	Demand     int     `json:"demand"`
	Supply     int     `json:"supply"`
	Multiplier float64 `json:"multiplier"`
}

// Fare is a surge-adjusted price. OriginalPrice is set only when a surge was applied.
type Fare struct {
	FinalPrice    int64  `json:"final_price"`
	OriginalPrice *int64 `json:"original_price,omitempty"`
}
