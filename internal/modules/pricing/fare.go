// README: Fare application: surge on base prices, ride tier ratios and the driver earnings split.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// platformFeePercent is the share of every fare kept by the platform.
const platformFeePercent = 20

// PlatformFeeRate returns the platform's share of a fare as a fraction.
func PlatformFeeRate() decimal.Decimal {
	return decimal.New(platformFeePercent, -2)
}

type Tier string

const (
	TierCarpool  Tier = "carpool"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Tiers lists ride tiers in display order.
var Tiers = []Tier{TierCarpool, TierStandard, TierPremium}

var tierRatios = map[Tier]float64{
	TierCarpool:  0.7,
	TierStandard: 1.0,
	TierPremium:  1.5,
}

// ApplySurge prices basePrice with multiplier. Rounding is math.Round (half away from
// zero), which is half-up for the non-negative prices quoted here.
func ApplySurge(basePrice int64, multiplier float64) Fare {
	fare := Fare{FinalPrice: roundPrice(float64(basePrice) * multiplier)}
	if multiplier > 1.0 {
		original := basePrice
		fare.OriginalPrice = &original
	}
	return fare
}

// TierBasePrice scales the standard base price for a tier before any surge applies.
func TierBasePrice(base int64, tier Tier) int64 {
	ratio, ok := tierRatios[tier]
	if !ok {
		ratio = 1.0
	}
	return roundPrice(float64(base) * ratio)
}

// DriverEarnings is the fare minus the platform fee.
func DriverEarnings(fare decimal.Decimal) decimal.Decimal {
	return fare.Mul(decimal.NewFromInt(1).Sub(PlatformFeeRate()))
}

func roundPrice(f float64) int64 {
	return int64(math.Round(f))
}
