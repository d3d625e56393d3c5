// README: Pure surge multiplier calculation (tiers, peak boost, rounding, cap, reason).
package pricing

import "math"

// surgeTiers are evaluated in order and the last one whose ratio is exceeded wins.
// They are overrides, not cumulative steps.
var surgeTiers = []struct {
	ratioAbove float64
	multiplier float64
}{
	{1.2, 1.25},
	{1.5, 1.50},
	{2.0, 1.80},
	{2.5, 2.20},
}

// Peak windows, inclusive on both ends, in local hours.
var peakWindows = [][2]int{{7, 10}, {16, 19}}

func IsPeakHour(hour int) bool {
	for _, w := range peakWindows {
		if hour >= w[0] && hour <= w[1] {
			return true
		}
	}
	return false
}

// CalculateSurge derives the multiplier for one zone. found=false means the zone has
// no state and pricing stays neutral.
func CalculateSurge(state ZoneState, found bool, policy Policy, hour int) SurgeResult {
	if !found {
		return SurgeResult{Multiplier: 1.0, Reason: ReasonUnknownZone}
	}

	multiplier := tierMultiplier(float64(state.Demand) / float64(state.Supply))
	if IsPeakHour(hour) {
		multiplier *= policy.PeakHourMultiplier
	}

	// Round first, then the cap overrides with its exact value.
	multiplier = round2(multiplier)
	if multiplier > policy.MaxSurgeCap {
		multiplier = policy.MaxSurgeCap
	}

	return SurgeResult{Multiplier: multiplier, Reason: classify(multiplier)}
}

func tierMultiplier(ratio float64) float64 {
	m := 1.0
	for _, t := range surgeTiers {
		if ratio > t.ratioAbove {
			m = t.multiplier
		}
	}
	return m
}

func classify(multiplier float64) string {
	switch {
	case multiplier > 1.9:
		return ReasonVeryHigh
	case multiplier > 1.4:
		return ReasonHigh
	case multiplier > 1.1:
		return ReasonSlightlyHigh
	default:
		return ReasonNormal
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
