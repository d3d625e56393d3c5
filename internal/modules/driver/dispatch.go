package driver

import (
	"math/rand/v2"

	"lagosride/internal/types"
)

// PickRandomDrivers samples up to n distinct drivers uniformly without replacement.
// The pool is not modified.
func PickRandomDrivers(pool []types.ID, n int) []types.ID {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	cp := make([]types.ID, len(pool))
	copy(cp, pool)
	// Partial Fisher-Yates: the first n slots end up as the sample.
	for i := 0; i < n; i++ {
		j := i + rand.IntN(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}
