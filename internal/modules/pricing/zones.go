// README: In-memory zone state store; the fluctuation tick is its only writer after seeding.
package pricing

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"lagosride/internal/types"
)

// Jitter returns a uniformly distributed integer in [lo, hi].
type Jitter func(lo, hi int) int

func uniformJitter(lo, hi int) int {
	return lo + rand.IntN(hi-lo+1)
}

// zoneCell guards one zone's demand/supply pair so a reader never sees half a tick.
type zoneCell struct {
	mu     sync.RWMutex
	state  ZoneState
	center *types.Point
}

func (c *zoneCell) snapshot() ZoneState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

type ZoneStore struct {
	mu     sync.RWMutex
	cells  map[string]*zoneCell
	order  []string
	seeded bool
	jitter Jitter
}

func NewZoneStore(jitter Jitter) *ZoneStore {
	if jitter == nil {
		jitter = uniformJitter
	}
	return &ZoneStore{cells: make(map[string]*zoneCell), jitter: jitter}
}

// Initialize populates the store once. Seed levels below the floor are raised to it.
func (z *ZoneStore) Initialize(seeds []ZoneSeed) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.seeded {
		return ErrAlreadySeeded
	}

	cells := make(map[string]*zoneCell, len(seeds))
	order := make([]string, 0, len(seeds))
	for _, s := range seeds {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: empty zone name", ErrInvalidSeed)
		}
		if _, dup := cells[name]; dup {
			return fmt.Errorf("%w: duplicate zone %q", ErrInvalidSeed, name)
		}
		var center *types.Point
		if s.Center != nil {
			c := *s.Center
			center = &c
		}
		cells[name] = &zoneCell{
			state:  ZoneState{Demand: clampLevel(s.Demand), Supply: clampLevel(s.Supply)},
			center: center,
		}
		order = append(order, name)
	}

	z.cells = cells
	z.order = order
	z.seeded = true
	return nil
}

// Tick nudges every zone: demand by [-2,+2], supply by [-1,+1], both floored at MinZoneLevel.
func (z *ZoneStore) Tick() {
	z.mu.RLock()
	defer z.mu.RUnlock()
	for _, name := range z.order {
		c := z.cells[name]
		c.mu.Lock()
		c.state.Demand = clampLevel(c.state.Demand + z.jitter(-2, 2))
		c.state.Supply = clampLevel(c.state.Supply + z.jitter(-1, 1))
		c.mu.Unlock()
	}
}

func (z *ZoneStore) Zone(name string) (ZoneState, bool) {
	z.mu.RLock()
	c, ok := z.cells[name]
	z.mu.RUnlock()
	if !ok {
		return ZoneState{}, false
	}
	return c.snapshot(), true
}

// Names returns zone names in seed order.
func (z *ZoneStore) Names() []string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]string, len(z.order))
	copy(out, z.order)
	return out
}

func (z *ZoneStore) centers() map[string]types.Point {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make(map[string]types.Point)
	for name, c := range z.cells {
		if c.center != nil {
			out[name] = *c.center
		}
	}
	return out
}

func clampLevel(v int) int {
	if v < MinZoneLevel {
		return MinZoneLevel
	}
	return v
}
