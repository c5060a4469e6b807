// Package ident generates the 6-digit identifiers used for bookings, refill
// orders and call summaries. The identifiers match the legacy dataset format:
// uniformly random in [100000, 999999], with no uniqueness check beyond the
// collision odds of the range.
package ident

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const (
	minID = 100000
	maxID = 999999
)

// Generator produces 6-digit identifiers. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator backed by the given source. Tests use
// this for deterministic identifiers.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Next returns a random identifier in [100000, 999999].
func (g *Generator) Next() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return minID + g.rng.Intn(maxID-minID+1)
}

// NextString returns the identifier rendered as the 6-digit string callers
// persist and hand back to the conversation driver.
func (g *Generator) NextString() string {
	return strconv.Itoa(g.Next())
}
