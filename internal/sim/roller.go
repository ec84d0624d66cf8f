package sim

import (
	"math/rand"
	"time"
)

// DiceRoller wraps a seeded random number generator. All randomness in
// a run flows through one roller so a fixed seed reproduces the run
// end-to-end.
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller creates a roller seeded with the given value. A zero
// seed falls back to the current time.
func NewDiceRoller(seed int64) *DiceRoller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DiceRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll rolls a die with the specified number of sides, returning 1..sides.
func (dr *DiceRoller) Roll(sides int) int {
	return dr.rng.Intn(sides) + 1
}

// Intn returns a uniform value in [0, n).
func (dr *DiceRoller) Intn(n int) int {
	return dr.rng.Intn(n)
}

// Chance returns true with probability p.
func (dr *DiceRoller) Chance(p float64) bool {
	return dr.rng.Float64() < p
}

// WeightedIndex draws an index proportionally to the given weights.
// Non-positive totals fall back to the first index.
func (dr *DiceRoller) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	target := dr.rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}
