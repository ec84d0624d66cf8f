package interfaces

import "github.com/user/adventure-sim/internal/types"

// Roller defines the injectable randomness source used by events and
// the simulation loop. Seeding one roller per run makes a full
// simulation deterministic.
type Roller interface {
	// Roll returns a uniform value in [1, sides].
	Roll(sides int) int
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Chance returns true with probability p.
	Chance(p float64) bool
}

// Event is the contract shared by the three event variants. Resolve
// returns nil for narrative-only events; ApplyConsequences must accept
// that nil.
type Event interface {
	ID() string
	Name() string
	Kind() types.EventKind
	Variant(r Roller) string
	Resolve(c *types.Character, r Roller) *types.Outcome
	ApplyConsequences(c *types.Character, outcome *types.Outcome)
}
