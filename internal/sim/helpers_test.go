package sim

import (
	"github.com/user/adventure-sim/internal/types"
)

// scriptedRoller replays queued values so resolution paths can be
// forced in tests. Exhausted queues fall back to safe defaults.
type scriptedRoller struct {
	rolls   []int
	ints    []int
	chances []bool
}

func (r *scriptedRoller) Roll(sides int) int {
	if len(r.rolls) == 0 {
		return 1
	}
	v := r.rolls[0]
	r.rolls = r.rolls[1:]
	return v
}

func (r *scriptedRoller) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func (r *scriptedRoller) Chance(p float64) bool {
	if len(r.chances) == 0 {
		return false
	}
	v := r.chances[0]
	r.chances = r.chances[1:]
	return v
}

// testCharacter builds a character with every attribute at the given
// absolute value.
func testCharacter(value int) *types.Character {
	c := &types.Character{
		Code:            "1111F5RM5RF5A5I5M5E5C5",
		Race:            "Humano",
		Subrace:         "Nevado",
		Class:           "Guerrero",
		ClassKey:        "F",
		Tier:            "Normal",
		Attributes:      make(map[string]*types.Attribute),
		Alive:           true,
		Characteristics: make([]types.CharacteristicRecord, 0),
	}
	for _, key := range types.AttributeKeys {
		c.Attributes[key] = &types.Attribute{Level: 5, Value: value}
	}
	c.RecomputeTotal()
	return c
}
