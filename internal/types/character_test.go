package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCharacter(value int) *Character {
	c := &Character{
		Race:       "Humano",
		Subrace:    "Nevado",
		Attributes: make(map[string]*Attribute),
		Alive:      true,
	}
	for _, key := range AttributeKeys {
		c.Attributes[key] = &Attribute{Level: 5, Value: value}
	}
	c.RecomputeTotal()
	return c
}

func TestApply(t *testing.T) {
	// Setup
	c := newCharacter(50)

	// Test case 1: positive deltas add and refresh the total
	c.Apply(AttrF, 10)
	assert.Equal(t, 60, c.Value(AttrF))
	assert.Equal(t, 410, c.Total)

	// Test case 2: negative deltas clamp at zero
	c.Apply(AttrM, -80)
	assert.Equal(t, 0, c.Value(AttrM))
	assert.Equal(t, 360, c.Total)

	// Test case 3: unknown attributes are ignored
	c.Apply("X", 100)
	assert.Equal(t, 360, c.Total)
	assert.Equal(t, 0, c.Value("X"))
}

func TestClone(t *testing.T) {
	// Setup
	c := newCharacter(50)
	c.Characteristics = []CharacteristicRecord{{Force: "Luz", IsBlessing: true}}

	// Test case 1: the clone is equal but independent
	clone := c.Clone()
	assert.Equal(t, c.Total, clone.Total)
	assert.Equal(t, c.Value(AttrF), clone.Value(AttrF))

	c.Apply(AttrF, 25)
	c.Characteristics = append(c.Characteristics, CharacteristicRecord{Force: "Vacío"})
	assert.Equal(t, 50, clone.Value(AttrF))
	assert.Len(t, clone.Characteristics, 1)
}

func TestDisplayName(t *testing.T) {
	// Test case 1: race and subrace combine
	c := newCharacter(50)
	assert.Equal(t, "Humano Nevado", c.DisplayName())

	// Test case 2: missing subrace falls back to the race
	c.Subrace = ""
	assert.Equal(t, "Humano", c.DisplayName())
}

func TestOutcome(t *testing.T) {
	// Test case 1: deltas mirror the numeric values
	assert.Equal(t, 3, OutcomeCriticalSuccess.Delta())
	assert.Equal(t, -3, OutcomeCriticalFailure.Delta())
	assert.Equal(t, 0, OutcomeNeutral.Delta())

	// Test case 2: names are stable
	assert.Equal(t, "critical_success", OutcomeCriticalSuccess.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "unknown", Outcome(7).String())
}
