package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/adventure-sim/internal/types"
)

func TestSimpleEquipmentEvent(t *testing.T) {
	// Setup
	event := NewSimpleEquipmentEvent("eq_001", "Espada", "Una espada en el camino", nil, types.AttrF, 5, -2, 0.6)

	// Test case 1: success adds the bonus to the attribute
	c := testCharacter(50)
	outcome := event.Resolve(c, &scriptedRoller{chances: []bool{true}})
	assert.Equal(t, types.OutcomeSuccess, *outcome)
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 55, c.Value(types.AttrF))
	assert.Equal(t, 405, c.Total)

	// Test case 2: failure applies the failure delta
	c = testCharacter(50)
	outcome = event.Resolve(c, &scriptedRoller{chances: []bool{false}})
	assert.Equal(t, types.OutcomeFailure, *outcome)
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 48, c.Value(types.AttrF))

	// Test case 3: a failure delta of zero leaves the attribute alone
	neutral := NewSimpleEquipmentEvent("eq_002", "Amuleto", "Un amuleto dudoso", nil, types.AttrM, 5, 0, 0.6)
	c = testCharacter(50)
	outcome = neutral.Resolve(c, &scriptedRoller{chances: []bool{false}})
	neutral.ApplyConsequences(c, outcome)
	assert.Equal(t, 50, c.Value(types.AttrM))

	// Test case 4: negative results clamp at zero
	c = testCharacter(1)
	outcome = event.Resolve(c, &scriptedRoller{chances: []bool{false}})
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 0, c.Value(types.AttrF))
}

func TestDoubleEquipmentEvent(t *testing.T) {
	// Setup
	event := NewDoubleEquipmentEvent("eq_003", "Armadura pesada", "Una armadura encontrada", nil, types.AttrRF, types.AttrA, 5, -2, 0.5)

	// Test case 1: success boosts the primary and penalizes the secondary
	c := testCharacter(50)
	outcome := event.Resolve(c, &scriptedRoller{chances: []bool{true}})
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 55, c.Value(types.AttrRF))
	assert.Equal(t, 48, c.Value(types.AttrA))
	assert.Equal(t, 403, c.Total)

	// Test case 2: failure changes nothing
	c = testCharacter(50)
	outcome = event.Resolve(c, &scriptedRoller{chances: []bool{false}})
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 50, c.Value(types.AttrRF))
	assert.Equal(t, 50, c.Value(types.AttrA))
	assert.Equal(t, 400, c.Total)
}

func TestGlobalEquipmentEvent(t *testing.T) {
	// Setup
	event := NewGlobalEquipmentEvent("eq_004", "Reliquia", "Una reliquia antigua", nil, 2, 0.8)

	// Test case 1: success raises all eight attributes
	c := testCharacter(50)
	outcome := event.Resolve(c, &scriptedRoller{chances: []bool{true}})
	event.ApplyConsequences(c, outcome)
	for _, key := range types.AttributeKeys {
		assert.Equal(t, 52, c.Value(key))
	}
	assert.Equal(t, 416, c.Total)

	// Test case 2: failure changes nothing
	c = testCharacter(50)
	outcome = event.Resolve(c, &scriptedRoller{chances: []bool{false}})
	event.ApplyConsequences(c, outcome)
	assert.Equal(t, 400, c.Total)
}

func TestEquipmentVariantSelection(t *testing.T) {
	// Setup
	event := NewSimpleEquipmentEvent("eq_005", "Botas", "Unas botas gastadas", []string{"primera", "segunda"}, types.AttrA, 5, 0, 0.6)

	// Test case 1: the roller picks among the variants
	assert.Equal(t, "primera", event.Variant(&scriptedRoller{ints: []int{0}}))
	assert.Equal(t, "segunda", event.Variant(&scriptedRoller{ints: []int{1}}))

	// Test case 2: without variants the description is the narrative
	bare := NewSimpleEquipmentEvent("eq_006", "Capa", "Una capa raída", nil, types.AttrE, 5, 0, 0.6)
	assert.Equal(t, "Una capa raída", bare.Variant(&scriptedRoller{}))
}
