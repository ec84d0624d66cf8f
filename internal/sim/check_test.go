package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/adventure-sim/internal/types"
)

func TestAttributeCheckResolve(t *testing.T) {
	// Setup
	event := NewAttributeCheckEvent("evt_001", "Duelo", "Un duelo a espada", nil, types.AttrF, types.AttrRF)
	c := testCharacter(50)
	c.Attributes[types.AttrF].Value = 80
	c.Attributes[types.AttrRF].Value = 60
	c.RecomputeTotal()

	// Test case 1: die 50 + 80/2 + 60/4 = 105 is a success
	roller := &scriptedRoller{rolls: []int{50}}
	outcome := event.Resolve(c, roller)
	assert.NotNil(t, outcome)
	assert.Equal(t, types.OutcomeSuccess, *outcome)
	assert.Equal(t, 105, event.LastRoll().Total)
	assert.Equal(t, "d100: 50 + (80/2=40) + (60/4=15) = 105", event.LastRoll().String())

	// Test case 2: total reaching 150 is a critical success
	roller = &scriptedRoller{rolls: []int{95}}
	outcome = event.Resolve(c, roller)
	assert.Equal(t, types.OutcomeCriticalSuccess, *outcome)

	// Test case 3: natural 100 overrides the threshold comparison
	weak := testCharacter(0)
	roller = &scriptedRoller{rolls: []int{100}}
	outcome = event.Resolve(weak, roller)
	assert.Equal(t, types.OutcomeCriticalSuccess, *outcome)

	// Test case 4: natural 1 is always a critical failure
	strong := testCharacter(500)
	roller = &scriptedRoller{rolls: []int{1}}
	outcome = event.Resolve(strong, roller)
	assert.Equal(t, types.OutcomeCriticalFailure, *outcome)

	// Test case 5: middling totals are neutral
	roller = &scriptedRoller{rolls: []int{10}}
	outcome = event.Resolve(c, roller) // 10 + 40 + 15 = 65
	assert.Equal(t, types.OutcomeNeutral, *outcome)

	// Test case 6: low totals fail, very low totals fail critically
	bare := testCharacter(0)
	roller = &scriptedRoller{rolls: []int{35}}
	outcome = event.Resolve(bare, roller)
	assert.Equal(t, types.OutcomeFailure, *outcome)

	roller = &scriptedRoller{rolls: []int{20}}
	outcome = event.Resolve(bare, roller)
	assert.Equal(t, types.OutcomeCriticalFailure, *outcome)
}

func TestAttributeCheckConsequences(t *testing.T) {
	// Setup
	event := NewAttributeCheckEvent("evt_001", "Duelo", "Un duelo a espada", nil, types.AttrF, types.AttrRF)

	// Test case 1: critical success moves primary +3 and secondary +1
	c := testCharacter(50)
	outcome := types.OutcomeCriticalSuccess
	event.ApplyConsequences(c, &outcome)
	assert.Equal(t, 53, c.Value(types.AttrF))
	assert.Equal(t, 51, c.Value(types.AttrRF))
	assert.Equal(t, 404, c.Total)

	// Test case 2: plain success moves only the primary
	c = testCharacter(50)
	outcome = types.OutcomeSuccess
	event.ApplyConsequences(c, &outcome)
	assert.Equal(t, 51, c.Value(types.AttrF))
	assert.Equal(t, 50, c.Value(types.AttrRF))

	// Test case 3: critical failure moves primary -3 and secondary -1
	c = testCharacter(50)
	outcome = types.OutcomeCriticalFailure
	event.ApplyConsequences(c, &outcome)
	assert.Equal(t, 47, c.Value(types.AttrF))
	assert.Equal(t, 49, c.Value(types.AttrRF))

	// Test case 4: attributes clamp at zero
	c = testCharacter(0)
	outcome = types.OutcomeCriticalFailure
	event.ApplyConsequences(c, &outcome)
	assert.Equal(t, 0, c.Value(types.AttrF))
	assert.Equal(t, 0, c.Value(types.AttrRF))

	// Test case 5: nil outcome is a no-op
	c = testCharacter(50)
	event.ApplyConsequences(c, nil)
	assert.Equal(t, 50, c.Value(types.AttrF))

	// Test case 6: without a secondary attribute only the primary moves
	solo := NewAttributeCheckEvent("evt_002", "Salto", "Un salto arriesgado", nil, types.AttrA, "")
	c = testCharacter(50)
	outcome = types.OutcomeCriticalSuccess
	solo.ApplyConsequences(c, &outcome)
	assert.Equal(t, 53, c.Value(types.AttrA))
	assert.Equal(t, 403, c.Total)
}

func TestProbeDeath(t *testing.T) {
	// Setup
	event := NewAttributeCheckEvent("evt_001", "Duelo", "Un duelo a espada", nil, types.AttrF, types.AttrRF)
	event.SetDeathProbability(0.5)

	criticalFailure := types.OutcomeCriticalFailure
	failure := types.OutcomeFailure

	// Test case 1: only a critical failure risks death
	assert.False(t, event.ProbeDeath(&failure, &scriptedRoller{chances: []bool{true}}))
	assert.False(t, event.ProbeDeath(nil, &scriptedRoller{chances: []bool{true}}))

	// Test case 2: death probe follows the configured chance
	assert.True(t, event.ProbeDeath(&criticalFailure, &scriptedRoller{chances: []bool{true}}))
	assert.False(t, event.ProbeDeath(&criticalFailure, &scriptedRoller{chances: []bool{false}}))
}
