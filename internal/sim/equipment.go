package sim

import (
	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// Equipment events resolve via a fixed-probability coin flip that does
// not look at the character at all. The three sub-variants differ only
// in how consequences are applied.

// SimpleEquipmentEvent targets a single attribute. On success it adds
// the configured bonus; on failure it applies the configured failure
// delta, which may be zero or negative.
type SimpleEquipmentEvent struct {
	baseEvent
	attribute          string
	successBonus       int
	failureBonus       int
	successProbability float64
}

// NewSimpleEquipmentEvent creates a single-attribute equipment event.
func NewSimpleEquipmentEvent(id, name, description string, variants []string, attribute string, successBonus, failureBonus int, successProbability float64) *SimpleEquipmentEvent {
	return &SimpleEquipmentEvent{
		baseEvent:          newBaseEvent(id, name, description, variants),
		attribute:          attribute,
		successBonus:       successBonus,
		failureBonus:       failureBonus,
		successProbability: successProbability,
	}
}

func (e *SimpleEquipmentEvent) Kind() types.EventKind {
	return types.KindEquipment
}

func (e *SimpleEquipmentEvent) Resolve(c *types.Character, r interfaces.Roller) *types.Outcome {
	if r.Chance(e.successProbability) {
		return &outcomeSuccess
	}
	return &outcomeFailure
}

func (e *SimpleEquipmentEvent) ApplyConsequences(c *types.Character, outcome *types.Outcome) {
	if outcome == nil {
		return
	}
	switch *outcome {
	case types.OutcomeSuccess:
		c.Apply(e.attribute, e.successBonus)
	case types.OutcomeFailure:
		c.Apply(e.attribute, e.failureBonus)
	}
}

// DoubleEquipmentEvent targets a primary and a secondary attribute. On
// success the primary gains the bonus and the secondary takes the
// configured (usually negative) penalty; failure is a no-op.
type DoubleEquipmentEvent struct {
	baseEvent
	primaryAttribute   string
	secondaryAttribute string
	successBonus       int
	penalty            int
	successProbability float64
}

// NewDoubleEquipmentEvent creates a two-attribute equipment event.
func NewDoubleEquipmentEvent(id, name, description string, variants []string, primary, secondary string, successBonus, penalty int, successProbability float64) *DoubleEquipmentEvent {
	return &DoubleEquipmentEvent{
		baseEvent:          newBaseEvent(id, name, description, variants),
		primaryAttribute:   primary,
		secondaryAttribute: secondary,
		successBonus:       successBonus,
		penalty:            penalty,
		successProbability: successProbability,
	}
}

func (e *DoubleEquipmentEvent) Kind() types.EventKind {
	return types.KindEquipment
}

func (e *DoubleEquipmentEvent) Resolve(c *types.Character, r interfaces.Roller) *types.Outcome {
	if r.Chance(e.successProbability) {
		return &outcomeSuccess
	}
	return &outcomeFailure
}

func (e *DoubleEquipmentEvent) ApplyConsequences(c *types.Character, outcome *types.Outcome) {
	if outcome == nil || *outcome != types.OutcomeSuccess {
		return
	}
	c.Apply(e.primaryAttribute, e.successBonus)
	c.Apply(e.secondaryAttribute, e.penalty)
}

// GlobalEquipmentEvent adds its bonus to all eight attributes on
// success and does nothing on failure.
type GlobalEquipmentEvent struct {
	baseEvent
	successBonus       int
	successProbability float64
}

// NewGlobalEquipmentEvent creates an all-attributes equipment event.
func NewGlobalEquipmentEvent(id, name, description string, variants []string, successBonus int, successProbability float64) *GlobalEquipmentEvent {
	return &GlobalEquipmentEvent{
		baseEvent:          newBaseEvent(id, name, description, variants),
		successBonus:       successBonus,
		successProbability: successProbability,
	}
}

func (e *GlobalEquipmentEvent) Kind() types.EventKind {
	return types.KindEquipment
}

func (e *GlobalEquipmentEvent) Resolve(c *types.Character, r interfaces.Roller) *types.Outcome {
	if r.Chance(e.successProbability) {
		return &outcomeSuccess
	}
	return &outcomeFailure
}

func (e *GlobalEquipmentEvent) ApplyConsequences(c *types.Character, outcome *types.Outcome) {
	if outcome == nil || *outcome != types.OutcomeSuccess {
		return
	}
	for _, key := range types.AttributeKeys {
		c.Apply(key, e.successBonus)
	}
}
