package sim

import (
	"fmt"

	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// Thresholds for the d100 resolution. A natural 100 or 1 overrides the
// comparison entirely.
const (
	thresholdCriticalSuccess = 150
	thresholdSuccess         = 100
	thresholdNeutral         = 60
	thresholdFailure         = 30
)

// RollDiagnostic records the last resolution roll for observability.
type RollDiagnostic struct {
	Die            int
	PrimaryValue   int
	PrimaryBonus   int
	SecondaryValue int
	SecondaryBonus int
	Total          int
}

func (d RollDiagnostic) String() string {
	return fmt.Sprintf("d100: %d + (%d/2=%d) + (%d/4=%d) = %d",
		d.Die, d.PrimaryValue, d.PrimaryBonus, d.SecondaryValue, d.SecondaryBonus, d.Total)
}

// AttributeCheckEvent resolves with a d100 roll plus half the primary
// attribute and a quarter of the secondary, compared against fixed
// thresholds. Critical failures additionally risk the character's life.
type AttributeCheckEvent struct {
	baseEvent
	primaryAttribute   string
	secondaryAttribute string

	deathProbability float64
	lastRoll         *RollDiagnostic
}

// NewAttributeCheckEvent creates an attribute-check event. The
// secondary attribute may be empty.
func NewAttributeCheckEvent(id, name, description string, variants []string, primary, secondary string) *AttributeCheckEvent {
	return &AttributeCheckEvent{
		baseEvent:          newBaseEvent(id, name, description, variants),
		primaryAttribute:   primary,
		secondaryAttribute: secondary,
	}
}

func (e *AttributeCheckEvent) Kind() types.EventKind {
	return types.KindAttributeCheck
}

// PrimaryAttribute exposes the governing attribute for category filtering.
func (e *AttributeCheckEvent) PrimaryAttribute() string {
	return e.primaryAttribute
}

// SetDeathProbability configures the critical-failure death chance.
// The value comes from the run configuration, not the event definition.
func (e *AttributeCheckEvent) SetDeathProbability(p float64) {
	e.deathProbability = p
}

// LastRoll returns the diagnostic of the most recent Resolve call, or
// nil if the event has not been resolved yet.
func (e *AttributeCheckEvent) LastRoll() *RollDiagnostic {
	return e.lastRoll
}

func (e *AttributeCheckEvent) Resolve(c *types.Character, r interfaces.Roller) *types.Outcome {
	die := r.Roll(100)

	primaryValue := c.Value(e.primaryAttribute)
	primaryBonus := primaryValue / 2

	secondaryValue := 0
	secondaryBonus := 0
	if e.secondaryAttribute != "" {
		secondaryValue = c.Value(e.secondaryAttribute)
		secondaryBonus = secondaryValue / 4
	}

	total := die + primaryBonus + secondaryBonus
	e.lastRoll = &RollDiagnostic{
		Die:            die,
		PrimaryValue:   primaryValue,
		PrimaryBonus:   primaryBonus,
		SecondaryValue: secondaryValue,
		SecondaryBonus: secondaryBonus,
		Total:          total,
	}

	outcome := outcomeForRoll(die, total)
	return &outcome
}

// outcomeForRoll maps a natural die and combined total to an outcome.
// Natural criticals take precedence over the thresholds.
func outcomeForRoll(die, total int) types.Outcome {
	switch {
	case die == 100:
		return types.OutcomeCriticalSuccess
	case die == 1:
		return types.OutcomeCriticalFailure
	case total >= thresholdCriticalSuccess:
		return types.OutcomeCriticalSuccess
	case total >= thresholdSuccess:
		return types.OutcomeSuccess
	case total >= thresholdNeutral:
		return types.OutcomeNeutral
	case total >= thresholdFailure:
		return types.OutcomeFailure
	default:
		return types.OutcomeCriticalFailure
	}
}

func (e *AttributeCheckEvent) ApplyConsequences(c *types.Character, outcome *types.Outcome) {
	if outcome == nil {
		return
	}

	c.Apply(e.primaryAttribute, outcome.Delta())

	// The secondary attribute only moves on the extreme outcomes, and
	// only by one point in the outcome's direction.
	if e.secondaryAttribute != "" && abs(outcome.Delta()) >= 3 {
		change := 1
		if outcome.Delta() < 0 {
			change = -1
		}
		c.Apply(e.secondaryAttribute, change)
	}
}

// ProbeDeath rolls the configured death probability. Only a critical
// failure puts the character at risk.
func (e *AttributeCheckEvent) ProbeDeath(outcome *types.Outcome, r interfaces.Roller) bool {
	if outcome == nil || *outcome != types.OutcomeCriticalFailure {
		return false
	}
	return r.Chance(e.deathProbability)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
