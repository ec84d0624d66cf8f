package sim

import (
	"time"

	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// CharacteristicEvent marks a contact with a greater force. It never
// produces a numeric outcome; its only consequence is appending a
// record to the character's characteristic list.
type CharacteristicEvent struct {
	baseEvent
	force      string
	isBlessing bool
	effect     string
}

// NewCharacteristicEvent creates a narrative-only characteristic event.
func NewCharacteristicEvent(id, name, description string, variants []string, force string, isBlessing bool, effect string) *CharacteristicEvent {
	return &CharacteristicEvent{
		baseEvent:  newBaseEvent(id, name, description, variants),
		force:      force,
		isBlessing: isBlessing,
		effect:     effect,
	}
}

func (e *CharacteristicEvent) Kind() types.EventKind {
	return types.KindCharacteristic
}

// Force returns the name of the force behind the event.
func (e *CharacteristicEvent) Force() string {
	return e.force
}

// IsBlessing reports the polarity of the mark.
func (e *CharacteristicEvent) IsBlessing() bool {
	return e.isBlessing
}

// Resolve always returns nil: characteristic events are narrative
// inflection points, not checks.
func (e *CharacteristicEvent) Resolve(c *types.Character, r interfaces.Roller) *types.Outcome {
	return nil
}

// ApplyConsequences appends the characteristic record unconditionally,
// regardless of the (always nil) outcome.
func (e *CharacteristicEvent) ApplyConsequences(c *types.Character, outcome *types.Outcome) {
	c.Characteristics = append(c.Characteristics, types.CharacteristicRecord{
		Force:      e.force,
		IsBlessing: e.isBlessing,
		Effect:     e.effect,
		EventID:    e.id,
		Timestamp:  time.Now(),
		Active:     true,
	})
}
