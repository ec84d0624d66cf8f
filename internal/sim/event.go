package sim

import (
	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// baseEvent carries the fields shared by all three event variants.
type baseEvent struct {
	id          string
	name        string
	description string
	variants    []string
}

func newBaseEvent(id, name, description string, variants []string) baseEvent {
	if len(variants) == 0 {
		variants = []string{description}
	}
	return baseEvent{
		id:          id,
		name:        name,
		description: description,
		variants:    variants,
	}
}

func (e *baseEvent) ID() string {
	return e.id
}

func (e *baseEvent) Name() string {
	return e.name
}

// Variant selects a random narrative description.
func (e *baseEvent) Variant(r interfaces.Roller) string {
	if len(e.variants) == 0 {
		return e.description
	}
	return e.variants[r.Intn(len(e.variants))]
}

// success and failure shared by the equipment coin flips.
var (
	outcomeSuccess = types.OutcomeSuccess
	outcomeFailure = types.OutcomeFailure
)
