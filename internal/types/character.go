package types

import "time"

// Attribute keys in canonical order. Every character carries all eight,
// and all positional interchange with the generator uses this order.
const (
	AttrF  = "F"
	AttrRM = "RM"
	AttrRF = "RF"
	AttrA  = "A"
	AttrI  = "I"
	AttrM  = "M"
	AttrE  = "E"
	AttrC  = "C"
)

// AttributeKeys lists the eight attributes in generator order.
var AttributeKeys = []string{AttrF, AttrRM, AttrRF, AttrA, AttrI, AttrM, AttrE, AttrC}

// Attribute holds one character dimension: the raw level rolled at
// generation (1-9) and the absolute value derived from race base,
// subrace bonus and accumulated event deltas.
type Attribute struct {
	Level int `json:"level"`
	Value int `json:"value"`
}

// CharacteristicRecord is an append-only narrative marker (blessing or
// curse) attached to a character by a characteristic event.
type CharacteristicRecord struct {
	Force      string    `json:"force"`
	IsBlessing bool      `json:"is_blessing"`
	Effect     string    `json:"effect"`
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	Active     bool      `json:"active"`
}

// Character represents one simulated entity. Identity fields are set by
// the generator and never change; attributes and the simulation fields
// are mutated in place by resolved events.
type Character struct {
	Code         string `json:"code"`
	Race         string `json:"race"`
	Subrace      string `json:"subrace"`
	Mark         string `json:"mark"`
	MarkVariant  string `json:"mark_variant"`
	Class        string `json:"class"`
	ClassKey     string `json:"class_key"`

	Attributes map[string]*Attribute `json:"attributes"`

	// Total is always the sum of the eight absolute values. Tier is
	// computed once at generation time and never recomputed.
	Total int    `json:"total"`
	Tier  string `json:"tier"`

	// Simulation fields, appended when the character enters the engine.
	EventsLived     int                    `json:"events_lived"`
	Wins            int                    `json:"wins"`
	Losses          int                    `json:"losses"`
	Alive           bool                   `json:"alive"`
	Characteristics []CharacteristicRecord `json:"characteristics"`
}

// Value returns the absolute value of the named attribute, or 0 if the
// attribute is unknown.
func (c *Character) Value(attr string) int {
	a, ok := c.Attributes[attr]
	if !ok {
		return 0
	}
	return a.Value
}

// Apply adds delta to the named attribute, clamps the result at zero and
// recomputes the total. Unknown attribute names are ignored.
func (c *Character) Apply(attr string, delta int) {
	a, ok := c.Attributes[attr]
	if !ok {
		return
	}
	a.Value += delta
	if a.Value < 0 {
		a.Value = 0
	}
	c.RecomputeTotal()
}

// RecomputeTotal refreshes Total from the eight absolute values.
func (c *Character) RecomputeTotal() {
	total := 0
	for _, key := range AttributeKeys {
		if a, ok := c.Attributes[key]; ok {
			total += a.Value
		}
	}
	c.Total = total
}

// Clone returns a deep copy, used to snapshot the initial roster before
// the simulation mutates it.
func (c *Character) Clone() *Character {
	clone := *c
	clone.Attributes = make(map[string]*Attribute, len(c.Attributes))
	for key, a := range c.Attributes {
		copied := *a
		clone.Attributes[key] = &copied
	}
	clone.Characteristics = make([]CharacteristicRecord, len(c.Characteristics))
	copy(clone.Characteristics, c.Characteristics)
	return &clone
}

// DisplayName combines race and subrace the way the event log and the
// report label characters.
func (c *Character) DisplayName() string {
	if c.Subrace == "" {
		return c.Race
	}
	return c.Race + " " + c.Subrace
}
