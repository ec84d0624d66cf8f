package types

// EventKind classifies events into the three variants the engine resolves.
type EventKind string

const (
	KindEquipment      EventKind = "equipo"
	KindAttributeCheck EventKind = "atributo"
	KindCharacteristic EventKind = "caracteristica"
)

// Outcome is one of the five discrete resolution results of an
// attribute-check event. The numeric value is the delta applied to the
// primary attribute.
type Outcome int

const (
	OutcomeCriticalSuccess Outcome = 3
	OutcomeSuccess         Outcome = 1
	OutcomeNeutral         Outcome = 0
	OutcomeFailure         Outcome = -1
	OutcomeCriticalFailure Outcome = -3
)

// Delta returns the signed attribute change carried by the outcome.
func (o Outcome) Delta() int {
	return int(o)
}

func (o Outcome) String() string {
	switch o {
	case OutcomeCriticalSuccess:
		return "critical_success"
	case OutcomeSuccess:
		return "success"
	case OutcomeNeutral:
		return "neutral"
	case OutcomeFailure:
		return "failure"
	case OutcomeCriticalFailure:
		return "critical_failure"
	default:
		return "unknown"
	}
}

// Category is one of the five narrative groupings the personalized
// probability model distributes weight over.
type Category string

const (
	CategoryCombat      Category = "combate"
	CategoryMagic       Category = "magia"
	CategoryExploration Category = "exploracion"
	CategorySocial      Category = "social"
	CategoryMystic      Category = "mistico"
)

// Categories lists all five categories in a fixed order so weighted
// draws stay deterministic under a fixed seed.
var Categories = []Category{
	CategoryCombat,
	CategoryMagic,
	CategoryExploration,
	CategorySocial,
	CategoryMystic,
}

// CategoryAttributes maps the four non-mystic categories to the
// attribute pair that governs them.
var CategoryAttributes = map[Category][]string{
	CategoryCombat:      {AttrF, AttrRF},
	CategoryMagic:       {AttrRM, AttrM},
	CategoryExploration: {AttrA, AttrI},
	CategorySocial:      {AttrE, AttrC},
}

// ParticipantSnapshot captures a character's state on one side of an
// event resolution.
type ParticipantSnapshot struct {
	Total  int            `json:"total"`
	Values map[string]int `json:"values"`
}

// EventRecord is one entry of the per-run event log consumed by the
// report exporter.
type EventRecord struct {
	ID            string              `json:"id"`
	Kind          EventKind           `json:"kind"`
	EventID       string              `json:"event_id"`
	EventName     string              `json:"event_name"`
	Narrative     string              `json:"narrative"`
	CharacterCode string              `json:"character_code"`
	CharacterName string              `json:"character_name"`
	Outcome       string              `json:"outcome"`
	Died          bool                `json:"died"`
	Roll          string              `json:"roll,omitempty"`
	Before        ParticipantSnapshot `json:"before"`
	After         ParticipantSnapshot `json:"after"`
}
