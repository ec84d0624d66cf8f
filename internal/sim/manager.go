package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/user/adventure-sim/config"
	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
	"go.uber.org/zap"
)

// ErrNoEvents is returned when no catalog has a single loaded event.
var ErrNoEvents = errors.New("no events loaded in any catalog")

// Stats aggregates a finished run for the report exporter and the
// results server.
type Stats struct {
	RunID           string `json:"run_id"`
	TotalCharacters int    `json:"total_characters"`
	Living          int    `json:"living"`
	Dead            int    `json:"dead"`
	TotalEvents     int    `json:"total_events"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	Contacts        int    `json:"contacts"`
	Deaths          int    `json:"deaths"`
	Blessings       int    `json:"blessings"`
	Curses          int    `json:"curses"`

	OutcomeCounts map[string]int `json:"outcome_counts"`
	KindCounts    map[string]int `json:"kind_counts"`
}

// SimulationManager drives the per-character event loop: category
// selection, event fetch, resolution, consequence application and
// death handling.
type SimulationManager struct {
	config config.Config
	logger *zap.Logger
	roller *DiceRoller

	equipment      *Catalog
	attribute      *Catalog
	characteristic *Catalog
	calculator     *ProbabilityCalculator

	runID    string
	initial  []*types.Character
	roster   []*types.Character
	dead     []*types.Character
	eventLog []types.EventRecord
}

// NewSimulationManager creates a manager with empty catalogs and a
// roller seeded from the configuration.
func NewSimulationManager(cfg config.Config) *SimulationManager {
	return &SimulationManager{
		config:         cfg,
		logger:         zap.NewNop(),
		roller:         NewDiceRoller(cfg.Simulation.Seed),
		equipment:      NewCatalog("Equipo"),
		attribute:      NewCatalog("Atributos"),
		characteristic: NewCatalog("Caracteristicas"),
		runID:          uuid.New().String(),
	}
}

// SetLogger replaces the no-op logger.
func (sm *SimulationManager) SetLogger(logger *zap.Logger) {
	sm.logger = logger
}

// SetCalculator installs the personalized probability calculator. When
// absent, the loop falls back to the fixed global category weights.
func (sm *SimulationManager) SetCalculator(calc *ProbabilityCalculator) {
	sm.calculator = calc
}

// RunID returns the identifier of this run.
func (sm *SimulationManager) RunID() string {
	return sm.runID
}

// LoadEvents fills the three catalogs from the data loader. A category
// whose file is missing or malformed stays empty; only a completely
// empty load is fatal.
func (sm *SimulationManager) LoadEvents(dl *DataLoader) error {
	if catalog, err := dl.LoadEquipmentEvents(); err != nil {
		sm.logger.Warn("Equipment catalog unavailable", zap.Error(err))
	} else {
		sm.equipment = catalog
	}

	if catalog, err := dl.LoadAttributeEvents(); err != nil {
		sm.logger.Warn("Attribute catalog unavailable", zap.Error(err))
	} else {
		sm.attribute = catalog
	}

	if catalog, err := dl.LoadCharacteristicEvents(); err != nil {
		sm.logger.Warn("Characteristic catalog unavailable", zap.Error(err))
	} else {
		sm.characteristic = catalog
	}

	total := sm.equipment.Len() + sm.attribute.Len() + sm.characteristic.Len()
	if total == 0 {
		return ErrNoEvents
	}

	// Attribute checks carry the run-level death probability, not a
	// per-definition one.
	for _, ev := range sm.attribute.Events() {
		if check, ok := ev.(*AttributeCheckEvent); ok {
			check.SetDeathProbability(sm.config.Simulation.DeathProbability)
		}
	}

	sm.logger.Info("Event catalogs loaded",
		zap.Int("equipment", sm.equipment.Len()),
		zap.Int("attribute", sm.attribute.Len()),
		zap.Int("characteristic", sm.characteristic.Len()))

	return nil
}

// LoadCharacters installs the roster, snapshotting the initial state
// and initializing the simulation fields.
func (sm *SimulationManager) LoadCharacters(characters []*types.Character) {
	sm.roster = characters
	sm.initial = make([]*types.Character, 0, len(characters))
	sm.dead = nil
	sm.eventLog = nil

	for _, c := range characters {
		c.Alive = true
		c.EventsLived = 0
		c.Wins = 0
		c.Losses = 0
		if c.Characteristics == nil {
			c.Characteristics = make([]types.CharacteristicRecord, 0)
		}
		sm.initial = append(sm.initial, c.Clone())
	}

	sm.logger.Info("Roster loaded", zap.Int("characters", len(characters)))
}

// Living returns the characters still alive.
func (sm *SimulationManager) Living() []*types.Character {
	living := make([]*types.Character, 0, len(sm.roster))
	for _, c := range sm.roster {
		if c.Alive {
			living = append(living, c)
		}
	}
	return living
}

// Dead returns the dead-roster.
func (sm *SimulationManager) Dead() []*types.Character {
	return sm.dead
}

// Roster returns the full final roster, living and dead.
func (sm *SimulationManager) Roster() []*types.Character {
	return sm.roster
}

// Initial returns the pre-simulation snapshot of the roster.
func (sm *SimulationManager) Initial() []*types.Character {
	return sm.initial
}

// EventLog returns the per-event records of the finished run.
func (sm *SimulationManager) EventLog() []types.EventRecord {
	return sm.eventLog
}

// Run executes the full simulation: every living character lives up to
// the configured number of events, stopping early on death.
func (sm *SimulationManager) Run() error {
	if sm.equipment.Len()+sm.attribute.Len()+sm.characteristic.Len() == 0 {
		return ErrNoEvents
	}

	budget := sm.config.Simulation.EventsPerCharacter
	sm.logger.Info("Simulation started",
		zap.String("run_id", sm.runID),
		zap.Int("characters", len(sm.roster)),
		zap.Int("events_per_character", budget),
		zap.Float64("death_probability", sm.config.Simulation.DeathProbability))

	for _, character := range sm.roster {
		sm.simulateCharacter(character, budget)
	}

	sm.logger.Info("Simulation finished",
		zap.String("run_id", sm.runID),
		zap.Int("total_events", len(sm.eventLog)),
		zap.Int("living", len(sm.Living())),
		zap.Int("dead", len(sm.dead)))

	return nil
}

func (sm *SimulationManager) simulateCharacter(character *types.Character, budget int) {
	for turn := 0; turn < budget; turn++ {
		if !character.Alive {
			sm.logger.Debug("Character died before exhausting its budget",
				zap.String("code", character.Code),
				zap.Int("events_lived", character.EventsLived))
			return
		}

		event := sm.selectEventFor(character)
		if event == nil {
			event = sm.selectEventGlobal()
		}
		if event == nil {
			// Nothing to resolve this turn; skip it.
			continue
		}

		record := sm.executeEvent(event, character)
		sm.eventLog = append(sm.eventLog, record)
	}
}

// selectEventFor picks an event using the personalized category
// weights. The mystic category routes to the characteristic catalog;
// the other four filter the attribute-check catalog by the category's
// attribute pair.
func (sm *SimulationManager) selectEventFor(character *types.Character) interfaces.Event {
	if sm.calculator == nil {
		return sm.selectEventGlobal()
	}

	weights := sm.calculator.Weights(character)
	category := sm.calculator.SampleCategory(weights, sm.roller)

	sm.logger.Debug("Category sampled",
		zap.String("code", character.Code),
		zap.String("category", string(category)),
		zap.String("weights", DescribeWeights(weights)))

	if category == types.CategoryMystic {
		return sm.characteristic.Random(sm.roller)
	}
	return sm.attribute.RandomByPrimary(types.CategoryAttributes[category], sm.roller)
}

// selectEventGlobal draws an event kind from the fixed global weights
// and fetches a random event of that kind, falling back to the other
// catalogs when the chosen one is empty.
func (sm *SimulationManager) selectEventGlobal() interfaces.Event {
	weights := []float64{
		sm.config.Simulation.EquipmentWeight,
		sm.config.Simulation.AttributeWeight,
		sm.config.Simulation.CharacteristicWeight,
	}
	catalogs := []*Catalog{sm.equipment, sm.attribute, sm.characteristic}

	idx := sm.roller.WeightedIndex(weights)
	for i := 0; i < len(catalogs); i++ {
		if ev := catalogs[(idx+i)%len(catalogs)].Random(sm.roller); ev != nil {
			return ev
		}
	}
	return nil
}

// executeEvent resolves one event against one character and produces
// the log record.
func (sm *SimulationManager) executeEvent(event interfaces.Event, character *types.Character) types.EventRecord {
	record := types.EventRecord{
		ID:            uuid.New().String(),
		Kind:          event.Kind(),
		EventID:       event.ID(),
		EventName:     event.Name(),
		Narrative:     event.Variant(sm.roller),
		CharacterCode: character.Code,
		CharacterName: character.DisplayName(),
		Before:        snapshot(character),
	}

	outcome := event.Resolve(character, sm.roller)

	died := false
	if check, ok := event.(*AttributeCheckEvent); ok {
		died = check.ProbeDeath(outcome, sm.roller)
		if last := check.LastRoll(); last != nil {
			record.Roll = last.String()
		}
	}

	event.ApplyConsequences(character, outcome)

	character.EventsLived++
	if outcome != nil {
		record.Outcome = outcome.String()
		if outcome.Delta() > 0 {
			character.Wins++
		} else if outcome.Delta() < 0 {
			character.Losses++
		}
	} else {
		record.Outcome = "contact"
	}

	if died {
		sm.markDead(character)
		record.Died = true
	}

	record.After = snapshot(character)

	sm.logger.Debug("Event resolved",
		zap.String("code", character.Code),
		zap.String("event_id", event.ID()),
		zap.String("outcome", record.Outcome),
		zap.Bool("died", died),
		zap.Int("total_before", record.Before.Total),
		zap.Int("total_after", record.After.Total))

	return record
}

// markDead flips the alive flag and moves the character to the
// dead-roster; it takes no further turns.
func (sm *SimulationManager) markDead(character *types.Character) {
	if !character.Alive {
		return
	}
	character.Alive = false
	sm.dead = append(sm.dead, character)

	sm.logger.Info("Character died",
		zap.String("code", character.Code),
		zap.String("name", character.DisplayName()),
		zap.Int("events_lived", character.EventsLived))
}

func snapshot(character *types.Character) types.ParticipantSnapshot {
	values := make(map[string]int, len(types.AttributeKeys))
	for _, key := range types.AttributeKeys {
		values[key] = character.Value(key)
	}
	return types.ParticipantSnapshot{
		Total:  character.Total,
		Values: values,
	}
}

// Summarize computes the aggregate statistics of the finished run.
func (sm *SimulationManager) Summarize() Stats {
	stats := Stats{
		RunID:           sm.runID,
		TotalCharacters: len(sm.roster),
		Living:          len(sm.Living()),
		Dead:            len(sm.dead),
		TotalEvents:     len(sm.eventLog),
		OutcomeCounts:   make(map[string]int),
		KindCounts:      make(map[string]int),
	}

	for _, record := range sm.eventLog {
		stats.OutcomeCounts[record.Outcome]++
		stats.KindCounts[string(record.Kind)]++
		if record.Died {
			stats.Deaths++
		}
	}

	for _, character := range sm.roster {
		stats.Wins += character.Wins
		stats.Losses += character.Losses
		stats.Contacts += len(character.Characteristics)
		for _, rec := range character.Characteristics {
			if rec.IsBlessing {
				stats.Blessings++
			} else {
				stats.Curses++
			}
		}
	}

	return stats
}

// Validate checks the configuration surface the engine consumes.
func Validate(cfg config.Config) error {
	if cfg.Simulation.EventsPerCharacter < 1 {
		return fmt.Errorf("events_per_character must be at least 1, got %d", cfg.Simulation.EventsPerCharacter)
	}
	if cfg.Simulation.DeathProbability < 0 || cfg.Simulation.DeathProbability > 1 {
		return fmt.Errorf("death_probability must be in [0,1], got %f", cfg.Simulation.DeathProbability)
	}
	return nil
}
