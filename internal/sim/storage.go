package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/user/adventure-sim/internal/types"
)

// Positional indices of the historical row format produced by earlier
// versions of the generator. Rows are heterogeneous JSON arrays.
const (
	rowCode = iota
	rowRace
	rowSubrace
	rowMark
	rowMarkVariant
	rowClass
	rowClassKey
	rowFLevel
	rowFValue
	rowRMLevel
	rowRMValue
	rowRFLevel
	rowRFValue
	rowALevel
	rowAValue
	rowILevel
	rowIValue
	rowMLevel
	rowMValue
	rowELevel
	rowEValue
	rowCLevel
	rowCValue
	rowTotal
	rowTier
	rowEventsLived
	rowWins
	rowLosses
	rowAlive
	rowCharacteristics
	rowReserved

	rowBaseFields = rowEventsLived // generator rows stop at the tier
	rowFullFields = rowReserved + 1
)

// rowAttributeSlots pairs each attribute key with its level/value row
// positions, in row order.
var rowAttributeSlots = []struct {
	key   string
	level int
	value int
}{
	{types.AttrF, rowFLevel, rowFValue},
	{types.AttrRM, rowRMLevel, rowRMValue},
	{types.AttrRF, rowRFLevel, rowRFValue},
	{types.AttrA, rowALevel, rowAValue},
	{types.AttrI, rowILevel, rowIValue},
	{types.AttrM, rowMLevel, rowMValue},
	{types.AttrE, rowELevel, rowEValue},
	{types.AttrC, rowCLevel, rowCValue},
}

// RowToCharacter converts one positional row into a named-field
// character. Short generator rows get the simulation fields
// initialized; full rows keep their counters and characteristic
// history, normalizing the legacy integer encoding.
func RowToCharacter(row []any) (*types.Character, error) {
	if len(row) < rowBaseFields {
		return nil, fmt.Errorf("row has %d fields, need at least %d", len(row), rowBaseFields)
	}

	c := &types.Character{
		Code:            rowString(row, rowCode),
		Race:            rowString(row, rowRace),
		Subrace:         rowString(row, rowSubrace),
		Mark:            rowString(row, rowMark),
		MarkVariant:     rowString(row, rowMarkVariant),
		Class:           rowString(row, rowClass),
		ClassKey:        rowString(row, rowClassKey),
		Tier:            rowString(row, rowTier),
		Attributes:      make(map[string]*types.Attribute, len(rowAttributeSlots)),
		Alive:           true,
		Characteristics: make([]types.CharacteristicRecord, 0),
	}

	for _, slot := range rowAttributeSlots {
		c.Attributes[slot.key] = &types.Attribute{
			Level: rowInt(row, slot.level),
			Value: rowInt(row, slot.value),
		}
	}
	c.RecomputeTotal()

	if len(row) >= rowFullFields {
		c.EventsLived = rowInt(row, rowEventsLived)
		c.Wins = rowInt(row, rowWins)
		c.Losses = rowInt(row, rowLosses)
		if alive, ok := row[rowAlive].(bool); ok {
			c.Alive = alive
		}
		c.Characteristics = normalizeCharacteristics(row[rowCharacteristics])
	}

	return c, nil
}

// normalizeCharacteristics handles the three historical encodings of
// the characteristic slot: nil, a list of records, or a bare counter
// from a pre-record version. The counter collapses into a single
// historical record so the count is not lost.
func normalizeCharacteristics(raw any) []types.CharacteristicRecord {
	switch value := raw.(type) {
	case nil:
		return make([]types.CharacteristicRecord, 0)
	case []any:
		records := make([]types.CharacteristicRecord, 0, len(value))
		for _, entry := range value {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, types.CharacteristicRecord{
				Force:      anyString(m["fuerza"]),
				IsBlessing: anyBool(m["es_bendicion"]),
				Effect:     anyString(m["efecto"]),
				EventID:    anyString(m["evento_id"]),
				Timestamp:  time.Unix(int64(anyFloat(m["timestamp"])), 0),
				Active:     anyBool(m["activo"]),
			})
		}
		return records
	case float64:
		count := int(value)
		if count <= 0 {
			return make([]types.CharacteristicRecord, 0)
		}
		return []types.CharacteristicRecord{{
			Force:      "Histórico",
			IsBlessing: false,
			Effect:     fmt.Sprintf("caracteristicas_antiguas_%d", count),
			EventID:    "legacy",
			Timestamp:  time.Unix(0, 0),
			Active:     true,
		}}
	default:
		return make([]types.CharacteristicRecord, 0)
	}
}

// CharacterToRow serializes a character back into the full positional
// row format.
func CharacterToRow(c *types.Character) []any {
	row := make([]any, rowFullFields)
	row[rowCode] = c.Code
	row[rowRace] = c.Race
	row[rowSubrace] = c.Subrace
	row[rowMark] = c.Mark
	row[rowMarkVariant] = c.MarkVariant
	row[rowClass] = c.Class
	row[rowClassKey] = c.ClassKey
	row[rowTotal] = c.Total
	row[rowTier] = c.Tier
	row[rowEventsLived] = c.EventsLived
	row[rowWins] = c.Wins
	row[rowLosses] = c.Losses
	row[rowAlive] = c.Alive
	row[rowReserved] = nil

	for _, slot := range rowAttributeSlots {
		attr := c.Attributes[slot.key]
		if attr == nil {
			row[slot.level] = 0
			row[slot.value] = 0
			continue
		}
		row[slot.level] = attr.Level
		row[slot.value] = attr.Value
	}

	records := make([]any, 0, len(c.Characteristics))
	for _, rec := range c.Characteristics {
		records = append(records, map[string]any{
			"fuerza":       rec.Force,
			"es_bendicion": rec.IsBlessing,
			"efecto":       rec.Effect,
			"evento_id":    rec.EventID,
			"timestamp":    float64(rec.Timestamp.Unix()),
			"activo":       rec.Active,
		})
	}
	row[rowCharacteristics] = records

	return row
}

func rowString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return anyString(row[idx])
}

func rowInt(row []any, idx int) int {
	if idx >= len(row) {
		return 0
	}
	return int(anyFloat(row[idx]))
}

func anyString(v any) string {
	s, _ := v.(string)
	return s
}

func anyBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func anyFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Storage persists rosters and event logs as JSON files under a base
// directory.
type Storage struct {
	basePath string
}

// NewStorage creates a storage rooted at basePath, creating the
// directory when missing.
func NewStorage(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// SaveRoster writes the roster in the positional row format, so the
// output stays loadable by the historical tooling.
func (s *Storage) SaveRoster(name string, roster []*types.Character) error {
	rows := make([][]any, 0, len(roster))
	for _, c := range roster {
		rows = append(rows, CharacterToRow(c))
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write roster file: %w", err)
	}
	return nil
}

// LoadRoster reads a positional-row roster file.
func (s *Storage) LoadRoster(name string) ([]*types.Character, error) {
	path := filepath.Join(s.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var rows [][]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	roster := make([]*types.Character, 0, len(rows))
	for i, row := range rows {
		c, err := RowToCharacter(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		roster = append(roster, c)
	}
	return roster, nil
}

// SaveEventLog writes the run's event records.
func (s *Storage) SaveEventLog(name string, records []types.EventRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event log: %w", err)
	}

	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}
	return nil
}

// SaveStats writes the aggregated run statistics.
func (s *Storage) SaveStats(name string, stats Stats) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	path := filepath.Join(s.basePath, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
