package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/user/adventure-sim/internal/gen"
	"github.com/user/adventure-sim/internal/sim"
	"github.com/user/adventure-sim/internal/types"
	"github.com/xuri/excelize/v2"
)

func reportCharacter(code string, value int, tier string) *types.Character {
	c := &types.Character{
		Code:            code,
		Race:            "Humano",
		Subrace:         "Nevado",
		Mark:            "Ninguna",
		MarkVariant:     "Sin marca",
		Class:           "Guerrero",
		ClassKey:        "F",
		Tier:            tier,
		Attributes:      make(map[string]*types.Attribute),
		Alive:           true,
		Characteristics: make([]types.CharacteristicRecord, 0),
	}
	for _, key := range types.AttributeKeys {
		c.Attributes[key] = &types.Attribute{Level: 5, Value: value}
	}
	c.RecomputeTotal()
	return c
}

func TestExport(t *testing.T) {
	// Setup
	exporter, err := NewExporter(t.TempDir(), "simulacion")
	assert.NoError(t, err)

	initial := []*types.Character{
		reportCharacter("1111", 50, gen.TierNormal),
		reportCharacter("2222", 70, gen.TierLegendaryHero),
	}
	final := []*types.Character{
		reportCharacter("1111", 55, gen.TierNormal),
		reportCharacter("2222", 70, gen.TierLegendaryHero),
	}
	final[0].EventsLived = 5
	final[1].EventsLived = 3
	final[1].Alive = false

	events := []types.EventRecord{{
		ID:            "r1",
		Kind:          types.KindAttributeCheck,
		EventID:       "evt_001",
		EventName:     "Duelo",
		CharacterCode: "1111",
		CharacterName: "Humano Nevado",
		Outcome:       "success",
		Roll:          "d100: 50 + (50/2=25) + (50/4=12) = 87",
	}}
	stats := sim.Stats{
		TotalCharacters: 2,
		Living:          1,
		Dead:            1,
		TotalEvents:     1,
		Wins:            1,
	}

	// Test case 1: the workbook is written with all five sheets
	path, err := exporter.Export(initial, final, events, stats)
	assert.NoError(t, err)
	assert.FileExists(t, path)

	f, err := excelize.OpenFile(path)
	assert.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Iniciales", "Finales", "Comparativa", "Eventos", "Estadisticas"}, sheets)

	// Test case 2: the roster sheet carries the positional headers
	header, err := f.GetCellValue("Iniciales", "A1")
	assert.NoError(t, err)
	assert.Equal(t, "Código", header)
	tier, err := f.GetCellValue("Finales", "Y3")
	assert.NoError(t, err)
	assert.Equal(t, gen.TierLegendaryHero, tier)

	// Test case 3: the event sheet lists the run history
	name, err := f.GetCellValue("Eventos", "C2")
	assert.NoError(t, err)
	assert.Equal(t, "Duelo", name)
}

func TestSaveSummary(t *testing.T) {
	// Setup
	exporter, err := NewExporter(t.TempDir(), "simulacion")
	assert.NoError(t, err)

	final := []*types.Character{reportCharacter("1111", 50, gen.TierNormal)}
	stats := sim.Stats{TotalCharacters: 1, Living: 1, Blessings: 2, Curses: 1}

	// Test case 1: the summary file is written
	path, err := exporter.SaveSummary(final, stats)
	assert.NoError(t, err)
	assert.FileExists(t, path)
}

func TestSummaryContent(t *testing.T) {
	// Setup
	final := []*types.Character{
		reportCharacter("1111", 50, gen.TierNormal),
		reportCharacter("2222", 70, gen.TierHero),
	}
	stats := sim.Stats{TotalCharacters: 2, Living: 2, TotalEvents: 10, Blessings: 3, Curses: 1}

	// Test case 1: the summary contains the headline numbers
	text := Summary(final, stats)
	assert.Contains(t, text, "Personajes iniciales: 2")
	assert.Contains(t, text, "Supervivencia: 100.0%")
	assert.Contains(t, text, "Eventos totales: 10")
	assert.Contains(t, text, "F: 60.0")
	assert.Contains(t, text, gen.TierNormal+": 1")
	assert.Contains(t, text, "Bendiciones: 3")
	assert.Contains(t, text, "Maldiciones: 1")
}

func TestTierDistribution(t *testing.T) {
	// Test case 1: counts sort most common first
	roster := []*types.Character{
		reportCharacter("1", 50, gen.TierNormal),
		reportCharacter("2", 50, gen.TierNormal),
		reportCharacter("3", 50, gen.TierHero),
	}
	entries := tierDistribution(roster)
	assert.Len(t, entries, 2)
	assert.Equal(t, gen.TierNormal, entries[0].tier)
	assert.Equal(t, 2, entries[0].count)

	// Test case 2: untiered characters are skipped
	roster = append(roster, reportCharacter("4", 50, ""))
	assert.Len(t, tierDistribution(roster), 2)
}

func TestExportTimestampedNames(t *testing.T) {
	// Setup
	dir := t.TempDir()
	exporter, err := NewExporter(dir, "prueba")
	assert.NoError(t, err)

	// Test case 1: exported files embed the basename and a timestamp
	path, err := exporter.Export(nil, nil, nil, sim.Stats{})
	assert.NoError(t, err)
	assert.Contains(t, path, "prueba_")
	assert.Contains(t, path, time.Now().Format("20060102"))
}
