// Package report renders a finished run as a spreadsheet workbook plus
// a plain-text summary.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/user/adventure-sim/internal/gen"
	"github.com/user/adventure-sim/internal/sim"
	"github.com/user/adventure-sim/internal/types"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// tierColors maps a tier to its row fill in the roster sheets.
var tierColors = map[string]string{
	gen.TierLegendaryHero: "FFD700",
	gen.TierGreaterHero:   "C0C0C0",
	gen.TierHero:          "CD7F32",
	gen.TierAberrant:      "FF9999",
	gen.TierNormal:        "F0F0F0",
}

// rosterHeaders is the column layout of the Iniciales and Finales
// sheets, kept compatible with the historical workbooks.
var rosterHeaders = []string{
	"Código", "Raza", "Subraza", "MyB", "Variante",
	"Clase", "Clave_Clase",
	"F_val", "F_abs", "RM_val", "RM_abs", "RF_val", "RF_abs",
	"A_val", "A_abs", "I_val", "I_abs", "M_val", "M_abs",
	"E_val", "E_abs", "C_val", "C_abs",
	"Suma_Total", "Tipo",
	"Eventos", "Victorias", "Derrotas", "Vivo",
}

const tierColumn = 25

// Exporter writes run results under an output directory.
type Exporter struct {
	outputDir string
	basename  string
	logger    *zap.Logger
}

// NewExporter creates an exporter, creating the output directory when
// missing.
func NewExporter(outputDir, basename string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Exporter{
		outputDir: outputDir,
		basename:  basename,
		logger:    zap.NewNop(),
	}, nil
}

// SetLogger replaces the no-op logger.
func (e *Exporter) SetLogger(logger *zap.Logger) {
	e.logger = logger
}

// Export writes the workbook: initial and final rosters, a
// comparative sheet, the event history and the aggregate statistics.
// It returns the written path.
func (e *Exporter) Export(initial, final []*types.Character, events []types.EventRecord, stats sim.Stats) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeRosterSheet(f, "Iniciales", initial); err != nil {
		return "", err
	}
	if err := e.writeRosterSheet(f, "Finales", final); err != nil {
		return "", err
	}
	if err := e.writeComparativeSheet(f, initial, final); err != nil {
		return "", err
	}
	if err := e.writeEventSheet(f, events); err != nil {
		return "", err
	}
	if err := e.writeStatsSheet(f, final, stats); err != nil {
		return "", err
	}

	// Drop the default sheet so the workbook opens on the rosters.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("%s_%s.xlsx", e.basename, time.Now().Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("Workbook exported",
		zap.String("path", path),
		zap.Int("characters", len(final)),
		zap.Int("events", len(events)))

	return path, nil
}

func (e *Exporter) writeRosterSheet(f *excelize.File, title string, roster []*types.Character) error {
	if _, err := f.NewSheet(title); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", title, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}

	for col, header := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(title, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(title, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	tierStyles := make(map[string]int, len(tierColors))
	for tier, color := range tierColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("failed to build tier style: %w", err)
		}
		tierStyles[tier] = style
	}

	for i, c := range roster {
		row := i + 2
		values := rosterRow(c)
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(title, cell, value); err != nil {
				return fmt.Errorf("failed to write roster row: %w", err)
			}
		}
		if style, ok := tierStyles[c.Tier]; ok {
			cell, _ := excelize.CoordinatesToCellName(tierColumn, row)
			if err := f.SetCellStyle(title, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style tier cell: %w", err)
			}
		}
	}

	return nil
}

func rosterRow(c *types.Character) []any {
	values := []any{
		c.Code, c.Race, c.Subrace, c.Mark, c.MarkVariant,
		c.Class, c.ClassKey,
	}
	for _, key := range types.AttributeKeys {
		attr := c.Attributes[key]
		if attr == nil {
			values = append(values, 0, 0)
			continue
		}
		values = append(values, attr.Level, attr.Value)
	}
	values = append(values, c.Total, c.Tier, c.EventsLived, c.Wins, c.Losses, c.Alive)
	return values
}

func (e *Exporter) writeComparativeSheet(f *excelize.File, initial, final []*types.Character) error {
	const title = "Comparativa"
	if _, err := f.NewSheet(title); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", title, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to build bold style: %w", err)
	}
	gainStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build gain style: %w", err)
	}
	lossStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build loss style: %w", err)
	}

	if err := f.SetCellValue(title, "A1", "Comparativa iniciales vs finales"); err != nil {
		return err
	}
	if err := f.SetCellStyle(title, "A1", "A1", boldStyle); err != nil {
		return err
	}

	headers := []string{"Métrica", "Inicial", "Final", "Diferencia", "Cambio %"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		if err := f.SetCellValue(title, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(title, cell, cell, boldStyle); err != nil {
			return err
		}
	}

	metrics := []struct {
		name    string
		initial float64
		final   float64
	}{
		{"Total personajes", float64(len(initial)), float64(len(final))},
		{"Suma promedio", averageTotal(initial), averageTotal(final)},
		{"Eventos por persona", 0, averageEvents(final)},
	}

	for i, m := range metrics {
		row := 4 + i
		diff := m.final - m.initial

		cells := []any{m.name, round1(m.initial), round1(m.final), round1(diff)}
		if m.initial != 0 {
			cells = append(cells, fmt.Sprintf("%+.1f%%", diff/m.initial*100))
		}
		for col, value := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(title, cell, value); err != nil {
				return err
			}
		}

		if diff != 0 {
			style := gainStyle
			if diff < 0 {
				style = lossStyle
			}
			start, _ := excelize.CoordinatesToCellName(2, row)
			end, _ := excelize.CoordinatesToCellName(5, row)
			if err := f.SetCellStyle(title, start, end, style); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Exporter) writeEventSheet(f *excelize.File, events []types.EventRecord) error {
	const title = "Eventos"
	if _, err := f.NewSheet(title); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", title, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	headers := []string{"#", "Tipo", "Evento", "Personaje", "Resultado", "Tirada", "Murió"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(title, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(title, cell, cell, boldStyle); err != nil {
			return err
		}
	}

	for i, record := range events {
		row := i + 2
		values := []any{
			i + 1,
			string(record.Kind),
			record.EventName,
			fmt.Sprintf("%s (%s)", record.CharacterName, record.CharacterCode),
			record.Outcome,
			record.Roll,
			record.Died,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(title, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Exporter) writeStatsSheet(f *excelize.File, final []*types.Character, stats sim.Stats) error {
	const title = "Estadisticas"
	if _, err := f.NewSheet(title); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", title, err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	setHeading := func(row int, text string) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(title, cell, text); err != nil {
			return err
		}
		return f.SetCellStyle(title, cell, cell, boldStyle)
	}
	setPair := func(row int, name string, value any) error {
		nameCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(title, nameCell, name); err != nil {
			return err
		}
		return f.SetCellValue(title, valueCell, value)
	}

	row := 1
	if err := setHeading(row, "Básicas"); err != nil {
		return err
	}
	row++

	survival := 0.0
	if stats.TotalCharacters > 0 {
		survival = float64(stats.Living) / float64(stats.TotalCharacters) * 100
	}
	basics := []struct {
		name  string
		value any
	}{
		{"Personajes iniciales", stats.TotalCharacters},
		{"Personajes vivos", stats.Living},
		{"Muertos", stats.Dead},
		{"Supervivencia", fmt.Sprintf("%.1f%%", survival)},
		{"Total eventos", stats.TotalEvents},
		{"Victorias", stats.Wins},
		{"Derrotas", stats.Losses},
		{"Bendiciones", stats.Blessings},
		{"Maldiciones", stats.Curses},
	}
	for _, entry := range basics {
		if err := setPair(row, entry.name, entry.value); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setHeading(row, "Atributos"); err != nil {
		return err
	}
	row++
	averages := averageAttributes(final)
	for _, key := range types.AttributeKeys {
		if err := setPair(row, key+" promedio", round1(averages[key])); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setHeading(row, "Distribución por tipo"); err != nil {
		return err
	}
	row++
	for _, entry := range tierDistribution(final) {
		if err := setPair(row, entry.tier, entry.count); err != nil {
			return err
		}
		row++
	}

	return nil
}

// SaveSummary writes the plain-text run summary next to the workbook
// and returns its path.
func (e *Exporter) SaveSummary(final []*types.Character, stats sim.Stats) (string, error) {
	path := filepath.Join(e.outputDir, fmt.Sprintf("%s_resumen_%s.txt", e.basename, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(Summary(final, stats)), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// Summary renders the run summary as text.
func Summary(final []*types.Character, stats sim.Stats) string {
	var b strings.Builder

	survival := 0.0
	if stats.TotalCharacters > 0 {
		survival = float64(stats.Living) / float64(stats.TotalCharacters) * 100
	}

	b.WriteString("RESUMEN DE SIMULACIÓN\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Personajes iniciales: %d\n", stats.TotalCharacters)
	fmt.Fprintf(&b, "Personajes vivos: %d\n", stats.Living)
	fmt.Fprintf(&b, "Personajes muertos: %d\n", stats.Dead)
	fmt.Fprintf(&b, "Supervivencia: %.1f%%\n", survival)
	fmt.Fprintf(&b, "Eventos totales: %d\n\n", stats.TotalEvents)

	b.WriteString("Atributos (promedios finales):\n")
	averages := averageAttributes(final)
	for _, key := range types.AttributeKeys {
		fmt.Fprintf(&b, "  %s: %.1f\n", key, averages[key])
	}

	b.WriteString("\nTipos de personaje:\n")
	for _, entry := range tierDistribution(final) {
		fmt.Fprintf(&b, "  %s: %d\n", entry.tier, entry.count)
	}

	fmt.Fprintf(&b, "\nBendiciones: %d\n", stats.Blessings)
	fmt.Fprintf(&b, "Maldiciones: %d\n", stats.Curses)

	return b.String()
}

func averageTotal(roster []*types.Character) float64 {
	if len(roster) == 0 {
		return 0
	}
	sum := 0
	for _, c := range roster {
		sum += c.Total
	}
	return float64(sum) / float64(len(roster))
}

func averageEvents(roster []*types.Character) float64 {
	if len(roster) == 0 {
		return 0
	}
	sum := 0
	for _, c := range roster {
		sum += c.EventsLived
	}
	return float64(sum) / float64(len(roster))
}

func averageAttributes(roster []*types.Character) map[string]float64 {
	averages := make(map[string]float64, len(types.AttributeKeys))
	if len(roster) == 0 {
		return averages
	}
	for _, key := range types.AttributeKeys {
		sum := 0
		for _, c := range roster {
			sum += c.Value(key)
		}
		averages[key] = float64(sum) / float64(len(roster))
	}
	return averages
}

type tierCount struct {
	tier  string
	count int
}

// tierDistribution counts characters per tier, most common first.
func tierDistribution(roster []*types.Character) []tierCount {
	counts := make(map[string]int)
	for _, c := range roster {
		if c.Tier != "" {
			counts[c.Tier]++
		}
	}

	entries := make([]tierCount, 0, len(counts))
	for tier, count := range counts {
		entries = append(entries, tierCount{tier: tier, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].tier < entries[j].tier
	})
	return entries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
