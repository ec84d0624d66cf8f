package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// Default equipment parameters applied when a definition omits them.
const (
	defaultGlobalProbability = 0.8
	defaultDoubleProbability = 0.5
	defaultSimpleProbability = 0.6
	defaultSuccessBonus      = 5
	defaultDoublePenalty     = -2
)

// DataLoader reads event, class and generation-table definitions from
// JSON files under a base path.
type DataLoader struct {
	basePath string
}

// NewDataLoader creates a new data loader.
func NewDataLoader(basePath string) *DataLoader {
	return &DataLoader{
		basePath: basePath,
	}
}

func (dl *DataLoader) readEventFile(name string) (*types.EventFile, error) {
	path := filepath.Join(dl.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var file types.EventFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse event file: %w", err)
	}

	return &file, nil
}

// LoadEquipmentEvents loads the equipment catalog. Definitions that
// match no sub-variant are skipped.
func (dl *DataLoader) LoadEquipmentEvents() (*Catalog, error) {
	file, err := dl.readEventFile("eventos_equipo.json")
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog("Equipo")
	for _, def := range file.Events {
		if ev := buildEquipmentEvent(def); ev != nil {
			catalog.Add(ev)
		}
	}
	return catalog, nil
}

// buildEquipmentEvent dispatches on the populated definition fields:
// aplica_a_todos wins over atributo_principal, which wins over atributo.
func buildEquipmentEvent(def types.EventDef) interfaces.Event {
	switch {
	case def.AppliesToAll:
		return NewGlobalEquipmentEvent(
			def.ID, def.Name, def.Description, def.Variants,
			intOrDefault(def.SuccessBonus, 0),
			probabilityOrDefault(def.SuccessProbability, defaultGlobalProbability),
		)
	case def.PrimaryAttribute != "":
		secondary := def.SecondaryAttribute
		if secondary == "" {
			secondary = types.AttrRF
		}
		return NewDoubleEquipmentEvent(
			def.ID, def.Name, def.Description, def.Variants,
			def.PrimaryAttribute, secondary,
			intOrDefault(def.SuccessBonus, defaultSuccessBonus),
			intOrDefault(def.Penalty, defaultDoublePenalty),
			probabilityOrDefault(def.SuccessProbability, defaultDoubleProbability),
		)
	case def.Attribute != "":
		return NewSimpleEquipmentEvent(
			def.ID, def.Name, def.Description, def.Variants,
			def.Attribute,
			intOrDefault(def.SuccessBonus, defaultSuccessBonus),
			def.FailureBonus,
			probabilityOrDefault(def.SuccessProbability, defaultSimpleProbability),
		)
	default:
		return nil
	}
}

func probabilityOrDefault(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func intOrDefault(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// LoadAttributeEvents loads the attribute-check catalog.
func (dl *DataLoader) LoadAttributeEvents() (*Catalog, error) {
	file, err := dl.readEventFile("eventos_atributos.json")
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog("Atributos")
	for _, def := range file.Events {
		primary := def.PrimaryAttribute
		if primary == "" {
			primary = types.AttrF
		}
		catalog.Add(NewAttributeCheckEvent(
			def.ID, def.Name, def.Description, def.Variants,
			primary, def.SecondaryAttribute,
		))
	}
	return catalog, nil
}

// LoadCharacteristicEvents loads the characteristic catalog.
func (dl *DataLoader) LoadCharacteristicEvents() (*Catalog, error) {
	file, err := dl.readEventFile("eventos_caracteristicas.json")
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog("Caracteristicas")
	for _, def := range file.Events {
		isBlessing := true
		if def.IsBlessing != nil {
			isBlessing = *def.IsBlessing
		}
		catalog.Add(NewCharacteristicEvent(
			def.ID, def.Name, def.Description, def.Variants,
			def.Force, isBlessing, def.Effect,
		))
	}
	return catalog, nil
}

// LoadClassCatalog loads the class definition file.
func (dl *DataLoader) LoadClassCatalog() (*types.ClassCatalog, error) {
	path := filepath.Join(dl.basePath, "clases.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class catalog: %w", err)
	}

	var catalog types.ClassCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse class catalog: %w", err)
	}

	return &catalog, nil
}

// LoadDictionary loads the generation-table file.
func (dl *DataLoader) LoadDictionary() (*types.Dictionary, error) {
	path := filepath.Join(dl.basePath, "diccionario_personajes.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	var dic types.Dictionary
	if err := json.Unmarshal(data, &dic); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}

	return &dic, nil
}
