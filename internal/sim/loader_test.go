package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/adventure-sim/internal/types"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadEquipmentEvents(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeDataFile(t, dir, "eventos_equipo.json", `{
		"eventos": [
			{"id": "eq_001", "nombre": "Reliquia", "descripcion": "Una reliquia", "aplica_a_todos": true, "bonus_exito": 2},
			{"id": "eq_002", "nombre": "Armadura", "descripcion": "Una armadura", "atributo_principal": "RF", "atributo_secundario": "A"},
			{"id": "eq_003", "nombre": "Espada", "descripcion": "Una espada", "atributo": "F", "bonus_exito": 0, "bonus_fracaso": -2},
			{"id": "eq_004", "nombre": "Ruina", "descripcion": "Sin atributos"}
		]
	}`)
	loader := NewDataLoader(dir)

	// Test case 1: each definition dispatches to its sub-variant, and
	// the definition without any attribute field is skipped
	catalog, err := loader.LoadEquipmentEvents()
	assert.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())

	global, ok := catalog.ByID("eq_001").(*GlobalEquipmentEvent)
	assert.True(t, ok)
	assert.Equal(t, "Reliquia", global.Name())

	_, ok = catalog.ByID("eq_002").(*DoubleEquipmentEvent)
	assert.True(t, ok)

	simple, ok := catalog.ByID("eq_003").(*SimpleEquipmentEvent)
	assert.True(t, ok)

	// Test case 2: an explicit zero success bonus survives loading
	c := testCharacter(50)
	outcome := types.OutcomeSuccess
	simple.ApplyConsequences(c, &outcome)
	assert.Equal(t, 50, c.Value(types.AttrF))

	// Test case 3: missing file reports an error
	_, err = NewDataLoader(t.TempDir()).LoadEquipmentEvents()
	assert.Error(t, err)
}

func TestLoadAttributeEvents(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeDataFile(t, dir, "eventos_atributos.json", `{
		"eventos": [
			{"id": "evt_001", "nombre": "Duelo", "descripcion": "Un duelo", "atributo_principal": "RM", "atributo_secundario": "M"},
			{"id": "evt_002", "nombre": "Prueba", "descripcion": "Una prueba"}
		]
	}`)
	loader := NewDataLoader(dir)

	// Test case 1: events load with their primary attribute
	catalog, err := loader.LoadAttributeEvents()
	assert.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	duel, ok := catalog.ByID("evt_001").(*AttributeCheckEvent)
	assert.True(t, ok)
	assert.Equal(t, types.AttrRM, duel.PrimaryAttribute())

	// Test case 2: a missing primary defaults to F
	fallback := catalog.ByID("evt_002").(*AttributeCheckEvent)
	assert.Equal(t, types.AttrF, fallback.PrimaryAttribute())
}

func TestLoadCharacteristicEvents(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeDataFile(t, dir, "eventos_caracteristicas.json", `{
		"eventos": [
			{"id": "car_001", "nombre": "Toque", "descripcion": "Un toque", "fuerza": "Luz", "es_bendicion": false, "efecto": "marca"},
			{"id": "car_002", "nombre": "Eco", "descripcion": "Un eco", "fuerza": "Eco"}
		]
	}`)
	loader := NewDataLoader(dir)

	// Test case 1: polarity is read from the definition
	catalog, err := loader.LoadCharacteristicEvents()
	assert.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	touch := catalog.ByID("car_001").(*CharacteristicEvent)
	assert.False(t, touch.IsBlessing())
	assert.Equal(t, "Luz", touch.Force())

	// Test case 2: polarity defaults to blessing when absent
	echo := catalog.ByID("car_002").(*CharacteristicEvent)
	assert.True(t, echo.IsBlessing())
}

func TestLoadClassCatalogAndDictionary(t *testing.T) {
	// Setup
	dir := t.TempDir()
	writeDataFile(t, dir, "clases.json", `{
		"clases_simples": {"F": {"nombre": "Guerrero", "perfil": "combate", "atributos": ["F"]}},
		"clases_dobles": {},
		"clases_dobles_puras": {},
		"perfiles_modificador": {"combate": {"ajuste_probabilidad": {"6": 20, "7": 10}}}
	}`)
	writeDataFile(t, dir, "diccionario_personajes.json", `{
		"razas_principales": {"1": "Humano"},
		"subrazas": {"1": {"1": {"nombre": "Nevado", "bonus": {"RF": 5}}}},
		"myb": {"1": {"nombre": "Bendición Solar", "variantes": {"1": "Marca tenue"}}},
		"valores_base": {"Humano": {"F": 55}}
	}`)
	loader := NewDataLoader(dir)

	// Test case 1: the class catalog loads with its profile modifiers
	classes, err := loader.LoadClassCatalog()
	assert.NoError(t, err)
	assert.Equal(t, "Guerrero", classes.SimpleClasses["F"].Name)
	assert.Equal(t, 20.0, classes.ProfileModifiers["combate"].Adjustment["6"])
	assert.Len(t, classes.AllClasses(), 1)

	// Test case 2: the dictionary loads races, subraces, marks and bases
	dict, err := loader.LoadDictionary()
	assert.NoError(t, err)
	assert.Equal(t, "Humano", dict.Races["1"])
	assert.Equal(t, 5, dict.Subraces["1"]["1"].Bonus["RF"])
	assert.Equal(t, "Bendición Solar", dict.Marks["1"].Name)
	assert.Equal(t, 55, dict.BaseValues["Humano"]["F"])
}
