package types

// EventFile is the top-level shape of a per-category event definition
// file. The JSON keys mirror the historical data files, which are in
// Spanish.
type EventFile struct {
	Events []EventDef `json:"eventos"`
}

// EventDef is one raw event definition. Which fields are populated
// depends on the category; the loader dispatches on them.
type EventDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"nombre"`
	Description string   `json:"descripcion"`
	Variants    []string `json:"variantes"`

	// Equipment fields. AppliesToAll marks the global sub-variant,
	// PrimaryAttribute the two-attribute sub-variant and Attribute the
	// single-attribute one.
	Attribute          string   `json:"atributo,omitempty"`
	PrimaryAttribute   string   `json:"atributo_principal,omitempty"`
	SecondaryAttribute string   `json:"atributo_secundario,omitempty"`
	AppliesToAll       bool     `json:"aplica_a_todos,omitempty"`
	SuccessBonus       *int     `json:"bonus_exito,omitempty"`
	FailureBonus       int      `json:"bonus_fracaso,omitempty"`
	Penalty            *int     `json:"penalizacion,omitempty"`
	SuccessProbability *float64 `json:"probabilidad_exito,omitempty"`

	// Characteristic fields.
	Force      string `json:"fuerza,omitempty"`
	IsBlessing *bool  `json:"es_bendicion,omitempty"`
	Effect     string `json:"efecto,omitempty"`
}

// ClassDef describes one class from the class catalog: its display
// name, governing profile and one or two governing attributes.
type ClassDef struct {
	Name       string   `json:"nombre"`
	Profile    string   `json:"perfil"`
	Attributes []string `json:"atributos"`
}

// ProfileModifier nudges the generator's level weights for the
// attributes a class governs.
type ProfileModifier struct {
	Adjustment map[string]float64 `json:"ajuste_probabilidad"`
}

// ClassCatalog is the class definition file consumed at startup, both
// by the generator and by the probability calculator.
type ClassCatalog struct {
	SimpleClasses     map[string]ClassDef        `json:"clases_simples"`
	DoubleClasses     map[string]ClassDef        `json:"clases_dobles"`
	PureDoubleClasses map[string]ClassDef        `json:"clases_dobles_puras"`
	ProfileModifiers  map[string]ProfileModifier `json:"perfiles_modificador"`
}

// AllClasses returns every class definition keyed by catalog key.
func (cc *ClassCatalog) AllClasses() map[string]ClassDef {
	all := make(map[string]ClassDef)
	for key, def := range cc.SimpleClasses {
		all[key] = def
	}
	for key, def := range cc.DoubleClasses {
		all[key] = def
	}
	for key, def := range cc.PureDoubleClasses {
		all[key] = def
	}
	return all
}

// SubraceDef carries a subrace display name and its attribute bonuses.
type SubraceDef struct {
	Name  string         `json:"nombre"`
	Bonus map[string]int `json:"bonus"`
}

// MarkDef is one blessing/curse entry with its narrative variants.
type MarkDef struct {
	Name     string            `json:"nombre"`
	Variants map[string]string `json:"variantes"`
}

// Dictionary is the generation-table file: races, subraces, marks and
// per-race attribute base values.
type Dictionary struct {
	Races      map[string]string                `json:"razas_principales"`
	Subraces   map[string]map[string]SubraceDef `json:"subrazas"`
	Marks      map[string]MarkDef               `json:"myb"`
	BaseValues map[string]map[string]int        `json:"valores_base"`
}
