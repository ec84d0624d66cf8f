// Package gen builds character rosters from the generation tables:
// weighted attribute levels, race/subrace translation, optional marks
// and the hero-tier classification.
package gen

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/user/adventure-sim/internal/types"
)

// Tier names assigned at generation time.
const (
	TierLegendaryHero = "Héroe Legendario"
	TierGreaterHero   = "Héroe Mayor"
	TierHero          = "Héroe"
	TierAberrant      = "Aberrante"
	TierNormal        = "Normal"
)

// Classification thresholds.
const (
	legendaryTotal = 530
	greaterTotal   = 490
	heroTotal      = 450

	extremeHigh  = 120
	extremeLow   = -20
	extremeCount = 2
)

// markProbability is the chance a character carries a mark at all.
const markProbability = 0.5

// levelModifiers maps an attribute level to its delta over the race
// base value.
var levelModifiers = map[int]int{
	1: -50,
	2: -35,
	3: -20,
	4: -10,
	5: 0,
	6: 10,
	7: 20,
	8: 35,
	9: 50,
}

// baseLevelWeights is the draw distribution over levels 1..9, centered
// on level 5.
var baseLevelWeights = []float64{0.01, 0.02, 0.05, 0.10, 0.40, 0.10, 0.05, 0.02, 0.01}

// profileAdjustmentScale converts the per-level adjustment from the
// class catalog into a weight delta.
const profileAdjustmentScale = 0.001

// Roller is the randomness the generator consumes.
type Roller interface {
	Intn(n int) int
	Chance(p float64) bool
	WeightedIndex(weights []float64) int
}

type pooledClass struct {
	key string
	def types.ClassDef
}

// Generator produces characters from the dictionary and class catalog.
// Class pools are sorted at construction so a seeded roller yields a
// reproducible roster.
type Generator struct {
	dict    *types.Dictionary
	classes *types.ClassCatalog
	roller  Roller
	pools   [][]pooledClass
}

// NewGenerator creates a generator over the loaded tables.
func NewGenerator(dict *types.Dictionary, classes *types.ClassCatalog, roller Roller) *Generator {
	return &Generator{
		dict:    dict,
		classes: classes,
		roller:  roller,
		pools: [][]pooledClass{
			sortedPool(classes.SimpleClasses),
			sortedPool(classes.DoubleClasses),
			sortedPool(classes.PureDoubleClasses),
		},
	}
}

func sortedPool(classes map[string]types.ClassDef) []pooledClass {
	pool := make([]pooledClass, 0, len(classes))
	for key, def := range classes {
		pool = append(pool, pooledClass{key: key, def: def})
	}
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].key < pool[j].key
	})
	return pool
}

// Generate builds counts[i] characters of race digit i+1. Race digits
// run 1..8.
func (g *Generator) Generate(counts []int) ([]*types.Character, error) {
	if len(counts) > 8 {
		return nil, fmt.Errorf("at most 8 race counts, got %d", len(counts))
	}

	var roster []*types.Character
	for i, count := range counts {
		if count < 0 {
			return nil, fmt.Errorf("race %d: negative count %d", i+1, count)
		}
		for j := 0; j < count; j++ {
			roster = append(roster, g.generateOne(i+1))
		}
	}
	return roster, nil
}

func (g *Generator) generateOne(raceDigit int) *types.Character {
	classKey, classDef := g.pickClass()
	adjustment := g.profileAdjustment(classDef.Profile)

	levels := make(map[string]int, len(types.AttributeKeys))
	for _, key := range types.AttributeKeys {
		if contains(classDef.Attributes, key) {
			levels[key] = g.weightedLevel(adjustment)
		} else {
			levels[key] = g.weightedLevel(nil)
		}
	}

	subraceDigit := 1 + g.roller.Intn(3)
	markDigit := 1 + g.roller.Intn(8)
	variantDigit := 1 + g.roller.Intn(3)

	race, subrace, subraceBonus := g.translateRace(raceDigit, subraceDigit)
	mark, markVariant := g.rollMark(markDigit, variantDigit)

	c := &types.Character{
		Code:            g.buildCode(raceDigit, subraceDigit, markDigit, variantDigit, levels),
		Race:            race,
		Subrace:         subrace,
		Mark:            mark,
		MarkVariant:     markVariant,
		Class:           classDef.Name,
		ClassKey:        classKey,
		Attributes:      make(map[string]*types.Attribute, len(types.AttributeKeys)),
		Alive:           true,
		Characteristics: make([]types.CharacteristicRecord, 0),
	}

	baseValues := g.dict.BaseValues[race]
	for _, key := range types.AttributeKeys {
		base, ok := baseValues[key]
		if !ok {
			base = 50
		}
		// Values are open-ended: extremes are what the aberrant tier
		// detects.
		c.Attributes[key] = &types.Attribute{
			Level: levels[key],
			Value: base + levelModifiers[levels[key]] + subraceBonus[key],
		}
	}
	c.RecomputeTotal()
	c.Tier = Classify(c)

	return c
}

func (g *Generator) pickClass() (string, types.ClassDef) {
	pool := g.pools[g.roller.Intn(len(g.pools))]
	if len(pool) == 0 {
		return "", types.ClassDef{}
	}
	picked := pool[g.roller.Intn(len(pool))]
	return picked.key, picked.def
}

func (g *Generator) profileAdjustment(profile string) map[string]float64 {
	mod, ok := g.classes.ProfileModifiers[profile]
	if !ok {
		return nil
	}
	return mod.Adjustment
}

// weightedLevel draws a level from the base distribution, nudged by the
// class profile adjustment when present. Weights never go negative.
func (g *Generator) weightedLevel(adjustment map[string]float64) int {
	weights := make([]float64, len(baseLevelWeights))
	copy(weights, baseLevelWeights)

	for i := range weights {
		level := strconv.Itoa(i + 1)
		if delta, ok := adjustment[level]; ok {
			weights[i] += delta * profileAdjustmentScale
			if weights[i] < 0 {
				weights[i] = 0
			}
		}
	}

	return g.roller.WeightedIndex(weights) + 1
}

func (g *Generator) translateRace(raceDigit, subraceDigit int) (string, string, map[string]int) {
	rp := strconv.Itoa(raceDigit)
	rs := strconv.Itoa(subraceDigit)

	race, ok := g.dict.Races[rp]
	if !ok {
		race = "Desconocido"
	}

	subraceDef, ok := g.dict.Subraces[rp][rs]
	if !ok {
		return race, "Desconocido", nil
	}
	return race, subraceDef.Name, subraceDef.Bonus
}

// rollMark decides whether the character carries a mark at all, then
// translates the mark and variant digits.
func (g *Generator) rollMark(markDigit, variantDigit int) (string, string) {
	if !g.roller.Chance(markProbability) {
		return "Ninguna", "Sin marca"
	}

	markDef, ok := g.dict.Marks[strconv.Itoa(markDigit)]
	if !ok {
		return "Desconocido", "Desconocido"
	}
	variant, ok := markDef.Variants[strconv.Itoa(variantDigit)]
	if !ok {
		variant = "Desconocido"
	}
	return markDef.Name, variant
}

// buildCode renders the character code: four table digits followed by
// the attribute levels in fixed order.
func (g *Generator) buildCode(d1, d2, d3, d4 int, levels map[string]int) string {
	code := fmt.Sprintf("%d%d%d%d", d1, d2, d3, d4)
	for _, key := range types.AttributeKeys {
		code += fmt.Sprintf("%s%d", key, levels[key])
	}
	return code
}

// Classify assigns the tier from the attribute totals. The hero scale
// wins over the aberrant check, so a high-total character with extreme
// values is still a hero. Classification happens once, at generation.
func Classify(c *types.Character) string {
	switch {
	case c.Total >= legendaryTotal:
		return TierLegendaryHero
	case c.Total >= greaterTotal:
		return TierGreaterHero
	case c.Total >= heroTotal:
		return TierHero
	}

	extremes := 0
	for _, key := range types.AttributeKeys {
		v := c.Value(key)
		if v >= extremeHigh || v <= extremeLow {
			extremes++
		}
	}
	if extremes >= extremeCount {
		return TierAberrant
	}
	return TierNormal
}

func contains(list []string, item string) bool {
	for _, entry := range list {
		if entry == item {
			return true
		}
	}
	return false
}
