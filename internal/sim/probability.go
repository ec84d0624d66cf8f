package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/user/adventure-sim/internal/interfaces"
	"github.com/user/adventure-sim/internal/types"
)

// Base weight per category; the five together sum to 100.
const baseCategoryWeight = 20

// ProbabilityCalculator computes a personalized distribution over the
// five event categories for a character and samples one. The class
// modifier table is derived once, at construction, from the class
// catalog.
type ProbabilityCalculator struct {
	classMods map[string]map[types.Category]int
}

// NewProbabilityCalculator builds the class modifier table from the
// class catalog. A nil catalog yields a calculator with no class
// contribution.
func NewProbabilityCalculator(catalog *types.ClassCatalog) *ProbabilityCalculator {
	pc := &ProbabilityCalculator{
		classMods: make(map[string]map[types.Category]int),
	}
	if catalog == nil {
		return pc
	}
	for key, def := range catalog.AllClasses() {
		pc.addClassModifier(def.Name, key, def.Attributes)
	}
	return pc
}

// addClassModifier maps a class's governing attributes to category
// deltas: +3 per combat/magic/exploration attribute, E splits +2
// mystic / +1 social, C gives +3 social. Two-attribute classes average
// the combined deltas with integer division.
func (pc *ProbabilityCalculator) addClassModifier(className, key string, attributes []string) {
	attrs := attributes
	if len(attrs) == 0 {
		attrs = strings.Split(key, "_")
	}

	mod := map[types.Category]int{
		types.CategoryCombat:      0,
		types.CategoryMagic:       0,
		types.CategoryExploration: 0,
		types.CategorySocial:      0,
		types.CategoryMystic:      0,
	}

	for _, attr := range attrs {
		switch attr {
		case types.AttrF, types.AttrRF:
			mod[types.CategoryCombat] += 3
		case types.AttrRM, types.AttrM:
			mod[types.CategoryMagic] += 3
		case types.AttrA, types.AttrI:
			mod[types.CategoryExploration] += 3
		case types.AttrE:
			mod[types.CategoryMystic] += 2
			mod[types.CategorySocial] += 1
		case types.AttrC:
			mod[types.CategorySocial] += 3
		}
	}

	if len(attrs) == 2 {
		for cat := range mod {
			mod[cat] = mod[cat] / 2
		}
	}

	pc.classMods[className] = mod
}

// Weights computes the normalized category weights for a character.
// The result always sums to 100.
func (pc *ProbabilityCalculator) Weights(c *types.Character) map[types.Category]float64 {
	weights := map[types.Category]int{
		types.CategoryCombat:      baseCategoryWeight,
		types.CategoryMagic:       baseCategoryWeight,
		types.CategoryExploration: baseCategoryWeight,
		types.CategorySocial:      baseCategoryWeight,
		types.CategoryMystic:      baseCategoryWeight,
	}

	// Attribute bonus: +1 per 10 points above 50 on each attribute of
	// the category's pair.
	for cat, attrs := range types.CategoryAttributes {
		for _, attr := range attrs {
			weights[cat] += attributeBonus(c.Value(attr), 10)
		}
	}

	// E feeds the mystic category too, at a reduced rate.
	weights[types.CategoryMystic] += attributeBonus(c.Value(types.AttrE), 15)

	// Class bonus; a missing class entry simply contributes nothing.
	if mods, ok := pc.classMods[c.Class]; ok {
		for cat, delta := range mods {
			weights[cat] += delta
		}
	}

	return normalizeWeights(weights)
}

func attributeBonus(value, step int) int {
	bonus := (value - 50) / step
	if bonus < 0 {
		return 0
	}
	return bonus
}

// normalizeWeights rescales the weights to sum to 100. A non-positive
// total falls back to the equal base weights.
func normalizeWeights(weights map[types.Category]int) map[types.Category]float64 {
	total := 0
	for _, w := range weights {
		total += w
	}

	normalized := make(map[types.Category]float64, len(weights))
	if total <= 0 {
		for _, cat := range types.Categories {
			normalized[cat] = baseCategoryWeight
		}
		return normalized
	}

	for cat, w := range weights {
		normalized[cat] = float64(w) / float64(total) * 100
	}
	return normalized
}

// SampleCategory draws one category proportionally to the weights.
// Categories are visited in fixed order and the draw reduces to a chain
// of conditional probabilities, so it is reproducible under a seeded
// roller.
func (pc *ProbabilityCalculator) SampleCategory(weights map[types.Category]float64, r interfaces.Roller) types.Category {
	remaining := 0.0
	for _, cat := range types.Categories {
		if weights[cat] > 0 {
			remaining += weights[cat]
		}
	}
	if remaining <= 0 {
		return types.Categories[0]
	}

	for _, cat := range types.Categories[:len(types.Categories)-1] {
		w := weights[cat]
		if w <= 0 {
			continue
		}
		if r.Chance(w / remaining) {
			return cat
		}
		remaining -= w
	}
	return types.Categories[len(types.Categories)-1]
}

// DescribeWeights renders the distribution sorted by weight, for debug
// logging.
func DescribeWeights(weights map[types.Category]float64) string {
	cats := make([]types.Category, 0, len(weights))
	for cat := range weights {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		return weights[cats[i]] > weights[cats[j]]
	})

	parts := make([]string, 0, len(cats))
	for _, cat := range cats {
		parts = append(parts, fmt.Sprintf("%s: %.1f%%", cat, weights[cat]))
	}
	return strings.Join(parts, " | ")
}
