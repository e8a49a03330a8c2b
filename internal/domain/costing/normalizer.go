// Package costing turns ingredient prices and nutrition into recipe, product
// and menu costs, nutrition totals and nutrition labels.
//
// Every function here is pure. Sums are folded in input order so identical
// inputs always produce bit-identical results.
package costing

import "github.com/diillson/kitchen-cost-engine/internal/domain/entity"

// UnitCost is an ingredient reduced to per-gram cost and nutrition.
type UnitCost struct {
	CostPerGram      float64
	NutrientsPerGram entity.Nutrients
}

// Normalize derives per-gram cost and nutrition from a purchased-unit record.
// NetWeightGrams must be positive; zero or negative weights are not guarded
// and yield Inf/NaN.
func Normalize(ing entity.Ingredient) UnitCost {
	return UnitCost{
		CostPerGram:      ing.UnitPrice / ing.NetWeightGrams,
		NutrientsPerGram: ing.Nutrition.Dense().Div(100),
	}
}
