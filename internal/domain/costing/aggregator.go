package costing

import "github.com/diillson/kitchen-cost-engine/internal/domain/entity"

// Line is a recipe line with its ingredient already resolved.
type Line struct {
	Ingredient    entity.Ingredient
	QuantityGrams float64
}

// TotalCost sums costPerGram × grams over lines, in order.
func TotalCost(lines []Line) float64 {
	total := 0.0
	for _, l := range lines {
		total += Normalize(l.Ingredient).CostPerGram * l.QuantityGrams
	}
	return total
}

// TotalNutrition folds every nutrient over lines in a single pass, in order.
func TotalNutrition(lines []Line) entity.Nutrients {
	var total entity.Nutrients
	for _, l := range lines {
		total = total.Add(Normalize(l.Ingredient).NutrientsPerGram.Scale(l.QuantityGrams))
	}
	return total
}

// Total computes cost and nutrition of lines together.
func Total(lines []Line) entity.Totals {
	return entity.Totals{
		Cost:      TotalCost(lines),
		Nutrition: TotalNutrition(lines),
	}
}

// PerPortion divides every field of total by portions. portions must be positive.
func PerPortion(total entity.Totals, portions int) entity.Totals {
	p := float64(portions)
	return entity.Totals{
		Cost:      total.Cost / p,
		Nutrition: total.Nutrition.Div(p),
	}
}

// Per100g rescales total to a 100 g basis. finalWeightGrams must be positive.
func Per100g(total entity.Totals, finalWeightGrams float64) entity.Totals {
	factor := 100 / finalWeightGrams
	return entity.Totals{
		Cost:      total.Cost * factor,
		Nutrition: total.Nutrition.Scale(factor),
	}
}

// Breakdown reports the cost of each line and its share of the recipe total.
func Breakdown(lines []Line) []entity.LineCost {
	total := TotalCost(lines)
	out := make([]entity.LineCost, 0, len(lines))
	for _, l := range lines {
		cost := Normalize(l.Ingredient).CostPerGram * l.QuantityGrams
		share := 0.0
		if total > 0 {
			share = cost / total * 100
		}
		out = append(out, entity.LineCost{
			IngredientID:   l.Ingredient.ID,
			IngredientName: l.Ingredient.Name,
			QuantityGrams:  l.QuantityGrams,
			Cost:           cost,
			SharePercent:   share,
		})
	}
	return out
}

// Aggregate produces the full costing of a recipe from its resolved lines.
// The recipe sell price is the price of one portion, so margins are taken
// against the per-portion cost.
func Aggregate(recipe entity.Recipe, lines []Line) entity.RecipeCost {
	total := Total(lines)
	perPortion := PerPortion(total, recipe.Portions)
	return entity.RecipeCost{
		RecipeID:        recipe.ID,
		RecipeName:      recipe.Name,
		Portions:        recipe.Portions,
		FinalWeight:     recipe.FinalWeightGrams,
		Total:           total,
		PerPortion:      perPortion,
		Per100g:         Per100g(total, recipe.FinalWeightGrams),
		Breakdown:       Breakdown(lines),
		SellPrice:       recipe.SellPrice,
		RealMargin:      RealMargin(recipe.SellPrice, perPortion.Cost),
		FoodCostPercent: FoodCostPercent(perPortion.Cost, recipe.SellPrice),
	}
}
