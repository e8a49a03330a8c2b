package costing

import (
	"math"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// ScaleIngredients multiplies every line quantity by targetPortions/originalPortions.
//
// Scaling is linear. Leavening, reductions and similar non-linear effects are
// not modelled; kitchens accept this approximation.
func ScaleIngredients(lines []Line, originalPortions, targetPortions int) []Line {
	factor := float64(targetPortions) / float64(originalPortions)
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Ingredient: l.Ingredient, QuantityGrams: l.QuantityGrams * factor}
	}
	return out
}

// ScaleTime rescales a preparation time by the square root of the portion ratio,
// rounded to whole minutes. A nil time stays nil.
func ScaleTime(originalMinutes *int, originalPortions, targetPortions int) *int {
	if originalMinutes == nil {
		return nil
	}
	factor := math.Sqrt(float64(targetPortions) / float64(originalPortions))
	scaled := int(math.Round(float64(*originalMinutes) * factor))
	return &scaled
}

// ScaledCost is the total cost of already scaled lines.
func ScaledCost(scaledLines []Line) float64 {
	return TotalCost(scaledLines)
}

// ScaleRecipe rescales a recipe to targetPortions and recosts it.
func ScaleRecipe(recipe entity.Recipe, lines []Line, targetPortions int) entity.ScaledRecipe {
	scaled := ScaleIngredients(lines, recipe.Portions, targetPortions)
	cost := ScaledCost(scaled)

	out := entity.ScaledRecipe{
		RecipeID:         recipe.ID,
		RecipeName:       recipe.Name,
		OriginalPortions: recipe.Portions,
		TargetPortions:   targetPortions,
		Factor:           float64(targetPortions) / float64(recipe.Portions),
		Lines:            make([]entity.ScaledLine, len(scaled)),
		PrepTimeMinutes:  ScaleTime(recipe.PrepTimeMinutes, recipe.Portions, targetPortions),
		TotalCost:        cost,
		CostPerPortion:   cost / float64(targetPortions),
	}
	for i := range scaled {
		out.Lines[i] = entity.ScaledLine{
			IngredientID:   lines[i].Ingredient.ID,
			IngredientName: lines[i].Ingredient.Name,
			OriginalGrams:  lines[i].QuantityGrams,
			ScaledGrams:    scaled[i].QuantityGrams,
		}
	}
	return out
}
