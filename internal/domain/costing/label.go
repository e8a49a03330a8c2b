package costing

import (
	"fmt"
	"math"
	"strconv"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// DefaultPortionGrams is the label basis when the caller has no portion size.
const DefaultPortionGrams = 100.0

// Reference daily values used for %DV.
const (
	DailyCarbsGrams   = 300.0
	DailyProteinGrams = 75.0
	DailyFatGrams     = 55.0
	DailyFiberGrams   = 25.0
	DailySodiumMg     = 2400.0
)

// FormatLabel renders the nutrition panel for portionGrams from totals given on
// a 100 g basis. The output strings are consumed verbatim as label text.
func FormatLabel(per100g entity.Nutrients, portionGrams float64) entity.NutritionLabel {
	adjusted := per100g.Scale(portionGrams / 100)

	return entity.NutritionLabel{
		PortionGrams: portionGrams,
		Energy: entity.LabelLine{
			Name:   "Energy",
			Amount: fmt.Sprintf("%d kcal", roundInt(adjusted.Calories)),
		},
		Carbohydrates: macroLine("Carbohydrates", adjusted.Carbs, DailyCarbsGrams),
		Proteins:      macroLine("Proteins", adjusted.Protein, DailyProteinGrams),
		TotalFat:      macroLine("Total fat", adjusted.Fat, DailyFatGrams),
		Fiber:         macroLine("Dietary fiber", adjusted.Fiber, DailyFiberGrams),
		Sodium: entity.LabelLine{
			Name:       "Sodium",
			Amount:     fmt.Sprintf("%dmg", roundInt(adjusted.Sodium)),
			DailyValue: percentDV(adjusted.Sodium, DailySodiumMg),
		},
	}
}

func macroLine(name string, grams, daily float64) entity.LabelLine {
	return entity.LabelLine{
		Name:       name,
		Amount:     strconv.FormatFloat(grams, 'f', 1, 64) + "g",
		DailyValue: percentDV(grams, daily),
	}
}

func percentDV(amount, daily float64) string {
	return fmt.Sprintf("%d%%", roundInt(amount/daily*100))
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}
