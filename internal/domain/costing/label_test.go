package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

func labelBasis() entity.Nutrients {
	return entity.Nutrients{
		Calories: 250,
		Carbs:    30,
		Protein:  7.5,
		Fat:      11,
		Fiber:    5,
		Sodium:   480,
	}
}

func TestFormatLabel_100g(t *testing.T) {
	t.Parallel()
	l := FormatLabel(labelBasis(), DefaultPortionGrams)

	assert.Equal(t, "250 kcal", l.Energy.Amount)
	assert.Equal(t, "", l.Energy.DailyValue)
	assert.Equal(t, "30.0g", l.Carbohydrates.Amount)
	assert.Equal(t, "10%", l.Carbohydrates.DailyValue)
	assert.Equal(t, "7.5g", l.Proteins.Amount)
	assert.Equal(t, "10%", l.Proteins.DailyValue)
	assert.Equal(t, "11.0g", l.TotalFat.Amount)
	assert.Equal(t, "20%", l.TotalFat.DailyValue)
	assert.Equal(t, "5.0g", l.Fiber.Amount)
	assert.Equal(t, "20%", l.Fiber.DailyValue)
	assert.Equal(t, "480mg", l.Sodium.Amount)
	assert.Equal(t, "20%", l.Sodium.DailyValue)
}

func TestFormatLabel_HalfPortion(t *testing.T) {
	t.Parallel()
	full := FormatLabel(labelBasis(), 100)
	half := FormatLabel(labelBasis(), 50)

	assert.Equal(t, "15.0g", half.Carbohydrates.Amount)
	assert.Equal(t, "10%", full.Carbohydrates.DailyValue)
	assert.Equal(t, "5%", half.Carbohydrates.DailyValue)
	assert.Equal(t, "125 kcal", half.Energy.Amount)
	assert.Equal(t, "240mg", half.Sodium.Amount)
	assert.Equal(t, "10%", half.Sodium.DailyValue)
	assert.Equal(t, 50.0, half.PortionGrams)
}

func TestFormatLabel_Rounding(t *testing.T) {
	t.Parallel()
	l := FormatLabel(entity.Nutrients{Calories: 99.6, Carbs: 0.04, Sodium: 2.5}, 100)

	assert.Equal(t, "100 kcal", l.Energy.Amount)
	assert.Equal(t, "0.0g", l.Carbohydrates.Amount)
	assert.Equal(t, "0%", l.Carbohydrates.DailyValue)
	assert.Equal(t, "3mg", l.Sodium.Amount)
}

func TestNutritionLabel_Lines(t *testing.T) {
	t.Parallel()
	lines := FormatLabel(labelBasis(), 100).Lines()
	assert.Len(t, lines, 6)
	assert.Equal(t, "Energy", lines[0].Name)
	assert.Equal(t, "Sodium", lines[5].Name)
}
