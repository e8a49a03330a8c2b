package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleIngredients_Identity(t *testing.T) {
	t.Parallel()
	lines := doughLines()
	for _, n := range []int{1, 4, 10, 37} {
		assert.Equal(t, lines, ScaleIngredients(lines, n, n))
	}
}

func TestScaleIngredients_Linear(t *testing.T) {
	t.Parallel()
	lines := doughLines()
	scaled := ScaleIngredients(lines, 10, 25)

	require.Len(t, scaled, 3)
	assert.InDelta(t, 1250, scaled[0].QuantityGrams, 1e-9)
	assert.InDelta(t, 250, scaled[1].QuantityGrams, 1e-9)
	// input untouched
	assert.Equal(t, 500.0, lines[0].QuantityGrams)
	assert.InDelta(t, TotalCost(lines)*2.5, ScaledCost(scaled), 1e-9)
}

func TestScaleTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		minutes  *int
		original int
		target   int
		want     *int
	}{
		{name: "quadruple portions doubles time", minutes: minutes(60), original: 4, target: 16, want: minutes(120)},
		{name: "same portions", minutes: minutes(45), original: 6, target: 6, want: minutes(45)},
		{name: "quarter portions halves time", minutes: minutes(30), original: 4, target: 1, want: minutes(15)},
		{name: "rounds to whole minutes", minutes: minutes(10), original: 1, target: 2, want: minutes(14)},
		{name: "absent time stays absent", minutes: nil, original: 4, target: 8, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleTime(tt.minutes, tt.original, tt.target))
		})
	}
}

func TestScaleRecipe(t *testing.T) {
	t.Parallel()
	recipe, ok := testCatalog().Recipe("dough")
	require.True(t, ok)

	sr := ScaleRecipe(recipe, doughLines(), 40)
	assert.Equal(t, 10, sr.OriginalPortions)
	assert.Equal(t, 40, sr.TargetPortions)
	assert.InDelta(t, 4.0, sr.Factor, 1e-12)
	require.NotNil(t, sr.PrepTimeMinutes)
	assert.Equal(t, 80, *sr.PrepTimeMinutes)
	assert.InDelta(t, 7.9*4, sr.TotalCost, 1e-9)
	assert.InDelta(t, 0.79, sr.CostPerPortion, 1e-9)
	assert.InDelta(t, 2000, sr.Lines[0].ScaledGrams, 1e-9)
	assert.Equal(t, 500.0, sr.Lines[0].OriginalGrams)
}
