package costing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

func TestRollUp_RecipeCostByID(t *testing.T) {
	t.Parallel()
	r := NewRollUp(testCatalog())

	rc, err := r.RecipeCostByID("dough")
	require.NoError(t, err)
	assert.InDelta(t, 7.9, rc.Total.Cost, 1e-9)
	assert.Len(t, rc.Breakdown, 3)

	_, err = r.RecipeCostByID("missing")
	assert.True(t, errors.Is(err, ErrUnknownRecipe))
}

func TestRollUp_ProductCost(t *testing.T) {
	t.Parallel()
	r := NewRollUp(testCatalog())

	pc, err := r.ProductCostByID("cake")
	require.NoError(t, err)
	require.Len(t, pc.Components, 2)
	// dough: 7.9/700 per gram × 140 g; syrup: 2.0/250 per gram × 25 g
	assert.InDelta(t, 1.58, pc.Components[0].Cost, 1e-9)
	assert.InDelta(t, 0.2, pc.Components[1].Cost, 1e-9)
	assert.InDelta(t, 1.78, pc.TotalCost, 1e-9)
	assert.InDelta(t, (4-1.78)/4*100, pc.RealMargin, 1e-9)
}

func TestRollUp_NestedProduct(t *testing.T) {
	t.Parallel()
	r := NewRollUp(testCatalog())

	pc, err := r.ProductCostByID("combo")
	require.NoError(t, err)
	assert.InDelta(t, 3.56, pc.TotalCost, 1e-9)
	assert.Equal(t, "cake", pc.Components[0].ProductID)
	assert.Equal(t, 0.0, pc.RealMargin)
}

func TestRollUp_MenuCost(t *testing.T) {
	t.Parallel()
	c := testCatalog()
	r := NewRollUp(c)
	menu, ok := c.Menu("tea")
	require.True(t, ok)

	mc, err := r.MenuCost(menu)
	require.NoError(t, err)
	require.Len(t, mc.Items, 2)
	assert.InDelta(t, 1.78*3, mc.Items[0].Cost, 1e-9)
	assert.InDelta(t, 1.78, mc.Items[0].UnitCost, 1e-9)
	assert.InDelta(t, 1.78*3+3.56, mc.TotalCost, 1e-9)
	assert.InDelta(t, (20-8.9)/20*100, mc.RealMargin, 1e-9)
}

func TestRollUp_RecomputesFromCurrentPrices(t *testing.T) {
	t.Parallel()
	c := testCatalog()

	before, err := NewRollUp(c).ProductCostByID("cake")
	require.NoError(t, err)

	c.Ingredients[1].UnitPrice = 20 // butter doubles
	after, err := NewRollUp(c).ProductCostByID("cake")
	require.NoError(t, err)

	assert.Greater(t, after.TotalCost, before.TotalCost)
}

func TestRollUp_Cycle(t *testing.T) {
	t.Parallel()
	c := &entity.Catalog{
		Products: []entity.Product{
			{ID: "a", Components: []entity.ProductComponent{{ProductID: "b", Units: 1}}},
			{ID: "b", Components: []entity.ProductComponent{{ProductID: "c", Units: 1}}},
			{ID: "c", Components: []entity.ProductComponent{{ProductID: "a", Units: 1}}},
			{ID: "self", Components: []entity.ProductComponent{{ProductID: "self", Units: 1}}},
		},
	}
	c.Index()
	r := NewRollUp(c)

	_, err := r.ProductCostByID("a")
	assert.True(t, errors.Is(err, ErrCompositionCycle), "got %v", err)

	_, err = r.ProductCostByID("self")
	assert.True(t, errors.Is(err, ErrCompositionCycle), "got %v", err)
}

func TestRollUp_SharedSubProductIsNotACycle(t *testing.T) {
	t.Parallel()
	c := testCatalog()
	c.Products = append(c.Products, entity.Product{
		ID: "platter",
		Components: []entity.ProductComponent{
			{ProductID: "cake", Units: 1},
			{ProductID: "combo", Units: 1},
		},
	})
	c.Index()

	pc, err := NewRollUp(c).ProductCostByID("platter")
	require.NoError(t, err)
	assert.InDelta(t, 1.78+3.56, pc.TotalCost, 1e-9)
}

func TestRollUp_MaxDepth(t *testing.T) {
	t.Parallel()
	c := testCatalog()

	_, err := NewRollUp(c, WithMaxDepth(1)).ProductCostByID("combo")
	assert.True(t, errors.Is(err, ErrCompositionTooDeep), "got %v", err)

	_, err = NewRollUp(c, WithMaxDepth(2)).ProductCostByID("combo")
	assert.NoError(t, err)

	// ignored
	r := NewRollUp(c, WithMaxDepth(0))
	assert.Equal(t, DefaultMaxDepth, r.maxDepth)
}

func TestRollUp_UnknownReferences(t *testing.T) {
	t.Parallel()
	c := testCatalog()
	c.Recipes = append(c.Recipes, entity.Recipe{
		ID: "broken", FinalWeightGrams: 100, Portions: 1,
		Lines: []entity.RecipeLine{{IngredientID: "saffron", QuantityGrams: 1}},
	})
	c.Products = append(c.Products,
		entity.Product{ID: "p1", Components: []entity.ProductComponent{{RecipeID: "nope", QuantityGrams: 10}}},
		entity.Product{ID: "p2", Components: []entity.ProductComponent{{ProductID: "nope", Units: 1}}},
	)
	c.Menus = append(c.Menus, entity.Menu{ID: "m", Items: []entity.MenuItem{{ProductID: "nope", Quantity: 1}}})
	c.Index()
	r := NewRollUp(c)

	_, err := r.RecipeCostByID("broken")
	assert.True(t, errors.Is(err, ErrUnknownIngredient))

	_, err = r.ProductCostByID("p1")
	assert.True(t, errors.Is(err, ErrUnknownRecipe))

	_, err = r.ProductCostByID("p2")
	assert.True(t, errors.Is(err, ErrUnknownProduct))

	menu, _ := c.Menu("m")
	_, err = r.MenuCost(menu)
	assert.True(t, errors.Is(err, ErrUnknownProduct))
}

func TestRollUp_InvalidComponent(t *testing.T) {
	t.Parallel()
	c := testCatalog()
	c.Products = append(c.Products,
		entity.Product{ID: "empty", Components: []entity.ProductComponent{{QuantityGrams: 100}}},
		entity.Product{ID: "both", Components: []entity.ProductComponent{{RecipeID: "dough", ProductID: "cake", QuantityGrams: 100, Units: 1}}},
	)
	c.Index()
	r := NewRollUp(c)

	for _, id := range []string{"empty", "both"} {
		pc, err := r.ProductCostByID(id)
		assert.True(t, errors.Is(err, ErrInvalidComponent), id)
		assert.Zero(t, pc.TotalCost, id)
	}
}
