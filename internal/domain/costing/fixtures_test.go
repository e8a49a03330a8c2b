package costing

import "github.com/diillson/kitchen-cost-engine/internal/domain/entity"

func f(v float64) *float64 { return &v }

func minutes(v int) *int { return &v }

func testIngredients() (flour, butter, sugar entity.Ingredient) {
	flour = entity.Ingredient{
		ID: "flour", Name: "Wheat flour",
		NetWeightGrams: 1000, UnitPrice: 5.00,
		Nutrition: entity.NutritionFacts{
			Calories: f(364), Protein: f(10), Carbs: f(76), Fat: f(1), Fiber: f(2.7), Sodium: f(2),
		},
	}
	butter = entity.Ingredient{
		ID: "butter", Name: "Butter",
		NetWeightGrams: 200, UnitPrice: 10.00,
		Nutrition: entity.NutritionFacts{
			Calories: f(717), Protein: f(0.9), Carbs: f(0.1), Fat: f(81), SaturatedFat: f(51), Sodium: f(11),
		},
	}
	sugar = entity.Ingredient{
		ID: "sugar", Name: "Sugar",
		NetWeightGrams: 1000, UnitPrice: 4.00,
		Nutrition: entity.NutritionFacts{
			Calories: f(387), Carbs: f(100),
		},
	}
	return flour, butter, sugar
}

func doughLines() []Line {
	flour, butter, sugar := testIngredients()
	return []Line{
		{Ingredient: flour, QuantityGrams: 500},
		{Ingredient: butter, QuantityGrams: 100},
		{Ingredient: sugar, QuantityGrams: 100},
	}
}

func testCatalog() *entity.Catalog {
	flour, butter, sugar := testIngredients()
	c := &entity.Catalog{
		Ingredients: []entity.Ingredient{flour, butter, sugar},
		Recipes: []entity.Recipe{
			{
				ID: "dough", Name: "Sweet dough",
				Lines: []entity.RecipeLine{
					{IngredientID: "flour", QuantityGrams: 500},
					{IngredientID: "butter", QuantityGrams: 100},
					{IngredientID: "sugar", QuantityGrams: 100},
				},
				FinalWeightGrams: 700, Portions: 10,
				PrepTimeMinutes: minutes(40), SellPrice: 2.00,
			},
			{
				ID: "syrup", Name: "Syrup",
				Lines: []entity.RecipeLine{
					{IngredientID: "sugar", QuantityGrams: 500},
				},
				FinalWeightGrams: 250, Portions: 5,
			},
		},
		Products: []entity.Product{
			{
				ID: "cake", Name: "Cake slice", SellPrice: 4.00,
				Components: []entity.ProductComponent{
					{RecipeID: "dough", QuantityGrams: 140},
					{RecipeID: "syrup", QuantityGrams: 25},
				},
			},
			{
				ID: "combo", Name: "Two cakes",
				Components: []entity.ProductComponent{
					{ProductID: "cake", Units: 2},
				},
			},
		},
		Menus: []entity.Menu{
			{
				ID: "tea", Name: "Afternoon tea", SellPrice: 20,
				Items: []entity.MenuItem{
					{ProductID: "cake", Quantity: 3},
					{ProductID: "combo", Quantity: 1},
				},
			},
		},
	}
	c.Index()
	return c
}
