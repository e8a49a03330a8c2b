package entity

// Totals is the cost and nutrition of some amount of food.
type Totals struct {
	Cost      float64   `json:"cost"`
	Nutrition Nutrients `json:"nutrition"`
}

// LineCost is the cost contribution of one recipe line.
type LineCost struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	QuantityGrams  float64 `json:"quantity_grams"`
	Cost           float64 `json:"cost"`
	SharePercent   float64 `json:"share_percent"`
}

// RecipeCost is the full costing of a recipe.
type RecipeCost struct {
	RecipeID        string     `json:"recipe_id"`
	RecipeName      string     `json:"recipe_name"`
	Portions        int        `json:"portions"`
	FinalWeight     float64    `json:"final_weight_grams"`
	Total           Totals     `json:"total"`
	PerPortion      Totals     `json:"per_portion"`
	Per100g         Totals     `json:"per_100g"`
	Breakdown       []LineCost `json:"breakdown"`
	SellPrice       float64    `json:"sell_price,omitempty"`
	RealMargin      float64    `json:"real_margin"`
	FoodCostPercent float64    `json:"food_cost_percent"`
}

// ScaledLine is a recipe line after rescaling.
type ScaledLine struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	OriginalGrams  float64 `json:"original_grams"`
	ScaledGrams    float64 `json:"scaled_grams"`
}

// ScaledRecipe is a recipe rescaled to a different portion count.
type ScaledRecipe struct {
	RecipeID         string       `json:"recipe_id"`
	RecipeName       string       `json:"recipe_name"`
	OriginalPortions int          `json:"original_portions"`
	TargetPortions   int          `json:"target_portions"`
	Factor           float64      `json:"factor"`
	Lines            []ScaledLine `json:"lines"`
	PrepTimeMinutes  *int         `json:"prep_time_minutes,omitempty"`
	TotalCost        float64      `json:"total_cost"`
	CostPerPortion   float64      `json:"cost_per_portion"`
}

// ComponentCost is the contribution of one product component.
type ComponentCost struct {
	RecipeID      string  `json:"recipe_id,omitempty"`
	ProductID     string  `json:"product_id,omitempty"`
	Name          string  `json:"name"`
	QuantityGrams float64 `json:"quantity_grams,omitempty"`
	Units         float64 `json:"units,omitempty"`
	Cost          float64 `json:"cost"`
}

// ProductCost is the rolled-up cost of a product.
type ProductCost struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Components  []ComponentCost `json:"components"`
	TotalCost   float64         `json:"total_cost"`
	SellPrice   float64         `json:"sell_price,omitempty"`
	RealMargin  float64         `json:"real_margin"`
}

// MenuItemCost is the contribution of one menu item.
type MenuItemCost struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
	Cost        float64 `json:"cost"`
}

// MenuCost is the rolled-up cost of a menu.
type MenuCost struct {
	MenuID     string         `json:"menu_id"`
	MenuName   string         `json:"menu_name"`
	Items      []MenuItemCost `json:"items"`
	TotalCost  float64        `json:"total_cost"`
	SellPrice  float64        `json:"sell_price,omitempty"`
	RealMargin float64        `json:"real_margin"`
}

// LabelLine is one row of a nutrition label.
type LabelLine struct {
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	DailyValue string `json:"daily_value,omitempty"`
}

// NutritionLabel is the formatted nutrition panel for a portion.
type NutritionLabel struct {
	PortionGrams  float64   `json:"portion_grams"`
	Energy        LabelLine `json:"energy"`
	Carbohydrates LabelLine `json:"carbohydrates"`
	Proteins      LabelLine `json:"proteins"`
	TotalFat      LabelLine `json:"total_fat"`
	Fiber         LabelLine `json:"fiber"`
	Sodium        LabelLine `json:"sodium"`
}

// Lines returns the label rows in panel order.
func (l NutritionLabel) Lines() []LabelLine {
	return []LabelLine{l.Energy, l.Carbohydrates, l.Proteins, l.TotalFat, l.Fiber, l.Sodium}
}
