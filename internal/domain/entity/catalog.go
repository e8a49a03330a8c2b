package entity

import (
	"sort"
	"time"
)

// Ingredient is a purchasable item with its package weight and price.
type Ingredient struct {
	ID             string         `json:"id" yaml:"id" toml:"id"`
	Name           string         `json:"name" yaml:"name" toml:"name"`
	NetWeightGrams float64        `json:"net_weight_grams" yaml:"net_weight_grams" toml:"net_weight_grams"`
	UnitPrice      float64        `json:"unit_price" yaml:"unit_price" toml:"unit_price"`
	Nutrition      NutritionFacts `json:"nutrition" yaml:"nutrition" toml:"nutrition"`
}

// RecipeLine is the amount of one ingredient used by a recipe.
type RecipeLine struct {
	IngredientID  string  `json:"ingredient_id" yaml:"ingredient_id" toml:"ingredient_id"`
	QuantityGrams float64 `json:"quantity_grams" yaml:"quantity_grams" toml:"quantity_grams"`
}

// Recipe (ficha técnica) is a portioned preparation.
type Recipe struct {
	ID               string       `json:"id" yaml:"id" toml:"id"`
	Name             string       `json:"name" yaml:"name" toml:"name"`
	Lines            []RecipeLine `json:"lines" yaml:"lines" toml:"lines"`
	FinalWeightGrams float64      `json:"final_weight_grams" yaml:"final_weight_grams" toml:"final_weight_grams"`
	Portions         int          `json:"portions" yaml:"portions" toml:"portions"`
	PrepTimeMinutes  *int         `json:"prep_time_minutes,omitempty" yaml:"prep_time_minutes,omitempty" toml:"prep_time_minutes,omitempty"`
	SellPrice        float64      `json:"sell_price,omitempty" yaml:"sell_price,omitempty" toml:"sell_price,omitempty"`
}

// ProductComponent is either a recipe used by weight or another product used by unit.
type ProductComponent struct {
	RecipeID      string  `json:"recipe_id,omitempty" yaml:"recipe_id,omitempty" toml:"recipe_id,omitempty"`
	QuantityGrams float64 `json:"quantity_grams,omitempty" yaml:"quantity_grams,omitempty" toml:"quantity_grams,omitempty"`
	ProductID     string  `json:"product_id,omitempty" yaml:"product_id,omitempty" toml:"product_id,omitempty"`
	Units         float64 `json:"units,omitempty" yaml:"units,omitempty" toml:"units,omitempty"`
}

// Product is a sellable item composed of recipes.
type Product struct {
	ID         string             `json:"id" yaml:"id" toml:"id"`
	Name       string             `json:"name" yaml:"name" toml:"name"`
	Components []ProductComponent `json:"components" yaml:"components" toml:"components"`
	SellPrice  float64            `json:"sell_price,omitempty" yaml:"sell_price,omitempty" toml:"sell_price,omitempty"`
}

// MenuItem references a product and how many of it the menu includes.
type MenuItem struct {
	ProductID string  `json:"product_id" yaml:"product_id" toml:"product_id"`
	Quantity  float64 `json:"quantity" yaml:"quantity" toml:"quantity"`
}

// Menu groups products sold together.
type Menu struct {
	ID        string     `json:"id" yaml:"id" toml:"id"`
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Items     []MenuItem `json:"items" yaml:"items" toml:"items"`
	SellPrice float64    `json:"sell_price,omitempty" yaml:"sell_price,omitempty" toml:"sell_price,omitempty"`
}

// PricePoint is one observed purchase price of an ingredient from a supplier.
type PricePoint struct {
	IngredientID string    `json:"ingredient_id" yaml:"ingredient_id" toml:"ingredient_id"`
	Supplier     string    `json:"supplier,omitempty" yaml:"supplier,omitempty" toml:"supplier,omitempty"`
	Date         time.Time `json:"date" yaml:"date" toml:"date"`
	Price        float64   `json:"price" yaml:"price" toml:"price"`
}

// Catalog is a snapshot of every record the engine may need for one request.
type Catalog struct {
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients" toml:"ingredients"`
	Recipes      []Recipe     `json:"recipes" yaml:"recipes" toml:"recipes"`
	Products     []Product    `json:"products" yaml:"products" toml:"products"`
	Menus        []Menu       `json:"menus" yaml:"menus" toml:"menus"`
	PriceHistory []PricePoint `json:"price_history" yaml:"price_history" toml:"price_history"`

	ingredientIdx map[string]int
	recipeIdx     map[string]int
	productIdx    map[string]int
	menuIdx       map[string]int
}

// Index builds the id lookups. It must be called again after the slices change,
// and before the catalog is shared between goroutines.
func (c *Catalog) Index() {
	c.ingredientIdx = make(map[string]int, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		c.ingredientIdx[ing.ID] = i
	}
	c.recipeIdx = make(map[string]int, len(c.Recipes))
	for i, r := range c.Recipes {
		c.recipeIdx[r.ID] = i
	}
	c.productIdx = make(map[string]int, len(c.Products))
	for i, p := range c.Products {
		c.productIdx[p.ID] = i
	}
	c.menuIdx = make(map[string]int, len(c.Menus))
	for i, m := range c.Menus {
		c.menuIdx[m.ID] = i
	}
}

func (c *Catalog) ensureIndex() {
	if c.ingredientIdx == nil {
		c.Index()
	}
}

// Ingredient looks up an ingredient by id.
func (c *Catalog) Ingredient(id string) (Ingredient, bool) {
	c.ensureIndex()
	i, ok := c.ingredientIdx[id]
	if !ok {
		return Ingredient{}, false
	}
	return c.Ingredients[i], true
}

// Recipe looks up a recipe by id.
func (c *Catalog) Recipe(id string) (Recipe, bool) {
	c.ensureIndex()
	i, ok := c.recipeIdx[id]
	if !ok {
		return Recipe{}, false
	}
	return c.Recipes[i], true
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	c.ensureIndex()
	i, ok := c.productIdx[id]
	if !ok {
		return Product{}, false
	}
	return c.Products[i], true
}

// Menu looks up a menu by id.
func (c *Catalog) Menu(id string) (Menu, bool) {
	c.ensureIndex()
	i, ok := c.menuIdx[id]
	if !ok {
		return Menu{}, false
	}
	return c.Menus[i], true
}

// HistoryFor returns the price points of an ingredient, optionally restricted
// to one supplier. An empty supplier matches every supplier.
func (c *Catalog) HistoryFor(ingredientID, supplier string) []PricePoint {
	var out []PricePoint
	for _, p := range c.PriceHistory {
		if p.IngredientID != ingredientID {
			continue
		}
		if supplier != "" && p.Supplier != supplier {
			continue
		}
		out = append(out, p)
	}
	return out
}

// IngredientIDsWithHistory lists every ingredient that has at least one price point, sorted.
func (c *Catalog) IngredientIDsWithHistory() []string {
	seen := make(map[string]struct{})
	for _, p := range c.PriceHistory {
		seen[p.IngredientID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
