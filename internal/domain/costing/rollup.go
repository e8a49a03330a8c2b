package costing

import (
	"github.com/rotisserie/eris"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// DefaultMaxDepth bounds how deeply products may nest inside other products.
const DefaultMaxDepth = 32

var (
	ErrUnknownIngredient  = eris.New("unknown ingredient")
	ErrUnknownRecipe      = eris.New("unknown recipe")
	ErrUnknownProduct     = eris.New("unknown product")
	ErrUnknownMenu        = eris.New("unknown menu")
	ErrCompositionCycle   = eris.New("product composition contains a cycle")
	ErrCompositionTooDeep = eris.New("product composition exceeds maximum depth")
	ErrInvalidComponent   = eris.New("product component must reference exactly one recipe or product")
)

// Catalog resolves the references a roll-up follows.
type Catalog interface {
	Ingredient(id string) (entity.Ingredient, bool)
	Recipe(id string) (entity.Recipe, bool)
	Product(id string) (entity.Product, bool)
}

// RollUp folds ingredient prices through recipes, products and menus.
//
// Nothing is cached between calls: every call recomputes the whole tree from
// the catalog it was given, so results always reflect current prices.
type RollUp struct {
	catalog  Catalog
	maxDepth int
}

// Option configures a RollUp.
type Option func(*RollUp)

// WithMaxDepth sets the product nesting limit. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(r *RollUp) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// NewRollUp creates a RollUp over catalog.
func NewRollUp(catalog Catalog, opts ...Option) *RollUp {
	r := &RollUp{catalog: catalog, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveLines looks up the ingredient of every recipe line, keeping line order.
func (r *RollUp) ResolveLines(recipe entity.Recipe) ([]Line, error) {
	lines := make([]Line, 0, len(recipe.Lines))
	for _, rl := range recipe.Lines {
		ing, ok := r.catalog.Ingredient(rl.IngredientID)
		if !ok {
			return nil, eris.Wrapf(ErrUnknownIngredient, "recipe %q: ingredient %q", recipe.ID, rl.IngredientID)
		}
		lines = append(lines, Line{Ingredient: ing, QuantityGrams: rl.QuantityGrams})
	}
	return lines, nil
}

// RecipeCost aggregates a recipe.
func (r *RollUp) RecipeCost(recipe entity.Recipe) (entity.RecipeCost, error) {
	lines, err := r.ResolveLines(recipe)
	if err != nil {
		return entity.RecipeCost{}, err
	}
	return Aggregate(recipe, lines), nil
}

// RecipeCostByID aggregates the recipe with the given id.
func (r *RollUp) RecipeCostByID(id string) (entity.RecipeCost, error) {
	recipe, ok := r.catalog.Recipe(id)
	if !ok {
		return entity.RecipeCost{}, eris.Wrapf(ErrUnknownRecipe, "recipe %q", id)
	}
	return r.RecipeCost(recipe)
}

// recipeCostPerGram is the cost of one gram of finished recipe.
func (r *RollUp) recipeCostPerGram(recipeID string) (entity.Recipe, float64, error) {
	recipe, ok := r.catalog.Recipe(recipeID)
	if !ok {
		return entity.Recipe{}, 0, eris.Wrapf(ErrUnknownRecipe, "recipe %q", recipeID)
	}
	lines, err := r.ResolveLines(recipe)
	if err != nil {
		return entity.Recipe{}, 0, err
	}
	return recipe, TotalCost(lines) / recipe.FinalWeightGrams, nil
}

// ProductCost rolls recipe costs up into a product.
func (r *RollUp) ProductCost(product entity.Product) (entity.ProductCost, error) {
	components, total, err := r.productTotal(product, map[string]bool{}, 1)
	if err != nil {
		return entity.ProductCost{}, err
	}
	return entity.ProductCost{
		ProductID:   product.ID,
		ProductName: product.Name,
		Components:  components,
		TotalCost:   total,
		SellPrice:   product.SellPrice,
		RealMargin:  RealMargin(product.SellPrice, total),
	}, nil
}

// ProductCostByID rolls up the product with the given id.
func (r *RollUp) ProductCostByID(id string) (entity.ProductCost, error) {
	product, ok := r.catalog.Product(id)
	if !ok {
		return entity.ProductCost{}, eris.Wrapf(ErrUnknownProduct, "product %q", id)
	}
	return r.ProductCost(product)
}

// productTotal walks the composition depth-first. onPath holds the products
// currently being expanded; meeting one again means the data has a cycle.
func (r *RollUp) productTotal(product entity.Product, onPath map[string]bool, depth int) ([]entity.ComponentCost, float64, error) {
	if depth > r.maxDepth {
		return nil, 0, eris.Wrapf(ErrCompositionTooDeep, "product %q at depth %d", product.ID, depth)
	}
	if onPath[product.ID] {
		return nil, 0, eris.Wrapf(ErrCompositionCycle, "product %q", product.ID)
	}
	onPath[product.ID] = true
	defer delete(onPath, product.ID)

	components := make([]entity.ComponentCost, 0, len(product.Components))
	total := 0.0
	for i, c := range product.Components {
		switch {
		case (c.RecipeID == "") == (c.ProductID == ""):
			return nil, 0, eris.Wrapf(ErrInvalidComponent, "product %q: component %d", product.ID, i)
		case c.RecipeID != "":
			recipe, perGram, err := r.recipeCostPerGram(c.RecipeID)
			if err != nil {
				return nil, 0, eris.Wrapf(err, "product %q", product.ID)
			}
			cost := perGram * c.QuantityGrams
			total += cost
			components = append(components, entity.ComponentCost{
				RecipeID:      recipe.ID,
				Name:          recipe.Name,
				QuantityGrams: c.QuantityGrams,
				Cost:          cost,
			})
		default:
			sub, ok := r.catalog.Product(c.ProductID)
			if !ok {
				return nil, 0, eris.Wrapf(ErrUnknownProduct, "product %q: component %q", product.ID, c.ProductID)
			}
			_, subTotal, err := r.productTotal(sub, onPath, depth+1)
			if err != nil {
				return nil, 0, err
			}
			cost := subTotal * c.Units
			total += cost
			components = append(components, entity.ComponentCost{
				ProductID: sub.ID,
				Name:      sub.Name,
				Units:     c.Units,
				Cost:      cost,
			})
		}
	}
	return components, total, nil
}

// MenuCost sums product costs times item quantity over the menu items, in order.
func (r *RollUp) MenuCost(menu entity.Menu) (entity.MenuCost, error) {
	items := make([]entity.MenuItemCost, 0, len(menu.Items))
	total := 0.0
	for _, item := range menu.Items {
		pc, err := r.ProductCostByID(item.ProductID)
		if err != nil {
			return entity.MenuCost{}, eris.Wrapf(err, "menu %q", menu.ID)
		}
		cost := pc.TotalCost * item.Quantity
		total += cost
		items = append(items, entity.MenuItemCost{
			ProductID:   pc.ProductID,
			ProductName: pc.ProductName,
			Quantity:    item.Quantity,
			UnitCost:    pc.TotalCost,
			Cost:        cost,
		})
	}
	return entity.MenuCost{
		MenuID:     menu.ID,
		MenuName:   menu.Name,
		Items:      items,
		TotalCost:  total,
		SellPrice:  menu.SellPrice,
		RealMargin: RealMargin(menu.SellPrice, total),
	}, nil
}
