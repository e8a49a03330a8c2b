package repository

import (
	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// CostingReport is everything a costing run produced.
type CostingReport struct {
	Recipes  []entity.RecipeCost   `json:"recipes,omitempty"`
	Products []entity.ProductCost  `json:"products,omitempty"`
	Menus    []entity.MenuCost     `json:"menus,omitempty"`
	Scaled   []entity.ScaledRecipe `json:"scaled,omitempty"`
	Label    *LabelReport          `json:"label,omitempty"`
}

// LabelReport is a nutrition label together with the recipe it describes.
type LabelReport struct {
	RecipeID   string                `json:"recipe_id"`
	RecipeName string                `json:"recipe_name"`
	Label      entity.NutritionLabel `json:"label"`
}

type ExportRepository interface {
	ExportCostingToCSV(report CostingReport, filename, outputDir string) (string, error)
	ExportCostingToJSON(report CostingReport, filename, outputDir string) (string, error)
	ExportCostingToPDF(report CostingReport, filename, outputDir string) (string, error)
	ExportCostingToXLSX(report CostingReport, filename, outputDir string) (string, error)

	ExportPriceReportToCSV(reports []entity.PriceReport, filename, outputDir string) (string, error)
	ExportPriceReportToJSON(reports []entity.PriceReport, filename, outputDir string) (string, error)
	ExportPriceReportToPDF(reports []entity.PriceReport, filename, outputDir string) (string, error)
	ExportPriceReportToXLSX(reports []entity.PriceReport, filename, outputDir string) (string, error)
}
