package usecase

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diillson/kitchen-cost-engine/internal/domain/costing"
	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// CostingUseCase handles recipe, product and menu costing, scaling and labels.
type CostingUseCase struct {
	catalogRepo repository.CatalogRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	analysis    types.AnalysisConfig
}

// NewCostingUseCase creates a new costing use case.
func NewCostingUseCase(
	catalogRepo repository.CatalogRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	analysis types.AnalysisConfig,
) *CostingUseCase {
	return &CostingUseCase{
		catalogRepo: catalogRepo,
		exportRepo:  exportRepo,
		console:     console,
		analysis:    analysis,
	}
}

func (uc *CostingUseCase) rollUp(c *entity.Catalog) *costing.RollUp {
	return costing.NewRollUp(c, costing.WithMaxDepth(uc.analysis.MaxDepth))
}

func (uc *CostingUseCase) targetMargin(args *types.CLIArgs) float64 {
	if args.TargetMargin > 0 {
		return args.TargetMargin
	}
	return uc.analysis.TargetMargin
}

// costAll evaluates fn for every id concurrently. Results land in the slot of
// their id, so the output keeps the order of ids. progress advances once per
// costed id.
func costAll[T any](ctx context.Context, progress types.ProgressHandle, ids []string, fn func(id string) (T, error)) ([]T, error) {
	out := make([]T, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(id)
			if err != nil {
				return err
			}
			out[i] = v
			progress.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// BuildRecipeReport costs the given recipes, or every recipe when ids is empty.
func (uc *CostingUseCase) BuildRecipeReport(ctx context.Context, ids []string) (repository.CostingReport, error) {
	c, err := loadCatalog(ctx, uc.catalogRepo, uc.console)
	if err != nil {
		return repository.CostingReport{}, err
	}
	if len(ids) == 0 {
		for _, r := range c.Recipes {
			ids = append(ids, r.ID)
		}
	}

	ru := uc.rollUp(c)
	progress := uc.console.ProgressWithTotal(len(ids))
	recipes, err := costAll(ctx, progress, ids, ru.RecipeCostByID)
	progress.Stop()
	if err != nil {
		return repository.CostingReport{}, err
	}
	return repository.CostingReport{Recipes: recipes}, nil
}

// BuildProductReport costs the given products, or every product when ids is empty.
func (uc *CostingUseCase) BuildProductReport(ctx context.Context, ids []string) (repository.CostingReport, error) {
	c, err := loadCatalog(ctx, uc.catalogRepo, uc.console)
	if err != nil {
		return repository.CostingReport{}, err
	}
	if len(ids) == 0 {
		for _, p := range c.Products {
			ids = append(ids, p.ID)
		}
	}

	ru := uc.rollUp(c)
	progress := uc.console.ProgressWithTotal(len(ids))
	products, err := costAll(ctx, progress, ids, ru.ProductCostByID)
	progress.Stop()
	if err != nil {
		return repository.CostingReport{}, err
	}
	return repository.CostingReport{Products: products}, nil
}

// BuildMenuReport costs the given menus, or every menu when ids is empty.
func (uc *CostingUseCase) BuildMenuReport(ctx context.Context, ids []string) (repository.CostingReport, error) {
	c, err := loadCatalog(ctx, uc.catalogRepo, uc.console)
	if err != nil {
		return repository.CostingReport{}, err
	}
	if len(ids) == 0 {
		for _, m := range c.Menus {
			ids = append(ids, m.ID)
		}
	}

	ru := uc.rollUp(c)
	progress := uc.console.ProgressWithTotal(len(ids))
	defer progress.Stop()
	menus, err := costAll(ctx, progress, ids, func(id string) (entity.MenuCost, error) {
		menu, ok := c.Menu(id)
		if !ok {
			return entity.MenuCost{}, eris.Wrapf(costing.ErrUnknownMenu, "menu %q", id)
		}
		return ru.MenuCost(menu)
	})
	if err != nil {
		return repository.CostingReport{}, err
	}
	return repository.CostingReport{Menus: menus}, nil
}

// RunRecipes displays and exports recipe costs.
func (uc *CostingUseCase) RunRecipes(ctx context.Context, args *types.CLIArgs) error {
	report, err := uc.BuildRecipeReport(ctx, args.IDs)
	if err != nil {
		return err
	}
	if len(report.Recipes) == 0 {
		uc.console.LogWarning("No recipes found in the catalog")
		return nil
	}

	target := uc.targetMargin(args)
	table := uc.console.CreateTable()
	table.AddColumn("Recipe")
	table.AddColumn("Portions")
	table.AddColumn("Total Cost")
	table.AddColumn("Cost / Portion")
	table.AddColumn("Cost / 100g")
	table.AddColumn("Sell Price")
	table.AddColumn("Margin")
	table.AddColumn("Food Cost")
	table.AddColumn(fmt.Sprintf("Price @ %.0f%%", target))

	for _, rc := range report.Recipes {
		table.AddRow(
			fmt.Sprintf("%s (%s)", rc.RecipeName, rc.RecipeID),
			rc.Portions,
			fmt.Sprintf("%.2f", rc.Total.Cost),
			fmt.Sprintf("%.2f", rc.PerPortion.Cost),
			fmt.Sprintf("%.2f", rc.Per100g.Cost),
			formatSellPrice(rc.SellPrice),
			formatMargin(rc.SellPrice, rc.RealMargin),
			formatPercent(rc.SellPrice, rc.FoodCostPercent),
			fmt.Sprintf("%.2f", costing.SuggestedSellPrice(rc.PerPortion.Cost, target)),
		)
	}
	uc.console.Print(table.Render())

	for _, rc := range report.Recipes {
		if len(rc.Breakdown) == 0 {
			continue
		}
		breakdown := uc.console.CreateTable()
		breakdown.AddColumn("Ingredient")
		breakdown.AddColumn("Quantity (g)")
		breakdown.AddColumn("Cost")
		breakdown.AddColumn("Share")
		for _, l := range rc.Breakdown {
			breakdown.AddRow(l.IngredientName, fmt.Sprintf("%.1f", l.QuantityGrams), fmt.Sprintf("%.2f", l.Cost), fmt.Sprintf("%.1f%%", l.SharePercent))
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Breakdown: %s", rc.RecipeName))
		uc.console.Print(breakdown.Render())
	}

	uc.exportCosting(report, args)
	return nil
}

// RunProducts displays and exports product costs.
func (uc *CostingUseCase) RunProducts(ctx context.Context, args *types.CLIArgs) error {
	report, err := uc.BuildProductReport(ctx, args.IDs)
	if err != nil {
		return err
	}
	if len(report.Products) == 0 {
		uc.console.LogWarning("No products found in the catalog")
		return nil
	}

	target := uc.targetMargin(args)
	table := uc.console.CreateTable()
	table.AddColumn("Product")
	table.AddColumn("Components")
	table.AddColumn("Total Cost")
	table.AddColumn("Sell Price")
	table.AddColumn("Margin")
	table.AddColumn(fmt.Sprintf("Price @ %.0f%%", target))

	for _, pc := range report.Products {
		table.AddRow(
			fmt.Sprintf("%s (%s)", pc.ProductName, pc.ProductID),
			len(pc.Components),
			fmt.Sprintf("%.2f", pc.TotalCost),
			formatSellPrice(pc.SellPrice),
			formatMargin(pc.SellPrice, pc.RealMargin),
			fmt.Sprintf("%.2f", costing.SuggestedSellPrice(pc.TotalCost, target)),
		)
	}
	uc.console.Print(table.Render())

	uc.exportCosting(report, args)
	return nil
}

// RunMenus displays and exports menu costs.
func (uc *CostingUseCase) RunMenus(ctx context.Context, args *types.CLIArgs) error {
	report, err := uc.BuildMenuReport(ctx, args.IDs)
	if err != nil {
		return err
	}
	if len(report.Menus) == 0 {
		uc.console.LogWarning("No menus found in the catalog")
		return nil
	}

	for _, mc := range report.Menus {
		table := uc.console.CreateTable()
		table.AddColumn("Product")
		table.AddColumn("Quantity")
		table.AddColumn("Unit Cost")
		table.AddColumn("Cost")
		for _, it := range mc.Items {
			table.AddRow(it.ProductName, it.Quantity, fmt.Sprintf("%.2f", it.UnitCost), fmt.Sprintf("%.2f", it.Cost))
		}
		table.AddRow("TOTAL", "", "", fmt.Sprintf("%.2f", mc.TotalCost))

		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Menu: %s (%s)  |  Sell price: %s  |  Margin: %s",
			mc.MenuName, mc.MenuID, formatSellPrice(mc.SellPrice), formatMargin(mc.SellPrice, mc.RealMargin)))
		uc.console.Print(table.Render())
	}

	uc.exportCosting(report, args)
	return nil
}

// BuildScaledRecipe rescales one recipe to the requested portions.
func (uc *CostingUseCase) BuildScaledRecipe(ctx context.Context, recipeID string, portions int) (entity.ScaledRecipe, error) {
	if portions <= 0 {
		return entity.ScaledRecipe{}, eris.Wrapf(types.ErrInvalidPortions, "got %d", portions)
	}
	c, err := loadCatalog(ctx, uc.catalogRepo, uc.console)
	if err != nil {
		return entity.ScaledRecipe{}, err
	}
	recipe, ok := c.Recipe(recipeID)
	if !ok {
		return entity.ScaledRecipe{}, eris.Wrapf(costing.ErrUnknownRecipe, "recipe %q", recipeID)
	}
	lines, err := uc.rollUp(c).ResolveLines(recipe)
	if err != nil {
		return entity.ScaledRecipe{}, err
	}
	return costing.ScaleRecipe(recipe, lines, portions), nil
}

// RunScale displays and exports a recipe rescaled to args.Portions.
func (uc *CostingUseCase) RunScale(ctx context.Context, args *types.CLIArgs) error {
	if len(args.IDs) != 1 {
		return eris.New("scale needs exactly one recipe id")
	}
	sr, err := uc.BuildScaledRecipe(ctx, args.IDs[0], args.Portions)
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("Ingredient")
	table.AddColumn(fmt.Sprintf("%d portions (g)", sr.OriginalPortions))
	table.AddColumn(fmt.Sprintf("%d portions (g)", sr.TargetPortions))
	for _, l := range sr.Lines {
		table.AddRow(l.IngredientName, fmt.Sprintf("%.1f", l.OriginalGrams), fmt.Sprintf("%.1f", l.ScaledGrams))
	}

	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("%s scaled by %.3f", sr.RecipeName, sr.Factor))
	uc.console.Print(table.Render())

	summary := fmt.Sprintf("Total cost: %.2f\nCost per portion: %.2f", sr.TotalCost, sr.CostPerPortion)
	if sr.PrepTimeMinutes != nil {
		summary += fmt.Sprintf("\nPrep time: %d min", *sr.PrepTimeMinutes)
	}
	uc.console.DisplayPanel("Scaled Recipe", summary)

	uc.exportCosting(repository.CostingReport{Scaled: []entity.ScaledRecipe{sr}}, args)
	return nil
}

// BuildLabel formats the nutrition label of a recipe. With perPortion the
// portion is the recipe's final weight divided by its portions; otherwise
// portionGrams is used, defaulting to 100 g.
func (uc *CostingUseCase) BuildLabel(ctx context.Context, recipeID string, portionGrams float64, perPortion bool) (repository.LabelReport, error) {
	if portionGrams < 0 {
		return repository.LabelReport{}, eris.Wrapf(types.ErrInvalidPortionSize, "got %g", portionGrams)
	}
	rc, err := uc.BuildRecipeReport(ctx, []string{recipeID})
	if err != nil {
		return repository.LabelReport{}, err
	}
	cost := rc.Recipes[0]

	portion := portionGrams
	switch {
	case perPortion:
		portion = cost.FinalWeight / float64(cost.Portions)
	case portion == 0:
		portion = costing.DefaultPortionGrams
	}

	return repository.LabelReport{
		RecipeID:   cost.RecipeID,
		RecipeName: cost.RecipeName,
		Label:      costing.FormatLabel(cost.Per100g.Nutrition, portion),
	}, nil
}

// RunLabel displays and exports a nutrition label.
func (uc *CostingUseCase) RunLabel(ctx context.Context, args *types.CLIArgs) error {
	if len(args.IDs) != 1 {
		return eris.New("label needs exactly one recipe id")
	}
	lr, err := uc.BuildLabel(ctx, args.IDs[0], args.PortionGrams, args.PerPortion)
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn(fmt.Sprintf("Portion of %.0fg", lr.Label.PortionGrams))
	table.AddColumn("Amount")
	table.AddColumn("%DV (*)")
	for _, l := range lr.Label.Lines() {
		table.AddRow(l.Name, l.Amount, l.DailyValue)
	}
	uc.console.DisplayPanel(fmt.Sprintf("Nutrition Facts: %s", lr.RecipeName), table.Render())

	uc.exportCosting(repository.CostingReport{Label: &lr}, args)
	return nil
}

func formatSellPrice(sell float64) string {
	if sell <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", sell)
}

func formatMargin(sell, margin float64) string {
	if sell <= 0 {
		return "-"
	}
	switch {
	case margin < 0:
		return pterm.FgRed.Sprintf("%.1f%%", margin)
	case margin < 30:
		return pterm.FgYellow.Sprintf("%.1f%%", margin)
	default:
		return pterm.FgGreen.Sprintf("%.1f%%", margin)
	}
}

func formatPercent(sell, pct float64) string {
	if sell <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func (uc *CostingUseCase) exportCosting(report repository.CostingReport, args *types.CLIArgs) {
	exportAll(uc.console, args, "costing report", map[string]exportFunc{
		"csv":  func() (string, error) { return uc.exportRepo.ExportCostingToCSV(report, args.ReportName, args.Dir) },
		"json": func() (string, error) { return uc.exportRepo.ExportCostingToJSON(report, args.ReportName, args.Dir) },
		"pdf":  func() (string, error) { return uc.exportRepo.ExportCostingToPDF(report, args.ReportName, args.Dir) },
		"xlsx": func() (string, error) { return uc.exportRepo.ExportCostingToXLSX(report, args.ReportName, args.Dir) },
	})
	zap.L().Debug("costing report done",
		zap.Int("recipes", len(report.Recipes)),
		zap.Int("products", len(report.Products)),
		zap.Int("menus", len(report.Menus)),
	)
}
