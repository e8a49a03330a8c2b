package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/kitchen-cost-engine/internal/domain/costing"
	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/pricing"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

func newCosting() (*CostingUseCase, *fakeExporter, *fakeConsole) {
	exp := &fakeExporter{}
	con := &fakeConsole{}
	uc := NewCostingUseCase(&fakeCatalogRepo{catalog: testCatalog}, exp, con, testAnalysis())
	return uc, exp, con
}

func newPricing() (*PricingUseCase, *fakeExporter, *fakeConsole) {
	exp := &fakeExporter{}
	con := &fakeConsole{}
	uc := NewPricingUseCase(&fakeCatalogRepo{catalog: testCatalog}, exp, con, testAnalysis())
	return uc, exp, con
}

func TestBuildRecipeReport_AllRecipesInCatalogOrder(t *testing.T) {
	uc, _, _ := newCosting()

	report, err := uc.BuildRecipeReport(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, report.Recipes, 2)

	dough := report.Recipes[0]
	assert.Equal(t, "dough", dough.RecipeID)
	assert.InDelta(t, 7.9, dough.Total.Cost, 1e-9)
	assert.InDelta(t, 0.79, dough.PerPortion.Cost, 1e-9)
	assert.InDelta(t, 60.5, dough.RealMargin, 1e-9)
	assert.InDelta(t, 39.5, dough.FoodCostPercent, 1e-9)
	assert.Equal(t, "syrup", report.Recipes[1].RecipeID)
	assert.InDelta(t, 2.0, report.Recipes[1].Total.Cost, 1e-9)
}

func TestBuildProductReport_KeepsRequestedOrder(t *testing.T) {
	uc, _, _ := newCosting()

	report, err := uc.BuildProductReport(context.Background(), []string{"combo", "cake"})
	require.NoError(t, err)
	require.Len(t, report.Products, 2)
	assert.Equal(t, "combo", report.Products[0].ProductID)
	assert.InDelta(t, 3.56, report.Products[0].TotalCost, 1e-9)
	assert.Equal(t, "cake", report.Products[1].ProductID)
	assert.InDelta(t, 1.78, report.Products[1].TotalCost, 1e-9)
}

func TestBuildMenuReport(t *testing.T) {
	uc, _, _ := newCosting()

	report, err := uc.BuildMenuReport(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, report.Menus, 1)
	assert.InDelta(t, 8.9, report.Menus[0].TotalCost, 1e-9)
	assert.InDelta(t, 55.5, report.Menus[0].RealMargin, 1e-9)

	_, err = uc.BuildMenuReport(context.Background(), []string{"brunch"})
	assert.True(t, errors.Is(err, costing.ErrUnknownMenu))
}

func TestBuildReports_UnknownIDs(t *testing.T) {
	uc, _, _ := newCosting()
	ctx := context.Background()

	_, err := uc.BuildRecipeReport(ctx, []string{"dough", "bread"})
	assert.True(t, errors.Is(err, costing.ErrUnknownRecipe))

	_, err = uc.BuildProductReport(ctx, []string{"pie"})
	assert.True(t, errors.Is(err, costing.ErrUnknownProduct))
}

func TestBuildRecipeReport_CatalogError(t *testing.T) {
	boom := errors.New("disk on fire")
	uc := NewCostingUseCase(&fakeCatalogRepo{err: boom}, &fakeExporter{}, &fakeConsole{}, testAnalysis())

	_, err := uc.BuildRecipeReport(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestBuildScaledRecipe(t *testing.T) {
	uc, _, _ := newCosting()

	sr, err := uc.BuildScaledRecipe(context.Background(), "dough", 20)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sr.Factor)
	assert.InDelta(t, 15.8, sr.TotalCost, 1e-9)
	assert.InDelta(t, 0.79, sr.CostPerPortion, 1e-9)
	require.NotNil(t, sr.PrepTimeMinutes)
	assert.Equal(t, 57, *sr.PrepTimeMinutes)
	require.Len(t, sr.Lines, 3)
	assert.Equal(t, 1000.0, sr.Lines[0].ScaledGrams)

	_, err = uc.BuildScaledRecipe(context.Background(), "dough", 0)
	assert.True(t, errors.Is(err, types.ErrInvalidPortions))

	_, err = uc.BuildScaledRecipe(context.Background(), "bread", 4)
	assert.True(t, errors.Is(err, costing.ErrUnknownRecipe))
}

func TestBuildLabel(t *testing.T) {
	uc, _, _ := newCosting()
	ctx := context.Background()

	def, err := uc.BuildLabel(ctx, "dough", 0, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, def.Label.PortionGrams)
	assert.Equal(t, "418 kcal", def.Label.Energy.Amount)

	portion, err := uc.BuildLabel(ctx, "dough", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 70.0, portion.Label.PortionGrams)
	assert.Equal(t, "292 kcal", portion.Label.Energy.Amount)
	assert.Equal(t, "48.0g", portion.Label.Carbohydrates.Amount)
	assert.Equal(t, "16%", portion.Label.Carbohydrates.DailyValue)

	_, err = uc.BuildLabel(ctx, "dough", -5, false)
	assert.True(t, errors.Is(err, types.ErrInvalidPortionSize))
}

func TestRunRecipes_ExportsRequestedTypes(t *testing.T) {
	uc, exp, con := newCosting()
	args := &types.CLIArgs{ReportName: "costs", ReportType: []string{"csv", "XLSX", "docx"}}

	require.NoError(t, uc.RunRecipes(context.Background(), args))

	assert.Equal(t, []string{"csv", "xlsx"}, exp.calls)
	require.Len(t, exp.costing, 2)
	assert.Len(t, exp.costing[0].Recipes, 2)
	assert.Len(t, con.success, 2)
	require.Len(t, con.warnings, 1)
	assert.Contains(t, con.warnings[0], "docx")
	assert.NotEmpty(t, con.printed)
}

func TestRunRecipes_NoReportNameSkipsExport(t *testing.T) {
	uc, exp, _ := newCosting()
	require.NoError(t, uc.RunRecipes(context.Background(), &types.CLIArgs{ReportType: []string{"csv"}}))
	assert.Empty(t, exp.calls)
}

func TestRunProducts_ExportFailureIsReported(t *testing.T) {
	uc, exp, con := newCosting()
	exp.fail = map[string]error{"pdf": errors.New("no fonts")}
	args := &types.CLIArgs{ReportName: "p", ReportType: []string{"pdf", "json"}}

	require.NoError(t, uc.RunProducts(context.Background(), args))
	assert.Equal(t, []string{"pdf", "json"}, exp.calls)
	require.Len(t, con.errors, 1)
	assert.Contains(t, con.errors[0], "no fonts")
}

func TestRunScaleAndLabel(t *testing.T) {
	uc, exp, con := newCosting()
	ctx := context.Background()

	args := &types.CLIArgs{IDs: []string{"dough"}, Portions: 5, ReportName: "s", ReportType: []string{"json"}}
	require.NoError(t, uc.RunScale(ctx, args))
	require.Len(t, exp.costing, 1)
	require.Len(t, exp.costing[0].Scaled, 1)
	assert.Equal(t, 5, exp.costing[0].Scaled[0].TargetPortions)

	args = &types.CLIArgs{IDs: []string{"dough"}, PerPortion: true, ReportName: "l", ReportType: []string{"pdf"}}
	require.NoError(t, uc.RunLabel(ctx, args))
	require.Len(t, exp.costing, 2)
	require.NotNil(t, exp.costing[1].Label)
	assert.Equal(t, "dough", exp.costing[1].Label.RecipeID)

	found := false
	for _, p := range con.panels {
		if strings.HasPrefix(p, "Nutrition Facts: Sweet dough") {
			found = true
		}
	}
	assert.True(t, found)

	assert.Error(t, uc.RunScale(ctx, &types.CLIArgs{Portions: 2}))
	assert.Error(t, uc.RunLabel(ctx, &types.CLIArgs{IDs: []string{"a", "b"}}))
}

func TestRunMenus(t *testing.T) {
	uc, exp, _ := newCosting()
	require.NoError(t, uc.RunMenus(context.Background(), &types.CLIArgs{ReportName: "m", ReportType: []string{"csv"}}))
	require.Len(t, exp.costing, 1)
	assert.Len(t, exp.costing[0].Menus, 1)
}

func TestCostAll_PreservesOrder(t *testing.T) {
	ids := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "g", "hh"}
	progress := &fakeProgress{total: len(ids)}
	out, err := costAll(context.Background(), progress, ids, func(id string) (int, error) { return len(id), nil })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 1, 2}, out)
	assert.Equal(t, int64(len(ids)), progress.done.Load())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = costAll(ctx, &fakeProgress{}, ids, func(id string) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCosting_ReportsProgress(t *testing.T) {
	uc, _, con := newCosting()

	_, err := uc.BuildRecipeReport(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, con.progress, 1)
	p := con.progress[0]
	assert.Equal(t, 2, p.total)
	assert.Equal(t, int64(2), p.done.Load())
	assert.True(t, p.stopped.Load())
}

func TestPricing_BuildReports(t *testing.T) {
	uc, _, _ := newPricing()

	reports, err := uc.BuildReports(context.Background(), PriceQuery{
		IngredientIDs: []string{"flour"},
		Supplier:      "acme",
		Months:        3,
		Project:       true,
		Group:         true,
		Period:        entity.PeriodMonthly,
		Suppliers:     true,
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	rep := reports[0]
	assert.Equal(t, "Wheat flour", rep.IngredientName)
	assert.Equal(t, 3, rep.Points)
	assert.InDelta(t, 0.1, rep.Trend.Slope, 1e-12)
	assert.Equal(t, entity.TrendIncreasing, rep.Trend.Trend)
	require.Len(t, rep.Projections, 3)
	assert.InDelta(t, 19, rep.Projections[0].ProjectedPrice, 1e-9)

	require.Len(t, rep.Buckets, 2)
	assert.Equal(t, "2024-01", rep.Buckets[0].Period)
	assert.InDelta(t, 11.5, rep.Buckets[0].AveragePrice, 1e-12)
	assert.Equal(t, "2024-03", rep.Buckets[1].Period)

	require.Len(t, rep.Suppliers, 1)
	assert.Equal(t, "acme", rep.Suppliers[0].Supplier)
}

func TestPricing_AllIngredientsWithHistory(t *testing.T) {
	uc, _, _ := newPricing()

	reports, err := uc.BuildReports(context.Background(), PriceQuery{Suppliers: true})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "flour", reports[0].IngredientID)
	assert.Equal(t, "sugar", reports[1].IngredientID)

	// bulk ends at 11, acme at 16
	require.Len(t, reports[0].Suppliers, 2)
	assert.Equal(t, "bulk", reports[0].Suppliers[0].Supplier)
	assert.Equal(t, entity.TrendStable, reports[1].Trend.Trend)
}

func TestPricing_Errors(t *testing.T) {
	uc, _, _ := newPricing()
	ctx := context.Background()

	_, err := uc.BuildReports(ctx, PriceQuery{IngredientIDs: []string{"butter"}})
	assert.True(t, errors.Is(err, types.ErrNoPriceHistory))

	_, err = uc.BuildReports(ctx, PriceQuery{IngredientIDs: []string{"flour"}, Supplier: "nobody"})
	assert.True(t, errors.Is(err, types.ErrNoPriceHistory))

	_, err = uc.BuildReports(ctx, PriceQuery{IngredientIDs: []string{"flour"}, Group: true, Period: "weekly"})
	assert.True(t, errors.Is(err, pricing.ErrUnknownPeriod))
}

func TestPricing_DefaultHorizonFromConfig(t *testing.T) {
	uc, _, _ := newPricing()
	reports, err := uc.BuildReports(context.Background(), PriceQuery{IngredientIDs: []string{"flour"}, Project: true})
	require.NoError(t, err)
	assert.Len(t, reports[0].Projections, testAnalysis().HorizonMonths)
}

func TestRunTrend_DisplaysBarsAndExports(t *testing.T) {
	uc, exp, con := newPricing()
	args := &types.CLIArgs{IngredientID: "flour", Supplier: "acme", Period: "quarterly", ReportName: "t", ReportType: []string{"csv"}}

	require.NoError(t, uc.RunTrend(context.Background(), args))
	require.Len(t, con.bars, 1)
	assert.Equal(t, []types.PeriodBar{{Period: "2024-Q1", Value: 13}}, con.bars[0])
	require.Len(t, exp.prices, 1)
	assert.Equal(t, entity.PeriodQuarterly, exp.prices[0][0].BucketPeriod)
}

func TestRunProjectionGroupSuppliers(t *testing.T) {
	uc, exp, con := newPricing()
	ctx := context.Background()

	require.NoError(t, uc.RunProjection(ctx, &types.CLIArgs{IngredientID: "sugar", Months: 2}))
	require.Len(t, con.warnings, 1)
	assert.Contains(t, con.warnings[0], "two price points")

	require.NoError(t, uc.RunGroup(ctx, &types.CLIArgs{IngredientID: "flour", Period: "yearly", ReportName: "g", ReportType: []string{"xlsx"}}))
	require.Len(t, exp.prices, 1)
	require.Len(t, exp.prices[0][0].Buckets, 1)
	assert.Equal(t, "2024", exp.prices[0][0].Buckets[0].Period)
	assert.Equal(t, 5, exp.prices[0][0].Buckets[0].Count)

	require.NoError(t, uc.RunSuppliers(ctx, &types.CLIArgs{IngredientID: "flour"}))
	assert.Error(t, uc.RunGroup(ctx, &types.CLIArgs{IngredientID: "flour", Period: "daily"}))
}

func TestImportUseCase(t *testing.T) {
	w := &fakeCatalogWriter{}
	con := &fakeConsole{}
	uc := NewImportUseCase(&fakeCatalogRepo{catalog: testCatalog}, w, con)

	require.NoError(t, uc.Run(context.Background()))
	require.NotNil(t, w.saved)
	assert.Len(t, w.saved.Recipes, 2)
	require.Len(t, con.success, 1)
	assert.Contains(t, con.success[0], "6 price points")

	failing := NewImportUseCase(&fakeCatalogRepo{catalog: testCatalog}, &fakeCatalogWriter{err: errors.New("read-only")}, con)
	assert.ErrorContains(t, failing.Run(context.Background()), "read-only")
}
