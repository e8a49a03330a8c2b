package usecase

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rotisserie/eris"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/pricing"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// PricingUseCase handles the price history analytics.
type PricingUseCase struct {
	catalogRepo repository.CatalogRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	analysis    types.AnalysisConfig
}

// NewPricingUseCase creates a new pricing use case.
func NewPricingUseCase(
	catalogRepo repository.CatalogRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	analysis types.AnalysisConfig,
) *PricingUseCase {
	return &PricingUseCase{
		catalogRepo: catalogRepo,
		exportRepo:  exportRepo,
		console:     console,
		analysis:    analysis,
	}
}

// PriceQuery selects what a price report contains.
type PriceQuery struct {
	IngredientIDs []string
	Supplier      string
	Months        int
	Period        entity.Period
	Project       bool
	Group         bool
	Suppliers     bool
}

func (uc *PricingUseCase) noiseFloor() float64 {
	if uc.analysis.NoiseFloor > 0 {
		return uc.analysis.NoiseFloor
	}
	return pricing.DefaultNoiseFloor
}

// BuildReports analyzes the price history of every queried ingredient, or of
// every ingredient with history when none is given.
func (uc *PricingUseCase) BuildReports(ctx context.Context, q PriceQuery) ([]entity.PriceReport, error) {
	if q.Group {
		if _, err := pricing.ParsePeriod(string(q.Period)); err != nil {
			return nil, err
		}
	}

	c, err := loadCatalog(ctx, uc.catalogRepo, uc.console)
	if err != nil {
		return nil, err
	}

	ids := q.IngredientIDs
	if len(ids) == 0 {
		ids = c.IngredientIDsWithHistory()
	}

	reports := make([]entity.PriceReport, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep, err := uc.buildReport(c, id, q)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (uc *PricingUseCase) buildReport(c *entity.Catalog, ingredientID string, q PriceQuery) (entity.PriceReport, error) {
	points := c.HistoryFor(ingredientID, q.Supplier)
	if len(points) == 0 {
		if q.Supplier != "" {
			return entity.PriceReport{}, eris.Wrapf(types.ErrNoPriceHistory, "%q from supplier %q", ingredientID, q.Supplier)
		}
		return entity.PriceReport{}, eris.Wrapf(types.ErrNoPriceHistory, "%q", ingredientID)
	}

	name := ingredientID
	if ing, ok := c.Ingredient(ingredientID); ok && ing.Name != "" {
		name = ing.Name
	}

	rep := entity.PriceReport{
		IngredientID:   ingredientID,
		IngredientName: name,
		Supplier:       q.Supplier,
		Points:         len(points),
		Trend:          pricing.AnalyzeTrendWithFloor(points, uc.noiseFloor()),
	}

	if q.Project {
		months := q.Months
		if months <= 0 {
			months = uc.analysis.HorizonMonths
		}
		if months <= 0 {
			months = pricing.DefaultHorizonMonths
		}
		rep.Projections = pricing.ProjectWithTrend(points, rep.Trend, months)
	}

	if q.Group {
		buckets, err := pricing.GroupByPeriod(points, q.Period)
		if err != nil {
			return entity.PriceReport{}, err
		}
		rep.Buckets = buckets
		rep.BucketPeriod = q.Period
	}

	if q.Suppliers {
		rep.Suppliers = pricing.CompareSuppliers(points)
	}
	return rep, nil
}

func (uc *PricingUseCase) period(args *types.CLIArgs) entity.Period {
	if args.Period != "" {
		return entity.Period(args.Period)
	}
	if uc.analysis.Period != "" {
		return entity.Period(uc.analysis.Period)
	}
	return entity.PeriodMonthly
}

func ingredientIDs(args *types.CLIArgs) []string {
	if args.IngredientID != "" {
		return []string{args.IngredientID}
	}
	return nil
}

// RunTrend displays the trend of each ingredient with its monthly averages.
func (uc *PricingUseCase) RunTrend(ctx context.Context, args *types.CLIArgs) error {
	uc.console.LogInfo("Analysing price trends...")

	reports, err := uc.BuildReports(ctx, PriceQuery{
		IngredientIDs: ingredientIDs(args),
		Supplier:      args.Supplier,
		Group:         true,
		Period:        uc.period(args),
	})
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		uc.console.LogWarning("No price history found in the catalog")
		return nil
	}

	for _, rep := range reports {
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Ingredient: %s (%s)", rep.IngredientName, rep.IngredientID))
		uc.console.DisplayPanel("Trend", formatTrend(rep.Trend, rep.Points))
		uc.console.DisplayTrendBars(fmt.Sprintf("%s price by %s", rep.IngredientName, periodNoun(rep.BucketPeriod)), toBars(rep.Buckets))
	}

	uc.exportPrices(reports, args)
	return nil
}

// RunProjection displays the projected prices of an ingredient.
func (uc *PricingUseCase) RunProjection(ctx context.Context, args *types.CLIArgs) error {
	reports, err := uc.BuildReports(ctx, PriceQuery{
		IngredientIDs: ingredientIDs(args),
		Supplier:      args.Supplier,
		Months:        args.Months,
		Project:       true,
	})
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		uc.console.LogWarning("No price history found in the catalog")
		return nil
	}

	for _, rep := range reports {
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Ingredient: %s (%s)  |  trend: %s", rep.IngredientName, rep.IngredientID, rep.Trend.Trend))
		if len(rep.Projections) == 0 {
			uc.console.LogWarning("At least two price points are needed to project %s", rep.IngredientID)
			continue
		}

		table := uc.console.CreateTable()
		table.AddColumn("Month")
		table.AddColumn("Projected Price")
		table.AddColumn("Confidence")
		for _, p := range rep.Projections {
			table.AddRow(p.Date.Format("2006-01"), fmt.Sprintf("%.2f", p.ProjectedPrice), formatConfidence(p.Confidence))
		}
		uc.console.Print(table.Render())
	}

	uc.exportPrices(reports, args)
	return nil
}

// RunGroup displays the price history summarized per period.
func (uc *PricingUseCase) RunGroup(ctx context.Context, args *types.CLIArgs) error {
	reports, err := uc.BuildReports(ctx, PriceQuery{
		IngredientIDs: ingredientIDs(args),
		Supplier:      args.Supplier,
		Group:         true,
		Period:        uc.period(args),
	})
	if err != nil {
		return err
	}

	for _, rep := range reports {
		table := uc.console.CreateTable()
		table.AddColumn("Period")
		table.AddColumn("Average")
		table.AddColumn("Min")
		table.AddColumn("Max")
		table.AddColumn("Points")
		for _, b := range rep.Buckets {
			table.AddRow(b.Period, fmt.Sprintf("%.2f", b.AveragePrice), fmt.Sprintf("%.2f", b.MinPrice), fmt.Sprintf("%.2f", b.MaxPrice), b.Count)
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Ingredient: %s (%s)  |  %s", rep.IngredientName, rep.IngredientID, rep.BucketPeriod))
		uc.console.Print(table.Render())
	}

	uc.exportPrices(reports, args)
	return nil
}

// RunSuppliers compares the suppliers of an ingredient.
func (uc *PricingUseCase) RunSuppliers(ctx context.Context, args *types.CLIArgs) error {
	reports, err := uc.BuildReports(ctx, PriceQuery{
		IngredientIDs: ingredientIDs(args),
		Suppliers:     true,
	})
	if err != nil {
		return err
	}

	for _, rep := range reports {
		table := uc.console.CreateTable()
		table.AddColumn("Supplier")
		table.AddColumn("Latest")
		table.AddColumn("Since")
		table.AddColumn("Average")
		table.AddColumn("Min")
		table.AddColumn("Max")
		table.AddColumn("Change")
		for i, s := range rep.Suppliers {
			name := s.Supplier
			if name == "" {
				name = "(unknown)"
			}
			if i == 0 {
				name = pterm.FgGreen.Sprint(name)
			}
			table.AddRow(name, fmt.Sprintf("%.2f", s.LatestPrice), s.LatestDate.Format("2006-01-02"),
				fmt.Sprintf("%.2f", s.AveragePrice), fmt.Sprintf("%.2f", s.MinPrice), fmt.Sprintf("%.2f", s.MaxPrice),
				formatChange(s.ChangePercent))
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Ingredient: %s (%s)", rep.IngredientName, rep.IngredientID))
		uc.console.Print(table.Render())
	}

	uc.exportPrices(reports, args)
	return nil
}

func toBars(buckets []entity.PeriodBucket) []types.PeriodBar {
	bars := make([]types.PeriodBar, len(buckets))
	for i, b := range buckets {
		bars[i] = types.PeriodBar{Period: b.Period, Value: b.AveragePrice}
	}
	return bars
}

func periodNoun(p entity.Period) string {
	switch p {
	case entity.PeriodQuarterly:
		return "quarter"
	case entity.PeriodYearly:
		return "year"
	default:
		return "month"
	}
}

func formatTrend(t entity.TrendAnalysis, points int) string {
	direction := string(t.Trend)
	switch t.Trend {
	case entity.TrendIncreasing:
		direction = pterm.FgRed.Sprint("▲ " + direction)
	case entity.TrendDecreasing:
		direction = pterm.FgGreen.Sprint("▼ " + direction)
	default:
		direction = pterm.FgYellow.Sprint("● " + direction)
	}
	return fmt.Sprintf("Direction: %s\nAverage monthly change: %+.2f\nSlope: %+.4f per day\nCorrelation: %.3f\nVolatility: %.3f\nPrice points: %d",
		direction, t.AverageMonthlyChange, t.Slope, t.Correlation, t.Volatility, points)
}

func formatConfidence(c float64) string {
	pct := c * 100
	switch {
	case pct >= 60:
		return pterm.FgGreen.Sprintf("%.0f%%", pct)
	case pct >= 30:
		return pterm.FgYellow.Sprintf("%.0f%%", pct)
	default:
		return pterm.FgRed.Sprintf("%.0f%%", pct)
	}
}

func formatChange(pct float64) string {
	switch {
	case pct > 0.01:
		return pterm.FgRed.Sprintf("+%.2f%%", pct)
	case pct < -0.01:
		return pterm.FgGreen.Sprintf("%.2f%%", pct)
	default:
		return "0.00%"
	}
}

func (uc *PricingUseCase) exportPrices(reports []entity.PriceReport, args *types.CLIArgs) {
	exportAll(uc.console, args, "price report", map[string]exportFunc{
		"csv":  func() (string, error) { return uc.exportRepo.ExportPriceReportToCSV(reports, args.ReportName, args.Dir) },
		"json": func() (string, error) { return uc.exportRepo.ExportPriceReportToJSON(reports, args.ReportName, args.Dir) },
		"pdf":  func() (string, error) { return uc.exportRepo.ExportPriceReportToPDF(reports, args.ReportName, args.Dir) },
		"xlsx": func() (string, error) { return uc.exportRepo.ExportPriceReportToXLSX(reports, args.ReportName, args.Dir) },
	})
}
