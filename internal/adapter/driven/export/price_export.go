package export

import (
	"fmt"
	"strconv"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// --- Funções de Exportação do Relatório de Preços ---

func priceTables(reports []entity.PriceReport) []table {
	trends := table{
		Title: "Price Trends",
		Header: []string{"Ingredient ID", "Ingredient", "Supplier", "Points", "Trend",
			"Slope / Day", "Monthly Change", "Correlation", "Volatility"},
	}
	projections := table{
		Title:  "Projections",
		Header: []string{"Ingredient ID", "Date", "Projected Price", "Confidence %"},
	}
	buckets := table{
		Title:  "Period Averages",
		Header: []string{"Ingredient ID", "Period", "Average", "Min", "Max", "Count"},
	}
	suppliers := table{
		Title:  "Suppliers",
		Header: []string{"Ingredient ID", "Supplier", "Latest Price", "Latest Date", "Average", "Min", "Max", "Count", "Change %"},
	}

	for _, rep := range reports {
		supplier := rep.Supplier
		if supplier == "" {
			supplier = "all"
		}
		trends.Rows = append(trends.Rows, []string{
			rep.IngredientID, rep.IngredientName, supplier, strconv.Itoa(rep.Points), string(rep.Trend.Trend),
			qty(rep.Trend.Slope, 4), money(rep.Trend.AverageMonthlyChange),
			qty(rep.Trend.Correlation, 4), qty(rep.Trend.Volatility, 4),
		})
		for _, p := range rep.Projections {
			projections.Rows = append(projections.Rows, []string{
				rep.IngredientID, p.Date.Format("2006-01-02"), money(p.ProjectedPrice), qty(p.Confidence*100, 1),
			})
		}
		for _, b := range rep.Buckets {
			buckets.Rows = append(buckets.Rows, []string{
				rep.IngredientID, b.Period, money(b.AveragePrice), money(b.MinPrice), money(b.MaxPrice), strconv.Itoa(b.Count),
			})
		}
		for _, s := range rep.Suppliers {
			name := s.Supplier
			if name == "" {
				name = "(unknown)"
			}
			suppliers.Rows = append(suppliers.Rows, []string{
				rep.IngredientID, name, money(s.LatestPrice), s.LatestDate.Format("2006-01-02"),
				money(s.AveragePrice), money(s.MinPrice), money(s.MaxPrice), strconv.Itoa(s.Count), qty(s.ChangePercent, 2),
			})
		}
	}

	tables := []table{trends}
	for _, t := range []table{projections, buckets, suppliers} {
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	}
	return tables
}

func (r *ExportRepositoryImpl) ExportPriceReportToCSV(reports []entity.PriceReport, filename, outputDir string) (string, error) {
	return r.writeCSV(priceTables(reports), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportPriceReportToJSON(reports []entity.PriceReport, filename, outputDir string) (string, error) {
	return r.writeJSON(reports, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportPriceReportToXLSX(reports []entity.PriceReport, filename, outputDir string) (string, error) {
	return r.writeXLSX(priceTables(reports), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportPriceReportToPDF(reports []entity.PriceReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	w := r.newPDF("Price Analytics")
	if len(reports) == 0 {
		w.banner("Price Analytics", "")
		w.text("No price history was analyzed.")
		return w.save(outputFilename)
	}

	for _, rep := range reports {
		subtitle := fmt.Sprintf("Ingredient ID: %s  |  %d price point(s)", rep.IngredientID, rep.Points)
		if rep.Supplier != "" {
			subtitle += "  |  Supplier: " + rep.Supplier
		}
		w.banner(rep.IngredientName, subtitle)

		w.section("Trend")
		w.text(fmt.Sprintf("Direction: %s\nAverage monthly change: %s\nSlope per day: %s\nCorrelation: %s\nVolatility: %s",
			rep.Trend.Trend, money(rep.Trend.AverageMonthlyChange), qty(rep.Trend.Slope, 4),
			qty(rep.Trend.Correlation, 4), qty(rep.Trend.Volatility, 4)))

		// uma página por ingrediente
		for _, t := range priceTables([]entity.PriceReport{rep})[1:] {
			w.grid(t)
		}
	}
	return w.save(outputFilename)
}
