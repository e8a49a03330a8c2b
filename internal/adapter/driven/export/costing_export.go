package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
)

// --- Funções de Exportação do Relatório de Custos ---

func costingTables(report repository.CostingReport) []table {
	var tables []table

	if len(report.Recipes) > 0 {
		summary := table{
			Title: "Recipes",
			Header: []string{"Recipe ID", "Recipe", "Portions", "Final Weight (g)", "Total Cost",
				"Cost / Portion", "Cost / 100g", "Sell Price", "Real Margin %", "Food Cost %"},
		}
		breakdown := table{
			Title:  "Recipe Breakdown",
			Header: []string{"Recipe ID", "Ingredient ID", "Ingredient", "Quantity (g)", "Cost", "Share %"},
		}
		for _, rc := range report.Recipes {
			summary.Rows = append(summary.Rows, []string{
				rc.RecipeID, rc.RecipeName, strconv.Itoa(rc.Portions), qty(rc.FinalWeight, 1),
				money(rc.Total.Cost), money(rc.PerPortion.Cost), money(rc.Per100g.Cost),
				money(rc.SellPrice), qty(rc.RealMargin, 2), qty(rc.FoodCostPercent, 2),
			})
			for _, l := range rc.Breakdown {
				breakdown.Rows = append(breakdown.Rows, []string{
					rc.RecipeID, l.IngredientID, l.IngredientName, qty(l.QuantityGrams, 1),
					money(l.Cost), qty(l.SharePercent, 2),
				})
			}
		}
		tables = append(tables, summary, breakdown)
	}

	if len(report.Products) > 0 {
		summary := table{
			Title:  "Products",
			Header: []string{"Product ID", "Product", "Total Cost", "Sell Price", "Real Margin %"},
		}
		components := table{
			Title:  "Product Components",
			Header: []string{"Product ID", "Component", "Kind", "Quantity", "Cost"},
		}
		for _, pc := range report.Products {
			summary.Rows = append(summary.Rows, []string{
				pc.ProductID, pc.ProductName, money(pc.TotalCost), money(pc.SellPrice), qty(pc.RealMargin, 2),
			})
			for _, c := range pc.Components {
				kind, amount := "recipe", qty(c.QuantityGrams, 1)+" g"
				if c.ProductID != "" {
					kind, amount = "product", qty(c.Units, 2)+" un"
				}
				components.Rows = append(components.Rows, []string{
					pc.ProductID, c.Name, kind, amount, money(c.Cost),
				})
			}
		}
		tables = append(tables, summary, components)
	}

	if len(report.Menus) > 0 {
		summary := table{
			Title:  "Menus",
			Header: []string{"Menu ID", "Menu", "Total Cost", "Sell Price", "Real Margin %"},
		}
		items := table{
			Title:  "Menu Items",
			Header: []string{"Menu ID", "Product", "Quantity", "Unit Cost", "Cost"},
		}
		for _, mc := range report.Menus {
			summary.Rows = append(summary.Rows, []string{
				mc.MenuID, mc.MenuName, money(mc.TotalCost), money(mc.SellPrice), qty(mc.RealMargin, 2),
			})
			for _, it := range mc.Items {
				items.Rows = append(items.Rows, []string{
					mc.MenuID, it.ProductName, qty(it.Quantity, 2), money(it.UnitCost), money(it.Cost),
				})
			}
		}
		tables = append(tables, summary, items)
	}

	for _, sr := range report.Scaled {
		t := table{
			Title:  fmt.Sprintf("Scaled %s x%d", sr.RecipeID, sr.TargetPortions),
			Header: []string{"Ingredient", "Original (g)", "Scaled (g)"},
		}
		for _, l := range sr.Lines {
			t.Rows = append(t.Rows, []string{l.IngredientName, qty(l.OriginalGrams, 1), qty(l.ScaledGrams, 1)})
		}
		t.Rows = append(t.Rows,
			[]string{"Factor", "", qty(sr.Factor, 4)},
			[]string{"Prep Time (min)", "", prepTime(sr.PrepTimeMinutes)},
			[]string{"Total Cost", "", money(sr.TotalCost)},
			[]string{"Cost / Portion", "", money(sr.CostPerPortion)},
		)
		tables = append(tables, t)
	}

	if report.Label != nil {
		t := table{
			Title:  "Nutrition Label",
			Header: []string{"Nutrient", "Amount", "%DV"},
		}
		for _, l := range report.Label.Label.Lines() {
			t.Rows = append(t.Rows, []string{l.Name, l.Amount, l.DailyValue})
		}
		tables = append(tables, t)
	}

	return tables
}

func prepTime(minutes *int) string {
	if minutes == nil {
		return ""
	}
	return strconv.Itoa(*minutes)
}

func (r *ExportRepositoryImpl) ExportCostingToCSV(report repository.CostingReport, filename, outputDir string) (string, error) {
	return r.writeCSV(costingTables(report), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCostingToJSON(report repository.CostingReport, filename, outputDir string) (string, error) {
	return r.writeJSON(report, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCostingToXLSX(report repository.CostingReport, filename, outputDir string) (string, error) {
	return r.writeXLSX(costingTables(report), filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportCostingToPDF(report repository.CostingReport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	w := r.newPDF("Generated by Kitchen Cost Engine")
	tables := costingTables(report)
	if len(tables) == 0 {
		w.banner("Costing Report", "")
		w.text("No items were costed.")
		return w.save(outputFilename)
	}

	w.banner("Costing Report", costingSubtitle(report))
	for _, t := range tables {
		if t.Title == "Nutrition Label" && report.Label != nil {
			w.label(*report.Label)
			continue
		}
		w.grid(t)
	}
	return w.save(outputFilename)
}

func costingSubtitle(report repository.CostingReport) string {
	var parts []string
	if n := len(report.Recipes); n > 0 {
		parts = append(parts, fmt.Sprintf("%d recipe(s)", n))
	}
	if n := len(report.Products); n > 0 {
		parts = append(parts, fmt.Sprintf("%d product(s)", n))
	}
	if n := len(report.Menus); n > 0 {
		parts = append(parts, fmt.Sprintf("%d menu(s)", n))
	}
	if n := len(report.Scaled); n > 0 {
		parts = append(parts, fmt.Sprintf("%d scaled recipe(s)", n))
	}
	if report.Label != nil {
		parts = append(parts, "nutrition label")
	}
	return strings.Join(parts, "  |  ")
}

// label desenha o painel nutricional como uma tabela com borda.
func (w *pdfWriter) label(lr repository.LabelReport) {
	w.section(fmt.Sprintf("Nutrition Facts: %s", lr.RecipeName))
	pdf := w.pdf

	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(120, 8, w.tr(fmt.Sprintf("Portion of %sg", qty(lr.Label.PortionGrams, 0))), "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(60, 7, "", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, w.tr("Amount"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, w.tr("%DV (*)"), "RB", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, l := range lr.Label.Lines() {
		pdf.CellFormat(60, 6, w.tr(l.Name), "L", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, w.tr(l.Amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, w.tr(l.DailyValue), "R", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "I", 7)
	pdf.MultiCell(120, 4, w.tr("(*) Daily values based on a 2,000 kcal or 8,400 kJ diet."), "1", "L", false)
	pdf.Ln(6)
}
