package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

func f(v float64) *float64 { return &v }

func minutes(v int) *int { return &v }

var t0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func testCatalog() *entity.Catalog {
	return &entity.Catalog{
		Ingredients: []entity.Ingredient{
			{
				ID: "flour", Name: "Wheat flour", NetWeightGrams: 1000, UnitPrice: 5,
				Nutrition: entity.NutritionFacts{Calories: f(364), Protein: f(10), Carbs: f(76), Fat: f(1), Fiber: f(2.7), Sodium: f(2)},
			},
			{
				ID: "butter", Name: "Butter", NetWeightGrams: 200, UnitPrice: 10,
				Nutrition: entity.NutritionFacts{Calories: f(717), Protein: f(0.9), Carbs: f(0.1), Fat: f(81), Sodium: f(11)},
			},
			{
				ID: "sugar", Name: "Sugar", NetWeightGrams: 1000, UnitPrice: 4,
				Nutrition: entity.NutritionFacts{Calories: f(387), Carbs: f(100)},
			},
		},
		Recipes: []entity.Recipe{
			{
				ID: "dough", Name: "Sweet dough",
				Lines: []entity.RecipeLine{
					{IngredientID: "flour", QuantityGrams: 500},
					{IngredientID: "butter", QuantityGrams: 100},
					{IngredientID: "sugar", QuantityGrams: 100},
				},
				FinalWeightGrams: 700, Portions: 10, PrepTimeMinutes: minutes(40), SellPrice: 2,
			},
			{
				ID: "syrup", Name: "Syrup",
				Lines:            []entity.RecipeLine{{IngredientID: "sugar", QuantityGrams: 500}},
				FinalWeightGrams: 250, Portions: 5,
			},
		},
		Products: []entity.Product{
			{
				ID: "cake", Name: "Cake slice", SellPrice: 4,
				Components: []entity.ProductComponent{
					{RecipeID: "dough", QuantityGrams: 140},
					{RecipeID: "syrup", QuantityGrams: 25},
				},
			},
			{
				ID: "combo", Name: "Two cakes",
				Components: []entity.ProductComponent{{ProductID: "cake", Units: 2}},
			},
		},
		Menus: []entity.Menu{
			{
				ID: "tea", Name: "Afternoon tea", SellPrice: 20,
				Items: []entity.MenuItem{{ProductID: "cake", Quantity: 3}, {ProductID: "combo", Quantity: 1}},
			},
		},
		PriceHistory: []entity.PricePoint{
			{IngredientID: "flour", Supplier: "acme", Date: t0, Price: 10},
			{IngredientID: "flour", Supplier: "acme", Date: t0.AddDate(0, 0, 30), Price: 13},
			{IngredientID: "flour", Supplier: "acme", Date: t0.AddDate(0, 0, 60), Price: 16},
			{IngredientID: "flour", Supplier: "bulk", Date: t0, Price: 9},
			{IngredientID: "flour", Supplier: "bulk", Date: t0.AddDate(0, 0, 60), Price: 11},
			{IngredientID: "sugar", Supplier: "acme", Date: t0, Price: 4},
		},
	}
}

type fakeCatalogRepo struct {
	catalog func() *entity.Catalog
	err     error
	calls   int
}

func (r *fakeCatalogRepo) LoadCatalog(ctx context.Context) (*entity.Catalog, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.catalog(), nil
}

type fakeCatalogWriter struct {
	saved *entity.Catalog
	err   error
}

func (w *fakeCatalogWriter) SaveCatalog(ctx context.Context, c *entity.Catalog) error {
	w.saved = c
	return w.err
}

type fakeExporter struct {
	mu      sync.Mutex
	calls   []string
	costing []repository.CostingReport
	prices  [][]entity.PriceReport
	fail    map[string]error
}

func (e *fakeExporter) record(kind string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, kind)
	if err := e.fail[kind]; err != nil {
		return "", err
	}
	return "/tmp/report." + kind, nil
}

func (e *fakeExporter) costingCall(r repository.CostingReport, kind string) (string, error) {
	e.costing = append(e.costing, r)
	return e.record(kind)
}

func (e *fakeExporter) priceCall(r []entity.PriceReport, kind string) (string, error) {
	e.prices = append(e.prices, r)
	return e.record(kind)
}

func (e *fakeExporter) ExportCostingToCSV(r repository.CostingReport, _, _ string) (string, error) {
	return e.costingCall(r, "csv")
}
func (e *fakeExporter) ExportCostingToJSON(r repository.CostingReport, _, _ string) (string, error) {
	return e.costingCall(r, "json")
}
func (e *fakeExporter) ExportCostingToPDF(r repository.CostingReport, _, _ string) (string, error) {
	return e.costingCall(r, "pdf")
}
func (e *fakeExporter) ExportCostingToXLSX(r repository.CostingReport, _, _ string) (string, error) {
	return e.costingCall(r, "xlsx")
}
func (e *fakeExporter) ExportPriceReportToCSV(r []entity.PriceReport, _, _ string) (string, error) {
	return e.priceCall(r, "csv")
}
func (e *fakeExporter) ExportPriceReportToJSON(r []entity.PriceReport, _, _ string) (string, error) {
	return e.priceCall(r, "json")
}
func (e *fakeExporter) ExportPriceReportToPDF(r []entity.PriceReport, _, _ string) (string, error) {
	return e.priceCall(r, "pdf")
}
func (e *fakeExporter) ExportPriceReportToXLSX(r []entity.PriceReport, _, _ string) (string, error) {
	return e.priceCall(r, "xlsx")
}

type fakeConsole struct {
	mu       sync.Mutex
	printed  []string
	infos    []string
	warnings []string
	errors   []string
	success  []string
	panels   []string
	bars     [][]types.PeriodBar
	progress []*fakeProgress
}

func (c *fakeConsole) add(dst *[]string, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Print(a ...interface{})                 { c.add(&c.printed, "%s", fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.add(&c.printed, format, a...) }
func (c *fakeConsole) Println(a ...interface{})               { c.add(&c.printed, "%s", fmt.Sprintln(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.add(&c.infos, format, a...)
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.add(&c.warnings, format, a...)
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.add(&c.errors, format, a...)
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.add(&c.success, format, a...)
}
func (c *fakeConsole) Status(string) types.StatusHandle  { return fakeHandle{} }
func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }
func (c *fakeConsole) ProgressWithTotal(total int) types.ProgressHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &fakeProgress{total: total}
	c.progress = append(c.progress, p)
	return p
}
func (c *fakeConsole) DisplayTrendBars(title string, bars []types.PeriodBar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bars = append(c.bars, bars)
}
func (c *fakeConsole) DisplayPanel(title, body string) {
	c.add(&c.panels, "%s\n%s", title, body)
}

type fakeHandle struct{}

func (fakeHandle) Update(string) {}
func (fakeHandle) Stop()         {}

type fakeProgress struct {
	total   int
	done    atomic.Int64
	stopped atomic.Bool
}

func (p *fakeProgress) Increment() { p.done.Add(1) }
func (p *fakeProgress) Stop()      { p.stopped.Store(true) }

type fakeTable struct {
	columns []string
	rows    [][]string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) { t.columns = append(t.columns, name) }
func (t *fakeTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}
func (t *fakeTable) Render() string {
	out := fmt.Sprint(t.columns)
	for _, r := range t.rows {
		out += "\n" + fmt.Sprint(r)
	}
	return out
}

func testAnalysis() types.AnalysisConfig {
	return types.DefaultConfig().Analysis
}
