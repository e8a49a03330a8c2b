package usecase

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// loadCatalog fetches a fresh snapshot and indexes it before it is shared
// with any worker goroutine.
func loadCatalog(ctx context.Context, repo repository.CatalogRepository, console types.ConsoleInterface) (*entity.Catalog, error) {
	status := console.Status("Loading catalog...")
	defer status.Stop()

	c, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	c.Index()

	zap.L().Debug("catalog ready",
		zap.Int("ingredients", len(c.Ingredients)),
		zap.Int("recipes", len(c.Recipes)),
		zap.Int("products", len(c.Products)),
		zap.Int("menus", len(c.Menus)),
		zap.Int("price_points", len(c.PriceHistory)),
	)
	return c, nil
}

type exportFunc func() (string, error)

// exportAll runs one exporter per requested report type. Export failures are
// reported on the console and do not fail the command.
func exportAll(console types.ConsoleInterface, args *types.CLIArgs, what string, exporters map[string]exportFunc) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		kind := strings.ToLower(reportType)
		export, ok := exporters[kind]
		if !ok {
			supported := make([]string, 0, len(exporters))
			for k := range exporters {
				supported = append(supported, k)
			}
			sort.Strings(supported)
			console.LogWarning("Unsupported report type '%s' (supported: %s)", reportType, strings.Join(supported, ", "))
			continue
		}

		path, err := export()
		if err != nil {
			zap.L().Error("export failed", zap.String("type", kind), zap.Error(err))
			console.LogError("Failed to export %s to %s: %s", what, strings.ToUpper(kind), err)
			continue
		}
		console.LogSuccess("Successfully exported %s to %s: %s", what, strings.ToUpper(kind), path)
	}
}
