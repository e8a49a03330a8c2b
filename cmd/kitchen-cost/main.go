package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/kitchen-cost-engine/internal/adapter/driven/catalog"
	"github.com/diillson/kitchen-cost-engine/internal/adapter/driven/config"
	"github.com/diillson/kitchen-cost-engine/internal/adapter/driven/export"
	"github.com/diillson/kitchen-cost-engine/internal/adapter/driving/cli"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/pkg/console"
	"github.com/diillson/kitchen-cost-engine/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Inicializa os repositórios
	deps := cli.Dependencies{
		ConfigRepo:  config.NewConfigRepository(),
		ExportRepo:  export.NewExportRepository(),
		Console:     console.NewConsole(),
		OpenCatalog: catalog.NewCatalogRepository,
		OpenCatalogWriter: func(ctx context.Context, target string) (repository.CatalogWriter, func() error, error) {
			db, err := catalog.NewSQLiteRepository(ctx, target)
			if err != nil {
				return nil, nil, err
			}
			return db, db.Close, nil
		},
	}

	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version, deps)

	// Executa o aplicativo
	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
