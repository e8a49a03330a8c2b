package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diillson/kitchen-cost-engine/internal/application/usecase"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/logging"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
	"github.com/diillson/kitchen-cost-engine/pkg/version"
)

// CatalogOpener opens the catalog repository named by cfg. The returned
// function releases it.
type CatalogOpener func(ctx context.Context, cfg types.CatalogConfig) (repository.CatalogRepository, func() error, error)

// CatalogWriterOpener opens a writable catalog store at target.
type CatalogWriterOpener func(ctx context.Context, target string) (repository.CatalogWriter, func() error, error)

// Dependencies are the driven adapters the CLI wires into the use cases.
type Dependencies struct {
	ConfigRepo        repository.ConfigRepository
	ExportRepo        repository.ExportRepository
	Console           types.ConsoleInterface
	OpenCatalog       CatalogOpener
	OpenCatalogWriter CatalogWriterOpener
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	version string

	config  types.Config
	closers []func() error
}

var supportedReportTypes = []string{"csv", "json", "pdf", "xlsx"}

// NewCLIApp creates the CLI application and registers its commands.
func NewCLIApp(versionStr string, deps Dependencies) *CLIApp {
	app := &CLIApp{
		version: versionStr,
		deps:    deps,
		config:  types.DefaultConfig(),
	}

	rootCmd := &cobra.Command{
		Use:               "kitchen-cost",
		Short:             "Recipe, product and menu costing with ingredient price analytics",
		Version:           version.FormatVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: app.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "Kitchen Cost Engine version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("catalog", "f", "", "Catalog source: a .yaml/.json/.toml file, a .db SQLite file or s3://bucket/key")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf, xlsx (default: csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Diagnostic log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Diagnostic log format: console or json")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the welcome banner")

	rootCmd.AddCommand(
		app.newRecipeCmd(),
		app.newProductCmd(),
		app.newMenuCmd(),
		app.newScaleCmd(),
		app.newLabelCmd(),
		app.newTrendCmd(),
		app.newProjectCmd(),
		app.newGroupCmd(),
		app.newSuppliersCmd(),
		app.newImportCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	defer app.cleanup()
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx as the commands' context.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	defer app.cleanup()
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, for tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// preRun resolves configuration: defaults, then the config file, then flags.
func (app *CLIApp) preRun(cmd *cobra.Command, _ []string) error {
	cfg, err := app.resolveConfig(cmd)
	if err != nil {
		return err
	}
	app.config = cfg

	if err := logging.Init(cfg.Log); err != nil {
		return err
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		displayWelcomeBanner(app.version)
		go checkLatestVersion(app.version)
	}

	zap.L().Debug("configuration resolved",
		zap.String("command", cmd.Name()),
		zap.String("catalog", cfg.Catalog.Source),
		zap.Strings("report_types", cfg.Report.Types),
	)
	return nil
}

// cleanup closes opened catalogs in reverse order and flushes the logger.
func (app *CLIApp) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			zap.L().Warn("close failed", zap.Error(err))
		}
	}
	app.closers = nil
	_ = zap.L().Sync()
}

func (app *CLIApp) resolveConfig(cmd *cobra.Command) (types.Config, error) {
	cfg := types.DefaultConfig()
	flags := cmd.Flags()

	if configFile, _ := flags.GetString("config-file"); configFile != "" {
		fileCfg, err := app.deps.ConfigRepo.LoadConfigFile(configFile)
		if err != nil {
			return cfg, err
		}
		cfg.Merge(fileCfg)
	}

	override := types.Config{}
	override.Catalog.Source, _ = flags.GetString("catalog")
	override.Report.Name, _ = flags.GetString("report-name")
	override.Report.Types, _ = flags.GetStringSlice("report-type")
	override.Report.Dir, _ = flags.GetString("dir")
	override.Log.Level, _ = flags.GetString("log-level")
	override.Log.Format, _ = flags.GetString("log-format")
	cfg.Merge(&override)

	for i, t := range cfg.Report.Types {
		t = strings.ToLower(strings.TrimSpace(t))
		if !isSupportedReportType(t) {
			return cfg, eris.Wrapf(types.ErrUnsupportedReportType, "%q (supported: %s)", t, strings.Join(supportedReportTypes, ", "))
		}
		cfg.Report.Types[i] = t
	}

	// Default to the current working directory
	if cfg.Report.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cfg, eris.Wrap(err, "could not get current working directory")
		}
		cfg.Report.Dir = cwd
	} else {
		absDir, err := filepath.Abs(cfg.Report.Dir)
		if err != nil {
			return cfg, eris.Wrap(err, "resolve report directory")
		}
		cfg.Report.Dir = absDir
	}

	return cfg, nil
}

func isSupportedReportType(t string) bool {
	for _, s := range supportedReportTypes {
		if t == s {
			return true
		}
	}
	return false
}

// baseArgs carries the resolved global settings into a CLIArgs.
func (app *CLIApp) baseArgs(ids []string) *types.CLIArgs {
	return &types.CLIArgs{
		Catalog:    app.config.Catalog.Source,
		ReportName: app.config.Report.Name,
		ReportType: app.config.Report.Types,
		Dir:        app.config.Report.Dir,
		LogLevel:   app.config.Log.Level,
		LogFormat:  app.config.Log.Format,
		IDs:        ids,
	}
}

func (app *CLIApp) openCatalog(ctx context.Context) (repository.CatalogRepository, error) {
	repo, closeFn, err := app.deps.OpenCatalog(ctx, app.config.Catalog)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeFn)
	return repo, nil
}

func (app *CLIApp) costingUseCase(ctx context.Context) (*usecase.CostingUseCase, error) {
	repo, err := app.openCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewCostingUseCase(repo, app.deps.ExportRepo, app.deps.Console, app.config.Analysis), nil
}

func (app *CLIApp) pricingUseCase(ctx context.Context) (*usecase.PricingUseCase, error) {
	repo, err := app.openCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewPricingUseCase(repo, app.deps.ExportRepo, app.deps.Console, app.config.Analysis), nil
}
