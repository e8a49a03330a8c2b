package cli

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/diillson/kitchen-cost-engine/internal/application/usecase"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

func (app *CLIApp) newRecipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe [recipe-id...]",
		Short: "Cost recipes with per-100g nutrition and margins (all recipes when no id is given)",
		RunE: func(cmd *cobra.Command, ids []string) error {
			uc, err := app.costingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			args := app.baseArgs(ids)
			args.TargetMargin, _ = cmd.Flags().GetFloat64("target-margin")
			return uc.RunRecipes(cmd.Context(), args)
		},
	}
	cmd.Flags().Float64("target-margin", 0, "Target gross margin percent used for the suggested sell price")
	return cmd
}

func (app *CLIApp) newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product [product-id...]",
		Short: "Roll recipe costs up into products (all products when no id is given)",
		RunE: func(cmd *cobra.Command, ids []string) error {
			uc, err := app.costingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			args := app.baseArgs(ids)
			args.TargetMargin, _ = cmd.Flags().GetFloat64("target-margin")
			return uc.RunProducts(cmd.Context(), args)
		},
	}
	cmd.Flags().Float64("target-margin", 0, "Target gross margin percent used for the suggested sell price")
	return cmd
}

func (app *CLIApp) newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [menu-id...]",
		Short: "Roll product costs up into menus (all menus when no id is given)",
		RunE: func(cmd *cobra.Command, ids []string) error {
			uc, err := app.costingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			return uc.RunMenus(cmd.Context(), app.baseArgs(ids))
		},
	}
}

func (app *CLIApp) newScaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale <recipe-id>",
		Short: "Rescale a recipe to a new number of portions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			uc, err := app.costingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			args := app.baseArgs(ids)
			args.Portions, _ = cmd.Flags().GetInt("portions")
			return uc.RunScale(cmd.Context(), args)
		},
	}
	cmd.Flags().IntP("portions", "p", 0, "Target number of portions")
	_ = cmd.MarkFlagRequired("portions")
	return cmd
}

func (app *CLIApp) newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label <recipe-id>",
		Short: "Format the nutrition label of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, ids []string) error {
			uc, err := app.costingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			args := app.baseArgs(ids)
			args.PortionGrams, _ = cmd.Flags().GetFloat64("portion")
			args.PerPortion, _ = cmd.Flags().GetBool("per-portion")
			return uc.RunLabel(cmd.Context(), args)
		},
	}
	cmd.Flags().Float64("portion", 0, "Portion size in grams (default 100)")
	cmd.Flags().Bool("per-portion", false, "Use the recipe's own portion size (final weight / portions)")
	cmd.MarkFlagsMutuallyExclusive("portion", "per-portion")
	return cmd
}

// priceCmd builds a price analytics command; run picks the use case method.
func (app *CLIApp) priceCmd(use, short string, run func(*usecase.PricingUseCase, *cobra.Command, *types.CLIArgs) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := app.pricingUseCase(cmd.Context())
			if err != nil {
				return err
			}
			args := app.baseArgs(nil)
			args.IngredientID, _ = cmd.Flags().GetString("ingredient")
			if f := cmd.Flags().Lookup("supplier"); f != nil {
				args.Supplier = f.Value.String()
			}
			if f := cmd.Flags().Lookup("period"); f != nil {
				args.Period = f.Value.String()
			}
			return run(uc, cmd, args)
		},
	}
	cmd.Flags().StringP("ingredient", "i", "", "Ingredient id (all ingredients with price history when omitted)")
	return cmd
}

func (app *CLIApp) newTrendCmd() *cobra.Command {
	cmd := app.priceCmd("trend", "Analyse the price trend of ingredients",
		func(uc *usecase.PricingUseCase, cmd *cobra.Command, args *types.CLIArgs) error {
			return uc.RunTrend(cmd.Context(), args)
		})
	cmd.Flags().StringP("supplier", "s", "", "Only use prices from this supplier")
	cmd.Flags().String("period", "", "Bar chart period: monthly, quarterly or yearly")
	return cmd
}

func (app *CLIApp) newProjectCmd() *cobra.Command {
	cmd := app.priceCmd("project", "Project ingredient prices for the coming months",
		func(uc *usecase.PricingUseCase, cmd *cobra.Command, args *types.CLIArgs) error {
			args.Months, _ = cmd.Flags().GetInt("months")
			if args.Months < 0 {
				return eris.Errorf("months must not be negative, got %d", args.Months)
			}
			return uc.RunProjection(cmd.Context(), args)
		})
	cmd.Flags().StringP("supplier", "s", "", "Only use prices from this supplier")
	cmd.Flags().IntP("months", "m", 0, "Number of months to project (default from config, 6)")
	return cmd
}

func (app *CLIApp) newGroupCmd() *cobra.Command {
	cmd := app.priceCmd("group", "Summarize ingredient prices per month, quarter or year",
		func(uc *usecase.PricingUseCase, cmd *cobra.Command, args *types.CLIArgs) error {
			return uc.RunGroup(cmd.Context(), args)
		})
	cmd.Flags().StringP("supplier", "s", "", "Only use prices from this supplier")
	cmd.Flags().String("period", "", "Grouping period: monthly, quarterly or yearly")
	return cmd
}

func (app *CLIApp) newSuppliersCmd() *cobra.Command {
	return app.priceCmd("suppliers", "Compare the suppliers of ingredients",
		func(uc *usecase.PricingUseCase, cmd *cobra.Command, args *types.CLIArgs) error {
			return uc.RunSuppliers(cmd.Context(), args)
		})
}

func (app *CLIApp) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the catalog into a SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, _ := cmd.Flags().GetString("to")
			if target == "" {
				return eris.New("import needs a target database (--to)")
			}
			source, err := app.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			writer, closeFn, err := app.deps.OpenCatalogWriter(cmd.Context(), target)
			if err != nil {
				return err
			}
			app.closers = append(app.closers, closeFn)
			return usecase.NewImportUseCase(source, writer, app.deps.Console).Run(cmd.Context())
		},
	}
	cmd.Flags().String("to", "", "Target SQLite database file")
	return cmd
}
