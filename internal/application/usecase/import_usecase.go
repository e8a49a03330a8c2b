package usecase

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// ImportUseCase copies a catalog from one source into a writable store.
type ImportUseCase struct {
	source  repository.CatalogRepository
	target  repository.CatalogWriter
	console types.ConsoleInterface
}

// NewImportUseCase creates a new import use case.
func NewImportUseCase(source repository.CatalogRepository, target repository.CatalogWriter, console types.ConsoleInterface) *ImportUseCase {
	return &ImportUseCase{source: source, target: target, console: console}
}

// Run loads the source catalog and replaces the target's contents with it.
func (uc *ImportUseCase) Run(ctx context.Context) error {
	c, err := loadCatalog(ctx, uc.source, uc.console)
	if err != nil {
		return err
	}

	status := uc.console.Status("Writing catalog...")
	err = uc.target.SaveCatalog(ctx, c)
	status.Stop()
	if err != nil {
		return eris.Wrap(err, "import")
	}

	uc.console.LogSuccess("Imported %d ingredients, %d recipes, %d products, %d menus and %d price points",
		len(c.Ingredients), len(c.Recipes), len(c.Products), len(c.Menus), len(c.PriceHistory))
	return nil
}
