package repository

import (
	"context"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// CatalogRepository supplies the ingredient, recipe, product, menu and price
// records a computation runs against. Implementations return an indexed catalog.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (*entity.Catalog, error)
}

// CatalogWriter persists a catalog snapshot.
type CatalogWriter interface {
	SaveCatalog(ctx context.Context, catalog *entity.Catalog) error
}
