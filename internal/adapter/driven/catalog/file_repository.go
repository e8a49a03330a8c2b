package catalog

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
)

// FileRepositoryImpl reads a catalog from a local TOML, YAML or JSON document.
type FileRepositoryImpl struct {
	path string
}

// NewFileRepository returns a catalog repository backed by a local file.
func NewFileRepository(path string) repository.CatalogRepository {
	return &FileRepositoryImpl{path: path}
}

// LoadCatalog reads and decodes the file on every call.
func (r *FileRepositoryImpl) LoadCatalog(ctx context.Context) (*entity.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(r.path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: access file")
	}
	if fileInfo.IsDir() {
		return nil, eris.Errorf("catalog: %s is a directory, not a file", r.path)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read file")
	}

	c, err := DecodeCatalog(data, r.path)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("catalog loaded from file",
		zap.String("path", r.path),
		zap.Int("ingredients", len(c.Ingredients)),
		zap.Int("recipes", len(c.Recipes)),
		zap.Int("price_points", len(c.PriceHistory)),
	)
	return c, nil
}
