package catalog

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// Kind identifies the storage behind a catalog source.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindS3     Kind = "s3"
)

// DetectKind classifies a source string.
func DetectKind(source string) (Kind, error) {
	switch {
	case source == "":
		return "", types.ErrNoCatalogSource
	case strings.HasPrefix(source, "s3://"):
		return KindS3, nil
	case strings.HasPrefix(source, "sqlite://"):
		return KindSQLite, nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	case ".json", ".yaml", ".yml", ".toml":
		return KindFile, nil
	default:
		return "", eris.Wrapf(types.ErrUnsupportedCatalog, "%q", source)
	}
}

// NewCatalogRepository returns the repository matching cfg.Source. The
// returned close function releases any handle the repository holds.
func NewCatalogRepository(ctx context.Context, cfg types.CatalogConfig) (repository.CatalogRepository, func() error, error) {
	noop := func() error { return nil }

	kind, err := DetectKind(cfg.Source)
	if err != nil {
		return nil, noop, err
	}

	switch kind {
	case KindS3:
		repo, err := NewS3Repository(cfg.Source, cfg.Profile, cfg.AWSRegion)
		return repo, noop, err
	case KindSQLite:
		repo, err := NewSQLiteRepository(ctx, strings.TrimPrefix(cfg.Source, "sqlite://"))
		if err != nil {
			return nil, noop, err
		}
		return repo, repo.Close, nil
	default:
		return NewFileRepository(cfg.Source), noop, nil
	}
}
