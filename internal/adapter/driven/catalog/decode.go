package catalog

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// DecodeCatalog parses a catalog document. The format is chosen from the
// extension of name: .toml, .yaml/.yml or .json.
func DecodeCatalog(data []byte, name string) (*entity.Catalog, error) {
	var c entity.Catalog

	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrap(err, "catalog: parse TOML")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrap(err, "catalog: parse YAML")
		}
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrap(err, "catalog: parse JSON")
		}
	default:
		return nil, eris.Wrapf(types.ErrUnsupportedCatalog, "catalog: unknown document format %q", ext)
	}

	c.Index()
	return &c, nil
}
