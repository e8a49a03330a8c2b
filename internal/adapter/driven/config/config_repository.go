package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
	"github.com/diillson/kitchen-cost-engine/internal/shared/types"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, eris.Wrap(err, "error accessing config file")
	}

	if fileInfo.IsDir() {
		return nil, eris.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, eris.Wrap(err, "error reading config file")
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, eris.Wrap(err, "error parsing TOML file")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, eris.Wrap(err, "error parsing YAML file")
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, eris.Wrap(err, "error parsing JSON file")
		}
	default:
		return nil, eris.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}
