package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile_YAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "kitchen.yaml", `
catalog:
  source: ./catalog.yaml
report:
  name: weekly
  types: [csv, pdf]
analysis:
  noise_floor: 0.02
  horizon_months: 12
  period: quarterly
log:
  level: debug
  format: json
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "./catalog.yaml", cfg.Catalog.Source)
	assert.Equal(t, "weekly", cfg.Report.Name)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.Report.Types)
	assert.InDelta(t, 0.02, cfg.Analysis.NoiseFloor, 1e-12)
	assert.Equal(t, 12, cfg.Analysis.HorizonMonths)
	assert.Equal(t, "quarterly", cfg.Analysis.Period)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfigFile_TOML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "kitchen.toml", `
[catalog]
source = "s3://kitchen/catalog.json"
aws_region = "sa-east-1"

[analysis]
max_depth = 8
`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "s3://kitchen/catalog.json", cfg.Catalog.Source)
	assert.Equal(t, "sa-east-1", cfg.Catalog.AWSRegion)
	assert.Equal(t, 8, cfg.Analysis.MaxDepth)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "kitchen.json", `{"report": {"dir": "/tmp/out", "types": ["xlsx"]}}`)

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.Report.Dir)
	assert.Equal(t, []string{"xlsx"}, cfg.Report.Types)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	t.Parallel()
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(writeFile(t, "kitchen.ini", "a=b"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(writeFile(t, "bad.json", "{"))
	assert.ErrorContains(t, err, "error parsing JSON file")
}
