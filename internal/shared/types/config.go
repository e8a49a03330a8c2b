package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog" toml:"catalog"`
	Report   ReportConfig   `json:"report" yaml:"report" toml:"report"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" toml:"analysis"`
	Log      LogConfig      `json:"log" yaml:"log" toml:"log"`
}

// CatalogConfig points at the source of ingredient, recipe and price records.
// Source is a file path (.yaml, .yml, .json, .toml), a SQLite database
// (.db, .sqlite, sqlite://path) or an S3 object (s3://bucket/key).
type CatalogConfig struct {
	Source    string `json:"source" yaml:"source" toml:"source"`
	AWSRegion string `json:"aws_region" yaml:"aws_region" toml:"aws_region"`
	Profile   string `json:"profile" yaml:"profile" toml:"profile"`
}

// ReportConfig controls report export.
type ReportConfig struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Types []string `json:"types" yaml:"types" toml:"types"`
	Dir   string   `json:"dir" yaml:"dir" toml:"dir"`
}

// AnalysisConfig tunes the costing and price analytics.
type AnalysisConfig struct {
	NoiseFloor    float64 `json:"noise_floor" yaml:"noise_floor" toml:"noise_floor"`
	HorizonMonths int     `json:"horizon_months" yaml:"horizon_months" toml:"horizon_months"`
	Period        string  `json:"period" yaml:"period" toml:"period"`
	MaxDepth      int     `json:"max_depth" yaml:"max_depth" toml:"max_depth"`
	TargetMargin  float64 `json:"target_margin" yaml:"target_margin" toml:"target_margin"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

// DefaultConfig returns the configuration used when no file or flag overrides a value.
func DefaultConfig() Config {
	return Config{
		Report: ReportConfig{
			Types: []string{"csv"},
		},
		Analysis: AnalysisConfig{
			NoiseFloor:    0.01,
			HorizonMonths: 6,
			Period:        "monthly",
			MaxDepth:      32,
			TargetMargin:  65,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Merge overlays every non-zero value of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Catalog.Source != "" {
		c.Catalog.Source = other.Catalog.Source
	}
	if other.Catalog.AWSRegion != "" {
		c.Catalog.AWSRegion = other.Catalog.AWSRegion
	}
	if other.Catalog.Profile != "" {
		c.Catalog.Profile = other.Catalog.Profile
	}
	if other.Report.Name != "" {
		c.Report.Name = other.Report.Name
	}
	if len(other.Report.Types) > 0 {
		c.Report.Types = other.Report.Types
	}
	if other.Report.Dir != "" {
		c.Report.Dir = other.Report.Dir
	}
	if other.Analysis.NoiseFloor > 0 {
		c.Analysis.NoiseFloor = other.Analysis.NoiseFloor
	}
	if other.Analysis.HorizonMonths > 0 {
		c.Analysis.HorizonMonths = other.Analysis.HorizonMonths
	}
	if other.Analysis.Period != "" {
		c.Analysis.Period = other.Analysis.Period
	}
	if other.Analysis.MaxDepth > 0 {
		c.Analysis.MaxDepth = other.Analysis.MaxDepth
	}
	if other.Analysis.TargetMargin > 0 {
		c.Analysis.TargetMargin = other.Analysis.TargetMargin
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}
