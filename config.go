package uksim

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level TOML configuration, the same per-section
// nested-struct-with-Validate shape as the teacher's EvoEpiConfig
// (evoepi_config.go), reduced to the sections this domain needs:
// region/population sourcing, the disease model, intervention policy,
// and where statistics get written.
type Config struct {
	Region  RegionConfig       `toml:"region"`
	Disease DiseaseModel       `toml:"disease"`
	Policy  InterventionPolicy `toml:"intervention"`
	Logging LoggingConfig      `toml:"logging"`
	Seed    int64              `toml:"seed"`
}

// RegionConfig names the output area this run should simulate and where
// to find (or cache) its population data, matching spec §6 Inputs.
type RegionConfig struct {
	Code       string `toml:"code"`
	Directory  string `toml:"directory"`
	GridSize   int    `toml:"grid_size"`
	UseCache   bool   `toml:"use_cache"`
}

func (c RegionConfig) Validate() error {
	if c.Code == "" {
		return errorf(InvalidStringParamError, "region.code", c.Code, "must not be empty")
	}
	if c.GridSize < 1 {
		return errorf(InvalidIntParamError, "region.grid_size", c.GridSize, "must be >= 1")
	}
	return nil
}

// LoggingConfig picks and parameterises a StatsBackend.
type LoggingConfig struct {
	Backend string `toml:"backend"` // "csv", "sqlite", or "none"
	Path    string `toml:"path"`
}

func (c LoggingConfig) Validate() error {
	switch c.Backend {
	case "", "none", "csv", "sqlite":
		return nil
	default:
		return errorf(InvalidStringParamError, "logging.backend", c.Backend, `must be "csv", "sqlite" or "none"`)
	}
}

// NewBackend constructs the StatsBackend this configuration names, or
// nil for "none"/"".
func (c LoggingConfig) NewBackend() (StatsBackend, error) {
	switch c.Backend {
	case "csv":
		return NewCSVStatsBackend(c.Path), nil
	case "sqlite":
		return NewSQLiteStatsBackend(c.Path), nil
	default:
		return nil, nil
	}
}

// Validate checks every section in turn, matching the teacher's
// EvoEpiConfig.Validate sequence of per-section Validate() calls.
func (c *Config) Validate() error {
	if err := c.Region.Validate(); err != nil {
		return wrapConfig(err, "invalid region configuration")
	}
	if err := c.Disease.Validate(); err != nil {
		return wrapConfig(err, "invalid disease configuration")
	}
	if err := c.Policy.Validate(); err != nil {
		return wrapConfig(err, "invalid intervention configuration")
	}
	if err := c.Logging.Validate(); err != nil {
		return wrapConfig(err, "invalid logging configuration")
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UTC().UnixNano()
	}
	return nil
}

// LoadConfig reads and decodes a TOML configuration file, the same
// BurntSushi/toml.DecodeFile entrypoint the teacher uses
// (evoepi_config_loader.go), without running Validate — callers decide
// when to validate so a driver can override fields (e.g. CLI flags)
// first.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, NewConfigurationError(err)
	}
	return &c, nil
}
