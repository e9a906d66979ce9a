package uksim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
seed = 123

[region]
code = "E00000001"
directory = "./testdata"
grid_size = 10
use_cache = false

[disease]
reproduction_rate = 2.5
exposure_chance = 0.3
death_rate = 0.02
exposed_time = 48
infected_time = 168
max_time_step = 2000

[intervention]
lockdown_trigger = 500
lockdown_release = 100
masking_trigger = 200
masking_effect = 0.5
vaccination_start = 100
vaccination_rate = 0.01

[logging]
backend = "csv"
path = "./out/counts.csv"
`

func TestLoadConfig_DecodesAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, writeFile(path, []byte(sampleConfig)))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "E00000001", cfg.Region.Code)
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, 2.5, cfg.Disease.ReproductionRate)
	assert.Equal(t, 500, cfg.Policy.LockdownTrigger)
	assert.Equal(t, "csv", cfg.Logging.Backend)

	backend, err := cfg.Logging.NewBackend()
	require.NoError(t, err)
	assert.IsType(t, &CSVStatsBackend{}, backend)
}

func TestConfig_Validate_DefaultsSeedWhenZero(t *testing.T) {
	cfg := Config{
		Region:  RegionConfig{Code: "E00000001", GridSize: 1},
		Disease: DiseaseModel{ReproductionRate: 1, ExposureChance: 0.1, ExposedTime: 1, InfectedTime: 1, MaxTimeStep: 1},
	}
	require.NoError(t, cfg.Validate())
	assert.NotZero(t, cfg.Seed)
}

func TestConfig_Validate_RejectsUnknownBackend(t *testing.T) {
	cfg := Config{
		Region:  RegionConfig{Code: "E00000001", GridSize: 1},
		Disease: DiseaseModel{ReproductionRate: 1, ExposureChance: 0.1, ExposedTime: 1, InfectedTime: 1, MaxTimeStep: 1},
		Logging: LoggingConfig{Backend: "parquet"},
	}
	assert.Error(t, cfg.Validate())
}

func TestRegionConfig_Validate(t *testing.T) {
	assert.Error(t, RegionConfig{Code: "", GridSize: 1}.Validate())
	assert.Error(t, RegionConfig{Code: "E1", GridSize: 0}.Validate())
	assert.NoError(t, RegionConfig{Code: "E1", GridSize: 1}.Validate())
}
