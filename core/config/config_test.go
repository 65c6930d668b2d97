package config

import (
	"os"
	"path/filepath"
	"testing"

	"city-comparison/core/join"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 0.1, cfg.Join.Threshold)
	assert.False(t, cfg.Join.StrictMatching)
	assert.Equal(t, "outer", cfg.Join.ExactMode)
	assert.Equal(t, "inner", cfg.Join.FuzzyMode)
	assert.Equal(t, "", cfg.Join.MissingValue)
	assert.Equal(t, "data/fbi/fbi_cities_crime_2017.json", cfg.Sources.FBIPath)
	assert.Equal(t, 300, cfg.Sources.CacheTTLSeconds)
	assert.Equal(t, "city_comparison.csv", cfg.Output.CSVPath)
	assert.Equal(t, 500, cfg.Output.BatchSize)
	assert.Equal(t, "city-comparison", cfg.Storage.Bucket)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("JOIN_STRICT_MATCHING", "true")
	t.Setenv("JOIN_THRESHOLD", "0.25")
	t.Setenv("SOURCES_FROM_STORAGE", "1")
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Join.StrictMatching)
	assert.Equal(t, 0.25, cfg.Join.Threshold)
	assert.True(t, cfg.Sources.FromStorage)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	// Registers a restore for the variable the .env file sets.
	t.Setenv("OUTPUT_CSV_PATH", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OUTPUT_CSV_PATH=out/cities.csv\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "out/cities.csv", cfg.Output.CSVPath)
}

func TestLoadConfig_JoinOptions(t *testing.T) {
	t.Setenv("JOIN_FUZZY_MODE", "OUTER")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	opts, err := cfg.Join.Options()
	require.NoError(t, err)
	assert.Equal(t, join.Outer, opts.FuzzyMode)
	assert.Equal(t, 0.1, opts.Threshold)
}
