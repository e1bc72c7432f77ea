package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symscope/symscope/internal/selection"
)

// Test Plan for configuration:
// - Default configuration passes validation
// - Validation rejects empty language sets, bad globs, unordered
//   thresholds, non-positive ceilings and negative worker counts
// - Loader falls back to defaults when no config file exists
// - Loader reads .symscope/config.yml overrides
// - SYMSCOPE_* environment variables win over the file
// - Malformed YAML and invalid loaded configs surface as errors

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.True(t, cfg.Languages.Python)
	assert.True(t, cfg.Languages.Php)
	assert.True(t, cfg.Languages.Java)
	assert.Contains(t, cfg.Paths.Include, "**/*.py")
	assert.Contains(t, cfg.Paths.Ignore, "vendor/**")
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, selection.DefaultThresholds(), cfg.Selection.Thresholds)
	assert.Equal(t, selection.DefaultCeilings(), cfg.Selection.Ceilings)
}

func TestValidate_NoLanguages(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Languages = LanguagesConfig{}

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrNoLanguages)
}

func TestValidate_BadPattern(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Include = append(cfg.Paths.Include, "[unclosed")

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestValidate_UnorderedThresholds(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Selection.Thresholds.Small = cfg.Selection.Thresholds.Tiny // not strictly ascending

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}

func TestValidate_NonPositiveCeiling(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Selection.Ceilings.Mega = 0

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidCeilings)
}

func TestValidate_NegativeWorkers(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Workers = -1

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Languages = LanguagesConfig{}
	cfg.Workers = -3

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrNoLanguages)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestLoader_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Languages, cfg.Languages)
	assert.Equal(t, defaults.Paths.Include, cfg.Paths.Include)
	assert.Equal(t, defaults.Paths.Ignore, cfg.Paths.Ignore)
	assert.Equal(t, defaults.Selection, cfg.Selection)
	assert.Equal(t, defaults.Cache, cfg.Cache)
	assert.Equal(t, defaults.Workers, cfg.Workers)
}

func TestLoader_ReadsConfigFile(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, `
languages:
  python: true
  php: false
  java: false
workers: 4
selection:
  ceilings:
    tiny: 3
cache:
  enabled: false
  location: /tmp/symscope-cache.db
`)

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.True(t, cfg.Languages.Python)
	assert.False(t, cfg.Languages.Php)
	assert.False(t, cfg.Languages.Java)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 3, cfg.Selection.Ceilings.Tiny)
	// Unset tiers keep their defaults.
	assert.Equal(t, 15, cfg.Selection.Ceilings.Small)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/symscope-cache.db", cfg.Cache.Location)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfig(t, rootDir, `
workers: 4
languages:
  java: true
`)

	t.Setenv("SYMSCOPE_WORKERS", "8")
	t.Setenv("SYMSCOPE_LANGUAGES_JAVA", "false")

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.False(t, cfg.Languages.Java)
}

func TestLoader_MalformedYAML(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, "languages: [not: a: mapping")

	_, err := NewLoader(rootDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoader_InvalidLoadedConfig(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfig(t, rootDir, `
languages:
  python: false
  php: false
  java: false
`)

	_, err := NewLoader(rootDir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoLanguages)
}

func writeConfig(t *testing.T, rootDir, content string) {
	t.Helper()
	configDir := filepath.Join(rootDir, ".symscope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))
}
