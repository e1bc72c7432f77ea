package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SYMSCOPE_*)
// 2. Config file (.symscope/config.yml or .symscope/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".symscope")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SYMSCOPE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SYMSCOPE_CACHE_ENABLED)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("languages.python")
	v.BindEnv("languages.php")
	v.BindEnv("languages.java")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.location")
	v.BindEnv("workers")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("languages.python", defaults.Languages.Python)
	v.SetDefault("languages.php", defaults.Languages.Php)
	v.SetDefault("languages.java", defaults.Languages.Java)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("scoring.critical_keywords", defaults.Scoring.CriticalKeywords)
	v.SetDefault("scoring.secondary_keywords", defaults.Scoring.SecondaryKeywords)

	v.SetDefault("selection.thresholds.tiny", defaults.Selection.Thresholds.Tiny)
	v.SetDefault("selection.thresholds.small", defaults.Selection.Thresholds.Small)
	v.SetDefault("selection.thresholds.medium", defaults.Selection.Thresholds.Medium)
	v.SetDefault("selection.thresholds.large", defaults.Selection.Thresholds.Large)
	v.SetDefault("selection.thresholds.xlarge", defaults.Selection.Thresholds.XLarge)
	v.SetDefault("selection.thresholds.huge", defaults.Selection.Thresholds.Huge)

	v.SetDefault("selection.ceilings.tiny", defaults.Selection.Ceilings.Tiny)
	v.SetDefault("selection.ceilings.small", defaults.Selection.Ceilings.Small)
	v.SetDefault("selection.ceilings.medium", defaults.Selection.Ceilings.Medium)
	v.SetDefault("selection.ceilings.large", defaults.Selection.Ceilings.Large)
	v.SetDefault("selection.ceilings.xlarge", defaults.Selection.Ceilings.XLarge)
	v.SetDefault("selection.ceilings.huge", defaults.Selection.Ceilings.Huge)
	v.SetDefault("selection.ceilings.mega", defaults.Selection.Ceilings.Mega)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.location", defaults.Cache.Location)

	v.SetDefault("workers", defaults.Workers)
}
