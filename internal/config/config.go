package config

import (
	"github.com/symscope/symscope/internal/selection"
)

// Config represents the complete symscope configuration.
// It can be loaded from .symscope/config.yml with environment variable overrides.
type Config struct {
	Languages LanguagesConfig `yaml:"languages" mapstructure:"languages"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Workers   int             `yaml:"workers" mapstructure:"workers"` // parallel parse workers, 0 = NumCPU
}

// LanguagesConfig enables or disables individual language backends.
type LanguagesConfig struct {
	Python bool `yaml:"python" mapstructure:"python"`
	Php    bool `yaml:"php" mapstructure:"php"`
	Java   bool `yaml:"java" mapstructure:"java"`
}

// PathsConfig defines which files to analyze and which to skip.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ScoringConfig overrides the semantic keyword lists. Empty lists keep
// the built-in defaults.
type ScoringConfig struct {
	CriticalKeywords  []string `yaml:"critical_keywords" mapstructure:"critical_keywords"`
	SecondaryKeywords []string `yaml:"secondary_keywords" mapstructure:"secondary_keywords"`
}

// SelectionConfig controls adaptive symbol trimming.
type SelectionConfig struct {
	Thresholds selection.Thresholds `yaml:"thresholds" mapstructure:"thresholds"` // tier line-count bounds
	Ceilings   selection.Ceilings   `yaml:"ceilings" mapstructure:"ceilings"`     // per-tier symbol budgets
}

// CacheConfig controls the parse-result cache.
type CacheConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Location string `yaml:"location" mapstructure:"location"` // override default .symscope/cache.db
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Languages: LanguagesConfig{
			Python: true,
			Php:    true,
			Java:   true,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.php",
				"**/*.java",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.pyc",
			},
		},
		Selection: SelectionConfig{
			Thresholds: selection.DefaultThresholds(),
			Ceilings:   selection.DefaultCeilings(),
		},
		Cache: CacheConfig{
			Enabled:  true,
			Location: "",
		},
		Workers: 0,
	}
}
