package config

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"

	"github.com/symscope/symscope/internal/selection"
)

var (
	// ErrNoLanguages indicates every language backend is disabled
	ErrNoLanguages = errors.New("no languages enabled")

	// ErrInvalidPattern indicates a path glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrInvalidThresholds indicates tier thresholds that are not strictly ascending
	ErrInvalidThresholds = errors.New("invalid tier thresholds")

	// ErrInvalidCeilings indicates a non-positive symbol ceiling
	ErrInvalidCeilings = errors.New("invalid tier ceilings")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Languages.Python && !cfg.Languages.Php && !cfg.Languages.Java {
		errs = append(errs, ErrNoLanguages)
	}

	if err := validatePatterns(cfg.Paths.Include); err != nil {
		errs = append(errs, err)
	}
	if err := validatePatterns(cfg.Paths.Ignore); err != nil {
		errs = append(errs, err)
	}

	if err := validateThresholds(cfg.Selection.Thresholds); err != nil {
		errs = append(errs, err)
	}
	if err := validateCeilings(cfg.Selection.Ceilings); err != nil {
		errs = append(errs, err)
	}

	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, cfg.Workers))
	}

	return errors.Join(errs...)
}

func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
	}
	return nil
}

// validateThresholds requires strictly ascending positive tier bounds so
// every line count maps to exactly one tier.
func validateThresholds(t selection.Thresholds) error {
	bounds := []int{t.Tiny, t.Small, t.Medium, t.Large, t.XLarge, t.Huge}
	prev := 0
	for _, bound := range bounds {
		if bound <= prev {
			return fmt.Errorf("%w: bounds must be ascending and positive, got %v", ErrInvalidThresholds, bounds)
		}
		prev = bound
	}
	return nil
}

func validateCeilings(c selection.Ceilings) error {
	for _, ceiling := range []int{c.Tiny, c.Small, c.Medium, c.Large, c.XLarge, c.Huge, c.Mega} {
		if ceiling <= 0 {
			return fmt.Errorf("%w: ceilings must be positive", ErrInvalidCeilings)
		}
	}
	return nil
}
