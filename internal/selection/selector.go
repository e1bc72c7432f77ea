// Package selection trims a scored symbol list to a budget that scales
// with file size. Files are bucketed into seven tiers by line count and
// each tier carries a symbol-count ceiling.
package selection

import (
	"sort"

	"github.com/symscope/symscope/internal/model"
)

// Tier names a file-size bucket.
type Tier string

const (
	TierTiny   Tier = "tiny"
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
	TierXLarge Tier = "xlarge"
	TierHuge   Tier = "huge"
	TierMega   Tier = "mega"
)

// Thresholds holds the inclusive upper line-count bound of each tier
// below mega; a file above Huge is mega.
type Thresholds struct {
	Tiny   int `mapstructure:"tiny" yaml:"tiny"`
	Small  int `mapstructure:"small" yaml:"small"`
	Medium int `mapstructure:"medium" yaml:"medium"`
	Large  int `mapstructure:"large" yaml:"large"`
	XLarge int `mapstructure:"xlarge" yaml:"xlarge"`
	Huge   int `mapstructure:"huge" yaml:"huge"`
}

// Ceilings holds the per-tier maximum number of retained symbols.
type Ceilings struct {
	Tiny   int `mapstructure:"tiny" yaml:"tiny"`
	Small  int `mapstructure:"small" yaml:"small"`
	Medium int `mapstructure:"medium" yaml:"medium"`
	Large  int `mapstructure:"large" yaml:"large"`
	XLarge int `mapstructure:"xlarge" yaml:"xlarge"`
	Huge   int `mapstructure:"huge" yaml:"huge"`
	Mega   int `mapstructure:"mega" yaml:"mega"`
}

// DefaultThresholds returns the stock tier boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{Tiny: 50, Small: 150, Medium: 300, Large: 600, XLarge: 1000, Huge: 2000}
}

// DefaultCeilings returns the stock per-tier symbol budgets.
func DefaultCeilings() Ceilings {
	return Ceilings{Tiny: 5, Small: 15, Medium: 30, Large: 50, XLarge: 80, Huge: 120, Mega: 150}
}

type selector struct {
	thresholds Thresholds
	ceilings   Ceilings
}

// Selector buckets files into tiers and trims symbol lists.
type Selector interface {
	Tier(lineCount int) Tier
	Ceiling(tier Tier) int
	Select(symbols []model.Symbol, lineCount int) []model.Symbol
}

// NewSelector creates a selector with the given tier configuration.
func NewSelector(thresholds Thresholds, ceilings Ceilings) Selector {
	return &selector{thresholds: thresholds, ceilings: ceilings}
}

func (s *selector) Tier(lineCount int) Tier {
	switch {
	case lineCount <= s.thresholds.Tiny:
		return TierTiny
	case lineCount <= s.thresholds.Small:
		return TierSmall
	case lineCount <= s.thresholds.Medium:
		return TierMedium
	case lineCount <= s.thresholds.Large:
		return TierLarge
	case lineCount <= s.thresholds.XLarge:
		return TierXLarge
	case lineCount <= s.thresholds.Huge:
		return TierHuge
	}
	return TierMega
}

func (s *selector) Ceiling(tier Tier) int {
	switch tier {
	case TierTiny:
		return s.ceilings.Tiny
	case TierSmall:
		return s.ceilings.Small
	case TierMedium:
		return s.ceilings.Medium
	case TierLarge:
		return s.ceilings.Large
	case TierXLarge:
		return s.ceilings.XLarge
	case TierHuge:
		return s.ceilings.Huge
	}
	return s.ceilings.Mega
}

// Select returns at most the tier's ceiling of symbols, highest score
// first with earlier declarations winning ties. When the list already
// fits the ceiling, it is returned unmodified.
func (s *selector) Select(symbols []model.Symbol, lineCount int) []model.Symbol {
	ceiling := s.Ceiling(s.Tier(lineCount))
	if len(symbols) <= ceiling {
		return symbols
	}

	ranked := make([]model.Symbol, len(symbols))
	copy(ranked, symbols)
	sort.SliceStable(ranked, func(i, k int) bool {
		si, sk := scoreOf(ranked[i]), scoreOf(ranked[k])
		if si != sk {
			return si > sk
		}
		return ranked[i].StartLine < ranked[k].StartLine
	})
	return ranked[:ceiling]
}

func scoreOf(sym model.Symbol) float64 {
	if sym.Score == nil {
		return 0
	}
	return *sym.Score
}
