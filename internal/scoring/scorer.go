// Package scoring ranks extracted symbols by estimated importance for
// downstream summarization. A score is the clamped sum of five
// independently capped heuristics and is a pure function of the symbol
// and its context.
package scoring

import (
	"strings"

	"github.com/symscope/symscope/internal/model"
)

// Context carries file-level facts the scorer reads but never mutates.
type Context struct {
	Language     string
	Framework    string // detected framework, empty when none
	FileRole     string // "source", "test", "config", ...
	TotalSymbols int
}

// Weights configures the heuristic contributions. Callers start from
// DefaultWeights and override the fields they need.
type Weights struct {
	VisibilityPublic     float64
	VisibilityProtected  float64
	ConventionPublic     float64
	ConventionPrivate    float64
	CriticalKeyword      float64
	SecondaryKeyword     float64
	BaselineKeyword      float64
	LongDoc              float64
	ShortDoc             float64
	ComplexityPerLine    float64
	ComplexityCap        float64
	AccessorPenalty      float64
	MagicPenalty         float64
	BoilerplatePenalty   float64
	CriticalKeywords     []string
	SecondaryKeywords    []string
	BoilerplateNames     []string
	FrameworkAnnotations []string
}

// DefaultWeights returns the stock heuristic configuration.
func DefaultWeights() Weights {
	return Weights{
		VisibilityPublic:    20,
		VisibilityProtected: 10,
		ConventionPublic:    15,
		ConventionPrivate:   5,
		CriticalKeyword:     25,
		SecondaryKeyword:    15,
		BaselineKeyword:     5,
		LongDoc:             15,
		ShortDoc:            10,
		ComplexityPerLine:   0.5,
		ComplexityCap:       20,
		AccessorPenalty:     -10,
		MagicPenalty:        -15,
		BoilerplatePenalty:  -20,
		CriticalKeywords:    defaultCriticalKeywords,
		SecondaryKeywords:   defaultSecondaryKeywords,
		BoilerplateNames:    defaultBoilerplateNames,
		FrameworkAnnotations: []string{
			"GetMapping", "PostMapping", "PutMapping", "DeleteMapping",
			"RequestMapping", "Route", "app.route", "api.route",
		},
	}
}

type scorer struct {
	weights Weights
}

// Scorer ranks symbols. Implementations must be pure: identical inputs
// always yield identical scores.
type Scorer interface {
	Score(sym model.Symbol, ctx Context) float64
}

// NewScorer creates a scorer with the given weights. Pass
// DefaultWeights() for stock behavior.
func NewScorer(weights Weights) Scorer {
	return &scorer{weights: weights}
}

// Score sums visibility, semantic keyword, documentation, complexity,
// and naming-pattern heuristics, clamped to [0, 100].
func (s *scorer) Score(sym model.Symbol, ctx Context) float64 {
	total := s.visibilityScore(sym, ctx) +
		s.keywordScore(sym, ctx) +
		s.docScore(sym) +
		s.complexityScore(sym) +
		s.namingPenalty(sym, ctx)

	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// visibilityScore rewards reachable API surface. Python signals
// visibility by convention, so its public symbols score slightly lower
// than a keyword language's explicit public.
func (s *scorer) visibilityScore(sym model.Symbol, ctx Context) float64 {
	if ctx.Language == "python" {
		if sym.Visibility == model.VisibilityPublic {
			return s.weights.ConventionPublic
		}
		return s.weights.ConventionPrivate
	}
	switch sym.Visibility {
	case model.VisibilityPublic:
		return s.weights.VisibilityPublic
	case model.VisibilityProtected:
		return s.weights.VisibilityProtected
	}
	return 0
}

// keywordScore matches business verbs in the symbol name. A framework
// route annotation counts as critical: an annotated handler is an
// entry point regardless of its name.
func (s *scorer) keywordScore(sym model.Symbol, ctx Context) float64 {
	if ctx.Framework != "" && s.hasFrameworkAnnotation(sym) {
		return s.weights.CriticalKeyword
	}
	name := strings.ToLower(sym.Name)
	for _, kw := range s.weights.CriticalKeywords {
		if strings.Contains(name, kw) {
			return s.weights.CriticalKeyword
		}
	}
	for _, kw := range s.weights.SecondaryKeywords {
		if strings.Contains(name, kw) {
			return s.weights.SecondaryKeyword
		}
	}
	return s.weights.BaselineKeyword
}

func (s *scorer) hasFrameworkAnnotation(sym model.Symbol) bool {
	for _, ann := range sym.Annotations {
		for _, route := range s.weights.FrameworkAnnotations {
			if ann.Name == route || strings.HasSuffix(ann.Name, "."+route) {
				return true
			}
		}
	}
	return false
}

// docScore rewards documentation, more for structured multi-line docs.
func (s *scorer) docScore(sym model.Symbol) float64 {
	doc := strings.TrimSpace(sym.Doc)
	switch {
	case doc == "":
		return 0
	case len(doc) >= 80 || strings.Contains(doc, "\n"):
		return s.weights.LongDoc
	default:
		return s.weights.ShortDoc
	}
}

// complexityScore scales with declaration size up to a cap.
func (s *scorer) complexityScore(sym model.Symbol) float64 {
	score := float64(sym.LineSpan()) * s.weights.ComplexityPerLine
	if score > s.weights.ComplexityCap {
		return s.weights.ComplexityCap
	}
	return score
}

// namingPenalty downgrades accessors, boilerplate members, and magic
// names. Only the strongest matching penalty applies.
func (s *scorer) namingPenalty(sym model.Symbol, ctx Context) float64 {
	for _, name := range s.weights.BoilerplateNames {
		if sym.Name == name {
			return s.weights.BoilerplatePenalty
		}
	}
	if ctx.FileRole == "test" && strings.HasPrefix(strings.ToLower(sym.Name), "test") {
		return s.weights.BoilerplatePenalty
	}
	if isMagicName(sym.Name) {
		return s.weights.MagicPenalty
	}
	if isAccessorName(sym.Name) && sym.Kind == model.KindMethod {
		return s.weights.AccessorPenalty
	}
	return 0
}

// isAccessorName matches getX/setX/isX/hasX style trivial accessors.
func isAccessorName(name string) bool {
	for _, prefix := range []string{"get", "set", "is", "has"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		first := rest[0]
		if first >= 'A' && first <= 'Z' || first == '_' {
			return true
		}
	}
	return false
}

// isMagicName matches dunder names and throwaway identifiers.
func isMagicName(name string) bool {
	if strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4 {
		return true
	}
	return len(name) == 1
}
