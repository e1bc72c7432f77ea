package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symscope/symscope/internal/model"
)

// Test Plan for the adaptive selector:
// - Line counts bucket into the seven size tiers
// - Each tier maps to its configured ceiling
// - Lists at or under the ceiling return unmodified
// - Oversized lists are trimmed to the ceiling, highest score first
// - Ties break by ascending start line
// - Custom thresholds and ceilings are honored

func scored(name string, score float64, startLine int) model.Symbol {
	return model.Symbol{
		Name:          name,
		QualifiedName: name,
		Kind:          model.KindFunction,
		StartLine:     startLine,
		EndLine:       startLine + 1,
		Score:         &score,
	}
}

func TestSelector_Tiers(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultThresholds(), DefaultCeilings())

	assert.Equal(t, TierTiny, s.Tier(1))
	assert.Equal(t, TierTiny, s.Tier(50))
	assert.Equal(t, TierSmall, s.Tier(51))
	assert.Equal(t, TierSmall, s.Tier(150))
	assert.Equal(t, TierMedium, s.Tier(300))
	assert.Equal(t, TierLarge, s.Tier(600))
	assert.Equal(t, TierXLarge, s.Tier(1000))
	assert.Equal(t, TierHuge, s.Tier(2000))
	assert.Equal(t, TierMega, s.Tier(2001))
}

func TestSelector_Ceilings(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultThresholds(), DefaultCeilings())

	assert.Equal(t, 5, s.Ceiling(TierTiny))
	assert.Equal(t, 15, s.Ceiling(TierSmall))
	assert.Equal(t, 30, s.Ceiling(TierMedium))
	assert.Equal(t, 50, s.Ceiling(TierLarge))
	assert.Equal(t, 80, s.Ceiling(TierXLarge))
	assert.Equal(t, 120, s.Ceiling(TierHuge))
	assert.Equal(t, 150, s.Ceiling(TierMega))
}

func TestSelector_UnderCeilingUnmodified(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultThresholds(), DefaultCeilings())

	symbols := []model.Symbol{
		scored("low", 10, 1),
		scored("high", 90, 5),
		scored("mid", 50, 9),
	}

	// Three symbols in a tiny file fit the ceiling of five: the list
	// comes back as-is, source order preserved.
	selected := s.Select(symbols, 40)
	assert.Equal(t, symbols, selected)
}

func TestSelector_OversizedHugeFile(t *testing.T) {
	t.Parallel()

	s := NewSelector(DefaultThresholds(), DefaultCeilings())

	symbols := make([]model.Symbol, 300)
	for i := range symbols {
		symbols[i] = scored(fmt.Sprintf("sym%03d", i), float64(i%100), i+1)
	}

	selected := s.Select(symbols, 1500)

	require.Len(t, selected, 120)
	for i := 1; i < len(selected); i++ {
		assert.GreaterOrEqual(t, *selected[i-1].Score, *selected[i].Score,
			"selection must be sorted by descending score")
	}

	// Input order is untouched.
	assert.Equal(t, "sym000", symbols[0].Name)
	assert.Equal(t, "sym299", symbols[299].Name)
}

func TestSelector_TieBreakByStartLine(t *testing.T) {
	t.Parallel()

	thresholds := DefaultThresholds()
	ceilings := DefaultCeilings()
	ceilings.Tiny = 2
	s := NewSelector(thresholds, ceilings)

	symbols := []model.Symbol{
		scored("later", 50, 30),
		scored("earlier", 50, 3),
		scored("loser", 10, 20),
	}

	selected := s.Select(symbols, 10)

	require.Len(t, selected, 2)
	// Equal scores keep the earlier declaration first.
	assert.Equal(t, "earlier", selected[0].Name)
	assert.Equal(t, "later", selected[1].Name)
}

func TestSelector_CustomConfiguration(t *testing.T) {
	t.Parallel()

	s := NewSelector(
		Thresholds{Tiny: 10, Small: 20, Medium: 30, Large: 40, XLarge: 50, Huge: 60},
		Ceilings{Tiny: 1, Small: 2, Medium: 3, Large: 4, XLarge: 5, Huge: 6, Mega: 7},
	)

	assert.Equal(t, TierMega, s.Tier(61))
	assert.Equal(t, 1, s.Ceiling(TierTiny))

	symbols := []model.Symbol{
		scored("a", 10, 1),
		scored("b", 20, 2),
	}
	selected := s.Select(symbols, 5)
	require.Len(t, selected, 1)
	assert.Equal(t, "b", selected[0].Name)
}

func TestSelector_UnscoredSymbolsSortLast(t *testing.T) {
	t.Parallel()

	ceilings := DefaultCeilings()
	ceilings.Tiny = 1
	s := NewSelector(DefaultThresholds(), ceilings)

	unscored := model.Symbol{Name: "unscored", QualifiedName: "unscored", StartLine: 1, EndLine: 1}
	symbols := []model.Symbol{unscored, scored("winner", 5, 9)}

	selected := s.Select(symbols, 10)
	require.Len(t, selected, 1)
	assert.Equal(t, "winner", selected[0].Name)
}
