package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the symbol model:
// - NewParseResult initializes every collection non-nil
// - Failed reflects the error field
// - LineSpan counts inclusive lines
// - Encoding round-trips a fully populated result without loss
// - Optional fields stay absent from the JSON when empty

func TestNewParseResult_Collections(t *testing.T) {
	t.Parallel()

	r := NewParseResult("src/app.py", "python")

	assert.Equal(t, "src/app.py", r.FilePath)
	assert.Equal(t, "python", r.Language)
	assert.NotNil(t, r.Symbols)
	assert.NotNil(t, r.Imports)
	assert.NotNil(t, r.Calls)
	assert.NotNil(t, r.Inheritances)
	assert.False(t, r.Failed())

	r.Error = "boom"
	assert.True(t, r.Failed())
}

func TestSymbol_LineSpan(t *testing.T) {
	t.Parallel()

	s := Symbol{StartLine: 10, EndLine: 14}
	assert.Equal(t, 5, s.LineSpan())

	oneLiner := Symbol{StartLine: 3, EndLine: 3}
	assert.Equal(t, 1, oneLiner.LineSpan())
}

func TestImport_Aliased(t *testing.T) {
	t.Parallel()

	plain := Import{Module: "os"}
	assert.False(t, plain.Aliased())

	aliased := Import{Module: "numpy", Alias: "np"}
	assert.True(t, aliased.Aliased())
}

func TestParseResult_RoundTrip(t *testing.T) {
	t.Parallel()

	score := 72.5
	r := NewParseResult("src/billing.php", "php")
	r.Namespace = `App\Billing`
	r.ModuleDoc = "Billing services."
	r.LineCount = 120
	r.Symbols = []Symbol{
		{
			Name:          "charge",
			QualifiedName: "Invoices.charge",
			Kind:          KindMethod,
			Signature:     "Invoices->charge(int $cents): Receipt",
			Doc:           "Charge the customer.",
			Visibility:    VisibilityPublic,
			StartLine:     10,
			EndLine:       42,
			Annotations: []Annotation{
				{Name: "Route", Args: map[string]string{"path": "'/charge'"}},
			},
			Score: &score,
		},
		{
			Name:          "Invoices",
			QualifiedName: "Invoices",
			Kind:          KindClass,
			Visibility:    VisibilityPublic,
			StartLine:     5,
			EndLine:       80,
		},
	}
	r.Imports = []Import{
		{Module: `App\Models\Receipt`, WholeModule: true, Line: 3},
		{Module: "decimal", Names: []string{"Decimal"}, Alias: "D", Line: 4},
	}
	r.Calls = []Call{
		{Caller: "Invoices.charge", Callee: "Gateway.submit", Line: 20},
		{Callee: "bootstrap", Line: 2},
	}
	r.Inheritances = []Inheritance{
		{Child: "Invoices", Parent: "BaseRepository"},
	}

	encoded, err := EncodeParseResult(r)
	require.NoError(t, err)

	decoded, err := DecodeParseResult(encoded)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
}

func TestParseResult_RoundTripFailedResult(t *testing.T) {
	t.Parallel()

	r := NewParseResult("src/broken.py", "python")
	r.Error = "syntax errors in src/broken.py; extraction is partial"

	encoded, err := EncodeParseResult(r)
	require.NoError(t, err)

	decoded, err := DecodeParseResult(encoded)
	require.NoError(t, err)
	assert.Equal(t, r, decoded)
	assert.True(t, decoded.Failed())
}

func TestSymbol_OptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	s := Symbol{
		Name:          "helper",
		QualifiedName: "helper",
		Kind:          KindFunction,
		Visibility:    VisibilityPublic,
		StartLine:     1,
		EndLine:       2,
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "annotations")
	assert.NotContains(t, string(data), "score")
}

func TestDecodeParseResult_Invalid(t *testing.T) {
	t.Parallel()

	_, err := DecodeParseResult([]byte("{not json"))
	assert.Error(t, err)
}
