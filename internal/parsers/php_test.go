package parsers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symscope/symscope/internal/model"
)

// Test Plan for the PHP extractor:
// - Extracts classes, interfaces, enums, methods, and functions
// - Reads visibility from explicit keywords, defaulting to public
// - Extracts the namespace declaration into the result
// - Uses preceding docblocks and trailing inline comments as docs
// - Captures PHP 8 attributes as structured annotations
// - Emits Inheritance records for both extends and implements
// - Resolves $this->, static, and constructor calls

func parsePhpFixture(t *testing.T, name string) *model.ParseResult {
	t.Helper()
	engine := NewEngine(NewPhpExtractor())
	defer engine.Close()
	result := engine.Parse(context.Background(), "testdata/code/php/"+name)
	require.NotNil(t, result)
	return result
}

func TestPhpExtractor_Symbols(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")
	require.Empty(t, result.Error)

	assert.Equal(t, "php", result.Language)
	assert.Equal(t, 44, result.LineCount)
	assert.Equal(t, `App\Services`, result.Namespace)
	assert.Equal(t, "Order management services.", result.ModuleDoc)

	var names []string
	for _, sym := range result.Symbols {
		names = append(names, sym.QualifiedName)
	}
	assert.Equal(t, []string{
		"OrderService",
		"OrderService.createOrder",
		"OrderService.stamp",
		"OrderService.total",
		"Resettable",
		"Resettable.reset",
		"OrderStatus",
		"order_total",
	}, names)

	service := findSymbol(t, result, "OrderService")
	assert.Equal(t, model.KindClass, service.Kind)
	assert.Equal(t, "class OrderService extends BaseService implements Resettable", service.Signature)
	assert.Equal(t, model.VisibilityPublic, service.Visibility)
	assert.Equal(t, 28, service.EndLine)

	create := findSymbol(t, result, "OrderService.createOrder")
	assert.Equal(t, model.KindMethod, create.Kind)
	assert.Equal(t, "OrderService->createOrder(array $items): Order", create.Signature)
	assert.Equal(t, "Create and persist a new order.", create.Doc)
	assert.Equal(t, model.VisibilityPublic, create.Visibility)
	assert.Equal(t, 15, create.StartLine)
	assert.Equal(t, 20, create.EndLine)

	stamp := findSymbol(t, result, "OrderService.stamp")
	assert.Equal(t, model.VisibilityPrivate, stamp.Visibility)
	assert.Equal(t, 22, stamp.StartLine)

	iface := findSymbol(t, result, "Resettable")
	assert.Equal(t, model.KindInterface, iface.Kind)
	assert.Equal(t, 30, iface.StartLine)
	assert.Equal(t, 33, iface.EndLine)

	status := findSymbol(t, result, "OrderStatus")
	assert.Equal(t, model.KindEnum, status.Kind)
	assert.Equal(t, 35, status.StartLine)
	assert.Equal(t, 39, status.EndLine)

	total := findSymbol(t, result, "order_total")
	assert.Equal(t, model.KindFunction, total.Kind)
	assert.Equal(t, "order_total(Order $order): float", total.Signature)
	assert.Equal(t, 41, total.StartLine)
	assert.Equal(t, 44, total.EndLine)
}

func TestPhpExtractor_TrailingCommentDoc(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")

	// A one-line method with no docblock picks up its trailing comment.
	total := findSymbol(t, result, "OrderService.total")
	assert.Equal(t, "running total in cents", total.Doc)
}

func TestPhpExtractor_Attributes(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")

	service := findSymbol(t, result, "OrderService")
	require.Len(t, service.Annotations, 1)
	assert.Equal(t, "Route", service.Annotations[0].Name)
	assert.Equal(t, map[string]string{"path": "'/orders'"}, service.Annotations[0].Args)
}

func TestPhpExtractor_Imports(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")

	require.Len(t, result.Imports, 2)

	assert.Equal(t, model.Import{
		Module:      `App\Models\Order`,
		WholeModule: true,
		Line:        8,
	}, result.Imports[0])

	assert.Equal(t, model.Import{
		Module:      `App\Support\Clock`,
		Alias:       "SystemClock",
		WholeModule: true,
		Line:        9,
	}, result.Imports[1])
}

func TestPhpExtractor_Inheritances(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")

	assert.Contains(t, result.Inheritances, model.Inheritance{
		Child:  "OrderService",
		Parent: "BaseService",
	})
	assert.Contains(t, result.Inheritances, model.Inheritance{
		Child:  "OrderService",
		Parent: "Resettable",
	})
	assert.Len(t, result.Inheritances, 2)
}

func TestPhpExtractor_Calls(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "simple.php")

	// Constructor calls resolve through use statements.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "OrderService.createOrder",
		Callee: `App\Models\Order`,
		Line:   17,
	})

	// $this-> resolves against the enclosing class.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "OrderService.createOrder",
		Callee: "OrderService.stamp",
		Line:   18,
	})

	// Static calls resolve the scope through the use alias.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "OrderService.stamp",
		Callee: `App\Support\Clock.now`,
		Line:   24,
	})

	// Unknown function callees keep their raw text.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "order_total",
		Callee: "formatTotal",
		Line:   43,
	})
}

func TestPhpExtractor_TinyFile(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "tiny.php")
	require.Empty(t, result.Error)

	assert.Equal(t, 12, result.LineCount)
	assert.Empty(t, result.Imports)

	require.Len(t, result.Symbols, 1)
	subtotal := result.Symbols[0]
	assert.Equal(t, "subtotal", subtotal.QualifiedName)
	assert.Equal(t, model.KindFunction, subtotal.Kind)
}

func TestPhpExtractor_Malformed(t *testing.T) {
	t.Parallel()

	result := parsePhpFixture(t, "malformed.php")

	assert.NotEmpty(t, result.Error)
	valid := findSymbol(t, result, "valid_function")
	assert.Equal(t, model.KindFunction, valid.Kind)
	assert.Equal(t, 3, valid.StartLine)
}

func TestPhpExtractor_DocNotStolenFromPreviousDeclaration(t *testing.T) {
	t.Parallel()

	source := `<?php

function legacyTotal(): int
{
    return 1;
} // old pricing path

function modernTotal(): int
{
    return 2;
}

// Grand total across carts.
function grandTotal(): int
{
    return 3;
}
`
	path := filepath.Join(t.TempDir(), "totals.php")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	engine := NewEngine(NewPhpExtractor())
	defer engine.Close()
	result := engine.Parse(context.Background(), path)
	require.Empty(t, result.Error)

	// The inline comment documents the declaration it trails, not the one
	// that happens to follow it.
	legacy := findSymbol(t, result, "legacyTotal")
	assert.Equal(t, "old pricing path", legacy.Doc)

	modern := findSymbol(t, result, "modernTotal")
	assert.Empty(t, modern.Doc)

	// A plain comment on the line directly above still counts.
	grand := findSymbol(t, result, "grandTotal")
	assert.Equal(t, "Grand total across carts.", grand.Doc)
}
