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

// Test Plan for the Java extractor:
// - Extracts classes, interfaces, enums, and methods with line numbers
// - Dot-qualifies nested types under their outer type
// - Reads visibility from modifiers, mapping package-private to protected
// - Extracts javadoc from preceding /** */ comments
// - Captures annotations with argument key/value pairs
// - Extracts single-type and wildcard imports
// - Emits Inheritance records for extends and implements
// - Attributes calls to the enclosing method, resolving imports and this

func parseJavaFixture(t *testing.T, name string) *model.ParseResult {
	t.Helper()
	engine := NewEngine(NewJavaExtractor())
	defer engine.Close()
	result := engine.Parse(context.Background(), "testdata/code/java/"+name)
	require.NotNil(t, result)
	return result
}

func TestJavaExtractor_Symbols(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Simple.java")
	require.Empty(t, result.Error)

	assert.Equal(t, "java", result.Language)
	assert.Equal(t, 34, result.LineCount)
	assert.Equal(t, "com.acme.billing", result.Namespace)

	var names []string
	for _, sym := range result.Symbols {
		names = append(names, sym.QualifiedName)
	}
	assert.Equal(t, []string{
		"InvoiceService",
		"InvoiceService.processInvoice",
		"InvoiceService.validate",
		"InvoiceService.pending",
		"InvoiceService.Builder",
		"InvoiceService.Builder.build",
	}, names)

	service := findSymbol(t, result, "InvoiceService")
	assert.Equal(t, model.KindClass, service.Kind)
	assert.Equal(t, "class InvoiceService extends BaseService implements Auditable", service.Signature)
	assert.Contains(t, service.Doc, "Handles invoice lifecycle operations.")
	assert.Equal(t, model.VisibilityPublic, service.Visibility)
	assert.Equal(t, 9, service.StartLine)
	assert.Equal(t, 34, service.EndLine)

	process := findSymbol(t, result, "InvoiceService.processInvoice")
	assert.Equal(t, model.KindMethod, process.Kind)
	assert.Equal(t, "void processInvoice(Invoice invoice)", process.Signature)
	assert.Equal(t, "Process and persist one invoice.", process.Doc)
	assert.Equal(t, model.VisibilityPublic, process.Visibility)
	assert.Equal(t, 14, process.StartLine)
	assert.Equal(t, 19, process.EndLine)

	validate := findSymbol(t, result, "InvoiceService.validate")
	assert.Equal(t, model.VisibilityPrivate, validate.Visibility)
	assert.Equal(t, "boolean validate(Invoice invoice)", validate.Signature)

	// Package-private maps to protected. Generics survive in the
	// signature verbatim.
	pending := findSymbol(t, result, "InvoiceService.pending")
	assert.Equal(t, model.VisibilityProtected, pending.Visibility)
	assert.Equal(t, "List<Invoice> pending()", pending.Signature)

	builder := findSymbol(t, result, "InvoiceService.Builder")
	assert.Equal(t, model.KindClass, builder.Kind)
	assert.Equal(t, 29, builder.StartLine)
	assert.Equal(t, 33, builder.EndLine)

	build := findSymbol(t, result, "InvoiceService.Builder.build")
	assert.Equal(t, "InvoiceService build()", build.Signature)
}

func TestJavaExtractor_Annotations(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Simple.java")

	process := findSymbol(t, result, "InvoiceService.processInvoice")
	require.Len(t, process.Annotations, 2)

	assert.Equal(t, "Transactional", process.Annotations[0].Name)
	assert.Nil(t, process.Annotations[0].Args)

	assert.Equal(t, "PostMapping", process.Annotations[1].Name)
	assert.Equal(t, map[string]string{"path": `"/invoices"`}, process.Annotations[1].Args)
}

func TestJavaExtractor_Imports(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Simple.java")

	require.Len(t, result.Imports, 2)

	assert.Equal(t, model.Import{
		Module: "java.util",
		Names:  []string{"List"},
		Line:   3,
	}, result.Imports[0])

	assert.Equal(t, model.Import{
		Module:      "com.acme.audit",
		WholeModule: true,
		Line:        4,
	}, result.Imports[1])
}

func TestJavaExtractor_Inheritances(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Simple.java")

	assert.Contains(t, result.Inheritances, model.Inheritance{
		Child:  "InvoiceService",
		Parent: "BaseService",
	})
	assert.Contains(t, result.Inheritances, model.Inheritance{
		Child:  "InvoiceService",
		Parent: "Auditable",
	})
	assert.Len(t, result.Inheritances, 2)
}

func TestJavaExtractor_Calls(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Simple.java")

	// Unqualified calls bind to the enclosing class.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "InvoiceService.processInvoice",
		Callee: "InvoiceService.validate",
		Line:   17,
	})

	// Unknown receivers keep their raw text.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "InvoiceService.processInvoice",
		Callee: "repository.save",
		Line:   18,
	})

	// Imported types qualify the receiver.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "InvoiceService.pending",
		Callee: "java.util.List.of",
		Line:   26,
	})

	// Constructor calls resolve against local declarations.
	assert.Contains(t, result.Calls, model.Call{
		Caller: "InvoiceService.Builder.build",
		Callee: "InvoiceService",
		Line:   31,
	})
}

func TestJavaExtractor_TinyFile(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Tiny.java")
	require.Empty(t, result.Error)

	assert.Equal(t, 12, result.LineCount)
	assert.Equal(t, "com.acme.util", result.Namespace)
	assert.Empty(t, result.Imports)

	require.Len(t, result.Symbols, 2)
	assert.Equal(t, "Slug", result.Symbols[0].QualifiedName)
	assert.Equal(t, "Slug.normalize", result.Symbols[1].QualifiedName)
	assert.Equal(t, "Lowercase and trim the given label.", result.Symbols[1].Doc)
}

func TestJavaExtractor_Malformed(t *testing.T) {
	t.Parallel()

	result := parseJavaFixture(t, "Malformed.java")

	assert.NotEmpty(t, result.Error)
	valid := findSymbol(t, result, "Valid")
	assert.Equal(t, model.KindClass, valid.Kind)
	assert.Equal(t, 3, valid.StartLine)
}

func TestJavaExtractor_VisibilityIgnoresAnnotationText(t *testing.T) {
	t.Parallel()

	source := `package com.acme.config;

class Settings {
    @JsonProperty("private")
    String mode() {
        return "default";
    }

    @Scope("public")
    protected int limit() {
        return 10;
    }
}
`
	path := filepath.Join(t.TempDir(), "Settings.java")
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	engine := NewEngine(NewJavaExtractor())
	defer engine.Close()
	result := engine.Parse(context.Background(), path)
	require.Empty(t, result.Error)

	// Annotation argument text never counts as a modifier keyword.
	mode := findSymbol(t, result, "Settings.mode")
	assert.Equal(t, model.VisibilityProtected, mode.Visibility)

	limit := findSymbol(t, result, "Settings.limit")
	assert.Equal(t, model.VisibilityProtected, limit.Visibility)
}
