// Package parsers owns the language parser contract: a uniform
// Parse(path) entry point dispatching to per-language extractors that walk
// tree-sitter concrete syntax trees. Extraction failures never escape this
// package as errors; they become data on the returned ParseResult.
package parsers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/symscope/symscope/internal/model"
)

// Extractor is the contract every language backend implements. The four
// extraction hooks run in a fixed order (symbols, imports, inheritances,
// calls) so call resolution can consult the earlier results.
type Extractor interface {
	// Language returns the language identifier ("python", "php", "java").
	Language() string

	// Grammar returns the tree-sitter grammar, built once per extractor.
	Grammar() *sitter.Language

	// Namespace extracts the file's namespace/package declaration, if any.
	Namespace(root *sitter.Node, source []byte) string

	// ModuleDoc extracts module-level documentation, if any.
	ModuleDoc(root *sitter.Node, source []byte) string

	ExtractSymbols(root *sitter.Node, source []byte) []model.Symbol
	ExtractImports(root *sitter.Node, source []byte) []model.Import
	ExtractInheritances(root *sitter.Node, source []byte) []model.Inheritance
	ExtractCalls(root *sitter.Node, source []byte, symbols []model.Symbol, imports []model.Import) []model.Call
}

// Engine resolves a file's language, obtains a cached grammar parser and
// dispatches to the matching extractor.
//
// An Engine reuses one *sitter.Parser per language across calls (parser
// construction is not free) and is therefore single-writer: it must not be
// shared across concurrently executing goroutines. Batch callers give each
// worker its own Engine. The *sitter.Language grammars themselves are
// immutable and shared.
type Engine struct {
	extractors map[string]Extractor
	parsers    map[string]*sitter.Parser
}

// NewEngine creates an Engine with the given language backends registered.
// Pass the result of DefaultExtractors for the full language set.
func NewEngine(extractors ...Extractor) *Engine {
	e := &Engine{
		extractors: make(map[string]Extractor, len(extractors)),
		parsers:    make(map[string]*sitter.Parser, len(extractors)),
	}
	for _, ex := range extractors {
		e.extractors[ex.Language()] = ex
	}
	return e
}

// DefaultExtractors returns one extractor per supported language.
func DefaultExtractors() []Extractor {
	return []Extractor{
		NewPythonExtractor(),
		NewPhpExtractor(),
		NewJavaExtractor(),
	}
}

// Close releases the cached tree-sitter parsers.
func (e *Engine) Close() {
	for lang, p := range e.parsers {
		p.Close()
		delete(e.parsers, lang)
	}
}

// DetectLanguage maps a file extension to a language identifier. Returns
// empty string for unsupported extensions.
func DetectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return "python"
	case ".php":
		return "php"
	case ".java":
		return "java"
	default:
		return ""
	}
}

// Parse reads and parses one source file. It never returns an error: every
// failure mode lands in ParseResult.Error.
//
//   - Unsupported extension: Error set, nothing attempted.
//   - Unreadable file: Error set, all lists empty.
//   - Grammar error nodes or a panicking hook: Error set, partial lists kept.
func (e *Engine) Parse(ctx context.Context, path string) *model.ParseResult {
	language := DetectLanguage(path)
	if language == "" {
		result := model.NewParseResult(path, "")
		result.Error = fmt.Sprintf("unsupported language: %q has no registered extractor", filepath.Ext(path))
		return result
	}

	extractor, ok := e.extractors[language]
	if !ok {
		result := model.NewParseResult(path, language)
		result.Error = fmt.Sprintf("language %s is not enabled", language)
		return result
	}

	result := model.NewParseResult(path, language)

	source, err := os.ReadFile(path)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read source file: %v", err)
		return result
	}

	parser := e.parserFor(extractor)
	tree := parser.Parse(source, nil)
	if tree == nil {
		result.Error = fmt.Sprintf("tree-sitter produced no tree for %s", path)
		return result
	}
	defer tree.Close()

	root := tree.RootNode()
	result.LineCount = countLines(source)
	result.Namespace = extractor.Namespace(root, source)
	result.ModuleDoc = extractor.ModuleDoc(root, source)

	// Hooks run in fixed order: later hooks read earlier results. A panic in
	// one hook is recorded and extraction continues with what exists.
	runHook(result, "symbols", func() {
		result.Symbols = extractor.ExtractSymbols(root, source)
	})
	runHook(result, "imports", func() {
		result.Imports = extractor.ExtractImports(root, source)
	})
	runHook(result, "inheritances", func() {
		result.Inheritances = extractor.ExtractInheritances(root, source)
	})
	runHook(result, "calls", func() {
		result.Calls = extractor.ExtractCalls(root, source, result.Symbols, result.Imports)
	})

	if result.Error == "" && root.HasError() {
		result.Error = fmt.Sprintf("syntax errors in %s; extraction is partial", path)
	}

	normalize(result)
	return result
}

// parserFor returns the cached parser for the extractor's language,
// building it on first use.
func (e *Engine) parserFor(ex Extractor) *sitter.Parser {
	if p, ok := e.parsers[ex.Language()]; ok {
		return p
	}
	p := sitter.NewParser()
	p.SetLanguage(ex.Grammar())
	e.parsers[ex.Language()] = p
	return p
}

// runHook invokes one extraction hook, converting a panic into a recorded
// partial-parse error instead of unwinding past the contract boundary.
func runHook(result *model.ParseResult, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if result.Error == "" {
				result.Error = fmt.Sprintf("%s extraction failed: %v", name, r)
			}
		}
	}()
	fn()
}

// normalize guarantees the collection invariants of the model: lists are
// never nil, even when a hook panicked before producing output.
func normalize(result *model.ParseResult) {
	if result.Symbols == nil {
		result.Symbols = []model.Symbol{}
	}
	if result.Imports == nil {
		result.Imports = []model.Import{}
	}
	if result.Calls == nil {
		result.Calls = []model.Call{}
	}
	if result.Inheritances == nil {
		result.Inheritances = []model.Inheritance{}
	}
}

func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := 1
	for _, b := range source {
		if b == '\n' {
			n++
		}
	}
	if source[len(source)-1] == '\n' {
		n--
	}
	return n
}
