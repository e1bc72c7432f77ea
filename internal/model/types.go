// Package model defines the language-neutral symbol model every extractor
// populates. Consumers (scoring, selection, serialization, graph export)
// operate on these shapes only and never branch per language.
package model

// SymbolKind classifies an extracted program element.
type SymbolKind string

const (
	KindClass     SymbolKind = "class"
	KindInterface SymbolKind = "interface"
	KindTrait     SymbolKind = "trait"
	KindEnum      SymbolKind = "enum"
	KindFunction  SymbolKind = "function"
	KindMethod    SymbolKind = "method"
)

// Visibility is the normalized access level of a symbol. Keyword languages
// (PHP, Java) map their modifiers directly; convention languages (Python)
// derive it from naming.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// Annotation is one structured decorator/annotation/attribute on a symbol.
// Languages without the concept leave the symbol's annotation list empty.
type Annotation struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args,omitempty"`
}

// Symbol is one addressable program declaration. QualifiedName joins nested
// scopes with "." regardless of the source language's own separator and is
// stable across repeated parses of unchanged content.
type Symbol struct {
	Name          string       `json:"name"`
	QualifiedName string       `json:"qualified_name"`
	Kind          SymbolKind   `json:"kind"`
	Signature     string       `json:"signature"`
	Doc           string       `json:"doc"`
	Visibility    Visibility   `json:"visibility"`
	StartLine     int          `json:"start_line"` // 1-based, inclusive
	EndLine       int          `json:"end_line"`   // 1-based, inclusive
	Annotations   []Annotation `json:"annotations,omitempty"`

	// Score is nil until the importance scorer has run.
	Score *float64 `json:"score,omitempty"`
}

// LineSpan returns the inclusive number of source lines the symbol covers.
func (s *Symbol) LineSpan() int {
	if s.EndLine < s.StartLine {
		return 1
	}
	return s.EndLine - s.StartLine + 1
}

// Import is one import/use/require statement.
type Import struct {
	// Module is the source module, namespace, or package being imported.
	Module string `json:"module"`
	// Names are the individually imported names, in source order. Empty for
	// whole-module imports.
	Names []string `json:"names,omitempty"`
	// Alias is the local alias, empty when the import is not aliased.
	Alias string `json:"alias,omitempty"`
	// WholeModule is true when the statement imports the module itself
	// rather than specific names.
	WholeModule bool `json:"whole_module"`
	Line        int  `json:"line"`
}

// Aliased reports whether the import binds a local alias.
func (i *Import) Aliased() bool {
	return i.Alias != ""
}

// Call is one call-site relationship. Caller is the qualified name of the
// enclosing symbol, empty for module-level code. Callee is best-effort
// resolved; when resolution fails the raw call text is retained rather than
// dropped.
type Call struct {
	Caller string `json:"caller,omitempty"`
	Callee string `json:"callee"`
	Line   int    `json:"line"`
}

// Inheritance is one parent/child relationship between type-like symbols.
// Parent may carry generic parameters verbatim (e.g. "Repository<User>").
// Multiple records may share a child.
type Inheritance struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// ParseResult is the aggregate extraction unit for one file. A failed parse
// still yields a ParseResult with Error set and whatever was collected
// before the failure.
type ParseResult struct {
	FilePath     string        `json:"file_path"`
	Language     string        `json:"language"`
	Namespace    string        `json:"namespace,omitempty"`
	ModuleDoc    string        `json:"module_doc,omitempty"`
	LineCount    int           `json:"line_count"`
	Symbols      []Symbol      `json:"symbols"`
	Imports      []Import      `json:"imports"`
	Calls        []Call        `json:"calls"`
	Inheritances []Inheritance `json:"inheritances"`
	Error        string        `json:"error,omitempty"`
}

// NewParseResult returns a ParseResult with all collections initialized, so
// downstream consumers and the JSON round trip never see nil lists.
func NewParseResult(filePath, language string) *ParseResult {
	return &ParseResult{
		FilePath:     filePath,
		Language:     language,
		Symbols:      []Symbol{},
		Imports:      []Import{},
		Calls:        []Call{},
		Inheritances: []Inheritance{},
	}
}

// Failed reports whether the parse recorded an error.
func (r *ParseResult) Failed() bool {
	return r.Error != ""
}
