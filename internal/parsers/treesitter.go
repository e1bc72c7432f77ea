package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// startLine and endLine convert tree-sitter rows to 1-based line numbers.
func startLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

func endLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// walkTree recursively walks a tree and calls the visitor for each node.
// Returning false from the visitor stops descent into that subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		walkTree(node.Child(i), visitor)
	}
}

// findChildByType finds the first direct child with the given kind.
func findChildByType(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all direct children with the given kind.
func findChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// joinScope builds a qualified name from an enclosing scope and a local
// name. The unified model always joins with "." regardless of the source
// language's own separator.
func joinScope(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

// precedingComment returns the text of a comment node (or a run of comment
// nodes) immediately preceding the declaration, used by the PHP and Java
// extractors for doc comments. Returns empty when there is none.
func precedingComment(node *sitter.Node, source []byte, commentKinds ...string) string {
	prev := node.PrevNamedSibling()
	if prev == nil {
		return ""
	}
	for _, kind := range commentKinds {
		if prev.Kind() == kind {
			return nodeText(prev, source)
		}
	}
	return ""
}

// trailingComment returns a comment sitting on the same line after the
// declaration's first line, or empty.
func trailingComment(node *sitter.Node, source []byte, commentKind string) string {
	next := node.NextNamedSibling()
	if next == nil || next.Kind() != commentKind {
		return ""
	}
	if startLine(next) != startLine(node) && startLine(next) != endLine(node) {
		return ""
	}
	return nodeText(next, source)
}

// cleanDocComment strips comment delimiters and per-line decoration from a
// raw documentation comment, preserving the structured content.
func cleanDocComment(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(raw, "/**"):
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimSuffix(raw, "*/")
	case strings.HasPrefix(raw, "/*"):
		raw = strings.TrimPrefix(raw, "/*")
		raw = strings.TrimSuffix(raw, "*/")
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "#")
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// stripStringQuotes removes surrounding string quotes (including Python
// triple quotes and prefixes) from a docstring literal.
func stripStringQuotes(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, prefix := range []string{"r", "b", "u", "f", "R", "B", "U", "F"} {
		if strings.HasPrefix(raw, prefix+`"`) || strings.HasPrefix(raw, prefix+`'`) {
			raw = raw[1:]
			break
		}
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return strings.TrimSpace(raw[len(q) : len(raw)-len(q)])
		}
	}
	return raw
}
