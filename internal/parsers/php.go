package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/symscope/symscope/internal/model"
)

// phpExtractor walks PHP concrete syntax trees. Visibility comes from
// explicit keywords, the namespace declaration becomes the result's
// namespace field, and both docblocks and trailing inline comments are
// documentation candidates.
type phpExtractor struct {
	grammar *sitter.Language
}

// NewPhpExtractor creates the PHP language backend.
func NewPhpExtractor() Extractor {
	return &phpExtractor{
		grammar: sitter.NewLanguage(php.LanguagePHP()),
	}
}

func (p *phpExtractor) Language() string          { return "php" }
func (p *phpExtractor) Grammar() *sitter.Language { return p.grammar }

func (p *phpExtractor) Namespace(root *sitter.Node, source []byte) string {
	var namespace string
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() == "namespace_definition" {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				namespace = nodeText(nameNode, source)
			}
			return false
		}
		return true
	})
	return namespace
}

// ModuleDoc returns a file-level docblock: the first comment in the file
// when it precedes every declaration.
func (p *phpExtractor) ModuleDoc(root *sitter.Node, source []byte) string {
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Kind() {
		case "php_tag", "text":
			continue
		case "comment":
			text := nodeText(child, source)
			if strings.HasPrefix(text, "/**") {
				return cleanDocComment(text)
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

var phpTypeKinds = map[string]model.SymbolKind{
	"class_declaration":     model.KindClass,
	"interface_declaration": model.KindInterface,
	"trait_declaration":     model.KindTrait,
	"enum_declaration":      model.KindEnum,
}

func (p *phpExtractor) ExtractSymbols(root *sitter.Node, source []byte) []model.Symbol {
	var symbols []model.Symbol
	walkTree(root, func(n *sitter.Node) bool {
		if kind, ok := phpTypeKinds[n.Kind()]; ok {
			p.extractType(n, source, kind, &symbols)
			return false
		}
		if n.Kind() == "function_definition" {
			p.extractFunction(n, source, &symbols)
		}
		return true
	})
	return symbols
}

func (p *phpExtractor) extractType(node *sitter.Node, source []byte, kind model.SymbolKind, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)

	*out = append(*out, model.Symbol{
		Name:          name,
		QualifiedName: name,
		Kind:          kind,
		Signature:     p.typeSignature(node, source, name),
		Doc:           p.declarationDoc(node, source),
		Visibility:    model.VisibilityPublic,
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   p.extractAttributes(node, source),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := uint(0); i < uint(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Kind() == "method_declaration" {
			p.extractMethod(child, source, name, out)
		}
	}
}

func (p *phpExtractor) extractMethod(node *sitter.Node, source []byte, className string, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)

	*out = append(*out, model.Symbol{
		Name:          name,
		QualifiedName: joinScope(className, name),
		Kind:          model.KindMethod,
		Signature:     p.methodSignature(node, source, className, name),
		Doc:           p.declarationDoc(node, source),
		Visibility:    phpVisibility(node, source),
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   p.extractAttributes(node, source),
	})
}

func (p *phpExtractor) extractFunction(node *sitter.Node, source []byte, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)

	*out = append(*out, model.Symbol{
		Name:          name,
		QualifiedName: name,
		Kind:          model.KindFunction,
		Signature:     p.methodSignature(node, source, "", name),
		Doc:           p.declarationDoc(node, source),
		Visibility:    model.VisibilityPublic,
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   p.extractAttributes(node, source),
	})
}

// declarationDoc prefers a preceding docblock, falls back to a plain
// comment on the line directly above, then to a trailing inline comment on
// the declaration line. A comment trailing the previous declaration's
// closing line belongs to that declaration, not this one.
func (p *phpExtractor) declarationDoc(node *sitter.Node, source []byte) string {
	if prev := node.PrevNamedSibling(); prev != nil && prev.Kind() == "comment" {
		text := nodeText(prev, source)
		if strings.HasPrefix(text, "/**") {
			return cleanDocComment(text)
		}
		before := prev.PrevNamedSibling()
		trailsPrevious := before != nil && endLine(before) == startLine(prev)
		if !trailsPrevious && endLine(prev) == startLine(node)-1 {
			return cleanDocComment(text)
		}
	}
	if doc := trailingComment(node, source, "comment"); doc != "" {
		return cleanDocComment(doc)
	}
	return ""
}

func (p *phpExtractor) typeSignature(node *sitter.Node, source []byte, name string) string {
	keyword := strings.TrimSuffix(node.Kind(), "_declaration")
	sig := keyword + " " + name
	if base := findChildByType(node, "base_clause"); base != nil {
		sig += " " + nodeText(base, source)
	}
	if impl := findChildByType(node, "class_interface_clause"); impl != nil {
		sig += " " + nodeText(impl, source)
	}
	return sig
}

func (p *phpExtractor) methodSignature(node *sitter.Node, source []byte, className, name string) string {
	sig := name
	if className != "" {
		sig = className + "->" + name
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += ": " + nodeText(ret, source)
	}
	return sig
}

// extractAttributes converts PHP 8 #[...] attributes into annotations.
func (p *phpExtractor) extractAttributes(node *sitter.Node, source []byte) []model.Annotation {
	attrs := node.ChildByFieldName("attributes")
	if attrs == nil {
		attrs = findChildByType(node, "attribute_list")
	}
	if attrs == nil {
		return nil
	}
	var annotations []model.Annotation
	walkTree(attrs, func(n *sitter.Node) bool {
		if n.Kind() != "attribute" {
			return true
		}
		ann := model.Annotation{Name: nodeText(n.NamedChild(0), source)}
		if args := n.ChildByFieldName("parameters"); args != nil {
			ann.Args = phpArguments(args, source)
		} else if args := findChildByType(n, "arguments"); args != nil {
			ann.Args = phpArguments(args, source)
		}
		if ann.Name != "" {
			annotations = append(annotations, ann)
		}
		return false
	})
	return annotations
}

func phpArguments(args *sitter.Node, source []byte) map[string]string {
	kv := make(map[string]string)
	var positional []string
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Kind() != "argument" {
			continue
		}
		if nameNode := arg.ChildByFieldName("name"); nameNode != nil {
			value := strings.TrimSpace(strings.TrimPrefix(nodeText(arg, source), nodeText(nameNode, source)+":"))
			kv[nodeText(nameNode, source)] = value
		} else {
			positional = append(positional, nodeText(arg, source))
		}
	}
	if len(positional) > 0 {
		kv["value"] = strings.Join(positional, ", ")
	}
	if len(kv) == 0 {
		return nil
	}
	return kv
}

func (p *phpExtractor) ExtractImports(root *sitter.Node, source []byte) []model.Import {
	var imports []model.Import
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "namespace_use_declaration" {
			return true
		}
		for _, clause := range findChildrenByType(n, "namespace_use_clause") {
			target := clause.NamedChild(0)
			if target == nil {
				continue
			}
			imp := model.Import{
				Module:      nodeText(target, source),
				WholeModule: true,
				Line:        startLine(n),
			}
			if alias := clause.ChildByFieldName("alias"); alias != nil {
				imp.Alias = nodeText(alias, source)
			} else if aliasing := findChildByType(clause, "namespace_aliasing_clause"); aliasing != nil {
				if aliasName := aliasing.NamedChild(0); aliasName != nil {
					imp.Alias = nodeText(aliasName, source)
				}
			}
			imports = append(imports, imp)
		}
		return false
	})
	return imports
}

func (p *phpExtractor) ExtractInheritances(root *sitter.Node, source []byte) []model.Inheritance {
	var inheritances []model.Inheritance
	walkTree(root, func(n *sitter.Node) bool {
		if _, ok := phpTypeKinds[n.Kind()]; !ok {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		child := nodeText(nameNode, source)
		// extends, one or more parents (interfaces may extend several).
		if base := findChildByType(n, "base_clause"); base != nil {
			for i := uint(0); i < uint(base.NamedChildCount()); i++ {
				inheritances = append(inheritances, model.Inheritance{
					Child:  child,
					Parent: nodeText(base.NamedChild(i), source),
				})
			}
		}
		// implements, possibly multiple.
		if impl := findChildByType(n, "class_interface_clause"); impl != nil {
			for i := uint(0); i < uint(impl.NamedChildCount()); i++ {
				inheritances = append(inheritances, model.Inheritance{
					Child:  child,
					Parent: nodeText(impl.NamedChild(i), source),
				})
			}
		}
		return true
	})
	return inheritances
}

func (p *phpExtractor) ExtractCalls(root *sitter.Node, source []byte, symbols []model.Symbol, imports []model.Import) []model.Call {
	resolver := newCallResolver(symbols, nil)
	// PHP use statements bind the final path segment (or alias) locally.
	for _, imp := range imports {
		binding := imp.Alias
		if binding == "" {
			parts := strings.Split(imp.Module, "\\")
			binding = parts[len(parts)-1]
		}
		resolver.imported[binding] = imp.Module
	}

	var calls []model.Call
	walkTree(root, func(n *sitter.Node) bool {
		var callee string
		switch n.Kind() {
		case "function_call_expression":
			callee = resolver.resolve(nodeText(n.ChildByFieldName("function"), source))
		case "member_call_expression":
			object := nodeText(n.ChildByFieldName("object"), source)
			name := nodeText(n.ChildByFieldName("name"), source)
			if object == "$this" {
				if cls := p.enclosingClass(n, source); cls != "" {
					callee = joinScope(cls, name)
				}
			}
			if callee == "" {
				callee = object + "->" + name
			}
		case "scoped_call_expression":
			scope := nodeText(n.ChildByFieldName("scope"), source)
			name := nodeText(n.ChildByFieldName("name"), source)
			callee = joinScope(resolver.resolve(scope), name)
		case "object_creation_expression":
			// new Foo(...) is a constructor call.
			for i := uint(0); i < uint(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				if child.Kind() == "name" || child.Kind() == "qualified_name" {
					callee = resolver.resolve(nodeText(child, source))
					break
				}
			}
		default:
			return true
		}
		if callee == "" {
			return true
		}
		calls = append(calls, model.Call{
			Caller: p.enclosingScope(n, source),
			Callee: callee,
			Line:   startLine(n),
		})
		return true
	})
	return calls
}

// enclosingScope returns the qualified name of the function or method
// containing the node, empty for top-level code.
func (p *phpExtractor) enclosingScope(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "method_declaration":
			name := nodeText(parent.ChildByFieldName("name"), source)
			return joinScope(p.enclosingClass(parent, source), name)
		case "function_definition":
			return nodeText(parent.ChildByFieldName("name"), source)
		}
	}
	return ""
}

func (p *phpExtractor) enclosingClass(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if _, ok := phpTypeKinds[parent.Kind()]; ok {
			return nodeText(parent.ChildByFieldName("name"), source)
		}
	}
	return ""
}

// phpVisibility reads the explicit visibility modifier, defaulting to
// public as PHP does.
func phpVisibility(node *sitter.Node, source []byte) model.Visibility {
	mod := findChildByType(node, "visibility_modifier")
	if mod == nil {
		return model.VisibilityPublic
	}
	switch nodeText(mod, source) {
	case "private":
		return model.VisibilityPrivate
	case "protected":
		return model.VisibilityProtected
	default:
		return model.VisibilityPublic
	}
}
