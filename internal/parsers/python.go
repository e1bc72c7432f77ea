package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/symscope/symscope/internal/model"
)

// pythonExtractor walks Python concrete syntax trees. Visibility is
// inferred from naming conventions (leading underscore is non-public),
// decorators are captured as structured annotations and nested classes are
// dot-qualified.
type pythonExtractor struct {
	grammar *sitter.Language
}

// NewPythonExtractor creates the Python language backend.
func NewPythonExtractor() Extractor {
	return &pythonExtractor{
		grammar: sitter.NewLanguage(python.Language()),
	}
}

func (p *pythonExtractor) Language() string          { return "python" }
func (p *pythonExtractor) Grammar() *sitter.Language { return p.grammar }

// Namespace returns empty: Python has no in-file namespace declaration.
func (p *pythonExtractor) Namespace(root *sitter.Node, source []byte) string {
	return ""
}

// ModuleDoc extracts the module-level docstring.
func (p *pythonExtractor) ModuleDoc(root *sitter.Node, source []byte) string {
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		if child.Kind() == "expression_statement" {
			if str := findChildByType(child, "string"); str != nil {
				return stripStringQuotes(nodeText(str, source))
			}
		}
		break
	}
	return ""
}

func (p *pythonExtractor) ExtractSymbols(root *sitter.Node, source []byte) []model.Symbol {
	var symbols []model.Symbol
	p.collectSymbols(root, source, "", false, &symbols)
	return symbols
}

// collectSymbols walks declarations in source order. scope is the enclosing
// qualified name, inClass marks whether the direct parent scope is a class
// (functions there are methods).
func (p *pythonExtractor) collectSymbols(node *sitter.Node, source []byte, scope string, inClass bool, out *[]model.Symbol) {
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "decorated_definition":
			annotations := p.extractDecorators(child, source)
			if def := child.ChildByFieldName("definition"); def != nil {
				p.collectDefinition(def, source, scope, inClass, annotations, out)
			}
		case "class_definition", "function_definition":
			p.collectDefinition(child, source, scope, inClass, nil, out)
		case "if_statement", "try_statement", "with_statement":
			// Conditional module-level definitions still count.
			p.collectSymbols(child, source, scope, inClass, out)
		case "block":
			p.collectSymbols(child, source, scope, inClass, out)
		}
	}
}

func (p *pythonExtractor) collectDefinition(node *sitter.Node, source []byte, scope string, inClass bool, annotations []model.Annotation, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		// Malformed declaration: skip it, keep extracting.
		return
	}
	name := nodeText(nameNode, source)
	qualified := joinScope(scope, name)

	sym := model.Symbol{
		Name:          name,
		QualifiedName: qualified,
		Doc:           p.docstring(node, source),
		Visibility:    pythonVisibility(name),
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   annotations,
	}

	switch node.Kind() {
	case "class_definition":
		sym.Kind = model.KindClass
		sym.Signature = p.classSignature(node, source)
	case "function_definition":
		if inClass {
			sym.Kind = model.KindMethod
		} else {
			sym.Kind = model.KindFunction
		}
		sym.Signature = p.functionSignature(node, source)
	default:
		return
	}

	*out = append(*out, sym)

	if body := node.ChildByFieldName("body"); body != nil {
		p.collectSymbols(body, source, qualified, node.Kind() == "class_definition", out)
	}
}

// extractDecorators converts decorator nodes into structured annotations.
// Keyword arguments keep their names, positional arguments collapse under
// the "value" key.
func (p *pythonExtractor) extractDecorators(node *sitter.Node, source []byte) []model.Annotation {
	var annotations []model.Annotation
	for _, dec := range findChildrenByType(node, "decorator") {
		expr := dec.NamedChild(0)
		if expr == nil {
			continue
		}
		ann := model.Annotation{}
		if expr.Kind() == "call" {
			ann.Name = nodeText(expr.ChildByFieldName("function"), source)
			ann.Args = pythonCallArgs(expr.ChildByFieldName("arguments"), source)
		} else {
			ann.Name = nodeText(expr, source)
		}
		if ann.Name != "" {
			annotations = append(annotations, ann)
		}
	}
	return annotations
}

func pythonCallArgs(args *sitter.Node, source []byte) map[string]string {
	if args == nil {
		return nil
	}
	kv := make(map[string]string)
	var positional []string
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Kind() == "keyword_argument" {
			key := nodeText(arg.ChildByFieldName("name"), source)
			kv[key] = nodeText(arg.ChildByFieldName("value"), source)
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

// docstring returns the first string expression of a definition body.
func (p *pythonExtractor) docstring(node *sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	first := body.NamedChild(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	if str := findChildByType(first, "string"); str != nil {
		return stripStringQuotes(nodeText(str, source))
	}
	return ""
}

func (p *pythonExtractor) classSignature(node *sitter.Node, source []byte) string {
	sig := "class " + nodeText(node.ChildByFieldName("name"), source)
	if bases := node.ChildByFieldName("superclasses"); bases != nil {
		sig += nodeText(bases, source)
	}
	return sig
}

func (p *pythonExtractor) functionSignature(node *sitter.Node, source []byte) string {
	sig := "def " + nodeText(node.ChildByFieldName("name"), source)
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, source)
	}
	return sig
}

func (p *pythonExtractor) ExtractImports(root *sitter.Node, source []byte) []model.Import {
	var imports []model.Import
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			// import a.b, c.d as e
			for i := uint(0); i < uint(n.NamedChildCount()); i++ {
				child := n.NamedChild(i)
				switch child.Kind() {
				case "dotted_name":
					imports = append(imports, model.Import{
						Module:      nodeText(child, source),
						WholeModule: true,
						Line:        startLine(n),
					})
				case "aliased_import":
					imports = append(imports, model.Import{
						Module:      nodeText(child.ChildByFieldName("name"), source),
						Alias:       nodeText(child.ChildByFieldName("alias"), source),
						WholeModule: true,
						Line:        startLine(n),
					})
				}
			}
			return false
		case "import_from_statement":
			imp := model.Import{
				Module: nodeText(n.ChildByFieldName("module_name"), source),
				Line:   startLine(n),
			}
			if findChildByType(n, "wildcard_import") != nil {
				imp.WholeModule = true
			} else {
				moduleNode := n.ChildByFieldName("module_name")
				for i := uint(0); i < uint(n.NamedChildCount()); i++ {
					child := n.NamedChild(i)
					if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
						continue
					}
					switch child.Kind() {
					case "dotted_name":
						imp.Names = append(imp.Names, nodeText(child, source))
					case "aliased_import":
						imp.Names = append(imp.Names, nodeText(child.ChildByFieldName("name"), source))
						imp.Alias = nodeText(child.ChildByFieldName("alias"), source)
					}
				}
			}
			imports = append(imports, imp)
			return false
		}
		return true
	})
	return imports
}

func (p *pythonExtractor) ExtractInheritances(root *sitter.Node, source []byte) []model.Inheritance {
	var inheritances []model.Inheritance
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "class_definition" {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		bases := n.ChildByFieldName("superclasses")
		if nameNode == nil || bases == nil {
			return true
		}
		child := joinScope(p.scopeOf(n, source), nodeText(nameNode, source))
		for i := uint(0); i < uint(bases.NamedChildCount()); i++ {
			base := bases.NamedChild(i)
			// metaclass=... and other keyword arguments are not parents.
			if base.Kind() == "keyword_argument" || base.Kind() == "comment" {
				continue
			}
			// Generic bases like Repository[User] are kept verbatim.
			inheritances = append(inheritances, model.Inheritance{
				Child:  child,
				Parent: nodeText(base, source),
			})
		}
		return true
	})
	return inheritances
}

func (p *pythonExtractor) ExtractCalls(root *sitter.Node, source []byte, symbols []model.Symbol, imports []model.Import) []model.Call {
	resolver := newCallResolver(symbols, imports)
	var calls []model.Call
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "call" {
			return true
		}
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return true
		}
		caller := p.enclosingScope(n, source)
		callee := nodeText(fn, source)

		// self.method() resolves against the enclosing class.
		if rest, ok := strings.CutPrefix(callee, "self."); ok {
			if cls := p.enclosingClass(n, source); cls != "" {
				callee = joinScope(cls, rest)
			}
		} else {
			callee = resolver.resolve(callee)
		}

		calls = append(calls, model.Call{
			Caller: caller,
			Callee: callee,
			Line:   startLine(n),
		})
		return true
	})
	return calls
}

// scopeOf returns the qualified name of the scope enclosing node, walking
// ancestor definitions outward.
func (p *pythonExtractor) scopeOf(node *sitter.Node, source []byte) string {
	var parts []string
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		kind := parent.Kind()
		if kind != "class_definition" && kind != "function_definition" {
			continue
		}
		if nameNode := parent.ChildByFieldName("name"); nameNode != nil {
			parts = append([]string{nodeText(nameNode, source)}, parts...)
		}
	}
	return strings.Join(parts, ".")
}

// enclosingScope is scopeOf plus the node's own enclosing definition.
func (p *pythonExtractor) enclosingScope(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		kind := parent.Kind()
		if kind != "class_definition" && kind != "function_definition" {
			continue
		}
		if nameNode := parent.ChildByFieldName("name"); nameNode != nil {
			return joinScope(p.scopeOf(parent, source), nodeText(nameNode, source))
		}
	}
	return ""
}

// enclosingClass returns the qualified name of the nearest enclosing class.
func (p *pythonExtractor) enclosingClass(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Kind() != "class_definition" {
			continue
		}
		if nameNode := parent.ChildByFieldName("name"); nameNode != nil {
			return joinScope(p.scopeOf(parent, source), nodeText(nameNode, source))
		}
	}
	return ""
}

// pythonVisibility applies the naming convention: leading underscore means
// non-public, everything else is public.
func pythonVisibility(name string) model.Visibility {
	if strings.HasPrefix(name, "_") {
		return model.VisibilityPrivate
	}
	return model.VisibilityPublic
}
