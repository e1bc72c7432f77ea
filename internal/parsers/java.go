package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/symscope/symscope/internal/model"
)

// javaExtractor walks Java concrete syntax trees. Visibility comes from
// explicit modifiers (package-private maps to protected), the package
// declaration becomes the namespace field, and generics are preserved
// verbatim in signatures and parent references. Lambdas and anonymous
// classes never become symbols, but calls inside them are attributed to
// the enclosing method.
type javaExtractor struct {
	grammar *sitter.Language
}

// NewJavaExtractor creates the Java language backend.
func NewJavaExtractor() Extractor {
	return &javaExtractor{
		grammar: sitter.NewLanguage(java.Language()),
	}
}

func (j *javaExtractor) Language() string          { return "java" }
func (j *javaExtractor) Grammar() *sitter.Language { return j.grammar }

func (j *javaExtractor) Namespace(root *sitter.Node, source []byte) string {
	var namespace string
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() == "package_declaration" {
			nameNode := findChildByType(n, "scoped_identifier")
			if nameNode == nil {
				nameNode = findChildByType(n, "identifier")
			}
			namespace = nodeText(nameNode, source)
			return false
		}
		return true
	})
	return namespace
}

// ModuleDoc returns the file-level javadoc when one precedes the package
// declaration or the first type.
func (j *javaExtractor) ModuleDoc(root *sitter.Node, source []byte) string {
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Kind() == "block_comment" {
			text := nodeText(child, source)
			if strings.HasPrefix(text, "/**") {
				return cleanDocComment(text)
			}
			return ""
		}
		if child.Kind() == "line_comment" {
			continue
		}
		return ""
	}
	return ""
}

var javaTypeKinds = map[string]model.SymbolKind{
	"class_declaration":     model.KindClass,
	"interface_declaration": model.KindInterface,
	"enum_declaration":      model.KindEnum,
}

func (j *javaExtractor) ExtractSymbols(root *sitter.Node, source []byte) []model.Symbol {
	var symbols []model.Symbol
	walkTree(root, func(n *sitter.Node) bool {
		if kind, ok := javaTypeKinds[n.Kind()]; ok {
			j.extractType(n, source, "", kind, &symbols)
			return false
		}
		return true
	})
	return symbols
}

func (j *javaExtractor) extractType(node *sitter.Node, source []byte, scope string, kind model.SymbolKind, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)
	qualified := joinScope(scope, name)

	*out = append(*out, model.Symbol{
		Name:          name,
		QualifiedName: qualified,
		Kind:          kind,
		Signature:     j.typeSignature(node, source, name),
		Doc:           j.javadoc(node, source),
		Visibility:    javaVisibility(node),
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   j.extractAnnotations(node, source),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := uint(0); i < uint(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if childKind, ok := javaTypeKinds[child.Kind()]; ok {
			// Nested types are dot-qualified under the outer type.
			j.extractType(child, source, qualified, childKind, out)
			continue
		}
		switch child.Kind() {
		case "method_declaration", "constructor_declaration":
			j.extractMethod(child, source, qualified, out)
		case "enum_body_declarations":
			for k := uint(0); k < uint(child.NamedChildCount()); k++ {
				member := child.NamedChild(k)
				if member.Kind() == "method_declaration" || member.Kind() == "constructor_declaration" {
					j.extractMethod(member, source, qualified, out)
				}
			}
		}
	}
}

func (j *javaExtractor) extractMethod(node *sitter.Node, source []byte, scope string, out *[]model.Symbol) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeText(nameNode, source)

	*out = append(*out, model.Symbol{
		Name:          name,
		QualifiedName: joinScope(scope, name),
		Kind:          model.KindMethod,
		Signature:     j.methodSignature(node, source, name),
		Doc:           j.javadoc(node, source),
		Visibility:    javaVisibility(node),
		StartLine:     startLine(node),
		EndLine:       endLine(node),
		Annotations:   j.extractAnnotations(node, source),
	})
}

func (j *javaExtractor) typeSignature(node *sitter.Node, source []byte, name string) string {
	keyword := strings.TrimSuffix(node.Kind(), "_declaration")
	sig := keyword + " " + name
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		sig = keyword + " " + name + nodeText(typeParams, source)
	}
	if superclass := node.ChildByFieldName("superclass"); superclass != nil {
		sig += " " + nodeText(superclass, source)
	}
	if interfaces := node.ChildByFieldName("interfaces"); interfaces != nil {
		sig += " " + nodeText(interfaces, source)
	}
	if ext := findChildByType(node, "extends_interfaces"); ext != nil {
		sig += " " + nodeText(ext, source)
	}
	return sig
}

func (j *javaExtractor) methodSignature(node *sitter.Node, source []byte, name string) string {
	var sig strings.Builder
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		sig.WriteString(nodeText(typeParams, source))
		sig.WriteString(" ")
	}
	if ret := node.ChildByFieldName("type"); ret != nil {
		sig.WriteString(nodeText(ret, source))
		sig.WriteString(" ")
	}
	sig.WriteString(name)
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig.WriteString(nodeText(params, source))
	} else {
		sig.WriteString("()")
	}
	return sig.String()
}

// javadoc returns the /** */ comment immediately preceding the declaration.
func (j *javaExtractor) javadoc(node *sitter.Node, source []byte) string {
	doc := precedingComment(node, source, "block_comment")
	if strings.HasPrefix(doc, "/**") {
		return cleanDocComment(doc)
	}
	return ""
}

// extractAnnotations reads annotations from the declaration's modifiers,
// keeping argument key/value pairs for downstream route detection.
func (j *javaExtractor) extractAnnotations(node *sitter.Node, source []byte) []model.Annotation {
	modifiers := findChildByType(node, "modifiers")
	if modifiers == nil {
		return nil
	}
	var annotations []model.Annotation
	for i := uint(0); i < uint(modifiers.NamedChildCount()); i++ {
		child := modifiers.NamedChild(i)
		switch child.Kind() {
		case "marker_annotation":
			annotations = append(annotations, model.Annotation{
				Name: nodeText(child.ChildByFieldName("name"), source),
			})
		case "annotation":
			annotations = append(annotations, model.Annotation{
				Name: nodeText(child.ChildByFieldName("name"), source),
				Args: javaAnnotationArgs(child.ChildByFieldName("arguments"), source),
			})
		}
	}
	return annotations
}

func javaAnnotationArgs(args *sitter.Node, source []byte) map[string]string {
	if args == nil {
		return nil
	}
	kv := make(map[string]string)
	var positional []string
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Kind() == "element_value_pair" {
			key := nodeText(arg.ChildByFieldName("key"), source)
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

func (j *javaExtractor) ExtractImports(root *sitter.Node, source []byte) []model.Import {
	var imports []model.Import
	walkTree(root, func(n *sitter.Node) bool {
		if n.Kind() != "import_declaration" {
			return true
		}
		path := findChildByType(n, "scoped_identifier")
		if path == nil {
			path = findChildByType(n, "identifier")
		}
		if path == nil {
			return true
		}
		imp := model.Import{Line: startLine(n)}
		if findChildByType(n, "asterisk") != nil {
			// import foo.bar.* pulls in the whole package.
			imp.Module = nodeText(path, source)
			imp.WholeModule = true
		} else {
			full := nodeText(path, source)
			if idx := strings.LastIndex(full, "."); idx >= 0 {
				imp.Module = full[:idx]
				imp.Names = []string{full[idx+1:]}
			} else {
				imp.Module = full
				imp.WholeModule = true
			}
		}
		imports = append(imports, imp)
		return true
	})
	return imports
}

func (j *javaExtractor) ExtractInheritances(root *sitter.Node, source []byte) []model.Inheritance {
	var inheritances []model.Inheritance
	walkTree(root, func(n *sitter.Node) bool {
		if _, ok := javaTypeKinds[n.Kind()]; !ok {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		child := j.qualifiedTypeName(n, source)

		// extends Foo<T>, generics kept verbatim.
		if superclass := n.ChildByFieldName("superclass"); superclass != nil {
			for i := uint(0); i < uint(superclass.NamedChildCount()); i++ {
				inheritances = append(inheritances, model.Inheritance{
					Child:  child,
					Parent: nodeText(superclass.NamedChild(i), source),
				})
			}
		}
		// implements A, B
		if interfaces := n.ChildByFieldName("interfaces"); interfaces != nil {
			if list := findChildByType(interfaces, "type_list"); list != nil {
				for i := uint(0); i < uint(list.NamedChildCount()); i++ {
					inheritances = append(inheritances, model.Inheritance{
						Child:  child,
						Parent: nodeText(list.NamedChild(i), source),
					})
				}
			}
		}
		// interface Foo extends A, B
		if ext := findChildByType(n, "extends_interfaces"); ext != nil {
			if list := findChildByType(ext, "type_list"); list != nil {
				for i := uint(0); i < uint(list.NamedChildCount()); i++ {
					inheritances = append(inheritances, model.Inheritance{
						Child:  child,
						Parent: nodeText(list.NamedChild(i), source),
					})
				}
			}
		}
		return true
	})
	return inheritances
}

func (j *javaExtractor) ExtractCalls(root *sitter.Node, source []byte, symbols []model.Symbol, imports []model.Import) []model.Call {
	resolver := newCallResolver(symbols, imports)
	var calls []model.Call
	walkTree(root, func(n *sitter.Node) bool {
		var callee string
		switch n.Kind() {
		case "method_invocation":
			name := nodeText(n.ChildByFieldName("name"), source)
			object := n.ChildByFieldName("object")
			switch {
			case object == nil:
				// Unqualified call, usually a method on the same class.
				if cls := j.enclosingClass(n, source); cls != "" {
					callee = joinScope(cls, name)
				} else {
					callee = name
				}
			case object.Kind() == "this":
				if cls := j.enclosingClass(n, source); cls != "" {
					callee = joinScope(cls, name)
				} else {
					callee = name
				}
			default:
				callee = joinScope(resolver.resolve(nodeText(object, source)), name)
			}
		case "object_creation_expression":
			// new Foo(...) is a constructor call; type arguments dropped
			// so the callee matches a declared type name.
			typeName := nodeText(n.ChildByFieldName("type"), source)
			if idx := strings.Index(typeName, "<"); idx >= 0 {
				typeName = typeName[:idx]
			}
			callee = resolver.resolve(typeName)
		default:
			return true
		}
		if callee == "" {
			return true
		}
		calls = append(calls, model.Call{
			Caller: j.enclosingScope(n, source),
			Callee: callee,
			Line:   startLine(n),
		})
		return true
	})
	return calls
}

// enclosingScope walks up to the containing method or constructor,
// passing through lambdas and anonymous class bodies so their calls are
// attributed to the declared method.
func (j *javaExtractor) enclosingScope(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "method_declaration", "constructor_declaration":
			name := nodeText(parent.ChildByFieldName("name"), source)
			return joinScope(j.enclosingClass(parent, source), name)
		}
	}
	return ""
}

// enclosingClass returns the dot-qualified name of the nearest named type
// containing the node, skipping anonymous class bodies.
func (j *javaExtractor) enclosingClass(node *sitter.Node, source []byte) string {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if _, ok := javaTypeKinds[parent.Kind()]; ok {
			return j.qualifiedTypeName(parent, source)
		}
	}
	return ""
}

// qualifiedTypeName dot-qualifies nested types under their outer types.
func (j *javaExtractor) qualifiedTypeName(node *sitter.Node, source []byte) string {
	name := nodeText(node.ChildByFieldName("name"), source)
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if _, ok := javaTypeKinds[parent.Kind()]; ok {
			name = joinScope(nodeText(parent.ChildByFieldName("name"), source), name)
		}
	}
	return name
}

// javaVisibility reads explicit modifier tokens. Annotation nodes inside
// the modifiers are skipped so their argument text cannot masquerade as a
// keyword. Package-private declarations map to protected, the closest of
// the three levels.
func javaVisibility(node *sitter.Node) model.Visibility {
	modifiers := findChildByType(node, "modifiers")
	if modifiers == nil {
		return model.VisibilityProtected
	}
	for i := uint(0); i < uint(modifiers.ChildCount()); i++ {
		switch modifiers.Child(i).Kind() {
		case "private":
			return model.VisibilityPrivate
		case "public":
			return model.VisibilityPublic
		case "protected":
			return model.VisibilityProtected
		}
	}
	return model.VisibilityProtected
}
