package parsers

import (
	"strings"

	"github.com/symscope/symscope/internal/model"
)

// callResolver resolves callee names best-effort against the symbols and
// imports already extracted from the file. Resolution never fails: an
// unknown callee is returned as its raw text.
type callResolver struct {
	// locals maps a symbol's bare name to its qualified name. Ambiguous
	// bare names (same method name on two classes) keep the first
	// occurrence, matching source-appearance order.
	locals map[string]string
	// imported maps an imported name or alias to its module-qualified form.
	imported map[string]string
	// modules maps a whole-module import's local binding to the module.
	modules map[string]string
}

func newCallResolver(symbols []model.Symbol, imports []model.Import) *callResolver {
	r := &callResolver{
		locals:   make(map[string]string, len(symbols)),
		imported: make(map[string]string),
		modules:  make(map[string]string),
	}
	for _, sym := range symbols {
		if _, ok := r.locals[sym.Name]; !ok {
			r.locals[sym.Name] = sym.QualifiedName
		}
	}
	for _, imp := range imports {
		if imp.WholeModule {
			binding := imp.Module
			if imp.Alias != "" {
				binding = imp.Alias
			}
			r.modules[binding] = imp.Module
			continue
		}
		for _, name := range imp.Names {
			r.imported[name] = imp.Module + "." + name
		}
		if imp.Alias != "" && len(imp.Names) > 0 {
			r.imported[imp.Alias] = imp.Module + "." + imp.Names[len(imp.Names)-1]
		}
	}
	return r
}

// resolve maps a raw callee expression to its best-known qualified form.
func (r *callResolver) resolve(raw string) string {
	if raw == "" {
		return raw
	}
	if qualified, ok := r.locals[raw]; ok {
		return qualified
	}
	if qualified, ok := r.imported[raw]; ok {
		return qualified
	}
	head, rest, found := strings.Cut(raw, ".")
	if found {
		if module, ok := r.modules[head]; ok {
			return module + "." + rest
		}
		if qualified, ok := r.imported[head]; ok {
			return qualified + "." + rest
		}
	}
	return raw
}
