package lint

import (
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/sema"
)

// checkDuplicateUnderscoreParams: `fn f(a: u32, _a: u32)` - второй параметр
// совпадает с первым без префикса `_`.
func (a *analyzer) checkDuplicateUnderscoreParams(sig sema.Signature) {
	seen := make(map[string]struct{}, len(sig.Params))
	for _, p := range sig.Params {
		if p.Name == "" {
			continue
		}
		stripped := sema.NormalizeIdent(strings.TrimPrefix(p.Name, "_"))
		if _, dup := seen[stripped]; dup {
			a.report(diag.LintDuplicateUnderscoreParams, p.Node)
			continue
		}
		seen[stripped] = struct{}{}
	}
}

func (a *analyzer) unusedBindings(fn *sema.Function) {
	for _, b := range fn.UnusedBindings(a.tree) {
		a.report(diag.LintUnusedVariable, b.Node)
	}
}

func (a *analyzer) unusedImports(m *sema.Module) {
	for _, imp := range m.UnusedImports() {
		a.reportAt(diag.LintUnusedImport, imp.Use, a.tree.Span(imp.NameLeaf))
	}
}
