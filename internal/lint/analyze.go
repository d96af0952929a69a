package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/sema"
	"cairolint/internal/source"
)

type Options struct {
	Selection Selection
}

type analyzer struct {
	tree     *ast.Tree
	reporter diag.Reporter
	sel      Selection
}

// Analyze прогоняет все детекторы по модулю и его inline-подмодулям.
// Детекторы не падают: узел неожиданной формы просто пропускается.
func Analyze(m *sema.Module, opts Options) []diag.Diagnostic {
	bag := diag.NewBag(0)
	AnalyzeTo(m, diag.NewDedupReporter(&diag.BagReporter{Bag: bag}), opts)
	return bag.Items()
}

// AnalyzeTo - то же, что Analyze, но пишет в произвольный Reporter.
func AnalyzeTo(m *sema.Module, r diag.Reporter, opts Options) {
	if m == nil || m.Tree == nil {
		return
	}
	a := analyzer{tree: m.Tree, reporter: r, sel: opts.Selection}
	a.module(m)
}

func (a *analyzer) module(m *sema.Module) {
	for _, it := range m.Items {
		switch it.Kind {
		case sema.ItemConstant:
			a.descendants(it.Node)
		case sema.ItemFreeFunction:
			if it.Function == nil {
				continue
			}
			a.function(it.Function)
			a.descendants(it.Node)
		case sema.ItemImpl:
			for _, fn := range it.Functions {
				a.function(fn)
			}
			a.descendants(it.Node)
		case sema.ItemModule:
			if it.Module != nil {
				a.module(it.Module)
			}
		}
	}
	a.unusedImports(m)
}

// function - проверки сигнатуры и выражений тела.
func (a *analyzer) function(fn *sema.Function) {
	a.checkDuplicateUnderscoreParams(fn.Signature)
	for _, e := range fn.Exprs {
		switch a.tree.Kind(e) {
		case ast.KindMatch:
			a.checkSingleMatch(e)
		case ast.KindLoop:
			a.checkLoopPopFront(e)
		}
	}
	a.unusedBindings(fn)
}

// descendants - синтаксические проверки по всем потомкам item.
func (a *analyzer) descendants(root ast.NodeID) {
	a.tree.Walk(root, func(n ast.NodeID) bool {
		switch a.tree.Kind(n) {
		case ast.KindParen:
			a.checkDoubleParens(n)
		case ast.KindBreakStmt:
			a.checkBreakUnit(n)
		case ast.KindIf:
			a.checkEquatableIfLet(n)
		case ast.KindBinary:
			a.checkBoolComparison(n)
			a.checkDoubleComparison(n)
		case ast.KindElse:
			a.checkCollapsibleElseIf(n)
		}
		return true
	})
}

func (a *analyzer) report(code diag.Code, node ast.NodeID) {
	a.reportAt(code, node, a.tree.Span(node))
}

// reportAt репортит с якорем на node и основным диапазоном primary.
func (a *analyzer) reportAt(code diag.Code, node ast.NodeID, primary source.Span) {
	if !a.sel.Enabled(code) || a.reporter == nil {
		return
	}
	rule, ok := byCode[code]
	if !ok {
		return
	}
	d := diag.New(rule.Severity, rule.Code, primary, rule.Message).WithAnchor(a.tree.Anchor(node))
	a.reporter.Report(d)
}
