package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// checkLoopPopFront:
//
//	loop {
//	    match span.pop_front() {
//	        Option::Some(x) => ...,
//	        Option::None => { break; },
//	    }
//	}
//
// и та же форма через `if let Option::Some(x) = span.pop_front() { } else { break; }`.
func (a *analyzer) checkLoopPopFront(loop ast.NodeID) {
	t := a.tree
	stmts := t.BlockStatements(t.LoopBody(loop))
	if len(stmts) != 1 {
		return
	}
	expr := t.StatementExpr(stmts[0])
	switch t.Kind(expr) {
	case ast.KindMatch:
		scrutinee, arms := t.MatchParts(expr)
		if !isPopFront(t, scrutinee) || len(arms) != 2 {
			return
		}
		var some, none bool
		for _, arm := range arms {
			pats, body := t.ArmParts(arm)
			if len(pats) != 1 {
				return
			}
			switch variantName(t, pats[0]) {
			case "Some":
				some = true
			case "None":
				none = isBreakOnly(t, body)
			}
		}
		if some && none {
			a.report(diag.LintLoopPopFront, loop)
		}
	case ast.KindIf:
		cond, _, elseClause := t.IfParts(expr)
		pats, value := t.LetCondParts(cond)
		if len(pats) != 1 || variantName(t, pats[0]) != "Some" || !isPopFront(t, value) {
			return
		}
		if isBreakOnly(t, t.ElseBody(elseClause)) {
			a.report(diag.LintLoopPopFront, loop)
		}
	}
}

func isPopFront(t *ast.Tree, expr ast.NodeID) bool {
	_, name, args := t.MethodCallParts(expr)
	tok, ok := t.Token(name)
	return ok && tok.Kind == token.Ident && tok.Text == "pop_front" && len(t.Args(args)) == 0
}

// variantName - последний сегмент пути enum-паттерна.
func variantName(t *ast.Tree, pat ast.NodeID) string {
	segs := t.PathSegments(t.PatternPath(pat))
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// isBreakOnly: `{ break; }` без значения.
func isBreakOnly(t *ast.Tree, expr ast.NodeID) bool {
	stmts := t.BlockStatements(expr)
	return len(stmts) == 1 && t.Kind(stmts[0]) == ast.KindBreakStmt && !t.BreakValue(stmts[0]).IsValid()
}
