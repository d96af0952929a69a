package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
)

// checkSingleMatch ищет match из двух рук, где одна рука - no-op.
//
//	match x { Option::Some(v) => f(v), _ => () }      destructuring
//	match x { 1 => f(), _ => {} }                     equality
//	match x { Option::Some(v) => f(v), Option::None => {} }
func (a *analyzer) checkSingleMatch(match ast.NodeID) {
	if code, ok := singleMatchCode(a.tree, match); ok {
		a.report(code, match)
	}
}

func singleMatchCode(t *ast.Tree, match ast.NodeID) (diag.Code, bool) {
	_, arms := t.MatchParts(match)
	if len(arms) != 2 {
		return 0, false
	}
	var pats, bodies [2]ast.NodeID
	for i, arm := range arms {
		ps, body := t.ArmParts(arm)
		if len(ps) != 1 {
			return 0, false
		}
		pats[i], bodies[i] = ps[0], body
	}

	for i := range pats {
		if t.Kind(pats[i]) != ast.KindPatWildcard || !IsNoop(t, bodies[i]) {
			continue
		}
		other := pats[1-i]
		switch {
		case destructures(t, other):
			return diag.LintDestructuringMatch, true
		case t.Kind(other) == ast.KindPatLiteral || t.Kind(other) == ast.KindPatEnum:
			return diag.LintMatchForEquality, true
		}
		return 0, false
	}

	if t.Kind(pats[0]) == ast.KindPatEnum && t.Kind(pats[1]) == ast.KindPatEnum &&
		(IsNoop(t, bodies[0]) || IsNoop(t, bodies[1])) {
		return diag.LintDestructuringMatch, true
	}
	return 0, false
}

// destructures: паттерн с данными - `E::A(x)` или `S { .. }`.
func destructures(t *ast.Tree, pat ast.NodeID) bool {
	switch t.Kind(pat) {
	case ast.KindPatStruct:
		return true
	case ast.KindPatEnum:
		return len(t.PatternArgs(pat)) > 0
	}
	return false
}

// IsNoop reports whether expr does nothing: `()`, `{}` or `{ () }`.
func IsNoop(t *ast.Tree, expr ast.NodeID) bool {
	switch t.Kind(expr) {
	case ast.KindTuple:
		return t.IsUnit(expr)
	case ast.KindBlock:
		stmts := t.BlockStatements(expr)
		if len(stmts) == 0 {
			return true
		}
		if len(stmts) == 1 && len(t.Children(stmts[0])) == 1 {
			return t.IsUnit(t.StatementExpr(stmts[0]))
		}
	}
	return false
}
