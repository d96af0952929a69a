package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// checkDoubleParens: `((x))`, `((a, b))`. Репортится только внешняя пара,
// внутренние слои исправляются вместе с ней.
func (a *analyzer) checkDoubleParens(paren ast.NodeID) {
	t := a.tree
	if t.Kind(t.Parent(paren)) == ast.KindParen {
		return
	}
	switch t.Kind(t.ParenInner(paren)) {
	case ast.KindParen, ast.KindTuple:
		a.report(diag.LintDoubleParens, paren)
	}
}

// checkBreakUnit: `break ();`
func (a *analyzer) checkBreakUnit(stmt ast.NodeID) {
	if a.tree.IsUnit(a.tree.BreakValue(stmt)) {
		a.report(diag.LintBreakUnit, stmt)
	}
}

// checkBoolComparison: `x == true`, `false != y`.
func (a *analyzer) checkBoolComparison(bin ast.NodeID) {
	t := a.tree
	lhs, op, rhs := t.BinaryParts(bin)
	switch t.TokenKind(op) {
	case token.EqEq, token.BangEq:
	default:
		return
	}
	_, lok := t.BoolLiteral(lhs)
	_, rok := t.BoolLiteral(rhs)
	if lok || rok {
		a.report(diag.LintBoolComparison, bin)
	}
}

func (a *analyzer) checkDoubleComparison(bin ast.NodeID) {
	if dc, ok := AnalyzeDoubleComparison(a.tree, bin); ok {
		a.report(dc.Code, bin)
	}
}

// checkCollapsibleElseIf: `else { if ... }`, где if - единственный оператор
// блока и не завершён `;`.
func (a *analyzer) checkCollapsibleElseIf(elseClause ast.NodeID) {
	t := a.tree
	body := t.ElseBody(elseClause)
	if t.Kind(body) != ast.KindBlock {
		return // уже else if
	}
	stmts := t.BlockStatements(body)
	if len(stmts) != 1 || t.Kind(stmts[0]) != ast.KindExprStmt || len(t.Children(stmts[0])) != 1 {
		return
	}
	if t.Kind(t.StatementExpr(stmts[0])) == ast.KindIf {
		a.report(diag.LintCollapsibleElseIf, elseClause)
	}
}

// checkEquatableIfLet: `if let 1 = x`, `if let Color::Red = c`.
func (a *analyzer) checkEquatableIfLet(ifExpr ast.NodeID) {
	t := a.tree
	cond, _, _ := t.IfParts(ifExpr)
	pats, _ := t.LetCondParts(cond)
	if len(pats) != 1 {
		return
	}
	switch t.Kind(pats[0]) {
	case ast.KindPatLiteral:
		a.report(diag.LintEquatableIfLet, ifExpr)
	case ast.KindPatEnum:
		if len(t.PatternArgs(pats[0])) == 0 {
			a.report(diag.LintEquatableIfLet, ifExpr)
		}
	}
}
