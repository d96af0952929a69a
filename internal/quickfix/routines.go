package quickfix

import (
	"bytes"
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/lint"
	"cairolint/internal/sema"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

// fixUnusedVariable prefixes the binding with `_`. A shorthand struct field
// has to be spelled out: `S { x }` → `S { x: _x }`.
func fixUnusedVariable(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	leaf, name := t.Identifier(node)
	if !leaf.IsValid() {
		violate("unused variable anchored on %s", t.Kind(node))
	}
	if !sema.IsShorthandField(t, node) {
		return Replacement{Span: t.Span(leaf), Text: "_" + name}, true
	}
	span := t.Span(node)
	// `ref`/`mut` перед именем переезжают за двоеточие
	prefix := t.File.Text(source.Span{File: span.File, Start: span.Start, End: t.Span(leaf).Start})
	return Replacement{Span: span, Text: name + ": " + prefix + "_" + name}, true
}

// fixDoubleParens снимает все лишние слои скобок. Один слой остаётся, если
// без него поменялся бы приоритет: `a * ((x + y))` → `a * (x + y)`.
func fixDoubleParens(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	if t.Kind(node) != ast.KindParen {
		violate("double parens anchored on %s", t.Kind(node))
	}
	inner, last := node, node
	for t.Kind(inner) == ast.KindParen {
		last = inner
		inner = t.ParenInner(inner)
	}
	if !inner.IsValid() {
		violate("empty parenthesized expression")
	}
	if needsGrouping(t, t.Parent(node), inner) {
		return Replacement{Span: t.Span(node), Text: t.TextWithoutTrivia(last)}, true
	}
	return Replacement{Span: t.Span(node), Text: t.TextWithoutTrivia(inner)}, true
}

// needsGrouping reports whether expr loses meaning without parentheses when
// placed as a child of parent.
func needsGrouping(t *ast.Tree, parent, expr ast.NodeID) bool {
	if isPrimary(t, expr) {
		return false
	}
	switch t.Kind(parent) {
	case ast.KindBinary, ast.KindUnary, ast.KindMethodCall, ast.KindField,
		ast.KindIndex, ast.KindTry, ast.KindCall:
		return true
	}
	return false
}

// isPrimary: выражение, которое не надо брать в скобки ни под унарным
// оператором, ни слева от `.`.
func isPrimary(t *ast.Tree, expr ast.NodeID) bool {
	switch t.Kind(expr) {
	case ast.KindPath, ast.KindLiteral, ast.KindParen, ast.KindTuple, ast.KindArray,
		ast.KindCall, ast.KindMethodCall, ast.KindField, ast.KindIndex, ast.KindTry,
		ast.KindMacroCall, ast.KindStructLit:
		return true
	}
	return false
}

// fixBreakUnit removes the unit value together with the whitespace before
// it, so `break ();`, `break  ();` and `break ( );` all become `break;`. A
// comment before `(` stays where it is.
func fixBreakUnit(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	if t.Kind(node) != ast.KindBreakStmt {
		violate("break unit anchored on %s", t.Kind(node))
	}
	unit := t.BreakValue(node)
	if !t.IsUnit(unit) {
		violate("break value is %s, not ()", t.Kind(unit))
	}
	sp := t.FullSpan(unit)
	if hasComment(t, unit) {
		sp = t.Span(unit)
	}
	return Replacement{Span: sp, Text: ""}, true
}

// fixBoolComparison:
//
//	x == true  → x     x != true  → !x
//	x == false → !x    x != false → x
//
// and the same with the literal on the left.
func fixBoolComparison(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	lhs, op, rhs := t.BinaryParts(node)
	opKind := t.TokenKind(op)
	if opKind != token.EqEq && opKind != token.BangEq {
		violate("bool comparison with operator %s", opKind)
	}
	other := lhs
	value, isLit := t.BoolLiteral(rhs)
	if !isLit {
		other = rhs
		value, isLit = t.BoolLiteral(lhs)
	}
	if !isLit {
		violate("bool comparison without a boolean literal")
	}

	text := t.TextWithoutTrivia(other)
	if (opKind == token.EqEq) != value {
		text = negate(t, other)
	}
	return Replacement{Span: t.Span(node), Text: text}, true
}

func negate(t *ast.Tree, expr ast.NodeID) string {
	if op, operand := t.UnaryParts(expr); t.TokenKind(op) == token.Bang {
		return t.TextWithoutTrivia(operand)
	}
	if isPrimary(t, expr) || t.Kind(expr) == ast.KindUnary {
		return "!" + t.TextWithoutTrivia(expr)
	}
	return "!(" + t.TextWithoutTrivia(expr) + ")"
}

// fixDoubleComparison keeps the left comparison with the merged operator:
// `a < b || a == b` → `a <= b`.
func fixDoubleComparison(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	res, ok := lint.AnalyzeDoubleComparison(t, node)
	if !ok {
		violate("double comparison anchored on a %s that does not compare the same operands", t.Kind(node))
	}
	if !res.Fixable() {
		return Replacement{}, false
	}
	_, op, _ := t.BinaryParts(res.Lhs)
	span, opSpan := t.Span(res.Lhs), t.Span(op)
	text := t.File.Text(source.Span{File: span.File, Start: span.Start, End: opSpan.Start}) +
		res.Op.String() +
		t.File.Text(source.Span{File: span.File, Start: opSpan.End, End: span.End})
	return Replacement{Span: t.Span(node), Text: text}, true
}

// fixDestructuringMatch rewrites a two-arm match into `if let`. Comments in
// front of the kept pattern move above the new line, at the match indentation.
func fixDestructuringMatch(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	scrutinee, arms := t.MatchParts(node)
	if len(arms) != 2 {
		violate("destructuring match with %d arms", len(arms))
	}
	var pats, bodies [2]ast.NodeID
	for i, arm := range arms {
		ps, body := t.ArmParts(arm)
		if len(ps) != 1 {
			violate("destructuring match arm with %d patterns", len(ps))
		}
		pats[i], bodies[i] = ps[0], body
	}

	kept := -1
	k0, k1 := t.Kind(pats[0]), t.Kind(pats[1])
	switch {
	case k0 == ast.KindPatWildcard && isDestructuringPattern(k1):
		kept = 1
	case isDestructuringPattern(k0) && k1 == ast.KindPatWildcard:
		kept = 0
	case k0 == ast.KindPatEnum && k1 == ast.KindPatEnum:
		kept = 1
		if lint.IsNoop(t, bodies[1]) {
			kept = 0
		}
	default:
		violate("destructuring match with %s and %s arms", k0, k1)
	}

	var sb strings.Builder
	indent := lineIndent(t.File, t.Span(node).Start)
	for _, tr := range t.LeadingTrivia(pats[kept]) {
		if tr.IsComment() {
			sb.WriteString(tr.Text)
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
	}
	sb.WriteString("if let ")
	sb.WriteString(t.TextWithoutTrivia(pats[kept]))
	sb.WriteString(" = ")
	sb.WriteString(t.TextWithoutTrivia(scrutinee))
	sb.WriteByte(' ')
	if body := bodies[kept]; t.Kind(body) == ast.KindBlock {
		sb.WriteString(t.TextWithoutTrivia(body))
	} else {
		sb.WriteString("{ ")
		sb.WriteString(t.TextWithoutTrivia(body))
		sb.WriteString(" }")
	}
	return Replacement{Span: t.Span(node), Text: sb.String()}, true
}

func isDestructuringPattern(k ast.Kind) bool {
	return k == ast.KindPatEnum || k == ast.KindPatStruct
}

// lineIndent returns the leading blanks of the line containing off.
func lineIndent(f *source.File, off uint32) string {
	content := f.Content
	if int(off) > len(content) {
		return ""
	}
	start := bytes.LastIndexByte(content[:off], '\n') + 1
	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	return string(content[start:end])
}

func fixCollapsibleElseIf(t *ast.Tree, node ast.NodeID) (Replacement, bool) {
	if t.Kind(node) != ast.KindElse {
		violate("collapsible else-if anchored on %s", t.Kind(node))
	}
	if stmts := t.BlockStatements(t.ElseBody(node)); len(stmts) == 1 && hasComment(t, stmts[0]) {
		// комментарий между `{` и `if` некуда перенести
		return Replacement{}, false
	}
	text := t.TextWithoutTrivia(node)
	out, err := CollapseElseIf(text)
	if err != nil {
		violate("%w", err)
	}
	if out == text {
		violate("else block does not start with a nested if")
	}
	return Replacement{Span: t.Span(node), Text: out}, true
}

func hasComment(t *ast.Tree, node ast.NodeID) bool {
	for _, tr := range t.LeadingTrivia(node) {
		if tr.IsComment() {
			return true
		}
	}
	return false
}
