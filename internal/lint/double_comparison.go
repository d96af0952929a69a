package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// Сравнение - подмножество исходов {less, equal, greater}:
// `<` = {L}, `<=` = {L,E}, `!=` = {L,G} и т.д. `||` объединяет множества,
// `&&` пересекает. Пустое множество - всегда ложь, полное - всегда истина.
type outcomes uint8

const (
	outLess outcomes = 1 << iota
	outEqual
	outGreater

	outAll = outLess | outEqual | outGreater
)

var opOutcomes = map[token.Kind]outcomes{
	token.Lt:     outLess,
	token.LtEq:   outLess | outEqual,
	token.EqEq:   outEqual,
	token.GtEq:   outEqual | outGreater,
	token.Gt:     outGreater,
	token.BangEq: outLess | outGreater,
}

// mirror переворачивает сравнение при перестановке операндов: a < b ⇔ b > a.
func (o outcomes) mirror() outcomes {
	return o&outEqual | (o&outLess)<<2 | (o&outGreater)>>2
}

func (o outcomes) operator() token.Kind {
	for k, v := range opOutcomes {
		if v == o {
			return k
		}
	}
	return token.Invalid
}

// DoubleComparisonResult описывает найденную двойную проверку.
type DoubleComparisonResult struct {
	Code diag.Code
	// Lhs - левое сравнение; исправление переписывает его оператор в Op.
	Lhs ast.NodeID
	// Op - итоговый оператор; token.Invalid для всегда-ложных/истинных.
	Op token.Kind
}

// Fixable reports whether the comparison collapses to a single operator.
func (r DoubleComparisonResult) Fixable() bool {
	return r.Op != token.Invalid
}

// AnalyzeDoubleComparison разбирает `a OP1 b && a OP2 b` (или `||`).
// Операнды сравниваются по тексту без trivia; `a < b || b > a` тоже
// распознаётся.
func AnalyzeDoubleComparison(t *ast.Tree, bin ast.NodeID) (DoubleComparisonResult, bool) {
	lhs, op, rhs := t.BinaryParts(bin)
	join := t.TokenKind(op)
	if join != token.AndAnd && join != token.OrOr {
		return DoubleComparisonResult{}, false
	}
	l1, lop, r1 := t.BinaryParts(lhs)
	l2, rop, r2 := t.BinaryParts(rhs)
	lset, lok := opOutcomes[t.TokenKind(lop)]
	rset, rok := opOutcomes[t.TokenKind(rop)]
	if !lok || !rok {
		return DoubleComparisonResult{}, false
	}

	a1, b1 := t.TextWithoutTrivia(l1), t.TextWithoutTrivia(r1)
	a2, b2 := t.TextWithoutTrivia(l2), t.TextWithoutTrivia(r2)
	switch {
	case a1 == a2 && b1 == b2:
	case a1 == b2 && b1 == a2:
		rset = rset.mirror()
	default:
		return DoubleComparisonResult{}, false
	}

	joined := lset | rset
	if join == token.AndAnd {
		joined = lset & rset
	}
	res := DoubleComparisonResult{Lhs: lhs, Op: token.Invalid}
	switch {
	case joined == 0:
		res.Code = diag.LintDoubleComparisonContradicts
	case joined == outAll:
		res.Code = diag.LintDoubleComparisonAlwaysTrue
	case joined == lset || joined == rset:
		res.Code = diag.LintDoubleComparisonRedundant
		res.Op = joined.operator()
	default:
		res.Code = diag.LintDoubleComparisonSimplify
		res.Op = joined.operator()
	}
	return res, true
}
