package parser

import "cairolint/internal/token"

// binding - сила связывания бинарного оператора; больше связывает крепче.
type binding struct {
	power int
	right bool // правоассоциативный (присваивания)
}

// binaryOps lists levels from loosest to tightest; the level index plus one
// is the binding power.
var binaryOps = [...]struct {
	right bool
	ops   []token.Kind
}{
	{true, []token.Kind{token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign}},
	{false, []token.Kind{token.DotDot}},
	{false, []token.Kind{token.OrOr}},
	{false, []token.Kind{token.AndAnd}},
	{false, []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq}},
	{false, []token.Kind{token.Pipe}},
	{false, []token.Kind{token.Caret}},
	{false, []token.Kind{token.Amp}},
	{false, []token.Kind{token.Plus, token.Minus}},
	{false, []token.Kind{token.Star, token.Slash, token.Percent}},
}

var bindings = func() map[token.Kind]binding {
	m := make(map[token.Kind]binding)
	for level, row := range binaryOps {
		for _, k := range row.ops {
			m[k] = binding{power: level + 1, right: row.right}
		}
	}
	return m
}()

// binaryPrec returns -1 for tokens that are not binary operators.
func binaryPrec(kind token.Kind) (int, bool) {
	b, ok := bindings[kind]
	if !ok {
		return -1, false
	}
	return b.power, b.right
}

var prefixOps = map[token.Kind]bool{
	token.Minus: true, token.Bang: true, token.Tilde: true,
	token.At: true, token.Star: true, token.KwRef: true,
}

func isUnaryOp(kind token.Kind) bool { return prefixOps[kind] }
