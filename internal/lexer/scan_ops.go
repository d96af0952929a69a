package lexer

import (
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

var twoByteOps = [...]struct {
	a, b byte
	kind token.Kind
}{
	{'.', '.', token.DotDot},
	{':', ':', token.ColonColon},
	{'-', '>', token.Arrow},
	{'=', '>', token.FatArrow},
	{'&', '&', token.AndAnd},
	{'|', '|', token.OrOr},
	{'=', '=', token.EqEq},
	{'!', '=', token.BangEq},
	{'<', '=', token.LtEq},
	{'>', '=', token.GtEq},
	{'+', '=', token.PlusAssign},
	{'-', '=', token.MinusAssign},
	{'*', '=', token.StarAssign},
	{'/', '=', token.SlashAssign},
	{'%', '=', token.PercentAssign},
}

var oneByteOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
	'#': token.Hash,
	'$': token.Dollar,
}

// Жадность: сначала 2-символьные, затем 1-символьные.
// '>>' не склеиваем, чтобы Array<Array<u8>> закрывался двумя Gt.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.src.off
	emit := func(k token.Kind) token.Token {
		sp := lx.src.spanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range twoByteOps {
		if lx.src.acceptPair(op.a, op.b) {
			return emit(op.kind)
		}
	}

	if k, ok := oneByteOps[lx.src.peek()]; ok {
		lx.src.advance()
		return emit(k)
	}

	// неизвестный символ; съедаем руну целиком
	lx.src.skipRune()
	if lx.src.off == start {
		lx.src.advance()
	}
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}
