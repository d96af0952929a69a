package lexer

import (
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// scanString сканирует "..." (ByteArray) и '...' (short string felt252).
// Escape-последовательности не валидируются: съедаем '\' и следующий байт.
func (lx *Lexer) scanString(quote byte, kind token.Kind) token.Token {
	start := lx.src.off
	lx.src.advance() // открывающая кавычка
	for !lx.src.done() {
		b := lx.src.peek()
		switch b {
		case quote:
			lx.src.advance()
			sp := lx.src.spanFrom(start)
			// суффикс типа у short string: 'abc'_u128
			for !lx.src.done() && isIdentContinueByte(lx.src.peek()) {
				lx.src.advance()
			}
			sp = lx.src.spanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.src.advance()
			if lx.src.done() {
				break
			}
			lx.src.advance()
		case '\n':
			sp := lx.src.spanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		default:
			lx.src.advance()
		}
	}
	sp := lx.src.spanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
