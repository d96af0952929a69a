package lexer

import (
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// Cairo: 123, 1_000, 0x2a, 0o17, 0b101, с необязательным суффиксом типа
// (1_u8, 0x10_felt252, 5u32). Дробей нет.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.src.off

	digit := isDec
	if lx.src.peek() == '0' {
		radix := true
		switch lx.src.at(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		default:
			radix = false
		}
		if radix {
			lx.src.skip(2)
			if !digit(lx.src.peek()) {
				sp := lx.src.spanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digits after radix prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
		}
	}

	for b := lx.src.peek(); digit(b) || b == '_'; b = lx.src.peek() {
		lx.src.advance()
	}
	// суффикс типа
	for b := lx.src.peek(); !lx.src.done() && isIdentContinueByte(b); b = lx.src.peek() {
		lx.src.advance()
	}

	sp := lx.src.spanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
