package lexer

import (
	"unicode"
	"unicode/utf8"

	"cairolint/internal/token"
)

// scanIdentOrKeyword reads an identifier and classifies it: a lone '_' is
// Underscore, reserved words become keyword kinds. ASCII takes the byte path.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.src.off
	if r, size := lx.src.rune(); size == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.src.skipRune()
	for !lx.src.done() {
		if b := lx.src.peek(); b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.src.advance()
		} else if r, _ := lx.src.rune(); isIdentContinueRune(r) {
			lx.src.skipRune()
		} else {
			break
		}
	}

	sp := lx.src.spanFrom(start)
	tok := token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
	if tok.Text == "_" {
		tok.Kind = token.Underscore
	} else if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}

// Байтовые проверки покрывают ASCII; всё выше RuneSelf идёт через unicode.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentContinueRune(r rune) bool { return isIdentStartRune(r) || unicode.IsDigit(r) }

func isDec(b byte) bool { return b >= '0' && b <= '9' }
