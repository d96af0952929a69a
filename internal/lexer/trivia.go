package lexer

import (
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - /* ... */ -> TriviaBlockComment (с вложенностью; незакрытый - ошибка и обрезаем на EOF)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.src.done() {
		start := lx.src.off
		b := lx.src.peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for b2 := lx.src.peek(); b2 == ' ' || b2 == '\t' || b2 == '\r'; b2 = lx.src.peek() {
				lx.src.advance()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.src.peek() == '\n' {
				lx.src.advance()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue

		case b == '/' && lx.src.at(1) == '/':
			for !lx.src.done() && lx.src.peek() != '\n' {
				lx.src.advance()
			}
			lx.pushTrivia(token.TriviaLineComment, start)
			continue

		case b == '/' && lx.src.at(1) == '*':
			lx.scanBlockComment(start)
			continue
		}

		// нет больше trivia
		return
	}
}

func (lx *Lexer) scanBlockComment(start uint32) {
	lx.src.skip(2)
	depth := 1
	for !lx.src.done() && depth > 0 {
		b0, b1 := lx.src.peek(), lx.src.at(1)
		switch {
		case b0 == '/' && b1 == '*':
			lx.src.skip(2)
			depth++
		case b0 == '*' && b1 == '/':
			lx.src.skip(2)
			depth--
		default:
			lx.src.advance()
		}
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.src.spanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start uint32) {
	sp := lx.src.spanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}
