package lexer

import (
	"unicode/utf8"

	"cairolint/internal/source"
	"cairolint/internal/token"
)

// Lexer turns one file into significant tokens. Comments and whitespace are
// not tokens: they ride along as the Leading trivia of the next token, and
// whatever trails the last token is attached to EOF.
type Lexer struct {
	file *source.File
	opts Options
	src  cursor
	hold []token.Trivia // trivia, собранные до следующего токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, opts: opts, src: newCursor(file)}
}

// Next returns the next token with its leading trivia. Once the input is
// exhausted it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	lx.collectLeadingTrivia()
	tok := lx.scan()
	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) scan() token.Token {
	if lx.src.done() {
		return token.Token{Kind: token.EOF, Span: lx.src.spanFrom(lx.src.off)}
	}
	switch ch := lx.src.peek(); {
	case ch >= utf8.RuneSelf || isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString('"', token.StringLit)
	case ch == '\'':
		return lx.scanString('\'', token.ShortStringLit)
	}
	return lx.scanOperatorOrPunct()
}

// All lexes the rest of the file; the last token is always EOF.
func (lx *Lexer) All() []token.Token {
	toks := make([]token.Token, 0, len(lx.file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
