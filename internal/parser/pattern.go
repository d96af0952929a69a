package parser

import (
	"unicode"
	"unicode/utf8"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parsePattern разбирает один паттерн без альтернатив.
//
//	_             PatWildcard
//	1, 'a', true  PatLiteral
//	ref mut x     PatIdent
//	(a, b)        PatTuple
//	A::B(p, q)    PatEnum
//	S { a, b: p } PatStruct
func (p *Parser) parsePattern() ast.NodeID {
	switch p.peek() {
	case token.Underscore:
		return p.node(ast.KindPatWildcard, p.bump())
	case token.IntLit, token.StringLit, token.ShortStringLit, token.KwTrue, token.KwFalse:
		return p.node(ast.KindPatLiteral, p.bump())
	case token.Minus:
		minus := p.bump()
		return p.node(ast.KindPatLiteral, minus, p.expect(token.IntLit, diag.SynExpectPattern, "expected number after '-' in pattern"))
	case token.KwRef, token.KwMut:
		var children []ast.NodeID
		for p.atAny(token.KwRef, token.KwMut) {
			children = append(children, p.bump())
		}
		children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name"))
		return p.node(ast.KindPatIdent, children...)
	case token.LParen:
		return p.parseTuplePattern()
	case token.Ident:
		return p.parsePathPattern()
	default:
		p.err(diag.SynExpectPattern, "expected pattern")
		return ast.NoNodeID
	}
}

func (p *Parser) parseTuplePattern() ast.NodeID {
	children := []ast.NodeID{p.bump()}
	for !p.atAny(token.RParen, token.EOF) {
		pat := p.parsePattern()
		if !pat.IsValid() {
			break
		}
		children = append(children, pat)
		comma := p.eat(token.Comma)
		if !comma.IsValid() {
			break
		}
		children = append(children, comma)
	}
	children = append(children, p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in tuple pattern"))
	return p.node(ast.KindPatTuple, children...)
}

func (p *Parser) parsePathPattern() ast.NodeID {
	next := p.peekN(1)
	if next != token.ColonColon && next != token.LParen && next != token.LBrace && !startsUpper(p.toks[p.pos].Text) {
		// одиночный идентификатор со строчной буквы - привязка
		return p.node(ast.KindPatIdent, p.bump())
	}
	path := p.parsePath()

	switch {
	case p.at(token.LParen):
		children := []ast.NodeID{path, p.bump()}
		for !p.atAny(token.RParen, token.EOF) {
			pat := p.parsePattern()
			if !pat.IsValid() {
				break
			}
			children = append(children, pat)
			comma := p.eat(token.Comma)
			if !comma.IsValid() {
				break
			}
			children = append(children, comma)
		}
		children = append(children, p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' in enum pattern"))
		return p.node(ast.KindPatEnum, children...)
	case p.at(token.LBrace):
		return p.parseStructPattern(path)
	default:
		// `None`, `Color::Red` - вариант без данных
		return p.node(ast.KindPatEnum, path)
	}
}

// S { a, b: pat, .. }
func (p *Parser) parseStructPattern(path ast.NodeID) ast.NodeID {
	children := []ast.NodeID{path, p.bump()}
	for !p.atAny(token.RBrace, token.EOF) {
		switch {
		case p.at(token.DotDot):
			children = append(children, p.bump())
		case p.atAny(token.Ident, token.KwRef, token.KwMut):
			var field []ast.NodeID
			for p.atAny(token.KwRef, token.KwMut) {
				field = append(field, p.bump())
			}
			field = append(field, p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name"))
			if colon := p.eat(token.Colon); colon.IsValid() {
				field = append(field, colon, p.parsePattern())
			}
			children = append(children, p.node(ast.KindPatStructField, field...))
		default:
			p.err(diag.SynExpectIdentifier, "expected field name in struct pattern")
			children = append(children, p.skipUntil(func(k token.Kind) bool { return k == token.RBrace }))
		}
		comma := p.eat(token.Comma)
		if !comma.IsValid() {
			break
		}
		children = append(children, comma)
	}
	children = append(children, p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' in struct pattern"))
	return p.node(ast.KindPatStruct, children...)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
