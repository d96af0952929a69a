package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseType собирает токены типа: путь с generic-аргументами, кортеж,
// snapshot `@T`, массив `[T; N]`. Структура типа линтам не нужна.
func (p *Parser) parseType() ast.NodeID {
	var children []ast.NodeID
	for p.atAny(token.At, token.Star, token.KwRef, token.KwMut) {
		children = append(children, p.bump())
	}
	switch p.peek() {
	case token.LParen, token.LBracket:
		children = append(children, p.bumpGroup()...)
	case token.Ident, token.Underscore, token.KwImpl:
		if p.at(token.KwImpl) {
			children = append(children, p.bump())
		}
		children = append(children, p.bump())
		for {
			if p.at(token.ColonColon) && p.peekN(1) == token.Ident {
				children = append(children, p.bump(), p.bump())
				continue
			}
			if p.at(token.ColonColon) && p.peekN(1) == token.Lt {
				children = append(children, p.bump())
				continue
			}
			if p.at(token.Lt) {
				children = append(children, p.bumpAngleGroup()...)
				continue
			}
			break
		}
	default:
		p.err(diag.SynExpectType, "expected type")
		return ast.NoNodeID
	}
	return p.node(ast.KindType, children...)
}
