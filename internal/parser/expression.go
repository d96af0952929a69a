package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() ast.NodeID {
	return p.parseBinaryExpr(0)
}

// parseCondExpr разбирает выражение, в котором `{` начинает блок, а не
// struct-литерал: условия if/while, scrutinee у match, итератор for.
func (p *Parser) parseCondExpr() ast.NodeID {
	p.noStruct++
	defer func() { p.noStruct-- }()
	return p.parseExpr()
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
func (p *Parser) parseBinaryExpr(minPrec int) ast.NodeID {
	left := p.parseUnaryExpr()
	if !left.IsValid() {
		return ast.NoNodeID
	}
	for {
		prec, rightAssoc := binaryPrec(p.peek())
		if prec < 0 || prec < minPrec {
			return left
		}
		op := p.bump()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := p.parseBinaryExpr(nextMin)
		if !right.IsValid() {
			p.err(diag.SynExpectExpression, "expected expression after binary operator")
			return p.node(ast.KindError, left, op)
		}
		left = p.node(ast.KindBinary, left, op, right)
	}
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() ast.NodeID {
	if isUnaryOp(p.peek()) {
		op := p.bump()
		if p.toks[p.pos-1].Kind == token.KwRef && p.at(token.KwMut) {
			// `ref mut x` - три ребёнка, для линтов это не унарный оператор
			mut := p.bump()
			return p.node(ast.KindUnary, op, mut, p.parseUnaryExpr())
		}
		operand := p.parseUnaryExpr()
		if !operand.IsValid() {
			return p.node(ast.KindError, op)
		}
		return p.node(ast.KindUnary, op, operand)
	}
	primary := p.parsePrimary()
	if !primary.IsValid() {
		return ast.NoNodeID
	}
	return p.parsePostfix(primary)
}

// parsePostfix: .field, .method(args), (args), [index], ?
func (p *Parser) parsePostfix(expr ast.NodeID) ast.NodeID {
	for {
		switch p.peek() {
		case token.Dot:
			dot := p.bump()
			if !p.atAny(token.Ident, token.IntLit) {
				p.err(diag.SynExpectIdentifier, "expected field or method name after '.'")
				return p.node(ast.KindError, expr, dot)
			}
			name := p.bump()
			if p.at(token.ColonColon) && p.peekN(1) == token.Lt {
				children := []ast.NodeID{expr, dot, name, p.bump()}
				children = append(children, p.bumpAngleGroup()...)
				children = append(children, p.parseArgList(token.LParen, token.RParen))
				expr = p.node(ast.KindMethodCall, children...)
				continue
			}
			if p.at(token.LParen) {
				expr = p.node(ast.KindMethodCall, expr, dot, name, p.parseArgList(token.LParen, token.RParen))
				continue
			}
			expr = p.node(ast.KindField, expr, dot, name)
		case token.LParen:
			expr = p.node(ast.KindCall, expr, p.parseArgList(token.LParen, token.RParen))
		case token.LBracket:
			open := p.bump()
			index := p.parseExpr()
			expr = p.node(ast.KindIndex, expr, open, index, p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']'"))
		case token.Question:
			expr = p.node(ast.KindTry, expr, p.bump())
		default:
			return expr
		}
	}
}

// parseArgList - (a, ref b, c) или [a, b] для макросов
func (p *Parser) parseArgList(open, closing token.Kind) ast.NodeID {
	return p.node(ast.KindArgList, p.parseDelimited(open, closing)...)
}

// parseDelimited разбирает список выражений через запятую между open и closing.
func (p *Parser) parseDelimited(open, closing token.Kind) []ast.NodeID {
	children := []ast.NodeID{p.expect(open, diag.SynUnexpectedToken, "expected '"+open.String()+"'")}
	saved := p.noStruct
	p.noStruct = 0
	defer func() { p.noStruct = saved }()
	for !p.atAny(closing, token.EOF) {
		arg := p.parseExpr()
		if !arg.IsValid() {
			break
		}
		children = append(children, arg)
		comma := p.eat(token.Comma)
		if !comma.IsValid() {
			break
		}
		children = append(children, comma)
	}
	return append(children, p.expect(closing, diag.SynUnclosedDelimiter, "expected '"+closing.String()+"'"))
}

func (p *Parser) parsePrimary() ast.NodeID {
	switch p.peek() {
	case token.IntLit, token.StringLit, token.ShortStringLit, token.KwTrue, token.KwFalse:
		return p.node(ast.KindLiteral, p.bump())
	case token.Ident:
		return p.parsePathExpr()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.node(ast.KindArray, p.parseDelimited(token.LBracket, token.RBracket)...)
	case token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor, token.LBrace:
		return p.parseBlockLike()
	case token.Pipe, token.OrOr:
		return p.parseClosure()
	default:
		p.err(diag.SynExpectExpression, "expected expression, got \""+p.toks[p.pos].Text+"\"")
		if p.atAny(token.RBrace, token.RParen, token.RBracket, token.Semicolon, token.Comma, token.EOF) {
			return ast.NoNodeID
		}
		return p.node(ast.KindError, p.bump())
	}
}

// parsePathExpr - a::b::<T>::c, затем макрос `name!(...)` или struct-литерал.
func (p *Parser) parsePathExpr() ast.NodeID {
	path := p.parsePath()
	if p.at(token.Bang) && (p.peekN(1) == token.LParen || p.peekN(1) == token.LBracket) {
		bang := p.bump()
		open := p.peek()
		return p.node(ast.KindMacroCall, path, bang, p.parseArgList(open, closingOf(open)))
	}
	if p.at(token.LBrace) && p.noStruct == 0 && p.looksLikeStructLit() {
		return p.parseStructLit(path)
	}
	return path
}

func (p *Parser) parsePath() ast.NodeID {
	children := []ast.NodeID{p.bump()}
	for p.at(token.ColonColon) {
		switch p.peekN(1) {
		case token.Ident:
			children = append(children, p.bump(), p.bump())
		case token.Lt:
			children = append(children, p.bump())
			children = append(children, p.bumpAngleGroup()...)
		default:
			p.err(diag.SynExpectIdentifier, "expected path segment after '::'")
			return p.node(ast.KindPath, append(children, p.bump())...)
		}
	}
	return p.node(ast.KindPath, children...)
}

// looksLikeStructLit: `Name { }`, `Name { a: ..`, `Name { a, ..`, `Name { ..base }`
func (p *Parser) looksLikeStructLit() bool {
	if !startsUpper(p.toks[p.pos-1].Text) {
		return false
	}
	switch p.peekN(1) {
	case token.RBrace, token.DotDot:
		return true
	case token.Ident:
		switch p.peekN(2) {
		case token.Colon, token.Comma, token.RBrace:
			return true
		}
	}
	return false
}

// Name { a: 1, b, ..base }
func (p *Parser) parseStructLit(path ast.NodeID) ast.NodeID {
	children := []ast.NodeID{path, p.bump()}
	for !p.atAny(token.RBrace, token.EOF) {
		switch {
		case p.at(token.DotDot):
			dots := p.bump()
			children = append(children, p.node(ast.KindStructLitField, dots, p.parseExpr()))
		case p.at(token.Ident):
			name := p.bump()
			if colon := p.eat(token.Colon); colon.IsValid() {
				children = append(children, p.node(ast.KindStructLitField, name, colon, p.parseExpr()))
			} else {
				// сокращённая форма `Point { x, y }` - поле и есть ссылка на переменную
				children = append(children, p.node(ast.KindStructLitField, p.node(ast.KindPath, name)))
			}
		default:
			p.err(diag.SynExpectIdentifier, "expected field name")
			return p.node(ast.KindStructLit, append(children, p.skipUntil(func(k token.Kind) bool { return k == token.RBrace }), p.eat(token.RBrace))...)
		}
		comma := p.eat(token.Comma)
		if !comma.IsValid() {
			break
		}
		children = append(children, comma)
	}
	children = append(children, p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"))
	return p.node(ast.KindStructLit, children...)
}

// () - unit, (e) - скобки, (a, b) - кортеж
func (p *Parser) parseParenOrTuple() ast.NodeID {
	open := p.bump()
	saved := p.noStruct
	p.noStruct = 0
	defer func() { p.noStruct = saved }()

	if closeTok := p.eat(token.RParen); closeTok.IsValid() {
		return p.node(ast.KindTuple, open, closeTok)
	}
	first := p.parseExpr()
	if closeTok := p.eat(token.RParen); closeTok.IsValid() {
		return p.node(ast.KindParen, open, first, closeTok)
	}
	children := []ast.NodeID{open, first}
	for p.at(token.Comma) {
		children = append(children, p.bump())
		if p.at(token.RParen) {
			break
		}
		children = append(children, p.parseExpr())
	}
	children = append(children, p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"))
	return p.node(ast.KindTuple, children...)
}

// |a, b| expr
func (p *Parser) parseClosure() ast.NodeID {
	children := []ast.NodeID{p.bump()}
	if p.toks[p.pos-1].Kind == token.Pipe {
		for !p.atAny(token.Pipe, token.EOF, token.LBrace, token.Semicolon) {
			children = append(children, p.bump())
		}
		children = append(children, p.expect(token.Pipe, diag.SynUnclosedDelimiter, "expected '|' after closure parameters"))
	}
	return p.node(ast.KindClosure, append(children, p.parseExpr())...)
}

func closingOf(k token.Kind) token.Kind {
	switch k {
	case token.LParen:
		return token.RParen
	case token.LBracket:
		return token.RBracket
	default:
		return token.RBrace
	}
}
