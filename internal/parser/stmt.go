package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseBlock - { stmt* }. Хвостовое выражение без ';' тоже ExprStmt.
func (p *Parser) parseBlock() ast.NodeID {
	open := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !open.IsValid() {
		return ast.NoNodeID
	}
	// внутри блока struct-литералы снова разрешены
	saved := p.noStruct
	p.noStruct = 0
	defer func() { p.noStruct = saved }()

	children := []ast.NodeID{open}
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		if stmt := p.parseStatement(); stmt.IsValid() {
			children = append(children, stmt)
		}
		if p.pos == start {
			children = append(children, p.skipUntil(func(k token.Kind) bool {
				return k == token.Semicolon || k == token.RBrace
			}))
			if semi := p.eat(token.Semicolon); semi.IsValid() {
				children = append(children, semi)
			}
		}
	}
	children = append(children, p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"))
	return p.node(ast.KindBlock, children...)
}

func (p *Parser) parseStatement() ast.NodeID {
	switch p.peek() {
	case token.Semicolon:
		return p.bump()
	case token.Hash:
		return p.parseAttribute()
	case token.KwLet:
		return p.parseLet()
	case token.KwReturn:
		return p.parseJump(ast.KindReturnStmt)
	case token.KwBreak:
		return p.parseJump(ast.KindBreakStmt)
	case token.KwContinue:
		kw := p.bump()
		return p.node(ast.KindContinueStmt, kw, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after continue"))
	case token.KwConst, token.KwUse, token.KwFn, token.KwStruct, token.KwEnum, token.KwImpl, token.KwTrait, token.KwMod:
		return p.parseItem()
	}

	if isBlockLike(p.peek()) {
		// if/match/loop/while/for/{} в позиции оператора не продолжаются бинарными операторами
		expr := p.parsePostfix(p.parseBlockLike())
		if semi := p.eat(token.Semicolon); semi.IsValid() {
			return p.node(ast.KindExprStmt, expr, semi)
		}
		return p.node(ast.KindExprStmt, expr)
	}

	expr := p.parseExpr()
	if !expr.IsValid() {
		return ast.NoNodeID
	}
	if semi := p.eat(token.Semicolon); semi.IsValid() {
		return p.node(ast.KindExprStmt, expr, semi)
	}
	if !p.at(token.RBrace) {
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
	}
	return p.node(ast.KindExprStmt, expr)
}

// let pat (: T)? = expr;
func (p *Parser) parseLet() ast.NodeID {
	children := []ast.NodeID{p.bump()}
	children = append(children, p.parsePattern())
	if colon := p.eat(token.Colon); colon.IsValid() {
		children = append(children, colon, p.parseType())
	}
	if eq := p.eat(token.Assign); eq.IsValid() {
		children = append(children, eq, p.parseExpr())
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let"))
	return p.node(ast.KindLetStmt, children...)
}

// return expr?; | break expr?;
func (p *Parser) parseJump(kind ast.Kind) ast.NodeID {
	children := []ast.NodeID{p.bump()}
	if !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		children = append(children, p.parseExpr())
	}
	if semi := p.eat(token.Semicolon); semi.IsValid() {
		children = append(children, semi)
	} else if !p.at(token.RBrace) {
		p.err(diag.SynExpectSemicolon, "expected ';'")
	}
	return p.node(kind, children...)
}

func isBlockLike(k token.Kind) bool {
	switch k {
	case token.KwIf, token.KwMatch, token.KwLoop, token.KwWhile, token.KwFor, token.LBrace:
		return true
	default:
		return false
	}
}
