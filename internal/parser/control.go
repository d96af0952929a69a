package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseBlockLike разбирает выражения, заканчивающиеся блоком.
func (p *Parser) parseBlockLike() ast.NodeID {
	switch p.peek() {
	case token.KwIf:
		return p.parseIf()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwLoop:
		kw := p.bump()
		return p.node(ast.KindLoop, kw, p.parseBlock())
	case token.KwWhile:
		kw := p.bump()
		cond := p.parseCondition()
		return p.node(ast.KindWhile, kw, cond, p.parseBlock())
	case token.KwFor:
		return p.parseFor()
	case token.LBrace:
		return p.parseBlock()
	default:
		p.err(diag.SynExpectExpression, "expected block expression")
		return ast.NoNodeID
	}
}

// if cond { } (else { } | else if ...)?
func (p *Parser) parseIf() ast.NodeID {
	kw := p.bump()
	cond := p.parseCondition()
	then := p.parseBlock()
	children := []ast.NodeID{kw, cond, then}
	if p.at(token.KwElse) {
		elseKw := p.bump()
		var body ast.NodeID
		if p.at(token.KwIf) {
			body = p.parseIf()
		} else {
			body = p.parseBlock()
		}
		children = append(children, p.node(ast.KindElse, elseKw, body))
	}
	return p.node(ast.KindIf, children...)
}

// parseCondition - обычное условие или `let P | Q = expr`.
func (p *Parser) parseCondition() ast.NodeID {
	if !p.at(token.KwLet) {
		return p.parseCondExpr()
	}
	children := []ast.NodeID{p.bump()}
	children = append(children, p.parsePatternAlts()...)
	children = append(children, p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let condition"))
	children = append(children, p.parseCondExpr())
	return p.node(ast.KindLetCond, children...)
}

// parsePatternAlts - pat (| pat)*; разделители возвращаются как листья.
func (p *Parser) parsePatternAlts() []ast.NodeID {
	out := []ast.NodeID{p.parsePattern()}
	for p.at(token.Pipe) {
		out = append(out, p.bump(), p.parsePattern())
	}
	return out
}

// match expr { arm, ... }
func (p *Parser) parseMatch() ast.NodeID {
	kw := p.bump()
	scrutinee := p.parseCondExpr()
	children := []ast.NodeID{kw, scrutinee}
	open := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{' after match scrutinee")
	if !open.IsValid() {
		return p.node(ast.KindMatch, children...)
	}
	children = append(children, open)

	saved := p.noStruct
	p.noStruct = 0
	defer func() { p.noStruct = saved }()

	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		if arm := p.parseMatchArm(); arm.IsValid() {
			children = append(children, arm)
		}
		if p.pos == start {
			children = append(children, p.skipUntil(func(k token.Kind) bool {
				return k == token.Comma || k == token.RBrace
			}))
			if comma := p.eat(token.Comma); comma.IsValid() {
				children = append(children, comma)
			}
		}
	}
	children = append(children, p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close match"))
	return p.node(ast.KindMatch, children...)
}

func (p *Parser) parseMatchArm() ast.NodeID {
	children := p.parsePatternAlts()
	arrow := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm")
	if !arrow.IsValid() {
		return ast.NoNodeID
	}
	children = append(children, arrow)

	var body ast.NodeID
	if isBlockLike(p.peek()) {
		body = p.parsePostfix(p.parseBlockLike())
	} else {
		body = p.parseExpr()
	}
	children = append(children, body)
	if comma := p.eat(token.Comma); comma.IsValid() {
		children = append(children, comma)
	} else if !p.at(token.RBrace) && p.tree.Kind(body) != ast.KindBlock {
		p.err(diag.SynUnexpectedToken, "expected ',' after match arm")
	}
	return p.node(ast.KindMatchArm, children...)
}

// for pat in expr { }
func (p *Parser) parseFor() ast.NodeID {
	kw := p.bump()
	pat := p.parsePattern()
	in := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' in for loop")
	iter := p.parseCondExpr()
	return p.node(ast.KindFor, kw, pat, in, iter, p.parseBlock())
}
