package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseItem выбирает по первому токену нужный распознаватель item.
// Атрибуты и `pub` становятся первыми детьми узла item.
func (p *Parser) parseItem() ast.NodeID {
	var prefix []ast.NodeID
	for p.at(token.Hash) {
		prefix = append(prefix, p.parseAttribute())
	}
	if pub := p.eat(token.KwPub); pub.IsValid() {
		prefix = append(prefix, pub)
		if p.at(token.LParen) { // pub(crate)
			prefix = append(prefix, p.bumpGroup()...)
		}
	}

	switch p.peek() {
	case token.KwFn:
		return p.parseFunction(prefix)
	case token.KwImpl:
		return p.parseImpl(prefix)
	case token.KwTrait:
		return p.parseTrait(prefix)
	case token.KwConst:
		return p.parseConst(prefix)
	case token.KwUse:
		return p.parseUse(prefix)
	case token.KwMod:
		return p.parseMod(prefix)
	case token.KwStruct:
		return p.parseOpaqueItem(ast.KindStruct, prefix)
	case token.KwEnum:
		return p.parseOpaqueItem(ast.KindEnum, prefix)
	case token.KwType:
		return p.parseOpaqueItem(ast.KindTypeAlias, prefix)
	case token.KwExtern:
		ext := p.bump()
		if p.at(token.KwFn) {
			return p.parseFunction(append(prefix, ext))
		}
		return p.parseOpaqueItem(ast.KindTypeAlias, append(prefix, ext))
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected item, got \""+p.toks[p.pos].Text+"\"")
		if len(prefix) > 0 {
			return p.node(ast.KindError, prefix...)
		}
		return ast.NoNodeID
	}
}

// #[name(args)] или #[name]
func (p *Parser) parseAttribute() ast.NodeID {
	hash := p.bump()
	if !p.at(token.LBracket) {
		p.err(diag.SynUnexpectedToken, "expected '[' after '#'")
		return p.node(ast.KindError, hash)
	}
	return p.node(ast.KindAttribute, append([]ast.NodeID{hash}, p.bumpGroup()...)...)
}

// fn name<G>(params) -> T implicits(...) nopanic { body } | ;
func (p *Parser) parseFunction(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // fn
	children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name"))
	if p.at(token.Lt) {
		children = append(children, p.parseGenericParams())
	}
	children = append(children, p.parseParamList())
	if p.at(token.Arrow) {
		arrow := p.bump()
		children = append(children, p.node(ast.KindReturnType, arrow, p.parseType()))
	}
	// implicits(...) и nopanic - просто токены
	for {
		if p.at(token.Ident) && p.toks[p.pos].Text == "implicits" && p.peekN(1) == token.LParen {
			children = append(children, p.bump())
			children = append(children, p.bumpGroup()...)
			continue
		}
		if nop := p.eat(token.KwNopanic); nop.IsValid() {
			children = append(children, nop)
			continue
		}
		break
	}
	switch {
	case p.at(token.LBrace):
		children = append(children, p.parseBlock())
	case p.at(token.Semicolon):
		children = append(children, p.bump())
	default:
		p.err(diag.SynExpectBlock, "expected function body")
	}
	return p.node(ast.KindFunction, children...)
}

// (ref self: T, mut x: u32, _y: felt252)
func (p *Parser) parseParamList() ast.NodeID {
	open := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters")
	if !open.IsValid() {
		return ast.NoNodeID
	}
	children := []ast.NodeID{open}
	for !p.atAny(token.RParen, token.EOF, token.LBrace) {
		start := p.pos
		children = append(children, p.parseParam())
		if comma := p.eat(token.Comma); comma.IsValid() {
			children = append(children, comma)
		} else if !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' in parameter list")
			if p.pos == start {
				children = append(children, p.bump())
			}
			break
		}
	}
	children = append(children, p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'"))
	return p.node(ast.KindParamList, children...)
}

func (p *Parser) parseParam() ast.NodeID {
	var children []ast.NodeID
	for p.atAny(token.KwRef, token.KwMut) {
		children = append(children, p.bump())
	}
	if p.atAny(token.Ident, token.Underscore) {
		children = append(children, p.bump())
	} else {
		p.err(diag.SynExpectIdentifier, "expected parameter name")
	}
	if colon := p.eat(token.Colon); colon.IsValid() {
		children = append(children, colon, p.parseType())
	}
	if len(children) == 0 {
		return ast.NoNodeID
	}
	return p.node(ast.KindParam, children...)
}

// <T, +Drop<T>, impl TDrop: Drop<T>> - содержимое не разбираем
func (p *Parser) parseGenericParams() ast.NodeID {
	return p.node(ast.KindGenericParams, p.bumpAngleGroup()...)
}

// bumpAngleGroup съедает <...> с учётом вложенности.
func (p *Parser) bumpAngleGroup() []ast.NodeID {
	var out []ast.NodeID
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek() {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.LBrace, token.Semicolon:
			// сломанные скобки - не уходим за пределы item
			p.err(diag.SynUnclosedDelimiter, "unclosed '<'")
			return out
		}
		out = append(out, p.bump())
		if depth <= 0 {
			break
		}
	}
	return out
}

// impl Name<G> of Trait<T> { items } | impl Name = Other<T>;
func (p *Parser) parseImpl(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // impl
	children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected impl name"))
	if p.at(token.Lt) {
		children = append(children, p.parseGenericParams())
	}
	if eq := p.eat(token.Assign); eq.IsValid() {
		children = append(children, eq, p.parseType())
		children = append(children, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after impl alias"))
		return p.node(ast.KindImpl, children...)
	}
	if of := p.eat(token.KwOf); of.IsValid() {
		children = append(children, of, p.parseType())
	}
	children = append(children, p.parseItemBody()...)
	return p.node(ast.KindImpl, children...)
}

// trait Name<G> { fn sig; fn with_default() { ... } }
func (p *Parser) parseTrait(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // trait
	children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected trait name"))
	if p.at(token.Lt) {
		children = append(children, p.parseGenericParams())
	}
	children = append(children, p.parseItemBody()...)
	return p.node(ast.KindTrait, children...)
}

// { item* } для impl/trait/mod
func (p *Parser) parseItemBody() []ast.NodeID {
	open := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{'")
	if !open.IsValid() {
		return nil
	}
	children := []ast.NodeID{open}
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		if item := p.parseItem(); item.IsValid() {
			children = append(children, item)
		}
		if p.pos == start {
			children = append(children, p.skipUntil(func(k token.Kind) bool {
				return k == token.RBrace || isItemStarter(k)
			}))
		}
	}
	return append(children, p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}'"))
}

// const NAME: T = expr;
func (p *Parser) parseConst(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // const
	children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected constant name"))
	if colon := p.eat(token.Colon); colon.IsValid() {
		children = append(children, colon, p.parseType())
	}
	if eq := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant"); eq.IsValid() {
		children = append(children, eq, p.parseExpr())
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant"))
	return p.node(ast.KindConst, children...)
}

// use a::b::{c, d as e}; - дерево импорта остаётся плоским списком токенов
func (p *Parser) parseUse(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // use
	for !p.atAny(token.Semicolon, token.EOF) && !(p.peek() != token.LBrace && isItemStarter(p.peek())) {
		children = append(children, p.bump())
	}
	children = append(children, p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use"))
	return p.node(ast.KindUse, children...)
}

// mod name; | mod name { items }
func (p *Parser) parseMod(prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump()) // mod
	children = append(children, p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name"))
	if semi := p.eat(token.Semicolon); semi.IsValid() {
		return p.node(ast.KindMod, append(children, semi)...)
	}
	children = append(children, p.parseItemBody()...)
	return p.node(ast.KindMod, children...)
}

// struct/enum/type: линты в них не заглядывают, берём токены до '}' или ';'
func (p *Parser) parseOpaqueItem(kind ast.Kind, prefix []ast.NodeID) ast.NodeID {
	children := append(prefix, p.bump())
	for !p.at(token.EOF) {
		switch p.peek() {
		case token.Semicolon:
			children = append(children, p.bump())
			return p.node(kind, children...)
		case token.LBrace, token.LParen, token.LBracket:
			isBody := p.at(token.LBrace)
			children = append(children, p.bumpGroup()...)
			if isBody {
				return p.node(kind, children...)
			}
		default:
			if isItemStarter(p.peek()) {
				p.err(diag.SynUnexpectedToken, "unexpected token in item")
				return p.node(kind, children...)
			}
			children = append(children, p.bump())
		}
	}
	return p.node(kind, children...)
}
