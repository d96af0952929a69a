package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lexer"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree   *ast.Tree
	Errors uint
}

// Parser - состояние парсера на один файл. Парсер терпимый: на ошибке он
// пропускает токены в узел KindError и продолжает, чтобы линты видели всё,
// что удалось разобрать.
type Parser struct {
	tree *ast.Tree
	toks []token.Token
	pos  int
	opts Options

	// >0 - struct-литералы запрещены (условия if/while, scrutinee у match)
	noStruct int
}

// ParseFile лексит и разбирает один файл.
func ParseFile(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	toks := lx.All()
	p := Parser{
		tree: ast.NewTree(file, toks),
		toks: toks,
		opts: opts,
	}
	p.tree.SetRoot(p.parseFile())
	return Result{Tree: p.tree, Errors: p.opts.CurrentErrors}
}

// parseFile - основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseFile() ast.NodeID {
	var items []ast.NodeID
	for !p.at(token.EOF) {
		start := p.pos
		if item := p.parseItem(); item.IsValid() {
			items = append(items, item)
		}
		if p.pos == start {
			items = append(items, p.skipUntil(isItemStarter))
		}
	}
	items = append(items, p.tree.NewTokenNode(p.pos)) // EOF держит хвостовые trivia
	return p.node(ast.KindFile, items...)
}

func (p *Parser) peek() token.Kind {
	return p.toks[p.pos].Kind
}

func (p *Parser) peekN(n int) token.Kind {
	if p.pos+n >= len(p.toks) {
		return token.EOF
	}
	return p.toks[p.pos+n].Kind
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek() == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	k := p.peek()
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// bump съедает текущий токен и возвращает его лист. EOF не съедается.
func (p *Parser) bump() ast.NodeID {
	if p.at(token.EOF) {
		return ast.NoNodeID
	}
	id := p.tree.NewTokenNode(p.pos)
	p.pos++
	return id
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) ast.NodeID {
	if p.at(k) {
		return p.bump()
	}
	return ast.NoNodeID
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем NoNodeID.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) ast.NodeID {
	if p.at(k) {
		return p.bump()
	}
	p.err(code, msg)
	return ast.NoNodeID
}

// node собирает узел, отбрасывая отсутствующих детей.
func (p *Parser) node(kind ast.Kind, children ...ast.NodeID) ast.NodeID {
	kept := children[:0:0]
	for _, c := range children {
		if c.IsValid() {
			kept = append(kept, c)
		}
	}
	return p.tree.NewNode(kind, p.toks[p.pos].FullStart(), kept...)
}

// skipUntil пропускает токены (со сбалансированными скобками) до stop или EOF
// и заворачивает их в KindError. Съедает хотя бы один токен.
func (p *Parser) skipUntil(stop func(token.Kind) bool) ast.NodeID {
	var skipped []ast.NodeID
	for !p.at(token.EOF) {
		if len(skipped) > 0 && stop(p.peek()) {
			break
		}
		switch p.peek() {
		case token.LParen, token.LBracket, token.LBrace:
			skipped = append(skipped, p.bumpGroup()...)
		default:
			skipped = append(skipped, p.bump())
		}
	}
	if len(skipped) == 0 {
		return ast.NoNodeID
	}
	return p.node(ast.KindError, skipped...)
}

// bumpGroup съедает сбалансированную группу скобок целиком.
func (p *Parser) bumpGroup() []ast.NodeID {
	var out []ast.NodeID
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek() {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
		out = append(out, p.bump())
		if depth <= 0 {
			break
		}
	}
	if depth > 0 {
		p.err(diag.SynUnclosedDelimiter, "unclosed delimiter")
	}
	return out
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwFn, token.KwImpl, token.KwTrait, token.KwConst, token.KwUse, token.KwMod,
		token.KwStruct, token.KwEnum, token.KwType, token.KwPub, token.KwExtern, token.Hash:
		return true
	default:
		return false
	}
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.toks[p.pos].Span, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.New(sev, code, sp, msg))
	}
}
