// Package sema строит семантическую модель модуля поверх синтаксического
// дерева: перечень items, сигнатуры функций и наборы выражений тел.
// Линты читают модель только через эти структуры.
package sema

import (
	"cairolint/internal/ast"
	"cairolint/internal/token"
)

type ItemKind uint8

const (
	ItemOther ItemKind = iota
	ItemConstant
	ItemFreeFunction
	ItemImpl
	ItemTrait
	ItemUse
	ItemModule
)

func (k ItemKind) String() string {
	switch k {
	case ItemConstant:
		return "const"
	case ItemFreeFunction:
		return "fn"
	case ItemImpl:
		return "impl"
	case ItemTrait:
		return "trait"
	case ItemUse:
		return "use"
	case ItemModule:
		return "mod"
	default:
		return "other"
	}
}

// Item - элемент модуля верхнего уровня.
type Item struct {
	Kind ItemKind
	Node ast.NodeID
	Name string

	// Function заполнен для ItemFreeFunction.
	Function *Function
	// Functions - функции impl/trait с телом.
	Functions []*Function
	// Module - тело inline-модуля `mod name { ... }`.
	Module *Module
}

type Param struct {
	Node ast.NodeID
	Name string
}

type Signature struct {
	Name   string
	Params []Param
}

// Function - функция с телом. Exprs перечисляет все выражения тела в порядке
// обхода, как арена выражений у компилятора.
type Function struct {
	Node      ast.NodeID
	Signature Signature
	Body      ast.NodeID
	Exprs     []ast.NodeID
}

// Module - модуль: файл целиком или inline `mod`.
type Module struct {
	Tree  *ast.Tree
	Name  string
	Node  ast.NodeID
	Items []Item
}

// Build строит модель для корня дерева.
func Build(tree *ast.Tree, name string) *Module {
	return buildModule(tree, name, tree.Root)
}

func buildModule(tree *ast.Tree, name string, node ast.NodeID) *Module {
	m := &Module{Tree: tree, Name: name, Node: node}
	for _, c := range tree.NonTokenChildren(node) {
		if item, ok := buildItem(tree, c); ok {
			m.Items = append(m.Items, item)
		}
	}
	return m
}

func buildItem(tree *ast.Tree, node ast.NodeID) (Item, bool) {
	switch tree.Kind(node) {
	case ast.KindConst:
		return Item{Kind: ItemConstant, Node: node, Name: nameAfter(tree, node, token.KwConst)}, true
	case ast.KindFunction:
		item := Item{Kind: ItemFreeFunction, Node: node, Name: tree.FunctionName(node)}
		item.Function = buildFunction(tree, node)
		return item, true
	case ast.KindImpl, ast.KindTrait:
		kind, kw := ItemImpl, token.KwImpl
		if tree.Kind(node) == ast.KindTrait {
			kind, kw = ItemTrait, token.KwTrait
		}
		item := Item{Kind: kind, Node: node, Name: nameAfter(tree, node, kw)}
		for _, c := range tree.NonTokenChildren(node) {
			if tree.Kind(c) != ast.KindFunction {
				continue
			}
			if fn := buildFunction(tree, c); fn != nil {
				item.Functions = append(item.Functions, fn)
			}
		}
		return item, true
	case ast.KindUse:
		return Item{Kind: ItemUse, Node: node}, true
	case ast.KindMod:
		name := nameAfter(tree, node, token.KwMod)
		item := Item{Kind: ItemModule, Node: node, Name: name}
		if tree.ChildToken(node, token.LBrace).IsValid() {
			item.Module = buildModule(tree, name, node)
		}
		return item, true
	case ast.KindStruct, ast.KindEnum, ast.KindTypeAlias:
		return Item{Kind: ItemOther, Node: node}, true
	default:
		return Item{}, false
	}
}

// buildFunction возвращает nil для объявлений без тела.
func buildFunction(tree *ast.Tree, node ast.NodeID) *Function {
	body := tree.FunctionBody(node)
	if !body.IsValid() {
		return nil
	}
	fn := &Function{
		Node:      node,
		Signature: Signature{Name: tree.FunctionName(node)},
		Body:      body,
	}
	for _, p := range tree.Params(node) {
		_, name := tree.Identifier(p)
		fn.Signature.Params = append(fn.Signature.Params, Param{Node: p, Name: name})
	}
	tree.Walk(body, func(n ast.NodeID) bool {
		if n != body && tree.Kind(n).IsItem() {
			return false // вложенные items - отдельные сущности
		}
		if tree.Kind(n).IsExpr() {
			fn.Exprs = append(fn.Exprs, n)
		}
		return true
	})
	return fn
}

// nameAfter возвращает идентификатор, следующий за ключевым словом kw.
func nameAfter(tree *ast.Tree, node ast.NodeID, kw token.Kind) string {
	children := tree.Children(node)
	for i, c := range children {
		if tree.TokenKind(c) == kw && i+1 < len(children) {
			if tok, ok := tree.Token(children[i+1]); ok && tok.Kind == token.Ident {
				return tok.Text
			}
		}
	}
	return ""
}

// Functions возвращает все функции модуля с телами: свободные и из impl.
// Трейтовые функции с телами по умолчанию тоже попадают сюда.
func (m *Module) Functions() []*Function {
	var out []*Function
	for _, it := range m.Items {
		switch {
		case it.Function != nil:
			out = append(out, it.Function)
		case len(it.Functions) > 0:
			out = append(out, it.Functions...)
		}
	}
	return out
}

// Submodules возвращает inline-модули в порядке объявления.
func (m *Module) Submodules() []*Module {
	var out []*Module
	for _, it := range m.Items {
		if it.Module != nil {
			out = append(out, it.Module)
		}
	}
	return out
}
