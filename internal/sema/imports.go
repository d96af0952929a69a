package sema

import (
	"cairolint/internal/ast"
	"cairolint/internal/token"
)

// Import - одно имя, введённое `use`. Node - узел Use, Name - лист-токен имени.
type Import struct {
	Use      ast.NodeID
	NameLeaf ast.NodeID
	Name     string
}

// Imports разбирает плоский список токенов use-деревьев:
// `use a::b::{c, d as e};` вводит c и e.
func (m *Module) Imports() []Import {
	var out []Import
	for _, it := range m.Items {
		if it.Kind != ItemUse || m.Tree.ChildToken(it.Node, token.KwPub).IsValid() {
			continue // `pub use` - реэкспорт
		}
		children := m.Tree.Children(it.Node)
		for i, c := range children {
			tok, ok := m.Tree.Token(c)
			if !ok || tok.Kind != token.Ident || tok.Text == "self" {
				continue
			}
			if i+1 >= len(children) {
				continue
			}
			switch m.Tree.TokenKind(children[i+1]) {
			case token.Comma, token.RBrace, token.Semicolon:
				out = append(out, Import{Use: it.Node, NameLeaf: c, Name: tok.Text})
			}
		}
	}
	return out
}

// UnusedImports возвращает импорты, имя которых не встречается в модуле.
// Сравнение по токенам-идентификаторам: без разрешения путей, зато без
// ложных срабатываний.
func (m *Module) UnusedImports() []Import {
	imports := m.Imports()
	if len(imports) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, it := range m.Items {
		if it.Kind == ItemUse || it.Module != nil {
			continue
		}
		m.Tree.Walk(it.Node, func(n ast.NodeID) bool {
			if tok, ok := m.Tree.Token(n); ok && tok.Kind == token.Ident {
				seen[NormalizeIdent(tok.Text)] = struct{}{}
			}
			return true
		})
	}
	var out []Import
	for _, imp := range imports {
		if _, ok := seen[NormalizeIdent(imp.Name)]; !ok {
			out = append(out, imp)
		}
	}
	return out
}
