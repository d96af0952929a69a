package parser

import (
	"fmt"
	"strings"
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/source"
	"cairolint/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cairo", []byte(src)))
	bag := diag.NewBag(0)
	res := ParseFile(file, Options{Reporter: &diag.BagReporter{Bag: bag}})
	if err := testkit.CheckTree(res.Tree); err != nil {
		t.Fatalf("tree invariants: %v", err)
	}
	return res.Tree, bag
}

// parseBody заворачивает операторы в `fn f() { ... }` и возвращает блок тела.
func parseBody(t *testing.T, body string) (*ast.Tree, ast.NodeID) {
	t.Helper()
	tree, bag := parseSource(t, "fn f() {\n"+body+"\n}\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	fn := tree.ChildOfKind(tree.Root, ast.KindFunction)
	if !fn.IsValid() {
		t.Fatal("function not parsed")
	}
	return tree, tree.FunctionBody(fn)
}

// dump печатает дерево без листьев-токенов: (If (Path) (Block)).
func dump(tree *ast.Tree, id ast.NodeID) string {
	var sb strings.Builder
	var walk func(ast.NodeID)
	walk = func(n ast.NodeID) {
		sb.WriteString("(")
		sb.WriteString(tree.Kind(n).String())
		for _, c := range tree.NonTokenChildren(n) {
			sb.WriteString(" ")
			walk(c)
		}
		sb.WriteString(")")
	}
	walk(id)
	return sb.String()
}
