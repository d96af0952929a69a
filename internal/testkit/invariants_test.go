package testkit_test

import (
	"strings"
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/parser"
	"cairolint/internal/source"
	"cairolint/internal/testkit"
)

func parse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("k.cairo", []byte(src)))
	return parser.ParseFile(file, parser.Options{}).Tree
}

func TestCheckTreeAcceptsParsedFiles(t *testing.T) {
	for _, src := range []string{
		"",
		"fn f() {}\n",
		"fn f(x: u32) -> u32 { if x == 1 { 1 } else { if x == 2 { 2 } else { 3 } } }\n",
		"fn broken( { let = ; }\n",
	} {
		if err := testkit.CheckTree(parse(t, src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTreeReportsBrokenParentLink(t *testing.T) {
	tree := parse(t, "fn f() {}\n")
	fn := tree.ChildOfKind(tree.Root, ast.KindFunction)
	tree.Node(fn).Parent = fn
	err := testkit.CheckTree(tree)
	if err == nil || !strings.Contains(err.Error(), "has parent") {
		t.Fatalf("got %v", err)
	}
}

func TestCheckTreeReportsSpanOutOfBounds(t *testing.T) {
	tree := parse(t, "fn f() {}\n")
	fn := tree.ChildOfKind(tree.Root, ast.KindFunction)
	tree.Node(fn).Span.End = 1000
	if err := testkit.CheckTree(tree); err == nil || !strings.Contains(err.Error(), "out of bounds") {
		t.Fatalf("got %v", err)
	}
}
