package sema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/parser"
	"cairolint/internal/source"
)

func buildModel(t *testing.T, src string) *Module {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	bag := diag.NewBag(0)
	res := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %d", bag.Len())
	}
	return Build(res.Tree, "lib")
}

func unusedNames(m *Module) []string {
	var out []string
	for _, fn := range m.Functions() {
		for _, b := range fn.UnusedBindings(m.Tree) {
			out = append(out, b.Name)
		}
	}
	return out
}

func TestBuildItems(t *testing.T) {
	m := buildModel(t, `use core::array::ArrayTrait;
const LIMIT: u32 = 3;
fn free(a: u32, _b: u32) -> u32 { a }
trait Tr { fn decl(self: @u32); fn def(self: @u32) -> u32 { 1 } }
impl TrImpl of Tr { fn decl(self: @u32) {} }
mod inner { fn nested() {} }
`)
	var kinds []ItemKind
	for _, it := range m.Items {
		kinds = append(kinds, it.Kind)
	}
	want := []ItemKind{ItemUse, ItemConstant, ItemFreeFunction, ItemTrait, ItemImpl, ItemModule}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if got := m.Items[1].Name; got != "LIMIT" {
		t.Errorf("const name = %q", got)
	}
	sig := m.Items[2].Function.Signature
	if sig.Name != "free" || len(sig.Params) != 2 || sig.Params[1].Name != "_b" {
		t.Errorf("unexpected signature %+v", sig)
	}
	// trait: только функция с телом
	if n := len(m.Items[3].Functions); n != 1 {
		t.Errorf("trait functions with body = %d, want 1", n)
	}
	if n := len(m.Functions()); n != 3 {
		t.Errorf("Functions() = %d, want 3", n)
	}
	subs := m.Submodules()
	if len(subs) != 1 || subs[0].Name != "inner" || len(subs[0].Functions()) != 1 {
		t.Errorf("unexpected submodules %+v", subs)
	}
}

func TestFunctionExprs(t *testing.T) {
	m := buildModel(t, "fn f(x: u32) -> u32 { match x { 0 => 1, _ => loop { break 2; } } }\n")
	fn := m.Functions()[0]
	var matches, loops int
	for _, e := range fn.Exprs {
		switch m.Tree.Kind(e) {
		case ast.KindMatch:
			matches++
		case ast.KindLoop:
			loops++
		}
	}
	if matches != 1 || loops != 1 {
		t.Errorf("matches=%d loops=%d", matches, loops)
	}
}

func TestUnusedBindings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"used_param", "fn f(a: u32) -> u32 { a }", nil},
		{"unused_param", "fn f(a: u32, _b: u32) {}", []string{"a"}},
		{"self_ignored", "fn f(self: @u32) {}", nil},
		{"unused_let", "fn f() { let x = 1; }", []string{"x"}},
		{"shadow_uses_previous", "fn f() -> u32 { let x = 1; let x = x + 1; x }", nil},
		{"shadowed_unused", "fn f() -> u32 { let x = 1; let x = 2; x }", []string{"x"}},
		{"match_arm", "fn f(o: Option<u32>) { match o { Option::Some(v) => {}, Option::None => {} } }", []string{"v"}},
		{"alternatives", "fn f(o: E) -> u32 { match o { E::A(v) | E::B(v) => v, _ => 0 } }", nil},
		{"if_let_scope", "fn f(o: Option<u32>) -> u32 { if let Option::Some(v) = o { v } else { 0 } }", nil},
		{"struct_shorthand", "fn f(p: Point) -> u32 { let Point { x, y } = p; x }", []string{"y"}},
		{"struct_literal_shorthand", "fn f(x: u32) -> Point { Point { x, y: 0 } }", nil},
		{"macro_args", "fn f(x: u32) { println!(\"{}\", x); }", nil},
		{"for_binding", "fn f(s: Span<u32>) { for item in s { } }", []string{"item"}},
		{"block_scope", "fn f() -> u32 { { let y = 1; } let y = 2; y }", []string{"y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildModel(t, tt.src+"\n")
			if diff := cmp.Diff(tt.want, unusedNames(m)); diff != "" {
				t.Errorf("unused mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShorthandField(t *testing.T) {
	m := buildModel(t, "fn f(p: Point) { let Point { x, y: _ } = p; }\n")
	unused := m.Functions()[0].UnusedBindings(m.Tree)
	if len(unused) != 1 || unused[0].Name != "x" {
		t.Fatalf("unexpected unused %+v", unused)
	}
	if !IsShorthandField(m.Tree, unused[0].Node) {
		t.Error("x should be a shorthand field binding")
	}
}

func TestUnusedImports(t *testing.T) {
	m := buildModel(t, `use core::array::ArrayTrait;
use core::option::{OptionTrait, Option as Opt};
pub use core::traits::Into;
fn f() -> Opt<u32> { let a = ArrayTrait::<u32>::new(); Opt::None }
`)
	var names []string
	for _, imp := range m.UnusedImports() {
		names = append(names, imp.Name)
	}
	if diff := cmp.Diff([]string{"OptionTrait"}, names); diff != "" {
		t.Errorf("unused imports mismatch (-want +got):\n%s", diff)
	}
}
