package lint

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/parser"
	"cairolint/internal/sema"
	"cairolint/internal/source"
)

func TestTableValid(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("rule table invalid: %v", err)
	}
}

func TestClassifyRoundTrip(t *testing.T) {
	for _, r := range Rules() {
		first := Classify(r.Message)
		if first == Unknown {
			t.Errorf("%s: message does not classify", r.Code.ID())
		}
		if first != r.Category {
			t.Errorf("%s: classified as %s, want %s", r.Code.ID(), first, r.Category)
		}
		if again := Classify(r.Message); again != first {
			t.Errorf("%s: unstable classification", r.Code.ID())
		}
	}
	if got := Classify("something else entirely"); got != Unknown {
		t.Errorf("unexpected category %s", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		sel  string
		want []diag.Code
	}{
		{"CL0003", []diag.Code{diag.LintDoubleParens}},
		{"double_parens", []diag.Code{diag.LintDoubleParens}},
		{"double-comparison", []diag.Code{
			diag.LintDoubleComparisonSimplify, diag.LintDoubleComparisonRedundant,
			diag.LintDoubleComparisonContradicts, diag.LintDoubleComparisonAlwaysTrue,
		}},
		{"double_comparison_redundant", []diag.Code{diag.LintDoubleComparisonRedundant}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.sel)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.sel, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.sel, diff)
		}
	}
	if _, err := Resolve("no_such_lint"); err == nil {
		t.Error("expected error for unknown lint")
	}
	if _, err := Resolve("SYN2001"); err == nil {
		t.Error("syntax codes are not lints")
	}
}

func TestSelection(t *testing.T) {
	sel, err := NewSelection([]string{"double_comparison"}, []string{"CL0007"})
	if err != nil {
		t.Fatal(err)
	}
	if !sel.Enabled(diag.LintDoubleComparisonSimplify) {
		t.Error("simplify should be enabled")
	}
	if sel.Enabled(diag.LintDoubleComparisonAlwaysTrue) {
		t.Error("always-true should be disabled")
	}
	if sel.Enabled(diag.LintDoubleParens) {
		t.Error("double parens is not in the enable list")
	}
	var all Selection
	if !all.Enabled(diag.LintUnusedImport) {
		t.Error("zero selection enables everything")
	}
}

// analyzeSource возвращает "ID:текст узла" для каждой диагностики.
func analyzeSource(t *testing.T, src string, opts Options) []string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	bag := diag.NewBag(0)
	res := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors in %q: %d", src, bag.Len())
	}
	var out []string
	for _, d := range Analyze(sema.Build(res.Tree, "lib"), opts) {
		out = append(out, fmt.Sprintf("%s:%s", d.Code.ID(), file.Text(d.Primary)))
	}
	return out
}

func TestDetectors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "double_parens",
			src:  "fn f(x: u32) -> u32 { ((x)) }",
			want: []string{"CL0003:((x))"},
		},
		{
			name: "triple_parens_single_report",
			src:  "fn f(a: u32) -> u32 { (((a))) }",
			want: []string{"CL0003:(((a)))"},
		},
		{
			name: "single_parens_ok",
			src:  "fn f(a: u32, b: u32) -> u32 { (a + b) * 2 }",
		},
		{
			name: "double_parens_in_const",
			src:  "const C: u32 = ((1));",
			want: []string{"CL0003:((1))"},
		},
		{
			name: "break_unit",
			src:  "fn f() { loop { break (); } }",
			want: []string{"CL0008:break ();"},
		},
		{
			name: "break_value_ok",
			src:  "fn f() -> u32 { loop { break (5); } }",
		},
		{
			name: "bool_comparison",
			src:  "fn f(x: bool) -> bool { x == true }",
			want: []string{"CL0009:x == true"},
		},
		{
			name: "bool_comparison_left",
			src:  "fn f(x: bool) -> bool { false != x }",
			want: []string{"CL0009:false != x"},
		},
		{
			name: "double_comparison_simplify",
			src:  "fn f(a: u32, b: u32) -> bool { a < b || a == b }",
			want: []string{"CL0004:a < b || a == b"},
		},
		{
			name: "double_comparison_swapped",
			src:  "fn f(a: u32, b: u32) -> bool { a < b || b < a }",
			want: []string{"CL0004:a < b || b < a"},
		},
		{
			name: "double_comparison_redundant",
			src:  "fn f(a: u32, b: u32) -> bool { a < b && a <= b }",
			want: []string{"CL0005:a < b && a <= b"},
		},
		{
			name: "double_comparison_contradictory",
			src:  "fn f(a: u32, b: u32) -> bool { a < b && a > b }",
			want: []string{"CL0006:a < b && a > b"},
		},
		{
			name: "double_comparison_always_true",
			src:  "fn f(a: u32, b: u32) -> bool { a <= b || a > b }",
			want: []string{"CL0007:a <= b || a > b"},
		},
		{
			name: "double_comparison_other_operands",
			src:  "fn f(a: u32, b: u32, c: u32) -> bool { a < b || a == c }",
		},
		{
			name: "collapsible_else_if",
			src:  "fn f(a: bool, b: bool) { if a { } else { if b { } } }",
			want: []string{"CL0010:else { if b { } }"},
		},
		{
			name: "else_if_ok",
			src:  "fn f(a: bool, b: bool) { if a { } else if b { } }",
		},
		{
			name: "else_with_more_statements_ok",
			src:  "fn f(a: bool, b: bool) { if a { } else { if b { } g(); } }",
		},
		{
			name: "destructuring_match",
			src:  "fn f(o: Option<u32>) { match o { Option::Some(v) => g(v), _ => (), } }",
			want: []string{"CL0001:match o { Option::Some(v) => g(v), _ => (), }"},
		},
		{
			name: "destructuring_match_both_enums",
			src:  "fn f(o: Option<u32>) { match o { Option::Some(v) => g(v), Option::None => {}, } }",
			want: []string{"CL0001:match o { Option::Some(v) => g(v), Option::None => {}, }"},
		},
		{
			name: "match_for_equality",
			src:  "fn f(x: u32) { match x { 1 => g(), _ => {}, } }",
			want: []string{"CL0002:match x { 1 => g(), _ => {}, }"},
		},
		{
			name: "match_with_real_fallback_ok",
			src:  "fn f(x: u32) { match x { 1 => g(), _ => h(), } }",
		},
		{
			name: "duplicate_underscore_params",
			src:  "fn f(a: u32, _a: u32) -> u32 { a }",
			want: []string{"CL0011:_a: u32"},
		},
		{
			name: "loop_pop_front_match",
			src:  "fn f(mut s: Span<u32>) { loop { match s.pop_front() { Option::Some(x) => g(x), Option::None => { break; }, } } }",
			want: []string{"CL0012:loop { match s.pop_front() { Option::Some(x) => g(x), Option::None => { break; }, } }"},
		},
		{
			name: "loop_pop_front_if_let",
			src:  "fn f(mut s: Span<u32>) { loop { if let Option::Some(x) = s.pop_front() { g(x); } else { break; } } }",
			want: []string{"CL0012:loop { if let Option::Some(x) = s.pop_front() { g(x); } else { break; } }"},
		},
		{
			name: "equatable_if_let",
			src:  "fn f(x: u32) { if let 1 = x { } }",
			want: []string{"CL0013:if let 1 = x { }"},
		},
		{
			name: "if_let_destructuring_ok",
			src:  "fn f(o: Option<u32>) -> u32 { if let Option::Some(v) = o { v } else { 0 } }",
		},
		{
			name: "unused_variable",
			src:  "fn f() { let x = 1; }",
			want: []string{"CL0014:x"},
		},
		{
			name: "unused_import",
			src:  "use core::array::ArrayTrait;\nfn f() {}",
			want: []string{"CL0015:ArrayTrait"},
		},
		{
			name: "impl_functions",
			src:  "impl I of T { fn m(self: @u32) -> bool { ((true)) } }",
			want: []string{"CL0003:((true))"},
		},
		{
			name: "nested_module",
			src:  "mod inner { fn f(x: bool) -> bool { x != false } }",
			want: []string{"CL0009:x != false"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeSource(t, tt.src+"\n", Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyzeRespectsSelection(t *testing.T) {
	sel, err := NewSelection(nil, []string{"unused_variable"})
	if err != nil {
		t.Fatal(err)
	}
	got := analyzeSource(t, "fn f() { let x = ((1)); }\n", Options{Selection: sel})
	if diff := cmp.Diff([]string{"CL0003:((1))"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticsCarryAnchors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte("fn f(x: u32) -> u32 {\n    ((x))\n}\n")))
	res := parser.ParseFile(file, parser.Options{})
	diags := Analyze(sema.Build(res.Tree, "lib"), Options{})
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	id, ok := res.Tree.Lookup(diags[0].Anchor)
	if !ok || res.Tree.Kind(id) != ast.KindParen {
		t.Fatalf("anchor does not resolve to the paren expression")
	}
	if d := diags[0]; d.Severity != diag.SevWarning || Classify(d.Message) != DoubleParens {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}
