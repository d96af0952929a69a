package quickfix

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	fixpkg "cairolint/internal/fix"
	"cairolint/internal/lint"
	"cairolint/internal/parser"
	"cairolint/internal/sema"
	"cairolint/internal/source"
	"cairolint/internal/trace"
)

func lintSource(t *testing.T, src string) (*ast.Tree, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	bag := diag.NewBag(0)
	res := parser.ParseFile(file, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors in %q: %d", src, bag.Len())
	}
	return res.Tree, lint.Analyze(sema.Build(res.Tree, "lib"), lint.Options{})
}

func firstOf(t *testing.T, diags []diag.Diagnostic, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range diags {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no %s diagnostic", code.ID())
	return diag.Diagnostic{}
}

// applyFirst fixes the first diagnostic with code and checks that linting the
// result no longer reports code at all.
func applyFirst(t *testing.T, src string, code diag.Code) string {
	t.Helper()
	tree, diags := lintSource(t, src)
	d := firstOf(t, diags, code)
	rep, ok, err := Compute(context.Background(), tree, d)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !ok {
		t.Fatalf("no fix for %s in %q", code.ID(), src)
	}
	out := src[:rep.Span.Start] + rep.Text + src[rep.Span.End:]

	_, again := lintSource(t, out)
	for _, d := range again {
		if d.Code == code {
			t.Fatalf("%s still reported after fix:\n%s", code.ID(), out)
		}
	}
	return out
}

func textDiff(want, got string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func TestSimpleFixes(t *testing.T) {
	tests := []struct {
		name string
		code diag.Code
		src  string
		want string
	}{
		{
			name: "double_parens",
			code: diag.LintDoubleParens,
			src:  "fn f(x: u32, y: u32) -> u32 {\n    let z = ((x + y));\n    z\n}\n",
			want: "fn f(x: u32, y: u32) -> u32 {\n    let z = x + y;\n    z\n}\n",
		},
		{
			name: "triple_parens",
			code: diag.LintDoubleParens,
			src:  "fn f(a: u32) -> u32 { (((a))) }",
			want: "fn f(a: u32) -> u32 { a }",
		},
		{
			name: "double_parens_keeps_grouping",
			code: diag.LintDoubleParens,
			src:  "fn f(a: u32, x: u32, y: u32) -> u32 { a * ((x + y)) }",
			want: "fn f(a: u32, x: u32, y: u32) -> u32 { a * (x + y) }",
		},
		{
			name: "double_parens_leading_space",
			code: diag.LintDoubleParens,
			src:  "fn f(a: u32) -> u32 {\n    let b =    ((a));\n    b\n}",
			want: "fn f(a: u32) -> u32 {\n    let b =    a;\n    b\n}",
		},
		{
			name: "break_unit",
			code: diag.LintBreakUnit,
			src:  "fn f() {\n    loop {\n        break ();\n    }\n}\n",
			want: "fn f() {\n    loop {\n        break;\n    }\n}\n",
		},
		{
			name: "break_unit_wide_space",
			code: diag.LintBreakUnit,
			src:  "fn f() {\n    loop {\n        break  ();\n    }\n}\n",
			want: "fn f() {\n    loop {\n        break;\n    }\n}\n",
		},
		{
			name: "break_unit_spaced_parens",
			code: diag.LintBreakUnit,
			src:  "fn f() {\n    loop {\n        break ( );\n    }\n}\n",
			want: "fn f() {\n    loop {\n        break;\n    }\n}\n",
		},
		{
			name: "break_unit_keeps_comment",
			code: diag.LintBreakUnit,
			src:  "fn f() {\n    loop {\n        break /* done */ ();\n    }\n}\n",
			want: "fn f() {\n    loop {\n        break /* done */ ;\n    }\n}\n",
		},
		{
			name: "double_comparison_simplify",
			code: diag.LintDoubleComparisonSimplify,
			src:  "fn f(a: u32, b: u32) -> bool { a < b || a == b }",
			want: "fn f(a: u32, b: u32) -> bool { a <= b }",
		},
		{
			name: "double_comparison_redundant",
			code: diag.LintDoubleComparisonRedundant,
			src:  "fn f(a: u32, b: u32) -> bool { a <= b || a < b }",
			want: "fn f(a: u32, b: u32) -> bool { a <= b }",
		},
		{
			name: "double_comparison_swapped",
			code: diag.LintDoubleComparisonSimplify,
			src:  "fn f(a: u32, b: u32) -> bool { a > b || b > a }",
			want: "fn f(a: u32, b: u32) -> bool { a != b }",
		},
		{
			name: "unused_let",
			code: diag.LintUnusedVariable,
			src:  "fn f() {\n    let x = 1;\n}\n",
			want: "fn f() {\n    let _x = 1;\n}\n",
		},
		{
			name: "unused_param",
			code: diag.LintUnusedVariable,
			src:  "fn f(x: u32) {}",
			want: "fn f(_x: u32) {}",
		},
		{
			name: "unused_shorthand_field",
			code: diag.LintUnusedVariable,
			src:  "fn f(p: Point) {\n    let Point { x, y } = p;\n    y;\n}\n",
			want: "fn f(p: Point) {\n    let Point { x: _x, y } = p;\n    y;\n}\n",
		},
		{
			name: "destructuring_match_wildcard",
			code: diag.LintDestructuringMatch,
			src: "fn f(x: Option<u32>) -> u32 {\n" +
				"    match x {\n" +
				"        // the value\n" +
				"        Some(v) => { v },\n" +
				"        _ => { () },\n" +
				"    }\n" +
				"}\n",
			want: "fn f(x: Option<u32>) -> u32 {\n" +
				"    // the value\n" +
				"    if let Some(v) = x { v }\n" +
				"}\n",
		},
		{
			name: "destructuring_match_both_enums",
			code: diag.LintDestructuringMatch,
			src:  "fn f(o: Option<u32>) { match o { Option::Some(v) => g(v), Option::None => {}, } }",
			want: "fn f(o: Option<u32>) { if let Option::Some(v) = o { g(v) } }",
		},
		{
			name: "destructuring_match_wildcard_first",
			code: diag.LintDestructuringMatch,
			src:  "fn f(o: Option<u32>) { match o { _ => (), Option::Some(v) => g(v), } }",
			want: "fn f(o: Option<u32>) { if let Option::Some(v) = o { g(v) } }",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyFirst(t, tc.src, tc.code)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("fix mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoolComparisonTruthTable(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"x == true", "x"},
		{"x == false", "!x"},
		{"x != true", "!x"},
		{"x != false", "x"},
		{"true == x", "x"},
		{"false == x", "!x"},
		{"true != x", "!x"},
		{"false != x", "x"},
		{"!x == false", "x"},
		{"(x && y) == false", "!(x && y)"},
		{"g(x) != true", "!g(x)"},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			src := "fn f(x: bool, y: bool) -> bool { y; " + tc.expr + " }"
			got := applyFirst(t, src, diag.LintBoolComparison)
			want := "fn f(x: bool, y: bool) -> bool { y; " + tc.want + " }"
			if got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
}

func TestCollapsibleElseIfFix(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "inner_else",
			src: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else {
        if b {
            y();
        } else {
            z();
        }
    }
}
`,
			want: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else if b {
        y();
    } else {
        z();
    }
}
`,
		},
		{
			name: "no_inner_else",
			src: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else {
        if b {
            y();
        }
    }
}
`,
			want: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else if b {
        y();
    }
}
`,
		},
		{
			name: "keeps_comments",
			src: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else {
        if b {
            // only when b
            y();
        }
    }
}
`,
			want: `fn f(a: bool, b: bool) {
    if a {
        x();
    } else if b {
        // only when b
        y();
    }
}
`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyFirst(t, tc.src, diag.LintCollapsibleElseIf)
			if got != tc.want {
				t.Fatalf("fix mismatch:\n%s", textDiff(tc.want, got))
			}
		})
	}
}

func TestCollapsibleElseIfCommentBeforeIf(t *testing.T) {
	src := "fn f(a: bool, b: bool) {\n    if a {\n    } else {\n        // why\n        if b {\n        }\n    }\n}\n"
	tree, diags := lintSource(t, src)
	d := firstOf(t, diags, diag.LintCollapsibleElseIf)
	_, ok, err := Compute(context.Background(), tree, d)
	if err != nil || ok {
		t.Fatalf("expected no fix and no error, got ok=%v err=%v", ok, err)
	}
}

func TestNoFixCategories(t *testing.T) {
	tests := []struct {
		name string
		code diag.Code
		src  string
	}{
		{"contradiction", diag.LintDoubleComparisonContradicts, "fn f(a: u32, b: u32) -> bool { a < b && a > b }"},
		{"always_true", diag.LintDoubleComparisonAlwaysTrue, "fn f(a: u32, b: u32) -> bool { a <= b || a > b }"},
		{"unused_import", diag.LintUnusedImport, "use core::option::OptionTrait;\nfn f() {}\n"},
		{"match_for_equality", diag.LintMatchForEquality, "fn f(x: u32) { match x { 1 => g(), _ => (), } }"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, diags := lintSource(t, tc.src)
			d := firstOf(t, diags, tc.code)
			_, ok, err := Compute(context.Background(), tree, d)
			if err != nil || ok {
				t.Fatalf("expected no fix, got ok=%v err=%v", ok, err)
			}
			if tc.code != diag.LintDoubleComparisonContradicts && tc.code != diag.LintDoubleComparisonAlwaysTrue && Fixable(d.Message) {
				t.Fatalf("%s must not be fixable", tc.code.ID())
			}
		})
	}
}

func TestUnknownMessageHasNoFix(t *testing.T) {
	tree, _ := lintSource(t, "fn f() {}")
	d := diag.New(diag.SevWarning, diag.LintDoubleParens, source.Span{}, "something else")
	_, ok, err := Compute(context.Background(), tree, d)
	if ok || err != nil {
		t.Fatalf("unknown message: ok=%v err=%v", ok, err)
	}
}

func TestStaleAnchor(t *testing.T) {
	tree, diags := lintSource(t, "fn f(a: u32) -> u32 { ((a)) }")
	d := firstOf(t, diags, diag.LintDoubleParens)
	d.Anchor.Span.Start++
	_, _, err := Compute(context.Background(), tree, d)
	if !errors.Is(err, ErrStaleAnchor) {
		t.Fatalf("got %v, want ErrStaleAnchor", err)
	}
}

func TestContractViolation(t *testing.T) {
	tree, diags := lintSource(t, "fn f(a: u32) -> u32 { ((a)) }")
	d := firstOf(t, diags, diag.LintDoubleParens)
	// тот же текст сообщения, но якорь на функции: детектор так не делает
	fn := tree.ChildOfKind(tree.Root, ast.KindFunction)
	d.Anchor = tree.Anchor(fn)

	ring := trace.NewRingTracer(8, trace.LevelError)
	ctx := trace.WithTracer(context.Background(), ring)
	rep, ok, err := Compute(ctx, tree, d)
	if !errors.Is(err, ErrContract) {
		t.Fatalf("got %v, want ErrContract", err)
	}
	if ok || rep.Text != "" {
		t.Fatalf("contract violation must not produce text, got %+v", rep)
	}
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != trace.KindError {
		t.Fatalf("expected one error event, got %+v", events)
	}
}

func TestFixCarriesGuard(t *testing.T) {
	tree, diags := lintSource(t, "fn f(a: u32) -> u32 { ((a)) }")
	d := firstOf(t, diags, diag.LintDoubleParens)
	f, ok, err := Fix(context.Background(), tree, d)
	if err != nil || !ok {
		t.Fatalf("Fix: ok=%v err=%v", ok, err)
	}
	want := []diag.TextEdit{{Span: d.Anchor.Span, NewText: "a", OldText: "((a))"}}
	if diff := cmp.Diff(want, f.Edits); diff != "" {
		t.Fatalf("edits mismatch (-want +got):\n%s", diff)
	}
	if f.ID != "CL0003" {
		t.Fatalf("fix id = %q", f.ID)
	}

	built, err := Thunk(context.Background(), tree, d).Build(diag.FixBuildContext{})
	if err != nil {
		t.Fatalf("thunk: %v", err)
	}
	if diff := cmp.Diff(f.Edits, built.Edits); diff != "" {
		t.Fatalf("thunk differs (-fix +thunk):\n%s", diff)
	}
}

func TestAttachAndApply(t *testing.T) {
	src := "fn f(a: u32, x: bool) -> bool {\n    let b = ((a));\n    b == 1 && x == true\n}\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	res := parser.ParseFile(file, parser.Options{})
	diags := Attach(context.Background(), res.Tree, lint.Analyze(sema.Build(res.Tree, "lib"), lint.Options{}))

	withFix := 0
	for _, d := range diags {
		if len(d.Fixes) > 0 {
			withFix++
		}
	}
	if withFix != 2 {
		t.Fatalf("got %d diagnostics with fixes, want 2", withFix)
	}

	out, err := fixpkg.Apply(fs, diags, fixpkg.ApplyOptions{Mode: fixpkg.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := "fn f(a: u32, x: bool) -> bool {\n    let b = a;\n    b == 1 && x\n}\n"
	if got := string(out.FileChanges[0].After); got != want {
		t.Fatalf("mismatch:\n%s", textDiff(want, got))
	}
}

func TestAttachSkipsDeclinedFixes(t *testing.T) {
	src := "fn f(a: bool, b: bool) {\n    if a {\n    } else {\n        // why\n        if b {\n        }\n    }\n    loop {\n        break  ();\n    }\n}\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	res := parser.ParseFile(file, parser.Options{})
	diags := Attach(context.Background(), res.Tree, lint.Analyze(sema.Build(res.Tree, "lib"), lint.Options{}))

	fixes := make(map[string]int)
	for _, d := range diags {
		fixes[d.Code.ID()] += len(d.Fixes)
	}
	want := map[string]int{"CL0008": 1, "CL0010": 0}
	for code, n := range want {
		if got, seen := fixes[code]; !seen || got != n {
			t.Errorf("%s: %d fix(es), seen=%v, want %d", code, got, seen, n)
		}
	}

	out, err := fixpkg.Apply(fs, diags, fixpkg.ApplyOptions{Mode: fixpkg.ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Skipped) != 0 {
		t.Fatalf("skipped = %+v", out.Skipped)
	}
	if got := string(out.FileChanges[0].After); !strings.Contains(got, "        break;\n") || !strings.Contains(got, "// why") {
		t.Fatalf("fixed text:\n%s", got)
	}
}

func TestThunkDeclinesWithErrNoFix(t *testing.T) {
	src := "fn f(a: bool, b: bool) {\n    if a {\n    } else {\n        // why\n        if b {\n        }\n    }\n}\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("lib.cairo", []byte(src)))
	tree := parser.ParseFile(file, parser.Options{}).Tree
	d := firstOf(t, lint.Analyze(sema.Build(tree, "lib"), lint.Options{}), diag.LintCollapsibleElseIf)

	_, err := Thunk(context.Background(), tree, d).Build(diag.FixBuildContext{FileSet: fs})
	if !errors.Is(err, diag.ErrNoFix) {
		t.Fatalf("got %v, want ErrNoFix", err)
	}

	// ленивая правка из кэша, которая ничего не нашла, не считается ошибкой
	restored := AttachFrom(context.Background(), func() (*ast.Tree, error) { return tree, nil }, []diag.Diagnostic{d})
	if len(restored[0].Fixes) != 1 {
		t.Fatalf("expected a lazy fix, got %d", len(restored[0].Fixes))
	}
	out, err := fixpkg.Apply(fs, restored, fixpkg.ApplyOptions{Mode: fixpkg.ApplyModeAll, DryRun: true})
	if !errors.Is(err, fixpkg.ErrNoFixes) || len(out.Skipped) != 0 {
		t.Fatalf("err=%v skipped=%+v", err, out.Skipped)
	}
}
