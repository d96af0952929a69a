package fix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func replace(code diag.Code, sp source.Span, newText, old string, opts ...Option) diag.Diagnostic {
	opts = append([]Option{ForLint(code)}, opts...)
	return diag.Diagnostic{
		Code:    code,
		Message: code.Title(),
		Primary: sp,
		Fixes:   []diag.Fix{ReplaceSpan("fix "+code.ID(), sp, newText, old, opts...)},
	}
}

func TestApplyAllDescendingSplice(t *testing.T) {
	fs := source.NewFileSet()
	src := "let a = ((x));\nlet b = y == true;\n"
	id := fs.AddVirtual("lib.cairo", []byte(src))

	diags := []diag.Diagnostic{
		replace(diag.LintBoolComparison, span(id, 23, 32), "y", "y == true"),
		replace(diag.LintDoubleParens, span(id, 8, 13), "x", "((x))"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 || len(res.Skipped) != 0 {
		t.Fatalf("applied=%d skipped=%+v", len(res.Applied), res.Skipped)
	}
	// порядок по смещению, не по порядку диагностик
	if res.Applied[0].Code != diag.LintDoubleParens {
		t.Fatalf("first applied = %s", res.Applied[0].ID)
	}
	if len(res.FileChanges) != 1 {
		t.Fatalf("changes = %d", len(res.FileChanges))
	}
	want := "let a = x;\nlet b = y;\n"
	if diff := cmp.Diff(want, string(res.FileChanges[0].After)); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestApplySkipsOverlapping(t *testing.T) {
	fs := source.NewFileSet()
	src := "a * ((x + ((y))))"
	id := fs.AddVirtual("lib.cairo", []byte(src))

	outer := replace(diag.LintDoubleParens, span(id, 4, 17), "(x + ((y)))", "((x + ((y))))")
	inner := replace(diag.LintDoubleParens, span(id, 10, 15), "y", "((y))")
	res, err := Apply(fs, []diag.Diagnostic{inner, outer}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) != 1 {
		t.Fatalf("applied=%+v skipped=%+v", res.Applied, res.Skipped)
	}
	if res.Skipped[0].Reason != ReasonConflict {
		t.Fatalf("reason = %q", res.Skipped[0].Reason)
	}
	if got := string(res.FileChanges[0].After); got != "a * (x + ((y)))" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyAdjacentEditsDoNotConflict(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aabb"))
	diags := []diag.Diagnostic{
		replace(diag.LintDoubleParens, span(id, 0, 2), "A", "aa"),
		replace(diag.LintDoubleParens, span(id, 2, 4), "B", "bb"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := string(res.FileChanges[0].After); got != "AB" {
		t.Fatalf("got %q, skipped %+v", got, res.Skipped)
	}
}

func TestApplyStaleGuard(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("let a = ((x));"))
	d := replace(diag.LintDoubleParens, span(id, 8, 13), "x", "((z))")
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("got %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != ReasonStale {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aa bb cc"))
	diags := []diag.Diagnostic{
		replace(diag.LintBoolComparison, span(id, 6, 8), "C", "cc"),
		replace(diag.LintDoubleParens, span(id, 0, 2), "A", "aa",
			Safety(diag.FixApplicabilitySafeWithHeuristics)),
		replace(diag.LintDoubleParens, span(id, 3, 5), "B", "bb"),
	}
	tests := []struct {
		name string
		opts ApplyOptions
		want string
	}{
		{"once_prefers_always_safe", ApplyOptions{Mode: ApplyModeOnce}, "aa B cc"},
		{"all", ApplyOptions{Mode: ApplyModeAll}, "A B C"},
		{"id", ApplyOptions{Mode: ApplyModeID, TargetID: "CL0003"}, "A B cc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.DryRun = true
			res, err := Apply(fs, diags, tc.opts)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got := string(res.FileChanges[0].After); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}

	_, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeID, TargetID: "CL0099", DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("unknown id: got %v", err)
	}
}

func TestApplyManualReviewSkippedInAll(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aa"))
	d := replace(diag.LintDoubleParens, span(id, 0, 2), "A", "aa",
		Safety(diag.FixApplicabilityManualReview))
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("got %v", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != ReasonManualReview {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyThunkFailure(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aa"))
	boom := errors.New("boom")
	d := diag.Diagnostic{
		Code:    diag.LintCollapsibleElseIf,
		Primary: span(id, 0, 2),
		Fixes: []diag.Fix{Lazy("collapse", diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) {
			return diag.Fix{}, boom
		}))},
	}
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("got %v", err)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "boom") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyDeclinedThunkIsNotSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aa bb"))
	declined := diag.Diagnostic{
		Code:    diag.LintBreakUnit,
		Primary: span(id, 0, 2),
		Fixes: []diag.Fix{Lazy("drop", diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) {
			return diag.Fix{}, fmt.Errorf("CL0008: %w", diag.ErrNoFix)
		}))},
	}
	parens := replace(diag.LintDoubleParens, span(id, 3, 5), "B", "bb")

	res, err := Apply(fs, []diag.Diagnostic{declined, parens}, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Skipped) != 0 || len(res.Applied) != 1 {
		t.Fatalf("applied=%+v skipped=%+v", res.Applied, res.Skipped)
	}
	if got := string(res.FileChanges[0].After); got != "aa B" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyVirtualFileNotWritten(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("lib.cairo", []byte("aa"))
	d := replace(diag.LintDoubleParens, span(id, 0, 2), "A", "aa")
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("got %v", err)
	}
	if res.Skipped[0].Reason != ReasonVirtual {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.cairo")
	if err := os.WriteFile(path, []byte("let a = ((x));\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	fs.SetBaseDir(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	d := replace(diag.LintDoubleParens, span(id, 8, 13), "x", "((x))")
	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "let a = x;\n" {
		t.Fatalf("file = %q", got)
	}
	if res.FileChanges[0].Path != "lib.cairo" || res.FileChanges[0].EditCount != 1 {
		t.Fatalf("change = %+v", res.FileChanges[0])
	}

	diff, err := res.FileChanges[0].Diff()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- a/lib.cairo", "+++ b/lib.cairo", "-let a = ((x));", "+let a = x;"} {
		if !strings.Contains(diff, want) {
			t.Errorf("diff lacks %q:\n%s", want, diff)
		}
	}
}

func TestEditsOverlap(t *testing.T) {
	edit := func(s, e uint32) diag.TextEdit { return diag.TextEdit{Span: span(1, s, e)} }
	tests := []struct {
		a, b diag.TextEdit
		want bool
	}{
		{edit(0, 2), edit(2, 4), false},
		{edit(0, 3), edit(2, 4), true},
		{edit(2, 2), edit(2, 2), false},
		{edit(2, 2), edit(0, 4), true},
		{edit(4, 4), edit(0, 4), false},
		{edit(1, 5), edit(2, 3), true},
	}
	for _, tc := range tests {
		if got := editsOverlap(tc.a, tc.b); got != tc.want {
			t.Errorf("editsOverlap(%v, %v) = %v, want %v", tc.a.Span, tc.b.Span, got, tc.want)
		}
	}
}

func TestEditSetChecksNeighbours(t *testing.T) {
	edit := func(s, e uint32) diag.TextEdit { return diag.TextEdit{Span: span(1, s, e)} }
	var set editSet
	set.edits.Set(2, edit(2, 4))
	set.edits.Set(8, edit(8, 10))

	tests := []struct {
		e    diag.TextEdit
		want bool
	}{
		{edit(0, 2), false},
		{edit(3, 5), true},    // хвост предыдущей
		{edit(5, 9), true},    // начало следующей
		{edit(4, 8), false},   // ровно между
		{edit(8, 8), true},    // та же стартовая позиция
		{edit(12, 14), false}, // после последней
		{edit(9, 12), true},
	}
	for _, tc := range tests {
		if got := set.overlaps(tc.e); got != tc.want {
			t.Errorf("overlaps(%v) = %v, want %v", tc.e.Span, got, tc.want)
		}
	}
}
