// Package quickfix turns lint diagnostics into text replacements.
//
// Compute is pure: it reads the syntax tree the diagnostic was produced from
// and never re-runs detection. Applying replacements to files is the job of
// internal/fix.
package quickfix

import (
	"context"
	"fmt"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/fix"
	"cairolint/internal/lint"
	"cairolint/internal/source"
	"cairolint/internal/trace"
)

// Replacement is a literal edit: Span becomes Text. Span is the node's
// trivia-free span unless the routine also removes whitespace before it.
type Replacement struct {
	Span source.Span
	Text string
}

type routine func(t *ast.Tree, node ast.NodeID) (Replacement, bool)

var routines = map[lint.Category]routine{
	lint.UnusedVariable:     fixUnusedVariable,
	lint.DoubleParens:       fixDoubleParens,
	lint.BreakWithUnit:      fixBreakUnit,
	lint.BoolComparison:     fixBoolComparison,
	lint.DoubleComparison:   fixDoubleComparison,
	lint.DestructuringMatch: fixDestructuringMatch,
	lint.CollapsibleElseIf:  fixCollapsibleElseIf,
}

// Compute returns the replacement for d, or ok=false when its category has no
// fix. A non-nil error means the anchor is stale or the routine hit a node it
// cannot handle; the diagnostic itself stays valid.
func Compute(ctx context.Context, t *ast.Tree, d diag.Diagnostic) (rep Replacement, ok bool, err error) {
	rule, known := lint.RuleForMessage(d.Message)
	if !known || rule.Fix != lint.FixAvailable {
		return Replacement{}, false, nil
	}
	fn := routines[rule.Category]
	if fn == nil {
		return Replacement{}, false, nil
	}
	node, found := t.Lookup(d.Anchor)
	if !found {
		return Replacement{}, false, fmt.Errorf("%s at %s: %w", rule.Name(), d.Anchor, ErrStaleAnchor)
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cv, isContract := r.(contractViolation)
		if !isContract {
			panic(r)
		}
		rep, ok = Replacement{}, false
		err = fmt.Errorf("%s at %s: %w: %w", rule.Name(), d.Anchor, ErrContract, cv.err)
		trace.Error(ctx, trace.ScopeNode, "quickfix", err)
	}()

	rep, ok = fn(t, node)
	if ok {
		trace.Point(ctx, trace.ScopeNode, "quickfix:"+rule.Name(), rep.Span.String())
	}
	return rep, ok, nil
}

// Fix wraps Compute into a diag.Fix. The edit is guarded by the current text
// of the target, so the engine refuses it once the file has changed.
func Fix(ctx context.Context, t *ast.Tree, d diag.Diagnostic) (diag.Fix, bool, error) {
	rep, ok, err := Compute(ctx, t, d)
	if err != nil || !ok {
		return diag.Fix{}, false, err
	}
	rule, _ := lint.RuleForMessage(d.Message)
	return fix.ReplaceSpan(fixTitle(rule.Category), rep.Span, rep.Text, t.File.Text(rep.Span),
		fix.ForLint(d.Code),
		fix.Safety(applicability(rule.Category)),
		fix.Preferred(),
	), true, nil
}

// Thunk defers Fix until the engine asks for it. A routine that finds nothing
// to rewrite declines with diag.ErrNoFix, which the engine drops silently.
func Thunk(ctx context.Context, t *ast.Tree, d diag.Diagnostic) diag.FixThunk {
	return diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) {
		f, ok, err := Fix(ctx, t, d)
		if err != nil {
			return diag.Fix{}, err
		}
		if !ok {
			return diag.Fix{}, fmt.Errorf("%s: %w", d.Code.ID(), diag.ErrNoFix)
		}
		return f, nil
	})
}

// Fixable reports whether diagnostics with this message have a fix routine.
// The routine may still find nothing to rewrite (a comment in the way, a
// double comparison that is always true); Attach checks that.
func Fixable(message string) bool {
	rule, ok := lint.RuleForMessage(message)
	return ok && rule.Fix == lint.FixAvailable && routines[rule.Category] != nil
}

func fixTitle(c lint.Category) string {
	switch c {
	case lint.UnusedVariable:
		return "prefix the binding with `_`"
	case lint.DoubleParens:
		return "remove redundant parentheses"
	case lint.BreakWithUnit:
		return "drop the unit value"
	case lint.BoolComparison:
		return "use the boolean directly"
	case lint.DoubleComparison:
		return "merge into one comparison"
	case lint.DestructuringMatch:
		return "rewrite as `if let`"
	case lint.CollapsibleElseIf:
		return "collapse into `else if`"
	}
	return "apply fix"
}

func applicability(c lint.Category) diag.FixApplicability {
	switch c {
	case lint.DestructuringMatch, lint.CollapsibleElseIf:
		return diag.FixApplicabilitySafeWithHeuristics
	}
	return diag.FixApplicabilityAlwaysSafe
}

// TreeSource yields the tree diagnostics were produced from. The driver
// passes a lazy re-parse for diagnostics restored from its cache.
type TreeSource func() (*ast.Tree, error)

// Attach computes the fix of every fixable diagnostic while the tree is at
// hand, so only diagnostics that really have one carry it. A routine error is
// kept as a failing lazy fix and surfaces when fixes are applied. The slice is
// modified in place and returned.
func Attach(ctx context.Context, t *ast.Tree, diags []diag.Diagnostic) []diag.Diagnostic {
	for i := range diags {
		d := diags[i]
		if !Fixable(d.Message) {
			continue
		}
		f, ok, err := Fix(ctx, t, d)
		switch {
		case err != nil:
			diags[i].Fixes = append(diags[i].Fixes, lazyFix(d, diag.FixThunkFunc(func(diag.FixBuildContext) (diag.Fix, error) {
				return diag.Fix{}, err
			})))
		case ok:
			diags[i].Fixes = append(diags[i].Fixes, f)
		}
	}
	return diags
}

// AttachFrom gives each diagnostic a lazy fix built from the tree src yields
// on first use. It is meant for diagnostics already known to have a fix, such
// as cache entries recorded with one.
func AttachFrom(ctx context.Context, src TreeSource, diags []diag.Diagnostic) []diag.Diagnostic {
	for i := range diags {
		d := diags[i]
		if !Fixable(d.Message) {
			continue
		}
		diags[i].Fixes = append(diags[i].Fixes, lazyFix(d, diag.FixThunkFunc(func(bctx diag.FixBuildContext) (diag.Fix, error) {
			t, err := src()
			if err != nil {
				return diag.Fix{}, fmt.Errorf("%s: %w", d.Code.ID(), err)
			}
			return Thunk(ctx, t, d).Build(bctx)
		})))
	}
	return diags
}

func lazyFix(d diag.Diagnostic, thunk diag.FixThunk) diag.Fix {
	rule, _ := lint.RuleForMessage(d.Message)
	return fix.Lazy(fixTitle(rule.Category), thunk,
		fix.ForLint(d.Code),
		fix.Safety(applicability(rule.Category)),
	)
}
