package diag

import (
	"errors"

	"cairolint/internal/source"
)

// FixKind - грубая классификация правки.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactor
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactor:
		return "refactor"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	}
	return "unknown"
}

// FixApplicability describes how safe it is to apply a fix without review.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// TextEdit replaces Span with NewText. A non-empty OldText guards the edit:
// the engine refuses to apply it when the current text differs.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixBuildContext is passed to lazy fix builders.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk lazily builds a fix. Build may fail; the engine reports the
// failure as a skipped fix instead of aborting the run.
type FixThunk interface {
	Build(ctx FixBuildContext) (Fix, error)
}

// FixThunkFunc adapts a function to FixThunk.
type FixThunkFunc func(ctx FixBuildContext) (Fix, error)

func (f FixThunkFunc) Build(ctx FixBuildContext) (Fix, error) { return f(ctx) }

type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
	Thunk         FixThunk // если задан, Edits строятся лениво
}

// ErrNestedThunk is returned when a thunk produced a fix with a thunk inside.
var ErrNestedThunk = errors.New("fix thunk returned another thunk")

// ErrNoFix is returned by a thunk that found nothing to rewrite. This is not
// a failure: the fix engine drops such fixes without reporting them.
var ErrNoFix = errors.New("no fix for this diagnostic")

// Resolve materialises the fix, running its thunk if present. Metadata set on
// the outer fix (ID, title) wins over empty fields of the built one.
func (f Fix) Resolve(ctx FixBuildContext) (Fix, error) {
	if f.Thunk == nil {
		return f, nil
	}
	built, err := f.Thunk.Build(ctx)
	if err != nil {
		return Fix{}, err
	}
	if built.Thunk != nil {
		return Fix{}, ErrNestedThunk
	}
	if built.ID == "" {
		built.ID = f.ID
	}
	if built.Title == "" {
		built.Title = f.Title
	}
	return built, nil
}
