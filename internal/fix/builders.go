package fix

import (
	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// Option adjusts fix metadata at construction. Without options a fix is an
// always-safe quickfix.
type Option func(*diag.Fix)

// ForLint keys the fix by the lint code; `fix --only` and the reports
// match on it.
func ForLint(code diag.Code) Option {
	return WithID(code.ID())
}

func WithID(id string) Option {
	return func(f *diag.Fix) { f.ID = id }
}

// Safety lowers (or raises) how freely the engine may apply the fix.
func Safety(app diag.FixApplicability) Option {
	return func(f *diag.Fix) { f.Applicability = app }
}

// Refactor marks a fix that restructures code rather than repairing it.
func Refactor() Option {
	return func(f *diag.Fix) { f.Kind = diag.FixKindRefactor }
}

// Preferred: при нескольких фиксах на диагностику движок берёт этот.
func Preferred() Option {
	return func(f *diag.Fix) { f.IsPreferred = true }
}

func newFix(title string, opts []Option) diag.Fix {
	f := diag.Fix{Title: title, Kind: diag.FixKindQuickFix, Applicability: diag.FixApplicabilityAlwaysSafe}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// ReplaceSpan builds a single-edit fix. A non-empty expect is checked
// against the file before the edit is applied.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	f := newFix(title, opts)
	f.Edits = []diag.TextEdit{{Span: span, NewText: newText, OldText: expect}}
	return f
}

// Lazy defers the edits to thunk; metadata set here wins over the built fix.
func Lazy(title string, thunk diag.FixThunk, opts ...Option) diag.Fix {
	f := newFix(title, opts)
	f.Thunk = thunk
	return f
}
