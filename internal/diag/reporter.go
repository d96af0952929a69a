package diag

import "cairolint/internal/source"

// Reporter receives diagnostics from the lexer and parser.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter складывает всё в Bag (лимит соблюдает сам Bag).
type BagReporter struct{ Bag *Bag }

func (r *BagReporter) Report(d Diagnostic) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// identity - то, по чему две диагностики считаются одной и той же.
type identity struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct diagnostic once. Parser recovery can
// hit the same unexpected token from two rules; only the first report counts.
type DedupReporter struct {
	next Reporter
	seen map[identity]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[identity]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	id := identity{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
	if _, dup := r.seen[id]; dup {
		return
	}
	r.seen[id] = struct{}{}
	r.next.Report(d)
}
