package diagfmt

import (
	"io"

	"github.com/goccy/go-json"

	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/source"
)

// Report is the document written by `diag --format json`: findings grouped
// per file in bag order, plus a summary.
type Report struct {
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
}

type FileReport struct {
	Path     string    `json:"path"`
	Findings []Finding `json:"findings"`
}

// Summary counts what was written; Dropped covers the bag limit and --max.
type Summary struct {
	Findings   int            `json:"findings"`
	Files      int            `json:"files"`
	BySeverity map[string]int `json:"by_severity,omitempty"`
	Dropped    int            `json:"dropped,omitempty"`
}

type Finding struct {
	Code     string       `json:"code"`
	Lint     string       `json:"lint,omitempty"`
	Category string       `json:"category,omitempty"`
	Severity string       `json:"severity"`
	Message  string       `json:"message"`
	Range    Range        `json:"range"`
	Notes    []Note       `json:"notes,omitempty"`
	Fixes    []Suggestion `json:"fixes,omitempty"`
}

// Pos всегда несёт смещение; line/col только с IncludePositions.
type Pos struct {
	Offset uint32 `json:"offset"`
	Line   uint32 `json:"line,omitempty"`
	Col    uint32 `json:"col,omitempty"`
}

type Range struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

type Note struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"` // только если заметка в другом файле
	Range   Range  `json:"range"`
}

// Suggestion is one fix; Error is set instead of Edits when the lazy
// builder failed.
type Suggestion struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Applicability string `json:"applicability"`
	Preferred     bool   `json:"preferred,omitempty"`
	Error         string `json:"error,omitempty"`
	Edits         []Edit `json:"edits,omitempty"`
}

type Edit struct {
	Range  Range    `json:"range"`
	Old    string   `json:"old,omitempty"`
	New    string   `json:"new"`
	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`
}

type reportBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (rb reportBuilder) rangeOf(span source.Span) Range {
	r := Range{Start: Pos{Offset: span.Start}, End: Pos{Offset: span.End}}
	if rb.opts.IncludePositions {
		start, end := rb.fs.Resolve(span)
		r.Start.Line, r.Start.Col = start.Line, start.Col
		r.End.Line, r.End.Col = end.Line, end.Col
	}
	return r
}

func (rb reportBuilder) finding(d *diag.Diagnostic) Finding {
	f := Finding{
		Code:     d.Code.ID(),
		Severity: d.Severity.Label(),
		Message:  d.Message,
		Range:    rb.rangeOf(d.Primary),
	}
	if rule, ok := lint.RuleForCode(d.Code); ok {
		f.Lint = rule.Name()
		f.Category = rule.Category.String()
	}
	if rb.opts.IncludeNotes {
		for _, n := range d.Notes {
			note := Note{Message: n.Msg, Range: rb.rangeOf(n.Span)}
			if n.Span.File != d.Primary.File {
				note.Path = formatPath(rb.fs, n.Span.File, rb.opts.PathMode)
			}
			f.Notes = append(f.Notes, note)
		}
	}
	if rb.opts.IncludeFixes {
		for _, fix := range sortedFixes(d.Fixes) {
			f.Fixes = append(f.Fixes, rb.suggestion(fix))
		}
	}
	return f
}

func (rb reportBuilder) suggestion(fix diag.Fix) Suggestion {
	resolved, err := fix.Resolve(diag.FixBuildContext{FileSet: rb.fs})
	if err != nil {
		return Suggestion{
			ID:            fix.ID,
			Title:         fix.Title,
			Applicability: fix.Applicability.String(),
			Preferred:     fix.IsPreferred,
			Error:         err.Error(),
		}
	}
	s := Suggestion{
		ID:            resolved.ID,
		Title:         resolved.Title,
		Applicability: resolved.Applicability.String(),
		Preferred:     resolved.IsPreferred,
		Edits:         make([]Edit, 0, len(resolved.Edits)),
	}
	for _, te := range resolved.Edits {
		e := Edit{Range: rb.rangeOf(te.Span), Old: te.OldText, New: te.NewText}
		if rb.opts.IncludePreviews {
			if p, err := previewEdit(rb.fs, te); err == nil {
				e.Before, e.After = p.before, p.after
			}
		}
		s.Edits = append(s.Edits, e)
	}
	return s
}

// BuildReport groups the bag into a Report without encoding it.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	rb := reportBuilder{fs: fs, opts: opts}
	rep := Report{
		Files: []FileReport{},
		Summary: Summary{
			Findings: n,
			Dropped:  bag.Dropped() + len(items) - n,
		},
	}
	index := make(map[source.FileID]int)
	for i := range n {
		d := &items[i]
		at, ok := index[d.Primary.File]
		if !ok {
			at = len(rep.Files)
			index[d.Primary.File] = at
			rep.Files = append(rep.Files, FileReport{Path: formatPath(fs, d.Primary.File, opts.PathMode)})
		}
		rep.Files[at].Findings = append(rep.Files[at].Findings, rb.finding(d))
		if rep.Summary.BySeverity == nil {
			rep.Summary.BySeverity = make(map[string]int)
		}
		rep.Summary.BySeverity[d.Severity.Label()]++
	}
	rep.Summary.Files = len(rep.Files)
	return rep
}

// JSON writes the indented report.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
