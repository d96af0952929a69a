package fix

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// candidate - одна материализованная правка вместе с диагностикой.
type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	cover source.Span // от первой до последней правки
	seq   int
}

// collect runs the thunks of every fix. Fixes that fail to build or come
// back empty are recorded as skipped; a thunk declining with diag.ErrNoFix is
// dropped silently.
func (r *ApplyResult) collect(ctx diag.FixBuildContext, diagnostics []diag.Diagnostic) []candidate {
	var out []candidate
	for _, d := range diagnostics {
		for i, lazy := range d.Fixes {
			f, err := lazy.Resolve(ctx)
			if errors.Is(err, diag.ErrNoFix) {
				continue
			}
			if err != nil {
				r.Skipped = append(r.Skipped, SkippedFix{
					ID:     d.Code.ID(),
					Title:  d.Message,
					Code:   d.Code,
					Reason: fmt.Sprintf("failed to build fix #%d %q: %v", i, lazy.Title, err),
				})
				continue
			}
			if f.ID == "" {
				f.ID = d.Code.ID()
			}
			c := candidate{diag: d, fix: f, seq: len(out)}
			if len(f.Edits) == 0 {
				r.skip(&c, ReasonNoEdits)
				continue
			}
			c.cover = f.Edits[0].Span
			for _, e := range f.Edits[1:] {
				c.cover = c.cover.Cover(e.Span)
			}
			out = append(out, c)
		}
	}
	// по позиции, потом по коду; seq сохраняет порядок диагностик
	slices.SortFunc(out, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.cover.File, b.cover.File),
			cmp.Compare(a.cover.Start, b.cover.Start),
			cmp.Compare(a.cover.End, b.cover.End),
			cmp.Compare(a.diag.Code, b.diag.Code),
			cmp.Compare(a.seq, b.seq),
		)
	})
	return out
}

// pick narrows the sorted candidates down to the ones opts asks for.
func (r *ApplyResult) pick(cands []candidate, opts ApplyOptions) []candidate {
	switch opts.Mode {
	case ApplyModeOnce:
		if i := slices.IndexFunc(cands, func(c candidate) bool {
			return c.fix.Applicability == diag.FixApplicabilityAlwaysSafe
		}); i >= 0 {
			return cands[i : i+1]
		}
		return cands[:min(len(cands), 1)]
	case ApplyModeAll:
		var out []candidate
		for i := range cands {
			if cands[i].fix.Applicability == diag.FixApplicabilityManualReview {
				r.skip(&cands[i], ReasonManualReview)
				continue
			}
			out = append(out, cands[i])
		}
		return out
	case ApplyModeID:
		out := slices.DeleteFunc(slices.Clone(cands), func(c candidate) bool { return c.fix.ID != opts.TargetID })
		if len(out) == 0 {
			r.Skipped = append(r.Skipped, SkippedFix{ID: opts.TargetID, Reason: ReasonIDNotFound})
		}
		return out
	}
	return nil
}
