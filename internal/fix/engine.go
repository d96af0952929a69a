package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/btree"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// Apply materialises the fixes of diagnostics, picks the ones opts asks for
// and applies them. Every edit is checked against the original content and
// each file is rewritten in one pass. A fix overlapping an accepted one is
// skipped with ReasonConflict; running the command again picks it up.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	res := &ApplyResult{}
	if fs == nil {
		return res, errors.New("fix: nil FileSet")
	}
	cands := res.collect(diag.FixBuildContext{FileSet: fs}, diagnostics)
	if len(cands) == 0 {
		return res, ErrNoFixes
	}
	picked := res.pick(cands, opts)

	plan := editPlan{fs: fs, dryRun: opts.DryRun, files: make(map[source.FileID]*editSet)}
	for i := range picked {
		c := &picked[i]
		if reason := plan.check(c); reason != "" {
			res.skip(c, reason)
			continue
		}
		plan.accept(c)
		res.Applied = append(res.Applied, AppliedFix{
			ID:            c.fix.ID,
			Title:         c.fix.Title,
			Code:          c.diag.Code,
			Message:       c.diag.Message,
			Applicability: c.fix.Applicability,
			PrimaryPath:   fs.DisplayPath(c.diag.Primary.File, source.PathShort),
			EditCount:     len(c.fix.Edits),
		})
	}
	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}
	var err error
	res.FileChanges, err = plan.write()
	return res, err
}

// editSet - принятые правки одного файла по началу спана. Принятые правки
// не пересекаются, поэтому для проверки новой хватает соседей.
type editSet struct {
	edits btree.Map[uint32, diag.TextEdit]
}

func (s *editSet) overlaps(e diag.TextEdit) bool {
	if _, taken := s.edits.Get(e.Span.Start); taken {
		return true
	}
	it := s.edits.Iter()
	if !it.Seek(e.Span.Start) {
		return it.Last() && editsOverlap(it.Value(), e)
	}
	if editsOverlap(it.Value(), e) {
		return true
	}
	return it.Prev() && editsOverlap(it.Value(), e)
}

type editPlan struct {
	fs     *source.FileSet
	dryRun bool
	files  map[source.FileID]*editSet
}

// check returns why c cannot be applied, or "".
func (p *editPlan) check(c *candidate) string {
	for i, e := range c.fix.Edits {
		f := p.fs.Get(e.Span.File)
		switch {
		case e.Span.End < e.Span.Start || int(e.Span.End) > len(f.Content):
			return ReasonOutOfRange
		case !p.dryRun && f.Flags&source.FileVirtual != 0:
			return ReasonVirtual
		case e.OldText != "" && f.Text(e.Span) != e.OldText:
			return ReasonStale
		}
		if set := p.files[e.Span.File]; set != nil && set.overlaps(e) {
			return ReasonConflict
		}
		if slices.ContainsFunc(c.fix.Edits[:i], func(prev diag.TextEdit) bool {
			return prev.Span.File == e.Span.File && editsOverlap(prev, e)
		}) {
			return ReasonConflict
		}
	}
	return ""
}

func (p *editPlan) accept(c *candidate) {
	for _, e := range c.fix.Edits {
		set := p.files[e.Span.File]
		if set == nil {
			set = &editSet{}
			p.files[e.Span.File] = set
		}
		set.edits.Set(e.Span.Start, e)
	}
}

// write splices every touched file and, unless dry-running, saves it with
// its old mode. Changes come back sorted by path.
func (p *editPlan) write() ([]FileChange, error) {
	changes := make([]FileChange, 0, len(p.files))
	for id, set := range p.files {
		f := p.fs.Get(id)
		after := splice(f.Content, set)
		if !p.dryRun {
			if err := overwrite(f.Path, after); err != nil {
				return changes, err
			}
		}
		changes = append(changes, FileChange{
			Path:      p.fs.DisplayPath(id, source.PathRelative),
			EditCount: set.edits.Len(),
			Before:    f.Content,
			After:     after,
		})
	}
	slices.SortFunc(changes, func(a, b FileChange) int { return strings.Compare(a.Path, b.Path) })
	return changes, nil
}

func overwrite(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// splice applies edits from the last offset to the first so that earlier
// offsets stay valid.
func splice(content []byte, set *editSet) []byte {
	out := slices.Clone(content)
	set.edits.Reverse(func(_ uint32, e diag.TextEdit) bool {
		out = slices.Replace(out, int(e.Span.Start), int(e.Span.End), []byte(e.NewText)...)
		return true
	})
	return out
}

// editsOverlap compares half-open spans. Two insertions never overlap; an
// insertion overlaps a replacement only strictly inside it or at its start.
func editsOverlap(a, b diag.TextEdit) bool {
	as, ae, bs, be := a.Span.Start, a.Span.End, b.Span.Start, b.Span.End
	switch {
	case as == ae && bs == be:
		return false
	case as == ae:
		return bs <= as && as < be
	case bs == be:
		return as <= bs && bs < ae
	}
	return as < be && bs < ae
}
