package diagfmt

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// editPreview holds the whole lines an edit touches, before and after it.
type editPreview struct {
	before, after []string
}

func previewEdit(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, errors.New("preview needs a FileSet")
	}
	sp := edit.Span
	if sp.End < sp.Start {
		return editPreview{}, fmt.Errorf("inverted edit span %s", sp)
	}
	file := fs.Get(sp.File)
	first, last := fs.Resolve(sp)
	lo, _, ok := file.LineRange(first.Line)
	if !ok {
		return editPreview{}, fmt.Errorf("edit span %s is past the end of %s", sp, file.Path)
	}
	_, hi, _ := file.LineRange(max(first.Line, last.Line))
	if int(hi) < len(file.Content) {
		hi++ // вместе с '\n' последней строки
	}
	if sp.Start < lo || sp.End > hi {
		return editPreview{}, fmt.Errorf("edit span %s leaves lines %d..%d", sp, first.Line, last.Line)
	}

	block := file.Content[lo:hi]
	edited := slices.Concat(block[:sp.Start-lo], []byte(edit.NewText), block[sp.End-lo:])
	return editPreview{before: previewLines(block), after: previewLines(edited)}, nil
}

// previewLines drops trailing newlines so the block does not end with an
// empty line.
func previewLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}
