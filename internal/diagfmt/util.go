package diagfmt

import (
	"fmt"

	"cairolint/internal/source"
)

// spanText renders "line:col-line:col", or raw offsets "@start..end" when no
// file set is at hand.
func spanText(span source.Span, fs *source.FileSet) string {
	if fs == nil {
		return fmt.Sprintf("@%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	return fs.DisplayPath(id, mode.style())
}
