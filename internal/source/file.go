package source

// File is one loaded source with its line index.
type File struct {
	ID      FileID
	Path    string // всегда со слэшами
	Content []byte
	LineIdx []uint32 // оффсеты всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

func (f *File) size() uint32 {
	return uint32(len(f.Content)) // #nosec G115 -- длина проверена в Add
}

// Text returns the bytes under span; the span is clamped to the content.
func (f *File) Text(span Span) string {
	n := f.size()
	start, end := min(span.Start, n), min(span.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// Position converts a byte offset into a line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// LineCount counts a trailing unterminated line, so "a\nb" has two lines
// and "a\n" has two as well, the last one empty.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 // #nosec G115 -- длина проверена в Add
}

// LineRange returns the byte range of line n (1-based) without its '\n'.
// ok is false for n outside 1..LineCount.
func (f *File) LineRange(n uint32) (start, end uint32, ok bool) {
	if n == 0 || n > f.LineCount() {
		return 0, 0, false
	}
	if n > 1 {
		start = f.LineIdx[n-2] + 1
	}
	end = f.size()
	if int(n) <= len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	return start, end, true
}

// Line returns the text of line n, or "" when there is no such line.
func (f *File) Line(n uint32) string {
	start, end, ok := f.LineRange(n)
	if !ok || start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
