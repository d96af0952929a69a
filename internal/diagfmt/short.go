package diagfmt

import (
	"bufio"
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// Short writes one finding per line, grep-friendly:
//
//	path:line:col: severity CODE message [fix]
//
// Lines are ordered by path, then offset, then code. The marker is appended
// when the finding carries at least one fix.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	items := slices.Clone(bag.Items())
	slices.SortStableFunc(items, func(a, b diag.Diagnostic) int {
		return cmp.Or(
			strings.Compare(fs.Get(a.Primary.File).Path, fs.Get(b.Primary.File).Path),
			cmp.Compare(a.Primary.Start, b.Primary.Start),
			cmp.Compare(a.Code, b.Code),
		)
	})

	bw := bufio.NewWriter(w)
	for i := range items {
		writeShortLine(bw, fs, &items[i])
	}
	return bw.Flush()
}

func writeShortLine(w *bufio.Writer, fs *source.FileSet, d *diag.Diagnostic) {
	pos, _ := fs.Resolve(d.Primary)
	w.WriteString(fs.Get(d.Primary.File).Path)
	w.WriteByte(':')
	w.WriteString(strconv.FormatUint(uint64(pos.Line), 10))
	w.WriteByte(':')
	w.WriteString(strconv.FormatUint(uint64(pos.Col), 10))
	w.WriteString(": ")
	w.WriteString(d.Severity.Label())
	w.WriteByte(' ')
	w.WriteString(d.Code.ID())
	w.WriteByte(' ')
	w.WriteString(oneLine(d.Message))
	if len(d.Fixes) > 0 {
		w.WriteString(" [fix]")
	}
	w.WriteByte('\n')
}

// oneLine складывает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
