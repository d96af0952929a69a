package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"cairolint/internal/source"
)

// cursor is the lexer's read position. Reads past the end yield 0, so the
// scanners can look ahead without bounds checks.
type cursor struct {
	buf  []byte
	file source.FileID
	off  uint32
	end  uint32
}

func newCursor(f *source.File) cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s: %w", f.Path, err))
	}
	return cursor{buf: f.Content, file: f.ID, end: end}
}

func (c *cursor) done() bool { return c.off >= c.end }

// at смотрит на n байт вперёд.
func (c *cursor) at(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.buf[c.off+n]
}

func (c *cursor) peek() byte { return c.at(0) }

func (c *cursor) advance() {
	if !c.done() {
		c.off++
	}
}

func (c *cursor) skip(n uint32) {
	c.off = min(c.off+n, c.end)
}

// acceptPair consumes a and b only if both follow.
func (c *cursor) acceptPair(a, b byte) bool {
	if c.peek() != a || c.at(1) != b {
		return false
	}
	c.skip(2)
	return true
}

// rune decodes the code point at the cursor; size is 0 at the end.
func (c *cursor) rune() (r rune, size int) {
	if c.done() {
		return utf8.RuneError, 0
	}
	if b := c.buf[c.off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.buf[c.off:c.end])
}

// skipRune steps over one code point; invalid UTF-8 counts as one byte.
func (c *cursor) skipRune() {
	_, size := c.rune()
	c.skip(uint32(size)) // #nosec G115 -- размер руны не больше 4
}

func (c *cursor) spanFrom(start uint32) source.Span {
	return source.Span{File: c.file, Start: start, End: c.off}
}
