package quickfix

import (
	"fmt"
	"strings"
)

// CollapseElseIf rewrites the text of an else clause
//
//	else {
//	    if b {
//	        y();
//	    } else {
//	        z();
//	    }
//	}
//
// into
//
//	else if b {
//	    y();
//	} else {
//	    z();
//	}
//
// working on the text alone, so comments and blank lines survive. Lines inside
// the construct lose one indentation level. The level width (delta) is
// measured once, on the first non-blank line after `if`, and reused; input
// indented with tabs is not supported.
//
// Only the exact sequence `else` blank* `{` blank* `if` starts a rewrite.
// Text without it is returned unchanged. Anything other than trivia or an
// `else` between the nested if and the closing brace of the outer block
// yields ErrUnbalanced, as does input that ends mid-construct.
func CollapseElseIf(text string) (string, error) {
	c := collapser{src: text, out: make([]byte, 0, len(text))}
	for c.pos < len(c.src) {
		var err error
		switch c.state {
		case stateScanning:
			c.scan()
		case stateFlattening:
			err = c.flatten()
		case stateDone:
			c.state, c.fl = stateScanning, flattening{}
		}
		if err != nil {
			return "", err
		}
	}
	if c.state == stateFlattening {
		return "", fmt.Errorf("%w: input ends inside the else block", ErrUnbalanced)
	}
	return string(c.out), nil
}

type fsaState uint8

const (
	stateScanning   fsaState = iota // ищем `else { if`
	stateFlattening                 // переносим тело вложенного if на уровень выше
	stateDone                       // внешняя `}` съедена
)

type flattening struct {
	depth int // открытые скобки внутри вложенного if и его else-цепочки
	// afterInner: цепочка вложенного if закрылась; дальше допустимы только
	// trivia, очередной `else` или `}` внешнего блока.
	afterInner bool
	base       int // отступ строки с `if`
	delta      int // ширина одного уровня
	measured   bool
}

type collapser struct {
	src   string
	pos   int
	out   []byte
	state fsaState
	fl    flattening
}

func (c *collapser) emit(ch byte) {
	c.out = append(c.out, ch)
	c.pos++
}

func (c *collapser) scan() {
	if c.comment() || c.literal() {
		return
	}
	m, ok := matchElseIf(c.src, c.pos)
	if !ok {
		c.emit(c.src[c.pos])
		return
	}
	c.out = append(c.out, "else if"...)
	c.pos = m.end
	// `else { if` на одной строке: отступы не трогаем
	c.fl = flattening{base: m.base, measured: !m.newline}
	c.state = stateFlattening
}

func (c *collapser) flatten() error {
	ch := c.src[c.pos]
	switch {
	case ch == '\n':
		c.newline()
	case c.fl.afterInner:
		return c.afterInner()
	case c.comment() || c.literal():
	case ch == '{':
		c.fl.depth++
		c.emit(ch)
	case ch == '}':
		return c.closeBrace()
	default:
		c.emit(ch)
	}
	return nil
}

func (c *collapser) afterInner() error {
	ch := c.src[c.pos]
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r':
		c.emit(ch)
	case c.comment():
	case ch == '}':
		return c.closeBrace()
	case hasWord(c.src, c.pos, "else"):
		c.out = append(c.out, "else"...)
		c.pos += len("else")
		c.fl.afterInner = false
	default:
		return fmt.Errorf("%w: unexpected %q after the nested if", ErrUnbalanced, ch)
	}
	return nil
}

func (c *collapser) closeBrace() error {
	if c.fl.depth > 0 {
		c.fl.depth--
		c.emit('}')
		if c.fl.depth == 0 {
			c.fl.afterInner = true
		}
		return nil
	}
	if !c.fl.afterInner {
		return fmt.Errorf("%w: else block closes before the nested if", ErrUnbalanced)
	}
	// внешняя `}`: её место занимает последняя `}` вложенной цепочки
	c.out = []byte(strings.TrimRight(string(c.out), " \t\r\n"))
	c.pos++
	c.state = stateDone
	return nil
}

// newline copies the line break and re-emits the next line's indentation one
// level shallower.
func (c *collapser) newline() {
	c.emit('\n')
	n := 0
	for c.pos+n < len(c.src) && c.src[c.pos+n] == ' ' {
		n++
	}
	blank := c.pos+n == len(c.src) || c.src[c.pos+n] == '\n'
	if !c.fl.measured && !blank && n != c.fl.base {
		c.fl.delta = n - c.fl.base
		if c.fl.delta < 0 {
			c.fl.delta = -c.fl.delta
		}
		c.fl.measured = true
	}
	c.pos += n
	keep := max(n-c.fl.delta, 0)
	for range keep {
		c.out = append(c.out, ' ')
	}
}

// comment copies a comment verbatim. Line comments stop before '\n'.
func (c *collapser) comment() bool {
	rest := c.src[c.pos:]
	var n int
	switch {
	case strings.HasPrefix(rest, "//"):
		n = strings.IndexByte(rest, '\n')
	case strings.HasPrefix(rest, "/*"):
		n = strings.Index(rest[2:], "*/")
		if n >= 0 {
			n += 4
		}
	default:
		return false
	}
	if n < 0 {
		n = len(rest)
	}
	c.out = append(c.out, rest[:n]...)
	c.pos += n
	return true
}

// literal copies a string or short string literal verbatim.
func (c *collapser) literal() bool {
	quote := c.src[c.pos]
	if quote != '"' && quote != '\'' {
		return false
	}
	i := c.pos + 1
	for i < len(c.src) && c.src[i] != quote {
		if c.src[i] == '\\' {
			i++
		}
		i++
	}
	i = min(i+1, len(c.src))
	c.out = append(c.out, c.src[c.pos:i]...)
	c.pos = i
	return true
}

type elseIfMatch struct {
	end     int // сразу после `if`
	base    int
	newline bool
}

func matchElseIf(s string, i int) (elseIfMatch, bool) {
	if !hasWord(s, i, "else") {
		return elseIfMatch{}, false
	}
	j := skipBlanks(s, i+len("else"))
	if j >= len(s) || s[j] != '{' {
		return elseIfMatch{}, false
	}
	k := skipBlanks(s, j+1)
	if !hasWord(s, k, "if") {
		return elseIfMatch{}, false
	}
	m := elseIfMatch{end: k + len("if")}
	ws := s[j+1 : k]
	if nl := strings.LastIndexByte(ws, '\n'); nl >= 0 {
		m.newline = true
		m.base = strings.Count(ws[nl+1:], " ")
	}
	return m, true
}

// hasWord reports whether word starts at i as a whole identifier.
func hasWord(s string, i int, word string) bool {
	if !strings.HasPrefix(s[i:], word) {
		return false
	}
	if i > 0 && isIdentByte(s[i-1]) {
		return false
	}
	end := i + len(word)
	return end == len(s) || !isIdentByte(s[end])
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
