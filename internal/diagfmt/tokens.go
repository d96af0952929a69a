package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"cairolint/internal/source"
	"cairolint/internal/token"
)

// TokenRecord is one line of `debug tokens --json`.
type TokenRecord struct {
	Index   int      `json:"index"`
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Leading []string `json:"leading,omitempty"`
}

// upToEOF cuts the stream after the first EOF token.
func upToEOF(toks []token.Token) []token.Token {
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			return toks[:i+1]
		}
	}
	return toks
}

func leadingKinds(tok token.Token) []string {
	var kinds []string
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind.String())
	}
	return kinds
}

// Tokens prints one token per line with its position and leading trivia.
func Tokens(w io.Writer, toks []token.Token, fs *source.FileSet) error {
	bw := bufio.NewWriter(w)
	for i, tok := range upToEOF(toks) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%4d  %-14s %s", i, tok.Kind, spanText(tok.Span, fs))
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		if kinds := leadingKinds(tok); len(kinds) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(kinds, ", "))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TokensJSON writes the same stream as an indented array.
func TokensJSON(w io.Writer, toks []token.Token) error {
	toks = upToEOF(toks)
	records := make([]TokenRecord, len(toks))
	for i, tok := range toks {
		records[i] = TokenRecord{
			Index:   i,
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: leadingKinds(tok),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
