package fuzztests

import (
	"strings"
	"testing"

	"cairolint/internal/quickfix"
)

func FuzzCollapseElseIf(f *testing.F) {
	for _, s := range []string{
		"if a { } else { if b { } }",
		"if a {\n    x();\n} else {\n    if b {\n        y();\n    } else {\n        z();\n    }\n}",
		"} else { // note\n    if b { }\n}",
		"else { if b { \"}\" } }",
		"else { if",
		"no rewrite here",
	} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		out, err := quickfix.CollapseElseIf(text)
		if err != nil {
			return
		}
		if !strings.Contains(text, "else") && out != text {
			t.Fatalf("text without else changed: %q -> %q", text, out)
		}
	})
}
