package quickfix

import (
	"errors"
	"testing"
)

func TestCollapseElseIf(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inner_else",
			in:   "else {\n    if b {\n        y();\n    } else {\n        z();\n    }\n}",
			want: "else if b {\n    y();\n} else {\n    z();\n}",
		},
		{
			name: "no_inner_else",
			in:   "else {\n    if b {\n        y();\n    }\n}",
			want: "else if b {\n    y();\n}",
		},
		{
			name: "chained_else_if",
			in:   "else {\n    if b {\n        y();\n    } else if c {\n        z();\n    }\n}",
			want: "else if b {\n    y();\n} else if c {\n    z();\n}",
		},
		{
			name: "single_line",
			in:   "else { if b { y(); } }",
			want: "else if b { y(); }",
		},
		{
			name: "nested_blocks_keep_relative_indent",
			in:   "else {\n    if b {\n        loop {\n            y();\n        }\n    }\n}",
			want: "else if b {\n    loop {\n        y();\n    }\n}",
		},
		{
			name: "indented_construct",
			in:   "else {\n        if b {\n            y();\n        }\n    }",
			want: "else if b {\n        y();\n    }",
		},
		{
			name: "blank_line",
			in:   "else {\n    if b {\n        y();\n\n        w();\n    }\n}",
			want: "else if b {\n    y();\n\n    w();\n}",
		},
		{
			name: "brace_in_string",
			in:   "else {\n    if b {\n        print(\"}\");\n    }\n}",
			want: "else if b {\n    print(\"}\");\n}",
		},
		{
			name: "brace_in_comment",
			in:   "else {\n    if b {\n        y(); // }\n    }\n}",
			want: "else if b {\n    y(); // }\n}",
		},
		{
			name: "plain_else_untouched",
			in:   "else {\n    x();\n}",
			want: "else {\n    x();\n}",
		},
		{
			name: "statement_before_if_untouched",
			in:   "else {\n    x();\n    if b {\n        y();\n    }\n}",
			want: "else {\n    x();\n    if b {\n        y();\n    }\n}",
		},
		{
			name: "identifier_prefix_not_keyword",
			in:   "else {\n    iff();\n}",
			want: "else {\n    iff();\n}",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CollapseElseIf(tc.in)
			if err != nil {
				t.Fatalf("CollapseElseIf: %v", err)
			}
			if got != tc.want {
				t.Fatalf("mismatch:\n%s", textDiff(tc.want, got))
			}
		})
	}
}

func TestCollapseElseIfUnbalanced(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"eof_inside", "else {\n    if b {\n        y();\n"},
		{"statement_after_if", "else {\n    if b {\n        y();\n    }\n    z();\n}"},
		{"closes_before_block", "else { if b }"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CollapseElseIf(tc.in); !errors.Is(err, ErrUnbalanced) {
				t.Fatalf("got %v, want ErrUnbalanced", err)
			}
		})
	}
}

func TestCollapseElseIfIdempotent(t *testing.T) {
	in := "else {\n    if b {\n        y();\n    }\n}"
	once, err := CollapseElseIf(in)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := CollapseElseIf(once)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Fatalf("second pass changed the text:\n%s", textDiff(once, twice))
	}
}

// Ширина уровня берётся с первой непустой строки, отступ которой отличается
// от строки с `if`, и всегда положительна.
func TestCollapseElseIfDeltaMeasurement(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blank_first_line_skipped",
			in:   "else {\n    if b {\n\n        y();\n    }\n}",
			want: "else if b {\n\n    y();\n}",
		},
		{
			name: "shallower_first_line_gives_positive_delta",
			in:   "else {\n        if b {\n    y();\n        }\n    }",
			want: "else if b {\ny();\n    }",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CollapseElseIf(tc.in)
			if err != nil {
				t.Fatalf("CollapseElseIf: %v", err)
			}
			if got != tc.want {
				t.Fatalf("mismatch:\n%s", textDiff(tc.want, got))
			}
		})
	}
}
