package token_test

import (
	"testing"

	"cairolint/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"fn":    token.KwFn,
		"match": token.KwMatch,
		"loop":  token.KwLoop,
		"ref":   token.KwRef,
		"of":    token.KwOf,
		"true":  token.KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v", lexeme, got, ok, want)
		}
	}

	// Регистр важен, имена типов - идентификаторы
	for _, s := range []string{"Fn", "MATCH", "felt252", "u32", "self", "Option"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordRange(t *testing.T) {
	for lexeme, k := range map[string]token.Kind{"fn": token.KwFn, "false": token.KwFalse, "nopanic": token.KwNopanic} {
		tok := token.Token{Kind: k, Text: lexeme}
		if !tok.IsKeyword() {
			t.Errorf("%q should be a keyword", lexeme)
		}
		if k.String() != lexeme {
			t.Errorf("String() = %q, want %q", k.String(), lexeme)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.Plus, token.EOF} {
		if (token.Token{Kind: k}).IsKeyword() {
			t.Errorf("%v must not be a keyword", k)
		}
	}
}

func TestComparisonKinds(t *testing.T) {
	for _, k := range []token.Kind{token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq} {
		if !k.IsComparison() {
			t.Errorf("%v should be a comparison", k)
		}
	}
	for _, k := range []token.Kind{token.AndAnd, token.OrOr, token.Assign, token.FatArrow} {
		if k.IsComparison() {
			t.Errorf("%v must not be a comparison", k)
		}
	}
}
