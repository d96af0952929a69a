// Package token defines lexical token kinds and trivia for Cairo sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - Whitespace and comments are never tokens: they are attached to the
//     following token as Leading trivia; trailing trivia of a file ends up
//     on the EOF token.
//   - Attributes are lexed as '#' (Kind: Hash) + '[' ... ']'; macros as Ident + '!'.
//   - Built-in type names (felt252, u32, ...) are identifiers.
package token
