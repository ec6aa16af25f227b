// Package token defines lexical token kinds and trivia for the stamp
// preprocessor. Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '#' (Kind: Hash) + '[' ... ']'; no per-attribute
//     token kinds.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
package token
