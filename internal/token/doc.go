// Package token defines the lexical token kinds produced for PHP source.
// Invariants:
//   - Every byte of the input belongs to exactly one token; whitespace and
//     comments are tokens, not trivia, so concatenating Token.Text in order
//     reproduces the source.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace tokens never extend past a newline: "\n" ends the token that
//     contains it, which keeps Token.Line exact for every token start.
//   - Doc comments are split into open / whitespace / star / tag / string /
//     close tokens; plain comments are a single Comment token.
//   - Keywords are matched case-insensitively, as PHP does.
package token
