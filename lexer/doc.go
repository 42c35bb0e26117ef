// Package lexer tokenizes docmark markup source.
//
// The lexer is total: it never returns an error. Problems that can only be
// detected while scanning, such as an unterminated string literal or code
// fragment, are emitted as a single [TokenError] token carrying the offset of
// the construct that was left open. Characters that cannot start any token are
// emitted as [TokenIllegal]. Both are reported by the parser.
//
// # Tokens
//
//   - [TokenIdent] - identifiers such as the name in $name
//   - [TokenKeyword] - rows, cols, alt, h, b, i, c, p, t, l
//   - [TokenString] - "quoted text", escapes already collapsed
//   - [TokenNumber] - signed decimal integers
//   - [TokenFragment] - the raw code inside ${...}
//   - [TokenPunct] - { } ( ) , # / @ $ !
//
// Whitespace and // line comments are skipped. Every token stream ends with
// exactly one [TokenEOF].
//
// # Positions
//
// Tokens carry byte offsets. Use [Position] to turn an offset into a 1-based
// line and column for messages.
package lexer
