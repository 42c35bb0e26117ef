package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenIdent              // name, _private, v2
	TokenKeyword            // rows, cols, alt, h, b, i, c, p, t, l
	TokenString             // "hello"
	TokenNumber             // 42, -1
	TokenFragment           // ${ code }
	TokenPunct              // { } ( ) , # / @ $ !
	TokenIllegal            // a character that cannot start a token
	TokenError              // unterminated string or fragment
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "Ident"
	case TokenKeyword:
		return "Keyword"
	case TokenString:
		return "String"
	case TokenNumber:
		return "Number"
	case TokenFragment:
		return "Fragment"
	case TokenPunct:
		return "Punct"
	case TokenIllegal:
		return "Illegal"
	case TokenError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Keywords lists every reserved word of the language.
var Keywords = map[string]bool{
	"rows": true,
	"cols": true,
	"alt":  true,
	"h":    true,
	"b":    true,
	"i":    true,
	"c":    true,
	"p":    true,
	"t":    true,
	"l":    true,
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string // decoded value; for TokenError the error message
	Pos   int    // byte offset of the first character
	Len   int    // length in bytes of the source text
}

// Is reports whether the token has the given type and value.
func (t Token) Is(typ TokenType, value string) bool {
	return t.Type == typ && t.Value == value
}

// String returns a short human-readable description used in error messages.
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return fmt.Sprintf("string %q", t.Value)
	case TokenFragment:
		return "code fragment"
	case TokenNumber:
		return "number " + t.Value
	case TokenError:
		return t.Value
	default:
		return fmt.Sprintf("%q", t.Value)
	}
}

// Lexer performs lexical analysis of docmark source
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a new lexer
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns every token of src, ending with TokenEOF.
func Tokenize(src string) []Token {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input. After the end of input it
// keeps returning TokenEOF.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Pos: len(l.src)}
	}

	b := l.src[l.pos]
	switch b {
	case '"':
		return l.readString()
	case '$':
		if l.peekAt(1) == '{' {
			return l.readFragment()
		}
		return l.punct()
	case '{', '}', '(', ')', ',', '#', '/', '@', '!':
		return l.punct()
	}

	if isDigit(b) || (b == '-' && isDigit(l.peekAt(1))) {
		return l.readNumber()
	}

	if isIdentStart(b) {
		return l.readWord()
	}

	// Consume one whole rune so offsets stay on character boundaries
	start := l.pos
	_, size := utf8.DecodeRuneInString(l.src[start:])
	l.pos += size
	return Token{Type: TokenIllegal, Value: l.src[start:l.pos], Pos: start, Len: size}
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) punct() Token {
	start := l.pos
	l.pos++
	return Token{Type: TokenPunct, Value: l.src[start:l.pos], Pos: start, Len: 1}
}

// skipWhitespace skips whitespace and // comments
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if isWhitespace(b) {
			l.pos++
			continue
		}
		if b == '/' && l.peekAt(1) == '/' {
			end := strings.IndexByte(l.src[l.pos:], '\n')
			if end < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += end + 1
			}
			continue
		}
		return
	}
}

// readString reads a literal string "hello"
func (l *Lexer) readString() Token {
	start := l.pos
	var buf strings.Builder

	l.pos++ // opening quote
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		l.pos++
		switch b {
		case '"':
			return Token{Type: TokenString, Value: buf.String(), Pos: start, Len: l.pos - start}
		case '\\':
			if l.pos >= len(l.src) {
				break
			}
			next := l.src[l.pos]
			l.pos++
			switch next {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			default:
				// Unknown escape - keep the character
				buf.WriteByte(next)
			}
		default:
			buf.WriteByte(b)
		}
	}

	return Token{Type: TokenError, Value: "unterminated string literal", Pos: start, Len: l.pos - start}
}

// readFragment reads a code fragment ${...}. Braces nest, and braces inside
// quoted strings within the fragment do not count.
func (l *Lexer) readFragment() Token {
	start := l.pos
	l.pos += 2 // ${
	bodyStart := l.pos

	depth := 1
	var quote byte
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		l.pos++

		if quote != 0 {
			switch b {
			case '\\':
				l.pos++
			case quote:
				quote = 0
			}
			continue
		}

		switch b {
		case '"', '\'':
			quote = b
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return Token{
					Type:  TokenFragment,
					Value: l.src[bodyStart : l.pos-1],
					Pos:   start,
					Len:   l.pos - start,
				}
			}
		}
	}

	l.pos = len(l.src)
	return Token{Type: TokenError, Value: "unterminated code fragment", Pos: start, Len: l.pos - start}
}

// readNumber reads a signed integer
func (l *Lexer) readNumber() Token {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenNumber, Value: l.src[start:l.pos], Pos: start, Len: l.pos - start}
}

// readWord reads an identifier or keyword
func (l *Lexer) readWord() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	word := l.src[start:l.pos]
	typ := TokenIdent
	if Keywords[word] {
		typ = TokenKeyword
	}
	return Token{Type: typ, Value: word, Pos: start, Len: l.pos - start}
}

// Position converts a byte offset in src into a 1-based line and column.
// Columns count runes, not bytes.
func Position(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for _, r := range src[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// Helper functions

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
