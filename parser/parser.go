package parser

import (
	"fmt"

	"github.com/tsawler/docmark/lexer"
	"github.com/tsawler/docmark/model"
)

// MaxDepth is the default nesting limit.
const MaxDepth = 256

// MaxSpan is the largest rows or cols value an entry may declare.
const MaxSpan = 1000

// Parser parses docmark source from a token stream produced by the lexer.
type Parser struct {
	src      string
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int

	// inLink is set while parsing link content, where a location ends
	// every inline after its first term
	inLink bool
}

// Option configures the parser
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth (default: MaxDepth)
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// NewParser creates a parser over src. Tokenization happens up front; the
// lexer never fails, so errors surface when the parser reaches them.
func NewParser(src string, opts ...Option) *Parser {
	p := &Parser{
		src:      src,
		tokens:   lexer.Tokenize(src),
		maxDepth: MaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses a complete document.
func Parse(src string, opts ...Option) (*model.Document, error) {
	return NewParser(src, opts...).ParseDocument()
}

// ParseInline parses src as a single inline with nothing after it.
func ParseInline(src string, opts ...Option) (model.Inline, error) {
	p := NewParser(src, opts...)
	in, err := p.parseInline()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.TokenEOF {
		return nil, p.unexpected("end of input")
	}
	return in, nil
}

// cur returns the current token
func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

// peek returns the token n positions ahead, or EOF past the end
func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

// next consumes and returns the current token. EOF is never consumed.
func (p *Parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.TokenEOF {
		p.pos++
	}
	return tok
}

// isPunct reports whether the current token is the punctuation s
func (p *Parser) isPunct(s string) bool {
	return p.cur().Is(lexer.TokenPunct, s)
}

// isKeyword reports whether the current token is the keyword s
func (p *Parser) isKeyword(s string) bool {
	return p.cur().Is(lexer.TokenKeyword, s)
}

// expectPunct consumes the punctuation s or fails
func (p *Parser) expectPunct(s string) (lexer.Token, error) {
	if !p.isPunct(s) {
		return lexer.Token{}, p.unexpected(quote(s))
	}
	return p.next(), nil
}

// enter increases the nesting depth, failing once it passes the limit
func (p *Parser) enter(at lexer.Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(StructureTooDeep, at.Pos, fmt.Sprintf("nesting exceeds %d levels", p.maxDepth))
	}
	return nil
}

// leave decreases the nesting depth
func (p *Parser) leave() {
	p.depth--
}

// errorAt builds an Error of the given kind at a byte offset
func (p *Parser) errorAt(kind ErrorKind, offset int, msg string) *Error {
	line, col := lexer.Position(p.src, offset)
	return &Error{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Col:    col,
		Msg:    msg,
	}
}

// unexpected reports the current token as not being one of expected. Lexer
// error tokens are reported as LexError instead.
func (p *Parser) unexpected(expected ...string) *Error {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenError:
		return p.errorAt(LexError, tok.Pos, tok.Value)
	case lexer.TokenIllegal:
		err := p.errorAt(SyntaxError, tok.Pos, fmt.Sprintf("unexpected character %q", tok.Value))
		err.Expected = expected
		return err
	}
	err := p.errorAt(SyntaxError, tok.Pos, "")
	err.Expected = expected
	err.Found = tok.String()
	return err
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
