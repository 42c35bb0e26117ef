package parser

import (
	"github.com/tsawler/docmark/lexer"
	"github.com/tsawler/docmark/model"
)

// tokenSet is a set of tokens that may start a production
type tokenSet struct {
	types    map[lexer.TokenType]bool
	puncts   map[string]bool
	keywords map[string]bool
	names    []string // for error messages, in declaration order
}

func newTokenSet(types []lexer.TokenType, puncts, keywords []string) *tokenSet {
	s := &tokenSet{
		types:    make(map[lexer.TokenType]bool),
		puncts:   make(map[string]bool),
		keywords: make(map[string]bool),
	}
	for _, t := range types {
		s.types[t] = true
		s.names = append(s.names, typeName(t))
	}
	for _, v := range puncts {
		s.puncts[v] = true
		s.names = append(s.names, quote(v))
	}
	for _, v := range keywords {
		s.keywords[v] = true
		s.names = append(s.names, quote(v))
	}
	return s
}

func (s *tokenSet) has(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.TokenPunct:
		return s.puncts[tok.Value]
	case lexer.TokenKeyword:
		return s.keywords[tok.Value]
	}
	return s.types[tok.Type]
}

func typeName(t lexer.TokenType) string {
	switch t {
	case lexer.TokenString:
		return "string"
	case lexer.TokenFragment:
		return "code fragment"
	case lexer.TokenNumber:
		return "number"
	case lexer.TokenIdent:
		return "identifier"
	}
	return t.String()
}

// termStart is the set of tokens that can begin an inline term. Every
// stopping decision of the inline parser consults it.
var termStart = newTokenSet(
	[]lexer.TokenType{lexer.TokenString, lexer.TokenFragment},
	[]string{"#", "/", "@", "(", "$"},
	[]string{"b", "i", "c", "l"},
)

var locationStart = newTokenSet(nil, []string{"#", "/", "@"}, nil)

var argumentStart = newTokenSet(
	[]lexer.TokenType{lexer.TokenString, lexer.TokenFragment},
	[]string{"$", "("},
	nil,
)

// atTerm reports whether the current token starts an inline term
func (p *Parser) atTerm() bool {
	return termStart.has(p.cur()) && !p.atImage()
}

// atImage reports whether the tokens ahead read `i <location> alt`. That
// sequence is never italic text, so an inline stops in front of it and the
// block parser sees an image.
func (p *Parser) atImage() bool {
	return p.isKeyword("i") &&
		locationStart.has(p.peek(1)) &&
		p.peek(2).Type == lexer.TokenString &&
		p.peek(3).Is(lexer.TokenKeyword, "alt")
}

// parseInline parses one or more terms. Inside link content it also stops
// before a location that is not its first term.
func (p *Parser) parseInline() (model.Inline, error) {
	if !p.atTerm() {
		return nil, p.unexpected(termStart.names...)
	}

	var in model.Inline
	for {
		run, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		in = append(in, run)

		if !p.atTerm() || p.inLink && locationStart.has(p.cur()) {
			return in, nil
		}
	}
}

// parseTerm parses a single inline term
func (p *Parser) parseTerm() (model.Run, error) {
	tok := p.cur()

	switch tok.Type {
	case lexer.TokenString:
		p.next()
		return model.Text{Value: tok.Value}, nil
	case lexer.TokenFragment:
		return p.parsePlaceholder()
	case lexer.TokenPunct:
		switch tok.Value {
		case "#", "/", "@":
			loc, err := p.parseLocation()
			if err != nil {
				return nil, err
			}
			return model.Loc{Location: loc}, nil
		case "(":
			return p.parseGroup()
		case "$":
			return p.parsePlaceholder()
		}
	case lexer.TokenKeyword:
		switch tok.Value {
		case "b", "i", "c":
			return p.parseStyled()
		case "l":
			return p.parseLink()
		}
	}

	return nil, p.unexpected(termStart.names...)
}

// parseStyled parses b, i or c followed by the inline it applies to. The
// inline is greedy: it runs to the end of the enclosing inline.
func (p *Parser) parseStyled() (model.Run, error) {
	kw := p.next()
	if err := p.enter(kw); err != nil {
		return nil, err
	}
	defer p.leave()

	content, err := p.parseInline()
	if err != nil {
		return nil, err
	}

	switch kw.Value {
	case "b":
		return model.Bold{Content: content}, nil
	case "i":
		return model.Italic{Content: content}, nil
	default:
		return model.Preformatted{Content: content}, nil
	}
}

// parseLink parses `l <inline> <location>`. The content ends at the first
// location after its first term; a location further in needs a group.
func (p *Parser) parseLink() (model.Run, error) {
	kw := p.next()
	if err := p.enter(kw); err != nil {
		return nil, err
	}
	defer p.leave()

	outer := p.inLink
	p.inLink = true
	content, err := p.parseInline()
	p.inLink = outer
	if err != nil {
		return nil, err
	}

	loc, err := p.parseLocation()
	if err != nil {
		return nil, err
	}
	return model.Link{Content: content, Location: loc}, nil
}

// parseGroup parses `( <inline> )`. A missing close paren is reported at
// the opening paren.
func (p *Parser) parseGroup() (model.Run, error) {
	open := p.next()
	if err := p.enter(open); err != nil {
		return nil, err
	}
	defer p.leave()

	if !p.atTerm() && !p.isPunct(")") {
		return nil, p.closeParen(open)
	}

	outer := p.inLink
	p.inLink = false
	content, err := p.parseInline()
	p.inLink = outer
	if err != nil {
		return nil, err
	}
	if err := p.closeParen(open); err != nil {
		return nil, err
	}
	return model.Group{Content: content}, nil
}

// closeParen consumes the ")" matching open
func (p *Parser) closeParen(open lexer.Token) error {
	if p.isPunct(")") {
		p.next()
		return nil
	}
	if p.cur().Type == lexer.TokenError {
		return p.unexpected()
	}
	err := p.errorAt(SyntaxError, open.Pos, `unterminated group: "(" has no matching ")"`)
	err.Expected = []string{quote(")")}
	err.Found = p.cur().String()
	return err
}

// parseLocation parses `#"key"`, `/"path"` or `@"url"`
func (p *Parser) parseLocation() (model.Location, error) {
	var kind model.LocationKind
	switch {
	case p.isPunct("#"):
		kind = model.LocationID
	case p.isPunct("/"):
		kind = model.LocationInternal
	case p.isPunct("@"):
		kind = model.LocationURL
	default:
		return model.Location{}, p.unexpected(locationStart.names...)
	}
	p.next()

	if p.cur().Type != lexer.TokenString {
		return model.Location{}, p.unexpected(typeName(lexer.TokenString))
	}
	return model.Location{Kind: kind, Target: p.next().Value}, nil
}

// parsePlaceholder parses a base operand and any `!` applications
func (p *Parser) parsePlaceholder() (model.Run, error) {
	chain, err := p.parseChain()
	if err != nil {
		return nil, err
	}
	return model.Placeholder{Chain: chain}, nil
}

// parseChain parses `base { "!" argument }`. Each iteration consumes at
// least two tokens, so the loop is bounded by the input length.
func (p *Parser) parseChain() (model.Chain, error) {
	chain := model.Chain{Pos: p.cur().Pos}

	base, err := p.parseBase()
	if err != nil {
		return model.Chain{}, err
	}
	chain.Operands = append(chain.Operands, base)

	for p.isPunct("!") {
		p.next()
		arg, err := p.parseArgument()
		if err != nil {
			return model.Chain{}, err
		}
		chain.Operands = append(chain.Operands, arg)
	}
	return chain, nil
}

// parseBase parses `$name` or `${code}`
func (p *Parser) parseBase() (model.Operand, error) {
	tok := p.cur()
	if tok.Type == lexer.TokenFragment {
		p.next()
		return model.Operand{Kind: model.OperandFragment, Text: tok.Value}, nil
	}
	if !p.isPunct("$") {
		return model.Operand{}, p.unexpected(quote("$"), typeName(lexer.TokenFragment))
	}
	p.next()

	name := p.cur()
	if name.Type != lexer.TokenIdent && name.Type != lexer.TokenKeyword {
		return model.Operand{}, p.unexpected(typeName(lexer.TokenIdent))
	}
	p.next()
	return model.Operand{Kind: model.OperandIdent, Text: name.Value}, nil
}

// parseArgument parses the operand after "!"
func (p *Parser) parseArgument() (model.Operand, error) {
	tok := p.cur()
	switch {
	case tok.Type == lexer.TokenString:
		p.next()
		return model.Operand{Kind: model.OperandString, Text: tok.Value}, nil
	case p.isPunct("("):
		open := p.next()
		if err := p.enter(open); err != nil {
			return model.Operand{}, err
		}
		defer p.leave()

		nested, err := p.parseChain()
		if err != nil {
			return model.Operand{}, err
		}
		if err := p.closeParen(open); err != nil {
			return model.Operand{}, err
		}
		return model.Operand{Kind: model.OperandChain, Chain: &nested}, nil
	case argumentStart.has(tok):
		return p.parseBase()
	}
	return model.Operand{}, p.unexpected(argumentStart.names...)
}
