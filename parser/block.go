package parser

import (
	"github.com/tsawler/docmark/lexer"
	"github.com/tsawler/docmark/model"
)

var blockStart = newTokenSet(nil, nil, []string{"p", "i", "t"})

// ParseDocument parses blocks until the end of input.
func (p *Parser) ParseDocument() (*model.Document, error) {
	doc := model.NewDocument()
	for p.cur().Type != lexer.TokenEOF {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		doc.AddBlock(block)
	}
	return doc, nil
}

// parseBlock dispatches on the leading keyword
func (p *Parser) parseBlock() (model.Block, error) {
	switch {
	case p.isKeyword("p"):
		p.next()
		content, err := p.parseInline()
		if err != nil {
			return nil, err
		}
		return &model.Paragraph{Content: content}, nil
	case p.isKeyword("i"):
		return p.parseImage()
	case p.isKeyword("t"):
		return p.parseTable()
	}
	return nil, p.unexpected(blockStart.names...)
}

// parseImage parses `i <location> alt "<text>"`, or a placeholder in place
// of the text
func (p *Parser) parseImage() (*model.Image, error) {
	p.next() // i

	loc, err := p.parseLocation()
	if err != nil {
		return nil, err
	}
	if !p.isKeyword("alt") {
		return nil, p.unexpected(quote("alt"))
	}
	p.next()

	if p.cur().Type == lexer.TokenString {
		return &model.Image{Location: loc, Alt: p.next().Value}, nil
	}
	if p.isPunct("$") || p.cur().Type == lexer.TokenFragment {
		chain, err := p.parseChain()
		if err != nil {
			return nil, err
		}
		return &model.Image{Location: loc, AltChain: &chain}, nil
	}
	return nil, p.unexpected(typeName(lexer.TokenString), quote("$"), typeName(lexer.TokenFragment))
}
