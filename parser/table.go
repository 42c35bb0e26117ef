package parser

import (
	"fmt"
	"strconv"

	"github.com/tsawler/docmark/lexer"
	"github.com/tsawler/docmark/model"
)

// parseTable parses `t <inline> { <row>* }`
func (p *Parser) parseTable() (*model.Table, error) {
	p.next() // t

	title, err := p.parseInline()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	table := &model.Table{Title: title}
	for p.isPunct("{") {
		row, err := p.parseRow()
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	if !p.isPunct("}") {
		return nil, p.unexpected(quote("{"), quote("}"))
	}
	p.next()
	return table, nil
}

// parseRow parses `{ [entry {, entry}] }`. Trailing commas are rejected.
func (p *Parser) parseRow() (model.TableRow, error) {
	p.next() // {

	var row model.TableRow
	if p.isPunct("}") {
		p.next()
		return row, nil
	}

	for {
		entry, err := p.parseEntry()
		if err != nil {
			return model.TableRow{}, err
		}
		row.Entries = append(row.Entries, entry)

		if !p.isPunct(",") {
			break
		}
		p.next()
	}

	if !p.isPunct("}") {
		return model.TableRow{}, p.unexpected(quote(","), quote("}"))
	}
	p.next()
	return row, nil
}

// parseEntry parses `[h] <inline> {rows N | cols N}`. Each modifier may
// appear once, in either order.
func (p *Parser) parseEntry() (model.TableEntry, error) {
	header := false
	if p.isKeyword("h") {
		p.next()
		header = true
	}

	payload, err := p.parseInline()
	if err != nil {
		return model.TableEntry{}, err
	}

	entry := model.NewTableEntry(payload)
	entry.Header = header

	var seenRows, seenCols bool
	for p.isKeyword("rows") || p.isKeyword("cols") {
		kw := p.next()

		seen := &seenRows
		if kw.Value == "cols" {
			seen = &seenCols
		}
		if *seen {
			return model.TableEntry{}, p.errorAt(DuplicateModifier, kw.Pos,
				fmt.Sprintf("%q given more than once", kw.Value))
		}
		*seen = true

		span, err := p.parseSpan(kw)
		if err != nil {
			return model.TableEntry{}, err
		}
		if kw.Value == "rows" {
			entry.RowSpan = span
		} else {
			entry.ColSpan = span
		}
	}

	return entry, nil
}

// parseSpan parses the integer in [1, MaxSpan] after rows or cols
func (p *Parser) parseSpan(kw lexer.Token) (int, error) {
	tok := p.cur()
	if tok.Type != lexer.TokenNumber {
		return 0, p.unexpected(typeName(lexer.TokenNumber))
	}
	p.next()

	n, err := strconv.Atoi(tok.Value)
	if err != nil || n <= 0 || n > MaxSpan {
		return 0, p.errorAt(InvalidSpan, tok.Pos,
			fmt.Sprintf("%s must be an integer from 1 to %d, got %s", kw.Value, MaxSpan, tok.Value))
	}
	return n, nil
}
