// Package printer writes a [model.Document] back out as docmark source.
//
// The output is canonical: one block per line, table rows indented by a tab,
// spans of 1 omitted. Parsing the printed text yields a document equal to the
// input under [model.Equal], provided every inline in the tree is non-empty
// and fragments have balanced braces, which holds for anything the parser
// produced.
//
// A styled span reaches to the end of its inline in source, so a tree built
// in code with a span followed by more runs prints with a group around the
// span, and a location inside link content after its first run is grouped
// too. Such trees reparse with the extra groups, which render the same.
package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/docmark/model"
)

// Fprint writes the source form of doc to w.
func Fprint(w io.Writer, doc *model.Document) error {
	_, err := io.WriteString(w, Sprint(doc))
	return err
}

// Sprint returns the source form of doc. Each block ends with a newline.
func Sprint(doc *model.Document) string {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		writeBlock(&sb, b)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Inline returns the source form of a single inline.
func Inline(in model.Inline) string {
	var sb strings.Builder
	writeInline(&sb, in, false)
	return sb.String()
}

func writeBlock(sb *strings.Builder, b model.Block) {
	switch b := b.(type) {
	case *model.Paragraph:
		sb.WriteString("p ")
		writeInline(sb, b.Content, false)
	case *model.Image:
		sb.WriteString("i ")
		writeLocation(sb, b.Location)
		sb.WriteString(" alt ")
		if b.AltChain != nil {
			writeChain(sb, *b.AltChain)
		} else {
			sb.WriteString(Quote(b.Alt))
		}
	case *model.Table:
		writeTable(sb, b)
	}
}

func writeTable(sb *strings.Builder, t *model.Table) {
	sb.WriteString("t ")
	writeInline(sb, t.Title, false)
	if len(t.Rows) == 0 {
		sb.WriteString(" { }")
		return
	}

	sb.WriteString(" {")
	for _, row := range t.Rows {
		sb.WriteString("\n\t{")
		for i, e := range row.Entries {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(' ')
			writeEntry(sb, e)
		}
		sb.WriteString(" }")
	}
	sb.WriteString("\n}")
}

func writeEntry(sb *strings.Builder, e model.TableEntry) {
	if e.Header {
		sb.WriteString("h ")
	}
	writeInline(sb, e.Payload, false)
	if e.RowSpan != 1 {
		sb.WriteString(" rows ")
		sb.WriteString(strconv.Itoa(e.RowSpan))
	}
	if e.ColSpan != 1 {
		sb.WriteString(" cols ")
		sb.WriteString(strconv.Itoa(e.ColSpan))
	}
}

// writeInline writes the runs of in. A styled span extends to the end of
// its inline when parsed, so one followed by other runs is wrapped in a
// group. In link content a location after the first run would end the
// content and is wrapped as well.
func writeInline(sb *strings.Builder, in model.Inline, inLink bool) {
	for i, r := range in {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i < len(in)-1 && styled(r) || inLink && i > 0 && r.Type() == model.RunTypeLoc {
			sb.WriteByte('(')
			writeRun(sb, r, false)
			sb.WriteByte(')')
			continue
		}
		writeRun(sb, r, inLink)
	}
}

func styled(r model.Run) bool {
	switch r.Type() {
	case model.RunTypeBold, model.RunTypeItalic, model.RunTypePreformatted:
		return true
	}
	return false
}

func writeRun(sb *strings.Builder, r model.Run, inLink bool) {
	switch r := r.(type) {
	case model.Text:
		sb.WriteString(Quote(r.Value))
	case model.Bold:
		sb.WriteString("b ")
		writeInline(sb, r.Content, inLink)
	case model.Italic:
		sb.WriteString("i ")
		writeInline(sb, r.Content, inLink)
	case model.Preformatted:
		sb.WriteString("c ")
		writeInline(sb, r.Content, inLink)
	case model.Loc:
		writeLocation(sb, r.Location)
	case model.Link:
		sb.WriteString("l ")
		writeInline(sb, r.Content, true)
		sb.WriteByte(' ')
		writeLocation(sb, r.Location)
	case model.Placeholder:
		writeChain(sb, r.Chain)
	case model.Group:
		sb.WriteByte('(')
		writeInline(sb, r.Content, false)
		sb.WriteByte(')')
	}
}

func writeLocation(sb *strings.Builder, loc model.Location) {
	sb.WriteString(loc.Kind.Prefix())
	sb.WriteString(Quote(loc.Target))
}

func writeChain(sb *strings.Builder, c model.Chain) {
	for i, op := range c.Operands {
		if i > 0 {
			sb.WriteByte('!')
		}
		writeOperand(sb, op)
	}
}

func writeOperand(sb *strings.Builder, op model.Operand) {
	switch op.Kind {
	case model.OperandIdent:
		sb.WriteByte('$')
		sb.WriteString(op.Text)
	case model.OperandFragment:
		sb.WriteString("${")
		sb.WriteString(op.Text)
		sb.WriteByte('}')
	case model.OperandString:
		sb.WriteString(Quote(op.Text))
	case model.OperandChain:
		sb.WriteByte('(')
		if op.Chain != nil {
			writeChain(sb, *op.Chain)
		}
		sb.WriteByte(')')
	}
}

// Quote returns s as a docmark string literal. Bytes that are not valid
// UTF-8 are copied unchanged.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
