// Package htmldoc renders a laid-out docmark document as HTML.
package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docmark/layout"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/tables"
)

// Writer renders layout documents to HTML.
type Writer struct {
	fragment bool
	title    string
	lang     string
	resolver LocationResolver
}

// Option configures the Writer
type Option func(*Writer)

// WithFragment omits the doctype, head and body wrapper
func WithFragment(fragment bool) Option {
	return func(w *Writer) {
		w.fragment = fragment
	}
}

// WithTitle sets the document title. The default is the title of the first
// table, or "Document".
func WithTitle(title string) Option {
	return func(w *Writer) {
		w.title = title
	}
}

// WithLang sets the lang attribute of the html element
func WithLang(lang string) Option {
	return func(w *Writer) {
		w.lang = lang
	}
}

// WithLocationResolver sets how locations become hrefs (default: DefaultResolver)
func WithLocationResolver(r LocationResolver) Option {
	return func(w *Writer) {
		if r != nil {
			w.resolver = r
		}
	}
}

// NewWriter creates an HTML writer
func NewWriter(opts ...Option) *Writer {
	w := &Writer{resolver: DefaultResolver{}}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Render renders doc to a string using a writer built from opts.
func Render(doc *layout.Document, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := NewWriter(opts...).Write(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders doc to out. Blocks are separated by newlines.
func (w *Writer) Write(out io.Writer, doc *layout.Document) error {
	if w.fragment {
		for _, n := range w.Nodes(doc) {
			if err := html.Render(out, n); err != nil {
				return fmt.Errorf("rendering HTML: %w", err)
			}
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	if err := html.Render(out, w.Document(doc)); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// Document builds a complete HTML tree: doctype, head and body.
func (w *Writer) Document(doc *layout.Document) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	if w.lang != "" {
		htmlEl.Attr = append(htmlEl.Attr, html.Attribute{Key: "lang", Val: w.lang})
	}
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(textNode(w.documentTitle(doc)))
	head.AppendChild(title)
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	for _, n := range w.Nodes(doc) {
		body.AppendChild(textNode("\n"))
		body.AppendChild(n)
	}
	body.AppendChild(textNode("\n"))
	htmlEl.AppendChild(body)

	return root
}

func (w *Writer) documentTitle(doc *layout.Document) string {
	if w.title != "" {
		return w.title
	}
	if doc != nil {
		for _, b := range doc.Blocks {
			if b.Kind == model.BlockTypeTable && b.Table != nil {
				if t := layout.PlainText(b.Table.Title); t != "" {
					return t
				}
			}
		}
	}
	return "Document"
}

// Nodes builds one node per block.
func (w *Writer) Nodes(doc *layout.Document) []*html.Node {
	if doc == nil {
		return nil
	}
	nodes := make([]*html.Node, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		if n := w.block(b); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (w *Writer) block(b layout.Block) *html.Node {
	switch b.Kind {
	case model.BlockTypeParagraph:
		p := element(atom.P)
		w.appendRuns(p, b.Runs)
		return p
	case model.BlockTypeImage:
		if b.Image == nil {
			return nil
		}
		return element(atom.Img,
			html.Attribute{Key: "src", Val: w.resolver.Href(b.Image.Location)},
			html.Attribute{Key: "alt", Val: b.Image.Alt},
		)
	case model.BlockTypeTable:
		if b.Table == nil {
			return nil
		}
		return w.table(b.Table)
	}
	return nil
}

// table writes one <tr> per grid row. Empty grid positions get an empty
// <td> so every row spans the full width.
func (w *Writer) table(t *layout.Table) *html.Node {
	table := element(atom.Table)

	if len(t.Title) > 0 {
		caption := element(atom.Caption)
		w.appendRuns(caption, t.Title)
		table.AppendChild(caption)
	}

	if t.Grid == nil || t.Grid.IsEmpty() {
		return table
	}

	tbody := element(atom.Tbody)
	table.AppendChild(tbody)

	for r, row := range t.Rows {
		tr := element(atom.Tr)
		next := 0
		for c := 0; c < t.Grid.ColCount(); c++ {
			switch t.Grid.At(r, c).State {
			case tables.CellAnchor:
				tr.AppendChild(w.cell(row[next]))
				next++
			case tables.CellEmpty:
				tr.AppendChild(element(atom.Td))
			}
		}
		tbody.AppendChild(tr)
	}

	return table
}

func (w *Writer) cell(c layout.Cell) *html.Node {
	a := atom.Td
	if c.Header {
		a = atom.Th
	}
	td := element(a)
	if c.Anchor != nil {
		if c.Anchor.RowSpan > 1 {
			td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(c.Anchor.RowSpan)})
		}
		if c.Anchor.ColSpan > 1 {
			td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.Anchor.ColSpan)})
		}
	}
	w.appendRuns(td, c.Runs)
	return td
}

// appendRuns adds runs to parent. Consecutive runs with the same target
// share one <a>.
func (w *Writer) appendRuns(parent *html.Node, runs []layout.Run) {
	var link *html.Node
	var target *model.Location

	for _, r := range runs {
		if r.Link == nil {
			link, target = nil, nil
			parent.AppendChild(styled(r))
			continue
		}

		if link == nil || *target != *r.Link {
			target = r.Link
			link = element(atom.A, html.Attribute{Key: "href", Val: w.resolver.Href(*r.Link)})
			parent.AppendChild(link)
		}
		link.AppendChild(styled(r))
	}
}

// styled wraps the text of r in <strong>, <em> and <code>, outermost first
func styled(r layout.Run) *html.Node {
	n := textNode(r.Text)
	if r.Style.Pre {
		n = wrap(atom.Code, n)
	}
	if r.Style.Italic {
		n = wrap(atom.Em, n)
	}
	if r.Style.Bold {
		n = wrap(atom.Strong, n)
	}
	return n
}

func wrap(a atom.Atom, child *html.Node) *html.Node {
	n := element(a)
	n.AppendChild(child)
	return n
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
