package model

// Document represents a complete parsed document
type Document struct {
	Blocks []Block
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Blocks: make([]Block, 0),
	}
}

// AddBlock appends a block to the document
func (d *Document) AddBlock(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Tables returns all tables in document order
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, b := range d.Blocks {
		if t, ok := b.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Placeholders returns every placeholder chain in document order: blocks top
// to bottom, table titles before entries, left to right within an inline.
// Chains nested as arguments are not listed separately.
func (d *Document) Placeholders() []Chain {
	var chains []Chain
	collect := func(in Inline) {
		WalkInline(in, func(r Run) bool {
			if p, ok := r.(Placeholder); ok {
				chains = append(chains, p.Chain)
			}
			return true
		})
	}
	for _, b := range d.Blocks {
		switch b := b.(type) {
		case *Paragraph:
			collect(b.Content)
		case *Image:
			if b.AltChain != nil {
				chains = append(chains, *b.AltChain)
			}
		case *Table:
			collect(b.Title)
			for _, row := range b.Rows {
				for _, e := range row.Entries {
					collect(e.Payload)
				}
			}
		}
	}
	return chains
}
