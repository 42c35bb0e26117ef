package model

// Equal reports whether two documents are structurally equal. Source
// positions are ignored.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for i := range a.Blocks {
		if !BlockEqual(a.Blocks[i], b.Blocks[i]) {
			return false
		}
	}
	return true
}

// BlockEqual reports whether two blocks are structurally equal.
func BlockEqual(a, b Block) bool {
	switch a := a.(type) {
	case *Paragraph:
		b, ok := b.(*Paragraph)
		return ok && InlineEqual(a.Content, b.Content)
	case *Image:
		b, ok := b.(*Image)
		if !ok || a.Location != b.Location || a.Alt != b.Alt || (a.AltChain == nil) != (b.AltChain == nil) {
			return false
		}
		return a.AltChain == nil || ChainEqual(*a.AltChain, *b.AltChain)
	case *Table:
		b, ok := b.(*Table)
		return ok && TableEqual(a, b)
	}
	return false
}

// TableEqual reports whether two tables are structurally equal.
func TableEqual(a, b *Table) bool {
	if !InlineEqual(a.Title, b.Title) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Rows {
		ea, eb := a.Rows[i].Entries, b.Rows[i].Entries
		if len(ea) != len(eb) {
			return false
		}
		for j := range ea {
			if !EntryEqual(ea[j], eb[j]) {
				return false
			}
		}
	}
	return true
}

// EntryEqual reports whether two table entries are structurally equal.
func EntryEqual(a, b TableEntry) bool {
	return a.RowSpan == b.RowSpan &&
		a.ColSpan == b.ColSpan &&
		a.Header == b.Header &&
		InlineEqual(a.Payload, b.Payload)
}

// InlineEqual reports whether two inlines are structurally equal.
func InlineEqual(a, b Inline) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !RunEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// RunEqual reports whether two runs are structurally equal.
func RunEqual(a, b Run) bool {
	if a == nil || b == nil || a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case Text:
		return a.Value == b.(Text).Value
	case Loc:
		return a.Location == b.(Loc).Location
	case Link:
		bl := b.(Link)
		return a.Location == bl.Location && InlineEqual(a.Content, bl.Content)
	case Placeholder:
		return ChainEqual(a.Chain, b.(Placeholder).Chain)
	}
	return InlineEqual(Children(a), Children(b))
}

// ChainEqual reports whether two chains are structurally equal.
func ChainEqual(a, b Chain) bool {
	if len(a.Operands) != len(b.Operands) {
		return false
	}
	for i := range a.Operands {
		oa, ob := a.Operands[i], b.Operands[i]
		if oa.Kind != ob.Kind || oa.Text != ob.Text {
			return false
		}
		if (oa.Chain == nil) != (ob.Chain == nil) {
			return false
		}
		if oa.Chain != nil && !ChainEqual(*oa.Chain, *ob.Chain) {
			return false
		}
	}
	return true
}
