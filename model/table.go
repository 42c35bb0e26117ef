package model

// Table represents a titled table of entries organized in rows
type Table struct {
	Title Inline
	Rows  []TableRow
}

func (t *Table) Type() BlockType { return BlockTypeTable }

// RowCount returns the number of declared rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// EntryCount returns the number of entries over all rows
func (t *Table) EntryCount() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row.Entries)
	}
	return n
}

// TableRow is an ordered list of entries. An empty row is legal.
type TableRow struct {
	Entries []TableEntry
}

// TableEntry represents one table cell as written in source
type TableEntry struct {
	Payload Inline
	RowSpan int
	ColSpan int
	Header  bool
}

// NewTableEntry creates an entry with both spans set to 1
func NewTableEntry(payload Inline) TableEntry {
	return TableEntry{
		Payload: payload,
		RowSpan: 1,
		ColSpan: 1,
	}
}
