// Package tables resolves the row and column spans of a parsed table into a
// concrete rectangular grid.
//
// # Placement
//
// [Layout] visits rows top to bottom and the entries of a row left to right.
// Each entry is anchored at the first column of its row, at or after the
// row's cursor, where its full width is not already covered by a row span
// from above. The entry then covers a RowSpan × ColSpan rectangle and the
// cursor moves past it:
//
//	t "T" {
//		{ "A" rows 2, "B" }
//		{ "C" }
//	}
//
// places A at (0,0) covering (1,0), B at (0,1) and C at (1,1). An empty row
// still takes a grid row, one with no entries anchored in it.
//
// The grid grows to fit whatever the entries ask for. Its width is the
// furthest column any entry reaches and its height is the larger of the
// number of declared rows and the deepest row span, so a table is never
// rejected for its shape. Layout is total: the parser rejects spans outside
// 1 to [parser.MaxSpan], and tables built in code have theirs clamped to
// that range.
//
// # Reading the grid
//
// Every cell is [CellEmpty], [CellAnchor] (the top-left cell of an entry) or
// [CellCovered] (inside an entry's rectangle but not its anchor):
//
//	grid := tables.Layout(table)
//	for r := 0; r < grid.RowCount(); r++ {
//		for _, a := range grid.RowAnchors(r) {
//			fmt.Println(a.Row, a.Col, a.RowSpan, a.ColSpan)
//		}
//	}
package tables
