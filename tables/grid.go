package tables

import (
	"fmt"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/parser"
)

// CellState describes how a grid cell is occupied
type CellState int

const (
	CellEmpty CellState = iota
	CellAnchor
	CellCovered
)

// String returns the name of the state
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellAnchor:
		return "Anchor"
	case CellCovered:
		return "Covered"
	default:
		return "Unknown"
	}
}

// Anchor is a table entry placed on the grid
type Anchor struct {
	Row, Col         int // top-left cell
	RowSpan, ColSpan int

	// SourceRow and SourceIndex locate the entry in the parsed table
	SourceRow   int
	SourceIndex int
	Entry       *model.TableEntry
}

// Contains reports whether the cell (r, c) lies inside the anchor's rectangle
func (a *Anchor) Contains(r, c int) bool {
	return r >= a.Row && r < a.Row+a.RowSpan && c >= a.Col && c < a.Col+a.ColSpan
}

// Cell is one position of the grid. Owner is nil for empty cells.
type Cell struct {
	State CellState
	Owner *Anchor
}

// Grid is the resolved layout of a table
type Grid struct {
	cells   [][]Cell
	cols    int
	anchors []*Anchor
}

// Layout places the entries of t on a grid. A nil table yields an empty grid.
func Layout(t *model.Table) *Grid {
	g := &Grid{}
	if t == nil {
		return g
	}

	for r := range t.Rows {
		g.growRows(r + 1)
		col := 0

		entries := t.Rows[r].Entries
		for i := range entries {
			e := &entries[i]
			rowSpan, colSpan := span(e.RowSpan), span(e.ColSpan)

			for !g.fits(r, col, colSpan) {
				col++
			}

			a := &Anchor{
				Row:         r,
				Col:         col,
				RowSpan:     rowSpan,
				ColSpan:     colSpan,
				SourceRow:   r,
				SourceIndex: i,
				Entry:       e,
			}
			g.place(a)
			col += colSpan
		}
	}

	return g
}

// span clamps a span value to [1, parser.MaxSpan]
func span(n int) int {
	switch {
	case n < 1:
		return 1
	case n > parser.MaxSpan:
		return parser.MaxSpan
	}
	return n
}

// fits reports whether width cells starting at (r, c) are free. Cells
// below row r can only be covered by spans that also cover row r, so the
// anchor row is the only one to check, and columns past the grid are free.
func (g *Grid) fits(r, c, width int) bool {
	for i := c; i < min(c+width, g.cols); i++ {
		if g.state(r, i) != CellEmpty {
			return false
		}
	}
	return true
}

// place marks the anchor's rectangle, growing the grid as needed
func (g *Grid) place(a *Anchor) {
	g.growRows(a.Row + a.RowSpan)
	g.growCols(a.Col + a.ColSpan)

	for r := a.Row; r < a.Row+a.RowSpan; r++ {
		for c := a.Col; c < a.Col+a.ColSpan; c++ {
			g.cells[r][c] = Cell{State: CellCovered, Owner: a}
		}
	}
	g.cells[a.Row][a.Col].State = CellAnchor
	g.anchors = append(g.anchors, a)
}

func (g *Grid) growRows(n int) {
	for len(g.cells) < n {
		g.cells = append(g.cells, make([]Cell, g.cols))
	}
}

func (g *Grid) growCols(n int) {
	if n <= g.cols {
		return
	}
	for r := range g.cells {
		g.cells[r] = append(g.cells[r], make([]Cell, n-len(g.cells[r]))...)
	}
	g.cols = n
}

func (g *Grid) state(r, c int) CellState {
	if r < 0 || r >= len(g.cells) || c < 0 || c >= g.cols {
		return CellEmpty
	}
	return g.cells[r][c].State
}

// RowCount returns the number of grid rows
func (g *Grid) RowCount() int {
	return len(g.cells)
}

// ColCount returns the number of grid columns
func (g *Grid) ColCount() int {
	return g.cols
}

// At returns the cell at (r, c). Cells outside the grid are empty.
func (g *Grid) At(r, c int) Cell {
	if r < 0 || r >= len(g.cells) || c < 0 || c >= g.cols {
		return Cell{}
	}
	return g.cells[r][c]
}

// Anchors returns the placed entries in placement order
func (g *Grid) Anchors() []*Anchor {
	out := make([]*Anchor, len(g.anchors))
	copy(out, g.anchors)
	return out
}

// RowAnchors returns the entries anchored in grid row r, left to right
func (g *Grid) RowAnchors(r int) []*Anchor {
	if r < 0 || r >= len(g.cells) {
		return nil
	}
	var out []*Anchor
	for _, cell := range g.cells[r] {
		if cell.State == CellAnchor {
			out = append(out, cell.Owner)
		}
	}
	return out
}

// IsEmpty reports whether the grid has no cells
func (g *Grid) IsEmpty() bool {
	return len(g.cells) == 0 || g.cols == 0
}

// Validate checks the grid invariants: every anchor's rectangle lies inside
// the grid and is owned by that anchor alone, each anchor has exactly one
// anchor cell, and no cell outside an anchor's rectangle claims it.
func (g *Grid) Validate() error {
	owned := 0
	for i, a := range g.anchors {
		if a.RowSpan < 1 || a.ColSpan < 1 {
			return fmt.Errorf("anchor %d has span %dx%d", i, a.RowSpan, a.ColSpan)
		}
		if a.Row < 0 || a.Col < 0 || a.Row+a.RowSpan > len(g.cells) || a.Col+a.ColSpan > g.cols {
			return fmt.Errorf("anchor %d at (%d,%d) with span %dx%d exceeds %dx%d grid",
				i, a.Row, a.Col, a.RowSpan, a.ColSpan, len(g.cells), g.cols)
		}
		for r := a.Row; r < a.Row+a.RowSpan; r++ {
			for c := a.Col; c < a.Col+a.ColSpan; c++ {
				cell := g.cells[r][c]
				if cell.Owner != a {
					return fmt.Errorf("cell (%d,%d) is not owned by anchor %d", r, c, i)
				}
				want := CellCovered
				if r == a.Row && c == a.Col {
					want = CellAnchor
				}
				if cell.State != want {
					return fmt.Errorf("cell (%d,%d) is %v, want %v", r, c, cell.State, want)
				}
			}
		}
		owned += a.RowSpan * a.ColSpan
	}

	claimed := 0
	for r, row := range g.cells {
		if len(row) != g.cols {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), g.cols)
		}
		for c, cell := range row {
			if (cell.State == CellEmpty) != (cell.Owner == nil) {
				return fmt.Errorf("cell (%d,%d) is %v with owner %v", r, c, cell.State, cell.Owner)
			}
			if cell.Owner != nil {
				claimed++
			}
		}
	}
	if claimed != owned {
		return fmt.Errorf("%d cells claimed, %d expected", claimed, owned)
	}
	return nil
}
