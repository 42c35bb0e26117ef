package tables

import (
	"math"
	"testing"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/parser"
)

// layoutSource parses a single table and lays it out
func layoutSource(t *testing.T, src string) *Grid {
	t.Helper()
	doc, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	g := Layout(tables[0])
	if err := g.Validate(); err != nil {
		t.Fatalf("invalid grid: %v", err)
	}
	return g
}

// label returns the text payload of an anchor
func label(a *Anchor) string {
	if a == nil || len(a.Entry.Payload) == 0 {
		return ""
	}
	if text, ok := a.Entry.Payload[0].(model.Text); ok {
		return text.Value
	}
	return ""
}

type placement struct {
	label            string
	row, col         int
	rowSpan, colSpan int
}

func checkPlacements(t *testing.T, g *Grid, want []placement) {
	t.Helper()
	anchors := g.Anchors()
	if len(anchors) != len(want) {
		t.Fatalf("expected %d anchors, got %d", len(want), len(anchors))
	}
	for i, w := range want {
		a := anchors[i]
		got := placement{label(a), a.Row, a.Col, a.RowSpan, a.ColSpan}
		if got != w {
			t.Errorf("anchor %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestCellStateString(t *testing.T) {
	tests := []struct {
		state CellState
		want  string
	}{
		{CellEmpty, "Empty"},
		{CellAnchor, "Anchor"},
		{CellCovered, "Covered"},
		{CellState(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("CellState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestLayout_TwoByTwo(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a", "b" } { "c", "d" } }`)

	if g.RowCount() != 2 || g.ColCount() != 2 {
		t.Fatalf("expected 2x2 grid, got %dx%d", g.RowCount(), g.ColCount())
	}
	checkPlacements(t, g, []placement{
		{"a", 0, 0, 1, 1},
		{"b", 0, 1, 1, 1},
		{"c", 1, 0, 1, 1},
		{"d", 1, 1, 1, 1},
	})
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if s := g.At(r, c).State; s != CellAnchor {
				t.Errorf("cell (%d,%d) is %v, want Anchor", r, c, s)
			}
		}
	}
}

func TestLayout_ColSpanPushesNextEntry(t *testing.T) {
	g := layoutSource(t, `t "T" { { "A" cols 2, "B" } }`)

	checkPlacements(t, g, []placement{
		{"A", 0, 0, 1, 2},
		{"B", 0, 2, 1, 1},
	})
	if g.ColCount() != 3 {
		t.Errorf("expected 3 columns, got %d", g.ColCount())
	}
	if cell := g.At(0, 1); cell.State != CellCovered || label(cell.Owner) != "A" {
		t.Errorf("cell (0,1) should be covered by A, got %v %q", cell.State, label(cell.Owner))
	}
}

func TestLayout_RowSpanSinks(t *testing.T) {
	g := layoutSource(t, `t "T" { { "A" rows 2 cols 1, "B" } { "C" } }`)

	checkPlacements(t, g, []placement{
		{"A", 0, 0, 2, 1},
		{"B", 0, 1, 1, 1},
		{"C", 1, 1, 1, 1},
	})
	if cell := g.At(1, 0); cell.State != CellCovered || label(cell.Owner) != "A" {
		t.Errorf("cell (1,0) should be covered by A, got %v", cell.State)
	}
}

func TestLayout_EmptyTable(t *testing.T) {
	g := layoutSource(t, `t "Title" { }`)
	if g.RowCount() != 0 || g.ColCount() != 0 {
		t.Errorf("expected 0x0 grid, got %dx%d", g.RowCount(), g.ColCount())
	}
	if !g.IsEmpty() {
		t.Error("empty table should give an empty grid")
	}
	if len(g.Anchors()) != 0 {
		t.Error("empty grid should have no anchors")
	}
}

func TestLayout_NilTable(t *testing.T) {
	g := Layout(nil)
	if !g.IsEmpty() || g.Validate() != nil {
		t.Error("nil table should give a valid empty grid")
	}
}

func TestLayout_EmptyRowsOccupyGridRows(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a" } { } { "b" } }`)

	if g.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", g.RowCount())
	}
	checkPlacements(t, g, []placement{
		{"a", 0, 0, 1, 1},
		{"b", 2, 0, 1, 1},
	})
	if g.At(1, 0).State != CellEmpty {
		t.Error("row 1 should be empty")
	}
}

func TestLayout_RowSpanExtendsHeight(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a" rows 4 } }`)
	if g.RowCount() != 4 || g.ColCount() != 1 {
		t.Errorf("expected 4x1 grid, got %dx%d", g.RowCount(), g.ColCount())
	}
	for r := 1; r < 4; r++ {
		if g.At(r, 0).State != CellCovered {
			t.Errorf("cell (%d,0) should be covered", r)
		}
	}
}

func TestLayout_WideRowGrows(t *testing.T) {
	g := layoutSource(t, `t "T" {
		{ "a" rows 3 cols 3, "b" }
		{ "c" cols 5 }
		{ "d", "e" }
	}`)

	checkPlacements(t, g, []placement{
		{"a", 0, 0, 3, 3},
		{"b", 0, 3, 1, 1},
		{"c", 1, 3, 1, 5},
		{"d", 2, 3, 1, 1},
		{"e", 2, 4, 1, 1},
	})
	if g.ColCount() != 8 {
		t.Errorf("expected 8 columns, got %d", g.ColCount())
	}
	if g.At(0, 7).State != CellEmpty {
		t.Error("cell (0,7) should be empty")
	}
}

func TestLayout_SkipsPartiallyCoveredSlot(t *testing.T) {
	// "c" needs two free columns; column 0 is free but column 1 is covered
	g := layoutSource(t, `t "T" {
		{ "a", "b" rows 2 }
		{ "c" cols 2 }
	}`)

	checkPlacements(t, g, []placement{
		{"a", 0, 0, 1, 1},
		{"b", 0, 1, 2, 1},
		{"c", 1, 2, 1, 2},
	})
	if g.At(1, 0).State != CellEmpty {
		t.Error("cell (1,0) should stay empty")
	}
}

func TestGrid_RowAnchors(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a" rows 2, "b", "c" } { "d", "e" } }`)

	tests := []struct {
		row  int
		want []string
	}{
		{0, []string{"a", "b", "c"}},
		{1, []string{"d", "e"}},
		{2, nil},
		{-1, nil},
	}
	for _, tt := range tests {
		got := g.RowAnchors(tt.row)
		if len(got) != len(tt.want) {
			t.Errorf("row %d: got %d anchors, want %d", tt.row, len(got), len(tt.want))
			continue
		}
		for i, a := range got {
			if label(a) != tt.want[i] {
				t.Errorf("row %d anchor %d = %q, want %q", tt.row, i, label(a), tt.want[i])
			}
		}
	}
}

func TestGrid_AtOutOfRange(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a" } }`)
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}} {
		if cell := g.At(rc[0], rc[1]); cell.State != CellEmpty || cell.Owner != nil {
			t.Errorf("At(%d,%d) should be empty", rc[0], rc[1])
		}
	}
}

func TestGrid_SourcePositions(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a", "b" } { } { "c" } }`)
	want := [][2]int{{0, 0}, {0, 1}, {2, 0}}
	for i, a := range g.Anchors() {
		if a.SourceRow != want[i][0] || a.SourceIndex != want[i][1] {
			t.Errorf("anchor %d source = (%d,%d), want %v", i, a.SourceRow, a.SourceIndex, want[i])
		}
	}
}

func TestGrid_ValidateDetectsOverlap(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a", "b" } }`)
	g.anchors[1].Col = 0
	if err := g.Validate(); err == nil {
		t.Error("expected an error for overlapping anchors")
	}
}

func TestLayout_ProgrammaticSpans(t *testing.T) {
	table := &model.Table{Rows: []model.TableRow{{Entries: []model.TableEntry{
		{Payload: model.Inline{model.Text{Value: "z"}}},
	}}}}
	g := Layout(table)
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	checkPlacements(t, g, []placement{{"z", 0, 0, 1, 1}})
}

func TestLayout_HugeSpansClamped(t *testing.T) {
	entry := func(v string, rows, cols int) model.TableEntry {
		return model.TableEntry{Payload: model.Inline{model.Text{Value: v}}, RowSpan: rows, ColSpan: cols}
	}
	tests := []struct {
		name    string
		entries []model.TableEntry
		want    []placement
		cols    int
	}{
		{
			name:    "first column",
			entries: []model.TableEntry{entry("a", 1, math.MaxInt)},
			want:    []placement{{"a", 0, 0, 1, parser.MaxSpan}},
			cols:    parser.MaxSpan,
		},
		{
			name:    "after another entry",
			entries: []model.TableEntry{entry("a", 1, 1), entry("b", 2, math.MaxInt), entry("c", 1, 1)},
			want: []placement{
				{"a", 0, 0, 1, 1},
				{"b", 0, 1, 2, parser.MaxSpan},
				{"c", 0, parser.MaxSpan + 1, 1, 1},
			},
			cols: parser.MaxSpan + 2,
		},
		{
			name:    "negative",
			entries: []model.TableEntry{entry("a", math.MinInt, -5)},
			want:    []placement{{"a", 0, 0, 1, 1}},
			cols:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Layout(&model.Table{Rows: []model.TableRow{{Entries: tt.entries}}})
			if err := g.Validate(); err != nil {
				t.Fatal(err)
			}
			checkPlacements(t, g, tt.want)
			if g.ColCount() != tt.cols {
				t.Errorf("expected %d columns, got %d", tt.cols, g.ColCount())
			}
		})
	}
}

func TestLayout_MaxSpanFromSource(t *testing.T) {
	g := layoutSource(t, `t "T" { { "a" rows 1000, "b" } { "c" } }`)
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	if g.RowCount() != parser.MaxSpan {
		t.Errorf("expected %d rows, got %d", parser.MaxSpan, g.RowCount())
	}
	checkPlacements(t, g, []placement{
		{"a", 0, 0, parser.MaxSpan, 1},
		{"b", 0, 1, 1, 1},
		{"c", 1, 1, 1, 1},
	})
}

func TestAnchorContains(t *testing.T) {
	a := &Anchor{Row: 1, Col: 2, RowSpan: 2, ColSpan: 3}
	tests := []struct {
		r, c int
		want bool
	}{
		{1, 2, true},
		{2, 4, true},
		{0, 2, false},
		{3, 2, false},
		{1, 1, false},
		{1, 5, false},
	}
	for _, tt := range tests {
		if got := a.Contains(tt.r, tt.c); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.r, tt.c, got, tt.want)
		}
	}
}
