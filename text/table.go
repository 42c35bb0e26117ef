package text

import (
	"strings"

	"github.com/tsawler/docmark/layout"
	"github.com/tsawler/docmark/tables"
)

// cellText is the rendered content of one anchored cell
type cellText struct {
	plain  string
	styled string
	width  int
	dir    Direction
}

// cellKey identifies the entry owning a grid position. Empty positions
// are distinct from each other; positions outside the grid all share the
// zero key.
type cellKey struct {
	owner *tables.Anchor
	r, c  int
}

type tableWriter struct {
	r      *Renderer
	grid   *tables.Grid
	cells  map[*tables.Anchor]cellText
	widths []int
}

// table renders the title on its own line followed by a box drawn around
// the grid. Spanned cells are drawn as a single box.
func (r *Renderer) table(t *layout.Table) string {
	var sb strings.Builder

	title := r.runs(t.Title)
	if r.ansi {
		title = r.styles.Title.Render(layout.PlainText(t.Title))
	}
	sb.WriteString(title)

	if t.Grid == nil || t.Grid.IsEmpty() {
		return sb.String()
	}

	tw := &tableWriter{
		r:     r,
		grid:  t.Grid,
		cells: make(map[*tables.Anchor]cellText),
	}
	for _, row := range t.Rows {
		for _, c := range row {
			tw.cells[c.Anchor] = r.cellText(c)
		}
	}
	tw.measure()

	for row := 0; row <= t.Grid.RowCount(); row++ {
		sb.WriteByte('\n')
		sb.WriteString(tw.border(row))
		if row < t.Grid.RowCount() {
			sb.WriteByte('\n')
			sb.WriteString(tw.row(row))
		}
	}
	return sb.String()
}

func (r *Renderer) cellText(c layout.Cell) cellText {
	plain := flatten(layout.PlainText(c.Runs))
	ct := cellText{
		plain:  plain,
		styled: plain,
		width:  DisplayWidth(plain),
		dir:    DetectDirection(plain),
	}
	if r.ansi {
		runs := make([]layout.Run, len(c.Runs))
		for i, run := range c.Runs {
			run.Text = flatten(run.Text)
			runs[i] = run
		}
		ct.styled = r.runsNoTargets(runs)
		if c.Header {
			ct.styled = r.styles.Header.Render(ct.styled)
		}
	}
	return ct
}

// runsNoTargets renders runs without link targets, keeping widths exact
func (r *Renderer) runsNoTargets(runs []layout.Run) string {
	var sb strings.Builder
	for _, run := range runs {
		sb.WriteString(r.styled(run))
	}
	return sb.String()
}

// measure computes column widths: single-column cells first, then spanned
// cells widen their last column if the spanned width is too small
func (tw *tableWriter) measure() {
	tw.widths = make([]int, tw.grid.ColCount())
	for i := range tw.widths {
		tw.widths[i] = 1
	}

	anchors := tw.grid.Anchors()
	for _, a := range anchors {
		if a.ColSpan == 1 && tw.cells[a].width > tw.widths[a.Col] {
			tw.widths[a.Col] = tw.cells[a].width
		}
	}
	for _, a := range anchors {
		if a.ColSpan == 1 {
			continue
		}
		if need := tw.cells[a].width - tw.spanWidth(a.Col, a.ColSpan); need > 0 {
			tw.widths[a.Col+a.ColSpan-1] += need
		}
	}
}

// spanWidth is the inner width of n columns starting at col, including the
// separators between them
func (tw *tableWriter) spanWidth(col, n int) int {
	w := 3 * (n - 1)
	for c := col; c < col+n; c++ {
		w += tw.widths[c]
	}
	return w
}

func (tw *tableWriter) key(r, c int) cellKey {
	if r < 0 || c < 0 || r >= tw.grid.RowCount() || c >= tw.grid.ColCount() {
		return cellKey{}
	}
	if owner := tw.grid.At(r, c).Owner; owner != nil {
		return cellKey{owner: owner, r: -1, c: -1}
	}
	return cellKey{r: r, c: c + 1}
}

// row renders grid row r. Rows covered by a span above show blank space.
func (tw *tableWriter) row(r int) string {
	var sb strings.Builder
	sb.WriteString(tw.rule("|"))

	for c := 0; c < tw.grid.ColCount(); {
		cell := tw.grid.At(r, c)
		width, n := tw.widths[c], 1
		content := ""

		if a := cell.Owner; a != nil {
			n = a.ColSpan
			width = tw.spanWidth(a.Col, n)
			if a.Row == r {
				ct := tw.cells[a]
				content = pad(ct.styled, ct.width, width, ct.dir)
			}
		}
		if content == "" {
			content = strings.Repeat(" ", width)
		}

		sb.WriteString(" " + content + " ")
		sb.WriteString(tw.rule("|"))
		c += n
	}
	return sb.String()
}

// border renders the line above grid row r; r == RowCount is the bottom.
// A horizontal segment is drawn where the cells above and below differ,
// and each joint connects the segments and bars meeting there.
func (tw *tableWriter) border(r int) string {
	var sb strings.Builder
	cols := tw.grid.ColCount()

	for c := 0; c <= cols; c++ {
		up := tw.key(r-1, c-1) != tw.key(r-1, c)
		down := tw.key(r, c-1) != tw.key(r, c)
		left := tw.key(r-1, c-1) != tw.key(r, c-1)
		right := tw.key(r-1, c) != tw.key(r, c)

		switch {
		case (left || right) && (up || down):
			sb.WriteString(tw.rule("+"))
		case left || right:
			sb.WriteString(tw.rule("-"))
		case up || down:
			sb.WriteString(tw.rule("|"))
		default:
			sb.WriteByte(' ')
		}

		if c == cols {
			break
		}
		seg := " "
		if right {
			seg = "-"
		}
		sb.WriteString(tw.rule(strings.Repeat(seg, tw.widths[c]+2)))
	}
	return sb.String()
}

// rule styles border characters in ANSI mode
func (tw *tableWriter) rule(s string) string {
	if tw.r.ansi && strings.TrimSpace(s) != "" {
		return tw.r.styles.Border.Render(s)
	}
	return s
}
