package layout

import (
	"strings"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/tables"
)

// Style is the set of text styles in effect for a run
type Style struct {
	Bold   bool
	Italic bool
	Pre    bool
}

// Run is a span of text with uniform style and link target
type Run struct {
	Text  string
	Style Style

	// Link is the target when the run is a location or sits inside a link
	Link *model.Location
}

// sameTarget reports whether two runs point at the same location
func (r Run) sameTarget(o Run) bool {
	if r.Link == nil || o.Link == nil {
		return r.Link == o.Link
	}
	return *r.Link == *o.Link
}

// Image is a rendered image block
type Image struct {
	Location model.Location
	Alt      string
}

// Cell is a table entry with its resolved content
type Cell struct {
	Anchor *tables.Anchor
	Runs   []Run
	Header bool
}

// Table is a laid-out table. Rows has one slice per grid row holding the
// cells anchored in that row, left to right.
type Table struct {
	Title []Run
	Grid  *tables.Grid
	Rows  [][]Cell
}

// Block is one rendered block. Exactly one of Runs, Image and Table is
// meaningful, according to Kind.
type Block struct {
	Kind  model.BlockType
	Runs  []Run
	Image *Image
	Table *Table
}

// Document is the rendered form of a model.Document
type Document struct {
	Blocks []Block
}

// PlainText returns the text of runs without styling
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// appendRun adds r to runs, merging it into the last run when style and
// target match. Empty text is dropped.
func appendRun(runs []Run, r Run) []Run {
	if r.Text == "" {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Style == r.Style && runs[n-1].sameTarget(r) {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}
