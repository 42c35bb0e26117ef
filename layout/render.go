package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/resolver"
	"github.com/tsawler/docmark/tables"
)

// ErrNoEvaluator is returned when a document has placeholders but no
// evaluator was given
var ErrNoEvaluator = errors.New("document has placeholders but no evaluator is configured")

// Option configures Render
type Option func(*renderer)

// WithLogger sets the logger for render and placeholder debug records
func WithLogger(logger *slog.Logger) Option {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type renderer struct {
	logger   *slog.Logger
	resolver *resolver.Resolver
}

// Render resolves placeholders and lays out tables. The first evaluation
// error aborts the render; no partial document is returned.
func Render(ctx context.Context, doc *model.Document, eval resolver.Evaluator, opts ...Option) (*Document, error) {
	r := &renderer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(r)
	}

	if doc == nil {
		return &Document{}, nil
	}
	if eval == nil && len(doc.Placeholders()) > 0 {
		return nil, ErrNoEvaluator
	}
	r.resolver = resolver.New(eval, resolver.WithLogger(r.logger))

	out := &Document{Blocks: make([]Block, 0, len(doc.Blocks))}
	for i, b := range doc.Blocks {
		block, err := r.block(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		out.Blocks = append(out.Blocks, block)
	}

	r.logger.DebugContext(ctx, "rendered document", "blocks", len(out.Blocks))
	return out, nil
}

func (r *renderer) block(ctx context.Context, b model.Block) (Block, error) {
	switch b := b.(type) {
	case *model.Paragraph:
		runs, err := r.runs(ctx, b.Content)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: model.BlockTypeParagraph, Runs: runs}, nil

	case *model.Image:
		alt := b.Alt
		if b.AltChain != nil {
			value, err := r.resolver.Resolve(ctx, *b.AltChain)
			if err != nil {
				return Block{}, err
			}
			alt = value
		}
		return Block{
			Kind:  model.BlockTypeImage,
			Image: &Image{Location: b.Location, Alt: alt},
		}, nil

	case *model.Table:
		t, err := r.table(ctx, b)
		if err != nil {
			return Block{}, err
		}
		return Block{Kind: model.BlockTypeTable, Table: t}, nil
	}
	return Block{}, fmt.Errorf("unsupported block type %T", b)
}

// table resolves the title, then every entry in source order, and arranges
// the cells by grid row
func (r *renderer) table(ctx context.Context, t *model.Table) (*Table, error) {
	title, err := r.runs(ctx, t.Title)
	if err != nil {
		return nil, fmt.Errorf("table title: %w", err)
	}

	grid := tables.Layout(t)
	anchors := grid.Anchors()

	cells := make(map[*tables.Anchor]Cell, len(anchors))
	for _, a := range anchors {
		runs, err := r.runs(ctx, a.Entry.Payload)
		if err != nil {
			return nil, fmt.Errorf("table row %d entry %d: %w", a.SourceRow+1, a.SourceIndex+1, err)
		}
		cells[a] = Cell{Anchor: a, Runs: runs, Header: a.Entry.Header}
	}

	out := &Table{
		Title: title,
		Grid:  grid,
		Rows:  make([][]Cell, grid.RowCount()),
	}
	for row := range out.Rows {
		for _, a := range grid.RowAnchors(row) {
			out.Rows[row] = append(out.Rows[row], cells[a])
		}
	}

	r.logger.DebugContext(ctx, "laid out table",
		"rows", grid.RowCount(), "cols", grid.ColCount(), "entries", len(anchors))
	return out, nil
}

func (r *renderer) runs(ctx context.Context, in model.Inline) ([]Run, error) {
	var out []Run
	if err := r.flatten(ctx, in, Style{}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten appends the runs of in to out. A link nested in a link keeps the
// outer target.
func (r *renderer) flatten(ctx context.Context, in model.Inline, st Style, link *model.Location, out *[]Run) error {
	for _, run := range in {
		switch run := run.(type) {
		case model.Text:
			*out = appendRun(*out, Run{Text: run.Value, Style: st, Link: link})

		case model.Bold:
			s := st
			s.Bold = true
			if err := r.flatten(ctx, run.Content, s, link, out); err != nil {
				return err
			}

		case model.Italic:
			s := st
			s.Italic = true
			if err := r.flatten(ctx, run.Content, s, link, out); err != nil {
				return err
			}

		case model.Preformatted:
			s := st
			s.Pre = true
			if err := r.flatten(ctx, run.Content, s, link, out); err != nil {
				return err
			}

		case model.Group:
			if err := r.flatten(ctx, run.Content, st, link, out); err != nil {
				return err
			}

		case model.Loc:
			target := link
			if target == nil {
				loc := run.Location
				target = &loc
			}
			*out = appendRun(*out, Run{Text: run.Location.Target, Style: st, Link: target})

		case model.Link:
			target := link
			if target == nil {
				loc := run.Location
				target = &loc
			}
			if err := r.flatten(ctx, run.Content, st, target, out); err != nil {
				return err
			}

		case model.Placeholder:
			value, err := r.resolver.Resolve(ctx, run.Chain)
			if err != nil {
				return err
			}
			*out = appendRun(*out, Run{Text: value, Style: st, Link: link})
		}
	}
	return nil
}
