package docmark

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/htmldoc"
	"github.com/tsawler/docmark/layout"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/parser"
	"github.com/tsawler/docmark/printer"
	"github.com/tsawler/docmark/resolver"
	"github.com/tsawler/docmark/tables"
	"github.com/tsawler/docmark/text"
)

// Processor provides a fluent interface for parsing and rendering a
// document. Each configuration method returns a new Processor, making it
// safe for concurrent use and allowing method chaining.
type Processor struct {
	// Source
	filename string
	src      string
	doc      *model.Document
	loaded   bool

	// Configuration
	options Options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Processor with a deep copy of options.
func (p *Processor) clone() *Processor {
	return &Processor{
		filename: p.filename,
		src:      p.src,
		doc:      p.doc,
		loaded:   p.loaded,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// Vars adds placeholder values for the default evaluator. Multiple calls
// are cumulative; later values win.
//
// Example:
//
//	out, err := docmark.Parse(`p $name`).Vars(map[string]string{"name": "Ada"}).Text()
func (p *Processor) Vars(vars map[string]string) *Processor {
	np := p.clone()
	if np.options.vars == nil {
		np.options.vars = make(map[string]string, len(vars))
	}
	maps.Copy(np.options.vars, vars)
	return np
}

// Var adds a single placeholder value.
func (p *Processor) Var(name, value string) *Processor {
	return p.Vars(map[string]string{name: value})
}

// Evaluator sets the evaluator for placeholders, replacing the default map
// evaluator and any configured Vars.
func (p *Processor) Evaluator(ev resolver.Evaluator) *Processor {
	np := p.clone()
	np.options.evaluator = ev
	return np
}

// Starlark evaluates placeholders with the Starlark module src. The
// configured Vars are visible to the module as predeclared strings, so
// Vars must be called first.
//
// Example:
//
//	out, err := docmark.Parse(`p ${1 + 2}`).Starlark("helpers.star", "").Text()
func (p *Processor) Starlark(name, src string, opts ...resolver.StarlarkOption) *Processor {
	np := p.clone()
	if np.err != nil {
		return np
	}
	ev, err := resolver.NewStarlarkEvaluator(name, src, np.options.vars, opts...)
	if err != nil {
		np.err = err
		return np
	}
	np.options.evaluator = ev
	return np
}

// MaxDepth limits the nesting depth accepted by the parser.
func (p *Processor) MaxDepth(depth int) *Processor {
	np := p.clone()
	np.options.maxDepth = depth
	return np
}

// Logger sets the logger for debug output of placeholder resolution.
func (p *Processor) Logger(logger *slog.Logger) *Processor {
	np := p.clone()
	if logger != nil {
		np.options.logger = logger
	}
	return np
}

// HTMLOptions adds options for HTML output. Multiple calls are cumulative.
//
// Example:
//
//	out, err := docmark.Parse(src).HTMLOptions(htmldoc.WithFragment(true)).HTML()
func (p *Processor) HTMLOptions(opts ...htmldoc.Option) *Processor {
	np := p.clone()
	np.options.htmlOptions = append(np.options.htmlOptions, opts...)
	return np
}

// TextOptions adds options for text and ANSI output. Multiple calls are
// cumulative.
func (p *Processor) TextOptions(opts ...text.Option) *Processor {
	np := p.clone()
	np.options.textOptions = append(np.options.textOptions, opts...)
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document parses the source and returns the syntax tree.
func (p *Processor) Document() (*model.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.doc != nil {
		return p.doc, nil
	}

	src, err := p.source()
	if err != nil {
		return nil, err
	}

	doc, err := parser.Parse(src, parser.WithMaxDepth(p.options.maxDepth))
	if err != nil {
		if p.filename != "" {
			return nil, fmt.Errorf("%s: %w", p.filename, err)
		}
		return nil, err
	}
	return doc, nil
}

// Tables parses the source and lays out the span grid of every table,
// in document order. Placeholders are not resolved.
func (p *Processor) Tables() ([]*tables.Grid, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}

	var grids []*tables.Grid
	for _, t := range doc.Tables() {
		grids = append(grids, tables.Layout(t))
	}
	return grids, nil
}

// Render parses the source, resolves placeholders and lays out tables.
func (p *Processor) Render(ctx context.Context) (*layout.Document, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	return layout.Render(ctx, doc, p.options.evaluatorOrDefault(), layout.WithLogger(p.options.logger))
}

// HTML renders the document as HTML.
func (p *Processor) HTML() (string, error) {
	return p.Format(context.Background(), format.HTML)
}

// Text renders the document as plain text.
func (p *Processor) Text() (string, error) {
	return p.Format(context.Background(), format.Text)
}

// ANSI renders the document as styled text for the terminal on stdout.
func (p *Processor) ANSI() (string, error) {
	return p.Format(context.Background(), format.ANSI)
}

// Source returns the canonical source form of the document. Placeholders
// are printed, not resolved.
func (p *Processor) Source() (string, error) {
	return p.Format(context.Background(), format.Source)
}

// Format renders the document in the given output format.
func (p *Processor) Format(ctx context.Context, f format.Format) (string, error) {
	if f == format.Source {
		doc, err := p.Document()
		if err != nil {
			return "", err
		}
		return printer.Sprint(doc), nil
	}

	rd, err := p.Render(ctx)
	if err != nil {
		return "", err
	}

	switch f {
	case format.HTML:
		return htmldoc.Render(rd, p.options.htmlOptions...)
	case format.Text:
		return text.NewRenderer(p.options.textOptions...).Render(rd), nil
	case format.ANSI:
		opts := append([]text.Option{text.WithANSI(nil)}, p.options.textOptions...)
		return text.NewRenderer(opts...).Render(rd), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", f)
	}
}

// source returns the markup, reading the file if needed
func (p *Processor) source() (string, error) {
	if p.loaded {
		return p.src, nil
	}
	if p.filename == "" {
		return "", fmt.Errorf("no filename specified")
	}

	if f := format.Detect(p.filename); f != format.Source && f != format.Unknown {
		return "", fmt.Errorf("unsupported input format: %s", f)
	}

	data, err := os.ReadFile(p.filename)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}
