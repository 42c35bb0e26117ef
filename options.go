package docmark

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/tsawler/docmark/htmldoc"
	"github.com/tsawler/docmark/parser"
	"github.com/tsawler/docmark/resolver"
	"github.com/tsawler/docmark/text"
)

// Options holds configuration for parsing and rendering.
type Options struct {
	// Parsing
	maxDepth int

	// Placeholder resolution
	vars      map[string]string
	evaluator resolver.Evaluator

	// Output
	htmlOptions []htmldoc.Option
	textOptions []text.Option

	logger *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() Options {
	return Options{
		maxDepth: parser.MaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	return Options{
		maxDepth:    o.maxDepth,
		vars:        maps.Clone(o.vars),
		evaluator:   o.evaluator,
		htmlOptions: slices.Clone(o.htmlOptions),
		textOptions: slices.Clone(o.textOptions),
		logger:      o.logger,
	}
}

// evaluatorOrDefault returns the configured evaluator, or a map evaluator
// over the configured variables and the builtin functions
func (o Options) evaluatorOrDefault() resolver.Evaluator {
	if o.evaluator != nil {
		return o.evaluator
	}
	return &resolver.MapEvaluator{
		Vars:  o.vars,
		Funcs: resolver.Builtins(),
	}
}
