// Package docmark provides a fluent API for parsing and rendering docmark
// documents.
//
// Basic usage:
//
//	out, err := docmark.Parse(src).HTML()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	txt, err := docmark.ParseFile("notes.dm").
//	    Vars(map[string]string{"version": "1.0"}).
//	    MaxDepth(64).
//	    Text()
//
// Placeholders are resolved by a [resolver.MapEvaluator] built from Vars
// and the builtin functions unless an evaluator is configured. For finer
// control the parser, layout, htmldoc and text packages can be used
// directly.
package docmark

import (
	"github.com/tsawler/docmark/model"
)

// Parse returns a Processor for markup source.
//
// Example:
//
//	out, err := docmark.Parse(`p "Hello, " b "world"`).HTML()
func Parse(src string) *Processor {
	return &Processor{
		src:     src,
		loaded:  true,
		options: defaultOptions(),
	}
}

// ParseFile returns a Processor that reads its source from filename when
// a terminal operation runs.
//
// Example:
//
//	txt, err := docmark.ParseFile("notes.dm").Text()
func ParseFile(filename string) *Processor {
	return &Processor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument returns a Processor for an already parsed document.
//
// Example:
//
//	doc, err := parser.Parse(src)
//	if err != nil {
//	    // handle error
//	}
//	out, err := docmark.FromDocument(doc).Text()
func FromDocument(doc *model.Document) *Processor {
	return &Processor{
		doc:     doc,
		loaded:  true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	out := docmark.Must(docmark.Parse(src).HTML())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
