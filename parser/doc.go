// Package parser turns docmark source into a [model.Document].
//
// The parser is recursive descent with one token of lookahead, except for a
// short peek that tells an image block apart from italic text. The grammar:
//
//	document  = { block } .
//	block     = "p" inline
//	          | "i" location "alt" ( string | placeholder )
//	          | "t" inline "{" { row } "}" .
//	row       = "{" [ entry { "," entry } ] "}" .
//	entry     = [ "h" ] inline { "rows" span | "cols" span } .
//	inline    = term { term } .
//	term      = string | location | "(" inline ")"
//	          | ( "b" | "i" | "c" ) inline
//	          | "l" inline location
//	          | placeholder .
//	location  = ( "#" | "/" | "@" ) string .
//	placeholder = base { "!" argument } .
//	base      = "$" ident | fragment .
//	argument  = base | string | "(" placeholder ")" .
//
// A styled span applies to the rest of the enclosing inline, so `b "x" "y"`
// is bold throughout and `(b "x") "y"` limits it. Link content ends at the
// first location after its first term. Each entry accepts rows and cols at
// most once, in either order, with a span from 1 to [MaxSpan].
//
// # Errors
//
// Every failure is an [*Error] carrying its [ErrorKind] and position. The
// sentinels [ErrLex], [ErrSyntax], [ErrDuplicateModifier], [ErrInvalidSpan]
// and [ErrTooDeep] match with errors.Is. No partial document is returned.
//
// # Depth
//
// Nesting of groups, styled spans, links and chain arguments is limited to
// [MaxDepth] levels by default; see [WithMaxDepth].
package parser
