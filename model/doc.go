// Package model provides the syntax tree produced by the docmark parser.
//
// This package defines the user-facing data structures that represent a
// parsed document. The parser produces these types, the printer turns them
// back into source, and the layout package turns them into a format-agnostic
// rendered document.
//
// # Document Structure
//
// The [Document] type is an ordered list of [Block] values:
//
//   - [Paragraph] - an inline written `p <inline>`
//   - [Image] - a location and alt text written `i @"pic.png" alt "text"`,
//     or `alt $name` to compute the text
//   - [Table] - a titled table written `t <inline> { {...} {...} }`
//
// # Inlines
//
// An [Inline] is an ordered list of [Run] values. Order is render order. The
// concrete run types are [Text], [Bold], [Italic], [Preformatted], [Loc],
// [Link], [Placeholder] and [Group].
//
// # Placeholders
//
// A [Placeholder] holds a [Chain]: a base operand ($name or ${code}) followed
// by the arguments of successive `!` applications. The chain is evaluated by
// the resolver package; the model only records its shape.
//
// # Tables
//
// A [Table] has a title and rows of [TableEntry] values. Every entry has a
// row span and a column span of at least 1. The tables package resolves the
// spans into a grid.
//
// # Immutability
//
// Values are built once per parse and are not modified afterwards. Use
// [Equal] to compare two documents structurally.
package model
