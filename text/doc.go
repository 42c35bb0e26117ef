// Package text renders laid-out documents for the terminal.
//
// Paragraphs become lines of text, images a bracketed placeholder with
// their location, and tables a box drawn from the span grid:
//
//	T
//	+---+-------+
//	| A | B     |
//	|   +---+---+
//	|   | C |   |
//	+---+---+---+
//
// The plain [Render] output carries no escape sequences. [RenderANSI] and
// [WithANSI] style runs with lipgloss, keeping column alignment by
// measuring the unstyled text.
//
// # Text Direction
//
// Cell text is measured with [DisplayWidth], which counts wide East Asian
// characters as two columns. Cells whose dominant direction is [RTL], as
// reported by [DetectDirection], are aligned to the right.
package text
