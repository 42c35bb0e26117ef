// Package layout turns a parsed document into a format-agnostic rendered
// document that output packages draw from.
//
// # Rendering
//
// [Render] walks the blocks in document order. Placeholders are resolved
// through the given evaluator, left to right, and the first failure aborts
// the render. Tables are laid out with [tables.Layout]:
//
//	rd, err := layout.Render(ctx, doc, evaluator)
//	for _, b := range rd.Blocks {
//		switch b.Kind {
//		case model.BlockTypeParagraph:
//			// b.Runs
//		case model.BlockTypeTable:
//			// b.Table.Title, b.Table.Rows
//		}
//	}
//
// # Runs
//
// Inline trees are flattened into [Run] values. Each run carries its
// accumulated [Style] and, inside a link or for a bare location, the
// target location. Groups disappear. Adjacent runs with the same style and
// the same target are merged, and text is concatenated without separators,
// so `p "Hello, " $name` renders as one run.
//
// A nil evaluator is accepted for documents without placeholders;
// otherwise Render fails with [ErrNoEvaluator].
package layout
