// Package cursor implements loom's cursor and selection model (§3,
// §4.2, §4.4 of the editor core spec).
//
// A Selection is an ordered pair of positions with an implicit
// "swapped" bit: Anchor is the fixed end, Head is the caret, and
// IsBackward reports whether Head precedes Anchor — the same
// information the spec calls the selection's swapped bit, carried
// without a separate field since Anchor/Head already determine it.
//
// A Cursor adds the scrolling anchor (AtLine, SkippedChars) and
// viewport height (MaxRows) the renderer's horizontal-scroll logic
// needs (§4.4).
//
// A CursorSet holds an ordered, normalized list of Cursors for
// multi-cursor mode, kept sorted **descending** by position: applying
// edits from the last cursor to the first keeps earlier cursors valid
// without needing to propagate an offset to them at all (§4.2
// "Multi-cursor offset algebra").
package cursor
