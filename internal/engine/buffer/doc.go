// Package buffer implements loom's line-oriented text model.
//
// A Document is a finite ordered sequence of Lines, never empty: a
// freshly created or fully-deleted document is one empty line. Every
// position into a Document is a character index, not a byte offset;
// conversion to UTF-16 (for LSP) and to bytes (for storage and
// rendering) happens at the boundary, not in the core model.
//
// Line owns its own bytes plus derived metadata: character length,
// display width, semantic/syntactic tokens, and an optional diagnostic
// overlay. Lines with a pure-ASCII fast path (is_simple) skip the
// UTF-8 walk that char-indexing otherwise requires.
//
// Edit is the atomic record of a single range-replace; Document.Apply
// both mutates the document and returns the Edit needed to invert it,
// so callers (internal/engine) can build undo stacks without
// re-deriving inverses by hand.
package buffer
