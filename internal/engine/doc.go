// Package engine implements loom's edit engine (§4.2): the operations
// that mutate a buffer.Document under a cursor.CursorSet, recording
// undo/redo history and propagating each edit's effect to every other
// active cursor.
//
// Every public operation (InsertChar, Backspace, Delete, Newline,
// Paste, Cut, ReplaceRange, ReplaceSelect, SwapLines, Indent, Unindent)
// follows the same shape: for each cursor, descending by position,
// compute and apply one buffer.Edit, fold the resulting EditOffset
// into every other cursor via cursor.CursorSet.Transform, then push a
// history.Record covering every edit as one undo unit.
//
// PerformTransaction groups an arbitrary sequence of operations into a
// single undo step and suspends the idle-coalescing buffer and the
// document-sync callback for its duration, exactly as §4.2 describes.
package engine
