// Package history implements the editor's undo/redo stacks (§4.2).
//
// Every user-visible operation produces a Record: the forward Action
// that was applied, its Inverse (computed once, at apply time, from
// buffer.Document.Apply's return value — never recomputed by
// re-reading the document), and the cursor sets to restore on either
// side. Undo pops the most recent Record, applies its Inverse, and
// pushes the Record onto the redo stack; Redo is symmetric. Pushing a
// new Record always clears the redo stack.
package history
