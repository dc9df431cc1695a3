package history

import (
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
)

// Record is one undo/redo unit.
type Record struct {
	// Forward is the action as originally applied; Redo replays it.
	Forward buffer.Action

	// Inverse undoes Forward. For a multi-edit action its Edits are
	// stored already reversed and each individually inverted, so Undo
	// can apply them in order without extra bookkeeping (§4.2: "For
	// Action::Multi the reverse is the edits reversed and each inverted").
	Inverse buffer.Action

	// CursorsBefore/CursorsAfter let the caller restore caret placement
	// exactly, rather than re-deriving it from the edit (selections in
	// particular cannot always be reconstructed from a range-replace).
	CursorsBefore *cursor.CursorSet
	CursorsAfter  *cursor.CursorSet

	// Description is a short human-readable label (e.g. "insert",
	// "replace all") surfaced by UndoInfo/RedoInfo.
	Description string
}

// NewRecord builds a Record from a completed edit, computing Inverse
// from the per-edit inverses buffer.Document.Apply returned.
func NewRecord(forward []buffer.Edit, inverses []buffer.Edit, before, after *cursor.CursorSet, description string) Record {
	reversed := make([]buffer.Edit, len(inverses))
	for i, inv := range inverses {
		reversed[len(inverses)-1-i] = inv
	}
	return Record{
		Forward:       buffer.Action{Edits: forward},
		Inverse:       buffer.Action{Edits: reversed},
		CursorsBefore: before,
		CursorsAfter:  after,
		Description:   description,
	}
}
