package cursor

import "github.com/textloom/loom/internal/engine/buffer"

// EditOffset is an alias for buffer.EditOffset for convenience.
type EditOffset = buffer.EditOffset

// Transform propagates a single EditOffset to every position in every
// cursor's selection. A cursor whose anchor or head would land before
// the edit's start is dropped (§4.2: "the transaction fails and the
// cursor is dropped"); the remaining cursors are renormalized, which
// performs the consolidation pass described in §4.2.
func (cs *CursorSet) Transform(off EditOffset) {
	kept := cs.cursors[:0]
	for _, c := range cs.cursors {
		anchor, ok1 := off.Propagate(c.Sel.Anchor)
		head, ok2 := off.Propagate(c.Sel.Head)
		if !ok1 || !ok2 {
			continue
		}
		c.Sel.Anchor = anchor
		c.Sel.Head = head
		kept = append(kept, c)
	}
	cs.cursors = kept
	if len(cs.cursors) == 0 {
		cs.cursors = []Cursor{NewCursor(Position{})}
		return
	}
	cs.normalize()
}

// TransformAll propagates a sequence of EditOffsets in order — used
// when a transaction groups several edits (e.g. one per multi-cursor
// insert) so every cursor reflects the cumulative effect.
func (cs *CursorSet) TransformAll(offsets []EditOffset) {
	for _, off := range offsets {
		cs.Transform(off)
	}
}
