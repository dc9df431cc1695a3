package cursor

// Cursor is one insertion point / selection plus the bookkeeping the
// renderer needs to keep it on screen: a vertical scrolling anchor
// (AtLine, the first visible line) and a horizontal scrolling offset
// (SkippedChars, §4.4) bounded by the viewport height MaxRows.
type Cursor struct {
	Sel          Selection
	AtLine       uint32
	SkippedChars uint32
	MaxRows      int
}

// NewCursor creates a cursor with no selection at p.
func NewCursor(p Position) Cursor {
	return Cursor{Sel: NewCursorSelection(p)}
}

// Position returns the caret position (the selection's head).
func (c Cursor) Position() Position { return c.Sel.Head }

// HasSelection reports whether the cursor has a non-empty selection.
func (c Cursor) HasSelection() bool { return !c.Sel.IsEmpty() }

// WithSelection returns a copy of c with its selection replaced,
// preserving scrolling state.
func (c Cursor) WithSelection(sel Selection) Cursor {
	c.Sel = sel
	return c
}

// WithPosition returns a copy of c moved to p with no selection,
// preserving scrolling state.
func (c Cursor) WithPosition(p Position) Cursor {
	c.Sel = NewCursorSelection(p)
	return c
}
