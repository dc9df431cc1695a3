package cursor

import "testing"

func pos(line, char uint32) Position { return Position{Line: line, Char: char} }

func TestSelectionDirection(t *testing.T) {
	s := NewSelection(pos(0, 5), pos(0, 2))
	if !s.IsBackward() {
		t.Fatal("expected backward selection")
	}
	if s.Start() != pos(0, 2) || s.End() != pos(0, 5) {
		t.Fatalf("unexpected range: %v-%v", s.Start(), s.End())
	}
}

func TestCursorSetDescendingOrder(t *testing.T) {
	cs := NewCursorSetFromSlice([]Cursor{
		NewCursor(pos(1, 0)),
		NewCursor(pos(5, 0)),
		NewCursor(pos(0, 0)),
	})
	all := cs.All()
	for i := 1; i < len(all); i++ {
		if !all[i-1].Position().After(all[i].Position()) {
			t.Fatalf("cursors not strictly descending: %v", all)
		}
	}
}

func TestCursorSetConsolidatesTouchingSelections(t *testing.T) {
	cs := NewCursorSetFromSlice([]Cursor{
		{Sel: NewSelection(pos(0, 0), pos(0, 5))},
		{Sel: NewSelection(pos(0, 3), pos(0, 8))},
	})
	if cs.Count() != 1 {
		t.Fatalf("expected overlapping selections to merge, got %d", cs.Count())
	}
	if cs.Primary().Sel.Range() != (Range{Start: pos(0, 0), End: pos(0, 8)}) {
		t.Fatalf("unexpected merged range: %v", cs.Primary().Sel.Range())
	}
}

func TestCursorSetAbsorbsNoSelectCursorOnSameLine(t *testing.T) {
	cs := NewCursorSetFromSlice([]Cursor{
		{Sel: NewSelection(pos(2, 0), pos(2, 4))},
		NewCursor(pos(2, 9)),
	})
	if cs.Count() != 1 {
		t.Fatalf("expected no-select cursor to be absorbed, got %d cursors", cs.Count())
	}
}

func TestTransformDropsNegativeCursor(t *testing.T) {
	cs := NewCursorSetFromSlice([]Cursor{
		NewCursor(pos(0, 1)),
	})
	// Deleting (0,0)-(0,3) collapsing to (0,0): moves (0,1) before the
	// edit's start after shrinking — simulate an offset that would push
	// it negative.
	off := EditOffset{Start: pos(0, 0), LineDelta: 0, CharDelta: -5}
	cs.Transform(off)
	if cs.Count() != 1 || cs.Primary().Position() != (Position{}) {
		t.Fatalf("expected dropped cursor to fall back to origin, got %v", cs.Primary())
	}
}

func TestTwoCursorsSameColumnInsert(t *testing.T) {
	// Mirrors spec scenario 2: cursors at (0,0) and (1,0), insert "X" at each.
	cs := NewCursorSetFromSlice([]Cursor{
		NewCursor(pos(1, 0)),
		NewCursor(pos(0, 0)),
	})

	// Apply last-to-first: edit at (1,0) first.
	offLine1 := EditOffset{Start: pos(1, 0), LineDelta: 0, CharDelta: 1}
	cs.Transform(offLine1)

	all := cs.All()
	if all[0].Position() != pos(1, 1) {
		t.Fatalf("expected cursor at (1,1), got %v", all[0].Position())
	}
	if all[1].Position() != pos(0, 0) {
		t.Fatalf("expected cursor at (0,0) unaffected by edit on line 1, got %v", all[1].Position())
	}
}
