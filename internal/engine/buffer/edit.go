package buffer

import "fmt"

// Edit is the atomic unit of change: replace the text in RangeBefore
// with TextInserted. TextRemoved carries the text that RangeBefore
// covered before the edit was applied, so an Edit can be inverted
// without re-reading the document.
type Edit struct {
	RangeBefore  Range
	TextInserted string
	TextRemoved  string
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.RangeBefore.IsEmpty() && e.TextInserted != "":
		return fmt.Sprintf("insert@%s %q", e.RangeBefore.Start, e.TextInserted)
	case e.TextInserted == "":
		return fmt.Sprintf("delete%s", e.RangeBefore)
	default:
		return fmt.Sprintf("replace%s with %q", e.RangeBefore, e.TextInserted)
	}
}

// EditOffset summarizes an Edit's effect on positions after it, for
// propagating the edit to other cursors without replaying the whole
// document (§4.2 "Multi-cursor offset algebra").
type EditOffset struct {
	Start      Position
	LineDelta  int32
	CharDelta  int32
}

// Offset computes the EditOffset an applied Edit induces, given the
// position it ends at (the caller applies the edit and passes the
// resulting end position).
func Offset(start, end Position) EditOffset {
	return EditOffset{
		Start:     start,
		LineDelta: int32(end.Line) - int32(start.Line),
		CharDelta: int32(end.Char) - int32(start.Char),
	}
}

// Propagate applies the EditOffset to p, following the rule in §4.2:
// positions strictly before the edit's start are untouched; positions
// on the edit's start line at or after Start.Char shift by both
// deltas; positions on later lines shift only by LineDelta. ok is
// false if propagation would place p before the edit (the caller
// should drop the cursor).
func (o EditOffset) Propagate(p Position) (result Position, ok bool) {
	switch {
	case p.Line < o.Start.Line:
		return p, true
	case p.Line == o.Start.Line && p.Char < o.Start.Char:
		return p, true
	case p.Line == o.Start.Line:
		newLine := int64(p.Line) + int64(o.LineDelta)
		newChar := int64(p.Char) + int64(o.CharDelta)
		if newLine < 0 || newChar < 0 {
			return Position{}, false
		}
		return Position{Line: uint32(newLine), Char: uint32(newChar)}, true
	default: // p.Line > o.Start.Line
		newLine := int64(p.Line) + int64(o.LineDelta)
		if newLine < 0 {
			return Position{}, false
		}
		return Position{Line: uint32(newLine), Char: p.Char}, true
	}
}

// Action is one undo/redo unit: a single Edit, or — when produced by
// a transaction — an ordered list of Edits applied as a group.
type Action struct {
	Edits []Edit
}

// SingleAction wraps one Edit as an Action.
func SingleAction(e Edit) Action { return Action{Edits: []Edit{e}} }

// IsMulti reports whether this action groups more than one edit.
func (a Action) IsMulti() bool { return len(a.Edits) > 1 }
