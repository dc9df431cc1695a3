package engine

import (
	"sort"
	"time"

	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/engine/history"
)

// CoalesceIdleWindow bounds how long a run of single-character
// inserts/deletes at the same cursor may be merged into one undo
// step before a gap forces a new one (§4.2's "idle window").
const CoalesceIdleWindow = 500 * time.Millisecond

// Re-exported types for callers that only need the engine package.
type (
	Position  = buffer.Position
	Range     = buffer.Range
	Edit      = buffer.Edit
	Action    = buffer.Action
	Selection = cursor.Selection
	Cursor    = cursor.Cursor
)

type pendingKind uint8

const (
	pendingNone pendingKind = iota
	pendingInsert
	pendingDelete
)

// pendingCoalesce tracks an uncommitted run of single-character edits
// at one cursor, already applied to the document but not yet pushed
// to history.
type pendingCoalesce struct {
	kind          pendingKind
	forward       buffer.Edit
	inverse       buffer.Edit
	cursorsBefore *cursor.CursorSet
	startedAt     time.Time
	lastAt        time.Time
}

// Engine is the edit engine for one document: it owns the document,
// the active cursor set, undo/redo history, and the idle-coalescing
// buffer (§4.2).
type Engine struct {
	doc     *buffer.Document
	cursors *cursor.CursorSet
	hist    *history.History

	pending *pendingCoalesce

	txDepth   int
	txForward []buffer.Edit
	txInverse []buffer.Edit
	txBefore  *cursor.CursorSet
	txDesc    string

	clip Clipboard

	// indentString is the unit Indent/Unindent use; the editor
	// aggregate sets this from per-document config (tabs vs. spaces).
	indentString string

	// onSync is invoked after every committed change unless a
	// transaction is in progress, matching "LSP sync callbacks are
	// suspended during the body and restored after" (§4.2).
	onSync func()
}

// New creates an engine over doc, starting with a single cursor at
// the origin.
func New(doc *buffer.Document) *Engine {
	return &Engine{
		doc:          doc,
		cursors:      cursor.NewCursorSetAt(buffer.Position{}),
		hist:         history.NewHistory(0),
		indentString: "\t",
	}
}

// Document returns the underlying document.
func (e *Engine) Document() *buffer.Document { return e.doc }

// Cursors returns the active cursor set.
func (e *Engine) Cursors() *cursor.CursorSet { return e.cursors }

// SetOnSync installs the callback invoked after each committed,
// non-transactional change (the editor aggregate uses this to enqueue
// an LSP didChange notification).
func (e *Engine) SetOnSync(fn func()) { e.onSync = fn }

// notifySync fires onSync, unless currently inside a transaction body
// (§4.2: sync callbacks are suspended during a transaction).
func (e *Engine) notifySync() {
	if e.txDepth == 0 && e.onSync != nil {
		e.onSync()
	}
}

// flushPending commits any pending coalesced edit to history.
func (e *Engine) flushPending() {
	if e.pending == nil {
		return
	}
	p := e.pending
	e.pending = nil
	e.pushRecord([]buffer.Edit{p.forward}, []buffer.Edit{p.inverse}, p.cursorsBefore, e.cursors.Clone(), describeKind(p.kind))
}

// PushBuffer explicitly commits the coalescing buffer without waiting
// for a non-coalescible event.
func (e *Engine) PushBuffer() { e.flushPending() }

func describeKind(k pendingKind) string {
	switch k {
	case pendingInsert:
		return "insert"
	case pendingDelete:
		return "delete"
	default:
		return "edit"
	}
}

// pushRecord appends a completed history entry unless inside a
// transaction, in which case the edits are folded into the enclosing
// transaction's accumulator instead.
func (e *Engine) pushRecord(forward, inverse []buffer.Edit, before, after *cursor.CursorSet, desc string) {
	if e.txDepth > 0 {
		e.txForward = append(e.txForward, forward...)
		e.txInverse = append(e.txInverse, inverse...)
		return
	}
	e.hist.Push(history.NewRecord(forward, inverse, before, after, desc))
	e.notifySync()
}

// applyPerCursor applies build(c) for every cursor, descending by
// position (so earlier edits never invalidate a not-yet-processed
// cursor — §4.2), commits one history record covering every edit, and
// leaves each edited cursor collapsed at the position the edit ended at.
func (e *Engine) applyPerCursor(desc string, build func(c cursor.Cursor) buffer.Edit) error {
	e.flushPending()
	before := e.cursors.Clone()
	all := e.cursors.All() // already descending

	forward := make([]buffer.Edit, 0, len(all))
	inverse := make([]buffer.Edit, 0, len(all))
	next := make([]cursor.Cursor, 0, len(all))

	for _, c := range all {
		edit := build(c)
		inv, err := e.doc.Apply(edit)
		if err != nil {
			return err
		}
		forward = append(forward, edit)
		inverse = append(inverse, inv)
		next = append(next, cursor.NewCursor(inv.RangeBefore.End))
	}

	e.cursors.SetAll(next)
	e.pushRecord(forward, inverse, before, e.cursors.Clone(), desc)
	return nil
}

// tryCoalesce attempts to extend the pending edit with a new
// single-character edit at the same cursor. Only valid in
// single-cursor mode — multi-cursor coalescing is out of scope (see
// DESIGN.md).
func (e *Engine) tryCoalesce(kind pendingKind, edit, inverse buffer.Edit) bool {
	if e.cursors.IsMulti() {
		return false
	}
	p := e.pending
	if p == nil || p.kind != kind {
		return false
	}
	if time.Since(p.lastAt) > CoalesceIdleWindow {
		return false
	}

	switch kind {
	case pendingInsert:
		if p.forward.RangeBefore.End != edit.RangeBefore.Start {
			return false
		}
		p.forward.TextInserted += edit.TextInserted
		p.forward.RangeBefore.End = inverse.RangeBefore.End
		p.inverse.RangeBefore.End = inverse.RangeBefore.End
	case pendingDelete:
		// Backspace walks the removal start backwards; delete-forward
		// keeps the start fixed and grows the end. Detect which.
		if edit.RangeBefore.End == p.forward.RangeBefore.Start {
			p.forward.RangeBefore.Start = edit.RangeBefore.Start
			p.inverse.TextInserted = inverse.TextInserted + p.inverse.TextInserted
		} else if edit.RangeBefore.Start == p.forward.RangeBefore.Start {
			p.inverse.TextInserted += inverse.TextInserted
		} else {
			return false
		}
		p.inverse.RangeBefore = Range{Start: p.forward.RangeBefore.Start, End: p.forward.RangeBefore.Start}
	}
	p.lastAt = time.Now()
	return true
}

func (e *Engine) startPending(kind pendingKind, forward, inverse buffer.Edit, before *cursor.CursorSet) {
	now := time.Now()
	e.pending = &pendingCoalesce{
		kind:          kind,
		forward:       forward,
		inverse:       inverse,
		cursorsBefore: before,
		startedAt:     now,
		lastAt:        now,
	}
}

// InsertChar inserts s (typically one character) at every cursor,
// replacing any selection. Single-cursor runs of this call coalesce.
func (e *Engine) InsertChar(s string) error {
	if e.cursors.IsMulti() || e.cursors.HasSelection() {
		return e.applyPerCursor("insert", func(c cursor.Cursor) buffer.Edit {
			return buffer.Edit{RangeBefore: c.Sel.Range(), TextInserted: s}
		})
	}

	before := e.cursors.Clone()
	c := e.cursors.Primary()
	edit := buffer.Edit{RangeBefore: c.Sel.Range(), TextInserted: s}
	inv, err := e.doc.Apply(edit)
	if err != nil {
		return err
	}
	e.cursors.Set(cursor.NewCursor(inv.RangeBefore.End))

	if e.tryCoalesce(pendingInsert, edit, inv) {
		return nil
	}
	e.flushPending()
	e.startPending(pendingInsert, edit, inv, before)
	return nil
}

// Backspace deletes the character before each cursor (or each
// cursor's selection, if non-empty).
func (e *Engine) Backspace() error {
	if e.cursors.IsMulti() || e.cursors.HasSelection() {
		return e.applyPerCursor("delete", func(c cursor.Cursor) buffer.Edit {
			if c.HasSelection() {
				return buffer.Edit{RangeBefore: c.Sel.Range()}
			}
			return buffer.Edit{RangeBefore: e.charBefore(c.Position())}
		})
	}

	before := e.cursors.Clone()
	c := e.cursors.Primary()
	r := e.charBefore(c.Position())
	if r.IsEmpty() {
		return nil
	}
	edit := buffer.Edit{RangeBefore: r}
	inv, err := e.doc.Apply(edit)
	if err != nil {
		return err
	}
	e.cursors.Set(cursor.NewCursor(inv.RangeBefore.End))

	if e.tryCoalesce(pendingDelete, edit, inv) {
		return nil
	}
	e.flushPending()
	e.startPending(pendingDelete, edit, inv, before)
	return nil
}

// Delete removes the character after each cursor (or each cursor's
// selection, if non-empty) — the "Delete" / "Del" key, as opposed to Backspace.
func (e *Engine) Delete() error {
	return e.applyPerCursor("delete", func(c cursor.Cursor) buffer.Edit {
		if c.HasSelection() {
			return buffer.Edit{RangeBefore: c.Sel.Range()}
		}
		return buffer.Edit{RangeBefore: e.charAfter(c.Position())}
	})
}

// Newline inserts a line break at every cursor. This always commits
// any pending coalesced run first: it is a non-coalescible event.
func (e *Engine) Newline() error {
	return e.applyPerCursor("newline", func(c cursor.Cursor) buffer.Edit {
		return buffer.Edit{RangeBefore: c.Sel.Range(), TextInserted: "\n"}
	})
}

// ReplaceRange replaces an arbitrary range (independent of the cursor
// set) with text, as a single undo step.
func (e *Engine) ReplaceRange(r buffer.Range, text string) error {
	e.flushPending()
	before := e.cursors.Clone()
	edit := buffer.Edit{RangeBefore: r, TextInserted: text}
	inv, err := e.doc.Apply(edit)
	if err != nil {
		return err
	}
	e.cursors.Set(cursor.NewCursor(inv.RangeBefore.End))
	e.pushRecord([]buffer.Edit{edit}, []buffer.Edit{inv}, before, e.cursors.Clone(), "replace")
	return nil
}

// ReplaceSelect replaces every cursor's current selection with text
// (used by typing-over-a-selection and by paste when pasting over a
// selection).
func (e *Engine) ReplaceSelect(text string) error {
	return e.applyPerCursor("replace", func(c cursor.Cursor) buffer.Edit {
		return buffer.Edit{RangeBefore: c.Sel.Range(), TextInserted: text}
	})
}

// Paste inserts clip at every cursor, honoring the multi-cursor
// per-line distribution rule (§4.2 "Clipboard semantics").
func (e *Engine) Paste(clip Clipboard) error {
	n := e.cursors.Count()
	perCursor := clip.perCursorPaste(n)
	// perCursor[k] is meant for the k-th cursor in ascending (document)
	// order; applyPerCursor visits descending, so reverse the mapping.
	i := 0
	return e.applyPerCursor("paste", func(c cursor.Cursor) buffer.Edit {
		text := perCursor[n-1-i]
		i++
		return buffer.Edit{RangeBefore: c.Sel.Range(), TextInserted: text}
	})
}

// Cut removes the clipboard-eligible text at every cursor (whole line
// when the cursor has no selection, the selection otherwise) and
// returns it as a Clipboard.
func (e *Engine) Cut() (Clipboard, error) {
	clip := e.clipboardContent()
	err := e.applyPerCursor("cut", func(c cursor.Cursor) buffer.Edit {
		return buffer.Edit{RangeBefore: e.clipRange(c)}
	})
	if err != nil {
		return Clipboard{}, err
	}
	e.clip = clip
	return clip, nil
}

// Copy returns the clipboard-eligible text at every cursor without
// modifying the document.
func (e *Engine) Copy() Clipboard {
	clip := e.clipboardContent()
	e.clip = clip
	return clip
}

func (e *Engine) clipboardContent() Clipboard {
	all := e.cursors.All()
	// Clipboard content is built ascending (document order) even
	// though cursors are stored descending.
	parts := make([]string, len(all))
	for i, c := range all {
		parts[len(all)-1-i] = e.clipText(c)
	}
	var joined string
	if e.cursors.HasSelection() {
		for i, p := range parts {
			if i > 0 {
				joined += "\n"
			}
			joined += p
		}
	} else {
		// Whole-line copies already carry their own trailing newline
		// (clipRange spans to the next line's start), so lines are
		// concatenated directly rather than "\n"-joined.
		for _, p := range parts {
			joined += p
		}
	}
	return Clipboard{Content: joined}
}

func (e *Engine) clipText(c cursor.Cursor) string {
	return e.doc.TextRange(e.clipRange(c))
}

// clipRange returns the range copy/cut acts on for one cursor: the
// selection if non-empty, otherwise the whole line including its
// trailing newline.
func (e *Engine) clipRange(c cursor.Cursor) buffer.Range {
	if c.HasSelection() {
		return c.Sel.Range()
	}
	line := c.Position().Line
	start := buffer.Position{Line: line, Char: 0}
	if int(line)+1 < e.doc.LineCount() {
		return buffer.Range{Start: start, End: buffer.Position{Line: line + 1, Char: 0}}
	}
	l := e.doc.Line(int(line))
	end := buffer.Position{Line: line, Char: 0}
	if l != nil {
		end.Char = uint32(l.CharLen())
	}
	return buffer.Range{Start: start, End: end}
}

// SwapLines exchanges the content of lines a and b (0-indexed).
func (e *Engine) SwapLines(a, b int) error {
	e.flushPending()
	if a == b {
		return nil
	}
	if a > b {
		a, b = b, a
	}
	before := e.cursors.Clone()

	lineA := e.doc.Line(a)
	lineB := e.doc.Line(b)
	if lineA == nil || lineB == nil {
		return buffer.ErrLineOutOfRange
	}
	textA, textB := lineA.Text(), lineB.Text()

	rA := buffer.Range{Start: buffer.Position{Line: uint32(a)}, End: buffer.Position{Line: uint32(a), Char: uint32(lineA.CharLen())}}
	editA := buffer.Edit{RangeBefore: rA, TextInserted: textB}
	invA, err := e.doc.Apply(editA)
	if err != nil {
		return err
	}

	rB := buffer.Range{Start: buffer.Position{Line: uint32(b)}, End: buffer.Position{Line: uint32(b), Char: uint32(lineB.CharLen())}}
	editB := buffer.Edit{RangeBefore: rB, TextInserted: textA}
	invB, err := e.doc.Apply(editB)
	if err != nil {
		return err
	}

	e.pushRecord([]buffer.Edit{editA, editB}, []buffer.Edit{invB, invA}, before, e.cursors.Clone(), "swap lines")
	return nil
}

// Indent prepends the indent string to the line of every cursor (or
// every line a selection spans).
func (e *Engine) Indent() error {
	return e.lineWiseEdit("indent", func(lineText string) string { return e.indentString + lineText })
}

// Unindent removes a leading indent string from the line of every
// cursor (or every line a selection spans), if present.
func (e *Engine) Unindent() error {
	return e.lineWiseEdit("unindent", func(lineText string) string {
		trimmed := lineText
		switch {
		case len(lineText) >= len(e.indentString) && lineText[:len(e.indentString)] == e.indentString:
			trimmed = lineText[len(e.indentString):]
		case len(lineText) > 0 && lineText[0] == '\t':
			trimmed = lineText[1:]
		}
		return trimmed
	})
}

// SetIndentString overrides the string Indent/Unindent use (the
// editor aggregate calls this from per-document config: tabs vs. a
// fixed number of spaces).
func (e *Engine) SetIndentString(s string) {
	if s != "" {
		e.indentString = s
	}
}

func (e *Engine) lineWiseEdit(desc string, transform func(string) string) error {
	e.flushPending()
	before := e.cursors.Clone()

	lineSet := map[uint32]bool{}
	for _, c := range e.cursors.All() {
		r := c.Sel.Range()
		for ln := r.Start.Line; ln <= r.End.Line; ln++ {
			if ln == r.End.Line && r.End.Char == 0 && r.Start.Line != r.End.Line {
				continue
			}
			lineSet[ln] = true
		}
	}
	lines := make([]uint32, 0, len(lineSet))
	for ln := range lineSet {
		lines = append(lines, ln)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] > lines[j] }) // descending

	forward := make([]buffer.Edit, 0, len(lines))
	inverse := make([]buffer.Edit, 0, len(lines))
	for _, ln := range lines {
		l := e.doc.Line(int(ln))
		if l == nil {
			continue
		}
		newText := transform(l.Text())
		if newText == l.Text() {
			continue
		}
		r := buffer.Range{Start: buffer.Position{Line: ln}, End: buffer.Position{Line: ln, Char: uint32(l.CharLen())}}
		edit := buffer.Edit{RangeBefore: r, TextInserted: newText}
		inv, err := e.doc.Apply(edit)
		if err != nil {
			return err
		}
		forward = append(forward, edit)
		inverse = append(inverse, inv)
	}

	if len(forward) == 0 {
		return nil
	}
	e.pushRecord(forward, inverse, before, e.cursors.Clone(), desc)
	return nil
}

func (e *Engine) charBefore(p buffer.Position) buffer.Range {
	if p.Char > 0 {
		return buffer.Range{Start: buffer.Position{Line: p.Line, Char: p.Char - 1}, End: p}
	}
	if p.Line == 0 {
		return buffer.Range{Start: p, End: p}
	}
	prev := e.doc.Line(int(p.Line) - 1)
	start := buffer.Position{Line: p.Line - 1, Char: uint32(prev.CharLen())}
	return buffer.Range{Start: start, End: p}
}

func (e *Engine) charAfter(p buffer.Position) buffer.Range {
	line := e.doc.Line(int(p.Line))
	if line != nil && int(p.Char) < line.CharLen() {
		return buffer.Range{Start: p, End: buffer.Position{Line: p.Line, Char: p.Char + 1}}
	}
	if int(p.Line)+1 >= e.doc.LineCount() {
		return buffer.Range{Start: p, End: p}
	}
	return buffer.Range{Start: p, End: buffer.Position{Line: p.Line + 1, Char: 0}}
}

// Undo reverts the most recent history record, restoring its saved
// cursor state. It also discards any pending coalesced edit without
// committing it — an in-progress typing run is abandoned, not undone
// twice.
func (e *Engine) Undo() error {
	e.pending = nil
	cursors, err := e.hist.Undo(e.doc)
	if err != nil {
		return err
	}
	if cursors != nil {
		e.cursors = cursors
	}
	e.notifySync()
	return nil
}

// Redo re-applies the most recently undone history record.
func (e *Engine) Redo() error {
	e.pending = nil
	cursors, err := e.hist.Redo(e.doc)
	if err != nil {
		return err
	}
	if cursors != nil {
		e.cursors = cursors
	}
	e.notifySync()
	return nil
}

// History exposes the undo/redo stack for introspection (UI "undo
// available" indicators, etc.).
func (e *Engine) History() *history.History { return e.hist }

// Text returns the document's full content.
func (e *Engine) Text() string { return e.doc.Text() }

// TextRange returns the text covered by r.
func (e *Engine) TextRange(r buffer.Range) string { return e.doc.TextRange(r) }

// LineText returns one line's content, or "" if line is out of range.
func (e *Engine) LineText(line int) string {
	l := e.doc.Line(line)
	if l == nil {
		return ""
	}
	return l.Text()
}

// LineLen returns the character count of one line, or 0 if out of range.
func (e *Engine) LineLen(line int) int {
	l := e.doc.Line(line)
	if l == nil {
		return 0
	}
	return l.CharLen()
}

// LineCount returns the number of lines in the document.
func (e *Engine) LineCount() int { return e.doc.LineCount() }

// EndOfDocument returns the position just past the last character.
func (e *Engine) EndOfDocument() buffer.Position { return e.doc.EndOfDocument() }
