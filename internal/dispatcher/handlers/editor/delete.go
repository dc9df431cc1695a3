// Package editor provides handlers for text editing operations.
package editor

import (
	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// Action names for delete operations.
const (
	ActionDeleteChar      = "editor.deleteChar"      // delete char under cursor
	ActionDeleteCharBack  = "editor.deleteCharBack"  // delete char before cursor
	ActionDeleteLine      = "editor.deleteLine"       // delete entire line
	ActionDeleteToEnd     = "editor.deleteToEnd"      // delete to end of line
	ActionDeleteSelection = "editor.deleteSelection"  // delete selected text
	ActionDeleteWord      = "editor.deleteWord"       // delete word forward
	ActionDeleteWordBack  = "editor.deleteWordBack"   // delete word backward
)

// DeleteHandler handles text deletion operations.
type DeleteHandler struct{}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler() *DeleteHandler {
	return &DeleteHandler{}
}

// Namespace returns the editor namespace.
func (h *DeleteHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *DeleteHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionDeleteChar, ActionDeleteCharBack, ActionDeleteLine,
		ActionDeleteToEnd, ActionDeleteSelection, ActionDeleteWord,
		ActionDeleteWordBack:
		return true
	}
	return false
}

// HandleAction processes a delete action.
func (h *DeleteHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionDeleteChar:
		return h.deleteChar(ctx, count)
	case ActionDeleteCharBack:
		return h.deleteCharBack(ctx, count)
	case ActionDeleteLine:
		return h.deleteLine(ctx, count)
	case ActionDeleteToEnd:
		return h.deleteToEnd(ctx)
	case ActionDeleteSelection:
		return h.deleteSelection(ctx)
	case ActionDeleteWord:
		return h.deleteWord(ctx, count)
	case ActionDeleteWordBack:
		return h.deleteWordBack(ctx, count)
	default:
		return handler.Errorf("unknown delete action: %s", action.Name)
	}
}

// runDeleteTx runs a range-per-cursor delete: rangeFor computes the
// range to remove for a cursor (returning ok=false to skip it), and
// collapseTo computes where the cursor lands afterward.
func runDeleteTx(ctx *execctx.ExecutionContext, desc string, rangeFor func(c cursor.Cursor) (buffer.Range, bool), collapseTo func(r buffer.Range) buffer.Position) (string, error) {
	var deletedParts []string

	err := ctx.Engine.PerformTransaction(desc, func(tx *engine.Tx) error {
		all := tx.Cursors().All() // descending by position
		next := make([]cursor.Cursor, 0, len(all))
		parts := make([]string, 0, len(all))

		for _, c := range all {
			r, ok := rangeFor(c)
			if !ok || r.IsEmpty() {
				next = append(next, c)
				continue
			}
			parts = append(parts, tx.Document().TextRange(r))
			if _, err := tx.Apply(buffer.Edit{RangeBefore: r}); err != nil {
				return err
			}
			next = append(next, cursor.NewCursor(collapseTo(r)))
		}

		// parts were accumulated descending; reverse to document order.
		deletedParts = make([]string, len(parts))
		for i, p := range parts {
			deletedParts[len(parts)-1-i] = p
		}

		tx.Cursors().SetAll(next)
		return nil
	})
	if err != nil {
		return "", err
	}

	joined := ""
	for _, p := range deletedParts {
		joined += p
	}
	return joined, nil
}

// deleteChar deletes count characters at cursor position.
func (h *DeleteHandler) deleteChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	text, err := runDeleteTx(ctx, "deleteChar",
		func(c cursor.Cursor) (buffer.Range, bool) {
			if c.HasSelection() {
				return c.Sel.Range(), true
			}
			end := c.Position()
			for i := 0; i < count; i++ {
				end = charAfterPos(eng, end)
			}
			return buffer.Range{Start: c.Position(), End: end}, true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	if text == "" {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// deleteCharBack deletes count characters before the cursor.
func (h *DeleteHandler) deleteCharBack(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	text, err := runDeleteTx(ctx, "deleteCharBack",
		func(c cursor.Cursor) (buffer.Range, bool) {
			if c.HasSelection() {
				return c.Sel.Range(), true
			}
			start := c.Position()
			for i := 0; i < count; i++ {
				start = charBeforePos(eng, start)
			}
			return buffer.Range{Start: start, End: c.Position()}, true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	if text == "" {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// deleteLine deletes count lines including the cursor's line.
func (h *DeleteHandler) deleteLine(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	if eng.LineCount() == 0 {
		return handler.NoOp()
	}

	text, err := runDeleteTx(ctx, "deleteLine",
		func(c cursor.Cursor) (buffer.Range, bool) {
			start := c.Position().Line
			end := start + uint32(count)
			lineCount := uint32(eng.LineCount())
			if end > lineCount {
				end = lineCount
			}
			startPos := buffer.Position{Line: start, Char: 0}
			var endPos buffer.Position
			if end >= lineCount {
				endPos = eng.EndOfDocument()
			} else {
				endPos = buffer.Position{Line: end, Char: 0}
			}
			return buffer.Range{Start: startPos, End: endPos}, true
		},
		func(r buffer.Range) buffer.Position { return buffer.Position{Line: r.Start.Line, Char: 0} },
	)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw().WithRegisterContent(text).WithLinewise(true)
}

// deleteToEnd deletes from the cursor to the end of its line.
func (h *DeleteHandler) deleteToEnd(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	text, err := runDeleteTx(ctx, "deleteToEnd",
		func(c cursor.Cursor) (buffer.Range, bool) {
			p := c.Position()
			end := buffer.Position{Line: p.Line, Char: uint32(eng.LineLen(int(p.Line)))}
			return buffer.Range{Start: p, End: end}, true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	if text == "" {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// deleteSelection deletes the selected text at every cursor.
func (h *DeleteHandler) deleteSelection(ctx *execctx.ExecutionContext) handler.Result {
	text, err := runDeleteTx(ctx, "deleteSelection",
		func(c cursor.Cursor) (buffer.Range, bool) {
			if !c.HasSelection() {
				return buffer.Range{}, false
			}
			return c.Sel.Range(), true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// deleteWord deletes count words forward.
func (h *DeleteHandler) deleteWord(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	text, err := runDeleteTx(ctx, "deleteWord",
		func(c cursor.Cursor) (buffer.Range, bool) {
			end := wordForward(eng, c.Position(), count)
			if end == c.Position() {
				return buffer.Range{}, false
			}
			return buffer.Range{Start: c.Position(), End: end}, true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	if text == "" {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// deleteWordBack deletes count words backward.
func (h *DeleteHandler) deleteWordBack(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	text, err := runDeleteTx(ctx, "deleteWordBack",
		func(c cursor.Cursor) (buffer.Range, bool) {
			start := wordBackward(eng, c.Position(), count)
			if start == c.Position() {
				return buffer.Range{}, false
			}
			return buffer.Range{Start: start, End: c.Position()}, true
		},
		func(r buffer.Range) buffer.Position { return r.Start },
	)
	if err != nil {
		return handler.Error(err)
	}
	if text == "" {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw().WithRegisterContent(text)
}

// charAfterPos returns the position one character after p, crossing a
// line boundary at end-of-line.
func charAfterPos(eng *engine.Engine, p buffer.Position) buffer.Position {
	if int(p.Char) < eng.LineLen(int(p.Line)) {
		return buffer.Position{Line: p.Line, Char: p.Char + 1}
	}
	if int(p.Line)+1 >= eng.LineCount() {
		return p
	}
	return buffer.Position{Line: p.Line + 1, Char: 0}
}

// charBeforePos returns the position one character before p, crossing
// a line boundary at start-of-line.
func charBeforePos(eng *engine.Engine, p buffer.Position) buffer.Position {
	if p.Char > 0 {
		return buffer.Position{Line: p.Line, Char: p.Char - 1}
	}
	if p.Line == 0 {
		return p
	}
	prevLine := p.Line - 1
	return buffer.Position{Line: prevLine, Char: uint32(eng.LineLen(int(prevLine)))}
}
