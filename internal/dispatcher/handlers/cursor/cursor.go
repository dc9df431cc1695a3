// Package cursor provides handlers for cursor movement operations.
package cursor

import (
	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionMoveFirstLine = "cursor.moveFirstLine"
	ActionMoveLastLine  = "cursor.moveLastLine"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd, ActionMoveFirstLine, ActionMoveLastLine:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(execctx.ErrMissingEngine)
	}
	if ctx.Cursors == nil {
		return handler.Error(execctx.ErrMissingCursors)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionMoveLeft:
		return h.moveLeft(ctx, count)
	case ActionMoveRight:
		return h.moveRight(ctx, count)
	case ActionMoveUp:
		return h.moveUp(ctx, count)
	case ActionMoveDown:
		return h.moveDown(ctx, count)
	case ActionMoveLineStart:
		return h.moveLineStart(ctx)
	case ActionMoveLineEnd:
		return h.moveLineEnd(ctx)
	case ActionMoveFirstLine:
		return h.moveFirstLine(ctx)
	case ActionMoveLastLine:
		return h.moveLastLine(ctx)
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
}

// moveTo moves or extends every cursor's head to target(c), collapsing
// the selection unless a selection is currently active.
func (h *Handler) moveTo(ctx *execctx.ExecutionContext, target func(c cursor.Cursor) buffer.Position) handler.Result {
	ctx.Cursors.MapInPlace(func(c cursor.Cursor) cursor.Cursor {
		p := target(c)
		if ctx.HasSelection() {
			return c.WithSelection(c.Sel.Extend(p))
		}
		return c.WithPosition(p)
	})
	return handler.Success().WithRedraw()
}

// moveLeft moves cursor left by count characters.
func (h *Handler) moveLeft(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			p = charBeforePos(eng, p)
		}
		return p
	})
}

// moveRight moves cursor right by count characters.
func (h *Handler) moveRight(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			p = charAfterPos(eng, p)
		}
		return p
	})
}

// moveUp moves cursor up by count lines, preserving column where possible.
func (h *Handler) moveUp(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		target := uint32(0)
		if int(p.Line) > count {
			target = p.Line - uint32(count)
		}
		col := p.Char
		if maxCol := uint32(eng.LineLen(int(target))); col > maxCol {
			col = maxCol
		}
		return buffer.Position{Line: target, Char: col}
	})
}

// moveDown moves cursor down by count lines, preserving column where possible.
func (h *Handler) moveDown(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()
	if lineCount == 0 {
		return handler.NoOp()
	}
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		target := p.Line + uint32(count)
		if target >= uint32(lineCount) {
			target = uint32(lineCount) - 1
		}
		col := p.Char
		if maxCol := uint32(eng.LineLen(int(target))); col > maxCol {
			col = maxCol
		}
		return buffer.Position{Line: target, Char: col}
	})
}

// moveLineStart moves cursor to the start of the current line.
func (h *Handler) moveLineStart(ctx *execctx.ExecutionContext) handler.Result {
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: c.Position().Line, Char: 0}
	})
}

// moveLineEnd moves cursor to the end of the current line.
func (h *Handler) moveLineEnd(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		line := c.Position().Line
		return buffer.Position{Line: line, Char: uint32(eng.LineLen(int(line)))}
	})
}

// moveFirstLine moves cursor to the first line of the buffer.
func (h *Handler) moveFirstLine(ctx *execctx.ExecutionContext) handler.Result {
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: 0, Char: 0}
	})
}

// moveLastLine moves cursor to the last line of the buffer.
func (h *Handler) moveLastLine(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()
	if lineCount == 0 {
		return handler.NoOp()
	}
	lastLine := uint32(lineCount - 1)
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: lastLine, Char: 0}
	})
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
