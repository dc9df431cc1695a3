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

// Action names for insert operations.
const (
	ActionInsertChar      = "editor.insertChar"
	ActionInsertText      = "editor.insertText"
	ActionInsertNewline   = "editor.insertNewline"
	ActionInsertLineAbove = "editor.insertLineAbove"
	ActionInsertLineBelow = "editor.insertLineBelow"
	ActionInsertTab       = "editor.insertTab"
)

// InsertHandler handles text insertion operations.
type InsertHandler struct{}

// NewInsertHandler creates a new insert handler.
func NewInsertHandler() *InsertHandler {
	return &InsertHandler{}
}

// Namespace returns the editor namespace.
func (h *InsertHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *InsertHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertChar, ActionInsertText, ActionInsertNewline,
		ActionInsertLineAbove, ActionInsertLineBelow, ActionInsertTab:
		return true
	}
	return false
}

// HandleAction processes an insert action.
func (h *InsertHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionInsertChar:
		return h.insertText(ctx, action.Args.Text)
	case ActionInsertText:
		return h.insertText(ctx, action.Args.Text)
	case ActionInsertNewline:
		return h.insertNewline(ctx)
	case ActionInsertLineAbove:
		return h.insertLineAbove(ctx)
	case ActionInsertLineBelow:
		return h.insertLineBelow(ctx)
	case ActionInsertTab:
		return h.insertTab(ctx)
	default:
		return handler.Errorf("unknown insert action: %s", action.Name)
	}
}

// insertText inserts text at all cursor positions, replacing any
// selection at each cursor — the engine already handles this for a
// whole cursor set as a single undo step.
func (h *InsertHandler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}

	var err error
	if text == "\n" {
		err = ctx.Engine.Newline()
	} else {
		err = ctx.Engine.InsertChar(text)
	}
	if err != nil {
		return handler.Error(err)
	}

	return handler.Success().WithRedraw()
}

// insertNewline inserts a newline at all cursor positions.
func (h *InsertHandler) insertNewline(ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Engine.Newline(); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw()
}

// insertLineAbove inserts a blank line above every cursor's line and
// moves each cursor onto it.
func (h *InsertHandler) insertLineAbove(ctx *execctx.ExecutionContext) handler.Result {
	var affectedLines []uint32

	err := ctx.Engine.PerformTransaction("insertLineAbove", func(tx *engine.Tx) error {
		all := tx.Cursors().All() // descending by position
		next := make([]cursor.Cursor, 0, len(all))
		for _, c := range all {
			line := c.Position().Line
			lineStart := buffer.Position{Line: line, Char: 0}
			if _, err := tx.Apply(buffer.Edit{
				RangeBefore:  buffer.Range{Start: lineStart, End: lineStart},
				TextInserted: "\n",
			}); err != nil {
				return err
			}
			next = append(next, cursor.NewCursor(lineStart))
			affectedLines = append(affectedLines, line, line+1)
		}
		tx.Cursors().SetAll(next)
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}

	return handler.Success().WithRedrawLines(uniqueLines(affectedLines)...).WithModeChange("insert")
}

// insertLineBelow inserts a blank line below every cursor's line and
// moves each cursor onto it.
func (h *InsertHandler) insertLineBelow(ctx *execctx.ExecutionContext) handler.Result {
	var affectedLines []uint32

	err := ctx.Engine.PerformTransaction("insertLineBelow", func(tx *engine.Tx) error {
		all := tx.Cursors().All() // descending by position
		next := make([]cursor.Cursor, 0, len(all))
		for _, c := range all {
			line := c.Position().Line
			lineEnd := buffer.Position{Line: line, Char: uint32(tx.Document().Line(int(line)).CharLen())}
			if _, err := tx.Apply(buffer.Edit{
				RangeBefore:  buffer.Range{Start: lineEnd, End: lineEnd},
				TextInserted: "\n",
			}); err != nil {
				return err
			}
			next = append(next, cursor.NewCursor(buffer.Position{Line: line + 1, Char: 0}))
			affectedLines = append(affectedLines, line, line+1)
		}
		tx.Cursors().SetAll(next)
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}

	return handler.Success().WithRedrawLines(uniqueLines(affectedLines)...).WithModeChange("insert")
}

// insertTab inserts a tab character at cursor positions.
func (h *InsertHandler) insertTab(ctx *execctx.ExecutionContext) handler.Result {
	// TODO: check editor config for tab-vs-spaces preference.
	return h.insertText(ctx, "\t")
}

// uniqueLines returns unique line numbers from a slice.
func uniqueLines(lines []uint32) []uint32 {
	if len(lines) == 0 {
		return nil
	}

	seen := make(map[uint32]bool)
	result := make([]uint32, 0, len(lines))

	for _, line := range lines {
		if !seen[line] {
			seen[line] = true
			result = append(result, line)
		}
	}

	return result
}
