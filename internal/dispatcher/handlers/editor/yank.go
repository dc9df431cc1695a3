// Package editor provides handlers for text editing operations.
package editor

import (
	"sort"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// Action names for yank/paste operations.
const (
	ActionYankSelection = "editor.yankSelection" // y - yank selection
	ActionYankLine      = "editor.yankLine"      // yy - yank entire line
	ActionYankToEnd     = "editor.yankToEnd"     // Y - yank to end of line
	ActionYankWord      = "editor.yankWord"      // yw - yank word
	ActionPasteAfter    = "editor.pasteAfter"    // p - paste after cursor
	ActionPasteBefore   = "editor.pasteBefore"   // P - paste before cursor
)

// YankHandler handles yank (copy) and paste operations.
type YankHandler struct{}

// NewYankHandler creates a new yank handler.
func NewYankHandler() *YankHandler {
	return &YankHandler{}
}

// Namespace returns the editor namespace.
func (h *YankHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *YankHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionYankSelection, ActionYankLine, ActionYankToEnd,
		ActionYankWord, ActionPasteAfter, ActionPasteBefore:
		return true
	}
	return false
}

// HandleAction processes a yank/paste action.
func (h *YankHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(execctx.ErrMissingEngine)
	}
	if ctx.Cursors == nil {
		return handler.Error(execctx.ErrMissingCursors)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionYankSelection:
		return h.yankSelection(ctx)
	case ActionYankLine:
		return h.yankLine(ctx, count)
	case ActionYankToEnd:
		return h.yankToEnd(ctx)
	case ActionYankWord:
		return h.yankWord(ctx, count)
	case ActionPasteAfter:
		return h.pasteAfter(ctx, action.Args.Text, count)
	case ActionPasteBefore:
		return h.pasteBefore(ctx, action.Args.Text, count)
	default:
		return handler.Errorf("unknown yank action: %s", action.Name)
	}
}

// sortedRanges returns the ranges touched by every cursor's selection (or
// its collapsed position when empty), in ascending document order.
func sortedCursors(cursors *cursor.CursorSet) []cursor.Cursor {
	all := cursors.All() // descending
	sort.Slice(all, func(i, j int) bool {
		return positionLess(all[i].Position(), all[j].Position())
	})
	return all
}

func positionLess(a, b buffer.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Char < b.Char
}

func joinParts(parts []string) string {
	result := ""
	for _, p := range parts {
		result += p
	}
	return result
}

// yankSelection yanks the selected text at every cursor, in document
// order, without modifying the document.
func (h *YankHandler) yankSelection(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine

	var parts []string
	for _, c := range sortedCursors(ctx.Cursors) {
		if !c.HasSelection() {
			continue
		}
		parts = append(parts, eng.TextRange(c.Sel.Range()))
	}
	if len(parts) == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithRegisterContent(joinParts(parts))
}

// yankLine yanks count lines including each cursor's line.
func (h *YankHandler) yankLine(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()
	if lineCount == 0 {
		return handler.NoOp()
	}

	var parts []string
	for _, c := range sortedCursors(ctx.Cursors) {
		start := c.Position().Line
		end := start + uint32(count)
		if end > uint32(lineCount) {
			end = uint32(lineCount)
		}
		startPos := buffer.Position{Line: start, Char: 0}
		var endPos buffer.Position
		if end >= uint32(lineCount) {
			endPos = eng.EndOfDocument()
		} else {
			endPos = buffer.Position{Line: end, Char: 0}
		}
		parts = append(parts, eng.TextRange(buffer.Range{Start: startPos, End: endPos}))
	}
	if len(parts) == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithRegisterContent(joinParts(parts)).WithLinewise(true)
}

// yankToEnd yanks from each cursor to the end of its line.
func (h *YankHandler) yankToEnd(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine

	var parts []string
	for _, c := range sortedCursors(ctx.Cursors) {
		p := c.Position()
		end := buffer.Position{Line: p.Line, Char: uint32(eng.LineLen(int(p.Line)))}
		if p == end {
			continue
		}
		parts = append(parts, eng.TextRange(buffer.Range{Start: p, End: end}))
	}
	if len(parts) == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithRegisterContent(joinParts(parts))
}

// yankWord yanks count words forward from each cursor.
func (h *YankHandler) yankWord(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine

	var parts []string
	for _, c := range sortedCursors(ctx.Cursors) {
		start := c.Position()
		end := wordForward(eng, start, count)
		if start == end {
			continue
		}
		parts = append(parts, eng.TextRange(buffer.Range{Start: start, End: end}))
	}
	if len(parts) == 0 {
		return handler.NoOp()
	}
	return handler.Success().WithRegisterContent(joinParts(parts))
}

// pasteAfter pastes text after each cursor position (or below its line,
// for linewise content).
func (h *YankHandler) pasteAfter(ctx *execctx.ExecutionContext, text string, count int) handler.Result {
	if text == "" {
		return handler.NoOp()
	}
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	repeated := ""
	for i := 0; i < count; i++ {
		repeated += text
	}
	linewise := len(text) > 0 && text[len(text)-1] == '\n'
	eng := ctx.Engine

	var affectedLines []uint32
	err := ctx.Engine.PerformTransaction("pasteAfter", func(tx *engine.Tx) error {
		all := tx.Cursors().All() // descending by position
		next := make([]cursor.Cursor, 0, len(all))
		for _, c := range all {
			p := c.Position()
			pasteText := repeated
			var insertAt, landAt buffer.Position
			if linewise {
				line := p.Line + 1
				if int(line) >= eng.LineCount() {
					insertAt = tx.Document().EndOfDocument()
					landAt = buffer.Position{Line: insertAt.Line, Char: 0}
					if insertAt.Char != 0 {
						pasteText = "\n" + pasteText
						landAt.Line++
					}
				} else {
					insertAt = buffer.Position{Line: line, Char: 0}
					landAt = insertAt
				}
			} else {
				insertAt = charAfterPos(eng, p)
				landAt = insertAt
			}

			before := insertAt
			if _, err := tx.Apply(buffer.Edit{
				RangeBefore:  buffer.Range{Start: insertAt, End: insertAt},
				TextInserted: pasteText,
			}); err != nil {
				return err
			}

			landing := landAt
			if !linewise {
				lines := countNewlines(pasteText)
				if lines == 0 {
					landing = buffer.Position{Line: before.Line, Char: before.Char + uint32(len(pasteText))}
				} else {
					landing = lastLineEnd(before, pasteText)
				}
			}
			next = append(next, cursor.NewCursor(landing))
			affectedLines = append(affectedLines, before.Line)
		}
		tx.Cursors().SetAll(next)
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedrawLines(uniqueLines(affectedLines)...)
}

// pasteBefore pastes text before each cursor position (or at the start
// of its line, for linewise content).
func (h *YankHandler) pasteBefore(ctx *execctx.ExecutionContext, text string, count int) handler.Result {
	if text == "" {
		return handler.NoOp()
	}
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	repeated := ""
	for i := 0; i < count; i++ {
		repeated += text
	}
	linewise := len(text) > 0 && text[len(text)-1] == '\n'

	var affectedLines []uint32
	err := ctx.Engine.PerformTransaction("pasteBefore", func(tx *engine.Tx) error {
		all := tx.Cursors().All() // descending by position
		next := make([]cursor.Cursor, 0, len(all))
		for _, c := range all {
			p := c.Position()
			insertAt := p
			if linewise {
				insertAt = buffer.Position{Line: p.Line, Char: 0}
			}

			if _, err := tx.Apply(buffer.Edit{
				RangeBefore:  buffer.Range{Start: insertAt, End: insertAt},
				TextInserted: repeated,
			}); err != nil {
				return err
			}

			landing := insertAt
			if !linewise {
				lines := countNewlines(repeated)
				if lines == 0 {
					landing = buffer.Position{Line: insertAt.Line, Char: insertAt.Char + uint32(len(repeated))}
				} else {
					landing = lastLineEnd(insertAt, repeated)
				}
			}
			next = append(next, cursor.NewCursor(landing))
			affectedLines = append(affectedLines, insertAt.Line)
		}
		tx.Cursors().SetAll(next)
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedrawLines(uniqueLines(affectedLines)...)
}

// countNewlines counts line breaks in s.
func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// lastLineEnd returns the position at the end of the last line of
// inserted, given it was inserted starting at start.
func lastLineEnd(start buffer.Position, inserted string) buffer.Position {
	lines := countNewlines(inserted)
	lastNL := -1
	for i, r := range inserted {
		if r == '\n' {
			lastNL = i
		}
	}
	tail := inserted[lastNL+1:]
	return buffer.Position{Line: start.Line + uint32(lines), Char: uint32(len([]rune(tail)))}
}
