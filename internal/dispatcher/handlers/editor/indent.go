// Package editor provides handlers for text editing operations.
package editor

import (
	"sort"
	"strings"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// Action names for indent operations.
const (
	ActionIndent       = "editor.indent"       // >> - indent line
	ActionOutdent      = "editor.outdent"      // << - outdent line
	ActionAutoIndent   = "editor.autoIndent"   // = - auto-indent selection
	ActionIndentBlock  = "editor.indentBlock"  // >} - indent block
	ActionOutdentBlock = "editor.outdentBlock" // <{ - outdent block
)

// Default indentation settings.
const (
	DefaultTabWidth   = 4
	DefaultUseTabs    = false
	DefaultIndentSize = 4
)

// IndentHandler handles indentation operations.
type IndentHandler struct {
	tabWidth   int
	useTabs    bool
	indentSize int
}

// NewIndentHandler creates a new indent handler with default settings.
func NewIndentHandler() *IndentHandler {
	return &IndentHandler{
		tabWidth:   DefaultTabWidth,
		useTabs:    DefaultUseTabs,
		indentSize: DefaultIndentSize,
	}
}

// NewIndentHandlerWithConfig creates an indent handler with custom settings.
func NewIndentHandlerWithConfig(tabWidth, indentSize int, useTabs bool) *IndentHandler {
	return &IndentHandler{
		tabWidth:   tabWidth,
		useTabs:    useTabs,
		indentSize: indentSize,
	}
}

// Namespace returns the editor namespace.
func (h *IndentHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *IndentHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionIndent, ActionOutdent, ActionAutoIndent,
		ActionIndentBlock, ActionOutdentBlock:
		return true
	}
	return false
}

// HandleAction processes an indent action.
func (h *IndentHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()

	switch action.Name {
	case ActionIndent:
		return h.indent(ctx, count)
	case ActionOutdent:
		return h.outdent(ctx, count)
	case ActionAutoIndent:
		return h.autoIndent(ctx)
	case ActionIndentBlock:
		return h.indentBlock(ctx, count)
	case ActionOutdentBlock:
		return h.outdentBlock(ctx, count)
	default:
		return handler.Errorf("unknown indent action: %s", action.Name)
	}
}

// affectedLineSet returns the set of lines touched by every cursor's
// selection (or its own line, when collapsed).
func affectedLineSet(cursors *cursor.CursorSet) []uint32 {
	lineSet := make(map[uint32]bool)
	for _, c := range cursors.All() {
		r := c.Sel.Range()
		for line := r.Start.Line; line <= r.End.Line; line++ {
			lineSet[line] = true
		}
	}
	lines := make([]uint32, 0, len(lineSet))
	for line := range lineSet {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	return lines
}

// indent adds one level of indentation to every touched line, count times.
func (h *IndentHandler) indent(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	if eng.LineCount() == 0 {
		return handler.NoOp()
	}
	lines := affectedLineSet(ctx.Cursors)

	eng.SetIndentString(h.getIndentString())
	for i := 0; i < count; i++ {
		if err := eng.Indent(); err != nil {
			return handler.Error(err)
		}
	}
	return handler.Success().WithRedrawLines(lines...)
}

// outdent removes one level of indentation from every touched line,
// count times.
func (h *IndentHandler) outdent(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	if eng.LineCount() == 0 {
		return handler.NoOp()
	}
	lines := affectedLineSet(ctx.Cursors)

	eng.SetIndentString(h.getIndentString())
	for i := 0; i < count; i++ {
		if err := eng.Unindent(); err != nil {
			return handler.Error(err)
		}
	}
	return handler.Success().WithRedrawLines(lines...)
}

// autoIndent reindents every touched line to match the indentation
// context implied by the previous line and the line's own brackets.
func (h *IndentHandler) autoIndent(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	if eng.LineCount() == 0 {
		return handler.NoOp()
	}
	lines := affectedLineSet(ctx.Cursors)

	var affected []uint32
	err := ctx.Engine.PerformTransaction("autoIndent", func(tx *engine.Tx) error {
		for _, line := range lines {
			var targetIndent string
			if line > 0 {
				prevText := eng.LineText(int(line - 1))
				targetIndent = getLeadingWhitespace(prevText)

				trimmed := strings.TrimRight(prevText, " \t")
				if len(trimmed) > 0 {
					switch trimmed[len(trimmed)-1] {
					case '{', '[', '(':
						targetIndent += h.getIndentString()
					}
				}
			}

			lineText := eng.LineText(int(line))
			leading := getLeadingWhitespace(lineText)
			content := lineText[len(leading):]

			if len(content) > 0 {
				switch content[0] {
				case '}', ']', ')':
					targetIndent = removeOneIndent(targetIndent, h.indentSize, h.tabWidth)
				}
			}

			if leading == targetIndent {
				continue
			}

			r := buffer.Range{
				Start: buffer.Position{Line: line, Char: 0},
				End:   buffer.Position{Line: line, Char: uint32(len([]rune(leading)))},
			}
			if _, err := tx.Apply(buffer.Edit{RangeBefore: r, TextInserted: targetIndent}); err != nil {
				return err
			}
			affected = append(affected, line)
		}
		return nil
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedrawLines(uniqueLines(affected)...)
}

// indentBlock indents a block of lines (paragraph or selection).
func (h *IndentHandler) indentBlock(ctx *execctx.ExecutionContext, count int) handler.Result {
	return h.indent(ctx, count)
}

// outdentBlock outdents a block of lines.
func (h *IndentHandler) outdentBlock(ctx *execctx.ExecutionContext, count int) handler.Result {
	return h.outdent(ctx, count)
}

// getIndentString returns the string to use for one level of indentation.
func (h *IndentHandler) getIndentString() string {
	if h.useTabs {
		return "\t"
	}
	return strings.Repeat(" ", h.indentSize)
}

// getLeadingWhitespace returns the leading whitespace of a string.
func getLeadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}
	return s
}

// removeOneIndent removes one level of indentation from a whitespace string.
func removeOneIndent(ws string, indentSize, tabWidth int) string {
	if len(ws) == 0 {
		return ws
	}

	if ws[0] == '\t' {
		return ws[1:]
	}

	spaces := 0
	cutoff := 0
	for i, r := range ws {
		if r == ' ' {
			spaces++
			if spaces >= indentSize {
				cutoff = i + 1
				break
			}
		} else if r == '\t' {
			cutoff = i + 1
			break
		}
	}

	if cutoff > 0 && cutoff <= len(ws) {
		return ws[cutoff:]
	}
	return ""
}
