package cursor

import (
	"unicode"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// Action names for word/line/paragraph motions.
const (
	// Word motions
	ActionWordForward       = "cursor.wordForward"
	ActionWordBackward      = "cursor.wordBackward"
	ActionWordEndForward    = "cursor.wordEndForward"
	ActionBigWordForward    = "cursor.bigWordForward"
	ActionBigWordBackward   = "cursor.bigWordBackward"
	ActionBigWordEndForward = "cursor.bigWordEndForward"

	// Line motions
	ActionFirstNonBlank   = "cursor.firstNonBlank"
	ActionGotoLine        = "cursor.gotoLine"
	ActionGotoColumn      = "cursor.gotoColumn"
	ActionMatchingBracket = "cursor.matchingBracket"
	ActionGotoPercent     = "cursor.gotoPercent"

	// Paragraph/sentence motions
	ActionParagraphForward  = "cursor.paragraphForward"
	ActionParagraphBackward = "cursor.paragraphBackward"
	ActionSentenceForward   = "cursor.sentenceForward"
	ActionSentenceBackward  = "cursor.sentenceBackward"

	// Screen motions
	ActionScreenTop    = "cursor.screenTop"
	ActionScreenMiddle = "cursor.screenMiddle"
	ActionScreenBottom = "cursor.screenBottom"
)

// MotionHandler handles word, paragraph, and other motion-based cursor movements.
type MotionHandler struct{}

// NewMotionHandler creates a new motion handler.
func NewMotionHandler() *MotionHandler {
	return &MotionHandler{}
}

// Namespace returns the cursor namespace.
func (h *MotionHandler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *MotionHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionWordForward, ActionWordBackward, ActionWordEndForward,
		ActionBigWordForward, ActionBigWordBackward, ActionBigWordEndForward,
		ActionFirstNonBlank, ActionGotoLine, ActionGotoColumn, ActionMatchingBracket, ActionGotoPercent,
		ActionParagraphForward, ActionParagraphBackward,
		ActionSentenceForward, ActionSentenceBackward,
		ActionScreenTop, ActionScreenMiddle, ActionScreenBottom:
		return true
	}
	return false
}

// HandleAction processes a motion action.
func (h *MotionHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(execctx.ErrMissingEngine)
	}
	if ctx.Cursors == nil {
		return handler.Error(execctx.ErrMissingCursors)
	}

	count := ctx.GetCount()

	switch action.Name {
	// Word motions
	case ActionWordForward:
		return h.wordForward(ctx, count, false)
	case ActionWordBackward:
		return h.wordBackward(ctx, count, false)
	case ActionWordEndForward:
		return h.wordEndForward(ctx, count, false)
	case ActionBigWordForward:
		return h.wordForward(ctx, count, true)
	case ActionBigWordBackward:
		return h.wordBackward(ctx, count, true)
	case ActionBigWordEndForward:
		return h.wordEndForward(ctx, count, true)

	// Line motions
	case ActionFirstNonBlank:
		return h.firstNonBlank(ctx)
	case ActionGotoLine:
		return h.gotoLine(ctx, count)
	case ActionGotoColumn:
		return h.gotoColumn(ctx, count)
	case ActionMatchingBracket:
		return h.matchingBracket(ctx)
	case ActionGotoPercent:
		return h.gotoPercent(ctx, count)

	// Paragraph/sentence motions
	case ActionParagraphForward:
		return h.paragraphForward(ctx, count)
	case ActionParagraphBackward:
		return h.paragraphBackward(ctx, count)
	case ActionSentenceForward:
		return h.sentenceForward(ctx, count)
	case ActionSentenceBackward:
		return h.sentenceBackward(ctx, count)

	// Screen motions
	case ActionScreenTop:
		return h.screenTop(ctx)
	case ActionScreenMiddle:
		return h.screenMiddle(ctx)
	case ActionScreenBottom:
		return h.screenBottom(ctx)

	default:
		return handler.Errorf("unknown motion action: %s", action.Name)
	}
}

// moveTo is shared with cursor.go's helper of the same name through the
// Handler receiver; MotionHandler has its own copy so each handler type
// stays self-contained.
func (h *MotionHandler) moveTo(ctx *execctx.ExecutionContext, target func(c cursor.Cursor) buffer.Position) handler.Result {
	ctx.Cursors.MapInPlace(func(c cursor.Cursor) cursor.Cursor {
		p := target(c)
		if ctx.HasSelection() {
			return c.WithSelection(c.Sel.Extend(p))
		}
		return c.WithPosition(p)
	})
	return handler.Success().WithRedraw()
}

// wordForward moves to the beginning of the next word/WORD.
func (h *MotionHandler) wordForward(ctx *execctx.ExecutionContext, count int, bigWord bool) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			next := nextWordStartG(eng, p, bigWord)
			if next == p {
				break
			}
			p = next
		}
		return p
	})
}

// wordBackward moves to the beginning of the previous word/WORD.
func (h *MotionHandler) wordBackward(ctx *execctx.ExecutionContext, count int, bigWord bool) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			prev := prevWordStartG(eng, p, bigWord)
			if prev == p {
				break
			}
			p = prev
		}
		return p
	})
}

// wordEndForward moves to the end of the current or next word/WORD.
func (h *MotionHandler) wordEndForward(ctx *execctx.ExecutionContext, count int, bigWord bool) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			next := wordEndG(eng, p, bigWord)
			if next == p {
				break
			}
			p = next
		}
		return p
	})
}

// firstNonBlank moves to the first non-blank character on the line.
func (h *MotionHandler) firstNonBlank(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		line := c.Position().Line
		text := []rune(eng.LineText(int(line)))
		char := uint32(0)
		for int(char) < len(text) && unicode.IsSpace(text[char]) {
			char++
		}
		return buffer.Position{Line: line, Char: char}
	})
}

// gotoLine moves to a specific line (1-indexed from user perspective).
func (h *MotionHandler) gotoLine(ctx *execctx.ExecutionContext, lineNum int) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()

	targetLine := lineNum - 1
	if targetLine < 0 {
		targetLine = 0
	}
	if targetLine >= lineCount {
		targetLine = lineCount - 1
	}
	target := uint32(targetLine)

	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: target, Char: 0}
	})
}

// gotoColumn moves to a specific column on the current line.
func (h *MotionHandler) gotoColumn(ctx *execctx.ExecutionContext, col int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		line := c.Position().Line
		targetCol := col - 1
		if targetCol < 0 {
			targetCol = 0
		}
		if maxCol := eng.LineLen(int(line)); targetCol > maxCol {
			targetCol = maxCol
		}
		return buffer.Position{Line: line, Char: uint32(targetCol)}
	})
}

// matchingBracket finds the matching bracket under or after the cursor.
func (h *MotionHandler) matchingBracket(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		bracketPos, bracket, found := findBracketOnLine(eng, p)
		if !found {
			return p
		}
		matchPos, ok := findMatchingBracketPos(eng, bracketPos, bracket)
		if !ok {
			return p
		}
		return matchPos
	})
}

// gotoPercent moves to a percentage position in the file.
func (h *MotionHandler) gotoPercent(ctx *execctx.ExecutionContext, percent int) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()
	if lineCount == 0 {
		return handler.NoOp()
	}

	if percent < 1 {
		percent = 1
	}
	if percent > 100 {
		percent = 100
	}

	targetLine := (lineCount * percent) / 100
	if targetLine >= lineCount {
		targetLine = lineCount - 1
	}
	target := uint32(targetLine)

	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: target, Char: 0}
	})
}

// paragraphForward moves forward to the next paragraph boundary.
func (h *MotionHandler) paragraphForward(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	lineCount := eng.LineCount()
	if lineCount == 0 {
		return handler.NoOp()
	}
	lastLine := uint32(lineCount - 1)

	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		line := c.Position().Line
		for i := 0; i < count && line < lastLine; i++ {
			for line < lastLine && !isEmptyLine(eng, line) {
				line++
			}
			for line < lastLine && isEmptyLine(eng, line) {
				line++
			}
		}
		return buffer.Position{Line: line, Char: 0}
	})
}

// paragraphBackward moves backward to the previous paragraph boundary.
func (h *MotionHandler) paragraphBackward(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		line := c.Position().Line
		for i := 0; i < count && line > 0; i++ {
			for line > 0 && isEmptyLine(eng, line) {
				line--
			}
			for line > 0 && !isEmptyLine(eng, line) {
				line--
			}
		}
		return buffer.Position{Line: line, Char: 0}
	})
}

// sentenceForward moves forward to the start of the next sentence.
func (h *MotionHandler) sentenceForward(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			next := nextSentenceStart(eng, p)
			if next == p {
				break
			}
			p = next
		}
		return p
	})
}

// sentenceBackward moves backward to the start of the previous sentence.
func (h *MotionHandler) sentenceBackward(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		p := c.Position()
		for i := 0; i < count; i++ {
			prev := prevSentenceStart(eng, p)
			if prev == p {
				break
			}
			p = prev
		}
		return p
	})
}

// screenTop moves cursor to the top of the visible screen.
func (h *MotionHandler) screenTop(ctx *execctx.ExecutionContext) handler.Result {
	var targetLine uint32
	if ctx.Renderer != nil {
		start, _ := ctx.Renderer.VisibleLineRange()
		targetLine = start
	}
	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: targetLine, Char: 0}
	})
}

// screenMiddle moves cursor to the middle of the visible screen.
func (h *MotionHandler) screenMiddle(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	lineCount := uint32(eng.LineCount())
	if lineCount == 0 {
		return handler.NoOp()
	}

	var targetLine uint32
	if ctx.Renderer != nil {
		start, end := ctx.Renderer.VisibleLineRange()
		targetLine = start + (end-start)/2
	} else {
		targetLine = lineCount / 2
	}
	if targetLine >= lineCount {
		targetLine = lineCount - 1
	}

	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: targetLine, Char: 0}
	})
}

// screenBottom moves cursor to the bottom of the visible screen.
func (h *MotionHandler) screenBottom(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	lineCount := uint32(eng.LineCount())
	if lineCount == 0 {
		return handler.NoOp()
	}

	var targetLine uint32
	if ctx.Renderer != nil {
		_, end := ctx.Renderer.VisibleLineRange()
		targetLine = end
	} else {
		targetLine = lineCount - 1
	}
	if targetLine >= lineCount {
		targetLine = lineCount - 1
	}

	return h.moveTo(ctx, func(c cursor.Cursor) buffer.Position {
		return buffer.Position{Line: targetLine, Char: 0}
	})
}

// Helper functions

// runeAt returns the rune at p, treating a line boundary before the
// last line as a newline and reporting ok=false at end of document.
func runeAt(eng *engine.Engine, p buffer.Position) (rune, bool) {
	text := []rune(eng.LineText(int(p.Line)))
	if int(p.Char) < len(text) {
		return text[p.Char], true
	}
	if int(p.Line)+1 < eng.LineCount() {
		return '\n', true
	}
	return 0, false
}

// charClass classifies r for word-motion purposes. bigWord collapses
// word characters and punctuation into a single non-space class.
func charClass(r rune, bigWord bool) int {
	if unicode.IsSpace(r) {
		return 0
	}
	if bigWord {
		return 1
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return 1
	}
	return 2
}

func classAt(eng *engine.Engine, p buffer.Position, bigWord bool) int {
	r, ok := runeAt(eng, p)
	if !ok {
		return 0
	}
	return charClass(r, bigWord)
}

// nextWordStartG returns the start of the next word/WORD after p.
func nextWordStartG(eng *engine.Engine, p buffer.Position, bigWord bool) buffer.Position {
	cls := classAt(eng, p, bigWord)
	if cls != 0 {
		for {
			next := charAfterPos(eng, p)
			if next == p {
				return p
			}
			if classAt(eng, next, bigWord) != cls {
				p = next
				break
			}
			p = next
		}
	}
	for {
		if classAt(eng, p, bigWord) != 0 {
			return p
		}
		next := charAfterPos(eng, p)
		if next == p {
			return p
		}
		p = next
	}
}

// prevWordStartG returns the start of the word/WORD run before p.
func prevWordStartG(eng *engine.Engine, p buffer.Position, bigWord bool) buffer.Position {
	for {
		prev := charBeforePos(eng, p)
		if prev == p {
			return p
		}
		if classAt(eng, prev, bigWord) != 0 {
			p = prev
			break
		}
		p = prev
	}
	cls := classAt(eng, p, bigWord)
	for {
		prev := charBeforePos(eng, p)
		if prev == p {
			return p
		}
		if classAt(eng, prev, bigWord) != cls {
			return p
		}
		p = prev
	}
}

// wordEndG returns the position of the last character of the current
// or next word/WORD run after p.
func wordEndG(eng *engine.Engine, p buffer.Position, bigWord bool) buffer.Position {
	cur := charAfterPos(eng, p)
	if cur == p {
		return p
	}
	for classAt(eng, cur, bigWord) == 0 {
		next := charAfterPos(eng, cur)
		if next == cur {
			return cur
		}
		cur = next
	}
	cls := classAt(eng, cur, bigWord)
	for {
		next := charAfterPos(eng, cur)
		if next == cur {
			return cur
		}
		if classAt(eng, next, bigWord) != cls {
			return cur
		}
		cur = next
	}
}

// isEmptyLine returns true if the line is empty or only whitespace.
func isEmptyLine(eng *engine.Engine, line uint32) bool {
	for _, r := range eng.LineText(int(line)) {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isBracket returns true if r is a bracket character.
func isBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '<', '>':
		return true
	}
	return false
}

// matchingBracketFor returns the matching bracket, direction, and whether it's valid.
func matchingBracketFor(r rune) (rune, bool, bool) {
	switch r {
	case '(':
		return ')', true, true
	case ')':
		return '(', false, true
	case '[':
		return ']', true, true
	case ']':
		return '[', false, true
	case '{':
		return '}', true, true
	case '}':
		return '{', false, true
	case '<':
		return '>', true, true
	case '>':
		return '<', false, true
	}
	return 0, false, false
}

// findBracketOnLine finds a bracket at or after p on its own line.
func findBracketOnLine(eng *engine.Engine, p buffer.Position) (buffer.Position, rune, bool) {
	text := []rune(eng.LineText(int(p.Line)))
	for char := p.Char; int(char) < len(text); char++ {
		if isBracket(text[char]) {
			return buffer.Position{Line: p.Line, Char: char}, text[char], true
		}
	}
	return buffer.Position{}, 0, false
}

// findMatchingBracketPos searches for the bracket matching the one at start.
func findMatchingBracketPos(eng *engine.Engine, start buffer.Position, bracket rune) (buffer.Position, bool) {
	match, forward, valid := matchingBracketFor(bracket)
	if !valid {
		return buffer.Position{}, false
	}

	depth := 1
	if forward {
		p := charAfterPos(eng, start)
		for {
			if r, ok := runeAt(eng, p); ok && r != '\n' {
				switch r {
				case bracket:
					depth++
				case match:
					depth--
					if depth == 0 {
						return p, true
					}
				}
			}
			next := charAfterPos(eng, p)
			if next == p {
				return buffer.Position{}, false
			}
			p = next
		}
	}

	p := charBeforePos(eng, start)
	for {
		if r, ok := runeAt(eng, p); ok && r != '\n' {
			switch r {
			case bracket:
				depth++
			case match:
				depth--
				if depth == 0 {
					return p, true
				}
			}
		}
		prev := charBeforePos(eng, p)
		if prev == p {
			return buffer.Position{}, false
		}
		p = prev
	}
}

// isSentenceEnd reports whether r ends a sentence.
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// nextSentenceStart finds the start of the next sentence after p.
func nextSentenceStart(eng *engine.Engine, p buffer.Position) buffer.Position {
	foundEnd := false
	for {
		r, ok := runeAt(eng, p)
		if !ok {
			return p
		}
		if isSentenceEnd(r) {
			foundEnd = true
		} else if foundEnd && !unicode.IsSpace(r) {
			return p
		}
		next := charAfterPos(eng, p)
		if next == p {
			return p
		}
		p = next
	}
}

// prevSentenceStart finds the start of the sentence before p.
func prevSentenceStart(eng *engine.Engine, p buffer.Position) buffer.Position {
	start := p
	cur := charBeforePos(eng, p)
	if cur == p {
		return p
	}

	for {
		if r, ok := runeAt(eng, cur); ok && !unicode.IsSpace(r) {
			break
		}
		prev := charBeforePos(eng, cur)
		if prev == cur {
			return cur
		}
		cur = prev
	}

	for {
		if r, ok := runeAt(eng, cur); ok && isSentenceEnd(r) {
			break
		}
		prev := charBeforePos(eng, cur)
		if prev == cur {
			return boundaryAfterSentenceEnd(eng, cur, start)
		}
		cur = prev
	}

	return boundaryAfterSentenceEnd(eng, cur, start)
}

// boundaryAfterSentenceEnd walks forward from a sentence-ending
// position (or document start), skipping the trailing whitespace that
// follows it, stopping before limit.
func boundaryAfterSentenceEnd(eng *engine.Engine, end, limit buffer.Position) buffer.Position {
	p := end
	if r, ok := runeAt(eng, p); ok && isSentenceEnd(r) {
		next := charAfterPos(eng, p)
		if next == p {
			return p
		}
		p = next
	} else {
		return p
	}
	for positionBefore(p, limit) {
		r, ok := runeAt(eng, p)
		if !ok || !unicode.IsSpace(r) {
			break
		}
		next := charAfterPos(eng, p)
		if next == p {
			break
		}
		p = next
	}
	return p
}

func positionBefore(a, b buffer.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Char < b.Char
}
