package view

import (
	"strings"
	"testing"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/dispatcher/handler"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	enginecursor "github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

// mockRenderer implements execctx.RendererInterface for testing.
type mockRenderer struct {
	startLine uint32
	endLine   uint32
}

func newMockRenderer(start, end uint32) *mockRenderer {
	return &mockRenderer{startLine: start, endLine: end}
}

func (r *mockRenderer) ScrollTo(line, col uint32) {
	height := r.endLine - r.startLine
	r.startLine = line
	r.endLine = line + height
}

func (r *mockRenderer) CenterOnLine(line uint32) {
	height := r.endLine - r.startLine
	halfHeight := height / 2
	if line >= halfHeight {
		r.startLine = line - halfHeight
	} else {
		r.startLine = 0
	}
	r.endLine = r.startLine + height
}

func (r *mockRenderer) Redraw() {}

func (r *mockRenderer) RedrawLines(lines []uint32) {}

func (r *mockRenderer) VisibleLineRange() (start, end uint32) {
	return r.startLine, r.endLine
}

// createMultiLineBuffer builds a 100-line buffer for testing.
func createMultiLineBuffer() string {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "line " + string(rune('0'+i%10))
	}
	return strings.Join(lines, "\n")
}

func newViewCtx(text string) (*execctx.ExecutionContext, *engine.Engine) {
	eng := engine.New(buffer.NewDocumentFromString(text))
	ctx := execctx.New().WithEngine(eng)
	return ctx, eng
}

func setCursor(ctx *execctx.ExecutionContext, line uint32) {
	ctx.Cursors.Set(enginecursor.NewCursor(buffer.Position{Line: line, Char: 0}))
}

func TestHandler_Namespace(t *testing.T) {
	h := NewHandler()
	if h.Namespace() != "view" {
		t.Errorf("expected namespace 'view', got '%s'", h.Namespace())
	}
}

func TestHandler_CanHandle(t *testing.T) {
	h := NewHandler()

	validActions := []string{
		ActionScrollDown,
		ActionScrollUp,
		ActionPageDown,
		ActionPageUp,
		ActionHalfPageDown,
		ActionHalfPageUp,
		ActionScrollToTop,
		ActionScrollToBottom,
		ActionMoveToTop,
		ActionMoveToMiddle,
		ActionMoveToBottom,
		ActionCenterCursor,
		ActionTopCursor,
		ActionBottomCursor,
	}

	for _, action := range validActions {
		if !h.CanHandle(action) {
			t.Errorf("expected CanHandle(%s) to return true", action)
		}
	}

	if h.CanHandle("invalid.action") {
		t.Error("expected CanHandle('invalid.action') to return false")
	}
}

func TestHandler_ScrollDown(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer
	ctx.Count = 5

	action := input.Action{Name: ActionScrollDown}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 5 {
		t.Errorf("expected view start at 5, got %d", start)
	}
}

func TestHandler_ScrollUp(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(10, 30)
	ctx.Renderer = renderer
	ctx.Count = 5

	action := input.Action{Name: ActionScrollUp}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 5 {
		t.Errorf("expected view start at 5, got %d", start)
	}
}

func TestHandler_PageDown(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionPageDown}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 20 {
		t.Errorf("expected view start at 20, got %d", start)
	}
}

func TestHandler_PageUp(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(40, 60)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionPageUp}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 20 {
		t.Errorf("expected view start at 20, got %d", start)
	}
}

func TestHandler_HalfPageDown(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionHalfPageDown}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 10 {
		t.Errorf("expected view start at 10, got %d", start)
	}
}

func TestHandler_ScrollToTop(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(50, 70)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionScrollToTop}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 0 {
		t.Errorf("expected view start at 0, got %d", start)
	}

	if line := ctx.Cursors.Primary().Position().Line; line != 0 {
		t.Errorf("expected cursor at line 0, got %d", line)
	}
}

func TestHandler_ScrollToBottom(t *testing.T) {
	h := NewHandler()
	ctx, eng := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionScrollToBottom}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	lineCount := eng.LineCount()
	line := ctx.Cursors.Primary().Position().Line
	if int(line) != lineCount-1 {
		t.Errorf("expected cursor at line %d, got %d", lineCount-1, line)
	}
}

func TestHandler_MoveToTop(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(10, 30)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionMoveToTop}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	if line := ctx.Cursors.Primary().Position().Line; line != 10 {
		t.Errorf("expected cursor at line 10, got %d", line)
	}
}

func TestHandler_MoveToMiddle(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(10, 30)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionMoveToMiddle}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	if line := ctx.Cursors.Primary().Position().Line; line != 20 {
		t.Errorf("expected cursor at line 20, got %d", line)
	}
}

func TestHandler_MoveToBottom(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	renderer := newMockRenderer(10, 30)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionMoveToBottom}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	if line := ctx.Cursors.Primary().Position().Line; line != 29 {
		t.Errorf("expected cursor at line 29, got %d", line)
	}
}

func TestHandler_CenterCursor(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionCenterCursor}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, end := renderer.VisibleLineRange()
	middle := start + (end-start)/2
	if middle != 50 {
		t.Errorf("expected view centered on line 50, got center at %d", middle)
	}
}

func TestHandler_TopCursor(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionTopCursor}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	start, _ := renderer.VisibleLineRange()
	if start != 50 {
		t.Errorf("expected view start at 50, got %d", start)
	}
}

func TestHandler_BottomCursor(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	action := input.Action{Name: ActionBottomCursor}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v: %v", result.Status, result.Error)
	}

	_, end := renderer.VisibleLineRange()
	if end != 51 { // end is exclusive
		t.Errorf("expected view end at 51, got %d", end)
	}
}

func TestHandler_MissingEngine(t *testing.T) {
	h := NewHandler()
	ctx := execctx.New()

	action := input.Action{Name: ActionScrollDown}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for missing engine, got %v", result.Status)
	}
}

func TestHandler_MissingRenderer(t *testing.T) {
	h := NewHandler()
	ctx, _ := newViewCtx("hello")

	action := input.Action{Name: ActionScrollDown}
	result := h.HandleAction(action, ctx)

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for missing renderer, got %v", result.Status)
	}
}

func TestGetVisibleLineCount(t *testing.T) {
	ctx := execctx.New()

	// Without renderer, should return default
	count := GetVisibleLineCount(ctx)
	if count != 20 {
		t.Errorf("expected default 20, got %d", count)
	}

	// With renderer
	renderer := newMockRenderer(10, 35)
	ctx.Renderer = renderer

	count = GetVisibleLineCount(ctx)
	if count != 25 {
		t.Errorf("expected 25, got %d", count)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	ctx, _ := newViewCtx(createMultiLineBuffer())
	setCursor(ctx, 50)
	renderer := newMockRenderer(0, 20)
	ctx.Renderer = renderer

	result := EnsureCursorVisible(ctx)

	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}

	start, end := renderer.VisibleLineRange()
	line := ctx.Cursors.Primary().Position().Line
	if line < start || line >= end {
		t.Errorf("cursor at line %d not visible in range [%d, %d)", line, start, end)
	}
}
