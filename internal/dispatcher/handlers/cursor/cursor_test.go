package cursor_test

import (
	"testing"

	"github.com/textloom/loom/internal/dispatcher/execctx"
	cursorhandler "github.com/textloom/loom/internal/dispatcher/handlers/cursor"
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/buffer"
	enginecursor "github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/input"
)

func newCtx(text string) *execctx.ExecutionContext {
	eng := engine.New(buffer.NewDocumentFromString(text))
	return execctx.New().WithEngine(eng)
}

func TestHandlerNamespace(t *testing.T) {
	h := cursorhandler.NewHandler()
	if h.Namespace() != "cursor" {
		t.Errorf("expected namespace 'cursor', got %q", h.Namespace())
	}
}

func TestHandlerCanHandle(t *testing.T) {
	h := cursorhandler.NewHandler()

	tests := []struct {
		action   string
		expected bool
	}{
		{cursorhandler.ActionMoveLeft, true},
		{cursorhandler.ActionMoveRight, true},
		{cursorhandler.ActionMoveUp, true},
		{cursorhandler.ActionMoveDown, true},
		{cursorhandler.ActionMoveLineStart, true},
		{cursorhandler.ActionMoveLineEnd, true},
		{cursorhandler.ActionMoveFirstLine, true},
		{cursorhandler.ActionMoveLastLine, true},
		{"cursor.unknown", false},
		{"editor.save", false},
	}

	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}
}

func TestMoveRight(t *testing.T) {
	ctx := newCtx("hello\nworld")
	h := cursorhandler.NewHandler()

	res := h.HandleAction(input.Action{Name: cursorhandler.ActionMoveRight, Count: 3}, ctx)
	if res.IsError() {
		t.Fatalf("unexpected error: %v", res.Error)
	}

	got := ctx.Cursors.Primary().Position()
	want := buffer.Position{Line: 0, Char: 3}
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestMoveRightCrossesLine(t *testing.T) {
	ctx := newCtx("hi\nworld")
	h := cursorhandler.NewHandler()
	ctx.Cursors.Set(enginecursor.NewCursor(buffer.Position{Line: 0, Char: 1}))

	res := h.HandleAction(input.Action{Name: cursorhandler.ActionMoveRight, Count: 2}, ctx)
	if res.IsError() {
		t.Fatalf("unexpected error: %v", res.Error)
	}

	got := ctx.Cursors.Primary().Position()
	want := buffer.Position{Line: 1, Char: 0}
	if got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
}

func TestMoveDownPreservesColumn(t *testing.T) {
	ctx := newCtx("abcdef\nab\nabcdef")
	h := cursorhandler.NewHandler()
	ctx.Cursors.Set(enginecursor.NewCursor(buffer.Position{Line: 0, Char: 5}))

	h.HandleAction(input.Action{Name: cursorhandler.ActionMoveDown, Count: 1}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got != (buffer.Position{Line: 1, Char: 2}) {
		t.Errorf("expected clamp to line length, got %+v", got)
	}

	h.HandleAction(input.Action{Name: cursorhandler.ActionMoveDown, Count: 1}, ctx)
	got = ctx.Cursors.Primary().Position()
	if got != (buffer.Position{Line: 2, Char: 2}) {
		t.Errorf("expected column restored where possible, got %+v", got)
	}
}

func TestMoveLineEnd(t *testing.T) {
	ctx := newCtx("hello world")
	h := cursorhandler.NewHandler()

	h.HandleAction(input.Action{Name: cursorhandler.ActionMoveLineEnd}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got.Char != 11 {
		t.Errorf("expected end-of-line char 11, got %d", got.Char)
	}
}

func TestMotionHandlerNamespace(t *testing.T) {
	h := cursorhandler.NewMotionHandler()
	if h.Namespace() != "cursor" {
		t.Errorf("expected namespace 'cursor', got %q", h.Namespace())
	}
}

func TestMotionHandlerCanHandle(t *testing.T) {
	h := cursorhandler.NewMotionHandler()

	tests := []struct {
		action   string
		expected bool
	}{
		{cursorhandler.ActionWordForward, true},
		{cursorhandler.ActionWordBackward, true},
		{cursorhandler.ActionWordEndForward, true},
		{cursorhandler.ActionBigWordForward, true},
		{cursorhandler.ActionFirstNonBlank, true},
		{cursorhandler.ActionParagraphForward, true},
		{cursorhandler.ActionSentenceForward, true},
		{cursorhandler.ActionMatchingBracket, true},
		{"cursor.unknown", false},
	}

	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}
}

func TestWordForward(t *testing.T) {
	ctx := newCtx("hello world foo")
	h := cursorhandler.NewMotionHandler()

	h.HandleAction(input.Action{Name: cursorhandler.ActionWordForward, Count: 1}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got.Char != 6 {
		t.Errorf("expected char 6 (start of 'world'), got %d", got.Char)
	}
}

func TestWordBackward(t *testing.T) {
	ctx := newCtx("hello world foo")
	h := cursorhandler.NewMotionHandler()
	ctx.Cursors.Set(enginecursor.NewCursor(buffer.Position{Line: 0, Char: 12}))

	h.HandleAction(input.Action{Name: cursorhandler.ActionWordBackward, Count: 1}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got.Char != 6 {
		t.Errorf("expected char 6 (start of 'world'), got %d", got.Char)
	}
}

func TestFirstNonBlank(t *testing.T) {
	ctx := newCtx("   indented")
	h := cursorhandler.NewMotionHandler()

	h.HandleAction(input.Action{Name: cursorhandler.ActionFirstNonBlank}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got.Char != 3 {
		t.Errorf("expected char 3, got %d", got.Char)
	}
}

func TestMatchingBracket(t *testing.T) {
	ctx := newCtx("foo(bar(baz))")
	h := cursorhandler.NewMotionHandler()

	h.HandleAction(input.Action{Name: cursorhandler.ActionMatchingBracket}, ctx)
	got := ctx.Cursors.Primary().Position()
	if got.Char != 12 {
		t.Errorf("expected char 12 (closing paren), got %d", got.Char)
	}
}

func TestActionConstants(t *testing.T) {
	actions := []string{
		cursorhandler.ActionMoveLeft,
		cursorhandler.ActionMoveRight,
		cursorhandler.ActionMoveUp,
		cursorhandler.ActionMoveDown,
		cursorhandler.ActionMoveLineStart,
		cursorhandler.ActionMoveLineEnd,
		cursorhandler.ActionMoveFirstLine,
		cursorhandler.ActionMoveLastLine,
		cursorhandler.ActionWordForward,
		cursorhandler.ActionWordBackward,
		cursorhandler.ActionWordEndForward,
		cursorhandler.ActionBigWordForward,
		cursorhandler.ActionBigWordBackward,
		cursorhandler.ActionBigWordEndForward,
		cursorhandler.ActionFirstNonBlank,
		cursorhandler.ActionGotoLine,
		cursorhandler.ActionGotoColumn,
		cursorhandler.ActionMatchingBracket,
		cursorhandler.ActionGotoPercent,
		cursorhandler.ActionParagraphForward,
		cursorhandler.ActionParagraphBackward,
		cursorhandler.ActionSentenceForward,
		cursorhandler.ActionSentenceBackward,
		cursorhandler.ActionScreenTop,
		cursorhandler.ActionScreenMiddle,
		cursorhandler.ActionScreenBottom,
	}

	for _, action := range actions {
		if len(action) < 8 || action[:7] != "cursor." {
			t.Errorf("action %q does not follow cursor.* pattern", action)
		}
	}
}

func TestActionForInput(t *testing.T) {
	action := input.Action{
		Name:  cursorhandler.ActionMoveDown,
		Count: 5,
	}

	if action.Name != "cursor.moveDown" {
		t.Errorf("expected action name 'cursor.moveDown', got %q", action.Name)
	}
	if action.Count != 5 {
		t.Errorf("expected count 5, got %d", action.Count)
	}
}
