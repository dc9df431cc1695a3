// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/textloom/loom/internal/engine"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/engine/history"
	"github.com/textloom/loom/internal/input"
)

// ModeManagerInterface abstracts mode management for handlers.
type ModeManagerInterface interface {
	// Current mode
	Current() ModeInterface
	CurrentName() string

	// Mode transitions
	Switch(name string) error
	Push(name string) error
	Pop() error

	// Mode queries
	IsMode(name string) bool
	IsAnyMode(names ...string) bool
}

// ModeInterface represents an editor mode.
type ModeInterface interface {
	Name() string
	DisplayName() string
}

// RendererInterface abstracts rendering for handlers.
type RendererInterface interface {
	// Scrolling
	ScrollTo(line, col uint32)
	CenterOnLine(line uint32)

	// Redrawing
	Redraw()
	RedrawLines(lines []uint32)

	// View info
	VisibleLineRange() (start, end uint32)
}

// ExecutionContext provides context for action execution.
// It contains references to all editor subsystems needed by handlers.
type ExecutionContext struct {
	// Engine owns the document, cursor set, and undo history for the
	// buffer being acted on.
	Engine *engine.Engine

	// Cursors is the engine's live cursor set. Aliased here so
	// handlers that only touch cursors don't need the engine.
	Cursors *cursor.CursorSet

	// ModeManager provides mode state.
	ModeManager ModeManagerInterface

	// History is the engine's undo/redo stack.
	History *history.History

	// Renderer provides view operations.
	Renderer RendererInterface

	// Input provides the input context (mode, pending state, etc.).
	Input *input.Context

	// Buffer metadata
	FilePath string
	FileType string

	// Execution options
	Count  int  // Repeat count (1 if not specified)
	DryRun bool // If true, don't apply changes (for preview)

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]interface{}),
	}
}

// NewWithInputContext creates a new execution context from an input context.
func NewWithInputContext(inputCtx *input.Context) *ExecutionContext {
	ctx := New()
	ctx.Input = inputCtx

	if inputCtx != nil {
		// Extract count from input context
		if inputCtx.PendingCount > 0 {
			ctx.Count = inputCtx.PendingCount
		}

		// Extract file info
		ctx.FilePath = inputCtx.FilePath
		ctx.FileType = inputCtx.FileType
	}

	return ctx
}

// WithEngine returns the context with the engine (and its cursor set)
// bound.
func (ctx *ExecutionContext) WithEngine(e *engine.Engine) *ExecutionContext {
	ctx.Engine = e
	if e != nil {
		ctx.Cursors = e.Cursors()
		ctx.History = e.History()
	}
	return ctx
}

// WithCursors overrides the cursor set the context operates on
// (tests point it at a standalone set; normally it's the engine's own).
func (ctx *ExecutionContext) WithCursors(cursors *cursor.CursorSet) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithModeManager returns the context with mode manager set.
func (ctx *ExecutionContext) WithModeManager(mm ModeManagerInterface) *ExecutionContext {
	ctx.ModeManager = mm
	return ctx
}

// WithHistory overrides the history stack the context reports against.
func (ctx *ExecutionContext) WithHistory(h *history.History) *ExecutionContext {
	ctx.History = h
	return ctx
}

// WithRenderer returns the context with renderer set.
func (ctx *ExecutionContext) WithRenderer(renderer RendererInterface) *ExecutionContext {
	ctx.Renderer = renderer
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// WithDryRun returns the context with dry run mode enabled.
func (ctx *ExecutionContext) WithDryRun(dryRun bool) *ExecutionContext {
	ctx.DryRun = dryRun
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Mode returns the current mode name.
func (ctx *ExecutionContext) Mode() string {
	if ctx.Input != nil {
		return ctx.Input.Mode
	}
	if ctx.ModeManager != nil {
		return ctx.ModeManager.CurrentName()
	}
	return ""
}

// HasSelection returns true if there is an active selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Cursors != nil {
		return ctx.Cursors.HasSelection()
	}
	if ctx.Input != nil {
		return ctx.Input.HasSelection
	}
	return false
}

// IsReadOnly returns true if the buffer is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	if ctx.Input != nil {
		return ctx.Input.IsReadOnly
	}
	return false
}

// IsModified returns true if the buffer has unsaved changes.
func (ctx *ExecutionContext) IsModified() bool {
	if ctx.Input != nil {
		return ctx.Input.IsModified
	}
	return false
}

// PendingOperator returns the pending operator, if any.
func (ctx *ExecutionContext) PendingOperator() string {
	if ctx.Input != nil {
		return ctx.Input.PendingOperator
	}
	return ""
}

// PendingRegister returns the pending register, if any.
func (ctx *ExecutionContext) PendingRegister() rune {
	if ctx.Input != nil {
		return ctx.Input.PendingRegister
	}
	return 0
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// GetDataString retrieves a string value from context data.
func (ctx *ExecutionContext) GetDataString(key string) string {
	if v, ok := ctx.GetData(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetDataInt retrieves an int value from context data.
func (ctx *ExecutionContext) GetDataInt(key string) int {
	if v, ok := ctx.GetData(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetDataBool retrieves a bool value from context data.
func (ctx *ExecutionContext) GetDataBool(key string) bool {
	if v, ok := ctx.GetData(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	// Engine is required for most operations
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
