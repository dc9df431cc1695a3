// Package app provides adapter implementations that bridge the app layer
// with the dispatcher's execution context interfaces.
package app

import (
	"github.com/textloom/loom/internal/dispatcher/execctx"
	"github.com/textloom/loom/internal/input/mode"
)

// Compile-time interface checks.
var (
	_ execctx.ModeManagerInterface = (*ModeExecAdapter)(nil)
	_ execctx.RendererInterface    = (*RendererAdapter)(nil)
)

// ModeExecAdapter adapts mode.Manager to execctx.ModeManagerInterface.
type ModeExecAdapter struct {
	manager *mode.Manager
}

// NewModeExecAdapter creates a new mode manager adapter for execctx.
func NewModeExecAdapter(manager *mode.Manager) *ModeExecAdapter {
	return &ModeExecAdapter{manager: manager}
}

// Current returns the current mode wrapped as ModeInterface.
func (a *ModeExecAdapter) Current() execctx.ModeInterface {
	if a.manager == nil {
		return nil
	}
	m := a.manager.Current()
	if m == nil {
		return nil
	}
	return &modeWrapper{mode: m}
}

// CurrentName returns the current mode name.
func (a *ModeExecAdapter) CurrentName() string {
	if a.manager == nil {
		return ""
	}
	return a.manager.CurrentName()
}

// Switch switches to a named mode.
func (a *ModeExecAdapter) Switch(name string) error {
	if a.manager == nil {
		return nil
	}
	return a.manager.Switch(name)
}

// Push pushes a new mode onto the stack.
func (a *ModeExecAdapter) Push(name string) error {
	if a.manager == nil {
		return nil
	}
	return a.manager.Push(name)
}

// Pop pops the current mode from the stack.
func (a *ModeExecAdapter) Pop() error {
	if a.manager == nil {
		return nil
	}
	return a.manager.Pop()
}

// IsMode returns true if the current mode matches the given name.
func (a *ModeExecAdapter) IsMode(name string) bool {
	if a.manager == nil {
		return false
	}
	return a.manager.IsMode(name)
}

// IsAnyMode returns true if the current mode matches any of the given names.
func (a *ModeExecAdapter) IsAnyMode(names ...string) bool {
	if a.manager == nil {
		return false
	}
	return a.manager.IsAnyMode(names...)
}

// modeWrapper wraps mode.Mode to implement execctx.ModeInterface.
type modeWrapper struct {
	mode mode.Mode
}

func (w *modeWrapper) Name() string        { return w.mode.Name() }
func (w *modeWrapper) DisplayName() string { return w.mode.DisplayName() }

// RendererAdapter adapts the renderer to execctx.RendererInterface.
type RendererAdapter struct {
	renderer RendererInterface
}

// RendererInterface defines the renderer methods we need.
// This interface is satisfied by *renderer.RendererExecWrapper.
type RendererInterface interface {
	ScrollTo(line, col uint32)
	CenterOnLine(line uint32)
	Redraw()
	RedrawLines(lines []uint32)
	VisibleLineRange() (start, end uint32)
}

// NewRendererAdapter creates a new renderer adapter.
func NewRendererAdapter(renderer RendererInterface) *RendererAdapter {
	return &RendererAdapter{renderer: renderer}
}

func (a *RendererAdapter) ScrollTo(line, col uint32) {
	if a.renderer != nil {
		a.renderer.ScrollTo(line, col)
	}
}

func (a *RendererAdapter) CenterOnLine(line uint32) {
	if a.renderer != nil {
		a.renderer.CenterOnLine(line)
	}
}

func (a *RendererAdapter) Redraw() {
	if a.renderer != nil {
		a.renderer.Redraw()
	}
}

func (a *RendererAdapter) RedrawLines(lines []uint32) {
	if a.renderer != nil {
		a.renderer.RedrawLines(lines)
	}
}

func (a *RendererAdapter) VisibleLineRange() (start, end uint32) {
	if a.renderer != nil {
		return a.renderer.VisibleLineRange()
	}
	return 0, 0
}

// NullRenderer is a no-op renderer for testing.
type NullRenderer struct{}

func (NullRenderer) ScrollTo(line, col uint32)             {}
func (NullRenderer) CenterOnLine(line uint32)              {}
func (NullRenderer) Redraw()                               {}
func (NullRenderer) RedrawLines(lines []uint32)            {}
func (NullRenderer) VisibleLineRange() (start, end uint32) { return 0, 100 }

// RendererExecWrapper wraps a renderer.Renderer to implement RendererInterface.
// Uses minimal interface to avoid coupling to specific renderer implementation.
type RendererExecWrapper struct {
	scroller interface {
		ScrollToReveal(line uint32, col int, smooth bool)
		CenterOnLine(line uint32, smooth bool)
	}
	dirtyer interface {
		MarkDirty()
	}
}

// NewRendererExecWrapper creates a wrapper that adapts the renderer.
func NewRendererExecWrapper(r interface {
	ScrollToReveal(line uint32, col int, smooth bool)
	CenterOnLine(line uint32, smooth bool)
	MarkDirty()
}) *RendererExecWrapper {
	return &RendererExecWrapper{
		scroller: r,
		dirtyer:  r,
	}
}

func (w *RendererExecWrapper) ScrollTo(line, col uint32) {
	if w.scroller != nil {
		w.scroller.ScrollToReveal(line, int(col), false)
	}
}

func (w *RendererExecWrapper) CenterOnLine(line uint32) {
	if w.scroller != nil {
		w.scroller.CenterOnLine(line, false)
	}
}

func (w *RendererExecWrapper) Redraw() {
	if w.dirtyer != nil {
		w.dirtyer.MarkDirty()
	}
}

func (w *RendererExecWrapper) RedrawLines(lines []uint32) {
	// Simplified: just mark dirty for now
	if w.dirtyer != nil {
		w.dirtyer.MarkDirty()
	}
}

func (w *RendererExecWrapper) VisibleLineRange() (start, end uint32) {
	// TODO: Need to expose viewport's VisibleLineRange on Renderer
	// For now, return a reasonable default
	return 0, 100
}
