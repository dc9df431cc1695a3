package history

import (
	"errors"
	"sync"
	"time"

	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
)

// Errors returned by history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

type entry struct {
	record    Record
	timestamp time.Time
}

// OperationInfo describes an available undo or redo operation.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// History holds the done/undone stacks for one document.
type History struct {
	mu sync.Mutex

	done   []*entry
	undone []*entry

	maxEntries int
}

// NewHistory creates a history with the given entry cap (<=0 defaults
// to 1000).
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{maxEntries: maxEntries}
}

// Push records a completed action, ready to be undone. It clears the
// redo stack, per the universal undo/redo contract (§4.2, §8).
func (h *History) Push(r Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.done = append(h.done, &entry{record: r, timestamp: time.Now()})
	h.undone = nil

	if len(h.done) > h.maxEntries {
		excess := len(h.done) - h.maxEntries
		h.done = h.done[excess:]
	}
}

// Undo applies the most recent record's Inverse to doc and returns
// the cursor set to restore. The record moves to the redo stack.
func (h *History) Undo(doc *buffer.Document) (*cursor.CursorSet, error) {
	h.mu.Lock()
	if len(h.done) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToUndo
	}
	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.mu.Unlock()

	for _, edit := range e.record.Inverse.Edits {
		if _, err := doc.Apply(edit); err != nil {
			h.mu.Lock()
			h.done = append(h.done, e)
			h.mu.Unlock()
			return nil, err
		}
	}

	h.mu.Lock()
	h.undone = append(h.undone, e)
	h.mu.Unlock()
	return e.record.CursorsBefore, nil
}

// Redo re-applies the most recently undone record's Forward action.
func (h *History) Redo(doc *buffer.Document) (*cursor.CursorSet, error) {
	h.mu.Lock()
	if len(h.undone) == 0 {
		h.mu.Unlock()
		return nil, ErrNothingToRedo
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.mu.Unlock()

	for _, edit := range e.record.Forward.Edits {
		if _, err := doc.Apply(edit); err != nil {
			h.mu.Lock()
			h.undone = append(h.undone, e)
			h.mu.Unlock()
			return nil, err
		}
	}

	h.mu.Lock()
	h.done = append(h.done, e)
	h.mu.Unlock()
	return e.record.CursorsAfter, nil
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.done) > 0
}

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undone) > 0
}

// Clear discards all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.done = nil
	h.undone = nil
}

// UndoInfo describes the pending undo stack, most recent first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]OperationInfo, len(h.done))
	for i, e := range h.done {
		out[len(h.done)-1-i] = OperationInfo{Description: e.record.Description, Timestamp: e.timestamp}
	}
	return out
}

// RedoInfo describes the pending redo stack, most recent first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]OperationInfo, len(h.undone))
	for i, e := range h.undone {
		out[len(h.undone)-1-i] = OperationInfo{Description: e.record.Description, Timestamp: e.timestamp}
	}
	return out
}
