package engine

import (
	"github.com/textloom/loom/internal/engine/buffer"
	"github.com/textloom/loom/internal/engine/cursor"
	"github.com/textloom/loom/internal/engine/history"
)

// Tx is the handle a PerformTransaction callback uses to apply edits.
// Unlike the per-cursor operations on Engine, a transaction's edits
// may be built and applied in any order (e.g. "replace all" walks
// matches front-to-back); each Apply call folds its EditOffset into
// every active cursor via cursor.CursorSet.Transform, so later steps
// see an up-to-date cursor set (§4.2 "Multi-cursor offset algebra").
type Tx struct {
	e *Engine
}

// Apply performs edit against the document, propagates its effect to
// every active cursor, and records it as part of the enclosing
// transaction's single undo step.
func (tx *Tx) Apply(edit buffer.Edit) (buffer.Position, error) {
	e := tx.e
	inv, err := e.doc.Apply(edit)
	if err != nil {
		return buffer.Position{}, err
	}
	off := buffer.Offset(edit.RangeBefore.Start, inv.RangeBefore.End)
	e.cursors.Transform(off)

	e.txForward = append(e.txForward, edit)
	e.txInverse = append(e.txInverse, inv)
	return inv.RangeBefore.End, nil
}

// Cursors returns the transaction's live cursor set, reflecting every
// Apply call made so far.
func (tx *Tx) Cursors() *cursor.CursorSet { return tx.e.cursors }

// Document returns the document being edited, for read access (e.g. a
// "replace all" callback scanning for matches).
func (tx *Tx) Document() *buffer.Document { return tx.e.doc }

// PerformTransaction groups an arbitrary sequence of edits produced by
// fn into a single undo step, suspending the idle-coalescing buffer
// and the document-sync callback for its duration (§4.2). Nested
// PerformTransaction calls (including the engine's own per-cursor
// operations called from within fn) join the outermost transaction
// rather than opening a new undo step.
func (e *Engine) PerformTransaction(description string, fn func(tx *Tx) error) error {
	e.flushPending()

	owner := e.txDepth == 0
	if owner {
		e.txBefore = e.cursors.Clone()
		e.txForward = nil
		e.txInverse = nil
		e.txDesc = description
	}
	e.txDepth++

	err := fn(&Tx{e: e})

	e.txDepth--
	if !owner {
		return err
	}

	defer func() {
		e.txForward = nil
		e.txInverse = nil
		e.txBefore = nil
	}()

	if err != nil || len(e.txForward) == 0 {
		return err
	}

	e.hist.Push(history.NewRecord(e.txForward, e.txInverse, e.txBefore, e.cursors.Clone(), e.txDesc))
	e.notifySync()
	return nil
}
