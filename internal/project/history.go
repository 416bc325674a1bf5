package project

import (
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

const defaultMaxDepth = 50

// Checkpoint captures the bins of a packer at a point in time.
type Checkpoint[T any] struct {
	Snapshot model.Snapshot[T]
	Cursor   int    // First open bin at the time of the checkpoint
	Label    string // Human-readable description (e.g. "add sprites.csv")
}

// History manages undo/redo stacks of packer checkpoints.
type History[T any] struct {
	undoStack []Checkpoint[T]
	redoStack []Checkpoint[T]
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory[T any]() *History[T] {
	return &History[T]{
		maxDepth: defaultMaxDepth,
	}
}

// Push saves a checkpoint onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History[T]) Push(c Checkpoint[T]) {
	h.undoStack = append(h.undoStack, c)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent checkpoint from the undo stack and pushes
// the current state onto the redo stack. Returns the checkpoint to restore
// and true, or an empty checkpoint and false if nothing to undo.
func (h *History[T]) Undo(current Checkpoint[T]) (Checkpoint[T], bool) {
	if len(h.undoStack) == 0 {
		return Checkpoint[T]{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo pops the most recent checkpoint from the redo stack and pushes
// the current state onto the undo stack.
func (h *History[T]) Redo(current Checkpoint[T]) (Checkpoint[T], bool) {
	if len(h.redoStack) == 0 {
		return Checkpoint[T]{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one checkpoint to undo.
func (h *History[T]) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one checkpoint to redo.
func (h *History[T]) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History[T]) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// Record pushes the current state of p before a modification.
func (h *History[T]) Record(p *engine.Packer[T], label string) {
	h.Push(snapshotOf(p, label))
}

func snapshotOf[T any](p *engine.Packer[T], label string) Checkpoint[T] {
	return Checkpoint[T]{Snapshot: p.Save(), Cursor: p.Cursor(), Label: label}
}

// UndoPacker rewinds p to its most recent checkpoint and returns that
// checkpoint's label. Bins that were closed at the checkpoint stay closed.
func (h *History[T]) UndoPacker(p *engine.Packer[T]) (string, bool, error) {
	c, ok := h.Undo(snapshotOf(p, ""))
	if !ok {
		return "", false, nil
	}
	if err := p.LoadAt(c.Snapshot, c.Cursor); err != nil {
		return "", false, err
	}
	return c.Label, true, nil
}

// RedoPacker re-applies the most recently undone checkpoint to p.
func (h *History[T]) RedoPacker(p *engine.Packer[T]) (bool, error) {
	c, ok := h.Redo(snapshotOf(p, ""))
	if !ok {
		return false, nil
	}
	if err := p.LoadAt(c.Snapshot, c.Cursor); err != nil {
		return false, err
	}
	return true, nil
}
