package project

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

func checkpointWith(n int, label string) Checkpoint[int] {
	return Checkpoint[int]{
		Snapshot: model.Snapshot[int]{Bins: make([]model.BinSnapshot[int], n)},
		Label:    label,
	}
}

func TestNewHistory(t *testing.T) {
	h := NewHistory[int]()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushUndoRedo(t *testing.T) {
	h := NewHistory[int]()
	h.Push(checkpointWith(0, "initial"))

	restored, ok := h.Undo(checkpointWith(1, "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Label != "initial" || len(restored.Snapshot.Bins) != 0 {
		t.Errorf("unexpected checkpoint %+v", restored)
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Snapshot.Bins) != 1 {
		t.Errorf("expected the 1-bin state back, got %d bins", len(redone.Snapshot.Bins))
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Error("redo should move the state back onto the undo stack")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory[int]()
	h.Push(checkpointWith(0, "a"))
	h.Undo(checkpointWith(1, "b"))
	h.Push(checkpointWith(2, "c"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestMaxDepth(t *testing.T) {
	h := NewHistory[int]()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(checkpointWith(i, "step"))
	}
	if len(h.undoStack) != defaultMaxDepth {
		t.Errorf("expected %d checkpoints, got %d", defaultMaxDepth, len(h.undoStack))
	}
	if n := len(h.undoStack[0].Snapshot.Bins); n != 10 {
		t.Errorf("oldest checkpoints should be dropped first, oldest has %d bins", n)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory[int]()
	if _, ok := h.Undo(checkpointWith(0, "")); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(checkpointWith(0, "")); ok {
		t.Error("redo on empty history should fail")
	}
	h.Push(checkpointWith(0, ""))
	h.Clear()
	if h.CanUndo() {
		t.Error("clear should empty the undo stack")
	}
}

func TestUndoRedoPacker(t *testing.T) {
	p, err := engine.New[int](128, 128, 0, model.Options{Smart: true})
	if err != nil {
		t.Fatal(err)
	}
	h := NewHistory[int]()

	h.Record(p, "first")
	if _, err := p.Add(100, 100, 1); err != nil {
		t.Fatal(err)
	}
	h.Record(p, "second")
	if _, err := p.Add(100, 100, 2); err != nil {
		t.Fatal(err)
	}
	if len(p.Bins()) != 2 {
		t.Fatalf("expected 2 bins, got %d", len(p.Bins()))
	}

	label, ok, err := h.UndoPacker(p)
	if err != nil || !ok {
		t.Fatalf("undo failed: ok=%v err=%v", ok, err)
	}
	if label != "second" || len(p.Bins()) != 1 {
		t.Errorf("expected 1 bin after undoing %q, got %d", label, len(p.Bins()))
	}

	ok, err = h.RedoPacker(p)
	if err != nil || !ok {
		t.Fatalf("redo failed: ok=%v err=%v", ok, err)
	}
	if len(p.Bins()) != 2 {
		t.Errorf("expected 2 bins after redo, got %d", len(p.Bins()))
	}

	h.UndoPacker(p)
	h.UndoPacker(p)
	if len(p.Bins()) != 0 {
		t.Errorf("expected empty packer after undoing everything, got %d bins", len(p.Bins()))
	}
	if _, ok, _ := h.UndoPacker(p); ok {
		t.Error("nothing left to undo")
	}
}

func TestUndoPacker_KeepsClosedBinsClosed(t *testing.T) {
	p, err := engine.New[int](128, 128, 0, model.Options{Smart: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Add(100, 100, 1); err != nil {
		t.Fatal(err)
	}
	p.Next()

	h := NewHistory[int]()
	h.Record(p, "overflow")
	if _, err := p.AddArray([]model.Rectangle[int]{
		model.NewRectangle(100, 100, 2),
		model.NewRectangle(100, 100, 3),
	}); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := h.UndoPacker(p); err != nil || !ok {
		t.Fatalf("undo failed: ok=%v err=%v", ok, err)
	}
	if p.Cursor() != 1 {
		t.Fatalf("expected cursor 1 after undo, got %d", p.Cursor())
	}

	if _, err := p.Add(10, 10, 4); err != nil {
		t.Fatal(err)
	}
	bins := p.Bins()
	if len(bins) != 2 {
		t.Fatalf("expected a new bin for the next rectangle, got %d bins", len(bins))
	}
	if n := len(bins[0].Rects()); n != 1 {
		t.Errorf("closed bin received rectangles: %d", n)
	}

	ok, err := h.RedoPacker(p)
	if err != nil || !ok {
		t.Fatalf("redo failed: ok=%v err=%v", ok, err)
	}
	if p.Cursor() != 1 || len(p.Bins()) != 3 {
		t.Errorf("redo should restore cursor 1 with 3 bins, got cursor %d with %d bins", p.Cursor(), len(p.Bins()))
	}
}
