package model

import (
	"testing"
)

type tagged struct{ tag, hash string }

func (t tagged) PackTag() string  { return t.tag }
func (t tagged) PackHash() string { return t.hash }

func TestRectCollides(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, Width: 5, Height: 5}, false},
		{"apart", Rect{X: 20, Y: 20, Width: 1, Height: 1}, false},
	}
	for _, tc := range cases {
		if got := a.Collides(tc.b); got != tc.want {
			t.Errorf("%s: Collides=%v, want %v", tc.name, got, tc.want)
		}
		if got := tc.b.Collides(a); got != tc.want {
			t.Errorf("%s (reversed): Collides=%v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRectContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !outer.Contains(outer) {
		t.Error("a rectangle should contain itself")
	}
	if !outer.Contains(Rect{X: 5, Y: 5, Width: 5, Height: 5}) {
		t.Error("expected corner rectangle to be contained")
	}
	if outer.Contains(Rect{X: 5, Y: 5, Width: 6, Height: 5}) {
		t.Error("rectangle crossing the right edge must not be contained")
	}
	if outer.Contains(Rect{X: -1, Y: 0, Width: 2, Height: 2}) {
		t.Error("rectangle crossing the left edge must not be contained")
	}
}

func TestRectDegenerate(t *testing.T) {
	if (Rect{Width: 1, Height: 1}).Degenerate() {
		t.Error("1x1 is not degenerate")
	}
	if !(Rect{Width: 0, Height: 5}).Degenerate() {
		t.Error("zero width is degenerate")
	}
	if !(Rect{Width: 5, Height: -1}).Degenerate() {
		t.Error("negative height is degenerate")
	}
}

func TestNewRectangleDerivesTagAndHash(t *testing.T) {
	r := NewRectangle(4, 2, tagged{tag: "ui", hash: "abc"})
	if r.Tag != "ui" || r.Hash != "abc" {
		t.Errorf("expected tag=ui hash=abc, got tag=%q hash=%q", r.Tag, r.Hash)
	}

	plain := NewRectangle(4, 2, 42)
	if plain.Tag != "" || plain.Hash != "" {
		t.Errorf("plain payload should carry no tag or hash, got %q/%q", plain.Tag, plain.Hash)
	}
	if plain.Data != 42 {
		t.Errorf("expected payload 42, got %d", plain.Data)
	}
}

func TestRequestedSizeUndoesRotation(t *testing.T) {
	r := Rectangle[int]{Width: 20, Height: 10, Rotated: true}
	if r.RequestedWidth() != 10 || r.RequestedHeight() != 20 {
		t.Errorf("expected requested 10x20, got %.0fx%.0f", r.RequestedWidth(), r.RequestedHeight())
	}
	r.Rotated = false
	if r.RequestedWidth() != 20 || r.RequestedHeight() != 10 {
		t.Errorf("expected requested 20x10, got %.0fx%.0f", r.RequestedWidth(), r.RequestedHeight())
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if !o.Smart || !o.Pot {
		t.Error("smart and pot should be on by default")
	}
	if o.Square || o.AllowRotation || o.Tag {
		t.Error("square, rotation and tag should be off by default")
	}
	if o.Logic != LogicMaxArea {
		t.Errorf("expected default logic %s, got %s", LogicMaxArea, o.Logic)
	}
}

func TestSnapshotRectCount(t *testing.T) {
	snap := Snapshot[int]{Bins: []BinSnapshot[int]{
		{Rects: make([]Rectangle[int], 3)},
		{Rects: make([]Rectangle[int], 1)},
		{},
	}}
	if snap.RectCount() != 4 {
		t.Errorf("expected 4 rects, got %d", snap.RectCount())
	}
}

func TestSnapshotEfficiency(t *testing.T) {
	snap := Snapshot[int]{Bins: []BinSnapshot[int]{
		{Width: 10, Height: 10, Rects: []Rectangle[int]{{Width: 5, Height: 10}}},
		{Width: 10, Height: 10, Rects: []Rectangle[int]{{Width: 10, Height: 10}}},
		{Width: 50, Height: 5, Oversized: true, Rects: []Rectangle[int]{{Width: 50, Height: 5, Oversized: true}}},
	}}
	if got := snap.Bins[0].Efficiency(); got != 50 {
		t.Errorf("expected 50%% for the first bin, got %.1f", got)
	}
	if got := snap.Efficiency(); got != 75 {
		t.Errorf("expected 75%% across regular bins, got %.1f", got)
	}
	if snap.OversizedCount() != 1 {
		t.Errorf("expected 1 oversized bin, got %d", snap.OversizedCount())
	}
	if (BinSnapshot[int]{}).Efficiency() != 0 {
		t.Error("empty bin should report 0%")
	}
}
