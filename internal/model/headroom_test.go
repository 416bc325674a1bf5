package model

import "testing"

func TestDetectHeadroomEmptyBin(t *testing.T) {
	bs := BinSnapshot[int]{ID: "b", MaxWidth: 256, MaxHeight: 128}
	strips := DetectHeadroom(bs, 0, 8)
	if len(strips) != 1 {
		t.Fatalf("expected the whole bin as headroom, got %d strips", len(strips))
	}
	if strips[0].Width != 256 || strips[0].Height != 128 {
		t.Errorf("expected 256x128, got %.0fx%.0f", strips[0].Width, strips[0].Height)
	}
}

func TestDetectHeadroomStrips(t *testing.T) {
	bs := BinSnapshot[int]{
		ID:        "b",
		MaxWidth:  1024,
		MaxHeight: 1024,
		Padding:   4,
		Rects: []Rectangle[int]{
			{X: 0, Y: 0, Width: 300, Height: 200},
		},
	}
	strips := DetectHeadroom(bs, 2, 16)
	if len(strips) != 2 {
		t.Fatalf("expected right and bottom strips, got %d", len(strips))
	}

	right, bottom := strips[0], strips[1]
	if right.X != 304 || right.Width != 720 || right.Height != 1024 {
		t.Errorf("unexpected right strip %+v", right)
	}
	if bottom.Y != 204 || bottom.Width != 304 || bottom.Height != 820 {
		t.Errorf("unexpected bottom strip %+v", bottom)
	}
	if right.BinIndex != 2 || bottom.BinID != "b" {
		t.Error("strips should carry their bin index and id")
	}
	if TotalHeadroomArea(strips) != right.Area()+bottom.Area() {
		t.Error("total area mismatch")
	}
}

func TestDetectHeadroomIgnoresNarrowStrips(t *testing.T) {
	bs := BinSnapshot[int]{
		MaxWidth:  100,
		MaxHeight: 100,
		Rects:     []Rectangle[int]{{Width: 95, Height: 50}},
	}
	strips := DetectHeadroom(bs, 0, 10)
	if len(strips) != 1 || strips[0].Y != 50 {
		t.Errorf("expected only the bottom strip, got %+v", strips)
	}
}

func TestDetectAllHeadroomSkipsOversized(t *testing.T) {
	snap := Snapshot[int]{Bins: []BinSnapshot[int]{
		{MaxWidth: 10, MaxHeight: 10, Oversized: true, Rects: []Rectangle[int]{{Width: 20, Height: 5, Oversized: true}}},
		{MaxWidth: 10, MaxHeight: 10},
	}}
	strips := DetectAllHeadroom(snap, 1)
	if len(strips) != 1 || strips[0].BinIndex != 1 {
		t.Errorf("expected a single strip from bin 1, got %+v", strips)
	}
}
