package engine

import (
	"math"

	"github.com/google/uuid"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// Bin is one packing surface. It owns its free-space list and the
// rectangles placed into it; both are only changed through the packer.
type Bin[T any] struct {
	id        string
	maxWidth  float64
	maxHeight float64
	width     float64
	height    float64
	padding   float64
	tag       string
	oversized bool
	options   model.Options
	freeRects []model.Rect
	rects     []model.Rectangle[T]
}

// newBin opens an empty bin. The single initial free rectangle is enlarged
// by the padding so that the trailing gap of the last item on a row may run
// past the bin edge.
func newBin[T any](cfg model.PackerConfig) *Bin[T] {
	b := &Bin[T]{
		id:        uuid.New().String()[:8],
		maxWidth:  cfg.MaxWidth,
		maxHeight: cfg.MaxHeight,
		width:     cfg.MaxWidth,
		height:    cfg.MaxHeight,
		padding:   cfg.Padding,
		options:   cfg.Options,
		freeRects: []model.Rect{{
			X: 0, Y: 0,
			Width:  cfg.MaxWidth + cfg.Padding,
			Height: cfg.MaxHeight + cfg.Padding,
		}},
	}
	if cfg.Options.Smart {
		b.width, b.height = 0, 0
	}
	return b
}

// newOversizedBin wraps a single rectangle that exceeds the packer bounds.
// The bin is sized to the rectangle and never accepts anything else.
func newOversizedBin[T any](r model.Rectangle[T], opts model.Options) *Bin[T] {
	r.X, r.Y = 0, 0
	r.Rotated = false
	r.Oversized = true
	b := &Bin[T]{
		id:        uuid.New().String()[:8],
		maxWidth:  r.Width,
		maxHeight: r.Height,
		width:     r.Width,
		height:    r.Height,
		oversized: true,
		options:   opts,
		rects:     []model.Rectangle[T]{r},
	}
	if opts.Tag {
		b.tag = r.Tag
	}
	return b
}

// ID returns the bin's short identifier.
func (b *Bin[T]) ID() string { return b.id }

// Width returns the reported width (trimmed when smart sizing is on).
func (b *Bin[T]) Width() float64 { return b.width }

// Height returns the reported height (trimmed when smart sizing is on).
func (b *Bin[T]) Height() float64 { return b.height }

// MaxWidth returns the width limit the bin was opened with.
func (b *Bin[T]) MaxWidth() float64 { return b.maxWidth }

// MaxHeight returns the height limit the bin was opened with.
func (b *Bin[T]) MaxHeight() float64 { return b.maxHeight }

// Padding returns the gap kept after each placed rectangle.
func (b *Bin[T]) Padding() float64 { return b.padding }

// Tag returns the tag the bin is reserved for, or "" when tags are off.
func (b *Bin[T]) Tag() string { return b.tag }

// Oversized reports whether the bin wraps a single rectangle larger than
// the packer bounds.
func (b *Bin[T]) Oversized() bool { return b.oversized }

// Rects returns a copy of the placed rectangles in insertion order.
func (b *Bin[T]) Rects() []model.Rectangle[T] {
	out := make([]model.Rectangle[T], len(b.rects))
	copy(out, b.rects)
	return out
}

// FreeRects returns a copy of the current free-space list.
func (b *Bin[T]) FreeRects() []model.Rect {
	out := make([]model.Rect, len(b.freeRects))
	copy(out, b.freeRects)
	return out
}

// UsedArea returns the total area covered by placed rectangles.
func (b *Bin[T]) UsedArea() float64 {
	var total float64
	for _, r := range b.rects {
		total += r.Area()
	}
	return total
}

// TotalArea returns the reported bin area.
func (b *Bin[T]) TotalArea() float64 {
	return b.width * b.height
}

// Efficiency returns the usage percentage of the reported bin area.
func (b *Bin[T]) Efficiency() float64 {
	ta := b.TotalArea()
	if ta == 0 {
		return 0
	}
	return (b.UsedArea() / ta) * 100.0
}

// add places r into the bin and records it. It returns the placed
// rectangle and false when nothing in the free list can hold it.
func (b *Bin[T]) add(r model.Rectangle[T]) (model.Rectangle[T], bool) {
	placed, ok := b.place(r)
	if !ok {
		return r, false
	}
	b.rects = append(b.rects, placed)
	return placed, true
}

// place finds a position for r using best-area-fit, updates the free list
// and the reported size. The rectangle is not recorded.
func (b *Bin[T]) place(r model.Rectangle[T]) (model.Rectangle[T], bool) {
	if b.oversized {
		return r, false
	}
	node, rotated, ok := b.findNode(r.Width+b.padding, r.Height+b.padding)
	if !ok {
		return r, false
	}

	b.splitFreeRects(node)
	b.pruneFreeRects()

	r.X, r.Y = node.X, node.Y
	r.Rotated = rotated
	r.Oversized = false
	if rotated {
		r.Width, r.Height = r.Height, r.Width
	}
	b.updateSize(r)
	return r, true
}

// findNode scans the free list for the candidate with the smallest leftover
// area, breaking ties on the shorter leftover side. The returned node is the
// padded footprint at the candidate origin.
func (b *Bin[T]) findNode(w, h float64) (model.Rect, bool, bool) {
	var best model.Rect
	bestArea := math.MaxFloat64
	bestSide := math.MaxFloat64
	bestRotated := false
	found := false

	try := func(fr model.Rect, w, h float64, rotated bool) {
		if fr.Width < w || fr.Height < h {
			return
		}
		areaFit := fr.Area() - w*h
		sideFit := math.Min(fr.Width-w, fr.Height-h)
		if areaFit < bestArea || (areaFit == bestArea && sideFit < bestSide) {
			best = model.Rect{X: fr.X, Y: fr.Y, Width: w, Height: h}
			bestArea, bestSide = areaFit, sideFit
			bestRotated = rotated
			found = true
		}
	}

	for _, fr := range b.freeRects {
		try(fr, w, h, false)
		if b.options.AllowRotation && w != h {
			try(fr, h, w, true)
		}
	}
	return best, bestRotated, found
}

// splitFreeRects rebuilds the free list around a newly used region.
// Every free rectangle that collides with used is replaced by the maximal
// slivers above, below, left and right of it.
func (b *Bin[T]) splitFreeRects(used model.Rect) {
	next := make([]model.Rect, 0, len(b.freeRects)+4)
	for _, fr := range b.freeRects {
		if !fr.Collides(used) {
			next = append(next, fr)
			continue
		}
		next = append(next, splitFreeRect(fr, used)...)
	}
	b.freeRects = next
}

// splitFreeRect returns the parts of fr not covered by used.
// The caller guarantees that the two rectangles collide.
func splitFreeRect(fr, used model.Rect) []model.Rect {
	var out []model.Rect

	// Vertical split: slivers above and below span the full free width.
	if used.X < fr.Right() && used.Right() > fr.X {
		if used.Y > fr.Y && used.Y < fr.Bottom() {
			out = append(out, model.Rect{
				X: fr.X, Y: fr.Y,
				Width: fr.Width, Height: used.Y - fr.Y,
			})
		}
		if used.Bottom() < fr.Bottom() {
			out = append(out, model.Rect{
				X: fr.X, Y: used.Bottom(),
				Width: fr.Width, Height: fr.Bottom() - used.Bottom(),
			})
		}
	}

	// Horizontal split: slivers left and right span the full free height.
	if used.Y < fr.Bottom() && used.Bottom() > fr.Y {
		if used.X > fr.X && used.X < fr.Right() {
			out = append(out, model.Rect{
				X: fr.X, Y: fr.Y,
				Width: used.X - fr.X, Height: fr.Height,
			})
		}
		if used.Right() < fr.Right() {
			out = append(out, model.Rect{
				X: used.Right(), Y: fr.Y,
				Width: fr.Right() - used.Right(), Height: fr.Height,
			})
		}
	}
	return out
}

// pruneFreeRects drops degenerate rectangles and every rectangle fully
// contained in another. Of two identical rectangles the earlier one is kept.
func (b *Bin[T]) pruneFreeRects() {
	rects := make([]model.Rect, 0, len(b.freeRects))
	for _, r := range b.freeRects {
		if !r.Degenerate() {
			rects = append(rects, r)
		}
	}

	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, o := range rects {
			if i == j || !o.Contains(a) {
				continue
			}
			if a == o && i < j {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	b.freeRects = kept
}

// updateSize recomputes the reported size after a placement when smart
// sizing is on. Trailing padding is not counted.
func (b *Bin[T]) updateSize(placed model.Rectangle[T]) {
	if !b.options.Smart {
		return
	}
	w := math.Max(b.width, placed.X+placed.Width)
	h := math.Max(b.height, placed.Y+placed.Height)
	b.width, b.height = b.roundSize(w, h)
}

// roundSize applies power-of-two and square rounding, then clamps to the
// bin bounds.
func (b *Bin[T]) roundSize(w, h float64) (float64, float64) {
	if b.options.Pot {
		w = nextPowerOfTwo(w)
		h = nextPowerOfTwo(h)
	}
	if b.options.Square {
		w = math.Max(w, h)
		h = w
	}
	return math.Min(w, b.maxWidth), math.Min(h, b.maxHeight)
}

// nextPowerOfTwo returns the smallest power of two >= v (v > 0).
func nextPowerOfTwo(v float64) float64 {
	if v <= 1 {
		return 1
	}
	return math.Pow(2, math.Ceil(math.Log2(v)))
}
