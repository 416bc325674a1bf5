package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Save captures the bin sequence, including free space, so that packing can
// be resumed later with Load. The snapshot shares no memory with the packer.
func (p *Packer[T]) Save() model.Snapshot[T] {
	snap := model.Snapshot[T]{Bins: make([]model.BinSnapshot[T], 0, len(p.bins))}
	for _, b := range p.bins {
		snap.Bins = append(snap.Bins, model.BinSnapshot[T]{
			ID:        b.id,
			MaxWidth:  b.maxWidth,
			MaxHeight: b.maxHeight,
			Width:     b.width,
			Height:    b.height,
			Padding:   b.padding,
			Tag:       b.tag,
			Oversized: b.oversized,
			Options:   b.options,
			FreeRects: b.FreeRects(),
			Rects:     b.Rects(),
		})
	}
	return snap
}

// Load replaces the bin sequence with the one recorded in snap and reopens
// every bin (the cursor returns to 0). A snapshot that fails validation is
// rejected as a whole and the packer is left unchanged.
func (p *Packer[T]) Load(snap model.Snapshot[T]) error {
	bins := make([]*Bin[T], 0, len(snap.Bins))
	for i, bs := range snap.Bins {
		if err := validateBinSnapshot(bs); err != nil {
			return fmt.Errorf("bin %d: %w", i, err)
		}
		b := &Bin[T]{
			id:        bs.ID,
			maxWidth:  bs.MaxWidth,
			maxHeight: bs.MaxHeight,
			width:     bs.Width,
			height:    bs.Height,
			padding:   bs.Padding,
			tag:       bs.Tag,
			oversized: bs.Oversized,
			options:   bs.Options,
			freeRects: make([]model.Rect, len(bs.FreeRects)),
			rects:     make([]model.Rectangle[T], len(bs.Rects)),
		}
		copy(b.freeRects, bs.FreeRects)
		copy(b.rects, bs.Rects)
		if b.id == "" {
			b.id = fmt.Sprintf("bin-%d", i)
		}
		bins = append(bins, b)
	}
	p.bins = bins
	p.cursor = 0
	return nil
}

// LoadAt is Load with the cursor placed at cursor instead of 0, so bins
// that were closed when snap was taken stay closed.
func (p *Packer[T]) LoadAt(snap model.Snapshot[T], cursor int) error {
	if cursor < 0 || cursor > len(snap.Bins) {
		return fmt.Errorf("%w: cursor %d outside 0..%d", ErrInvalidSnapshot, cursor, len(snap.Bins))
	}
	if err := p.Load(snap); err != nil {
		return err
	}
	p.cursor = cursor
	return nil
}

// overlapTolerance absorbs the rounding of edges computed by addition and
// subtraction during splits.
const overlapTolerance = 1e-9

// within reports whether inner lies inside outer, up to rounding.
func within(outer, inner model.Rect) bool {
	return inner.X >= outer.X-overlapTolerance && inner.Y >= outer.Y-overlapTolerance &&
		inner.Right() <= outer.Right()+overlapTolerance && inner.Bottom() <= outer.Bottom()+overlapTolerance
}

// overlaps reports whether a and b share more than a rounding-sized area.
func overlaps(a, b model.Rect) bool {
	return a.Right()-b.X > overlapTolerance && b.Right()-a.X > overlapTolerance &&
		a.Bottom()-b.Y > overlapTolerance && b.Bottom()-a.Y > overlapTolerance
}

func validateBinSnapshot[T any](bs model.BinSnapshot[T]) error {
	if !(bs.MaxWidth > 0) || !(bs.MaxHeight > 0) {
		return fmt.Errorf("%w: bounds %gx%g must be positive", ErrInvalidSnapshot, bs.MaxWidth, bs.MaxHeight)
	}
	if math.IsInf(bs.MaxWidth, 0) || math.IsInf(bs.MaxHeight, 0) {
		return fmt.Errorf("%w: bounds %gx%g must be finite", ErrInvalidSnapshot, bs.MaxWidth, bs.MaxHeight)
	}
	if !(bs.Padding >= 0) || math.IsInf(bs.Padding, 0) {
		return fmt.Errorf("%w: padding %g must be finite and not negative", ErrInvalidSnapshot, bs.Padding)
	}
	if bs.Width < 0 || bs.Height < 0 || bs.Width > bs.MaxWidth || bs.Height > bs.MaxHeight {
		return fmt.Errorf("%w: reported size %gx%g outside bounds %gx%g",
			ErrInvalidSnapshot, bs.Width, bs.Height, bs.MaxWidth, bs.MaxHeight)
	}
	if bs.Oversized && (len(bs.Rects) != 1 || len(bs.FreeRects) != 0) {
		return fmt.Errorf("%w: oversized bin must hold exactly one rectangle and no free space", ErrInvalidSnapshot)
	}

	// The free list may extend past the bounds by the trailing padding.
	limit := model.Rect{Width: bs.MaxWidth + bs.Padding, Height: bs.MaxHeight + bs.Padding}
	for j, fr := range bs.FreeRects {
		if fr.Degenerate() || !within(limit, fr) {
			return fmt.Errorf("%w: free rectangle %d (%g,%g %gx%g) outside bin",
				ErrInvalidSnapshot, j, fr.X, fr.Y, fr.Width, fr.Height)
		}
	}

	bounds := model.Rect{Width: bs.MaxWidth, Height: bs.MaxHeight}
	for j, r := range bs.Rects {
		fp := r.Footprint()
		if fp.Degenerate() || !within(bounds, fp) {
			return fmt.Errorf("%w: rectangle %d (%g,%g %gx%g) outside bin",
				ErrInvalidSnapshot, j, r.X, r.Y, r.Width, r.Height)
		}
		if r.Oversized != bs.Oversized {
			return fmt.Errorf("%w: rectangle %d oversized flag does not match its bin", ErrInvalidSnapshot, j)
		}
		for k, o := range bs.Rects[:j] {
			if overlaps(fp, o.Footprint()) {
				return fmt.Errorf("%w: rectangle %d overlaps rectangle %d", ErrInvalidSnapshot, j, k)
			}
		}
		for k, fr := range bs.FreeRects {
			if overlaps(fp, fr) {
				return fmt.Errorf("%w: rectangle %d overlaps free rectangle %d", ErrInvalidSnapshot, j, k)
			}
		}
	}
	return nil
}
