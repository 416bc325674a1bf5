// Package engine implements the MaxRects bin packer: a free-rectangle
// engine per bin and an orchestrator that routes rectangles across bins.
package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Packer distributes rectangles over a growing sequence of bins.
// Bins before the cursor are closed; new rectangles only go into bins at or
// after it. A Packer is not safe for concurrent use.
type Packer[T any] struct {
	config model.PackerConfig
	bins   []*Bin[T]
	cursor int
}

// New creates a packer whose bins are at most width x height, with padding
// kept between placed rectangles.
func New[T any](width, height, padding float64, opts model.Options) (*Packer[T], error) {
	return NewWithConfig[T](model.PackerConfig{
		MaxWidth:  width,
		MaxHeight: height,
		Padding:   padding,
		Options:   opts,
	})
}

// NewWithConfig creates a packer from a complete configuration value.
func NewWithConfig[T any](cfg model.PackerConfig) (*Packer[T], error) {
	if !positive(cfg.MaxWidth) || !positive(cfg.MaxHeight) {
		return nil, fmt.Errorf("%w: bin size %gx%g must be positive and finite", ErrInvalidDimension, cfg.MaxWidth, cfg.MaxHeight)
	}
	if !(cfg.Padding >= 0) || math.IsInf(cfg.Padding, 0) {
		return nil, fmt.Errorf("%w: padding %g must be finite and not negative", ErrInvalidDimension, cfg.Padding)
	}
	if cfg.Options.Logic == "" {
		cfg.Options.Logic = model.LogicMaxArea
	}
	return &Packer[T]{config: cfg}, nil
}

// Config returns the configuration the packer was created with.
func (p *Packer[T]) Config() model.PackerConfig { return p.config }

// Options returns the packing options.
func (p *Packer[T]) Options() model.Options { return p.config.Options }

// Bins returns the bin sequence. The slice is a copy; the bins are shared
// and must be treated as read-only.
func (p *Packer[T]) Bins() []*Bin[T] {
	out := make([]*Bin[T], len(p.bins))
	copy(out, p.bins)
	return out
}

// Cursor returns the index of the first bin still open for insertion.
func (p *Packer[T]) Cursor() int { return p.cursor }

// Rects returns every placed rectangle, bin by bin.
func (p *Packer[T]) Rects() []model.Rectangle[T] {
	var out []model.Rectangle[T]
	for _, b := range p.bins {
		out = append(out, b.rects...)
	}
	return out
}

// Reset discards all bins and starts a new packer lifetime: the cursor
// returns to 0 because no bins are left to keep closed.
func (p *Packer[T]) Reset() {
	p.bins = nil
	p.cursor = 0
}

// Add packs a width x height rectangle carrying data. The tag and hash are
// taken from data when it implements model.Tagger or model.Hasher.
func (p *Packer[T]) Add(width, height float64, data T) (model.Rectangle[T], error) {
	return p.AddRect(model.NewRectangle(width, height, data))
}

// AddRect packs r and returns it with its final position. Any position or
// rotation already set on r is ignored.
func (p *Packer[T]) AddRect(r model.Rectangle[T]) (model.Rectangle[T], error) {
	if err := validateRequest(r); err != nil {
		return r, err
	}
	r.X, r.Y = 0, 0
	r.Rotated, r.Oversized = false, false

	if r.Width > p.config.MaxWidth || r.Height > p.config.MaxHeight {
		bin := newOversizedBin(r, p.config.Options)
		p.bins = append(p.bins, bin)
		return bin.rects[0], nil
	}

	for _, bin := range p.bins[p.cursor:] {
		if !p.eligible(bin, r) {
			continue
		}
		if placed, ok := bin.add(r); ok {
			return placed, nil
		}
	}

	bin := newBin[T](p.config)
	if p.config.Options.Tag {
		bin.tag = r.Tag
	}
	placed, ok := bin.add(r)
	if !ok {
		// A fresh bin always has room for anything within the bounds.
		return r, fmt.Errorf("%w: %gx%g does not fit an empty %gx%g bin",
			ErrInvalidDimension, r.Width, r.Height, p.config.MaxWidth, p.config.MaxHeight)
	}
	p.bins = append(p.bins, bin)
	return placed, nil
}

// eligible reports whether bin may receive r under the routing policy.
func (p *Packer[T]) eligible(bin *Bin[T], r model.Rectangle[T]) bool {
	if bin.oversized {
		return false
	}
	if !p.config.Options.Tag {
		return true
	}
	return bin.tag == r.Tag
}

// AddArray sorts a copy of rects with the packer's sort logic and adds them
// in that order. Every element is validated first; on error no rectangle
// is added.
func (p *Packer[T]) AddArray(rects []model.Rectangle[T]) ([]model.Rectangle[T], error) {
	return p.AddSequence(p.Sort(rects))
}

// AddSequence adds rects in the given order without sorting. Every element
// is validated first; on error no rectangle is added.
func (p *Packer[T]) AddSequence(rects []model.Rectangle[T]) ([]model.Rectangle[T], error) {
	for i, r := range rects {
		if err := validateRequest(r); err != nil {
			return nil, fmt.Errorf("rectangle %d: %w", i, err)
		}
	}
	placed := make([]model.Rectangle[T], 0, len(rects))
	for _, r := range rects {
		pr, err := p.AddRect(r)
		if err != nil {
			return placed, err
		}
		placed = append(placed, pr)
	}
	return placed, nil
}

// Sort returns a sorted copy of rects using the packer's sort logic.
func (p *Packer[T]) Sort(rects []model.Rectangle[T]) []model.Rectangle[T] {
	return SortRects(rects, p.config.Options.Logic)
}

// Next closes every existing bin. Subsequent rectangles go into new bins.
// It returns the new cursor.
func (p *Packer[T]) Next() int {
	p.cursor = len(p.bins)
	return p.cursor
}

func validateRequest[T any](r model.Rectangle[T]) error {
	if !positive(r.Width) || !positive(r.Height) {
		return fmt.Errorf("%w: rectangle %gx%g must have positive, finite size", ErrInvalidDimension, r.Width, r.Height)
	}
	return nil
}

// positive rejects zero, negative, NaN and infinite values.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
