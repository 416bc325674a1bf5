package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// SortRects returns a copy of rects ordered for insertion: largest first by
// the given logic, then by descending hash. Rectangles without a hash sort
// after those with one at equal size. The input is not modified and the
// sort is stable.
func SortRects[T any](rects []model.Rectangle[T], logic model.SortLogic) []model.Rectangle[T] {
	out := make([]model.Rectangle[T], len(rects))
	copy(out, rects)

	key := func(r model.Rectangle[T]) float64 {
		if logic == model.LogicMaxEdge {
			return math.Max(r.Width, r.Height)
		}
		return r.Area()
	}

	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(out[i]), key(out[j])
		if ki != kj {
			return ki > kj
		}
		hi, hj := out[i].Hash, out[j].Hash
		switch {
		case hi == hj:
			return false
		case hi == "":
			return false
		case hj == "":
			return true
		default:
			return hi > hj
		}
	})
	return out
}
