package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(rects []model.Rectangle[item]) [][2]float64 {
	out := make([][2]float64, len(rects))
	for i, r := range rects {
		out[i] = [2]float64{r.Width, r.Height}
	}
	return out
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	p := newTestPacker(t, 0, testOptions())
	input := []model.Rectangle[item]{
		model.NewRectangle(1, 1, item{}),
		model.NewRectangle(2, 2, item{}),
	}
	out := p.Sort(input)
	assert.Equal(t, 1.0, input[0].Width)
	assert.Equal(t, 2.0, out[0].Width)
}

func TestSort_ByArea(t *testing.T) {
	input := []model.Rectangle[item]{
		model.NewRectangle(1, 1, item{}),
		model.NewRectangle(3, 1, item{}),
		model.NewRectangle(2, 2, item{}),
	}
	out := SortRects(input, model.LogicMaxArea)
	assert.Equal(t, [][2]float64{{2, 2}, {3, 1}, {1, 1}}, sizes(out))
}

func TestSort_ByLongestEdge(t *testing.T) {
	input := []model.Rectangle[item]{
		model.NewRectangle(1, 1, item{}),
		model.NewRectangle(3, 1, item{}),
		model.NewRectangle(2, 2, item{}),
	}
	out := SortRects(input, model.LogicMaxEdge)
	assert.Equal(t, [][2]float64{{3, 1}, {2, 2}, {1, 1}}, sizes(out))
}

func TestSort_HashTieBreak(t *testing.T) {
	rect := func(n int, hash string) model.Rectangle[item] {
		r := model.NewRectangle(4, 4, item{Number: n})
		r.Hash = hash
		return r
	}
	input := []model.Rectangle[item]{
		rect(1, ""),
		rect(2, "aaa"),
		rect(3, "ccc"),
		rect(4, ""),
		rect(5, "bbb"),
	}
	big := model.NewRectangle(5, 5, item{Number: 6})
	input = append(input, big)

	out := SortRects(input, model.LogicMaxArea)
	var numbers []int
	for _, r := range out {
		numbers = append(numbers, r.Data.Number)
	}
	assert.Equal(t, []int{6, 3, 5, 2, 1, 4}, numbers, "hashless items keep their input order at the end")
}

func TestSort_NonIncreasingArea(t *testing.T) {
	out := SortRects(randomRects(9, 200), model.LogicMaxArea)
	require.Len(t, out, 200)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Area(), out[i].Area())
	}
}

func TestSort_Empty(t *testing.T) {
	out := SortRects[item](nil, model.LogicMaxArea)
	assert.Empty(t, out)
}
