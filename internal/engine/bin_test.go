package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binConfig(w, h, padding float64, opts model.Options) model.PackerConfig {
	return model.PackerConfig{MaxWidth: w, MaxHeight: h, Padding: padding, Options: opts}
}

func TestBin_PlaceFirstRectAtOrigin(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 0, model.Options{}))

	placed, ok := b.add(model.NewRectangle(100, 50, 1))
	require.True(t, ok)
	assert.Equal(t, 0.0, placed.X)
	assert.Equal(t, 0.0, placed.Y)
	assert.False(t, placed.Rotated)

	assert.Equal(t, []model.Rect{
		{X: 0, Y: 50, Width: 1024, Height: 974},
		{X: 100, Y: 0, Width: 924, Height: 1024},
	}, b.FreeRects())
	assert.Equal(t, 1024.0, b.Width(), "non-smart bins report their full size")
}

func TestBin_NoFitLeavesStateUntouched(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 0, model.Options{}))
	_, ok := b.add(model.NewRectangle(1000, 1000, 1))
	require.True(t, ok)
	before := b.FreeRects()

	_, ok = b.add(model.NewRectangle(100, 100, 2))
	assert.False(t, ok)
	assert.Equal(t, before, b.FreeRects())
	assert.Len(t, b.Rects(), 1)
}

func TestBin_BestAreaFitPicksTightestHole(t *testing.T) {
	b := newBin[int](binConfig(100, 100, 0, model.Options{}))
	b.freeRects = []model.Rect{
		{X: 0, Y: 0, Width: 50, Height: 50},
		{X: 60, Y: 0, Width: 20, Height: 20},
		{X: 0, Y: 60, Width: 30, Height: 30},
	}

	placed, ok := b.add(model.NewRectangle(20, 20, 1))
	require.True(t, ok)
	assert.Equal(t, 60.0, placed.X)
	assert.Equal(t, 0.0, placed.Y)
}

func TestBin_ShortSideBreaksAreaTie(t *testing.T) {
	b := newBin[int](binConfig(100, 100, 0, model.Options{}))
	// Both holes leave 200 units of area; the second one is an exact fit
	// along its width.
	b.freeRects = []model.Rect{
		{X: 0, Y: 0, Width: 25, Height: 16},
		{X: 50, Y: 50, Width: 20, Height: 20},
	}

	placed, ok := b.add(model.NewRectangle(20, 10, 1))
	require.True(t, ok)
	assert.Equal(t, 50.0, placed.X)
	assert.Equal(t, 50.0, placed.Y)
}

func TestBin_RotationWhenOnlyRotatedFits(t *testing.T) {
	b := newBin[int](binConfig(100, 100, 0, model.Options{AllowRotation: true}))
	_, ok := b.add(model.NewRectangle(100, 40, 1))
	require.True(t, ok)

	placed, ok := b.add(model.NewRectangle(60, 100, 2))
	require.True(t, ok)
	assert.True(t, placed.Rotated)
	assert.Equal(t, 100.0, placed.Width)
	assert.Equal(t, 60.0, placed.Height)
	assert.Equal(t, 40.0, placed.Y)
	assert.Equal(t, 60.0, placed.RequestedWidth())
}

func TestBin_RotationDisabled(t *testing.T) {
	b := newBin[int](binConfig(100, 100, 0, model.Options{}))
	_, ok := b.add(model.NewRectangle(100, 40, 1))
	require.True(t, ok)

	_, ok = b.add(model.NewRectangle(60, 100, 2))
	assert.False(t, ok)
}

func TestBin_SmartTrim(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 0, model.Options{Smart: true}))
	assert.Equal(t, 0.0, b.Width())
	assert.Equal(t, 0.0, b.Height())

	_, ok := b.add(model.NewRectangle(300, 200, 1))
	require.True(t, ok)
	assert.Equal(t, 300.0, b.Width())
	assert.Equal(t, 200.0, b.Height())
}

func TestBin_SmartPowerOfTwo(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 0, model.Options{Smart: true, Pot: true}))
	_, ok := b.add(model.NewRectangle(300, 200, 1))
	require.True(t, ok)
	assert.Equal(t, 512.0, b.Width())
	assert.Equal(t, 256.0, b.Height())
}

func TestBin_SmartSquare(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 0, model.Options{Smart: true, Pot: true, Square: true}))
	_, ok := b.add(model.NewRectangle(300, 200, 1))
	require.True(t, ok)
	assert.Equal(t, 512.0, b.Width())
	assert.Equal(t, 512.0, b.Height())
}

func TestBin_RoundedSizeClampedToBounds(t *testing.T) {
	b := newBin[int](binConfig(600, 600, 0, model.Options{Smart: true, Pot: true}))
	_, ok := b.add(model.NewRectangle(550, 10, 1))
	require.True(t, ok)
	assert.Equal(t, 600.0, b.Width())
	assert.Equal(t, 16.0, b.Height())
}

func TestBin_SmartTrimIgnoresTrailingPadding(t *testing.T) {
	b := newBin[int](binConfig(1024, 1024, 4, model.Options{Smart: true}))
	_, ok := b.add(model.NewRectangle(500, 500, 1))
	require.True(t, ok)
	assert.Equal(t, 500.0, b.Width())
}

func TestBin_OversizedRejectsEverything(t *testing.T) {
	b := newOversizedBin(model.NewRectangle(2000, 3000, 1), model.Options{})
	assert.True(t, b.Oversized())
	assert.Equal(t, 2000.0, b.Width())
	assert.Equal(t, 3000.0, b.Height())
	require.Len(t, b.Rects(), 1)
	assert.True(t, b.Rects()[0].Oversized)
	assert.Empty(t, b.FreeRects())

	_, ok := b.add(model.NewRectangle(1, 1, 2))
	assert.False(t, ok)
}

func TestSplitFreeRect_CenteredHole(t *testing.T) {
	fr := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	used := model.Rect{X: 25, Y: 25, Width: 50, Height: 50}

	got := splitFreeRect(fr, used)
	assert.Equal(t, []model.Rect{
		{X: 0, Y: 0, Width: 100, Height: 25},
		{X: 0, Y: 75, Width: 100, Height: 25},
		{X: 0, Y: 0, Width: 25, Height: 100},
		{X: 75, Y: 0, Width: 25, Height: 100},
	}, got)
}

func TestSplitFreeRect_FullyCovered(t *testing.T) {
	fr := model.Rect{X: 10, Y: 10, Width: 10, Height: 10}
	used := model.Rect{X: 0, Y: 0, Width: 50, Height: 50}
	assert.Empty(t, splitFreeRect(fr, used))
}

func TestPruneFreeRects(t *testing.T) {
	b := &Bin[int]{freeRects: []model.Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 10, Y: 10, Width: 10, Height: 10},
		{X: 0, Y: 0, Width: 0, Height: 50},
		{X: 200, Y: 0, Width: 50, Height: 50},
		{X: 200, Y: 0, Width: 50, Height: 50},
	}}
	b.pruneFreeRects()
	assert.Equal(t, []model.Rect{
		{X: 0, Y: 0, Width: 100, Height: 100},
		{X: 200, Y: 0, Width: 50, Height: 50},
	}, b.freeRects)
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[float64]float64{
		0.5:  1,
		1:    1,
		2:    2,
		3:    4,
		300:  512,
		512:  512,
		1004: 1024,
	}
	for in, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(in), "nextPowerOfTwo(%g)", in)
	}
}
