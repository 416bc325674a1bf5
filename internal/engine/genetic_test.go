package engine

import (
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallGeneticConfig() GeneticConfig {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 8
	cfg.Generations = 5
	return cfg
}

func TestSearchOrder_NeverWorseThanGreedy(t *testing.T) {
	cfg := model.PackerConfig{MaxWidth: 512, MaxHeight: 512, Padding: 1, Options: testOptions()}
	rects := randomRects(5, 40)

	greedy, err := NewWithConfig[item](cfg)
	require.NoError(t, err)
	_, err = greedy.AddArray(rects)
	require.NoError(t, err)

	best, err := SearchOrder(cfg, rects, smallGeneticConfig())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(best.Bins()), len(greedy.Bins()))
	assert.Len(t, best.Rects(), len(rects))
	assertPackingInvariants(t, best)
}

func TestSearchOrder_Deterministic(t *testing.T) {
	cfg := model.PackerConfig{MaxWidth: 512, MaxHeight: 512, Options: testOptions()}
	rects := randomRects(6, 30)

	a, err := SearchOrder(cfg, rects, smallGeneticConfig())
	require.NoError(t, err)
	b, err := SearchOrder(cfg, rects, smallGeneticConfig())
	require.NoError(t, err)
	assert.Equal(t, a.Rects(), b.Rects())
}

func TestSearchOrder_Validates(t *testing.T) {
	cfg := model.PackerConfig{MaxWidth: 512, MaxHeight: 512, Options: testOptions()}

	_, err := SearchOrder(cfg, []model.Rectangle[item]{model.NewRectangle(0, 5, item{})}, smallGeneticConfig())
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = SearchOrder(model.PackerConfig{}, randomRects(1, 3), smallGeneticConfig())
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestSearchOrder_SingleRect(t *testing.T) {
	cfg := model.PackerConfig{MaxWidth: 512, MaxHeight: 512, Options: testOptions()}
	p, err := SearchOrder(cfg, randomRects(2, 1), smallGeneticConfig())
	require.NoError(t, err)
	assert.Len(t, p.Rects(), 1)
}
