package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ComparisonScenario defines a named packer configuration to compare.
type ComparisonScenario struct {
	Name   string
	Config model.PackerConfig
}

// ComparisonResult holds the packing outcome and computed statistics for a
// single scenario.
type ComparisonResult[T any] struct {
	Scenario       ComparisonScenario
	Snapshot       model.Snapshot[T]
	BinsUsed       int
	OversizedCount int
	Efficiency     float64 // Used area over reported area, across regular bins
	Err            error
}

// CompareScenarios packs the same input once per scenario and returns the
// results in scenario order. This enables side-by-side comparison of
// options such as rotation, sort logic and padding.
func CompareScenarios[T any](scenarios []ComparisonScenario, rects []model.Rectangle[T]) []ComparisonResult[T] {
	results := make([]ComparisonResult[T], 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComparisonResult[T]{Scenario: scenario}
		p, err := NewWithConfig[T](scenario.Config)
		if err == nil {
			_, err = p.AddArray(rects)
		}
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Snapshot = p.Save()
		res.BinsUsed = len(p.bins)
		res.OversizedCount, res.Efficiency = binStats(p.bins)
		results = append(results, res)
	}

	return results
}

// binStats counts oversized bins and computes the overall efficiency of
// the regular ones.
func binStats[T any](bins []*Bin[T]) (int, float64) {
	oversized := 0
	var used, total float64
	for _, b := range bins {
		if b.oversized {
			oversized++
			continue
		}
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return oversized, 0
	}
	return oversized, used / total * 100.0
}

// BuildDefaultScenarios generates what-if alternatives around base: the
// opposite rotation setting, the other sort logic and, when padding is
// set, no padding.
func BuildDefaultScenarios(base model.PackerConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Config: base,
		},
	}

	rot := base
	rot.Options.AllowRotation = !base.Options.AllowRotation
	name := "Rotation Enabled"
	if base.Options.AllowRotation {
		name = "Rotation Disabled"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Config: rot})

	logic := base
	if base.Options.Logic == model.LogicMaxEdge {
		logic.Options.Logic = model.LogicMaxArea
		name = "Sort by Area"
	} else {
		logic.Options.Logic = model.LogicMaxEdge
		name = "Sort by Longest Edge"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Config: logic})

	if base.Padding > 0 {
		noPad := base
		noPad.Padding = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Padding 0 (was %g)", base.Padding),
			Config: noPad,
		})
	}

	return scenarios
}
