package model

import "math"

// BinEstimate holds an area-based lower bound on the number of bins a
// set of sprites needs.
type BinEstimate struct {
	TotalSpriteArea float64 `json:"total_sprite_area"` // Sum of padded sprite areas
	BinArea         float64 `json:"bin_area"`          // Area of one full-size bin
	BinsNeededExact float64 `json:"bins_needed_exact"` // Fractional number of bins
	BinsNeededMin   int     `json:"bins_needed_min"`   // Ceiling of the exact value
	OversizedCount  int     `json:"oversized_count"`   // Sprites that exceed the bin bounds
	Padding         float64 `json:"padding"`
}

// EstimateBins computes the minimum number of bins needed for a sprite list
// if packing were perfect. Oversized sprites get a bin each and are
// excluded from the area total.
func EstimateBins(sprites []Sprite, cfg PackerConfig) BinEstimate {
	est := BinEstimate{Padding: cfg.Padding}
	for _, s := range sprites {
		if s.Width > cfg.MaxWidth || s.Height > cfg.MaxHeight {
			est.OversizedCount += s.Quantity
			continue
		}
		est.TotalSpriteArea += (s.Width + cfg.Padding) * (s.Height + cfg.Padding) * float64(s.Quantity)
	}

	est.BinArea = (cfg.MaxWidth + cfg.Padding) * (cfg.MaxHeight + cfg.Padding)
	if est.BinArea <= 0 {
		est.BinsNeededMin = est.OversizedCount
		return est
	}
	est.BinsNeededExact = est.TotalSpriteArea / est.BinArea
	est.BinsNeededMin = int(math.Ceil(est.BinsNeededExact)) + est.OversizedCount
	return est
}
