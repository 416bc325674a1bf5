package model

import "sort"

// Headroom is an empty strip of a bin, between its content and its maximum
// bounds, that is large enough to take more sprites.
type Headroom struct {
	BinIndex int     `json:"bin_index"`
	BinID    string  `json:"bin_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Area returns width x height.
func (h Headroom) Area() float64 {
	return h.Width * h.Height
}

// DetectHeadroom finds the strips to the right of and below the content of
// a bin. Strips narrower than minDim on either side are ignored. Oversized
// bins never have headroom.
func DetectHeadroom[T any](bs BinSnapshot[T], binIndex int, minDim float64) []Headroom {
	if bs.Oversized {
		return nil
	}
	if len(bs.Rects) == 0 {
		return []Headroom{{BinIndex: binIndex, BinID: bs.ID, Width: bs.MaxWidth, Height: bs.MaxHeight}}
	}

	// Bounding box of the content, padding included
	var right, bottom float64
	for _, r := range bs.Rects {
		right = max(right, r.X+r.Width+bs.Padding)
		bottom = max(bottom, r.Y+r.Height+bs.Padding)
	}

	var out []Headroom

	// Right strip covers the full height
	if w := bs.MaxWidth - right; w >= minDim && bs.MaxHeight >= minDim && w > 0 {
		out = append(out, Headroom{BinIndex: binIndex, BinID: bs.ID, X: right, Width: w, Height: bs.MaxHeight})
	}

	// Bottom strip stops where the right strip begins
	usableW := min(right, bs.MaxWidth)
	if h := bs.MaxHeight - bottom; h >= minDim && usableW >= minDim && h > 0 {
		out = append(out, Headroom{BinIndex: binIndex, BinID: bs.ID, Y: bottom, Width: usableW, Height: h})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})
	return out
}

// DetectAllHeadroom collects the headroom of every bin in a snapshot.
func DetectAllHeadroom[T any](snap Snapshot[T], minDim float64) []Headroom {
	var all []Headroom
	for i, bs := range snap.Bins {
		all = append(all, DetectHeadroom(bs, i, minDim)...)
	}
	return all
}

// TotalHeadroomArea sums the area of the given strips.
func TotalHeadroomArea(strips []Headroom) float64 {
	var total float64
	for _, h := range strips {
		total += h.Area()
	}
	return total
}
