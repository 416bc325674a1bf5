package model

// BinSnapshot captures everything needed to rebuild one bin: its bounds,
// reported size, free space and placed rectangles.
type BinSnapshot[T any] struct {
	ID        string         `json:"id" cbor:"id"`
	MaxWidth  float64        `json:"max_width" cbor:"max_width"`
	MaxHeight float64        `json:"max_height" cbor:"max_height"`
	Width     float64        `json:"width" cbor:"width"`
	Height    float64        `json:"height" cbor:"height"`
	Padding   float64        `json:"padding" cbor:"padding"`
	Tag       string         `json:"tag,omitempty" cbor:"tag,omitempty"`
	Oversized bool           `json:"oversized" cbor:"oversized"`
	Options   Options        `json:"options" cbor:"options"`
	FreeRects []Rect         `json:"free_rects" cbor:"free_rects"`
	Rects     []Rectangle[T] `json:"rects" cbor:"rects"`
}

// Snapshot is the saved state of a packer's bin sequence.
type Snapshot[T any] struct {
	Bins []BinSnapshot[T] `json:"bins" cbor:"bins"`
}

// RectCount returns the number of placed rectangles across all bins.
func (s Snapshot[T]) RectCount() int {
	n := 0
	for _, b := range s.Bins {
		n += len(b.Rects)
	}
	return n
}

// UsedArea returns the total area of the placed rectangles.
func (b BinSnapshot[T]) UsedArea() float64 {
	var total float64
	for _, r := range b.Rects {
		total += r.Area()
	}
	return total
}

// TotalArea returns the reported bin area.
func (b BinSnapshot[T]) TotalArea() float64 {
	return b.Width * b.Height
}

// Efficiency returns the usage percentage of the reported bin area.
func (b BinSnapshot[T]) Efficiency() float64 {
	ta := b.TotalArea()
	if ta == 0 {
		return 0
	}
	return (b.UsedArea() / ta) * 100.0
}

// OversizedCount returns the number of oversized bins.
func (s Snapshot[T]) OversizedCount() int {
	n := 0
	for _, b := range s.Bins {
		if b.Oversized {
			n++
		}
	}
	return n
}

// Efficiency returns the combined usage percentage of the regular bins.
// Oversized bins are always full and are left out.
func (s Snapshot[T]) Efficiency() float64 {
	var used, total float64
	for _, b := range s.Bins {
		if b.Oversized {
			continue
		}
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return used / total * 100.0
}
