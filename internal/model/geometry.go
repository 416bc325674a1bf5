package model

// Rect is an axis-aligned rectangle. Bins use it for their free-space list
// and for the footprint of placed rectangles.
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x" cbor:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y" cbor:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width" cbor:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height" cbor:"height"`
}

// Area returns width x height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Degenerate reports whether the rectangle has no area.
func (r Rect) Degenerate() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Collides returns true if the two rectangles overlap (touching edges do not count).
func (r Rect) Collides(o Rect) bool {
	return !(o.X >= r.Right() || o.Right() <= r.X ||
		o.Y >= r.Bottom() || o.Bottom() <= r.Y)
}

// Contains returns true if o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}
