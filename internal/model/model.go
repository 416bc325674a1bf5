package model

// SortLogic selects the primary key used when ordering a batch of
// rectangles before insertion.
type SortLogic string

const (
	LogicMaxArea SortLogic = "max_area" // Descending width x height
	LogicMaxEdge SortLogic = "max_edge" // Descending longest side
)

// Options holds the packing switches shared by the packer and all of its bins.
type Options struct {
	// Smart trims bins to the bounding box of their content.
	Smart bool `json:"smart" yaml:"smart" toml:"smart" cbor:"smart"`
	// Pot rounds trimmed sizes up to a power of two.
	Pot bool `json:"pot" yaml:"pot" toml:"pot" cbor:"pot"`
	// Square forces width == height.
	Square bool `json:"square" yaml:"square" toml:"square" cbor:"square"`
	// AllowRotation tries the 90 degree orientation as well.
	AllowRotation bool `json:"allow_rotation" yaml:"allow_rotation" toml:"allow_rotation" cbor:"allow_rotation"`
	// Tag keeps one bin sequence per payload tag.
	Tag   bool      `json:"tag" yaml:"tag" toml:"tag" cbor:"tag"`
	Logic SortLogic `json:"logic,omitempty" yaml:"logic,omitempty" toml:"logic,omitempty" cbor:"logic,omitempty"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Smart:         true,
		Pot:           true,
		Square:        false,
		AllowRotation: false,
		Tag:           false,
		Logic:         LogicMaxArea,
	}
}

// PackerConfig is the immutable configuration captured by a packer at
// construction and handed to every bin it opens.
type PackerConfig struct {
	MaxWidth  float64 `json:"max_width" yaml:"max_width" toml:"max_width" cbor:"max_width"`
	MaxHeight float64 `json:"max_height" yaml:"max_height" toml:"max_height" cbor:"max_height"`
	Padding   float64 `json:"padding" yaml:"padding" toml:"padding" cbor:"padding"`
	Options   Options `json:"options" yaml:"options" toml:"options" cbor:"options"`
}

// Tagger is implemented by payloads that carry a partition tag.
type Tagger interface {
	PackTag() string
}

// Hasher is implemented by payloads that carry a content hash used to
// cluster identical items when sorting.
type Hasher interface {
	PackHash() string
}

// Rectangle is a packing request and, once placed, its result.
// Width and Height describe the placed footprint: they are swapped relative
// to the request when Rotated is set.
type Rectangle[T any] struct {
	Width     float64 `json:"width" cbor:"width"`
	Height    float64 `json:"height" cbor:"height"`
	X         float64 `json:"x" cbor:"x"`
	Y         float64 `json:"y" cbor:"y"`
	Rotated   bool    `json:"rotated" cbor:"rotated"`
	Oversized bool    `json:"oversized" cbor:"oversized"`
	Tag       string  `json:"tag,omitempty" cbor:"tag,omitempty"`
	Hash      string  `json:"hash,omitempty" cbor:"hash,omitempty"`
	Data      T       `json:"data" cbor:"data"`
}

// NewRectangle creates an unplaced request. Tag and Hash are taken from the
// payload when it implements Tagger or Hasher.
func NewRectangle[T any](w, h float64, data T) Rectangle[T] {
	r := Rectangle[T]{Width: w, Height: h, Data: data}
	if t, ok := any(data).(Tagger); ok {
		r.Tag = t.PackTag()
	}
	if hs, ok := any(data).(Hasher); ok {
		r.Hash = hs.PackHash()
	}
	return r
}

// Footprint returns the rectangle's occupied region.
func (r Rectangle[T]) Footprint() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Area returns width x height.
func (r Rectangle[T]) Area() float64 {
	return r.Width * r.Height
}

// RequestedWidth returns the width as originally requested, before rotation.
func (r Rectangle[T]) RequestedWidth() float64 {
	if r.Rotated {
		return r.Height
	}
	return r.Width
}

// RequestedHeight returns the height as originally requested, before rotation.
func (r Rectangle[T]) RequestedHeight() float64 {
	if r.Rotated {
		return r.Width
	}
	return r.Height
}
