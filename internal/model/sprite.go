package model

import "github.com/google/uuid"

// Sprite is a single image to be placed into an atlas. Only its geometry
// and identity are tracked; pixel data stays with the caller.
type Sprite struct {
	ID       string  `json:"id" cbor:"id"`
	Label    string  `json:"label" cbor:"label"`
	Source   string  `json:"source,omitempty" cbor:"source,omitempty"` // Path of the image the sprite came from
	Tag      string  `json:"tag,omitempty" cbor:"tag,omitempty"`
	Hash     string  `json:"hash,omitempty" cbor:"hash,omitempty"`
	Width    float64 `json:"width" cbor:"width"`
	Height   float64 `json:"height" cbor:"height"`
	Quantity int     `json:"quantity" cbor:"quantity"`
}

func NewSprite(label string, w, h float64, qty int) Sprite {
	return Sprite{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// PackTag implements Tagger.
func (s Sprite) PackTag() string { return s.Tag }

// PackHash implements Hasher.
func (s Sprite) PackHash() string { return s.Hash }

// ExpandSprites expands sprites by quantity into individual packing
// requests, preserving input order.
func ExpandSprites(sprites []Sprite) []Rectangle[Sprite] {
	var out []Rectangle[Sprite]
	for _, s := range sprites {
		for i := 0; i < s.Quantity; i++ {
			cp := s
			cp.Quantity = 1
			out = append(out, NewRectangle(s.Width, s.Height, cp))
		}
	}
	return out
}
