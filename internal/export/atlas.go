package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// AtlasFrame is the placement of one sprite in an atlas page.
type AtlasFrame struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Source  string  `json:"source,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"w"`
	Height  float64 `json:"h"`
	Rotated bool    `json:"rotated"`
}

// AtlasPage is one bin of the atlas.
type AtlasPage struct {
	Index     int          `json:"index"`
	Tag       string       `json:"tag,omitempty"`
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Oversized bool         `json:"oversized,omitempty"`
	Frames    []AtlasFrame `json:"frames"`
}

// Atlas is the engine-independent description consumed by texture tools.
type Atlas struct {
	Padding float64     `json:"padding"`
	Pages   []AtlasPage `json:"pages"`
}

// BuildAtlas converts a snapshot into atlas pages.
func BuildAtlas(snap model.Snapshot[model.Sprite], cfg model.PackerConfig) Atlas {
	atlas := Atlas{Padding: cfg.Padding, Pages: make([]AtlasPage, 0, len(snap.Bins))}
	for i, bin := range snap.Bins {
		page := AtlasPage{
			Index:     i,
			Tag:       bin.Tag,
			Width:     bin.Width,
			Height:    bin.Height,
			Oversized: bin.Oversized,
			Frames:    make([]AtlasFrame, 0, len(bin.Rects)),
		}
		for _, r := range bin.Rects {
			page.Frames = append(page.Frames, AtlasFrame{
				ID:      r.Data.ID,
				Label:   r.Data.Label,
				Source:  r.Data.Source,
				X:       r.X,
				Y:       r.Y,
				Width:   r.Width,
				Height:  r.Height,
				Rotated: r.Rotated,
			})
		}
		atlas.Pages = append(atlas.Pages, page)
	}
	return atlas
}

// ExportAtlasJSON writes the atlas description of snap as indented JSON.
func ExportAtlasJSON(path string, snap model.Snapshot[model.Sprite], cfg model.PackerConfig) error {
	data, err := json.MarshalIndent(BuildAtlas(snap, cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal atlas: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create atlas directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
