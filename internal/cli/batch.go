package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// batch is the sprite list imported from one input file.
type batch struct {
	source  string
	sprites []model.Sprite
}

// importBatches imports every path into its own batch. Row errors are
// logged; a file that yields no sprites at all fails the import.
func importBatches(ctx context.Context, paths []string) ([]batch, error) {
	logger := loggerFromContext(ctx)
	batches := make([]batch, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := importer.Import(path)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", path)
		}
		for _, e := range res.Errors {
			logger.Error(e, "file", path)
		}
		if len(res.Sprites) == 0 {
			return nil, fmt.Errorf("import %s: no sprites found", path)
		}
		logger.Debug("imported", "file", path, "sprites", len(res.Sprites))
		batches = append(batches, batch{source: path, sprites: res.Sprites})
	}
	return batches, nil
}

// allRects expands the sprites of every batch into pack requests.
func allRects(batches []batch) []model.Rectangle[model.Sprite] {
	var rects []model.Rectangle[model.Sprite]
	for _, b := range batches {
		rects = append(rects, model.ExpandSprites(b.sprites)...)
	}
	return rects
}

// packBatches adds each batch to p in turn. When maxBins is positive, a
// batch that would push the bin count past it is rolled back and reported
// as skipped. A rollback keeps closed bins closed.
func packBatches(ctx context.Context, p *engine.Packer[model.Sprite], batches []batch, maxBins int) ([]string, error) {
	logger := loggerFromContext(ctx)
	history := project.NewHistory[model.Sprite]()
	var skipped []string

	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}
		history.Record(p, b.source)
		placed, err := p.AddArray(model.ExpandSprites(b.sprites))
		if err != nil {
			return skipped, fmt.Errorf("pack %s: %w", b.source, err)
		}
		if maxBins > 0 && len(p.Bins()) > maxBins {
			if _, _, err := history.UndoPacker(p); err != nil {
				return skipped, fmt.Errorf("roll back %s: %w", b.source, err)
			}
			logger.Warn("batch exceeds bin limit, skipped", "file", b.source, "bins", maxBins)
			skipped = append(skipped, b.source)
			continue
		}
		logger.Debug("packed", "file", b.source, "sprites", len(placed), "bins", len(p.Bins()))
	}
	return skipped, nil
}

// sessionName derives a session name from the first input file.
func sessionName(paths []string) string {
	if len(paths) == 0 {
		return appName
	}
	base := filepath.Base(paths[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeExports writes one output per format next to each other in dir,
// named after the session.
func writeExports(ctx context.Context, s project.Session, formats []string, dir string) error {
	if len(formats) == 0 {
		return nil
	}
	logger := loggerFromContext(ctx)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	base := filepath.Join(dir, s.Name)
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		var path string
		var err error
		switch format {
		case formatPDF:
			path = base + ".pdf"
			err = export.ExportPDF(path, s.Snapshot, s.Config)
		case formatLabels:
			path = base + "_labels.pdf"
			err = export.ExportLabels(path, s.Snapshot)
		case formatXLSX:
			path = base + ".xlsx"
			err = export.ExportXLSX(path, s.Snapshot)
		case formatJSON:
			path = base + ".atlas.json"
			err = export.ExportAtlasJSON(path, s.Snapshot, s.Config)
		default:
			err = fmt.Errorf("unknown format")
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		logger.Info("exported", "format", format, "path", path)
	}
	return nil
}
