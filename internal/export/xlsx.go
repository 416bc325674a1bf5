package export

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	placementsSheet = "Placements"
	binsSheet       = "Bins"
)

var placementHeaders = []interface{}{
	"Bin", "Bin ID", "Tag", "Label", "Sprite ID", "X", "Y", "Width", "Height", "Rotated", "Oversized", "Hash", "Source",
}

var binHeaders = []interface{}{
	"Bin", "Bin ID", "Tag", "Width", "Height", "Max Width", "Max Height", "Sprites", "Efficiency %", "Oversized",
}

// ExportXLSX writes a workbook with one row per placed sprite on the
// Placements sheet and one row per bin on the Bins sheet. Placed sizes are
// the footprint in the bin, rotation already applied.
func ExportXLSX(path string, snap model.Snapshot[model.Sprite]) error {
	if len(snap.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(binsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeHeader(f, placementsSheet, placementHeaders, bold); err != nil {
		return err
	}
	if err := writeHeader(f, binsSheet, binHeaders, bold); err != nil {
		return err
	}

	row := 2
	for i, bin := range snap.Bins {
		for _, r := range bin.Rects {
			values := []interface{}{
				i + 1, bin.ID, r.Tag, r.Data.Label, r.Data.ID,
				r.X, r.Y, r.Width, r.Height, r.Rotated, r.Oversized, r.Hash, r.Data.Source,
			}
			if err := setRow(f, placementsSheet, row, values); err != nil {
				return err
			}
			row++
		}

		values := []interface{}{
			i + 1, bin.ID, bin.Tag, bin.Width, bin.Height, bin.MaxWidth, bin.MaxHeight,
			len(bin.Rects), roundTo(bin.Efficiency(), 2), bin.Oversized,
		}
		if err := setRow(f, binsSheet, i+2, values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeHeader(f *excelize.File, sheet string, headers []interface{}, style int) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func roundTo(v float64, places int) float64 {
	p := 1.0
	for i := 0; i < places; i++ {
		p *= 10
	}
	return float64(int64(v*p+0.5)) / p
}
