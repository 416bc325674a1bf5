// Package export writes packing results to PDF layouts, QR label sheets,
// XLSX workbooks and atlas JSON.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// spriteColor represents an RGB color for a placed sprite.
type spriteColor struct {
	R, G, B int
}

var spriteColors = []spriteColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders every bin of snap on its own page, followed by a
// summary page with overall statistics and the packer settings.
func ExportPDF(path string, snap model.Snapshot[model.Sprite], cfg model.PackerConfig) error {
	if len(snap.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, bin := range snap.Bins {
		pdf.AddPage()
		renderBinPage(pdf, bin, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, snap, cfg)

	return pdf.OutputFileAndClose(path)
}

// renderBinPage draws a single bin on the current PDF page. The area between
// the reported size and the maximum bounds is hatched.
func renderBinPage(pdf *fpdf.Fpdf, bin model.BinSnapshot[model.Sprite], binNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d (%.0f x %.0f)", binNum, bin.Width, bin.Height)
	if bin.Tag != "" {
		title += " tag " + bin.Tag
	}
	if bin.Oversized {
		title += " OVERSIZED"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sprites: %d | Used area: %.0f | Bin area: %.0f | Efficiency: %.1f%% | Max: %.0f x %.0f",
		len(bin.Rects), bin.UsedArea(), bin.TotalArea(), bin.Efficiency(), bin.MaxWidth, bin.MaxHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// The canvas covers whichever is larger: the bounds or the reported size
	extentW := math.Max(bin.MaxWidth, bin.Width)
	extentH := math.Max(bin.MaxHeight, bin.Height)
	if extentW <= 0 || extentH <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/extentW, drawHeight/extentH)

	canvasW := extentW * scale
	canvasH := extentH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Unused bounds
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")
	drawHatchPattern(pdf, offsetX, offsetY, canvasW, canvasH)

	// Reported bin area
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, bin.Width*scale, bin.Height*scale, "FD")

	for i, r := range bin.Rects {
		col := spriteColors[i%len(spriteColors)]
		pw := r.Width * scale
		ph := r.Height * scale
		px := offsetX + r.X*scale
		py := offsetY + r.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := r.Data.Label
			dims := fmt.Sprintf("%.0fx%.0f", r.Width, r.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, bin, scale, offsetX, offsetY)
	drawSpriteLegend(pdf, bin, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(210, 210, 210)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the reported width below the bin and the
// reported height to its left.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bin model.BinSnapshot[model.Sprite], scale, offsetX, offsetY float64) {
	canvasW := bin.Width * scale
	canvasH := bin.Height * scale

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f px", bin.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f px", bin.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawSpriteLegend renders a compact legend of placed sprites at the bottom of the bin page.
func drawSpriteLegend(pdf *fpdf.Fpdf, bin model.BinSnapshot[model.Sprite], startY float64) {
	if len(bin.Rects) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sprites placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, r := range bin.Rects {
		col := spriteColors[i%len(spriteColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", r.Data.Label, r.RequestedWidth(), r.RequestedHeight())
		if r.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		// Stop before running off the page
		if startY > pageHeight-marginBottom {
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, snap model.Snapshot[model.Sprite], cfg model.PackerConfig) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Used", fmt.Sprintf("%d", len(snap.Bins))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", snap.Efficiency())},
		{"Sprites Placed", fmt.Sprintf("%d", snap.RectCount())},
		{"Oversized Bins", fmt.Sprintf("%d", snap.OversizedCount())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 45, 50, 30, 35, 35, 50}
	headers := []string{"Bin", "Tag", "Size", "Sprites", "Efficiency", "Oversized", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, bin := range snap.Bins {
		// Continue the table on a fresh page
		if y > pageHeight-marginBottom-40 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		oversized := ""
		if bin.Oversized {
			oversized = "yes"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			bin.Tag,
			fmt.Sprintf("%.0f x %.0f", bin.Width, bin.Height),
			fmt.Sprintf("%d", len(bin.Rects)),
			fmt.Sprintf("%.1f%%", bin.Efficiency()),
			oversized,
			fmt.Sprintf("%.0f / %.0f", bin.UsedArea(), bin.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Packer Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Max Size", fmt.Sprintf("%.0f x %.0f", cfg.MaxWidth, cfg.MaxHeight)},
		{"Padding", fmt.Sprintf("%.0f", cfg.Padding)},
		{"Smart / Pot / Square", fmt.Sprintf("%t / %t / %t", cfg.Options.Smart, cfg.Options.Pot, cfg.Options.Square)},
		{"Rotation", fmt.Sprintf("%t", cfg.Options.AllowRotation)},
		{"Tag Partitioning", fmt.Sprintf("%t", cfg.Options.Tag)},
		{"Sort Logic", string(cfg.Options.Logic)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by AtlasPack", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
