package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// renderTable draws rows under headers with the CLI's table style.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		}).
		String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// binRows lists one table row per bin of snap.
func binRows(snap model.Snapshot[model.Sprite]) [][]string {
	rows := make([][]string, 0, len(snap.Bins))
	for i, bin := range snap.Bins {
		kind := ""
		if bin.Oversized {
			kind = "oversized"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			bin.ID,
			bin.Tag,
			formatNum(bin.Width) + "x" + formatNum(bin.Height),
			strconv.Itoa(len(bin.Rects)),
			formatPercent(bin.Efficiency()),
			kind,
		})
	}
	return rows
}

// writeSessionSummary prints the bins of a session and the overall totals.
func writeSessionSummary(w io.Writer, s project.Session) {
	snap := s.Snapshot
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Session %s (%s)", s.Name, s.ID)))
	fmt.Fprintf(w, "Max bin: %sx%s  Padding: %s  Logic: %s\n",
		formatNum(s.Config.MaxWidth), formatNum(s.Config.MaxHeight), formatNum(s.Config.Padding), s.Config.Options.Logic)
	if len(snap.Bins) > 0 {
		fmt.Fprintln(w, renderTable(
			[]string{"#", "Bin", "Tag", "Size", "Sprites", "Efficiency", ""},
			binRows(snap),
		))
	}
	fmt.Fprintf(w, "Bins: %d  Sprites: %d  Oversized: %d  Efficiency: %s\n",
		len(snap.Bins), snap.RectCount(), snap.OversizedCount(), formatPercent(snap.Efficiency()))
}
