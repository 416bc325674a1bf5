// Package cli implements the atlaspack command-line interface.
//
// The commands import sprite lists, pack them into bins, persist the result
// as a resumable session and export layouts:
//   - pack: import sprite lists and pack them into a new session
//   - resume: load a session and keep packing into it
//   - export: write PDF, label, XLSX or atlas JSON output for a session
//   - compare: pack the same input under alternative settings
//   - inspect: print bin statistics and unused headroom of a session
//   - config: show, initialise, back up and restore user settings
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// carried in context.Context.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/model"
)

const (
	appName = "atlaspack"

	// maxRecentSessions bounds the recent session list kept in the config.
	maxRecentSessions = 10
)

// Export format names accepted by --export and the export command.
const (
	formatPDF    = "pdf"
	formatLabels = "labels"
	formatXLSX   = "xlsx"
	formatJSON   = "json"
)

var validExportFormats = map[string]bool{formatPDF: true, formatLabels: true, formatXLSX: true, formatJSON: true}

// packFlags are the packer settings that can override the user config.
type packFlags struct {
	width   float64
	height  float64
	padding float64
	rotate  bool
	smart   bool
	pot     bool
	square  bool
	tag     bool
	logic   string
}

func (f *packFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", 0, "maximum bin width (default from config)")
	fs.Float64Var(&f.height, "height", 0, "maximum bin height (default from config)")
	fs.Float64Var(&f.padding, "padding", 0, "gap between sprites")
	fs.BoolVar(&f.rotate, "rotate", false, "allow 90 degree rotation")
	fs.BoolVar(&f.smart, "smart", true, "trim bins to their content")
	fs.BoolVar(&f.pot, "pot", true, "round bin sizes up to a power of two")
	fs.BoolVar(&f.square, "square", false, "make bins square")
	fs.BoolVar(&f.tag, "tag", false, "keep sprites with different tags in separate bins")
	fs.StringVar(&f.logic, "logic", "", "sort logic: max_area (default), max_edge")
}

// apply overrides cfg with every flag the user set explicitly.
func (f *packFlags) apply(cmd *cobra.Command, cfg *model.PackerConfig) error {
	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.MaxWidth = f.width
	}
	if fs.Changed("height") {
		cfg.MaxHeight = f.height
	}
	if fs.Changed("padding") {
		cfg.Padding = f.padding
	}
	if fs.Changed("rotate") {
		cfg.Options.AllowRotation = f.rotate
	}
	if fs.Changed("smart") {
		cfg.Options.Smart = f.smart
	}
	if fs.Changed("pot") {
		cfg.Options.Pot = f.pot
	}
	if fs.Changed("square") {
		cfg.Options.Square = f.square
	}
	if fs.Changed("tag") {
		cfg.Options.Tag = f.tag
	}
	if fs.Changed("logic") {
		logic, err := parseLogic(f.logic)
		if err != nil {
			return err
		}
		cfg.Options.Logic = logic
	}
	return nil
}

func parseLogic(s string) (model.SortLogic, error) {
	switch l := model.SortLogic(strings.ToLower(s)); l {
	case model.LogicMaxArea, model.LogicMaxEdge:
		return l, nil
	default:
		return "", fmt.Errorf("invalid sort logic: %s (must be '%s' or '%s')", s, model.LogicMaxArea, model.LogicMaxEdge)
	}
}

// parseFormats parses a comma-separated export format list. Empty input
// yields no formats.
func parseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if !validExportFormats[f] {
			return nil, fmt.Errorf("invalid export format: %s (must be 'pdf', 'labels', 'xlsx', or 'json')", f)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
