package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/project"
)

func (a *app) exportCmd() *cobra.Command {
	var formatsStr, dir string

	cmd := &cobra.Command{
		Use:   "export [session]",
		Short: "Export a session as PDF layout, labels, XLSX or atlas JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(formatsStr)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				return errors.New("no export format given")
			}
			session, err := project.LoadSession(args[0])
			if err != nil {
				return err
			}
			return writeExports(cmd.Context(), session, formats, a.exportDir(dir))
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", formatPDF, "export format(s): pdf, labels, xlsx, json (comma-separated)")
	cmd.Flags().StringVarP(&dir, "output-dir", "o", "", "output directory (default output_dir from config)")

	return cmd
}
