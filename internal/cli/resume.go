package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/project"
)

type resumeOpts struct {
	output    string
	next      bool
	maxBins   int
	exports   string
	exportDir string
}

func (a *app) resumeCmd() *cobra.Command {
	var opts resumeOpts

	cmd := &cobra.Command{
		Use:   "resume [session] [files...]",
		Short: "Load a session and pack more sprites into it",
		Long: `Load a saved session and pack more sprite lists into it.

All bins of a loaded session accept new sprites again. Use --next to keep
the existing bins closed and start new ones.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(opts.exports)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			session, err := project.LoadSession(args[0])
			if err != nil {
				return err
			}
			p, err := project.ResumePacker(session)
			if err != nil {
				return err
			}
			logger.Debug("session loaded", "name", session.Name, "bins", len(p.Bins()))
			if opts.next {
				p.Next()
			}

			batches, err := importBatches(ctx, args[1:])
			if err != nil {
				return err
			}
			skipped, err := packBatches(ctx, p, batches, opts.maxBins)
			if err != nil {
				return err
			}
			prog.done("packed", "bins", len(p.Bins()), "sprites", len(p.Rects()), "skipped", len(skipped))

			session.Config = p.Config()
			session.Snapshot = p.Save()

			path := opts.output
			if path == "" {
				path = args[0]
			}
			if err := project.SaveSession(path, session); err != nil {
				return err
			}
			logger.Info("session saved", "path", path)
			a.rememberSession(ctx, path)

			if err := writeExports(ctx, session, formats, a.exportDir(opts.exportDir)); err != nil {
				return err
			}
			writeSessionSummary(cmd.OutOrStdout(), session)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the session here instead of overwriting it")
	cmd.Flags().BoolVar(&opts.next, "next", false, "close existing bins before packing")
	cmd.Flags().IntVar(&opts.maxBins, "max-bins", 0, "skip input files that would exceed this many bins")
	cmd.Flags().StringVarP(&opts.exports, "export", "e", "", "also export: pdf, labels, xlsx, json (comma-separated)")
	cmd.Flags().StringVar(&opts.exportDir, "export-dir", "", "directory for exports (default output_dir from config)")

	return cmd
}
