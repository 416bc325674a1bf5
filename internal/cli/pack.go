package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// packOpts holds the flags of the pack command.
type packOpts struct {
	output      string // session file; the extension selects the format
	name        string
	exports     string // comma-separated export formats
	exportDir   string
	maxBins     int
	search      bool // genetic search over insertion orders
	generations int
	seed        int64
}

func (a *app) packCmd() *cobra.Command {
	var flags packFlags
	ga := engine.DefaultGeneticConfig()
	opts := packOpts{generations: ga.Generations, seed: ga.Seed}

	cmd := &cobra.Command{
		Use:   "pack [files...]",
		Short: "Import sprite lists and pack them into a new session",
		Long: `Import sprite lists (CSV, Excel or DXF) and pack them into bins.

The result is saved as a session that resume, export and inspect accept.
Each input file is packed as one batch in the order given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.packerConfig(cmd, &flags)
			if err != nil {
				return err
			}
			formats, err := parseFormats(opts.exports)
			if err != nil {
				return err
			}
			if opts.search && opts.maxBins > 0 {
				return errors.New("--max-bins cannot be combined with --search")
			}
			return a.runPack(cmd, args, cfg, formats, &opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "session file (default <output_dir>/<name>.<session_format>)")
	cmd.Flags().StringVar(&opts.name, "name", "", "session name (default first input file name)")
	cmd.Flags().StringVarP(&opts.exports, "export", "e", "", "also export: pdf, labels, xlsx, json (comma-separated)")
	cmd.Flags().StringVar(&opts.exportDir, "export-dir", "", "directory for exports (default output_dir from config)")
	cmd.Flags().IntVar(&opts.maxBins, "max-bins", 0, "skip input files that would exceed this many bins")
	cmd.Flags().BoolVar(&opts.search, "search", false, "search insertion orders for fewer bins")
	cmd.Flags().IntVar(&opts.generations, "generations", opts.generations, "generations for --search")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "random seed for --search")

	return cmd
}

func (a *app) runPack(cmd *cobra.Command, paths []string, cfg model.PackerConfig, formats []string, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	batches, err := importBatches(ctx, paths)
	if err != nil {
		return err
	}

	p, err := a.fill(ctx, cfg, batches, opts)
	if err != nil {
		return err
	}
	prog.done("packed", "bins", len(p.Bins()), "sprites", len(p.Rects()))

	name := opts.name
	if name == "" {
		name = sessionName(paths)
	}
	session := project.NewSession(name, p)

	path := opts.output
	if path == "" {
		path = filepath.Join(a.config.OutputDir, name+"."+a.config.SessionFormat)
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
}

// fill packs the batches into a fresh packer, either batch by batch or as
// one list in the best insertion order found by the genetic search.
func (a *app) fill(ctx context.Context, cfg model.PackerConfig, batches []batch, opts *packOpts) (*engine.Packer[model.Sprite], error) {
	if opts.search {
		ga := engine.DefaultGeneticConfig()
		ga.Generations = opts.generations
		ga.Seed = opts.seed
		loggerFromContext(ctx).Debug("searching insertion orders", "generations", ga.Generations, "seed", ga.Seed)
		return engine.SearchOrder(cfg, allRects(batches), ga)
	}

	p, err := engine.NewWithConfig[model.Sprite](cfg)
	if err != nil {
		return nil, err
	}
	if _, err := packBatches(ctx, p, batches, opts.maxBins); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *app) exportDir(flag string) string {
	if flag != "" {
		return flag
	}
	if a.config.OutputDir != "" {
		return a.config.OutputDir
	}
	return "."
}
