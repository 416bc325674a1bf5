package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app is the state shared by all commands of one invocation.
type app struct {
	configPath string
	verbose    bool
	config     model.AppConfig
}

// Execute runs the atlaspack CLI until the command completes or ctx is
// cancelled.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               appName,
		Short:             "AtlasPack packs sprites into texture atlas bins",
		Long:              `AtlasPack packs rectangles (sprites, textures) into as few fixed-size bins as possible using the MaxRects best-area-fit heuristic, and keeps the result as a resumable session.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", project.DefaultConfigPath(), "config file (.json, .toml, .yaml)")

	root.AddCommand(a.packCmd())
	root.AddCommand(a.resumeCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.compareCmd())
	root.AddCommand(a.inspectCmd())
	root.AddCommand(a.configCmd())

	return root
}

// setup attaches the logger to the command context and loads the user config.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := charmlog.InfoLevel
	if a.verbose {
		level = charmlog.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.config = cfg
	logger.Debug("config loaded", "path", a.configPath)
	return nil
}

// packerConfig returns the config defaults with the command's flags applied.
func (a *app) packerConfig(cmd *cobra.Command, flags *packFlags) (model.PackerConfig, error) {
	var cfg model.PackerConfig
	a.config.ApplyToConfig(&cfg)
	if err := flags.apply(cmd, &cfg); err != nil {
		return model.PackerConfig{}, err
	}
	return cfg, nil
}

// rememberSession records path in the recent session list. A config that
// cannot be written only produces a warning.
func (a *app) rememberSession(ctx context.Context, path string) {
	a.config.AddRecentSession(path, maxRecentSessions)
	if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
		loggerFromContext(ctx).Warn("could not update recent sessions", "err", err)
	}
}
