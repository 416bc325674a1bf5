package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, initialise, back up and restore settings",
	}
	cmd.AddCommand(a.configShowCmd())
	cmd.AddCommand(a.configInitCmd())
	cmd.AddCommand(a.configBackupCmd())
	cmd.AddCommand(a.configRestoreCmd())
	return cmd
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.config)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.configPath, data)
			return nil
		},
	}
}

func (a *app) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			}
			a.config = model.DefaultAppConfig()
			if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("config written", "path", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (a *app) configBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [file] [sessions...]",
		Short: "Bundle the settings and sessions into one backup file",
		Long: `Bundle the settings and the given sessions into one JSON backup file.
Without session arguments the recent sessions from the config are included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			paths := args[1:]
			if len(paths) == 0 {
				paths = a.config.RecentSessions
			}
			sessions, skipped := project.CollectSessions(paths)
			for _, s := range skipped {
				logger.Warn("session skipped", "path", s)
			}
			if err := project.ExportAllData(args[0], a.config, sessions); err != nil {
				return err
			}
			logger.Info("backup written", "path", args[0], "sessions", len(sessions))
			return nil
		},
	}
}

func (a *app) configRestoreCmd() *cobra.Command {
	var sessionDir string
	cmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Restore settings and sessions from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}

			dir := sessionDir
			if dir == "" {
				dir = data.Config.OutputDir
			}
			format := data.Config.SessionFormat
			if format == "" {
				format = project.FormatJSON
			}

			config := data.Config
			config.RecentSessions = []string{}
			var errs []error
			for _, s := range data.Sessions {
				path := filepath.Join(dir, s.Name+"."+format)
				if err := project.SaveSession(path, s); err != nil {
					errs = append(errs, err)
					continue
				}
				config.AddRecentSession(path, maxRecentSessions)
				logger.Info("session restored", "path", path)
			}

			if err := project.SaveAppConfig(a.configPath, config); err != nil {
				errs = append(errs, err)
			}
			a.config = config
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "directory for restored sessions (default output_dir from backup)")
	return cmd
}
