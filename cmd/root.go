// Package cmd defines the pipeboard command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/pipeboard/internal/cli"
	"github.com/thenoetrevino/pipeboard/internal/cli/daemoncmd"
	"github.com/thenoetrevino/pipeboard/internal/cli/item"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/launcher"
	"github.com/thenoetrevino/pipeboard/internal/logging"
)

// NewRootCmd builds the command tree. Commands that touch the store share
// one CLI; the returned cleanup closes it.
func NewRootCmd() (*cobra.Command, func()) {
	var (
		configPath string
		logLevel   string
		noDaemon   bool
		opened     *cli.CLI
	)

	loadConfig := func() (*config.Config, error) {
		if configPath != "" {
			return config.LoadFile(configPath)
		}
		return config.Load()
	}

	rootCmd := &cobra.Command{
		Use:   "pipeboard",
		Short: "pipeboard - a terminal pipeline board",
		Long: `pipeboard shows stages of records as columns of cards. Move a card to
another stage by dragging it with the mouse, or pick it up with the keyboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return launcher.Launch(cmd.Context(), cfg, launcher.Options{
				LogLevel: logging.ParseLevel(logLevel),
				NoDaemon: noDaemon,
			})
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Err: err}
	})
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/pipeboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&noDaemon, "no-daemon", false, "Do not connect to the daemon; watch the store file instead")

	itemCmd := item.ItemCmd()
	itemCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := cli.FromContext(ctx); err == nil {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := cli.NewCLI(ctx, cfg)
		if err != nil {
			return err
		}
		opened = c
		cmd.SetContext(cli.WithCLI(ctx, c))
		return nil
	}
	rootCmd.AddCommand(itemCmd)

	daemonCmd := daemoncmd.DaemonCmd(loadConfig)
	daemonCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// The daemon runs in the foreground, so it logs to stderr
		logging.Setup(os.Stderr, logging.ParseLevel(logLevel))
	}
	rootCmd.AddCommand(daemonCmd)

	cleanup := func() {
		if opened == nil {
			return
		}
		if err := opened.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
		opened = nil
	}

	return rootCmd, cleanup
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	rootCmd, cleanup := NewRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	cleanup()

	var reported *cli.ReportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}
