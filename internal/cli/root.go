// Package cli implements the marquee command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/plus3/marquee/internal/config"
	"github.com/plus3/marquee/internal/logging"
)

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	ConfigPath string
	Level      logLevelFlag

	// Set by the root command before any subcommand runs.
	Config config.Config
	Logger *slog.Logger

	logCloser io.Closer
}

// NewRootCommand creates the root command for the marquee CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{
		Level:  logLevelFlag{value: slog.LevelWarn},
		Logger: slog.New(slog.DiscardHandler),
	}

	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "marquee - drag-rectangle unit selection",
		Long:  "Tools for replaying and stress testing the marquee selection engine.",

		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCloser != nil {
				return opts.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().Var(&opts.Level, "log-level", "log level (debug|info|warn|error)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewStressCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	level := o.Level.value
	if !cmd.Flags().Changed("log-level") {
		level, err = config.ParseLevel(cfg.Log.Level)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
	}

	o.Config = cfg
	o.Logger, o.logCloser = logging.New(cfg.Log, level, cmd.ErrOrStderr())
	o.Logger.Debug("configuration loaded", "path", o.ConfigPath, "level", level)
	return nil
}

// checkArgs wraps a cobra positional argument validator so its errors carry
// ExitCommandError.
func checkArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
