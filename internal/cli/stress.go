package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/marquee/internal/stress"
)

// StressOptions holds flags for the stress command.
type StressOptions struct {
	*RootOptions
	Entities       int
	Duration       time.Duration
	Seed           int64
	GCPauseMetrics bool
}

// NewStressCommand creates the stress command.
func NewStressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run random drag and click gestures over a large world",
		Long: `Populate an ECS world with selectable units and drive the selection engine
with random gestures for a fixed duration, then print a report.

Defaults come from the stress section of the config file.`,
		Args:         checkArgs(cobra.NoArgs),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Entities, "entities", 0, "number of selectable units (overrides config)")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "how long to run (overrides config)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (overrides config)")
	cmd.Flags().BoolVar(&opts.GCPauseMetrics, "gc-pause-metrics", false, "include GC pause metrics in the report")

	return cmd
}

func runStress(opts *StressOptions, cmd *cobra.Command) error {
	cfg := stress.Config{
		Entities:       opts.Config.Stress.Entities,
		Duration:       opts.Config.Stress.Duration,
		Seed:           opts.Config.Stress.Seed,
		DeadZone:       opts.Config.Input.DeadZone,
		ClickTolerance: opts.Config.Input.ClickTolerance,
		GCPauseMetrics: opts.GCPauseMetrics,
		Logger:         opts.Logger,
	}
	if cmd.Flags().Changed("entities") {
		cfg.Entities = opts.Entities
	}
	if cmd.Flags().Changed("duration") {
		cfg.Duration = opts.Duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.Seed
	}

	report, err := stress.Run(cmd.Context(), cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "stress run failed", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Stress Test Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")
	return nil
}
