package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/plus3/marquee/scenario"
	"github.com/plus3/marquee/selection"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Quiet bool
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay selection scenarios and check their expectations",
		Long: `Replay one or more scenario files against a fresh selection engine and
print the resulting trace.

Exit codes:
  0 - All expectations held
  1 - At least one expectation failed
  2 - Bad flags or arguments, or a scenario could not be loaded

Examples:
  marquee replay testdata/scenarios/replace-drag.yaml
  marquee replay --quiet scenarios/*.yaml`,
		Args:         checkArgs(cobra.MinimumNArgs(1)),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd.OutOrStdout(), args)
		},
	}

	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "only print the outcome of each scenario")

	return cmd
}

func runReplay(opts *ReplayOptions, out io.Writer, paths []string) error {
	failed := 0

	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", path), err)
		}

		result, err := scenario.Run(s, selection.WithLogger(opts.Logger.With("scenario", s.Name)))

		if !opts.Quiet {
			fmt.Fprintf(out, "=== %s\n", s.Name)
			fmt.Fprint(out, result.Trace)
		}

		var expectErr *scenario.ExpectationError
		switch {
		case errors.As(err, &expectErr):
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", s.Name, err)
		case err != nil:
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to run %s", path), err)
		default:
			fmt.Fprintf(out, "ok   %s (%d selected)\n", s.Name, len(result.Selection))
		}
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", failed, len(paths)))
	}
	return nil
}
