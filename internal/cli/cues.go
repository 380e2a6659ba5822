package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/engine"
	"github.com/ivlev/sceneclock/internal/sequencer"
)

// CuesOptions holds flags for the cues command.
type CuesOptions struct {
	Assets string
	From   int
	To     int
}

// CuesResult is the JSON payload of cues.
type CuesResult struct {
	ID          string               `json:"id"`
	FPS         int                  `json:"fps"`
	TotalFrames int                  `json:"totalFrames"`
	Intervals   []sequencer.Interval `json:"intervals"`
	Cues        []cues.Cue           `json:"cues"`
	Warnings    []diag.Warning       `json:"warnings,omitempty"`
}

// NewCuesCommand creates the cues command.
func NewCuesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CuesOptions{}

	cmd := &cobra.Command{
		Use:   "cues <project>",
		Short: "Print the scene intervals and the global cue schedule",
		Long: `Cues prints every scene interval with its transition window, then the
audio cue schedule in onset order. --from and --to restrict the cues to
onsets in [from, to).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCues(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", "", "Asset root to check references against")
	cmd.Flags().IntVar(&opts.From, "from", 0, "First onset frame (inclusive)")
	cmd.Flags().IntVar(&opts.To, "to", -1, "Last onset frame (exclusive, -1 for the end)")

	return cmd
}

func runCues(rootOpts *RootOptions, opts *CuesOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	tl, err := loadTimeline(cmd.Context(), path, opts.Assets, logger(rootOpts, cmd))
	if err != nil {
		return err
	}

	filtered := cmd.Flags().Changed("from") || cmd.Flags().Changed("to")
	to := opts.To
	if to < 0 {
		to = tl.TotalFrames()
	}
	schedule := tl.Cues()
	if filtered {
		schedule = cues.Between(schedule, opts.From, to)
	}

	res := CuesResult{
		ID:          tl.ID().String(),
		FPS:         tl.FPS(),
		TotalFrames: tl.TotalFrames(),
		Intervals:   tl.Intervals(),
		Cues:        schedule,
		Warnings:    tl.Warnings(),
	}
	return out.Success(res, func(w io.Writer) error {
		if !filtered {
			return engine.WriteSchedule(w, tl)
		}
		for _, c := range schedule {
			if _, err := fmt.Fprintf(w, "cue %s scene=%d %s\n", c, c.Scene, c.Source); err != nil {
				return err
			}
		}
		return nil
	})
}
