package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/engine"
)

// FrameOptions holds flags for the frame command.
type FrameOptions struct {
	Assets string
}

// NewFrameCommand creates the frame command.
func NewFrameCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FrameOptions{}

	cmd := &cobra.Command{
		Use:   "frame <project> <n>",
		Short: "Print the state of one frame",
		Long: `Frame prints the active scene, the transition in progress, element
progress, typewriter state and the audio cues sounding at frame n. Frames
outside the timeline clamp to its first or last frame.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "frame must be an integer", err)
			}
			return runFrame(rootOpts, opts, args[0], n, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", "", "Asset root to check references against")

	return cmd
}

func runFrame(rootOpts *RootOptions, opts *FrameOptions, path string, n int, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	tl, err := loadTimeline(cmd.Context(), path, opts.Assets, logger(rootOpts, cmd))
	if err != nil {
		return err
	}

	st := tl.Frame(n)
	return out.Success(st, func(w io.Writer) error {
		return writeFrame(w, st)
	})
}

func writeFrame(w io.Writer, st engine.FrameState) error {
	fmt.Fprintf(w, "frame %d scene %d local %d %s\n", st.Frame, st.ActiveScene, st.SceneLocalFrame, st.Layout)
	if t := st.Transition; t != nil {
		fmt.Fprintf(w, "transition %s %d->%d [%d,%d) progress=%.3f\n", t.Kind, t.From, t.To, t.Start, t.End, t.Progress)
	}
	for _, e := range st.Elements {
		fmt.Fprintf(w, "element %s onset=%d progress=%.3f opacity=%.3f %s\n", e.ID, e.Onset, e.Progress, e.Opacity, e.Direction)
	}
	for _, r := range st.Reveals {
		cursor := ""
		if r.CursorVisible {
			cursor = "|"
		}
		fmt.Fprintf(w, "reveal %s %d/%d %q%s\n", r.ID, r.VisibleCharCount, r.TotalChars, r.Text, cursor)
	}
	for _, c := range st.AudioCues {
		fmt.Fprintf(w, "cue %s\n", c)
	}
	for _, warn := range st.Warnings {
		fmt.Fprintf(w, "warn %s\n", warn)
	}
	return nil
}
