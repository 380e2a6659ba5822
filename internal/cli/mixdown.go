package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/assets"
	"github.com/ivlev/sceneclock/internal/mixdown"
	"github.com/ivlev/sceneclock/internal/system"
)

// MixdownOptions holds flags for the mixdown command.
type MixdownOptions struct {
	Assets string
	Output string
	Run    bool
	FFmpeg string
}

// MixdownResult is the JSON payload of mixdown.
type MixdownResult struct {
	Args    []string `json:"args"`
	Skipped []string `json:"skipped,omitempty"`
	Output  string   `json:"output"`
	Ran     bool     `json:"ran"`
}

// NewMixdownCommand creates the mixdown command.
func NewMixdownCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MixdownOptions{}

	cmd := &cobra.Command{
		Use:   "mixdown <project>",
		Short: "Mix the cue schedule into one audio track",
		Long: `Mixdown places every cue of the schedule on one audio track with ffmpeg.
Without --run it only prints the ffmpeg arguments. Cues whose asset cannot
be found below --assets are left out and reported.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMixdown(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", ".", "Asset root")
	cmd.Flags().StringVar(&opts.Output, "out", "mix.m4a", "Audio file to write")
	cmd.Flags().BoolVar(&opts.Run, "run", false, "Run ffmpeg instead of printing its arguments")
	cmd.Flags().StringVar(&opts.FFmpeg, "ffmpeg", "ffmpeg", "ffmpeg binary")

	return cmd
}

func runMixdown(rootOpts *RootOptions, opts *MixdownOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	lg := logger(rootOpts, cmd)
	ctx := cmd.Context()

	tl, err := loadTimeline(ctx, path, opts.Assets, lg)
	if err != nil {
		return err
	}

	job := mixdown.Job{
		Schedule:    tl.Cues(),
		FPS:         tl.FPS(),
		TotalFrames: tl.TotalFrames(),
		Assets:      assets.NewResolver(opts.Assets),
		Output:      opts.Output,
	}
	args, skipped, err := mixdown.BuildArgs(job)
	if err != nil {
		return WrapExitError(ExitFailure, "mixdown", err)
	}
	for _, ref := range skipped {
		lg.Printf("[!] Skipped missing asset: %s", ref)
	}

	res := MixdownResult{Args: args, Skipped: skipped, Output: opts.Output}
	if opts.Run {
		if opts.FFmpeg == "ffmpeg" && !system.HasFFmpeg() {
			return NewExitError(ExitCommandError, "ffmpeg not found on PATH")
		}
		lg.Printf("[*] Mixing %d cues into %s", len(job.Schedule)-len(skipped), opts.Output)
		mixer := &mixdown.FFmpegMixer{Binary: opts.FFmpeg}
		if err := mixer.Mix(ctx, job); err != nil {
			return WrapExitError(ExitFailure, "mixdown", err)
		}
		lg.Printf("[+++] Mix written: %s", opts.Output)
		res.Ran = true
	}

	return out.Success(res, func(w io.Writer) error {
		if res.Ran {
			_, err := fmt.Fprintln(w, opts.Output)
			return err
		}
		_, err := fmt.Fprintf(w, "%s %s\n", opts.FFmpeg, strings.Join(args, " "))
		return err
	})
}
