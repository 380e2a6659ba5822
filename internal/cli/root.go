// Package cli wires the sceneclock commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/assets"
	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/director"
	"github.com/ivlev/sceneclock/internal/engine"
)

// RootOptions holds global flags.
type RootOptions struct {
	Verbose bool
	Format  string
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sceneclock",
		Short: "Frame-indexed timeline and cue scheduler for scene-based videos",
		Long: `sceneclock turns a scene project into a deterministic timeline.

Every frame of the video maps to the active scene, the animation state of
its elements, the visible part of each typewriter text and the audio cues
that start on it. Nothing depends on wall-clock time.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if opts.Format == f {
					return nil
				}
			}
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q (want text or json)", opts.Format))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "Output format (text, json)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewFrameCommand(opts))
	cmd.AddCommand(NewCuesCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewPreviewCommand(opts))
	cmd.AddCommand(NewMixdownCommand(opts))

	return cmd
}

// logger returns a diagnostic logger on the command's error stream. It
// discards everything unless --verbose is set.
func logger(opts *RootOptions, cmd *cobra.Command) *log.Logger {
	if opts == nil || !opts.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "", 0)
}

// resolveProject accepts a project file or a directory holding projects, in
// which case the most recently modified one is used.
func resolveProject(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "project not found", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	latest, err := director.FindLatestProject(path)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "no project in directory", err)
	}
	return latest, nil
}

// loadTimeline reads the project at path and builds its timeline. With a
// non-empty assetRoot, cue assets and voice-overs are checked against it.
func loadTimeline(ctx context.Context, path, assetRoot string, lg *log.Logger) (*engine.Timeline, error) {
	path, err := resolveProject(path)
	if err != nil {
		return nil, err
	}
	lg.Printf("[*] Project: %s", path)

	p, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "invalid project", err)
	}

	var opts []engine.Option
	if assetRoot != "" {
		r := assets.NewResolver(assetRoot)
		lg.Printf("[*] Checking assets under %s", assetRoot)
		opts = append(opts,
			engine.WithAssetChecker(r),
			engine.WithWarnings(assets.CheckVoiceOvers(ctx, r, p)...),
		)
	}

	tl, err := engine.Build(p, opts...)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "invalid project", err)
	}
	lg.Printf("[*] %d scenes, %d frames at %d fps", tl.Scenes(), tl.TotalFrames(), tl.FPS())
	for _, w := range tl.Warnings() {
		lg.Printf("[!] %s", w)
	}
	return tl, nil
}
