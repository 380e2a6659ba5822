package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/preview"
	"github.com/ivlev/sceneclock/internal/system"
)

// PreviewOptions holds flags for the preview command.
type PreviewOptions struct {
	Assets string
	Output string
	Width  int
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:           "preview <project>",
		Short:         "Draw the timeline as a PNG strip",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", "", "Asset root to check references against")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "timeline.png", "PNG file to write")
	cmd.Flags().IntVar(&opts.Width, "width", 1200, "Strip width in pixels")

	return cmd
}

func runPreview(rootOpts *RootOptions, opts *PreviewOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	lg := logger(rootOpts, cmd)

	tl, err := loadTimeline(cmd.Context(), path, opts.Assets, lg)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "create preview", err)
	}
	defer f.Close()

	r := &preview.Renderer{Width: opts.Width, Pool: system.NewImagePool()}
	if err := r.WritePNG(f, tl); err != nil {
		return WrapExitError(ExitFailure, "render preview", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "write preview", err)
	}
	lg.Printf("[+++] Preview written: %s", opts.Output)

	return out.Success(map[string]string{"path": opts.Output}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, opts.Output)
		return err
	})
}
