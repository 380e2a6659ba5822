package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/diag"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Assets string
}

// ValidateResult is the JSON payload of validate.
type ValidateResult struct {
	Valid       bool                `json:"valid"`
	Scenes      int                 `json:"scenes,omitempty"`
	TotalFrames int                 `json:"totalFrames,omitempty"`
	Errors      []config.FieldError `json:"errors,omitempty"`
	Warnings    []diag.Warning      `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <project>",
		Short: "Check a project and report warnings",
		Long: `Validate loads a project, rejects unknown layouts and missing content and
builds its timeline. With --assets every referenced asset and voice-over is
checked below the given directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", "", "Asset root to check references against")

	return cmd
}

func runValidate(rootOpts *RootOptions, opts *ValidateOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	tl, err := loadTimeline(cmd.Context(), path, opts.Assets, logger(rootOpts, cmd))
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return out.Failure(ValidateResult{Valid: false, Errors: cfgErr.Errors}, err)
		}
		return err
	}

	res := ValidateResult{
		Valid:       true,
		Scenes:      tl.Scenes(),
		TotalFrames: tl.TotalFrames(),
		Warnings:    tl.Warnings(),
	}
	return out.Success(res, func(w io.Writer) error {
		fmt.Fprintf(w, "[+++] valid: %d scenes, %d frames\n", res.Scenes, res.TotalFrames)
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "[!] %s\n", warn)
		}
		return nil
	})
}
