package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/sceneclock/internal/director"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	Assets string
	Output  string
	Dir     string
	Against string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{}

	cmd := &cobra.Command{
		Use:   "plan <project>",
		Short: "Export the derived timing of a project as YAML",
		Long: `Plan exports scene intervals, element onsets, typewriter windows, the cue
schedule and warnings as one YAML document. Without -o or --dir the plan is
written to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Assets, "assets", "", "Asset root to check references against")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Plan file to write")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Directory for a timestamped plan file")
	cmd.Flags().StringVar(&opts.Against, "against", "", "Exported plan to check for staleness")

	return cmd
}

func runPlan(rootOpts *RootOptions, opts *PlanOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	lg := logger(rootOpts, cmd)

	tl, err := loadTimeline(cmd.Context(), path, opts.Assets, lg)
	if err != nil {
		return err
	}
	plan := director.NewPlan(tl)

	if opts.Against != "" {
		return checkPlan(out, plan, opts.Against)
	}

	target := opts.Output
	if target == "" && opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "create plan directory", err)
		}
		target = director.GeneratePlanPath(opts.Dir)
	}

	if target == "" {
		if rootOpts.Format == "json" {
			return out.Success(plan, nil)
		}
		return director.EncodePlan(cmd.OutOrStdout(), plan)
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "create plan directory", err)
		}
	}
	if err := director.WritePlan(plan, target); err != nil {
		return WrapExitError(ExitCommandError, "write plan", err)
	}
	lg.Printf("[+++] Plan written: %s", target)

	return out.Success(map[string]string{"path": target, "id": plan.ID}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, target)
		return err
	})
}

// PlanCheck is the JSON payload of plan --against.
type PlanCheck struct {
	Path       string `json:"path"`
	Stale      bool   `json:"stale"`
	ExportedID string `json:"exportedId"`
	CurrentID  string `json:"currentId"`
}

func checkPlan(out *OutputFormatter, plan *director.Plan, path string) error {
	old, err := director.ReadPlan(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read plan", err)
	}

	res := PlanCheck{
		Path:       path,
		Stale:      old.ID != plan.ID || old.TotalFrames != plan.TotalFrames,
		ExportedID: old.ID,
		CurrentID:  plan.ID,
	}
	if res.Stale {
		return out.Failure(res, NewExitError(ExitFailure,
			fmt.Sprintf("plan %s is stale: exported %s, project is %s", path, old.ID, plan.ID)))
	}
	return out.Success(res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "[+++] plan %s is up to date\n", path)
		return err
	})
}
