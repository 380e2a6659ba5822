package engine

import (
	"fmt"
	"io"
	"strconv"
)

// WriteSchedule prints the scene intervals, the cue schedule and the
// warnings of tl as plain text, one item per line.
func WriteSchedule(w io.Writer, tl *Timeline) error {
	for _, iv := range tl.intervals {
		line := fmt.Sprintf("scene %d %s [%d,%d)", iv.Index, tl.plans[iv.Index].Layout, iv.Start, iv.End)
		if iv.HasTransition {
			line += fmt.Sprintf(" %s [%d,%d)", iv.Transition, iv.TransitionStart, iv.TransitionEnd)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, c := range tl.schedule {
		stop := "-"
		if !c.OneShot() {
			stop = strconv.Itoa(c.Stop)
		}
		_, err := fmt.Fprintf(w, "cue %d %s %s vol=%.3f rate=%.3f scene=%d %s\n",
			c.Onset, stop, c.Asset, c.Volume, c.PlaybackRate, c.Scene, c.Source)
		if err != nil {
			return err
		}
	}

	for _, warn := range tl.warnings {
		if _, err := fmt.Fprintf(w, "warn %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
