// Package sequencer lays scenes out on the global frame axis.
package sequencer

import (
	"sort"

	"github.com/ivlev/sceneclock/internal/timing"
)

// Interval is the absolute frame range of one scene and, for every scene but
// the last, the transition window towards the next one.
type Interval struct {
	Index           int  `yaml:"index" json:"index"`
	Start           int  `yaml:"start" json:"start"`
	End             int  `yaml:"end" json:"end"` // exclusive
	HasTransition   bool `yaml:"has_transition" json:"hasTransition"`
	TransitionStart int  `yaml:"transition_start,omitempty" json:"transitionStart,omitempty"`
	TransitionEnd   int  `yaml:"transition_end,omitempty" json:"transitionEnd,omitempty"` // exclusive
	Transition      Kind `yaml:"transition,omitempty" json:"transition,omitempty"`
}

// Frames is the length of the scene.
func (iv Interval) Frames() int { return iv.End - iv.Start }

// Contains reports whether frame lies in [Start, End).
func (iv Interval) Contains(frame int) bool { return frame >= iv.Start && frame < iv.End }

// TransitionFrames converts a transition length to frames.
func TransitionFrames(seconds float64, fps int) int {
	if seconds <= 0 {
		return 0
	}
	return timing.FrameAtSeconds(seconds, fps)
}

// Sequence computes the intervals of scenes with the given durations in
// seconds. Intervals tile [0, total) without gaps; the window between scene
// k and k+1 starts transitionFrames/2 frames before their boundary and lasts
// transitionFrames frames, clamped to the two scenes.
func Sequence(durations []float64, fps, transitionFrames int) []Interval {
	intervals := make([]Interval, len(durations))

	cumulative := 0
	for i, d := range durations {
		n := timing.DurationFrames(d, fps)
		intervals[i] = Interval{Index: i, Start: cumulative, End: cumulative + n}
		cumulative += n
	}

	if transitionFrames <= 0 {
		return intervals
	}

	half := transitionFrames / 2
	for i := 0; i < len(intervals)-1; i++ {
		cur, next := &intervals[i], intervals[i+1]

		start := cur.End - half
		if start < cur.Start {
			start = cur.Start
		}
		end := start + transitionFrames
		if end > next.End {
			end = next.End
		}

		cur.HasTransition = true
		cur.TransitionStart = start
		cur.TransitionEnd = end
		cur.Transition = KindFor(i)
	}
	return intervals
}

// Total is the number of frames covered by intervals.
func Total(intervals []Interval) int {
	if len(intervals) == 0 {
		return 0
	}
	return intervals[len(intervals)-1].End
}

// Locate returns the index of the interval holding frame and the frame
// relative to that interval's start. Frames before 0 map to the first frame
// and frames past the end to the terminal frame of the last scene.
func Locate(intervals []Interval, frame int) (index, local int) {
	if len(intervals) == 0 {
		return -1, 0
	}
	if frame < 0 {
		return 0, 0
	}
	total := Total(intervals)
	if frame >= total {
		last := intervals[len(intervals)-1]
		return last.Index, last.Frames() - 1
	}
	i := sort.Search(len(intervals), func(i int) bool { return intervals[i].End > frame })
	return i, frame - intervals[i].Start
}

// Clamp limits frame to [0, total-1].
func Clamp(intervals []Interval, frame int) int {
	total := Total(intervals)
	if frame < 0 || total == 0 {
		return 0
	}
	if frame >= total {
		return total - 1
	}
	return frame
}

// Transition is the state of an active transition.
type Transition struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Kind     Kind    `json:"kind"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Progress float64 `json:"progress"`
	// Eased is Progress through an ease-in-out cubic curve.
	Eased float64 `json:"eased"`
}

// TransitionAt returns the transition active at frame, if any. Progress is
// linear in [0, 1).
func TransitionAt(intervals []Interval, frame int) (Transition, bool) {
	frame = Clamp(intervals, frame)
	idx, _ := Locate(intervals, frame)
	if idx < 0 {
		return Transition{}, false
	}

	// The window of boundary k|k+1 can reach into scene k+1, so check the
	// previous scene's window as well as the current one.
	for _, k := range []int{idx - 1, idx} {
		if k < 0 || k >= len(intervals) {
			continue
		}
		iv := intervals[k]
		if !iv.HasTransition || frame < iv.TransitionStart || frame >= iv.TransitionEnd {
			continue
		}
		span := iv.TransitionEnd - iv.TransitionStart
		progress := float64(frame-iv.TransitionStart) / float64(span)
		return Transition{
			From:     k,
			To:       k + 1,
			Kind:     iv.Transition,
			Start:    iv.TransitionStart,
			End:      iv.TransitionEnd,
			Progress: progress,
			Eased:    timing.EaseInOutCubic(progress),
		}, true
	}
	return Transition{}, false
}
