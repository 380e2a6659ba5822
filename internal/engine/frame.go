package engine

import (
	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/sequencer"
	"github.com/ivlev/sceneclock/internal/stagger"
)

// FrameState is everything the painting layer needs for one frame.
type FrameState struct {
	Frame           int                   `json:"frame"`
	ActiveScene     int                   `json:"activeScene"`
	SceneLocalFrame int                   `json:"sceneLocalFrame"`
	Layout          config.Layout         `json:"layout"`
	Transition      *sequencer.Transition `json:"transition,omitempty"`
	Elements        []ElementState        `json:"elements"`
	Reveals         []RevealState         `json:"reveals"`
	AudioCues       []cues.Cue            `json:"audioCues"`
	Warnings        []diag.Warning        `json:"warnings,omitempty"`
}

// ElementState is the animation state of one element.
type ElementState struct {
	ID        string            `json:"id"`
	Onset     int               `json:"onset"`
	Progress  float64           `json:"progress"`
	Opacity   float64           `json:"opacity"`
	Direction stagger.Direction `json:"direction"`
}

// RevealState is the typewriter state of one text block.
type RevealState struct {
	ID               string `json:"id"`
	VisibleCharCount int    `json:"visibleCharCount"`
	TotalChars       int    `json:"totalChars"`
	CursorVisible    bool   `json:"cursorVisible"`
	Text             string `json:"text"`
}

// Frame computes the state at frame f. Frames outside the timeline clamp to
// its first or last frame. The result depends on f and the timeline only.
func (t *Timeline) Frame(f int) FrameState {
	f = sequencer.Clamp(t.intervals, f)
	idx, local := sequencer.Locate(t.intervals, f)

	st := FrameState{
		Frame:           f,
		ActiveScene:     idx,
		SceneLocalFrame: local,
		Elements:        []ElementState{},
		Reveals:         []RevealState{},
		AudioCues:       cues.Active(t.schedule, f),
	}
	if st.AudioCues == nil {
		st.AudioCues = []cues.Cue{}
	}
	if idx < 0 {
		return st
	}

	if tr, ok := sequencer.TransitionAt(t.intervals, f); ok {
		st.Transition = &tr
	}

	plan := t.plans[idx]
	st.Layout = plan.Layout
	fps := t.project.FPS
	for _, e := range plan.Elements {
		st.Elements = append(st.Elements, ElementState{
			ID:        e.ID,
			Onset:     e.Onset,
			Progress:  e.Progress(local, fps),
			Opacity:   e.Opacity(local, fps),
			Direction: e.Direction,
		})
	}
	for _, r := range plan.Reveals {
		st.Reveals = append(st.Reveals, RevealState{
			ID:               r.ID,
			VisibleCharCount: r.Schedule.VisibleCount(local),
			TotalChars:       r.Schedule.Len(),
			CursorVisible:    r.Schedule.CursorVisible(local),
			Text:             r.Schedule.Visible(local),
		})
	}
	for _, w := range t.warnings {
		if w.Scene == idx || w.Scene == diag.GlobalScene {
			st.Warnings = append(st.Warnings, w)
		}
	}
	return st
}
