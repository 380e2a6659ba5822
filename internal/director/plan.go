// Package director exports a timeline as a reviewable plan document.
package director

import (
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/engine"
	"github.com/ivlev/sceneclock/internal/layout"
	"github.com/ivlev/sceneclock/internal/sequencer"
)

const PlanVersion = "1.0"

// Plan is the full derived timing of a project.
type Plan struct {
	Version     string         `yaml:"version"`
	ID          string         `yaml:"id"`
	FPS         int            `yaml:"fps"`
	TotalFrames int            `yaml:"total_frames"`
	Scenes      []Scene        `yaml:"scenes"`
	Cues        []cues.Cue     `yaml:"cues"`
	Warnings    []diag.Warning `yaml:"warnings,omitempty"`
}

// Scene is one scene of the plan. Element and reveal frames are scene-local.
type Scene struct {
	Interval sequencer.Interval `yaml:"interval"`
	Layout   string             `yaml:"layout"`
	Elements []Element          `yaml:"elements,omitempty"`
	Reveals  []Reveal           `yaml:"reveals,omitempty"`
}

// Element is a planned element with the frame its entrance comes to rest.
type Element struct {
	layout.Element `yaml:",inline"`
	SettledAt      int `yaml:"settled_at"`
}

// Reveal summarizes a typewriter block.
type Reveal struct {
	ID       string  `yaml:"id"`
	Chars    int     `yaml:"chars"`
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Triggers int     `yaml:"triggers"`
}

// NewPlan captures tl.
func NewPlan(tl *engine.Timeline) *Plan {
	p := &Plan{
		Version:     PlanVersion,
		ID:          tl.ID().String(),
		FPS:         tl.FPS(),
		TotalFrames: tl.TotalFrames(),
		Cues:        tl.Cues(),
		Warnings:    tl.Warnings(),
	}

	for i, iv := range tl.Intervals() {
		sp := tl.Plan(i)
		scene := Scene{
			Interval: iv,
			Layout:   string(sp.Layout),
		}
		for _, e := range sp.Elements {
			scene.Elements = append(scene.Elements, Element{Element: e, SettledAt: e.Settled(tl.FPS())})
		}
		for _, r := range sp.Reveals {
			start := r.Schedule.End()
			if r.Schedule.Len() > 0 {
				start = r.Schedule.Onset(0)
			}
			scene.Reveals = append(scene.Reveals, Reveal{
				ID:       r.ID,
				Chars:    r.Schedule.Len(),
				Start:    start,
				End:      r.Schedule.End(),
				Triggers: len(r.Schedule.Triggers()),
			})
		}
		p.Scenes = append(p.Scenes, scene)
	}
	return p
}
