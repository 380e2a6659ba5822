// Package engine composes the scene sequence, the per-scene plans and the
// audio schedule into a Timeline that answers per-frame queries.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/layout"
	"github.com/ivlev/sceneclock/internal/sequencer"
)

// planNamespace scopes timeline IDs.
var planNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ivlev/sceneclock/plan"))

// Timeline is the fully resolved, read-only timing of a project. All methods
// are safe for concurrent use.
type Timeline struct {
	project   config.Project
	intervals []sequencer.Interval
	plans     []layout.ScenePlan
	schedule  []cues.Cue
	warnings  []diag.Warning
	total     int
	id        uuid.UUID
}

type options struct {
	checker cues.AssetChecker
	extra   []diag.Warning
}

// Option customizes Build.
type Option func(*options)

// WithAssetChecker reports unresolvable cue assets as warnings.
func WithAssetChecker(c cues.AssetChecker) Option {
	return func(o *options) { o.checker = c }
}

// WithWarnings attaches warnings found outside the engine, such as
// voice-over overruns reported by the asset probe.
func WithWarnings(ws ...diag.Warning) Option {
	return func(o *options) { o.extra = append(o.extra, ws...) }
}

// Build validates p and derives its timeline. The only error is a
// *config.ConfigError; warnings are kept on the timeline.
func Build(p config.Project, opts ...Option) (*Timeline, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p.ApplyDefaults()
	if err := config.Validate(&p); err != nil {
		return nil, err
	}
	p = p.Resolve()

	durations := make([]float64, len(p.Scenes))
	for i, s := range p.Scenes {
		durations[i] = s.Duration
	}
	intervals := sequencer.Sequence(durations, p.FPS, sequencer.TransitionFrames(*p.TransitionSeconds, p.FPS))

	tl := &Timeline{
		project:   p,
		intervals: intervals,
		plans:     make([]layout.ScenePlan, len(p.Scenes)),
		total:     sequencer.Total(intervals),
	}

	collector := cues.NewCollector(o.checker)
	for i, s := range p.Scenes {
		iv := intervals[i]
		plan, err := layout.Build(layout.Context{
			Index:  i,
			Scene:  s,
			Frames: iv.Frames(),
			FPS:    p.FPS,
			Theme:  p.Theme,
		})
		if err != nil {
			// Validate rejects unknown layouts, so this is a programming error.
			return nil, fmt.Errorf("plan scene %d: %w", i, err)
		}
		plan.Cues = withinScene(plan.Cues, plan.Frames)
		tl.plans[i] = plan
		tl.warnings = append(tl.warnings, plan.Warnings...)

		collector.Offset(iv.Start, plan.Cues...)

		if s.VoiceOver != "" {
			collector.Add(cues.Cue{
				Onset:        iv.Start,
				Stop:         iv.End,
				Asset:        s.VoiceOver,
				Volume:       1,
				PlaybackRate: 1,
				Scene:        i,
				Source:       cues.SourceVoiceOver,
			})
		}
		if iv.HasTransition {
			collector.Add(cues.Cue{
				Onset:        iv.TransitionStart,
				Asset:        iv.Transition.Sfx(),
				Volume:       p.Theme.Audio.SfxVolume,
				PlaybackRate: 1,
				Scene:        i,
				Source:       cues.SourceTransition,
			})
		}
	}

	if music := p.Theme.Assets.BackgroundMusic; music != "" && p.Theme.Audio.MusicVolume > 0 {
		collector.Add(cues.Cue{
			Onset:        0,
			Stop:         tl.total,
			Asset:        music,
			Volume:       p.Theme.Audio.MusicVolume,
			PlaybackRate: 1,
			Loop:         true,
			Scene:        diag.GlobalScene,
			Source:       cues.SourceMusic,
		})
	}

	tl.schedule = collector.Schedule()
	tl.warnings = append(tl.warnings, collector.Warnings()...)
	tl.warnings = append(tl.warnings, o.extra...)

	id, err := fingerprint(p)
	if err != nil {
		return nil, err
	}
	tl.id = id
	return tl, nil
}

// withinScene drops scene-local cues that start after the scene has ended
// and cuts sustained ones at its end. A scene's sounds never leak into the
// next one; the overrun itself is reported by the layout.
func withinScene(local []cues.Cue, frames int) []cues.Cue {
	out := make([]cues.Cue, 0, len(local))
	for _, c := range local {
		if c.Onset >= frames {
			continue
		}
		if c.Stop > frames {
			c.Stop = frames
		}
		out = append(out, c)
	}
	return out
}

func fingerprint(p config.Project) (uuid.UUID, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return uuid.Nil, fmt.Errorf("fingerprint project: %w", err)
	}
	return uuid.NewSHA1(planNamespace, data), nil
}

// ID identifies the project the timeline was built from. Identical projects
// get identical IDs.
func (t *Timeline) ID() uuid.UUID { return t.id }

// Project returns the resolved project.
func (t *Timeline) Project() config.Project { return t.project }

// FPS is the frame rate of the timeline.
func (t *Timeline) FPS() int { return t.project.FPS }

// TotalFrames is the length of the timeline.
func (t *Timeline) TotalFrames() int { return t.total }

// Intervals returns a copy of the scene intervals.
func (t *Timeline) Intervals() []sequencer.Interval {
	out := make([]sequencer.Interval, len(t.intervals))
	copy(out, t.intervals)
	return out
}

// Plan returns the plan of scene i.
func (t *Timeline) Plan(i int) layout.ScenePlan { return t.plans[i] }

// Scenes is the number of scenes.
func (t *Timeline) Scenes() int { return len(t.plans) }

// Cues returns a copy of the global, onset-ordered cue schedule.
func (t *Timeline) Cues() []cues.Cue {
	out := make([]cues.Cue, len(t.schedule))
	copy(out, t.schedule)
	return out
}

// Warnings returns every warning raised while building.
func (t *Timeline) Warnings() []diag.Warning {
	out := make([]diag.Warning, len(t.warnings))
	copy(out, t.warnings)
	return out
}
