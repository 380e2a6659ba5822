// Package layout turns a scene into its timing plan. Every layout is a thin
// configuration of the shared stagger, reveal and spring primitives.
package layout

import (
	"fmt"
	"math"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/reveal"
	"github.com/ivlev/sceneclock/internal/stagger"
	"github.com/ivlev/sceneclock/internal/timing"
)

// Context is everything a builder may read. Frames is the scene length.
type Context struct {
	Index  int
	Scene  config.Scene
	Frames int
	FPS    int
	Theme  config.Theme
}

// Builder produces the plan of one layout kind.
type Builder interface {
	Build(ctx Context) ScenePlan
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(ctx Context) ScenePlan

func (f BuilderFunc) Build(ctx Context) ScenePlan { return f(ctx) }

// Element is one animated item. Frames are scene-local.
type Element struct {
	ID        string              `yaml:"id" json:"id"`
	Onset     int                 `yaml:"onset" json:"onset"`
	Spring    timing.SpringConfig `yaml:"spring" json:"spring"`
	Direction stagger.Direction   `yaml:"direction,omitempty" json:"direction,omitempty"`
	// ExitStart and ExitEnd bound a linear fade out. Equal values mean no exit.
	ExitStart int    `yaml:"exit_start,omitempty" json:"exitStart,omitempty"`
	ExitEnd   int    `yaml:"exit_end,omitempty" json:"exitEnd,omitempty"`
	Media     string `yaml:"media,omitempty" json:"media,omitempty"`
	Text      string `yaml:"text,omitempty" json:"text,omitempty"`
	Keyword   bool   `yaml:"keyword,omitempty" json:"keyword,omitempty"`
}

// Progress is the spring value of the element at a scene-local frame.
func (e Element) Progress(local, fps int) float64 {
	return timing.Spring(local-e.Onset, fps, e.Spring)
}

// SettleThreshold is how close to rest an entrance must stay to count as
// finished.
const SettleThreshold = 0.005

// Settled is the scene-local frame from which the entrance stays within
// SettleThreshold of rest.
func (e Element) Settled(fps int) int {
	return e.Onset + timing.SettleFrame(fps, e.Spring, SettleThreshold)
}

// Opacity combines the entrance with the exit fade.
func (e Element) Opacity(local, fps int) float64 {
	if local < e.Onset {
		return 0
	}
	o := timing.Clamp01(e.Progress(local, fps))
	if e.ExitEnd > e.ExitStart {
		o *= timing.Interpolate(float64(local),
			[2]float64{float64(e.ExitStart), float64(e.ExitEnd)},
			[2]float64{1, 0}, timing.ClampBoth)
	}
	return o
}

// RevealBlock is a typewriter-revealed text.
type RevealBlock struct {
	ID       string
	Schedule *reveal.Schedule
}

// ScenePlan is the derived timing of one scene.
type ScenePlan struct {
	Index    int
	Layout   config.Layout
	Frames   int
	Elements []Element
	Reveals  []RevealBlock
	// Cues are scene-local.
	Cues     []cues.Cue
	Warnings []diag.Warning
}

var builders = map[config.Layout]Builder{
	config.LayoutHero:           BuilderFunc(buildHero),
	config.LayoutConcept:        BuilderFunc(buildConcept),
	config.LayoutList:           BuilderFunc(buildList),
	config.LayoutGrid:           BuilderFunc(buildGrid),
	config.LayoutComparison:     BuilderFunc(buildComparison),
	config.LayoutDiagram:        BuilderFunc(buildDiagram),
	config.LayoutTalkingHead:    BuilderFunc(buildTalkingHead),
	config.LayoutQuote:          BuilderFunc(buildQuote),
	config.LayoutSplitTextTop:   splitTextTop,
	config.LayoutSplitMediaTop:  splitMediaTop,
	config.LayoutSplitTextLeft:  BuilderFunc(buildSplitTextLeft),
	config.LayoutSplitMediaLeft: splitMediaLeft,
}

// For returns the builder of a layout kind.
func For(l config.Layout) (Builder, bool) {
	b, ok := builders[l]
	return b, ok
}

// Build plans the scene of ctx.
func Build(ctx Context) (ScenePlan, error) {
	b, ok := For(ctx.Scene.Layout)
	if !ok {
		return ScenePlan{}, fmt.Errorf("scene %d: no builder for layout %q", ctx.Index, ctx.Scene.Layout)
	}
	plan := b.Build(ctx)
	plan.Index = ctx.Index
	plan.Layout = ctx.Scene.Layout
	plan.Frames = ctx.Frames
	for i := range plan.Cues {
		plan.Cues[i].Scene = ctx.Index
	}
	for i := range plan.Warnings {
		plan.Warnings[i].Scene = ctx.Index
	}
	return plan, nil
}

// planner accumulates a ScenePlan.
type planner struct {
	ctx  Context
	plan ScenePlan
}

func newPlanner(ctx Context) *planner { return &planner{ctx: ctx} }

func (p *planner) element(e Element) {
	p.plan.Elements = append(p.plan.Elements, e)
}

func (p *planner) sfx(onset int, asset string, volume, rate float64, src cues.Source) {
	p.plan.Cues = append(p.plan.Cues, cues.Cue{
		Onset:        onset,
		Asset:        asset,
		Volume:       volume,
		PlaybackRate: rate,
		Source:       src,
	})
}

func (p *planner) warn(kind diag.Kind, element, format string, args ...any) {
	p.plan.Warnings = append(p.plan.Warnings, diag.Warning{
		Kind:    kind,
		Element: element,
		Message: fmt.Sprintf(format, args...),
	})
}

// group schedules a staggered set of elements and flags an overflowing window.
func (p *planner) group(name string, params stagger.Params, build func(i int, onset int, dir stagger.Direction) Element) stagger.Plan {
	plan := stagger.Schedule(params)
	for i, d := range plan.Delays {
		p.element(build(i, d, plan.Directions[i]))
	}
	if plan.Overflow {
		p.warn(diag.DegenerateWindow, name,
			"%d items need %d frames at spacing %d, window is %d",
			params.Count, (params.Count-1)*plan.Stride, plan.Stride, max(params.Window, 0))
	}
	if params.Count > 0 && plan.Last() >= p.ctx.Frames {
		p.warn(diag.DegenerateWindow, name,
			"last item enters at frame %d, scene ends at %d", plan.Last(), p.ctx.Frames)
	}
	return plan
}

// typewriter adds a reveal block with one keystroke cue per visible character.
func (p *planner) typewriter(id, text string, speed float64, delay int) *reveal.Schedule {
	params := reveal.Params{Text: text, Speed: speed, Delay: float64(delay)}
	if amp, k := p.ctx.Scene.Timing.Jitter(); amp > 0 {
		params.Jitter = reveal.SineJitter(amp, k)
		params.MaxJitter = amp
	}
	s := reveal.New(params)
	p.plan.Reveals = append(p.plan.Reveals, RevealBlock{ID: id, Schedule: s})
	for _, t := range s.Triggers() {
		p.sfx(t.Frame, SfxTypingKey, TypingKeyVolume, 1, cues.SourceReveal)
	}
	if end := math.Ceil(s.End()); s.Len() > 0 && end > float64(p.ctx.Frames) {
		p.warn(diag.DegenerateWindow, id,
			"%d characters finish at frame %.0f, scene ends at %d", s.Len(), end, p.ctx.Frames)
	}
	return s
}

func (p *planner) done() ScenePlan { return p.plan }

// exit returns the window of the closing fade over the last n frames.
func exit(frames, n int) (int, int) {
	start := frames - n
	if start < 0 {
		start = 0
	}
	return start, frames
}

func fraction(frames int, f float64) int {
	return int(math.Floor(float64(frames) * f))
}
