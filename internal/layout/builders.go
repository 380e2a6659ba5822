package layout

import (
	"fmt"
	"math"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/stagger"
	"github.com/ivlev/sceneclock/internal/timing"
)

var (
	springSoft   = timing.SpringConfig{Damping: 12, Stiffness: 100, Mass: 1}
	springLight  = timing.SpringConfig{Damping: 12, Stiffness: 100, Mass: 0.8}
	springFirm   = timing.SpringConfig{Damping: 15, Stiffness: 100, Mass: 1}
	springShift  = timing.SpringConfig{Damping: 15, Stiffness: 80, Mass: 1}
	typingSpeed  = 0.7
	titleOnset   = 10
	exitFrames   = 10
	listWindow   = 0.8
	gridMaxSpace = 12
)

func buildHero(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	t := ctx.Scene.Timing
	p.typewriter("text", ctx.Scene.Content.Text, t.SpeedOr(typingSpeed), t.DelayOr(30))
	return p.done()
}

func buildConcept(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content
	delay := ctx.Scene.Timing.DelayOr(30)

	p.element(Element{ID: "media", Onset: delay, Spring: springLight, Media: c.Media})
	p.sfx(delay, MediaSfx(c.Media), MediaSfxVolume, 1, cues.SourceEntrance)
	return p.done()
}

func buildList(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content
	t := ctx.Scene.Timing
	sfx := ctx.Theme.Audio.SfxVolume
	delay := t.DelayOr(15)

	if c.Title != "" {
		p.element(Element{ID: "title", Onset: delay, Spring: springSoft, Text: c.Title})
		p.sfx(delay, SfxPop, sfx, 1, cues.SourceEntrance)
	}

	base := delay + 20
	p.group("points", stagger.Params{
		Count:      len(c.Points),
		Window:     fraction(ctx.Frames, t.WindowFractionOr(listWindow)) - base,
		MinSpacing: t.MinSpacingOr(10),
		BaseDelay:  base,
	}, func(i, onset int, _ stagger.Direction) Element {
		p.sfx(onset, SfxPop, sfx*0.8, 1, cues.SourceEntrance)
		return Element{ID: fmt.Sprintf("point.%d", i), Onset: onset, Spring: springSoft, Text: c.Points[i]}
	})
	return p.done()
}

func buildGrid(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content
	t := ctx.Scene.Timing
	sfx := ctx.Theme.Audio.SfxVolume
	delay := t.DelayOr(15)
	exitStart, exitEnd := exit(ctx.Frames, exitFrames)

	if c.Title != "" {
		p.element(Element{ID: "title", Onset: titleOnset, Spring: springSoft, Text: c.Title,
			ExitStart: exitStart, ExitEnd: exitEnd})
	}

	p.group("items", stagger.Params{
		Count:      len(c.Medias),
		Window:     fraction(ctx.Frames, t.WindowFractionOr(listWindow)) - delay,
		MinSpacing: t.MinSpacingOr(0),
		MaxSpacing: gridMaxSpace,
		BaseDelay:  delay,
		Alternate:  stagger.AlternateLeftRight,
	}, func(i, onset int, dir stagger.Direction) Element {
		p.sfx(onset, SfxPop, sfx, 1, cues.SourceEntrance)
		return Element{
			ID:        fmt.Sprintf("item.%d", i),
			Onset:     onset,
			Spring:    springSoft,
			Direction: dir,
			ExitStart: exitStart,
			ExitEnd:   exitEnd,
			Media:     c.Medias[i],
		}
	})
	return p.done()
}

func buildComparison(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content
	delay := ctx.Scene.Timing.DelayOr(15)
	exitStart, exitEnd := exit(ctx.Frames, exitFrames)

	if c.Title != "" {
		p.element(Element{ID: "title", Onset: titleOnset, Spring: springSoft, Text: c.Title})
	}

	sides := []stagger.Direction{stagger.DirectionLeft, stagger.DirectionRight}
	for i, dir := range sides {
		e := Element{
			ID:        "column." + dir.String(),
			Onset:     delay,
			Spring:    springSoft,
			Direction: dir,
			ExitStart: exitStart,
			ExitEnd:   exitEnd,
		}
		if i < len(c.Medias) {
			e.Media = c.Medias[i]
		}
		if i < len(c.Points) {
			e.Text = c.Points[i]
		}
		p.element(e)
	}
	p.sfx(delay, SfxComparison, ctx.Theme.Audio.SfxVolume, 1, cues.SourceEntrance)
	return p.done()
}

func buildDiagram(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	t := ctx.Scene.Timing
	header, steps := config.DiagramSteps(ctx.Scene.Content.Code)
	delay := t.DelayOr(20)

	p.element(Element{ID: "frame", Onset: 0, Spring: springFirm, Text: header})
	p.group("steps", stagger.Params{
		Count:      len(steps),
		Window:     ctx.Frames - 2*delay,
		MinSpacing: t.MinSpacingOr(15),
		BaseDelay:  delay,
	}, func(i, onset int, _ stagger.Direction) Element {
		p.sfx(onset, SfxPop, ctx.Theme.Audio.SfxVolume, 1.2, cues.SourceEntrance)
		return Element{ID: fmt.Sprintf("step.%d", i), Onset: onset, Spring: springFirm, Text: steps[i]}
	})
	return p.done()
}

func buildTalkingHead(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content

	video := c.VideoSource
	if video == "" {
		video = c.Media
	}
	p.element(Element{ID: "video", Onset: 0, Spring: springSoft, Media: video})
	if c.Text != "" {
		p.element(Element{ID: "text", Onset: ctx.Scene.Timing.DelayOr(15), Spring: springSoft, Text: c.Text})
	}
	return p.done()
}

func buildQuote(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	c := ctx.Scene.Content
	t := ctx.Scene.Timing

	s := p.typewriter("quote", c.Quote, t.SpeedOr(typingSpeed), t.DelayOr(30))
	if c.Author != "" {
		onset := int(math.Min(s.End(), float64(ctx.Frames))) + exitFrames
		p.element(Element{ID: "author", Onset: onset, Spring: springSoft, Text: c.Author})
		p.sfx(onset, SfxPop, ctx.Theme.Audio.SfxVolume, 1, cues.SourceEntrance)
	}
	return p.done()
}
