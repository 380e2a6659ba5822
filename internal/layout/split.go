package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/reveal"
	"github.com/ivlev/sceneclock/internal/stagger"
	"github.com/ivlev/sceneclock/internal/timing"
)

// wordCadence is the gap in frames between two words of a split text zone.
const wordCadence = 3

type zone struct {
	name string
	pick func(config.Content) *config.Zone
}

var (
	zoneTop    = zone{"top", func(c config.Content) *config.Zone { return c.Top }}
	zoneBottom = zone{"bottom", func(c config.Content) *config.Zone { return c.Bottom }}
	zoneLeft   = zone{"left", func(c config.Content) *config.Zone { return c.Left }}
	zoneRight  = zone{"right", func(c config.Content) *config.Zone { return c.Right }}
)

// split is a two-zone layout. The first zone enters at delay, the second at
// the shift frame; a zero shift fraction brings both in together.
type split struct {
	first, second zone
	delay         int
	textOffset    int
	shift         float64
	entrance      timing.SpringConfig
}

var (
	splitTextTop   = split{first: zoneTop, second: zoneBottom, delay: 15, textOffset: 10, shift: 0.6, entrance: springSoft}
	splitMediaTop  = split{first: zoneTop, second: zoneBottom, delay: 10, textOffset: 5, shift: 0.2, entrance: springLight}
	splitMediaLeft = split{first: zoneLeft, second: zoneRight, delay: 15, textOffset: 5, entrance: springSoft}
)

func (s split) Build(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	t := ctx.Scene.Timing
	delay := t.DelayOr(s.delay)

	second := delay
	if s.shift > 0 {
		second = fraction(ctx.Frames, t.WindowFractionOr(s.shift))
		if second < delay {
			second = delay
		}
		p.element(Element{ID: "shift", Onset: second, Spring: springShift})
	}

	s.zone(p, s.first, delay, s.entrance)
	s.zone(p, s.second, second, springShift)
	return p.done()
}

func (s split) zone(p *planner, z zone, start int, spring timing.SpringConfig) {
	content := z.pick(p.ctx.Scene.Content)
	if content == nil {
		return
	}
	sfx := p.ctx.Theme.Audio.SfxVolume

	if content.Media != "" {
		p.element(Element{ID: z.name + ".media", Onset: start, Spring: spring, Media: content.Media})
		p.sfx(start, MediaSfx(content.Media), sfx, 1, cues.SourceEntrance)
	}

	if strings.TrimSpace(content.Text) == "" {
		return
	}
	words := reveal.Words(content.Text, content.Keywords)
	textStart := start + s.textOffset
	p.sfx(textStart, SfxDoublePop, sfx, 1, cues.SourceEntrance)
	p.group(z.name+".words", stagger.Params{
		Count:      len(words),
		Window:     (len(words) - 1) * wordCadence,
		MinSpacing: wordCadence,
		BaseDelay:  textStart,
	}, func(i, onset int, _ stagger.Direction) Element {
		return Element{
			ID:      fmt.Sprintf("%s.word.%d", z.name, i),
			Onset:   onset,
			Spring:  springSoft,
			Text:    words[i].Text,
			Keyword: words[i].Keyword,
		}
	})
}

// buildSplitTextLeft types the text zone so that it completes about a second
// before the media zone enters.
func buildSplitTextLeft(ctx Context) ScenePlan {
	p := newPlanner(ctx)
	t := ctx.Scene.Timing
	c := ctx.Scene.Content
	sfx := ctx.Theme.Audio.SfxVolume

	delay := t.DelayOr(15)
	mediaDelay := fraction(ctx.Frames, t.WindowFractionOr(0.6))
	if mediaDelay < delay {
		mediaDelay = delay
	}
	writingEnd := max(delay+20, mediaDelay-ctx.FPS)
	textDelay := delay + 10
	available := max(20, writingEnd-textDelay)

	p.element(Element{ID: "text", Onset: delay, Spring: springSoft})
	for _, z := range []zone{zoneLeft, zoneRight} {
		content := z.pick(c)
		if content == nil {
			continue
		}
		if content.Text != "" {
			speed, ok := reveal.SpeedForWindow(utf8.RuneCountInString(content.Text), available)
			if !ok {
				p.warn(diag.DegenerateWindow, z.name+".text", "no frames to type %q", content.Text)
			}
			p.typewriter(z.name+".text", content.Text, t.SpeedOr(speed), textDelay)
		}
		if content.Media != "" {
			p.element(Element{ID: z.name + ".media", Onset: mediaDelay, Spring: springSoft, Media: content.Media})
			p.sfx(mediaDelay, MediaSfx(content.Media), sfx, 1, cues.SourceEntrance)
		}
	}
	return p.done()
}
