package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/stagger"
)

func newContext(index int, scene config.Scene) Context {
	return Context{
		Index:  index,
		Scene:  scene,
		Frames: int(scene.Duration * 30),
		FPS:    30,
		Theme:  config.ThemeByName("youtube_videos"),
	}
}

func build(t *testing.T, index int, scene config.Scene) ScenePlan {
	t.Helper()
	plan, err := Build(newContext(index, scene))
	require.NoError(t, err)
	return plan
}

func onsets(els []Element) []int {
	var out []int
	for _, e := range els {
		out = append(out, e.Onset)
	}
	return out
}

func TestEveryLayoutHasBuilder(t *testing.T) {
	for _, l := range config.Layouts {
		_, ok := For(l)
		assert.True(t, ok, "layout %s", l)
	}
	_, err := Build(newContext(0, config.Scene{Layout: "NOPE", Duration: 1}))
	assert.Error(t, err)
}

func TestListStagger(t *testing.T) {
	plan := build(t, 2, config.Scene{
		Layout:   config.LayoutList,
		Duration: 5,
		Content: config.Content{
			Title:  "Steps",
			Points: []string{"a", "b", "c", "d", "e", "f"},
		},
	})

	assert.Equal(t, 2, plan.Index)
	assert.Equal(t, 150, plan.Frames)
	assert.Equal(t, []int{15, 35, 52, 69, 86, 103, 120}, onsets(plan.Elements))
	assert.Empty(t, plan.Warnings)

	require.Len(t, plan.Cues, 7)
	assert.Equal(t, SfxPop, plan.Cues[0].Asset)
	assert.Equal(t, 0.6, plan.Cues[0].Volume)
	for _, c := range plan.Cues[1:] {
		assert.InDelta(t, 0.48, c.Volume, 1e-12)
		assert.Equal(t, 2, c.Scene)
	}
}

func TestListOverflowWarns(t *testing.T) {
	points := make([]string, 20)
	for i := range points {
		points[i] = "p"
	}
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutList,
		Duration: 3,
		Content:  config.Content{Points: points},
	})

	ws := diag.Filter(plan.Warnings, diag.DegenerateWindow)
	require.NotEmpty(t, ws)
	assert.Equal(t, "points", ws[0].Element)

	els := plan.Elements
	for i := 1; i < len(els); i++ {
		assert.GreaterOrEqual(t, els[i].Onset-els[i-1].Onset, 10)
	}
}

func TestListTimingOverrides(t *testing.T) {
	delay, spacing, frac := 5, 30, 0.5
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutList,
		Duration: 5,
		Content:  config.Content{Points: []string{"a", "b", "c"}},
		Timing:   config.Timing{Delay: &delay, MinSpacing: &spacing, WindowFraction: &frac},
	})

	// window 75-25=50 gives 25 per gap, the floor of 30 wins.
	assert.Equal(t, []int{25, 55, 85}, onsets(plan.Elements))
	assert.NotEmpty(t, plan.Warnings)
}

func TestGridAlternatesAndFades(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutGrid,
		Duration: 5,
		Content:  config.Content{Medias: []string{"a.png", "b.png", "c.png", "d.png"}},
	})

	require.Len(t, plan.Elements, 4)
	assert.Equal(t, []int{15, 27, 39, 51}, onsets(plan.Elements))
	assert.Equal(t, stagger.DirectionLeft, plan.Elements[0].Direction)
	assert.Equal(t, stagger.DirectionRight, plan.Elements[1].Direction)
	assert.Equal(t, 140, plan.Elements[0].ExitStart)
	assert.Equal(t, 150, plan.Elements[0].ExitEnd)
	assert.Len(t, plan.Cues, 4)

	e := plan.Elements[0]
	assert.Equal(t, 0.0, e.Opacity(10, 30))
	assert.InDelta(t, 1.0, e.Opacity(100, 30), 0.05)
	assert.InDelta(t, 0.5, e.Opacity(145, 30), 0.05)
	assert.InDelta(t, 0.0, e.Opacity(150, 30), 1e-9)
}

func TestHeroTypewriterCues(t *testing.T) {
	plan := build(t, 1, config.Scene{
		Layout:   config.LayoutHero,
		Duration: 5,
		Content:  config.Content{Text: "Hello world"},
	})

	require.Len(t, plan.Reveals, 1)
	s := plan.Reveals[0].Schedule
	assert.Equal(t, 11, s.Len())
	assert.Equal(t, 0, s.VisibleCount(29))
	assert.Equal(t, 1, s.VisibleCount(30))

	require.Len(t, plan.Cues, 10, "no keystroke for the space")
	for _, c := range plan.Cues {
		assert.Equal(t, SfxTypingKey, c.Asset)
		assert.Equal(t, TypingKeyVolume, c.Volume)
		assert.Equal(t, cues.SourceReveal, c.Source)
	}
	assert.Equal(t, 30, plan.Cues[0].Onset)
	assert.Empty(t, plan.Warnings)
}

func TestHeroTooLongWarns(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutHero,
		Duration: 1,
		Content:  config.Content{Text: "this sentence cannot be typed in a single second"},
	})
	assert.Len(t, diag.Filter(plan.Warnings, diag.DegenerateWindow), 1)
}

func TestHeroNearZeroSpeed(t *testing.T) {
	speed := 1e-300
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutHero,
		Duration: 1,
		Content:  config.Content{Text: "abc"},
		Timing:   config.Timing{Speed: &speed},
	})

	require.Len(t, plan.Cues, 1)
	assert.Equal(t, 30, plan.Cues[0].Onset)
	assert.Len(t, diag.Filter(plan.Warnings, diag.DegenerateWindow), 1)
}

func TestQuoteAuthorNearZeroSpeed(t *testing.T) {
	speed := 1e-300
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutQuote,
		Duration: 6,
		Content:  config.Content{Quote: "Be brief", Author: "Anon"},
		Timing:   config.Timing{Speed: &speed},
	})

	require.Len(t, plan.Elements, 1)
	assert.Equal(t, 190, plan.Elements[0].Onset)
}

func TestHeroJitter(t *testing.T) {
	text := "Hello world"
	plain := build(t, 0, config.Scene{
		Layout:   config.LayoutHero,
		Duration: 5,
		Content:  config.Content{Text: text},
	}).Reveals[0].Schedule

	amp := 3.0
	jittered := build(t, 0, config.Scene{
		Layout:   config.LayoutHero,
		Duration: 5,
		Content:  config.Content{Text: text},
		Timing:   config.Timing{JitterAmplitude: &amp},
	}).Reveals[0].Schedule

	assert.NotEqual(t, plain.Onsets(), jittered.Onsets())
	for i := 0; i < jittered.Len(); i++ {
		assert.GreaterOrEqual(t, jittered.Onset(i), 30.0)
		assert.InDelta(t, plain.Onset(i), jittered.Onset(i), amp+1e-9)
	}
}

func TestConceptMediaSfx(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutConcept,
		Duration: 4,
		Content:  config.Content{Media: "lotties/machine.json"},
	})

	require.Len(t, plan.Elements, 1)
	assert.Equal(t, 30, plan.Elements[0].Onset)
	require.Len(t, plan.Cues, 1)
	assert.Equal(t, SfxClick, plan.Cues[0].Asset)
	assert.Equal(t, MediaSfxVolume, plan.Cues[0].Volume)
}

func TestSplitTextTop(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutSplitTextTop,
		Duration: 10,
		Content: config.Content{
			Top:    &config.Zone{Text: "one two three", Keywords: []string{"two"}},
			Bottom: &config.Zone{Media: "cerveau.json"},
		},
	})

	byID := map[string]Element{}
	for _, e := range plan.Elements {
		byID[e.ID] = e
	}
	assert.Equal(t, 180, byID["shift"].Onset)
	assert.Equal(t, 25, byID["top.word.0"].Onset)
	assert.Equal(t, 28, byID["top.word.1"].Onset)
	assert.Equal(t, 31, byID["top.word.2"].Onset)
	assert.True(t, byID["top.word.1"].Keyword)
	assert.Equal(t, 180, byID["bottom.media"].Onset)

	require.Len(t, plan.Cues, 2)
	assert.Equal(t, SfxDoublePop, plan.Cues[0].Asset)
	assert.Equal(t, 25, plan.Cues[0].Onset)
	assert.Equal(t, SfxPop, plan.Cues[1].Asset)
	assert.Equal(t, 180, plan.Cues[1].Onset)
}

func TestSplitMediaLeftTogether(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutSplitMediaLeft,
		Duration: 4,
		Content: config.Content{
			Left:  &config.Zone{Media: "clip.mp4"},
			Right: &config.Zone{Text: "hi there"},
		},
	})

	byID := map[string]Element{}
	for _, e := range plan.Elements {
		byID[e.ID] = e
	}
	assert.Equal(t, 15, byID["left.media"].Onset)
	assert.Equal(t, 20, byID["right.word.0"].Onset)
	assert.Equal(t, 23, byID["right.word.1"].Onset)
	_, shifted := byID["shift"]
	assert.False(t, shifted)
}

func TestSplitTextLeftFitsWindow(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutSplitTextLeft,
		Duration: 10,
		Content: config.Content{
			Left:  &config.Zone{Text: "twenty characters!!!"},
			Right: &config.Zone{Media: "photo.webp"},
		},
	})

	// media at 180, writing must end by 150, typing starts at 25.
	require.Len(t, plan.Reveals, 1)
	s := plan.Reveals[0].Schedule
	assert.Equal(t, 25.0, s.Onset(0))
	assert.LessOrEqual(t, s.End(), 150.0)
	assert.Empty(t, plan.Warnings)
}

func TestDiagramSteps(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutDiagram,
		Duration: 5,
		Content:  config.Content{Code: "graph LR; A-->B; B-->C; C-->D"},
	})

	require.Len(t, plan.Elements, 4)
	assert.Equal(t, "graph LR", plan.Elements[0].Text)
	// window 110 over 2 gaps.
	assert.Equal(t, []int{0, 20, 75, 130}, onsets(plan.Elements))
	for _, c := range plan.Cues {
		assert.Equal(t, 1.2, c.PlaybackRate)
	}
}

func TestQuoteAuthorFollowsReveal(t *testing.T) {
	plan := build(t, 0, config.Scene{
		Layout:   config.LayoutQuote,
		Duration: 6,
		Content:  config.Content{Quote: "Be brief", Author: "Anon"},
	})

	require.Len(t, plan.Reveals, 1)
	end := int(plan.Reveals[0].Schedule.End())
	require.Len(t, plan.Elements, 1)
	assert.Equal(t, end+10, plan.Elements[0].Onset)
}

func TestMediaSfx(t *testing.T) {
	assert.Equal(t, SfxPop, MediaSfx("cerveau"))
	assert.Equal(t, SfxClick, MediaSfx("lotties/Machine.json"))
	assert.Equal(t, SfxPop, MediaSfx("something.png"))
	assert.Equal(t, SfxPop, MediaSfx(""))
}

func TestElementSettled(t *testing.T) {
	e := Element{ID: "title", Onset: 10, Spring: springSoft}
	settled := e.Settled(30)
	assert.Greater(t, settled, 10)
	assert.Less(t, settled, 10+60)
	for f := settled; f < settled+90; f++ {
		assert.InDelta(t, 1.0, e.Progress(f, 30), SettleThreshold+1e-12, "frame %d", f)
	}
}
