package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/diag"
	"github.com/ivlev/sceneclock/internal/sequencer"
)

func threeScenes() config.Project {
	return config.Project{
		FPS:       30,
		ThemeName: "youtube_videos",
		Scenes: []config.Scene{
			{
				Layout:    config.LayoutHero,
				Duration:  5,
				VoiceOver: "voice/hero.mp3",
				Content:   config.Content{Text: "Frames all the way down"},
			},
			{
				Layout:   config.LayoutList,
				Duration: 3,
				Content:  config.Content{Title: "Why", Points: []string{"pure", "fast", "exact"}},
			},
			{
				Layout:   config.LayoutGrid,
				Duration: 4,
				Content:  config.Content{Medias: []string{"a.png", "b.png", "c.png"}},
			},
		},
	}
}

func mustBuild(t *testing.T, p config.Project, opts ...Option) *Timeline {
	t.Helper()
	tl, err := Build(p, opts...)
	require.NoError(t, err)
	return tl
}

func frameJSON(t *testing.T, tl *Timeline, f int) string {
	t.Helper()
	b, err := json.Marshal(tl.Frame(f))
	require.NoError(t, err)
	return string(b)
}

func TestBuildIntervals(t *testing.T) {
	tl := mustBuild(t, threeScenes())

	assert.Equal(t, 360, tl.TotalFrames())
	ivs := tl.Intervals()
	require.Len(t, ivs, 3)
	assert.Equal(t, [4]int{0, 150, 143, 158}, [4]int{ivs[0].Start, ivs[0].End, ivs[0].TransitionStart, ivs[0].TransitionEnd})
	assert.Equal(t, [4]int{150, 240, 233, 248}, [4]int{ivs[1].Start, ivs[1].End, ivs[1].TransitionStart, ivs[1].TransitionEnd})
	assert.Equal(t, [2]int{240, 360}, [2]int{ivs[2].Start, ivs[2].End})
	assert.False(t, ivs[2].HasTransition)
}

func TestBuildRejectsInvalidProject(t *testing.T) {
	p := threeScenes()
	p.Scenes[1].Duration = 0

	tl, err := Build(p)
	assert.Nil(t, tl)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.NotEmpty(t, cfgErr.Errors)
}

func TestBuildDoesNotAliasInput(t *testing.T) {
	p := threeScenes()
	tl := mustBuild(t, p)
	p.Scenes[0].Content.Text = "changed"

	assert.Equal(t, "Frames all the way down", tl.Project().Scenes[0].Content.Text)
}

func TestGlobalCues(t *testing.T) {
	tl := mustBuild(t, threeScenes())
	schedule := tl.Cues()

	for i := 1; i < len(schedule); i++ {
		assert.LessOrEqual(t, schedule[i-1].Onset, schedule[i].Onset)
	}

	var transitions, voice, music []cues.Cue
	for _, c := range schedule {
		switch c.Source {
		case cues.SourceTransition:
			transitions = append(transitions, c)
		case cues.SourceVoiceOver:
			voice = append(voice, c)
		case cues.SourceMusic:
			music = append(music, c)
		}
	}

	require.Len(t, transitions, 2)
	assert.Equal(t, 143, transitions[0].Onset)
	assert.Equal(t, "transitions-sfx/whoosh.mp3", transitions[0].Asset)
	assert.Equal(t, 0.6, transitions[0].Volume)
	assert.Equal(t, 233, transitions[1].Onset)
	assert.Equal(t, "transitions-sfx/Swoosh.mp3", transitions[1].Asset)

	require.Len(t, voice, 1)
	assert.Equal(t, 0, voice[0].Onset)
	assert.Equal(t, 150, voice[0].Stop)
	assert.Equal(t, 1.0, voice[0].Volume)

	require.Len(t, music, 1)
	assert.Equal(t, 360, music[0].Stop)
	assert.True(t, music[0].Loop)
	assert.Equal(t, 0.1, music[0].Volume)
}

func TestNoMusicWhenSilent(t *testing.T) {
	p := threeScenes()
	p.ThemeName = "minimal_flat"
	tl := mustBuild(t, p)

	for _, c := range tl.Cues() {
		assert.NotEqual(t, cues.SourceMusic, c.Source)
	}
}

func TestFrameState(t *testing.T) {
	tl := mustBuild(t, threeScenes())

	st := tl.Frame(49)
	assert.Equal(t, 0, st.ActiveScene)
	assert.Equal(t, 49, st.SceneLocalFrame)
	assert.Equal(t, config.LayoutHero, st.Layout)
	assert.Nil(t, st.Transition)
	require.Len(t, st.Reveals, 1)
	// speed 0.7 from frame 30: onset i = 30 + i/0.7, so 14 characters by 49.
	assert.Equal(t, 14, st.Reveals[0].VisibleCharCount)
	assert.Equal(t, 23, st.Reveals[0].TotalChars)
	assert.Equal(t, "Frames all the", st.Reveals[0].Text)

	st = tl.Frame(150)
	assert.Equal(t, 1, st.ActiveScene)
	assert.Equal(t, 0, st.SceneLocalFrame)
	require.NotNil(t, st.Transition)
	assert.Equal(t, sequencer.KindSlide, st.Transition.Kind)
	assert.InDelta(t, 7.0/15.0, st.Transition.Progress, 1e-12)
	assert.Equal(t, 0.0, st.Elements[0].Progress, "title has not started")

	st = tl.Frame(143)
	var sources []cues.Source
	for _, c := range st.AudioCues {
		sources = append(sources, c.Source)
	}
	assert.Contains(t, sources, cues.SourceTransition)
	assert.Contains(t, sources, cues.SourceVoiceOver)
	assert.Contains(t, sources, cues.SourceMusic)
}

func TestFrameClamps(t *testing.T) {
	tl := mustBuild(t, threeScenes())

	assert.Equal(t, frameJSON(t, tl, 0), frameJSON(t, tl, -40))
	assert.Equal(t, frameJSON(t, tl, 359), frameJSON(t, tl, 360))
	assert.Equal(t, frameJSON(t, tl, 359), frameJSON(t, tl, 1_000_000))

	st := tl.Frame(5000)
	assert.Equal(t, 2, st.ActiveScene)
	assert.Equal(t, 119, st.SceneLocalFrame)
}

func TestRecomputationIsIdempotent(t *testing.T) {
	tl := mustBuild(t, threeScenes())

	var last string
	for f := 0; f <= 250; f++ {
		last = frameJSON(t, tl, f)
	}
	assert.Equal(t, last, frameJSON(t, tl, 250))
}

func TestDeterminism(t *testing.T) {
	a := mustBuild(t, threeScenes())
	b := mustBuild(t, threeScenes())

	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, a.Cues(), b.Cues())
	for _, f := range []int{0, 31, 143, 150, 233, 359} {
		assert.Equal(t, frameJSON(t, a, f), frameJSON(t, b, f))
	}

	require.NoError(t, VerifyDeterminism(context.Background(), a, Range(0, a.TotalFrames()), 8))
}

func TestIDTracksProject(t *testing.T) {
	p := threeScenes()
	a := mustBuild(t, p)
	p.Scenes[2].Duration = 4.5
	b := mustBuild(t, p)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSampleKeepsOrder(t *testing.T) {
	tl := mustBuild(t, threeScenes())
	frames := []int{359, 0, 150, 42, 42}

	states, err := Sample(context.Background(), tl, frames, 3)
	require.NoError(t, err)
	require.Len(t, states, len(frames))
	for i, f := range frames {
		assert.Equal(t, f, states[i].Frame)
	}
}

func TestSampleCancelled(t *testing.T) {
	tl := mustBuild(t, threeScenes())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sample(ctx, tl, Range(0, 100), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

type noAssets struct{}

func (noAssets) Exists(string) bool { return false }

func TestMissingAssetsAreWarnings(t *testing.T) {
	plain := mustBuild(t, threeScenes())
	checked := mustBuild(t, threeScenes(), WithAssetChecker(noAssets{}))

	assert.Equal(t, len(plain.Cues()), len(checked.Cues()), "cues are emitted regardless")

	missing := diag.Filter(checked.Warnings(), diag.MissingAsset)
	assert.NotEmpty(t, missing)

	refs := map[string]bool{}
	for _, w := range missing {
		refs[w.Ref] = true
	}
	assert.True(t, refs["voice/hero.mp3"])
	assert.True(t, refs["sfx/pop.mp3"])

	st := checked.Frame(10)
	assert.NotEmpty(t, diag.Filter(st.Warnings, diag.MissingAsset))
}

func TestExtraWarnings(t *testing.T) {
	w := diag.Warning{Kind: diag.VoiceOverOverrun, Scene: 1, Ref: "vo.mp3", Message: "too long"}
	tl := mustBuild(t, threeScenes(), WithWarnings(w))

	assert.Contains(t, tl.Warnings(), w)
	assert.Contains(t, tl.Frame(160).Warnings, w)
	assert.NotContains(t, tl.Frame(10).Warnings, w)
}

func TestScheduleGolden(t *testing.T) {
	tl := mustBuild(t, config.Project{
		FPS:       30,
		ThemeName: "minimal_flat",
		Scenes: []config.Scene{
			{
				Layout:    config.LayoutConcept,
				Duration:  2,
				VoiceOver: "voice/intro.mp3",
				Content:   config.Content{Media: "lotties/machine.json"},
			},
			{
				Layout:   config.LayoutList,
				Duration: 3,
				Content:  config.Content{Title: "Plan", Points: []string{"a", "b", "c"}},
			},
			{
				Layout:   config.LayoutComparison,
				Duration: 2,
				Content:  config.Content{Medias: []string{"l.png", "r.png"}},
			},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, tl))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "schedule", buf.Bytes())
}

func TestSceneCuesStayInScene(t *testing.T) {
	tl := mustBuild(t, config.Project{
		FPS:       30,
		ThemeName: "minimal_flat",
		Scenes: []config.Scene{
			{
				Layout:   config.LayoutHero,
				Duration: 1.5,
				Content:  config.Content{Text: "A sentence far too long to be typed in a second and a half"},
			},
			{
				Layout:   config.LayoutList,
				Duration: 3,
				Content:  config.Content{Title: "Next", Points: []string{"a", "b"}},
			},
		},
	})

	end := tl.Intervals()[0].End
	require.Equal(t, 45, end)

	var typing int
	for _, c := range tl.Cues() {
		if c.Scene != 0 {
			continue
		}
		assert.Less(t, c.Onset, end, "%s", c)
		if c.Source == cues.SourceReveal {
			typing++
		}
	}
	// onsets 30 + i/0.7 stay below 45 for i <= 10
	assert.Positive(t, typing)
	assert.LessOrEqual(t, typing, 11)

	for _, c := range tl.Plan(0).Cues {
		assert.Less(t, c.Onset, tl.Plan(0).Frames)
	}
	for f := end; f < tl.TotalFrames(); f++ {
		for _, c := range tl.Frame(f).AudioCues {
			assert.NotEqual(t, 0, c.Scene, "frame %d: %s", f, c)
		}
	}

	overrun := diag.Filter(tl.Warnings(), diag.DegenerateWindow)
	require.NotEmpty(t, overrun)
	assert.Equal(t, 0, overrun[0].Scene)
}

func TestWithinScene(t *testing.T) {
	got := withinScene([]cues.Cue{
		{Onset: 5, Asset: "a"},
		{Onset: 10, Stop: 40, Asset: "b"},
		{Onset: 30, Asset: "c"},
		{Onset: 29, Stop: 30, Asset: "d"},
	}, 30)

	assert.Equal(t, []cues.Cue{
		{Onset: 5, Asset: "a"},
		{Onset: 10, Stop: 30, Asset: "b"},
		{Onset: 29, Stop: 30, Asset: "d"},
	}, got)
}

func TestTransitionsDisabled(t *testing.T) {
	p := threeScenes()
	zero := 0.0
	p.TransitionSeconds = &zero
	tl := mustBuild(t, p)

	for _, iv := range tl.Intervals() {
		assert.False(t, iv.HasTransition, "scene %d", iv.Index)
	}
	for _, c := range tl.Cues() {
		assert.NotEqual(t, cues.SourceTransition, c.Source)
	}
	assert.Nil(t, tl.Frame(150).Transition)
	assert.Equal(t, 360, tl.TotalFrames())
}

func TestMusicIsGlobal(t *testing.T) {
	tl := mustBuild(t, threeScenes(), WithAssetChecker(noAssets{}))

	var music []cues.Cue
	for _, c := range tl.Cues() {
		if c.Source == cues.SourceMusic {
			music = append(music, c)
		}
	}
	require.Len(t, music, 1)
	assert.Equal(t, diag.GlobalScene, music[0].Scene)

	var warning diag.Warning
	for _, w := range tl.Warnings() {
		if w.Ref == music[0].Asset {
			warning = w
		}
	}
	require.Equal(t, diag.MissingAsset, warning.Kind)
	assert.Equal(t, diag.GlobalScene, warning.Scene)

	for _, f := range []int{0, 200, 359} {
		assert.Contains(t, tl.Frame(f).Warnings, warning, "frame %d", f)
	}
}
