package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceThreeScenes(t *testing.T) {
	intervals := Sequence([]float64{5, 3, 4}, 30, TransitionFrames(0.5, 30))
	require.Len(t, intervals, 3)

	assert.Equal(t, [2]int{0, 150}, [2]int{intervals[0].Start, intervals[0].End})
	assert.Equal(t, [2]int{150, 240}, [2]int{intervals[1].Start, intervals[1].End})
	assert.Equal(t, [2]int{240, 360}, [2]int{intervals[2].Start, intervals[2].End})
	assert.Equal(t, 360, Total(intervals))

	assert.True(t, intervals[0].HasTransition)
	assert.Equal(t, 143, intervals[0].TransitionStart)
	assert.Equal(t, 158, intervals[0].TransitionEnd)
	assert.Equal(t, 233, intervals[1].TransitionStart)
	assert.Equal(t, 248, intervals[1].TransitionEnd)

	for _, iv := range intervals[:2] {
		assert.Equal(t, 15, iv.TransitionEnd-iv.TransitionStart)
		assert.Less(t, iv.TransitionStart, iv.End)
		assert.Greater(t, iv.TransitionEnd, iv.End)
	}

	assert.False(t, intervals[2].HasTransition, "final scene has no outgoing transition")
}

func TestSequenceTilesTimeline(t *testing.T) {
	durations := []float64{0.3, 1.27, 2, 0.01, 7.5, 1.0 / 3}
	for _, fps := range []int{24, 25, 30, 60} {
		intervals := Sequence(durations, fps, TransitionFrames(0.5, fps))
		require.Len(t, intervals, len(durations))

		assert.Equal(t, 0, intervals[0].Start)
		for i := 1; i < len(intervals); i++ {
			assert.Equal(t, intervals[i-1].End, intervals[i].Start, "gap or overlap at scene %d", i)
		}
		for _, iv := range intervals {
			assert.Greater(t, iv.Frames(), 0)
			if iv.HasTransition {
				assert.GreaterOrEqual(t, iv.TransitionStart, iv.Start)
				assert.LessOrEqual(t, iv.TransitionEnd, intervals[iv.Index+1].End)
			}
		}

		covered := 0
		for f := 0; f < Total(intervals); f++ {
			idx, local := Locate(intervals, f)
			assert.True(t, intervals[idx].Contains(f))
			assert.Equal(t, f, intervals[idx].Start+local)
			covered++
		}
		assert.Equal(t, Total(intervals), covered)
	}
}

func TestSequenceIsIdempotent(t *testing.T) {
	a := Sequence([]float64{5, 3, 4}, 30, 15)
	b := Sequence([]float64{5, 3, 4}, 30, 15)
	assert.Equal(t, a, b)
}

func TestLocateClamps(t *testing.T) {
	intervals := Sequence([]float64{5, 3, 4}, 30, 15)

	idx, local := Locate(intervals, -20)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, local)

	idx, local = Locate(intervals, 10_000)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 119, local)

	idx, local = Locate(intervals, 150)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, local)

	idx, _ = Locate(nil, 5)
	assert.Equal(t, -1, idx)
}

func TestTransitionAt(t *testing.T) {
	intervals := Sequence([]float64{5, 3, 4}, 30, 15)

	_, ok := TransitionAt(intervals, 142)
	assert.False(t, ok)

	tr, ok := TransitionAt(intervals, 143)
	require.True(t, ok)
	assert.Equal(t, 0, tr.From)
	assert.Equal(t, 1, tr.To)
	assert.Equal(t, KindSlide, tr.Kind)
	assert.Equal(t, 0.0, tr.Progress)

	tr, ok = TransitionAt(intervals, 152)
	require.True(t, ok, "window reaches into the incoming scene")
	assert.Equal(t, 0, tr.From)
	assert.InDelta(t, 9.0/15.0, tr.Progress, 1e-12)
	assert.InDelta(t, 0.744, tr.Eased, 1e-9)

	_, ok = TransitionAt(intervals, 158)
	assert.False(t, ok)

	tr, ok = TransitionAt(intervals, 240)
	require.True(t, ok)
	assert.Equal(t, KindFade, tr.Kind)

	_, ok = TransitionAt(intervals, 359)
	assert.False(t, ok)
}

func TestShortScenesClampWindow(t *testing.T) {
	intervals := Sequence([]float64{0.1, 0.1, 1}, 30, 15)

	assert.Equal(t, 3, intervals[0].Frames())
	assert.Equal(t, 0, intervals[0].TransitionStart)
	assert.Equal(t, 6, intervals[0].TransitionEnd)
}

func TestTransitionRotation(t *testing.T) {
	assert.Equal(t, []Kind{KindSlide, KindFade, KindWipe, KindFlip, KindSlide},
		[]Kind{KindFor(0), KindFor(1), KindFor(2), KindFor(3), KindFor(4)})
	assert.Equal(t, "transitions-sfx/whoosh.mp3", KindSlide.Sfx())
}
