package timing

import "math"

// SecondsAtFrame converts a frame index to elapsed seconds. fps must be positive.
func SecondsAtFrame(frame, fps int) float64 {
	return float64(frame) / float64(fps)
}

// FrameAtSeconds converts seconds to the nearest frame index.
func FrameAtSeconds(seconds float64, fps int) int {
	return int(math.Round(seconds * float64(fps)))
}

// DurationFrames is FrameAtSeconds with a floor of one frame, so that any
// positive duration occupies at least one frame of the timeline.
func DurationFrames(seconds float64, fps int) int {
	n := FrameAtSeconds(seconds, fps)
	if n < 1 {
		return 1
	}
	return n
}
