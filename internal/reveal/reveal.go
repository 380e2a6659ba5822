// Package reveal computes typewriter-style character reveal timing.
package reveal

import (
	"math"
	"sort"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultBlinkPeriod is the cursor half-period in frames.
const DefaultBlinkPeriod = 10

// MaxFrame bounds trigger frames. Characters whose onset is not below it
// never produce a keystroke event.
const MaxFrame = math.MaxInt32

// JitterFunc returns an extra onset offset in frames for a character index.
// It must be deterministic: the same index always yields the same offset.
type JitterFunc func(index int) float64

// SineJitter is the stock jitter, amplitude·sin(index·k).
func SineJitter(amplitude, k float64) JitterFunc {
	return func(index int) float64 {
		return amplitude * math.Sin(float64(index)*k)
	}
}

// Params configures a reveal schedule.
type Params struct {
	Text string
	// Speed is the reveal rate in characters per frame.
	Speed float64
	// Delay is the onset of the first character in frames.
	Delay  float64
	Jitter JitterFunc
	// MaxJitter bounds |Jitter(i)|. Zero leaves the jitter unbounded except
	// for the ordering clamp.
	MaxJitter   float64
	BlinkPeriod int
}

// Schedule is the derived per-character onset table of one text block.
type Schedule struct {
	runes       []rune
	onsets      []float64
	triggers    []Trigger
	delay       float64
	blinkPeriod int
}

// Trigger is one keystroke sound event.
type Trigger struct {
	Index int
	Frame int
}

// SpeedForWindow derives the speed that reveals chars characters within
// frames frames. ok is false when the window is degenerate, in which case the
// whole text is revealed at once.
func SpeedForWindow(chars, frames int) (speed float64, ok bool) {
	if chars <= 0 {
		return 1, true
	}
	if frames <= 0 {
		return float64(chars), false
	}
	return float64(chars) / float64(frames), true
}

// New builds the schedule for p. A non-positive speed reveals everything at
// the delay.
func New(p Params) *Schedule {
	runes := []rune(norm.NFC.String(p.Text))

	s := &Schedule{
		runes:       runes,
		onsets:      make([]float64, len(runes)),
		delay:       p.Delay,
		blinkPeriod: p.BlinkPeriod,
	}
	if s.blinkPeriod <= 0 {
		s.blinkPeriod = DefaultBlinkPeriod
	}

	for i := range runes {
		onset := p.Delay
		if p.Speed > 0 {
			onset += float64(i) / p.Speed
		}
		if p.Jitter != nil {
			onset += boundJitter(p.Jitter(i), p.MaxJitter)
		}
		// Jitter may never reorder characters or start before the delay.
		if onset < p.Delay {
			onset = p.Delay
		}
		if i > 0 && onset < s.onsets[i-1] {
			onset = s.onsets[i-1]
		}
		s.onsets[i] = onset

		if unicode.IsSpace(runes[i]) {
			continue
		}
		if f, ok := triggerFrame(onset); ok {
			s.triggers = append(s.triggers, Trigger{Index: i, Frame: f})
		}
	}
	return s
}

func triggerFrame(onset float64) (int, bool) {
	if math.IsNaN(onset) || math.IsInf(onset, 0) || onset >= MaxFrame {
		return 0, false
	}
	return int(math.Floor(onset)), true
}

func boundJitter(j, bound float64) float64 {
	if math.IsNaN(j) || math.IsInf(j, 0) {
		return 0
	}
	if bound > 0 {
		j = math.Max(-bound, math.Min(bound, j))
	}
	return j
}

// Len is the number of characters after normalization.
func (s *Schedule) Len() int { return len(s.runes) }

// Onset returns the onset frame of character i.
func (s *Schedule) Onset(i int) float64 { return s.onsets[i] }

// Onsets returns a copy of the onset table.
func (s *Schedule) Onsets() []float64 {
	out := make([]float64, len(s.onsets))
	copy(out, s.onsets)
	return out
}

// End is the onset of the last character, or the delay for empty text.
func (s *Schedule) End() float64 {
	if len(s.onsets) == 0 {
		return s.delay
	}
	return s.onsets[len(s.onsets)-1]
}

// VisibleCount returns how many characters have an onset at or before frame.
func (s *Schedule) VisibleCount(frame int) int {
	f := float64(frame)
	return sort.Search(len(s.onsets), func(i int) bool { return s.onsets[i] > f })
}

// Visible returns the revealed prefix of the text at frame.
func (s *Schedule) Visible(frame int) string {
	return string(s.runes[:s.VisibleCount(frame)])
}

// CursorVisible reports the blink state of the cursor. The cursor only
// appears once the reveal has started.
func (s *Schedule) CursorVisible(frame int) bool {
	if float64(frame) < s.delay {
		return false
	}
	return (frame/s.blinkPeriod)%2 == 0
}

// Triggers returns one keystroke event per non-whitespace character. Events
// that land on the same frame stay separate. Characters revealed at or past
// MaxFrame have none.
func (s *Schedule) Triggers() []Trigger {
	out := make([]Trigger, len(s.triggers))
	copy(out, s.triggers)
	return out
}
