// Package stagger spreads the onsets of a group of items over a frame window.
package stagger

import "fmt"

// Direction is the entrance origin of an item. It is a presentation detail
// passed through to the painting layer unchanged.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText keeps directions readable in YAML and JSON dumps.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*d = DirectionLeft
	case "right":
		*d = DirectionRight
	case "none", "":
		*d = DirectionNone
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}

// Alternation selects how directions are assigned per index.
type Alternation int

const (
	AlternateNone Alternation = iota
	// AlternateLeftRight gives even indices DirectionLeft and odd ones DirectionRight.
	AlternateLeftRight
)

// Params configures a schedule. All values are frames.
type Params struct {
	Count      int
	Window     int
	MinSpacing int
	// MaxSpacing caps the stride before the MinSpacing floor is applied.
	// Zero means no cap.
	MaxSpacing int
	BaseDelay  int
	Alternate  Alternation
}

// Plan is the per-item onset list for one group.
type Plan struct {
	Delays     []int
	Directions []Direction
	Stride     int
	// Overflow reports that the spacing floor pushed the last onset past
	// the nominal window.
	Overflow bool
}

// Schedule computes the onset delays for p.
//
//	stride = max(MinSpacing, min(MaxSpacing, floor(Window / max(1, Count-1))))
//	d[i]   = BaseDelay + i*stride
func Schedule(p Params) Plan {
	if p.Count <= 0 {
		return Plan{}
	}

	window := p.Window
	if window < 0 {
		window = 0
	}

	gaps := p.Count - 1
	if gaps < 1 {
		gaps = 1
	}

	stride := window / gaps
	if p.MaxSpacing > 0 && stride > p.MaxSpacing {
		stride = p.MaxSpacing
	}
	if stride < p.MinSpacing {
		stride = p.MinSpacing
	}

	plan := Plan{
		Delays:     make([]int, p.Count),
		Directions: make([]Direction, p.Count),
		Stride:     stride,
		Overflow:   (p.Count-1)*stride > window,
	}
	for i := range plan.Delays {
		plan.Delays[i] = p.BaseDelay + i*stride
		plan.Directions[i] = direction(p.Alternate, i)
	}
	return plan
}

func direction(a Alternation, i int) Direction {
	if a != AlternateLeftRight {
		return DirectionNone
	}
	if i%2 == 0 {
		return DirectionLeft
	}
	return DirectionRight
}

// Last returns the final onset of the plan, or the zero value for an empty plan.
func (p Plan) Last() int {
	if len(p.Delays) == 0 {
		return 0
	}
	return p.Delays[len(p.Delays)-1]
}
