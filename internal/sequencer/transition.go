package sequencer

// Kind is the visual effect between two scenes.
type Kind string

const (
	KindSlide Kind = "slide"
	KindFade  Kind = "fade"
	KindWipe  Kind = "wipe"
	KindFlip  Kind = "flip"
)

// Kinds is the rotation order of transitions.
var Kinds = []Kind{KindSlide, KindFade, KindWipe, KindFlip}

// KindFor picks the transition leaving scene index. The choice rotates
// through Kinds so that every render of a project is identical.
func KindFor(index int) Kind {
	if index < 0 {
		index = -index
	}
	return Kinds[index%len(Kinds)]
}

// Sfx returns the sound asset played with the transition.
func (k Kind) Sfx() string {
	switch k {
	case KindSlide:
		return "transitions-sfx/whoosh.mp3"
	case KindFade:
		return "transitions-sfx/Swoosh.mp3"
	case KindWipe:
		return "transitions-sfx/Swoosh-Reverb.mp3"
	case KindFlip:
		return "transitions-sfx/Trail-Swoosh.mp3"
	default:
		return "transitions-sfx/whoosh.mp3"
	}
}
