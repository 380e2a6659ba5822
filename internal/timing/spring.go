package timing

import "math"

// SpringConfig describes a damped harmonic oscillator released from rest at 0
// and pulled towards 1.
type SpringConfig struct {
	Damping           float64 `yaml:"damping" json:"damping"`
	Stiffness         float64 `yaml:"stiffness" json:"stiffness"`
	Mass              float64 `yaml:"mass" json:"mass"`
	OvershootClamping bool    `yaml:"overshoot_clamping,omitempty" json:"overshootClamping,omitempty"`
}

// DefaultSpring matches the classic motion-graphics defaults.
var DefaultSpring = SpringConfig{Damping: 10, Stiffness: 100, Mass: 1}

// withDefaults fills zero fields from DefaultSpring.
func (c SpringConfig) withDefaults() SpringConfig {
	if c.Damping <= 0 {
		c.Damping = DefaultSpring.Damping
	}
	if c.Stiffness <= 0 {
		c.Stiffness = DefaultSpring.Stiffness
	}
	if c.Mass <= 0 {
		c.Mass = DefaultSpring.Mass
	}
	return c
}

// DampingRatio returns ζ = c / (2·sqrt(k·m)).
func (c SpringConfig) DampingRatio() float64 {
	c = c.withDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring evaluates the oscillator at a frame offset from its onset.
//
// The value is computed in closed form from the offset alone, so any frame
// can be evaluated without visiting the frames before it. Offsets at or
// before zero return 0. Underdamped configurations overshoot 1 before
// settling; critically damped and overdamped ones never exceed 1.
func Spring(frame int, fps int, cfg SpringConfig) float64 {
	if frame <= 0 || fps <= 0 {
		return 0
	}
	cfg = cfg.withDefaults()
	t := float64(frame) / float64(fps)
	v := 1 - displacement(t, cfg)

	if cfg.OvershootClamping || cfg.DampingRatio() >= 1 {
		v = math.Min(v, 1)
	}
	return math.Max(v, 0)
}

// displacement is the distance left to travel (1 at release, 0 at rest).
func displacement(t float64, cfg SpringConfig) float64 {
	w0 := math.Sqrt(cfg.Stiffness / cfg.Mass)
	zeta := cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass))

	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * w0 * t)
		return envelope * (math.Cos(wd*t) + (zeta*w0/wd)*math.Sin(wd*t))
	case zeta == 1:
		return math.Exp(-w0*t) * (1 + w0*t)
	default:
		root := math.Sqrt(zeta*zeta - 1)
		r1 := -w0 * (zeta - root)
		r2 := -w0 * (zeta + root)
		return (r2*math.Exp(r1*t) - r1*math.Exp(r2*t)) / (r2 - r1)
	}
}

// envelope bounds |displacement| from above for every t.
func envelope(t float64, cfg SpringConfig) float64 {
	w0 := math.Sqrt(cfg.Stiffness / cfg.Mass)
	zeta := cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass))
	if zeta < 1 {
		wd := w0 * math.Sqrt(1-zeta*zeta)
		return math.Exp(-zeta*w0*t) * math.Sqrt(1+(zeta*w0/wd)*(zeta*w0/wd))
	}
	return math.Abs(displacement(t, cfg))
}

// SettleFrame returns the first frame offset from which the spring stays
// within threshold of 1. The search is capped at one minute of frames.
func SettleFrame(fps int, cfg SpringConfig, threshold float64) int {
	if fps <= 0 {
		return 0
	}
	if threshold <= 0 {
		threshold = 0.005
	}
	cfg = cfg.withDefaults()
	limit := 60 * fps
	for f := 0; f < limit; f++ {
		if envelope(float64(f)/float64(fps), cfg) <= threshold {
			return f
		}
	}
	return limit
}
