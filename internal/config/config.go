package config

// Layout is the fixed vocabulary of scene layouts.
type Layout string

const (
	LayoutHero           Layout = "HERO"
	LayoutConcept        Layout = "CONCEPT"
	LayoutList           Layout = "LIST"
	LayoutGrid           Layout = "GRID"
	LayoutComparison     Layout = "COMPARISON"
	LayoutDiagram        Layout = "DIAGRAM"
	LayoutTalkingHead    Layout = "TALKING_HEAD"
	LayoutQuote          Layout = "QUOTE"
	LayoutSplitTextTop   Layout = "SPLIT_TEXT_TOP"
	LayoutSplitMediaTop  Layout = "SPLIT_MEDIA_TOP"
	LayoutSplitTextLeft  Layout = "SPLIT_TEXT_LEFT"
	LayoutSplitMediaLeft Layout = "SPLIT_MEDIA_LEFT"
)

// Layouts lists every known layout in declaration order.
var Layouts = []Layout{
	LayoutHero, LayoutConcept, LayoutList, LayoutGrid, LayoutComparison, LayoutDiagram,
	LayoutTalkingHead, LayoutQuote,
	LayoutSplitTextTop, LayoutSplitMediaTop, LayoutSplitTextLeft, LayoutSplitMediaLeft,
}

// Valid reports whether l is part of the vocabulary.
func (l Layout) Valid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

const (
	DefaultFPS               = 30
	DefaultWidth             = 1920
	DefaultHeight            = 1080
	DefaultTransitionSeconds = 0.5
	DefaultJitterK           = 1.7
)

// Project is the complete, resolved input of a render. It is built once
// before the first frame and never mutated afterwards.
type Project struct {
	FPS               int             `yaml:"fps" json:"fps"`
	Width             int             `yaml:"width,omitempty" json:"width,omitempty"`
	Height            int             `yaml:"height,omitempty" json:"height,omitempty"`
	ThemeName         string          `yaml:"theme,omitempty" json:"theme,omitempty"`
	ThemeOverrides    *ThemeOverrides `yaml:"theme_overrides,omitempty" json:"theme_overrides,omitempty"`
	// TransitionSeconds of 0 disables transitions; nil means the default.
	TransitionSeconds *float64        `yaml:"transition_seconds,omitempty" json:"transition_seconds,omitempty"`
	Scenes            []Scene         `yaml:"scenes" json:"scenes"`

	// Theme is filled by Resolve.
	Theme Theme `yaml:"-" json:"-"`
}

// Scene is one entry of the ordered scene list.
type Scene struct {
	Layout    Layout  `yaml:"layout" json:"layout"`
	Duration  float64 `yaml:"duration" json:"duration"` // seconds
	VoiceOver string  `yaml:"voice_over,omitempty" json:"voice_over,omitempty"`
	Content   Content `yaml:"content" json:"content"`
	Timing    Timing  `yaml:"timing,omitempty" json:"timing"`
}

// Content is the layout-specific payload. Each layout reads the subset it
// needs; see RequiredFields.
type Content struct {
	Text        string   `yaml:"text,omitempty" json:"text,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Points      []string `yaml:"points,omitempty" json:"points,omitempty"`
	Quote       string   `yaml:"quote,omitempty" json:"quote,omitempty"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	Code        string   `yaml:"code,omitempty" json:"code,omitempty"`
	Media       string   `yaml:"media,omitempty" json:"media,omitempty"`
	Medias      []string `yaml:"medias,omitempty" json:"medias,omitempty"`
	VideoSource string   `yaml:"video_source,omitempty" json:"video_source,omitempty"`

	Top    *Zone `yaml:"top,omitempty" json:"top,omitempty"`
	Bottom *Zone `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	Left   *Zone `yaml:"left,omitempty" json:"left,omitempty"`
	Right  *Zone `yaml:"right,omitempty" json:"right,omitempty"`
}

// Zone is one half of a split layout.
type Zone struct {
	Media    string   `yaml:"media,omitempty" json:"media,omitempty"`
	Text     string   `yaml:"text,omitempty" json:"text,omitempty"`
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Timing overrides the per-layout tuning of a scene. Nil fields keep the
// layout default.
type Timing struct {
	Delay          *int     `yaml:"delay,omitempty" json:"delay,omitempty"`
	Speed          *float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
	WindowFraction *float64 `yaml:"window_fraction,omitempty" json:"window_fraction,omitempty"`
	MinSpacing     *int     `yaml:"min_spacing,omitempty" json:"min_spacing,omitempty"`
	// JitterAmplitude enables a sine jitter of the typewriter onsets, in
	// frames. JitterK is the per-character phase step.
	JitterAmplitude *float64 `yaml:"jitter_amplitude,omitempty" json:"jitter_amplitude,omitempty"`
	JitterK         *float64 `yaml:"jitter_k,omitempty" json:"jitter_k,omitempty"`
}

// DelayOr returns the delay override or def.
func (t Timing) DelayOr(def int) int {
	if t.Delay != nil {
		return *t.Delay
	}
	return def
}

// SpeedOr returns the speed override or def.
func (t Timing) SpeedOr(def float64) float64 {
	if t.Speed != nil {
		return *t.Speed
	}
	return def
}

// WindowFractionOr returns the window fraction override or def.
func (t Timing) WindowFractionOr(def float64) float64 {
	if t.WindowFraction != nil {
		return *t.WindowFraction
	}
	return def
}

// MinSpacingOr returns the spacing floor override or def.
func (t Timing) MinSpacingOr(def int) int {
	if t.MinSpacing != nil {
		return *t.MinSpacing
	}
	return def
}

// Jitter returns the typewriter jitter amplitude and phase step. A zero
// amplitude means no jitter.
func (t Timing) Jitter() (amplitude, k float64) {
	if t.JitterAmplitude == nil || *t.JitterAmplitude <= 0 {
		return 0, 0
	}
	k = DefaultJitterK
	if t.JitterK != nil {
		k = *t.JitterK
	}
	return *t.JitterAmplitude, k
}

// ApplyDefaults fills unset global parameters.
func (p *Project) ApplyDefaults() {
	if p.FPS == 0 {
		p.FPS = DefaultFPS
	}
	if p.Width == 0 {
		p.Width = DefaultWidth
	}
	if p.Height == 0 {
		p.Height = DefaultHeight
	}
	if p.TransitionSeconds == nil {
		d := DefaultTransitionSeconds
		p.TransitionSeconds = &d
	}
}

// Resolve returns a copy of p with defaults applied and the theme looked up.
// The returned value shares no mutable state with p.
func (p Project) Resolve() Project {
	p.ApplyDefaults()
	ts := *p.TransitionSeconds
	p.TransitionSeconds = &ts
	p.Theme = ThemeByName(p.ThemeName).With(p.ThemeOverrides)

	scenes := make([]Scene, len(p.Scenes))
	copy(scenes, p.Scenes)
	p.Scenes = scenes
	return p
}

// TotalSeconds is the sum of scene durations.
func (p Project) TotalSeconds() float64 {
	total := 0.0
	for _, s := range p.Scenes {
		total += s.Duration
	}
	return total
}
