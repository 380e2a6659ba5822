// Package cues merges audio events from every timing source into one
// ordered schedule.
package cues

import (
	"fmt"
	"sort"

	"github.com/ivlev/sceneclock/internal/diag"
)

// Source names the producer of a cue.
type Source string

const (
	SourceReveal     Source = "reveal"
	SourceEntrance   Source = "entrance"
	SourceTransition Source = "transition"
	SourceVoiceOver  Source = "voice_over"
	SourceMusic      Source = "music"
)

// Cue is one scheduled sound. Frames are absolute. Stop is exclusive; zero
// marks a one-shot that plays to the end of the asset.
type Cue struct {
	Onset        int     `yaml:"onset" json:"onset"`
	Stop         int     `yaml:"stop,omitempty" json:"stop,omitempty"`
	Asset        string  `yaml:"asset" json:"asset"`
	Volume       float64 `yaml:"volume" json:"volume"`
	PlaybackRate float64 `yaml:"playback_rate" json:"playbackRate"`
	Loop         bool    `yaml:"loop,omitempty" json:"loop,omitempty"`
	Scene        int     `yaml:"scene" json:"scene"`
	Source       Source  `yaml:"source" json:"source"`
}

// OneShot reports whether the cue has no explicit stop frame.
func (c Cue) OneShot() bool { return c.Stop <= c.Onset }

// Sounding reports whether the cue should be heard at frame.
func (c Cue) Sounding(frame int) bool {
	if c.OneShot() {
		return frame == c.Onset
	}
	return frame >= c.Onset && frame < c.Stop
}

func (c Cue) String() string {
	if c.OneShot() {
		return fmt.Sprintf("%d %s vol=%.2f rate=%.2f", c.Onset, c.Asset, c.Volume, c.PlaybackRate)
	}
	return fmt.Sprintf("%d-%d %s vol=%.2f rate=%.2f", c.Onset, c.Stop, c.Asset, c.Volume, c.PlaybackRate)
}

// AssetChecker resolves asset references. It is supplied by the caller and
// consulted once per distinct reference while collecting.
type AssetChecker interface {
	Exists(ref string) bool
}

// Collector accumulates cues. It is not safe for concurrent use; build the
// schedule once and share the result.
type Collector struct {
	checker  AssetChecker
	cues     []Cue
	warnings []diag.Warning
	checked  map[string]bool
}

// NewCollector returns a collector. checker may be nil, in which case no
// asset warnings are produced.
func NewCollector(checker AssetChecker) *Collector {
	return &Collector{checker: checker, checked: make(map[string]bool)}
}

// Add normalizes and records cues. Cues are never merged, even when they
// share onset and asset.
func (c *Collector) Add(cues ...Cue) {
	for _, cue := range cues {
		cue.Volume = clampVolume(cue.Volume)
		if cue.PlaybackRate <= 0 {
			cue.PlaybackRate = 1
		}
		if cue.Onset < 0 {
			cue.Onset = 0
		}
		c.check(cue)
		c.cues = append(c.cues, cue)
	}
}

// Offset records scene-local cues shifted by start frames.
func (c *Collector) Offset(start int, cues ...Cue) {
	for _, cue := range cues {
		cue.Onset += start
		if cue.Stop > 0 {
			cue.Stop += start
		}
		c.Add(cue)
	}
}

func (c *Collector) check(cue Cue) {
	if c.checker == nil || cue.Asset == "" {
		return
	}
	ok, seen := c.checked[cue.Asset]
	if !seen {
		ok = c.checker.Exists(cue.Asset)
		c.checked[cue.Asset] = ok
	}
	if ok {
		return
	}
	c.warnings = append(c.warnings, diag.Warning{
		Kind:    diag.MissingAsset,
		Scene:   cue.Scene,
		Element: string(cue.Source),
		Ref:     cue.Asset,
		Message: fmt.Sprintf("cue at frame %d references an unresolved asset", cue.Onset),
	})
}

// Schedule returns the cues ordered by onset. Cues with equal onsets keep
// their insertion order.
func (c *Collector) Schedule() []Cue {
	out := make([]Cue, len(c.cues))
	copy(out, c.cues)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Onset < out[j].Onset })
	return out
}

// Warnings returns the asset warnings raised so far.
func (c *Collector) Warnings() []diag.Warning {
	out := make([]diag.Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Len is the number of collected cues.
func (c *Collector) Len() int { return len(c.cues) }

func clampVolume(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
