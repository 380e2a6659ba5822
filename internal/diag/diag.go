// Package diag holds the non-fatal conditions reported alongside computed
// frames. Warnings are values: they are collected and attached, never thrown.
package diag

import "fmt"

// Kind classifies a warning.
type Kind string

const (
	// MissingAsset: a referenced asset could not be resolved. The cue or
	// slot is still emitted with its reference intact.
	MissingAsset Kind = "missing_asset"
	// DegenerateWindow: a stagger or reveal window was too small for its
	// item count and the spacing floor won.
	DegenerateWindow Kind = "degenerate_window"
	// VoiceOverOverrun: a voice-over is longer than its scene.
	VoiceOverOverrun Kind = "voice_over_overrun"
)

// GlobalScene is the scene index of cues and warnings that belong to the
// whole timeline rather than one scene.
const GlobalScene = -1

// Warning is a per-element condition attached to frame output.
type Warning struct {
	Kind    Kind   `yaml:"kind" json:"kind"`
	Scene   int    `yaml:"scene" json:"scene"`
	Element string `yaml:"element,omitempty" json:"element,omitempty"`
	Ref     string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Message string `yaml:"message" json:"message"`
}

func (w Warning) String() string {
	if w.Scene == GlobalScene {
		return fmt.Sprintf("timeline: %s: %s", w.Kind, w.Message)
	}
	if w.Element != "" {
		return fmt.Sprintf("scene %d %s: %s: %s", w.Scene, w.Element, w.Kind, w.Message)
	}
	return fmt.Sprintf("scene %d: %s: %s", w.Scene, w.Kind, w.Message)
}

// Filter returns the warnings of the given kind.
func Filter(ws []Warning, kind Kind) []Warning {
	var out []Warning
	for _, w := range ws {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
