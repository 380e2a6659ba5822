package assets

import (
	"context"
	"fmt"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/diag"
)

// CheckVoiceOvers probes every voice-over of p and reports the ones that are
// missing or outlast their scene by more than a frame.
func CheckVoiceOvers(ctx context.Context, r *Resolver, p config.Project) []diag.Warning {
	var ws []diag.Warning
	for i, s := range p.Scenes {
		if s.VoiceOver == "" || IsRemote(s.VoiceOver) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ws
		}

		info, err := r.Probe(ctx, s.VoiceOver)
		if err != nil {
			ws = append(ws, diag.Warning{
				Kind:    diag.MissingAsset,
				Scene:   i,
				Element: "voice_over",
				Ref:     s.VoiceOver,
				Message: err.Error(),
			})
			continue
		}

		tolerance := 0.0
		if p.FPS > 0 {
			tolerance = 1 / float64(p.FPS)
		}
		if info.Duration > s.Duration+tolerance {
			ws = append(ws, diag.Warning{
				Kind:    diag.VoiceOverOverrun,
				Scene:   i,
				Element: "voice_over",
				Ref:     s.VoiceOver,
				Message: fmt.Sprintf("voice-over lasts %.2fs, scene lasts %.2fs", info.Duration, s.Duration),
			})
		}
	}
	return ws
}
