// Package mixdown renders a cue schedule to a single audio track with ffmpeg.
package mixdown

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ivlev/sceneclock/internal/cues"
)

// Resolver maps an asset reference to a readable path or URL.
type Resolver interface {
	Resolve(ref string) (string, bool)
}

// Job is one mixdown.
type Job struct {
	Schedule    []cues.Cue
	FPS         int
	TotalFrames int
	Assets      Resolver
	Output      string
}

// Mixer renders a Job.
type Mixer interface {
	Mix(ctx context.Context, job Job) error
}

// FFmpegMixer runs the ffmpeg binary.
type FFmpegMixer struct {
	Binary string
}

// Mix builds the arguments for job and runs ffmpeg. Cues whose asset does
// not resolve are left out of the mix.
func (m *FFmpegMixer) Mix(ctx context.Context, job Job) error {
	args, _, err := BuildArgs(job)
	if err != nil {
		return err
	}

	bin := m.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mixdown error: %w, output: %s", err, string(out))
	}
	return nil
}

// BuildArgs returns the ffmpeg arguments for job and the references that
// were skipped because they did not resolve.
func BuildArgs(job Job) (args []string, skipped []string, err error) {
	if job.FPS <= 0 {
		return nil, nil, fmt.Errorf("mixdown: fps must be positive, got %d", job.FPS)
	}
	if job.Output == "" {
		return nil, nil, fmt.Errorf("mixdown: no output path")
	}
	total := seconds(job.TotalFrames, job.FPS)

	args = []string{"-y"}
	var chains []string
	var labels string
	n := 0

	for _, c := range job.Schedule {
		path, ok := c.Asset, true
		if job.Assets != nil {
			path, ok = job.Assets.Resolve(c.Asset)
		}
		if !ok {
			skipped = append(skipped, c.Asset)
			continue
		}

		if c.Loop {
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", path)

		label := fmt.Sprintf("[a%d]", n)
		chains = append(chains, fmt.Sprintf("[%d:a]%s%s", n, cueFilter(c, job.FPS), label))
		labels += label
		n++
	}

	if n == 0 {
		args = append(args,
			"-f", "lavfi", "-i", "anullsrc=r=48000:cl=stereo",
			"-t", formatFloat(total),
		)
		args = append(args, codecArgs(job.Output)...)
		return append(args, job.Output), skipped, nil
	}

	graph := strings.Join(chains, ";")
	graph += fmt.Sprintf(";%samix=inputs=%d:duration=longest:dropout_transition=0:normalize=0,atrim=duration=%s[aout]",
		labels, n, formatFloat(total))

	args = append(args, "-filter_complex", graph, "-map", "[aout]")
	args = append(args, codecArgs(job.Output)...)
	args = append(args, job.Output)
	return args, skipped, nil
}

// cueFilter places one cue on the output timeline.
func cueFilter(c cues.Cue, fps int) string {
	var parts []string
	if c.PlaybackRate > 0 && c.PlaybackRate != 1 {
		parts = append(parts, atempo(c.PlaybackRate)...)
	}
	if !c.OneShot() {
		parts = append(parts,
			"atrim=duration="+formatFloat(seconds(c.Stop-c.Onset, fps)),
			"asetpts=PTS-STARTPTS")
	}
	delay := int64(seconds(c.Onset, fps)*1000 + 0.5)
	parts = append(parts,
		fmt.Sprintf("adelay=%d:all=1", delay),
		"volume="+formatFloat(c.Volume))
	return strings.Join(parts, ",")
}

// atempo splits rate into factors ffmpeg accepts.
func atempo(rate float64) []string {
	var out []string
	for rate < 0.5 {
		out = append(out, "atempo=0.5")
		rate /= 0.5
	}
	for rate > 100 {
		out = append(out, "atempo=100")
		rate /= 100
	}
	return append(out, "atempo="+formatFloat(rate))
}

func codecArgs(output string) []string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".wav":
		return []string{"-c:a", "pcm_s16le"}
	case ".m4a", ".aac", ".mp4":
		return []string{"-c:a", "aac", "-b:a", "192k"}
	default:
		return []string{"-c:a", "libmp3lame", "-q:a", "2"}
	}
}

func seconds(frames, fps int) float64 {
	return float64(frames) / float64(fps)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
