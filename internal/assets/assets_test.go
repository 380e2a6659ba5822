package assets

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sceneclock/internal/config"
	"github.com/ivlev/sceneclock/internal/diag"
)

func writeFile(t *testing.T, root, rel string, data []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func writeWAV(t *testing.T, root, rel string, d time.Duration) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format))
}

func writePNG(t *testing.T, root, rel string, w, h int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sfx/pop.mp3", []byte("x"))
	writeFile(t, root, "lotties/cerveau.json", []byte("{}"))

	r := NewResolver(root)
	assert.True(t, r.Exists("sfx/pop.mp3"))
	assert.True(t, r.Exists("/sfx/pop.mp3"))
	assert.True(t, r.Exists("cerveau"), "bare lottie names")
	assert.True(t, r.Exists("cerveau.json"))
	assert.True(t, r.Exists("https://cdn.example.com/clip.mp4"))
	assert.False(t, r.Exists("sfx/missing.mp3"))
	assert.False(t, r.Exists(""))
	assert.False(t, r.Exists("sfx"), "directories do not resolve")
}

func TestProbeImage(t *testing.T) {
	root := t.TempDir()
	writePNG(t, root, "img/a.png", 32, 18)

	info, err := NewResolver(root).Probe(context.Background(), "img/a.png")
	require.NoError(t, err)
	assert.Equal(t, KindImage, info.Kind)
	assert.Equal(t, 32, info.Width)
	assert.Equal(t, 18, info.Height)
}

func TestProbeWAV(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, root, "voice/a.wav", 2*time.Second)

	info, err := NewResolver(root).Probe(context.Background(), "voice/a.wav")
	require.NoError(t, err)
	assert.Equal(t, KindAudio, info.Kind)
	assert.InDelta(t, 2.0, info.Duration, 0.01)
}

func TestProbeLottie(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lotties/machine.json", []byte(`{"v":"5.7","fr":30,"ip":0,"op":90,"w":512,"h":256,"layers":[]}`))

	info, err := NewResolver(root).Probe(context.Background(), "machine")
	require.NoError(t, err)
	assert.Equal(t, KindLottie, info.Kind)
	assert.Equal(t, 3.0, info.Duration)
	assert.Equal(t, 512, info.Width)
}

func TestProbeMissing(t *testing.T) {
	_, err := NewResolver(t.TempDir()).Probe(context.Background(), "nope.png")
	assert.Error(t, err)
}

func TestCheckVoiceOvers(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, root, "voice/short.wav", time.Second)
	writeWAV(t, root, "voice/long.wav", 3*time.Second)

	p := config.Project{
		FPS: 30,
		Scenes: []config.Scene{
			{Layout: config.LayoutHero, Duration: 2, VoiceOver: "voice/short.wav"},
			{Layout: config.LayoutHero, Duration: 2, VoiceOver: "voice/long.wav"},
			{Layout: config.LayoutHero, Duration: 2, VoiceOver: "voice/gone.wav"},
			{Layout: config.LayoutHero, Duration: 2},
		},
	}

	ws := CheckVoiceOvers(context.Background(), NewResolver(root), p)
	require.Len(t, ws, 2)
	assert.Equal(t, diag.VoiceOverOverrun, ws[0].Kind)
	assert.Equal(t, 1, ws[0].Scene)
	assert.Equal(t, diag.MissingAsset, ws[1].Kind)
	assert.Equal(t, 2, ws[1].Scene)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindImage, KindOf("a.WEBP"))
	assert.Equal(t, KindPDF, KindOf("deck.pdf"))
	assert.Equal(t, KindAudio, KindOf("vo.m4a"))
	assert.Equal(t, KindVideo, KindOf("clip.mp4"))
	assert.Equal(t, KindLottie, KindOf("cerveau"))
	assert.Equal(t, KindUnknown, KindOf("notes.txt"))
}
