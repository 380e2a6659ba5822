package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
	_ "golang.org/x/image/webp"

	"github.com/ivlev/sceneclock/internal/system"
)

// Kind classifies a media file.
type Kind string

const (
	KindImage   Kind = "image"
	KindPDF     Kind = "pdf"
	KindAudio   Kind = "audio"
	KindVideo   Kind = "video"
	KindLottie  Kind = "lottie"
	KindUnknown Kind = "unknown"
)

// Info is what Probe learned about a file. Fields that do not apply to the
// kind stay zero.
type Info struct {
	Ref      string  `json:"ref"`
	Path     string  `json:"path"`
	Kind     Kind    `json:"kind"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Pages    int     `json:"pages,omitempty"`
	Duration float64 `json:"duration,omitempty"` // seconds
}

// KindOf guesses the kind of ref from its extension.
func KindOf(ref string) Kind {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return KindImage
	case ".pdf":
		return KindPDF
	case ".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac":
		return KindAudio
	case ".mp4", ".mov", ".webm":
		return KindVideo
	case ".json", "":
		return KindLottie
	default:
		return KindUnknown
	}
}

// Probe resolves ref and reads its metadata.
func (r *Resolver) Probe(ctx context.Context, ref string) (Info, error) {
	path, ok := r.Resolve(ref)
	if !ok {
		return Info{}, fmt.Errorf("asset %q not found under %s", ref, r.Root)
	}
	info := Info{Ref: ref, Path: path, Kind: KindOf(path)}
	if IsRemote(path) {
		return info, nil
	}

	var err error
	switch info.Kind {
	case KindImage:
		err = probeImage(path, &info)
	case KindPDF:
		err = probePDF(path, &info)
	case KindAudio:
		err = probeAudio(ctx, path, &info)
	case KindVideo:
		info.Duration, err = system.ProbeDuration(ctx, path)
	case KindLottie:
		err = probeLottie(path, &info)
	}
	if err != nil {
		return info, fmt.Errorf("probe %s: %w", ref, err)
	}
	return info, nil
}

func probeImage(path string, info *Info) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return err
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	return nil
}

func probePDF(path string, info *Info) error {
	doc, err := fitz.New(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	info.Pages = doc.NumPage()
	if info.Pages > 0 {
		rect, err := doc.Bound(0)
		if err != nil {
			return err
		}
		info.Width, info.Height = rect.Dx(), rect.Dy()
	}
	return nil
}

func probeAudio(ctx context.Context, path string, info *Info) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		f.Close()
		info.Duration, err = system.ProbeDuration(ctx, path)
		return err
	}
	if err != nil {
		f.Close()
		return err
	}
	defer s.Close()

	info.Duration = format.SampleRate.D(s.Len()).Seconds()
	return nil
}

// lottieHeader is the subset of a Bodymovin document needed for timing.
type lottieHeader struct {
	FrameRate float64 `json:"fr"`
	InPoint   float64 `json:"ip"`
	OutPoint  float64 `json:"op"`
	Width     int     `json:"w"`
	Height    int     `json:"h"`
}

func probeLottie(path string, info *Info) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var h lottieHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	info.Width, info.Height = h.Width, h.Height
	if h.FrameRate > 0 && h.OutPoint > h.InPoint {
		info.Duration = (h.OutPoint - h.InPoint) / h.FrameRate
	}
	return nil
}
