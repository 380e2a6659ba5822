// Package preview draws a timeline as a horizontal strip for quick review.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/sceneclock/internal/cues"
	"github.com/ivlev/sceneclock/internal/engine"
	"github.com/ivlev/sceneclock/internal/system"
)

const (
	barTop    = 16
	barHeight = 40
	cueTop    = barTop + barHeight + 6
	cueHeight = 14
	height    = cueTop + 2*cueHeight + 8
)

var (
	background = color.RGBA{0x18, 0x18, 0x18, 0xff}
	sceneFills = []color.RGBA{
		{0x2e, 0x86, 0xc1, 0xff},
		{0x28, 0xb4, 0x63, 0xff},
		{0xd6, 0x8a, 0x10, 0xff},
		{0x88, 0x4e, 0xa0, 0xff},
	}
	transitionFill = color.NRGBA{0xff, 0xff, 0xff, 0x60}
	labelColor     = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	cueColors      = map[cues.Source]color.RGBA{
		cues.SourceReveal:     {0x99, 0x99, 0x99, 0xff},
		cues.SourceEntrance:   {0xf3, 0xc8, 0x0d, 0xff},
		cues.SourceTransition: {0xff, 0x55, 0x55, 0xff},
		cues.SourceVoiceOver:  {0x55, 0xdd, 0xff, 0xff},
		cues.SourceMusic:      {0x66, 0x66, 0xcc, 0xff},
	}
)

// Renderer draws strips. Buffers come from Pool when set.
type Renderer struct {
	Width int
	Pool  *system.ImagePool
}

// Render draws tl. Scenes are bars labeled with their index and layout,
// transition windows are lighter overlays, one-shot cues are ticks and
// sustained cues are spans below the bars.
func (r *Renderer) Render(tl *engine.Timeline) *image.RGBA {
	width := r.Width
	if width <= 0 {
		width = 1200
	}
	rect := image.Rect(0, 0, width, height)

	var img *image.RGBA
	if r.Pool != nil {
		img = r.Pool.Get(rect)
	} else {
		img = image.NewRGBA(rect)
	}
	draw.Draw(img, rect, &image.Uniform{background}, image.Point{}, draw.Src)

	total := tl.TotalFrames()
	if total <= 0 {
		return img
	}
	x := func(frame int) int { return frame * width / total }

	for _, iv := range tl.Intervals() {
		bar := image.Rect(x(iv.Start), barTop, x(iv.End), barTop+barHeight)
		fill := sceneFills[iv.Index%len(sceneFills)]
		draw.Draw(img, bar, &image.Uniform{fill}, image.Point{}, draw.Src)

		if iv.HasTransition {
			win := image.Rect(x(iv.TransitionStart), barTop, x(iv.TransitionEnd), barTop+barHeight)
			draw.Draw(img, win, &image.Uniform{transitionFill}, image.Point{}, draw.Over)
		}
		label(img, bar.Min.X+3, barTop+barHeight/2+4, fmt.Sprintf("%d %s", iv.Index, tl.Plan(iv.Index).Layout))
	}

	for _, c := range tl.Cues() {
		col, ok := cueColors[c.Source]
		if !ok {
			col = labelColor
		}
		if c.OneShot() {
			tick := image.Rect(x(c.Onset), cueTop, x(c.Onset)+1, cueTop+cueHeight)
			draw.Draw(img, tick, &image.Uniform{col}, image.Point{}, draw.Src)
			continue
		}
		span := image.Rect(x(c.Onset), cueTop+cueHeight+2, x(c.Stop), cueTop+2*cueHeight)
		draw.Draw(img, span, &image.Uniform{col}, image.Point{}, draw.Over)
	}

	label(img, 3, 12, fmt.Sprintf("%d frames @ %d fps, %d cues", total, tl.FPS(), len(tl.Cues())))
	return img
}

// Release hands img back to the pool.
func (r *Renderer) Release(img *image.RGBA) {
	if r.Pool != nil {
		r.Pool.Put(img)
	}
}

// WritePNG renders tl and encodes it to w.
func (r *Renderer) WritePNG(w io.Writer, tl *engine.Timeline) error {
	img := r.Render(tl)
	defer r.Release(img)
	return png.Encode(w, img)
}

func label(img draw.Image, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{labelColor},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
