// Package backdrop renders blurred backdrops cheaply: content is drawn into a
// canvas downscaled by an integer factor, blurred there with a proportionally
// smaller radius, then scaled back up when drawn.
package backdrop

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/AnyUserName/stackblur-cli/internal/bitmap"
	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// DrawFunc renders content into canvas. m maps content coordinates to canvas
// coordinates. Returning false means nothing was drawn and nothing will be
// blitted.
type DrawFunc func(canvas draw.Image, m f64.Aff3) bool

type covered struct{}

func (covered) RGBA() (r, g, b, a uint32) { return 0, 0, 0, 0 }

// Covered is passed as the solid color when the content paints every canvas
// pixel, so the canvas is not cleared first.
var Covered color.Color = covered{}

// Backdrop is not safe for concurrent use, and neither is its engine.
type Backdrop struct {
	engine    *stackblur.Engine
	draw      DrawFunc
	downscale int
	hScroll   bool
	vScroll   bool

	radius       int
	scaledRadius int

	canvas *image.RGBA
	bitmap *bitmap.RGBA

	blurredW, blurredH int
	dirty              bool
	drawn              bool
}

// New creates a backdrop. Scrollable axes get an extra margin of one scaled
// radius on both sides so edges entering the view are already blurred.
func New(engine *stackblur.Engine, radius, downscale int, hScroll, vScroll bool, fn DrawFunc) (*Backdrop, error) {
	if downscale < 1 {
		return nil, fmt.Errorf("%w: downscale < 1: %d", stackblur.ErrInvalidArgument, downscale)
	}
	b := &Backdrop{
		engine:       engine,
		draw:         fn,
		downscale:    downscale,
		hScroll:      hScroll,
		vScroll:      vScroll,
		scaledRadius: -1,
		dirty:        true,
	}
	if err := b.SetRadius(radius); err != nil {
		return nil, err
	}
	return b, nil
}

// Radius returns the radius in full-resolution pixels.
func (b *Backdrop) Radius() int { return b.radius }

// SetRadius sets the blur radius in full-resolution pixels. Any positive
// radius keeps a scaled radius of at least 1.
func (b *Backdrop) SetRadius(px int) error {
	if px < 0 {
		return fmt.Errorf("%w: radius < 0: %d", stackblur.ErrInvalidArgument, px)
	}
	scaled := px / b.downscale
	if px > 0 {
		scaled = max(scaled, 1)
	}
	if scaled != b.scaledRadius {
		b.scaledRadius = scaled
		b.dirty = true
	}
	b.radius = px
	return nil
}

func (b *Backdrop) Invalidate() { b.dirty = true }
func (b *Backdrop) Dirty() bool { return b.dirty }

// Draw blits the blurred content onto dst, stretched over at. The content is
// re-rendered and re-blurred when invalidated or when at outgrew the last
// blurred size. solid fills the canvas before drawing; an opaque solid blurs
// color only, anything else blurs alpha too.
func (b *Backdrop) Draw(dst draw.Image, at image.Rectangle, solid color.Color) error {
	w, h := at.Dx(), at.Dy()
	if b.dirty || b.blurredW < w || b.blurredH < h {
		b.blurredW, b.blurredH = w, h
		if err := b.reblur(w, h, solid); err != nil {
			return err
		}
	}
	if !b.drawn {
		return nil
	}

	insetH, insetV := b.insets()
	src := image.Rect(insetH, insetV, insetH+w/b.downscale, insetV+h/b.downscale)
	draw.BiLinear.Scale(dst, at, b.canvas, src, draw.Over, nil)
	return nil
}

func (b *Backdrop) insets() (h, v int) {
	if b.hScroll {
		h = b.scaledRadius
	}
	if b.vScroll {
		v = b.scaledRadius
	}
	return h, v
}

func (b *Backdrop) reblur(w, h int, solid color.Color) error {
	b.dirty = false
	b.drawn = false
	if b.scaledRadius == 0 {
		return nil
	}

	insetH, insetV := b.insets()
	scaledW := insetH + w/b.downscale + insetH
	scaledH := insetV + h/b.downscale + insetV
	if scaledW <= 0 || scaledH <= 0 {
		return nil
	}
	b.configure(scaledW, scaledH)

	if solid != Covered {
		draw.Draw(b.canvas, b.canvas.Rect, image.NewUniform(solid), image.Point{}, draw.Src)
	}

	s := 1 / float64(b.downscale)
	m := f64.Aff3{
		s, 0, float64(insetH),
		0, s, float64(insetV),
	}
	if !b.draw(b.canvas, m) {
		return nil
	}
	b.drawn = true

	if _, _, _, a := solid.RGBA(); a == 0xFFFF {
		return b.engine.BlurColor(b.bitmap, b.scaledRadius)
	}
	return b.engine.BlurColorAndAlpha(b.bitmap, b.scaledRadius)
}

// configure sizes the canvas, reusing its pixels when they are large enough.
func (b *Backdrop) configure(w, h int) {
	if c := b.canvas; c != nil {
		if c.Rect.Dx() == w && c.Rect.Dy() == h {
			return
		}
		if cap(c.Pix) >= 4*w*h {
			b.canvas = &image.RGBA{Pix: c.Pix[:4*w*h], Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
			b.bitmap = bitmap.NewRGBA(b.canvas)
			return
		}
	}
	b.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	b.bitmap = bitmap.NewRGBA(b.canvas)
}

// DrawImage returns a DrawFunc that samples src, with src.Bounds().Min at the
// content origin.
func DrawImage(src image.Image) DrawFunc {
	return func(canvas draw.Image, m f64.Aff3) bool {
		r := src.Bounds()
		m[2] -= m[0] * float64(r.Min.X)
		m[5] -= m[4] * float64(r.Min.Y)
		draw.ApproxBiLinear.Transform(canvas, m, src, r, draw.Over, nil)
		return true
	}
}
