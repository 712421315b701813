package bitmap

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// Generic adapts any other draw.Image. It goes through At and Set, and its
// Format reflects the color model, so the engine refuses anything that is
// not 8-bit RGBA.
type Generic struct {
	img draw.Image
}

func (b *Generic) Image() draw.Image { return b.img }
func (b *Generic) Width() int        { return b.img.Bounds().Dx() }
func (b *Generic) Height() int       { return b.img.Bounds().Dy() }

func (b *Generic) Format() stackblur.Format {
	switch b.img.ColorModel() {
	case color.RGBAModel, color.NRGBAModel:
		return stackblur.FormatARGB8888
	case color.AlphaModel:
		return stackblur.FormatAlpha8
	case color.GrayModel:
		return stackblur.FormatGray8
	case color.RGBA64Model, color.NRGBA64Model:
		return stackblur.FormatRGBA64
	default:
		return stackblur.FormatUnknown
	}
}

func (b *Generic) Premultiplied() bool {
	return b.img.ColorModel() != color.NRGBAModel
}

func (b *Generic) CopyPixelsToBuffer(dst []uint32) {
	r := b.img.Bounds()
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst[i] = b.pack(b.img.At(x, y))
			i++
		}
	}
}

func (b *Generic) CopyPixelsFromBuffer(src []uint32) {
	r := b.img.Bounds()
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.img.Set(x, y, b.unpack(src[i]))
			i++
		}
	}
}

// pack and unpack keep the model's alpha convention, so straight pixels
// reach the engine unpremultiplied.
func (b *Generic) pack(c color.Color) uint32 {
	if !b.Premultiplied() {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
	}
	p := color.RGBAModel.Convert(c).(color.RGBA)
	return uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
}

func (b *Generic) unpack(p uint32) color.Color {
	r, g, bl, a := uint8(p>>16), uint8(p>>8), uint8(p), uint8(p>>24)
	if !b.Premultiplied() {
		return color.NRGBA{R: r, G: g, B: bl, A: a}
	}
	return color.RGBA{R: r, G: g, B: bl, A: a}
}

// Wrap adapts img without copying.
func Wrap(img draw.Image) stackblur.Bitmap {
	switch m := img.(type) {
	case *image.RGBA:
		return NewRGBA(m)
	case *image.NRGBA:
		return NewNRGBA(m)
	default:
		return &Generic{img: img}
	}
}
