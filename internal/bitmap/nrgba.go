package bitmap

import (
	"image"

	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// NRGBA adapts a straight-alpha *image.NRGBA.
type NRGBA struct {
	img *image.NRGBA
}

func NewNRGBA(img *image.NRGBA) *NRGBA {
	return &NRGBA{img: img}
}

func (b *NRGBA) Image() *image.NRGBA             { return b.img }
func (b *NRGBA) Width() int                      { return b.img.Rect.Dx() }
func (b *NRGBA) Height() int                     { return b.img.Rect.Dy() }
func (b *NRGBA) Format() stackblur.Format        { return stackblur.FormatARGB8888 }
func (b *NRGBA) Premultiplied() bool             { return false }
func (b *NRGBA) CopyPixelsToBuffer(dst []uint32) { packRows(b.img.Pix, b.img.Stride, b.Width(), b.Height(), dst) }

func (b *NRGBA) CopyPixelsFromBuffer(src []uint32) {
	unpackRows(b.img.Pix, b.img.Stride, b.Width(), b.Height(), src)
}
