// Package bitmap adapts Go images to the stackblur.Bitmap interface.
//
// *image.RGBA stores premultiplied alpha and is the only type both blur
// entry points accept. *image.NRGBA stores straight alpha and works with
// color-only blurs. Other image types report their own format and are
// rejected by the engine.
package bitmap

import (
	"image"

	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// RGBA adapts a premultiplied *image.RGBA.
type RGBA struct {
	img *image.RGBA
}

// NewRGBA wraps img without copying. Blurs write straight into img.Pix.
func NewRGBA(img *image.RGBA) *RGBA {
	return &RGBA{img: img}
}

func (b *RGBA) Image() *image.RGBA              { return b.img }
func (b *RGBA) Width() int                      { return b.img.Rect.Dx() }
func (b *RGBA) Height() int                     { return b.img.Rect.Dy() }
func (b *RGBA) Format() stackblur.Format        { return stackblur.FormatARGB8888 }
func (b *RGBA) Premultiplied() bool             { return true }
func (b *RGBA) CopyPixelsToBuffer(dst []uint32) { packRows(b.img.Pix, b.img.Stride, b.Width(), b.Height(), dst) }

func (b *RGBA) CopyPixelsFromBuffer(src []uint32) {
	unpackRows(b.img.Pix, b.img.Stride, b.Width(), b.Height(), src)
}

// packRows reads byte-ordered R,G,B,A pixels into ARGB words.
func packRows(pix []uint8, stride, w, h int, dst []uint32) {
	i := 0
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4 : y*stride+w*4]
		for x := 0; x < len(row); x += 4 {
			dst[i] = uint32(row[x+3])<<24 | uint32(row[x])<<16 | uint32(row[x+1])<<8 | uint32(row[x+2])
			i++
		}
	}
}

// unpackRows is the inverse of packRows.
func unpackRows(pix []uint8, stride, w, h int, src []uint32) {
	i := 0
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4 : y*stride+w*4]
		for x := 0; x < len(row); x += 4 {
			p := src[i]
			row[x] = uint8(p >> 16)
			row[x+1] = uint8(p >> 8)
			row[x+2] = uint8(p)
			row[x+3] = uint8(p >> 24)
			i++
		}
	}
}
