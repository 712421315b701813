package bitmap

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Premultiply returns a premultiplied copy of img, ready for either blur.
func Premultiply(img image.Image) *RGBA {
	return NewRGBA(clone.AsRGBA(img))
}

// Straight returns a straight-alpha copy of img. Only color blurs accept it.
func Straight(img image.Image) *NRGBA {
	return NewNRGBA(imaging.Clone(img))
}
