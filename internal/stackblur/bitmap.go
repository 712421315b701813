package stackblur

// Format identifies the pixel layout a Bitmap stores.
type Format int

const (
	FormatUnknown Format = iota
	// FormatARGB8888 is 32 bits per pixel, alpha in the top byte, then red,
	// green and blue. It is the only layout the engine accepts.
	FormatARGB8888
	FormatAlpha8
	FormatGray8
	FormatRGBA64
)

func (f Format) String() string {
	switch f {
	case FormatARGB8888:
		return "ARGB_8888"
	case FormatAlpha8:
		return "ALPHA_8"
	case FormatGray8:
		return "GRAY_8"
	case FormatRGBA64:
		return "RGBA_64"
	default:
		return "UNKNOWN"
	}
}

// Bitmap is the image the engine blurs in place.
//
// CopyPixelsToBuffer fills dst with Width()*Height() packed pixels in row-major
// order; CopyPixelsFromBuffer writes the same number of pixels back. Both are
// only called after validation succeeded.
type Bitmap interface {
	Width() int
	Height() int
	Format() Format
	Premultiplied() bool
	CopyPixelsToBuffer(dst []uint32)
	CopyPixelsFromBuffer(src []uint32)
}
