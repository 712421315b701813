package stackblur

import "math/rand"

// memBitmap is a flat in-memory Bitmap.
type memBitmap struct {
	w, h          int
	format        Format
	premultiplied bool
	pix           []uint32
}

func newMem(w, h int) *memBitmap {
	return &memBitmap{w: w, h: h, format: FormatARGB8888, premultiplied: true, pix: make([]uint32, w*h)}
}

func (b *memBitmap) Width() int                       { return b.w }
func (b *memBitmap) Height() int                      { return b.h }
func (b *memBitmap) Format() Format                   { return b.format }
func (b *memBitmap) Premultiplied() bool              { return b.premultiplied }
func (b *memBitmap) CopyPixelsToBuffer(dst []uint32)  { copy(dst, b.pix) }
func (b *memBitmap) CopyPixelsFromBuffer(src []uint32) { copy(b.pix, src) }

func (b *memBitmap) clone() *memBitmap {
	c := *b
	c.pix = make([]uint32, len(b.pix))
	copy(c.pix, b.pix)
	return &c
}

// noiseBitmap fills a bitmap with deterministic premultiplied noise.
func noiseBitmap(w, h int, seed int64) *memBitmap {
	rng := rand.New(rand.NewSource(seed))
	b := newMem(w, h)
	for i := range b.pix {
		a := uint32(rng.Intn(256))
		r := uint32(rng.Intn(int(a) + 1))
		g := uint32(rng.Intn(int(a) + 1))
		bl := uint32(rng.Intn(int(a) + 1))
		b.pix[i] = a<<24 | r<<16 | g<<8 | bl
	}
	return b
}

func solidBitmap(w, h int, p uint32) *memBitmap {
	b := newMem(w, h)
	for i := range b.pix {
		b.pix[i] = p
	}
	return b
}

// referenceBlur convolves pix directly with the triangular kernel, first along
// rows then along columns, truncating after each pass.
func referenceBlur(pix []uint32, w, h, radius int, alpha bool) []uint32 {
	shifts := []uint{16, 8, 0}
	if alpha {
		shifts = append(shifts, 24)
	}
	divsum := (radius + 1) * (radius + 1)
	clamp := func(v, hi int) int { return min(max(v, 0), hi) }
	weight := func(i int) int {
		if i < 0 {
			i = -i
		}
		return radius + 1 - i
	}

	tmp := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var out uint32
			for _, s := range shifts {
				sum := 0
				for i := -radius; i <= radius; i++ {
					p := pix[y*w+clamp(x+i, w-1)]
					sum += weight(i) * int(p>>s&0xFF)
				}
				out |= uint32(sum/divsum) << s
			}
			tmp[y*w+x] = out
		}
	}

	dst := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var out uint32
			for _, s := range shifts {
				sum := 0
				for i := -radius; i <= radius; i++ {
					p := tmp[clamp(y+i, h-1)*w+x]
					sum += weight(i) * int(p>>s&0xFF)
				}
				out |= uint32(sum/divsum) << s
			}
			if !alpha {
				out |= pix[y*w+x] & alphaMask
			}
			dst[y*w+x] = out
		}
	}
	return dst
}
