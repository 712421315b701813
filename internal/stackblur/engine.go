package stackblur

// Engine blurs bitmaps in place and keeps its scratch buffers between calls,
// so repeated blurs of similarly sized bitmaps do not allocate.
//
// An Engine is not safe for concurrent use. Give every goroutine its own
// engine, or route work through a Looper.
type Engine struct {
	pool bufferPool
	win  ring
}

// NewEngine returns an engine with no buffers allocated yet.
func NewEngine() *Engine {
	return &Engine{}
}

// BlurColor blurs the red, green and blue channels of b with the given
// radius. Alpha bytes are written back unchanged.
func (e *Engine) BlurColor(b Bitmap, radius int) error {
	return e.blur(b, radius, rgbCodec)
}

// BlurColorAndAlpha blurs all four channels of b. The bitmap must hold
// premultiplied alpha, otherwise colors of transparent pixels would bleed
// into their neighbors.
func (e *Engine) BlurColorAndAlpha(b Bitmap, radius int) error {
	return e.blur(b, radius, argbCodec)
}

// ReleaseBuffers drops all scratch memory. The next blur reallocates it.
func (e *Engine) ReleaseBuffers() {
	e.pool.release()
	e.win = ring{}
}

// Footprint returns the number of scratch bytes the engine currently holds.
func (e *Engine) Footprint() int {
	return e.pool.footprint()
}

func (e *Engine) blur(b Bitmap, radius int, k codec) error {
	if err := validate(b, radius, k.alpha); err != nil {
		return err
	}

	w, h := b.Width(), b.Height()
	e.pool.prepare(w, h, 2*radius+1)

	pix := e.pool.pix[:w*h]
	b.CopyPixelsToBuffer(pix)

	e.horizontalPass(w, h, radius, k)
	e.verticalPass(w, h, radius, k)

	b.CopyPixelsFromBuffer(pix)
	return nil
}
