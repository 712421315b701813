package stackblur

// ring is the sliding window of one pass: 2r+1 packed pixels with ptr on the
// window center. The slot r positions behind ptr holds the oldest pixel.
type ring struct {
	buf    []uint32
	ptr    int
	radius int
}

// reset points the ring at buf[:2*radius+1] and centers it on slot radius.
// Slot contents are left as they are; seed overwrites all of them.
func (w *ring) reset(buf []uint32, radius int) {
	w.buf = buf[:2*radius+1]
	w.ptr = radius
	w.radius = radius
}

func (w *ring) seed(slot int, p uint32) {
	w.buf[slot] = p
}

func (w *ring) oldest() int {
	i := w.ptr - w.radius
	if i < 0 {
		i += len(w.buf)
	}
	return i
}

// evict returns the pixel leaving the window.
func (w *ring) evict() uint32 {
	return w.buf[w.oldest()]
}

// push stores the incoming pixel in the slot evict just freed.
func (w *ring) push(p uint32) {
	w.buf[w.oldest()] = p
}

// advance moves the center one step and returns the pixel now under it.
func (w *ring) advance() uint32 {
	w.ptr++
	if w.ptr == len(w.buf) {
		w.ptr = 0
	}
	return w.buf[w.ptr]
}
