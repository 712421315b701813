package stackblur

import "math/bits"

// bufferPool owns the scratch memory of one engine. Buffers grow to the
// largest request seen and are zeroed instead of reallocated afterwards.
type bufferPool struct {
	pix    []uint32 // source pixels, overwritten by the vertical pass
	rgb    []uint32 // horizontal pass output
	vmin   []int    // clamped lead index per column or row
	window []uint32 // ring storage
}

// prepare guarantees capacity for a w x h bitmap blurred with a window of div.
func (p *bufferPool) prepare(w, h, div int) {
	wh := w * h
	if len(p.pix) < wh {
		p.pix = make([]uint32, wh)
		p.rgb = make([]uint32, wh)
	} else {
		// pix is fully overwritten by the copy-in.
		clear(p.rgb)
	}

	if n := max(w, h); len(p.vmin) < n {
		p.vmin = make([]int, n)
	} else {
		clear(p.vmin)
	}

	if len(p.window) < div {
		p.window = make([]uint32, div)
	} else {
		clear(p.window)
	}
}

func (p *bufferPool) release() {
	p.pix = nil
	p.rgb = nil
	p.vmin = nil
	p.window = nil
}

// footprint returns the bytes currently held.
func (p *bufferPool) footprint() int {
	return 4*(len(p.pix)+len(p.rgb)+len(p.window)) + bits.UintSize/8*len(p.vmin)
}
