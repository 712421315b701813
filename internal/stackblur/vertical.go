package stackblur

// verticalPass blurs every column of rgb back into pix. Without alpha the
// alpha byte already in pix is kept.
func (e *Engine) verticalPass(w, h, radius int, k codec) {
	pix, rgb, vmin := e.pool.pix, e.pool.rgb, e.pool.vmin
	win := &e.win
	r1 := radius + 1
	hm := h - 1
	divsum := divisor(radius)

	for x := 0; x < w; x++ {
		var acc accumulator
		win.reset(e.pool.window, radius)
		for i := -radius; i <= radius; i++ {
			p := rgb[min(hm, max(i, 0))*w+x]
			win.seed(i+radius, p)
			acc.seed(k.unpack(p), i, r1)
		}

		yi := x
		for y := 0; y < h; y++ {
			pix[yi] = k.pack(acc.sum.div(divsum), pix[yi])

			if x == 0 {
				vmin[y] = min(y+r1, hm) * w
			}
			leaving := win.evict()
			p := rgb[x+vmin[y]]
			win.push(p)
			center := win.advance()
			acc.slide(k.unpack(leaving), k.unpack(p), k.unpack(center))

			yi += w
		}
	}
}
