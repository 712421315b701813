package stackblur

// accumulator carries the running sums of one row or column.
//
// sum is the weighted total of the window, out the plain sum of the trailing
// half including the center, in the plain sum of the leading half.
type accumulator struct {
	sum, in, out channels
}

// seed adds the pixel at offset i from the center during window setup.
func (a *accumulator) seed(c channels, i, r1 int) {
	if i < 0 {
		a.sum.addScaled(c, r1+i)
		a.out.add(c)
		return
	}
	a.sum.addScaled(c, r1-i)
	if i > 0 {
		a.in.add(c)
	} else {
		a.out.add(c)
	}
}

// slide moves the window one step: leaving is the pixel dropping off the
// trailing edge, entering the one joining at the leading edge and center the
// pixel that becomes the new center.
func (a *accumulator) slide(leaving, entering, center channels) {
	a.sum.sub(a.out)
	a.out.sub(leaving)
	a.in.add(entering)
	a.sum.add(a.in)
	a.out.add(center)
	a.in.sub(center)
}

// horizontalPass blurs every row of pix into rgb.
func (e *Engine) horizontalPass(w, h, radius int, k codec) {
	pix, rgb, vmin := e.pool.pix, e.pool.rgb, e.pool.vmin
	win := &e.win
	r1 := radius + 1
	wm := w - 1
	divsum := divisor(radius)

	yi, yw := 0, 0
	for y := 0; y < h; y++ {
		var acc accumulator
		win.reset(e.pool.window, radius)
		for i := -radius; i <= radius; i++ {
			p := pix[yw+min(wm, max(i, 0))]
			win.seed(i+radius, p)
			acc.seed(k.unpack(p), i, r1)
		}

		for x := 0; x < w; x++ {
			rgb[yi] = k.pack(acc.sum.div(divsum), 0)

			if y == 0 {
				vmin[x] = min(x+r1, wm)
			}
			leaving := win.evict()
			p := pix[yw+vmin[x]]
			win.push(p)
			center := win.advance()
			acc.slide(k.unpack(leaving), k.unpack(p), k.unpack(center))

			yi++
		}
		yw += w
	}
}

// divisor is the sum of the triangular weights of a window of radius r.
func divisor(radius int) int {
	d := (2*radius + 2) >> 1
	return d * d
}
