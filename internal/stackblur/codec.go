package stackblur

// Channel indices inside a channels value.
const (
	chA = iota
	chR
	chG
	chB
)

const alphaMask = 0xFF000000

// channels holds one integer per ARGB component. Sums for a single window
// stay far below the int range: 255 * (r+1)^2 per channel.
type channels [4]int

func (c *channels) add(o channels) {
	c[chA] += o[chA]
	c[chR] += o[chR]
	c[chG] += o[chG]
	c[chB] += o[chB]
}

func (c *channels) sub(o channels) {
	c[chA] -= o[chA]
	c[chR] -= o[chR]
	c[chG] -= o[chG]
	c[chB] -= o[chB]
}

func (c *channels) addScaled(o channels, weight int) {
	c[chA] += o[chA] * weight
	c[chR] += o[chR] * weight
	c[chG] += o[chG] * weight
	c[chB] += o[chB] * weight
}

// div truncates toward zero; rounding would break bit compatibility.
func (c channels) div(d int) channels {
	return channels{c[chA] / d, c[chR] / d, c[chG] / d, c[chB] / d}
}

// codec converts packed ARGB words to channels and back. With alpha unset the
// alpha channel is read as zero and never blurred; pack then takes the alpha
// byte from the word it is given.
type codec struct {
	alpha bool
}

var (
	rgbCodec  = codec{alpha: false}
	argbCodec = codec{alpha: true}
)

func (k codec) unpack(p uint32) channels {
	c := channels{
		chR: int(p >> 16 & 0xFF),
		chG: int(p >> 8 & 0xFF),
		chB: int(p & 0xFF),
	}
	if k.alpha {
		c[chA] = int(p >> 24)
	}
	return c
}

func (k codec) pack(c channels, keep uint32) uint32 {
	p := uint32(c[chR])<<16 | uint32(c[chG])<<8 | uint32(c[chB])
	if k.alpha {
		return p | uint32(c[chA])<<24
	}
	return p | keep&alphaMask
}
