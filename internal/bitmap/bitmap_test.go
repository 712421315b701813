package bitmap

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBAPackLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0x22, G: 0x33, B: 0x44, A: 0x55})
	img.SetRGBA(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0xFF})

	buf := make([]uint32, 2)
	NewRGBA(img).CopyPixelsToBuffer(buf)
	assert.Equal(t, []uint32{0x55223344, 0xFF010203}, buf)

	NewRGBA(img).CopyPixelsFromBuffer([]uint32{0x10203040, 0x01020304})
	assert.Equal(t, color.RGBA{R: 0x20, G: 0x30, B: 0x40, A: 0x10}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 2, G: 3, B: 4, A: 1}, img.RGBAAt(1, 0))
}

func TestRGBASubImageHonoursStride(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 0xFF})
		}
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	b := NewRGBA(sub)
	require.Equal(t, 2, b.Width())
	require.Equal(t, 2, b.Height())

	buf := make([]uint32, 4)
	b.CopyPixelsToBuffer(buf)
	assert.Equal(t, []uint32{0xFF010100, 0xFF020100, 0xFF010200, 0xFF020200}, buf)

	b.CopyPixelsFromBuffer([]uint32{0, 0, 0, 0})
	assert.Equal(t, color.RGBA{}, img.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{R: 3, G: 3, A: 0xFF}, img.RGBAAt(3, 3))
}

func TestWrapFormats(t *testing.T) {
	tests := []struct {
		name          string
		img           func() draw.Image
		format        stackblur.Format
		premultiplied bool
	}{
		{"rgba", func() draw.Image { return image.NewRGBA(image.Rect(0, 0, 1, 1)) }, stackblur.FormatARGB8888, true},
		{"nrgba", func() draw.Image { return image.NewNRGBA(image.Rect(0, 0, 1, 1)) }, stackblur.FormatARGB8888, false},
		{"gray", func() draw.Image { return image.NewGray(image.Rect(0, 0, 1, 1)) }, stackblur.FormatGray8, true},
		{"alpha", func() draw.Image { return image.NewAlpha(image.Rect(0, 0, 1, 1)) }, stackblur.FormatAlpha8, true},
		{"rgba64", func() draw.Image { return image.NewRGBA64(image.Rect(0, 0, 1, 1)) }, stackblur.FormatRGBA64, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Wrap(tt.img())
			assert.Equal(t, tt.format, b.Format())
			assert.Equal(t, tt.premultiplied, b.Premultiplied())
		})
	}
}

func TestEngineRejectsGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(1, 1, color.Gray{Y: 200})

	err := stackblur.NewEngine().BlurColor(Wrap(img), 1)
	require.ErrorIs(t, err, stackblur.ErrUnsupportedFormat)
	assert.Equal(t, uint8(200), img.GrayAt(1, 1).Y)
}

func TestEngineRejectsStraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 128})

	e := stackblur.NewEngine()
	require.ErrorIs(t, e.BlurColorAndAlpha(NewNRGBA(img), 1), stackblur.ErrUnsupportedFormat)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, img.NRGBAAt(1, 1))

	require.NoError(t, e.BlurColor(NewNRGBA(img), 1))
	assert.Equal(t, uint8(128), img.NRGBAAt(1, 1).A)
}

func TestPremultiplyAndStraight(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 128})

	p := Premultiply(src)
	assert.True(t, p.Premultiplied())
	got := p.Image().RGBAAt(0, 0)
	assert.Equal(t, uint8(128), got.A)
	assert.InDelta(t, 128, int(got.R), 1)

	s := Straight(p.Image())
	assert.False(t, s.Premultiplied())
	assert.Equal(t, 2, s.Width())
	assert.InDelta(t, 255, int(s.Image().NRGBAAt(0, 0).R), 1)
}

func TestBlurThroughAdapterKeepsOpaqueAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 7, A: 0xFF})
		}
	}
	require.NoError(t, stackblur.NewEngine().BlurColor(NewRGBA(img), 2))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, uint8(0xFF), img.RGBAAt(x, y).A)
			require.Equal(t, uint8(7), img.RGBAAt(x, y).B)
		}
	}
}

// nrgbaView hides the concrete type so Wrap falls back to Generic.
type nrgbaView struct{ *image.NRGBA }

func TestGenericStraightRoundTrip(t *testing.T) {
	want := color.NRGBA{R: 201, G: 7, B: 99, A: 3}
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	draw.Draw(img, img.Rect, image.NewUniform(want), image.Point{}, draw.Src)

	b := Wrap(nrgbaView{img})
	require.IsType(t, &Generic{}, b)
	assert.False(t, b.Premultiplied())

	require.NoError(t, stackblur.NewEngine().BlurColor(b, 1))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, want, img.NRGBAAt(x, y))
		}
	}
}
