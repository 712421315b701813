package backdrop

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// counting wraps fn and counts how often the backdrop re-renders.
func counting(fn DrawFunc, n *int) DrawFunc {
	return func(canvas draw.Image, m f64.Aff3) bool {
		*n++
		return fn(canvas, m)
	}
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New(stackblur.NewEngine(), 4, 0, false, false, nil)
	require.ErrorIs(t, err, stackblur.ErrInvalidArgument)

	_, err = New(stackblur.NewEngine(), -1, 2, false, false, nil)
	require.ErrorIs(t, err, stackblur.ErrInvalidArgument)
}

func TestSetRadiusScales(t *testing.T) {
	b, err := New(stackblur.NewEngine(), 10, 4, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, b.scaledRadius)
	assert.True(t, b.Dirty())

	b.dirty = false
	require.NoError(t, b.SetRadius(11))
	assert.False(t, b.Dirty(), "same scaled radius")
	assert.Equal(t, 11, b.Radius())

	require.NoError(t, b.SetRadius(1))
	assert.Equal(t, 1, b.scaledRadius, "positive radius never scales to zero")
	assert.True(t, b.Dirty())

	require.NoError(t, b.SetRadius(0))
	assert.Equal(t, 0, b.scaledRadius)
}

func TestDrawUniformContent(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	b, err := New(stackblur.NewEngine(), 8, 2, true, false, DrawImage(solid(32, 32, red)))
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 32, 32))
	require.NoError(t, b.Draw(dst, dst.Rect, color.White))

	for _, p := range []image.Point{{16, 16}, {10, 20}, {16, 0}} {
		got := dst.RGBAAt(p.X, p.Y)
		assert.InDelta(t, 255, int(got.R), 1, "at %v", p)
		assert.InDelta(t, 0, int(got.G), 1, "at %v", p)
		assert.Equal(t, uint8(255), got.A, "at %v", p)
	}
}

func TestDrawReblursOnlyWhenNeeded(t *testing.T) {
	var renders int
	content := solid(40, 40, color.RGBA{G: 200, A: 255})
	b, err := New(stackblur.NewEngine(), 6, 3, false, true, counting(DrawImage(content), &renders))
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 30, 30), color.Black))
	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 30, 30), color.Black))
	assert.Equal(t, 1, renders)

	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 20, 20), color.Black))
	assert.Equal(t, 1, renders, "smaller area reuses the blurred canvas")

	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 40, 40), color.Black))
	assert.Equal(t, 2, renders, "larger area")

	b.Invalidate()
	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 40, 40), color.Black))
	assert.Equal(t, 3, renders)

	require.NoError(t, b.SetRadius(7))
	require.NoError(t, b.Draw(dst, image.Rect(0, 0, 40, 40), color.Black))
	assert.Equal(t, 3, renders, "7/3 == 6/3")
}

func TestDrawZeroRadiusDrawsNothing(t *testing.T) {
	var renders int
	b, err := New(stackblur.NewEngine(), 0, 2, false, false, counting(DrawImage(solid(8, 8, color.RGBA{R: 9, A: 255})), &renders))
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, b.Draw(dst, dst.Rect, color.Black))
	assert.Zero(t, renders)
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(4, 4))
}

func TestDrawSkippedContent(t *testing.T) {
	b, err := New(stackblur.NewEngine(), 4, 1, false, false, func(draw.Image, f64.Aff3) bool { return false })
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, b.Draw(dst, dst.Rect, color.White))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 0))
}

func TestTransparentSolidBlursAlpha(t *testing.T) {
	content := image.NewRGBA(image.Rect(0, 0, 16, 16))
	draw.Draw(content, image.Rect(0, 0, 8, 16), image.NewUniform(color.RGBA{B: 255, A: 255}), image.Point{}, draw.Src)

	b, err := New(stackblur.NewEngine(), 3, 1, false, false, DrawImage(content))
	require.NoError(t, err)

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	require.NoError(t, b.Draw(dst, dst.Rect, color.Transparent))

	edge := b.canvas.RGBAAt(8, 8)
	assert.Greater(t, edge.A, uint8(0), "alpha bleeds across the edge")
	assert.Less(t, edge.A, uint8(255))
	assert.LessOrEqual(t, edge.B, edge.A, "still premultiplied")
}

func TestConfigureReusesPixels(t *testing.T) {
	b, err := New(stackblur.NewEngine(), 2, 1, false, false, nil)
	require.NoError(t, err)

	b.configure(10, 10)
	pix := &b.canvas.Pix[0]

	b.configure(5, 8)
	assert.Same(t, pix, &b.canvas.Pix[0])
	assert.Equal(t, image.Rect(0, 0, 5, 8), b.canvas.Rect)
	assert.Equal(t, 20, b.canvas.Stride)
	assert.Same(t, b.canvas, b.bitmap.Image())

	b.configure(20, 20)
	assert.NotSame(t, pix, &b.canvas.Pix[0])
}

func TestCoveredKeepsCanvas(t *testing.T) {
	b, err := New(stackblur.NewEngine(), 1, 1, false, false, func(canvas draw.Image, _ f64.Aff3) bool {
		canvas.Set(0, 0, color.RGBA{R: 255, A: 255})
		return true
	})
	require.NoError(t, err)

	b.configure(4, 4)
	draw.Draw(b.canvas, b.canvas.Rect, image.NewUniform(color.RGBA{G: 255, A: 255}), image.Point{}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, b.Draw(dst, dst.Rect, Covered))
	assert.Greater(t, b.canvas.RGBAAt(3, 3).G, uint8(200), "pre-existing pixels survive")
}
