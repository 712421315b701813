package stackblur

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a radius below 1 or an empty bitmap.
	ErrInvalidArgument = errors.New("stackblur: invalid argument")
	// ErrUnsupportedFormat reports a bitmap the engine cannot blur: a pixel
	// layout other than FormatARGB8888, or straight alpha when alpha is blurred.
	ErrUnsupportedFormat = errors.New("stackblur: unsupported format")
	// ErrLooperClosed is returned when posting to a looper that was closed.
	ErrLooperClosed = errors.New("stackblur: looper closed")
)

// validate runs every precondition before the engine touches its buffers.
func validate(b Bitmap, radius int, alpha bool) error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrInvalidArgument)
	}
	if radius < 1 {
		return fmt.Errorf("%w: radius < 1: %d", ErrInvalidArgument, radius)
	}
	if f := b.Format(); f != FormatARGB8888 {
		return fmt.Errorf("%w: %s bitmap required, got %s", ErrUnsupportedFormat, FormatARGB8888, f)
	}
	if w, h := b.Width(), b.Height(); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: empty bitmap %dx%d", ErrInvalidArgument, w, h)
	}
	if alpha && !b.Premultiplied() {
		return fmt.Errorf("%w: premultiplied bitmap required", ErrUnsupportedFormat)
	}
	return nil
}
