package pipeline

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/stackblur-cli/internal/backdrop"
	"github.com/AnyUserName/stackblur-cli/internal/bitmap"
	"github.com/AnyUserName/stackblur-cli/internal/encoder"
	"github.com/AnyUserName/stackblur-cli/internal/hasher"
	"github.com/AnyUserName/stackblur-cli/internal/profile"
	"github.com/AnyUserName/stackblur-cli/internal/report"
	"github.com/AnyUserName/stackblur-cli/internal/stackblur"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key     string
	entry   report.Entry
	scratch int // engine footprint after the blur
	err     error
}

// processImage handles a single source image: decode, resize, blur, encode.
func processImage(eng *stackblur.Engine, src Source, cfg Config, registry *encoder.Registry) processResult {
	result := processResult{key: src.Key}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	if cfg.MaxWidth > 0 && img.Bounds().Dx() > cfg.MaxWidth {
		img = imaging.Resize(img, cfg.MaxWidth, 0, imaging.Lanczos)
	}

	start := time.Now()
	out, bm, err := blurImage(eng, img, cfg)
	if err != nil {
		result.err = fmt.Errorf("blur %s: %w", src.RelPath, err)
		return result
	}
	elapsed := time.Since(start)
	result.scratch = eng.Footprint()

	enc := registry.Resolve(cfg.Profile.Format, cfg.Profile.Alpha || !isOpaque(out))
	data, err := enc.Encode(out, cfg.Profile.Quality)
	if err != nil {
		result.err = fmt.Errorf("encode %s as %s: %w", src.RelPath, enc.Format(), err)
		return result
	}

	contentHash := hasher.ContentHash(data, 16)

	// Build filename: key.hash.ext
	keyDir := filepath.Dir(src.Key)
	fileName := fmt.Sprintf("%s.%s.%s", filepath.Base(src.Key), contentHash[:8], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("create dir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	pix := make([]uint32, bm.Width()*bm.Height())
	bm.CopyPixelsToBuffer(pix)

	result.entry = report.Entry{
		Source:     src.RelPath,
		Width:      bm.Width(),
		Height:     bm.Height(),
		InputSize:  src.Size,
		Format:     enc.Format(),
		Size:       int64(len(data)),
		Hash:       contentHash,
		PixelHash:  strconv.FormatUint(hasher.PixelHash(pix), 16),
		Path:       relPath,
		BlurMicros: elapsed.Microseconds(),
	}
	return result
}

// blurImage blurs a copy of img as the profile asks. Straight alpha always
// blurs at full resolution, since the backdrop canvas is premultiplied, and
// so do images smaller than one downscaled pixel.
func blurImage(eng *stackblur.Engine, img image.Image, cfg Config) (image.Image, stackblur.Bitmap, error) {
	p := cfg.Profile
	if p.ScaledRadius() < 1 {
		return nil, nil, fmt.Errorf("%w: radius %d at 1/%d scale", stackblur.ErrInvalidArgument, p.Radius, max(p.Downscale, 1))
	}
	b := img.Bounds()
	if p.Downscale > 1 && !cfg.Straight && b.Dx() >= p.Downscale && b.Dy() >= p.Downscale {
		return blurDownscaled(eng, img, p)
	}

	var (
		bm  stackblur.Bitmap
		out image.Image
	)
	if cfg.Straight {
		n := bitmap.Straight(img)
		bm, out = n, n.Image()
	} else {
		r := bitmap.Premultiply(img)
		bm, out = r, r.Image()
	}

	blur := eng.BlurColor
	if p.Alpha {
		blur = eng.BlurColorAndAlpha
	}
	if err := blur(bm, p.Radius); err != nil {
		return nil, nil, err
	}
	return out, bm, nil
}

// blurDownscaled renders img through a backdrop at 1/Downscale resolution
// and stretches the result back to the original size.
func blurDownscaled(eng *stackblur.Engine, img image.Image, p profile.Profile) (image.Image, stackblur.Bitmap, error) {
	bd, err := backdrop.New(eng, p.Radius, p.Downscale, false, false, backdrop.DrawImage(img))
	if err != nil {
		return nil, nil, err
	}

	var solid color.Color = color.White
	if p.Alpha {
		solid = color.Transparent
	}

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if err := bd.Draw(out, out.Rect, solid); err != nil {
		return nil, nil, err
	}
	return out, bitmap.NewRGBA(out), nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
