package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the entry key (relpath without extension).
	Key string
	// Format is the source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanImages walks the input directory and returns all image sources.
// The exclude directory (typically the output directory when it sits inside
// the input) is skipped.
func ScanImages(inputDir, exclude string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if exclude != "" && path == exclude && path != inputDir {
				return filepath.SkipDir
			}
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		// Key: relative path without extension, using forward slashes.
		key := filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath)))

		// Normalize format name.
		format := strings.TrimPrefix(ext, ".")
		switch format {
		case "jpg":
			format = "jpeg"
		case "tif":
			format = "tiff"
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     key,
			Format:  format,
			Size:    info.Size(),
		})

		return nil
	})

	return sources, err
}
