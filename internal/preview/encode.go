package preview

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gogpu/gg"
)

// Encode writes img as "png" or "webp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png", "":
		dc := gg.NewContextForImage(img)
		defer dc.Close()
		return dc.EncodePNG(w)
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("WebP encode: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: format %q", ErrBadOptions, format)
	}
}

// Save encodes img to path. An empty format is derived from the extension.
func Save(path string, img image.Image, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
