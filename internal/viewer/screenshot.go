package viewer

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/tubegen/internal/preview"
)

// Screenshots writes captured frames to a directory.
type Screenshots struct {
	Dir    string
	Prefix string
	Format string // png or webp

	now func() time.Time
}

// filename returns the path for a capture taken now.
func (s *Screenshots) filename() string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	name := fmt.Sprintf("%s_%s.%s", s.Prefix, now().Format("2006-01-02_15-04-05"), s.Format)
	if s.Dir != "" {
		name = filepath.Join(s.Dir, name)
	}
	return name
}

// Capture saves RGBA pixels read back from the framebuffer. OpenGL rows
// start at the bottom, so the image is flipped while copying.
func (s *Screenshots) Capture(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	path := s.filename()
	if err := preview.Save(path, img, s.Format); err != nil {
		return "", err
	}
	return path, nil
}
