// Package debug provides visual inspection helpers for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	dir string
}

// NewScreenshots creates a writer that stores captures under dir. An
// empty dir writes to the working directory.
func NewScreenshots(dir string) *Screenshots {
	return &Screenshots{dir: dir}
}

// SavePNG writes RGBA pixel data as a PNG and returns the file path.
// Rows are flipped during the copy since OpenGL reads the framebuffer
// bottom-up.
func (s *Screenshots) SavePNG(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("2006-01-02_15-04-05"))
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[srcY*rowSize:srcY*rowSize+rowSize])
	}

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return name, nil
}
