// Package debug holds developer tools for the running game.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes captures of the view as PNG files named
// <prefix>_<timestamp>.png, with a counter when several land in one second.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time

	last  string
	count int
}

// NewScreenshots creates a writer into dir. An empty dir means the working
// directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// SaveRGBA stores bottom-up RGBA rows as read back from OpenGL and returns
// the file written.
func (s *Screenshots) SaveRGBA(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: %dx%d with %d bytes", width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return s.Save(img)
}

// Save encodes img to the next file name.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	name := s.nextName()
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return name, nil
}

func (s *Screenshots) nextName() string {
	stamp := s.now().Format("2006-01-02_15-04-05")
	if stamp == s.last {
		s.count++
	} else {
		s.last, s.count = stamp, 0
	}

	base := fmt.Sprintf("%s_%s.png", s.prefix, stamp)
	if s.count > 0 {
		base = fmt.Sprintf("%s_%s_%d.png", s.prefix, stamp, s.count)
	}
	return filepath.Join(s.dir, base)
}
