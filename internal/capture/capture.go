// Package capture writes screenshots of the rendered globe.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is a screenshot file format.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ParseFormat accepts "png" or "bmp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, BMP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown screenshot format %q", s)
	}
}

// Encode writes img to w in the given format.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unknown screenshot format %q", string(f))
	}
}

// Writer saves screenshots as timestamped files in a directory.
type Writer struct {
	dir    string
	prefix string
	format Format

	now  func() time.Time
	last string
	seq  int
}

// NewWriter creates a screenshot writer. An empty dir writes to the working
// directory.
func NewWriter(dir, prefix string, format Format) *Writer {
	return &Writer{
		dir:    dir,
		prefix: prefix,
		format: format,
		now:    time.Now,
	}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// SetDir changes the output directory.
func (w *Writer) SetDir(dir string) {
	w.dir = dir
}

// SavePixels saves raw RGBA pixels read back from OpenGL.
func (w *Writer) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return w.Save(img)
}

// Save encodes img into a new file and returns its path.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.nextName()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := w.format.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", w.format, err)
	}
	return path, file.Close()
}

// nextName builds prefix_timestamp.ext, adding a counter when several
// screenshots land in the same second.
func (w *Writer) nextName() string {
	stamp := w.now().Format("2006-01-02_15-04-05")
	if stamp == w.last {
		w.seq++
	} else {
		w.last, w.seq = stamp, 0
	}

	name := fmt.Sprintf("%s_%s", w.prefix, stamp)
	if w.seq > 0 {
		name = fmt.Sprintf("%s_%d", name, w.seq)
	}
	name += "." + string(w.format)

	if w.dir != "" {
		return filepath.Join(w.dir, name)
	}
	return name
}

// FromPixels converts bottom-up RGBA rows (OpenGL read-back order) into a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
