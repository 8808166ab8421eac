// Package upload stores user-submitted photos. Incoming files are checked
// for an image content type, decoded, scaled down to a configured maximum
// width and written to disk as JPEG under a generated name.
package upload

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrNotImage    = errors.New("uploaded file is not an image")
	ErrTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrUndecodable = errors.New("uploaded file could not be decoded as an image")
)

// jpegQuality is used for every stored photo regardless of input format.
const jpegQuality = 85

// Processor validates, resizes and persists uploaded photos.
type Processor struct {
	dir      string
	maxBytes int64
	width    int
}

// ProcessorConfig holds configuration for the upload processor
type ProcessorConfig struct {
	Dir      string
	MaxBytes int64
	Width    int
}

// NewProcessor creates a processor and ensures the target directory exists.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Processor{dir: cfg.Dir, maxBytes: cfg.MaxBytes, width: cfg.Width}, nil
}

// Save reads one uploaded file and stores it as a resized JPEG. It returns
// the stored filename, which callers persist on the owning record. The
// content type must carry an image/ prefix; actual decodability is what
// ultimately gates acceptance.
func (p *Processor) Save(contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	counted := &countingReader{r: io.LimitReader(r, p.maxBytes+1)}
	src, _, err := image.Decode(counted)
	if err != nil {
		return "", ErrUndecodable
	}
	// Drain trailing bytes the decoder did not need, then check the total.
	// One byte past the limit means the original was larger than allowed.
	io.Copy(io.Discard, counted)
	if counted.n > p.maxBytes {
		return "", ErrTooLarge
	}

	resized := p.resize(src)

	name := uuid.NewString() + ".jpg"
	f, err := os.Create(filepath.Join(p.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encoding photo: %w", err)
	}
	return name, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// resize scales the image down to the configured width, preserving aspect
// ratio. Images already at or below the width are returned unchanged.
func (p *Processor) resize(src image.Image) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= p.width {
		return src
	}

	height := bounds.Dy() * p.width / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, p.width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
