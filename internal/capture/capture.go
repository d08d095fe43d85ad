// Package capture writes presented frames to disk.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

var ErrUnknownFormat = errors.New("capture: unknown image format")

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling so pixels stay sharp. Factors below 2 return img unchanged.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return ErrUnknownFormat
}

// Save upscales img by scale and writes it to path, creating parent
// directories. The format follows the extension.
func Save(path string, img *image.NRGBA, scale int) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("capture: create dir for %s: %w", path, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: create %s: %w", path, err)
	}
	if err := Encode(out, Upscale(img, scale), f); err != nil {
		out.Close()
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("capture: close %s: %w", path, err)
	}
	return nil
}
