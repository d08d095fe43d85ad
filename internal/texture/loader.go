package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"nucleus-renderer/internal/logging"
	"nucleus-renderer/internal/swizzle"
	"nucleus-renderer/internal/vram"
)

var errUnknownFormat = errors.New("texture: unknown image format")

// signatures maps leading bytes to decoders. TGA has no signature and is
// picked by file extension instead.
var signatures = []struct {
	magic  string
	decode func(io.Reader) (image.Image, error)
}{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"GIF8", gif.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
	{"RIFF????WEBP", webp.Decode},
}

func matchMagic(magic string, b []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != b[i] {
			return false
		}
	}
	return true
}

// decodeImage picks a decoder from the data's signature, falling back to
// TGA for .tga names.
func decodeImage(raw []byte, name string) (image.Image, error) {
	for _, s := range signatures {
		if matchMagic(s.magic, raw) {
			return s.decode(bytes.NewReader(raw))
		}
	}
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return tga.Decode(bytes.NewReader(raw))
	}
	return nil, errUnknownFormat
}

// Pow2 returns the smallest power of two that is >= n. Pow2(0) is 1.
func Pow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Load reads an image file and prepares it for the coprocessor, placing the
// tiled pixels wherever alloc hands out memory. A file that cannot be read
// or decoded yields a texture without data; binding it does nothing.
func Load(path string, alloc vram.Allocator) *Texture {
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Logger().Warn("unable to load texture", "path", path, "err", err)
		return &Texture{name: path}
	}
	return decode(raw, path, alloc)
}

// Decode is Load for an already opened image stream. name is used for
// logging and to recognise TGA data.
func Decode(r io.Reader, name string, alloc vram.Allocator) *Texture {
	raw, err := io.ReadAll(r)
	if err != nil {
		logging.Logger().Warn("unable to load texture", "path", name, "err", err)
		return &Texture{name: name}
	}
	return decode(raw, name, alloc)
}

func decode(raw []byte, name string, alloc vram.Allocator) *Texture {
	t := &Texture{name: name}

	src, err := decodeImage(raw, name)
	if err != nil {
		logging.Logger().Warn("unable to load texture", "path", name, "err", err)
		return t
	}
	img := toNRGBA(src)

	t.width = img.Rect.Dx()
	t.height = img.Rect.Dy()
	t.channels = channels(src)
	t.paddedWidth = Pow2(t.width)
	t.paddedHeight = Pow2(t.height)

	data, err := prepare(img, t.paddedWidth, t.paddedHeight, alloc)
	if err != nil {
		logging.Logger().Warn("unable to place texture", "path", name, "err", err)
		return t
	}
	t.data = data

	logging.Logger().Debug("texture loaded",
		"path", name,
		"size", fmt.Sprintf("%dx%d", t.width, t.height),
		"padded", fmt.Sprintf("%dx%d", t.paddedWidth, t.paddedHeight),
		"vram", data.InVRAM(),
		"addr", fmt.Sprintf("%#x", data.Address()))
	return t
}

// prepare pads img into a pw×ph staging buffer and swizzles it into memory
// from alloc. Padding texels are left zero.
func prepare(img *image.NRGBA, pw, ph int, alloc vram.Allocator) (vram.Buffer, error) {
	pitch := pw * 4
	staging := make([]byte, pitch*ph)

	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w*4]
		copy(staging[y*pitch:], src)
	}

	dst, err := alloc.Alloc(pw, ph, vram.PSM8888)
	if err != nil {
		return nil, err
	}
	swizzle.Swizzle(dst.Bytes(), staging, pitch, ph)
	return dst, nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// channels reports how many channels the source image carried.
func channels(src image.Image) int {
	switch img := src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range img.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 4
}
