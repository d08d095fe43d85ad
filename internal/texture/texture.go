package texture

import (
	"image"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/swizzle"
	"nucleus-renderer/internal/vram"
)

// Texture is a decoded image stored in the coprocessor's tiled 32-bit
// layout, padded to power-of-two dimensions.
type Texture struct {
	name string
	data vram.Buffer // nil when loading failed

	width, height             int
	paddedWidth, paddedHeight int
	channels                  int
}

func (t *Texture) Name() string { return t.name }

// Valid reports whether the texture holds pixel data.
func (t *Texture) Valid() bool { return t.data != nil }

func (t *Texture) Width() int        { return t.width }
func (t *Texture) Height() int       { return t.height }
func (t *Texture) PaddedWidth() int  { return t.paddedWidth }
func (t *Texture) PaddedHeight() int { return t.paddedHeight }
func (t *Texture) Channels() int     { return t.channels }

// Data returns the tiled pixels, or nil.
func (t *Texture) Data() []byte {
	if t.data == nil {
		return nil
	}
	return t.data.Bytes()
}

// InVRAM reports whether the pixels live in the video memory pool.
func (t *Texture) InVRAM() bool { return t.data != nil && t.data.InVRAM() }

// Address returns the coprocessor address of VRAM-backed pixels, else 0.
func (t *Texture) Address() uintptr {
	if t.data == nil {
		return 0
	}
	return t.data.Address()
}

// Bind makes this the active texture: 8888 swizzled, modulated by vertex
// color, nearest filtering, repeat wrapping. A texture without data leaves
// the texture unit untouched.
func (t *Texture) Bind(b gu.TextureBinder) {
	if t.data == nil {
		return
	}
	b.TexMode(vram.PSM8888, 0, true)
	b.TexFunc(gu.TFXModulate, true)
	b.TexFilter(gu.Nearest, gu.Nearest)
	b.TexWrap(gu.Repeat, gu.Repeat)
	b.TexImage(0, t.paddedWidth, t.paddedHeight, t.paddedWidth, t.data.Bytes())
}

// Image returns the logical pixels back in raster order, or nil.
func (t *Texture) Image() *image.NRGBA {
	if t.data == nil {
		return nil
	}
	pitch := t.paddedWidth * 4
	linear := make([]byte, pitch*t.paddedHeight)
	swizzle.Unswizzle(linear, t.data.Bytes(), pitch, t.paddedHeight)

	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+t.width*4], linear[y*pitch:])
	}
	return img
}
