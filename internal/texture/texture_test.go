package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/vram"
)

// gradient returns a w×h image whose pixels encode their own coordinates.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodePNG(t, img), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {60, 64}, {64, 64}, {100, 128}, {480, 512}, {513, 1024},
	}
	for _, tt := range tests {
		if got := Pow2(tt.in); got != tt.want {
			t.Errorf("Pow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodeIntoVRAM(t *testing.T) {
	pool := vram.NewPool(0)
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(100, 60))), "grad.png", pool)

	if !tex.Valid() {
		t.Fatal("texture has no data")
	}
	if tex.Width() != 100 || tex.Height() != 60 {
		t.Errorf("logical size = %dx%d, want 100x60", tex.Width(), tex.Height())
	}
	if tex.PaddedWidth() != 128 || tex.PaddedHeight() != 64 {
		t.Errorf("padded size = %dx%d, want 128x64", tex.PaddedWidth(), tex.PaddedHeight())
	}
	if !tex.InVRAM() {
		t.Error("texture should live in VRAM")
	}
	if len(tex.Data()) != 128*64*4 {
		t.Errorf("data len = %d", len(tex.Data()))
	}
	if pool.Offset() != 128*64*4 {
		t.Errorf("pool offset = %d", pool.Offset())
	}
	if tex.Address() != vram.BaseAddress {
		t.Errorf("address = %#x", tex.Address())
	}
}

func TestDecodeIntoHeap(t *testing.T) {
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(16, 8))), "small.png", vram.Heap{})
	if !tex.Valid() || tex.InVRAM() {
		t.Fatalf("valid=%v vram=%v, want heap-backed texture", tex.Valid(), tex.InVRAM())
	}
	if tex.Address() != 0 {
		t.Errorf("heap address = %#x", tex.Address())
	}
}

func TestDecodeFallsBackToHeap(t *testing.T) {
	pool := vram.NewPool(1024)
	alloc := vram.Fallback{Primary: pool, Secondary: vram.Heap{}}
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(32, 32))), "big.png", alloc)
	if !tex.Valid() {
		t.Fatal("texture has no data")
	}
	if tex.InVRAM() {
		t.Error("texture larger than the pool must land on the heap")
	}
	if pool.Offset() != 0 {
		t.Errorf("failed allocation moved the cursor to %d", pool.Offset())
	}
}

func TestDecodeOutOfVRAM(t *testing.T) {
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(32, 32))), "big.png", vram.NewPool(1024))
	if tex.Valid() {
		t.Error("texture should have no data when the pool is exhausted")
	}
	if tex.Width() != 32 {
		t.Errorf("width = %d, decoded size should still be reported", tex.Width())
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := gradient(100, 60)
	tex := Decode(bytes.NewReader(encodePNG(t, src)), "grad.png", vram.Heap{})

	got := tex.Image()
	if got.Rect.Dx() != 100 || got.Rect.Dy() != 60 {
		t.Fatalf("image size = %v", got.Rect)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("unswizzled pixels differ from the source")
	}
}

func TestDataIsSwizzled(t *testing.T) {
	// 8 texels wide is 32 bytes, so texel (4,0) starts the second block.
	src := gradient(8, 8)
	tex := Decode(bytes.NewReader(encodePNG(t, src)), "s.png", vram.Heap{})
	data := tex.Data()
	if data[128] != 4 || data[129] != 0 {
		t.Errorf("block 1 starts with texel (%d,%d), want (4,0)", data[128], data[129])
	}
	if data[16] != 0 || data[17] != 1 {
		t.Errorf("row 1 of block 0 starts with texel (%d,%d), want (0,1)", data[16], data[17])
	}
}

func TestPaddingIsZero(t *testing.T) {
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(3, 3))), "odd.png", vram.Heap{})
	if tex.PaddedWidth() != 4 || tex.PaddedHeight() != 4 {
		t.Fatalf("padded = %dx%d", tex.PaddedWidth(), tex.PaddedHeight())
	}
	// A 16-byte wide surface is tiled only when the height is a multiple of 8,
	// so this one stays linear.
	data := tex.Data()
	for y := 0; y < 4; y++ {
		px := data[y*16+12 : y*16+16]
		if !bytes.Equal(px, []byte{0, 0, 0, 0}) {
			t.Errorf("padding texel (3,%d) = %v", y, px)
		}
	}
}

func TestChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	opaque := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	translucent := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Transparent, color.White})

	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", gray, 1},
		{"nrgba", gradient(4, 4), 4},
		{"opaque palette", opaque, 3},
		{"transparent palette", translucent, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := channels(tt.img); got != tt.want {
				t.Errorf("channels = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadFailures(t *testing.T) {
	truncated := append([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 0, 13)
	tests := []struct {
		name string
		tex  func() *Texture
	}{
		{"missing file", func() *Texture {
			return Load(filepath.Join(t.TempDir(), "nope.png"), vram.Heap{})
		}},
		{"empty stream", func() *Texture {
			return Decode(bytes.NewReader(nil), "empty", vram.Heap{})
		}},
		{"truncated png", func() *Texture {
			return Decode(bytes.NewReader(truncated), "bad.png", vram.Heap{})
		}},
		{"unknown signature", func() *Texture {
			return Decode(bytes.NewReader([]byte("not an image")), "notes.txt", vram.Heap{})
		}},
		{"short tga", func() *Texture {
			return Decode(bytes.NewReader([]byte{0, 0, 2}), "bad.tga", vram.Heap{})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := tt.tex()
			if tex.Valid() || tex.Data() != nil {
				t.Error("failed load should produce no data")
			}
			b := &binder{}
			tex.Bind(b)
			if b.calls != 0 {
				t.Errorf("Bind on a failed texture issued %d calls", b.calls)
			}
			if tex.Image() != nil {
				t.Error("Image on a failed texture should be nil")
			}
		})
	}
}

type binder struct {
	calls    int
	format   vram.Format
	swizzled bool
	fn       gu.TexFunc
	min, mag gu.TexFilter
	u, v     gu.TexWrap
	w, h     int
	stride   int
	data     []byte
}

func (b *binder) TexMode(f vram.Format, _ int, swizzled bool) {
	b.calls++
	b.format, b.swizzled = f, swizzled
}
func (b *binder) TexFunc(fn gu.TexFunc, _ bool)   { b.calls++; b.fn = fn }
func (b *binder) TexFilter(min, mag gu.TexFilter) { b.calls++; b.min, b.mag = min, mag }
func (b *binder) TexWrap(u, v gu.TexWrap)         { b.calls++; b.u, b.v = u, v }
func (b *binder) TexImage(_, w, h, stride int, d []byte) {
	b.calls++
	b.w, b.h, b.stride, b.data = w, h, stride, d
}

func TestBind(t *testing.T) {
	tex := Decode(bytes.NewReader(encodePNG(t, gradient(100, 60))), "grad.png", vram.Heap{})
	b := &binder{}
	tex.Bind(b)

	if b.calls != 5 {
		t.Errorf("calls = %d, want 5", b.calls)
	}
	if b.format != vram.PSM8888 || !b.swizzled {
		t.Errorf("mode = %s swizzled=%v", b.format, b.swizzled)
	}
	if b.fn != gu.TFXModulate || b.min != gu.Nearest || b.mag != gu.Nearest {
		t.Errorf("func=%v filter=%v/%v", b.fn, b.min, b.mag)
	}
	if b.u != gu.Repeat || b.v != gu.Repeat {
		t.Errorf("wrap = %v/%v", b.u, b.v)
	}
	if b.w != 128 || b.h != 64 || b.stride != 128 {
		t.Errorf("image = %dx%d stride %d", b.w, b.h, b.stride)
	}
	if &b.data[0] != &tex.Data()[0] {
		t.Error("TexImage should reference the texture's own pixels")
	}
}

func TestDecodeTGA(t *testing.T) {
	// 3x2 uncompressed 24-bit, top-left origin.
	raw := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 2, 0, 24, 0x20}
	for i := 0; i < 3*2; i++ {
		raw = append(raw, 0x10, 0x20, 0x30)
	}
	tex := Decode(bytes.NewReader(raw), "tile.tga", vram.Heap{})
	if !tex.Valid() {
		t.Fatal("tga texture not loaded")
	}
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", tex.Width(), tex.Height())
	}
	if tex.PaddedWidth() != 4 || tex.PaddedHeight() != 2 {
		t.Errorf("padded = %dx%d, want 4x2", tex.PaddedWidth(), tex.PaddedHeight())
	}
}
