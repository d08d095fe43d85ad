package capture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if (x+y)%2 == 1 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out/frame.png", PNG, false},
		{"FRAME.WEBP", WebP, false},
		{"frame.jpg", 0, true},
		{"frame", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("%s: err = %v, want ErrUnknownFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %v, %v", tt.path, got, err)
		}
	}
}

func TestUpscale(t *testing.T) {
	src := checker()
	if Upscale(src, 1) != src {
		t.Error("factor 1 should return the input")
	}

	big := Upscale(src, 3)
	if big.Rect.Dx() != 12 || big.Rect.Dy() != 6 {
		t.Fatalf("size = %v", big.Rect)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 12; x++ {
			if got, want := big.NRGBAAt(x, y), src.NRGBAAt(x/3, y/3); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := checker()

	tests := []struct {
		name   string
		decode func(*os.File) (image.Image, error)
	}{
		{"shot.png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{"nested/shot.webp", func(f *os.File) (image.Image, error) { return webp.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := Save(path, src, 2); err != nil {
				t.Fatalf("Save: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Fatalf("bounds = %v", b)
			}
			got := color.NRGBAModel.Convert(img.At(2, 0)).(color.NRGBA)
			if want := src.NRGBAAt(1, 0); got != want {
				t.Errorf("pixel = %v, want %v", got, want)
			}
		})
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.bmp")
	if err := Save(path, checker(), 1); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created for unknown format")
	}
}
