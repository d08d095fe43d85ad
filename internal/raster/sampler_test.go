package raster

import (
	"math"
	"testing"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/swizzle"
	"nucleus-renderer/internal/vram"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n int
		mode gu.TexWrap
		want int
	}{
		{3, 4, gu.Repeat, 3},
		{4, 4, gu.Repeat, 0},
		{-1, 4, gu.Repeat, 3},
		{-5, 4, gu.Repeat, 3},
		{-1, 4, gu.Clamp, 0},
		{9, 4, gu.Clamp, 3},
	}
	for _, tt := range tests {
		if got := wrap(tt.i, tt.n, tt.mode); got != tt.want {
			t.Errorf("wrap(%d, %d, %d) = %d, want %d", tt.i, tt.n, tt.mode, got, tt.want)
		}
	}
}

// unit returns a texture unit holding a w×h texture whose red channel is
// the texel index.
func unit(w, h int, swizzled bool) *texUnit {
	linear := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		linear[i*4] = uint8(i)
		linear[i*4+3] = 255
	}
	data := linear
	if swizzled {
		data = make([]byte, len(linear))
		swizzle.Swizzle(data, linear, w*4, h)
	}
	return &texUnit{
		format: vram.PSM8888, swizzled: swizzled, rgba: true,
		width: w, height: h, stride: w, data: data,
	}
}

func TestSampleNearestSwizzled(t *testing.T) {
	tu := unit(16, 16, true)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			u := (float64(x) + 0.5) / 16
			v := (float64(y) + 0.5) / 16
			got := tu.sample(u, v)
			if want := float64(uint8(y*16+x)) / 255; math.Abs(got[0]-want) > 1e-9 {
				t.Fatalf("sample(%d,%d) red = %v, want %v", x, y, got[0], want)
			}
		}
	}
}

func TestSampleRepeats(t *testing.T) {
	tu := unit(4, 4, false)
	a := tu.sample(0.1, 0.1)
	b := tu.sample(1.1, -0.9)
	if a != b {
		t.Errorf("repeat sample differs: %v vs %v", a, b)
	}
}

func TestSampleBilinear(t *testing.T) {
	tu := unit(4, 1, false)
	tu.mag = gu.Linear
	tu.wrapU = gu.Clamp
	// Halfway between the centers of texels 1 and 2.
	got := tu.sample(0.5, 0.5)
	if want := 1.5 / 255; math.Abs(got[0]-want) > 1e-9 {
		t.Errorf("bilinear red = %v, want %v", got[0], want)
	}
}

func TestCombine(t *testing.T) {
	frag := [4]float64{1, 0.5, 0, 1}
	tex := [4]float64{0.5, 0.5, 0.5, 0.5}
	tests := []struct {
		fn   gu.TexFunc
		want [4]float64
	}{
		{gu.TFXModulate, [4]float64{0.5, 0.25, 0, 0.5}},
		{gu.TFXReplace, [4]float64{0.5, 0.5, 0.5, 0.5}},
		{gu.TFXDecal, [4]float64{0.75, 0.5, 0.25, 1}},
		{gu.TFXAdd, [4]float64{1, 1, 0.5, 0.5}},
	}
	for _, tt := range tests {
		tu := &texUnit{fn: tt.fn, rgba: true}
		if got := tu.combine(frag, tex); got != tt.want {
			t.Errorf("combine(%d) = %v, want %v", tt.fn, got, tt.want)
		}
	}
}
