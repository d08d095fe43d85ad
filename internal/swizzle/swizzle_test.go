package swizzle

import (
	"bytes"
	"math/rand"
	"testing"
)

func randomSurface(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func TestSwizzleSingleBlockIsIdentity(t *testing.T) {
	// One 16x8 byte block is already contiguous.
	in := randomSurface(t, BlockSize, 1)
	out := make([]byte, BlockSize)
	Swizzle(out, in, BlockWidth, BlockHeight)
	if !bytes.Equal(in, out) {
		t.Fatal("single block should be copied unchanged")
	}
}

func TestSwizzleBlockOrder(t *testing.T) {
	// 32 bytes wide, 16 rows: 2x2 blocks. Tag each byte with its block.
	const w, h = 32, 16
	in := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in[y*w+x] = byte((y/8)*2 + x/16)
		}
	}
	out := make([]byte, w*h)
	Swizzle(out, in, w, h)

	for i, v := range out {
		if want := byte(i / BlockSize); v != want {
			t.Fatalf("out[%d] = block %d, want block %d", i, v, want)
		}
	}
}

func TestSwizzleRowsWithinBlock(t *testing.T) {
	const w, h = 64, 8
	in := make([]byte, w*h)
	for i := range in {
		in[i] = byte(i)
	}
	out := make([]byte, w*h)
	Swizzle(out, in, w, h)

	// Second block (bx=1), third row (j=2) starts at 128+32 and holds
	// source bytes from row 2, columns 16..31.
	got := out[BlockSize+2*BlockWidth : BlockSize+3*BlockWidth]
	want := in[2*w+16 : 2*w+32]
	if !bytes.Equal(got, want) {
		t.Fatalf("block row = %v, want %v", got, want)
	}
}

func TestSwizzleIsPermutation(t *testing.T) {
	sizes := [][2]int{{16, 8}, {64, 8}, {16, 64}, {128, 32}, {512, 64}, {2048, 256}}
	for _, s := range sizes {
		w, h := s[0], s[1]
		in := randomSurface(t, w*h, int64(w*h))
		sw := make([]byte, w*h)
		back := make([]byte, w*h)

		Swizzle(sw, in, w, h)
		Unswizzle(back, sw, w, h)

		if !bytes.Equal(in, back) {
			t.Errorf("%dx%d: unswizzle(swizzle(x)) != x", w, h)
		}

		var hin, hsw [256]int
		for i := range in {
			hin[in[i]]++
			hsw[sw[i]]++
		}
		if hin != hsw {
			t.Errorf("%dx%d: swizzle changed byte values", w, h)
		}
	}
}

func TestOffsetMatchesSwizzle(t *testing.T) {
	const w, h = 128, 32
	in := make([]byte, w*h)
	for i := range in {
		in[i] = byte(i * 7)
	}
	out := make([]byte, w*h)
	Swizzle(out, in, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if out[Offset(x, y, w, h)] != in[y*w+x] {
				t.Fatalf("Offset(%d, %d) points at wrong byte", x, y)
			}
		}
	}
}

func TestNarrowSurfacesAreLinear(t *testing.T) {
	tests := [][2]int{{4, 1}, {8, 2}, {16, 4}, {4, 16}}
	for _, s := range tests {
		w, h := s[0], s[1]
		if Tiled(w, h) {
			t.Errorf("Tiled(%d, %d) = true", w, h)
		}
		in := randomSurface(t, w*h, 9)
		out := make([]byte, w*h)
		Swizzle(out, in, w, h)
		if !bytes.Equal(in, out) {
			t.Errorf("%dx%d: untiled surface should be copied unchanged", w, h)
		}
		if got := Offset(1, h-1, w, h); got != (h-1)*w+1 {
			t.Errorf("%dx%d: Offset = %d, want linear", w, h, got)
		}
	}
}

func BenchmarkSwizzle512(b *testing.B) {
	const w, h = 512 * 4, 512
	in := make([]byte, w*h)
	out := make([]byte, w*h)
	b.SetBytes(int64(w * h))
	for i := 0; i < b.N; i++ {
		Swizzle(out, in, w, h)
	}
}
