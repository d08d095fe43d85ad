// Package swizzle converts raster-order pixel data to and from the
// coprocessor's tiled texture layout.
//
// The layout splits a surface into blocks of 16 bytes by 8 rows. Blocks are
// stored row of blocks by row of blocks, left to right, and each block holds
// its 8 rows of 16 bytes back to back. A 32-bit texture therefore has 4x8
// texel blocks of 128 bytes each.
package swizzle

const (
	// BlockWidth is the width of a tile in bytes.
	BlockWidth = 16
	// BlockHeight is the height of a tile in rows.
	BlockHeight = 8
	// BlockSize is the number of bytes in one tile.
	BlockSize = BlockWidth * BlockHeight
)

// Tiled reports whether a surface of widthBytes x height divides into whole
// blocks. Surfaces that do not are stored linearly.
func Tiled(widthBytes, height int) bool {
	return widthBytes >= BlockWidth && height >= BlockHeight &&
		widthBytes%BlockWidth == 0 && height%BlockHeight == 0
}

// Swizzle writes the tiled form of in to out. widthBytes is the source row
// pitch. Both slices must hold at least widthBytes*height bytes.
// Surfaces that are not Tiled are copied unchanged.
func Swizzle(out, in []byte, widthBytes, height int) {
	n := widthBytes * height
	if !Tiled(widthBytes, height) {
		copy(out[:n], in[:n])
		return
	}

	widthBlocks := widthBytes / BlockWidth
	heightBlocks := height / BlockHeight
	srcRow := widthBytes * BlockHeight

	dst := 0
	ysrc := 0
	for by := 0; by < heightBlocks; by++ {
		xsrc := ysrc
		for bx := 0; bx < widthBlocks; bx++ {
			src := xsrc
			for j := 0; j < BlockHeight; j++ {
				copy(out[dst:dst+BlockWidth], in[src:src+BlockWidth])
				dst += BlockWidth
				src += widthBytes
			}
			xsrc += BlockWidth
		}
		ysrc += srcRow
	}
}

// Unswizzle is the inverse of Swizzle.
func Unswizzle(out, in []byte, widthBytes, height int) {
	n := widthBytes * height
	if !Tiled(widthBytes, height) {
		copy(out[:n], in[:n])
		return
	}

	widthBlocks := widthBytes / BlockWidth
	heightBlocks := height / BlockHeight
	srcRow := widthBytes * BlockHeight

	src := 0
	ydst := 0
	for by := 0; by < heightBlocks; by++ {
		xdst := ydst
		for bx := 0; bx < widthBlocks; bx++ {
			dst := xdst
			for j := 0; j < BlockHeight; j++ {
				copy(out[dst:dst+BlockWidth], in[src:src+BlockWidth])
				src += BlockWidth
				dst += widthBytes
			}
			xdst += BlockWidth
		}
		ydst += srcRow
	}
}

// Offset returns where byte column bx of row y lands in the swizzled form of
// a widthBytes x height surface.
func Offset(bx, y, widthBytes, height int) int {
	if !Tiled(widthBytes, height) {
		return y*widthBytes + bx
	}
	widthBlocks := widthBytes / BlockWidth
	block := (y/BlockHeight)*widthBlocks + bx/BlockWidth
	return block*BlockSize + (y%BlockHeight)*BlockWidth + bx%BlockWidth
}
