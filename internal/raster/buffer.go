package raster

import (
	"encoding/binary"
	"image"

	"nucleus-renderer/internal/vram"
)

// surface is a color or depth buffer living in a VRAM region. Rows are
// stride pixels apart; only the first width columns are visible.
type surface struct {
	pix    []byte
	bpp    int
	stride int
	width  int
	height int
}

func newSurface(r *vram.Region, f vram.Format, stride, width, height int) surface {
	bpp, _ := f.BytesPerPixel()
	return surface{pix: r.Bytes(), bpp: bpp, stride: stride, width: width, height: height}
}

func (s *surface) offset(x, y int) int { return (y*s.stride + x) * s.bpp }

// rgba returns the 8888 pixel at (x, y).
func (s *surface) rgba(x, y int) (r, g, b, a uint8) {
	i := s.offset(x, y)
	p := s.pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

func (s *surface) setRGBA(x, y int, r, g, b, a uint8) {
	i := s.offset(x, y)
	p := s.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, a
}

func (s *surface) depth(x, y int) uint16 {
	return binary.LittleEndian.Uint16(s.pix[s.offset(x, y):])
}

func (s *surface) setDepth(x, y int, z uint16) {
	binary.LittleEndian.PutUint16(s.pix[s.offset(x, y):], z)
}

// fillColor sets every pixel of the buffer, padding columns included.
func (s *surface) fillColor(c uint32) {
	var px [4]byte
	binary.LittleEndian.PutUint32(px[:], c)
	n := s.stride * s.height * 4
	for i := 0; i < n; i += 4 {
		copy(s.pix[i:i+4], px[:])
	}
}

func (s *surface) fillDepth(z uint16) {
	n := s.stride * s.height * 2
	for i := 0; i < n; i += 2 {
		binary.LittleEndian.PutUint16(s.pix[i:], z)
	}
}

// image copies the visible part of an 8888 surface.
func (s *surface) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	row := s.width * 4
	for y := 0; y < s.height; y++ {
		src := s.offset(0, y)
		copy(img.Pix[y*img.Stride:y*img.Stride+row], s.pix[src:src+row])
	}
	return img
}
