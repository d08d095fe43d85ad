package gu

// Color packs 8-bit channels the way the coprocessor stores 8888 pixels:
// 0xAABBGGRR, red in the lowest byte.
func Color(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// ColorF packs float channels in [0, 1].
func ColorF(r, g, b, a float64) uint32 {
	return Color(unit8(r), unit8(g), unit8(b), unit8(a))
}

// RGBA unpacks a packed color.
func RGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
