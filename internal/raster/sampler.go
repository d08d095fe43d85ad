package raster

import (
	"math"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/swizzle"
	"nucleus-renderer/internal/vram"
)

// texUnit is the bound texture and its sampling state.
type texUnit struct {
	format   vram.Format
	swizzled bool
	fn       gu.TexFunc
	rgba     bool
	min, mag gu.TexFilter
	wrapU    gu.TexWrap
	wrapV    gu.TexWrap

	width, height int
	stride        int // row pitch in texels
	data          []byte
}

// ready reports whether there is 8888 data large enough to sample.
func (t *texUnit) ready() bool {
	return t.format == vram.PSM8888 && t.width > 0 && t.height > 0 &&
		len(t.data) >= t.stride*t.height*4
}

// texel fetches integer coordinates, already wrapped into range.
func (t *texUnit) texel(x, y int) (r, g, b, a uint8) {
	var i int
	if t.swizzled {
		i = swizzle.Offset(x*4, y, t.stride*4, t.height)
	} else {
		i = (y*t.stride + x) * 4
	}
	p := t.data[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

func wrap(i, n int, mode gu.TexWrap) int {
	if mode == gu.Clamp {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// sample returns the filtered texel at normalized (u, v) in [0, 1] floats.
func (t *texUnit) sample(u, v float64) [4]float64 {
	fx := u*float64(t.width) - 0.5
	fy := v*float64(t.height) - 0.5

	if t.mag == gu.Nearest {
		x := wrap(int(math.Floor(fx+0.5)), t.width, t.wrapU)
		y := wrap(int(math.Floor(fy+0.5)), t.height, t.wrapV)
		r, g, b, a := t.texel(x, y)
		return [4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
	}

	// Bilinear
	x0f, y0f := math.Floor(fx), math.Floor(fy)
	dx, dy := fx-x0f, fy-y0f
	x0 := wrap(int(x0f), t.width, t.wrapU)
	x1 := wrap(int(x0f)+1, t.width, t.wrapU)
	y0 := wrap(int(y0f), t.height, t.wrapV)
	y1 := wrap(int(y0f)+1, t.height, t.wrapV)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]float64
	for _, s := range [4]struct {
		x, y int
		w    float64
	}{{x0, y0, w00}, {x1, y0, w10}, {x0, y1, w01}, {x1, y1, w11}} {
		r, g, b, a := t.texel(s.x, s.y)
		out[0] += float64(r) * s.w
		out[1] += float64(g) * s.w
		out[2] += float64(b) * s.w
		out[3] += float64(a) * s.w
	}
	for k := range out {
		out[k] /= 255
	}
	return out
}

// combine applies the texture function to a fragment color.
func (t *texUnit) combine(frag, tex [4]float64) [4]float64 {
	if !t.rgba {
		tex[3] = 1
	}
	var out [4]float64
	switch t.fn {
	case gu.TFXReplace:
		out = [4]float64{tex[0], tex[1], tex[2], frag[3]}
		if t.rgba {
			out[3] = tex[3]
		}
	case gu.TFXDecal:
		for k := 0; k < 3; k++ {
			out[k] = frag[k]*(1-tex[3]) + tex[k]*tex[3]
		}
		out[3] = frag[3]
	case gu.TFXBlend:
		for k := 0; k < 3; k++ {
			out[k] = frag[k] * (1 - tex[k])
		}
		out[3] = frag[3] * tex[3]
	case gu.TFXAdd:
		for k := 0; k < 3; k++ {
			out[k] = clamp01(frag[k] + tex[k])
		}
		out[3] = frag[3] * tex[3]
	default:
		for k := range out {
			out[k] = frag[k] * tex[k]
		}
	}
	return out
}
