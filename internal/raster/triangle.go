package raster

import (
	"math"

	"nucleus-renderer/internal/gu"
)

// screenVertex is a vertex after viewport mapping. x and y are in buffer
// pixels, z is the 16-bit depth value before rounding.
type screenVertex struct {
	x, y, z float64
	u, v    float64
	color   [4]float64
}

// edge evaluates the edge function of a→b at p. It is positive on the
// side of a clockwise (y down) triangle's interior.
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether edge a→b of a positively wound triangle owns the
// pixels lying exactly on it.
func topLeft(a, b screenVertex) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy < 0 || (dy == 0 && dx > 0)
}

// triangle rasterizes one triangle into the draw buffer, sampling pixel
// centers and applying culling, scissor, depth test, texturing and blending.
func (d *Device) triangle(v0, v1, v2 screenVertex, textured bool) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if math.Abs(area) < 1e-9 {
		return
	}

	if d.caps[gu.CullFace] {
		clockwise := area > 0
		if clockwise != (d.front == gu.CW) {
			d.stats.Culled++
			return
		}
	}

	flat := v2.color
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}
	d.stats.Triangles++

	// Bounding box clipped to the visible area and scissor.
	clip := rect{0, 0, d.draw.width, d.draw.height}
	if d.caps[gu.ScissorTest] {
		clip.x0 = max(clip.x0, d.scissor.x0)
		clip.y0 = max(clip.y0, d.scissor.y0)
		clip.x1 = min(clip.x1, d.scissor.x1)
		clip.y1 = min(clip.y1, d.scissor.y1)
	}
	minX := max(clip.x0, int(math.Floor(math.Min(math.Min(v0.x, v1.x), v2.x))))
	maxX := min(clip.x1, int(math.Ceil(math.Max(math.Max(v0.x, v1.x), v2.x))))
	minY := max(clip.y0, int(math.Floor(math.Min(math.Min(v0.y, v1.y), v2.y))))
	maxY := min(clip.y1, int(math.Ceil(math.Max(math.Max(v0.y, v1.y), v2.y))))
	if minX >= maxX || minY >= maxY {
		return
	}

	tl0 := topLeft(v1, v2)
	tl1 := topLeft(v2, v0)
	tl2 := topLeft(v0, v1)
	inside := func(e float64, owns bool) bool {
		return e > 0 || (e == 0 && owns)
	}

	invArea := 1.0 / area
	depthTest := d.caps[gu.DepthTest]
	blend := d.caps[gu.Blend]
	smooth := d.shade == gu.Smooth

	for sy := minY; sy < maxY; sy++ {
		py := float64(sy) + 0.5
		for sx := minX; sx < maxX; sx++ {
			px := float64(sx) + 0.5

			e0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
			e1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
			e2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
			if !inside(e0, tl0) || !inside(e1, tl1) || !inside(e2, tl2) {
				continue
			}
			w0, w1, w2 := e0*invArea, e1*invArea, e2*invArea

			z := uint16(math.Max(0, math.Min(65535, math.Round(w0*v0.z+w1*v1.z+w2*v2.z))))
			if depthTest && !d.depthFunc.Test(z, d.depth.depth(sx, sy)) {
				continue
			}

			frag := flat
			if smooth {
				for k := range frag {
					frag[k] = w0*v0.color[k] + w1*v1.color[k] + w2*v2.color[k]
				}
			}
			if textured {
				u := w0*v0.u + w1*v1.u + w2*v2.u
				v := w0*v0.v + w1*v1.v + w2*v2.v
				frag = d.tex.combine(frag, d.tex.sample(u, v))
			}
			if blend {
				frag = d.blendWith(frag, sx, sy)
			}

			d.draw.setRGBA(sx, sy,
				clamp255(frag[0]*255), clamp255(frag[1]*255),
				clamp255(frag[2]*255), clamp255(frag[3]*255))
			if depthTest {
				d.depth.setDepth(sx, sy, z)
			}
			d.stats.Pixels++
		}
	}
}

// blendWith combines src with the draw buffer pixel at (x, y).
func (d *Device) blendWith(src [4]float64, x, y int) [4]float64 {
	r, g, b, a := d.draw.rgba(x, y)
	dst := [4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}

	fs := factor(d.blend.src, src[3])
	fd := factor(d.blend.dst, src[3])

	var out [4]float64
	for k := range out {
		s, t := src[k]*fs, dst[k]*fd
		switch d.blend.op {
		case gu.BlendSubtract:
			out[k] = s - t
		case gu.BlendReverseSubtract:
			out[k] = t - s
		default:
			out[k] = s + t
		}
		out[k] = clamp01(out[k])
	}
	return out
}

func factor(f gu.BlendFactor, srcAlpha float64) float64 {
	switch f {
	case gu.FactorSrcAlpha:
		return srcAlpha
	case gu.FactorOneMinusSrcAlpha:
		return 1 - srcAlpha
	case gu.FactorOne:
		return 1
	}
	return 0
}
