package raster

import (
	"math"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/mathutil"
)

// specularPower is the shininess used for the specular term.
const specularPower = 12.0

// viewDir points from the surface towards the viewer.
var viewDir = mathutil.Vec3{0, 0, 1}

// light is the state of one hardware light.
type light struct {
	enabled    bool
	kind       gu.LightType
	components gu.LightComponent
	pos        mathutil.Vec3
	diffuse    [3]float64
	specular   [3]float64
}

// lighting holds the lights, the global ambient and the material.
type lighting struct {
	lights   [4]light
	ambient  [3]float64
	material [3]float64
}

func defaultLighting() lighting {
	var l lighting
	l.material = [3]float64{1, 1, 1}
	return l
}

// shade returns the lit color of a vertex whose base color is base, normal
// n and position p, all in world space.
func (l *lighting) shade(base [4]float64, n, p mathutil.Vec3) [4]float64 {
	n = n.Normalize()
	var sum, spec [3]float64
	for k := 0; k < 3; k++ {
		sum[k] = l.ambient[k] * l.material[k]
	}

	for i := range l.lights {
		lt := &l.lights[i]
		if !lt.enabled {
			continue
		}
		dir := lt.pos
		if lt.kind != gu.Directional {
			dir = lt.pos.Sub(p)
		}
		dir = dir.Normalize()

		ndl := n.Dot(dir)
		if ndl < 0 {
			ndl = 0
		}
		if lt.components&gu.Diffuse != 0 {
			for k := 0; k < 3; k++ {
				sum[k] += lt.diffuse[k] * l.material[k] * ndl
			}
		}
		if lt.components&gu.Specular != 0 && ndl > 0 {
			ndh := n.Dot(dir.Add(viewDir).Normalize())
			if ndh > 0 {
				s := math.Pow(ndh, specularPower)
				for k := 0; k < 3; k++ {
					spec[k] += lt.specular[k] * s
				}
			}
		}
	}

	out := base
	for k := 0; k < 3; k++ {
		out[k] = clamp01(base[k]*sum[k] + spec[k])
	}
	return out
}

func unpack(c uint32) [4]float64 {
	r, g, b, a := gu.RGBA(c)
	return [4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

func unpack3(c uint32) [3]float64 {
	v := unpack(c)
	return [3]float64{v[0], v[1], v[2]}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
