package gu

import "fmt"

// Capability is a fixed-function toggle.
type Capability int

const (
	Texture2D Capability = iota
	Lighting
	Light0
	DepthTest
	Blend
	CullFace
	ScissorTest
	ClipPlanes
	numCapabilities
)

var capabilityNames = [...]string{
	Texture2D:   "texture2d",
	Lighting:    "lighting",
	Light0:      "light0",
	DepthTest:   "depth-test",
	Blend:       "blend",
	CullFace:    "cull-face",
	ScissorTest: "scissor-test",
	ClipPlanes:  "clip-planes",
}

func (c Capability) String() string {
	if c >= 0 && c < numCapabilities {
		return capabilityNames[c]
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// Primitive is the topology of a draw.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
)

// ClearFlags selects buffers for Clear.
type ClearFlags uint8

const (
	ColorBufferBit ClearFlags = 1 << iota
	DepthBufferBit
	StencilBufferBit
)

// DepthFunc is the depth comparison.
type DepthFunc int

const (
	Never DepthFunc = iota
	Always
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

// Test reports whether a fragment at depth z passes against stored depth d.
func (f DepthFunc) Test(z, d uint16) bool {
	switch f {
	case Never:
		return false
	case Always:
		return true
	case Equal:
		return z == d
	case NotEqual:
		return z != d
	case Less:
		return z < d
	case LessEqual:
		return z <= d
	case Greater:
		return z > d
	case GreaterEqual:
		return z >= d
	}
	return true
}

// FrontFace is the winding treated as front facing.
type FrontFace int

const (
	CW FrontFace = iota
	CCW
)

// ShadeModel selects flat or Gouraud shading.
type ShadeModel int

const (
	Flat ShadeModel = iota
	Smooth
)

// BlendOp combines source and destination.
type BlendOp int

const (
	BlendAdd BlendOp = iota
	BlendSubtract
	BlendReverseSubtract
)

// BlendFactor scales a blend operand.
type BlendFactor int

const (
	FactorSrcAlpha BlendFactor = iota
	FactorOneMinusSrcAlpha
	FactorOne
	FactorZero
)

// TexFunc is the texture environment function.
type TexFunc int

const (
	TFXModulate TexFunc = iota
	TFXDecal
	TFXBlend
	TFXReplace
	TFXAdd
)

// TexFilter selects texel filtering.
type TexFilter int

const (
	Nearest TexFilter = iota
	Linear
)

// TexWrap selects coordinate wrapping.
type TexWrap int

const (
	Repeat TexWrap = iota
	Clamp
)

// LightType is the kind of a hardware light.
type LightType int

const (
	Directional LightType = iota
	PointLight
	SpotLight
)

// LightComponent selects which light or material colors a call sets.
type LightComponent uint8

const (
	Ambient LightComponent = 1 << iota
	Diffuse
	Specular
)

const (
	AmbientAndDiffuse  = Ambient | Diffuse
	DiffuseAndSpecular = Diffuse | Specular
)
