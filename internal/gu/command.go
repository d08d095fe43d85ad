package gu

import (
	"nucleus-renderer/internal/mathutil"
	"nucleus-renderer/internal/vram"
)

// ListSize is the capacity of one command list in 32-bit words.
const ListSize = 262144

// Command is one entry of a command list. Devices type-switch on the
// concrete types below.
type Command interface {
	words() int
}

type (
	EnableCmd struct {
		Cap Capability
		On  bool
	}
	ClearCmd struct {
		Flags ClearFlags
		Color uint32
		Depth uint16
	}
	BlendFuncCmd struct {
		Op       BlendOp
		Src, Dst BlendFactor
	}
	DepthFuncCmd  struct{ Func DepthFunc }
	DepthRangeCmd struct{ Near, Far uint16 }
	FrontFaceCmd  struct{ Face FrontFace }
	ShadeModelCmd struct{ Model ShadeModel }
	OffsetCmd     struct{ X, Y int }
	ViewportCmd   struct{ CX, CY, Width, Height int }
	ScissorCmd    struct{ X0, Y0, X1, Y1 int }

	TexModeCmd struct {
		Format   vram.Format
		MaxMips  int
		Swizzled bool
	}
	TexFuncCmd struct {
		Func TexFunc
		RGBA bool
	}
	TexFilterCmd struct{ Min, Mag TexFilter }
	TexWrapCmd   struct{ U, V TexWrap }
	TexImageCmd  struct {
		Level         int
		Width, Height int
		Stride        int
		Data          []byte
	}

	LightCmd struct {
		Index      int
		Type       LightType
		Components LightComponent
		Pos        mathutil.Vec3
	}
	LightColorCmd struct {
		Index     int
		Component LightComponent
		Color     uint32
	}
	AmbientCmd  struct{ Color uint32 }
	MaterialCmd struct {
		Component LightComponent
		Color     uint32
	}

	// DrawCmd carries a snapshot of the vertices, indices and transforms in
	// effect when the draw was recorded.
	DrawCmd struct {
		Prim      Primitive
		Format    VertexFormat
		Vertices  []Attribs
		Indices   []uint16
		Model     mathutil.Mat4
		Transform mathutil.Mat4 // projection × view × model
	}
)

func (EnableCmd) words() int     { return 1 }
func (ClearCmd) words() int      { return 3 }
func (BlendFuncCmd) words() int  { return 1 }
func (DepthFuncCmd) words() int  { return 1 }
func (DepthRangeCmd) words() int { return 2 }
func (FrontFaceCmd) words() int  { return 1 }
func (ShadeModelCmd) words() int { return 1 }
func (OffsetCmd) words() int     { return 2 }
func (ViewportCmd) words() int   { return 4 }
func (ScissorCmd) words() int    { return 2 }
func (TexModeCmd) words() int    { return 2 }
func (TexFuncCmd) words() int    { return 1 }
func (TexFilterCmd) words() int  { return 1 }
func (TexWrapCmd) words() int    { return 1 }
func (TexImageCmd) words() int   { return 4 }
func (LightCmd) words() int      { return 5 }
func (LightColorCmd) words() int { return 1 }
func (AmbientCmd) words() int    { return 2 }
func (MaterialCmd) words() int   { return 2 }

func (c DrawCmd) words() int {
	return 3 + (len(c.Indices)+1)/2 + len(c.Vertices)*c.Format.Words()
}
