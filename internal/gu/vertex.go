package gu

// VertexFormat describes which attributes a vertex type carries.
type VertexFormat uint8

const (
	FormatTexture VertexFormat = 1 << iota
	FormatColor
	FormatNormal
	FormatPosition
)

const (
	ColoredVertices     = FormatColor | FormatPosition
	TexturedVertices    = FormatTexture | FormatColor | FormatPosition
	TexturedLitVertices = FormatTexture | FormatColor | FormatNormal | FormatPosition
)

// Has reports whether all attributes in o are present.
func (f VertexFormat) Has(o VertexFormat) bool { return f&o == o }

// Words is the size of one vertex in 32-bit words.
func (f VertexFormat) Words() int {
	n := 0
	if f.Has(FormatTexture) {
		n += 2
	}
	if f.Has(FormatColor) {
		n++
	}
	if f.Has(FormatNormal) {
		n += 3
	}
	if f.Has(FormatPosition) {
		n += 3
	}
	return n
}

// Attribs is the expanded form of any vertex, as the coprocessor sees it.
type Attribs struct {
	U, V   float32
	Color  uint32
	Normal [3]float32
	Pos    [3]float32
}

// Vertex is implemented by the fixed vertex layouts below.
type Vertex interface {
	VertexFormat() VertexFormat
	Attribs() Attribs
}

// VertexColored is a position with a packed color.
type VertexColored struct {
	Color   uint32
	X, Y, Z float32
}

func (VertexColored) VertexFormat() VertexFormat { return ColoredVertices }

func (v VertexColored) Attribs() Attribs {
	return Attribs{Color: v.Color, Pos: [3]float32{v.X, v.Y, v.Z}}
}

// VertexTextured adds texture coordinates.
type VertexTextured struct {
	U, V    float32
	Color   uint32
	X, Y, Z float32
}

func (VertexTextured) VertexFormat() VertexFormat { return TexturedVertices }

func (v VertexTextured) Attribs() Attribs {
	return Attribs{U: v.U, V: v.V, Color: v.Color, Pos: [3]float32{v.X, v.Y, v.Z}}
}

// VertexTexturedLit adds a normal for lighting.
type VertexTexturedLit struct {
	U, V       float32
	Color      uint32
	NX, NY, NZ float32
	X, Y, Z    float32
}

func (VertexTexturedLit) VertexFormat() VertexFormat { return TexturedLitVertices }

func (v VertexTexturedLit) Attribs() Attribs {
	return Attribs{
		U: v.U, V: v.V,
		Color:  v.Color,
		Normal: [3]float32{v.NX, v.NY, v.NZ},
		Pos:    [3]float32{v.X, v.Y, v.Z},
	}
}

// Draw expands a typed vertex slice and records an indexed draw on d.
func Draw[V Vertex](d Drawer, prim Primitive, indices []uint16, vertices []V) {
	var zero V
	attribs := make([]Attribs, len(vertices))
	for i := range vertices {
		attribs[i] = vertices[i].Attribs()
	}
	d.DrawArray(prim, zero.VertexFormat(), indices, attribs)
}
