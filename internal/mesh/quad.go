package mesh

import (
	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/mathutil"
)

const (
	QuadVertices = 4
	QuadIndices  = 6
)

// quadIndices splits the quad into (0,1,2) and (0,2,3). With the corner
// order used below this is clockwise on screen, the configured front face.
var quadIndices = [QuadIndices]uint16{0, 1, 2, 0, 2, 3}

// quad is the shared part of every rectangle primitive: a 4-vertex mesh and
// a position applied as the model transform.
type quad[V gu.Vertex] struct {
	mesh *Mesh[V]
	pos  mathutil.Vec3
}

func newQuad[V gu.Vertex](pos mathutil.Vec3, corners [QuadVertices]V) quad[V] {
	q := quad[V]{mesh: New[V](QuadVertices, QuadIndices), pos: pos}
	q.pos[2] = 0
	q.setCorners(corners)
	for i, v := range quadIndices {
		q.mesh.SetIndex(v, i)
	}
	return q
}

func (q *quad[V]) setCorners(corners [QuadVertices]V) {
	for i, v := range corners {
		q.mesh.SetVertex(v, i)
	}
}

// SetPosition moves the primitive.
func (q *quad[V]) SetPosition(pos mathutil.Vec3) { q.pos = pos }

// Position returns the primitive's position.
func (q *quad[V]) Position() mathutil.Vec3 { return q.pos }

// Mesh exposes the underlying vertex buffer.
func (q *quad[V]) Mesh() *Mesh[V] { return q.mesh }

// Draw loads the model matrix with the primitive's position and draws it.
func (q *quad[V]) Draw(r gu.Renderer) {
	r.MatrixMode(gu.Model)
	r.LoadIdentity()
	r.Translate(q.pos)
	q.mesh.Draw(r)
}

// corners returns the quad's corner positions: top-left, top-right,
// bottom-right, bottom-left, with the origin at the bottom-left corner.
func corners(w, h float32) [QuadVertices][2]float32 {
	return [QuadVertices][2]float32{{0, -h}, {w, -h}, {w, 0}, {0, 0}}
}

var quadUVs = [QuadVertices][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// TextureQuad is a textured rectangle. Bind a texture before drawing.
type TextureQuad struct {
	quad[gu.VertexTextured]
	width, height float32
}

func NewTextureQuad(width, height float32, pos mathutil.Vec3, color uint32) *TextureQuad {
	var vs [QuadVertices]gu.VertexTextured
	for i, p := range corners(width, height) {
		vs[i] = gu.VertexTextured{U: quadUVs[i][0], V: quadUVs[i][1], Color: color, X: p[0], Y: p[1]}
	}
	return &TextureQuad{quad: newQuad(pos, vs), width: width, height: height}
}

func (q *TextureQuad) Width() float32  { return q.width }
func (q *TextureQuad) Height() float32 { return q.height }

// LitTextureQuad is a textured rectangle facing the viewer, lit by the
// fixed-function lights.
type LitTextureQuad struct {
	quad[gu.VertexTexturedLit]
	width, height float32
}

func NewLitTextureQuad(width, height float32, pos mathutil.Vec3, color uint32) *LitTextureQuad {
	var vs [QuadVertices]gu.VertexTexturedLit
	for i, p := range corners(width, height) {
		vs[i] = gu.VertexTexturedLit{
			U: quadUVs[i][0], V: quadUVs[i][1],
			Color: color,
			NZ:    1,
			X:     p[0], Y: p[1],
		}
	}
	return &LitTextureQuad{quad: newQuad(pos, vs), width: width, height: height}
}

func (q *LitTextureQuad) Width() float32  { return q.width }
func (q *LitTextureQuad) Height() float32 { return q.height }

// Rectangle is a solid colored rectangle with mutable size.
type Rectangle struct {
	quad[gu.VertexColored]
	width, height float32
	color         uint32
}

func NewRectangle(width, height float32, color uint32, pos mathutil.Vec3) *Rectangle {
	r := &Rectangle{width: width, height: height, color: color}
	r.quad = newQuad(pos, r.vertices())
	return r
}

func (r *Rectangle) vertices() [QuadVertices]gu.VertexColored {
	var vs [QuadVertices]gu.VertexColored
	for i, p := range corners(r.width, r.height) {
		vs[i] = gu.VertexColored{Color: r.color, X: p[0], Y: p[1]}
	}
	return vs
}

func (r *Rectangle) Width() float32  { return r.width }
func (r *Rectangle) Height() float32 { return r.height }
func (r *Rectangle) Color() uint32   { return r.color }

// SetWidth resizes the rectangle, keeping its bottom-left corner in place.
func (r *Rectangle) SetWidth(w float32) {
	r.width = w
	r.setCorners(r.vertices())
}

// SetHeight resizes the rectangle, keeping its bottom-left corner in place.
func (r *Rectangle) SetHeight(h float32) {
	r.height = h
	r.setCorners(r.vertices())
}

// SetColor recolors every corner.
func (r *Rectangle) SetColor(c uint32) {
	r.color = c
	r.setCorners(r.vertices())
}
