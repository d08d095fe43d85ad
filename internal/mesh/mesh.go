package mesh

import (
	"errors"
	"fmt"

	"nucleus-renderer/internal/gu"
)

// ErrIndexOutOfRange is returned by writes past a mesh's fixed capacity.
// The write is dropped and the mesh is left unchanged.
var ErrIndexOutOfRange = errors.New("mesh: index out of range")

// Mesh owns a fixed number of vertices and 16-bit indices.
type Mesh[V gu.Vertex] struct {
	vertices []V
	indices  []uint16
}

// New allocates a mesh with n vertices and m indices. Sizes never change.
func New[V gu.Vertex](n, m int) *Mesh[V] {
	if n < 0 || m < 0 {
		panic(fmt.Sprintf("mesh: negative size %d/%d", n, m))
	}
	return &Mesh[V]{
		vertices: make([]V, n),
		indices:  make([]uint16, m),
	}
}

// SetVertex stores v at slot i.
func (m *Mesh[V]) SetVertex(v V, i int) error {
	if i < 0 || i >= len(m.vertices) {
		return fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(m.vertices))
	}
	m.vertices[i] = v
	return nil
}

// SetIndex stores value at index slot i. Values are not checked against
// the vertex count here.
func (m *Mesh[V]) SetIndex(value uint16, i int) error {
	if i < 0 || i >= len(m.indices) {
		return fmt.Errorf("%w: index %d of %d", ErrIndexOutOfRange, i, len(m.indices))
	}
	m.indices[i] = value
	return nil
}

// Vertex returns vertex i. It panics when i is out of range.
func (m *Mesh[V]) Vertex(i int) V { return m.vertices[i] }

// Index returns index slot i. It panics when i is out of range.
func (m *Mesh[V]) Index(i int) uint16 { return m.indices[i] }

func (m *Mesh[V]) VertexCount() int { return len(m.vertices) }
func (m *Mesh[V]) IndexCount() int  { return len(m.indices) }

// Validate reports the first index that refers past the vertex array.
func (m *Mesh[V]) Validate() error {
	for i, v := range m.indices {
		if int(v) >= len(m.vertices) {
			return fmt.Errorf("%w: index slot %d refers to vertex %d of %d", ErrIndexOutOfRange, i, v, len(m.vertices))
		}
	}
	return nil
}

// Draw records one indexed triangle list over every index. The caller sets
// the model transform first.
func (m *Mesh[V]) Draw(d gu.Drawer) {
	gu.Draw(d, gu.Triangles, m.indices, m.vertices)
}
