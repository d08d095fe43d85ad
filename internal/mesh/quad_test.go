package mesh

import (
	"reflect"
	"testing"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/mathutil"
)

// clockwise reports whether a, b, c turn clockwise on a y-down screen.
func clockwise(a, b, c [3]float32) bool {
	cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	return cross > 0
}

func TestQuadWindingIsClockwise(t *testing.T) {
	prims := map[string]interface {
		Draw(gu.Renderer)
	}{
		"texture":   NewTextureQuad(32, 16, mathutil.Vec3{}, 0xFFFFFFFF),
		"lit":       NewLitTextureQuad(32, 16, mathutil.Vec3{}, 0xFFFFFFFF),
		"rectangle": NewRectangle(32, 16, 0xFFFFFFFF, mathutil.Vec3{}),
	}
	for name, p := range prims {
		var d drawLog
		p.Draw(&d)
		call := d.draws[0]
		if !reflect.DeepEqual(call.indices, []uint16{0, 1, 2, 0, 2, 3}) {
			t.Errorf("%s indices = %v", name, call.indices)
		}
		for tri := 0; tri < 2; tri++ {
			i := call.indices[tri*3 : tri*3+3]
			a, b, c := call.vertices[i[0]].Pos, call.vertices[i[1]].Pos, call.vertices[i[2]].Pos
			if !clockwise(a, b, c) {
				t.Errorf("%s triangle %d is not clockwise", name, tri)
			}
		}
	}
}

func TestQuadDrawSetsModelTransform(t *testing.T) {
	q := NewTextureQuad(10, 10, mathutil.Vec3{5, 6, 7}, 0xFFFFFFFF)
	if q.Position() != (mathutil.Vec3{5, 6, 0}) {
		t.Errorf("constructor should force z = 0, got %v", q.Position())
	}

	q.SetPosition(mathutil.Vec3{40, 50, 1})
	var d drawLog
	d.model = mathutil.Vec3{999, 999, 999} // stale transform from an earlier draw
	q.Draw(&d)

	want := []string{"mode:model", "identity", "translate", "draw"}
	if !reflect.DeepEqual(d.calls, want) {
		t.Errorf("calls = %v, want %v", d.calls, want)
	}
	if d.draws[0].model != (mathutil.Vec3{40, 50, 1}) {
		t.Errorf("model translation = %v", d.draws[0].model)
	}
}

func TestTextureQuadVertices(t *testing.T) {
	q := NewTextureQuad(64, 32, mathutil.Vec3{}, 0xFF112233)
	m := q.Mesh()
	want := []gu.VertexTextured{
		{U: 0, V: 0, Color: 0xFF112233, X: 0, Y: -32},
		{U: 1, V: 0, Color: 0xFF112233, X: 64, Y: -32},
		{U: 1, V: 1, Color: 0xFF112233, X: 64, Y: 0},
		{U: 0, V: 1, Color: 0xFF112233, X: 0, Y: 0},
	}
	for i, w := range want {
		if m.Vertex(i) != w {
			t.Errorf("vertex %d = %+v, want %+v", i, m.Vertex(i), w)
		}
	}
	if q.Width() != 64 || q.Height() != 32 {
		t.Errorf("size = %vx%v", q.Width(), q.Height())
	}
}

func TestLitTextureQuadNormals(t *testing.T) {
	q := NewLitTextureQuad(8, 8, mathutil.Vec3{}, 0xFFFFFFFF)
	var d drawLog
	q.Draw(&d)
	call := d.draws[0]
	if call.format != gu.TexturedLitVertices {
		t.Errorf("format = %b", call.format)
	}
	for i, v := range call.vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}
}

func TestRectangleResize(t *testing.T) {
	r := NewRectangle(100, 50, 0xFF0000FF, mathutil.Vec3{10, 10, 0})
	r.SetWidth(200)
	r.SetHeight(20)
	if r.Width() != 200 || r.Height() != 20 {
		t.Fatalf("size = %vx%v", r.Width(), r.Height())
	}
	m := r.Mesh()
	if v := m.Vertex(1); v.X != 200 || v.Y != -20 {
		t.Errorf("top-right corner = (%v, %v)", v.X, v.Y)
	}
	if v := m.Vertex(3); v.X != 0 || v.Y != 0 {
		t.Errorf("bottom-left corner moved to (%v, %v)", v.X, v.Y)
	}

	r.SetColor(0xFF00FF00)
	for i := 0; i < QuadVertices; i++ {
		if m.Vertex(i).Color != 0xFF00FF00 {
			t.Errorf("vertex %d color = %#x", i, m.Vertex(i).Color)
		}
	}
	if r.Position() != (mathutil.Vec3{10, 10, 0}) {
		t.Errorf("position = %v", r.Position())
	}
}
