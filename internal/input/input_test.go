package input

import (
	"testing"

	"nucleus-renderer/internal/camera"
)

func TestApplyDirections(t *testing.T) {
	tests := []struct {
		name   string
		b      Buttons
		tx, ty float64
	}{
		{"none", 0, 50, 50},
		{"up", Up, 50, 40},
		{"down", Down, 50, 60},
		{"left", Left, 40, 50},
		{"right", Right, 60, 50},
		{"up+right", Up | Right, 60, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.New(50, 50)
			Apply(tt.b, cam)
			if x, y := cam.Target(); x != tt.tx || y != tt.ty {
				t.Errorf("target = (%v, %v), want (%v, %v)", x, y, tt.tx, tt.ty)
			}
			if x, y := cam.Position(); x != 50 || y != 50 {
				t.Errorf("Apply moved the camera to (%v, %v)", x, y)
			}
		})
	}
}

func TestScript(t *testing.T) {
	s := NewScript(Right, Right|Down)
	got := []Buttons{s.Read(), s.Read(), s.Read()}
	want := []Buttons{Right, Right | Down, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %b, want %b", i, got[i], want[i])
		}
	}
}
