package input

import "nucleus-renderer/internal/camera"

// Step is how far one pressed direction moves the camera target.
const Step = 10.0

// Buttons is a bitmask of pressed directions.
type Buttons uint32

const (
	Up Buttons = 1 << iota
	Down
	Left
	Right
)

// Source delivers the button state once per frame.
type Source interface {
	Read() Buttons
}

// Apply retargets the camera from its current position, one step per
// pressed direction. Each direction is applied in turn, so a later one
// replaces the target set by an earlier one.
func Apply(b Buttons, cam *camera.Camera2D) {
	if b&Up != 0 {
		x, y := cam.Position()
		cam.SetTarget(x, y-Step)
	}
	if b&Down != 0 {
		x, y := cam.Position()
		cam.SetTarget(x, y+Step)
	}
	if b&Left != 0 {
		x, y := cam.Position()
		cam.SetTarget(x-Step, y)
	}
	if b&Right != 0 {
		x, y := cam.Position()
		cam.SetTarget(x+Step, y)
	}
}

// Script replays a fixed sequence of button states, then reports nothing
// pressed.
type Script struct {
	frames []Buttons
	next   int
}

func NewScript(frames ...Buttons) *Script {
	return &Script{frames: frames}
}

func (s *Script) Read() Buttons {
	if s.next >= len(s.frames) {
		return 0
	}
	b := s.frames[s.next]
	s.next++
	return b
}
