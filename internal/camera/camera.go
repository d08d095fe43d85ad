package camera

import (
	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/mathutil"
)

// SmoothingFactor is the per-second rate at which the camera closes the
// distance to its target. Update moves dt*SmoothingFactor of the remaining
// distance, so frame times above 1/SmoothingFactor overshoot the target.
const SmoothingFactor = 30.0

// Camera2D pans towards a target with exponential smoothing. It keeps no
// velocity, so with small steps it never passes the target.
type Camera2D struct {
	pos    [2]float64
	target [2]float64
}

// New creates a camera resting at (x, y).
func New(x, y float64) *Camera2D {
	return &Camera2D{pos: [2]float64{x, y}, target: [2]float64{x, y}}
}

// SetTarget changes where the camera is heading.
func (c *Camera2D) SetTarget(x, y float64) {
	c.target = [2]float64{x, y}
}

// Update advances the camera by dt seconds.
func (c *Camera2D) Update(dt float64) {
	c.pos[0] += (c.target[0] - c.pos[0]) * SmoothingFactor * dt
	c.pos[1] += (c.target[1] - c.pos[1]) * SmoothingFactor * dt
}

func (c *Camera2D) Position() (x, y float64) { return c.pos[0], c.pos[1] }
func (c *Camera2D) Target() (x, y float64)   { return c.target[0], c.target[1] }

// ViewTransform is the world translation seen through the camera: moving
// the camera right moves the world left.
func (c *Camera2D) ViewTransform() mathutil.Vec3 {
	return mathutil.Vec3{-c.pos[0], -c.pos[1], 0}
}

// Apply loads the view matrix. Call once per frame before drawing.
func (c *Camera2D) Apply(r gu.Renderer) {
	r.MatrixMode(gu.View)
	r.LoadIdentity()
	r.Translate(c.ViewTransform())
}
