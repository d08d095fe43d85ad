package gu

import (
	"fmt"

	"nucleus-renderer/internal/mathutil"
)

// MatrixMode selects which matrix the matrix calls modify.
type MatrixMode int

const (
	Projection MatrixMode = iota
	View
	Model
)

func (m MatrixMode) String() string {
	switch m {
	case Projection:
		return "projection"
	case View:
		return "view"
	case Model:
		return "model"
	}
	return fmt.Sprintf("MatrixMode(%d)", int(m))
}

type matrixStack struct {
	mode MatrixMode
	m    [3]mathutil.Mat4
}

func (s *matrixStack) reset() {
	s.mode = Model
	for i := range s.m {
		s.m[i] = mathutil.Mat4Identity()
	}
}

func (s *matrixStack) current() *mathutil.Mat4 { return &s.m[s.mode] }

// transform returns projection × view × model.
func (s *matrixStack) transform() mathutil.Mat4 {
	return mathutil.Mat4Mul(mathutil.Mat4Mul(s.m[Projection], s.m[View]), s.m[Model])
}

// MatrixMode selects the matrix later calls apply to.
func (c *Context) MatrixMode(mode MatrixMode) {
	c.require("MatrixMode", Initialized, FrameOpen, FrameClosed)
	if mode < Projection || mode > Model {
		panic(fmt.Sprintf("gu: invalid matrix mode %d", int(mode)))
	}
	c.matrices.mode = mode
}

// LoadIdentity resets the current matrix.
func (c *Context) LoadIdentity() {
	c.require("LoadIdentity", Initialized, FrameOpen, FrameClosed)
	*c.matrices.current() = mathutil.Mat4Identity()
}

// Translate post-multiplies the current matrix by a translation.
func (c *Context) Translate(v mathutil.Vec3) {
	c.require("Translate", Initialized, FrameOpen, FrameClosed)
	m := c.matrices.current()
	*m = mathutil.Mat4Mul(*m, mathutil.Translation(v))
}

// Ortho post-multiplies the current matrix by an orthographic projection.
func (c *Context) Ortho(left, right, bottom, top, near, far float64) {
	c.require("Ortho", Initialized, FrameOpen, FrameClosed)
	m := c.matrices.current()
	*m = mathutil.Mat4Mul(*m, mathutil.Ortho(left, right, bottom, top, near, far))
}

// Matrix returns a copy of one matrix.
func (c *Context) Matrix(mode MatrixMode) mathutil.Mat4 {
	return c.matrices.m[mode]
}

// initMatrices sets the screen-space projection, origin top left, and
// identity view and model.
func (c *Context) initMatrices() {
	c.matrices.reset()
	c.matrices.m[Projection] = mathutil.Ortho(0, float64(c.cfg.Width), float64(c.cfg.Height), 0, -1, 1)
}
