package gu

import (
	"nucleus-renderer/internal/mathutil"
	"nucleus-renderer/internal/vram"
)

// Screen geometry of the target display.
const (
	BufferWidth  = 512 // row pitch of frame buffers, in pixels
	ScreenWidth  = 480
	ScreenHeight = 272
)

// DisplayConfig describes the frame buffers Init claims.
type DisplayConfig struct {
	Width       int // visible width in pixels
	Height      int // visible height in pixels
	Stride      int // buffer row pitch in pixels
	ColorFormat vram.Format
	DepthFormat vram.Format
}

// DefaultDisplayConfig is the 480×272 screen with 512-pixel pitch.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       ScreenWidth,
		Height:      ScreenHeight,
		Stride:      BufferWidth,
		ColorFormat: vram.PSM8888,
		DepthFormat: vram.PSM4444,
	}
}

// Framebuffers are the VRAM regions handed to the device at Init.
type Framebuffers struct {
	Draw    *vram.Region
	Display *vram.Region
	Depth   *vram.Region
	Config  DisplayConfig
}

// Device is the graphics coprocessor.
type Device interface {
	// Configure binds the draw, display and depth buffers.
	Configure(fb Framebuffers) error
	// Execute runs a finished command list.
	Execute(list []Command) error
	// Sync blocks until the last list has completed.
	Sync()
	// WaitVblank blocks until the next vertical blank.
	WaitVblank()
	// SwapBuffers exchanges the draw and display buffers.
	SwapBuffers()
	// SetDisplay turns scan-out on or off.
	SetDisplay(on bool)
	// Close releases the coprocessor.
	Close() error
}

// Drawer records indexed draws.
type Drawer interface {
	DrawArray(prim Primitive, format VertexFormat, indices []uint16, vertices []Attribs)
}

// Renderer is what primitives and cameras need: draws plus the matrix stack.
type Renderer interface {
	Drawer
	MatrixMode(mode MatrixMode)
	LoadIdentity()
	Translate(v mathutil.Vec3)
}

// TextureBinder receives texture unit setup.
type TextureBinder interface {
	TexMode(format vram.Format, maxMips int, swizzled bool)
	TexFunc(fn TexFunc, rgba bool)
	TexFilter(min, mag TexFilter)
	TexWrap(u, v TexWrap)
	TexImage(level, width, height, stride int, data []byte)
}
