package gu

import (
	"fmt"

	"nucleus-renderer/internal/logging"
	"nucleus-renderer/internal/vram"
)

// Context owns the frame lifecycle: it claims the frame buffers, records
// commands between BeginFrame and EndFrame and hands finished lists to the
// device. A Context is driven from one goroutine.
type Context struct {
	dev  Device
	pool *vram.Pool
	cfg  DisplayConfig

	state  State
	mode   RenderMode
	fb     Framebuffers
	frames uint64

	list  []Command
	words int

	matrices   matrixStack
	clearColor uint32
	clearDepth uint16
}

// New returns an uninitialized context. The pool must be fresh: Init claims
// the frame buffers at its start so textures land after them.
func New(dev Device, pool *vram.Pool, cfg DisplayConfig) *Context {
	return &Context{dev: dev, pool: pool, cfg: cfg}
}

// State returns the lifecycle state.
func (c *Context) State() State { return c.state }

// Mode returns the last render mode set.
func (c *Context) Mode() RenderMode { return c.mode }

// Framebuffers returns the regions claimed by Init.
func (c *Context) Framebuffers() Framebuffers { return c.fb }

// Frames returns the number of completed EndFrame calls.
func (c *Context) Frames() uint64 { return c.frames }

// Init claims the draw, display and depth buffers, configures the
// fixed-function state and resets the matrices.
func (c *Context) Init() error {
	c.require("Init", Uninitialized)

	w, h := c.cfg.Stride, c.cfg.Height
	draw, err := c.pool.AllocRegion(w, h, c.cfg.ColorFormat)
	if err != nil {
		return fmt.Errorf("gu: claim draw buffer: %w", err)
	}
	disp, err := c.pool.AllocRegion(w, h, c.cfg.ColorFormat)
	if err != nil {
		return fmt.Errorf("gu: claim display buffer: %w", err)
	}
	depth, err := c.pool.AllocRegion(w, h, c.cfg.DepthFormat)
	if err != nil {
		return fmt.Errorf("gu: claim depth buffer: %w", err)
	}
	c.fb = Framebuffers{Draw: draw, Display: disp, Depth: depth, Config: c.cfg}

	if err := c.dev.Configure(c.fb); err != nil {
		return fmt.Errorf("gu: configure device: %w", err)
	}

	c.start()
	cw, ch := c.cfg.Width, c.cfg.Height
	c.record(OffsetCmd{X: 2048 - cw/2, Y: 2048 - ch/2})
	c.record(ViewportCmd{CX: 2048, CY: 2048, Width: cw, Height: ch})
	c.record(DepthRangeCmd{Near: 65535, Far: 0})
	c.record(ScissorCmd{X0: 0, Y0: 0, X1: cw, Y1: ch})
	c.record(EnableCmd{Cap: ScissorTest, On: true})
	c.record(DepthFuncCmd{Func: GreaterEqual})
	c.record(EnableCmd{Cap: DepthTest, On: true})
	c.record(FrontFaceCmd{Face: CW})
	c.record(ShadeModelCmd{Model: Smooth})
	c.record(EnableCmd{Cap: CullFace, On: false})
	c.record(EnableCmd{Cap: Texture2D, On: true})
	c.record(EnableCmd{Cap: ClipPlanes, On: true})
	if err := c.finish(); err != nil {
		return err
	}
	c.dev.WaitVblank()
	c.dev.SetDisplay(true)

	c.initMatrices()
	c.mode = ModeTexture2D
	c.state = Initialized

	logging.Logger().Info("graphics initialized",
		"draw", draw.Offset, "display", disp.Offset, "depth", depth.Offset,
		"vram_used", c.pool.Offset())
	return nil
}

// BeginFrame opens a new command list.
func (c *Context) BeginFrame() {
	c.require("BeginFrame", Initialized, FrameClosed)
	c.start()
	c.state = FrameOpen
}

// EndFrame submits the frame's commands, waits for vertical blank and
// presents the result. The state becomes FrameClosed even when the device
// reports an error.
func (c *Context) EndFrame() error {
	c.require("EndFrame", FrameOpen)
	c.state = FrameClosed
	if err := c.finish(); err != nil {
		return err
	}
	c.dev.WaitVblank()
	c.dev.SwapBuffers()
	c.frames++
	return nil
}

// SetRenderMode switches texturing and lighting in one step. It runs its own
// command bracket, so it is only valid between frames.
func (c *Context) SetRenderMode(mode RenderMode) error {
	c.require("SetRenderMode", Initialized, FrameClosed)
	f, ok := mode.flags()
	if !ok {
		panic(fmt.Sprintf("gu: invalid render mode %d", int(mode)))
	}

	c.start()
	c.record(EnableCmd{Cap: Texture2D, On: f.texture})
	c.record(EnableCmd{Cap: Lighting, On: f.lighting})
	if err := c.finish(); err != nil {
		return err
	}
	c.dev.WaitVblank()
	c.mode = mode
	logging.Logger().Debug("render mode", "mode", mode.String())
	return nil
}

// Terminate releases the coprocessor. No call is valid afterwards.
func (c *Context) Terminate() error {
	if c.state == Terminated {
		panic(&StateError{Op: "Terminate", State: c.state})
	}
	c.state = Terminated
	c.list = nil
	if err := c.dev.Close(); err != nil {
		return fmt.Errorf("gu: close device: %w", err)
	}
	logging.Logger().Info("graphics terminated", "frames", c.frames)
	return nil
}

func (c *Context) start() {
	c.list = c.list[:0]
	c.words = 0
}

func (c *Context) record(cmd Command) {
	n := cmd.words()
	if c.words+n > ListSize {
		panic(fmt.Sprintf("gu: command list overflow (%d + %d words > %d)", c.words, n, ListSize))
	}
	c.words += n
	c.list = append(c.list, cmd)
}

// finish submits the open list and waits for it to complete.
func (c *Context) finish() error {
	logging.Logger().Debug("submit list", "commands", len(c.list), "words", c.words)
	err := c.dev.Execute(c.list)
	c.dev.Sync()
	c.start()
	if err != nil {
		return fmt.Errorf("gu: execute list: %w", err)
	}
	return nil
}

// Enable turns a capability on inside the open frame.
func (c *Context) Enable(cp Capability) {
	c.require("Enable", FrameOpen)
	c.record(EnableCmd{Cap: cp, On: true})
}

// Disable turns a capability off inside the open frame.
func (c *Context) Disable(cp Capability) {
	c.require("Disable", FrameOpen)
	c.record(EnableCmd{Cap: cp, On: false})
}

// ClearColor sets the color used by later Clear calls.
func (c *Context) ClearColor(color uint32) {
	c.require("ClearColor", FrameOpen)
	c.clearColor = color
}

// ClearDepth sets the depth used by later Clear calls.
func (c *Context) ClearDepth(depth uint16) {
	c.require("ClearDepth", FrameOpen)
	c.clearDepth = depth
}

// Clear clears the selected buffers.
func (c *Context) Clear(flags ClearFlags) {
	c.require("Clear", FrameOpen)
	c.record(ClearCmd{Flags: flags, Color: c.clearColor, Depth: c.clearDepth})
}

// BlendFunc sets the blend equation.
func (c *Context) BlendFunc(op BlendOp, src, dst BlendFactor) {
	c.require("BlendFunc", FrameOpen)
	c.record(BlendFuncCmd{Op: op, Src: src, Dst: dst})
}

// DepthFunc sets the depth comparison.
func (c *Context) DepthFunc(fn DepthFunc) {
	c.require("DepthFunc", FrameOpen)
	c.record(DepthFuncCmd{Func: fn})
}

// TexMode sets the texture storage format.
func (c *Context) TexMode(format vram.Format, maxMips int, swizzled bool) {
	c.require("TexMode", FrameOpen)
	c.record(TexModeCmd{Format: format, MaxMips: maxMips, Swizzled: swizzled})
}

// TexFunc sets the texture environment.
func (c *Context) TexFunc(fn TexFunc, rgba bool) {
	c.require("TexFunc", FrameOpen)
	c.record(TexFuncCmd{Func: fn, RGBA: rgba})
}

// TexFilter sets minification and magnification filters.
func (c *Context) TexFilter(min, mag TexFilter) {
	c.require("TexFilter", FrameOpen)
	c.record(TexFilterCmd{Min: min, Mag: mag})
}

// TexWrap sets coordinate wrapping.
func (c *Context) TexWrap(u, v TexWrap) {
	c.require("TexWrap", FrameOpen)
	c.record(TexWrapCmd{U: u, V: v})
}

// TexImage points the texture unit at pixel data. The data is referenced,
// not copied.
func (c *Context) TexImage(level, width, height, stride int, data []byte) {
	c.require("TexImage", FrameOpen)
	c.record(TexImageCmd{Level: level, Width: width, Height: height, Stride: stride, Data: data})
}

// DrawArray records an indexed draw using the current transforms. Vertices
// and indices are copied into the list.
func (c *Context) DrawArray(prim Primitive, format VertexFormat, indices []uint16, vertices []Attribs) {
	c.require("DrawArray", FrameOpen)
	c.record(DrawCmd{
		Prim:      prim,
		Format:    format,
		Vertices:  append([]Attribs(nil), vertices...),
		Indices:   append([]uint16(nil), indices...),
		Model:     c.matrices.m[Model],
		Transform: c.matrices.transform(),
	})
}

var (
	_ Renderer      = (*Context)(nil)
	_ TextureBinder = (*Context)(nil)
)
