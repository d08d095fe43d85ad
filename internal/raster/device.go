package raster

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"nucleus-renderer/internal/gu"
	"nucleus-renderer/internal/logging"
	"nucleus-renderer/internal/mathutil"
	"nucleus-renderer/internal/vram"
)

var (
	ErrNotConfigured = errors.New("raster: device not configured")
	ErrClosed        = errors.New("raster: device closed")
)

// Stats counts work done by the device since it was created.
type Stats struct {
	Lists     int
	Commands  int
	Triangles int
	Culled    int
	Pixels    int
	Vblanks   int
	Swaps     int
}

type blendState struct {
	op       gu.BlendOp
	src, dst gu.BlendFactor
}

type rect struct{ x0, y0, x1, y1 int }

// Device is a software coprocessor. It executes command lists into the
// frame buffers it is configured with, so everything it draws lands in
// VRAM regions claimed by the context.
type Device struct {
	mu sync.Mutex

	configured bool
	closed     bool
	display    bool

	fb    gu.Framebuffers
	draw  surface
	disp  surface
	depth surface

	caps       [8]bool
	blend      blendState
	depthFunc  gu.DepthFunc
	depthNear  uint16
	depthFar   uint16
	offX, offY int
	viewport   struct{ cx, cy, w, h int }
	scissor    rect
	front      gu.FrontFace
	shade      gu.ShadeModel

	tex   texUnit
	light lighting

	interval   time.Duration
	lastVblank time.Time
	stats      Stats
}

// Option configures a Device.
type Option func(*Device)

// WithVblank makes WaitVblank pace the caller to one call per interval.
// Without it vertical blanks are immediate.
func WithVblank(interval time.Duration) Option {
	return func(d *Device) { d.interval = interval }
}

// NewDevice returns an unconfigured device.
func NewDevice(opts ...Option) *Device {
	d := &Device{
		depthFunc: gu.Always,
		depthNear: 0,
		depthFar:  65535,
		light:     defaultLighting(),
		blend:     blendState{op: gu.BlendAdd, src: gu.FactorOne, dst: gu.FactorZero},
		tex:       texUnit{rgba: true},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Configure binds the frame buffers. Only 8888 color and 16-bit depth
// buffers are supported.
func (d *Device) Configure(fb gu.Framebuffers) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	cfg := fb.Config
	if cfg.ColorFormat != vram.PSM8888 {
		return fmt.Errorf("raster: unsupported color format %s", cfg.ColorFormat)
	}
	if bpp, ok := cfg.DepthFormat.BytesPerPixel(); !ok || bpp != 2 {
		return fmt.Errorf("raster: unsupported depth format %s", cfg.DepthFormat)
	}
	if cfg.Stride < cfg.Width {
		return fmt.Errorf("raster: stride %d narrower than width %d", cfg.Stride, cfg.Width)
	}
	for name, r := range map[string]*vram.Region{"draw": fb.Draw, "display": fb.Display, "depth": fb.Depth} {
		if r == nil {
			return fmt.Errorf("raster: missing %s buffer", name)
		}
	}
	if need := cfg.Stride * cfg.Height * 4; fb.Draw.Len() < need || fb.Display.Len() < need {
		return fmt.Errorf("raster: color buffers smaller than %d bytes", need)
	}
	if need := cfg.Stride * cfg.Height * 2; fb.Depth.Len() < need {
		return fmt.Errorf("raster: depth buffer smaller than %d bytes", need)
	}

	d.fb = fb
	d.draw = newSurface(fb.Draw, cfg.ColorFormat, cfg.Stride, cfg.Width, cfg.Height)
	d.disp = newSurface(fb.Display, cfg.ColorFormat, cfg.Stride, cfg.Width, cfg.Height)
	d.depth = newSurface(fb.Depth, cfg.DepthFormat, cfg.Stride, cfg.Width, cfg.Height)
	d.scissor = rect{0, 0, cfg.Width, cfg.Height}
	d.viewport.cx, d.viewport.cy = cfg.Width/2, cfg.Height/2
	d.viewport.w, d.viewport.h = cfg.Width, cfg.Height
	d.configured = true

	logging.Logger().Debug("raster configured",
		"draw", fmt.Sprintf("%#x", fb.Draw.Address()),
		"display", fmt.Sprintf("%#x", fb.Display.Address()),
		"depth", fmt.Sprintf("%#x", fb.Depth.Address()))
	return nil
}

// Execute runs a command list. Commands before a failing one keep their
// effect.
func (d *Device) Execute(list []gu.Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if !d.configured {
		return ErrNotConfigured
	}

	d.stats.Lists++
	for i, cmd := range list {
		if err := d.exec(cmd); err != nil {
			return fmt.Errorf("raster: command %d: %w", i, err)
		}
		d.stats.Commands++
	}
	return nil
}

func (d *Device) exec(cmd gu.Command) error {
	switch c := cmd.(type) {
	case gu.EnableCmd:
		if c.Cap < 0 || int(c.Cap) >= len(d.caps) {
			return fmt.Errorf("unknown capability %s", c.Cap)
		}
		d.caps[c.Cap] = c.On
		if c.Cap == gu.Light0 {
			d.light.lights[0].enabled = c.On
		}
	case gu.ClearCmd:
		d.clear(c)
	case gu.BlendFuncCmd:
		d.blend = blendState{op: c.Op, src: c.Src, dst: c.Dst}
	case gu.DepthFuncCmd:
		d.depthFunc = c.Func
	case gu.DepthRangeCmd:
		d.depthNear, d.depthFar = c.Near, c.Far
	case gu.FrontFaceCmd:
		d.front = c.Face
	case gu.ShadeModelCmd:
		d.shade = c.Model
	case gu.OffsetCmd:
		d.offX, d.offY = c.X, c.Y
	case gu.ViewportCmd:
		d.viewport.cx, d.viewport.cy = c.CX, c.CY
		d.viewport.w, d.viewport.h = c.Width, c.Height
	case gu.ScissorCmd:
		d.scissor = rect{c.X0, c.Y0, c.X1, c.Y1}

	case gu.TexModeCmd:
		d.tex.format, d.tex.swizzled = c.Format, c.Swizzled
	case gu.TexFuncCmd:
		d.tex.fn, d.tex.rgba = c.Func, c.RGBA
	case gu.TexFilterCmd:
		d.tex.min, d.tex.mag = c.Min, c.Mag
	case gu.TexWrapCmd:
		d.tex.wrapU, d.tex.wrapV = c.U, c.V
	case gu.TexImageCmd:
		if c.Level != 0 {
			return nil
		}
		d.tex.width, d.tex.height = c.Width, c.Height
		d.tex.stride, d.tex.data = c.Stride, c.Data

	case gu.LightCmd:
		if c.Index < 0 || c.Index >= len(d.light.lights) {
			return fmt.Errorf("light %d out of range", c.Index)
		}
		lt := &d.light.lights[c.Index]
		lt.kind, lt.components, lt.pos = c.Type, c.Components, c.Pos
	case gu.LightColorCmd:
		if c.Index < 0 || c.Index >= len(d.light.lights) {
			return fmt.Errorf("light %d out of range", c.Index)
		}
		lt := &d.light.lights[c.Index]
		if c.Component&gu.Diffuse != 0 {
			lt.diffuse = unpack3(c.Color)
		}
		if c.Component&gu.Specular != 0 {
			lt.specular = unpack3(c.Color)
		}
	case gu.AmbientCmd:
		d.light.ambient = unpack3(c.Color)
	case gu.MaterialCmd:
		if c.Component&(gu.Ambient|gu.Diffuse) != 0 {
			d.light.material = unpack3(c.Color)
		}

	case gu.DrawCmd:
		d.drawArray(c)
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
	return nil
}

func (d *Device) clear(c gu.ClearCmd) {
	if c.Flags&gu.ColorBufferBit != 0 {
		d.draw.fillColor(c.Color)
	}
	if c.Flags&gu.DepthBufferBit != 0 {
		d.depth.fillDepth(c.Depth)
	}
}

// drawArray transforms the vertices to screen space and rasterizes the
// primitive's triangles.
func (d *Device) drawArray(c gu.DrawCmd) {
	if !c.Format.Has(gu.FormatPosition) || len(c.Vertices) == 0 {
		return
	}
	lit := d.caps[gu.Lighting] && c.Format.Has(gu.FormatNormal)
	textured := d.caps[gu.Texture2D] && c.Format.Has(gu.FormatTexture) && d.tex.ready()
	if d.caps[gu.Texture2D] && c.Format.Has(gu.FormatTexture) && !textured {
		logging.Logger().Debug("draw without usable texture", "format", d.tex.format.String())
	}

	vs := make([]screenVertex, len(c.Vertices))
	for i, a := range c.Vertices {
		pos := mathutil.Vec3{float64(a.Pos[0]), float64(a.Pos[1]), float64(a.Pos[2])}
		ndc := c.Transform.Project(pos)

		v := &vs[i]
		v.x = float64(d.viewport.cx) + ndc[0]*float64(d.viewport.w)/2 - float64(d.offX)
		v.y = float64(d.viewport.cy) - ndc[1]*float64(d.viewport.h)/2 - float64(d.offY)
		near, far := float64(d.depthNear), float64(d.depthFar)
		v.z = near + (ndc[2]+1)/2*(far-near)
		v.u, v.v = float64(a.U), float64(a.V)

		v.color = [4]float64{1, 1, 1, 1}
		if c.Format.Has(gu.FormatColor) {
			v.color = unpack(a.Color)
		}
		if lit {
			n := mathutil.Vec3{float64(a.Normal[0]), float64(a.Normal[1]), float64(a.Normal[2])}
			v.color = d.light.shade(v.color, c.Model.MulDir(n), c.Model.MulPoint(pos))
		}
	}

	emit := func(i0, i1, i2 int) {
		if i0 >= len(vs) || i1 >= len(vs) || i2 >= len(vs) {
			return
		}
		d.triangle(vs[i0], vs[i1], vs[i2], textured)
	}
	index := func(i int) int {
		if c.Indices == nil {
			return i
		}
		return int(c.Indices[i])
	}
	n := len(vs)
	if c.Indices != nil {
		n = len(c.Indices)
	}

	switch c.Prim {
	case gu.Triangles:
		for i := 0; i+2 < n; i += 3 {
			emit(index(i), index(i+1), index(i+2))
		}
	case gu.TriangleStrip:
		for i := 2; i < n; i++ {
			if i%2 == 0 {
				emit(index(i-2), index(i-1), index(i))
			} else {
				emit(index(i-1), index(i-2), index(i))
			}
		}
	case gu.TriangleFan:
		for i := 2; i < n; i++ {
			emit(index(0), index(i-1), index(i))
		}
	}
}

// Sync returns immediately; lists execute synchronously.
func (d *Device) Sync() {}

// WaitVblank waits for the next vertical blank when pacing is enabled.
func (d *Device) WaitVblank() {
	d.mu.Lock()
	interval, last := d.interval, d.lastVblank
	d.stats.Vblanks++
	d.mu.Unlock()

	if interval > 0 && !last.IsZero() {
		if wait := time.Until(last.Add(interval)); wait > 0 {
			time.Sleep(wait)
		}
	}

	d.mu.Lock()
	d.lastVblank = time.Now()
	d.mu.Unlock()
}

// SwapBuffers exchanges the draw and display buffers.
func (d *Device) SwapBuffers() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draw, d.disp = d.disp, d.draw
	d.fb.Draw, d.fb.Display = d.fb.Display, d.fb.Draw
	d.stats.Swaps++
}

func (d *Device) SetDisplay(on bool) {
	d.mu.Lock()
	d.display = on
	d.mu.Unlock()
}

// Close releases the device. Later calls to Configure or Execute fail.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.display = false
	return nil
}

// Snapshot copies the visible part of the display buffer. It returns nil
// before Configure. Snapshot remains valid after Close.
func (d *Device) Snapshot() *image.NRGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.configured {
		return nil
	}
	return d.disp.image()
}

// Framebuffers returns the buffers as currently assigned; Draw and Display
// trade places on every swap.
func (d *Device) Framebuffers() gu.Framebuffers {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fb
}

// DisplayOn reports whether scan-out is enabled.
func (d *Device) DisplayOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.display
}

// FrameCount returns the number of presented frames.
func (d *Device) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats.Swaps
}

func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

var _ gu.Device = (*Device)(nil)
