package vram

import (
	"errors"
	"fmt"
	"sync"

	"nucleus-renderer/internal/logging"
)

// PoolSize is the size of the coprocessor's local memory window.
const PoolSize = 2 * 1024 * 1024

// BaseAddress is where the pool appears in the coprocessor address space.
const BaseAddress uintptr = 0x04000000

var (
	// ErrOutOfMemory means the request would cross the end of the pool.
	ErrOutOfMemory = errors.New("vram: out of video memory")
	// ErrUnsupportedFormat means no byte size is defined for the pixel format.
	ErrUnsupportedFormat = errors.New("vram: unsupported pixel format")
)

// Format is a coprocessor pixel storage mode.
type Format int

const (
	PSM5650 Format = iota // 16-bit RGB
	PSM5551               // 16-bit RGBA, 1-bit alpha
	PSM4444               // 16-bit RGBA
	PSM8888               // 32-bit RGBA
	PSMT4                 // 4-bit indexed
	PSMT8                 // 8-bit indexed
)

// BytesPerPixel returns the storage size of one pixel. Indexed formats are
// not allocatable through the pool.
func (f Format) BytesPerPixel() (int, bool) {
	switch f {
	case PSM8888:
		return 4, true
	case PSM4444, PSM5551, PSM5650:
		return 2, true
	}
	return 0, false
}

func (f Format) String() string {
	switch f {
	case PSM5650:
		return "5650"
	case PSM5551:
		return "5551"
	case PSM4444:
		return "4444"
	case PSM8888:
		return "8888"
	case PSMT4:
		return "T4"
	case PSMT8:
		return "T8"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Pool is an append-only arena over the video memory window.
// Regions are never reclaimed; they live as long as the pool.
type Pool struct {
	mu     sync.Mutex
	mem    []byte
	offset int
}

// NewPool creates a pool of size bytes. size <= 0 selects PoolSize.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = PoolSize
	}
	return &Pool{mem: make([]byte, size)}
}

// Alloc reserves w*h pixels of format f at the current cursor.
// The cursor only moves when the allocation succeeds.
func (p *Pool) Alloc(w, h int, f Format) (Buffer, error) {
	r, err := p.AllocRegion(w, h, f)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// AllocRegion is Alloc returning the concrete region type.
func (p *Pool) AllocRegion(w, h int, f Format) (*Region, error) {
	bpp, ok := f.BytesPerPixel()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("vram: invalid size %dx%d", w, h)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	size, ok := byteSize(w, h, bpp, len(p.mem)-p.offset)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d %s at offset %d, pool is %d", ErrOutOfMemory, w, h, f, p.offset, len(p.mem))
	}
	r := &Region{pool: p, Offset: p.offset, Size: size}
	p.offset += size

	logging.Logger().Debug("vram alloc",
		"width", w, "height", h, "format", f.String(),
		"offset", r.Offset, "size", size)
	return r, nil
}

// byteSize returns w*h*bpp, or false when it exceeds limit. The product is
// never formed when it could overflow.
func byteSize(w, h, bpp, limit int) (int, bool) {
	if w == 0 || h == 0 {
		return 0, true
	}
	if limit <= 0 || w > limit/bpp || h > limit/(w*bpp) {
		return 0, false
	}
	return w * h * bpp, true
}

// Base returns the pool's address in the coprocessor address space.
func (p *Pool) Base() uintptr { return BaseAddress }

// Offset returns the current cursor position in bytes.
func (p *Pool) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Size returns the pool capacity in bytes.
func (p *Pool) Size() int { return len(p.mem) }

// Remaining returns the number of unallocated bytes.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.mem) - p.offset
}

// Region is a permanent slice of the pool.
type Region struct {
	pool   *Pool
	Offset int
	Size   int
}

// Bytes returns the region's memory. Writes go straight into the pool.
func (r *Region) Bytes() []byte {
	return r.pool.mem[r.Offset : r.Offset+r.Size : r.Offset+r.Size]
}

func (r *Region) Len() int { return r.Size }

func (r *Region) InVRAM() bool { return true }

// Address is the region's location in the coprocessor address space.
func (r *Region) Address() uintptr { return BaseAddress + uintptr(r.Offset) }

// Overlaps reports whether two regions share any byte.
func (r *Region) Overlaps(o *Region) bool {
	if r.Size == 0 || o.Size == 0 {
		return false
	}
	return r.Offset < o.Offset+o.Size && o.Offset < r.Offset+r.Size
}
