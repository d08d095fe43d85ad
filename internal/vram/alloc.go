package vram

import (
	"errors"
	"fmt"
	"math"

	"nucleus-renderer/internal/logging"
)

// Buffer is pixel storage handed out by an Allocator.
type Buffer interface {
	Bytes() []byte
	Len() int
	InVRAM() bool
	Address() uintptr
}

// Allocator hands out pixel storage. The texture pipeline only sees this
// interface and does not care which memory backs the result.
type Allocator interface {
	Alloc(w, h int, f Format) (Buffer, error)
}

// maxHeapAlloc caps a single heap allocation.
const maxHeapAlloc = math.MaxInt32

// Heap allocates from general-purpose memory.
type Heap struct{}

func (Heap) Alloc(w, h int, f Format) (Buffer, error) {
	bpp, ok := f.BytesPerPixel()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("vram: invalid size %dx%d", w, h)
	}
	size, ok := byteSize(w, h, bpp, maxHeapAlloc)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d %s exceeds heap limit", ErrOutOfMemory, w, h, f)
	}
	return HeapBuffer(make([]byte, size)), nil
}

// HeapBuffer is a Buffer in general memory.
type HeapBuffer []byte

func (b HeapBuffer) Bytes() []byte   { return b }
func (b HeapBuffer) Len() int         { return len(b) }
func (b HeapBuffer) InVRAM() bool     { return false }
func (b HeapBuffer) Address() uintptr { return 0 }

// Fallback tries Primary and, when it runs out of memory, Secondary.
type Fallback struct {
	Primary   Allocator
	Secondary Allocator
}

func (f Fallback) Alloc(w, h int, format Format) (Buffer, error) {
	b, err := f.Primary.Alloc(w, h, format)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrOutOfMemory) || f.Secondary == nil {
		return nil, err
	}
	logging.Logger().Warn("vram exhausted, using general memory",
		"width", w, "height", h, "format", format.String())
	return f.Secondary.Alloc(w, h, format)
}
