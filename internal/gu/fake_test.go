package gu

import (
	"errors"

	"nucleus-renderer/internal/vram"
)

// recorder is a Device that remembers everything it was asked to do.
type recorder struct {
	fb       Framebuffers
	lists    [][]Command
	syncs    int
	vblanks  int
	swaps    int
	display  bool
	closed   bool
	failNext error
}

func (r *recorder) Configure(fb Framebuffers) error { r.fb = fb; return nil }

func (r *recorder) Execute(list []Command) error {
	r.lists = append(r.lists, append([]Command(nil), list...))
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	return nil
}

func (r *recorder) Sync()              { r.syncs++ }
func (r *recorder) WaitVblank()        { r.vblanks++ }
func (r *recorder) SwapBuffers()       { r.swaps++ }
func (r *recorder) SetDisplay(on bool) { r.display = on }
func (r *recorder) Close() error       { r.closed = true; return nil }

func (r *recorder) last() []Command {
	if len(r.lists) == 0 {
		return nil
	}
	return r.lists[len(r.lists)-1]
}

var errDeviceLost = errors.New("device lost")

func newTestContext() (*Context, *recorder, *vram.Pool) {
	dev := &recorder{}
	pool := vram.NewPool(0)
	return New(dev, pool, DefaultDisplayConfig()), dev, pool
}

// mustPanicState runs fn and returns the StateError it panicked with.
func mustPanicState(fn func()) (err *StateError) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(*StateError)
		}
	}()
	fn()
	return nil
}
