package gu

import "fmt"

// State is a lifecycle state of a Context.
type State int

const (
	Uninitialized State = iota
	Initialized
	FrameOpen
	FrameClosed
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case FrameOpen:
		return "frame-open"
	case FrameClosed:
		return "frame-closed"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StateError is the panic value for an operation called in the wrong state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("gu: %s called in state %s", e.Op, e.State)
}

// require panics unless the context is in one of the allowed states.
func (c *Context) require(op string, allowed ...State) {
	for _, s := range allowed {
		if c.state == s {
			return
		}
	}
	panic(&StateError{Op: op, State: c.state})
}
