package gu

import "fmt"

// RenderMode selects the fixed-function pipeline configuration.
type RenderMode int

const (
	ModePrimitives RenderMode = iota // flat colored geometry
	ModeTexture2D                    // textured geometry
	ModeLighting2D                   // textured and lit geometry
)

func (m RenderMode) String() string {
	switch m {
	case ModePrimitives:
		return "primitives"
	case ModeTexture2D:
		return "texture2d"
	case ModeLighting2D:
		return "lighting2d"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// modeFlags is the complete set of toggles a mode owns. Every mode sets
// every flag, so the result never depends on the previous mode.
type modeFlags struct {
	texture  bool
	lighting bool
}

func (m RenderMode) flags() (modeFlags, bool) {
	switch m {
	case ModePrimitives:
		return modeFlags{}, true
	case ModeTexture2D:
		return modeFlags{texture: true}, true
	case ModeLighting2D:
		return modeFlags{texture: true, lighting: true}, true
	}
	return modeFlags{}, false
}
