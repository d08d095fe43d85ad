package gu

import (
	"nucleus-renderer/internal/mathutil"
)

// LightConfig is the setup for light 0 and the global material.
type LightConfig struct {
	Direction mathutil.Vec3 // towards the light
	Diffuse   uint32
	Specular  uint32
	Ambient   uint32
	Material  uint32 // ambient and diffuse material color
}

// DefaultLightConfig is a white directional light shining from the viewer
// into the screen over a dim ambient term.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		Direction: mathutil.Vec3{0, 0, 1},
		Diffuse:   ColorF(1, 1, 1, 1),
		Specular:  ColorF(0.1, 0.1, 0.1, 1),
		Ambient:   ColorF(0.4, 0.4, 0.4, 1),
		Material:  ColorF(1, 1, 1, 1),
	}
}

// InitLighting enables light 0 with cfg. Like SetRenderMode it runs its own
// command bracket between frames.
func (c *Context) InitLighting(cfg LightConfig) error {
	c.require("InitLighting", Initialized, FrameClosed)

	c.start()
	c.record(EnableCmd{Cap: Lighting, On: true})
	c.record(EnableCmd{Cap: Light0, On: true})
	c.record(LightCmd{Index: 0, Type: Directional, Components: DiffuseAndSpecular, Pos: cfg.Direction})
	c.record(LightColorCmd{Index: 0, Component: Diffuse, Color: cfg.Diffuse})
	c.record(LightColorCmd{Index: 0, Component: Specular, Color: cfg.Specular})
	c.record(AmbientCmd{Color: cfg.Ambient})
	c.record(MaterialCmd{Component: AmbientAndDiffuse, Color: cfg.Material})
	if err := c.finish(); err != nil {
		return err
	}
	c.dev.WaitVblank()
	return nil
}
