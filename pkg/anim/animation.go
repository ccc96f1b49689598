// Package anim drives the cube renderer over time.
package anim

import (
	"fmt"

	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/render"
)

// Animation is one run of the cube under a fixed configuration. It owns
// the rotation angles; nothing else mutates them.
type Animation struct {
	cfg      render.Config
	renderer *render.Renderer
	angles   math3d.Angles
	frames   uint64
}

// NewAnimation creates an animation starting at the given angles.
func NewAnimation(cfg render.Config, start math3d.Angles) (*Animation, error) {
	r, err := render.NewRenderer(cfg)
	if err != nil {
		return nil, err
	}
	if !start.IsFinite() {
		return nil, fmt.Errorf("start angles must be finite: %+v", start)
	}
	return &Animation{cfg: cfg, renderer: r, angles: start}, nil
}

// Config returns the configuration snapshot of the animation.
func (a *Animation) Config() render.Config {
	return a.cfg
}

// Angles returns the current rotation angles.
func (a *Animation) Angles() math3d.Angles {
	return a.angles
}

// Frames returns how many ticks have run.
func (a *Animation) Frames() uint64 {
	return a.frames
}

// Step advances the angle of every active axis by its speed. Inactive axes
// keep their value.
func (a *Animation) Step() {
	var d math3d.Angles
	if a.cfg.Axes.Has(render.AxisX) {
		d.Pitch = a.cfg.Speed.Pitch
	}
	if a.cfg.Axes.Has(render.AxisY) {
		d.Yaw = a.cfg.Speed.Yaw
	}
	if a.cfg.Axes.Has(render.AxisZ) {
		d.Roll = a.cfg.Speed.Roll
	}
	a.angles = a.angles.Add(d)
}

// Tick advances the angles and renders a fresh frame at the new position.
func (a *Animation) Tick() *render.Frame {
	a.Step()
	a.frames++
	return a.renderer.Render(a.angles)
}

// Frame renders the current position without advancing.
func (a *Animation) Frame() *render.Frame {
	return a.renderer.Render(a.angles)
}
