package anim

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/glyphcube/pkg/math3d"
	"github.com/taigrr/glyphcube/pkg/render"
)

func TestTickAdvancesOnlyActiveAxes(t *testing.T) {
	speed := math3d.Angles{Pitch: 0.03, Yaw: 0.02, Roll: 0.01}
	start := math3d.Angles{Pitch: 1, Yaw: 2, Roll: 3}

	tests := []struct {
		axes render.Axis
		want math3d.Angles
	}{
		{render.AxisNone, start},
		{render.AxisX, math3d.Angles{Pitch: 1.3, Yaw: 2, Roll: 3}},
		{render.AxisY, math3d.Angles{Pitch: 1, Yaw: 2.2, Roll: 3}},
		{render.AxisZ, math3d.Angles{Pitch: 1, Yaw: 2, Roll: 3.1}},
		{render.AxisX | render.AxisZ, math3d.Angles{Pitch: 1.3, Yaw: 2, Roll: 3.1}},
		{render.AxisAll, math3d.Angles{Pitch: 1.3, Yaw: 2.2, Roll: 3.1}},
	}

	for _, tc := range tests {
		t.Run(tc.axes.String(), func(t *testing.T) {
			cfg := render.DefaultConfig()
			cfg.Speed = speed
			cfg.Axes = tc.axes
			a, err := NewAnimation(cfg, start)
			if err != nil {
				t.Fatal(err)
			}
			for range 10 {
				a.Tick()
			}
			got := a.Angles()
			if math.Abs(got.Pitch-tc.want.Pitch) > 1e-9 ||
				math.Abs(got.Yaw-tc.want.Yaw) > 1e-9 ||
				math.Abs(got.Roll-tc.want.Roll) > 1e-9 {
				t.Errorf("after 10 ticks angles = %+v, want %+v", got, tc.want)
			}
			// Inactive axes are never touched, not even by rounding.
			if !tc.axes.Has(render.AxisX) && got.Pitch != start.Pitch {
				t.Errorf("pitch changed on inactive axis")
			}
			if !tc.axes.Has(render.AxisY) && got.Yaw != start.Yaw {
				t.Errorf("yaw changed on inactive axis")
			}
			if !tc.axes.Has(render.AxisZ) && got.Roll != start.Roll {
				t.Errorf("roll changed on inactive axis")
			}
			if a.Frames() != 10 {
				t.Errorf("Frames() = %d, want 10", a.Frames())
			}
		})
	}
}

func TestTickRendersAdvancedAngles(t *testing.T) {
	cfg := render.DefaultConfig()
	a, err := NewAnimation(cfg, math3d.Angles{})
	if err != nil {
		t.Fatal(err)
	}
	r, err := render.NewRenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	f := a.Tick()
	if d := f.Diff(r.Render(a.Angles())); d != 0 {
		t.Errorf("tick frame differs from render at new angles in %d cells", d)
	}
	if d := a.Frame().Diff(f); d != 0 {
		t.Errorf("Frame() differs from last tick in %d cells", d)
	}
}

func TestNewAnimationRejectsInvalidInput(t *testing.T) {
	cfg := render.DefaultConfig()
	cfg.Density = 0
	if _, err := NewAnimation(cfg, math3d.Angles{}); err == nil {
		t.Error("expected error for zero density")
	}

	if _, err := NewAnimation(render.DefaultConfig(), math3d.Angles{Yaw: math.NaN()}); err == nil {
		t.Error("expected error for NaN start angle")
	}
}

func TestIntervalForFPS(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{0, DefaultInterval},
		{-5, DefaultInterval},
		{1, time.Second},
		{50, 20 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := IntervalForFPS(tc.fps); absDuration(got-tc.want) > time.Microsecond {
			t.Errorf("IntervalForFPS(%d) = %v, want %v", tc.fps, got, tc.want)
		}
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func TestSingleAxisFullTurnIsPeriodic(t *testing.T) {
	const steps = 120
	for _, axis := range []render.Axis{render.AxisX, render.AxisY, render.AxisZ} {
		t.Run(axis.String(), func(t *testing.T) {
			cfg := render.DefaultConfig()
			cfg.Axes = axis
			cfg.Speed = math3d.Angles{Pitch: 2 * math.Pi / steps, Yaw: 2 * math.Pi / steps, Roll: 2 * math.Pi / steps}
			a, err := NewAnimation(cfg, math3d.Angles{})
			if err != nil {
				t.Fatal(err)
			}

			start := a.Frame()
			var last *render.Frame
			for range steps {
				last = a.Tick()
			}

			// Allow cells where the accumulated rounding flips a floor.
			limit := render.Width * render.Height / 100
			if d := start.Diff(last); d > limit {
				t.Errorf("frame after a full turn differs in %d cells, limit %d", d, limit)
			}
		})
	}
}
