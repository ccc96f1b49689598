package render

import (
	"math"
	"testing"

	"github.com/taigrr/glyphcube/pkg/math3d"
)

func TestProject(t *testing.T) {
	p := NewProjector(Width, Height, DefaultDistance, DefaultScale)

	tests := []struct {
		name string
		v    math3d.Vec3
		x, y int
		ok   bool
	}{
		{"center", math3d.V3(0, 0, 4), 60, 30, true},
		{"right", math3d.V3(1, 0, 2), 87, 30, true},
		{"down", math3d.V3(0, 1, 2), 60, 43, true},
		{"behind camera", math3d.V3(0, 0, -1), 0, 0, false},
		{"on camera plane", math3d.V3(0, 0, 0), 0, 0, false},
		{"off right", math3d.V3(10, 0, 1), 0, 0, false},
		{"off top", math3d.V3(0, -10, 1), 0, 0, false},
		{"NaN", math3d.V3(math.NaN(), 0, 1), 0, 0, false},
		{"infinite", math3d.V3(0, math.Inf(1), 1), 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ooz, ok := p.Project(tc.v)
			if ok != tc.ok {
				t.Fatalf("Project(%v) ok = %v, want %v", tc.v, ok, tc.ok)
			}
			if !ok {
				return
			}
			if x != tc.x || y != tc.y {
				t.Errorf("Project(%v) = (%d, %d), want (%d, %d)", tc.v, x, y, tc.x, tc.y)
			}
			if want := 1 / tc.v.Z; math.Abs(ooz-want) > 1e-12 {
				t.Errorf("ooz = %v, want %v", ooz, want)
			}
		})
	}
}

func TestToCamera(t *testing.T) {
	p := NewProjector(Width, Height, 4, DefaultScale)
	got := p.ToCamera(math3d.V3(1, 2, -1.32))
	want := math3d.V3(1, 2, 2.68)
	if got.Sub(want).Len() > 1e-12 {
		t.Errorf("ToCamera = %v, want %v", got, want)
	}
}
