package models

import (
	"math"
	"testing"

	"github.com/taigrr/glyphcube/pkg/math3d"
)

func TestSidePointsLieOnSide(t *testing.T) {
	c := NewCube(1.32)
	samples := [][2]float64{{-1.32, -1.32}, {0, 0}, {0.5, -1.1}, {1.31, 1.31}}

	for i, side := range Sides {
		t.Run(side.Name, func(t *testing.T) {
			for _, s := range samples {
				p := c.SidePoint(i, s[0], s[1])
				// The component along the normal must equal h.
				if d := p.Dot(side.Normal); math.Abs(d-c.HalfWidth) > 1e-12 {
					t.Errorf("SidePoint(%v) = %v, distance along normal %v, want %v", s, p, d, c.HalfWidth)
				}
				for _, comp := range []float64{p.X, p.Y, p.Z} {
					if math.Abs(comp) > c.HalfWidth+1e-12 {
						t.Errorf("SidePoint(%v) = %v lies outside the cube", s, p)
					}
				}
			}
		})
	}
}

func TestSidesAreDistinct(t *testing.T) {
	glyphs := map[rune]string{EdgeGlyph: "edge"}
	colors := map[string]string{EdgeColor: "edge"}
	for _, side := range Sides {
		if other, ok := glyphs[side.Glyph]; ok {
			t.Errorf("side %s glyph %q already used by %s", side.Name, side.Glyph, other)
		}
		if other, ok := colors[side.Color]; ok {
			t.Errorf("side %s color %s already used by %s", side.Name, side.Color, other)
		}
		glyphs[side.Glyph] = side.Name
		colors[side.Color] = side.Name

		if l := side.Normal.Len(); l != 1 {
			t.Errorf("side %s normal length %v, want 1", side.Name, l)
		}
	}
}

func TestEdgesJoinAdjacentCorners(t *testing.T) {
	c := NewCube(1.32)
	seen := make(map[[2]int]bool)

	for i, e := range Edges {
		a, b := c.EdgeEndpoints(i)
		// Adjacent corners differ in exactly one coordinate, by 2h.
		if got := b.Sub(a).Len(); math.Abs(got-2*c.HalfWidth) > 1e-12 {
			t.Errorf("edge %v has length %v, want %v", e, got, 2*c.HalfWidth)
		}
		key := [2]int{min(e[0], e[1]), max(e[0], e[1])}
		if seen[key] {
			t.Errorf("edge %v listed twice", e)
		}
		seen[key] = true
	}
}

func TestVerticesAreCorners(t *testing.T) {
	c := NewCube(2)
	for i, v := range c.Vertices() {
		if math.Abs(v.X) != 2 || math.Abs(v.Y) != 2 || math.Abs(v.Z) != 2 {
			t.Errorf("vertex %d = %v is not a corner", i, v)
		}
	}
}

func TestCubeMesh(t *testing.T) {
	mesh, err := NewCube(1).Mesh()
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}

	if mesh.VertexCount() != 24 {
		t.Errorf("VertexCount = %d, want 24", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", mesh.TriangleCount())
	}
	if len(mesh.Materials) != 6 {
		t.Fatalf("len(Materials) = %d, want 6", len(mesh.Materials))
	}
	if mesh.BoundsMin != math3d.V3(-1, -1, -1) || mesh.BoundsMax != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v, want (-1,-1,-1)..(1,1,1)", mesh.BoundsMin, mesh.BoundsMax)
	}

	for i, f := range mesh.Faces {
		side := Sides[f.Material]
		if mesh.faceNormal(f).Dot(side.Normal) <= 0 {
			t.Errorf("face %d of side %s winds inward", i, side.Name)
		}
	}

	red := mesh.GetMaterial(0)
	if red == nil || red.Name != "front" {
		t.Fatalf("GetMaterial(0) = %v, want front", red)
	}
	// #e53935
	if math.Abs(red.BaseColor[0]-229.0/255) > 1e-9 || math.Abs(red.BaseColor[1]-57.0/255) > 1e-9 {
		t.Errorf("front base color = %v", red.BaseColor)
	}
	if mesh.GetMaterial(-1) != nil || mesh.GetMaterial(6) != nil {
		t.Error("GetMaterial out of range should return nil")
	}
}
