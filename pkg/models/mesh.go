// Package models provides the cube geometry and its triangle mesh form.
package models

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/glyphcube/pkg/math3d"
)

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on build or load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a flat base color, one per cube side.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// Mesh triangulates the cube into two triangles per side, with one material
// per side carrying the side color. Triangles wind counter-clockwise when
// seen from outside the cube.
func (c Cube) Mesh() (*Mesh, error) {
	h := c.HalfWidth
	mesh := NewMesh("cube")

	for i, side := range Sides {
		col, err := colorful.Hex(side.Color)
		if err != nil {
			return nil, fmt.Errorf("side %s color %q: %w", side.Name, side.Color, err)
		}
		mesh.Materials = append(mesh.Materials, Material{
			Name:      side.Name,
			BaseColor: [4]float64{col.R, col.G, col.B, 1},
		})

		base := len(mesh.Vertices)
		corners := [4][2]float64{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
		for _, uv := range corners {
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position: c.SidePoint(i, uv[0], uv[1]),
				Normal:   side.Normal,
			})
		}

		quad := [2][3]int{{0, 1, 2}, {0, 2, 3}}
		for _, tri := range quad {
			f := Face{V: [3]int{base + tri[0], base + tri[1], base + tri[2]}, Material: i}
			if mesh.faceNormal(f).Dot(side.Normal) < 0 {
				f.V[1], f.V[2] = f.V[2], f.V[1]
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// faceNormal returns the unnormalized geometric normal of f.
func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// CalculateNormals computes flat face normals and assigns them to vertices.
// Used for meshes loaded without a NORMAL attribute.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		normal := m.faceNormal(f).Normalize()
		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}
