package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestDocumentEmptyMesh(t *testing.T) {
	if _, err := NewMesh("empty").Document(); err == nil {
		t.Error("Expected error for mesh without vertices")
	}
}

func TestGLBRoundTrip(t *testing.T) {
	mesh, err := NewCube(1.32).Mesh()
	if err != nil {
		t.Fatalf("Mesh: %v", err)
	}

	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := SaveGLB(mesh, path); err != nil {
		t.Fatalf("SaveGLB: %v", err)
	}

	loaded, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if loaded.VertexCount() != mesh.VertexCount() {
		t.Errorf("VertexCount = %d, want %d", loaded.VertexCount(), mesh.VertexCount())
	}
	if loaded.TriangleCount() != mesh.TriangleCount() {
		t.Errorf("TriangleCount = %d, want %d", loaded.TriangleCount(), mesh.TriangleCount())
	}
	if len(loaded.Materials) != len(mesh.Materials) {
		t.Fatalf("len(Materials) = %d, want %d", len(loaded.Materials), len(mesh.Materials))
	}

	for i, mat := range loaded.Materials {
		if mat.Name != mesh.Materials[i].Name {
			t.Errorf("material %d name = %q, want %q", i, mat.Name, mesh.Materials[i].Name)
		}
	}

	for i, v := range loaded.Vertices {
		want := mesh.Vertices[i].Position
		// Positions are stored as float32.
		if v.Position.Sub(want).Len() > 1e-6 {
			t.Errorf("vertex %d = %v, want %v", i, v.Position, want)
		}
	}

	for i, f := range loaded.Faces {
		if f != mesh.Faces[i] {
			t.Errorf("face %d = %v, want %v", i, f, mesh.Faces[i])
		}
	}

	if math.Abs(loaded.BoundsMax.X-1.32) > 1e-6 {
		t.Errorf("BoundsMax.X = %v, want 1.32", loaded.BoundsMax.X)
	}
}

func TestDocumentLayout(t *testing.T) {
	mesh, err := NewCube(1).Mesh()
	if err != nil {
		t.Fatal(err)
	}
	doc, err := mesh.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if len(doc.Buffers) != 1 {
		t.Fatalf("len(Buffers) = %d, want 1", len(doc.Buffers))
	}
	for i, bv := range doc.BufferViews {
		if bv.ByteOffset%4 != 0 {
			t.Errorf("buffer view %d offset %d not 4-byte aligned", i, bv.ByteOffset)
		}
	}

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != len(Sides) {
		t.Fatalf("want one mesh with %d primitives", len(Sides))
	}
	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	if pos.Count != mesh.VertexCount() {
		t.Errorf("position count = %d, want %d", pos.Count, mesh.VertexCount())
	}
	if len(pos.Min) != 3 || pos.Min[0] != -1 || pos.Max[2] != 1 {
		t.Errorf("position bounds = %v..%v", pos.Min, pos.Max)
	}
	idx := doc.Accessors[*prim.Indices]
	if idx.ComponentType != gltf.ComponentUshort || idx.Count != 6 {
		t.Errorf("indices = %v x %d, want ushort x 6", idx.ComponentType, idx.Count)
	}
	if doc.Scene == nil || len(doc.Scenes[*doc.Scene].Nodes) != 1 {
		t.Error("default scene does not reference the mesh node")
	}
}

func TestGLBRoundTripNormals(t *testing.T) {
	mesh, err := NewCube(1.32).Mesh()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := SaveGLB(mesh, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadGLB(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range loaded.Vertices {
		if v.Normal != mesh.Vertices[i].Normal {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, mesh.Vertices[i].Normal)
		}
	}
}
