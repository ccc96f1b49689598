package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/glyphcube/pkg/math3d"
)

// SaveGLB writes the mesh as a binary glTF file with one primitive per
// material.
func SaveGLB(mesh *Mesh, path string) error {
	doc, err := mesh.Document()
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// Document converts the mesh into a glTF document with a single embedded
// buffer holding positions, normals and per-material index lists.
func (m *Mesh) Document() (*gltf.Document, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices", m.Name)
	}
	if len(m.Vertices) > math.MaxUint16 {
		return nil, fmt.Errorf("mesh %q has %d vertices, more than 16-bit indices allow", m.Name, len(m.Vertices))
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "glyphcube"

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = toFloat32(v.Position)
		normals[i] = toFloat32(v.Normal)
	}
	posAccessor := modeler.WritePosition(doc, positions)
	normAccessor := modeler.WriteNormal(doc, normals)

	// Group triangles by material; faces without one share a primitive.
	groups := make(map[int][]uint16)
	var order []int
	for _, f := range m.Faces {
		if _, ok := groups[f.Material]; !ok {
			order = append(order, f.Material)
		}
		for _, vi := range f.V {
			groups[f.Material] = append(groups[f.Material], uint16(vi))
		}
	}

	for _, mat := range m.Materials {
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: mat.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{mat.BaseColor[0], mat.BaseColor[1], mat.BaseColor[2], mat.BaseColor[3]},
			},
		})
	}

	gm := &gltf.Mesh{Name: m.Name}
	for _, mat := range order {
		prim := &gltf.Primitive{
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION: posAccessor,
				gltf.NORMAL:   normAccessor,
			},
			Indices: gltf.Index(modeler.WriteIndices(doc, groups[mat])),
			Mode:    gltf.PrimitiveTriangles,
		}
		if mat >= 0 && mat < len(m.Materials) {
			prim.Material = gltf.Index(mat)
		}
		gm.Primitives = append(gm.Primitives, prim)
	}

	doc.Meshes = []*gltf.Mesh{gm}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	return doc, nil
}

// LoadGLB loads a binary glTF file written by SaveGLB (or any triangle-only
// glTF) into a Mesh.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	for _, mat := range doc.Materials {
		out := Material{Name: mat.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			out.BaseColor = *pbr.BaseColorFactor
		}
		mesh.Materials = append(mesh.Materials, out)
	}

	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if !hasNormals {
		mesh.CalculateNormals()
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh. Primitives that share
// accessors share vertices.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	bases := make(map[[2]int]int)

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		normIdx, hasNormals := prim.Attributes[gltf.NORMAL]
		if !hasNormals {
			normIdx = -1
		}

		key := [2]int{posIdx, normIdx}
		baseVertex, seen := bases[key]
		if !seen {
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return fmt.Errorf("read positions: %w", err)
			}

			var normals [][3]float32
			if hasNormals {
				normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
				if err != nil {
					return fmt.Errorf("read normals: %w", err)
				}
			}

			baseVertex = len(mesh.Vertices)
			for i, p := range positions {
				v := MeshVertex{Position: fromFloat32(p)}
				if i < len(normals) {
					v.Normal = fromFloat32(normals[i])
				}
				mesh.Vertices = append(mesh.Vertices, v)
			}
			bases[key] = baseVertex
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		if prim.Indices == nil {
			return fmt.Errorf("primitive without indices")
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V: [3]int{
					baseVertex + int(indices[i]),
					baseVertex + int(indices[i+1]),
					baseVertex + int(indices[i+2]),
				},
				Material: material,
			})
		}
	}

	return nil
}

func toFloat32(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func fromFloat32(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
