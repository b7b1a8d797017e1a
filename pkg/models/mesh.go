// Package models loads triangle geometry for the sundial ray tracer.
package models

import (
	"github.com/taigrr/sundial/pkg/math3d"
)

// Mesh is an indexed triangle mesh with per-face material references.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the ray tracer uses.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// NewPyramid builds the four-sided placeholder pyramid used when a model
// cannot be loaded. The base spans ±0.5*scale on X and Z at y = 0 and the
// apex sits at y = scale. Faces wind so their normals point outward; the
// base itself is open.
func NewPyramid(scale float64) *Mesh {
	h := 0.5 * scale
	m := NewMesh("pyramid")
	m.Vertices = []math3d.Vec3{
		math3d.V3(-h, 0, -h),
		math3d.V3(h, 0, -h),
		math3d.V3(h, 0, h),
		math3d.V3(-h, 0, h),
		math3d.V3(0, scale, 0),
	}
	m.Faces = []Face{
		{V: [3]int{1, 0, 4}, Material: -1}, // front
		{V: [3]int{2, 1, 4}, Material: -1}, // right
		{V: [3]int{3, 2, 4}, Material: -1}, // back
		{V: [3]int{0, 3, 4}, Material: -1}, // left
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the three corner positions of face i.
func (m *Mesh) Triangle(i int) [3]math3d.Vec3 {
	f := m.Faces[i]
	return [3]math3d.Vec3{m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]}
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// BaseColor returns the base color of the material used by the first
// face that references one, or ok=false when no face does.
func (m *Mesh) BaseColor() (rgba [4]float64, ok bool) {
	for _, f := range m.Faces {
		if mat := m.GetMaterial(f.Material); mat != nil {
			return mat.BaseColor, true
		}
	}
	return [4]float64{}, false
}
