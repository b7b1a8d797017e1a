package scene

import (
	"math"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/models"
)

// Determinants smaller than this mean the ray is parallel to the triangle.
const parallelEpsilon = 1e-5

// Triangle is a single face with a precomputed unit normal.
type Triangle struct {
	V0, V1, V2 math3d.Vec3
	Normal     math3d.Vec3
}

// NewTriangle creates a triangle; the normal follows the v0→v1→v2 winding.
func NewTriangle(v0, v1, v2 math3d.Vec3) Triangle {
	t := Triangle{V0: v0, V1: v1, V2: v2}
	t.computeNormal()
	return t
}

func (t *Triangle) computeNormal() {
	t.Normal = t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

// Intersect runs the Möller–Trumbore test and returns the hit distance and
// barycentric coordinates.
func (t Triangle) Intersect(ray math3d.Ray) (dist, u, v float64, ok bool) {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if math.Abs(det) < parallelEpsilon {
		return 0, 0, 0, false
	}

	f := 1 / det
	s := ray.Origin.Sub(t.V0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	dist = f * edge2.Dot(q)
	if dist <= Epsilon {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}

// TriangleMesh is a list of triangles in local space, offset by Position
// and shaded with one material. Scale and rotation are baked into the
// vertices when the mesh is built.
type TriangleMesh struct {
	Triangles []Triangle
	Position  math3d.Vec3
	Material  Material
}

// NewTriangleMesh creates an empty mesh at position.
func NewTriangleMesh(position math3d.Vec3, mat Material) *TriangleMesh {
	return &TriangleMesh{Position: position, Material: mat}
}

// NewTriangleMeshFromModel copies the faces of a loaded model.
func NewTriangleMeshFromModel(m *models.Mesh, position math3d.Vec3, mat Material) *TriangleMesh {
	mesh := NewTriangleMesh(position, mat)
	mesh.Triangles = make([]Triangle, 0, m.TriangleCount())
	for i := range m.TriangleCount() {
		tri := m.Triangle(i)
		mesh.Add(NewTriangle(tri[0], tri[1], tri[2]))
	}
	return mesh
}

// Add appends a triangle.
func (m *TriangleMesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// Transform bakes mat into every vertex and recomputes the normals.
func (m *TriangleMesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		t.V0 = mat.MulVec3(t.V0)
		t.V1 = mat.MulVec3(t.V1)
		t.V2 = mat.MulVec3(t.V2)
		t.computeNormal()
	}
}

// RotateY turns the mesh about its local Y axis. Positive angles turn +X
// toward +Z.
func (m *TriangleMesh) RotateY(angle float64) {
	m.Transform(math3d.RotateY(-angle))
}

// Intersect returns the nearest triangle hit. UVs are not interpolated
// and are always (0, 0).
func (m *TriangleMesh) Intersect(ray math3d.Ray) (Intersection, bool) {
	local := math3d.NewRay(ray.Origin.Sub(m.Position), ray.Direction)

	closest := math.Inf(1)
	hit := -1
	for i := range m.Triangles {
		if t, _, _, ok := m.Triangles[i].Intersect(local); ok && t < closest {
			closest = t
			hit = i
		}
	}
	if hit < 0 {
		return Intersection{}, false
	}

	return Intersection{
		T:        closest,
		Point:    ray.At(closest),
		Normal:   m.Triangles[hit].Normal,
		Material: m.Material,
	}, true
}
