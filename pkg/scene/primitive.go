package scene

import "github.com/taigrr/sundial/pkg/math3d"

// Kind identifies the variant held by a Primitive.
type Kind uint8

const (
	KindBox Kind = iota
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// Primitive is a tagged union over the geometry the tracer understands.
// Only the field matching Kind is set.
type Primitive struct {
	Kind Kind
	Box  *Box
	Mesh *TriangleMesh
}

// BoxPrimitive wraps a box.
func BoxPrimitive(b *Box) Primitive {
	return Primitive{Kind: KindBox, Box: b}
}

// MeshPrimitive wraps a triangle mesh.
func MeshPrimitive(m *TriangleMesh) Primitive {
	return Primitive{Kind: KindMesh, Mesh: m}
}

// Intersect dispatches to the underlying shape.
func (p Primitive) Intersect(ray math3d.Ray) (Intersection, bool) {
	switch p.Kind {
	case KindBox:
		if p.Box != nil {
			return p.Box.Intersect(ray)
		}
	case KindMesh:
		if p.Mesh != nil {
			return p.Mesh.Intersect(ray)
		}
	}
	return Intersection{}, false
}
