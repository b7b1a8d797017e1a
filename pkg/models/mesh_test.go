package models

import (
	"math"
	"testing"

	"github.com/taigrr/sundial/pkg/math3d"
)

func TestPyramidFaces(t *testing.T) {
	mesh := NewPyramid(1)
	apex := math3d.V3(0, 1, 0)

	for i := range mesh.TriangleCount() {
		tri := mesh.Triangle(i)
		if tri[2] != apex {
			t.Errorf("face %d does not end at the apex: %v", i, tri)
		}
		for _, v := range tri[:2] {
			if v.Y != 0 || math.Abs(v.X) != 0.5 || math.Abs(v.Z) != 0.5 {
				t.Errorf("face %d has non-base corner %v", i, v)
			}
		}
	}
}

// TestFaceMaterialIndex verifies per-face material assignment.
func TestFaceMaterialIndex(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: -1},
		{V: [3]int{3, 4, 5}, Material: 1},
	}

	if mat := mesh.GetMaterial(mesh.Faces[1].Material); mat == nil || mat.Name != "green" {
		t.Errorf("face 1 material = %v, want green", mat)
	}
	if mat := mesh.GetMaterial(-1); mat != nil {
		t.Errorf("GetMaterial(-1) should return nil")
	}
	if mat := mesh.GetMaterial(99); mat != nil {
		t.Errorf("GetMaterial(99) should return nil for out-of-bounds")
	}
	// The first face without a material is skipped.
	if c, ok := mesh.BaseColor(); !ok || c[1] != 1 {
		t.Errorf("BaseColor() = %v, %v, want green", c, ok)
	}
}

func TestMeshTransformUpdatesBounds(t *testing.T) {
	mesh := NewPyramid(1)
	mesh.Transform(math3d.Translate(math3d.V3(0, 3, 0)))

	if mesh.BoundsMin.Y != 3 || mesh.BoundsMax.Y != 4 {
		t.Errorf("bounds after translate = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
	if c := mesh.Center(); c != math3d.V3(0, 3.5, 0) {
		t.Errorf("center = %v", c)
	}
}
