package scene

import (
	"math"
	"testing"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/models"
	"github.com/taigrr/sundial/pkg/render"
)

func TestTriangleIntersect(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))

	tests := []struct {
		name      string
		ray       math3d.Ray
		shouldHit bool
		wantT     float64
	}{
		{"centroid", math3d.NewRay(math3d.V3(1.0/3, 1.0/3, -1), math3d.V3(0, 0, 1)), true, 1},
		{"edge", math3d.NewRay(math3d.V3(0.5, 0, -2), math3d.V3(0, 0, 1)), true, 2},
		{"outside", math3d.NewRay(math3d.V3(1, 1, -1), math3d.V3(0, 0, 1)), false, 0},
		{"parallel", math3d.NewRay(math3d.V3(0.2, 0.2, -1), math3d.V3(1, 0, 0)), false, 0},
		{"behind origin", math3d.NewRay(math3d.V3(0.2, 0.2, 1), math3d.V3(0, 0, 1)), false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist, _, _, ok := tri.Intersect(tc.ray)
			if ok != tc.shouldHit {
				t.Fatalf("hit = %v, want %v", ok, tc.shouldHit)
			}
			if ok && !near(dist, tc.wantT) {
				t.Errorf("t = %v, want %v", dist, tc.wantT)
			}
		})
	}
}

func TestTriangleCentroidBarycentrics(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	_, u, v, ok := tri.Intersect(math3d.NewRay(math3d.V3(1.0/3, 1.0/3, -1), math3d.V3(0, 0, 1)))
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(u-1.0/3) > 1e-9 || math.Abs(v-1.0/3) > 1e-9 {
		t.Errorf("barycentrics = (%v, %v), want (1/3, 1/3)", u, v)
	}
	if !vecNear(tri.Normal, math3d.V3(0, 0, 1)) {
		t.Errorf("normal = %v, want +Z", tri.Normal)
	}
}

func TestTriangleMeshNearestHit(t *testing.T) {
	mat := NewMaterial(render.RGB(1, 0, 0))
	mesh := NewTriangleMesh(math3d.V3(0, 0, 5), mat)
	// Two parallel triangles, the nearer one added last.
	mesh.Add(NewTriangle(math3d.V3(-1, -1, 1), math3d.V3(1, -1, 1), math3d.V3(0, 1, 1)))
	mesh.Add(NewTriangle(math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(0, 1, 0)))

	hit, ok := mesh.Intersect(math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, 1)))
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(hit.T, 5) {
		t.Errorf("t = %v, want 5 (mesh position offset applied)", hit.T)
	}
	if !vecNear(hit.Point, math3d.V3(0, 0, 5)) {
		t.Errorf("point = %v, want world-space (0,0,5)", hit.Point)
	}
	if hit.Material.Albedo != mat.Albedo || hit.U != 0 || hit.V != 0 {
		t.Errorf("unexpected material or uv: %+v", hit)
	}
}

func TestTriangleMeshRotateY(t *testing.T) {
	mesh := NewTriangleMesh(math3d.Zero3(), NewMaterial(render.White))
	mesh.Add(NewTriangle(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 0)))
	mesh.RotateY(math.Pi / 2)

	if got := mesh.Triangles[0].V0; !vecNear(got, math3d.V3(0, 0, 1)) {
		t.Errorf("rotated vertex = %v, want (0,0,1)", got)
	}
	// Normal was +Z before the turn and must follow the rotation.
	if got := mesh.Triangles[0].Normal; !vecNear(got, math3d.V3(-1, 0, 0)) {
		t.Errorf("rotated normal = %v, want (-1,0,0)", got)
	}
}

func TestTriangleMeshFromPyramid(t *testing.T) {
	mesh := NewTriangleMeshFromModel(models.NewPyramid(2), math3d.V3(0, 0, 0), NewMaterial(render.White))
	if len(mesh.Triangles) != 4 {
		t.Fatalf("got %d triangles, want 4", len(mesh.Triangles))
	}
	// The front face spans |x| < -z, so this ray lands on it at y = 1.4.
	hit, ok := mesh.Intersect(math3d.NewRay(math3d.V3(0.1, 10, -0.3), math3d.V3(0, -1, 0)))
	if !ok {
		t.Fatal("ray onto the front face should hit")
	}
	if math.Abs(hit.T-8.6) > 1e-9 {
		t.Errorf("t = %v, want 8.6", hit.T)
	}
	if hit.Normal.Y <= 0 || hit.Normal.Z >= 0 {
		t.Errorf("front face normal = %v, want outward (+Y, -Z)", hit.Normal)
	}
}
