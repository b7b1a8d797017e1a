package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestNormalizeUnitLength(t *testing.T) {
	tests := []Vec3{
		V3(1, 0, 0),
		V3(3, 4, 0),
		V3(-2, 7, 1.5),
		V3(1e-6, 2e-6, -3e-6),
		V3(1e6, -1e6, 5e5),
	}

	for _, v := range tests {
		if got := v.Normalize().Len(); math.Abs(got-1) > 1e-9 {
			t.Errorf("len(normalize(%v)) = %v, want 1", v, got)
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	got := Zero3().Normalize()
	if got != Zero3() {
		t.Errorf("normalize(0) = %v, want zero vector", got)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsNaN(got.Z) {
		t.Error("normalize(0) produced NaN")
	}
}

func TestDiv(t *testing.T) {
	if got := V3(2, -4, 6).Div(2); got != V3(1, -2, 3) {
		t.Errorf("Div(2) = %v, want (1,-2,3)", got)
	}
	got := V3(1, -1, 0).Div(0)
	if !math.IsInf(got.X, 1) || !math.IsInf(got.Y, -1) || !math.IsNaN(got.Z) {
		t.Errorf("Div(0) = %v, want (+Inf,-Inf,NaN)", got)
	}
}

func TestCrossOrthogonal(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-4, 0.5, 2)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > eps || math.Abs(c.Dot(b)) > eps {
		t.Errorf("cross(%v, %v) = %v is not orthogonal to its inputs", a, b, c)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("x cross y = %v, want z", got)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name string
		v, n Vec3
		want Vec3
	}{
		{"head on", V3(0, -1, 0), V3(0, 1, 0), V3(0, 1, 0)},
		{"45 degrees", V3(1, -1, 0), V3(0, 1, 0), V3(1, 1, 0)},
		{"grazing", V3(1, 0, 0), V3(0, 1, 0), V3(1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Reflect(tc.n); !vecNear(got, tc.want, eps) {
				t.Errorf("reflect(%v, %v) = %v, want %v", tc.v, tc.n, got, tc.want)
			}
		})
	}
}

func TestRefract(t *testing.T) {
	n := V3(0, 1, 0)

	t.Run("head on passes straight", func(t *testing.T) {
		got, ok := V3(0, -1, 0).Refract(n, 1/1.5)
		if !ok {
			t.Fatal("expected refraction")
		}
		if !vecNear(got, V3(0, -1, 0), eps) {
			t.Errorf("refract = %v, want (0,-1,0)", got)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		eta := 1 / 1.5
		in := V3(math.Sin(0.5), -math.Cos(0.5), 0)
		got, ok := in.Refract(n, eta)
		if !ok {
			t.Fatal("expected refraction")
		}
		// sin(theta_t) = eta * sin(theta_i)
		if math.Abs(got.X-eta*math.Sin(0.5)) > 1e-9 {
			t.Errorf("sin theta_t = %v, want %v", got.X, eta*math.Sin(0.5))
		}
		if math.Abs(got.Len()-1) > 1e-9 {
			t.Errorf("refracted direction length = %v, want 1", got.Len())
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		// Leaving glass at a steep angle: eta = 1.5 and sin(theta_i) = 0.9.
		in := V3(0.9, -math.Sqrt(1-0.81), 0)
		if _, ok := in.Refract(n, 1.5); ok {
			t.Error("expected total internal reflection")
		}
	})
}

func TestAxis(t *testing.T) {
	v := V3(1, 2, 3)
	for i, want := range []float64{1, 2, 3} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestRayAtAndOffset(t *testing.T) {
	r := NewRay(V3(1, 1, 1), V3(0, 0, -2))
	if got := r.At(1.5); got != V3(1, 1, -2) {
		t.Errorf("At(1.5) = %v, want (1,1,-2)", got)
	}

	off := r.Offset(V3(0, 1, 0), 0.001)
	if !vecNear(off.Origin, V3(1, 1.001, 1), eps) || off.Direction != r.Direction {
		t.Errorf("Offset = %+v", off)
	}
}

func TestComposeAppliesScaleRotateTranslate(t *testing.T) {
	m := Compose(V3(10, 0, 0), 0, V3(2, 2, 2))
	if got := m.MulVec3(V3(1, 1, 1)); !vecNear(got, V3(12, 2, 2), eps) {
		t.Errorf("Compose point = %v, want (12,2,2)", got)
	}
	// Scale applies before the rotation: X is stretched, then turned to -Z.
	turned := Compose(Zero3(), math.Pi/2, V3(2, 1, 1))
	if got := turned.MulVec3(V3(1, 0, 0)); !vecNear(got, V3(0, 0, -2), eps) {
		t.Errorf("Compose rotated point = %v, want (0,0,-2)", got)
	}

	r := RotateY(math.Pi / 2).MulVec3(V3(1, 0, 0))
	if math.Abs(r.Len()-1) > eps || math.Abs(r.Y) > eps {
		t.Errorf("RotateY kept vector off the XZ unit circle: %v", r)
	}
}
