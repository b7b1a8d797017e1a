package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Reflect(b *testing.B) {
	v := V3(1, -1, 0).Normalize()
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = v.Reflect(n)
	}
}

func BenchmarkVec3Refract(b *testing.B) {
	v := V3(1, -1, 0).Normalize()
	n := V3(0, 1, 0)

	for b.Loop() {
		_, _ = v.Refract(n, 1/1.5)
	}
}

func BenchmarkRayAt(b *testing.B) {
	r := NewRay(V3(0, 0, 0), V3(0, 0, -1))

	for b.Loop() {
		_ = r.At(3.5)
	}
}
