package math3d

import "math"

// Mat4 is an affine transform in column-major order: element (row, col)
// lives at index row+4*col and the translation sits in 12..14. Matrices are
// only used to bake vertex data when a mesh is built.
type Mat4 [16]float64

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scale stretches each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateY turns about the Y axis by angle radians, +Z toward +X.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m*o, which applies o first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[row+k*4] * o[k+col*4]
			}
			r[row+col*4] = sum
		}
	}
	return r
}

// MulVec3 transforms p as a point.
func (m Mat4) MulVec3(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

// Compose returns the transform that applies scale, then rotation around Y,
// then translation.
func Compose(translate Vec3, rotateY float64, scale Vec3) Mat4 {
	return Translate(translate).Mul(RotateY(rotateY)).Mul(Scale(scale))
}
