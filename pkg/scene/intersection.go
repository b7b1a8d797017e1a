package scene

import "github.com/taigrr/sundial/pkg/math3d"

// Hit distances below Epsilon are rejected to avoid self-intersection.
// Secondary rays are offset from surfaces by the same amount.
const Epsilon = 0.001

// Intersection is the result of a successful ray query.
type Intersection struct {
	T        float64
	Point    math3d.Vec3
	Normal   math3d.Vec3 // unit length
	Material Material
	U, V     float64
}
