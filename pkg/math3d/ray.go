package math3d

// Ray is a half-line starting at Origin. Direction is not required to be
// unit length; callers that depend on it normalize at the use site.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray from origin along direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Offset returns a copy of the ray whose origin is nudged by n*eps.
// Secondary rays use it to escape the surface they start on.
func (r Ray) Offset(n Vec3, eps float64) Ray {
	return Ray{Origin: r.Origin.Add(n.Scale(eps)), Direction: r.Direction}
}
