package scene

import (
	"math"

	"github.com/taigrr/sundial/pkg/math3d"
)

// Box is an axis-aligned cube. Top, Side and Bottom optionally override
// Material on the faces they name.
type Box struct {
	Center   math3d.Vec3
	Size     float64 // edge length
	Material Material

	Top    *Material
	Side   *Material
	Bottom *Material
}

// NewBox creates a cube with one material on every face.
func NewBox(center math3d.Vec3, size float64, mat Material) *Box {
	return &Box{Center: center, Size: size, Material: mat}
}

// NewMultiMaterialBox creates a cube with separate top, side and bottom
// materials. The side material doubles as the default.
func NewMultiMaterialBox(center math3d.Vec3, size float64, top, side, bottom Material) *Box {
	return &Box{
		Center:   center,
		Size:     size,
		Material: side,
		Top:      &top,
		Side:     &side,
		Bottom:   &bottom,
	}
}

// Bounds returns the min and max corners.
func (b *Box) Bounds() (lo, hi math3d.Vec3) {
	h := b.Size / 2
	half := math3d.V3(h, h, h)
	return b.Center.Sub(half), b.Center.Add(half)
}

// Intersect tests the ray against the box with the slab method.
func (b *Box) Intersect(ray math3d.Ray) (Intersection, bool) {
	lo, hi := b.Bounds()

	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	for axis := range 3 {
		inv := 1 / ray.Direction.Axis(axis)
		o := ray.Origin.Axis(axis)
		t1 := (lo.Axis(axis) - o) * inv
		t2 := (hi.Axis(axis) - o) * inv
		// 0 * Inf yields NaN when the origin lies on a slab plane and the
		// direction has no motion along that axis. minNum/maxNum drop the
		// NaN instead of letting it poison tNear and tFar.
		tNear = maxNum(tNear, minNum(t1, t2))
		tFar = minNum(tFar, maxNum(t1, t2))
	}

	if tFar < 0 || tNear > tFar {
		return Intersection{}, false
	}
	t := tFar
	if tNear > Epsilon {
		t = tNear
	}
	if t < Epsilon || math.IsInf(t, 0) || math.IsNaN(t) {
		return Intersection{}, false
	}

	p := ray.At(t)
	n := faceNormal(p, lo, hi)
	u, v := b.faceUV(p, n)
	return Intersection{
		T:        t,
		Point:    p,
		Normal:   n,
		Material: b.faceMaterial(n),
		U:        u,
		V:        v,
	}, true
}

func faceNormal(p, lo, hi math3d.Vec3) math3d.Vec3 {
	switch {
	case math.Abs(p.X-lo.X) < Epsilon:
		return math3d.V3(-1, 0, 0)
	case math.Abs(p.X-hi.X) < Epsilon:
		return math3d.V3(1, 0, 0)
	case math.Abs(p.Y-lo.Y) < Epsilon:
		return math3d.V3(0, -1, 0)
	case math.Abs(p.Y-hi.Y) < Epsilon:
		return math3d.V3(0, 1, 0)
	case math.Abs(p.Z-lo.Z) < Epsilon:
		return math3d.V3(0, 0, -1)
	default:
		return math3d.V3(0, 0, 1)
	}
}

func (b *Box) faceMaterial(n math3d.Vec3) Material {
	switch {
	case n.Y > 0.5:
		if b.Top != nil {
			return *b.Top
		}
	case n.Y < -0.5:
		if b.Bottom != nil {
			return *b.Bottom
		}
	default:
		if b.Side != nil {
			return *b.Side
		}
	}
	return b.Material
}

// faceUV maps the hit point to [0,1]² on its face. Side faces flip V so
// image rows run top to bottom.
func (b *Box) faceUV(p, n math3d.Vec3) (u, v float64) {
	local := p.Sub(b.Center)
	h := b.Size / 2
	switch {
	case math.Abs(n.X) > 0.5:
		return (local.Z + h) / b.Size, 1 - (local.Y+h)/b.Size
	case math.Abs(n.Y) > 0.5:
		return (local.X + h) / b.Size, (local.Z + h) / b.Size
	default:
		return (local.X + h) / b.Size, 1 - (local.Y+h)/b.Size
	}
}

func minNum(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Min(a, b)
}

func maxNum(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Max(a, b)
}
