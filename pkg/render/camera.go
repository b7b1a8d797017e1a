package render

import (
	"math"

	"github.com/taigrr/sundial/pkg/math3d"
)

// Orbit limits.
const (
	MinVerticalAngle = -1.5
	MaxVerticalAngle = 1.5
	MinDistance      = 1.0
	MaxDistance      = 50.0
)

// Camera is a look-at camera that orbits its target. Position and Target
// are the source of truth; the orbital parameters are derived from them
// after every change.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height

	distance        float64
	horizontalAngle float64
	verticalAngle   float64
}

// NewCamera creates a camera at position looking at target.
func NewCamera(position, target math3d.Vec3, fov, aspect float64) *Camera {
	c := &Camera{
		Position:    position,
		Target:      target,
		FOV:         fov,
		AspectRatio: aspect,
	}
	c.syncOrbit()
	return c
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 { return c.distance }

// HorizontalAngle returns the orbit angle around the world Y axis.
func (c *Camera) HorizontalAngle() float64 { return c.horizontalAngle }

// VerticalAngle returns the orbit elevation angle.
func (c *Camera) VerticalAngle() float64 { return c.verticalAngle }

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.syncOrbit()
}

// LookAt points the camera at a new target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.syncOrbit()
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Right returns the unit right vector. It is zero when looking straight
// up or down.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(math3d.Up()).Normalize()
}

// Up returns the camera's unit up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// GetRay returns the primary ray through normalized screen coordinates
// (u, v), with (0, 0) at the top-left corner.
func (c *Camera) GetRay(u, v float64) math3d.Ray {
	forward := c.Forward()
	right := forward.Cross(math3d.Up()).Normalize()
	up := right.Cross(forward).Normalize()

	halfHeight := math.Tan(c.FOV / 2)
	halfWidth := c.AspectRatio * halfHeight

	dir := forward.
		Add(right.Scale((2*u - 1) * halfWidth)).
		Add(up.Scale((1 - 2*v) * halfHeight))
	return math3d.NewRay(c.Position, dir.Normalize())
}

// RotateAroundTarget orbits horizontally by delta radians.
func (c *Camera) RotateAroundTarget(delta float64) {
	c.horizontalAngle += delta
	c.updatePosition()
}

// RotateVertical changes the orbit elevation by delta radians.
func (c *Camera) RotateVertical(delta float64) {
	c.verticalAngle = clamp(c.verticalAngle+delta, MinVerticalAngle, MaxVerticalAngle)
	c.updatePosition()
}

// Zoom moves the camera toward the target by delta (away if negative).
func (c *Camera) Zoom(delta float64) {
	c.distance = clamp(c.distance-delta, MinDistance, MaxDistance)
	c.updatePosition()
}

// MoveForward translates camera and target along the view direction.
func (c *Camera) MoveForward(amount float64) {
	c.translate(c.Forward().Scale(amount))
}

// MoveBackward translates camera and target against the view direction.
func (c *Camera) MoveBackward(amount float64) {
	c.translate(c.Forward().Scale(-amount))
}

// StrafeLeft translates camera and target to the left.
func (c *Camera) StrafeLeft(amount float64) {
	c.translate(c.Right().Scale(-amount))
}

// StrafeRight translates camera and target to the right.
func (c *Camera) StrafeRight(amount float64) {
	c.translate(c.Right().Scale(amount))
}

// MoveUp translates camera and target along world Y.
func (c *Camera) MoveUp(amount float64) {
	c.translate(math3d.V3(0, amount, 0))
}

// MoveDown translates camera and target against world Y.
func (c *Camera) MoveDown(amount float64) {
	c.translate(math3d.V3(0, -amount, 0))
}

func (c *Camera) translate(d math3d.Vec3) {
	c.Position = c.Position.Add(d)
	c.Target = c.Target.Add(d)
	c.syncOrbit()
}

func (c *Camera) updatePosition() {
	cv := math.Cos(c.verticalAngle)
	offset := math3d.V3(
		c.distance*cv*math.Cos(c.horizontalAngle),
		c.distance*math.Sin(c.verticalAngle),
		c.distance*cv*math.Sin(c.horizontalAngle),
	)
	c.Position = c.Target.Add(offset)
	c.syncOrbit()
}

// syncOrbit re-derives distance and angles from Position - Target.
func (c *Camera) syncOrbit() {
	offset := c.Position.Sub(c.Target)
	c.distance = offset.Len()
	if c.distance == 0 {
		c.horizontalAngle, c.verticalAngle = 0, 0
		return
	}
	dir := offset.Div(c.distance)
	c.horizontalAngle = math.Atan2(dir.Z, dir.X)
	c.verticalAngle = math.Asin(clamp(dir.Y, -1, 1))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
