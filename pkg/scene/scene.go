// Package scene holds the geometry, materials, lights and sky that the
// ray tracer queries. A Scene is built once, updated between frames with
// UpdateSun, and treated as read-only while a frame renders.
package scene

import (
	"math"

	"github.com/taigrr/sundial/pkg/math3d"
)

// TimeStep is how far one AdvanceTime call moves the day cycle.
const TimeStep = 0.01

// Scene is the set of everything a ray can hit or be lit by.
type Scene struct {
	Primitives  []Primitive
	PointLights []PointLight
	Sun         DirectionalLight
	Sky         Sky
}

// New returns an empty scene with the default sky and the midday sun.
func New() *Scene {
	s := &Scene{Sky: NewSky()}
	s.UpdateSun(0)
	return s
}

// AddBox appends a box primitive.
func (s *Scene) AddBox(b *Box) {
	s.Primitives = append(s.Primitives, BoxPrimitive(b))
}

// AddMesh appends a mesh primitive.
func (s *Scene) AddMesh(m *TriangleMesh) {
	s.Primitives = append(s.Primitives, MeshPrimitive(m))
}

// AddPointLight appends a point light.
func (s *Scene) AddPointLight(l PointLight) {
	s.PointLights = append(s.PointLights, l)
}

// Intersect scans every primitive and returns the nearest hit.
func (s *Scene) Intersect(ray math3d.Ray) (Intersection, bool) {
	var closest Intersection
	found := false
	closestT := math.Inf(1)
	for i := range s.Primitives {
		if hit, ok := s.Primitives[i].Intersect(ray); ok && hit.T < closestT {
			closestT = hit.T
			closest = hit
			found = true
		}
	}
	return closest, found
}

// UpdateSun replaces the sun for the given time of day in [0,1).
func (s *Scene) UpdateSun(tod float64) {
	a := tod * 2 * math.Pi
	height := math.Cos(a) + 0.5

	dir := math3d.V3(-math.Sin(a), -math.Max(height, 0.3), -0.5)
	intensity := math.Max(0.3, math.Min(1.2, math.Max(height, 0)*1.2))
	s.Sun = NewSun(dir, intensity)
}

// AdvanceTime moves the day cycle forward by one step, wrapping at 1.
func AdvanceTime(tod float64) float64 {
	return math.Mod(tod+TimeStep, 1)
}
