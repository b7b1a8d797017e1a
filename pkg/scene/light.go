package scene

import (
	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/render"
)

// SunColor is the warm white of the directional sun light.
var SunColor = render.RGB(1, 0.95, 0.9)

// DirectionalLight is an infinitely distant light. Direction points the
// way the light travels.
type DirectionalLight struct {
	Direction math3d.Vec3
	Color     render.Color
	Intensity float64
}

// NewDirectionalLight normalizes direction.
func NewDirectionalLight(direction math3d.Vec3, c render.Color, intensity float64) DirectionalLight {
	return DirectionalLight{Direction: direction.Normalize(), Color: c, Intensity: intensity}
}

// NewSun creates a directional light with the sun's color.
func NewSun(direction math3d.Vec3, intensity float64) DirectionalLight {
	return NewDirectionalLight(direction, SunColor, intensity)
}

// PointLight is a local light with a hard cutoff at Radius.
type PointLight struct {
	Position  math3d.Vec3
	Color     render.Color
	Intensity float64
	Radius    float64
}

// Illuminate returns the unit direction from p toward the light and the
// attenuated light color arriving at p. Beyond Radius both are zero.
func (l PointLight) Illuminate(p math3d.Vec3) (math3d.Vec3, render.Color) {
	toLight := l.Position.Sub(p)
	d := toLight.Len()
	if d > l.Radius {
		return math3d.Vec3{}, render.Black
	}
	att := 1 / (1 + d*d*0.5)
	return toLight.Normalize(), l.Color.Scale(l.Intensity * att)
}
