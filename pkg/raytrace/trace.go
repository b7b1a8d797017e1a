// Package raytrace shades rays against a scene and fills a framebuffer
// from an orbital camera, optionally splitting the frame into bands that
// render concurrently.
package raytrace

import (
	"math"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/render"
	"github.com/taigrr/sundial/pkg/scene"
)

// MaxDepth bounds reflection and refraction recursion.
const MaxDepth = 8

var (
	dayAmbient   = render.RGB(0.45, 0.45, 0.52)
	nightAmbient = render.RGB(0.05, 0.05, 0.08)
)

// Trace returns the color seen along ray. tod is the time of day in
// [0,1), 0 being midday. The scene is only read.
func Trace(s *scene.Scene, ray math3d.Ray, depth int, tod float64) render.Color {
	if depth >= MaxDepth {
		return render.Black
	}

	hit, ok := s.Intersect(ray)
	if !ok {
		return s.Sky.Sample(ray.Direction, tod, s.Sun.Direction.Negate())
	}

	mat := hit.Material
	if mat.IsEmissive() {
		return mat.Emissive
	}
	surface := mat.Color(hit.U, hit.V)
	n := hit.Normal
	viewDir := ray.Direction.Negate()

	ambient := dayAmbient.Lerp(nightAmbient, tod)
	celestial := s.Sun.Intensity * (1 - 0.95*tod)

	// Sun, hard shadows with unbounded range.
	lightDir := s.Sun.Direction.Negate()
	strength := math.Max(n.Dot(lightDir), 0)
	_, shadowed := s.Intersect(math3d.NewRay(hit.Point, lightDir).Offset(n, scene.Epsilon))

	var diffuse, specular render.Color
	if !shadowed {
		diffuse = s.Sun.Color.Scale(strength * celestial)
		if mat.Specular > 0 && strength > 0 {
			spec := blinnPhong(n, lightDir, viewDir, mat.Shininess)
			specular = s.Sun.Color.Scale(mat.Specular * spec * celestial)
		}
	}

	// Point lights are occluded only by geometry closer than the light.
	var pointDiffuse, pointSpecular render.Color
	for _, l := range s.PointLights {
		dir, c := l.Illuminate(hit.Point)
		if c.IsBlack() {
			continue
		}
		strength := math.Max(n.Dot(dir), 0)
		if strength <= 0 {
			continue
		}
		if blocker, ok := s.Intersect(math3d.NewRay(hit.Point, dir).Offset(n, scene.Epsilon)); ok {
			if blocker.T < l.Position.Distance(hit.Point) {
				continue
			}
		}
		pointDiffuse = pointDiffuse.Add(c.Scale(strength))
		if mat.Specular > 0 {
			spec := blinnPhong(n, dir, viewDir, mat.Shininess)
			pointSpecular = pointSpecular.Add(c.Scale(mat.Specular * spec))
		}
	}

	color := ambient.Add(diffuse).Add(pointDiffuse).Mul(surface).
		Add(specular).Add(pointSpecular)

	// A non-positive index would make 1/ior infinite.
	ior := mat.RefractiveIndex
	if ior <= 0 {
		ior = 1
	}
	cosTheta := math.Min(math.Abs(viewDir.Dot(n)), 1)
	fresnel := Schlick(cosTheta, ior)

	if mat.Reflectivity > 0 || mat.Transparency > 0 {
		reflected := math3d.NewRay(hit.Point, ray.Direction.Reflect(n)).Offset(n, scene.Epsilon)
		rc := Trace(s, reflected, depth+1, tod)
		k := mat.Reflectivity
		if mat.Transparency > 0 {
			k = math.Max(fresnel, mat.Reflectivity)
		}
		color = color.Lerp(rc, k)
	}

	if mat.Transparency > 0 {
		if dir, ok := ray.Direction.Refract(n, 1/ior); ok {
			refracted := math3d.NewRay(hit.Point, dir).Offset(n, -scene.Epsilon)
			tc := Trace(s, refracted, depth+1, tod)
			color = color.Lerp(tc, mat.Transparency*(1-fresnel))
		}
	}

	return color.Clamp()
}

// Schlick approximates Fresnel reflectance for a surface with refractive
// index ior viewed at cosTheta. Indices at or below 1 use a fixed base
// reflectance of 0.04.
func Schlick(cosTheta, ior float64) float64 {
	r0 := 0.04
	if ior > 1 {
		r := (1 - ior) / (1 + ior)
		r0 = r * r
	}
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

func blinnPhong(n, lightDir, viewDir math3d.Vec3, shininess float64) float64 {
	halfway := lightDir.Add(viewDir).Normalize()
	return math.Pow(math.Max(n.Dot(halfway), 0), shininess)
}
