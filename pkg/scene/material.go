package scene

import "github.com/taigrr/sundial/pkg/render"

// Material describes how a surface responds to light. It is a value type;
// every intersection carries its own copy.
type Material struct {
	Albedo          render.Color
	Texture         render.Sampler // nil means untextured
	Reflectivity    float64
	Specular        float64 // Blinn-Phong strength
	Shininess       float64 // Blinn-Phong exponent
	Emissive        render.Color
	RefractiveIndex float64
	Transparency    float64
}

// NewMaterial returns an opaque, non-reflective diffuse material.
func NewMaterial(albedo render.Color) Material {
	return Material{
		Albedo:          albedo,
		Shininess:       32,
		RefractiveIndex: 1,
	}
}

// WithTexture returns a copy that samples tex instead of the albedo.
func (m Material) WithTexture(tex render.Sampler) Material {
	m.Texture = tex
	return m
}

// WithReflectivity returns a copy with mirror reflectivity r in [0,1].
func (m Material) WithReflectivity(r float64) Material {
	m.Reflectivity = r
	return m
}

// WithSpecular returns a copy with Blinn-Phong strength and exponent.
func (m Material) WithSpecular(specular, shininess float64) Material {
	m.Specular = specular
	m.Shininess = shininess
	return m
}

// WithEmissive returns a copy that glows with c and skips shading.
func (m Material) WithEmissive(c render.Color) Material {
	m.Emissive = c
	return m
}

// WithTransparency returns a copy that refracts with the given index.
func (m Material) WithTransparency(transparency, ior float64) Material {
	m.Transparency = transparency
	m.RefractiveIndex = ior
	return m
}

// Color returns the surface color at (u, v): the texture sample when a
// texture is set, otherwise the albedo.
func (m Material) Color(u, v float64) render.Color {
	if m.Texture != nil {
		return m.Texture.Sample(u, v)
	}
	return m.Albedo
}

// IsEmissive reports whether the material emits light of its own.
func (m Material) IsEmissive() bool {
	return !m.Emissive.IsBlack()
}
