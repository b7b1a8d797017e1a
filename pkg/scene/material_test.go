package scene

import (
	"testing"

	"github.com/taigrr/sundial/pkg/render"
)

func TestMaterialDefaults(t *testing.T) {
	m := NewMaterial(render.RGB(0.2, 0.3, 0.4))
	if m.Reflectivity != 0 || m.Specular != 0 || m.Transparency != 0 {
		t.Errorf("expected opaque matte defaults, got %+v", m)
	}
	if m.Shininess != 32 || m.RefractiveIndex != 1 {
		t.Errorf("shininess/ior = %v/%v, want 32/1", m.Shininess, m.RefractiveIndex)
	}
	if m.IsEmissive() {
		t.Error("default material should not emit")
	}
}

func TestMaterialSettersTouchOnlyTheirFields(t *testing.T) {
	base := NewMaterial(render.White)
	m := base.WithSpecular(0.5, 64).WithTransparency(0.7, 1.5)

	if m.Specular != 0.5 || m.Shininess != 64 {
		t.Errorf("specular = %v/%v", m.Specular, m.Shininess)
	}
	if m.Transparency != 0.7 || m.RefractiveIndex != 1.5 {
		t.Errorf("transparency = %v/%v", m.Transparency, m.RefractiveIndex)
	}
	if m.Reflectivity != 0 || m.Albedo != render.White {
		t.Errorf("unrelated fields changed: %+v", m)
	}
	if base.Specular != 0 {
		t.Error("setters must not modify the receiver's original")
	}
}

func TestMaterialColor(t *testing.T) {
	m := NewMaterial(render.RGB(1, 0, 0))
	if got := m.Color(0.5, 0.5); got != render.RGB(1, 0, 0) {
		t.Errorf("untextured color = %v", got)
	}

	tex := render.NewCheckerTexture(2, 2, 1, render.White, render.Black)
	m = m.WithTexture(tex)
	if got := m.Color(0.1, 0.1); got != render.White {
		t.Errorf("textured (0.1,0.1) = %v, want white", got)
	}
	if got := m.Color(0.9, 0.1); got != render.Black {
		t.Errorf("textured (0.9,0.1) = %v, want black", got)
	}
}
