package scene

import (
	"path/filepath"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/models"
	"github.com/taigrr/sundial/pkg/render"
)

// DioramaOptions configures the demo scene.
type DioramaOptions struct {
	// AssetDir holds the block textures. Empty means untextured albedo.
	AssetDir string
	// SkyboxDir holds cube map faces. Empty means the procedural sky.
	SkyboxDir string
	// GroundRadius is the half width of the grass plane in blocks.
	GroundRadius int
	// MeshPath is an optional glTF model placed beside the cabin. A path
	// that fails to load is replaced by a pyramid.
	MeshPath  string
	MeshScale float64
}

// DefaultDioramaOptions returns the options used by the CLI.
func DefaultDioramaOptions() DioramaOptions {
	return DioramaOptions{GroundRadius: 15, MeshScale: 1.5}
}

var (
	dayFaces   = [6]string{"side.png", "side.png", "top.png", "bottom.png", "side.png", "side.png"}
	nightFaces = [6]string{"side_night.png", "side_night.png", "top_night.png", "bottom_night.png", "side_night.png", "side_night.png"}
)

// Cabin footprint.
const (
	cabinWidth  = 7
	cabinDepth  = 9
	cabinHeight = 5
	roofLevels  = 3
)

type diorama struct {
	s        *Scene
	opts     DioramaOptions
	textures map[string]render.Sampler
}

// Diorama builds the demo scene: a log cabin on a grass plane with a
// pond, a wood pile, trees, a stone path and two lanterns.
func Diorama(opts DioramaOptions) *Scene {
	d := &diorama{s: New(), opts: opts, textures: make(map[string]render.Sampler)}
	if opts.SkyboxDir != "" {
		d.s.Sky.Day = LoadCubemap(opts.SkyboxDir, dayFaces)
		d.s.Sky.Night = LoadCubemap(opts.SkyboxDir, nightFaces)
	}

	d.ground()
	d.cabin()
	d.woodPile()
	d.trees()
	d.stonePath()
	d.lanterns()
	if opts.MeshPath != "" {
		d.statue()
	}
	return d.s
}

// textured attaches the named texture when an asset directory is set.
func (d *diorama) textured(m Material, name string) Material {
	if d.opts.AssetDir == "" {
		return m
	}
	tex, ok := d.textures[name]
	if !ok {
		tex = render.LoadTextureOrChecker(filepath.Join(d.opts.AssetDir, name))
		d.textures[name] = tex
	}
	return m.WithTexture(tex)
}

func (d *diorama) block(x, y, z float64, m Material) {
	d.s.AddBox(NewBox(math3d.V3(x, y, z), 1, m))
}

func inPond(x, z int) bool {
	return x >= -7 && x <= -3 && z >= -6 && z <= -3
}

func (d *diorama) ground() {
	top := d.textured(NewMaterial(render.RGB(0.3, 0.7, 0.3)), "grass.png")
	side := d.textured(NewMaterial(render.RGB(0.5, 0.6, 0.4)), "grass.png")
	bottom := d.textured(NewMaterial(render.RGB(0.4, 0.3, 0.2)), "grass.png")
	water := NewMaterial(render.RGB(0.2, 0.4, 0.6)).
		WithReflectivity(0.3).
		WithTransparency(0.5, 1.33).
		WithSpecular(0.9, 128)

	r := d.opts.GroundRadius
	for x := -r; x < r; x++ {
		for z := -r; z < r; z++ {
			if inPond(x, z) {
				d.block(float64(x), -0.5, float64(z), water)
				continue
			}
			d.s.AddBox(NewMultiMaterialBox(math3d.V3(float64(x), -0.5, float64(z)), 1, top, side, bottom))
		}
	}
}

func (d *diorama) cabin() {
	wall := d.textured(NewMaterial(render.RGB(0.7, 0.5, 0.3)).WithSpecular(0.1, 16), "wall.png")
	stone := d.textured(NewMaterial(render.RGB(0.5, 0.5, 0.5)).WithSpecular(0.3, 32), "stone.png")
	wood := d.textured(NewMaterial(render.RGB(0.4, 0.3, 0.2)).WithSpecular(0.2, 24), "log.png")
	glass := NewMaterial(render.RGB(0.8, 0.9, 1.0)).
		WithTransparency(0.7, 1.5).
		WithReflectivity(0.1).
		WithSpecular(0.8, 64)

	// Foundation
	for x := range cabinWidth {
		for z := range cabinDepth {
			d.block(float64(x), 0, float64(z), stone)
		}
	}

	back := float64(cabinDepth - 1)
	right := float64(cabinWidth - 1)
	for y := 1; y < cabinHeight; y++ {
		fy := float64(y)
		windowRow := y >= 2 && y <= 3
		for x := range cabinWidth {
			fx := float64(x)
			// Front wall with a door opening
			if !(y < 3 && x >= 2 && x <= 4) {
				d.block(fx, fy, 0, wall)
			}
			if windowRow && (x == 2 || x == 4) {
				d.block(fx, fy, back, glass)
			} else {
				d.block(fx, fy, back, wall)
			}
		}
		for z := 1; z < cabinDepth-1; z++ {
			fz := float64(z)
			m := wall
			if windowRow && z == 4 {
				m = glass
			}
			d.block(0, fy, fz, m)
			d.block(right, fy, fz, m)
		}
	}

	// Stepped roof ring
	for level := range roofLevels {
		y := float64(cabinHeight + level)
		for x := -level; x < cabinWidth+level; x++ {
			for z := -level; z < cabinDepth+level; z++ {
				if x >= 0 && x < cabinWidth && z >= 0 && z < cabinDepth {
					continue
				}
				d.block(float64(x), y, float64(z), stone)
			}
		}
	}

	// Door
	for y := range 3 {
		for x := 2; x < 5; x++ {
			d.block(float64(x), float64(y)+1, -0.1, wood)
		}
	}

	// Chimney
	cz := float64(cabinDepth - 2)
	for y := cabinHeight; y < cabinHeight+4; y++ {
		d.block(1, float64(y), cz, stone)
		d.block(2, float64(y), cz, stone)
	}
}

func (d *diorama) woodPile() {
	wood := d.textured(NewMaterial(render.RGB(0.4, 0.3, 0.2)), "log.png")
	const px, pz = 8.0, 2.0
	for i := range 3 {
		for j := range 3 {
			d.block(px+float64(i), 0.5, pz+float64(j), wood)
		}
	}
	for i := range 2 {
		for j := range 2 {
			d.block(px+4+float64(i), 0.5, pz+float64(j), wood)
			d.block(px+4+float64(i), 1.5, pz+float64(j), wood)
		}
	}
}

func (d *diorama) trees() {
	trunk := d.textured(NewMaterial(render.RGB(0.4, 0.3, 0.2)), "log.png")
	leaves := d.textured(NewMaterial(render.RGB(0.3, 0.5, 0.2)), "grass.png")

	positions := [][2]float64{{-8, -8}, {10, -6}, {-6, 10}, {12, 8}, {-12, 4}}
	for _, p := range positions {
		x, z := p[0], p[1]
		for y := range 4 {
			d.block(x, float64(y), z, trunk)
		}
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if dx*dx+dz*dz > 4 {
					continue
				}
				for dy := 3; dy < 6; dy++ {
					d.block(x+float64(dx), float64(dy), z+float64(dz), leaves)
				}
			}
		}
	}
}

func (d *diorama) stonePath() {
	stone := d.textured(NewMaterial(render.RGB(0.6, 0.6, 0.6)), "stone.png")
	for step := 1; step < 8; step++ {
		d.block(3, 0, -float64(step), stone)
		d.block(4, 0, -float64(step), stone)
	}
}

func (d *diorama) lanterns() {
	glow := render.RGB(1, 0.8, 0.5)
	post := NewMaterial(render.RGB(0.1, 0.1, 0.1)).WithEmissive(glow)
	for _, x := range []float64{1.5, 5.5} {
		d.s.AddBox(NewBox(math3d.V3(x, 0.9, -1.5), 0.3, post))
		d.s.AddPointLight(PointLight{
			Position:  math3d.V3(x, 1.4, -1.5),
			Color:     glow,
			Intensity: 1.5,
			Radius:    8,
		})
	}
}

func (d *diorama) statue() {
	model := models.LoadMeshOrPyramid(d.opts.MeshPath)
	albedo := render.RGB(0.8, 0.75, 0.7)
	if rgba, ok := model.BaseColor(); ok {
		albedo = render.RGB(rgba[0], rgba[1], rgba[2])
	}
	// Scale about the footprint center and stand the model on the ground.
	s := d.opts.MeshScale
	c := model.Center()
	c.Y = model.BoundsMin.Y
	model.Transform(math3d.Compose(c.Scale(-s), 0, math3d.V3(s, s, s)))

	mat := NewMaterial(albedo).WithSpecular(0.5, 64).WithReflectivity(0.15)
	mesh := NewTriangleMeshFromModel(model, math3d.V3(-5, 0, 4), mat)
	mesh.RotateY(0.6)
	d.s.AddMesh(mesh)
}
