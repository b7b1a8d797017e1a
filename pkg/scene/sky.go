package scene

import (
	"math"
	"path/filepath"

	"github.com/taigrr/sundial/pkg/math3d"
	"github.com/taigrr/sundial/pkg/render"
)

// Cube map faces, in loading order.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Celestial disk sizes and the star field threshold.
var (
	sunDiskCos  = math.Cos(15 * math.Pi / 180)
	sunGlowCos  = math.Cos(30 * math.Pi / 180)
	moonDiskCos = math.Cos(8 * math.Pi / 180)
	moonGlowCos = math.Cos(12 * math.Pi / 180)
)

const (
	starThreshold = 0.995
	starElevation = 0.3
	starCells     = 512
)

// Cubemap holds six face samplers ordered +X, -X, +Y, -Y, +Z, -Z.
type Cubemap [6]render.Sampler

// LoadCubemap loads six face images from dir with bilinear filtering.
// Missing files are replaced by the checker placeholder.
func LoadCubemap(dir string, names [6]string) *Cubemap {
	var cm Cubemap
	for i, name := range names {
		tex := render.LoadTextureOrChecker(filepath.Join(dir, name))
		tex.FilterMode = render.FilterBilinear
		cm[i] = tex
	}
	return &cm
}

// Sample returns the face color seen along the unit direction d.
func (cm *Cubemap) Sample(d math3d.Vec3) render.Color {
	face, u, v := cubeFaceUV(d)
	if cm[face] == nil {
		return render.Black
	}
	return cm[face].Sample(u, v)
}

func cubeFaceUV(d math3d.Vec3) (face int, u, v float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			return FacePosX, (-d.Z/ax + 1) * 0.5, (-d.Y/ax + 1) * 0.5
		}
		return FaceNegX, (d.Z/ax + 1) * 0.5, (-d.Y/ax + 1) * 0.5
	case ay >= ax && ay >= az:
		if d.Y > 0 {
			return FacePosY, (d.X/ay + 1) * 0.5, (d.Z/ay + 1) * 0.5
		}
		return FaceNegY, (d.X/ay + 1) * 0.5, (-d.Z/ay + 1) * 0.5
	default:
		if d.Z > 0 {
			return FacePosZ, (d.X/az + 1) * 0.5, (-d.Y/az + 1) * 0.5
		}
		return FaceNegZ, (-d.X/az + 1) * 0.5, (-d.Y/az + 1) * 0.5
	}
}

// Sky is the background seen by rays that escape the scene. Time of day
// runs from 0 (full day) to 1 (full night).
type Sky struct {
	DayHorizon   render.Color
	DayZenith    render.Color
	NightHorizon render.Color
	NightZenith  render.Color
	Stars        bool

	// When both are set the cube maps replace the gradients.
	Day   *Cubemap
	Night *Cubemap
}

// NewSky returns the default procedural sky.
func NewSky() Sky {
	return Sky{
		DayHorizon:   render.RGB(0.8, 0.9, 1.0),
		DayZenith:    render.RGB(0.4, 0.6, 0.95),
		NightHorizon: render.RGB(0.1, 0.1, 0.2),
		NightZenith:  render.RGB(0.02, 0.02, 0.1),
		Stars:        true,
	}
}

// UsesCubemap reports whether the sky samples cube map textures.
func (s Sky) UsesCubemap() bool {
	return s.Day != nil && s.Night != nil
}

// Sample returns the sky color along dir. toSun points at the sun; the
// moon sits opposite it. The result is clamped to [0,1].
func (s Sky) Sample(dir math3d.Vec3, tod float64, toSun math3d.Vec3) render.Color {
	d := dir.Normalize()
	if d.IsZero() {
		return s.DayHorizon.Lerp(s.NightHorizon, tod).Clamp()
	}

	var base render.Color
	if s.UsesCubemap() {
		base = s.Day.Sample(d).Lerp(s.Night.Sample(d), tod)
	} else {
		base = s.gradient(d, tod)
	}

	sunDir := toSun.Normalize()
	cosSun := clampUnit(d.Dot(sunDir))
	cosMoon := clampUnit(d.Dot(sunDir.Negate()))

	if tod < 0.5 {
		fade := 1 - 2*tod
		switch {
		case cosSun >= sunDiskCos:
			t := (cosSun - sunDiskCos) / (1 - sunDiskCos)
			base = base.Add(render.RGB(1, 1, 0.95).Scale(5 * math.Pow(t, 0.3) * fade))
		case cosSun >= sunGlowCos:
			t := (cosSun - sunGlowCos) / (sunDiskCos - sunGlowCos)
			base = base.Add(render.RGB(1, 0.9, 0.7).Scale(2 * math.Pow(t, 1.5) * fade))
		}
	}

	if tod > 0.5 {
		fade := (tod - 0.5) * 2
		switch {
		case cosMoon >= moonDiskCos:
			t := (cosMoon - moonDiskCos) / (1 - moonDiskCos)
			base = base.Add(render.RGB(0.9, 0.9, 1).Scale(math.Pow(t, 0.5) * fade))
		case cosMoon >= moonGlowCos:
			t := (cosMoon - moonGlowCos) / (moonDiskCos - moonGlowCos)
			base = base.Add(render.RGB(0.7, 0.7, 0.9).Scale(0.3 * t * t * fade))
		}
	}

	return base.Clamp()
}

func (s Sky) gradient(d math3d.Vec3, tod float64) render.Color {
	t := math.Max(d.Y, 0)
	day := s.DayHorizon.Lerp(s.DayZenith, t)
	night := s.NightHorizon.Lerp(s.NightZenith, t)
	if s.Stars && t > starElevation {
		night = night.Add(render.White.Scale(0.8 * starBrightness(d)))
	}
	return day.Lerp(night, tod)
}

// starBrightness hashes the quantized direction into a sparse star field.
func starBrightness(d math3d.Vec3) float64 {
	x := uint32(int32(math.Floor(d.X * starCells)))
	y := uint32(int32(math.Floor(d.Y * starCells)))
	z := uint32(int32(math.Floor(d.Z * starCells)))

	h := x*73856093 ^ y*19349663 ^ z*83492791
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15

	noise := float64(h%10000) / 10000
	if noise <= starThreshold {
		return 0
	}
	return (noise - starThreshold) / (1 - starThreshold)
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
