// Package render provides colors, textures, the framebuffer and the camera
// used by the sundial ray tracer.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// Sampler returns a color for a texture coordinate.
type Sampler interface {
	Sample(u, v float64) Color
}

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Checker placeholder used when a texture cannot be loaded.
const (
	placeholderSize = 64
	placeholderCell = 8
)

var (
	placeholderLight = Color{0.8, 0.8, 0.8}
	placeholderDark  = Color{0.6, 0.6, 0.6}
)

// Texture holds a 2D image for texture mapping. Row 0 is the top of the
// image and v = 0 samples it. Coordinates outside [0,1] clamp to the edge.
type Texture struct {
	Width      int
	Height     int
	Pixels     []Color // Row-major pixel data
	FilterMode FilterMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]Color, width*height),
		FilterMode: FilterNearest,
	}
}

// LoadTexture loads a texture from an image file.
func LoadTexture(path string) (*Texture, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	return TextureFromImage(img), nil
}

// LoadTextureOrChecker loads a texture, falling back to a grey checkerboard
// when the file is missing or cannot be decoded.
func LoadTextureOrChecker(path string) *Texture {
	tex, err := LoadTexture(path)
	if err != nil {
		log.Warn("using placeholder texture", "path", path, "err", err)
		return NewPlaceholderTexture()
	}
	return tex
}

// NewPlaceholderTexture returns the 64x64 grey checkerboard used for
// missing assets.
func NewPlaceholderTexture() *Texture {
	return NewCheckerTexture(placeholderSize, placeholderSize, placeholderCell, placeholderLight, placeholderDark)
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	src := imaging.Clone(img)
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()

	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			i := src.PixOffset(x, y)
			tex.SetPixel(x, y, RGB8(src.Pix[i], src.Pix[i+1], src.Pix[i+2]))
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			cx := x / checkSize
			cy := y / checkSize
			if (cx+cy)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample samples the texture at UV coordinates (0-1 range).
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Black
	}
	u = clampCoord(u)
	v = clampCoord(v)

	switch t.FilterMode {
	case FilterBilinear:
		return t.sampleBilinear(u, v)
	default:
		return t.sampleNearest(u, v)
	}
}

func clampCoord(coord float64) float64 {
	if math.IsNaN(coord) {
		return 0
	}
	return math.Max(0, math.Min(1, coord))
}

func (t *Texture) sampleNearest(u, v float64) Color {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.GetPixel(x, y)
}

func (t *Texture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x0 = clampPixel(x0, t.Width)
	x1 = clampPixel(x1, t.Width)
	y0 = clampPixel(y0, t.Height)
	y1 = clampPixel(y1, t.Height)

	top := t.GetPixel(x0, y0).Lerp(t.GetPixel(x1, y0), tx)
	bot := t.GetPixel(x0, y1).Lerp(t.GetPixel(x1, y1), tx)
	return top.Lerp(bot, ty)
}

func clampPixel(x, size int) int {
	return max(0, min(x, size-1))
}
