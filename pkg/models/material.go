package models

import (
	"image"
	"math"

	"github.com/taigrr/scanline/pkg/render"
)

// Material represents a PBR material from GLTF. Only the base color takes
// part in rendering.
type Material struct {
	Name       string
	BaseColor  [4]float64  // RGBA in 0-1 range
	Metallic   float64     // 0 = dielectric, 1 = metal
	Roughness  float64     // 0 = smooth, 1 = rough
	BaseMap    image.Image // Optional base color texture
	HasTexture bool
}

// DefaultMaterial is the glTF default: opaque white, fully metallic and
// rough.
func DefaultMaterial() Material {
	return Material{
		Name:      "default",
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
	}
}

// Color returns the base color, clamped and rounded to 8-bit channels.
func (m *Material) Color() render.Color {
	ch := func(v float64) uint8 {
		return uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	c := m.BaseColor
	return render.RGBA(ch(c[0]), ch(c[1]), ch(c[2]), ch(c[3]))
}
