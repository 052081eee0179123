package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"

	"golang.org/x/image/math/f64"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrTextureSize is returned for textures whose sides are not powers of two.
var ErrTextureSize = errors.New("texture dimensions must be powers of two")

// Sampler returns the color at an integer texel coordinate. Coordinates
// outside the image wrap around.
type Sampler interface {
	ColorAt(x, y int) Color
}

// Texture is a power-of-two ARGB image that wraps by bitmask.
type Texture struct {
	Width  int
	Height int
	Pixels []Color // Row-major pixel data

	wmask, hmask int
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }

// NewTexture creates a transparent texture.
func NewTexture(width, height int) (*Texture, error) {
	if !isPow2(width) || !isPow2(height) {
		return nil, fmt.Errorf("new texture %dx%d: %w", width, height, ErrTextureSize)
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
		wmask:  width - 1,
		hmask:  height - 1,
	}, nil
}

// LoadTexture decodes a PNG or JPEG file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return TextureFromImage(img)
}

// TextureFromImage copies an image into a texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	tex, err := NewTexture(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := range tex.Height {
		for x := range tex.Width {
			tex.Pixels[y*tex.Width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return tex, nil
}

// NewCheckerTexture creates a procedural checkerboard of size×size texels.
func NewCheckerTexture(size, checkSize int, c1, c2 Color) (*Texture, error) {
	tex, err := NewTexture(size, size)
	if err != nil {
		return nil, err
	}
	if checkSize <= 0 {
		checkSize = 1
	}
	for y := range size {
		for x := range size {
			c := c2
			if (x/checkSize+y/checkSize)%2 == 0 {
				c = c1
			}
			tex.Pixels[y*size+x] = c
		}
	}
	return tex, nil
}

// SetPixel sets a texel, wrapping the coordinates.
func (t *Texture) SetPixel(x, y int, c Color) {
	t.Pixels[(y&t.hmask)*t.Width+(x&t.wmask)] = c
}

// ColorAt implements Sampler.
func (t *Texture) ColorAt(x, y int) Color {
	return t.Pixels[(y&t.hmask)*t.Width+(x&t.wmask)]
}

// TextureMap maps a polygon's plane onto a sampler. Three reference points
// in model space are paired with three texel coordinates; every point of
// the plane then maps affinely to a texel.
type TextureMap struct {
	Sampler Sampler

	origin math3d.Vec3 // O
	u, v   math3d.Vec3 // U'/|U'|², V'/|V'|²
	normal math3d.Vec3 // U' × V'
	pixel  f64.Aff3    // (s, t) → texel
}

// NewTextureMap derives the mapping from three model-space points and their
// texel coordinates. Degenerate bases fall back to unit axes.
func NewTextureMap(s Sampler, p0, p1, p2 math3d.Vec3, t0, t1, t2 math3d.Vec2) *TextureMap {
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	k := 0.0
	if l := e1.LenSq(); l != 0 {
		k = e2.Dot(e1) / l
	}
	uAxis := e1
	if uAxis.LenSq() == 0 {
		uAxis = math3d.AxisX()
	}
	vAxis := e2.Sub(e1.Scale(k))
	if vAxis.LenSq() == 0 {
		vAxis = math3d.AxisY()
	}

	pu := t1.Sub(t0)
	pv := t2.Sub(t0).Sub(pu.Scale(k))
	if pu.Dot(pu) == 0 {
		pu = math3d.V2(1, 0)
	}
	if pv.Dot(pv) == 0 {
		pv = math3d.V2(0, 1)
	}

	return &TextureMap{
		Sampler: s,
		origin:  p0,
		u:       uAxis.Scale(1 / uAxis.LenSq()),
		v:       vAxis.Scale(1 / vAxis.LenSq()),
		normal:  uAxis.Cross(vAxis),
		pixel:   f64.Aff3{pu.X, pv.X, t0.X, pu.Y, pv.Y, t0.Y},
	}
}

// PlaneCoords returns the (s, t) coordinates of a model-space point in the
// map's basis.
func (m *TextureMap) PlaneCoords(p math3d.Vec3) (s, t float64) {
	d := p.Sub(m.origin)
	return d.Dot(m.u), d.Dot(m.v)
}

// Texel maps plane coordinates to an integer texel, rounding down.
func (m *TextureMap) Texel(s, t float64) (x, y int) {
	a := &m.pixel
	return int(math.Floor(a[0]*s + a[1]*t + a[2])), int(math.Floor(a[3]*s + a[4]*t + a[5]))
}

// ColorAtPoint samples the texture at a model-space point of the plane.
func (m *TextureMap) ColorAtPoint(p math3d.Vec3) Color {
	x, y := m.Texel(m.PlaneCoords(p))
	return m.Sampler.ColorAt(x, y)
}

// planeSampler samples a TextureMap per screen pixel. The model-space ray
// through pixel (x, y) is C + λ·D(x, y), with D linear in x and y, so the
// dot products needed to intersect it with the texture plane are linear too.
type planeSampler struct {
	m *TextureMap

	num        float64    // (O - C)·N
	dn, du, dv [3]float64 // D·N, D·U, D·V as x, y, constant coefficients
	cu, cv     float64    // (C - O)·U, (C - O)·V
}

// prepare sets up the sampler for the current model-to-eye transform. camera
// is the eye origin in model space; dx, dy and d0 are the model-space ray
// direction coefficients.
func (ps *planeSampler) prepare(m *TextureMap, camera, dx, dy, d0 math3d.Vec3) {
	ps.m = m
	rel := camera.Sub(m.origin)
	ps.num = -rel.Dot(m.normal)
	ps.cu = rel.Dot(m.u)
	ps.cv = rel.Dot(m.v)
	coeffs := func(axis math3d.Vec3) [3]float64 {
		return [3]float64{dx.Dot(axis), dy.Dot(axis), d0.Dot(axis)}
	}
	ps.dn = coeffs(m.normal)
	ps.du = coeffs(m.u)
	ps.dv = coeffs(m.v)
}

func (ps *planeSampler) colorAt(x, y int) Color {
	fx, fy := float64(x), float64(y)
	lambda := ps.num / (ps.dn[0]*fx + ps.dn[1]*fy + ps.dn[2])
	s := ps.cu + lambda*(ps.du[0]*fx+ps.du[1]*fy+ps.du[2])
	t := ps.cv + lambda*(ps.dv[0]*fx+ps.dv[1]*fy+ps.dv[2])
	tx, ty := ps.m.Texel(s, t)
	return ps.m.Sampler.ColorAt(tx, ty)
}
