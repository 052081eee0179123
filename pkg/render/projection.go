package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Projection maps eye space (camera at the origin looking down -Z) to
// screen pixels and a remapped depth in [0, 1] between the clip planes.
// It is immutable once built.
type Projection struct {
	fovY           float64
	left, top      int
	width, height  int
	near, far      float64
	focal, cx, cy  float64
	depthA, depthB float64
	invFocal       float64
}

// NewProjection builds a perspective projection. fovY is the vertical field
// of view in radians. near and far are the eye-space z of the clip planes,
// so far < near < 0.
func NewProjection(fovY float64, left, top, width, height int, near, far float64) *Projection {
	p := &Projection{
		fovY:   fovY,
		left:   left,
		top:    top,
		width:  width,
		height: height,
		near:   near,
		far:    far,
	}
	p.focal = float64(height) / (2 * math.Tan(fovY/2))
	p.invFocal = 1 / p.focal
	p.cx = float64(left) + float64(width)/2
	p.cy = float64(top) + float64(height)/2

	// depth = a + b/z with depth(near) = 0 and depth(far) = 1.
	p.depthB = 1 / (1/far - 1/near)
	p.depthA = -p.depthB / near
	return p
}

// Project maps an eye-space point to screen coordinates and depth.
// A point at z == 0 yields infinities or NaN.
func (p *Projection) Project(e math3d.Vec3) (math3d.Vec2, float64) {
	w := -1 / e.Z
	return math3d.Vec2{
		X: p.cx + p.focal*e.X*w,
		Y: p.cy - p.focal*e.Y*w,
	}, p.depthA + p.depthB/e.Z
}

// Unproject returns the eye-space point at depth z that projects to s.
func (p *Projection) Unproject(s math3d.Vec2, z float64) math3d.Vec3 {
	return math3d.Vec3{
		X: (s.X - p.cx) * -z * p.invFocal,
		Y: -(s.Y - p.cy) * -z * p.invFocal,
		Z: z,
	}
}

// Ray returns the eye-space direction through screen point s, scaled so its
// z component is -1.
func (p *Projection) Ray(s math3d.Vec2) math3d.Vec3 {
	return p.Unproject(s, -1)
}

// DepthToZ inverts the depth remap.
func (p *Projection) DepthToZ(depth float64) float64 {
	return p.depthB / (depth - p.depthA)
}

// IsVisible reports whether depth passes the z-test against the stored
// buffer value. Ties fail, so the first writer keeps the pixel.
func (p *Projection) IsVisible(depth, zbuf float64) bool {
	return depth >= 0 && depth < zbuf
}

// screenLimit bounds projected coordinates so edge slopes stay inside the
// 16.16 range.
const screenLimit = 1 << 14

// projectVertex fills v.Screen, rounding to the nearest pixel.
func (p *Projection) projectVertex(v *ProjectedVertex) {
	s, d := p.Project(v.Position)
	v.Screen = ScreenPoint{
		X:     toPixel(s.X),
		Y:     toPixel(s.Y),
		Depth: d,
	}
}

func toPixel(f float64) int {
	return int(math.Floor(math.Max(-screenLimit, math.Min(screenLimit, f)) + 0.5))
}

// Near returns the eye-space z of the near plane.
func (p *Projection) Near() float64 { return p.near }

// Far returns the eye-space z of the far plane.
func (p *Projection) Far() float64 { return p.far }

// FovY returns the vertical field of view in radians.
func (p *Projection) FovY() float64 { return p.fovY }

// Focal returns the focal length in pixels.
func (p *Projection) Focal() float64 { return p.focal }

// Center returns the screen position of the optical axis.
func (p *Projection) Center() math3d.Vec2 { return math3d.Vec2{X: p.cx, Y: p.cy} }
