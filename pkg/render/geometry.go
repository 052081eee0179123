package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Vertex is a polygon corner. Vertices are values; the renderer copies them
// into its working ring and never keeps a reference.
type Vertex struct {
	Position  math3d.Vec3
	Normal    math3d.Vec3
	HasNormal bool
	Color     Color
}

// NewVertex creates a vertex without a normal.
func NewVertex(x, y, z float64, c Color) Vertex {
	return Vertex{Position: math3d.V3(x, y, z), Color: c}
}

// WithNormal returns a copy of v carrying normal n.
func (v Vertex) WithNormal(n math3d.Vec3) Vertex {
	v.Normal = n
	v.HasNormal = true
	return v
}

// Polygon is a convex, planar vertex loop. Counter-clockwise winding, seen
// from the side the normal points to, is front-facing.
//
// Normal and Centroid are derived from the first three vertices and go stale
// if Vertices is mutated; call Recompute afterwards.
type Polygon struct {
	Vertices []Vertex
	Normal   math3d.Vec3
	Centroid math3d.Vec3
	Texture  *TextureMap
}

// NewPolygon builds a polygon and derives its flat normal and centroid.
func NewPolygon(vertices ...Vertex) *Polygon {
	p := &Polygon{Vertices: vertices}
	p.Recompute()
	return p
}

// Recompute refreshes Normal and Centroid. Both are zero for fewer than three
// vertices.
func (p *Polygon) Recompute() {
	if len(p.Vertices) < 3 {
		p.Normal = math3d.Vec3{}
		p.Centroid = math3d.Vec3{}
		return
	}
	a := p.Vertices[0].Position
	b := p.Vertices[1].Position
	c := p.Vertices[2].Position
	p.Normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
	p.Centroid = math3d.Centroid3(a, b, c)
}

// ScreenPoint is a projected pixel position with its remapped depth.
type ScreenPoint struct {
	X, Y  int
	Depth float64
}

// ProjectedVertex is an eye-space vertex with its screen projection attached.
// It only lives in the renderer's working ring.
type ProjectedVertex struct {
	Vertex
	Screen ScreenPoint
}

func lerpVertex(a, b *ProjectedVertex, t float64) ProjectedVertex {
	return ProjectedVertex{
		Vertex: Vertex{
			Position:  a.Position.Lerp(b.Position, t),
			Normal:    a.Normal.Lerp(b.Normal, t),
			HasNormal: a.HasNormal && b.HasNormal,
			Color:     LerpColor(a.Color, b.Color, t),
		},
	}
}

// DirectionalLight describes a light at infinity. The rasterizer stores it
// for callers but does not shade with it.
type DirectionalLight struct {
	Direction math3d.Vec3
	Color     Color
}
