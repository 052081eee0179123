package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/transform"
)

// DefaultAmbient is the light level of faces turned away from the light.
const DefaultAmbient = 0.25

// Model is a mesh converted to render polygons. It keeps the unlit vertex
// colors and normals so the polygons can be relit every frame.
type Model struct {
	Polygons []*render.Polygon
	Ambient  float64

	base    []render.Color // 3 per polygon
	normals []math3d.Vec3  // 3 per polygon
}

type buildOptions struct {
	color   render.Color
	texture *render.Texture
}

// BuildOption configures Mesh.Build.
type BuildOption func(*buildOptions)

// WithColor sets the color of faces without a material.
func WithColor(c render.Color) BuildOption {
	return func(o *buildOptions) { o.color = c }
}

// WithTexture maps t onto every face using the vertex UVs.
func WithTexture(t *render.Texture) BuildOption {
	return func(o *buildOptions) { o.texture = t }
}

// Build creates one polygon per face. Face colors come from the material
// base color, or the WithColor color for faces without one.
func (m *Mesh) Build(opts ...BuildOption) *Model {
	o := buildOptions{color: render.RGB(200, 200, 200)}
	for _, opt := range opts {
		opt(&o)
	}

	mdl := &Model{
		Polygons: make([]*render.Polygon, 0, len(m.Faces)),
		Ambient:  DefaultAmbient,
		base:     make([]render.Color, 0, 3*len(m.Faces)),
		normals:  make([]math3d.Vec3, 0, 3*len(m.Faces)),
	}

	for _, f := range m.Faces {
		c := o.color
		if mat := m.GetMaterial(f.Material); mat != nil {
			c = mat.Color()
		}

		var verts [3]render.Vertex
		for j, vi := range f.V {
			mv := m.Vertices[vi]
			p := mv.Position
			verts[j] = render.NewVertex(p.X, p.Y, p.Z, c).WithNormal(mv.Normal)
			mdl.base = append(mdl.base, c)
			mdl.normals = append(mdl.normals, mv.Normal)
		}

		poly := render.NewPolygon(verts[:]...)
		if o.texture != nil {
			poly.Texture = m.textureMap(f, o.texture)
		}
		mdl.Polygons = append(mdl.Polygons, poly)
	}
	return mdl
}

// textureMap pairs the face corners with their UVs scaled to texels.
func (m *Mesh) textureMap(f Face, t *render.Texture) *render.TextureMap {
	var p [3]math3d.Vec3
	var uv [3]math3d.Vec2
	for j, vi := range f.V {
		v := m.Vertices[vi]
		p[j] = v.Position
		uv[j] = math3d.V2(v.UV.X*float64(t.Width), v.UV.Y*float64(t.Height))
	}
	return render.NewTextureMap(t, p[0], p[1], p[2], uv[0], uv[1], uv[2])
}

// Light recolors every vertex with a Lambert term for l, whose direction
// points toward the light in eye space. xf is the model-to-eye transform
// the polygons will be rendered with.
func (mdl *Model) Light(l render.DirectionalLight, xf *transform.Affine) {
	dir := l.Direction.Normalize()
	i := 0
	for _, poly := range mdl.Polygons {
		for j := range poly.Vertices {
			n := xf.NormalTransform(mdl.normals[i]).Normalize()
			k := mdl.Ambient + (1-mdl.Ambient)*max(n.Dot(dir), 0)
			poly.Vertices[j].Color = Shade(mdl.base[i], l.Color, k)
			i++
		}
	}
}

// Shade modulates c by the light color and scales it by k in [0, 1]. Alpha
// is kept.
func Shade(c, light render.Color, k float64) render.Color {
	k = min(max(k, 0), 1)
	ch := func(a, b uint8) int32 {
		return int32(float64(a) * float64(b) / 255 * k)
	}
	return render.ARGB(int32(c.A()), ch(c.R(), light.R()), ch(c.G(), light.G()), ch(c.B(), light.B()))
}

// Render submits every polygon to r with its current transform.
func (mdl *Model) Render(r *render.Renderer) {
	for _, p := range mdl.Polygons {
		r.Render(p)
	}
}
