// Package render provides software polygon rasterization for scanline.
//
// A Renderer owns a color and depth framebuffer for one viewport. Each frame
// the caller cleans it, sets up the model-to-eye transform, submits polygons
// one at a time with Render and finally commits the dirty region to a
// Surface. Rendering never fails: degenerate input draws nothing or draws
// something odd, but it does not panic or return errors.
//
// A Renderer is not safe for concurrent use.
package render

import (
	"log/slog"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/transform"
)

// Stats counts what happened to the polygons submitted since the last Clean.
type Stats struct {
	Submitted int // Render calls
	Culled    int // Back-facing or degenerate
	Clipped   int // Entirely outside the near/far range
	Drawn     int // Reached the scanline stage
	Pixels    int // Pixels that passed the z-test
}

// Renderer rasterizes polygons into a Framebuffer.
type Renderer struct {
	left, top     int
	width, height int

	fb    *Framebuffer
	proj  *Projection
	xf    *transform.Affine
	ctx   *Context
	log   *slog.Logger
	probe *hitProbe
	light DirectionalLight
	stats Stats

	tex planeSampler
}

// NewRenderer creates a renderer for a width×height viewport.
func NewRenderer(width, height int, opts ...Option) *Renderer {
	o := options{poolSize: defaultPoolSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	if o.ctx == nil {
		o.ctx = NewContext(o.poolSize)
	}

	r := &Renderer{
		left:   o.left,
		top:    o.top,
		width:  width,
		height: height,
		fb:     NewFramebuffer(o.left, o.top, width, height),
		xf:     transform.New(),
		ctx:    o.ctx,
		log:    o.logger,
		light: DirectionalLight{
			Direction: math3d.V3(0.5, 1, 0.3).Normalize(),
			Color:     ColorWhite,
		},
	}
	r.ctx.ring.reserve(o.poolSize)
	r.ctx.ensureRows(height)
	return r
}

// SetPerspective installs the projection. fovY is in radians; zNear and
// zFar are the eye-space z of the clip planes (zFar < zNear < 0). Render
// draws nothing until this has been called.
func (r *Renderer) SetPerspective(fovY, zNear, zFar float64) {
	r.proj = NewProjection(fovY, r.left, r.top, r.width, r.height, zNear, zFar)
	r.log.Debug("render: perspective set",
		"fov", fovY, "near", zNear, "far", zFar, "focal", r.proj.Focal())
}

// Projection returns the current projection, or nil before SetPerspective.
func (r *Renderer) Projection() *Projection { return r.proj }

// Transform returns the model-to-eye transform applied by Render. Callers
// reset it each frame and may push and pop it between polygons.
func (r *Renderer) Transform() *transform.Affine { return r.xf }

// Framebuffer returns the color and depth buffers.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Stats returns the counters accumulated since the last Clean.
func (r *Renderer) Stats() Stats { return r.stats }

// SetLight stores a directional light for callers that shade vertices
// themselves.
func (r *Renderer) SetLight(l DirectionalLight) { r.light = l }

// Light returns the stored light.
func (r *Renderer) Light() DirectionalLight { return r.light }

// Clean starts a new frame: colors become 0, depths +Inf, the dirty
// rectangle empty and the stats zero. A registered hit probe stays
// registered but forgets anything recorded in the previous frame.
func (r *Renderer) Clean() {
	r.fb.Clean()
	r.stats = Stats{}
	if r.probe != nil {
		r.probe.reset()
	}
}

// HitTest registers a one-shot probe at screen pixel (x, y). The handler is
// notified at the next Commit and then forgotten. A nil handler cancels the
// probe.
func (r *Renderer) HitTest(x, y int, h HitHandler) {
	if h == nil {
		r.probe = nil
		return
	}
	r.probe = &hitProbe{x: x, y: y, handler: h}
}

// Commit blits the dirty rectangle to s, then delivers the pending hit
// probe, if any. s may be nil to only deliver the probe.
func (r *Renderer) Commit(s Surface) {
	if dirty := r.fb.Dirty(); s != nil && !dirty.Empty() {
		s.Blit(r.fb, dirty)
	}
	if p := r.probe; p != nil {
		r.probe = nil
		p.deliver()
	}
}

// Render draws one polygon through the current transform and projection.
func (r *Renderer) Render(p *Polygon) {
	if r.proj == nil {
		r.log.Debug("render: polygon skipped, no perspective set")
		return
	}
	r.stats.Submitted++

	normal := r.xf.NormalTransform(p.Normal)
	centroid := r.xf.Transform(p.Centroid)
	if normal.Dot(centroid) >= 0 {
		r.stats.Culled++
		return
	}

	ring := &r.ctx.ring
	capBefore := len(ring.verts)
	ring.reserve(len(p.Vertices))
	ring.n = len(p.Vertices)
	for i, v := range p.Vertices {
		pv := ring.at(i)
		pv.Vertex = v
		r.xf.TransformInPlace(&pv.Position)
		if v.HasNormal {
			r.xf.NormalTransformInPlace(&pv.Normal)
		}
	}

	if clipRing(ring, FarPlane(r.proj.Far())).count == 0 ||
		clipRing(ring, NearPlane(r.proj.Near())).count == 0 {
		r.stats.Clipped++
		return
	}
	if c := len(ring.verts); c != capBefore {
		r.log.Debug("render: vertex ring grew", "from", capBefore, "to", c)
	}

	for i := range ring.len() {
		r.proj.projectVertex(ring.at(i))
	}

	if p.Texture != nil {
		r.prepareTexture(p.Texture)
	}
	if len(r.ctx.rows) != r.height {
		if r.ctx.ensureRows(r.height) {
			r.log.Debug("render: scanline rows grew", "rows", r.height)
		}
	}
	r.stats.Drawn++
	r.scan(p)
}

// prepareTexture expresses the ray through each pixel in model space for
// the plane sampler.
func (r *Renderer) prepareTexture(m *TextureMap) {
	inv := r.xf.Inverse()
	f := r.proj.Focal()
	c := r.proj.Center()
	camera := r.xf.InverseTransform(math3d.Vec3{})
	dx := inv.MulVec3Dir(math3d.V3(1/f, 0, 0))
	dy := inv.MulVec3Dir(math3d.V3(0, -1/f, 0))
	d0 := inv.MulVec3Dir(math3d.V3(-c.X/f, c.Y/f, -1))
	r.tex.prepare(m, camera, dx, dy, d0)
}
