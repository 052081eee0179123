package render

import (
	"image"
	"math"

	"github.com/taigrr/scanline/pkg/fixed"
)

// blend mixes two colors per channel with fixed-point weights l (for c0)
// and h (for c1), truncating each channel.
func blend(c0, c1 Color, l, h fixed.Fixed) Color {
	ch := func(shift uint) int32 {
		a := int32(c0>>shift) & 0xff
		b := int32(c1>>shift) & 0xff
		return l.Scale(a) + h.Scale(b)
	}
	return ARGB(ch(24), ch(16), ch(8), ch(0))
}

// scan walks the ring's edges into the row accumulator and fills the
// touched rows.
func (r *Renderer) scan(p *Polygon) {
	ring := &r.ctx.ring
	n := ring.len()

	minY, maxY := math.MaxInt, math.MinInt
	for i := range n {
		lo, hi := r.walkEdge(ring.at(i), ring.at((i+1)%n))
		minY = min(minY, lo)
		maxY = max(maxY, hi)
	}
	if minY > maxY {
		return
	}

	var sample *planeSampler
	if p.Texture != nil {
		sample = &r.tex
	}
	touched := image.Rectangle{}
	for y := minY; y <= maxY; y++ {
		s := &r.ctx.rows[y-r.top]
		if s.empty() {
			continue
		}
		x0, x1 := r.fillRow(y, s, p, sample)
		if x0 <= x1 {
			touched = touched.Union(image.Rect(x0, y, x1+1, y+1))
		}
		s.reset()
	}
	r.fb.markDirty(touched)
}

// walkEdge touches every viewport row crossed by edge a-b and returns the
// range of rows touched (empty when lo > hi).
func (r *Renderer) walkEdge(a, b *ProjectedVertex) (lo, hi int) {
	if a.Screen.Y > b.Screen.Y {
		a, b = b, a
	}
	ax, ay := a.Screen.X, a.Screen.Y
	bx, by := b.Screen.X, b.Screen.Y
	top, bottom := r.top, r.top+r.height-1

	if ay == by {
		if ay < top || ay > bottom {
			return math.MaxInt, math.MinInt
		}
		row := &r.ctx.rows[ay-top]
		row.touch(ax, a.Screen.Depth, a.Color)
		row.touch(bx, b.Screen.Depth, b.Color)
		return ay, ay
	}

	y0, y1 := max(ay, top), min(by, bottom)
	if y0 > y1 {
		return math.MaxInt, math.MinInt
	}

	dy := by - ay
	slope := fixed.FromRatio(bx-ax, dy)
	x := fixed.FromInt(ax) + slope.MulInt(y0-ay)
	lenSq := float64((bx-ax)*(bx-ax) + dy*dy)
	d0, d1 := a.Screen.Depth, b.Screen.Depth

	for y := y0; y <= y1; y++ {
		xi := x.Round()
		ex, ey := float64(xi-ax), float64(y-ay)
		t := min(math.Sqrt((ex*ex+ey*ey)/lenSq), 1)
		w := fixed.FromFloat(t)
		r.ctx.rows[y-top].touch(xi, d0+(d1-d0)*t, blend(a.Color, b.Color, fixed.One-w, w))
		x += slope
	}
	return y0, y1
}

// fillRow draws the span s on row y and returns the viewport columns it
// covered (empty when x0 > x1).
func (r *Renderer) fillRow(y int, s *span, p *Polygon, sample *planeSampler) (x0, x1 int) {
	n := s.xMax - s.xMin
	invN := fixed.FromRatio(1, n)
	step := 0.0
	if n > 0 {
		step = (s.dMax - s.dMin) / float64(n)
	}

	x0 = max(s.xMin, r.left)
	x1 = min(s.xMax, r.left+r.width-1)
	fb := r.fb
	base := (y-r.top)*r.width - r.left
	probe := r.probe

	for x := x0; x <= x1; x++ {
		i := x - s.xMin
		depth := s.dMin + step*float64(i)
		idx := base + x
		if !r.proj.IsVisible(depth, fb.Depth[idx]) {
			continue
		}

		var c Color
		switch {
		case sample != nil:
			c = sample.colorAt(x, y)
		case n == 0:
			c = s.cMin
		default:
			c = blend(s.cMin, s.cMax, invN.MulInt(n-i), invN.MulInt(i))
		}

		fb.Depth[idx] = depth
		fb.Pixels[idx] = c
		r.stats.Pixels++
		if probe != nil && probe.x == x && probe.y == y {
			probe.record(depth, c, p)
		}
	}
	return x0, x1
}
