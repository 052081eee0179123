package render

import "math"

// span is the scanline accumulator for one row: the leftmost and rightmost
// edge crossings seen so far, with their depth and color.
type span struct {
	xMin, xMax int
	dMin, dMax float64
	cMin, cMax Color
}

func (s *span) reset() {
	s.xMin = math.MaxInt
	s.xMax = math.MinInt
}

func (s *span) empty() bool { return s.xMin > s.xMax }

// touch records an edge crossing; only the row extremes are kept.
func (s *span) touch(x int, depth float64, c Color) {
	if x < s.xMin {
		s.xMin, s.dMin, s.cMin = x, depth, c
	}
	if x > s.xMax {
		s.xMax, s.dMax, s.cMax = x, depth, c
	}
}

// Context holds the scratch state of the pipeline: one span per viewport row
// and the projected-vertex ring. A Context is owned by the caller and may be
// reused across renderers of any size, but never by two renders at once.
type Context struct {
	rows []span
	ring ring
}

// NewContext creates a context whose ring starts with room for poolSize
// vertices.
func NewContext(poolSize int) *Context {
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &Context{ring: newRing(poolSize)}
}

// ensureRows sizes the accumulator to h rows, all empty. It reports whether
// the row slice had to grow.
func (c *Context) ensureRows(h int) bool {
	grew := false
	if cap(c.rows) < h {
		c.rows = make([]span, h)
		grew = true
	}
	c.rows = c.rows[:h]
	for i := range c.rows {
		c.rows[i].reset()
	}
	return grew
}
