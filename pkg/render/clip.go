package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal. Points with a non-negative distance are
// inside.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// FarPlane keeps points with z >= far.
func FarPlane(far float64) Plane {
	return Plane{Normal: math3d.AxisZ(), D: -far}
}

// NearPlane keeps points with z <= near.
func NearPlane(near float64) Plane {
	return Plane{Normal: math3d.AxisZ().Negate(), D: near}
}

// ring is a growable arena of projected vertices forming a closed loop.
type ring struct {
	verts []ProjectedVertex
	dist  []float64
	n     int
}

func newRing(capacity int) ring {
	return ring{
		verts: make([]ProjectedVertex, capacity),
		dist:  make([]float64, capacity),
	}
}

// reserve makes room for at least size vertices, doubling the backing
// arrays. It reports whether they grew.
func (r *ring) reserve(size int) bool {
	c := len(r.verts)
	if size <= c {
		return false
	}
	if c == 0 {
		c = defaultPoolSize
	}
	for c < size {
		c *= 2
	}
	verts := make([]ProjectedVertex, c)
	copy(verts, r.verts[:r.n])
	r.verts = verts
	r.dist = make([]float64, c)
	return true
}

func (r *ring) len() int { return r.n }

func (r *ring) at(i int) *ProjectedVertex { return &r.verts[i] }

// insert places v at index i, shifting the tail right.
func (r *ring) insert(i int, v ProjectedVertex) {
	r.reserve(r.n + 1)
	copy(r.verts[i+1:r.n+1], r.verts[i:r.n])
	r.verts[i] = v
	r.n++
}

// remove deletes index i, shifting the tail left.
func (r *ring) remove(i int) {
	copy(r.verts[i:r.n-1], r.verts[i+1:r.n])
	r.n--
}

// clipResult describes one clip pass. enter is the first inside vertex after
// an outside one and exit the last inside vertex before an outside one, as
// indices into the ring before clipping; both are -1 when no edge crosses.
type clipResult struct {
	inside      int
	enter, exit int
	count       int
}

// clipRing clips a convex ring against one plane in place. The outside run
// is replaced by the exit and enter intersections, so the ring grows by one
// when a single vertex is outside and shrinks when three or more are.
func clipRing(r *ring, pl Plane) clipResult {
	n := r.n
	res := clipResult{enter: -1, exit: -1}
	for i := range n {
		d := pl.DistanceToPoint(r.verts[i].Position)
		r.dist[i] = d
		if d >= 0 {
			res.inside++
		}
	}
	switch res.inside {
	case 0:
		r.n = 0
		return res
	case n:
		res.count = n
		return res
	}

	in := func(i int) bool { return r.dist[i] >= 0 }
	for i := range n {
		prev, next := (i+n-1)%n, (i+1)%n
		if in(i) && !in(prev) {
			res.enter = i
		}
		if in(i) && !in(next) {
			res.exit = i
		}
	}
	before := (res.enter + n - 1) % n
	after := (res.exit + 1) % n

	dB, dE := r.dist[before], r.dist[res.enter]
	enterPt := lerpVertex(&r.verts[before], &r.verts[res.enter], dB/(dB-dE))
	dX, dA := r.dist[res.exit], r.dist[after]
	exitPt := lerpVertex(&r.verts[res.exit], &r.verts[after], dX/(dX-dA))

	if before == after {
		r.verts[before] = exitPt
		r.insert(before+1, enterPt)
		res.count = r.n
		return res
	}

	r.verts[after] = exitPt
	r.verts[before] = enterPt
	// Descending order keeps lower indices valid while removing.
	for i := n - 1; i >= 0; i-- {
		if !in(i) && i != before && i != after {
			r.remove(i)
		}
	}
	res.count = r.n
	return res
}
