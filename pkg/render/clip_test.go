package render

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

// quadRing builds the ring (-1,-1) (1,-1) (1,1) (-1,1) with the given z values.
func quadRing(capacity int, z0, z1, z2, z3 float64) *ring {
	r := newRing(capacity)
	xy := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	zs := [4]float64{z0, z1, z2, z3}
	for i := range 4 {
		r.verts[i].Position = math3d.V3(xy[i][0], xy[i][1], zs[i])
		r.verts[i].Color = ColorRed
		if zs[i] > -1 {
			r.verts[i].Color = ColorBlue
		}
	}
	r.n = 4
	return &r
}

func TestPlaneDistanceToPoint(t *testing.T) {
	tests := []struct {
		name  string
		plane Plane
		z     float64
		want  float64
	}{
		{"near inside", NearPlane(-1), -3, 2},
		{"near on plane", NearPlane(-1), -1, 0},
		{"near outside", NearPlane(-1), 0.5, -1.5},
		{"far inside", FarPlane(-100), -50, 50},
		{"far outside", FarPlane(-100), -101, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.plane.DistanceToPoint(math3d.V3(7, -3, tc.z))
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("DistanceToPoint(z=%v) = %v, want %v", tc.z, got, tc.want)
			}
		})
	}
}

func TestClipRingCounts(t *testing.T) {
	tests := []struct {
		name        string
		z           [4]float64
		wantCount   int
		enter, exit int
	}{
		{"all inside", [4]float64{-2, -3, -4, -5}, 4, -1, -1},
		{"all outside", [4]float64{0, 0.5, 1, 2}, 0, -1, -1},
		{"one outside grows", [4]float64{-2, -2, -2, 0}, 5, 0, 2},
		{"two outside keeps count", [4]float64{-2, -2, 0, 0}, 4, 0, 1},
		{"three outside shrinks", [4]float64{-2, 0, 0, 0}, 3, 0, 0},
		{"wraparound", [4]float64{0, -2, -2, -2}, 5, 1, 3},
		{"vertex on plane counts as inside", [4]float64{-1, -2, -2, 0}, 5, 0, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := quadRing(16, tc.z[0], tc.z[1], tc.z[2], tc.z[3])
			res := clipRing(r, NearPlane(-1))
			if res.count != tc.wantCount || r.len() != tc.wantCount {
				t.Fatalf("count = %d (ring %d), want %d", res.count, r.len(), tc.wantCount)
			}
			if res.enter != tc.enter || res.exit != tc.exit {
				t.Errorf("enter/exit = %d/%d, want %d/%d", res.enter, res.exit, tc.enter, tc.exit)
			}

			onPlane := 0
			for i := range r.len() {
				z := r.at(i).Position.Z
				if z > -1+1e-12 {
					t.Errorf("vertex %d at z=%v is outside the near plane", i, z)
				}
				if math.Abs(z+1) < 1e-12 {
					onPlane++
				}
			}
			inputOnPlane := 0
			for _, z := range tc.z {
				if z == -1 {
					inputOnPlane++
				}
			}
			if tc.enter >= 0 && onPlane != 2+inputOnPlane {
				t.Errorf("%d vertices on the plane, want %d", onPlane, 2+inputOnPlane)
			}
		})
	}
}

func TestClipRingIntersections(t *testing.T) {
	r := quadRing(16, 0, -2, -2, -2)
	clipRing(r, NearPlane(-1))

	want := []math3d.Vec3{
		math3d.V3(-1, 0, -1), // exit: between v3 and v0
		math3d.V3(0, -1, -1), // enter: between v0 and v1
		math3d.V3(1, -1, -2),
		math3d.V3(1, 1, -2),
		math3d.V3(-1, 1, -2),
	}
	for i, w := range want {
		if got := r.at(i).Position; !got.ApproxEqual(w, 1e-12) {
			t.Errorf("vertex %d = %v, want %v", i, got, w)
		}
	}

	// Halfway between blue (outside) and red (inside).
	c := r.at(0).Color
	if c.R() != 127 || c.B() != 127 || c.A() != 255 {
		t.Errorf("interpolated color = %08x, want halfway blend", uint32(c))
	}
}

func TestClipRingFarPlane(t *testing.T) {
	r := quadRing(16, -5, -5, -200, -200)
	res := clipRing(r, FarPlane(-100))
	if res.count != 4 {
		t.Fatalf("count = %d, want 4", res.count)
	}
	for i := range r.len() {
		if z := r.at(i).Position.Z; z < -100-1e-9 {
			t.Errorf("vertex %d at z=%v is beyond the far plane", i, z)
		}
	}
}

func TestClipRingGrowsArena(t *testing.T) {
	r := quadRing(4, -2, -2, -2, 0)
	clipRing(r, NearPlane(-1))
	if r.len() != 5 {
		t.Fatalf("len = %d, want 5", r.len())
	}
	if len(r.verts) != 8 {
		t.Errorf("capacity = %d, want doubled to 8", len(r.verts))
	}
	for i, w := range []math3d.Vec3{math3d.V3(-1, -1, -2), math3d.V3(1, -1, -2), math3d.V3(1, 1, -2)} {
		if got := r.at(i).Position; !got.ApproxEqual(w, 1e-12) {
			t.Errorf("vertex %d = %v, want %v preserved across growth", i, got, w)
		}
	}
}

func TestRingInsertRemove(t *testing.T) {
	r := newRing(2)
	for i := range 3 {
		r.insert(r.len(), ProjectedVertex{Vertex: NewVertex(float64(i), 0, 0, 0)})
	}
	r.insert(1, ProjectedVertex{Vertex: NewVertex(9, 0, 0, 0)})
	r.remove(0)

	want := []float64{9, 1, 2}
	if r.len() != len(want) {
		t.Fatalf("len = %d, want %d", r.len(), len(want))
	}
	for i, w := range want {
		if got := r.at(i).Position.X; got != w {
			t.Errorf("vertex %d x = %v, want %v", i, got, w)
		}
	}
}

func BenchmarkClipRing(b *testing.B) {
	for b.Loop() {
		r := quadRing(16, -2, -2, 0, 0)
		clipRing(r, NearPlane(-1))
	}
}
