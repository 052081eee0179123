package models

import "github.com/taigrr/scanline/pkg/math3d"

// cubeSides lists each side as its outward normal and two in-plane axes
// chosen so that normal = u × v.
var cubeSides = [6]struct {
	n, u, v math3d.Vec3
	color   [4]float64
}{
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), [4]float64{0.9, 0.2, 0.2, 1}},
	{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0), [4]float64{0.2, 0.8, 0.3, 1}},
	{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0), [4]float64{0.2, 0.4, 0.9, 1}},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0), [4]float64{0.9, 0.8, 0.2, 1}},
	{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), [4]float64{0.2, 0.8, 0.8, 1}},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), [4]float64{0.8, 0.3, 0.8, 1}},
}

// NewCube builds an axis-aligned cube of the given edge length centered on
// the origin. Every side has its own material, four vertices with flat
// normals and UVs covering the full 0..1 range.
func NewCube(size float64) *Mesh {
	m := NewMesh("cube")
	h := size / 2
	for i, side := range cubeSides {
		base := len(m.Vertices)
		center := side.n.Scale(h)
		corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: center.Add(side.u.Scale(c[0] * h)).Add(side.v.Scale(c[1] * h)),
				Normal:   side.n,
				UV:       math3d.V2((c[0]+1)/2, (1-c[1])/2),
			})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}, Material: i},
			Face{V: [3]int{base, base + 2, base + 3}, Material: i},
		)
		m.Materials = append(m.Materials, Material{
			Name:      "side",
			BaseColor: side.color,
			Roughness: 1,
		})
	}
	m.CalculateBounds()
	return m
}
