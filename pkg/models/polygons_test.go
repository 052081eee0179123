package models

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/transform"
)

func TestBuildColors(t *testing.T) {
	m := triangleMesh()
	m.Faces = append(m.Faces, Face{V: [3]int{0, 1, 2}, Material: 0})
	m.Materials = []Material{{BaseColor: [4]float64{0, 0, 1, 1}}}

	mdl := m.Build(WithColor(render.ColorYellow))
	if len(mdl.Polygons) != 2 {
		t.Fatalf("got %d polygons, want 2", len(mdl.Polygons))
	}

	tests := []struct {
		face int
		want render.Color
	}{
		{0, render.ColorYellow},
		{1, render.ColorBlue},
	}
	for _, tc := range tests {
		for j, v := range mdl.Polygons[tc.face].Vertices {
			if v.Color != tc.want {
				t.Errorf("face %d vertex %d color = %08x, want %08x", tc.face, j, uint32(v.Color), uint32(tc.want))
			}
		}
	}

	p := mdl.Polygons[0]
	if p.Texture != nil {
		t.Error("untextured build has a texture map")
	}
	if !p.Normal.ApproxEqual(math3d.V3(0, 1, 4).Normalize(), 1e-12) {
		t.Errorf("polygon normal = %v", p.Normal)
	}
}

func TestBuildTextureFromUV(t *testing.T) {
	tex, err := render.NewCheckerTexture(8, 4, render.ColorRed, render.ColorBlue)
	if err != nil {
		t.Fatal(err)
	}
	m := NewCube(2)
	mdl := m.Build(WithTexture(tex))

	// Front side, first triangle: corners (-1,-1,1), (1,-1,1), (1,1,1)
	// carry UVs (0,1), (1,1), (1,0).
	tm := mdl.Polygons[0].Texture
	if tm == nil {
		t.Fatal("missing texture map")
	}
	tests := []struct {
		p            math3d.Vec3
		wantX, wantY int
	}{
		{math3d.V3(-0.5, 0.5, 1), 2, 2},
		{math3d.V3(0.5, -0.5, 1), 6, 6},
	}
	for _, tc := range tests {
		x, y := tm.Texel(tm.PlaneCoords(tc.p))
		if x != tc.wantX || y != tc.wantY {
			t.Errorf("texel at %v = (%d, %d), want (%d, %d)", tc.p, x, y, tc.wantX, tc.wantY)
		}
	}
}

func TestShade(t *testing.T) {
	c := render.RGBA(200, 100, 50, 77)
	if got := Shade(c, render.ColorWhite, 1); got != c {
		t.Errorf("full light = %08x, want %08x", uint32(got), uint32(c))
	}
	if got := Shade(c, render.ColorWhite, 0.5); got != render.RGBA(100, 50, 25, 77) {
		t.Errorf("half light = %08x", uint32(got))
	}
	if got := Shade(c, render.RGB(255, 0, 255), 2); got != render.RGBA(200, 0, 50, 77) {
		t.Errorf("magenta light = %08x", uint32(got))
	}
}

func TestLight(t *testing.T) {
	mdl := NewCube(2).Build()
	xf := transform.New()
	white := render.DirectionalLight{Direction: math3d.V3(0, 0, 2), Color: render.ColorWhite}
	mdl.Light(white, xf)

	front := mdl.Polygons[0].Vertices[0].Color // +Z side faces the light
	back := mdl.Polygons[2].Vertices[0].Color  // -Z side faces away
	side := mdl.Polygons[4].Vertices[0].Color  // +X side is edge-on

	base := cubeSides[0].color
	if want := uint8(math.Round(base[0] * 255)); front.R() != want {
		t.Errorf("lit front red = %d, want %d", front.R(), want)
	}
	wantBack := Shade((&Material{BaseColor: cubeSides[1].color}).Color(), render.ColorWhite, DefaultAmbient)
	if back != wantBack {
		t.Errorf("back = %08x, want ambient only %08x", uint32(back), uint32(wantBack))
	}
	wantSide := Shade((&Material{BaseColor: cubeSides[2].color}).Color(), render.ColorWhite, DefaultAmbient)
	if side != wantSide {
		t.Errorf("side = %08x, want ambient only %08x", uint32(side), uint32(wantSide))
	}

	// Turning the cube half way round puts the -Z side toward the light.
	xf.RotateY(math.Pi)
	mdl.Light(white, xf)
	if got := mdl.Polygons[2].Vertices[0].Color; got == wantBack {
		t.Error("rotated back side is still unlit")
	}
}

func TestRenderCube(t *testing.T) {
	r := render.NewRenderer(64, 64)
	r.SetPerspective(math.Pi/3, -0.5, -50)
	r.Clean()
	r.Transform().TranslateTo(0, 0, -5)

	mdl := NewCube(2).Build()
	mdl.Light(r.Light(), r.Transform())
	mdl.Render(r)

	s := r.Stats()
	if s.Submitted != 12 || s.Culled != 10 || s.Drawn != 2 {
		t.Errorf("stats = %+v, want 2 front triangles drawn and 10 culled", s)
	}
	if r.Framebuffer().GetPixel(32, 32) == 0 {
		t.Error("cube center pixel not drawn")
	}
	if r.Framebuffer().GetPixel(1, 1) != 0 {
		t.Error("corner pixel drawn")
	}
}
