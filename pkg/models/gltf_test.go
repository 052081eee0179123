package models

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
}

// quadDocument builds a GLB document holding a unit quad in the XY plane
// made of two indexed triangles with a red material.
func quadDocument() *gltf.Document {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	data := make([]byte, 0, 60)
	for _, p := range positions {
		for _, f := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
	}
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 48},
			{Buffer: 0, ByteOffset: 48, ByteLength: 12},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 4, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: 6, Type: gltf.AccessorScalar},
		},
		Materials: []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "quad",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
				Material:   gltf.Index(0),
			}},
		}},
	}
}

func TestLoadGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(quadDocument(), path); err != nil {
		t.Fatalf("save glb: %v", err)
	}

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.Name != "quad.glb" {
		t.Errorf("Name = %q", mesh.Name)
	}
	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())
	}
	// Winding is preserved.
	if mesh.Faces[0].V != [3]int{0, 1, 2} || mesh.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("faces = %v", mesh.Faces)
	}
	if mesh.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("BoundsMax = %v", mesh.BoundsMax)
	}
	for i, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(math3d.AxisZ(), 1e-9) {
			t.Errorf("vertex %d normal = %v, want generated +Z", i, v.Normal)
		}
	}

	if mesh.GetFaceMaterial(0) != 0 {
		t.Fatalf("face material = %d, want 0", mesh.GetFaceMaterial(0))
	}
	mat := mesh.GetMaterial(0)
	if mat.Name != "red" || mat.Color() != render.ColorRed {
		t.Errorf("material = %+v", mat)
	}
	if mat.Metallic != 1 || mat.Roughness != 1 {
		t.Errorf("unset factors = %v/%v, want glTF defaults", mat.Metallic, mat.Roughness)
	}

	_, img, err := LoadGLBWithTexture(path)
	if err != nil || img != nil {
		t.Errorf("LoadGLBWithTexture = %v, %v; want no image", img, err)
	}
}

func TestLoadGLBBadIndex(t *testing.T) {
	doc := quadDocument()
	binary.LittleEndian.PutUint16(doc.Buffers[0].Data[48:], 7)
	path := filepath.Join(t.TempDir(), "bad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}

	if _, err := LoadGLB(path); err == nil {
		t.Error("expected error for out-of-range index")
	}
}
