package models

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/scanline/pkg/math3d"
)

var errNoBufferData = errors.New("buffer has no data")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.fromDocument(doc, filepath.Base(path))
}

func (l *GLTFLoader) fromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, mat := range doc.Materials {
		mesh.Materials = append(mesh.Materials, readMaterial(mat))
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}

	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func readMaterial(mat *gltf.Material) Material {
	m := DefaultMaterial()
	m.Name = mat.Name
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return m
	}
	if pbr.BaseColorFactor != nil {
		m.BaseColor = *pbr.BaseColorFactor
	}
	if pbr.MetallicFactor != nil {
		m.Metallic = *pbr.MetallicFactor
	}
	if pbr.RoughnessFactor != nil {
		m.Roughness = *pbr.RoughnessFactor
	}
	m.HasTexture = pbr.BaseColorTexture != nil
	return m
}

// processMesh extracts geometry from a GLTF mesh. glTF front faces are
// counter-clockwise, which is what the renderer expects, so winding is kept.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := MeshVertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// glTF UVs already have a top-left origin, like texture rows.
				v.UV = uvs[i]
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{Material: material}
			for j := range 3 {
				idx := indices[i+j]
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
				}
				f.V[j] = baseVertex + idx
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	floats, err := readFloats(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats)/3)
	for i := range result {
		result[i] = math3d.V3(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return result, nil
}

// readVec2Accessor reads Vec2 data from a GLTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	floats, err := readFloats(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, len(floats)/2)
	for i := range result {
		result[i] = math3d.V2(floats[i*2], floats[i*2+1])
	}
	return result, nil
}

// readFloats reads a float accessor of n components per element into a flat
// slice.
func readFloats(doc *gltf.Document, accessorIdx int, typ gltf.AccessorType, n int) ([]float64, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != typ {
		return nil, fmt.Errorf("expected %v, got %v", typ, accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, n*4)
	if err != nil {
		return nil, err
	}

	result := make([]float64, accessor.Count*n)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+n*4 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i*n+j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		if offset+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorView resolves the buffer bytes, start offset and element stride of
// an accessor. elemSize is the tightly packed stride.
func accessorView(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	// gltf.Open resolves both embedded (GLB) and external buffers into Data.
	if buffer.Data == nil {
		return nil, 0, 0, errNoBufferData
	}

	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// LoadGLTFWithTextures loads a GLTF file and extracts the encoded images.
// Returns the mesh and a map of image index to image file data.
func LoadGLTFWithTextures(path string) (*Mesh, map[int][]byte, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := NewGLTFLoader().fromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}

	textures := make(map[int][]byte)
	for i, img := range doc.Images {
		if img.BufferView != nil {
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data != nil {
				start := bv.ByteOffset
				end := start + bv.ByteLength
				if end <= len(buf.Data) {
					textures[i] = buf.Data[start:end]
				}
			}
		} else if img.URI != "" {
			// External texture file
			texPath := filepath.Join(filepath.Dir(path), img.URI)
			if data, err := os.ReadFile(texPath); err == nil {
				textures[i] = data
			}
		}
	}

	return mesh, textures, nil
}

// LoadGLBWithTexture loads a GLB file and returns the mesh plus the first
// decodable embedded image, which may be nil.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	mesh, textures, err := LoadGLTFWithTextures(path)
	if err != nil {
		return nil, nil, err
	}

	for _, i := range slices.Sorted(maps.Keys(textures)) {
		data := textures[i]
		if len(data) == 0 {
			continue
		}
		if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return mesh, img, nil
		}
	}
	return mesh, nil, nil
}
