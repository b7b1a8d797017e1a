package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"

	"github.com/taigrr/sundial/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct{}

// NewGLTFLoader creates a GLTF loader.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadTriangles loads every triangle primitive of a GLTF or GLB file.
func LoadTriangles(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// LoadMeshOrPyramid loads a model in its own units. When the model cannot
// be loaded or holds no triangles, a warning is logged and the unit
// placeholder pyramid is returned instead.
func LoadMeshOrPyramid(path string) *Mesh {
	mesh, err := LoadTriangles(path)
	if err == nil && mesh.TriangleCount() == 0 {
		err = fmt.Errorf("no triangles in %s", path)
	}
	if err != nil {
		log.Warn("using placeholder pyramid", "path", path, "err", err)
		return NewPyramid(1)
	}
	log.Debug("loaded model", "path", path, "triangles", mesh.TriangleCount(), "vertices", mesh.VertexCount())
	return mesh
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := l.FromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// FromDocument extracts triangles from an already decoded document.
// External buffers are resolved relative to dir.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, dir string) (*Mesh, error) {
	mesh := NewMesh("")
	for _, m := range doc.Materials {
		mesh.Materials = append(mesh.Materials, convertMaterial(m))
	}

	r := &accessorReader{doc: doc, dir: dir, cache: make(map[int][]byte)}
	for _, m := range doc.Meshes {
		if err := l.processMesh(r, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func convertMaterial(m *gltf.Material) Material {
	mat := Material{Name: m.Name, BaseColor: [4]float64{1, 1, 1, 1}}
	if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		mat.BaseColor = *pbr.BaseColorFactor
	}
	return mat
}

// processMesh appends the triangle primitives of m to mesh.
func (l *GLTFLoader) processMesh(r *accessorReader, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := r.vec3(posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = r.indices(*prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{
				V:        [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]},
				Material: material,
			}
			if !validFace(face, len(mesh.Vertices)) {
				return fmt.Errorf("index out of range in triangle %d", i/3)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

func validFace(f Face, n int) bool {
	for _, v := range f.V {
		if v < 0 || v >= n {
			return false
		}
	}
	return true
}

// accessorReader reads typed accessor data, loading each buffer once.
type accessorReader struct {
	doc   *gltf.Document
	dir   string
	cache map[int][]byte
}

func (r *accessorReader) buffer(i int) ([]byte, error) {
	if data, ok := r.cache[i]; ok {
		return data, nil
	}
	if i < 0 || i >= len(r.doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", i)
	}
	buf := r.doc.Buffers[i]
	data := buf.Data
	if data == nil && buf.URI != "" {
		var err error
		data, err = os.ReadFile(filepath.Join(r.dir, buf.URI))
		if err != nil {
			return nil, fmt.Errorf("read buffer %q: %w", buf.URI, err)
		}
	}
	if data == nil {
		return nil, fmt.Errorf("buffer %d has no data", i)
	}
	r.cache[i] = data
	return data, nil
}

// view returns the bytes of an accessor along with its element stride.
func (r *accessorReader) view(acc *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bv := r.doc.BufferViews[*acc.BufferView]
	data, err := r.buffer(bv.Buffer)
	if err != nil {
		return nil, 0, err
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bv.ByteOffset + acc.ByteOffset
	if acc.Count > 0 && start+(acc.Count-1)*stride+elemSize > len(data) {
		return nil, 0, fmt.Errorf("accessor exceeds buffer (%d bytes)", len(data))
	}
	return data[start:], stride, nil
}

func (r *accessorReader) vec3(idx int) ([]math3d.Vec3, error) {
	acc := r.doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", acc.Type, acc.ComponentType)
	}
	data, stride, err := r.view(acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		b := data[i*stride:]
		out[i] = math3d.V3(float64(readFloat32(b)), float64(readFloat32(b[4:])), float64(readFloat32(b[8:])))
	}
	return out, nil
}

func (r *accessorReader) indices(idx int) ([]int, error) {
	acc := r.doc.Accessors[idx]
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", acc.ComponentType)
	}

	data, stride, err := r.view(acc, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		default:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
