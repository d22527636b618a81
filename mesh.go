package dieroller

import (
	"fmt"
	"image"
	"sort"
)

// Mesh is an immutable list of faces. Bodies hold their own scaled clone.
type Mesh struct {
	faces      []Face
	points     []Vector3
	pointIndex map[[3]float64]int
}

// NewMesh builds a mesh from faces and indexes its distinct vertices.
func NewMesh(faces []Face) (*Mesh, error) {
	if len(faces) == 0 {
		return nil, ErrEmptyMesh
	}
	m := &Mesh{
		faces:      make([]Face, len(faces)),
		pointIndex: make(map[[3]float64]int),
	}
	for i, f := range faces {
		if n := f.VertexCount(); n != 3 && n != 4 {
			return nil, fmt.Errorf("mesh face %d has %d vertices: %w", i, n, ErrFaceArity)
		}
		m.faces[i] = f.Clone()
		for _, v := range f.Vertices {
			m.addPoint(v)
		}
	}
	return m, nil
}

// addPoint records v once, keyed on its exact coordinates.
func (m *Mesh) addPoint(v Vector3) int {
	key := [3]float64{v.X, v.Y, v.Z}
	if index, found := m.pointIndex[key]; found {
		return index
	}
	m.points = append(m.points, v)
	m.pointIndex[key] = len(m.points) - 1
	return len(m.points) - 1
}

func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// Face returns a copy of face i.
func (m *Mesh) Face(i int) Face {
	return m.faces[i].Clone()
}

// Faces returns copies of every face.
func (m *Mesh) Faces() []Face {
	out := make([]Face, len(m.faces))
	for i, f := range m.faces {
		out[i] = f.Clone()
	}
	return out
}

// Points returns the distinct vertices.
func (m *Mesh) Points() []Vector3 {
	return append([]Vector3(nil), m.points...)
}

// AveragePoint is the mean over every face vertex, counting shared
// vertices once per face.
func (m *Mesh) AveragePoint() Vector3 {
	var sum Vector3
	count := 0
	for _, f := range m.faces {
		for _, v := range f.Vertices {
			sum = sum.Add(v)
			count++
		}
	}
	if count == 0 {
		return Vector3{}
	}
	return sum.Divide(float64(count))
}

// Clone must also duplicate the point index.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		faces:      m.Faces(),
		points:     m.Points(),
		pointIndex: make(map[[3]float64]int, len(m.pointIndex)),
	}
	for key, value := range m.pointIndex {
		out.pointIndex[key] = value
	}
	return out
}

// Scaled returns a new mesh with every vertex multiplied by s.
func (m *Mesh) Scaled(s float64) *Mesh {
	faces := make([]Face, len(m.faces))
	for i, f := range m.faces {
		faces[i] = f.Scaled(s)
	}
	out, _ := NewMesh(faces)
	return out
}

// AssetRegistry is the read-only table of die meshes, keyed by side count,
// and the texture they share. Build it once and pass it by reference.
type AssetRegistry struct {
	meshes  map[int]*Mesh
	texture image.Image
}

func NewAssetRegistry(meshes map[int]*Mesh, texture image.Image) *AssetRegistry {
	r := &AssetRegistry{
		meshes:  make(map[int]*Mesh, len(meshes)),
		texture: texture,
	}
	for sides, m := range meshes {
		r.meshes[sides] = m.Clone()
	}
	return r
}

// Mesh returns the shared mesh for a die type. Callers must not modify it;
// bodies take a clone.
func (r *AssetRegistry) Mesh(sides int) (*Mesh, bool) {
	m, ok := r.meshes[sides]
	return m, ok
}

func (r *AssetRegistry) Texture() image.Image {
	return r.texture
}

// Sides lists the registered die types.
func (r *AssetRegistry) Sides() []int {
	out := make([]int, 0, len(r.meshes))
	for s := range r.meshes {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
