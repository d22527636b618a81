package dieroller

import (
	"errors"
	"strconv"
	"testing"
)

func TestStandardMeshes(t *testing.T) {
	meshes, err := StandardMeshes()
	if err != nil {
		t.Fatalf("StandardMeshes() error = %v", err)
	}
	testCases := []struct {
		sides     int
		faces     int
		points    int
		opposites bool
	}{
		{4, 4, 4, false},
		{6, 6, 8, true},
		{8, 8, 6, true},
		{10, 10, 12, false},
		{12, 36, 20, true},
		{20, 20, 12, true},
	}
	for _, tc := range testCases {
		t.Run("d"+strconv.Itoa(tc.sides), func(t *testing.T) {
			m, ok := meshes[tc.sides]
			if !ok {
				t.Fatalf("no mesh for d%d", tc.sides)
			}
			if got := m.FaceCount(); got != tc.faces {
				t.Errorf("FaceCount() = %d, want %d", got, tc.faces)
			}
			if got := len(m.Points()); got != tc.points {
				t.Errorf("len(Points()) = %d, want %d", got, tc.points)
			}
			// Fanned pentagons weight some vertices more, so the d12 is
			// only roughly centred.
			if c := m.AveragePoint(); c.Magnitude() > 0.05 {
				t.Errorf("AveragePoint() = %v, want near origin", c)
			}

			for i := 0; i < tc.sides; i++ {
				f := m.Face(i)
				if want := strconv.Itoa(i + 1); f.Label != want {
					t.Errorf("face %d label = %q, want %q", i, f.Label, want)
				}
			}
			for i, f := range m.Faces() {
				if f.CommonNormal().Dot(f.Center()) <= 0 {
					t.Errorf("face %d (%s) normal %v points inward", i, f.Label, f.CommonNormal())
				}
				for _, uv := range f.TexCoords {
					if uv.X < 0 || uv.X > 1 || uv.Y < 0 || uv.Y > 1 {
						t.Errorf("face %d texture coordinate %v outside the atlas", i, uv)
					}
				}
			}

			if !tc.opposites {
				return
			}
			for i := 0; i < tc.sides; i++ {
				a := m.Face(i).CommonNormal()
				b := m.Face(tc.sides - 1 - i).CommonNormal()
				if !almostEqual(a.Dot(b), -1) {
					t.Errorf("faces %d and %d are not opposite: %v, %v", i+1, tc.sides-i, a, b)
				}
			}
		})
	}
}

func TestCubeFaceOneIsUp(t *testing.T) {
	m, err := NewCube()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Face(0).CommonNormal(); got != Up {
		t.Errorf("face 1 normal = %v, want %v", got, Up)
	}
}

func TestTetrahedronFacesOpposeVertices(t *testing.T) {
	m, err := NewTetrahedron()
	if err != nil {
		t.Fatal(err)
	}
	points := m.Points()
	for i := 0; i < m.FaceCount(); i++ {
		n := m.Face(i).CommonNormal()
		best := -2.0
		for _, p := range points {
			best = max(best, -n.Dot(p.UnitVector()))
		}
		if !almostEqual(best, 1) {
			t.Errorf("face %d has no vertex directly opposite it", i+1)
		}
	}
}

func TestNewMesh(t *testing.T) {
	if _, err := NewMesh(nil); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("NewMesh(nil) error = %v, want %v", err, ErrEmptyMesh)
	}
	bad := Face{Vertices: make([]Vector3, 5)}
	if _, err := NewMesh([]Face{bad}); !errors.Is(err, ErrFaceArity) {
		t.Errorf("NewMesh() with a pentagon error = %v, want %v", err, ErrFaceArity)
	}
	if _, err := NewFace(make([]Vector3, 2), nil, nil, "x"); !errors.Is(err, ErrFaceArity) {
		t.Errorf("NewFace() with two vertices error = %v, want %v", err, ErrFaceArity)
	}
}

func TestMeshCloneAndScale(t *testing.T) {
	m, err := NewCube()
	if err != nil {
		t.Fatal(err)
	}
	scaled := m.Clone().Scaled(50)
	if got := scaled.Face(0).Vertices[0]; !almostEqual(got.Magnitude(), 50*m.Face(0).Vertices[0].Magnitude()) {
		t.Errorf("Scaled(50) vertex = %v", got)
	}

	f := m.Face(0)
	f.Vertices[0] = Vector3{X: 99}
	if m.Face(0).Vertices[0] == f.Vertices[0] {
		t.Errorf("Face() returned shared storage")
	}
}

func TestAssetRegistry(t *testing.T) {
	meshes, err := StandardMeshes()
	if err != nil {
		t.Fatal(err)
	}
	r := NewAssetRegistry(meshes, nil)
	want := []int{4, 6, 8, 10, 12, 20}
	got := r.Sides()
	if len(got) != len(want) {
		t.Fatalf("Sides() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sides() = %v, want %v", got, want)
			break
		}
	}
	if _, ok := r.Mesh(7); ok {
		t.Errorf("Mesh(7) should not exist")
	}
}
