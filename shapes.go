package dieroller

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Atlas layout shared by the procedural meshes: label n lives in cell
// n-1, filled row by row.
const (
	atlasColumns = 5
	atlasRows    = 4
	// atlasInset keeps face polygons clear of the cell edge.
	atlasInset = 0.45
)

var phi = (1 + math.Sqrt(5)) / 2

// polyhedron builds a convex solid centred on the origin. Each entry of
// normals selects the vertices lying furthest along it; those become one
// labelled face. Faces with more than four vertices are fanned into
// triangles, with the first triangle of every face listed before the rest
// so that face i is always label i+1.
func polyhedron(name string, vertices, normals []Vector3) (*Mesh, error) {
	var first, rest []Face
	for i, n := range normals {
		label := strconv.Itoa(i + 1)
		ring := outwardRing(selectFurthest(vertices, n))
		if len(ring) < 3 {
			return nil, fmt.Errorf("%s face %s has %d vertices: %w", name, label, len(ring), ErrFaceArity)
		}
		uv := cellPolygon(i+1, len(ring))
		if len(ring) <= 4 {
			f, err := NewFace(ring, uv, nil, label)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			first = append(first, f)
			continue
		}
		for k := 1; k+1 < len(ring); k++ {
			f, err := NewFace(
				[]Vector3{ring[0], ring[k], ring[k+1]},
				[]Vector2{uv[0], uv[k], uv[k+1]},
				nil, label)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if k == 1 {
				first = append(first, f)
			} else {
				rest = append(rest, f)
			}
		}
	}
	return NewMesh(append(first, rest...))
}

func selectFurthest(vertices []Vector3, n Vector3) []Vector3 {
	best := math.Inf(-1)
	for _, v := range vertices {
		best = math.Max(best, v.Dot(n))
	}
	var out []Vector3
	for _, v := range vertices {
		if v.Dot(n) > best-1e-9 {
			out = append(out, v)
		}
	}
	return out
}

// outwardRing orders the vertices of a planar convex polygon
// counter-clockwise when seen from outside the solid.
func outwardRing(vs []Vector3) []Vector3 {
	if len(vs) < 3 {
		return vs
	}
	var center Vector3
	for _, v := range vs {
		center = center.Add(v)
	}
	center = center.Divide(float64(len(vs)))
	n := center.UnitVector()
	u := vs[0].Subtract(center).UnitVector()
	w := n.Cross(u)

	ring := append([]Vector3(nil), vs...)
	angle := func(p Vector3) float64 {
		d := p.Subtract(center)
		return math.Atan2(d.Dot(w), d.Dot(u))
	}
	sort.Slice(ring, func(i, j int) bool { return angle(ring[i]) < angle(ring[j]) })
	return ring
}

// cellPolygon places a regular k-gon inside the atlas cell for label,
// counter-clockwise on screen with vertex 0 at the lower left.
func cellPolygon(label, k int) []Vector2 {
	col := float64((label - 1) % atlasColumns)
	row := float64((label - 1) / atlasColumns)
	start := -math.Pi/2 - math.Pi/float64(k)
	out := make([]Vector2, k)
	for i := range out {
		a := start + 2*math.Pi*float64(i)/float64(k)
		local := Vector2{X: 0.5 + atlasInset*math.Cos(a), Y: 0.5 - atlasInset*math.Sin(a)}
		out[i] = Vector2{X: (col + local.X) / atlasColumns, Y: (row + local.Y) / atlasRows}
	}
	return out
}

// withOpposites appends the negation of each normal in reverse order, so
// opposite faces carry labels that sum to len+1.
func withOpposites(normals ...Vector3) []Vector3 {
	out := append([]Vector3(nil), normals...)
	for i := len(normals) - 1; i >= 0; i-- {
		out = append(out, normals[i].Multiply(-1))
	}
	return out
}

func scaleAll(vs []Vector3, s float64) []Vector3 {
	out := make([]Vector3, len(vs))
	for i, v := range vs {
		out[i] = v.Multiply(s)
	}
	return out
}

func NewTetrahedron() (*Mesh, error) {
	vertices := []Vector3{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}}
	normals := make([]Vector3, len(vertices))
	for i, v := range vertices {
		normals[i] = v.Multiply(-1)
	}
	return polyhedron("d4", vertices, normals)
}

// NewCube builds a d6 with face 1 pointing up and opposite faces summing
// to seven.
func NewCube() (*Mesh, error) {
	var vertices []Vector3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				vertices = append(vertices, Vector3{X: x, Y: y, Z: z})
			}
		}
	}
	normals := withOpposites(Vector3{Z: 1}, Vector3{Y: 1}, Vector3{X: 1})
	return polyhedron("d6", vertices, normals)
}

func NewOctahedron() (*Mesh, error) {
	const r = 1.5
	vertices := []Vector3{{X: r}, {X: -r}, {Y: r}, {Y: -r}, {Z: r}, {Z: -r}}
	normals := withOpposites(
		Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: -1, Y: 1, Z: 1},
		Vector3{X: -1, Y: -1, Z: 1}, Vector3{X: 1, Y: -1, Z: 1},
	)
	return polyhedron("d8", vertices, normals)
}

// NewTrapezohedron builds a d10 from ten kite faces. The apex height is
// chosen so every kite is planar.
func NewTrapezohedron() (*Mesh, error) {
	const r, b = 1.2, 0.13
	c := math.Cos(math.Pi / 5)
	a := b * (1 + c) / (1 - c)

	vertices := []Vector3{{Z: a}, {Z: -a}}
	for k := 0; k < 5; k++ {
		up := 2 * math.Pi * float64(k) / 5
		down := up + math.Pi/5
		vertices = append(vertices,
			Vector3{X: r * math.Cos(up), Y: r * math.Sin(up), Z: b},
			Vector3{X: r * math.Cos(down), Y: r * math.Sin(down), Z: -b})
	}

	var normals []Vector3
	for k := 0; k < 5; k++ {
		mid := 2*math.Pi*float64(k)/5 + math.Pi/5
		normals = append(normals, kiteNormal(vertices[0], mid, r, b, c))
	}
	for k := 0; k < 5; k++ {
		mid := 2*math.Pi*float64(k+1)/5
		n := kiteNormal(vertices[0], mid, r, b, c)
		normals = append(normals, Vector3{X: n.X, Y: n.Y, Z: -n.Z})
	}
	return polyhedron("d10", vertices, normals)
}

// kiteNormal is the outward normal of the upper kite whose axis points
// along angle mid.
func kiteNormal(apex Vector3, mid, r, b, c float64) Vector3 {
	dir := Vector3{X: math.Cos(mid), Y: math.Sin(mid)}
	edge := dir.Multiply(r * c).Add(Vector3{Z: b}).Subtract(apex)
	side := Up.Cross(dir)
	return side.Cross(edge).UnitVector().Multiply(-1)
}

func NewDodecahedron() (*Mesh, error) {
	inv := 1 / phi
	var vertices []Vector3
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				vertices = append(vertices, Vector3{X: x, Y: y, Z: z})
			}
		}
	}
	for _, s1 := range []float64{-1, 1} {
		for _, s2 := range []float64{-1, 1} {
			vertices = append(vertices,
				Vector3{Y: s1 * inv, Z: s2 * phi},
				Vector3{X: s1 * inv, Y: s2 * phi},
				Vector3{X: s1 * phi, Z: s2 * inv})
		}
	}
	normals := withOpposites(
		Vector3{Y: phi, Z: 1}, Vector3{Y: -phi, Z: 1},
		Vector3{X: 1, Z: phi}, Vector3{X: -1, Z: phi},
		Vector3{X: phi, Y: 1}, Vector3{X: phi, Y: -1},
	)
	return polyhedron("d12", vertices, normals)
}

func NewIcosahedron() (*Mesh, error) {
	var vertices []Vector3
	for _, s1 := range []float64{-1, 1} {
		for _, s2 := range []float64{-1, 1} {
			vertices = append(vertices,
				Vector3{Y: s1, Z: s2 * phi},
				Vector3{X: s1, Y: s2 * phi},
				Vector3{X: s1 * phi, Z: s2})
		}
	}
	inv := 1 / phi
	normals := withOpposites(
		Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: -1, Y: 1, Z: 1},
		Vector3{X: 1, Y: -1, Z: 1}, Vector3{X: -1, Y: -1, Z: 1},
		Vector3{Y: phi, Z: inv}, Vector3{Y: -phi, Z: inv},
		Vector3{X: inv, Z: phi}, Vector3{X: -inv, Z: phi},
		Vector3{X: phi, Y: inv}, Vector3{X: phi, Y: -inv},
	)
	return polyhedron("d20", scaleAll(vertices, 0.85), normals)
}

// StandardMeshes builds every procedural die, keyed by side count.
func StandardMeshes() (map[int]*Mesh, error) {
	builders := map[int]func() (*Mesh, error){
		4:  NewTetrahedron,
		6:  NewCube,
		8:  NewOctahedron,
		10: NewTrapezohedron,
		12: NewDodecahedron,
		20: NewIcosahedron,
	}
	out := make(map[int]*Mesh, len(builders))
	for sides, build := range builders {
		m, err := build()
		if err != nil {
			return nil, fmt.Errorf("building d%d: %w", sides, err)
		}
		out[sides] = m
	}
	return out, nil
}
