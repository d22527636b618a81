package dieroller

import "math"

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal Vector3
	D      float64
}

const planeThickness = 1e-9

func NewPlane(point, normal Vector3) Plane {
	n := normal.UnitVector()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// NewFloor is the horizontal plane at height z, facing up.
func NewFloor(z float64) Plane {
	return NewPlane(Vector3{Z: z}, Up)
}

// Distance is the signed distance from the plane, positive on the side
// the normal points to. Points within planeThickness report zero.
func (p Plane) Distance(v Vector3) float64 {
	d := p.Normal.Dot(v) + p.D
	if math.Abs(d) < planeThickness {
		return 0
	}
	return d
}

// ProjectAlong slides v along dir until it meets the plane. ok is false
// when dir runs parallel to the plane.
func (p Plane) ProjectAlong(v, dir Vector3) (Vector3, bool) {
	denom := p.Normal.Dot(dir)
	if math.Abs(denom) < planeThickness {
		return v, false
	}
	t := -(p.Normal.Dot(v) + p.D) / denom
	return v.Add(dir.Multiply(t)), true
}
