package dieroller

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationMatrix is an immutable 3x3 rotation. The zero value is not a
// valid rotation; use IdentityRotation.
type RotationMatrix struct {
	m mgl64.Mat3
}

func IdentityRotation() RotationMatrix {
	return RotationMatrix{m: mgl64.Ident3()}
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

func radiansToDegrees(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// NewEulerRotation builds Rx*Ry*Rz from angles in degrees.
func NewEulerRotation(xDeg, yDeg, zDeg float64) RotationMatrix {
	x := mgl64.Rotate3DX(degreesToRadians(xDeg))
	y := mgl64.Rotate3DY(degreesToRadians(yDeg))
	z := mgl64.Rotate3DZ(degreesToRadians(zDeg))
	return RotationMatrix{m: x.Mul3(y).Mul3(z)}
}

// NewAxisRotation rotates by degrees about axis using the right-hand
// rule. A zero axis yields the identity.
func NewAxisRotation(axis Vector3, degrees float64) RotationMatrix {
	u := axis.UnitVector()
	if u.IsZero() || degrees == 0 {
		return IdentityRotation()
	}
	return RotationMatrix{m: mgl64.HomogRotate3D(degreesToRadians(degrees), u.Vec3()).Mat3()}
}

// Multiply returns r*o. Applying the result rotates by o first, then r.
func (r RotationMatrix) Multiply(o RotationMatrix) RotationMatrix {
	return RotationMatrix{m: r.m.Mul3(o.m)}
}

func (r RotationMatrix) Apply(v Vector3) Vector3 {
	return vector3FromVec(r.m.Mul3x1(v.Vec3()))
}

func (r RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{m: r.m.Transpose()}
}

// At returns the element at row, col.
func (r RotationMatrix) At(row, col int) float64 {
	return r.m.At(row, col)
}

func (r RotationMatrix) ApproxEqual(o RotationMatrix, threshold float64) bool {
	return r.m.ApproxEqualThreshold(o.m, threshold)
}

// AlignToZAxis returns the X and Y Euler angles, in degrees, that carry v
// onto the positive Z axis when passed to NewEulerRotation(x, y, 0).
func AlignToZAxis(v Vector3) (xDeg, yDeg float64) {
	yDeg = radiansToDegrees(math.Atan2(-v.X, v.Z))
	turned := NewEulerRotation(0, yDeg, 0).Apply(v)
	xDeg = radiansToDegrees(math.Atan2(turned.Y, turned.Z))
	return xDeg, yDeg
}

func (r RotationMatrix) String() string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", r.m.At(row, col)))
		}
	}
	return sb.String()
}
