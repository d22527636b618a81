package dieroller

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vectorsAlmostEqual(a, b Vector3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func toDense(r RotationMatrix) *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			d.Set(row, col, r.At(row, col))
		}
	}
	return d
}

func assertOrthonormal(t *testing.T, r RotationMatrix) {
	t.Helper()
	m := toDense(r)
	var product mat.Dense
	product.Mul(m.T(), m)
	identity := mat.NewDiagDense(3, []float64{1, 1, 1})
	if !mat.EqualApprox(&product, identity, 1e-9) {
		t.Errorf("RᵀR = %v, want identity", mat.Formatted(&product))
	}
	if det := mat.Det(m); !almostEqual(det, 1) {
		t.Errorf("det(R) = %v, want 1", det)
	}
}

func TestAlignToZAxis(t *testing.T) {
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				v := Vector3{X: x, Y: y, Z: z}
				xDeg, yDeg := AlignToZAxis(v)
				got := NewEulerRotation(xDeg, yDeg, 0).Apply(v)
				want := Vector3{Z: v.Magnitude()}
				if got.DistanceTo(want) > 1e-5 {
					t.Errorf("AlignToZAxis(%v) carries it to %v, want %v", v, got, want)
				}
			}
		}
	}
}

func TestNewAxisRotation(t *testing.T) {
	testCases := []struct {
		name    string
		axis    Vector3
		degrees float64
		input   Vector3
		want    Vector3
	}{
		{"quarter turn about Z", Vector3{Z: 1}, 90, Vector3{X: 1}, Vector3{Y: 1}},
		{"quarter turn about X", Vector3{X: 1}, 90, Vector3{Y: 1}, Vector3{Z: 1}},
		{"quarter turn about Y", Vector3{Y: 1}, 90, Vector3{Z: 1}, Vector3{X: 1}},
		{"axis length is ignored", Vector3{Z: 7}, 180, Vector3{X: 1}, Vector3{X: -1}},
		{"zero axis is identity", Vector3{}, 45, Vector3{X: 1, Y: 2, Z: 3}, Vector3{X: 1, Y: 2, Z: 3}},
		{"zero angle is identity", Vector3{X: 1}, 0, Vector3{X: 1, Y: 2, Z: 3}, Vector3{X: 1, Y: 2, Z: 3}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewAxisRotation(tc.axis, tc.degrees).Apply(tc.input)
			if !vectorsAlmostEqual(got, tc.want) {
				t.Errorf("NewAxisRotation(%v, %v).Apply(%v) = %v, want %v", tc.axis, tc.degrees, tc.input, got, tc.want)
			}
		})
	}
}

func TestRotationsStayOrthonormal(t *testing.T) {
	r := IdentityRotation()
	step := NewAxisRotation(Vector3{X: 0.3, Y: -1, Z: 0.7}, 7.3)
	for i := 0; i < 1000; i++ {
		r = step.Multiply(r)
	}
	assertOrthonormal(t, r)
	assertOrthonormal(t, NewEulerRotation(-35, 12, 80))
}

func TestEulerOrder(t *testing.T) {
	// Rx*Ry*Rz applies Z first.
	r := NewEulerRotation(90, 0, 90)
	got := r.Apply(Vector3{X: 1})
	want := NewAxisRotation(Vector3{X: 1}, 90).Apply(NewAxisRotation(Vector3{Z: 1}, 90).Apply(Vector3{X: 1}))
	if !vectorsAlmostEqual(got, want) {
		t.Errorf("NewEulerRotation(90, 0, 90).Apply(X) = %v, want %v", got, want)
	}
	if !r.Transpose().Multiply(r).ApproxEqual(IdentityRotation(), 1e-9) {
		t.Errorf("RᵀR = %v, want identity", r.Transpose().Multiply(r))
	}
}

func TestUnitVectorOfZero(t *testing.T) {
	if got := (Vector3{}).UnitVector(); !got.IsZero() {
		t.Errorf("UnitVector() of zero = %v, want zero", got)
	}
	if got := (Vector2{}).UnitVector(); got != (Vector2{}) {
		t.Errorf("UnitVector() of zero = %v, want zero", got)
	}
}
