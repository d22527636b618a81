package dieroller

import (
	"image"
	"testing"
)

func TestSilhouette(t *testing.T) {
	s := NewSilhouette([][]Vector2{
		{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}},
		// clockwise on purpose
		{{X: 15.5, Y: 15.5}, {X: 15.5, Y: 30.2}, {X: 30.2, Y: 15.5}},
		// degenerate polygons are dropped
		{{X: 0, Y: 0}, {X: 1, Y: 1}},
	})

	if got := len(s.Polygons()); got != 2 {
		t.Fatalf("len(Polygons()) = %d, want 2", got)
	}
	if got, want := s.Bounds(), image.Rect(10, 10, 31, 31); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}

	testCases := []struct {
		name string
		p    Vector2
		want bool
	}{
		{"inside square", Vector2{X: 12, Y: 12}, true},
		{"inside triangle only", Vector2{X: 25, Y: 17}, true},
		{"in the overlap", Vector2{X: 18, Y: 18}, true},
		{"outside both", Vector2{X: 28, Y: 28}, false},
		{"far away", Vector2{X: 100, Y: 5}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %t, want %t", tc.p, got, tc.want)
			}
		})
	}

	mask := s.Mask(s.Bounds())
	for _, tc := range testCases {
		x, y := int(tc.p.X), int(tc.p.Y)
		if !(image.Point{X: x, Y: y}).In(mask.Bounds()) {
			continue
		}
		if covered := mask.AlphaAt(x, y).A == 0xFF; covered != tc.want {
			t.Errorf("Mask() at (%d, %d) covered = %t, want %t", x, y, covered, tc.want)
		}
	}
}

func TestEmptySilhouette(t *testing.T) {
	s := NewSilhouette(nil)
	if !s.Empty() {
		t.Errorf("Empty() = false, want true")
	}
	if got := s.Bounds(); !got.Empty() {
		t.Errorf("Bounds() = %v, want empty", got)
	}
	if got := s.Mask(image.Rect(0, 0, 4, 4)); got.AlphaAt(1, 1).A != 0 {
		t.Errorf("Mask() painted an empty silhouette")
	}
}

func TestPlane(t *testing.T) {
	floor := NewFloor(-100)
	if got := floor.Distance(Vector3{X: 5, Y: 7, Z: -90}); !almostEqual(got, 10) {
		t.Errorf("Distance() above = %v, want 10", got)
	}
	if got := floor.Distance(Vector3{Z: -101}); !almostEqual(got, -1) {
		t.Errorf("Distance() below = %v, want -1", got)
	}

	light := Vector3{Y: -1, Z: 1}.UnitVector()
	got, ok := floor.ProjectAlong(Vector3{X: 3, Y: 50, Z: 0}, light)
	if !ok || !vectorsAlmostEqual(got, Vector3{X: 3, Y: 150, Z: -100}) {
		t.Errorf("ProjectAlong() = %v, %t, want (3, 150, -100)", got, ok)
	}
	if _, ok := floor.ProjectAlong(Vector3{}, Vector3{X: 1}); ok {
		t.Errorf("ProjectAlong() parallel to the plane should fail")
	}
}
