package dieroller

import (
	"image"
	"math"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/floats"
)

// Silhouette is the screen-space outline of everything a world paints:
// the visible face polygons and the shadow polygons. Every polygon is
// convex.
type Silhouette struct {
	polygons [][]Vector2
}

func NewSilhouette(polygons [][]Vector2) Silhouette {
	out := make([][]Vector2, 0, len(polygons))
	for _, p := range polygons {
		if len(p) >= 3 {
			out = append(out, append([]Vector2(nil), p...))
		}
	}
	return Silhouette{polygons: out}
}

func (s Silhouette) Polygons() [][]Vector2 {
	return s.polygons
}

func (s Silhouette) Empty() bool {
	return len(s.polygons) == 0
}

// Bounds is the smallest pixel rectangle holding every polygon.
func (s Silhouette) Bounds() image.Rectangle {
	if s.Empty() {
		return image.Rectangle{}
	}
	var xs, ys []float64
	for _, poly := range s.polygons {
		for _, p := range poly {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	return image.Rect(
		int(math.Floor(floats.Min(xs))), int(math.Floor(floats.Min(ys))),
		int(math.Ceil(floats.Max(xs))), int(math.Ceil(floats.Max(ys))),
	)
}

// Contains reports whether p falls inside any polygon.
func (s Silhouette) Contains(p Vector2) bool {
	for _, poly := range s.polygons {
		for k := 1; k+1 < len(poly); k++ {
			if IsInside(p, poly[0], poly[k], poly[k+1]) {
				return true
			}
		}
	}
	return false
}

// Mask rasterizes the silhouette over r. Polygons are drawn one at a
// time so that overlapping shapes of opposite winding do not cancel.
func (s Silhouette) Mask(r image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(r)
	if r.Empty() {
		return mask
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, poly := range s.polygons {
		z.Reset(r.Dx(), r.Dy())
		tracePolygon(z, poly, r.Min)
		z.Draw(mask, r, image.Opaque, image.Point{})
	}
	return mask
}
