package dieroller

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// IsInside reports whether p lies inside or on the edge of triangle abc.
// Either winding is accepted.
func IsInside(p, a, b, c Vector2) bool {
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b Vector2) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

func triangleArea(a, b, c Vector2) float64 {
	return math.Abs((a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y)) / 2)
}

// IsInsideByArea is the area-sum form of IsInside: the three triangles
// p makes with the edges of abc cover abc exactly when p is inside.
func IsInsideByArea(p, a, b, c Vector2) bool {
	whole := triangleArea(a, b, c)
	parts := triangleArea(p, b, c) + triangleArea(a, p, c) + triangleArea(a, b, p)
	return math.Abs(whole-parts) < 1
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// shade scales c by brightness, keeping alpha.
func shade(c color.RGBA, brightness float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(clamp(int(float64(v)*brightness), 0, 255))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// addColors is a saturating per-channel sum.
func addColors(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(a.R)+int(b.R), 0, 255)),
		G: uint8(clamp(int(a.G)+int(b.G), 0, 255)),
		B: uint8(clamp(int(a.B)+int(b.B), 0, 255)),
		A: 0xFF,
	}
}

// tracePolygon adds a closed path to r, shifted so that origin maps to
// the rasterizer's top left corner.
func tracePolygon(r *vector.Rasterizer, pts []Vector2, origin image.Point) {
	ox, oy := float64(origin.X), float64(origin.Y)
	r.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	r.ClosePath()
}

// fillConvexPolygon paints pts onto dst in a solid color.
func fillConvexPolygon(dst *image.RGBA, r *vector.Rasterizer, pts []Vector2, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
	tracePolygon(r, pts, b.Min)
	r.Draw(dst, b, image.NewUniform(clr), image.Point{})
}

// faceTriangles splits a screen polygon into the triangles used for
// texture lookup: a quad becomes (0,1,2) and (2,3,0).
func faceTriangles(n int) [][3]int {
	if n == 4 {
		return [][3]int{{0, 1, 2}, {2, 3, 0}}
	}
	return [][3]int{{0, 1, 2}}
}

// textureFace overlays tex on the pixels covered by a face's screen
// polygon. Black texels are skipped so the flat shade shows through;
// other texels are added to the base color and shaded.
func textureFace(dst *image.RGBA, tex *Texture, screen []Vector2, face Face, base color.RGBA, brightness float64) {
	if tex == nil || len(face.TexCoords) != len(screen) {
		return
	}
	tw, th := tex.Size()
	bounds := dst.Bounds()

	for _, tri := range faceTriangles(len(screen)) {
		s := [3]Vector2{screen[tri[0]], screen[tri[1]], screen[tri[2]]}
		m := NewTriangleMap(s, [3]Vector2{face.TexCoords[tri[0]], face.TexCoords[tri[1]], face.TexCoords[tri[2]]})

		minX := int(math.Floor(math.Min(s[0].X, math.Min(s[1].X, s[2].X))))
		maxX := int(math.Ceil(math.Max(s[0].X, math.Max(s[1].X, s[2].X))))
		minY := int(math.Floor(math.Min(s[0].Y, math.Min(s[1].Y, s[2].Y))))
		maxY := int(math.Ceil(math.Max(s[0].Y, math.Max(s[1].Y, s[2].Y))))
		minX, maxX = clamp(minX, bounds.Min.X, bounds.Max.X), clamp(maxX, bounds.Min.X, bounds.Max.X)
		minY, maxY = clamp(minY, bounds.Min.Y, bounds.Max.Y), clamp(maxY, bounds.Min.Y, bounds.Max.Y)

		for y := minY; y < maxY; y++ {
			for x := minX; x < maxX; x++ {
				p := Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				if !IsInside(p, s[0], s[1], s[2]) {
					continue
				}
				uv, ok := m.ScreenToTexture(p)
				if !ok {
					continue
				}
				texel, ok := tex.Sample(uv, m.Footprint(p, tw, th))
				if !ok || (texel.R == 0 && texel.G == 0 && texel.B == 0) {
					continue
				}
				dst.SetRGBA(x, y, shade(addColors(texel, base), brightness))
			}
		}
	}
}
