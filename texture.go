package dieroller

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// minFootprintStep is the smallest texel step used when averaging.
const minFootprintStep = 0.2

// Texture is a read-only image addressed by coordinates in [0,1], with
// (0,0) at the top left.
type Texture struct {
	img           image.Image
	width, height int
}

func NewTexture(img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{img: img, width: b.Dx(), height: b.Dy()}
}

// LoadTexture decodes a PNG, BMP or WebP file.
func LoadTexture(fileName string) (*Texture, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open texture %s: %w", fileName, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("error decoding texture %s: %w", fileName, err)
	}
	return NewTexture(img), nil
}

func (t *Texture) Image() image.Image {
	return t.img
}

// Size is the texture size in texels.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

func (t *Texture) texel(x, y int) (r, g, b uint32) {
	origin := t.img.Bounds().Min
	cr, cg, cb, _ := t.img.At(origin.X+x, origin.Y+y).RGBA()
	return cr >> 8, cg >> 8, cb >> 8
}

func (t *Texture) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.width && y < t.height
}

// Sample returns the texel at uv. When one screen pixel covers more than
// a texel, footprint (in texels) is averaged over a small grid to soften
// aliasing. ok is false when uv falls outside the texture.
func (t *Texture) Sample(uv, footprint Vector2) (c color.RGBA, ok bool) {
	xt := int(math.Round(uv.X * float64(t.width)))
	yt := int(math.Round(uv.Y * float64(t.height)))
	if !t.inside(xt, yt) {
		return color.RGBA{}, false
	}
	r, g, b := t.texel(xt, yt)

	fw, fh := math.Abs(footprint.X), math.Abs(footprint.Y)
	if fw > 1 || fh > 1 {
		stepX := math.Max(minFootprintStep, fw/10)
		stepY := math.Max(minFootprintStep, fh/10)
		var sr, sg, sb, count uint32
		for x1 := -fw / 2; x1 < fw/2; x1 += stepX {
			for y1 := -fh / 2; y1 < fh/2; y1 += stepY {
				x := int(math.Round(float64(xt) + x1))
				y := int(math.Round(float64(yt) + y1))
				if !t.inside(x, y) {
					continue
				}
				tr, tg, tb := t.texel(x, y)
				sr += tr
				sg += tg
				sb += tb
				count++
			}
		}
		if count > 0 {
			r, g, b = sr/count, sg/count, sb/count
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}, true
}

// TriangleMap is the affine map between a screen-space triangle and the
// texture-space triangle it displays.
type TriangleMap struct {
	screen [3]Vector2
	tex    [3]Vector2
}

func NewTriangleMap(screen, tex [3]Vector2) TriangleMap {
	return TriangleMap{screen: screen, tex: tex}
}

// barycentric calculates barycentric coordinates for p in triangle t.
func barycentric(t [3]Vector2, p Vector2) (w0, w1, w2 float64, ok bool) {
	v0 := t[2].Subtract(t[0])
	v1 := t[1].Subtract(t[0])
	v2 := p.Subtract(t[0])

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return 0, 0, 0, false
	}
	u := (dot11*dot02 - dot01*dot12) / denom
	v := (dot00*dot12 - dot01*dot02) / denom
	return 1 - u - v, v, u, true
}

func interpolate(t [3]Vector2, w0, w1, w2 float64) Vector2 {
	return t[0].Multiply(w0).Add(t[1].Multiply(w1)).Add(t[2].Multiply(w2))
}

// ScreenToTexture maps a screen point to texture coordinates. ok is false
// for a degenerate screen triangle.
func (m TriangleMap) ScreenToTexture(p Vector2) (Vector2, bool) {
	w0, w1, w2, ok := barycentric(m.screen, p)
	if !ok {
		return Vector2{}, false
	}
	return interpolate(m.tex, w0, w1, w2), true
}

// TextureToScreen is the inverse of ScreenToTexture.
func (m TriangleMap) TextureToScreen(t Vector2) (Vector2, bool) {
	w0, w1, w2, ok := barycentric(m.tex, t)
	if !ok {
		return Vector2{}, false
	}
	return interpolate(m.screen, w0, w1, w2), true
}

// Footprint estimates how many texels one screen pixel spans along each
// axis, for a texture of the given size.
func (m TriangleMap) Footprint(p Vector2, width, height int) Vector2 {
	here, ok := m.ScreenToTexture(p)
	if !ok {
		return Vector2{}
	}
	right, _ := m.ScreenToTexture(p.Add(Vector2{X: 1}))
	down, _ := m.ScreenToTexture(p.Add(Vector2{Y: 1}))
	return Vector2{
		X: (right.X - here.X) * float64(width),
		Y: (down.Y - here.Y) * float64(height),
	}
}
