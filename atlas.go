package dieroller

import (
	"image"
	"image/color"
	"log"
	"strconv"

	"github.com/aquilax/go-perlin"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultCellSize is the atlas cell edge in pixels.
	DefaultCellSize = 64

	glyphHeight = 0.3
	marbleDepth = 36
)

// NewNumberAtlas draws the labels 1..20 white on a faintly marbled black
// background, one per cell, laid out to match the procedural meshes.
// Labels 6 and 9 carry a trailing dot so they can be told apart.
func NewNumberAtlas(cellSize int, seed int64) *image.RGBA {
	atlas := image.NewRGBA(image.Rect(0, 0, atlasColumns*cellSize, atlasRows*cellSize))
	marble(atlas, seed)
	for label := 1; label <= atlasColumns*atlasRows; label++ {
		text := strconv.Itoa(label)
		if label == 6 || label == 9 {
			text += "."
		}
		col := (label - 1) % atlasColumns
		row := (label - 1) / atlasColumns
		cell := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
		drawLabel(atlas, cell, text)
	}
	return atlas
}

// marble fills dst with low-intensity Perlin noise. Non-positive noise
// stays pure black, which the renderer leaves untextured.
func marble(dst *image.RGBA, seed int64) {
	p := perlin.NewPerlin(2, 2, 3, seed)
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := p.Noise2D(float64(x)/48, float64(y)/48)
			v := uint8(max(0, min(1, n)) * marbleDepth)
			dst.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
}

func drawLabel(dst *image.RGBA, cell image.Rectangle, text string) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	glyph := image.NewRGBA(image.Rect(0, 0, width, face.Height))
	d := &font.Drawer{
		Dst:  glyph,
		Src:  image.NewUniform(colornames.White),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	h := int(float64(cell.Dy()) * glyphHeight)
	w := h * width / face.Height
	center := cell.Min.Add(image.Pt(cell.Dx()/2, cell.Dy()/2))
	target := image.Rect(center.X-w/2, center.Y-h/2, center.X-w/2+w, center.Y-h/2+h)
	draw.NearestNeighbor.Scale(dst, target, glyph, glyph.Bounds(), draw.Over, nil)
}

// DefaultAssets builds the procedural dice and their shared number atlas.
func DefaultAssets(cellSize int) (*AssetRegistry, error) {
	log.Println("Building dice meshes...")
	meshes, err := StandardMeshes()
	if err != nil {
		return nil, err
	}
	log.Printf("Drawing %dx%d number atlas...", atlasColumns*cellSize, atlasRows*cellSize)
	atlas := NewNumberAtlas(cellSize, 1)
	return NewAssetRegistry(meshes, atlas), nil
}
