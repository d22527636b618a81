package dieroller

import (
	"image"
	"testing"
)

func TestNumberAtlas(t *testing.T) {
	const cell = 64
	atlas := NewNumberAtlas(cell, 1)
	if got, want := atlas.Bounds(), image.Rect(0, 0, atlasColumns*cell, atlasRows*cell); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}

	for label := 1; label <= atlasColumns*atlasRows; label++ {
		col := (label - 1) % atlasColumns
		row := (label - 1) / atlasColumns
		r := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)

		white := 0
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := atlas.RGBAAt(x, y)
				if c.R == 0xFF && c.G == 0xFF && c.B == 0xFF {
					white++
				} else if c.R > marbleDepth {
					t.Fatalf("label %d: background texel %v brighter than the marble", label, c)
				}
			}
		}
		if white == 0 {
			t.Errorf("label %d has no glyph pixels", label)
		}
	}
}
