package dieroller

import (
	"fmt"
	"image/color"
)

// Face is a triangle or quad with per-vertex normals and texture
// coordinates. Texture coordinates are in image space: (0,0) is the top
// left of the texture and (1,1) the bottom right.
type Face struct {
	Vertices  []Vector3
	Normals   []Vector3
	TexCoords []Vector2
	Label     string
}

// ColoredFace is a world-space face ready for the renderer.
type ColoredFace struct {
	Face
	Color color.RGBA
}

// NewFace validates the vertex count and fills in missing normals and
// texture coordinates. Missing normals default to the common normal.
func NewFace(vertices []Vector3, texCoords []Vector2, normals []Vector3, label string) (Face, error) {
	n := len(vertices)
	if n != 3 && n != 4 {
		return Face{}, fmt.Errorf("face %q has %d vertices: %w", label, n, ErrFaceArity)
	}
	if texCoords != nil && len(texCoords) != n {
		return Face{}, fmt.Errorf("face %q has %d texture coordinates for %d vertices: %w", label, len(texCoords), n, ErrFaceArity)
	}
	if normals != nil && len(normals) != n {
		return Face{}, fmt.Errorf("face %q has %d normals for %d vertices: %w", label, len(normals), n, ErrFaceArity)
	}

	f := Face{
		Vertices:  append([]Vector3(nil), vertices...),
		TexCoords: make([]Vector2, n),
		Normals:   make([]Vector3, n),
		Label:     label,
	}
	copy(f.TexCoords, texCoords)
	if normals != nil {
		copy(f.Normals, normals)
	} else {
		common := f.CommonNormal()
		for i := range f.Normals {
			f.Normals[i] = common
		}
	}
	return f, nil
}

func (f Face) VertexCount() int {
	return len(f.Vertices)
}

// CommonNormal is the unit normal implied by the winding of the first
// three vertices. Counter-clockwise faces seen from outside point out.
func (f Face) CommonNormal() Vector3 {
	if len(f.Vertices) < 3 {
		return Up
	}
	s01 := f.Vertices[0].Subtract(f.Vertices[1])
	s12 := f.Vertices[1].Subtract(f.Vertices[2])
	return s01.Cross(s12).UnitVector()
}

// Center is the average of the face's vertices.
func (f Face) Center() Vector3 {
	if len(f.Vertices) == 0 {
		return Vector3{}
	}
	var sum Vector3
	for _, v := range f.Vertices {
		sum = sum.Add(v)
	}
	return sum.Divide(float64(len(f.Vertices)))
}

// Clone returns a deep copy.
func (f Face) Clone() Face {
	return Face{
		Vertices:  append([]Vector3(nil), f.Vertices...),
		Normals:   append([]Vector3(nil), f.Normals...),
		TexCoords: append([]Vector2(nil), f.TexCoords...),
		Label:     f.Label,
	}
}

// Scaled multiplies every vertex by s. Normals are unchanged.
func (f Face) Scaled(s float64) Face {
	out := f.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = v.Multiply(s)
	}
	return out
}

// Placed moves the face into a frame: vertices are positioned and
// normals rotated by the frame's orientation.
func (f Face) Placed(frame Frame) Face {
	out := f.Clone()
	for i, v := range out.Vertices {
		out.Vertices[i] = frame.PositionVertex(v)
	}
	for i, n := range out.Normals {
		out.Normals[i] = frame.Orientation.Apply(n)
	}
	return out
}
