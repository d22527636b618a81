package dieroller

// Camera is a fixed pinhole camera. The world is first turned by a
// constant view rotation; X and Y are then scaled by
// focal/(distance - viewZ). Screen Y grows downward.
type Camera struct {
	view        RotationMatrix
	focalLength float64
	distance    float64
	offset      Vector2
}

func NewCamera(tiltDeg, focalLength, distance float64, offset Vector2) *Camera {
	return &Camera{
		view:        NewEulerRotation(tiltDeg, 0, 0),
		focalLength: focalLength,
		distance:    distance,
		offset:      offset,
	}
}

// View rotates a world point into view space. +Z points at the camera.
func (c *Camera) View(v Vector3) Vector3 {
	return c.view.Apply(v)
}

// Project returns the perspective-scaled X and Y with view-space Z kept.
func (c *Camera) Project(v Vector3) Vector3 {
	adjusted := c.view.Apply(v)
	scale := c.focalLength / (c.distance - adjusted.Z)
	return Vector3{X: adjusted.X * scale, Y: adjusted.Y * scale, Z: adjusted.Z}
}

// ToScreen maps a projected point to pixel coordinates.
func (c *Camera) ToScreen(p Vector3) Vector2 {
	return Vector2{X: p.X + c.offset.X, Y: c.offset.Y - p.Y}
}

// ScreenPoints projects every vertex of f to pixel coordinates.
func (c *Camera) ScreenPoints(f Face) []Vector2 {
	out := make([]Vector2, len(f.Vertices))
	for i, v := range f.Vertices {
		out[i] = c.ToScreen(c.Project(v))
	}
	return out
}

// IsFacingAway reports whether the projected winding of f implies a
// normal pointing away from the camera.
func (c *Camera) IsFacingAway(f Face) bool {
	if len(f.Vertices) < 3 {
		return true
	}
	p0 := c.Project(f.Vertices[0])
	p1 := c.Project(f.Vertices[1])
	p2 := c.Project(f.Vertices[2])
	return p0.Subtract(p1).Cross(p1.Subtract(p2)).Z < 0
}

// Depth is the view-space Z of the face centre. Larger is nearer.
func (c *Camera) Depth(f Face) float64 {
	return c.View(f.Center()).Z
}
