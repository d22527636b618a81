package dieroller

import "math"

// Frame is an immutable snapshot of a rigid body's kinematic state.
// AngularVelocity's direction is the spin axis and its magnitude is in
// degrees per second. Every transition returns a new Frame.
type Frame struct {
	Location        Vector3
	Velocity        Vector3
	AngularVelocity Vector3
	Orientation     RotationMatrix
}

func NewFrame(location, velocity, angularVelocity Vector3) Frame {
	return Frame{
		Location:        location,
		Velocity:        velocity,
		AngularVelocity: angularVelocity,
		Orientation:     IdentityRotation(),
	}
}

// Advance integrates the frame forward by dt seconds under a constant
// acceleration. Position uses the average of the old and new velocity.
func (f Frame) Advance(dt float64, acceleration Vector3) Frame {
	newVelocity := f.Velocity.Add(acceleration.Multiply(dt))
	next := Frame{
		Location:        f.Location.Add(f.Velocity.Add(newVelocity).Divide(2).Multiply(dt)),
		Velocity:        newVelocity,
		AngularVelocity: f.AngularVelocity,
		Orientation:     f.Orientation,
	}
	if degrees := f.AngularVelocity.Magnitude() * dt; degrees != 0 {
		next.Orientation = NewAxisRotation(f.AngularVelocity, degrees).Multiply(f.Orientation)
	}
	return next
}

// PositionVertex maps a body-space vertex into world space.
func (f Frame) PositionVertex(v Vector3) Vector3 {
	return f.Orientation.Apply(v).Add(f.Location)
}

func (f Frame) WithVelocity(v Vector3) Frame {
	f.Velocity = v
	return f
}

func (f Frame) WithAngularVelocity(w Vector3) Frame {
	f.AngularVelocity = w
	return f
}

func (f Frame) WithLocation(l Vector3) Frame {
	f.Location = l
	return f
}

// Translate moves the frame without touching its motion.
func (f Frame) Translate(delta Vector3) Frame {
	f.Location = f.Location.Add(delta)
	return f
}

// Rotate left-multiplies a world-space rotation onto the orientation.
func (f Frame) Rotate(r RotationMatrix) Frame {
	f.Orientation = r.Multiply(f.Orientation)
	return f
}

// WithUp turns the frame so that a body-space direction ends up pointing
// along the world up axis.
func (f Frame) WithUp(target Vector3) Frame {
	t := f.Orientation.Apply(target).UnitVector()
	if t.IsZero() {
		return f
	}
	cos := math.Max(-1, math.Min(1, t.Dot(Up)))
	degrees := radiansToDegrees(math.Acos(cos))
	if degrees == 0 {
		return f
	}
	axis := t.Cross(Up)
	if axis.Magnitude() < 1e-12 {
		// Antiparallel: any horizontal axis works.
		axis = Vector3{X: 1}
	}
	return f.Rotate(NewAxisRotation(axis, degrees))
}
