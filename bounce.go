package dieroller

import "log"

const (
	bounceDampening        = 0.6
	horizontalRetention    = 0.70
	spinFriction           = 0.15
	torqueCoupling         = 4.0
	rotationalInertia      = 30.0
	rotationalAddThreshold = 180.0
)

// Contact describes a floor crossing. Frame has already been lifted out
// of the floor; ContactPoint and CenterOfMass are in world space.
type Contact struct {
	Frame        Frame
	ContactPoint Vector3
	CenterOfMass Vector3
	Elapsed      float64
	Acceleration Vector3
}

// Bouncer computes the frame that follows a floor contact.
type Bouncer interface {
	Bounce(c Contact) Frame
}

// PhysicsBouncer is the default impulse response. It reflects and damps
// the vertical velocity, turns the contact offset into torque, and lets
// spin drag the body sideways.
type PhysicsBouncer struct{}

func (PhysicsBouncer) Bounce(c Contact) Frame {
	f := c.Frame
	if f.Velocity.Z > 0 {
		// still leaving the floor from an earlier bounce
		return f
	}

	leverArm := c.CenterOfMass.Subtract(c.ContactPoint)
	torque := leverArm.Cross(c.Acceleration).Multiply(c.Elapsed * torqueCoupling / rotationalInertia)
	bounceFactor := leverArm.UnitVector().Dot(Up) * bounceDampening

	step := NewAxisRotation(f.AngularVelocity, f.AngularVelocity.Magnitude()*c.Elapsed)
	swept := step.Apply(c.ContactPoint.Subtract(f.Location)).Add(f.Location)
	sweep := swept.Subtract(c.ContactPoint)

	velocity := Vector3{
		X: f.Velocity.X*horizontalRetention - sweep.X,
		Y: f.Velocity.Y*horizontalRetention - sweep.Y,
		Z: -f.Velocity.Z * bounceFactor,
	}
	spin := addRotational(f.AngularVelocity.Multiply(1-spinFriction), torque)
	return f.WithVelocity(velocity).WithAngularVelocity(spin)
}

// addRotational sums two angular velocities, working at quarter scale
// while either exceeds rotationalAddThreshold.
func addRotational(a, b Vector3) Vector3 {
	if a.Magnitude() > rotationalAddThreshold || b.Magnitude() > rotationalAddThreshold {
		return addRotational(a.Multiply(0.25), b.Multiply(0.25)).Multiply(4)
	}
	return a.Add(b)
}

// ScriptedBouncer replays a queue of velocities, one per bounce, and then
// hands off to Fallback.
type ScriptedBouncer struct {
	queue    []Vector3
	Fallback Bouncer
}

func NewScriptedBouncer(velocities []Vector3, fallback Bouncer) *ScriptedBouncer {
	if fallback == nil {
		fallback = PhysicsBouncer{}
	}
	return &ScriptedBouncer{
		queue:    append([]Vector3(nil), velocities...),
		Fallback: fallback,
	}
}

// Remaining reports how many scripted bounces are left.
func (s *ScriptedBouncer) Remaining() int {
	return len(s.queue)
}

func (s *ScriptedBouncer) Bounce(c Contact) Frame {
	if len(s.queue) == 0 {
		return s.Fallback.Bounce(c)
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	if len(s.queue) == 0 {
		log.Println("Scripted bounces exhausted, using physics.")
	}
	return c.Frame.WithVelocity(next)
}
