package dieroller

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultScale turns a unit mesh into a die about 100 pixels across.
	DefaultScale = 50.0

	maxPenetration    = 1.0
	restingEpsilon    = 2.0
	restingVertices   = 3
	speedDampening    = 0.75
	settleSpin        = 40.0
	maxBisectionDepth = 16
)

var (
	DefaultBaseColor   = color.RGBA{R: 0x30, G: 0x30, B: 0xFF, A: 0xFF}
	DefaultResultColor = color.RGBA{R: 0xA0, G: 0x30, B: 0x30, A: 0xFF}
	DefaultLocation    = Vector3{X: 600, Y: 300, Z: 300}
)

// Body is anything the world can advance and draw.
type Body interface {
	Update(dt float64, acceleration Vector3, floorZ float64)
	ColoredFaces() []ColoredFace
	Moving() bool
	Frame() Frame
}

type options struct {
	location    Vector3
	velocity    *Vector3
	spin        *Vector3
	rng         *rand.Rand
	bouncer     Bouncer
	scale       float64
	baseColor   color.RGBA
	resultColor color.RGBA
	scripted    []Vector3
}

// Option configures a Model or Die at construction.
type Option func(*options)

func WithLocation(l Vector3) Option {
	return func(o *options) { o.location = l }
}

// WithVelocity fixes the initial velocity instead of drawing it at random.
func WithVelocity(v Vector3) Option {
	return func(o *options) { o.velocity = &v }
}

// WithSpin fixes the initial angular velocity, in degrees per second.
func WithSpin(w Vector3) Option {
	return func(o *options) { o.spin = &w }
}

func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

func WithBouncer(b Bouncer) Option {
	return func(o *options) { o.bouncer = b }
}

func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

func WithBaseColor(c color.RGBA) Option {
	return func(o *options) { o.baseColor = c }
}

func WithResultColor(c color.RGBA) Option {
	return func(o *options) { o.resultColor = c }
}

// WithScriptedBounces queues velocities for a Die. The first one replaces
// the initial velocity; each later one is used verbatim at a bounce.
func WithScriptedBounces(v ...Vector3) Option {
	return func(o *options) { o.scripted = append([]Vector3(nil), v...) }
}

func buildOptions(opts []Option) options {
	o := options{
		location:    DefaultLocation,
		scale:       DefaultScale,
		baseColor:   DefaultBaseColor,
		resultColor: DefaultResultColor,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.bouncer == nil {
		o.bouncer = PhysicsBouncer{}
	}
	return o
}

// Model is a rigid body that falls, bounces off the floor and settles.
// Once settled its frame never changes again.
type Model struct {
	mesh         *Mesh
	points       []Vector3
	scale        float64
	frame        Frame
	moving       bool
	centerOfMass Vector3
	baseColor    color.RGBA
	bouncer      Bouncer
}

// NewModel clones and scales mesh, then drops it from the configured
// location with a random (or fixed) velocity and spin.
func NewModel(mesh *Mesh, opts ...Option) *Model {
	return newModel(mesh, buildOptions(opts))
}

func newModel(mesh *Mesh, o options) *Model {
	scaled := mesh.Clone().Scaled(o.scale)
	m := &Model{
		mesh:         scaled,
		points:       scaled.Points(),
		scale:        o.scale,
		moving:       true,
		centerOfMass: scaled.AveragePoint(),
		baseColor:    o.baseColor,
		bouncer:      o.bouncer,
	}

	velocity := randomVelocity(o.rng)
	if o.velocity != nil {
		velocity = *o.velocity
	}
	spin := randomSpin(o.rng)
	if o.spin != nil {
		spin = *o.spin
	}
	m.frame = NewFrame(o.location, velocity, spin)
	return m
}

func randomVelocity(rng *rand.Rand) Vector3 {
	return Vector3{
		X: rng.Float64()*100 - 50,
		Y: rng.Float64()*200 - 100,
		Z: rng.Float64()*200 + 300,
	}
}

// randomSpin avoids axes close to vertical, which would just twirl the
// body in place.
func randomSpin(rng *rand.Rand) Vector3 {
	for {
		spin := Vector3{
			X: rng.Float64()*1000 - 500,
			Y: rng.Float64()*1000 - 500,
			Z: rng.Float64()*1000 - 500,
		}
		if spin.UnitVector().Dot(Up) <= 0.7 {
			return spin
		}
	}
}

func (m *Model) Frame() Frame {
	return m.frame
}

func (m *Model) Moving() bool {
	return m.moving
}

// CenterOfMass is in body space, after scaling.
func (m *Model) CenterOfMass() Vector3 {
	return m.centerOfMass
}

func (m *Model) Mesh() *Mesh {
	return m.mesh
}

// ColoredFaces returns every face in world space in the base color.
func (m *Model) ColoredFaces() []ColoredFace {
	out := make([]ColoredFace, m.mesh.FaceCount())
	for i := range out {
		out[i] = ColoredFace{Face: m.mesh.Face(i).Placed(m.frame), Color: m.baseColor}
	}
	return out
}

// Update advances the body by dt seconds. A settled body is left alone.
func (m *Model) Update(dt float64, acceleration Vector3, floorZ float64) {
	m.update(dt, acceleration, floorZ, 0)
}

func (m *Model) update(dt float64, acceleration Vector3, floorZ float64, depth int) {
	if !m.moving {
		return
	}

	candidate := m.frame.Advance(dt, acceleration)

	floor := NewFloor(floorZ)
	var xs, ys, zs []float64
	near := 0
	lowest := math.Inf(1)
	for _, p := range m.points {
		v := candidate.PositionVertex(p)
		d := floor.Distance(v)
		if d < 0 {
			xs = append(xs, v.X)
			ys = append(ys, v.Y)
			zs = append(zs, v.Z)
		}
		if d < restingEpsilon {
			near++
		}
		lowest = math.Min(lowest, d)
	}

	if len(zs) == 0 {
		m.frame = candidate
		return
	}

	depthBelow := -lowest
	if depthBelow > maxPenetration && depth < maxBisectionDepth {
		m.update(dt/2, acceleration, floorZ, depth+1)
		m.update(dt/2, acceleration, floorZ, depth+1)
		return
	}

	lift := Vector3{Z: depthBelow}
	contact := Vector3{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}.Add(lift)
	candidate = candidate.Translate(lift)
	restingContact := near >= restingVertices

	if candidate.Velocity.Magnitude()*speedDampening < acceleration.Magnitude() &&
		candidate.AngularVelocity.Magnitude() < settleSpin &&
		restingContact {
		m.moving = false
		m.frame = candidate
		log.Printf("Settled at %v", candidate.Location)
		return
	}

	m.frame = m.bouncer.Bounce(Contact{
		Frame:        candidate,
		ContactPoint: contact,
		CenterOfMass: candidate.PositionVertex(m.centerOfMass),
		Elapsed:      dt,
		Acceleration: acceleration,
	})
}
