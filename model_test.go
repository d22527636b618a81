package dieroller

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
)

const (
	testFloorZ = -100.0
	testTick   = 0.016
)

var testGravity = Vector3{Z: -1500}

type recordingBouncer struct {
	contacts []Contact
}

func (r *recordingBouncer) Bounce(c Contact) Frame {
	r.contacts = append(r.contacts, c)
	return PhysicsBouncer{}.Bounce(c)
}

func testCube(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewCube()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func lowestZ(b Body, points []Vector3) float64 {
	return frameLowestZ(b.Frame(), points)
}

func frameLowestZ(f Frame, points []Vector3) float64 {
	lowest := math.Inf(1)
	for _, p := range points {
		lowest = math.Min(lowest, f.PositionVertex(p).Z)
	}
	return lowest
}

// runUntilSettled ticks b until it stops or limit seconds pass, and
// returns the simulated time.
func runUntilSettled(b Body, limit float64, each func()) float64 {
	elapsed := 0.0
	for b.Moving() && elapsed < limit {
		b.Update(testTick, testGravity, testFloorZ)
		elapsed += testTick
		if each != nil {
			each()
		}
	}
	return elapsed
}

func TestModelFlatDropSettles(t *testing.T) {
	m := NewModel(testCube(t),
		WithVelocity(Vector3{}),
		WithSpin(Vector3{}),
		WithRand(rand.New(rand.NewSource(1))))

	elapsed := runUntilSettled(m, 5, nil)
	if m.Moving() {
		t.Fatalf("still moving after %.2fs", elapsed)
	}
	if elapsed > 1 {
		t.Errorf("settled after %.2fs, want a flat drop to stop on first contact", elapsed)
	}
	if got := lowestZ(m, m.mesh.Points()); !almostEqual(got, testFloorZ) {
		t.Errorf("lowest vertex at %v, want %v", got, testFloorZ)
	}
}

func TestModelSettleLatches(t *testing.T) {
	m := NewModel(testCube(t),
		WithVelocity(Vector3{}),
		WithSpin(Vector3{}),
		WithRand(rand.New(rand.NewSource(1))))
	runUntilSettled(m, 5, nil)
	if m.Moving() {
		t.Fatal("did not settle")
	}

	settled := m.Frame()
	for i := 0; i < 100; i++ {
		m.Update(testTick, Vector3{X: 500, Z: -5000}, testFloorZ+40)
	}
	if m.Moving() {
		t.Errorf("Moving() = true after settling")
	}
	if got := m.Frame(); got != settled {
		t.Errorf("frame changed after settling: %v, want %v", got.Location, settled.Location)
	}
}

func TestModelPenetrationBound(t *testing.T) {
	m := NewModel(testCube(t),
		WithVelocity(Vector3{X: 10, Y: 20, Z: 300}),
		WithSpin(Vector3{Y: 180}),
		WithRand(rand.New(rand.NewSource(1))))
	points := m.mesh.Points()

	runUntilSettled(m, 5, func() {
		if got := lowestZ(m, points); got < testFloorZ-1e-6 {
			t.Fatalf("vertex %v below the floor at %v", got, m.Frame().Location)
		}
	})
}

func TestModelBisectsDeepSteps(t *testing.T) {
	rec := &recordingBouncer{}
	m := NewModel(testCube(t),
		WithLocation(Vector3{Z: testFloorZ + DefaultScale + 5}),
		WithVelocity(Vector3{Z: -2000}),
		WithSpin(Vector3{X: 300}),
		WithBouncer(rec),
		WithRand(rand.New(rand.NewSource(1))))

	const dt = 0.1
	m.Update(dt, testGravity, testFloorZ)

	if len(rec.contacts) == 0 {
		t.Fatal("no contact recorded")
	}
	if got := rec.contacts[0].Elapsed; got >= dt/2 {
		t.Errorf("first contact after a %vs step, want a bisected step", got)
	}
	if got := lowestZ(m, m.mesh.Points()); got < testFloorZ-1e-6 {
		t.Errorf("lowest vertex at %v, want at or above %v", got, testFloorZ)
	}
}

func TestModelBisectionDepthIsCapped(t *testing.T) {
	rec := &recordingBouncer{}
	m := NewModel(testCube(t),
		WithLocation(Vector3{Z: testFloorZ + DefaultScale + 5}),
		WithVelocity(Vector3{Z: -1e9}),
		WithSpin(Vector3{}),
		WithBouncer(rec),
		WithRand(rand.New(rand.NewSource(1))))
	points := m.mesh.Points()

	// Even the smallest step sinks hundreds of units, so halving stops
	// at the depth cap and the step is taken with a lift.
	m.Update(testTick, testGravity, testFloorZ)

	if len(rec.contacts) == 0 {
		t.Fatal("no contact recorded")
	}
	if limit := 1 << maxBisectionDepth; len(rec.contacts) > limit {
		t.Errorf("%d contacts in one tick, want at most %d", len(rec.contacts), limit)
	}
	first := rec.contacts[0]
	if want := testTick / (1 << maxBisectionDepth); first.Elapsed != want {
		t.Errorf("first contact step = %v, want the capped %v", first.Elapsed, want)
	}
	if got := frameLowestZ(first.Frame, points); !almostEqual(got, testFloorZ) {
		t.Errorf("contact frame lowest vertex at %v, want lifted to %v", got, testFloorZ)
	}
	if got := lowestZ(m, points); got < testFloorZ-1e-6 {
		t.Errorf("lowest vertex at %v after the tick, want at or above %v", got, testFloorZ)
	}
}

func TestModelColoredFaces(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	m := NewModel(testCube(t),
		WithLocation(Vector3{X: 10, Y: 20, Z: 30}),
		WithScale(2),
		WithBaseColor(c),
		WithRand(rand.New(rand.NewSource(1))))

	faces := m.ColoredFaces()
	if len(faces) != 6 {
		t.Fatalf("len(ColoredFaces()) = %d, want 6", len(faces))
	}
	for _, f := range faces {
		if f.Color != c {
			t.Errorf("face color = %v, want %v", f.Color, c)
		}
	}
	if got := faces[0].Center(); !vectorsAlmostEqual(got, Vector3{X: 10, Y: 20, Z: 32}) {
		t.Errorf("top face center = %v, want (10, 20, 32)", got)
	}
}

func TestRandomLaunch(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		v := randomVelocity(rng)
		if v.X < -50 || v.X > 50 || v.Y < -100 || v.Y > 100 || v.Z < 300 || v.Z > 500 {
			t.Fatalf("randomVelocity() = %v out of range", v)
		}
		if s := randomSpin(rng); s.UnitVector().Dot(Up) > 0.7 {
			t.Fatalf("randomSpin() = %v is too close to vertical", s)
		}
	}
}
