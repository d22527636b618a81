package dieroller

import (
	"fmt"
	"image/color"
	"log"
)

// upFaceThreshold is how closely a settled face must point up to count
// as showing.
const upFaceThreshold = 0.98

// d20Nudge is added to a d20's random launch velocity.
var d20Nudge = Vector3{X: 10, Y: -40, Z: 0}

// Die is a Model that starts turned so its requested result faces up and
// highlights the showing face once it settles.
type Die struct {
	*Model
	sides             int
	result            int
	targetOrientation Vector3
	resultColor       color.RGBA
}

// NewDie spawns a die with the given number of sides, showing result
// (1-based face index) face up.
func NewDie(assets *AssetRegistry, sides, result int, opts ...Option) (*Die, error) {
	if sides < 1 {
		return nil, fmt.Errorf("d%d: %w", sides, ErrInvalidSides)
	}
	mesh, ok := assets.Mesh(sides)
	if !ok {
		return nil, fmt.Errorf("d%d: %w", sides, ErrUnknownDie)
	}
	if result < 1 || result > mesh.FaceCount() {
		return nil, fmt.Errorf("d%d result %d, mesh has %d faces: %w", sides, result, mesh.FaceCount(), ErrResultOutOfRange)
	}

	o := buildOptions(opts)
	if len(o.scripted) > 0 {
		first := o.scripted[0]
		o.velocity = &first
		o.bouncer = NewScriptedBouncer(o.scripted[1:], o.bouncer)
	} else if sides == 20 && o.velocity == nil {
		// Only random launches are nudged; an explicit or scripted
		// velocity is used as given.
		v := randomVelocity(o.rng).Add(d20Nudge)
		o.velocity = &v
	}

	model := newModel(mesh, o)
	target := model.mesh.Face(result - 1).CommonNormal()
	if sides == 4 {
		target = target.Multiply(-1)
	}
	model.frame = model.frame.WithUp(target)

	log.Printf("Spawned d%d showing %d at %v", sides, result, model.frame.Location)
	return &Die{
		Model:             model,
		sides:             sides,
		result:            result,
		targetOrientation: target,
		resultColor:       o.resultColor,
	}, nil
}

func (d *Die) Sides() int {
	return d.sides
}

func (d *Die) Result() int {
	return d.result
}

// TargetOrientation is the body-space normal of the requested face.
func (d *Die) TargetOrientation() Vector3 {
	return d.targetOrientation
}

// ColoredFaces paints the upward faces in the result color once the die
// has settled. A logical face may be split into several mesh faces, so at
// most FaceCount/sides faces are recolored. A mesh with fewer faces than
// sides has no quota and every upward face is recolored.
func (d *Die) ColoredFaces() []ColoredFace {
	faces := d.Model.ColoredFaces()
	if d.moving {
		return faces
	}
	quota := len(faces) / d.sides
	for i := range faces {
		if faces[i].CommonNormal().Dot(Up) <= upFaceThreshold {
			continue
		}
		faces[i].Color = d.resultColor
		quota--
		if quota == 0 {
			break
		}
	}
	return faces
}

// ShowingFace returns the index of the face pointing most nearly up and
// how closely it points up.
func (d *Die) ShowingFace() (index int, upness float64) {
	upness = -2
	for i := 0; i < d.mesh.FaceCount(); i++ {
		n := d.mesh.Face(i).Placed(d.frame).CommonNormal()
		if u := n.Dot(Up); u > upness {
			index, upness = i, u
		}
	}
	return index, upness
}
