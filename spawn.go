package dieroller

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Legacy result shorthands.
const (
	resultPlus  = 12
	resultMinus = 11
)

// SpawnSpec is a parsed "d<sides>[=<result>]" string.
type SpawnSpec struct {
	Sides  int
	Result int
}

func (s SpawnSpec) String() string {
	return fmt.Sprintf("d%d=%d", s.Sides, s.Result)
}

// ParseSpawnSpec parses strings like "d20", "d6=4" or "d12=+". When the
// result is omitted a face is picked uniformly at random with rng.
func ParseSpawnSpec(s string, rng *rand.Rand) (SpawnSpec, error) {
	body, found := strings.CutPrefix(strings.TrimSpace(s), "d")
	if !found {
		return SpawnSpec{}, fmt.Errorf("%q: missing leading 'd': %w", s, ErrMalformedSpec)
	}
	sidesText, resultText, hasResult := strings.Cut(body, "=")

	sides, err := strconv.Atoi(sidesText)
	if err != nil {
		return SpawnSpec{}, fmt.Errorf("%q: sides %q: %w: %w", s, sidesText, ErrMalformedSpec, err)
	}
	if sides < 1 {
		return SpawnSpec{}, fmt.Errorf("%q: %w", s, ErrInvalidSides)
	}

	spec := SpawnSpec{Sides: sides}
	switch {
	case !hasResult:
		// draw in [0, sides) and shift to a 1-based face value
		spec.Result = rng.Intn(sides) + 1
	case resultText == "+":
		spec.Result = resultPlus
	case resultText == "-":
		spec.Result = resultMinus
	default:
		spec.Result, err = strconv.Atoi(resultText)
		if err != nil {
			return SpawnSpec{}, fmt.Errorf("%q: result %q: %w: %w", s, resultText, ErrMalformedSpec, err)
		}
	}
	return spec, nil
}

// Spawn builds the die a spec describes.
func Spawn(assets *AssetRegistry, spec SpawnSpec, opts ...Option) (*Die, error) {
	return NewDie(assets, spec.Sides, spec.Result, opts...)
}
