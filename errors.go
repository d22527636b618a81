package dieroller

import "errors"

var (
	// ErrFaceArity is returned for faces that are not triangles or quads.
	ErrFaceArity = errors.New("face must have 3 or 4 vertices")
	// ErrEmptyMesh is returned when a mesh has no faces.
	ErrEmptyMesh = errors.New("mesh has no faces")
	// ErrMalformedSpec is returned for spawn strings that are not d<sides>[=<result>].
	ErrMalformedSpec = errors.New("malformed spawn spec")
	// ErrInvalidSides is returned when a die has fewer than one side.
	ErrInvalidSides = errors.New("sides must be at least 1")
	// ErrUnknownDie is returned when the registry has no mesh for a side count.
	ErrUnknownDie = errors.New("no mesh registered for die")
	// ErrResultOutOfRange is returned when a result does not index a face.
	ErrResultOutOfRange = errors.New("result out of range")
)
