package dieroller

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// LoadOBJFile reads a Wavefront OBJ mesh from disk.
func LoadOBJFile(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	mesh, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	log.Printf("Loaded %s: %d faces", fileName, mesh.FaceCount())
	return mesh, nil
}

// LoadOBJ parses the subset of OBJ used for dice: v, vt, vn and f lines
// whose corners are v, v/vt, v//vn or v/vt/vn. Every face must be a
// triangle or a quad. Texture V is flipped into image space. Faces are
// labelled with their 1-based position in the file.
func LoadOBJ(reader io.Reader) (*Mesh, error) {
	var (
		positions []Vector3
		texCoords []Vector2
		normals   []Vector3
		faces     []Face
	)

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}

		switch parts[0] {
		case "v":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, Vector3{X: v[0], Y: v[1], Z: v[2]})
		case "vt":
			v, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, Vector2{X: v[0], Y: 1 - v[1]})
		case "vn":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, Vector3{X: v[0], Y: v[1], Z: v[2]}.UnitVector())
		case "f":
			corners := parts[1:]
			if len(corners) != 3 && len(corners) != 4 {
				return nil, fmt.Errorf("line %d: face has %d corners: %w", lineNo, len(corners), ErrFaceArity)
			}
			f, err := parseOBJFace(corners, positions, texCoords, normals, strconv.Itoa(len(faces)+1))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			faces = append(faces, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}
	return NewMesh(faces)
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

// objIndex resolves a 1-based (or negative, relative) OBJ index.
func objIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("could not parse index '%s': %w", s, err)
	}
	if i < 0 {
		i += count
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index %s out of range [1,%d]", s, count)
	}
	return i, nil
}

func parseOBJFace(corners []string, positions []Vector3, texCoords []Vector2, normals []Vector3, label string) (Face, error) {
	var (
		vs  []Vector3
		uvs []Vector2
		ns  []Vector3
	)
	for _, corner := range corners {
		refs := strings.Split(corner, "/")
		vi, err := objIndex(refs[0], len(positions))
		if err != nil {
			return Face{}, fmt.Errorf("face vertex: %w", err)
		}
		vs = append(vs, positions[vi])

		if len(refs) > 1 && refs[1] != "" {
			ti, err := objIndex(refs[1], len(texCoords))
			if err != nil {
				return Face{}, fmt.Errorf("face texture coordinate: %w", err)
			}
			uvs = append(uvs, texCoords[ti])
		}
		if len(refs) > 2 && refs[2] != "" {
			ni, err := objIndex(refs[2], len(normals))
			if err != nil {
				return Face{}, fmt.Errorf("face normal: %w", err)
			}
			ns = append(ns, normals[ni])
		}
	}
	// Partial attributes are dropped rather than misaligned.
	if len(uvs) != len(vs) {
		uvs = nil
	}
	if len(ns) != len(vs) {
		ns = nil
	}
	return NewFace(vs, uvs, ns, label)
}
