// Package formats provides parsers for 3D model file formats.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ format errors.
var (
	ErrSourceUnavailable = errors.New("model source unavailable")
	ErrMalformedGeometry = errors.New("malformed geometry")
)

// Corner is one face corner, resolved to 0-based indices into the
// document's position and normal lists.
type Corner struct {
	Position int
	Normal   int
}

// Face is a single triangle. Corners keep the order they were written in.
type Face struct {
	Corners [3]Corner
}

// OBJ is a parsed Wavefront OBJ document, restricted to the subset this
// viewer supports: positions, normals, and triangular "p//n" faces.
// All slices preserve file order, and every corner index is already
// validated against the lists declared before it.
type OBJ struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Faces     []Face
}

// ParseOBJ parses an OBJ document from r.
//
// Recognized directives are "v x y z", "vn x y z", and "f p//n p//n p//n".
// Blank lines, comment lines starting with '#', and unknown directives are
// skipped. Faces with more than three corners keep only the first three.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if len(line) > 0 && line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			pos, err := parseVec3(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			obj.Positions = append(obj.Positions, pos)

		case "vn":
			norm, err := parseVec3(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			obj.Normals = append(obj.Normals, norm)

		case "f":
			face, err := obj.parseFace(fields[1:], lineNo)
			if err != nil {
				return nil, err
			}
			obj.Faces = append(obj.Faces, face)

		default:
			// Unsupported directives (vt, o, g, s, usemtl, mtllib, ...)
			// are ignored rather than rejected.
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	return obj, nil
}

// parseVec3 parses the three coordinates of a "v" or "vn" line.
// Extra fields beyond the third are ignored.
func parseVec3(args []string, lineNo int) (mgl32.Vec3, error) {
	if len(args) < 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: line %d: expected 3 coordinates, got %d", ErrMalformedGeometry, lineNo, len(args))
	}

	var v mgl32.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: line %d: bad coordinate %q", ErrMalformedGeometry, lineNo, args[i])
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFace parses the corner tokens of an "f" line. Each token must be in
// "p//n" form, and its indices must resolve inside the lists declared so
// far. Tokens beyond the third are ignored.
func (o *OBJ) parseFace(args []string, lineNo int) (Face, error) {
	if len(args) < 3 {
		return Face{}, fmt.Errorf("%w: line %d: face has %d corners, need 3", ErrMalformedGeometry, lineNo, len(args))
	}

	var face Face
	for i := 0; i < 3; i++ {
		corner, err := o.parseCorner(args[i], lineNo)
		if err != nil {
			return Face{}, err
		}
		face.Corners[i] = corner
	}
	return face, nil
}

// parseCorner resolves a single "p//n" token to 0-based indices.
func (o *OBJ) parseCorner(token string, lineNo int) (Corner, error) {
	parts := strings.Split(token, "/")
	if len(parts) != 3 || parts[1] != "" {
		return Corner{}, fmt.Errorf("%w: line %d: corner %q is not in p//n form", ErrMalformedGeometry, lineNo, token)
	}

	pi, err := strconv.Atoi(parts[0])
	if err != nil {
		return Corner{}, fmt.Errorf("%w: line %d: bad position index %q", ErrMalformedGeometry, lineNo, parts[0])
	}
	ni, err := strconv.Atoi(parts[2])
	if err != nil {
		return Corner{}, fmt.Errorf("%w: line %d: bad normal index %q", ErrMalformedGeometry, lineNo, parts[2])
	}

	// OBJ indices are 1-based. Only indices into the lists declared before
	// this face are accepted; forward references are rejected.
	pi--
	ni--
	if pi < 0 || pi >= len(o.Positions) {
		return Corner{}, fmt.Errorf("%w: line %d: position index %d out of range [1,%d]", ErrMalformedGeometry, lineNo, pi+1, len(o.Positions))
	}
	if ni < 0 || ni >= len(o.Normals) {
		return Corner{}, fmt.Errorf("%w: line %d: normal index %d out of range [1,%d]", ErrMalformedGeometry, lineNo, ni+1, len(o.Normals))
	}

	return Corner{Position: pi, Normal: ni}, nil
}

// ParseOBJFile parses an OBJ document from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return ParseOBJ(f)
}
