package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/t0yman/opengl-model-viewer/pkg/formats"
)

// BuildMesh flattens a parsed OBJ document into a non-indexed triangle
// mesh. Every face corner becomes its own vertex, faces in declaration
// order and corners in written order; corners shared between faces are
// duplicated, not merged. Corner indices are already validated by the
// parser, and normals are copied as stored.
func BuildMesh(doc *formats.OBJ) *Mesh {
	if len(doc.Faces) == 0 {
		return &Mesh{}
	}

	vertices := make([]Vertex, 0, len(doc.Faces)*3)

	bounds := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}

	for _, face := range doc.Faces {
		for _, corner := range face.Corners {
			pos := doc.Positions[corner.Position]
			updateBounds(&bounds, pos)

			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   doc.Normals[corner.Normal],
			})
		}
	}

	return &Mesh{
		Vertices: vertices,
		Bounds:   bounds,
	}
}

// LoadFile parses the OBJ file at path and builds its mesh.
func LoadFile(path string) (*Mesh, error) {
	doc, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	return BuildMesh(doc), nil
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
