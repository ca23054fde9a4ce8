package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/t0yman/opengl-model-viewer/internal/engine/model"
)

// BoundsWireframeVertexCount is the number of line endpoints in a box
// wireframe (12 edges, 2 points each).
const BoundsWireframeVertexCount = 24

// BoundsWireframe generates line vertices outlining b, interleaved as
// [x, y, z, r, g, b] per vertex for the flat color shader. The result
// is meant to be drawn as GL_LINES.
func BoundsWireframe(b model.Bounds, color mgl32.Vec3) []float32 {
	minX, minY, minZ := b.Min.X(), b.Min.Y(), b.Min.Z()
	maxX, maxY, maxZ := b.Max.X(), b.Max.Y(), b.Max.Z()

	lines := [][2][3]float32{
		// Bottom face
		{{minX, minY, minZ}, {maxX, minY, minZ}},
		{{maxX, minY, minZ}, {maxX, minY, maxZ}},
		{{maxX, minY, maxZ}, {minX, minY, maxZ}},
		{{minX, minY, maxZ}, {minX, minY, minZ}},
		// Top face
		{{minX, maxY, minZ}, {maxX, maxY, minZ}},
		{{maxX, maxY, minZ}, {maxX, maxY, maxZ}},
		{{maxX, maxY, maxZ}, {minX, maxY, maxZ}},
		{{minX, maxY, maxZ}, {minX, maxY, minZ}},
		// Vertical edges
		{{minX, minY, minZ}, {minX, maxY, minZ}},
		{{maxX, minY, minZ}, {maxX, maxY, minZ}},
		{{maxX, minY, maxZ}, {maxX, maxY, maxZ}},
		{{minX, minY, maxZ}, {minX, maxY, maxZ}},
	}

	out := make([]float32, 0, BoundsWireframeVertexCount*6)
	for _, line := range lines {
		for _, p := range line {
			out = append(out, p[0], p[1], p[2], color.X(), color.Y(), color.Z())
		}
	}
	return out
}
