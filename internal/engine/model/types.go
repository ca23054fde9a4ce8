// Package model builds GPU-ready triangle meshes from parsed model files.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex represents a mesh vertex with position and normal, laid out for
// interleaved GPU upload.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh holds flattened, non-indexed triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
