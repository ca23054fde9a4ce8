// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FlatVertexShader is the vertex shader for per-vertex colored geometry.
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader is the fragment shader for per-vertex colored geometry.
//
//go:embed flat.frag
var FlatFragmentShader string

// NormalVertexShader is the vertex shader for normal-visualized meshes.
//
//go:embed normal.vert
var NormalVertexShader string

// NormalFragmentShader is the fragment shader for normal-visualized meshes.
//
//go:embed normal.frag
var NormalFragmentShader string
