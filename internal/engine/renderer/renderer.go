// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/t0yman/opengl-model-viewer/internal/engine/debug"
	"github.com/t0yman/opengl-model-viewer/internal/engine/model"
	"github.com/t0yman/opengl-model-viewer/internal/engine/renderer/shaders"
	"github.com/t0yman/opengl-model-viewer/internal/engine/shader"
	"github.com/t0yman/opengl-model-viewer/internal/logger"
)

// Fixed projection parameters.
const (
	fovYDegrees = 45.0
	nearPlane   = 0.1
	farPlane    = 100.0
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// program bundles a shader program with its matrix uniform locations.
type program struct {
	id            uint32
	locModel      int32
	locView       int32
	locProjection int32
}

// Renderer handles all OpenGL rendering. When a mesh is set it is drawn
// with the normal-visualization program; otherwise the built-in demo
// triangle is drawn with the flat color program.
type Renderer struct {
	config Config

	flat    program
	normals program

	// Built-in demo triangle
	triangleVAO uint32
	triangleVBO uint32

	// Loaded mesh
	meshVAO     uint32
	meshVBO     uint32
	vertexCount int32

	// Bounding box wireframe of the loaded mesh
	boundsVAO  uint32
	boundsVBO  uint32
	showBounds bool
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.2, 0.3, 0.3, 1.0) // Muted teal background
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	// Compile both programs
	var err error
	r.flat, err = newProgram(shaders.FlatVertexShader, shaders.FlatFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	r.normals, err = newProgram(shaders.NormalVertexShader, shaders.NormalFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("normals program: %w", err)
	}

	// Create the demo triangle
	r.createTriangle()

	return r, nil
}

// newProgram compiles a program and resolves the shared matrix uniforms.
func newProgram(vertexSrc, fragmentSrc string) (program, error) {
	id, err := shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return program{}, err
	}
	return program{
		id:            id,
		locModel:      shader.MustGetUniform(id, "uModel"),
		locView:       shader.MustGetUniform(id, "uView"),
		locProjection: shader.MustGetUniform(id, "uProjection"),
	}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	r.clearMesh()
	if r.triangleVAO != 0 {
		gl.DeleteVertexArrays(1, &r.triangleVAO)
	}
	if r.triangleVBO != 0 {
		gl.DeleteBuffers(1, &r.triangleVBO)
	}
	if r.flat.id != 0 {
		gl.DeleteProgram(r.flat.id)
	}
	if r.normals.id != 0 {
		gl.DeleteProgram(r.normals.id)
	}
}

// Resize handles window resize. Non-positive sizes (minimized window)
// are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the scene with the given view matrix: the loaded mesh if
// one is set, the demo triangle otherwise.
func (r *Renderer) Draw(view mgl32.Mat4) {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	projection := mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, nearPlane, farPlane)
	modelMat := mgl32.Ident4()

	if r.vertexCount > 0 {
		r.drawWith(r.normals, r.meshVAO, gl.TRIANGLES, r.vertexCount, modelMat, view, projection)
	} else {
		r.drawWith(r.flat, r.triangleVAO, gl.TRIANGLES, 3, modelMat, view, projection)
	}

	if r.showBounds && r.boundsVAO != 0 {
		r.drawWith(r.flat, r.boundsVAO, gl.LINES, debug.BoundsWireframeVertexCount, modelMat, view, projection)
	}
}

func (r *Renderer) drawWith(p program, vao uint32, mode uint32, count int32, modelMat, view, projection mgl32.Mat4) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.locModel, 1, false, &modelMat[0])
	gl.UniformMatrix4fv(p.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(p.locProjection, 1, false, &projection[0])

	gl.BindVertexArray(vao)
	gl.DrawArrays(mode, 0, count)
	gl.BindVertexArray(0)
}

// ToggleBounds flips bounding box display and reports the new state.
func (r *Renderer) ToggleBounds() bool {
	r.showBounds = !r.showBounds
	return r.showBounds
}

// ReadPixels returns the framebuffer contents as tightly packed RGBA
// bytes, rows ordered bottom-up as OpenGL returns them.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// SetMesh uploads a mesh to the GPU, replacing any previous one.
func (r *Renderer) SetMesh(m *model.Mesh) {
	r.clearMesh()
	if len(m.Vertices) == 0 {
		return
	}

	stride := int32(unsafe.Sizeof(model.Vertex{}))

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertexCount = int32(len(m.Vertices))
	r.setBounds(m.Bounds)
	logger.Debug("mesh uploaded",
		zap.Int32("vertices", r.vertexCount),
		zap.Uint32("vao", r.meshVAO),
	)
}

// setBounds uploads the bounding box wireframe for the loaded mesh.
func (r *Renderer) setBounds(b model.Bounds) {
	// Yellow stands out against the teal background
	vertices := debug.BoundsWireframe(b, mgl32.Vec3{1.0, 1.0, 0.0})

	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)

	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// clearMesh deletes the current mesh and bounds buffers, if any.
func (r *Renderer) clearMesh() {
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
		r.meshVAO = 0
	}
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
		r.meshVBO = 0
	}
	if r.boundsVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boundsVAO)
		r.boundsVAO = 0
	}
	if r.boundsVBO != 0 {
		gl.DeleteBuffers(1, &r.boundsVBO)
		r.boundsVBO = 0
	}
	r.vertexCount = 0
}

// createTriangle creates the built-in demo triangle shown when no model
// is loaded. The corners sit at different depths so orbiting is visible.
func (r *Renderer) createTriangle() {
	// Position (x, y, z) + color (r, g, b)
	vertices := []float32{
		-0.5, -0.5, 0.7, 1.0, 0.0, 0.0, // Left - Red
		0.5, -0.5, -0.3, 0.0, 1.0, 0.0, // Right - Green
		0.0, 0.5, 0.5, 0.0, 0.0, 1.0, // Top - Blue
	}

	gl.GenVertexArrays(1, &r.triangleVAO)
	gl.BindVertexArray(r.triangleVAO)

	gl.GenBuffers(1, &r.triangleVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.triangleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("demo triangle created",
		zap.Uint32("vao", r.triangleVAO),
		zap.Uint32("vbo", r.triangleVBO),
	)
}
