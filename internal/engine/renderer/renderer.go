// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/math"
)

// Uniform names the viewer shaders must declare.
const (
	UniformModel = "uModel"
	UniformColor = "uColor"
)

// Attribute locations, matching the layout qualifiers in the shaders.
const (
	attribPosition = 0
	attribTexCoord = 1
	attribNormal   = 2
)

// Interleaved vertex layout: position(3) texcoord(2) normal(3).
const (
	floatsPerVertex = 8
	vertexStride    = floatsPerVertex * 4
)

var ErrVertexMismatch = errors.New("vertex stream length mismatch")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32

	VertexShader   string
	FragmentShader string
}

// Geometry is a non-indexed triangle list with one attribute entry per vertex.
type Geometry interface {
	VertexCount() int
	VertexData() []float32
	TexCoordData() []float32
	NormalData() []float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	vao         uint32
	vbo         uint32
	vertexCount int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.CompileProgram(cfg.VertexShader, cfg.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	for _, name := range []string{UniformModel, UniformColor} {
		if r.program.Uniform(name) < 0 {
			logger.Warn("shader uniform not active", zap.String("name", name))
		}
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID()))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteBuffers()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// SetMesh uploads geometry, replacing any previously uploaded mesh.
func (r *Renderer) SetMesh(g Geometry) error {
	data, err := Interleave(g.VertexData(), g.TexCoordData(), g.NormalData())
	if err != nil {
		return err
	}

	r.deleteBuffers()
	r.vertexCount = int32(g.VertexCount())
	if len(data) == 0 {
		logger.Warn("mesh has no triangles")
		return nil
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(attribTexCoord)

	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(5*4)))
	gl.EnableVertexAttribArray(attribNormal)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
		zap.Int32("vertices", r.vertexCount),
	)
	return nil
}

func (r *Renderer) deleteBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	r.vertexCount = 0
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded mesh with the given transform and solid color.
func (r *Renderer) Draw(model math.Mat4, color [3]float32) {
	if r.vao == 0 || r.vertexCount == 0 {
		return
	}
	r.program.Use()
	r.program.SetMat4(UniformModel, model)
	r.program.SetVec3(UniformColor, color)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Interleave packs per-vertex position, texcoord and normal streams into one
// buffer of floatsPerVertex floats per vertex.
func Interleave(positions, texCoords, normals []float32) ([]float32, error) {
	n := len(positions) / 3
	if len(positions) != n*3 || len(texCoords) != n*2 || len(normals) != n*3 {
		return nil, fmt.Errorf("%w: %d positions, %d texcoords, %d normals",
			ErrVertexMismatch, len(positions), len(texCoords), len(normals))
	}

	out := make([]float32, 0, n*floatsPerVertex)
	for i := 0; i < n; i++ {
		out = append(out, positions[i*3:i*3+3]...)
		out = append(out, texCoords[i*2:i*2+2]...)
		out = append(out, normals[i*3:i*3+3]...)
	}
	return out, nil
}
