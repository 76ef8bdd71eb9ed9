// Package renderer draws the globe with OpenGL.
//
// Globe orchestrates the two render passes against the Device interface;
// Renderer implements Device on an OpenGL 4.1 core context.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-globe/internal/engine/shader"
	"github.com/Faultbox/midgard-globe/internal/globe/sphere"
	"github.com/Faultbox/midgard-globe/internal/logger"
	"github.com/Faultbox/midgard-globe/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations, matching the layout qualifiers in globe.vert.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTangent  = 2
	AttribTexCoord = 3
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Info describes the OpenGL implementation.
type Info struct {
	Version  string
	Renderer string
	Vendor   string
	GLSL     string
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	info   Info

	program   uint32
	locations [uniformCount]int32

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
	for i := range r.locations {
		r.locations[i] = -1
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.info = Info{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	logger.Info("OpenGL initialized",
		zap.String("version", r.info.Version),
		zap.String("renderer", r.info.Renderer),
		zap.String("vendor", r.info.Vendor),
		zap.String("glsl", r.info.GLSL),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Info returns the OpenGL implementation strings.
func (r *Renderer) Info() Info {
	return r.info
}

// UseProgram makes program current and resolves the globe uniforms in it.
// Uniforms the linker dropped resolve to -1 and are silently skipped by GL.
func (r *Renderer) UseProgram(program uint32) {
	r.program = program
	gl.UseProgram(program)

	var missing []string
	for u := Uniform(0); u < uniformCount; u++ {
		r.locations[u] = shader.GetUniform(program, u.Name())
		if r.locations[u] < 0 {
			missing = append(missing, u.Name())
		}
	}
	logger.Debug("globe program bound",
		zap.Uint32("program", program),
		zap.Strings("inactive_uniforms", missing),
	)
}

// UploadMesh replaces the vertex buffer with the sphere's interleaved stream.
func (r *Renderer) UploadMesh(m *sphere.Mesh) error {
	data := m.Floats()
	if len(data) == 0 {
		return fmt.Errorf("upload mesh: no vertices")
	}

	if r.vao == 0 {
		gl.GenVertexArrays(1, &r.vao)
		gl.GenBuffers(1, &r.vbo)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	attrib := func(loc uint32, size int32, offset uintptr) {
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, sphere.Stride, offset)
		gl.EnableVertexAttribArray(loc)
	}
	attrib(AttribPosition, 4, sphere.PositionOffset)
	attrib(AttribNormal, 4, sphere.NormalOffset)
	attrib(AttribTangent, 4, sphere.TangentOffset)
	attrib(AttribTexCoord, 2, sphere.TexCoordOffset)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.vertexCount = m.Count()
	logger.Debug("sphere uploaded",
		zap.Int("subdivisions", m.Subdivisions),
		zap.Int32("vertices", r.vertexCount),
		zap.Int("bytes", len(data)*4),
	)
	return nil
}

// Close cleans up renderer resources. The program is owned by the caller.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
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

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Clear starts a new frame with the globe program bound.
func (r *Renderer) Clear() {
	gl.UseProgram(r.program)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) SetMat4(u Uniform, m math.Mat4) {
	gl.UniformMatrix4fv(r.locations[u], 1, false, m.Ptr())
}

func (r *Renderer) SetVec4(u Uniform, v math.Vec4) {
	gl.Uniform4f(r.locations[u], v[0], v[1], v[2], v[3])
}

func (r *Renderer) SetFloat(u Uniform, f float32) {
	gl.Uniform1f(r.locations[u], f)
}

func (r *Renderer) SetInt(u Uniform, v int32) {
	gl.Uniform1i(r.locations[u], v)
}

func (r *Renderer) SetIntArray(u Uniform, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(r.locations[u], int32(len(v)), &v[0])
}

func (r *Renderer) BindTexture(unit uint32, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, handle)
}

func (r *Renderer) SetBlend(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (r *Renderer) SetDepthWrite(enabled bool) {
	gl.DepthMask(enabled)
}

func (r *Renderer) DrawTriangles(count int32) {
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, count)
	gl.BindVertexArray(0)
}

var _ Device = (*Renderer)(nil)
