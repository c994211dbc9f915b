// Package renderer provides the OpenGL rendering surface the scene draws
// against.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/catapult/internal/engine/mesh"
	"github.com/Faultbox/catapult/internal/engine/scene"
	"github.com/Faultbox/catapult/internal/engine/shader"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/internal/logger"
)

// ErrForeignMesh is returned when a draw call carries a mesh this
// renderer did not upload.
var ErrForeignMesh = errors.New("mesh not uploaded by this renderer")

// Uniform names the scene shaders must declare.
const (
	UniformModel       = "model"
	UniformView        = "view"
	UniformPerspective = "perspective"
	UniformLight       = "u_light"
	UniformTexture     = "tex"
)

// ClearColor is the background colour.
var ClearColor = [4]float32{0.1, 0.1, 0.1, 1.0}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	// Uniform locations per program, looked up on first use.
	uniforms map[uint32]*programUniforms

	// 1x1 white texture bound for untextured draws.
	whiteTex uint32
}

type programUniforms struct {
	model, view, perspective, light, tex int32
}

// glMesh is geometry resident in GPU buffers.
type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// IndexCount returns the number of indices drawn.
func (m *glMesh) IndexCount() int {
	return int(m.indexCount)
}

// Release deletes the GPU buffers.
func (m *glMesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		uniforms: make(map[uint32]*programUniforms),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	r.whiteTex = r.uploadRGBA([]uint8{255, 255, 255, 255}, 1, 1)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.whiteTex != 0 {
		gl.DeleteTextures(1, &r.whiteTex)
		r.whiteTex = 0
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

// Size returns the current target size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// AspectRatio returns width/height of the target.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// UploadMesh copies geometry into GPU buffers.
func (r *Renderer) UploadMesh(g *mesh.Geometry) (scene.Mesh, error) {
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return nil, fmt.Errorf("empty geometry: %d vertices, %d indices", len(g.Vertices), len(g.Indices))
	}

	m := &glMesh{indexCount: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	if err := glError("upload mesh"); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// UploadTexture creates a mipmapped, repeating texture from img. The
// returned handle deletes the texture when its last owner releases it.
func (r *Renderer) UploadTexture(img *image.RGBA) (*texture.Handle, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty texture %dx%d", w, h)
	}
	id := r.uploadRGBA(img.Pix, w, h)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)

	if err := glError("upload texture"); err != nil {
		gl.DeleteTextures(1, &id)
		return nil, err
	}

	logger.Debug("texture uploaded", zap.Uint32("id", id), zap.Int("width", w), zap.Int("height", h))
	return texture.NewHandle(id, w, h, func(id uint32) {
		gl.DeleteTextures(1, &id)
		logger.Debug("texture released", zap.Uint32("id", id))
	}), nil
}

func (r *Renderer) uploadRGBA(pix []uint8, w, h int) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return texID
}

// Draw submits one draw call. It implements scene.Surface.
func (r *Renderer) Draw(call scene.DrawCall) error {
	m, ok := call.Mesh.(*glMesh)
	if !ok {
		return ErrForeignMesh
	}

	u, err := r.programUniforms(call.Program)
	if err != nil {
		return err
	}

	gl.UseProgram(call.Program)
	gl.UniformMatrix4fv(u.model, 1, false, call.Uniforms.Model.Ptr())
	gl.UniformMatrix4fv(u.view, 1, false, call.Uniforms.View.Ptr())
	gl.UniformMatrix4fv(u.perspective, 1, false, call.Uniforms.Perspective.Ptr())
	light := call.Uniforms.Light
	gl.Uniform3f(u.light, light.X, light.Y, light.Z)

	texID := r.whiteTex
	if call.Texture != nil {
		texID = call.Texture.ID()
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.Uniform1i(u.tex, 0)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)

	return glError("draw")
}

// programUniforms resolves and caches the uniform locations of program.
func (r *Renderer) programUniforms(program uint32) (*programUniforms, error) {
	if u, ok := r.uniforms[program]; ok {
		return u, nil
	}

	u := &programUniforms{}
	required := []struct {
		name string
		loc  *int32
	}{
		{UniformModel, &u.model},
		{UniformView, &u.view},
		{UniformPerspective, &u.perspective},
	}
	for _, req := range required {
		loc, err := shader.RequireUniform(program, req.name)
		if err != nil {
			return nil, err
		}
		*req.loc = loc
	}
	// Optional: a shader may ignore lighting or texturing.
	u.light = shader.GetUniform(program, UniformLight)
	u.tex = shader.GetUniform(program, UniformTexture)

	r.uniforms[program] = u
	logger.Debug("program uniforms resolved", zap.Uint32("program", program))
	return u, nil
}

// glError drains the GL error queue and reports the first error.
func glError(op string) error {
	first := uint32(gl.NO_ERROR)
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if first == gl.NO_ERROR {
			first = code
		}
	}
	if first != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%04x", op, first)
	}
	return nil
}
