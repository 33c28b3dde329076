// Package renderer provides OpenGL rendering for reference models, their
// outline shells, and line art overlays.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"refsketch/internal/engine/shader"
	"refsketch/internal/logger"
	"refsketch/pkg/lineart"
	gomath "refsketch/pkg/math"
	"refsketch/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

var (
	// ColorSurface is the translucent fill of the reference model.
	ColorSurface = Color{0.55, 0.6, 0.7, 0.2}
	// ColorShell is the flat outline shell color.
	ColorShell = Color{0.95, 0.95, 0.95, 1}
	// ColorLineArt is the sharp edge line color.
	ColorLineArt = Color{0.1, 0.1, 0.1, 1}
	// ColorOverlay is the timer readout color.
	ColorOverlay = Color{0.9, 0.9, 0.9, 1}
)

const meshVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const meshFragmentSrc = `
#version 410 core

uniform vec4 uColor;

in vec3 vNormal;
out vec4 FragColor;

void main() {
	float light = 1.0;
	if (length(vNormal) > 0.0) {
		vec3 n = normalize(vNormal);
		light = 0.3 + 0.7 * max(dot(n, normalize(vec3(0.4, 0.8, 0.3))), 0.0);
	}
	FragColor = vec4(uColor.rgb * light, uColor.a);
}
`

const flatVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const flatFragmentSrc = `
#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// glMesh is a mesh uploaded to GPU buffers.
type glMesh struct {
	vao       uint32
	vbo       uint32
	ebo       uint32
	count     int32
	indexType uint32 // 0 when not indexed
}

// program wraps a compiled shader program and its uniform locations.
type program struct {
	id     uint32
	model  int32
	view   int32
	proj   int32
	color  int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProg program
	flatProg program

	view gomath.Mat4
	proj gomath.Mat4

	// Uploaded mesh cache, keyed by mesh identity.
	meshes map[*mesh.Mesh]*glMesh

	// Dynamic buffer reused for line batches.
	lineVAO uint32
	lineVBO uint32
	lineCap int
}

// New creates a new renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*mesh.Mesh]*glMesh),
		view:   gomath.Identity(),
		proj:   gomath.Identity(),
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
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)

	var err error
	if r.meshProg, err = newProgram(meshVertexSrc, meshFragmentSrc); err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	if r.flatProg, err = newProgram(flatVertexSrc, flatFragmentSrc); err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

func newProgram(vertSrc, fragSrc string) (program, error) {
	id, err := shader.CompileProgram(vertSrc, fragSrc)
	if err != nil {
		return program{}, err
	}
	return program{
		id:    id,
		model: shader.GetUniform(id, "uModel"),
		view:  shader.GetUniform(id, "uView"),
		proj:  shader.GetUniform(id, "uProj"),
		color: shader.GetUniform(id, "uColor"),
	}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, gm := range r.meshes {
		gm.delete()
	}
	r.meshes = nil
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.meshProg.id != 0 {
		gl.DeleteProgram(r.meshProg.id)
	}
	if r.flatProg.id != 0 {
		gl.DeleteProgram(r.flatProg.id)
	}
}

func (gm *glMesh) delete() {
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	if gm.vbo != 0 {
		gl.DeleteBuffers(1, &gm.vbo)
	}
	if gm.ebo != 0 {
		gl.DeleteBuffers(1, &gm.ebo)
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

// SetCamera sets the view and projection matrices for the frame.
func (r *Renderer) SetCamera(view, proj gomath.Mat4) {
	r.view = view
	r.proj = proj
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMesh draws a mesh with lambert shading and the given fill color.
// Translucent colors let sketchers see the far side of the surface.
func (r *Renderer) DrawMesh(m *mesh.Mesh, model gomath.Mat4, color Color) error {
	gm, err := r.upload(m)
	if err != nil {
		return err
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r.useProgram(r.meshProg, model, color)
	gm.draw()
	return nil
}

// DrawShell draws the outline shell mesh with front faces culled so only
// the inside of the inflated hull is visible, forming a silhouette.
func (r *Renderer) DrawShell(m *mesh.Mesh, model gomath.Mat4, color Color) error {
	gm, err := r.upload(m)
	if err != nil {
		return err
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)

	r.useProgram(r.flatProg, model, color)
	gm.draw()

	gl.CullFace(gl.BACK)
	return nil
}

// DrawLines draws model-space line segments.
func (r *Renderer) DrawLines(segments []lineart.Segment, model gomath.Mat4, color Color) {
	if len(segments) == 0 {
		return
	}

	verts := make([]float32, 0, len(segments)*6)
	for _, s := range segments {
		verts = append(verts, s.A.X, s.A.Y, s.A.Z, s.B.X, s.B.Y, s.B.Z)
	}

	gl.Disable(gl.CULL_FACE)
	r.useProgram(r.flatProg, model, color)
	r.drawLineBatch(verts)
	gl.Enable(gl.CULL_FACE)
}

// DrawOverlayLines draws screen-space line segments, given as pairs of
// window coordinate points, on top of the scene.
func (r *Renderer) DrawOverlayLines(points []gomath.Vec2, color Color) {
	if len(points) < 2 {
		return
	}

	verts := make([]float32, 0, len(points)*3)
	for _, p := range points {
		verts = append(verts, p.X, p.Y, 0)
	}

	ortho := gomath.Ortho(0, float32(r.config.Width), float32(r.config.Height), 0, -1, 1)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	gl.UseProgram(r.flatProg.id)
	identity := gomath.Identity()
	gl.UniformMatrix4fv(r.flatProg.model, 1, false, identity.Ptr())
	gl.UniformMatrix4fv(r.flatProg.view, 1, false, identity.Ptr())
	gl.UniformMatrix4fv(r.flatProg.proj, 1, false, ortho.Ptr())
	gl.Uniform4fv(r.flatProg.color, 1, &color[0])
	r.drawLineBatch(verts)

	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// useProgram binds a program with the frame camera and the given model
// matrix and color.
func (r *Renderer) useProgram(p program, model gomath.Mat4, color Color) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.model, 1, false, model.Ptr())
	gl.UniformMatrix4fv(p.view, 1, false, r.view.Ptr())
	gl.UniformMatrix4fv(p.proj, 1, false, r.proj.Ptr())
	gl.Uniform4fv(p.color, 1, &color[0])
}

// drawLineBatch streams vertices into the shared line buffer and draws
// them as GL_LINES.
func (r *Renderer) drawLineBatch(verts []float32) {
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	if len(verts) > r.lineCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		r.lineCap = len(verts)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer contents as RGBA bytes,
// bottom row first, together with its dimensions.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// Forget drops the GPU buffers cached for a mesh.
func (r *Renderer) Forget(m *mesh.Mesh) {
	if gm, ok := r.meshes[m]; ok {
		gm.delete()
		delete(r.meshes, m)
	}
}

// upload interleaves mesh positions and normals into GPU buffers, caching
// the result per mesh.
func (r *Renderer) upload(m *mesh.Mesh) (*glMesh, error) {
	if gm, ok := r.meshes[m]; ok {
		return gm, nil
	}

	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return nil, err
	}

	// Shading normals fall back to the smoothed outline normals when the
	// model carries none of its own.
	normals, err := m.Float32x3(mesh.AttrNormal)
	if err != nil {
		normals, err = m.Float32x3(mesh.AttrOutlineNormal)
	}
	if err != nil {
		normals = make([][3]float32, len(positions))
	}
	if len(normals) != len(positions) {
		return nil, fmt.Errorf("%w: %d normals for %d positions",
			mesh.ErrInvalidAttributeFormat, len(normals), len(positions))
	}

	verts := make([]float32, 0, len(positions)*6)
	for i, p := range positions {
		n := normals[i]
		verts = append(verts, p[0], p[1], p[2], n[0], n[1], n[2])
	}

	gm := &glMesh{}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	if idx := m.Indices(); idx != nil && idx.Len() > 0 {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		if len(idx.U32) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx.U32)*4, unsafe.Pointer(&idx.U32[0]), gl.STATIC_DRAW)
			gm.indexType = gl.UNSIGNED_INT
		} else {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx.U16)*2, unsafe.Pointer(&idx.U16[0]), gl.STATIC_DRAW)
			gm.indexType = gl.UNSIGNED_SHORT
		}
		gm.count = int32(idx.Len())
	} else {
		gm.count = int32(len(positions))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", gm.vao),
		zap.Int32("count", gm.count),
	)

	r.meshes[m] = gm
	return gm, nil
}

func (gm *glMesh) draw() {
	gl.BindVertexArray(gm.vao)
	if gm.indexType != 0 {
		gl.DrawElements(gl.TRIANGLES, gm.count, gm.indexType, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gm.count)
	}
	gl.BindVertexArray(0)
}
