package scene

import (
	"github.com/Faultbox/catapult/internal/engine/mesh"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/pkg/math"
)

// Mesh is geometry resident on the rendering surface.
type Mesh interface {
	IndexCount() int
	Release()
}

// Uploader turns CPU geometry into a Mesh.
type Uploader interface {
	UploadMesh(g *mesh.Geometry) (Mesh, error)
}

// Uniforms is the per-draw uniform set.
type Uniforms struct {
	Model       math.Mat4
	View        math.Mat4
	Perspective math.Mat4
	Light       math.Vec3
}

// DrawCall is one submission to a Surface.
type DrawCall struct {
	Mesh     Mesh
	Texture  *texture.Handle // nil draws untextured
	Program  uint32
	Uniforms Uniforms
}

// Surface rasterizes draw calls.
type Surface interface {
	Draw(call DrawCall) error
}

// RenderContext carries the per-frame render state down the draw
// traversal. The game builds one each frame.
type RenderContext struct {
	Surface     Surface
	Program     uint32
	View        math.Mat4
	Perspective math.Mat4
	Light       math.Vec3

	// DrawCalls counts successful submissions this frame.
	DrawCalls int
}

// Submit draws m with the given model transform and the frame's camera
// and light.
func (c *RenderContext) Submit(m Mesh, tex *texture.Handle, model math.Mat4) error {
	err := c.Surface.Draw(DrawCall{
		Mesh:    m,
		Texture: tex,
		Program: c.Program,
		Uniforms: Uniforms{
			Model:       model,
			View:        c.View,
			Perspective: c.Perspective,
			Light:       c.Light,
		},
	})
	if err != nil {
		return err
	}
	c.DrawCalls++
	return nil
}
