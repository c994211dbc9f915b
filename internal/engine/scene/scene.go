// Package scene holds the retained-mode scene graph and the root list the
// game loop updates and draws every frame.
package scene

import (
	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/pkg/math"
)

// Drawable is anything the scene can hold as a root: plain node trees and
// animated assemblies alike.
type Drawable interface {
	// Draw renders the receiver under the inherited world transform.
	Draw(ctx *RenderContext, world math.Mat4) error
	// Update reacts to one tick's input batch.
	Update(events []input.Event)
}

// Destroyer is implemented by drawables that hold GPU resources.
type Destroyer interface {
	Destroy()
}

// Scene is the ordered list of root drawables.
type Scene struct {
	roots []Drawable
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends a root. Roots are drawn in insertion order.
func (s *Scene) Add(d Drawable) {
	s.roots = append(s.roots, d)
}

// Len returns the number of roots.
func (s *Scene) Len() int {
	return len(s.roots)
}

// Update hands the batch to every root.
func (s *Scene) Update(events []input.Event) {
	for _, d := range s.roots {
		d.Update(events)
	}
}

// Draw renders every root from the identity transform. The first failure
// aborts the frame.
func (s *Scene) Draw(ctx *RenderContext) error {
	world := math.Identity()
	for _, d := range s.roots {
		if err := d.Draw(ctx, world); err != nil {
			return err
		}
	}
	return nil
}

// Destroy releases the resources of every root that holds any.
func (s *Scene) Destroy() {
	for _, d := range s.roots {
		if r, ok := d.(Destroyer); ok {
			r.Destroy()
		}
	}
	s.roots = nil
}
