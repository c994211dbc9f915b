package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/pkg/math"
)

type fakeMesh struct {
	name     string
	released int
}

func (m *fakeMesh) IndexCount() int { return 36 }
func (m *fakeMesh) Release()        { m.released++ }

// recorder is a Surface that keeps every call and can fail on a chosen mesh.
type recorder struct {
	calls  []DrawCall
	failOn Mesh
}

var errDraw = errors.New("draw failed")

func (r *recorder) Draw(call DrawCall) error {
	if r.failOn != nil && call.Mesh == r.failOn {
		return errDraw
	}
	r.calls = append(r.calls, call)
	return nil
}

func (r *recorder) modelOf(t *testing.T, m Mesh) math.Mat4 {
	t.Helper()
	for _, c := range r.calls {
		if c.Mesh == m {
			return c.Uniforms.Model
		}
	}
	t.Fatalf("no draw call for %v", m)
	return math.Mat4{}
}

func newContext(s Surface) *RenderContext {
	return &RenderContext{
		Surface:     s,
		Program:     3,
		View:        math.Translate(0, 0, -5),
		Perspective: math.Perspective(1.5, 1, 0.1, 100),
		Light:       math.Vec3{Y: 1},
	}
}

func TestChildrenReceiveParentWorld(t *testing.T) {
	g := NewGraph()
	parentMesh := &fakeMesh{name: "parent"}
	leftMesh := &fakeMesh{name: "left"}
	rightMesh := &fakeMesh{name: "right"}

	parentLocal := math.Translate(1, 2, 3).Mul(math.RotateY(0.7))
	leftLocal := math.Translate(-1, 0, 0)
	rightLocal := math.RotateAxis(math.Vec3{Z: 1}, 0.3).Mul(math.Translate(0, 4, 0))

	parent := g.Add(Root, Node{Name: "parent", Local: parentLocal, Mesh: parentMesh})
	g.Add(parent, Node{Name: "left", Local: leftLocal, Mesh: leftMesh})
	g.Add(parent, Node{Name: "right", Local: rightLocal, Mesh: rightMesh})

	rootContext := math.Translate(10, 0, 0)
	rec := &recorder{}
	ctx := newContext(rec)
	require.NoError(t, g.Draw(ctx, rootContext))
	require.Len(t, rec.calls, 3)
	assert.Equal(t, 3, ctx.DrawCalls)

	parentWorld := math.Multiply(rootContext, parentLocal)
	assert.True(t, rec.modelOf(t, parentMesh).ApproxEqual(parentWorld, 1e-5))
	assert.True(t, rec.modelOf(t, leftMesh).ApproxEqual(parentWorld.Mul(leftLocal), 1e-5))
	assert.True(t, rec.modelOf(t, rightMesh).ApproxEqual(parentWorld.Mul(rightLocal), 1e-5))

	for _, c := range rec.calls {
		assert.Equal(t, uint32(3), c.Program)
		assert.Equal(t, ctx.View, c.Uniforms.View)
		assert.Equal(t, ctx.Perspective, c.Uniforms.Perspective)
		assert.Equal(t, ctx.Light, c.Uniforms.Light)
	}
}

func TestTransformNodesAreNotSubmitted(t *testing.T) {
	g := NewGraph()
	pivot := g.Add(Root, Node{Name: "pivot", Local: math.Translate(0, 1, 0)})
	leaf := &fakeMesh{}
	g.Add(pivot, Node{Name: "leaf", Local: math.Identity(), Mesh: leaf})

	rec := &recorder{}
	require.NoError(t, g.Draw(newContext(rec), math.Identity()))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, math.Vec3{Y: 1}, rec.calls[0].Uniforms.Model.Translation())
}

func TestDrawStopsAtFirstFailure(t *testing.T) {
	g := NewGraph()
	first := &fakeMesh{}
	bad := &fakeMesh{}
	after := &fakeMesh{}
	g.Add(Root, Node{Name: "first", Local: math.Identity(), Mesh: first})
	g.Add(Root, Node{Name: "throw-arm", Local: math.Identity(), Mesh: bad})
	g.Add(Root, Node{Name: "after", Local: math.Identity(), Mesh: after})

	rec := &recorder{failOn: bad}
	err := g.Draw(newContext(rec), math.Identity())

	require.Error(t, err)
	assert.ErrorIs(t, err, errDraw)
	assert.Contains(t, err.Error(), "throw-arm")
	assert.Len(t, rec.calls, 1, "nodes after the failure must not be drawn")
}

func TestFindAndAccessors(t *testing.T) {
	g := NewGraph()
	a := g.Add(Root, Node{Name: "a", Local: math.Identity()})
	b := g.Add(a, Node{Name: "b", Local: math.Translate(1, 0, 0)})

	id, ok := g.Find("b")
	assert.True(t, ok)
	assert.Equal(t, b, id)
	_, ok = g.Find("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []NodeID{a}, g.Roots())
	assert.Equal(t, []NodeID{b}, g.Children(a))
	assert.Nil(t, g.Children(NodeID(9)))
	assert.Nil(t, g.Node(NodeID(-4)))
	assert.Equal(t, "b", g.Node(b).Name)

	g.SetLocal(b, math.Translate(0, 2, 0))
	assert.Equal(t, math.Translate(0, 2, 0), g.Local(b))
	assert.Equal(t, math.Identity(), g.Local(NodeID(42)))
}

func TestAddPanicsOnUnknownParent(t *testing.T) {
	g := NewGraph()
	assert.Panics(t, func() {
		g.Add(NodeID(5), Node{Name: "orphan"})
	})
}

func TestWalkAndWorld(t *testing.T) {
	g := NewGraph()
	a := g.Add(Root, Node{Name: "a", Local: math.Translate(1, 0, 0)})
	b := g.Add(a, Node{Name: "b", Local: math.Translate(0, 1, 0)})
	c := g.Add(b, Node{Name: "c", Local: math.Translate(0, 0, 1)})

	var order []string
	g.Walk(math.Identity(), func(_ NodeID, n *Node, _ math.Mat4) {
		order = append(order, n.Name)
	})
	assert.Equal(t, []string{"a", "b", "c"}, order)

	w, ok := g.World(math.Identity(), c)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, w.Translation())

	_, ok = g.World(math.Identity(), NodeID(17))
	assert.False(t, ok)
}

func TestSharedTextureLastOwnerReleases(t *testing.T) {
	freed := 0
	tex := texture.NewHandle(11, 4, 4, func(uint32) { freed++ })

	g := NewGraph()
	m1, m2 := &fakeMesh{}, &fakeMesh{}
	g.Add(Root, Node{Name: "plank-1", Local: math.Identity(), Mesh: m1, Texture: tex})
	g.Add(Root, Node{Name: "plank-2", Local: math.Identity(), Mesh: m2, Texture: tex})
	assert.Equal(t, 3, tex.Refs())

	// Loader drops its reference; nodes keep the texture alive.
	tex.Release()
	assert.Equal(t, 0, freed)

	rec := &recorder{}
	require.NoError(t, g.Draw(newContext(rec), math.Identity()))
	assert.Same(t, tex, rec.calls[0].Texture)
	assert.Same(t, tex, rec.calls[1].Texture)

	g.Destroy()
	assert.Equal(t, 1, freed)
	assert.Equal(t, 1, m1.released)
	assert.Equal(t, 1, m2.released)
	assert.Equal(t, 0, g.Len())
}

func TestGraphUpdateIsNoop(t *testing.T) {
	g := NewGraph()
	id := g.Add(Root, Node{Name: "a", Local: math.Translate(1, 2, 3)})
	g.Update([]input.Event{input.Down(input.KeyR)})
	assert.Equal(t, math.Translate(1, 2, 3), g.Local(id))
}
