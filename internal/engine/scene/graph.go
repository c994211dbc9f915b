package scene

import (
	"fmt"

	"github.com/Faultbox/catapult/internal/engine/input"
	"github.com/Faultbox/catapult/internal/engine/texture"
	"github.com/Faultbox/catapult/pkg/math"
)

// NodeID addresses a node inside its Graph.
type NodeID int

// Root is the parent passed to Add for top-level nodes.
const Root NodeID = -1

// Node is one rigid part. Mesh and Texture may be nil for pure transform
// nodes.
type Node struct {
	Name    string
	Local   math.Mat4
	Mesh    Mesh
	Texture *texture.Handle

	children []NodeID
}

// Graph is a tree of nodes stored in an arena. Parents own their children;
// a node can only be attached under an existing node, so no cycles form.
type Graph struct {
	nodes []Node
	roots []NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add attaches n under parent (Root for a top-level node) and returns its
// ID. The graph takes a reference on n.Texture. It panics if parent does
// not exist.
func (g *Graph) Add(parent NodeID, n Node) NodeID {
	if parent != Root && !g.valid(parent) {
		panic(fmt.Sprintf("scene: parent %d out of range", parent))
	}
	n.children = nil
	if n.Texture != nil {
		n.Texture.Retain()
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	if parent == Root {
		g.roots = append(g.roots, id)
	} else {
		g.nodes[parent].children = append(g.nodes[parent].children, id)
	}
	return id
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id NodeID) *Node {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id]
}

// Roots returns the top-level node IDs.
func (g *Graph) Roots() []NodeID {
	return g.roots
}

// Children returns the IDs directly under id.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].children
}

// Find returns the first node with the given name.
func (g *Graph) Find(name string) (NodeID, bool) {
	for i := range g.nodes {
		if g.nodes[i].Name == name {
			return NodeID(i), true
		}
	}
	return Root, false
}

// Local returns a node's local transform.
func (g *Graph) Local(id NodeID) math.Mat4 {
	if !g.valid(id) {
		return math.Identity()
	}
	return g.nodes[id].Local
}

// SetLocal replaces a node's local transform.
func (g *Graph) SetLocal(id NodeID, m math.Mat4) {
	if g.valid(id) {
		g.nodes[id].Local = m
	}
}

// Draw renders every node. Each node is drawn with world*Local and passes
// that product on to its children.
func (g *Graph) Draw(ctx *RenderContext, world math.Mat4) error {
	for _, id := range g.roots {
		if err := g.drawNode(ctx, id, world); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) drawNode(ctx *RenderContext, id NodeID, parentWorld math.Mat4) error {
	n := &g.nodes[id]
	world := parentWorld.Mul(n.Local)

	if n.Mesh != nil {
		if err := ctx.Submit(n.Mesh, n.Texture, world); err != nil {
			return fmt.Errorf("drawing node %q: %w", n.Name, err)
		}
	}
	for _, child := range n.children {
		if err := g.drawNode(ctx, child, world); err != nil {
			return err
		}
	}
	return nil
}

// Walk visits every node depth-first with its composed world transform.
func (g *Graph) Walk(world math.Mat4, fn func(id NodeID, n *Node, world math.Mat4)) {
	var visit func(id NodeID, parent math.Mat4)
	visit = func(id NodeID, parent math.Mat4) {
		n := &g.nodes[id]
		w := parent.Mul(n.Local)
		fn(id, n, w)
		for _, child := range n.children {
			visit(child, w)
		}
	}
	for _, id := range g.roots {
		visit(id, world)
	}
}

// World returns the composed transform of id under world.
func (g *Graph) World(world math.Mat4, id NodeID) (math.Mat4, bool) {
	var (
		out   math.Mat4
		found bool
	)
	g.Walk(world, func(nid NodeID, _ *Node, w math.Mat4) {
		if nid == id {
			out, found = w, true
		}
	})
	return out, found
}

// Update does nothing; plain node trees are static.
func (g *Graph) Update([]input.Event) {}

// Destroy releases every mesh and the graph's texture references. The
// graph is empty afterwards.
func (g *Graph) Destroy() {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Mesh != nil {
			n.Mesh.Release()
			n.Mesh = nil
		}
		if n.Texture != nil {
			n.Texture.Release()
			n.Texture = nil
		}
	}
	g.nodes = nil
	g.roots = nil
}
