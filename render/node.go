// Package render is an optional Ebitengine backend for the fungeon core.
//
// It provides a concrete scene-graph [Node] satisfying fungeon.Node, a
// [Projector] render system that mirrors entity transforms onto nodes with
// a simple orthographic projection, and a [Run] game-loop driver. The core
// never imports this package; it consumes the renderer purely through the
// fungeon.Node interface.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	fungeon "github.com/mschutzner/fungeon-sub000"
)

// Node is a flat scene-graph element: a sprite when Image is set, a plain
// container otherwise. Parent/child links are managed by fungeon.SceneSync;
// manual tree edits are fine for nodes not bound to entities.
type Node struct {
	Name    string
	Image   *ebiten.Image
	Visible bool

	parent   *Node
	children []*Node

	// Screen-space placement, written by Projector each render pass.
	screenX, screenY float64
	scaleX, scaleY   float64
	angle            float64 // radians, from the transform's Z rotation
	depth            float64 // world Z, kept for future ordering needs
}

// NewNode creates a visible container node.
func NewNode(name string) *Node {
	return &Node{Name: name, Visible: true, scaleX: 1, scaleY: 1}
}

// NewSprite creates a visible node displaying img.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := NewNode(name)
	n.Image = img
	return n
}

// AddChild appends child to this node. Panics if child is nil, not a
// *render.Node, or an ancestor of this node.
func (n *Node) AddChild(child fungeon.Node) {
	c := mustNode(child)
	if isAncestor(c, n) {
		panic("render: adding child would create a cycle")
	}
	if c.parent != nil {
		c.parent.removeChildByPtr(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

// RemoveChild detaches child from this node. No-op if child is not ours.
func (n *Node) RemoveChild(child fungeon.Node) {
	c := mustNode(child)
	if c.parent != n {
		return
	}
	n.removeChildByPtr(c)
	c.parent = nil
}

// Parent returns the node this node hangs under, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated
// by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

func mustNode(n fungeon.Node) *Node {
	if n == nil {
		panic("render: nil node")
	}
	c, ok := n.(*Node)
	if !ok {
		panic("render: foreign fungeon.Node implementation")
	}
	return c
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// Draw renders this node and its subtree onto screen in tree order.
func (n *Node) Draw(screen *ebiten.Image) {
	if !n.Visible {
		return
	}
	if n.Image != nil {
		b := n.Image.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		op.GeoM.Scale(n.scaleX, n.scaleY)
		op.GeoM.Rotate(n.angle)
		op.GeoM.Translate(n.screenX, n.screenY)
		screen.DrawImage(n.Image, op)
	}
	for _, c := range n.children {
		c.Draw(screen)
	}
}
