package fungeon

// Node is the render-facing handle the scene-graph sync manages. The
// renderer is an external collaborator; the core only reparents nodes, it
// never computes or draws with them. Implementations must tolerate
// AddChild of a node already attached elsewhere being preceded by a
// RemoveChild from its previous parent — SceneSync always detaches first.
type Node interface {
	AddChild(child Node)
	RemoveChild(child Node)
}

// SceneSync mirrors the entity parent/child relationship onto the render
// nodes bound to entities. Each tick, every bound node is attached under
// its entity-parent's node, or under the root container when the entity has
// no tracked parent or the parent has no node. Bindings whose entity has
// died are detached and dropped.
//
// Register SceneSync at a high scheduler priority so downstream systems see
// a consistent hierarchy. It manages attachment only — transforms are the
// constraint system's business.
type SceneSync struct {
	root     Node
	nodes    map[Entity]Node
	attached map[Entity]Node // node each entity's node currently hangs under
}

// NewSceneSync creates a sync system attaching orphans to root.
// Panics if root is nil.
func NewSceneSync(root Node) *SceneSync {
	if root == nil {
		panic("fungeon: scene sync needs a root node")
	}
	return &SceneSync{
		root:     root,
		nodes:    make(map[Entity]Node),
		attached: make(map[Entity]Node),
	}
}

// Bind associates a render node with the entity. The node is attached into
// the tree on the next Update. Rebinding replaces the previous node,
// detaching it first. Panics if node is nil.
func (s *SceneSync) Bind(e Entity, node Node) {
	if node == nil {
		panic("fungeon: cannot bind nil node")
	}
	s.detach(e)
	s.nodes[e] = node
}

// Unbind detaches and forgets the entity's render node.
func (s *SceneSync) Unbind(e Entity) {
	s.detach(e)
	delete(s.nodes, e)
}

// NodeOf returns the render node bound to the entity, or nil. This is the
// renderer's lookup: after each fixed tick, transforms are stable and every
// bound node sits at its final place in the tree.
func (s *SceneSync) NodeOf(e Entity) Node {
	return s.nodes[e]
}

// Root returns the root container node.
func (s *SceneSync) Root() Node {
	return s.root
}

func (s *SceneSync) detach(e Entity) {
	if parent, ok := s.attached[e]; ok {
		parent.RemoveChild(s.nodes[e])
		delete(s.attached, e)
	}
}

// Update reconciles node attachment with the entity hierarchy.
func (s *SceneSync) Update(w *World, dt float64) {
	for e, node := range s.nodes {
		if !w.Alive(e) {
			s.detach(e)
			delete(s.nodes, e)
			continue
		}

		want := s.root
		if p := w.Parent(e); p.Valid() && w.Alive(p) {
			if pn, ok := s.nodes[p]; ok {
				want = pn
			}
		}

		if s.attached[e] == want {
			continue
		}
		s.detach(e)
		want.AddChild(node)
		s.attached[e] = want
	}
}
