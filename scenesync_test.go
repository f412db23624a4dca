package fungeon

import "testing"

// fakeNode records its children so attachment can be asserted without a
// renderer.
type fakeNode struct {
	name     string
	children []Node
}

func (n *fakeNode) AddChild(child Node) {
	n.children = append(n.children, child)
}

func (n *fakeNode) RemoveChild(child Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *fakeNode) has(child Node) bool {
	for _, c := range n.children {
		if c == child {
			return true
		}
	}
	return false
}

func TestSceneSyncOrphanAttachesToRoot(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	e := w.Create("e")
	node := &fakeNode{name: "e"}
	sync.Bind(e, node)
	sync.Update(w, tick)

	if !root.has(node) {
		t.Error("orphan node not attached under root")
	}
	if sync.NodeOf(e) != node {
		t.Error("NodeOf lost the binding")
	}
}

func TestSceneSyncFollowsParentLink(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	parent := w.Create("parent")
	child := w.Create("child")
	w.SetParent(child, parent)

	pn := &fakeNode{name: "parent"}
	cn := &fakeNode{name: "child"}
	sync.Bind(parent, pn)
	sync.Bind(child, cn)
	sync.Update(w, tick)

	if !root.has(pn) {
		t.Error("parent node not under root")
	}
	if !pn.has(cn) {
		t.Error("child node not under parent node")
	}
	if root.has(cn) {
		t.Error("child node duplicated under root")
	}
}

func TestSceneSyncReattachesOnReparent(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	a := w.Create("a")
	b := w.Create("b")
	c := w.Create("c")
	an, bn, cn := &fakeNode{name: "a"}, &fakeNode{name: "b"}, &fakeNode{name: "c"}
	sync.Bind(a, an)
	sync.Bind(b, bn)
	sync.Bind(c, cn)

	w.SetParent(c, a)
	sync.Update(w, tick)
	if !an.has(cn) {
		t.Fatal("c not under a after first sync")
	}

	w.SetParent(c, b)
	sync.Update(w, tick)
	if an.has(cn) {
		t.Error("c still under a after reparent")
	}
	if !bn.has(cn) {
		t.Error("c not under b after reparent")
	}
}

func TestSceneSyncUnboundParentFallsBackToRoot(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	parent := w.Create("parent") // never bound
	child := w.Create("child")
	w.SetParent(child, parent)

	cn := &fakeNode{name: "child"}
	sync.Bind(child, cn)
	sync.Update(w, tick)

	if !root.has(cn) {
		t.Error("child of an unbound parent should hang under root")
	}
}

func TestSceneSyncDeadParentFallsBackToRoot(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	parent := w.Create("parent")
	child := w.Create("child")
	w.SetParent(child, parent)

	pn := &fakeNode{name: "parent"}
	cn := &fakeNode{name: "child"}
	sync.Bind(parent, pn)
	sync.Bind(child, cn)
	sync.Update(w, tick)
	if !pn.has(cn) {
		t.Fatal("child not under parent before destroy")
	}

	w.Destroy(parent)
	sync.Update(w, tick)

	if !root.has(cn) {
		t.Error("child did not fall back to root after parent died")
	}
	if sync.NodeOf(parent) != nil {
		t.Error("dead entity's binding not dropped")
	}
	if root.has(pn) {
		t.Error("dead entity's node still attached")
	}
}

func TestSceneSyncDestroyedEntityDetached(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	e := w.Create("e")
	node := &fakeNode{name: "e"}
	sync.Bind(e, node)
	sync.Update(w, tick)

	w.Destroy(e)
	sync.Update(w, tick)

	if root.has(node) {
		t.Error("node still attached after entity destruction")
	}
	if sync.NodeOf(e) != nil {
		t.Error("binding survived entity destruction")
	}
}

func TestSceneSyncRebindReplacesNode(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	e := w.Create("e")
	first := &fakeNode{name: "first"}
	second := &fakeNode{name: "second"}
	sync.Bind(e, first)
	sync.Update(w, tick)

	sync.Bind(e, second)
	sync.Update(w, tick)

	if root.has(first) {
		t.Error("replaced node still attached")
	}
	if !root.has(second) {
		t.Error("replacement node not attached")
	}
}

func TestSceneSyncUnbind(t *testing.T) {
	w := NewWorld()
	root := &fakeNode{name: "root"}
	sync := NewSceneSync(root)

	e := w.Create("e")
	node := &fakeNode{name: "e"}
	sync.Bind(e, node)
	sync.Update(w, tick)

	sync.Unbind(e)
	if root.has(node) {
		t.Error("node still attached after Unbind")
	}
	if sync.NodeOf(e) != nil {
		t.Error("binding survived Unbind")
	}
}

func TestSceneSyncNilRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil root did not panic")
		}
	}()
	NewSceneSync(nil)
}
