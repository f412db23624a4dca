package render

import "testing"

func TestAddChildSetsParent(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")

	root.AddChild(child)
	if child.Parent() != root {
		t.Error("child parent not set")
	}
	if len(root.Children()) != 1 || root.Children()[0] != child {
		t.Error("child not in parent's list")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent() != b {
		t.Error("child parent not updated")
	}
	if len(a.Children()) != 0 {
		t.Error("child still listed under old parent")
	}
	if len(b.Children()) != 1 {
		t.Error("child missing under new parent")
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	root.AddChild(child)

	root.RemoveChild(child)
	if child.Parent() != nil {
		t.Error("child parent not cleared")
	}
	if len(root.Children()) != 0 {
		t.Error("child still listed after remove")
	}
}

func TestRemoveForeignChildIsNoOp(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.AddChild(child)

	b.RemoveChild(child)
	if child.Parent() != a {
		t.Error("remove by a non-parent changed the link")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("cyclic AddChild did not panic")
		}
	}()
	b.AddChild(a)
}

func TestAddSelfPanics(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if recover() == nil {
			t.Error("adding a node to itself did not panic")
		}
	}()
	a.AddChild(a)
}

func TestAddNilPanics(t *testing.T) {
	a := NewNode("a")
	defer func() {
		if recover() == nil {
			t.Error("adding nil did not panic")
		}
	}()
	a.AddChild(nil)
}

func TestChildOrderPreserved(t *testing.T) {
	root := NewNode("root")
	names := []string{"x", "y", "z"}
	for _, name := range names {
		root.AddChild(NewNode(name))
	}
	root.RemoveChild(root.Children()[1])

	got := root.Children()
	if len(got) != 2 || got[0].Name != "x" || got[1].Name != "z" {
		t.Errorf("children after remove: %v", got)
	}
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("n")
	if !n.Visible {
		t.Error("new node not visible")
	}
	if n.Image != nil {
		t.Error("container node has an image")
	}
	if n.scaleX != 1 || n.scaleY != 1 {
		t.Error("scale not initialized to 1")
	}
}
