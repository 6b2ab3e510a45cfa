package domiface

import "testing"

func TestNewElementIsDetached(t *testing.T) {
	e := NewElement("div")
	if e.Parent() != nil {
		t.Error("expected a fresh element to have no parent")
	}
	if len(e.Children()) != 0 {
		t.Error("expected a fresh element to have no children")
	}
}

func TestAppendAndRemoveChild(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("span")
	parent.AppendChild(child)

	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Fatalf("Children() = %v, want [child]", parent.Children())
	}
	if child.Parent() != parent {
		t.Error("expected child.Parent() == parent")
	}

	parent.RemoveChild(child)
	if len(parent.Children()) != 0 {
		t.Error("expected Children() to be empty after RemoveChild")
	}
	if child.Parent() != nil {
		t.Error("expected child.Parent() == nil after RemoveChild")
	}
}

func TestInsertChildAtOrdersCorrectly(t *testing.T) {
	parent := NewElement("div")
	a := NewElement("span")
	b := NewElement("span")
	c := NewElement("span")
	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertChildAt(1, b)

	got := parent.Children()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("Children() = %v, want [a b c]", got)
	}
}

func TestAttrsAndModelID(t *testing.T) {
	e := NewElement("div")
	e.SetAttr("data-type", "Text")
	v, ok := e.Attr("data-type")
	if !ok || v != "Text" {
		t.Errorf("Attr(data-type) = %q, %v, want Text", v, ok)
	}
	e.SetModelID("blk_1")
	if e.ModelID() != "blk_1" {
		t.Errorf("ModelID() = %q, want blk_1", e.ModelID())
	}
}

func TestSelectionCollapsed(t *testing.T) {
	e := NewElement("span")
	s := Selection{StartNode: e, StartOffset: 3, EndNode: e, EndOffset: 3}
	if !s.Collapsed() {
		t.Error("expected equal endpoints to be collapsed")
	}
	s.EndOffset = 4
	if s.Collapsed() {
		t.Error("expected differing offsets to be non-collapsed")
	}
}
