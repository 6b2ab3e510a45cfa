package node

import "testing"

func TestIsBlockTypeName(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"Title", true},
		{"Text", true},
		{"body", false},
		{"document", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			if got := IsBlockTypeName(tt.typ); got != tt.want {
				t.Errorf("IsBlockTypeName(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestInsertAndRemoveChild(t *testing.T) {
	root := New("root", "body")
	a := New("a", "Text")
	b := New("b", "Text")
	c := New("c", "Text")

	root.AppendChild(a)
	root.AppendChild(c)
	root.InsertChildAt(1, b)

	if got := root.ChildCount(); got != 3 {
		t.Fatalf("ChildCount() = %d, want 3", got)
	}
	if root.ChildAt(0) != a || root.ChildAt(1) != b || root.ChildAt(2) != c {
		t.Fatalf("children out of order: %v", root.Children())
	}
	if b.Parent() != root {
		t.Errorf("Parent() = %v, want root", b.Parent())
	}

	removed := root.RemoveChildAt(1)
	if removed != b {
		t.Fatalf("RemoveChildAt(1) = %v, want b", removed)
	}
	if b.Parent() != nil {
		t.Error("removed child should be detached")
	}
	if root.ChildCount() != 2 || root.ChildAt(1) != c {
		t.Fatalf("remaining children wrong: %v", root.Children())
	}
}

func TestSiblingNavigation(t *testing.T) {
	root := New("root", "body")
	a, b, c := New("a", "Text"), New("b", "Text"), New("c", "Text")
	root.AppendChild(a)
	root.AppendChild(b)
	root.AppendChild(c)

	if b.PrevSibling() != a {
		t.Errorf("PrevSibling() = %v, want a", b.PrevSibling())
	}
	if b.NextSibling() != c {
		t.Errorf("NextSibling() = %v, want c", b.NextSibling())
	}
	if a.PrevSibling() != nil {
		t.Error("first child should have no previous sibling")
	}
	if c.NextSibling() != nil {
		t.Error("last child should have no next sibling")
	}
}

func TestAttrs(t *testing.T) {
	n := New("n", "Text")
	n.SetAttr("bold", true)
	n.SetAttrs(map[string]any{"italic": true, "bold": false})

	if v, ok := n.Attr("bold"); !ok || v != false {
		t.Errorf("Attr(bold) = (%v, %v), want (false, true) after merge", v, ok)
	}
	if v, ok := n.Attr("italic"); !ok || v != true {
		t.Errorf("Attr(italic) = (%v, %v), want (true, true)", v, ok)
	}
	if _, ok := n.Attr("missing"); ok {
		t.Error("Attr on an unset name should report false")
	}
}

func TestBlockDataElementTextContent(t *testing.T) {
	b := NewBlockDataElement("Text", nil)
	if b.HasTextContent() {
		t.Error("freshly minted block should have no textContent yet")
	}
	if !IsBlockTypeName(b.Type()) {
		t.Errorf("block type %q should satisfy the block-name convention", b.Type())
	}
}

func TestBlockyDocumentFixedShape(t *testing.T) {
	title := NewBlockDataElement("Title", nil)
	doc := NewBlockyDocument(title)

	if doc.Title().ID() != title.ID() {
		t.Errorf("Title() = %v, want %v", doc.Title().ID(), title.ID())
	}
	if doc.Body().Type() != TypeBody {
		t.Errorf("Body().Type() = %q, want %q", doc.Body().Type(), TypeBody)
	}
	if doc.ChildCount() != 2 {
		t.Fatalf("document should have exactly 2 children, got %d", doc.ChildCount())
	}

	text := NewBlockDataElement("Text", nil)
	doc.Body().AppendChild(text.Node)
	if doc.Body().ChildCount() != 1 {
		t.Errorf("Body().ChildCount() = %d, want 1", doc.Body().ChildCount())
	}
}
