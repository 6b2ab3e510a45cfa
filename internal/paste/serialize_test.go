package paste

import (
	"testing"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
)

func TestSerializeDeserializeRoundTripsContentNotIDs(t *testing.T) {
	orig := node.NewBlockDataElement(registry.TypeText, nil)
	orig.SetTextContent(textmodel.NewFromText("hello"))

	data, err := SerializeNode(orig.Node)
	if err != nil {
		t.Fatalf("SerializeNode() error = %v", err)
	}

	clone, err := DeserializeNode(data)
	if err != nil {
		t.Fatalf("DeserializeNode() error = %v", err)
	}

	if clone.ID() == orig.ID() {
		t.Error("expected DeserializeNode to mint a fresh id, not reuse the original")
	}
	if clone.Type() != registry.TypeText {
		t.Errorf("clone.Type() = %q, want %q", clone.Type(), registry.TypeText)
	}

	cloneBlock := node.AsBlock(clone)
	m, ok := cloneBlock.TextContent()
	if !ok || m.String() != "hello" {
		t.Errorf("clone text = %q, %v, want hello", m.String(), ok)
	}
}

func TestSerializeDeserializePreservingIDsRoundTripsIdentically(t *testing.T) {
	orig := node.NewBlockDataElement(registry.TypeText, nil)
	orig.SetTextContent(textmodel.NewFromText("hello"))

	data, err := SerializeNode(orig.Node)
	if err != nil {
		t.Fatalf("SerializeNode() error = %v", err)
	}

	clone, err := DeserializeNodePreservingIDs(data)
	if err != nil {
		t.Fatalf("DeserializeNodePreservingIDs() error = %v", err)
	}

	if clone.ID() != orig.ID() {
		t.Errorf("clone.ID() = %q, want %q (generic round trip must preserve ids)", clone.ID(), orig.ID())
	}
	if clone.Type() != registry.TypeText {
		t.Errorf("clone.Type() = %q, want %q", clone.Type(), registry.TypeText)
	}

	cloneBlock := node.AsBlock(clone)
	m, ok := cloneBlock.TextContent()
	if !ok || m.String() != "hello" {
		t.Errorf("clone text = %q, %v, want hello", m.String(), ok)
	}
}

func TestSerializeDeserializePreservesChildOrder(t *testing.T) {
	root := node.New("doc1", "document")
	body := node.New("body1", "body")
	a := node.NewBlockDataElement(registry.TypeText, nil)
	a.SetTextContent(textmodel.NewFromText("a"))
	b := node.NewBlockDataElement(registry.TypeText, nil)
	b.SetTextContent(textmodel.NewFromText("b"))
	body.AppendChild(a.Node)
	body.AppendChild(b.Node)
	root.AppendChild(body)

	data, err := SerializeNode(root)
	if err != nil {
		t.Fatalf("SerializeNode() error = %v", err)
	}
	clone, err := DeserializeNode(data)
	if err != nil {
		t.Fatalf("DeserializeNode() error = %v", err)
	}

	cloneBody := clone.ChildAt(0)
	if cloneBody.ChildCount() != 2 {
		t.Fatalf("clone body child count = %d, want 2", cloneBody.ChildCount())
	}
	first := node.AsBlock(cloneBody.ChildAt(0))
	second := node.AsBlock(cloneBody.ChildAt(1))
	m1, _ := first.TextContent()
	m2, _ := second.TextContent()
	if m1.String() != "a" || m2.String() != "b" {
		t.Errorf("clone order = %q, %q, want a, b", m1.String(), m2.String())
	}
}
