package node

import (
	"github.com/fork-archive-hub/blocky-editor/internal/engine/docid"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
)

// textContentAttr is the reserved attribute name a text-like block
// carries its Text Model under.
const textContentAttr = "textContent"

// BlockDataElement is a Node whose type is a registered block name.
// It is a thin view over *Node, not a separate storage representation
// — the registry decides which type tags qualify.
type BlockDataElement struct {
	*Node
}

// NewBlockDataElement mints a fresh block id and returns a new
// detached BlockDataElement of the given block type, seeded with attrs.
func NewBlockDataElement(blockType string, attrs map[string]any) *BlockDataElement {
	n := New(docid.NewBlockID(), blockType)
	n.SetAttrs(attrs)
	return &BlockDataElement{Node: n}
}

// AsBlock views an existing *Node as a BlockDataElement. Callers are
// expected to have already checked the node's type against the block
// registry.
func AsBlock(n *Node) *BlockDataElement {
	if n == nil {
		return nil
	}
	return &BlockDataElement{Node: n}
}

// TextContent returns the block's Text Model and whether it carries one.
func (b *BlockDataElement) TextContent() (textmodel.TextModel, bool) {
	v, ok := b.Attr(textContentAttr)
	if !ok {
		return textmodel.TextModel{}, false
	}
	m, ok := v.(textmodel.TextModel)
	return m, ok
}

// SetTextContent installs m as the block's Text Model.
func (b *BlockDataElement) SetTextContent(m textmodel.TextModel) {
	b.SetAttr(textContentAttr, m)
}

// HasTextContent reports whether the block carries a Text Model,
// without allocating the model's zero value.
func (b *BlockDataElement) HasTextContent() bool {
	_, ok := b.Attr(textContentAttr)
	return ok
}
