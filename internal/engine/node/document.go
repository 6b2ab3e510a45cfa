package node

import "github.com/fork-archive-hub/blocky-editor/internal/engine/docid"

// Container type tags. These are the two fixed slots under a
// BlockyDocument's root; per the block-name convention (node.go)
// their lowercase tags mark them as containers, never block elements.
const (
	TypeDocument = "document"
	TypeBody     = "body"
)

// BlockyDocument is the tree root: exactly two children in fixed
// order, title (a Title block) and body (a container of block
// elements). The document's own children are never reordered; only
// body's children change structurally in response to editing.
type BlockyDocument struct {
	*Node
}

// NewBlockyDocument builds a document rooted with the given title
// block and an empty body container.
func NewBlockyDocument(title *BlockDataElement) *BlockyDocument {
	root := New(docid.NewID(), TypeDocument)
	body := New(docid.NewID(), TypeBody)
	root.AppendChild(title.Node)
	root.AppendChild(body)
	return &BlockyDocument{Node: root}
}

// Title returns the document's title block.
func (d *BlockyDocument) Title() *BlockDataElement {
	return AsBlock(d.ChildAt(0))
}

// Body returns the body container node. Its children are the
// document's block elements, in document order.
func (d *BlockyDocument) Body() *Node {
	return d.ChildAt(1)
}
