// Package domiface abstracts the editable surface the Editor projects
// the document model onto: an Element tree with attributes, text
// content, and a hidden back-reference slot to the model node it
// represents — standing in for the DOM the teacher's renderer instead
// draws onto a terminal grid. A real deployment backs this with
// browser DOM nodes; InMemory backs it with a plain tree for tests.
package domiface

// Element is one node of the editable surface's tree.
type Element interface {
	Tag() string
	ID() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)

	// Text returns this element's own text content (for a text leaf);
	// branch elements return "".
	Text() string
	SetText(s string)

	Parent() Element
	Children() []Element
	AppendChild(child Element)
	InsertChildAt(i int, child Element)
	RemoveChild(child Element)

	// ModelID is the hidden slot referencing the document node this
	// element renders, empty for structural wrapper elements.
	ModelID() string
	SetModelID(id string)
}

// Selection is a collapsed or open range over the editable surface,
// each endpoint a leaf Element plus a character offset into its text.
type Selection struct {
	StartNode   Element
	StartOffset int
	EndNode     Element
	EndOffset   int
}

// Collapsed reports whether the selection has zero length.
func (s Selection) Collapsed() bool {
	return s.StartNode == s.EndNode && s.StartOffset == s.EndOffset
}
