// Package node implements the document tree: a generic Node with
// attributes and ordered children, plus the BlockDataElement and
// BlockyDocument specializations layered on top of it.
package node

import "unicode"

// Node is a generic tree element: a type tag, a stable id, an
// unordered attribute map, and an ordered list of children.
// Parent/previous/next-sibling relationships are derived from the
// owning parent's children slice rather than stored redundantly,
// except for the parent pointer itself which every child keeps so
// that walking upward doesn't require a full-tree search.
type Node struct {
	id       string
	typ      string
	attrs    map[string]any
	children []*Node
	parent   *Node
}

// New creates a detached node with the given type tag and id. Callers
// normally go through docid.NewBlockID/NewID to mint id, and through
// the State/Controller to attach the result to a tree — a Node
// created directly here is not yet "in the tree" until a structural
// changeset op installs it.
func New(id, typ string) *Node {
	return &Node{id: id, typ: typ}
}

// IsBlockTypeName reports whether typ follows the block-name
// convention: block type names start with an uppercase letter,
// container types (e.g. the document body) do not.
func IsBlockTypeName(typ string) bool {
	if typ == "" {
		return false
	}
	r := []rune(typ)[0]
	return unicode.IsUpper(r)
}

// ID returns the node's stable id.
func (n *Node) ID() string { return n.id }

// Type returns the node's type tag.
func (n *Node) Type() string { return n.typ }

// Attr returns the value of the named attribute and whether it was set.
func (n *Node) Attr(name string) (any, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(name string, value any) {
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[name] = value
}

// SetAttrs shallow-merges attrs into the node's attribute map (the
// shape used by Changeset's updateAttributes operation).
func (n *Node) SetAttrs(attrs map[string]any) {
	for k, v := range attrs {
		n.SetAttr(k, v)
	}
}

// Attrs returns a shallow copy of the node's attribute map.
func (n *Node) Attrs() map[string]any {
	out := make(map[string]any, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Parent returns the node's parent, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in order. The returned slice
// is owned by the node; callers must not mutate it directly.
func (n *Node) Children() []*Node { return n.children }

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOfChild returns the index of child among n's children, or -1.
func (n *Node) IndexOfChild(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// PrevSibling returns the child immediately before n in its parent's
// children, or nil if n is first or has no parent.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOfChild(n)
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// NextSibling returns the child immediately after n in its parent's
// children, or nil if n is last or has no parent.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.IndexOfChild(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// InsertChildAt inserts child at index i, shifting later children
// right. i may equal ChildCount() to append.
func (n *Node) InsertChildAt(i int, child *Node) {
	if i < 0 || i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}

// AppendChild inserts child as the last child.
func (n *Node) AppendChild(child *Node) {
	n.InsertChildAt(len(n.children), child)
}

// RemoveChildAt removes and returns the child at index i, detaching
// it from the tree (its parent pointer is cleared). Returns nil if i
// is out of range.
func (n *Node) RemoveChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	child := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return child
}
