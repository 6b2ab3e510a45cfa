// Package location implements NodeLocation, an immutable path into a
// document tree, and the transform used to keep a held location valid
// across a structural edit elsewhere in the tree.
package location

import "strconv"

// component is one step of a NodeLocation path: either a child index
// (an int component) or, at the leaf, an attribute name (a string
// component, used to address e.g. a block's textContent attribute).
type component struct {
	isIndex bool
	index   int
	name    string
}

// NodeLocation is an immutable sequence of path components from the
// document root. Two locations are equal iff their component
// sequences are equal.
type NodeLocation struct {
	path []component
}

// Root is the empty location, addressing the document root itself.
var Root = NodeLocation{}

// Index returns a location built from a sequence of child indices.
func Index(indices ...int) NodeLocation {
	path := make([]component, len(indices))
	for i, n := range indices {
		path[i] = component{isIndex: true, index: n}
	}
	return NodeLocation{path: path}
}

// Child returns a new location one level deeper, addressing child
// index n under loc.
func (loc NodeLocation) Child(n int) NodeLocation {
	return NodeLocation{path: append(appendedCopy(loc.path), component{isIndex: true, index: n})}
}

// Attr returns a new location addressing the named attribute of the
// node loc designates (always the leaf of a path).
func (loc NodeLocation) Attr(name string) NodeLocation {
	return NodeLocation{path: append(appendedCopy(loc.path), component{name: name})}
}

func appendedCopy(path []component) []component {
	out := make([]component, len(path))
	copy(out, path)
	return out
}

// Len returns the number of components in the path.
func (loc NodeLocation) Len() int { return len(loc.path) }

// IndexAt returns the index component at depth d and whether that
// component is in fact an index (false for an attribute-name leaf).
func (loc NodeLocation) IndexAt(d int) (int, bool) {
	if d < 0 || d >= len(loc.path) {
		return 0, false
	}
	c := loc.path[d]
	return c.index, c.isIndex
}

// Equal reports whether two locations address the same path.
func (loc NodeLocation) Equal(other NodeLocation) bool {
	if len(loc.path) != len(other.path) {
		return false
	}
	for i := range loc.path {
		a, b := loc.path[i], other.path[i]
		if a.isIndex != b.isIndex || a.index != b.index || a.name != b.name {
			return false
		}
	}
	return true
}

// String renders the location as a dotted path, for diagnostics.
func (loc NodeLocation) String() string {
	var out []byte
	for i, c := range loc.path {
		if i > 0 {
			out = append(out, '.')
		}
		if c.isIndex {
			out = append(out, strconv.Itoa(c.index)...)
		} else {
			out = append(out, c.name...)
		}
	}
	return string(out)
}

// Transform adjusts loc to stay valid after a structural edit at
// base: an insertion or removal of delta siblings starting at child
// index base's last component. If base's last component is an index
// and that index is ≤ loc's index at the same depth (i.e. loc's
// sibling path passes through or after the edit point), loc's index
// at that depth shifts by delta. Any other relationship — base
// addressing a different subtree, loc shorter than base, or base's
// leaf being an attribute name rather than an index — leaves loc
// unchanged, since a sibling-count edit at one path has no bearing on
// a location outside that parent's children.
func Transform(base, loc NodeLocation, delta int) NodeLocation {
	if delta == 0 || len(base.path) == 0 || len(loc.path) < len(base.path) {
		return loc
	}

	depth := len(base.path) - 1
	for i := 0; i < depth; i++ {
		if base.path[i] != loc.path[i] {
			return loc // different subtree entirely
		}
	}

	baseLeaf := base.path[depth]
	locAtDepth := loc.path[depth]
	if !baseLeaf.isIndex || !locAtDepth.isIndex {
		// A string (attribute-name) path component never participates
		// in a sibling-shift transform.
		return loc
	}
	if baseLeaf.index > locAtDepth.index {
		return loc
	}

	out := appendedCopy(loc.path)
	out[depth].index += delta
	return NodeLocation{path: out}
}
