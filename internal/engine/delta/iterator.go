package delta

// iterator walks a Delta's ops, allowing a caller to peek/consume a
// bounded number of units at a time regardless of the underlying op
// boundaries. This mirrors the op-iterator used by every quill-style
// delta composition algorithm.
type iterator struct {
	ops    []Op
	index  int
	offset int // units already consumed from ops[index]
}

func newIterator(ops []Op) *iterator {
	return &iterator{ops: ops}
}

// hasNext reports whether any ops remain.
func (it *iterator) hasNext() bool {
	return it.peekLen() < 1<<31
}

// peekLen returns the number of units left in the current op (a very
// large number if iteration is exhausted, so callers can cap with min).
func (it *iterator) peekLen() int {
	if it.index >= len(it.ops) {
		return 1 << 31
	}
	return it.ops[it.index].Len() - it.offset
}

// peekKind returns the kind of the current op, or KindRetain (treated
// as infinite retain) past the end.
func (it *iterator) peekKind() Kind {
	if it.index >= len(it.ops) {
		return KindRetain
	}
	return it.ops[it.index].Kind
}

// next consumes up to n units from the current op and returns an Op
// representing exactly that slice (text sliced by rune, retain/delete
// by count). If n exceeds what remains in the op, only what remains is consumed.
func (it *iterator) next(n int) Op {
	if it.index >= len(it.ops) {
		return Op{Kind: KindRetain, N: n}
	}

	op := it.ops[it.index]
	remaining := op.Len() - it.offset
	if n >= remaining {
		n = remaining
	}

	var result Op
	switch op.Kind {
	case KindInsert:
		if op.IsEmbed() {
			result = Op{Kind: KindInsert, Embed: op.Embed, Attrs: op.Attrs}
		} else {
			runes := []rune(op.Text)
			result = Op{Kind: KindInsert, Text: string(runes[it.offset : it.offset+n]), Attrs: op.Attrs}
		}
	default:
		result = Op{Kind: op.Kind, N: n, Attrs: op.Attrs}
	}

	it.offset += n
	if it.offset >= op.Len() {
		it.index++
		it.offset = 0
	}
	return result
}

// rest consumes and returns all remaining ops, each truncated at the
// current offset into the first one.
func (it *iterator) rest() []Op {
	if !it.hasNext() {
		return nil
	}
	if it.offset == 0 {
		rest := it.ops[it.index:]
		it.index = len(it.ops)
		return rest
	}
	first := it.next(it.peekLen())
	out := append([]Op{first}, it.ops[it.index:]...)
	it.index = len(it.ops)
	return out
}
