package delta

// Delta is a finite, normalized sequence of retain/insert/delete
// operations. The zero value is an empty Delta.
//
// Normalization invariants (maintained by every constructor and
// mutator in this package):
//   - no op has zero length (an empty text insert, a retain(0), a
//     delete(0) are all dropped)
//   - no two adjacent ops of the same kind with identical attributes
//     remain separate; they are merged into one
type Delta struct {
	Ops []Op
}

// New builds a Delta from the given ops, normalizing as it goes.
func New(ops ...Op) Delta {
	var d Delta
	for _, op := range ops {
		d.push(op)
	}
	return d
}

// push appends op to the Delta, merging with the trailing op when
// possible and dropping zero-length ops. This is the single place
// where the normalization invariant is enforced.
func (d *Delta) push(op Op) {
	if op.Kind == KindInsert {
		if !op.IsEmbed() && op.Text == "" {
			return
		}
	} else if op.N <= 0 {
		return
	}

	if len(d.Ops) == 0 {
		d.Ops = append(d.Ops, op)
		return
	}

	last := &d.Ops[len(d.Ops)-1]
	if mergeable(*last, op) {
		switch op.Kind {
		case KindInsert:
			last.Text += op.Text
		default:
			last.N += op.N
		}
		return
	}

	// Quill convention: an insert that follows a delete is reordered
	// before it, since inserting-then-deleting and deleting-then-inserting
	// at the same cursor position are equivalent, and keeping inserts
	// before deletes simplifies composition.
	if op.Kind == KindInsert && last.Kind == KindDelete {
		if len(d.Ops) >= 2 {
			prev := &d.Ops[len(d.Ops)-2]
			if mergeable(*prev, op) {
				switch op.Kind {
				case KindInsert:
					prev.Text += op.Text
				}
				return
			}
		}
		d.Ops = append(d.Ops, op)
		d.Ops[len(d.Ops)-2], d.Ops[len(d.Ops)-1] = d.Ops[len(d.Ops)-1], d.Ops[len(d.Ops)-2]
		return
	}

	d.Ops = append(d.Ops, op)
}

// Insert appends a plain text insert op.
func (d *Delta) Insert(s string) *Delta { d.push(Op{Kind: KindInsert, Text: s}); return d }

// InsertAttrs appends a plain text insert op carrying attrs.
func (d *Delta) InsertAttrs(s string, attrs map[string]any) *Delta {
	d.push(Op{Kind: KindInsert, Text: s, Attrs: normalizeAttrs(attrs)})
	return d
}

// InsertEmbed appends an object insert op.
func (d *Delta) InsertEmbed(obj any, attrs map[string]any) *Delta {
	d.push(Op{Kind: KindInsert, Embed: obj, Attrs: normalizeAttrs(attrs)})
	return d
}

// Retain appends a retain op of length n.
func (d *Delta) Retain(n int) *Delta { d.push(Op{Kind: KindRetain, N: n}); return d }

// RetainAttrs appends a retain op of length n carrying attrs.
func (d *Delta) RetainAttrs(n int, attrs map[string]any) *Delta {
	d.push(Op{Kind: KindRetain, N: n, Attrs: normalizeAttrs(attrs)})
	return d
}

// Delete appends a delete op of length n.
func (d *Delta) Delete(n int) *Delta { d.push(Op{Kind: KindDelete, N: n}); return d }

// Length returns the total length of all insert ops (the length of the
// content this Delta describes, if it describes content rather than an edit).
func (d Delta) Length() int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == KindInsert {
			n += op.Len()
		}
	}
	return n
}

// ChangeLength returns the net change in document length this Delta
// would cause if applied as an edit: sum(insert lengths) - sum(delete lengths).
func (d Delta) ChangeLength() int {
	n := 0
	for _, op := range d.Ops {
		switch op.Kind {
		case KindInsert:
			n += op.Len()
		case KindDelete:
			n -= op.N
		}
	}
	return n
}

// IsEmpty reports whether the Delta has no ops.
func (d Delta) IsEmpty() bool { return len(d.Ops) == 0 }

// Equal reports whether two Deltas have identical normalized op sequences.
func (d Delta) Equal(other Delta) bool {
	if len(d.Ops) != len(other.Ops) {
		return false
	}
	for i := range d.Ops {
		a, b := d.Ops[i], other.Ops[i]
		if a.Kind != b.Kind || a.N != b.N || a.Text != b.Text || !sameAttrs(a.Attrs, b.Attrs) {
			return false
		}
		if a.Kind == KindInsert && a.IsEmbed() != b.IsEmbed() {
			return false
		}
	}
	return true
}

// Clone returns a deep-enough copy (ops slice and attribute maps are
// copied; embed payloads are shared by reference).
func (d Delta) Clone() Delta {
	ops := make([]Op, len(d.Ops))
	for i, op := range d.Ops {
		ops[i] = op
		if op.Attrs != nil {
			ops[i].Attrs = normalizeAttrs(op.Attrs)
		}
	}
	return Delta{Ops: ops}
}
