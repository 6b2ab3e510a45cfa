package delta

// Compose returns the Delta that results from applying other to the
// document produced by d: compose(d, other) describes the same net
// content change as applying d first, then other.
//
// This is the standard quill/rich-text-OT composition: walk both
// Deltas in lockstep, taking the smaller of the two current op
// lengths at each step.
func (d Delta) Compose(other Delta) Delta {
	thisIter := newIterator(d.Ops)
	otherIter := newIterator(other.Ops)
	var result Delta

	for thisIter.hasNext() || otherIter.hasNext() {
		switch {
		case otherIter.peekKind() == KindInsert:
			result.push(otherIter.next(otherIter.peekLen()))

		case thisIter.peekKind() == KindDelete:
			result.push(thisIter.next(thisIter.peekLen()))

		default:
			length := min(thisIter.peekLen(), otherIter.peekLen())
			thisOp := thisIter.next(length)
			otherOp := otherIter.next(length)

			switch otherOp.Kind {
			case KindRetain:
				merged := composeAttrs(thisOp.Attrs, otherOp.Attrs, thisOp.Kind == KindRetain)
				switch thisOp.Kind {
				case KindInsert:
					result.push(Op{Kind: KindInsert, Text: thisOp.Text, Embed: thisOp.Embed, Attrs: merged})
				default:
					result.push(Op{Kind: KindRetain, N: length, Attrs: merged})
				}
			case KindDelete:
				if thisOp.Kind == KindRetain {
					result.push(Op{Kind: KindDelete, N: length})
				}
				// thisOp was an insert: insert-then-delete cancels out entirely.
			}
		}
	}

	return result
}

// composeAttrs merges two attribute maps, other taking priority. When
// keepNull is true (first side is a retain, so nulling an attribute is
// a meaningful "clear" instruction) explicit nil values in other are
// kept; otherwise nil-valued keys are dropped (an insert has no prior
// attributes to clear).
func composeAttrs(base, overlay map[string]any, keepNull bool) map[string]any {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		if v == nil && !keepNull {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}
