package delta

// Slice returns the portion of d's content between [start, end) in
// Delta-length units (runes for text, 1 per embed). Retain/delete ops
// are meaningless in a content-only Delta and are passed through as-is
// when present, consistent with slicing an edit Delta rather than content.
func (d Delta) Slice(start int, end ...int) Delta {
	stop := d.Length()
	if len(end) > 0 {
		stop = end[0]
	}

	var result Delta
	it := newIterator(d.Ops)
	consumed := 0

	for it.hasNext() && consumed < stop {
		var next Op
		if consumed < start {
			next = it.next(min(start-consumed, it.peekLen()))
		} else {
			next = it.next(min(stop-consumed, it.peekLen()))
			result.push(next)
		}
		consumed += next.Len()
	}

	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Concat appends other's ops after d's, merging the boundary ops when
// their kind and attributes match.
func (d Delta) Concat(other Delta) Delta {
	result := d.Clone()
	for _, op := range other.Ops {
		result.push(op)
	}
	return result
}
