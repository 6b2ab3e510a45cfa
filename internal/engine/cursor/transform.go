package cursor

// TransformOffset adjusts offset to stay valid after a text edit that
// replaced oldLen units starting at editOffset with newLen units,
// mirroring the byte-offset transform every OT/rope editor needs:
//   - edit entirely before offset: shift by the length delta
//   - edit starts at or after offset: unchanged
//   - edit spans offset: move to the end of the inserted content
func TransformOffset(offset, editOffset, oldLen, newLen int) int {
	editEnd := editOffset + oldLen
	switch {
	case editEnd <= offset:
		return offset - oldLen + newLen
	case editOffset >= offset:
		return offset
	default:
		return editOffset + newLen
	}
}

// Transform adjusts s's endpoints that address blockID to stay valid
// after a text edit within that block. Endpoints addressing any other
// block are untouched.
func Transform(s State, blockID string, editOffset, oldLen, newLen int) State {
	if s.StartID == blockID {
		s.StartOffset = TransformOffset(s.StartOffset, editOffset, oldLen, newLen)
	}
	if s.EndID == blockID {
		s.EndOffset = TransformOffset(s.EndOffset, editOffset, oldLen, newLen)
	}
	return s
}

// Clamp clamps s's offsets into [0, lengthOf(blockID)] for whichever
// blocks its endpoints address, using the given length lookup.
func Clamp(s State, lengthOf func(id string) int) State {
	if n := lengthOf(s.StartID); s.StartOffset > n {
		s.StartOffset = n
	}
	if s.StartOffset < 0 {
		s.StartOffset = 0
	}
	if n := lengthOf(s.EndID); s.EndOffset > n {
		s.EndOffset = n
	}
	if s.EndOffset < 0 {
		s.EndOffset = 0
	}
	return s
}

// SplitByBlocks clips an open cursor into one span per text-like
// block it crosses, in document order, each span fully contained
// within a single block (StartID == EndID). orderedBlockIDs must list
// every text-like block the document contains, in document order;
// lengthOf returns a block's current text length.
//
// A collapsed cursor splits to itself. An open cursor whose endpoints
// address blocks not found in orderedBlockIDs returns nil, since there
// is no well-defined document-order span to build.
func SplitByBlocks(s State, orderedBlockIDs []string, lengthOf func(id string) int) []State {
	if s.IsCollapsed() {
		return []State{s}
	}

	startIdx, endIdx := -1, -1
	for i, id := range orderedBlockIDs {
		if id == s.StartID {
			startIdx = i
		}
		if id == s.EndID {
			endIdx = i
		}
	}
	if startIdx == -1 || endIdx == -1 || startIdx > endIdx {
		return nil
	}

	if startIdx == endIdx {
		return []State{Open(s.StartID, s.StartOffset, s.EndID, s.EndOffset)}
	}

	spans := make([]State, 0, endIdx-startIdx+1)
	firstID := orderedBlockIDs[startIdx]
	spans = append(spans, Open(firstID, s.StartOffset, firstID, lengthOf(firstID)))
	for i := startIdx + 1; i < endIdx; i++ {
		id := orderedBlockIDs[i]
		spans = append(spans, Open(id, 0, id, lengthOf(id)))
	}
	lastID := orderedBlockIDs[endIdx]
	spans = append(spans, Open(lastID, 0, lastID, s.EndOffset))
	return spans
}
