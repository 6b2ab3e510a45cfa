// Package cursor implements CursorState: a collapsed insertion point
// or an open (start, end) selection addressed by text-like block id
// and character offset into that block's Text Model, plus the
// transform functions that keep a held cursor valid across an edit.
package cursor

// State is an immutable value type describing either a collapsed
// cursor (StartID == EndID and StartOffset == EndOffset) or an open
// selection spanning one or more text-like blocks, oriented in
// document order (Start precedes End).
type State struct {
	StartID     string
	StartOffset int
	EndID       string
	EndOffset   int
}

// Collapsed returns a collapsed cursor addressing id at offset.
func Collapsed(id string, offset int) State {
	return State{StartID: id, StartOffset: offset, EndID: id, EndOffset: offset}
}

// Open returns an open selection from (startID, startOffset) to
// (endID, endOffset), assumed already in document order.
func Open(startID string, startOffset int, endID string, endOffset int) State {
	return State{StartID: startID, StartOffset: startOffset, EndID: endID, EndOffset: endOffset}
}

// IsCollapsed reports whether both endpoints coincide.
func (s State) IsCollapsed() bool {
	return s.StartID == s.EndID && s.StartOffset == s.EndOffset
}

// ID returns the collapsed cursor's block id. Only meaningful when
// IsCollapsed is true.
func (s State) ID() string { return s.StartID }

// Offset returns the collapsed cursor's character offset. Only
// meaningful when IsCollapsed is true.
func (s State) Offset() int { return s.StartOffset }

// WithStart returns a copy of s with the start endpoint replaced.
func (s State) WithStart(id string, offset int) State {
	s.StartID, s.StartOffset = id, offset
	return s
}

// WithEnd returns a copy of s with the end endpoint replaced.
func (s State) WithEnd(id string, offset int) State {
	s.EndID, s.EndOffset = id, offset
	return s
}
