// Package state implements State: the document tree, the
// blockId → BlockDataElement index, the current cursor, the version
// counter, and the change-event streams (newBlockCreated,
// blockWillDelete, cursorStateChanged, changesetApplied) that the rest
// of the engine observes.
//
// State exposes two layers: read-only queries anyone may call
// (GetBlockElementByID, IsTextLike, SplitCursorStateByBlocks, ...),
// and low-level mutation primitives (InsertChildAt, RemoveChildAt,
// ApplyTextEdit, ApplyAttrs, SetCursorState) that only a Changeset
// apply is meant to call — State itself does not enforce that
// boundary beyond the reentrancy lock, trusting Changeset to be the
// sole caller in practice, the same way the teacher trusts Buffer's
// callers to go through the dispatcher rather than mutate it directly.
package state

import (
	"github.com/fork-archive-hub/blocky-editor/internal/engine/cursor"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/docid"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
	"github.com/fork-archive-hub/blocky-editor/internal/stream"
)

// Reason tags why a cursor was set, so subscribers can distinguish a
// programmatic change from one driven by the browser.
type Reason uint8

const (
	ReasonChangeset Reason = iota
	ReasonUserInput
	ReasonBrowserSelection
	ReasonUIEvent
)

func (r Reason) String() string {
	switch r {
	case ReasonChangeset:
		return "changeset"
	case ReasonUserInput:
		return "userInput"
	case ReasonBrowserSelection:
		return "browserSelection"
	case ReasonUIEvent:
		return "uiEvent"
	default:
		return "unknown"
	}
}

// CursorChangedEvent is published on CursorStateChanged.
type CursorChangedEvent struct {
	Cursor cursor.State
	Reason Reason
}

// OpSummary describes one operation a Changeset applied, for
// consumers of ChangesetAppliedEvent that don't need the full
// Changeset-internal op representation (the renderer, mainly).
type OpSummary struct {
	Kind    string
	BlockID string
}

// ChangesetAppliedEvent is published once per Changeset.Apply.
type ChangesetAppliedEvent struct {
	Ops         []OpSummary
	Before      cursor.State
	After       cursor.State
	AfterCursor cursor.State
	// ForceUpdate mirrors the Apply call's Options.ForceUpdate, for a
	// subscriber deciding whether to re-render despite an Ops list it
	// would otherwise treat as a no-op.
	ForceUpdate bool
}

// State owns the document tree, block index, cursor, and streams.
type State struct {
	doc      *node.BlockyDocument
	index    map[string]*node.BlockDataElement
	blockReg *registry.BlockRegistry
	cur      cursor.State
	version  uint64
	locked   bool

	newBlockCreated    stream.Stream[*node.BlockDataElement]
	blockWillDelete    stream.Stream[*node.BlockDataElement]
	cursorStateChanged stream.Stream[CursorChangedEvent]
	changesetApplied   stream.Stream[ChangesetAppliedEvent]
}

// New builds a State whose document starts with the given title text
// and an empty body, using blockReg to validate/mint block elements.
func New(blockReg *registry.BlockRegistry, titleText string) *State {
	title := node.NewBlockDataElement(registry.TypeTitle, nil)
	title.SetTextContent(textmodel.NewFromText(titleText))

	s := &State{
		doc:      node.NewBlockyDocument(title),
		index:    make(map[string]*node.BlockDataElement),
		blockReg: blockReg,
	}
	s.index[title.ID()] = title
	s.cur = cursor.Collapsed(title.ID(), titleMLen(title))
	return s
}

// NewFromDocument builds a State around a pre-built document tree
// (the controller's `document` construction option), reindexing every
// block element already present in it and seeding the cursor at the
// end of the title.
func NewFromDocument(blockReg *registry.BlockRegistry, doc *node.BlockyDocument) *State {
	s := &State{
		doc:      doc,
		index:    make(map[string]*node.BlockDataElement),
		blockReg: blockReg,
	}
	var index func(n *node.Node)
	index = func(n *node.Node) {
		if node.IsBlockTypeName(n.Type()) {
			s.index[n.ID()] = node.AsBlock(n)
		}
		for _, c := range n.Children() {
			index(c)
		}
	}
	index(doc.Node)
	title := doc.Title()
	s.cur = cursor.Collapsed(title.ID(), titleMLen(title))
	return s
}

// SetInitialVersion overrides the version counter at construction time
// (the controller's `initVersion` option). Not meant to be called once
// a Changeset has applied.
func (s *State) SetInitialVersion(v uint64) { s.version = v }

func titleMLen(b *node.BlockDataElement) int {
	m, ok := b.TextContent()
	if !ok {
		return 0
	}
	return m.Length()
}

// Document returns the owned document tree.
func (s *State) Document() *node.BlockyDocument { return s.doc }

// Cursor returns the current cursor.
func (s *State) Cursor() cursor.State { return s.cur }

// Version returns the current version counter.
func (s *State) Version() uint64 { return s.version }

// BlockRegistry returns the registry used to validate block types.
func (s *State) BlockRegistry() *registry.BlockRegistry { return s.blockReg }

// GetBlockElementByID returns the live block of the given id, if any.
func (s *State) GetBlockElementByID(id string) (*node.BlockDataElement, bool) {
	b, ok := s.index[id]
	return b, ok
}

// IsTextLike reports whether n's block definition declares a text
// content attribute. Unregistered types are never text-like.
func (s *State) IsTextLike(n *node.Node) bool {
	def, ok := s.blockReg.Get(n.Type())
	return ok && def.HasTextContent
}

// CreateTextElement mints a fresh Text block seeded with initial
// content and attrs. The element is detached; a Changeset's
// insertChild op attaches it to the tree.
func (s *State) CreateTextElement(initial textmodel.TextModel, attrs map[string]any) *node.BlockDataElement {
	b := node.NewBlockDataElement(registry.TypeText, attrs)
	b.SetTextContent(initial)
	return b
}

// SplitCursorStateByBlocks clips an open cursor into one span per
// text-like block it crosses, in document order (title, then body's
// children).
func (s *State) SplitCursorStateByBlocks(c cursor.State) []cursor.State {
	order := s.textLikeBlockOrder()
	return cursor.SplitByBlocks(c, order, func(id string) int {
		b, ok := s.index[id]
		if !ok {
			return 0
		}
		m, ok := b.TextContent()
		if !ok {
			return 0
		}
		return m.Length()
	})
}

func (s *State) textLikeBlockOrder() []string {
	var ids []string
	if title := s.doc.Title(); title != nil && s.IsTextLike(title.Node) {
		ids = append(ids, title.ID())
	}
	for _, child := range s.doc.Body().Children() {
		if s.IsTextLike(child) {
			ids = append(ids, child.ID())
		}
	}
	return ids
}

// TryLock acquires the reentrancy guard, returning false if a
// Changeset apply is already in progress (a nested apply must be
// rejected per spec's ReentrantApply error taxonomy).
func (s *State) TryLock() bool {
	if s.locked {
		return false
	}
	s.locked = true
	return true
}

// Unlock releases the reentrancy guard.
func (s *State) Unlock() { s.locked = false }

// InsertChildAt inserts child under parent at index, registers it in
// the block index if it is a block element, and publishes
// newBlockCreated.
func (s *State) InsertChildAt(parent *node.Node, index int, child *node.Node) {
	parent.InsertChildAt(index, child)
	if node.IsBlockTypeName(child.Type()) {
		block := node.AsBlock(child)
		s.index[child.ID()] = block
		if def, ok := s.blockReg.Get(block.Type()); ok && def.OnBlockCreated != nil {
			def.OnBlockCreated(block.ID())
		}
		s.newBlockCreated.Publish(block)
	}
}

// RemoveChildAt publishes blockWillDelete (if the child is a block
// element) before detaching it, then removes it from the index.
func (s *State) RemoveChildAt(parent *node.Node, index int) *node.Node {
	child := parent.ChildAt(index)
	if child == nil {
		return nil
	}
	if node.IsBlockTypeName(child.Type()) {
		block := node.AsBlock(child)
		s.blockWillDelete.Publish(block)
		delete(s.index, child.ID())
	}
	return parent.RemoveChildAt(index)
}

// ApplyTextEdit calls fn with block's current Text Model and installs
// fn's result as the block's new Text Model.
func (s *State) ApplyTextEdit(block *node.BlockDataElement, fn func(textmodel.TextModel) textmodel.TextModel) {
	cur, _ := block.TextContent()
	block.SetTextContent(fn(cur))
}

// ApplyAttrs shallow-merges attrs into n.
func (s *State) ApplyAttrs(n *node.Node, attrs map[string]any) {
	n.SetAttrs(attrs)
}

// SetCursorState is the single low-level cursor setter (spec's
// `__setCursorState`): every cursor change, whether from a Changeset
// apply or a browser selection sync, funnels through here so
// cursorStateChanged fires exactly once per change.
func (s *State) SetCursorState(c cursor.State, reason Reason) {
	s.cur = c
	s.cursorStateChanged.Publish(CursorChangedEvent{Cursor: c, Reason: reason})
}

// BumpVersion increments the version counter, called once per applied Changeset.
func (s *State) BumpVersion() { s.version++ }

// PublishChangesetApplied emits the changesetApplied event.
func (s *State) PublishChangesetApplied(ev ChangesetAppliedEvent) {
	s.changesetApplied.Publish(ev)
}

// NewBlockCreated returns the stream of blocks entering the tree.
func (s *State) NewBlockCreated() *stream.Stream[*node.BlockDataElement] { return &s.newBlockCreated }

// BlockWillDelete returns the stream of blocks about to leave the tree.
func (s *State) BlockWillDelete() *stream.Stream[*node.BlockDataElement] { return &s.blockWillDelete }

// CursorStateChanged returns the cursor-change stream.
func (s *State) CursorStateChanged() *stream.Stream[CursorChangedEvent] {
	return &s.cursorStateChanged
}

// ChangesetApplied returns the per-apply event stream.
func (s *State) ChangesetApplied() *stream.Stream[ChangesetAppliedEvent] {
	return &s.changesetApplied
}

// docid is imported for its package doc reference from callers
// constructing ids outside State; State itself mints ids only through
// node.NewBlockDataElement, which already uses docid internally.
var _ = docid.NewID
