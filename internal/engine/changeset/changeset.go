// Package changeset implements Changeset: a builder that records a
// batch of tree/text/cursor operations and applies them to a
// state.State as one atomic, reentrancy-guarded unit, publishing
// exactly one changesetApplied event and bumping the version exactly
// once — the document engine's equivalent of the teacher's Command
// Execute, generalized from a flat op list over a text buffer to a
// list of tree-shaped operations over a block document.
package changeset

import (
	"errors"
	"fmt"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/cursor"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/state"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
)

// ErrReentrantApply is returned when Apply is called while another
// Changeset is already applying against the same State. The caller
// must retry on a subsequent tick rather than nest the call.
var ErrReentrantApply = errors.New("changeset: reentrant apply rejected")

type opKind int

const (
	opInsertChild opKind = iota
	opRemoveChild
	opTextEdit
	opUpdateAttrs
)

type op struct {
	kind   opKind
	parent *node.Node
	index  int
	child  *node.Node

	block *node.BlockDataElement
	edit  func(textmodel.TextModel) textmodel.TextModel

	target *node.Node
	attrs  map[string]any
}

// Changeset accumulates operations to apply together.
type Changeset struct {
	ops         []op
	cursorAfter *cursor.State
}

// New returns an empty Changeset.
func New() *Changeset { return &Changeset{} }

// InsertChild records inserting child under parent at index.
func (cs *Changeset) InsertChild(parent *node.Node, index int, child *node.Node) *Changeset {
	cs.ops = append(cs.ops, op{kind: opInsertChild, parent: parent, index: index, child: child})
	return cs
}

// RemoveChild records removing parent's child at index.
func (cs *Changeset) RemoveChild(parent *node.Node, index int) *Changeset {
	cs.ops = append(cs.ops, op{kind: opRemoveChild, parent: parent, index: index})
	return cs
}

// TextEdit records replacing block's Text Model with fn's result,
// composed against the model as it stands when this op runs (i.e.
// after any earlier ops in the same Changeset have applied).
func (cs *Changeset) TextEdit(block *node.BlockDataElement, fn func(textmodel.TextModel) textmodel.TextModel) *Changeset {
	cs.ops = append(cs.ops, op{kind: opTextEdit, block: block, edit: fn})
	return cs
}

// UpdateAttributes records merging attrs into target.
func (cs *Changeset) UpdateAttributes(target *node.Node, attrs map[string]any) *Changeset {
	cs.ops = append(cs.ops, op{kind: opUpdateAttrs, target: target, attrs: attrs})
	return cs
}

// SetCursorState records the cursor to install once every op has
// applied. Without a call to this, Apply leaves the pre-apply cursor
// in place (subject to RefreshCursor clamping).
func (cs *Changeset) SetCursorState(c cursor.State) *Changeset {
	cs.cursorAfter = &c
	return cs
}

// Options controls Apply's post-op cursor handling and render hinting.
type Options struct {
	// RefreshCursor clamps the resulting cursor's offsets into range
	// for whatever blocks it addresses, guarding against an op leaving
	// a stale offset past the end of a shrunk block.
	RefreshCursor bool

	// ForceUpdate asks a subscriber of ChangesetAppliedEvent to re-emit
	// its projection even if it would otherwise consider this apply a
	// no-op (e.g. an UpdateAttributes touching metadata the renderer
	// doesn't otherwise watch).
	ForceUpdate bool
}

// Result is returned by a successful Apply.
type Result struct {
	AfterCursor cursor.State
	Version     uint64
}

// Apply runs every recorded op against st in order, then installs the
// requested cursor (or the pre-apply cursor, clamped if requested),
// publishes changesetApplied once, and bumps st's version. It returns
// ErrReentrantApply if st is already mid-apply.
func (cs *Changeset) Apply(st *state.State, opts Options) (Result, error) {
	if !st.TryLock() {
		return Result{}, ErrReentrantApply
	}
	defer st.Unlock()

	before := st.Cursor()
	pending := before
	summaries := make([]state.OpSummary, 0, len(cs.ops))

	for _, o := range cs.ops {
		switch o.kind {
		case opInsertChild:
			st.InsertChildAt(o.parent, o.index, o.child)
			summaries = append(summaries, state.OpSummary{Kind: "insertChild", BlockID: idOf(o.child)})
		case opRemoveChild:
			removed := o.parent.ChildAt(o.index)
			pending = redirectPendingCursor(pending, removed, o.parent, o.index)
			st.RemoveChildAt(o.parent, o.index)
			summaries = append(summaries, state.OpSummary{Kind: "removeChild", BlockID: idOf(removed)})
		case opTextEdit:
			st.ApplyTextEdit(o.block, o.edit)
			summaries = append(summaries, state.OpSummary{Kind: "textEdit", BlockID: o.block.ID()})
		case opUpdateAttrs:
			st.ApplyAttrs(o.target, o.attrs)
			summaries = append(summaries, state.OpSummary{Kind: "updateAttributes", BlockID: idOf(o.target)})
		default:
			return Result{}, fmt.Errorf("changeset: unknown op kind %d", o.kind)
		}
	}

	final := pending
	if cs.cursorAfter != nil {
		final = *cs.cursorAfter
	}
	if opts.RefreshCursor {
		final = cursor.Clamp(final, func(id string) int {
			b, ok := st.GetBlockElementByID(id)
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
	if final != before {
		st.SetCursorState(final, state.ReasonChangeset)
	}
	after := st.Cursor()

	st.PublishChangesetApplied(state.ChangesetAppliedEvent{
		Ops:         summaries,
		Before:      before,
		After:       after,
		AfterCursor: after,
		ForceUpdate: opts.ForceUpdate,
	})
	st.BumpVersion()

	return Result{AfterCursor: after, Version: st.Version()}, nil
}

// redirectPendingCursor keeps pending's endpoints from dangling on a
// block that removedChild (about to be detached from parent at index)
// is about to take out of the tree.
//
// NodeLocation.Transform shifts an index-path's sibling index across
// an insert/remove; it has nothing to transform here, since this
// engine's cursor addresses a block by id, not by a path of sibling
// indices, and an id is stable under a sibling-count change it wasn't
// part of. The one way a structural op can invalidate a pending
// cursor is by removing the very block (or an ancestor of it) that
// endpoint addresses, which index-shifting doesn't model at all — so
// the transform this engine actually needs is an id-aware redirect to
// a neighboring block, the same fallback block_ops.DeleteBlock already
// picks by hand when it knows in advance which id is leaving.
func redirectPendingCursor(pending cursor.State, removedChild, parent *node.Node, index int) cursor.State {
	if removedChild == nil {
		return pending
	}
	landing := ""
	landed := false
	if nodeContainsID(removedChild, pending.StartID) {
		landing, landed = landingBlockID(parent, index), true
		pending.StartID, pending.StartOffset = landing, 0
	}
	if nodeContainsID(removedChild, pending.EndID) {
		if !landed {
			landing = landingBlockID(parent, index)
		}
		pending.EndID, pending.EndOffset = landing, 0
	}
	return pending
}

// landingBlockID names the sibling that takes removedIndex's place
// once it's detached: the next sibling if there is one, else the
// previous, else "" (an absent cursor — the tree lost its only
// addressable block).
func landingBlockID(parent *node.Node, removedIndex int) string {
	if next := parent.ChildAt(removedIndex + 1); next != nil {
		return next.ID()
	}
	if removedIndex > 0 {
		if prev := parent.ChildAt(removedIndex - 1); prev != nil {
			return prev.ID()
		}
	}
	return ""
}

func nodeContainsID(n *node.Node, id string) bool {
	if id == "" || n == nil {
		return false
	}
	if n.ID() == id {
		return true
	}
	for _, c := range n.Children() {
		if nodeContainsID(c, id) {
			return true
		}
	}
	return false
}

func idOf(n *node.Node) string {
	if n == nil {
		return ""
	}
	return n.ID()
}
