// Package controller implements Controller: the stable public API an
// embedder drives instead of touching State or a Changeset directly.
// It owns the State, the three registries, an id-agnostic paste
// pipeline, a coalescing nextTick queue, and the remote-cursor
// broadcast stream used by collaborative-cursor overlays.
//
// Grounded on the teacher's internal/app.Application façade: a single
// struct wiring together the lower layers (event bus, dispatcher,
// renderer there; State, registries, paste pipeline here) and exposing
// a small, named operation set rather than the layers themselves.
package controller

import (
	"errors"
	"fmt"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/changeset"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/cursor"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/state"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
	"github.com/fork-archive-hub/blocky-editor/internal/stream"
)

// Sentinel errors implementing the error taxonomy's recoverable cases
// (InvariantViolation is instead routed through onError, not returned).
var (
	ErrUnknownBlockType = errors.New("controller: unknown block type")
	ErrBlockNotFound    = errors.New("controller: block not found")
	ErrNotTextLike      = errors.New("controller: block does not carry text content")
)

// Result mirrors a Changeset apply's outcome.
type Result = changeset.Result

// RemoteCursorEvent is published on CursorChanged when a collaborator's
// cursor position is applied via ApplyCursorChangedEvent.
type RemoteCursorEvent struct {
	ActorID string
	Cursor  cursor.State
}

// Controller is the editor's public façade.
type Controller struct {
	st       *state.State
	blockReg *registry.BlockRegistry
	spanReg  *registry.SpanRegistry
	embedReg *registry.EmbedRegistry
	opts     resolvedOptions

	nextTick []func()

	cursorChanged stream.Stream[RemoteCursorEvent]
	remoteCursors map[string]cursor.State

	followerWidgets map[string]any
}

// New builds a Controller from opts, sealing the registries after
// running every plugin against them.
func New(opts ...Option) *Controller {
	ro := defaultOptions()
	for _, o := range opts {
		o(&ro)
	}

	blockReg := ro.blockReg
	if blockReg == nil {
		blockReg = registry.NewDefaultBlockRegistry()
	}
	spanReg := ro.spanReg
	if spanReg == nil {
		spanReg = registry.NewDefaultSpanRegistry()
	}
	embedReg := ro.embedReg
	if embedReg == nil {
		embedReg = registry.NewDefaultEmbedRegistry()
	}
	for _, p := range ro.plugins {
		p(blockReg, spanReg, embedReg)
	}

	var st *state.State
	if ro.document != nil {
		st = state.NewFromDocument(blockReg, ro.document)
	} else {
		st = state.New(blockReg, ro.title)
	}
	if ro.initVersion != 0 {
		st.SetInitialVersion(uint64(ro.initVersion))
	}

	return &Controller{
		st:              st,
		blockReg:        blockReg,
		spanReg:         spanReg,
		embedReg:        embedReg,
		opts:            ro,
		remoteCursors:   make(map[string]cursor.State),
		followerWidgets: make(map[string]any),
	}
}

// State returns the owned State, for wiring a view.Editor or subscribing
// to its streams directly.
func (c *Controller) State() *state.State { return c.st }

// BlockRegistry returns the owned Block Registry.
func (c *Controller) BlockRegistry() *registry.BlockRegistry { return c.blockReg }

// SpanRegistry returns the owned Span Registry.
func (c *Controller) SpanRegistry() *registry.SpanRegistry { return c.spanReg }

// EmbedRegistry returns the owned Embed Registry.
func (c *Controller) EmbedRegistry() *registry.EmbedRegistry { return c.embedReg }

// CursorChanged returns the stream RemoteCursorEvents are published on.
func (c *Controller) CursorChanged() *stream.Stream[RemoteCursorEvent] { return &c.cursorChanged }

// EnqueueNextTick coalesces fn into the pending animation-frame batch.
func (c *Controller) EnqueueNextTick(fn func()) { c.nextTick = append(c.nextTick, fn) }

// FlushNextTick runs and clears every callback enqueued since the last
// flush, the stand-in for the browser's animation-frame callback.
func (c *Controller) FlushNextTick() {
	pending := c.nextTick
	c.nextTick = nil
	for _, fn := range pending {
		fn()
	}
}

// GetBlockElementAtCursor returns the block the collapsed cursor
// currently addresses, or the selection's start block if open.
func (c *Controller) GetBlockElementAtCursor() (*node.BlockDataElement, bool) {
	return c.st.GetBlockElementByID(c.st.Cursor().StartID)
}

// SetCursorState installs cur directly, bypassing Changeset since a bare
// cursor move mutates no content.
func (c *Controller) SetCursorState(cur cursor.State, reason state.Reason) {
	c.st.SetCursorState(cur, reason)
}

// InsertFollowerWidget attaches an opaque, embedder-supplied widget
// value to a block id (e.g. a comment thread anchor). Rendering the
// widget itself is a host concern; the controller only tracks the
// association so it survives a Render pass.
func (c *Controller) InsertFollowerWidget(blockID string, widget any) error {
	if _, ok := c.st.GetBlockElementByID(blockID); !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}
	c.followerWidgets[blockID] = widget
	return nil
}

// FollowerWidget returns the widget attached to blockID, if any.
func (c *Controller) FollowerWidget(blockID string) (any, bool) {
	w, ok := c.followerWidgets[blockID]
	return w, ok
}

// ApplyCursorChangedEvent records a collaborator's cursor position and
// republishes it on CursorChanged for a collaborativeCursorFactory to
// render; it never touches the local State cursor.
func (c *Controller) ApplyCursorChangedEvent(actorID string, cur cursor.State) {
	c.remoteCursors[actorID] = cur
	if c.opts.collaborativeCursorFactory != nil {
		c.opts.collaborativeCursorFactory(actorID)
	}
	c.cursorChanged.Publish(RemoteCursorEvent{ActorID: actorID, Cursor: cur})
}

// RemoteCursor returns the last cursor reported for actorID.
func (c *Controller) RemoteCursor(actorID string) (cursor.State, bool) {
	cur, ok := c.remoteCursors[actorID]
	return cur, ok
}

// Focus is a placement no-op at this layer: an attached view.Editor
// owns the actual surface focus call and subscribes to
// CursorStateChanged to place it; Focus exists on Controller only so
// embedders that never attach a view can still satisfy the public
// surface's named operation.
func (c *Controller) Focus() {}

// Dispose discards any pending nextTick callbacks without running them
// and drops remote cursor state. It does not touch State's own streams; subscribers of
// State are the caller's responsibility to unsubscribe.
func (c *Controller) Dispose() {
	c.nextTick = nil
	c.remoteCursors = make(map[string]cursor.State)
}

func (c *Controller) reportError(err error) {
	if c.opts.onError != nil {
		c.opts.onError(err)
	}
}

// ReportInvariantViolation routes err through the resolved onError
// sink, the entry point a view.Editor calls when it detects the DOM
// and model have disagreed in a way it cannot reconcile (e.g. an
// input event referencing a block id no longer present in State).
func (c *Controller) ReportInvariantViolation(err error) {
	c.reportError(fmt.Errorf("invariant violation: %w", err))
}
