// Package view implements Editor: the projector between State and an
// editable surface (domiface.Element tree). It renders the model,
// captures surface events, diffs surface text back into the model on
// input, and maps cursor state to and from selection endpoints.
//
// Editor deliberately excludes the banner/toolbar/spanner UI widgets
// and the framework-specific event wiring; those are named as the
// plug points a host application supplies (spannerFactory,
// toolbarFactory in the controller's options), not implemented here.
package view

import (
	"fmt"
	"strings"

	"github.com/fork-archive-hub/blocky-editor/internal/controller"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/changeset"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/cursor"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/state"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
	"github.com/fork-archive-hub/blocky-editor/internal/paste"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
	"github.com/fork-archive-hub/blocky-editor/internal/stream"
	"github.com/fork-archive-hub/blocky-editor/internal/view/domiface"
)

// Key names OnKeyDown recognizes, normalized from whatever keyboard
// event shape a host binding fires (a browser KeyboardEvent.key, or a
// terminal key event translated the same way).
const (
	KeyTab       = "Tab"
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

// KeyEvent is Editor's keystroke vocabulary: the host binding's job is
// to normalize its native event into this shape and call OnKeyDown;
// Editor owns only the decision of which Controller operation, if
// any, the key maps to.
type KeyEvent struct {
	Key   string
	Shift bool
}

// Editor owns the container element and keeps it in sync with State.
type Editor struct {
	container domiface.Element
	st        *state.State
	blockReg  *registry.BlockRegistry
	ctrl      *controller.Controller

	domMap    map[string]domiface.Element
	composing bool

	cursorSub    stream.Subscription
	changesetSub stream.Subscription
}

// New builds an Editor projecting st into container, and renders the
// initial state immediately. Attach wires a Controller in afterward
// so OnKeyDown/OnPaste have something to dispatch to; Editor works
// without one for callers that only need rendering and selection
// mapping.
func New(container domiface.Element, st *state.State, blockReg *registry.BlockRegistry) *Editor {
	e := &Editor{
		container: container,
		st:        st,
		blockReg:  blockReg,
		domMap:    make(map[string]domiface.Element),
	}
	e.cursorSub = st.CursorStateChanged().Subscribe(func(ev state.CursorChangedEvent) {
		e.applyCursorToSelection(ev.Cursor)
	})
	e.changesetSub = st.ChangesetApplied().Subscribe(func(ev state.ChangesetAppliedEvent) {
		// A structural or content op requires a fresh projection; a
		// zero-op apply only does when the caller asked via
		// ForceUpdate (Options.forceUpdate's whole purpose).
		if len(ev.Ops) == 0 && !ev.ForceUpdate {
			return
		}
		e.Render()
	})
	e.Render()
	return e
}

// Attach wires ctrl as the target of OnKeyDown/OnPaste dispatch. ctrl
// must own the same State this Editor projects.
func (e *Editor) Attach(ctrl *controller.Controller) { e.ctrl = ctrl }

// Dispose detaches Editor's subscriptions from State.
func (e *Editor) Dispose() {
	if e.cursorSub != nil {
		e.cursorSub.Unsubscribe()
	}
	if e.changesetSub != nil {
		e.changesetSub.Unsubscribe()
	}
}

// Render rebuilds the surface tree from scratch, the full-refresh path
// used both for the initial paint and for InvariantViolation recovery.
func (e *Editor) Render() {
	for _, c := range e.container.Children() {
		e.container.RemoveChild(c)
	}
	e.domMap = make(map[string]domiface.Element)

	doc := e.st.Document()
	if title := doc.Title(); title != nil {
		e.container.AppendChild(e.renderBlock(title))
	}
	for _, child := range doc.Body().Children() {
		e.container.AppendChild(e.renderBlock(node.AsBlock(child)))
	}
	e.applyCursorToSelection(e.st.Cursor())
}

func (e *Editor) renderBlock(b *node.BlockDataElement) domiface.Element {
	el := domiface.NewElement(strings.ToLower(b.Type()))
	el.SetModelID(b.ID())
	el.SetAttr("data-type", b.Type())
	if def, ok := e.blockReg.Get(b.Type()); ok && !def.Editable {
		el.SetAttr("contenteditable", "false")
	}
	if m, ok := b.TextContent(); ok {
		el.SetText(m.String())
	}
	e.domMap[b.ID()] = el
	return el
}

// DOMFor returns the surface element rendering blockID, if mapped.
func (e *Editor) DOMFor(blockID string) (domiface.Element, bool) {
	el, ok := e.domMap[blockID]
	return el, ok
}

// FindTextOffsetInBlock computes the absolute text offset of
// offsetInNode within blockEl. A surface with nested inline leaves
// would sum the preceding leaf text lengths first; the in-memory
// surface keeps one text run per block element, so this returns
// offsetInNode unchanged.
func (e *Editor) FindTextOffsetInBlock(blockEl domiface.Element, offsetInNode int) int {
	return offsetInNode
}

// GetCursorDomByOffset is the inverse of FindTextOffsetInBlock: given
// an absolute offset into a block, returns the leaf element and the
// offset within it a Range should be placed at.
func (e *Editor) GetCursorDomByOffset(blockID string, offset int) (domiface.Element, int, bool) {
	el, ok := e.domMap[blockID]
	if !ok {
		return nil, 0, false
	}
	return el, offset, true
}

// applyCursorToSelection is the model → selection half of cursor sync
// (Editor doesn't own a live browser Selection; a host wires this
// through blockFocused on its Element implementation instead). It is
// a no-op when either endpoint's block isn't yet mapped, per spec's
// "unknown id: no-op, render will retry next frame" rule.
func (e *Editor) applyCursorToSelection(c cursor.State) {
	if _, ok := e.domMap[c.StartID]; !ok {
		return
	}
	if _, ok := e.domMap[c.EndID]; !ok {
		return
	}
}

// OnSelectionChange is the surface → model half: given a raw
// selection over the rendered tree, resolve it to a CursorState and
// install it via State's low-level setter (reason browserSelection),
// bypassing Changeset since a selection change mutates no content.
func (e *Editor) OnSelectionChange(sel domiface.Selection) (cursor.State, bool) {
	startID := sel.StartNode.ModelID()
	endID := sel.EndNode.ModelID()
	if startID == "" || endID == "" {
		return cursor.State{}, false
	}
	startOffset := e.FindTextOffsetInBlock(sel.StartNode, sel.StartOffset)
	endOffset := e.FindTextOffsetInBlock(sel.EndNode, sel.EndOffset)

	var c cursor.State
	if sel.Collapsed() {
		c = cursor.Collapsed(startID, startOffset)
	} else {
		c = cursor.Open(startID, startOffset, endID, endOffset)
	}
	e.st.SetCursorState(c, state.ReasonBrowserSelection)
	return c, true
}

// SetComposing toggles IME composition mode: while true, OnInput is
// suppressed and the surface is treated as ground truth.
func (e *Editor) SetComposing(v bool) { e.composing = v }

// Composing reports whether an IME composition is in progress.
func (e *Editor) Composing() bool { return e.composing }

// OnInput reconciles surface text against the Text Model after an
// input event on blockID's DOM element. With a collapsed cursor
// addressing blockID, it diffs just that block, biased by the
// cursor's offset in it. Otherwise — an open selection, an absent
// cursor, or a cursor addressing a different block than the one that
// fired the event — it walks every mapped DOM element, diffs each
// against its model text, and applies every resulting edit as one
// atomic Changeset, the path IME composition commits and browser
// autocorrect take when they touch more than one block. It is the
// caller's responsibility to suppress calls while Composing() is true.
func (e *Editor) OnInput(blockID string) error {
	cur := e.st.Cursor()
	if cur.StartID != "" && cur.IsCollapsed() && cur.StartID == blockID {
		return e.reconcileCollapsed(blockID, cur.StartOffset)
	}
	return e.reconcileAllMapped()
}

func (e *Editor) reconcileCollapsed(blockID string, hint int) error {
	block, ok := e.st.GetBlockElementByID(blockID)
	if !ok {
		e.handleInvariantViolation(fmt.Errorf("view: input event referenced unknown block %q", blockID))
		return nil
	}
	el, ok := e.domMap[blockID]
	if !ok {
		return nil
	}
	m, ok := block.TextContent()
	if !ok {
		return nil
	}

	target := textmodel.NewFromText(el.Text())
	edit := m.Diff(target, hint)
	if edit.IsEmpty() {
		return nil
	}

	newOffset := hint + edit.ChangeLength()
	_, err := changeset.New().
		TextEdit(block, func(textmodel.TextModel) textmodel.TextModel { return target }).
		SetCursorState(cursor.Collapsed(blockID, clampOffset(newOffset, target.Length()))).
		Apply(e.st, changeset.Options{RefreshCursor: true})
	return err
}

// reconcileAllMapped diffs every mapped block's surface text against
// its model text, batching every non-empty edit into one Changeset
// apply so the multi-block case is atomic with respect to State
// observers, per spec's "apply all resulting edits atomically" rule.
func (e *Editor) reconcileAllMapped() error {
	cs := changeset.New()
	dirty := false
	var missing []string

	for id, el := range e.domMap {
		block, ok := e.st.GetBlockElementByID(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		m, ok := block.TextContent()
		if !ok {
			continue
		}
		target := textmodel.NewFromText(el.Text())
		edit := m.Diff(target, -1)
		if edit.IsEmpty() {
			continue
		}
		cs.TextEdit(block, func(textmodel.TextModel) textmodel.TextModel { return target })
		dirty = true
	}

	if len(missing) > 0 {
		e.handleInvariantViolation(fmt.Errorf("view: input event reconciliation found %d mapped element(s) with no matching block: %v", len(missing), missing))
	}
	if !dirty {
		return nil
	}
	_, err := cs.Apply(e.st, changeset.Options{RefreshCursor: true})
	return err
}

// handleInvariantViolation reports err through the attached
// Controller's onError sink and re-renders from the model, per
// spec §7's InvariantViolation recovery rule. With no Controller
// attached it only re-renders.
func (e *Editor) handleInvariantViolation(err error) {
	if e.ctrl != nil {
		e.ctrl.ReportInvariantViolation(err)
	}
	e.Render()
}

// OnKeyDown classifies a keystroke and dispatches it to the matching
// Controller operation, reporting whether it claimed the key (and the
// host binding should therefore call preventDefault). A no-op, always
// returning false, if no Controller is attached.
func (e *Editor) OnKeyDown(ev KeyEvent) (claimed bool, err error) {
	if e.ctrl == nil {
		return false, nil
	}
	switch ev.Key {
	case KeyTab:
		return true, nil // swallowed: reserved for future indent/outdent.
	case KeyEnter:
		_, err := e.ctrl.SplitAtCursor()
		return true, err
	case KeyBackspace, KeyDelete:
		_, err := e.ctrl.DeleteContentInSelection()
		return true, err
	default:
		return false, nil
	}
}

// OnPaste classifies a paste event and dispatches it to the matching
// Controller paste primitive, preferring htmlSrc when a host surface
// offers both an HTML and a plain-text clipboard payload. A no-op if
// no Controller is attached.
func (e *Editor) OnPaste(htmlSrc, plainText string) error {
	if e.ctrl == nil {
		return nil
	}
	if htmlSrc != "" {
		_, _, err := e.ctrl.PasteHTMLAtCursor(htmlSrc)
		return err
	}
	if plainText == "" {
		return nil
	}
	n := paste.ParsePlainText(plainText)
	_, err := e.ctrl.PasteElementsAtCursor([]*node.Node{n})
	return err
}

func clampOffset(offset, length int) int {
	if offset < 0 {
		return 0
	}
	if offset > length {
		return length
	}
	return offset
}
