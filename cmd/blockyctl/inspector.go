package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fork-archive-hub/blocky-editor/internal/controller"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/state"
)

// inspector owns the tcell screen and redraws it from a Controller's
// State on every relevant stream event. It holds no editing state of
// its own — render always re-derives the full frame from State.
type inspector struct {
	ctrl   *controller.Controller
	screen tcell.Screen

	blockStyle  tcell.Style
	textStyle   tcell.Style
	cursorStyle tcell.Style
}

func newInspector(ctrl *controller.Controller, screen tcell.Screen) *inspector {
	return &inspector{
		ctrl:        ctrl,
		screen:      screen,
		blockStyle:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		textStyle:   tcell.StyleDefault,
		cursorStyle: tcell.StyleDefault.Reverse(true),
	}
}

// subscribe wires render as the handler for every stream event that
// can change what's on screen.
func (insp *inspector) subscribe() {
	st := insp.ctrl.State()
	st.ChangesetApplied().Subscribe(func(state.ChangesetAppliedEvent) { insp.render() })
	st.CursorStateChanged().Subscribe(func(state.CursorChangedEvent) { insp.render() })
}

// render redraws the full frame: the title, then a header line and a
// text line per body block, with the collapsed cursor's character shown in reverse
// video. Open selections are not highlighted — a read-only shell has
// no use for a visible selection range beyond the cursor it implies.
func (insp *inspector) render() {
	insp.screen.Clear()

	doc := insp.ctrl.State().Document()

	row := insp.renderBlock(doc.Title(), "title", 0, 0)
	row++
	for _, child := range doc.Body().Children() {
		if !node.IsBlockTypeName(child.Type()) {
			continue
		}
		row = insp.renderBlock(node.AsBlock(child), child.Type(), 0, row) + 1
	}

	insp.renderStatusLine(row + 1)
	insp.screen.Show()
}

func (insp *inspector) renderBlock(b *node.BlockDataElement, label string, col, row int) int {
	header := fmt.Sprintf("[%s %s]", label, b.ID())
	insp.putString(col, row, header, insp.blockStyle)

	text := ""
	if m, ok := b.TextContent(); ok {
		text = m.String()
	}

	textRow := row + 1
	insp.putRunesWithCursor(col+2, textRow, text, b.ID())

	return textRow
}

// putRunesWithCursor writes s starting at (col, row), reverse-styling
// the single rune at the cursor's collapsed offset into blockID, if
// the cursor is collapsed and addresses this block.
func (insp *inspector) putRunesWithCursor(col, row int, s string, blockID string) {
	collapsed, cursorOffset, isHere := insp.collapsedCursorInto(blockID)
	runes := []rune(s)
	if len(runes) == 0 {
		style := insp.textStyle
		if collapsed && isHere && cursorOffset == 0 {
			style = insp.cursorStyle
		}
		insp.screen.SetContent(col, row, ' ', nil, style)
		return
	}
	for i, r := range runes {
		style := insp.textStyle
		if collapsed && isHere && cursorOffset == i {
			style = insp.cursorStyle
		}
		insp.screen.SetContent(col+i, row, r, nil, style)
	}
	if collapsed && isHere && cursorOffset == len(runes) {
		insp.screen.SetContent(col+len(runes), row, ' ', nil, insp.cursorStyle)
	}
}

func (insp *inspector) collapsedCursorInto(blockID string) (collapsed bool, offset int, isHere bool) {
	cur := insp.ctrl.State().Cursor()
	if !cur.IsCollapsed() {
		return false, 0, false
	}
	return true, cur.Offset(), cur.ID() == blockID
}

func (insp *inspector) putString(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		insp.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (insp *inspector) renderStatusLine(row int) {
	cur := insp.ctrl.State().Cursor()
	var status string
	if cur.IsCollapsed() {
		status = fmt.Sprintf("cursor: %s@%d   version: %d   (q to quit)", cur.ID(), cur.Offset(), insp.ctrl.State().Version())
	} else {
		status = fmt.Sprintf("selection: %s@%d -> %s@%d   version: %d   (q to quit)",
			cur.StartID, cur.StartOffset, cur.EndID, cur.EndOffset, insp.ctrl.State().Version())
	}
	insp.putString(0, row, status, tcell.StyleDefault.Dim(true))
}
