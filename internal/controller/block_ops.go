package controller

import (
	"fmt"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/changeset"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/cursor"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/delta"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
	"github.com/fork-archive-hub/blocky-editor/internal/paste"
)

// InsertBlockAfterID inserts block as the sibling immediately following
// afterID's block (or as body's first child if afterID is the title),
// and moves the cursor to its start.
func (c *Controller) InsertBlockAfterID(afterID string, block *node.BlockDataElement) (Result, error) {
	parent, index, err := c.positionAfter(afterID)
	if err != nil {
		return Result{}, err
	}
	return changeset.New().
		InsertChild(parent, index, block.Node).
		SetCursorState(cursor.Collapsed(block.ID(), 0)).
		Apply(c.st, changeset.Options{})
}

// positionAfter resolves the (parent, index) pair naming the slot right
// after afterID, treating the title as body's virtual predecessor.
func (c *Controller) positionAfter(afterID string) (*node.Node, int, error) {
	body := c.st.Document().Body()
	if title := c.st.Document().Title(); title != nil && title.ID() == afterID {
		return body, 0, nil
	}
	after, ok := c.st.GetBlockElementByID(afterID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrBlockNotFound, afterID)
	}
	if after.Parent() != body {
		return nil, 0, fmt.Errorf("%w: %s is not a body block", ErrBlockNotFound, afterID)
	}
	return body, body.IndexOfChild(after.Node) + 1, nil
}

// DeleteBlock removes id from the tree. The cursor moves to offset 0 of
// the block that took its place, or stays put if id wasn't the cursor's block.
func (c *Controller) DeleteBlock(id string) (Result, error) {
	b, ok := c.st.GetBlockElementByID(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	parent := b.Parent()
	index := parent.IndexOfChild(b.Node)

	cs := changeset.New().RemoveChild(parent, index)
	if c.st.Cursor().StartID == id {
		if next := landingAfterRemoval(parent, index); next != "" {
			cs.SetCursorState(cursor.Collapsed(next, 0))
		}
	}
	return cs.Apply(c.st, changeset.Options{RefreshCursor: true})
}

// landingAfterRemoval is called before removedIndex's child is actually
// detached, so the sibling that will take its place is still one
// position ahead of it.
func landingAfterRemoval(parent *node.Node, removedIndex int) string {
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

// ApplyDeltaAtCursor composes edit onto the current collapsed cursor's
// block, the typing path: edit is expected to already be biased at the
// cursor (e.g. a plain Retain(offset)+Insert(text) delta, or the raw
// insert content when the caller has already retained up to offset).
func (c *Controller) ApplyDeltaAtCursor(edit delta.Delta) (Result, error) {
	cur := c.st.Cursor()
	block, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	newOffset := cur.StartOffset + edit.ChangeLength()

	_, err := changeset.New().
		TextEdit(block, func(m textmodel.TextModel) textmodel.TextModel { return m.Compose(edit) }).
		SetCursorState(cursor.Collapsed(block.ID(), newOffset)).
		Apply(c.st, changeset.Options{RefreshCursor: true})
	if err != nil {
		return Result{}, err
	}
	return changeset.Result{AfterCursor: c.st.Cursor(), Version: c.st.Version()}, nil
}

// TypeAtCursor is the common case of ApplyDeltaAtCursor: insert s at the
// current collapsed cursor's offset with no attributes.
func (c *Controller) TypeAtCursor(s string) (Result, error) {
	cur := c.st.Cursor()
	var edit delta.Delta
	if cur.StartOffset > 0 {
		edit.Retain(cur.StartOffset)
	}
	edit.Insert(s)
	return c.ApplyDeltaAtCursor(edit)
}

// FormatTextOnSelectedText toggles attrs over the current open
// selection within a single text-like block: if every existing op in
// the range already carries every requested key at its requested
// value, the keys are cleared (set to nil); otherwise they are set.
func (c *Controller) FormatTextOnSelectedText(attrs map[string]any) (Result, error) {
	cur := c.st.Cursor()
	if cur.IsCollapsed() || cur.StartID != cur.EndID {
		return Result{}, fmt.Errorf("controller: format requires an open selection within one block")
	}
	block, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	start, end := cur.StartOffset, cur.EndOffset

	_, err := changeset.New().
		TextEdit(block, func(m textmodel.TextModel) textmodel.TextModel {
			return m.Compose(formatToggleEdit(m, start, end, attrs))
		}).
		Apply(c.st, changeset.Options{})
	if err != nil {
		return Result{}, err
	}
	return changeset.Result{AfterCursor: c.st.Cursor(), Version: c.st.Version()}, nil
}

// FormatTextOnCursor handles attrs at a collapsed cursor: since there
// is no range to inspect, it does not toggle; it records attrs under
// the block's "pendingFormat" attribute and leaves the Text Model
// unchanged. An open cursor is handed to FormatTextOnSelectedText.
func (c *Controller) FormatTextOnCursor(attrs map[string]any) (Result, error) {
	cur := c.st.Cursor()
	if !cur.IsCollapsed() {
		return c.FormatTextOnSelectedText(attrs)
	}
	block, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	_, err := changeset.New().
		UpdateAttributes(block.Node, map[string]any{"pendingFormat": attrs}).
		Apply(c.st, changeset.Options{})
	if err != nil {
		return Result{}, err
	}
	return changeset.Result{AfterCursor: c.st.Cursor(), Version: c.st.Version()}, nil
}

func formatToggleEdit(m textmodel.TextModel, start, end int, attrs map[string]any) delta.Delta {
	allSet := true
	for k, v := range attrs {
		if !rangeHasAttr(m.Content().Ops, start, end, k, v) {
			allSet = false
			break
		}
	}
	toggled := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if allSet {
			toggled[k] = nil
		} else {
			toggled[k] = v
		}
	}

	var edit delta.Delta
	if start > 0 {
		edit.Retain(start)
	}
	edit.RetainAttrs(end-start, toggled)
	if rest := m.Length() - end; rest > 0 {
		edit.Retain(rest)
	}
	return edit
}

func rangeHasAttr(ops []delta.Op, start, end int, key string, val any) bool {
	pos := 0
	covered := false
	for _, op := range ops {
		if op.Kind != delta.KindInsert {
			continue
		}
		l := op.Len()
		opStart, opEnd := pos, pos+l
		pos += l
		if opEnd <= start || opStart >= end {
			continue
		}
		covered = true
		if op.Attrs[key] != val {
			return false
		}
	}
	return covered
}

// SplitAtCursor implements Enter at a collapsed cursor inside a
// text-like block: the block keeps text[0:offset], a new sibling block
// is inserted after it holding text[offset:], and the cursor moves to
// offset 0 of the new block.
func (c *Controller) SplitAtCursor() (Result, error) {
	cur := c.st.Cursor()
	if !cur.IsCollapsed() {
		if _, err := c.DeleteContentInSelection(); err != nil {
			return Result{}, err
		}
		cur = c.st.Cursor()
	}
	block, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	m, ok := block.TextContent()
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNotTextLike, cur.StartID)
	}
	offset := cur.StartOffset
	original, tail := sliceText(m, offset)

	newBlock := c.st.CreateTextElement(tail, nil)
	body := c.st.Document().Body()
	index := body.IndexOfChild(block.Node) + 1
	if block.Parent() != body {
		index = 0
	}

	return changeset.New().
		TextEdit(block, func(textmodel.TextModel) textmodel.TextModel { return original }).
		InsertChild(body, index, newBlock.Node).
		SetCursorState(cursor.Collapsed(newBlock.ID(), 0)).
		Apply(c.st, changeset.Options{})
}

func sliceText(m textmodel.TextModel, offset int) (before, after textmodel.TextModel) {
	sliced := m.Content().Slice(0, offset)
	rest := m.Content().Slice(offset, m.Length())
	return textmodel.New(sliced), textmodel.New(rest)
}

// DeleteContentInSelection implements Backspace/Delete: for an open
// cursor it deletes the selected range (merging start/end block tails
// and removing every block strictly between and the end block itself);
// for a collapsed cursor at a non-zero offset it deletes one character
// back; at offset 0 it merges with the previous body block, or is a
// no-op at the first body block.
func (c *Controller) DeleteContentInSelection() (Result, error) {
	cur := c.st.Cursor()
	if cur.IsCollapsed() {
		return c.backspaceCollapsed(cur)
	}
	return c.deleteOpenRange(cur)
}

func (c *Controller) backspaceCollapsed(cur cursor.State) (Result, error) {
	block, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	if cur.StartOffset > 0 {
		m, ok := block.TextContent()
		if !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrNotTextLike, cur.StartID)
		}
		var edit delta.Delta
		edit.Retain(cur.StartOffset - 1)
		edit.Delete(1)
		if rest := m.Length() - cur.StartOffset; rest > 0 {
			edit.Retain(rest)
		}
		return c.ApplyDeltaAtCursor(edit)
	}

	body := c.st.Document().Body()
	if block.Parent() != body {
		return Result{}, nil // title has no predecessor to merge into
	}
	index := body.IndexOfChild(block.Node)
	if index == 0 {
		return Result{}, nil // first body block: no-op
	}
	prev := node.AsBlock(body.ChildAt(index - 1))
	prevM, prevOK := prev.TextContent()
	curM, curOK := block.TextContent()
	if !prevOK || !curOK {
		return c.DeleteBlock(block.ID())
	}
	mergedLen := prevM.Length()

	return changeset.New().
		TextEdit(prev, func(textmodel.TextModel) textmodel.TextModel { return mergeText(prevM, curM) }).
		RemoveChild(body, index).
		SetCursorState(cursor.Collapsed(prev.ID(), mergedLen)).
		Apply(c.st, changeset.Options{})
}

func (c *Controller) deleteOpenRange(cur cursor.State) (Result, error) {
	body := c.st.Document().Body()
	startBlock, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	endBlock, ok := c.st.GetBlockElementByID(cur.EndID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.EndID)
	}
	startM, startOK := startBlock.TextContent()
	endM, endOK := endBlock.TextContent()
	if !startOK || !endOK {
		return Result{}, fmt.Errorf("%w: open-range delete requires text-like endpoints", ErrNotTextLike)
	}

	prefix := textmodel.New(startM.Content().Slice(0, cur.StartOffset))
	suffix := textmodel.New(endM.Content().Slice(cur.EndOffset, endM.Length()))
	merged := mergeText(prefix, suffix)

	cs := changeset.New().TextEdit(startBlock, func(textmodel.TextModel) textmodel.TextModel { return merged })

	if startBlock.Parent() == body && endBlock.Parent() == body {
		startIndex := body.IndexOfChild(startBlock.Node)
		endIndex := body.IndexOfChild(endBlock.Node)
		for i := endIndex; i > startIndex; i-- {
			cs.RemoveChild(body, i)
		}
	}
	cs.SetCursorState(cursor.Collapsed(startBlock.ID(), cur.StartOffset))
	return cs.Apply(c.st, changeset.Options{RefreshCursor: true})
}

// mergeText concatenates a's ops followed by rest's ops into one model.
func mergeText(a, rest textmodel.TextModel) textmodel.TextModel {
	ops := append(append([]delta.Op{}, a.Content().Ops...), rest.Content().Ops...)
	return textmodel.New(delta.New(ops...))
}

// PasteHTMLAtCursor parses htmlSrc into a sequence of blocks and
// inserts them after the current block, per the merge rule: if the
// first pasted element and the current block are both text-like, the
// first element's content is merged into the current block starting at
// the cursor offset, preserving the offset as the merge point.
func (c *Controller) PasteHTMLAtCursor(htmlSrc string) ([]*node.Node, Result, error) {
	nodes, err := paste.ParseClipboardHTML(htmlSrc, c.blockReg, c.spanReg)
	if err != nil {
		if _, isParseErr := err.(*paste.ClipboardParseError); isParseErr {
			n := paste.ParsePlainText(htmlSrc)
			res, applyErr := c.PasteElementsAtCursor([]*node.Node{n})
			return []*node.Node{n}, res, applyErr
		}
		return nil, Result{}, err
	}
	res, err := c.PasteElementsAtCursor(nodes)
	return nodes, res, err
}

// PasteElementsAtCursor inserts nodes after the current block, merging
// the first element into the current block when both are text-like.
func (c *Controller) PasteElementsAtCursor(nodes []*node.Node) (Result, error) {
	if len(nodes) == 0 {
		return Result{AfterCursor: c.st.Cursor(), Version: c.st.Version()}, nil
	}
	cur := c.st.Cursor()
	current, ok := c.st.GetBlockElementByID(cur.StartID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrBlockNotFound, cur.StartID)
	}
	currentM, currentIsText := current.TextContent()

	cs := changeset.New()
	rest := nodes
	finalCursor := cur

	if firstBlock := node.AsBlock(nodes[0]); currentIsText && c.st.IsTextLike(nodes[0]) {
		firstM, _ := firstBlock.TextContent()
		prefix := textmodel.New(currentM.Content().Slice(0, cur.StartOffset))
		tail := textmodel.New(currentM.Content().Slice(cur.StartOffset, currentM.Length()))
		mergedFirst := mergeText(prefix, firstM)
		joinOffset := prefix.Length() + firstM.Length()
		merged := mergeText(mergedFirst, tail)

		cs.TextEdit(current, func(textmodel.TextModel) textmodel.TextModel { return merged })
		finalCursor = cursor.Collapsed(current.ID(), joinOffset)
		rest = nodes[1:]
	}

	parent, index, err := c.positionAfter(current.ID())
	if err != nil {
		return Result{}, err
	}
	for i, n := range rest {
		cs.InsertChild(parent, index+i, n)
	}
	if len(rest) > 0 {
		last := node.AsBlock(rest[len(rest)-1])
		if lastM, ok := last.TextContent(); ok {
			finalCursor = cursor.Collapsed(last.ID(), lastM.Length())
		} else {
			finalCursor = cursor.Collapsed(last.ID(), 0)
		}
	}
	cs.SetCursorState(finalCursor)

	return cs.Apply(c.st, changeset.Options{RefreshCursor: true})
}
