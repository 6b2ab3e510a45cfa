// Package textmodel wraps a delta.Delta as the content of a text-like
// block element. A TextModel is never mutated directly outside of a
// changeset apply; callers compose a new Delta and replace the model's
// content through Changeset's textEdit operation.
package textmodel

import "github.com/fork-archive-hub/blocky-editor/internal/engine/delta"

// TextModel holds the normalized Delta backing a text-like block's
// textContent attribute.
//
// Invariants (mirrors delta.Delta's own normalization, restated here
// since TextModel is the boundary callers actually see):
//   - Length equals the sum of insert lengths in Content.
//   - Content carries no retain/delete ops — it describes a document,
//     not an edit.
type TextModel struct {
	content delta.Delta
}

// New returns a TextModel seeded with the given content Delta. Any
// retain/delete ops in d are stripped — a TextModel only ever holds
// content, never an edit.
func New(d delta.Delta) TextModel {
	return TextModel{content: insertsOnly(d)}
}

// NewFromText returns a TextModel holding a single plain-text insert.
func NewFromText(s string) TextModel {
	return New(delta.New(delta.Insert(s)))
}

func insertsOnly(d delta.Delta) delta.Delta {
	var out delta.Delta
	for _, op := range d.Ops {
		if op.Kind == delta.KindInsert {
			out.Ops = append(out.Ops, op)
		}
	}
	return out
}

// Content returns the model's backing Delta.
func (m TextModel) Content() delta.Delta { return m.content }

// Length returns the number of Delta-space units (runes, one per
// embed) the model holds.
func (m TextModel) Length() int { return m.content.Length() }

// Compose returns a new TextModel holding the result of composing edit
// onto the model's content. It does not mutate m; callers install the
// result via Changeset's textEdit.
func (m TextModel) Compose(edit delta.Delta) TextModel {
	return New(m.content.Compose(edit))
}

// Diff returns the edit Delta that transforms m's content into
// other's, biased by offsetHint when the edit region is ambiguous
// (e.g. reconciling a DOM textContent against the model after a
// cursor-local keystroke).
func (m TextModel) Diff(other TextModel, offsetHint ...int) delta.Delta {
	return m.content.Diff(other.content, offsetHint...)
}

// String returns the model's plain-text content, with embeds and any
// attributes discarded (used for DOM textContent comparisons).
func (m TextModel) String() string {
	var out []byte
	for _, op := range m.content.Ops {
		if op.Kind != delta.KindInsert || op.IsEmbed() {
			continue
		}
		out = append(out, op.Text...)
	}
	return string(out)
}
