// Package paste implements the clipboard → BlockDataElement pipeline:
// JSON node (de)serialization for the self-copy round-trip, and the
// HTML-fragment → block sequence conversion for cross-origin paste.
package paste

import (
	"encoding/json"
	"fmt"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/delta"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/docid"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
)

// jsonNode is the wire shape: {t, id, attributes, children?}. A Text
// Model attribute is carried as {ops: [...]} rather than its Go
// representation.
type jsonNode struct {
	T          string         `json:"t"`
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []jsonNode     `json:"children,omitempty"`
}

// SerializeNode converts n into the JSON node format used for the
// data-content attribute on copy.
func SerializeNode(n *node.Node) ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}

func toJSONNode(n *node.Node) jsonNode {
	attrs := n.Attrs()
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if m, ok := v.(textmodel.TextModel); ok {
			out[k] = map[string]any{"ops": opsToJSON(m.Content())}
			continue
		}
		out[k] = v
	}
	jn := jsonNode{T: n.Type(), ID: n.ID(), Attributes: out}
	for _, c := range n.Children() {
		jn.Children = append(jn.Children, toJSONNode(c))
	}
	return jn
}

func opsToJSON(d delta.Delta) []map[string]any {
	ops := make([]map[string]any, 0, len(d.Ops))
	for _, o := range d.Ops {
		m := map[string]any{}
		if o.IsEmbed() {
			m["insert"] = o.Embed
		} else {
			m["insert"] = o.Text
		}
		if len(o.Attrs) > 0 {
			m["attributes"] = o.Attrs
		}
		ops = append(ops, m)
	}
	return ops
}

// DeserializeNode parses the JSON node format back into a detached
// *node.Node tree, minting a fresh id for every node (the clone-on-
// paste rule: a self-pasted node never reuses the id it was copied
// with).
func DeserializeNode(data []byte) (*node.Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, fmt.Errorf("paste: deserializing node: %w", err)
	}
	return fromJSONNode(jn, true), nil
}

// DeserializeNodePreservingIDs is DeserializeNode's counterpart for the
// generic JSON round trip (document save/load, undo snapshots): every
// node keeps the id it was serialized with, rather than minting fresh
// ones the way a clipboard paste must.
func DeserializeNodePreservingIDs(data []byte) (*node.Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, fmt.Errorf("paste: deserializing node: %w", err)
	}
	return fromJSONNode(jn, false), nil
}

func fromJSONNode(jn jsonNode, remint bool) *node.Node {
	id := jn.ID
	if remint {
		id = docid.NewID()
		if node.IsBlockTypeName(jn.T) {
			id = docid.NewBlockID()
		}
	}
	n := node.New(id, jn.T)
	for k, v := range jn.Attributes {
		if m, ok := v.(map[string]any); ok {
			if rawOps, ok := m["ops"]; ok {
				if tm, ok := textModelFromRawOps(rawOps); ok {
					n.SetAttr(k, tm)
					continue
				}
			}
		}
		n.SetAttr(k, v)
	}
	for _, c := range jn.Children {
		n.AppendChild(fromJSONNode(c, remint))
	}
	return n
}

func textModelFromRawOps(raw any) (textmodel.TextModel, bool) {
	rawOps, ok := raw.([]any)
	if !ok {
		return textmodel.TextModel{}, false
	}
	var ops []delta.Op
	for _, ro := range rawOps {
		om, ok := ro.(map[string]any)
		if !ok {
			continue
		}
		attrs := attrsFromRaw(om["attributes"])
		switch v := om["insert"].(type) {
		case string:
			ops = append(ops, delta.InsertAttrs(v, attrs))
		case nil:
			// no insert key: not a valid Text Model op, skip.
		default:
			ops = append(ops, delta.InsertEmbed(v, attrs))
		}
	}
	return textmodel.New(delta.New(ops...)), true
}

func attrsFromRaw(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m
}
