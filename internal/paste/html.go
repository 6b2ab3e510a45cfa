package paste

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/fork-archive-hub/blocky-editor/internal/engine/delta"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/textmodel"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
)

// blockLevelTags lists the tags the div handler is responsible for;
// anything else at the top level is inline and goes to the leaf
// handler as part of a run.
var blockLevelTags = map[atom.Atom]bool{
	atom.Div: true, atom.P: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
}

// ClipboardParseError wraps an HTML parse failure the caller should
// treat as a signal to fall back to plain-text paste.
type ClipboardParseError struct{ Err error }

func (e *ClipboardParseError) Error() string { return fmt.Sprintf("paste: parsing clipboard html: %v", e.Err) }
func (e *ClipboardParseError) Unwrap() error  { return e.Err }

// ParseClipboardHTML converts a clipboard text/html payload into a
// sequence of detached BlockDataElements, following the leaf/div
// handler split: block-level elements go through the div handler
// (self-paste JSON round-trip, or delegation to the block registry's
// claim probe), runs of inline content are aggregated into Text
// blocks by the leaf handler.
func ParseClipboardHTML(htmlSrc string, blockReg *registry.BlockRegistry, spanReg *registry.SpanRegistry) ([]*node.Node, error) {
	doc, err := html.Parse(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, &ClipboardParseError{Err: err}
	}
	body := findBody(doc)
	if body == nil {
		return nil, &ClipboardParseError{Err: fmt.Errorf("no body element in parsed fragment")}
	}

	var out []*node.Node
	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, leafHandler(run, spanReg))
		run = nil
	}

	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockLevelTags[c.DataAtom] {
			flush()
			out = append(out, divHandler(c, blockReg, spanReg))
			continue
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		run = append(run, c)
	}
	flush()
	return out, nil
}

// ParsePlainText builds a single Text block from verbatim text, the
// text/plain-only fallback path.
func ParsePlainText(s string) *node.Node {
	b := node.NewBlockDataElement(registry.TypeText, nil)
	b.SetTextContent(textmodel.NewFromText(s))
	return b.Node
}

func findBody(doc *html.Node) *html.Node {
	var walk func(*html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if b := walk(c); b != nil {
				return b
			}
		}
		return nil
	}
	return walk(doc)
}

// divHandler converts one block-level element into a node: if it
// carries the self-paste data-type/data-content pair, deserialize and
// re-mint its ids; otherwise ask the registry to claim it, falling
// back to wrapping its text content in a Text block.
func divHandler(el *html.Node, blockReg *registry.BlockRegistry, spanReg *registry.SpanRegistry) *node.Node {
	if _, dataContent, ok := selfPasteAttrs(el); ok {
		if n, err := DeserializeNode([]byte(dataContent)); err == nil {
			return n
		}
		// parse failed: fall through to generic handling
	}

	evt := registry.PasteEvent{
		Tag:       el.Data,
		Attrs:     attrMap(el),
		OuterHTML: renderOuter(el),
		PlainText: textContent(el),
	}
	if _, defName, ok := blockReg.ClaimPaste(evt); ok {
		b := node.NewBlockDataElement(defName, nil)
		b.SetTextContent(textmodel.NewFromText(evt.PlainText))
		return b.Node
	}

	return leafHandler([]*html.Node{el}, spanReg)
}

func selfPasteAttrs(el *html.Node) (dataType, dataContent string, ok bool) {
	attrs := attrMap(el)
	dataType, hasType := attrs["data-type"]
	dataContent, hasContent := attrs["data-content"]
	return dataType, dataContent, hasType && hasContent
}

// leafHandler aggregates a run of inline nodes into a single Text
// block, translating <a href> and class-mapped spans into Delta
// attributes.
func leafHandler(run []*html.Node, spanReg *registry.SpanRegistry) *node.Node {
	var ops []delta.Op
	for _, n := range run {
		ops = append(ops, inlineOps(n, nil, spanReg)...)
	}
	d := delta.New(ops...)

	b := node.NewBlockDataElement(registry.TypeText, nil)
	b.SetTextContent(textmodel.New(d))
	return b.Node
}

func inlineOps(n *html.Node, attrs map[string]any, spanReg *registry.SpanRegistry) []delta.Op {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []delta.Op{delta.InsertAttrs(n.Data, attrs)}
	case html.ElementNode:
		merged := mergeInlineAttrs(n, attrs, spanReg)
		var ops []delta.Op
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			ops = append(ops, inlineOps(c, merged, spanReg)...)
		}
		return ops
	default:
		return nil
	}
}

func mergeInlineAttrs(el *html.Node, base map[string]any, spanReg *registry.SpanRegistry) map[string]any {
	out := make(map[string]any, len(base)+2)
	for k, v := range base {
		out[k] = v
	}

	switch el.DataAtom {
	case atom.B, atom.Strong:
		out["bold"] = true
	case atom.I, atom.Em:
		out["italic"] = true
	case atom.U:
		out["underline"] = true
	case atom.A:
		href := attrVal(el, "href")
		if href == "" {
			href = attrVal(el, "data-href")
		}
		if href != "" {
			out["href"] = href
		}
	}

	if spanReg != nil {
		for _, class := range strings.Fields(attrVal(el, "class")) {
			if classAttrs, ok := spanReg.AttrsForClass(class); ok {
				for k, v := range classAttrs {
					out[k] = v
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func attrMap(n *html.Node) map[string]string {
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		m[a.Key] = a.Val
	}
	return m
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func renderOuter(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
