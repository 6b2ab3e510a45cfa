// Package registry implements the Block, Span, and Embed registries:
// name → definition catalogs sealed after initialization, modeling
// each definition as a struct of required fields plus optional
// capability methods (OnPaste, HandlePasteElement) rather than forcing
// every block to implement a fat interface.
//
// This is the same shape as the teacher's dispatcher Handler registry
// (CanHandle/Priority, looked up by name) with priority-ordered
// multi-handler lists narrowed to a single definition per name, since
// block/span/embed type names are unique by construction.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/fork-archive-hub/blocky-editor/internal/logging"
)

// TypeTitle and TypeText are the two in-scope concrete block types;
// headings, lists, quotes, and images are named in the wider design
// but not implemented here.
const (
	TypeTitle = "Title"
	TypeText  = "Text"
)

// PasteEvent carries the parsed DOM fragment a block definition's
// OnPaste/HandlePasteElement hooks inspect.
type PasteEvent struct {
	Tag        string
	Attrs      map[string]string
	OuterHTML  string
	PlainText  string
}

// BlockDefinition is the block definition contract: name, editability,
// a constructor, and two optional paste hooks. OnPaste and
// HandlePasteElement are nil for blocks that don't participate in
// paste handling beyond the default (Text already handles the common
// case; most future blocks won't need either).
type BlockDefinition struct {
	Name    string
	Editable bool
	// HasTextContent marks a block as carrying a Text Model under its
	// textContent attribute (state.IsTextLike reads this).
	HasTextContent bool

	// OnBlockCreated runs once when an element of this type enters the
	// tree, mirroring blockDidMount's "new element" counterpart.
	OnBlockCreated func(blockID string)

	// OnPaste, if set, gets first refusal on a pasted fragment: it may
	// return a constructed node id and true to claim it, or ("", false)
	// to decline.
	OnPaste func(evt PasteEvent) (blockID string, claimed bool)

	// HandlePasteElement, if set, is a cheaper claimant probe run before
	// OnPaste to decide whether this definition should even be asked.
	HandlePasteElement func(evt PasteEvent) bool
}

// BlockRegistry is a name → BlockDefinition catalog, sealed after
// initialization: Register panics if called after Seal.
type BlockRegistry struct {
	mu     sync.RWMutex
	defs   map[string]*BlockDefinition
	sealed bool
}

// NewBlockRegistry returns an empty, unsealed registry.
func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{defs: make(map[string]*BlockDefinition)}
}

// Register adds or replaces a definition. Panics if the registry is sealed.
func (r *BlockRegistry) Register(def *BlockDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic(fmt.Sprintf("registry: Register(%q) after Seal", def.Name))
	}
	r.defs[def.Name] = def
}

// Seal freezes the registry; further Register calls panic.
func (r *BlockRegistry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *BlockRegistry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Get returns the definition registered under name.
func (r *BlockRegistry) Get(name string) (*BlockDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Has reports whether name is registered.
func (r *BlockRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns every registered block type name, sorted.
func (r *BlockRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ClaimPaste asks every registered definition's HandlePasteElement (if
// any), in name order, whether it wants evt, and returns the result of
// the first wanting definition whose OnPaste claims it. Definitions
// without HandlePasteElement or without OnPaste are never asked.
func (r *BlockRegistry) ClaimPaste(evt PasteEvent) (blockID string, defName string, ok bool) {
	r.mu.RLock()
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	defs := make([]*BlockDefinition, len(names))
	for i, n := range names {
		defs[i] = r.defs[n]
	}
	r.mu.RUnlock()

	for _, def := range defs {
		if def.HandlePasteElement == nil || !def.HandlePasteElement(evt) {
			continue
		}
		if def.OnPaste == nil {
			continue
		}
		if id, claimed := def.OnPaste(evt); claimed {
			return id, def.Name, true
		}
	}
	return "", "", false
}

// logOnBlockCreated returns an OnBlockCreated hook that logs a debug
// line tagging the new block's id and type, the default Title/Text
// definitions' stand-in for a real mount side effect (a future block
// type might instead seed a follower widget or fire a webhook here).
func logOnBlockCreated(typeName string) func(blockID string) {
	return func(blockID string) {
		logging.Default().WithComponent("registry").Debug("block created: type=%s id=%s", typeName, blockID)
	}
}

// NewDefaultBlockRegistry returns a sealed registry seeded with the
// Title and Text block definitions, the only concrete blocks in scope.
func NewDefaultBlockRegistry() *BlockRegistry {
	r := NewBlockRegistry()
	r.Register(&BlockDefinition{
		Name:           TypeTitle,
		Editable:       true,
		HasTextContent: true,
		OnBlockCreated: logOnBlockCreated(TypeTitle),
	})
	r.Register(&BlockDefinition{
		Name:           TypeText,
		Editable:       true,
		HasTextContent: true,
		OnBlockCreated: logOnBlockCreated(TypeText),
		HandlePasteElement: func(evt PasteEvent) bool {
			switch evt.Tag {
			case "p", "span", "div", "":
				return true
			default:
				return false
			}
		},
	})
	r.Seal()
	return r
}
