package registry

import "sync"

// SpanDefinition describes one inline formatting attribute (bold,
// italic, link, ...): the Text Model attribute key it toggles and,
// for attributes with a value (href, color), a validator.
type SpanDefinition struct {
	Name      string
	Attribute string
	Validate  func(value any) bool
}

// SpanRegistry is a name → SpanDefinition catalog, sealed after
// initialization. It also holds the CSS-class → attribute map used
// when parsing pasted HTML, optionally loaded by internal/scripting.
type SpanRegistry struct {
	mu        sync.RWMutex
	defs      map[string]*SpanDefinition
	classAttr map[string]map[string]any
	sealed    bool
}

// NewSpanRegistry returns an empty, unsealed registry.
func NewSpanRegistry() *SpanRegistry {
	return &SpanRegistry{
		defs:      make(map[string]*SpanDefinition),
		classAttr: make(map[string]map[string]any),
	}
}

// Register adds or replaces a span definition.
func (r *SpanRegistry) Register(def *SpanDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic("registry: SpanRegistry.Register after Seal")
	}
	r.defs[def.Name] = def
}

// MapClass associates a pasted CSS class name with a set of Text
// Model attributes to apply when that class is seen, the shape a
// class-map script produces.
func (r *SpanRegistry) MapClass(class string, attrs map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic("registry: SpanRegistry.MapClass after Seal")
	}
	r.classAttr[class] = attrs
}

// Seal freezes the registry.
func (r *SpanRegistry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Get returns the definition registered under name.
func (r *SpanRegistry) Get(name string) (*SpanDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// AttrsForClass returns the attribute set mapped to a pasted CSS
// class, if any.
func (r *SpanRegistry) AttrsForClass(class string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attrs, ok := r.classAttr[class]
	return attrs, ok
}

// RegisterDefaultSpans seeds the common inline formatting attributes
// and their default class mapping into an unsealed registry, leaving
// the caller free to layer a scripted class map (internal/scripting)
// on top before calling Seal.
func RegisterDefaultSpans(r *SpanRegistry) {
	r.Register(&SpanDefinition{Name: "bold", Attribute: "bold"})
	r.Register(&SpanDefinition{Name: "italic", Attribute: "italic"})
	r.Register(&SpanDefinition{Name: "underline", Attribute: "underline"})
	r.Register(&SpanDefinition{Name: "strike", Attribute: "strike"})
	r.Register(&SpanDefinition{
		Name:      "link",
		Attribute: "href",
		Validate:  func(value any) bool { _, ok := value.(string); return ok },
	})
	r.MapClass("bold", map[string]any{"bold": true})
	r.MapClass("italic", map[string]any{"italic": true})
}

// NewDefaultSpanRegistry seeds the common inline formatting attributes
// and seals the registry immediately, for callers with no class-map
// script to layer in.
func NewDefaultSpanRegistry() *SpanRegistry {
	r := NewSpanRegistry()
	RegisterDefaultSpans(r)
	r.Seal()
	return r
}
