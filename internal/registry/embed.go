package registry

import "sync"

// EmbedDefinition describes an inline embed object kind (an image, a
// mention, a hard line break): its JSON node type tag and a
// round-trip validator checked when a pasted/scripted embed attr map
// is installed.
type EmbedDefinition struct {
	Name     string
	Validate func(attrs map[string]any) bool
}

// EmbedRegistry is a name → EmbedDefinition catalog, sealed after initialization.
type EmbedRegistry struct {
	mu     sync.RWMutex
	defs   map[string]*EmbedDefinition
	sealed bool
}

// NewEmbedRegistry returns an empty, unsealed registry.
func NewEmbedRegistry() *EmbedRegistry {
	return &EmbedRegistry{defs: make(map[string]*EmbedDefinition)}
}

// Register adds or replaces an embed definition.
func (r *EmbedRegistry) Register(def *EmbedDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		panic("registry: EmbedRegistry.Register after Seal")
	}
	r.defs[def.Name] = def
}

// Seal freezes the registry.
func (r *EmbedRegistry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Get returns the definition registered under name.
func (r *EmbedRegistry) Get(name string) (*EmbedDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// NewDefaultEmbedRegistry seeds the line-break embed, the only embed
// kind the in-scope Title/Text blocks ever produce.
func NewDefaultEmbedRegistry() *EmbedRegistry {
	r := NewEmbedRegistry()
	r.Register(&EmbedDefinition{
		Name: "lineBreak",
		Validate: func(attrs map[string]any) bool {
			return true
		},
	})
	r.Seal()
	return r
}
