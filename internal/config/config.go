// Package config implements EditorConfig: the subset of a
// controller's functional options that should survive a restart
// (placeholder text, spellcheck, title editability, padding, theme),
// persisted to a TOML file and hot-reloaded when that file changes on
// disk.
//
// Grounded on the teacher's internal/config.Config: a struct guarded
// by a single RWMutex, loaded from and saved to a file, with a
// Subscribe/notify observer list standing in for its notify.Notifier.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Padding is the {top,right,bottom,left} outer container padding, the
// persisted form of controller.Padding's partial-override shape.
type Padding struct {
	Top, Right, Bottom, Left int
}

// EditorConfig is the persisted subset of a controller's construction
// options.
type EditorConfig struct {
	EmptyPlaceholder string
	Spellcheck       bool
	TitleEditable    bool
	Padding          Padding
	Theme            string
}

// DefaultEditorConfig returns the same defaults controller.defaultOptions uses.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		EmptyPlaceholder: "Empty content",
		Spellcheck:       true,
		TitleEditable:    true,
		Theme:            "light",
	}
}

// Observer is called with the new value whenever Store's configuration changes.
type Observer func(EditorConfig)

// Subscription is returned by Subscribe; call Unsubscribe to stop receiving updates.
type Subscription struct {
	store *Store
	id    int
}

// Unsubscribe removes the associated observer.
func (s *Subscription) Unsubscribe() { s.store.unsubscribe(s.id) }

// Store owns one EditorConfig, its backing file, and an optional
// fsnotify watcher that reloads it on external changes.
type Store struct {
	mu      sync.RWMutex
	path    string
	current EditorConfig
	watch   bool
	watcher *Watcher

	observers map[int]Observer
	nextID    int
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithPath overrides the settings file path.
func WithPath(p string) Option { return func(s *Store) { s.path = p } }

// WithWatch toggles hot-reload via fsnotify. Enabled by default.
func WithWatch(enable bool) Option { return func(s *Store) { s.watch = enable } }

// New returns a Store seeded with defaults; call Load to read the
// backing file.
func New(opts ...Option) *Store {
	s := &Store{
		path:      defaultConfigPath(),
		current:   DefaultEditorConfig(),
		watch:     true,
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "blocky", "editor.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "blocky", "editor.toml")
}

// Load reads the settings file, if present, over the default value,
// then starts the watcher (if enabled) regardless of whether the file
// existed yet — a later Save call will give the watcher something to
// observe.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.maybeStartWatcher()
		}
		return fmt.Errorf("config: reading %s: %w", s.path, err)
	}

	var cfg EditorConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()

	return s.maybeStartWatcher()
}

func (s *Store) maybeStartWatcher() error {
	if !s.watch {
		return nil
	}
	w, err := newWatcher(s.path, s.reload)
	if err != nil {
		return fmt.Errorf("config: watching %s: %w", s.path, err)
	}
	s.watcher = w
	return nil
}

// reload is the fsnotify change handler: re-read the file and notify
// observers, dropping the event silently if the file is mid-write and
// momentarily unparsable (the next write event will retry).
func (s *Store) reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var cfg EditorConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return
	}
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	s.notify(cfg)
}

// Save encodes the current value and writes it to path, via a
// temp-file-then-rename so a reader (or the watcher) never observes a
// partially written file.
func (s *Store) Save() error {
	s.mu.RLock()
	cfg := s.current
	s.mu.RUnlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, s.path)
}

// Get returns a snapshot of the current value.
func (s *Store) Get() EditorConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set installs cfg, notifies subscribers, and persists it.
func (s *Store) Set(cfg EditorConfig) error {
	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()
	s.notify(cfg)
	return s.Save()
}

// Subscribe registers obs to run on every change, whether from Set or
// an external file edit picked up by the watcher.
func (s *Store) Subscribe(obs Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = obs
	return &Subscription{store: s, id: id}
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

func (s *Store) notify(cfg EditorConfig) {
	s.mu.RLock()
	obs := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		obs = append(obs, o)
	}
	s.mu.RUnlock()
	for _, o := range obs {
		o(cfg)
	}
}

// Close stops the watcher, if running. Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		return w.Close()
	}
	return nil
}
