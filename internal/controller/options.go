package controller

import (
	"github.com/fork-archive-hub/blocky-editor/internal/config"
	"github.com/fork-archive-hub/blocky-editor/internal/engine/node"
	"github.com/fork-archive-hub/blocky-editor/internal/logging"
	"github.com/fork-archive-hub/blocky-editor/internal/registry"
)

// Plugin registers additional block, span, or embed definitions before
// the registries seal, the controller-level equivalent of the
// registry's own Register calls.
type Plugin func(blocks *registry.BlockRegistry, spans *registry.SpanRegistry, embeds *registry.EmbedRegistry)

// Padding is the partial {top,right,bottom,left} padding option: a nil
// field means "use the default for that edge" rather than zero.
type Padding struct {
	Top, Right, Bottom, Left *int
}

type resolvedOptions struct {
	title       string
	document    *node.BlockyDocument
	initVersion int
	plugins     []Plugin
	padding     Padding

	spannerFactory func() any
	toolbarFactory func() any

	emptyPlaceholder string
	spellcheck       bool
	titleEditable    bool

	urlLauncher                func(string)
	onError                    func(error)
	collaborativeCursorFactory func(actorID string) any

	blockReg *registry.BlockRegistry
	spanReg  *registry.SpanRegistry
	embedReg *registry.EmbedRegistry
}

func defaultOptions() resolvedOptions {
	return resolvedOptions{
		title:            "Untitled",
		emptyPlaceholder: "Empty content",
		spellcheck:       true,
		titleEditable:    true,
		onError:          logging.OnError(logging.Default()),
	}
}

// Option configures a Controller at construction time.
type Option func(*resolvedOptions)

// WithTitle sets the seed title text, ignored when WithDocument is given.
func WithTitle(t string) Option { return func(o *resolvedOptions) { o.title = t } }

// WithDocument seeds the controller from a pre-built tree instead of a
// fresh title-only document.
func WithDocument(d *node.BlockyDocument) Option {
	return func(o *resolvedOptions) { o.document = d }
}

// WithInitVersion overrides the starting version counter.
func WithInitVersion(v int) Option { return func(o *resolvedOptions) { o.initVersion = v } }

// WithPlugins appends plugins to run against the registries before sealing.
func WithPlugins(p ...Plugin) Option {
	return func(o *resolvedOptions) { o.plugins = append(o.plugins, p...) }
}

// WithPadding sets the outer container's padding.
func WithPadding(p Padding) Option { return func(o *resolvedOptions) { o.padding = p } }

// WithSpannerFactory installs the left-margin block-handle factory
// hook. Its rendering is a Non-goal here; only the hook point exists.
func WithSpannerFactory(f func() any) Option {
	return func(o *resolvedOptions) { o.spannerFactory = f }
}

// WithToolbarFactory installs the inline-formatting pop-over factory
// hook. Its rendering is a Non-goal here; only the hook point exists.
func WithToolbarFactory(f func() any) Option {
	return func(o *resolvedOptions) { o.toolbarFactory = f }
}

// WithEmptyPlaceholder overrides the empty-document placeholder text.
func WithEmptyPlaceholder(s string) Option {
	return func(o *resolvedOptions) { o.emptyPlaceholder = s }
}

// WithSpellcheck toggles the spellcheck attribute a host surface should apply.
func WithSpellcheck(v bool) Option { return func(o *resolvedOptions) { o.spellcheck = v } }

// WithTitleEditable toggles whether the title block accepts edits.
func WithTitleEditable(v bool) Option { return func(o *resolvedOptions) { o.titleEditable = v } }

// WithURLLauncher installs the callback invoked when a link is activated.
func WithURLLauncher(f func(string)) Option {
	return func(o *resolvedOptions) { o.urlLauncher = f }
}

// WithOnError installs the InvariantViolation error sink.
func WithOnError(f func(error)) Option { return func(o *resolvedOptions) { o.onError = f } }

// WithCollaborativeCursorFactory installs the remote-cursor rendering
// hook invoked from ApplyCursorChangedEvent.
func WithCollaborativeCursorFactory(f func(actorID string) any) Option {
	return func(o *resolvedOptions) { o.collaborativeCursorFactory = f }
}

// WithBlockRegistry overrides the default Block Registry.
func WithBlockRegistry(r *registry.BlockRegistry) Option {
	return func(o *resolvedOptions) { o.blockReg = r }
}

// WithSpanRegistry overrides the default Span Registry.
func WithSpanRegistry(r *registry.SpanRegistry) Option {
	return func(o *resolvedOptions) { o.spanReg = r }
}

// WithEmbedRegistry overrides the default Embed Registry.
func WithEmbedRegistry(r *registry.EmbedRegistry) Option {
	return func(o *resolvedOptions) { o.embedReg = r }
}

// WithConfig seeds the persisted subset of a Controller's options
// (placeholder text, spellcheck, title editability, padding) from a
// loaded EditorConfig, the bridge between a config.Store and a fresh
// Controller's construction-time options.
func WithConfig(cfg config.EditorConfig) Option {
	return func(o *resolvedOptions) {
		o.emptyPlaceholder = cfg.EmptyPlaceholder
		o.spellcheck = cfg.Spellcheck
		o.titleEditable = cfg.TitleEditable
		o.padding = Padding{
			Top:    &cfg.Padding.Top,
			Right:  &cfg.Padding.Right,
			Bottom: &cfg.Padding.Bottom,
			Left:   &cfg.Padding.Left,
		}
	}
}
