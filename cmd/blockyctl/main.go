// Command blockyctl is a read-only terminal inspection shell for a
// BlockyDocument: it renders the block tree, each block's text
// content, and the current cursor position, redrawing whenever the
// underlying State publishes a changesetApplied or
// cursorStateChanged event. It never feeds input back into the
// document — there is no editing here, only observation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/fork-archive-hub/blocky-editor/internal/config"
	"github.com/fork-archive-hub/blocky-editor/internal/controller"
	"github.com/fork-archive-hub/blocky-editor/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logging.Default().SetLevel(logging.ParseLogLevel(opts.LogLevel))

	var storeOpts []config.Option
	if opts.ConfigPath != "" {
		storeOpts = append(storeOpts, config.WithPath(opts.ConfigPath))
	}
	storeOpts = append(storeOpts, config.WithWatch(true))
	cfgStore := config.New(storeOpts...)
	if err := cfgStore.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "blockyctl: failed to load config: %v\n", err)
		return 1
	}
	defer cfgStore.Close()

	ctrl := controller.New(
		controller.WithTitle(opts.Title),
		controller.WithConfig(cfgStore.Get()),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockyctl: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "blockyctl: failed to init terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	insp := newInspector(ctrl, screen)
	insp.subscribe()
	insp.render()

	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			insp.render()
		case *tcell.EventKey:
			if isQuit(e) {
				return 0
			}
		}
	}
}

func isQuit(e *tcell.EventKey) bool {
	if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
		return true
	}
	return e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q')
}

// cliOptions are blockyctl's command-line options.
type cliOptions struct {
	ConfigPath string
	Title      string
	LogLevel   string
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to editor.toml (defaults to $XDG_CONFIG_HOME/blocky/editor.toml)")
	flag.StringVar(&opts.Title, "title", "Untitled", "Seed title for a fresh document")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blockyctl - read-only block document inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockyctl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress q, Esc, or Ctrl-C to quit.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Println("blockyctl dev")
		os.Exit(0)
	}

	return opts
}
