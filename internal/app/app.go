// Package app wires settings, the keybinding table, the resolver and the
// menu builder together for the actionmenu commands.
package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/actionmenu/internal/codeaction"
	"github.com/dshills/actionmenu/internal/config"
	"github.com/dshills/actionmenu/internal/input/keymap"
	"github.com/dshills/actionmenu/internal/logging"
	"github.com/dshills/actionmenu/internal/watcher"
)

// Options configures an Application.
type Options struct {
	// Settings are the loaded settings. Zero value means config.Default().
	Settings *config.Settings

	// Logger receives diagnostics. Nil means a null logger.
	Logger *logging.Logger

	// FS, when set, is used instead of the OS file system for keybinding
	// and action files.
	FS fs.FS

	// Stdin is read when the action path or a keybinding file is "-".
	// Defaults to os.Stdin.
	Stdin io.Reader

	// DocumentationProviders contribute documentation menu entries.
	DocumentationProviders []codeaction.DocumentationProvider

	// NewWatcher creates the watcher used by Watch. Defaults to an
	// fsnotify watcher.
	NewWatcher func() (watcher.Watcher, error)
}

// Application holds the keybinding table and the components built on it.
type Application struct {
	settings config.Settings
	logger   *logging.Logger
	fsys     fs.FS
	stdin    io.Reader

	table    *keymap.Table
	loader   *keymap.Loader
	resolver *codeaction.KeybindingResolver
	builder  *codeaction.MenuBuilder

	newWatcher func() (watcher.Watcher, error)

	// stdinBindings holds the keybindings read from "-", which can only be
	// read once.
	stdinBindings []keymap.Binding
	stdinRead     bool
}

// New creates an application with an empty keybinding table.
// Call ReloadKeybindings to fill it.
func New(opts Options) *Application {
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}

	app := &Application{
		settings:   settings,
		logger:     logger.WithComponent("app"),
		fsys:       opts.FS,
		stdin:      opts.Stdin,
		table:      keymap.NewTable(),
		newWatcher: opts.NewWatcher,
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}

	if opts.FS != nil {
		app.loader = keymap.NewLoaderWithFS(opts.FS)
	} else {
		app.loader = keymap.NewLoader()
	}

	app.resolver = codeaction.NewKeybindingResolver(app.table, codeaction.WithLogger(logger))
	app.builder = codeaction.NewMenuBuilder(app.resolver, opts.DocumentationProviders...)

	if app.newWatcher == nil {
		app.newWatcher = func() (watcher.Watcher, error) {
			w, err := watcher.NewFSNotifyWatcher()
			if err != nil {
				return nil, err
			}
			return watcher.NewDebouncedWatcher(w, settings.Watch.Debounce()), nil
		}
	}

	return app
}

// Settings returns the application settings.
func (app *Application) Settings() config.Settings {
	return app.settings
}

// Table returns the keybinding table.
func (app *Application) Table() *keymap.Table {
	return app.table
}

// Resolver returns the keybinding resolver over the table.
func (app *Application) Resolver() *codeaction.KeybindingResolver {
	return app.resolver
}

// ReloadKeybindings rebuilds the table from the built-in bindings (when
// enabled) followed by each configured file in order. On error the table
// is left unchanged.
func (app *Application) ReloadKeybindings() error {
	var bindings []keymap.Binding
	if app.settings.Keybindings.Defaults {
		bindings = append(bindings, codeaction.DefaultBindings()...)
	}

	files := app.settings.Keybindings.Files
	for _, f := range files {
		loaded, err := app.loadKeybindings(f)
		if err != nil {
			return NewOperationError("load keybindings", "", err)
		}
		bindings = append(bindings, loaded...)
	}

	for _, b := range bindings {
		if b.Resolve().HasShortcut() {
			continue
		}
		app.logger.WithField("source", b.Source).
			WithField("command", b.Command).
			Warn("keys %q do not resolve to a shortcut", b.Keys)
	}

	app.table.Replace(bindings)
	app.logger.Debug("loaded %d keybindings from %d files", len(bindings), len(files))
	return nil
}

// loadKeybindings loads one keybinding file. The path "-" reads JSON
// from standard input on first use and reuses it on later reloads.
func (app *Application) loadKeybindings(path string) ([]keymap.Binding, error) {
	if path != "-" {
		return app.loader.LoadFile(path)
	}
	if !app.stdinRead {
		bindings, err := app.loader.LoadReader(app.stdin, keymap.FormatJSON, "stdin")
		if err != nil {
			return nil, err
		}
		app.stdinBindings = bindings
		app.stdinRead = true
	}
	return app.stdinBindings, nil
}

func (app *Application) keybindingsFromStdin() bool {
	for _, f := range app.settings.Keybindings.Files {
		if f == "-" {
			return true
		}
	}
	return false
}

// LoadActions reads a code action set. The path "-" reads standard input.
func (app *Application) LoadActions(path string) (codeaction.ActionSet, error) {
	if path == "" {
		return codeaction.ActionSet{}, ErrNoActions
	}
	if path == "-" && app.keybindingsFromStdin() {
		return codeaction.ActionSet{}, ErrStdinInUse
	}

	var (
		data []byte
		err  error
	)
	switch {
	case path == "-":
		data, err = io.ReadAll(app.stdin)
	case app.fsys != nil:
		data, err = fs.ReadFile(app.fsys, path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return codeaction.ActionSet{}, NewOperationError("load actions", path, err)
	}

	set, err := codeaction.DecodeActionSet(bytes.NewReader(data))
	if err != nil {
		return codeaction.ActionSet{}, NewOperationError("load actions", path, err)
	}
	return set, nil
}

// Menu builds the menu for set with a fresh resolution session.
func (app *Application) Menu(set codeaction.ActionSet) codeaction.Menu {
	opts := codeaction.ShowOptions{
		IncludeDisabledActions: app.settings.Menu.IncludeDisabled,
	}
	return app.builder.Build(codeaction.Trigger{Type: codeaction.TriggerInvoke}, set, opts)
}

// Watch shows the menu for the action file and shows it again whenever
// the action file or a keybinding file changes, until ctx is done.
// Keybinding files that fail to load keep the previous table; action
// files that fail to load are reported and skipped.
func (app *Application) Watch(ctx context.Context, actionsPath string, show func(codeaction.Menu)) error {
	if actionsPath == "" || actionsPath == "-" {
		return ErrNoActions
	}

	w, err := app.newWatcher()
	if err != nil {
		return NewOperationError("start watcher", "", err)
	}
	defer w.Close()

	keyFiles := make(map[string]bool)
	for _, p := range app.settings.Keybindings.Files {
		if p == "-" {
			continue
		}
		abs := absPath(p)
		keyFiles[abs] = true
		if err := w.Watch(p); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
			return NewOperationError("watch", p, err)
		}
	}
	if err := w.Watch(actionsPath); err != nil && !errors.Is(err, watcher.ErrAlreadyWatching) {
		return NewOperationError("watch", actionsPath, err)
	}
	app.logger.Debug("watching %s", strings.Join(w.WatchedPaths(), ", "))

	refresh := func() {
		set, err := app.LoadActions(actionsPath)
		if err != nil {
			app.logger.Warn("%v", err)
			return
		}
		show(app.Menu(set))
	}
	refresh()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			app.logger.WithField("op", ev.Op).Debug("%s changed", ev.Path)
			if ev.Op.Has(watcher.OpRemove) && !ev.Op.Has(watcher.OpCreate) {
				continue
			}
			if keyFiles[ev.Path] {
				if err := app.ReloadKeybindings(); err != nil {
					app.logger.Warn("keeping previous keybindings: %v", err)
				}
			}
			refresh()

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			app.logger.Warn("watcher: %v", err)
		}
	}
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
