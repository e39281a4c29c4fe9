package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dshills/actionmenu/internal/app"
	"github.com/dshills/actionmenu/internal/config"
	"github.com/dshills/actionmenu/internal/logging"
	"github.com/dshills/actionmenu/internal/watcher"
)

// CLI represents the command-line interface structure.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version information"`
	Config   string           `help:"Path to the TOML config file" type:"path" env:"ACTIONMENU_CONFIG"`
	LogLevel string           `help:"Log level: debug, info, warn or error (overrides config)" name:"log-level"`

	Menu  MenuCmd  `cmd:"" help:"Print the code action menu with the shortcut of each action"`
	Keys  KeysCmd  `cmd:"" help:"List the keybindings that can label code actions"`
	Watch WatchCmd `cmd:"" help:"Print the menu again whenever an input file changes"`

	settings config.Settings `kong:"-"`
	logger   *logging.Logger `kong:"-"`
	out      io.Writer       `kong:"-"`
	stdin    io.Reader       `kong:"-"`

	newWatcher func() (watcher.Watcher, error) `kong:"-"`
}

// AfterApply loads settings and sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	path := c.Config
	if path == "" {
		path = config.DefaultPath()
	}
	settings, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.LogLevel != "" {
		settings.Log.Level = c.LogLevel
	}

	level, err := logging.ParseLevel(settings.Log.Level)
	if err != nil {
		return err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level

	c.settings = settings
	c.logger = logging.New(cfg)
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.stdin == nil {
		c.stdin = os.Stdin
	}
	return nil
}

// KeybindingFlags are shared by commands that build the keybinding table.
type KeybindingFlags struct {
	Keybindings []string `help:"Keybinding files (.json, .toml, .yaml), loaded after the configured ones; - reads JSON from stdin" short:"k" sep:"none"`
	NoDefaults  bool     `help:"Do not load the built-in code action keybindings"`
}

// application builds the app with command flags applied on top of the
// loaded settings, and loads its keybindings.
func (c *CLI) application(kb KeybindingFlags, includeDisabled bool) (*app.Application, error) {
	settings := c.settings
	settings.Keybindings.Files = append(append([]string(nil), settings.Keybindings.Files...), kb.Keybindings...)
	if kb.NoDefaults {
		settings.Keybindings.Defaults = false
	}
	if includeDisabled {
		settings.Menu.IncludeDisabled = true
	}

	a := app.New(app.Options{
		Settings:   &settings,
		Logger:     c.logger,
		Stdin:      c.stdin,
		NewWatcher: c.newWatcher,
	})
	if err := a.ReloadKeybindings(); err != nil {
		return nil, err
	}
	return a, nil
}
