// Package config loads actionmenu settings.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults
//  2. the TOML config file (missing file is fine)
//  3. ACTIONMENU_* environment variables
//
// Example config file:
//
//	[log]
//	level = "debug"
//
//	[keybindings]
//	files = ["~/.config/actionmenu/keys.json"]
//	defaults = true
//
//	[menu]
//	include_disabled = false
//
//	[watch]
//	debounce_ms = 100
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/actionmenu/internal/config/loader"
	"github.com/dshills/actionmenu/internal/logging"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "ACTIONMENU_"

// ErrInvalidSetting indicates a setting with an unusable value.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings holds all actionmenu settings.
type Settings struct {
	Log         LogSettings        `toml:"log"`
	Keybindings KeybindingSettings `toml:"keybindings"`
	Menu        MenuSettings       `toml:"menu"`
	Watch       WatchSettings      `toml:"watch"`
}

// LogSettings configures logging.
type LogSettings struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level"`
}

// KeybindingSettings configures the keybinding table.
type KeybindingSettings struct {
	// Files are user keybinding files, loaded in order after the defaults.
	Files []string `toml:"files"`
	// Defaults enables the built-in code action bindings.
	Defaults bool `toml:"defaults"`
}

// MenuSettings configures menu building.
type MenuSettings struct {
	// IncludeDisabled lists disabled actions in the menu.
	IncludeDisabled bool `toml:"include_disabled"`
}

// WatchSettings configures watch mode.
type WatchSettings struct {
	// DebounceMS is the quiet period before a change is reported.
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns the debounce period as a duration.
func (w WatchSettings) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Log:         LogSettings{Level: "info"},
		Keybindings: KeybindingSettings{Defaults: true},
		Watch:       WatchSettings{DebounceMS: 100},
	}
}

// Validate checks the settings for unusable values.
func (s Settings) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalidSetting, err))
	}
	if s.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("%w: watch.debounce_ms must not be negative", ErrInvalidSetting))
	}
	return errors.Join(errs...)
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/actionmenu/config.toml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "actionmenu", "config.toml")
}

// Load reads settings from path and the environment.
// An empty path or a missing file yields the defaults plus environment.
func Load(path string) (Settings, error) {
	return LoadWith(loader.NewFileLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// LoadWith reads settings from the given loaders, later loaders
// overriding earlier ones.
func LoadWith(loaders ...loader.Loader) (Settings, error) {
	merged := make(map[string]any)
	for _, l := range loaders {
		m, err := l.Load()
		if err != nil {
			return Settings{}, err
		}
		loader.Merge(merged, m)
	}

	settings, err := decode(merged)
	if err != nil {
		return Settings{}, err
	}
	settings.Keybindings.Files = expandPaths(settings.Keybindings.Files)

	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// decode applies the merged map on top of the defaults. The map goes
// through TOML so its values are checked against the Settings field types.
func decode(m map[string]any) (Settings, error) {
	settings := Default()
	if len(m) == 0 {
		return settings, nil
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return settings, nil
}

// expandPaths resolves a leading ~ and environment variables.
func expandPaths(paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	home, _ := os.UserHomeDir()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = os.ExpandEnv(p)
		if home != "" && (p == "~" || strings.HasPrefix(p, "~/")) {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
		out = append(out, p)
	}
	return out
}
