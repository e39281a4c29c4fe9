package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format identifies a keybinding file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Loader loads keybindings from configuration files.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader() *Loader {
	return &Loader{}
}

// NewLoaderWithFS creates a loader reading from fsys.
// Paths given to LoadFile are then fs.FS paths (slash-separated, relative).
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, path)
	}
	return os.ReadFile(path)
}

// LoadFile loads bindings from a file, choosing the decoder by extension.
// Every returned binding has Source set to "user:<path>".
func (l *Loader) LoadFile(path string) ([]Binding, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &LoadError{Path: path, Index: -1, Err: err}
	}

	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Index: -1, Err: ErrFileNotFound}
		}
		return nil, &LoadError{Path: path, Index: -1, Err: err}
	}

	return decode(path, format, data)
}

// LoadReader loads bindings of the given format from r.
// The source name is used in errors and in each binding's Source.
func (l *Loader) LoadReader(r io.Reader, format Format, source string) ([]Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Path: source, Index: -1, Err: err}
	}
	return decode(source, format, data)
}

func decode(path string, format Format, data []byte) ([]Binding, error) {
	var (
		bindings []Binding
		err      error
	)

	switch format {
	case FormatJSON:
		bindings, err = decodeJSON(path, data)
	case FormatTOML:
		bindings, err = decodeStructured(path, func(v any) error {
			return toml.Unmarshal(data, v)
		})
	case FormatYAML:
		bindings, err = decodeStructured(path, func(v any) error {
			return yaml.Unmarshal(data, v)
		})
	default:
		return nil, &LoadError{Path: path, Index: -1, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}
	if err != nil {
		return nil, err
	}

	source := "user:" + path
	for i := range bindings {
		bindings[i].Source = source
	}
	return bindings, nil
}

// decodeJSON reads either a top-level array of entries or an object with a
// "bindings" array. Args are kept verbatim.
func decodeJSON(path string, data []byte) ([]Binding, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, &LoadError{Path: path, Index: -1, Err: errors.New("invalid JSON")}
	}

	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("bindings")
	}
	if !doc.IsArray() {
		return nil, &LoadError{Path: path, Index: -1, Err: errors.New("expected an array of bindings")}
	}

	var (
		bindings []Binding
		loadErr  error
	)
	idx := 0
	doc.ForEach(func(_, entry gjson.Result) bool {
		defer func() { idx++ }()

		if !entry.IsObject() {
			loadErr = &LoadError{Path: path, Index: idx, Err: errors.New("entry is not an object")}
			return false
		}

		b := Binding{
			Keys:        firstString(entry, "key", "keys"),
			Command:     entry.Get("command").String(),
			Description: entry.Get("description").String(),
		}
		if args := entry.Get("args"); args.Exists() {
			b.Args = []byte(args.Raw)
		}
		if err := b.Validate(); err != nil {
			loadErr = &LoadError{Path: path, Index: idx, Err: err}
			return false
		}

		bindings = append(bindings, b)
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return bindings, nil
}

func firstString(entry gjson.Result, fields ...string) string {
	for _, f := range fields {
		if v := entry.Get(f); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// fileEntry is the TOML/YAML shape of one binding.
type fileEntry struct {
	Key         string `toml:"key" yaml:"key"`
	Keys        string `toml:"keys" yaml:"keys"`
	Command     string `toml:"command" yaml:"command"`
	Args        any    `toml:"args" yaml:"args"`
	Description string `toml:"description" yaml:"description"`
}

type fileDoc struct {
	Bindings []fileEntry `toml:"bindings" yaml:"bindings"`
}

// decodeStructured decodes TOML or YAML and re-encodes args as JSON.
func decodeStructured(path string, unmarshal func(any) error) ([]Binding, error) {
	var doc fileDoc
	if err := unmarshal(&doc); err != nil {
		return nil, &LoadError{Path: path, Index: -1, Err: err}
	}

	bindings := make([]Binding, 0, len(doc.Bindings))
	for i, e := range doc.Bindings {
		b := Binding{
			Keys:        e.Key,
			Command:     e.Command,
			Description: e.Description,
		}
		if b.Keys == "" {
			b.Keys = e.Keys
		}
		if e.Args != nil {
			var err error
			if b, err = b.WithArgsValue(e.Args); err != nil {
				return nil, &LoadError{Path: path, Index: i, Err: err}
			}
		}
		if err := b.Validate(); err != nil {
			return nil, &LoadError{Path: path, Index: i, Err: err}
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}
