package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileLoader reads one TOML settings file. A missing file, or an empty
// path, yields no settings rather than an error.
type FileLoader struct {
	path string
	fsys fs.FS
}

// FileOption configures a FileLoader.
type FileOption func(*FileLoader)

// WithFS reads the file from fsys instead of the OS file system. The path
// is then an fs.FS path.
func WithFS(fsys fs.FS) FileOption {
	return func(l *FileLoader) { l.fsys = fsys }
}

// NewFileLoader creates a loader for the TOML file at path.
func NewFileLoader(path string, opts ...FileOption) *FileLoader {
	l := &FileLoader{path: path}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implements Loader.
func (l *FileLoader) Load() (map[string]any, error) {
	if l.path == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if l.fsys != nil {
		data, err = fs.ReadFile(l.fsys, l.path)
	} else {
		data, err = os.ReadFile(l.path)
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", l.path, err)
	}

	var settings map[string]any
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, newSyntaxError(l.path, err)
	}
	return settings, nil
}

// SyntaxError locates a TOML decoding failure in a settings file.
type SyntaxError struct {
	Path string
	// Line and Column are 1-based, zero when go-toml gave no position.
	Line, Column int
	Err          error
}

func newSyntaxError(path string, err error) *SyntaxError {
	se := &SyntaxError{Path: path, Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		se.Line, se.Column = de.Position()
	}
	return se
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
