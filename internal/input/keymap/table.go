package keymap

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned by the keymap package.
var (
	// ErrMissingCommand indicates a binding without a command.
	ErrMissingCommand = errors.New("binding has no command")

	// ErrFileNotFound indicates a keybinding file does not exist.
	ErrFileNotFound = errors.New("keybinding file not found")

	// ErrUnsupportedFormat indicates a file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported keybinding file format")
)

// LoadError reports a problem with one keybinding file or one entry in it.
type LoadError struct {
	// Path is the file being loaded.
	Path string
	// Index is the entry position, or -1 for file-level errors.
	Index int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: binding %d: %v", e.Path, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Table is an ordered keybinding table.
//
// Thread Safety:
// Table is safe for concurrent use. Keybindings returns a snapshot; later
// changes to the table are not reflected in it.
type Table struct {
	mu       sync.RWMutex
	bindings []Binding
}

// NewTable creates a table holding the given bindings in order.
func NewTable(bindings ...Binding) *Table {
	t := &Table{bindings: make([]Binding, 0, len(bindings))}
	t.bindings = append(t.bindings, bindings...)
	return t
}

// Replace swaps the whole table contents.
func (t *Table) Replace(bindings []Binding) {
	next := make([]Binding, len(bindings))
	copy(next, bindings)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings = next
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bindings)
}

// Bindings returns a copy of the bindings in registration order.
func (t *Table) Bindings() []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Binding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Keybindings resolves every binding to an Item, in registration order.
func (t *Table) Keybindings() []Item {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]Item, 0, len(t.bindings))
	for _, b := range t.bindings {
		items = append(items, b.Resolve())
	}
	return items
}

// ForCommand returns the bindings for a command, in registration order.
func (t *Table) ForCommand(command string) []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Binding
	for _, b := range t.bindings {
		if b.Command == command {
			out = append(out, b)
		}
	}
	return out
}
