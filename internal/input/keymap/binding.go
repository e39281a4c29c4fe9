package keymap

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/actionmenu/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "Ctrl+.", "<C-S-r>", "Ctrl+K Ctrl+R"
	Keys string

	// Command is the command to execute.
	// Examples: "lsp.codeAction", "lsp.refactor"
	Command string

	// Args is the raw JSON argument document for the command.
	// Nil means no arguments were configured.
	Args []byte

	// Description provides documentation for the binding.
	Description string

	// Source indicates where this binding was defined.
	// Examples: "default", "user:/home/me/.config/actionmenu/keys.json"
	Source string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, command string) Binding {
	return Binding{
		Keys:    keys,
		Command: command,
	}
}

// WithArgs sets the raw JSON arguments for this binding.
func (b Binding) WithArgs(raw string) Binding {
	b.Args = []byte(raw)
	return b
}

// WithArgsValue encodes v as the JSON arguments for this binding.
func (b Binding) WithArgsValue(v any) (Binding, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return b, fmt.Errorf("encoding args for %q: %w", b.Command, err)
	}
	b.Args = raw
	return b, nil
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithSource sets the source for this binding.
func (b Binding) WithSource(source string) Binding {
	b.Source = source
	return b
}

// Validate checks that the binding names a command.
// Key specifications are not checked here: a binding whose keys fail to
// parse is kept and surfaces as an Item without a shortcut.
func (b Binding) Validate() error {
	if b.Command == "" {
		return ErrMissingCommand
	}
	return nil
}

// Item is a binding resolved against the keyboard.
type Item struct {
	// Keys is the configured key specification.
	Keys string

	// Command is the bound command.
	Command string

	// Args is the raw JSON argument document, nil when absent.
	Args []byte

	// Shortcut is the resolved physical shortcut, nil when Keys could
	// not be resolved.
	Shortcut *key.Shortcut

	// Source indicates where the binding was defined.
	Source string
}

// Resolve converts the binding to an Item, parsing its keys.
func (b Binding) Resolve() Item {
	item := Item{
		Keys:    b.Keys,
		Command: b.Command,
		Args:    b.Args,
		Source:  b.Source,
	}
	if s, err := key.ParseShortcut(b.Keys); err == nil {
		item.Shortcut = s
	}
	return item
}

// HasShortcut returns true if the item resolved to a physical shortcut.
func (i Item) HasShortcut() bool {
	return i.Shortcut != nil
}
