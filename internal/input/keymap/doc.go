// Package keymap holds the ordered keybinding table and loads it from
// configuration files.
//
// # Key Concepts
//
// Binding: maps a key specification to a command, with optional
// free-form JSON arguments for that command.
//
// Table: an ordered list of bindings. Registration order is preserved;
// consumers that break ties by position rely on it.
//
// Item: a binding whose key specification has been resolved to a
// physical shortcut. An item whose keys cannot be parsed keeps a nil
// Shortcut rather than being dropped, so consumers decide how to treat
// unassigned entries.
//
// # File Formats
//
// The Loader picks a decoder from the file extension:
//
//	[
//	  { "key": "Ctrl+Alt+M", "command": "lsp.refactor",
//	    "args": { "kind": "refactor.extract.function" } }
//	]
//
//	[[bindings]]
//	key = "Ctrl+Alt+M"
//	command = "lsp.refactor"
//	args = { kind = "refactor.extract.function" }
//
//	bindings:
//	  - key: Ctrl+Alt+M
//	    command: lsp.refactor
//	    args: { kind: refactor.extract.function }
//
// Arguments from every format are normalized to raw JSON.
//
// # Usage
//
//	loader := keymap.NewLoader()
//	user, err := loader.LoadFile("keybindings.json")
//	if err != nil {
//	    return err
//	}
//	table := keymap.NewTable(append(defaults, user...)...)
//
//	for _, item := range table.Keybindings() {
//	    fmt.Println(item.Command, item.Shortcut.Label())
//	}
package keymap
