// Package key models the physical keyboard shortcuts shown next to menu
// entries.
//
// The package defines:
//
//   - Key: a named key (Enter, F2, arrows) or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta flags
//   - Chord: one key pressed together with its modifiers
//   - Shortcut: one or more chords pressed in order ("Ctrl+K Ctrl+R")
//
// # Shortcut Specifications
//
// Shortcuts are written in the same notations the keymap files use:
//
//   - Readable: "Ctrl+.", "Ctrl+Shift+R", "Alt+Shift+O"
//   - Vim-style: "<C-.>", "<C-S-r>", "<A-CR>"
//   - Single keys: "F2", "Enter", "a"
//
// Chords are separated by whitespace. A specification that cannot be
// parsed has no physical shortcut; callers treat it as unassigned.
package key
