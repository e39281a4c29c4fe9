package key

import (
	"strings"
	"unicode"
)

// Chord is one key pressed together with its modifiers.
type Chord struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune chords, stored lowercase.
	Rune rune

	// Modifiers contains the held modifier keys.
	Modifiers Modifier
}

// Label returns the display form, e.g. "Ctrl+Shift+R" or "F2".
func (c Chord) Label() string {
	var name string
	if c.Key == KeyRune {
		name = string(unicode.ToUpper(c.Rune))
	} else {
		name = c.Key.String()
	}

	if c.Modifiers.IsEmpty() {
		return name
	}
	return c.Modifiers.String() + "+" + name
}

// Shortcut is a physical key binding: one or more chords pressed in order.
type Shortcut struct {
	Chords []Chord
}

// Label returns the display form with chords separated by a space,
// e.g. "Ctrl+K Ctrl+R".
func (s *Shortcut) Label() string {
	if s == nil || len(s.Chords) == 0 {
		return ""
	}
	parts := make([]string, len(s.Chords))
	for i, c := range s.Chords {
		parts[i] = c.Label()
	}
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (s *Shortcut) String() string {
	return s.Label()
}

// IsChord returns true if the shortcut needs more than one chord.
func (s *Shortcut) IsChord() bool {
	return s != nil && len(s.Chords) > 1
}

// Equals returns true if both shortcuts press the same chords in order.
func (s *Shortcut) Equals(other *Shortcut) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Chords) != len(other.Chords) {
		return false
	}
	for i, c := range s.Chords {
		if c != other.Chords[i] {
			return false
		}
	}
	return true
}
