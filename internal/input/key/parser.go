package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// ParseChord parses a single chord specification.
//
// Supported formats:
//   - Single key: "a", "A" (implies Shift), ".", "F2", "Enter"
//   - With modifiers: "Ctrl+.", "Alt+Shift+O", "Ctrl++"
//   - Vim-style: "<C-.>", "<A-S-o>", "<CR>", "<C-->"
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if len([]rune(spec)) > 1 && strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseSingle(spec)
}

// splitLast splits spec at the last separator. A doubled separator at
// the end means the key itself is the separator character.
func splitLast(spec string, sep byte) (mods, keyPart string, ok bool) {
	double := string([]byte{sep, sep})
	if strings.HasSuffix(spec, double) {
		return spec[:len(spec)-2], string(sep), true
	}
	i := strings.LastIndexByte(spec, sep)
	if i < 0 {
		return "", spec, false
	}
	return spec[:i], spec[i+1:], true
}

// parseVimStyle parses the inside of "<...>" like "C-s", "A-S-o", "CR".
func parseVimStyle(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	modPart, keyPart, hasMods := splitLast(inner, '-')

	var mods Modifier
	if hasMods {
		for _, p := range strings.Split(modPart, "-") {
			mod, ok := vimModifiers[strings.ToLower(strings.TrimSpace(p))]
			if !ok {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
	}

	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+Shift+R" style notation.
func parseModifierStyle(spec string) (Chord, error) {
	modPart, keyPart, _ := splitLast(spec, '+')

	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	return parseKey(keyPart, mods)
}

// parseSingle parses a single character or key name without modifiers.
func parseSingle(spec string) (Chord, error) {
	if k := KeyFromName(spec); k != KeyNone {
		return Chord{Key: k}, nil
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		r := runes[0]
		// Uppercase letters have implicit Shift
		if unicode.IsUpper(r) {
			return Chord{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModShift}, nil
		}
		return Chord{Key: KeyRune, Rune: r}, nil
	}

	return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseKey parses the key part of a chord whose modifiers are known.
func parseKey(keyPart string, mods Modifier) (Chord, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, ErrInvalidSpec
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return Chord{Key: k, Modifiers: mods}, nil
	}
	if r, ok := runeAliases[strings.ToLower(keyPart)]; ok {
		return Chord{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		// Letters are stored lowercase; Shift is carried by the modifiers.
		return Chord{Key: KeyRune, Rune: unicode.ToLower(runes[0]), Modifiers: mods}, nil
	}

	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// ParseShortcut parses a whitespace-separated list of chords.
// Examples: "Ctrl+.", "Ctrl+K Ctrl+R", "<C-k> <C-r>"
func ParseShortcut(spec string) (*Shortcut, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}

	chords := make([]Chord, 0, len(fields))
	for _, f := range fields {
		c, err := ParseChord(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", spec, err)
		}
		chords = append(chords, c)
	}
	return &Shortcut{Chords: chords}, nil
}

// MustParseShortcut parses a shortcut and panics on error.
// Use only for known-valid specs in initialization code.
func MustParseShortcut(spec string) *Shortcut {
	s, err := ParseShortcut(spec)
	if err != nil {
		panic("invalid shortcut: " + spec + ": " + err.Error())
	}
	return s
}
