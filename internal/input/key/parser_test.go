package key

import (
	"errors"
	"testing"
)

func TestParseChordSingle(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"a", Chord{Key: KeyRune, Rune: 'a'}},
		{"A", Chord{Key: KeyRune, Rune: 'a', Modifiers: ModShift}},
		{".", Chord{Key: KeyRune, Rune: '.'}},
		{"+", Chord{Key: KeyRune, Rune: '+'}},
		{"F2", Chord{Key: KeyF2}},
		{"enter", Chord{Key: KeyEnter}},
		{"Escape", Chord{Key: KeyEscape}},
		{"space", Chord{Key: KeySpace}},
	}

	for _, tt := range tests {
		got, err := ParseChord(tt.spec)
		if err != nil {
			t.Errorf("ParseChord(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseChordModifierStyle(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"Ctrl+.", Chord{Key: KeyRune, Rune: '.', Modifiers: ModCtrl}},
		{"ctrl+shift+r", Chord{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl | ModShift}},
		{"Ctrl+Shift+R", Chord{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl | ModShift}},
		{"Alt+Shift+O", Chord{Key: KeyRune, Rune: 'o', Modifiers: ModAlt | ModShift}},
		{"Cmd+Enter", Chord{Key: KeyEnter, Modifiers: ModMeta}},
		{"Ctrl++", Chord{Key: KeyRune, Rune: '+', Modifiers: ModCtrl}},
		{"Ctrl+period", Chord{Key: KeyRune, Rune: '.', Modifiers: ModCtrl}},
		{"Shift+F12", Chord{Key: KeyF12, Modifiers: ModShift}},
	}

	for _, tt := range tests {
		got, err := ParseChord(tt.spec)
		if err != nil {
			t.Errorf("ParseChord(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseChordVimStyle(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"<C-.>", Chord{Key: KeyRune, Rune: '.', Modifiers: ModCtrl}},
		{"<C-S-r>", Chord{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl | ModShift}},
		{"<A-CR>", Chord{Key: KeyEnter, Modifiers: ModAlt}},
		{"<CR>", Chord{Key: KeyEnter}},
		{"<D-s>", Chord{Key: KeyRune, Rune: 's', Modifiers: ModMeta}},
		{"<C-->", Chord{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		got, err := ParseChord(tt.spec)
		if err != nil {
			t.Errorf("ParseChord(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChord(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseChordErrors(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+a", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"Ctrl+foo", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := ParseChord(tt.spec)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseChord(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestParseShortcut(t *testing.T) {
	s, err := ParseShortcut("Ctrl+K  Ctrl+R")
	if err != nil {
		t.Fatalf("ParseShortcut error = %v", err)
	}
	if len(s.Chords) != 2 {
		t.Fatalf("chords = %d, want 2", len(s.Chords))
	}
	if !s.IsChord() {
		t.Error("IsChord() = false, want true")
	}
	if got := s.Label(); got != "Ctrl+K Ctrl+R" {
		t.Errorf("Label() = %q, want %q", got, "Ctrl+K Ctrl+R")
	}

	if _, err := ParseShortcut(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("ParseShortcut(\"\") error = %v, want ErrEmptySpec", err)
	}
	if _, err := ParseShortcut("Ctrl+K Bogus+R"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("ParseShortcut with bad chord error = %v, want ErrInvalidSpec", err)
	}
}

func TestShortcutNotationsAgree(t *testing.T) {
	pairs := [][2]string{
		{"Ctrl+.", "<C-.>"},
		{"Ctrl+Shift+R", "<C-S-r>"},
		{"ctrl+k ctrl+r", "<C-k> <C-r>"},
		{"Alt+Enter", "<A-CR>"},
	}

	for _, p := range pairs {
		a := MustParseShortcut(p[0])
		b := MustParseShortcut(p[1])
		if !a.Equals(b) {
			t.Errorf("%q and %q parsed differently: %q vs %q", p[0], p[1], a.Label(), b.Label())
		}
	}
}

func TestMustParseShortcutPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseShortcut should panic on invalid input")
		}
	}()
	MustParseShortcut("Hyper+x")
}
