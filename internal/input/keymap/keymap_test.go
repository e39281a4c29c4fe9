package keymap

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingBuilders(t *testing.T) {
	b := NewBinding("Ctrl+Alt+M", "lsp.refactor").
		WithArgs(`{"kind":"refactor.extract.function"}`).
		WithDescription("Extract function").
		WithSource("default")

	assert.Equal(t, "Ctrl+Alt+M", b.Keys)
	assert.Equal(t, "lsp.refactor", b.Command)
	assert.JSONEq(t, `{"kind":"refactor.extract.function"}`, string(b.Args))
	assert.Equal(t, "Extract function", b.Description)
	assert.Equal(t, "default", b.Source)

	withValue, err := NewBinding("Alt+Enter", "lsp.codeAction").
		WithArgsValue(map[string]any{"kind": "quickfix", "preferred": true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"quickfix","preferred":true}`, string(withValue.Args))
}

func TestBindingValidate(t *testing.T) {
	assert.NoError(t, NewBinding("Ctrl+.", "lsp.codeAction").Validate())
	assert.ErrorIs(t, NewBinding("Ctrl+.", "").Validate(), ErrMissingCommand)
	// Unparseable keys are not a validation error.
	assert.NoError(t, NewBinding("Hyper+x", "lsp.codeAction").Validate())
}

func TestBindingResolve(t *testing.T) {
	item := NewBinding("Ctrl+Shift+R", "lsp.refactor").WithSource("default").Resolve()
	require.True(t, item.HasShortcut())
	assert.Equal(t, "Ctrl+Shift+R", item.Shortcut.Label())
	assert.Equal(t, "lsp.refactor", item.Command)
	assert.Equal(t, "default", item.Source)
	assert.Nil(t, item.Args)

	unresolved := NewBinding("Hyper+x", "lsp.refactor").Resolve()
	assert.False(t, unresolved.HasShortcut())
	assert.Equal(t, "Hyper+x", unresolved.Keys)

	empty := NewBinding("", "lsp.refactor").Resolve()
	assert.False(t, empty.HasShortcut())
}

func TestTableKeepsOrder(t *testing.T) {
	table := NewTable(
		NewBinding("Ctrl+.", "lsp.codeAction"),
		NewBinding("Ctrl+Shift+R", "lsp.refactor"),
		NewBinding("Bogus+1", "lsp.refactor"),
		NewBinding("F2", "lsp.rename"),
	)

	require.Equal(t, 4, table.Len())

	items := table.Keybindings()
	require.Len(t, items, 4)
	assert.Equal(t, "lsp.codeAction", items[0].Command)
	assert.Equal(t, "lsp.refactor", items[1].Command)
	assert.False(t, items[2].HasShortcut())
	assert.Equal(t, "F2", items[3].Shortcut.Label())

	refactors := table.ForCommand("lsp.refactor")
	require.Len(t, refactors, 2)
	assert.Equal(t, "Ctrl+Shift+R", refactors[0].Keys)
	assert.Equal(t, "Bogus+1", refactors[1].Keys)
}

func TestTableReplaceAndCopies(t *testing.T) {
	table := NewTable(NewBinding("Ctrl+.", "lsp.codeAction"))

	snapshot := table.Bindings()
	snapshot[0].Command = "mutated"
	assert.Equal(t, "lsp.codeAction", table.Bindings()[0].Command)

	table.Replace([]Binding{NewBinding("F2", "lsp.rename"), NewBinding("F3", "lsp.fixAll")})
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "lsp.rename", table.Bindings()[0].Command)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"keys.json", FormatJSON},
		{"keys.TOML", FormatTOML},
		{"keys.yaml", FormatYAML},
		{"dir/keys.yml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFromPath("keys.ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

const jsonBindings = `[
  { "key": "Ctrl+Alt+M", "command": "lsp.refactor", "args": { "kind": "refactor.extract.function" } },
  { "keys": "Alt+Enter", "command": "lsp.codeAction", "args": { "kind": "quickfix", "preferred": true } },
  { "key": "Alt+Shift+O", "command": "lsp.organizeImports", "description": "Organize imports" }
]`

const tomlBindings = `
[[bindings]]
key = "Ctrl+Alt+M"
command = "lsp.refactor"
args = { kind = "refactor.extract.function" }

[[bindings]]
keys = "Alt+Enter"
command = "lsp.codeAction"
args = { kind = "quickfix", preferred = true }

[[bindings]]
key = "Alt+Shift+O"
command = "lsp.organizeImports"
description = "Organize imports"
`

const yamlBindings = `
bindings:
  - key: Ctrl+Alt+M
    command: lsp.refactor
    args: { kind: refactor.extract.function }
  - keys: Alt+Enter
    command: lsp.codeAction
    args:
      kind: quickfix
      preferred: true
  - key: Alt+Shift+O
    command: lsp.organizeImports
    description: Organize imports
`

func TestLoaderFormatsAgree(t *testing.T) {
	fsys := fstest.MapFS{
		"keys.json": {Data: []byte(jsonBindings)},
		"keys.toml": {Data: []byte(tomlBindings)},
		"keys.yaml": {Data: []byte(yamlBindings)},
	}
	loader := NewLoaderWithFS(fsys)

	for _, path := range []string{"keys.json", "keys.toml", "keys.yaml"} {
		t.Run(path, func(t *testing.T) {
			bindings, err := loader.LoadFile(path)
			require.NoError(t, err)
			require.Len(t, bindings, 3)

			assert.Equal(t, "Ctrl+Alt+M", bindings[0].Keys)
			assert.Equal(t, "lsp.refactor", bindings[0].Command)
			assert.JSONEq(t, `{"kind":"refactor.extract.function"}`, string(bindings[0].Args))

			assert.Equal(t, "Alt+Enter", bindings[1].Keys)
			assert.JSONEq(t, `{"kind":"quickfix","preferred":true}`, string(bindings[1].Args))

			assert.Equal(t, "lsp.organizeImports", bindings[2].Command)
			assert.Nil(t, bindings[2].Args)
			assert.Equal(t, "Organize imports", bindings[2].Description)

			for _, b := range bindings {
				assert.Equal(t, "user:"+path, b.Source)
			}
		})
	}
}

func TestLoaderJSONObjectForm(t *testing.T) {
	loader := NewLoader()
	bindings, err := loader.LoadReader(strings.NewReader(`{"bindings":[{"key":"F2","command":"lsp.rename"}]}`), FormatJSON, "inline")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, "lsp.rename", bindings[0].Command)
	assert.Equal(t, "user:inline", bindings[0].Source)
}

func TestLoaderArgsKeptVerbatim(t *testing.T) {
	loader := NewLoader()
	bindings, err := loader.LoadReader(strings.NewReader(`[{"key":"F2","command":"lsp.refactor","args":"not-an-object"}]`), FormatJSON, "inline")
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, `"not-an-object"`, string(bindings[0].Args))
}

func TestLoaderErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.json":     {Data: []byte(`[{"key":`)},
		"scalar.json":     {Data: []byte(`42`)},
		"nocommand.json":  {Data: []byte(`[{"key":"F2"}]`)},
		"notobject.json":  {Data: []byte(`[{"key":"F2","command":"a"}, 7]`)},
		"nocommand.toml":  {Data: []byte("[[bindings]]\nkey = \"F2\"\n")},
		"broken.yaml":     {Data: []byte("bindings: [\n")},
		"keys.ini":        {Data: []byte("")},
		"empty.json":      {Data: []byte("  ")},
		"emptyarray.json": {Data: []byte("[]")},
	}
	loader := NewLoaderWithFS(fsys)

	var loadErr *LoadError

	_, err := loader.LoadFile("missing.json")
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Equal(t, -1, loadErr.Index)

	_, err = loader.LoadFile("broken.json")
	require.ErrorAs(t, err, &loadErr)

	_, err = loader.LoadFile("scalar.json")
	require.ErrorAs(t, err, &loadErr)

	_, err = loader.LoadFile("nocommand.json")
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, ErrMissingCommand)
	assert.Equal(t, 0, loadErr.Index)
	assert.Contains(t, err.Error(), "binding 0")

	_, err = loader.LoadFile("notobject.json")
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 1, loadErr.Index)

	_, err = loader.LoadFile("nocommand.toml")
	assert.ErrorIs(t, err, ErrMissingCommand)

	_, err = loader.LoadFile("broken.yaml")
	require.ErrorAs(t, err, &loadErr)

	_, err = loader.LoadFile("keys.ini")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	bindings, err := loader.LoadFile("empty.json")
	require.NoError(t, err)
	assert.Empty(t, bindings)

	bindings, err = loader.LoadFile("emptyarray.json")
	require.NoError(t, err)
	assert.Empty(t, bindings)
}
