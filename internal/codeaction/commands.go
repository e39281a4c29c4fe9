package codeaction

import "github.com/dshills/actionmenu/internal/input/keymap"

// Commands that run code actions.
const (
	CommandRefactor        = "lsp.refactor"
	CommandCodeAction      = "lsp.codeAction"
	CommandSourceAction    = "lsp.sourceAction"
	CommandOrganizeImports = "lsp.organizeImports"
	CommandFixAll          = "lsp.fixAll"
)

// CommandIDs names the commands whose keybindings can be shown next to a
// code action.
type CommandIDs struct {
	Refactor        string
	CodeAction      string
	SourceAction    string
	OrganizeImports string
	FixAll          string
}

// DefaultCommandIDs returns the editor's command ids.
func DefaultCommandIDs() CommandIDs {
	return CommandIDs{
		Refactor:        CommandRefactor,
		CodeAction:      CommandCodeAction,
		SourceAction:    CommandSourceAction,
		OrganizeImports: CommandOrganizeImports,
		FixAll:          CommandFixAll,
	}
}

// All returns the non-empty ids.
func (c CommandIDs) All() []string {
	ids := make([]string, 0, 5)
	for _, id := range []string{c.Refactor, c.CodeAction, c.SourceAction, c.OrganizeImports, c.FixAll} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Has reports whether id is one of the code action commands.
func (c CommandIDs) Has(id string) bool {
	if id == "" {
		return false
	}
	switch id {
	case c.Refactor, c.CodeAction, c.SourceAction, c.OrganizeImports, c.FixAll:
		return true
	}
	return false
}

// DefaultBindings returns the built-in code action keybindings.
func DefaultBindings() []keymap.Binding {
	bindings := []keymap.Binding{
		keymap.NewBinding("Ctrl+.", CommandCodeAction).WithDescription("Show code actions"),
		keymap.NewBinding("Ctrl+Shift+R", CommandRefactor).WithDescription("Show refactorings"),
		keymap.NewBinding("Alt+Shift+O", CommandOrganizeImports).WithDescription("Organize imports"),
		keymap.NewBinding("Alt+Shift+F", CommandFixAll).WithDescription("Fix all"),
		keymap.NewBinding("Ctrl+Alt+M", CommandRefactor).
			WithArgs(string(argsWithKind(RefactorExtract.Append("function")))).
			WithDescription("Extract function"),
		keymap.NewBinding("Ctrl+Alt+V", CommandRefactor).
			WithArgs(string(argsWithKind(RefactorExtract.Append("variable")))).
			WithDescription("Extract variable"),
		keymap.NewBinding("Alt+Enter", CommandCodeAction).
			WithArgs(`{"kind":"quickfix","apply":"first","preferred":true}`).
			WithDescription("Apply preferred quick fix"),
	}
	for i := range bindings {
		bindings[i] = bindings[i].WithSource("default")
	}
	return bindings
}
