// Package codeaction decides which keyboard shortcut is shown next to each
// entry of the code action menu, and builds that menu.
//
// # Kinds
//
// Code actions are categorized by a hierarchical Kind such as
// "refactor.extract.function". A kind contains itself and every kind
// below it:
//
//	Refactor.Contains("refactor.extract.function") // true
//	RefactorExtract.Contains("refactor")          // false
//
// # Keybinding Resolution
//
// Users bind shortcuts to generic commands ("lsp.refactor",
// "lsp.codeAction", ...) whose arguments select a kind:
//
//	{ "key": "Ctrl+Alt+M", "command": "lsp.refactor",
//	  "args": { "kind": "refactor.extract.function" } }
//
// For an action, the KeybindingResolver considers every bound command
// whose kind contains the action's kind and picks the most specific one.
// Among equally specific bindings the first registered wins. Bindings
// with "preferred": true only label preferred actions. "lsp.organizeImports"
// and "lsp.fixAll" always stand for source.organizeImports and
// source.fixAll.
//
//	resolver := codeaction.NewKeybindingResolver(table)
//	session := resolver.Session()
//	for _, a := range actions {
//	    if s := session.Resolve(a); s != nil {
//	        fmt.Println(a.Title, s.Label())
//	    }
//	}
//
// A session reads the table on its first query and never again.
//
// # Menu
//
// BuildMenu turns an ActionSet into the menu entries: single-line titles,
// enabled state, shortcuts, and documentation commands after a separator.
package codeaction
