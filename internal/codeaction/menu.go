package codeaction

import (
	"strings"

	"github.com/dshills/actionmenu/internal/input/key"
)

// TriggerType says how the code action request was started.
type TriggerType int

const (
	// TriggerInvoke is an explicit user request.
	TriggerInvoke TriggerType = iota
	// TriggerAuto is an automatic request, such as the lightbulb.
	TriggerAuto
)

// Trigger describes the request a menu is built for.
type Trigger struct {
	Type TriggerType
	// Only is the kind filter of the request, Empty for none.
	Only Kind
}

// ShowOptions controls which actions a menu lists.
type ShowOptions struct {
	IncludeDisabledActions bool
	FromLightbulb          bool
}

// DocumentationProvider contributes extra documentation commands to the
// menu, typically one per language server.
type DocumentationProvider interface {
	AdditionalMenuItems(trigger Trigger, actions []Action) []Command
}

// MenuItem is one entry of the code action menu.
type MenuItem struct {
	// ID is the action's command id, or its title when it has none.
	ID string
	// Title is the display title on a single line.
	Title string
	// Enabled is false for disabled actions.
	Enabled bool
	// Separator marks the divider before documentation entries.
	Separator bool
	// Shortcut is the keybinding shown next to the entry, nil for none.
	Shortcut *key.Shortcut
	// Action is the code action behind the entry. Documentation entries
	// carry a synthesized action wrapping their command.
	Action *Action
}

// Label returns the shortcut label, empty when there is none.
func (m MenuItem) Label() string {
	return m.Shortcut.Label()
}

// Menu is the presentation-free content of the code action menu.
type Menu struct {
	// Visible is false when there is nothing to show.
	Visible bool
	// AutoFix is true when a valid preferred quick fix is listed.
	AutoFix bool
	Items   []MenuItem
}

// ActionItems returns the entries backed by code actions, excluding the
// separator.
func (m Menu) ActionItems() []MenuItem {
	out := make([]MenuItem, 0, len(m.Items))
	for _, it := range m.Items {
		if !it.Separator {
			out = append(out, it)
		}
	}
	return out
}

// MenuBuilder assembles menus for action sets.
type MenuBuilder struct {
	resolver  *KeybindingResolver
	providers []DocumentationProvider
}

// NewMenuBuilder creates a builder that labels entries using resolver.
// A nil resolver builds menus without shortcuts.
func NewMenuBuilder(resolver *KeybindingResolver, providers ...DocumentationProvider) *MenuBuilder {
	return &MenuBuilder{resolver: resolver, providers: providers}
}

// Build creates the menu for set. Each call starts a new resolution
// session, so table changes between calls are picked up.
func (b *MenuBuilder) Build(trigger Trigger, set ActionSet, opts ShowOptions) Menu {
	var resolve func(Action) *key.Shortcut
	if b.resolver != nil {
		resolve = b.resolver.Session().Resolve
	}
	return BuildMenu(trigger, set, opts, resolve, b.providers...)
}

// BuildMenu lists the actions of set with their shortcuts. resolve may be
// nil. Documentation commands from set and from providers follow the
// actions behind a separator.
func BuildMenu(trigger Trigger, set ActionSet, opts ShowOptions, resolve func(Action) *key.Shortcut, providers ...DocumentationProvider) Menu {
	actions := set.ValidActions()
	if opts.IncludeDisabledActions {
		actions = set.AllActions()
	}
	if len(actions) == 0 {
		return Menu{}
	}

	items := make([]MenuItem, 0, len(actions)+len(set.Documentation)+1)
	for i := range actions {
		a := actions[i]
		item := MenuItem{
			ID:      actionID(a),
			Title:   stripNewlines(a.Title),
			Enabled: !a.IsDisabled(),
			Action:  &a,
		}
		if resolve != nil {
			item.Shortcut = resolve(a)
		}
		items = append(items, item)
	}

	docs := make([]Command, 0, len(set.Documentation))
	docs = append(docs, set.Documentation...)
	for _, p := range providers {
		docs = append(docs, p.AdditionalMenuItems(trigger, actions)...)
	}

	if len(docs) > 0 {
		items = append(items, MenuItem{Separator: true})
		for i := range docs {
			cmd := docs[i]
			a := Action{Title: cmd.Title, Command: &cmd}
			items = append(items, MenuItem{
				ID:      actionID(a),
				Title:   stripNewlines(cmd.Title),
				Enabled: true,
				Action:  &a,
			})
		}
	}

	return Menu{Visible: true, AutoFix: set.HasAutoFix(), Items: items}
}

func actionID(a Action) string {
	if a.Command != nil {
		return a.Command.Command
	}
	return a.Title
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func stripNewlines(s string) string {
	return newlineReplacer.Replace(s)
}
