package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dshills/actionmenu/internal/codeaction"
)

// MenuCmd prints the menu for a code action file.
type MenuCmd struct {
	KeybindingFlags `embed:""`

	Actions         string `help:"Code action JSON (LSP result or {actions, documentation}); - reads stdin" short:"a" required:""`
	IncludeDisabled bool   `help:"List disabled actions too"`
	Format          string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the menu command.
func (m *MenuCmd) Run(cli *CLI) error {
	a, err := cli.application(m.KeybindingFlags, m.IncludeDisabled)
	if err != nil {
		return err
	}

	set, err := a.LoadActions(m.Actions)
	if err != nil {
		return err
	}

	menu := a.Menu(set)
	if m.Format == "json" {
		return printMenuJSON(cli.out, menu)
	}
	return printMenuTable(cli.out, menu)
}

type menuItemJSON struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title,omitempty"`
	Kind      codeaction.Kind `json:"kind,omitempty"`
	Enabled   bool            `json:"enabled"`
	Separator bool            `json:"separator,omitempty"`
	Shortcut  string          `json:"shortcut,omitempty"`
}

func printMenuJSON(w io.Writer, menu codeaction.Menu) error {
	items := make([]menuItemJSON, 0, len(menu.Items))
	for _, it := range menu.Items {
		j := menuItemJSON{
			ID:        it.ID,
			Title:     it.Title,
			Enabled:   it.Enabled,
			Separator: it.Separator,
			Shortcut:  it.Label(),
		}
		if it.Action != nil {
			j.Kind = it.Action.Kind
		}
		items = append(items, j)
	}

	data, err := json.MarshalIndent(struct {
		Visible    bool           `json:"visible"`
		HasAutoFix bool           `json:"hasAutoFix"`
		Items      []menuItemJSON `json:"items"`
	}{menu.Visible, menu.AutoFix, items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printMenuTable(w io.Writer, menu codeaction.Menu) error {
	if !menu.Visible {
		_, err := fmt.Fprintln(w, "No code actions available")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tKIND\tSHORTCUT\tENABLED")
	for _, it := range menu.Items {
		if it.Separator {
			fmt.Fprintln(tw, "--\t\t\t")
			continue
		}
		var kind codeaction.Kind
		if it.Action != nil {
			kind = it.Action.Kind
		}
		enabled := ""
		if it.Enabled {
			enabled = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.Title, dash(string(kind)), dash(it.Label()), enabled)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
