package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dshills/actionmenu/internal/codeaction"
)

// KeysCmd lists the keybinding candidates in table order.
type KeysCmd struct {
	KeybindingFlags `embed:""`

	Command string `help:"Only list keybindings for this command"`
	Kind    string `help:"Only list keybindings whose kind overlaps this code action kind"`
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the keys command.
func (k *KeysCmd) Run(cli *CLI) error {
	a, err := cli.application(k.KeybindingFlags, false)
	if err != nil {
		return err
	}

	candidates := a.Resolver().Session().Candidates()
	total := a.Table().Len()
	if k.Command != "" {
		total = len(a.Table().ForCommand(k.Command))
	}
	candidates = filterCandidates(candidates, k.Command, codeaction.Kind(k.Kind))

	if k.Format == "json" {
		return printCandidatesJSON(cli.out, candidates)
	}
	return printCandidatesTable(cli.out, candidates, total)
}

// filterCandidates keeps candidates bound to command and whose kind is an
// ancestor or descendant of kind. Empty filters match everything.
func filterCandidates(candidates []codeaction.Candidate, command string, kind codeaction.Kind) []codeaction.Candidate {
	out := candidates[:0]
	for _, c := range candidates {
		if command != "" && c.Command != command {
			continue
		}
		if !kind.IsEmpty() && !kind.Intersects(c.Kind) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type candidateJSON struct {
	Shortcut      string          `json:"shortcut"`
	Keys          string          `json:"keys"`
	Command       string          `json:"command"`
	Kind          codeaction.Kind `json:"kind"`
	PreferredOnly bool            `json:"preferredOnly"`
}

func printCandidatesJSON(w io.Writer, candidates []codeaction.Candidate) error {
	out := make([]candidateJSON, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateJSON{
			Shortcut:      c.Shortcut.Label(),
			Keys:          c.Keys,
			Command:       c.Command,
			Kind:          c.Kind,
			PreferredOnly: c.PreferredOnly,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printCandidatesTable(w io.Writer, candidates []codeaction.Candidate, total int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHORTCUT\tKIND\tPREFERRED\tCOMMAND")
	for _, c := range candidates {
		preferred := ""
		if c.PreferredOnly {
			preferred = "✓"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Shortcut.Label(), dash(string(c.Kind)), preferred, c.Command)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d keybindings label code actions\n", len(candidates), total)
	return err
}
