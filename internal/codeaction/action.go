package codeaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// ErrInvalidActions indicates a code action document that cannot be read.
var ErrInvalidActions = errors.New("invalid code actions")

// Command is a command reference attached to an action or shown as
// documentation.
type Command struct {
	Title     string            `json:"title"`
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

// Disabled marks an action that cannot currently be applied.
type Disabled struct {
	Reason string `json:"reason"`
}

// Action is a code action as reported by a language server.
type Action struct {
	Title string `json:"title"`

	// Kind is the action's category. Empty means the server did not
	// categorize the action.
	Kind Kind `json:"kind,omitempty"`

	IsPreferred bool      `json:"isPreferred,omitempty"`
	Disabled    *Disabled `json:"disabled,omitempty"`
	Command     *Command  `json:"command,omitempty"`
}

// HasKind reports whether the action was categorized.
func (a Action) HasKind() bool {
	return a.Kind != Empty
}

// IsDisabled reports whether the action is disabled.
func (a Action) IsDisabled() bool {
	return a.Disabled != nil
}

// ActionSet is the result of one code action request.
type ActionSet struct {
	Actions       []Action  `json:"actions"`
	Documentation []Command `json:"documentation,omitempty"`
}

// ValidActions returns the actions that are not disabled.
func (s ActionSet) ValidActions() []Action {
	valid := make([]Action, 0, len(s.Actions))
	for _, a := range s.Actions {
		if !a.IsDisabled() {
			valid = append(valid, a)
		}
	}
	return valid
}

// AllActions returns every action, including disabled ones.
func (s ActionSet) AllActions() []Action {
	return s.Actions
}

// HasAutoFix reports whether a valid preferred quick fix is present.
func (s ActionSet) HasAutoFix() bool {
	for _, a := range s.ValidActions() {
		if a.IsPreferred && QuickFix.Contains(a.Kind) {
			return true
		}
	}
	return false
}

// DecodeActionSet reads code actions as JSON.
//
// Two shapes are accepted: the bare result of a textDocument/codeAction
// request, an array mixing CodeAction and Command objects, or an object
// {"actions": [...], "documentation": [...]}. Bare commands become
// actions without a kind.
func DecodeActionSet(r io.Reader) (ActionSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ActionSet{}, fmt.Errorf("reading code actions: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ActionSet{}, nil
	}
	if !gjson.ValidBytes(data) {
		return ActionSet{}, fmt.Errorf("%w: malformed JSON", ErrInvalidActions)
	}

	var set ActionSet
	doc := gjson.ParseBytes(data)
	list := doc
	if doc.IsObject() {
		list = doc.Get("actions")
		if docs := doc.Get("documentation"); docs.Exists() {
			if err := json.Unmarshal([]byte(docs.Raw), &set.Documentation); err != nil {
				return ActionSet{}, fmt.Errorf("%w: documentation: %v", ErrInvalidActions, err)
			}
		}
	}
	if !list.IsArray() {
		return ActionSet{}, fmt.Errorf("%w: expected an array of actions", ErrInvalidActions)
	}

	for i, entry := range list.Array() {
		action, err := decodeAction(entry)
		if err != nil {
			return ActionSet{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidActions, i, err)
		}
		set.Actions = append(set.Actions, action)
	}
	return set, nil
}

func decodeAction(entry gjson.Result) (Action, error) {
	// A bare Command has a string "command" field; a CodeAction's
	// command is an object.
	if entry.Get("command").Type == gjson.String {
		var cmd Command
		if err := json.Unmarshal([]byte(entry.Raw), &cmd); err != nil {
			return Action{}, err
		}
		return Action{Title: cmd.Title, Command: &cmd}, nil
	}

	var action Action
	if err := json.Unmarshal([]byte(entry.Raw), &action); err != nil {
		return Action{}, err
	}
	return action, nil
}
