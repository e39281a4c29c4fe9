package codeaction

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AutoApply controls whether a code action command applies a result
// without showing the menu.
type AutoApply int

const (
	// AutoApplyIfSingle applies the action when it is the only one.
	AutoApplyIfSingle AutoApply = iota
	// AutoApplyFirst applies the first action.
	AutoApplyFirst
	// AutoApplyNever always shows the menu.
	AutoApplyNever
)

// String returns the argument spelling of the mode.
func (a AutoApply) String() string {
	switch a {
	case AutoApplyIfSingle:
		return "ifSingle"
	case AutoApplyFirst:
		return "first"
	case AutoApplyNever:
		return "never"
	default:
		return fmt.Sprintf("AutoApply(%d)", int(a))
	}
}

// ParseAutoApply parses "first", "ifSingle" or "never" (case-insensitive).
func ParseAutoApply(s string) (AutoApply, bool) {
	switch strings.ToLower(s) {
	case "first":
		return AutoApplyFirst, true
	case "ifsingle":
		return AutoApplyIfSingle, true
	case "never":
		return AutoApplyNever, true
	default:
		return AutoApplyNever, false
	}
}

// CommandArgs are the arguments of a code action command as configured
// on a keybinding.
type CommandArgs struct {
	// Kind limits the command to actions under this kind.
	Kind Kind
	// Apply controls auto-apply.
	Apply AutoApply
	// PreferredOnly limits the command to preferred actions.
	PreferredOnly bool
}

// DefaultCommandArgs returns the arguments used when a binding has none.
func DefaultCommandArgs() CommandArgs {
	return CommandArgs{
		Kind:  Empty,
		Apply: AutoApplyNever,
	}
}

// ArgsError describes one unusable part of a command argument document.
type ArgsError struct {
	// Field is the offending field, empty for the document itself.
	Field string
	// Reason explains the problem.
	Reason string
}

// Error implements the error interface.
func (e *ArgsError) Error() string {
	if e.Field == "" {
		return "command args: " + e.Reason
	}
	return fmt.Sprintf("command args: %s: %s", e.Field, e.Reason)
}

// ParseCommandArgs reads the "kind", "apply" and "preferred" fields of a
// raw JSON argument document. Missing fields take their value from
// defaults. Unusable fields also fall back to defaults and are reported in
// the returned error; the returned CommandArgs is always usable.
func ParseCommandArgs(raw []byte, defaults CommandArgs) (CommandArgs, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return defaults, nil
	}
	if !gjson.ValidBytes(raw) {
		return defaults, &ArgsError{Reason: "invalid JSON"}
	}

	doc := gjson.ParseBytes(raw)
	if doc.Type == gjson.Null {
		return defaults, nil
	}
	if !doc.IsObject() {
		return defaults, &ArgsError{Reason: "expected an object"}
	}

	args := defaults
	var errs []error

	if v := doc.Get("kind"); v.Exists() {
		if v.Type == gjson.String {
			args.Kind = Kind(v.Str)
		} else {
			errs = append(errs, &ArgsError{Field: "kind", Reason: "expected a string"})
		}
	}

	if v := doc.Get("apply"); v.Exists() {
		apply, ok := ParseAutoApply(v.Str)
		if v.Type == gjson.String && ok {
			args.Apply = apply
		} else {
			errs = append(errs, &ArgsError{Field: "apply", Reason: fmt.Sprintf("unknown mode %s", v.Raw)})
		}
	}

	if v := doc.Get("preferred"); v.Exists() {
		if v.IsBool() {
			args.PreferredOnly = v.Bool()
		} else {
			errs = append(errs, &ArgsError{Field: "preferred", Reason: "expected a boolean"})
		}
	}

	return args, errors.Join(errs...)
}

// argsWithKind builds the argument document {"kind": kind}.
func argsWithKind(kind Kind) []byte {
	raw, err := sjson.SetBytes(nil, "kind", string(kind))
	if err != nil {
		return nil
	}
	return raw
}
