package codeaction

import (
	"sync"

	"github.com/dshills/actionmenu/internal/input/key"
	"github.com/dshills/actionmenu/internal/input/keymap"
	"github.com/dshills/actionmenu/internal/logging"
)

// KeybindingProvider supplies the keybinding table in registration order.
type KeybindingProvider interface {
	Keybindings() []keymap.Item
}

// ProviderFunc adapts a function to KeybindingProvider.
type ProviderFunc func() []keymap.Item

// Keybindings implements KeybindingProvider.
func (f ProviderFunc) Keybindings() []keymap.Item {
	return f()
}

// Candidate is a keybinding that can label code actions of its Kind and
// every kind below it.
type Candidate struct {
	Kind          Kind
	PreferredOnly bool
	Shortcut      *key.Shortcut

	// Command and Keys identify the originating binding.
	Command string
	Keys    string
}

// KeybindingResolver finds the shortcut to show next to a code action.
//
// Resolution happens in sessions. A session reads the keybinding table
// once, on its first query, and keeps that view for its lifetime; create
// a new session to pick up table changes.
type KeybindingResolver struct {
	provider KeybindingProvider
	commands CommandIDs
	defaults CommandArgs
	logger   *logging.Logger
}

// ResolverOption configures a KeybindingResolver.
type ResolverOption func(*KeybindingResolver)

// WithLogger sets the logger used for argument diagnostics.
func WithLogger(l *logging.Logger) ResolverOption {
	return func(r *KeybindingResolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCommandIDs overrides the code action command ids.
func WithCommandIDs(ids CommandIDs) ResolverOption {
	return func(r *KeybindingResolver) {
		r.commands = ids
	}
}

// WithDefaultArgs overrides the arguments assumed for bindings without
// usable arguments.
func WithDefaultArgs(args CommandArgs) ResolverOption {
	return func(r *KeybindingResolver) {
		r.defaults = args
	}
}

// NewKeybindingResolver creates a resolver over provider.
// The provider is not read until a session is queried.
func NewKeybindingResolver(provider KeybindingProvider, opts ...ResolverOption) *KeybindingResolver {
	r := &KeybindingResolver{
		provider: provider,
		commands: DefaultCommandIDs(),
		defaults: DefaultCommandArgs(),
		logger:   logging.Null(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("keybinding-resolver")
	return r
}

// Session starts a resolution session.
func (r *KeybindingResolver) Session() *Session {
	return &Session{
		candidates: sync.OnceValue(r.buildCandidates),
	}
}

// buildCandidates filters the table down to bound code action commands
// and derives each one's kind.
func (r *KeybindingResolver) buildCandidates() []Candidate {
	items := r.provider.Keybindings()

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		if !r.commands.Has(item.Command) || item.Shortcut == nil {
			continue
		}

		// Organize imports and fix all ignore their arguments and the
		// configured defaults: the kind is fixed and never preferred-only.
		var args CommandArgs
		switch item.Command {
		case r.commands.OrganizeImports:
			args, _ = ParseCommandArgs(argsWithKind(SourceOrganizeImports), DefaultCommandArgs())
		case r.commands.FixAll:
			args, _ = ParseCommandArgs(argsWithKind(SourceFixAll), DefaultCommandArgs())
		default:
			var err error
			args, err = ParseCommandArgs(item.Args, r.defaults)
			if err != nil {
				r.logger.WithField("command", item.Command).
					WithField("keys", item.Keys).
					Debug("using default args: %v", err)
			}
		}

		candidates = append(candidates, Candidate{
			Kind:          args.Kind,
			PreferredOnly: args.PreferredOnly,
			Shortcut:      item.Shortcut,
			Command:       item.Command,
			Keys:          item.Keys,
		})
	}
	return candidates
}

// Session answers shortcut queries against one snapshot of the
// keybinding table. It is safe for concurrent use.
type Session struct {
	candidates func() []Candidate
}

// Resolve returns the shortcut to show for action, or nil.
func (s *Session) Resolve(action Action) *key.Shortcut {
	if !action.HasKind() {
		return nil
	}
	best, ok := bestCandidate(action.Kind, action.IsPreferred, s.candidates())
	if !ok {
		return nil
	}
	return best.Shortcut
}

// Candidates returns a copy of the session's candidates in table order.
func (s *Session) Candidates() []Candidate {
	c := s.candidates()
	out := make([]Candidate, len(c))
	copy(out, c)
	return out
}

// bestCandidate picks the most specific candidate covering kind.
//
// Candidates are scanned from last to first; a candidate replaces the
// current winner when the winner's kind contains it. Among equally
// specific candidates the earliest one in the table therefore wins.
func bestCandidate(kind Kind, preferred bool, candidates []Candidate) (Candidate, bool) {
	var best *Candidate
	for i := len(candidates) - 1; i >= 0; i-- {
		c := &candidates[i]
		if !c.Kind.Contains(kind) {
			continue
		}
		// Preferred-only bindings apply to preferred actions only.
		if c.PreferredOnly && !preferred {
			continue
		}
		if best == nil || best.Kind.Contains(c.Kind) {
			best = c
		}
	}
	if best == nil {
		return Candidate{}, false
	}
	return *best, true
}
