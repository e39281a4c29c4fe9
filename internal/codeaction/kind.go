package codeaction

import "strings"

// Kind is a hierarchical, dot-separated code action category such as
// "refactor.extract.function". The empty Kind is the root.
type Kind string

// KindSeparator separates the segments of a Kind.
const KindSeparator = "."

// Well-known kinds.
const (
	Empty                 Kind = ""
	QuickFix              Kind = "quickfix"
	Refactor              Kind = "refactor"
	RefactorExtract       Kind = "refactor.extract"
	RefactorInline        Kind = "refactor.inline"
	RefactorMove          Kind = "refactor.move"
	RefactorRewrite       Kind = "refactor.rewrite"
	Source                Kind = "source"
	SourceOrganizeImports Kind = "source.organizeImports"
	SourceFixAll          Kind = "source.fixAll"
	SurroundWith          Kind = "surround"
)

// Contains reports whether k is other or an ancestor of other.
// The comparison is on the literal strings; malformed kinds are not
// normalized.
func (k Kind) Contains(other Kind) bool {
	return k == other || strings.HasPrefix(string(other), string(k)+KindSeparator)
}

// Intersects reports whether either kind contains the other.
func (k Kind) Intersects(other Kind) bool {
	return k.Contains(other) || other.Contains(k)
}

// Append returns the child kind k.part.
func (k Kind) Append(part string) Kind {
	if k == Empty {
		return Kind(part)
	}
	return Kind(string(k) + KindSeparator + part)
}

// IsEmpty reports whether k is the root kind.
func (k Kind) IsEmpty() bool {
	return k == Empty
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
