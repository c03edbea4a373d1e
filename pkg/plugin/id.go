package plugin

import "strings"

// Known capability kinds. Kinds are not validated; any string is accepted and
// rejection is left to the test runner.
const (
	KindFramework    = "framework"
	KindLauncher     = "launcher"
	KindPreprocessor = "preprocessor"
	KindReporter     = "reporter"
)

const idSeparator = ":"

// ID is a capability id of the form "<kind>:<name>".
type ID string

// NewID joins kind and name into a capability id.
func NewID(kind, name string) ID {
	return ID(kind + idSeparator + name)
}

// Kind returns the text before the first separator, or "" when there is none.
func (id ID) Kind() string {
	kind, _, found := strings.Cut(string(id), idSeparator)
	if !found {
		return ""
	}
	return kind
}

// Name returns the last separator-delimited segment. An id without a
// separator is its own name.
func (id ID) Name() string {
	s := string(id)
	if i := strings.LastIndex(s, idSeparator); i >= 0 {
		return s[i+len(idSeparator):]
	}
	return s
}

func (id ID) String() string { return string(id) }
