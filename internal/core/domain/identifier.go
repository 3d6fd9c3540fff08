package domain

import "strings"

// Separator delimits identifier segments.
const Separator = "/"

// Identifier addresses one node within its collection, e.g. "/blog/post1/".
type Identifier string

// String returns the identifier as a plain string.
func (id Identifier) String() string {
	return string(id)
}

// IsFull reports whether the identifier ends in the separator.
// Only full identifiers can act as parents.
func (id Identifier) IsFull() bool {
	return strings.HasSuffix(string(id), Separator)
}

// ParentCandidate returns the identifier of the would-be parent: everything up
// to and including the separator that precedes the final segment.
// Returns false when there is no such separator (e.g. the root "/").
func (id Identifier) ParentCandidate() (Identifier, bool) {
	s := string(id)
	if id.IsFull() {
		s = s[:len(s)-1]
	}
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return "", false
	}
	return Identifier(s[:idx+1]), true
}

// WithRoot prefixes the identifier with a mount root, joined by exactly one
// separator. A root of "/" only adds a missing leading separator.
func (id Identifier) WithRoot(root string) Identifier {
	s := string(id)
	if !strings.HasPrefix(s, Separator) {
		s = Separator + s
	}
	return Identifier(strings.TrimSuffix(root, Separator) + s)
}
