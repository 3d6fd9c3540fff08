package domain

// CodeSnippet is one piece of auxiliary code loaded from a lib directory.
type CodeSnippet struct {
	// Source is the raw source text.
	Source string

	// Location is where the source was read from (file path).
	Location string
}
