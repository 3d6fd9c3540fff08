package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// SnippetLoader reads code snippets from the configured lib directories.
type SnippetLoader interface {
	// Load returns the snippets of every directory, directories in the given
	// order and files in lexical order within each. Missing directories are skipped.
	Load(ctx context.Context, siteDir string, dirs []string) ([]domain.CodeSnippet, error)
}

// SnippetRunner executes code snippets for their side effects.
type SnippetRunner interface {
	// Extensions returns the file extensions the runner can execute.
	Extensions() []string

	// Run executes one snippet.
	Run(ctx context.Context, snippet domain.CodeSnippet) error

	// Reset discards every side effect of previously run snippets.
	Reset() error

	// Values returns a copy of the values snippets shared with the site.
	Values() map[string]any
}
