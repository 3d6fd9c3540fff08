package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// Site is the content aggregate of one static site.
//
// Content is loaded lazily: any accessor that needs content triggers Load.
// A failed load leaves the site unloaded, so the next accessor retries from
// a clean state.
type Site interface {
	// Config returns the resolved configuration.
	Config() *domain.Config

	// State returns the current lifecycle state.
	State() domain.LoadState

	// Load runs snippets, pulls every data source and validates the content
	// graph. A no-op when already loaded or loading.
	Load(ctx context.Context) error

	// Unload resets all content and returns the site to the unloaded state.
	Unload()

	// Freeze loads the site and makes its configuration and content immutable.
	Freeze(ctx context.Context) error

	// Items returns the item collection, loading if needed.
	Items(ctx context.Context) (*domain.Collection, error)

	// Layouts returns the layout collection, loading if needed.
	Layouts(ctx context.Context) (*domain.Collection, error)

	// CodeSnippets returns the loaded code snippets, loading if needed.
	CodeSnippets(ctx context.Context) ([]domain.CodeSnippet, error)

	// WatchRoots returns the local paths whose changes affect the site.
	WatchRoots() []string

	// Compile loads the site and runs its compiler.
	Compile(ctx context.Context) (*domain.CompileResult, error)
}
